package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mtgban/go-skynet/tcgplayer"
)

func run() int {
	idsOpt := flag.String("ids", "", "Comma-separated list of product ids to price with the new token")
	timeoutOpt := flag.Duration("timeout", time.Minute, "Maximum time to wait for TCGplayer")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create logger:", err)
		return 1
	}
	defer logger.Sync()
	log := logger.Sugar()

	v := viper.New()
	v.AutomaticEnv()

	session := tcgplayer.NewSession(v.GetString("TCGPLAYER_PUBLIC_ID"), v.GetString("TCGPLAYER_PRIVATE_ID"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutOpt)
	defer cancel()

	token, err := session.Token(ctx)
	if err != nil {
		log.Errorw("cannot acquire token", "error", err)
		return 1
	}
	log.Infow("Token acquired", "expires", token.Expires, "valid_for", time.Until(token.Expires).Round(time.Second))

	if *idsOpt == "" {
		return 0
	}

	pricer := tcgplayer.NewPricer(session)
	pricer.LogCallback = log.Infof
	pricer.Affiliate = v.GetString("TCG_PARTNER")

	prices, err := pricer.Prices(ctx, strings.Split(*idsOpt, ","))
	if err != nil {
		log.Errorw("cannot retrieve prices", "error", err)
		return 1
	}

	var keys []string
	for key := range prices {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		quote := prices[key]
		fmt.Printf("%s\tlow %0.2f\tmarket %0.2f\t%s\n", key, quote.LowPrice, quote.MarketPrice, quote.URL)
	}

	return 0
}

func main() {
	os.Exit(run())
}
