package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/mtgban/go-skynet/scryfall"
	"github.com/mtgban/go-skynet/skynet"
	"github.com/mtgban/go-skynet/tcgplayer"
)

var Commit = func() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return ""
}()

func buildCatalog(ctx context.Context, log *zap.SugaredLogger, config *Config, bulkOpt, kindOpt string) (*skynet.Catalog, error) {
	builder := skynet.NewBuilder()
	builder.LogCallback = log.Infof
	if config.MaxConcurrency > 0 {
		builder.MaxConcurrency = config.MaxConcurrency
	}

	var reader io.ReadCloser
	if bulkOpt != "" {
		err := initializeBucket(ctx, config, bulkOpt)
		if err != nil {
			return nil, err
		}
		reader, err = loadData(ctx, bulkOpt)
		if err != nil {
			return nil, err
		}
	} else {
		var info *scryfall.BulkData
		var err error
		reader, info, err = scryfall.NewClient().DownloadBulk(ctx, kindOpt)
		if err != nil {
			return nil, err
		}
		log.Infow("Downloading bulk data", "kind", info.Type, "updated_at", info.UpdatedAt, "size", info.Size)
	}
	defer reader.Close()

	return builder.BuildFromReader(reader)
}

func priceCatalog(ctx context.Context, log *zap.SugaredLogger, config *Config, catalog *skynet.Catalog, outputPath, format string, historySize int) error {
	session := tcgplayer.NewSession(config.TCGPublicId, config.TCGPrivateId)

	pricer := tcgplayer.NewPricer(session)
	pricer.LogCallback = log.Infof
	pricer.Affiliate = config.TCGPartner
	if config.MaxConcurrency > 0 {
		pricer.MaxConcurrency = config.MaxConcurrency
	}

	priced, prices, err := pricer.PriceCatalog(ctx, catalog)
	if err != nil {
		return err
	}

	summary, err := skynet.SummarizePrices(prices)
	if errors.Is(err, skynet.ErrNoPrices) {
		log.Warn("No market prices were found")
	} else if err != nil {
		return err
	} else {
		log.Infow("Market prices",
			"quotes", summary.Quotes,
			"priced", summary.Priced,
			"mean", summary.Mean,
			"median", summary.Median,
			"p90", summary.Percentile90,
			"max", summary.Max)
	}

	err = dumpPrices(ctx, prices, outputPath, format)
	if err != nil {
		return err
	}
	err = dumpPriced(ctx, priced, outputPath, format)
	if err != nil {
		return err
	}

	if historySize <= 0 {
		return nil
	}

	history, err := loadHistory(ctx, strings.TrimSuffix(outputPath, "/")+"/history.json")
	if err != nil {
		return err
	}
	history.Track(time.Now(), prices)
	history.Trim(historySize)
	log.Infow("Tracking prices", "snapshots", len(history.Snapshots))

	return dumpHistory(ctx, history, outputPath)
}

func run() int {
	start := time.Now()

	bulkOpt := flag.String("bulk", "", "Path or URL to a bulk data file, downloaded from Scryfall if empty")
	kindOpt := flag.String("kind", scryfall.BulkDefaultCards, "Kind of bulk data to download")
	catalogOpt := flag.String("catalog", "", "Path to a previously dumped catalog (json/csv), skips the build")
	outputPathOpt := flag.String("output-path", "", "Path where to dump results")

	fileFormatOpt := flag.String("format", "json", "File format of the output files (json/csv/ndjson, optionally .xz/.bz2)")
	priceOpt := flag.Bool("price", false, "Retrieve TCGplayer prices for the catalog")
	historyOpt := flag.Int("history", 0, "Number of price snapshots to keep in the price history (0 disables it)")
	displayOrderOpt := flag.Bool("display-order", false, "Sort the catalog by name, set, style and finish before dumping")

	configOpt := flag.String("config", "", "Path to a config file")
	debugOpt := flag.Bool("debug", false, "Enable debug logging")
	versionOpt := flag.Bool("v", false, "Print version information")
	flag.Parse()

	logger, err := newLogger(*debugOpt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create logger:", err)
		return 1
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Infow("skynet", "version", Commit)
	if *versionOpt {
		return 0
	}

	config, err := loadConfig(*configOpt)
	if err != nil {
		log.Errorw("cannot load config", "error", err)
		return 1
	}

	switch strings.Split(*fileFormatOpt, ".")[0] {
	case "json", "csv", "ndjson":
	default:
		log.Error("Invalid -format option, see -h for supported values")
		return 1
	}

	if *outputPathOpt == "" {
		log.Error("Missing output-path argument")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = initializeBucket(ctx, config, *outputPathOpt)
	if err != nil {
		log.Errorw("cannot initialize buckets", "error", err)
		return 1
	}

	now := time.Now()
	var catalog *skynet.Catalog
	if *catalogOpt != "" {
		err = initializeBucket(ctx, config, *catalogOpt)
		if err == nil {
			catalog, err = loadCatalog(ctx, *catalogOpt)
		}
	} else {
		catalog, err = buildCatalog(ctx, log, config, *bulkOpt, *kindOpt)
	}
	if err != nil {
		log.Errorw("cannot load catalog", "error", err)
		return 1
	}
	log.Infow("Catalog ready", "printings", catalog.Count, "took", time.Since(now))

	if *displayOrderOpt {
		catalog = catalog.DisplayOrder()
	}

	now = time.Now()
	err = dumpCatalog(ctx, catalog, *outputPathOpt, *fileFormatOpt)
	if err != nil {
		log.Errorw("cannot dump catalog", "error", err)
		return 1
	}
	log.Infow("Writing catalog", "output", *outputPathOpt, "took", time.Since(now))

	if *priceOpt {
		now = time.Now()
		err = priceCatalog(ctx, log, config, catalog, *outputPathOpt, *fileFormatOpt, *historyOpt)
		if err != nil {
			log.Errorw("cannot price catalog", "error", err)
			return 1
		}
		log.Infow("Pricing catalog", "took", time.Since(now))
	}

	log.Infow("Completed", "took", time.Since(start))

	return 0
}

func main() {
	os.Exit(run())
}
