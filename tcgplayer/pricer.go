package tcgplayer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mtgban/go-skynet/skynet"
)

// Pricer retrieves the marketplace prices of a catalog.
type Pricer struct {
	LogCallback    skynet.LogCallbackFunc
	Affiliate      string
	MaxConcurrency int

	client *TCGClient
}

type priceResponse struct {
	quotes []skynet.PriceQuote
}

func (tcg *Pricer) printf(format string, a ...interface{}) {
	if tcg.LogCallback != nil {
		tcg.LogCallback("[TCGPricer] "+format, a...)
	}
}

func NewPricer(session *Session) *Pricer {
	tcg := Pricer{}
	tcg.client = NewTCGClient(session)
	tcg.MaxConcurrency = defaultConcurrency
	return &tcg
}

// Split ids in request sized batches, skipping empty and repeated ones
func batchIds(productIds []string, size int) [][]string {
	idFound := map[string]bool{}
	var batches [][]string
	buffer := make([]string, 0, size)

	for _, id := range productIds {
		if id == "" || idFound[id] {
			continue
		}
		idFound[id] = true

		buffer = append(buffer, id)
		if len(buffer) == size {
			batches = append(batches, buffer)
			buffer = make([]string, 0, size)
		}
	}
	if len(buffer) != 0 {
		batches = append(batches, buffer)
	}

	return batches
}

func (tcg *Pricer) processBatch(ctx context.Context, ids []string) ([]skynet.PriceQuote, error) {
	results, err := tcg.client.PricesForIds(ctx, ids)
	// The session drops a rejected token, so one retry is enough to get a new one
	if errors.Is(err, ErrTokenExpired) {
		tcg.printf("Token rejected, retrying with a new one")
		results, err = tcg.client.PricesForIds(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	quotes := make([]skynet.PriceQuote, 0, len(results))
	for _, result := range results {
		// Skip empty entries
		if result.LowPrice == 0 && result.MarketPrice == 0 && result.MidPrice == 0 &&
			result.HighPrice == 0 && result.DirectLowPrice == 0 {
			continue
		}

		quotes = append(quotes, skynet.PriceQuote{
			ProductId:      fmt.Sprint(result.ProductId),
			SubTypeName:    result.SubTypeName,
			LowPrice:       result.LowPrice,
			MidPrice:       result.MidPrice,
			HighPrice:      result.HighPrice,
			MarketPrice:    result.MarketPrice,
			DirectLowPrice: result.DirectLowPrice,
			URL:            TCGPlayerProductURL(result.ProductId, result.SubTypeName, tcg.Affiliate),
		})
	}

	return quotes, nil
}

// Prices retrieves the quotes of all the given product ids, keyed by
// skynet.PriceKey. The first failing batch aborts the whole run.
func (tcg *Pricer) Prices(ctx context.Context, productIds []string) (map[string]skynet.PriceQuote, error) {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := batchIds(productIds, MaxIdsInRequest)
	pages := make(chan []string)
	channel := make(chan priceResponse)
	var wg sync.WaitGroup

	var once sync.Once
	var batchErr error

	workers := tcg.MaxConcurrency
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range pages {
				quotes, err := tcg.processBatch(ctx, page)
				if err != nil {
					once.Do(func() {
						batchErr = err
						cancel()
					})
					continue
				}
				select {
				case channel <- priceResponse{quotes: quotes}:
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
	loop:
		for i, batch := range batches {
			tcg.printf("Requesting batch %d/%d", i+1, len(batches))
			select {
			case pages <- batch:
			case <-ctx.Done():
				break loop
			}
		}
		close(pages)

		wg.Wait()
		close(channel)
	}()

	prices := map[string]skynet.PriceQuote{}
	for result := range channel {
		for _, quote := range result.quotes {
			prices[quote.Key()] = quote
		}
	}
	if batchErr != nil {
		return nil, batchErr
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tcg.printf("Retrieved %d quotes for %d batches in %v", len(prices), len(batches), time.Since(start))

	return prices, nil
}

// PriceCatalog retrieves the prices of every product of the catalog and
// joins them with its printings.
func (tcg *Pricer) PriceCatalog(ctx context.Context, catalog *skynet.Catalog) ([]skynet.PricedPrinting, map[string]skynet.PriceQuote, error) {
	prices, err := tcg.Prices(ctx, catalog.ProductIds())
	if err != nil {
		return nil, nil, err
	}
	return skynet.JoinPrices(catalog.Printings, prices), prices, nil
}
