package skynet

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

const (
	SubTypeNormal = "Normal"
	SubTypeFoil   = "Foil"
)

var ErrNoPrices = errors.New("no prices available")

// PriceQuote is the marketplace price of a product in one sub type.
type PriceQuote struct {
	ProductId      string  `json:"product_id"`
	SubTypeName    string  `json:"sub_type_name"`
	LowPrice       float64 `json:"low_price"`
	MidPrice       float64 `json:"mid_price"`
	HighPrice      float64 `json:"high_price"`
	MarketPrice    float64 `json:"market_price"`
	DirectLowPrice float64 `json:"direct_low_price"`
	URL            string  `json:"url,omitempty"`
}

// PriceKey identifies a quote among the ones of the same product.
func PriceKey(productId, subType string) string {
	return productId + " (" + subType + ")"
}

// Key returns the PriceKey of the quote.
func (q PriceQuote) Key() string {
	return PriceKey(q.ProductId, q.SubTypeName)
}

// PricedPrinting is a printing together with its prices, if any.
type PricedPrinting struct {
	Printing
	Normal *PriceQuote `json:"normal,omitempty"`
	Foil   *PriceQuote `json:"foil,omitempty"`
}

// JoinPrices matches every printing with the quotes of its product id.
// Printings without a product id or without quotes are kept unpriced.
func JoinPrices(printings []Printing, quotes map[string]PriceQuote) []PricedPrinting {
	out := make([]PricedPrinting, 0, len(printings))
	for _, printing := range printings {
		priced := PricedPrinting{
			Printing: printing,
		}
		if printing.ProductId != "" {
			normal, found := quotes[PriceKey(printing.ProductId, SubTypeNormal)]
			if found {
				priced.Normal = &normal
			}
			foil, found := quotes[PriceKey(printing.ProductId, SubTypeFoil)]
			if found {
				priced.Foil = &foil
			}
		}
		out = append(out, priced)
	}
	return out
}

// PriceSummary describes the distribution of market prices of a set of
// quotes.
type PriceSummary struct {
	Quotes       int     `json:"quotes"`
	Priced       int     `json:"priced"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Percentile90 float64 `json:"percentile_90"`
	Max          float64 `json:"max"`
}

// SummarizePrices computes statistics over the non-zero market prices.
func SummarizePrices(quotes map[string]PriceQuote) (*PriceSummary, error) {
	var data []float64
	for _, quote := range quotes {
		if quote.MarketPrice > 0 {
			data = append(data, quote.MarketPrice)
		}
	}
	if len(data) == 0 {
		return nil, ErrNoPrices
	}

	summary := PriceSummary{
		Quotes: len(quotes),
		Priced: len(data),
	}

	var err error
	summary.Mean, err = stats.Mean(data)
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	summary.Median, err = stats.Median(data)
	if err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}
	summary.StdDev, err = stats.StandardDeviation(data)
	if err != nil {
		return nil, fmt.Errorf("std dev: %w", err)
	}
	summary.Percentile90, err = stats.Percentile(data, 90)
	if err != nil {
		return nil, fmt.Errorf("percentile: %w", err)
	}
	summary.Max, err = stats.Max(data)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}

	return &summary, nil
}
