package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/scizorman/go-ndjson"

	"github.com/mtgban/go-skynet/skynet"
)

func writeNDJSON(v interface{}, w io.Writer) error {
	output, err := ndjson.Marshal(v)
	if err != nil {
		return err
	}

	_, err = w.Write(output)
	return err
}

func writePricesToJSON(prices map[string]skynet.PriceQuote, w io.Writer) error {
	return json.NewEncoder(w).Encode(prices)
}

func sortedQuotes(prices map[string]skynet.PriceQuote) []skynet.PriceQuote {
	quotes := make([]skynet.PriceQuote, 0, len(prices))
	for _, quote := range prices {
		quotes = append(quotes, quote)
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Key() < quotes[j].Key()
	})
	return quotes
}

// Open the output file and pick the writer for the base format
func dumpFile(ctx context.Context, name, outputPath, format string, encode map[string]func(io.Writer) error) (err error) {
	writer, err := putData(ctx, name+"."+format, outputPath)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := writer.Close()
		if err == nil {
			err = closeErr
		}
	}()

	fn, found := encode[strings.Split(format, ".")[0]]
	if !found {
		return errors.New("invalid format")
	}
	return fn(writer)
}

func dumpCatalog(ctx context.Context, catalog *skynet.Catalog, outputPath, format string) error {
	return dumpFile(ctx, "catalog", outputPath, format, map[string]func(io.Writer) error{
		"json": func(w io.Writer) error {
			return skynet.WriteCatalogToJSON(catalog, w)
		},
		"csv": func(w io.Writer) error {
			return skynet.WriteCatalogToCSV(catalog, w)
		},
		"ndjson": func(w io.Writer) error {
			return writeNDJSON(catalog.Printings, w)
		},
	})
}

func dumpPrices(ctx context.Context, prices map[string]skynet.PriceQuote, outputPath, format string) error {
	return dumpFile(ctx, "prices", outputPath, format, map[string]func(io.Writer) error{
		"json": func(w io.Writer) error {
			return writePricesToJSON(prices, w)
		},
		"csv": func(w io.Writer) error {
			return skynet.WritePricesToCSV(prices, w)
		},
		"ndjson": func(w io.Writer) error {
			return writeNDJSON(sortedQuotes(prices), w)
		},
	})
}

func dumpPriced(ctx context.Context, priced []skynet.PricedPrinting, outputPath, format string) error {
	return dumpFile(ctx, "priced", outputPath, format, map[string]func(io.Writer) error{
		"json": func(w io.Writer) error {
			return skynet.WritePricedToJSON(priced, w)
		},
		"csv": func(w io.Writer) error {
			return skynet.WritePricedToCSV(priced, w)
		},
		"ndjson": func(w io.Writer) error {
			return writeNDJSON(priced, w)
		},
	})
}

// Load the catalog previously dumped in json or csv format
func loadCatalog(ctx context.Context, pathOpt string) (*skynet.Catalog, error) {
	reader, err := loadData(ctx, pathOpt)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if strings.Contains(pathOpt, ".csv") {
		printings, err := skynet.LoadPrintingsFromCSV(reader)
		if err != nil {
			return nil, err
		}
		return skynet.NewCatalog(printings), nil
	}
	return skynet.ReadCatalogFromJSON(reader)
}

// Load the price history, starting a new one if none was saved yet
func loadHistory(ctx context.Context, pathOpt string) (*skynet.PriceHistory, error) {
	reader, err := loadData(ctx, pathOpt)
	if err != nil {
		if isNotExist(err) {
			return &skynet.PriceHistory{}, nil
		}
		return nil, err
	}
	defer reader.Close()

	return skynet.LoadPriceHistory(reader)
}

func dumpHistory(ctx context.Context, history *skynet.PriceHistory, outputPath string) (err error) {
	writer, err := putData(ctx, "history.json", outputPath)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := writer.Close()
		if err == nil {
			err = closeErr
		}
	}()

	return skynet.WritePriceHistory(history, writer)
}
