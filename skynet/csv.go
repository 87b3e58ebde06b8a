package skynet

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

var (
	// The header present in all catalog files
	CatalogHeader = []string{
		"Id", "Display Name", "Name", "Set", "Set Code", "Collector Number", "Rarity", "Style", "Finish", "Color", "Color Rank", "Product Id",
	}
	// The header of the raw price files
	PricesHeader = []string{
		"Key", "Product Id", "Sub Type", "Low", "Mid", "High", "Market", "Direct Low",
	}
	// The header of the catalog files with prices
	PricedHeader = []string{
		"Id", "Display Name", "Set Code", "Collector Number", "Rarity", "Color", "Product Id", "Normal Market", "Normal Low", "Foil Market", "Foil Low",
	}
)

func WriteCatalogToCSV(catalog *Catalog, w io.Writer) error {
	return WritePrintingsToCSV(catalog.Printings, w)
}

func WritePrintingsToCSV(printings []Printing, w io.Writer) error {
	if len(printings) == 0 {
		return fmt.Errorf("Empty catalog")
	}

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(CatalogHeader)
	if err != nil {
		return err
	}

	for _, printing := range printings {
		err = csvWriter.Write([]string{
			strconv.Itoa(printing.SequenceId),
			printing.DisplayName,
			printing.Name,
			printing.SetName,
			printing.SetCode,
			printing.CollectorNumber,
			printing.Rarity,
			string(printing.Style),
			string(printing.Finish),
			string(printing.Color),
			strconv.Itoa(printing.ColorRank),
			printing.ProductId,
		})
		if err != nil {
			return err
		}
	}

	return csvWriter.Error()
}

// LoadPrintingsFromCSV reads a catalog file previously written with
// WriteCatalogToCSV.
func LoadPrintingsFromCSV(r io.Reader) ([]Printing, error) {
	csvReader := csv.NewReader(r)
	first, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("Empty input file")
	}
	if err != nil {
		return nil, fmt.Errorf("Error reading header: %v", err)
	}

	okHeader := len(first) >= len(CatalogHeader)
	for i := 0; okHeader && i < len(CatalogHeader); i++ {
		okHeader = first[i] == CatalogHeader[i]
	}
	if !okHeader {
		return nil, fmt.Errorf("Malformed catalog file")
	}

	var printings []Printing
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Error reading record: %v", err)
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("Error reading record %s: %v", record[0], err)
		}
		rank, err := strconv.Atoi(record[10])
		if err != nil {
			return nil, fmt.Errorf("Error reading record %s: %v", record[10], err)
		}

		printings = append(printings, Printing{
			SequenceId:      id,
			DisplayName:     record[1],
			Name:            record[2],
			SetName:         record[3],
			SetCode:         record[4],
			CollectorNumber: record[5],
			Rarity:          record[6],
			Style:           Style(record[7]),
			Finish:          Finish(record[8]),
			Color:           Color(record[9]),
			ColorRank:       rank,
			ProductId:       record[11],
		})
	}

	return printings, nil
}

func WritePricesToCSV(quotes map[string]PriceQuote, w io.Writer) error {
	if len(quotes) == 0 {
		return fmt.Errorf("Empty price list")
	}

	keys := make([]string, 0, len(quotes))
	for key := range quotes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(PricesHeader)
	if err != nil {
		return err
	}

	for _, key := range keys {
		quote := quotes[key]
		err = csvWriter.Write([]string{
			key,
			quote.ProductId,
			quote.SubTypeName,
			fmt.Sprintf("%0.2f", quote.LowPrice),
			fmt.Sprintf("%0.2f", quote.MidPrice),
			fmt.Sprintf("%0.2f", quote.HighPrice),
			fmt.Sprintf("%0.2f", quote.MarketPrice),
			fmt.Sprintf("%0.2f", quote.DirectLowPrice),
		})
		if err != nil {
			return err
		}
	}

	return csvWriter.Error()
}

func WritePricedToCSV(priced []PricedPrinting, w io.Writer) error {
	if len(priced) == 0 {
		return fmt.Errorf("Empty catalog")
	}

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(PricedHeader)
	if err != nil {
		return err
	}

	for _, entry := range priced {
		err = csvWriter.Write([]string{
			strconv.Itoa(entry.SequenceId),
			entry.DisplayName,
			entry.SetCode,
			entry.CollectorNumber,
			entry.Rarity,
			string(entry.Color),
			entry.ProductId,
			formatPrice(entry.Normal, true),
			formatPrice(entry.Normal, false),
			formatPrice(entry.Foil, true),
			formatPrice(entry.Foil, false),
		})
		if err != nil {
			return err
		}
	}

	return csvWriter.Error()
}

// Missing quotes are left blank to tell them apart from zero prices
func formatPrice(quote *PriceQuote, market bool) string {
	if quote == nil {
		return ""
	}
	if market {
		return fmt.Sprintf("%0.2f", quote.MarketPrice)
	}
	return fmt.Sprintf("%0.2f", quote.LowPrice)
}
