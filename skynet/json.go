package skynet

import (
	"encoding/json"
	"io"
)

// WriteCatalogToJSON writes the whole catalog, build metadata included.
// BuildId and BuiltAt change on every build, use WritePrintingsToJSON for
// output that only depends on the input records.
func WriteCatalogToJSON(catalog *Catalog, w io.Writer) error {
	return json.NewEncoder(w).Encode(catalog)
}

// WritePrintingsToJSON writes the printings alone, so that identical
// inputs produce identical files.
func WritePrintingsToJSON(printings []Printing, w io.Writer) error {
	return json.NewEncoder(w).Encode(printings)
}

func ReadCatalogFromJSON(r io.Reader) (*Catalog, error) {
	var catalog Catalog

	err := json.NewDecoder(r).Decode(&catalog)
	if err != nil {
		return nil, err
	}
	catalog.Count = len(catalog.Printings)

	return &catalog, nil
}

func WritePricedToJSON(priced []PricedPrinting, w io.Writer) error {
	return json.NewEncoder(w).Encode(priced)
}
