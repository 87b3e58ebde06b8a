package skynet

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// PriceSnapshot holds the market prices recorded on a given day, keyed
// by PriceKey.
type PriceSnapshot struct {
	Date   time.Time          `json:"date"`
	Prices map[string]float64 `json:"prices"`
}

// PriceHistory is a list of snapshots, most recent first.
type PriceHistory struct {
	Snapshots []PriceSnapshot `json:"snapshots"`
}

// PricePoint is the price of a product on a given day.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

func DateEqual(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func LoadPriceHistory(r io.Reader) (*PriceHistory, error) {
	var history PriceHistory
	err := json.NewDecoder(r).Decode(&history)
	if err != nil {
		return nil, fmt.Errorf("invalid price history: %w", err)
	}
	return &history, nil
}

func WritePriceHistory(history *PriceHistory, w io.Writer) error {
	return json.NewEncoder(w).Encode(history)
}

// Track records the market prices of the quotes as the snapshot of the
// given day, replacing any snapshot already present for that day.
func (h *PriceHistory) Track(date time.Time, quotes map[string]PriceQuote) {
	snapshot := PriceSnapshot{
		Date:   date.UTC().Truncate(24 * time.Hour),
		Prices: map[string]float64{},
	}
	for key, quote := range quotes {
		if quote.MarketPrice == 0 {
			continue
		}
		snapshot.Prices[key] = quote.MarketPrice
	}

	for i := range h.Snapshots {
		if DateEqual(h.Snapshots[i].Date, snapshot.Date) {
			h.Snapshots[i] = snapshot
			return
		}
	}

	h.Snapshots = append(h.Snapshots, snapshot)
	sort.SliceStable(h.Snapshots, func(i, j int) bool {
		return h.Snapshots[i].Date.After(h.Snapshots[j].Date)
	})
}

// Trim keeps only the most recent snapshots.
func (h *PriceHistory) Trim(size int) {
	if size >= 0 && len(h.Snapshots) > size {
		h.Snapshots = h.Snapshots[:size]
	}
}

// Series returns the recorded prices for a key, most recent first.
func (h *PriceHistory) Series(key string) []PricePoint {
	var out []PricePoint
	for _, snapshot := range h.Snapshots {
		price, found := snapshot.Prices[key]
		if !found {
			continue
		}
		out = append(out, PricePoint{
			Date:  snapshot.Date,
			Price: price,
		})
	}
	return out
}

// Change returns the difference between the two most recent prices of a
// key, and false if fewer than two are available.
func (h *PriceHistory) Change(key string) (float64, bool) {
	series := h.Series(key)
	if len(series) < 2 {
		return 0, false
	}
	return series[0].Price - series[1].Price, true
}
