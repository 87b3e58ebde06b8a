package skynet

import (
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtgban/go-skynet/scryfall"
)

// Catalog is the result of one build. It is not modified after the build.
type Catalog struct {
	BuildId string    `json:"build_id"`
	BuiltAt time.Time `json:"built_at"`

	// Number of upstream records processed
	Records int `json:"records"`

	Count     int        `json:"count"`
	Printings []Printing `json:"printings"`

	index     map[string][]int
	indexOnce sync.Once
}

// Classify runs all the classifiers on a single record. It returns nothing
// for records out of scope, one printing otherwise, or two printings when
// the record also stands for a non-etched printing, the etched one first.
// Sequence ids are left unset.
func Classify(card *scryfall.Card) []Printing {
	if !IsInScope(card) {
		return nil
	}

	style := ClassifyStyle(card)
	name := FinalName(card, style)
	finish := ClassifyFinish(card)
	color, rank := ClassifyColor(card)

	printing := Printing{
		DisplayName:     DisplayName(name, card.SetName, style, finish.Finish),
		Name:            name,
		SetCode:         card.SetCode,
		SetName:         card.SetName,
		CollectorNumber: card.CollectorNumber,
		Rarity:          card.Rarity,
		Style:           style,
		Finish:          finish.Finish,
		Color:           color,
		ColorRank:       rank,
		ProductId:       finish.ProductId,
	}
	printings := []Printing{printing}

	if finish.EtchedDuplicate {
		normal := printing
		normal.Finish = FinishNone
		normal.ProductId = finish.NormalProductId
		normal.DisplayName = DisplayName(name, card.SetName, style, FinishNone)
		printings = append(printings, normal)
	}

	return printings
}

type Builder struct {
	LogCallback    LogCallbackFunc
	MaxConcurrency int
}

type classifyRequest struct {
	index int
	card  *scryfall.Card
}

type classifyResponse struct {
	index     int
	printings []Printing
}

func NewBuilder() *Builder {
	return &Builder{
		MaxConcurrency: runtime.NumCPU(),
	}
}

func (b *Builder) printf(format string, a ...interface{}) {
	if b.LogCallback != nil {
		b.LogCallback("[Skynet] "+format, a...)
	}
}

// Build classifies an in-memory list of records.
func (b *Builder) Build(cards []scryfall.Card) (*Catalog, error) {
	return b.build(func(yield func(card *scryfall.Card) error) error {
		for i := range cards {
			err := yield(&cards[i])
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// BuildFromReader classifies a bulk data payload while it is being decoded,
// without keeping the upstream records around.
func (b *Builder) BuildFromReader(r io.Reader) (*Catalog, error) {
	return b.build(func(yield func(card *scryfall.Card) error) error {
		return scryfall.DecodeCards(r, yield)
	})
}

func (b *Builder) build(source func(yield func(card *scryfall.Card) error) error) (*Catalog, error) {
	start := time.Now()

	workers := b.MaxConcurrency
	if workers < 1 {
		workers = 1
	}

	requests := make(chan classifyRequest)
	responses := make(chan classifyResponse)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range requests {
				printings := Classify(req.card)
				if len(printings) == 0 {
					continue
				}
				responses <- classifyResponse{
					index:     req.index,
					printings: printings,
				}
			}
		}()
	}

	var records int
	var sourceErr error
	go func() {
		sourceErr = source(func(card *scryfall.Card) error {
			requests <- classifyRequest{
				index: records,
				card:  card,
			}
			records++
			return nil
		})
		close(requests)

		wg.Wait()
		close(responses)
	}()

	var results []classifyResponse
	for resp := range responses {
		results = append(results, resp)
	}
	if sourceErr != nil {
		return nil, sourceErr
	}

	// Sequence ids follow upstream order
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	catalog := &Catalog{
		BuildId: uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		Records: records,
	}
	for _, result := range results {
		for _, printing := range result.printings {
			printing.SequenceId = len(catalog.Printings) + 1
			catalog.Printings = append(catalog.Printings, printing)
		}
	}
	catalog.Count = len(catalog.Printings)
	catalog.indexOnce.Do(catalog.buildIndex)

	if catalog.Count == 0 {
		b.printf("No printing in scope out of %d records", records)
	}
	b.printf("Built %d printings out of %d records in %v", catalog.Count, records, time.Since(start))

	return catalog, nil
}

// DisplayOrder returns a copy of the catalog with the printings sorted
// for display, keeping the build metadata.
func (c *Catalog) DisplayOrder() *Catalog {
	return &Catalog{
		BuildId:   c.BuildId,
		BuiltAt:   c.BuiltAt,
		Records:   c.Records,
		Count:     c.Count,
		Printings: SortForDisplay(c.Printings),
	}
}

// NewCatalog wraps a list of printings, such as one loaded from a previous
// export, keeping their sequence ids.
func NewCatalog(printings []Printing) *Catalog {
	catalog := &Catalog{
		BuildId:   uuid.NewString(),
		BuiltAt:   time.Now().UTC(),
		Count:     len(printings),
		Printings: printings,
	}
	catalog.indexOnce.Do(catalog.buildIndex)
	return catalog
}

func (c *Catalog) buildIndex() {
	c.index = map[string][]int{}
	for i, printing := range c.Printings {
		key := SearchKey(printing.DisplayName)
		c.index[key] = append(c.index[key], i)
	}
}

// Lookup returns the printings with the given display name, ignoring case
// and accents.
func (c *Catalog) Lookup(displayName string) []Printing {
	c.indexOnce.Do(c.buildIndex)
	var out []Printing
	for _, i := range c.index[SearchKey(displayName)] {
		out = append(out, c.Printings[i])
	}
	return out
}

// Find returns the printings matching the components of a display name.
func (c *Catalog) Find(name, setName string, style Style, finish Finish) []Printing {
	return c.Lookup(DisplayName(name, setName, style, finish))
}

// ProductIds returns the product ids of the catalog without repetitions,
// in sequence order.
func (c *Catalog) ProductIds() []string {
	seen := map[string]bool{}
	var ids []string
	for _, printing := range c.Printings {
		if printing.ProductId == "" || seen[printing.ProductId] {
			continue
		}
		seen[printing.ProductId] = true
		ids = append(ids, printing.ProductId)
	}
	return ids
}

// SortForDisplay returns a copy of the printings ordered by name, set,
// style and finish. Ties keep sequence order.
func SortForDisplay(printings []Printing) []Printing {
	out := make([]Printing, len(printings))
	copy(out, printings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].SetName != out[j].SetName {
			return out[i].SetName < out[j].SetName
		}
		if out[i].Style != out[j].Style {
			return out[i].Style < out[j].Style
		}
		if out[i].Finish != out[j].Finish {
			return out[i].Finish < out[j].Finish
		}
		return out[i].SequenceId < out[j].SequenceId
	})
	return out
}
