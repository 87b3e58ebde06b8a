package skynet

import (
	"github.com/mtgban/go-skynet/scryfall"
)

var finishTags = map[string]Finish{
	scryfall.FinishEtched:   FinishEtched,
	scryfall.FinishGilded:   FinishGilded,
	scryfall.FinishTextured: FinishTextured,
}

// Collector number ranges whose finish is missing upstream
var finishRanges = []struct {
	Set    string
	Min    int
	Max    int
	Finish Finish
}{
	{Set: "snc", Min: 362, Max: 405, Finish: FinishGilded},
	{Set: "2x2", Min: 573, Max: 577, Finish: FinishTextured},
}

// Cards with one finish per collector number
var finishByNumber = map[string]map[string]Finish{
	"Hidetsugu, Devouring Chaos": {
		"429": FinishNeonRed,
		"430": FinishNeonGreen,
		"431": FinishNeonBlue,
		"432": FinishNeonYellow,
	},
}

// FinishResult is the outcome of the finish classification.
type FinishResult struct {
	Finish Finish

	// The product id that the printing should be priced with
	ProductId string

	// Set when the record also stands for a non-etched printing, sold
	// under NormalProductId
	EtchedDuplicate bool
	NormalProductId string
}

// ClassifyFinish derives the finish of a record and the product id it is
// sold under.
func ClassifyFinish(card *scryfall.Card) FinishResult {
	finish := FinishNone
	for _, fi := range card.Finishes {
		tag, found := finishTags[fi]
		if found {
			finish = tag
		}
	}

	num, numeric := card.CollectorNumberInt()
	if numeric {
		for _, entry := range finishRanges {
			if card.SetCode == entry.Set && num >= entry.Min && num <= entry.Max {
				finish = entry.Finish
			}
		}
	}

	tag, found := finishByNumber[card.Name][card.CollectorNumber]
	if found {
		finish = tag
	}

	result := FinishResult{
		Finish:    finish,
		ProductId: card.ProductId(),
	}

	etchedId := card.EtchedProductId()
	if finish == FinishEtched && etchedId != "" {
		normalId := result.ProductId
		result.ProductId = etchedId
		// Etched-only cards are sometimes listed with the same id twice
		if normalId != "" && normalId != etchedId {
			result.EtchedDuplicate = true
			result.NormalProductId = normalId
		}
	}

	return result
}
