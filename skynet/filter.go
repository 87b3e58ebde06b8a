package skynet

import (
	"slices"
	"strings"

	"github.com/mtgban/go-skynet/scryfall"
)

var excludedSetTypes = []string{
	scryfall.SetTypeMemorabilia,
	scryfall.SetTypeToken,
}

var excludedSets = []string{
	// Heroes of the Realm and other oversized oddities
	"phuk",
	"olgc",
	"ovnt",
}

var excludedLayouts = []string{
	scryfall.LayoutToken,
	scryfall.LayoutDoubleFacedToken,
	scryfall.LayoutEmblem,
	scryfall.LayoutArtSeries,
}

// Cards flagged as variation that are sold as separate products
var variationExceptions = []string{
	"Tamiyo's Journal",
}

// languageException describes a set of non-English printings that are
// sold as their own products.
type languageException struct {
	Lang string
	Sets []string

	// Only numbered printings from this number onwards
	MinNumber int

	// Only printings whose collector number carries the special marker
	Special bool
}

var languageExceptions = []languageException{
	// Japanese Mystical Archive
	{Lang: scryfall.LanguageJapanese, Sets: []string{"sta"}, MinNumber: 64},
	// Japanese Godzilla series
	{Lang: scryfall.LanguageJapanese, Sets: []string{"iko"}, MinNumber: 385},
	// Japanese alternate art planeswalkers
	{Lang: scryfall.LanguageJapanese, Sets: []string{"war", "pwar"}, Special: true},
}

func (le *languageException) matches(card *scryfall.Card) bool {
	if card.Lang != le.Lang || !slices.Contains(le.Sets, card.SetCode) {
		return false
	}
	if le.Special && !strings.Contains(card.CollectorNumber, scryfall.SuffixSpecial) {
		return false
	}
	if le.MinNumber > 0 {
		num, ok := card.CollectorNumberInt()
		if !ok || num < le.MinNumber {
			return false
		}
	}
	return true
}

// IsInScope reports whether a catalog record represents a sellable paper
// printing. Non-English printings are only kept when explicitly allowed,
// in which case the remaining checks are skipped.
func IsInScope(card *scryfall.Card) bool {
	// An empty game list is treated as paper
	if len(card.Games) > 0 && !card.HasGame(scryfall.GamePaper) {
		return false
	}

	switch card.Lang {
	case scryfall.LanguageEnglish, scryfall.LanguagePhyrexian:
	default:
		for i := range languageExceptions {
			if languageExceptions[i].matches(card) {
				return true
			}
		}
		return false
	}

	if card.TypeLine != nil && strings.Contains(*card.TypeLine, "Basic") &&
		card.Lang != scryfall.LanguagePhyrexian {
		return false
	}

	if slices.Contains(excludedSetTypes, card.SetType) ||
		slices.Contains(excludedSets, card.SetCode) ||
		slices.Contains(excludedLayouts, card.Layout) {
		return false
	}

	if card.Variation && !slices.Contains(variationExceptions, card.Name) {
		return false
	}

	return true
}
