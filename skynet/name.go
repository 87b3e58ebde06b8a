package skynet

import (
	"slices"
	"strings"

	"github.com/mtgban/go-skynet/scryfall"
)

// Layouts whose upstream name lists every face, of which only the first
// one is kept
var frontFaceLayouts = []string{
	scryfall.LayoutTransform,
	scryfall.LayoutFlip,
	scryfall.LayoutAdventure,
	scryfall.LayoutModalDFC,
	scryfall.LayoutReversible,
}

// Letters that upstream appends to the collector number of cards sharing
// the same number
const variantLetters = "abcdef"

// nameRule appends a disambiguation suffix to the name of the records
// it matches.
type nameRule struct {
	Name   string
	Match  func(card *scryfall.Card, name string) bool
	Suffix func(card *scryfall.Card, name string) string
}

// Checked in order, only the first match applies
var nameRules = []nameRule{
	{
		Name: "lettered variants",
		Match: func(card *scryfall.Card, name string) bool {
			return hasVariantLetter(card.CollectorNumber) &&
				(card.SetCode == "ust" || card.SetCode == "dkm" || name == "Brothers Yamazaki")
		},
		Suffix: numberSuffix,
	},
	{
		Name: "lu bu prerelease dates",
		Match: func(card *scryfall.Card, name string) bool {
			return hasVariantLetter(card.CollectorNumber) &&
				strings.Contains(name, "Lu Bu") && card.SetCode == "pptk"
		},
		Suffix: func(card *scryfall.Card, name string) string {
			if strings.Contains(card.CollectorNumber, "a") {
				return " (April 29)"
			}
			return " (July 4)"
		},
	},
	{
		Name: "collector number stapling",
		Match: func(card *scryfall.Card, name string) bool {
			if card.SetCode == "sld" {
				return true
			}
			if strings.Contains(name, "Guildgate") && (card.SetCode == "rna" || card.SetCode == "grn") {
				return true
			}
			for _, entry := range numberedArtCards {
				if name == entry.Name && slices.Contains(entry.Sets, card.SetCode) {
					return true
				}
			}
			return false
		},
		Suffix: numberSuffix,
	},
	{
		Name: "split halves",
		Match: func(card *scryfall.Card, name string) bool {
			_, found := uglHalves[card.CollectorNumber]
			return card.SetCode == "ugl" && found
		},
		Suffix: func(card *scryfall.Card, name string) string {
			return " (" + uglHalves[card.CollectorNumber] + ")"
		},
	},
	{
		Name: "tamiyo's journal dates",
		Match: func(card *scryfall.Card, name string) bool {
			return name == "Tamiyo's Journal"
		},
		Suffix: func(card *scryfall.Card, name string) string {
			date := tamiyoJournalDefault
			letter, found := firstLetter(card.CollectorNumber, "abcde")
			if found {
				date = tamiyoJournalDates[letter]
			}
			return " (" + date + ")"
		},
	},
	{
		Name: "art variants",
		Match: func(card *scryfall.Card, name string) bool {
			_, found := artVariant(card, name)
			return found
		},
		Suffix: func(card *scryfall.Card, name string) string {
			variant, _ := artVariant(card, name)
			return " (" + variant + ")"
		},
	},
}

func numberSuffix(card *scryfall.Card, name string) string {
	return " (" + card.CollectorNumber + ")"
}

func hasVariantLetter(number string) bool {
	return strings.ContainsAny(number, variantLetters)
}

// Return the first of the letters found in the collector number, in the
// order they are listed
func firstLetter(number, letters string) (string, bool) {
	for _, letter := range letters {
		if strings.ContainsRune(number, letter) {
			return string(letter), true
		}
	}
	return "", false
}

func artVariant(card *scryfall.Card, name string) (string, bool) {
	variants, found := artVariants[card.SetCode][name]
	if !found {
		return "", false
	}
	letter, found := firstLetter(card.CollectorNumber, "abcd")
	if !found {
		return "", false
	}
	return variants[letter], true
}

// baseName returns the name of the front face for layouts that list more
// than one face.
func baseName(card *scryfall.Card) string {
	if slices.Contains(frontFaceLayouts, card.Layout) {
		name, _, _ := strings.Cut(card.Name, scryfall.FaceSeparator)
		return strings.TrimSpace(name)
	}
	return card.Name
}

// NormalizeName derives the canonical name of a record, with any suffix
// needed to tell apart printings that upstream lists under the same name.
func NormalizeName(card *scryfall.Card) string {
	name := baseName(card)
	for _, rule := range nameRules {
		if rule.Match(card, name) {
			return name + rule.Suffix(card, name)
		}
	}
	return name
}

// FinalName is NormalizeName completed with the printed flavor name for
// the styles that carry one.
func FinalName(card *scryfall.Card, style Style) string {
	name := NormalizeName(card)
	if style.usesFlavorName() && card.FlavorName != nil && *card.FlavorName != "" {
		name += " (" + *card.FlavorName + ")"
	}
	return name
}
