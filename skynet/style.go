package skynet

import (
	"slices"
	"strings"
	"time"

	"github.com/mtgban/go-skynet/scryfall"
)

// Printings in the old frame released after this date are retro reprints
var retroFrameCutoff = time.Date(2003, time.July, 28, 0, 0, 0, 0, time.UTC)

// Sets using the old frame for reasons other than nostalgia
var retroExcludedSets = []string{
	"unh",
	"und",
	"plist",
	"phed",
	"mb1",
	"fmb1",
}

// Alternate foils whose collector number carries no marker
var altFoilExceptions = []struct {
	Name   string
	Set    string
	Number string
}{
	{Name: "Will Kenrith", Set: "bbd", Number: "255"},
	{Name: "Rowan Kenrith", Set: "bbd", Number: "256"},
	{Name: "Kaya, Ghost Assassin", Set: "cn2", Number: "222"},
}

// Promos that upstream does not flag as such
var promoExceptions = []struct {
	Name   string
	Number string
}{
	{Name: "Dragonsguard Elite", Number: "376"},
}

// styleRule decides the style of the records it matches. It receives the
// style decided so far by the previous rules.
type styleRule struct {
	Name  string
	Apply func(card *scryfall.Card, current Style) (Style, bool)
}

// Evaluated in order, a later match overrides an earlier one
var styleRules = []styleRule{
	{
		Name: "frame effects",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			if card.HasFrameEffect(scryfall.FrameEffectShowcase) {
				return StyleShowcase, true
			}
			if card.HasFrameEffect(scryfall.FrameEffectExtendedArt) {
				return StyleExtended, true
			}
			return current, false
		},
	},
	{
		Name: "retro frame",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			if card.Frame != scryfall.Frame1997 || slices.Contains(retroExcludedSets, card.SetCode) {
				return current, false
			}
			date, ok := card.ReleaseDate()
			if !ok || !date.After(retroFrameCutoff) {
				return current, false
			}
			return StyleRetro, true
		},
	},
	{
		Name: "borderless",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			return StyleBorderless, card.BorderColor == scryfall.BorderColorBorderless
		},
	},
	{
		Name: "alternate foil",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			return StyleAltFoil, isAltFoil(card)
		},
	},
	{
		Name: "stamped promos",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			switch {
			case strings.HasSuffix(card.CollectorNumber, "s"):
				return StylePrerelease, true
			case strings.HasSuffix(card.CollectorNumber, "p"):
				return StylePromoPack, true
			}
			return current, false
		},
	},
	{
		Name: "phyrexian",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			return StylePhyrexian, card.Lang == scryfall.LanguagePhyrexian
		},
	},
	{
		Name:  "regional alternates",
		Apply: regionalStyle,
	},
	{
		Name: "promo catch-all",
		Apply: func(card *scryfall.Card, current Style) (Style, bool) {
			if current != StyleNone && current != StyleExtended {
				return current, false
			}
			if card.Promo && card.SetType != scryfall.SetTypePromo {
				return StylePromo, true
			}
			for _, entry := range promoExceptions {
				if card.Name == entry.Name && card.CollectorNumber == entry.Number {
					return StylePromo, true
				}
			}
			return current, false
		},
	},
}

func isAltFoil(card *scryfall.Card) bool {
	for _, entry := range altFoilExceptions {
		if card.Name == entry.Name && card.SetCode == entry.Set && card.CollectorNumber == entry.Number {
			return true
		}
	}

	if !strings.Contains(card.CollectorNumber, scryfall.SuffixSpecial) || card.Lang == scryfall.LanguageJapanese {
		return false
	}
	if card.TypeLine != nil && strings.Contains(*card.TypeLine, "Scheme") {
		return false
	}
	return !strings.Contains(card.SetName, "Promo") && !strings.Contains(card.SetType, "promo")
}

// Japanese alternate arts first, then the collector number corrections of
// the sets with a crossover series
func regionalStyle(card *scryfall.Card, current Style) (Style, bool) {
	if card.Lang == scryfall.LanguageJapanese &&
		(strings.Contains(card.CollectorNumber, scryfall.SuffixSpecial) || card.SetCode == "sta") {
		return StyleJPAlt, true
	}

	num, numeric := card.CollectorNumberInt()
	switch card.SetCode {
	case "iko":
		if card.CollectorNumber == "275" || (numeric && num >= 371) {
			return StyleGodzilla, true
		}
		if current == StyleBorderless && numeric && num >= 279 && num <= 313 {
			return StyleShowcase, true
		}
	case "vow":
		if card.CollectorNumber == "403" || (numeric && num >= 329 && num <= 345) {
			return StyleDracula, true
		}
	}
	return current, false
}

// ClassifyStyle derives the visual treatment of a record.
func ClassifyStyle(card *scryfall.Card) Style {
	style := StyleNone
	for _, rule := range styleRules {
		result, ok := rule.Apply(card, style)
		if ok {
			style = result
		}
	}
	return style
}
