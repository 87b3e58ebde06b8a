package skynet

import (
	"strings"

	"github.com/mtgban/go-skynet/scryfall"
)

var colorCodes = map[string]Color{
	"W": ColorWhite,
	"U": ColorBlue,
	"B": ColorBlack,
	"R": ColorRed,
	"G": ColorGreen,
}

var colorRanks = map[Color]int{
	ColorWhite:     1,
	ColorBlue:      2,
	ColorBlack:     3,
	ColorRed:       4,
	ColorGreen:     5,
	ColorMulti:     6,
	ColorColorless: 7,
	ColorLand:      8,
}

// Cards sorted in a different bucket than their color
var colorRankOverrides = map[string]int{
	"Dryad Arbor": 8,
}

// ColorRank returns the sort rank of a color, 0 for unknown colors.
func ColorRank(color Color) int {
	return colorRanks[color]
}

// Color information of the front face
func frontColors(card *scryfall.Card) []string {
	switch card.Layout {
	case scryfall.LayoutTransform, scryfall.LayoutModalDFC:
		if len(card.CardFaces) == 0 {
			return nil
		}
		return card.CardFaces[0].Colors
	}
	return card.Colors
}

func frontTypeLine(card *scryfall.Card) (string, bool) {
	if card.TypeLine != nil {
		return *card.TypeLine, true
	}
	if len(card.CardFaces) > 0 && card.CardFaces[0].TypeLine != nil {
		return *card.CardFaces[0].TypeLine, true
	}
	return "", false
}

// ClassifyColor derives the color bucket of a record and its sort rank.
// Records without any color information are left unclassified.
func ClassifyColor(card *scryfall.Card) (Color, int) {
	colors := frontColors(card)

	color := ColorNone
	switch {
	case colors == nil:
	case len(colors) == 0:
		color = ColorColorless
		typeLine, found := frontTypeLine(card)
		if found {
			typeLine, _, _ = strings.Cut(strings.ToLower(typeLine), " "+scryfall.FaceSeparator+" ")
			if strings.Contains(typeLine, "land") {
				color = ColorLand
			}
		}
	case len(colors) > 1:
		color = ColorMulti
	default:
		color = colorCodes[colors[0]]
	}

	rank := ColorRank(color)
	override, found := colorRankOverrides[card.Name]
	if found {
		rank = override
	}

	return color, rank
}
