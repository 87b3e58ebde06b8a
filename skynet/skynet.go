// Package skynet turns the upstream bulk card catalog into a flat list of
// sellable printings, each tagged with a display name, a style, a finish,
// a color bucket and the marketplace product it maps to.
package skynet

import (
	"fmt"
	"strings"
)

type LogCallbackFunc func(format string, a ...interface{})

// Style is the visual treatment of a printing.
type Style string

const (
	StyleNone       Style = ""
	StyleShowcase   Style = "Showcase"
	StyleExtended   Style = "Extended"
	StyleBorderless Style = "Borderless"
	StyleRetro      Style = "Retro"
	StylePhyrexian  Style = "Phyrexian"
	StyleJPAlt      Style = "JP Alt"
	StyleAltFoil    Style = "Alt Foil"
	StylePrerelease Style = "Prerelease"
	StylePromoPack  Style = "Promo Pack"
	StylePromo      Style = "Promo"
	StyleGodzilla   Style = "Godzilla"
	StyleDracula    Style = "Dracula"
)

// Styles whose printed name differs from the card name
func (s Style) usesFlavorName() bool {
	return s == StyleGodzilla || s == StyleDracula
}

// Finish is the physical surface treatment relevant to pricing.
type Finish string

const (
	FinishNone       Finish = ""
	FinishEtched     Finish = "Etched"
	FinishGilded     Finish = "Gilded"
	FinishTextured   Finish = "Textured"
	FinishNeonRed    Finish = "Neon Red"
	FinishNeonGreen  Finish = "Neon Green"
	FinishNeonBlue   Finish = "Neon Blue"
	FinishNeonYellow Finish = "Neon Yellow"
)

// Color is the display bucket of a printing.
type Color string

const (
	// Records whose color information is missing upstream
	ColorNone      Color = ""
	ColorWhite     Color = "White"
	ColorBlue      Color = "Blue"
	ColorBlack     Color = "Black"
	ColorRed       Color = "Red"
	ColorGreen     Color = "Green"
	ColorMulti     Color = "Multi"
	ColorColorless Color = "Colorless"
	ColorLand      Color = "Land"
)

// Printing is a single sellable entry of the catalog.
type Printing struct {
	SequenceId      int    `json:"sequence_id"`
	DisplayName     string `json:"display_name"`
	Name            string `json:"name"`
	SetCode         string `json:"set_code"`
	SetName         string `json:"set_name"`
	CollectorNumber string `json:"collector_number"`
	Rarity          string `json:"rarity"`
	Style           Style  `json:"style,omitempty"`
	Finish          Finish `json:"finish,omitempty"`
	Color           Color  `json:"color,omitempty"`
	ColorRank       int    `json:"color_rank"`
	ProductId       string `json:"product_id,omitempty"`
}

// Printing implements the Stringer interface
func (p Printing) String() string {
	return fmt.Sprintf("%d|%s|%s", p.SequenceId, p.DisplayName, p.ProductId)
}

// DisplayName builds the human-facing label of a printing, in the form
// "<name> (<set name>)[ (<style>)][ (<finish>)]".
func DisplayName(name, setName string, style Style, finish Finish) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" (")
	sb.WriteString(setName)
	sb.WriteString(")")
	if style != StyleNone {
		sb.WriteString(" (")
		sb.WriteString(string(style))
		sb.WriteString(")")
	}
	if finish != FinishNone {
		sb.WriteString(" (")
		sb.WriteString(string(finish))
		sb.WriteString(")")
	}
	return sb.String()
}
