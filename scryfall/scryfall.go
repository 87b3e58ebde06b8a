// Package scryfall describes the upstream bulk card catalog and provides
// the helpers needed to retrieve and stream it.
package scryfall

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

const (
	LayoutNormal           = "normal"
	LayoutSplit            = "split"
	LayoutFlip             = "flip"
	LayoutTransform        = "transform"
	LayoutModalDFC         = "modal_dfc"
	LayoutAdventure        = "adventure"
	LayoutReversible       = "reversible_card"
	LayoutToken            = "token"
	LayoutDoubleFacedToken = "double_faced_token"
	LayoutEmblem           = "emblem"
	LayoutArtSeries        = "art_series"

	FinishNonfoil  = "nonfoil"
	FinishFoil     = "foil"
	FinishEtched   = "etched"
	FinishGilded   = "gilded"
	FinishTextured = "textured"

	FrameEffectShowcase    = "showcase"
	FrameEffectExtendedArt = "extendedart"

	Frame1997 = "1997"

	BorderColorBorderless = "borderless"

	GamePaper = "paper"

	LanguageEnglish   = "en"
	LanguagePhyrexian = "ph"
	LanguageJapanese  = "ja"

	SetTypeMemorabilia = "memorabilia"
	SetTypeToken       = "token"
	SetTypePromo       = "promo"

	// Separator used between faces in names and type lines
	FaceSeparator = "//"

	SuffixSpecial = "★"

	releaseDateLayout = "2006-01-02"
)

// Face is one of the sub-records of a multi-faced card.
type Face struct {
	Name       string   `json:"name"`
	Colors     []string `json:"colors"`
	TypeLine   *string  `json:"type_line"`
	FlavorName *string  `json:"flavor_name"`
}

// Card is a single entry of the bulk data catalog. Fields that upstream may
// omit are pointers (scalars) or nil slices (lists), so that a missing field
// can be told apart from an empty one.
type Card struct {
	Id              string   `json:"id"`
	Name            string   `json:"name"`
	Lang            string   `json:"lang"`
	ReleasedAt      string   `json:"released_at"`
	Layout          string   `json:"layout"`
	SetCode         string   `json:"set"`
	SetName         string   `json:"set_name"`
	SetType         string   `json:"set_type"`
	CollectorNumber string   `json:"collector_number"`
	Rarity          string   `json:"rarity"`
	Colors          []string `json:"colors"`
	TypeLine        *string  `json:"type_line"`
	Frame           string   `json:"frame"`
	FrameEffects    []string `json:"frame_effects"`
	BorderColor     string   `json:"border_color"`
	Promo           bool     `json:"promo"`
	Variation       bool     `json:"variation"`
	Finishes        []string `json:"finishes"`
	Games           []string `json:"games"`
	CardFaces       []Face   `json:"card_faces"`
	FlavorName      *string  `json:"flavor_name"`

	TCGPlayerId       *int `json:"tcgplayer_id"`
	TCGPlayerEtchedId *int `json:"tcgplayer_etched_id"`
}

// Card implements the Stringer interface
func (c Card) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", c.Name, c.SetCode, c.CollectorNumber, c.Lang)
}

func (c *Card) HasGame(game string) bool {
	return slices.Contains(c.Games, game)
}

func (c *Card) HasFinish(fi string) bool {
	return slices.Contains(c.Finishes, fi)
}

func (c *Card) HasFrameEffect(fe string) bool {
	return slices.Contains(c.FrameEffects, fe)
}

// CollectorNumberInt parses the collector number as a plain integer.
// The second return value is false for numbers carrying any non-digit
// character, such as "12a" or "★5".
func (c *Card) CollectorNumberInt() (int, bool) {
	num, err := strconv.Atoi(c.CollectorNumber)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ReleaseDate parses the released_at field.
func (c *Card) ReleaseDate() (time.Time, bool) {
	date, err := time.Parse(releaseDateLayout, c.ReleasedAt)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// ProductId returns the marketplace id as a string, or an empty string
// if the id is not set.
func (c *Card) ProductId() string {
	if c.TCGPlayerId == nil {
		return ""
	}
	return strconv.Itoa(*c.TCGPlayerId)
}

// EtchedProductId returns the marketplace id of the etched version as a
// string, or an empty string if the id is not set.
func (c *Card) EtchedProductId() string {
	if c.TCGPlayerEtchedId == nil {
		return ""
	}
	return strconv.Itoa(*c.TCGPlayerEtchedId)
}
