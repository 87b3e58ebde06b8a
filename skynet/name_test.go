package skynet

import (
	"testing"

	"github.com/mtgban/go-skynet/scryfall"
)

var NameTests = []struct {
	Desc   string
	Name   string
	Set    string
	Number string
	Layout string
	Result string
}{
	{
		Desc:   "plain",
		Name:   "Lightning Bolt",
		Set:    "m10",
		Number: "146",
		Result: "Lightning Bolt",
	},
	{
		Desc:   "transform",
		Name:   "Delver of Secrets // Insectile Aberration",
		Set:    "isd",
		Number: "51",
		Layout: scryfall.LayoutTransform,
		Result: "Delver of Secrets",
	},
	{
		Desc:   "adventure",
		Name:   "Bonecrusher Giant // Stomp",
		Set:    "eld",
		Number: "115",
		Layout: scryfall.LayoutAdventure,
		Result: "Bonecrusher Giant",
	},
	{
		Desc:   "split keeps both halves",
		Name:   "Fire // Ice",
		Set:    "apc",
		Number: "128",
		Layout: scryfall.LayoutSplit,
		Result: "Fire // Ice",
	},
	{
		Desc:   "unstable lettered",
		Name:   "Very Cryptic Command",
		Set:    "ust",
		Number: "49d",
		Result: "Very Cryptic Command (49d)",
	},
	{
		Desc:   "unstable plain",
		Name:   "Sap Sucker",
		Set:    "ust",
		Number: "115",
		Result: "Sap Sucker",
	},
	{
		Desc:   "brothers yamazaki",
		Name:   "Brothers Yamazaki",
		Set:    "chk",
		Number: "160b",
		Result: "Brothers Yamazaki (160b)",
	},
	{
		Desc:   "lu bu first date",
		Name:   "Lu Bu, Master-at-Arms",
		Set:    "pptk",
		Number: "6a",
		Result: "Lu Bu, Master-at-Arms (April 29)",
	},
	{
		Desc:   "lu bu second date",
		Name:   "Lu Bu, Master-at-Arms",
		Set:    "pptk",
		Number: "6b",
		Result: "Lu Bu, Master-at-Arms (July 4)",
	},
	{
		Desc:   "secret lair",
		Name:   "Island",
		Set:    "sld",
		Number: "42",
		Result: "Island (42)",
	},
	{
		Desc:   "guildgate",
		Name:   "Azorius Guildgate",
		Set:    "rna",
		Number: "243",
		Result: "Azorius Guildgate (243)",
	},
	{
		Desc:   "guildgate elsewhere",
		Name:   "Azorius Guildgate",
		Set:    "rav",
		Number: "275",
		Result: "Azorius Guildgate",
	},
	{
		Desc:   "teferi",
		Name:   "Teferi, Master of Time",
		Set:    "m21",
		Number: "290",
		Result: "Teferi, Master of Time (290)",
	},
	{
		Desc:   "list bolt",
		Name:   "Lightning Bolt",
		Set:    "plist",
		Number: "M10-146",
		Result: "Lightning Bolt (M10-146)",
	},
	{
		Desc:   "left half",
		Name:   "B.F.M. (Big Furry Monster)",
		Set:    "ugl",
		Number: "28",
		Result: "B.F.M. (Big Furry Monster) (Left)",
	},
	{
		Desc:   "right half",
		Name:   "B.F.M. (Big Furry Monster)",
		Set:    "ugl",
		Number: "29",
		Result: "B.F.M. (Big Furry Monster) (Right)",
	},
	{
		Desc:   "tamiyo's journal default",
		Name:   "Tamiyo's Journal",
		Set:    "soi",
		Number: "265",
		Result: "Tamiyo's Journal (434)",
	},
	{
		Desc:   "tamiyo's journal lettered",
		Name:   "Tamiyo's Journal",
		Set:    "soi",
		Number: "265c",
		Result: "Tamiyo's Journal (711)",
	},
	{
		Desc:   "rules do not compose",
		Name:   "Tamiyo's Journal",
		Set:    "sld",
		Number: "1",
		Result: "Tamiyo's Journal (1)",
	},
	{
		Desc:   "antiquities factory",
		Name:   "Mishra's Factory",
		Set:    "atq",
		Number: "80d",
		Result: "Mishra's Factory (Winter)",
	},
	{
		Desc:   "antiquities mine",
		Name:   "Urza's Mine",
		Set:    "atq",
		Number: "83b",
		Result: "Urza's Mine (Mouth)",
	},
	{
		Desc:   "chronicles tower",
		Name:   "Urza's Tower",
		Set:    "chr",
		Number: "116b",
		Result: "Urza's Tower (Plains)",
	},
	{
		Desc:   "unknown art variant",
		Name:   "Strip Mine",
		Set:    "atq",
		Number: "82",
		Result: "Strip Mine",
	},
	{
		Desc:   "art variant of unlisted card",
		Name:   "Mishra's Factory",
		Set:    "chr",
		Number: "114a",
		Result: "Mishra's Factory",
	},
}

func TestNormalizeName(t *testing.T) {
	for _, tt := range NameTests {
		test := tt
		t.Run(test.Desc, func(t *testing.T) {
			t.Parallel()
			card := paperCard(test.Name, test.Set, test.Number)
			if test.Layout != "" {
				card.Layout = test.Layout
			}
			result := NormalizeName(&card)
			if result != test.Result {
				t.Errorf("FAIL %s: Expected '%s', got '%s'", card, test.Result, result)
				return
			}
			t.Log("PASS:", test.Desc)
		})
	}
}

func TestFinalName(t *testing.T) {
	card := paperCard("Zilortha, Strength Incarnate", "iko", "275")
	card.FlavorName = ptr("Godzilla, King of the Monsters")

	name := FinalName(&card, StyleGodzilla)
	if name != "Zilortha, Strength Incarnate (Godzilla, King of the Monsters)" {
		t.Errorf("FAIL: Unexpected name with flavor: %s", name)
		return
	}

	name = FinalName(&card, StyleBorderless)
	if name != "Zilortha, Strength Incarnate" {
		t.Errorf("FAIL: Flavor name used for a regular style: %s", name)
		return
	}

	card.FlavorName = nil
	name = FinalName(&card, StyleGodzilla)
	if name != "Zilortha, Strength Incarnate" {
		t.Errorf("FAIL: Missing flavor name not handled: %s", name)
		return
	}

	t.Log("PASS: FinalName")
}
