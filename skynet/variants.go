package skynet

// Lettered collector numbers of the old sets with multiple arts per card,
// mapped to the art description used by the marketplace
var artVariants = map[string]map[string]map[string]string{
	"atq": {
		"Mishra's Factory": {
			"a": "Spring",
			"b": "Summer",
			"c": "Fall",
			"d": "Winter",
		},
		"Strip Mine": {
			"a": "No Horizon",
			"b": "Uneven Horizon",
			"c": "Tower",
			"d": "Even Horizon",
		},
		"Urza's Mine": {
			"a": "Pulley",
			"b": "Mouth",
			"c": "Clawed Sphere",
			"d": "Tower",
		},
		"Urza's Tower": {
			"a": "Forest",
			"b": "Shore",
			"c": "Plains",
			"d": "Mountains",
		},
		"Urza's Power Plant": {
			"a": "Sphere",
			"b": "Columns",
			"c": "Bug",
			"d": "Rock in Pot",
		},
	},
	"chr": {
		"Urza's Mine": {
			"a": "Mouth",
			"b": "Clawed Sphere",
			"c": "Pulley",
			"d": "Tower",
		},
		"Urza's Tower": {
			"a": "Forest",
			"b": "Plains",
			"c": "Mountains",
			"d": "Shore",
		},
		"Urza's Power Plant": {
			"a": "Rock in Pot",
			"b": "Columns",
			"c": "Bug",
			"d": "Sphere",
		},
	},
}

// Tamiyo's Journal is sold per printed date, with the plain printing
// carrying the first one
var tamiyoJournalDates = map[string]string{
	"a": "546",
	"b": "653",
	"c": "711",
	"d": "855",
	"e": "922",
}

const tamiyoJournalDefault = "434"

// Un-sets halves printed as separate cards
var uglHalves = map[string]string{
	"28": "Left",
	"29": "Right",
}

// Cards that need their collector number to tell the arts apart
var numberedArtCards = []struct {
	Name string
	Sets []string
}{
	{Name: "Teferi, Master of Time", Sets: []string{"m21"}},
	{Name: "Runo Stromkirk", Sets: []string{"vow"}},
	{Name: "Lightning Bolt", Sets: []string{"plist"}},
}
