package player

import (
	"strconv"
	"strings"
)

// Column aliases accepted in spreadsheet and CSV rows, matched case-insensitively.
var columnAliases = map[string][]string{
	"name":        {"name", "player"},
	"position":    {"position", "pos"},
	"selected":    {"selected", "playing"},
	"pace":        {"pac", "pace"},
	"shooting":    {"sho", "shooting"},
	"passing":     {"pas", "passing"},
	"dribbling":   {"dri", "dribbling"},
	"defense":     {"def", "defense", "defending"},
	"physicality": {"phy", "physicality", "physical"},
	"stars":       {"starrating", "star_rating", "stars"},
}

// Record is one raw roster row keyed by column header.
type Record map[string]string

func (r Record) lookup(field string) (string, bool) {
	for _, alias := range columnAliases[field] {
		for key, value := range r {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return strings.TrimSpace(value), true
			}
		}
	}
	return "", false
}

// FromRecord converts a raw row into a normalized Player without an ID.
// Rows without a name report false. A missing Selected column means not selected.
func FromRecord(r Record) (Player, bool) {
	name, _ := r.lookup("name")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return Player{}, false
	}

	rawPos, _ := r.lookup("position")
	pos, _ := ParsePosition(rawPos)

	p := Player{
		Name:     name,
		Position: pos,
		Attributes: Attributes{
			Pace:        parseAttribute(r, "pace"),
			Shooting:    parseAttribute(r, "shooting"),
			Passing:     parseAttribute(r, "passing"),
			Dribbling:   parseAttribute(r, "dribbling"),
			Defense:     parseAttribute(r, "defense"),
			Physicality: parseAttribute(r, "physicality"),
		},
		StarRating: parseFloat(r, "stars", DefaultStarRating),
	}
	if raw, ok := r.lookup("selected"); ok {
		p.Selected = ParseBool(raw)
	}

	return Normalize(p), true
}

// ToRecord renders p with the canonical spreadsheet headers.
func ToRecord(p Player) Record {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return Record{
		"Name":       p.Name,
		"Position":   string(p.Position),
		"Selected":   strconv.FormatBool(p.Selected),
		"PAC":        f(p.Attributes.Pace),
		"SHO":        f(p.Attributes.Shooting),
		"PAS":        f(p.Attributes.Passing),
		"DRI":        f(p.Attributes.Dribbling),
		"DEF":        f(p.Attributes.Defense),
		"PHY":        f(p.Attributes.Physicality),
		"StarRating": f(p.StarRating),
	}
}

// RecordHeaders is the canonical column order for exports.
var RecordHeaders = []string{"Name", "Position", "Selected", "PAC", "SHO", "PAS", "DRI", "DEF", "PHY", "StarRating"}

func parseAttribute(r Record, field string) float64 {
	return parseFloat(r, field, DefaultAttribute)
}

func parseFloat(r Record, field string, fallback float64) float64 {
	raw, ok := r.lookup(field)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// ParseBool accepts the spreadsheet spellings of a checkbox.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "x", "✓", "✅":
		return true
	default:
		return false
	}
}
