package formation

import (
	"strings"
)

// Side selects which half of the pitch a team defends.
type Side string

const (
	SideRed  Side = "RED"
	SideBlue Side = "BLUE"
)

// Point is a pitch coordinate in percent of length (X) and width (Y).
type Point struct {
	X int
	Y int
}

// Format is a small-sided preset. Slots are ordered DEF, MID, FWD.
type Format struct {
	Name string
	DEF  int
	MID  int
	FWD  int

	red  []Point
	blue []Point
}

func (f Format) Capacity() int {
	return f.DEF + f.MID + f.FWD
}

// Coordinates returns the slot positions for one side, in slot order.
func (f Format) Coordinates(side Side) []Point {
	if side == SideBlue {
		return append([]Point(nil), f.blue...)
	}
	return append([]Point(nil), f.red...)
}

const DefaultFormat = "9v9"

var presets = map[string]Format{
	"9v9": {
		Name: "9v9", DEF: 3, MID: 4, FWD: 2,
		red:  []Point{{10, 20}, {10, 50}, {10, 80}, {30, 15}, {30, 38}, {30, 62}, {30, 85}, {45, 35}, {45, 65}},
		blue: []Point{{90, 20}, {90, 50}, {90, 80}, {70, 15}, {70, 38}, {70, 62}, {70, 85}, {55, 35}, {55, 65}},
	},
	"7v7": {
		Name: "7v7", DEF: 2, MID: 3, FWD: 2,
		red:  []Point{{10, 30}, {10, 70}, {30, 20}, {30, 50}, {30, 80}, {45, 35}, {45, 65}},
		blue: []Point{{90, 30}, {90, 70}, {70, 20}, {70, 50}, {70, 80}, {55, 35}, {55, 65}},
	},
	"6v6": {
		Name: "6v6", DEF: 2, MID: 2, FWD: 2,
		red:  []Point{{10, 30}, {10, 70}, {30, 30}, {30, 70}, {45, 35}, {45, 65}},
		blue: []Point{{90, 30}, {90, 70}, {70, 30}, {70, 70}, {55, 35}, {55, 65}},
	},
	"5v5": {
		Name: "5v5", DEF: 2, MID: 1, FWD: 2,
		red:  []Point{{10, 30}, {10, 70}, {30, 50}, {45, 30}, {45, 70}},
		blue: []Point{{90, 30}, {90, 70}, {70, 50}, {55, 30}, {55, 70}},
	},
}

// Names lists the supported presets, largest first.
func Names() []string {
	return []string{"9v9", "7v7", "6v6", "5v5"}
}

// Lookup accepts "7v7", "7 vs 7" or "7" and reports whether the preset exists.
func Lookup(raw string) (Format, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	key = strings.ReplaceAll(key, "vs", "v")
	if key != "" && !strings.Contains(key, "v") {
		key = key + "v" + key
	}
	f, ok := presets[key]
	return f, ok
}

// Resolve is Lookup with a fallback to the 9v9 preset for unknown names.
func Resolve(raw string) Format {
	if f, ok := Lookup(raw); ok {
		return f
	}
	return presets[DefaultFormat]
}
