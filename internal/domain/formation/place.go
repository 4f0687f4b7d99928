package formation

import "github.com/riskibarqy/smfc-manager/internal/domain/player"

// Line is a formation row. Goalkeepers play in the DEF line.
type Line string

const (
	LineDEF Line = "DEF"
	LineMID Line = "MID"
	LineFWD Line = "FWD"
)

// backfillOrder is tried for players whose own line is full.
var backfillOrder = []Line{LineDEF, LineFWD, LineMID}

// Slot is a filled on-pitch position.
type Slot struct {
	Player   player.Player
	Line     Line
	Point    Point
	OutOfPos bool
}

type Placement struct {
	Format      string
	Side        Side
	OnPitch     []Slot
	Substitutes []player.Player
}

func lineFor(pos player.Position) Line {
	switch pos {
	case player.PositionGoalkeeper, player.PositionDefender:
		return LineDEF
	case player.PositionForward:
		return LineFWD
	default:
		return LineMID
	}
}

// Place maps one team onto a preset. Pass one fills each player's own line in
// input order, pass two backfills leftovers DEF then FWD then MID, and anyone
// still unplaced is a substitute. Order within OnPitch follows slot order.
func Place(players []player.Player, f Format, side Side) Placement {
	capacity := map[Line]int{LineDEF: f.DEF, LineMID: f.MID, LineFWD: f.FWD}
	filled := map[Line][]Slot{}

	var overflow []player.Player
	for _, p := range players {
		line := lineFor(p.Position)
		if len(filled[line]) < capacity[line] {
			filled[line] = append(filled[line], Slot{Player: p, Line: line})
			continue
		}
		overflow = append(overflow, p)
	}

	var subs []player.Player
	for _, p := range overflow {
		placed := false
		for _, line := range backfillOrder {
			if len(filled[line]) < capacity[line] {
				filled[line] = append(filled[line], Slot{Player: p, Line: line, OutOfPos: true})
				placed = true
				break
			}
		}
		if !placed {
			subs = append(subs, p)
		}
	}

	coords := f.Coordinates(side)
	out := Placement{Format: f.Name, Side: side, Substitutes: subs}
	offset := map[Line]int{LineDEF: 0, LineMID: f.DEF, LineFWD: f.DEF + f.MID}
	for _, line := range []Line{LineDEF, LineMID, LineFWD} {
		for i, slot := range filled[line] {
			if idx := offset[line] + i; idx < len(coords) {
				slot.Point = coords[idx]
			}
			out.OnPitch = append(out.OnPitch, slot)
		}
	}
	return out
}
