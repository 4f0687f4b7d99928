package player

import (
	"fmt"
	"strings"
)

// Position is the on-pitch role used for scoring weights and draft buckets.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// DraftOrder is the bucket order walked by the balancer.
var DraftOrder = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition maps free text to a Position. Unknown input yields MID and false.
func ParsePosition(raw string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GK", "GKP", "GOALKEEPER", "KEEPER":
		return PositionGoalkeeper, true
	case "DEF", "DF", "DEFENDER":
		return PositionDefender, true
	case "MID", "MF", "MIDFIELDER":
		return PositionMidfielder, true
	case "FWD", "FW", "ST", "FORWARD", "STRIKER":
		return PositionForward, true
	default:
		return PositionMidfielder, false
	}
}

// Rank orders positions GK < DEF < MID < FWD.
func (p Position) Rank() int {
	for i, pos := range DraftOrder {
		if pos == p {
			return i
		}
	}
	return len(DraftOrder)
}

// Attributes are the six skill ratings, nominally 0..99.
type Attributes struct {
	Pace        float64
	Shooting    float64
	Passing     float64
	Dribbling   float64
	Defense     float64
	Physicality float64
}

// Player is a roster member or a synthesized guest.
type Player struct {
	ID         string
	Name       string
	Position   Position
	Attributes Attributes
	StarRating float64
	Selected   bool
	Guest      bool
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.StarRating < MinStarRating || p.StarRating > MaxStarRating {
		return fmt.Errorf("star rating must be between %v and %v", MinStarRating, MaxStarRating)
	}

	return nil
}
