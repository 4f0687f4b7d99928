package player

import "math"

const (
	DefaultAttribute  = 70.0
	DefaultStarRating = 3.0
	MinStarRating     = 1.0
	MaxStarRating     = 5.0
	MaxAttribute      = 99.0
)

type weights struct {
	pace, shooting, passing, dribbling, defense, physicality float64
}

var (
	forwardWeights  = weights{pace: 0.20, shooting: 0.25, passing: 0.15, dribbling: 0.20, defense: 0.10, physicality: 0.10}
	defenderWeights = weights{pace: 0.15, shooting: 0.05, passing: 0.15, dribbling: 0.05, defense: 0.35, physicality: 0.25}
	defaultWeights  = weights{pace: 0.15, shooting: 0.15, passing: 0.25, dribbling: 0.20, defense: 0.15, physicality: 0.10}
)

func weightsFor(pos Position) weights {
	switch pos {
	case PositionForward:
		return forwardWeights
	case PositionDefender:
		return defenderWeights
	default:
		return defaultWeights
	}
}

// Normalize applies the default policy: missing or non-finite attributes
// become 70 and are clamped to 0..99, a star rating outside 1..5 becomes 3,
// and an unknown position becomes MID.
func Normalize(p Player) Player {
	p.Attributes = Attributes{
		Pace:        normalizeAttribute(p.Attributes.Pace),
		Shooting:    normalizeAttribute(p.Attributes.Shooting),
		Passing:     normalizeAttribute(p.Attributes.Passing),
		Dribbling:   normalizeAttribute(p.Attributes.Dribbling),
		Defense:     normalizeAttribute(p.Attributes.Defense),
		Physicality: normalizeAttribute(p.Attributes.Physicality),
	}
	p.StarRating = normalizeStars(p.StarRating)
	if _, ok := AllPositions[p.Position]; !ok {
		p.Position = PositionMidfielder
	}
	return p
}

func normalizeAttribute(v float64) float64 {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return DefaultAttribute
	case v < 0:
		return 0
	case v > MaxAttribute:
		return MaxAttribute
	default:
		return v
	}
}

func normalizeStars(v float64) float64 {
	if math.IsNaN(v) || v < MinStarRating || v > MaxStarRating {
		return DefaultStarRating
	}
	return v
}

// ComputePower is the overall rating: 60% position-weighted skill average,
// 40% star score (45 + 10*stars), rounded to one decimal.
func ComputePower(p Player) float64 {
	p = Normalize(p)
	w := weightsFor(p.Position)
	a := p.Attributes
	skill := a.Pace*w.pace +
		a.Shooting*w.shooting +
		a.Passing*w.passing +
		a.Dribbling*w.dribbling +
		a.Defense*w.defense +
		a.Physicality*w.physicality
	star := 45 + 10*p.StarRating
	return Round1(skill*0.6 + star*0.4)
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PowerBounds returns the lowest and highest Power any normalized player can get.
func PowerBounds() (float64, float64) {
	low := Round1(0*0.6 + (45+10*MinStarRating)*0.4)
	high := Round1(MaxAttribute*0.6 + (45+10*MaxStarRating)*0.4)
	return low, high
}
