package matchrecord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

// Winner is the recorded outcome of a fixture.
type Winner string

const (
	WinnerBlue Winner = "Blue"
	WinnerRed  Winner = "Red"
	WinnerDraw Winner = "Draw"
)

// DateLayout is the storage format of MatchRecord.Date.
const DateLayout = "2006-01-02"

var ErrWinnerMismatch = errors.New("winner does not match the score")

// MatchRecord is one logged fixture. Records are append-only.
type MatchRecord struct {
	ID        string
	Date      string
	Time      string
	Venue     string
	ScoreBlue int
	ScoreRed  int
	Winner    Winner
	TeamBlue  []string
	TeamRed   []string
	CreatedAt time.Time
}

// DeriveWinner maps a score line to Blue, Red or Draw.
func DeriveWinner(scoreBlue, scoreRed int) Winner {
	switch {
	case scoreBlue > scoreRed:
		return WinnerBlue
	case scoreRed > scoreBlue:
		return WinnerRed
	default:
		return WinnerDraw
	}
}

// ParseWinner is case-insensitive; blank input reports false.
func ParseWinner(raw string) (Winner, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "blue":
		return WinnerBlue, true
	case "red":
		return WinnerRed, true
	case "draw":
		return WinnerDraw, true
	default:
		return "", false
	}
}

// Outcome returns the winner, deriving it from the score when unset.
func (m MatchRecord) Outcome() Winner {
	if w, ok := ParseWinner(string(m.Winner)); ok {
		return w
	}
	return DeriveWinner(m.ScoreBlue, m.ScoreRed)
}

// PlayedOn parses Date; unparsable dates sort as the zero time.
func (m MatchRecord) PlayedOn() time.Time {
	t, err := time.Parse(DateLayout, m.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (m MatchRecord) Validate() error {
	if strings.TrimSpace(m.Date) == "" {
		return fmt.Errorf("match date is required")
	}
	if m.ScoreBlue < 0 || m.ScoreRed < 0 {
		return fmt.Errorf("scores must be non-negative")
	}
	if m.Winner != DeriveWinner(m.ScoreBlue, m.ScoreRed) {
		return fmt.Errorf("%w: %s for %d-%d", ErrWinnerMismatch, m.Winner, m.ScoreBlue, m.ScoreRed)
	}
	if len(m.TeamBlue) == 0 || len(m.TeamRed) == 0 {
		return fmt.Errorf("both team lists are required")
	}
	return nil
}

// Normalize cleans and de-duplicates both team lists and sets Winner from the score.
func Normalize(m MatchRecord) MatchRecord {
	m.Venue = strings.TrimSpace(m.Venue)
	m.TeamBlue = normalizeNames(m.TeamBlue)
	m.TeamRed = normalizeNames(m.TeamRed)
	m.Winner = DeriveWinner(m.ScoreBlue, m.ScoreRed)
	return m
}

func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.Join(strings.Fields(player.CleanName(raw)), " ")
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SplitNames parses a comma-joined team list, trimming blanks.
func SplitNames(joined string) []string {
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}
