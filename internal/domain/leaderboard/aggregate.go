package leaderboard

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
)

const (
	DefaultMinMatches = 2
	FormWindow        = 5
)

// Result is one player's outcome in one match.
type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultDraw Result = "D"
)

var formIcons = map[Result]string{
	ResultWin:  "✅",
	ResultLoss: "❌",
	ResultDraw: "➖",
}

// Entry is one leaderboard row.
type Entry struct {
	Rank       int
	Name       string
	Matches    int
	Wins       int
	Losses     int
	Draws      int
	WinPercent int
	Form       []Result
}

// FormIcons renders the last five results, oldest first.
func (e Entry) FormIcons() string {
	recent := e.Form
	if len(recent) > FormWindow {
		recent = recent[len(recent)-FormWindow:]
	}
	icons := make([]string, 0, len(recent))
	for _, r := range recent {
		icons = append(icons, formIcons[r])
	}
	return strings.Join(icons, " ")
}

type Options struct {
	MinMatches int
}

// Aggregate builds the table from records in log order. Only names equal to
// an official roster name (ignoring surrounding spaces) are counted, so
// guests never appear. Rows below MinMatches are dropped and the
// rest are ranked by win percentage, then wins, then name.
func Aggregate(records []matchrecord.MatchRecord, officialNames []string, opts Options) []Entry {
	minMatches := opts.MinMatches
	if minMatches <= 0 {
		minMatches = DefaultMinMatches
	}

	official := make(map[string]struct{}, len(officialNames))
	for _, name := range officialNames {
		if name = strings.TrimSpace(name); name != "" {
			official[name] = struct{}{}
		}
	}

	stats := map[string]*Entry{}
	update := func(raw string, side matchrecord.Winner, outcome matchrecord.Winner) {
		name := strings.TrimSpace(raw)
		if _, ok := official[name]; !ok {
			return
		}
		e, ok := stats[name]
		if !ok {
			e = &Entry{Name: name}
			stats[name] = e
		}
		e.Matches++
		switch outcome {
		case side:
			e.Wins++
			e.Form = append(e.Form, ResultWin)
		case matchrecord.WinnerDraw:
			e.Draws++
			e.Form = append(e.Form, ResultDraw)
		default:
			e.Losses++
			e.Form = append(e.Form, ResultLoss)
		}
	}

	for _, m := range records {
		outcome := m.Outcome()
		for _, name := range m.TeamBlue {
			update(name, matchrecord.WinnerBlue, outcome)
		}
		for _, name := range m.TeamRed {
			update(name, matchrecord.WinnerRed, outcome)
		}
	}

	out := make([]Entry, 0, len(stats))
	for _, e := range stats {
		if e.Matches < minMatches {
			continue
		}
		e.WinPercent = int(math.RoundToEven(float64(e.Wins) / float64(e.Matches) * 100))
		out = append(out, *e)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.WinPercent != b.WinPercent {
			return a.WinPercent > b.WinPercent
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Name < b.Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
