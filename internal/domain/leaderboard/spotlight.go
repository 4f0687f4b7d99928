package leaderboard

// Spotlight names the holders of one headline stat. Ties share the spotlight.
type Spotlight struct {
	Title string
	Value int
	Names []string
}

type Spotlights struct {
	Commitment Spotlight
	Star       Spotlight
	Losses     Spotlight
}

// Highlight derives the headline stats from a ranked table. It reports false for an empty table.
func Highlight(entries []Entry) (Spotlights, bool) {
	if len(entries) == 0 {
		return Spotlights{}, false
	}

	top := entries[0]
	return Spotlights{
		Commitment: maxBy("commitment", entries, func(e Entry) int { return e.Matches }),
		Star:       Spotlight{Title: "star", Value: top.WinPercent, Names: []string{top.Name}},
		Losses:     maxBy("losses", entries, func(e Entry) int { return e.Losses }),
	}, true
}

func maxBy(title string, entries []Entry, value func(Entry) int) Spotlight {
	s := Spotlight{Title: title, Value: value(entries[0])}
	for _, e := range entries[1:] {
		if v := value(e); v > s.Value {
			s.Value = v
		}
	}
	for _, e := range entries {
		if value(e) == s.Value {
			s.Names = append(s.Names, e.Name)
		}
	}
	return s
}
