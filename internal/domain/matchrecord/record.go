package matchrecord

import (
	"strconv"
	"strings"
)

// RecordHeaders is the column order of the published match history sheet.
var RecordHeaders = []string{"Date", "Time", "Venue", "Score_Blue", "Score_Red", "Winner", "Team_Blue", "Team_Red"}

// FromRecord converts one match history row. Rows without a date or without
// both team lists report false. Malformed scores read as 0.
func FromRecord(row map[string]string) (MatchRecord, bool) {
	get := func(key string) string {
		for k, v := range row {
			if strings.EqualFold(strings.TrimSpace(k), key) {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	m := MatchRecord{
		Date:      get("Date"),
		Time:      get("Time"),
		Venue:     get("Venue"),
		ScoreBlue: atoiOrZero(get("Score_Blue")),
		ScoreRed:  atoiOrZero(get("Score_Red")),
		TeamBlue:  SplitNames(get("Team_Blue")),
		TeamRed:   SplitNames(get("Team_Red")),
	}
	if m.Date == "" || len(m.TeamBlue) == 0 || len(m.TeamRed) == 0 {
		return MatchRecord{}, false
	}
	if w, ok := ParseWinner(get("Winner")); ok {
		m.Winner = w
	} else {
		m.Winner = DeriveWinner(m.ScoreBlue, m.ScoreRed)
	}
	return m, true
}

// ToRecord is the inverse of FromRecord.
func ToRecord(m MatchRecord) map[string]string {
	return map[string]string{
		"Date":       m.Date,
		"Time":       m.Time,
		"Venue":      m.Venue,
		"Score_Blue": strconv.Itoa(m.ScoreBlue),
		"Score_Red":  strconv.Itoa(m.ScoreRed),
		"Winner":     string(m.Outcome()),
		"Team_Blue":  JoinNames(m.TeamBlue),
		"Team_Red":   JoinNames(m.TeamRed),
	}
}

// DedupeKey identifies a fixture independent of its ID, so re-imported
// history rows can be skipped.
func DedupeKey(m MatchRecord) string {
	return strings.ToLower(strings.Join([]string{
		strings.TrimSpace(m.Date),
		strings.TrimSpace(m.Venue),
		strconv.Itoa(m.ScoreBlue),
		strconv.Itoa(m.ScoreRed),
		JoinNames(m.TeamBlue),
		JoinNames(m.TeamRed),
	}, "|"))
}

func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
