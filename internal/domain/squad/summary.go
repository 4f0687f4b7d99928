package squad

import (
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"
)

const (
	DefaultDurationMinutes = 90
	MinDurationMinutes     = 60
	MaxDurationMinutes     = 120

	DefaultLateFee = "50"
)

// MatchSettings describes the fixture announced alongside the teams.
type MatchSettings struct {
	Date            time.Time
	Kickoff         time.Time
	DurationMinutes int
	Venue           string
	CostPerPlayer   string
	PaymentHandle   string
	LateFee         string
}

// Summary renders the chat announcement. Team ratings are truncated to whole numbers.
func Summary(s Squad, settings MatchSettings) string {
	duration := settings.DurationMinutes
	if duration < MinDurationMinutes || duration > MaxDurationMinutes {
		duration = DefaultDurationMinutes
	}
	end := settings.Kickoff.Add(time.Duration(duration) * time.Minute)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, p := range parts {
			_, _ = buf.WriteString(p)
		}
		_ = buf.WriteByte('\n')
	}

	line("Date: ", settings.Date.Format("Monday, 02 Jan"))
	line("Time: ", settings.Kickoff.Format("03:04 PM"), " - ", end.Format("03:04 PM"))
	line("Ground: ", settings.Venue)
	line("Score: Blue 0-0 Red")
	line("Cost per player: ", orPlaceholder(settings.CostPerPlayer))
	line("Gpay: ", orPlaceholder(settings.PaymentHandle))
	lateFee := settings.LateFee
	if lateFee == "" {
		lateFee = DefaultLateFee
	}
	line("LateFee: ", lateFee)
	line()
	writeTeam(line, "🔵 *BLUE TEAM* (", s, TeamBlue)
	line()
	writeTeam(line, "🔴 *RED TEAM* (", s, TeamRed)

	out := buf.String()
	return out[:len(out)-1]
}

func writeTeam(line func(...string), header string, s Squad, t Team) {
	line(header, strconv.Itoa(int(s.mean(t))), ")")
	for _, m := range s.Team(t) {
		line(m.Player.Name)
	}
}

func orPlaceholder(v string) string {
	if v == "" {
		return "*"
	}
	return v
}
