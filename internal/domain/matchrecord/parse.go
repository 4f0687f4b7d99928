package matchrecord

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

var (
	dateLine  = regexp.MustCompile(`(?i)Date:\s*(.*)`)
	timeLine  = regexp.MustCompile(`(?i)Time:\s*(.*)`)
	venueLine = regexp.MustCompile(`(?i)(?:Ground|Venue):\s*(.*)`)
	scoreLine = regexp.MustCompile(`(?i)Score:.*?Blue\s*(\d+)\s*[-v]\s*(\d+)\s*Red`)
	blueStart = regexp.MustCompile(`(?i)🔵.*?BLUE TEAM`)
	redStart  = regexp.MustCompile(`(?i)🔴.*?RED TEAM`)
	hasDigit  = regexp.MustCompile(`\d`)
)

const defaultKickoff = "00:00"

// ParseLog reads a pasted result announcement into a draft record. Fields
// that cannot be found keep defaults: today's date, 00:00, the given venue
// and a 0-0 draw. Dates such as "Saturday, 17 Oct" take the year of now;
// unparsable dates are kept verbatim.
func ParseLog(text string, now time.Time, defaultVenue string) MatchRecord {
	m := MatchRecord{
		Date:   now.Format(DateLayout),
		Time:   defaultKickoff,
		Venue:  defaultVenue,
		Winner: WinnerDraw,
	}

	if g := dateLine.FindStringSubmatch(text); g != nil {
		m.Date = parseAnnouncedDate(strings.TrimSpace(g[1]), now)
	}
	if g := timeLine.FindStringSubmatch(text); g != nil {
		m.Time = strings.TrimSpace(g[1])
	}
	if g := venueLine.FindStringSubmatch(text); g != nil {
		m.Venue = strings.TrimSpace(g[1])
	}
	if g := scoreLine.FindStringSubmatch(text); g != nil {
		m.ScoreBlue, _ = strconv.Atoi(g[1])
		m.ScoreRed, _ = strconv.Atoi(g[2])
		m.Winner = DeriveWinner(m.ScoreBlue, m.ScoreRed)
	}

	blue, red := teamBlocks(strings.ReplaceAll(text, "*", ""))
	m.TeamBlue = blockNames(blue)
	m.TeamRed = blockNames(red)
	return m
}

func parseAnnouncedDate(raw string, now time.Time) string {
	value := raw
	if _, after, ok := strings.Cut(raw, ","); ok {
		value = strings.TrimSpace(after)
	}
	t, err := time.Parse("2 Jan", value)
	if err != nil {
		return raw
	}
	// "2 Jan" parses as year 0, a leap year; 29 Feb must not roll into March.
	d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if d.Month() != t.Month() || d.Day() != t.Day() {
		return raw
	}
	return d.Format(DateLayout)
}

func teamBlocks(text string) (string, string) {
	b := blueStart.FindStringIndex(text)
	r := redStart.FindStringIndex(text)
	if b == nil || r == nil {
		return "", ""
	}
	if b[0] < r[0] {
		return text[b[1]:r[0]], text[r[1]:]
	}
	return text[b[1]:], text[r[1]:b[0]]
}

// blockNames keeps lines that look like names: longer than two characters,
// no digits and not a "we had ..." remark.
func blockNames(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) <= 2 || hasDigit.MatchString(line) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "we had") {
			continue
		}
		if name := player.CleanName(line); name != "" {
			out = append(out, name)
		}
	}
	return out
}
