package matchrecord

import "testing"

func TestFromRecord(t *testing.T) {
	m, ok := FromRecord(map[string]string{
		"date":       "2026-10-10",
		"Time":       "07:00",
		"Venue":      "BFC",
		"Score_Blue": "3",
		"Score_Red":  "x",
		"Winner":     "",
		"Team_Blue":  "Ali, Budi ,",
		"Team_Red":   "Cici",
	})
	if !ok {
		t.Fatalf("expected row to convert")
	}
	if m.ScoreBlue != 3 || m.ScoreRed != 0 || m.Winner != WinnerBlue {
		t.Fatalf("unexpected score/winner: %+v", m)
	}
	if len(m.TeamBlue) != 2 || m.TeamBlue[1] != "Budi" {
		t.Fatalf("unexpected blue team: %v", m.TeamBlue)
	}
}

func TestFromRecord_SkipsIncompleteRows(t *testing.T) {
	if _, ok := FromRecord(map[string]string{"Date": "2026-10-10", "Team_Blue": "Ali"}); ok {
		t.Fatalf("expected row without red team to be skipped")
	}
	if _, ok := FromRecord(map[string]string{"Team_Blue": "Ali", "Team_Red": "Budi"}); ok {
		t.Fatalf("expected row without date to be skipped")
	}
}

func TestDedupeKey_IgnoresIDAndCase(t *testing.T) {
	a := MatchRecord{ID: "1", Date: "2026-10-10", Venue: "BFC", ScoreBlue: 1, TeamBlue: []string{"Ali"}, TeamRed: []string{"Budi"}}
	b := a
	b.ID = "2"
	b.Venue = "bfc "
	if DedupeKey(a) != DedupeKey(b) {
		t.Fatalf("expected equal keys, got %q vs %q", DedupeKey(a), DedupeKey(b))
	}
	b.ScoreRed = 1
	if DedupeKey(a) == DedupeKey(b) {
		t.Fatalf("expected different keys for different scores")
	}
}

func TestToRecord_RoundTrip(t *testing.T) {
	in := MatchRecord{Date: "2026-10-10", Time: "07:00", Venue: "BFC", ScoreBlue: 1, ScoreRed: 2, TeamBlue: []string{"Ali", "Budi"}, TeamRed: []string{"Cici"}}
	out, ok := FromRecord(ToRecord(in))
	if !ok {
		t.Fatalf("expected round trip to convert")
	}
	if DedupeKey(in) != DedupeKey(out) || out.Winner != WinnerRed {
		t.Fatalf("unexpected round trip: %+v", out)
	}
}
