package matchrecord

import (
	"reflect"
	"testing"
	"time"
)

var parseNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func TestParseLog_FullAnnouncement(t *testing.T) {
	t.Parallel()

	text := "Date: Saturday, 17 Oct\n" +
		"Time: 07:00 AM - 08:30 AM\n" +
		"Ground: GoatArena\n" +
		"Score: *Blue 5 - 3 Red*\n" +
		"Cost per player: 150\n\n" +
		"🔵 *BLUE TEAM* (81)\n" +
		"Ali\n" +
		"Budi (late)\n" +
		"We had 2 subs\n" +
		"Ok\n\n" +
		"🔴 *RED TEAM* (80)\n" +
		"Chandra\n" +
		"Dewi - paid\n" +
		"Player 11\n"

	got := ParseLog(text, parseNow, "BFC")

	if got.Date != "2026-10-17" || got.Time != "07:00 AM - 08:30 AM" || got.Venue != "GoatArena" {
		t.Fatalf("unexpected header fields: %+v", got)
	}
	if got.ScoreBlue != 5 || got.ScoreRed != 3 || got.Winner != WinnerBlue {
		t.Fatalf("unexpected score: %d-%d %s", got.ScoreBlue, got.ScoreRed, got.Winner)
	}
	if !reflect.DeepEqual(got.TeamBlue, []string{"Ali", "Budi"}) {
		t.Fatalf("unexpected blue team %q", got.TeamBlue)
	}
	if !reflect.DeepEqual(got.TeamRed, []string{"Chandra", "Dewi"}) {
		t.Fatalf("unexpected red team %q", got.TeamRed)
	}
}

func TestParseLog_Defaults(t *testing.T) {
	t.Parallel()

	got := ParseLog("good game everyone", parseNow, "BFC")
	want := MatchRecord{Date: "2026-10-14", Time: "00:00", Venue: "BFC", Winner: WinnerDraw}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected defaults:\n got %+v\nwant %+v", got, want)
	}
}

func TestParseLog_RedBlockFirstAndRawDate(t *testing.T) {
	t.Parallel()

	text := "Date: next saturday\nScore: Blue 1v1 Red\n🔴 RED TEAM\nEko\n🔵 BLUE TEAM\nFajar\n"
	got := ParseLog(text, parseNow, "BFC")
	if got.Date != "next saturday" {
		t.Fatalf("expected raw date kept, got %q", got.Date)
	}
	if got.Winner != WinnerDraw || got.ScoreBlue != 1 || got.ScoreRed != 1 {
		t.Fatalf("unexpected score %+v", got)
	}
	if !reflect.DeepEqual(got.TeamRed, []string{"Eko"}) || !reflect.DeepEqual(got.TeamBlue, []string{"Fajar"}) {
		t.Fatalf("unexpected teams red=%q blue=%q", got.TeamRed, got.TeamBlue)
	}
}

func TestParseLog_LeapDayOnlyInLeapYears(t *testing.T) {
	t.Parallel()

	text := "Date: Sunday, 29 Feb\n"
	if got := ParseLog(text, parseNow, "BFC"); got.Date != "Sunday, 29 Feb" {
		t.Fatalf("expected raw date kept outside a leap year, got %q", got.Date)
	}
	leapNow := time.Date(2028, 3, 2, 9, 0, 0, 0, time.UTC)
	if got := ParseLog(text, leapNow, "BFC"); got.Date != "2028-02-29" {
		t.Fatalf("expected 2028-02-29, got %q", got.Date)
	}
}
