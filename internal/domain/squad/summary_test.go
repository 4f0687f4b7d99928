package squad

import (
	"strings"
	"testing"
	"time"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	s := sampleSquad()
	got := Summary(s, MatchSettings{
		Date:            time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		Kickoff:         time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Venue:           "BFC",
		CostPerPlayer:   "150",
		LateFee:         "50",
	})

	want := strings.Join([]string{
		"Date: Saturday, 17 Oct",
		"Time: 07:00 AM - 08:30 AM",
		"Ground: BFC",
		"Score: Blue 0-0 Red",
		"Cost per player: 150",
		"Gpay: *",
		"LateFee: 50",
		"",
		"🔵 *BLUE TEAM* (75)",
		"Dewi",
		"Chandra",
		"",
		"🔴 *RED TEAM* (75)",
		"Budi",
		"Ali",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected summary:\n%s\n--- want ---\n%s", got, want)
	}
}

func TestSummary_ClampsDuration(t *testing.T) {
	t.Parallel()

	got := Summary(Squad{}, MatchSettings{
		Kickoff:         time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC),
		DurationMinutes: 300,
	})
	if !strings.Contains(got, "Time: 07:30 PM - 09:00 PM") {
		t.Fatalf("expected default duration, got:\n%s", got)
	}
	if !strings.Contains(got, "\nLateFee: 50\n") || !strings.Contains(got, "\nGpay: *\n") {
		t.Fatalf("expected default late fee and payment placeholder, got:\n%s", got)
	}
}
