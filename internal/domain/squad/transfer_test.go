package squad

import (
	"strings"
	"testing"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

func sampleSquad() Squad {
	return Squad{Members: []Member{
		{Player: player.Player{ID: "p1", Name: "Ali", Position: player.PositionForward}, Power: 80, Team: TeamRed},
		{Player: player.Player{ID: "p2", Name: "Budi", Position: player.PositionDefender}, Power: 70, Team: TeamRed},
		{Player: player.Player{ID: "p3", Name: "Chandra", Position: player.PositionForward}, Power: 78, Team: TeamBlue},
		{Player: player.Player{ID: "guest:dewi", Name: "Dewi", Position: player.PositionMidfielder, Guest: true}, Power: 72, Team: TeamBlue},
	}}
}

func TestTransfer_SwapsAndLogs(t *testing.T) {
	t.Parallel()

	s := sampleSquad()
	res := s.Transfer("Ali", "guest:dewi")
	if !res.Applied {
		t.Fatalf("expected transfer to apply: %s", res.Message)
	}
	if res.Entry != "Ali (RED) ↔ Dewi (BLUE)" {
		t.Fatalf("unexpected log entry %q", res.Entry)
	}
	red := teamIDs(s, TeamRed)
	if !red["guest:dewi"] || red["p1"] {
		t.Fatalf("swap not applied: %v", red)
	}
	if s.Size(TeamRed) != 2 || s.Size(TeamBlue) != 2 {
		t.Fatalf("transfer changed team sizes")
	}
	if len(s.Transfers) != 1 {
		t.Fatalf("expected one transfer entry, got %v", s.Transfers)
	}
}

func TestTransfer_RejectedIsNoop(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		red, blue string
		message   string
	}{
		{name: "unknown red", red: "Zed", blue: "Chandra", message: "not in this squad"},
		{name: "unknown blue", red: "Ali", blue: "", message: "not in this squad"},
		{name: "red ref on blue team", red: "Chandra", blue: "Dewi", message: "not on the red team"},
		{name: "blue ref on red team", red: "Ali", blue: "Budi", message: "not on the blue team"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := sampleSquad()
			before := s.Clone()
			res := s.Transfer(tc.red, tc.blue)
			if res.Applied {
				t.Fatalf("expected rejection")
			}
			if !strings.Contains(res.Message, tc.message) {
				t.Fatalf("unexpected message %q", res.Message)
			}
			for i := range s.Members {
				if s.Members[i].Team != before.Members[i].Team {
					t.Fatalf("rejected transfer mutated squad")
				}
			}
			if len(s.Transfers) != 0 {
				t.Fatalf("rejected transfer was logged")
			}
		})
	}
}

func TestTransfer_ResolvesCleanedNames(t *testing.T) {
	t.Parallel()

	s := sampleSquad()
	if res := s.Transfer("ali (t)", "CHANDRA"); !res.Applied {
		t.Fatalf("expected cleaned-name lookup to resolve: %s", res.Message)
	}
}
