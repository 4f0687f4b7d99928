package memory

import (
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

// SeedRoster is the demo squad served by the memory backend. IDs are stable
// so sessions created before a restart still resolve.
func SeedRoster() []player.Player {
	return []player.Player{
		seedPlayer("smfc-001", "Akhil", player.PositionForward, 88, 85, 70, 82, 40, 75),
		seedPlayer("smfc-002", "Aravind", player.PositionMidfielder, 75, 70, 85, 78, 60, 70),
		seedPlayer("smfc-003", "Isa", player.PositionDefender, 65, 40, 60, 55, 90, 85),
		seedPlayer("smfc-004", "Anchal", player.PositionMidfielder, 70, 65, 75, 72, 55, 60),
		seedPlayer("smfc-005", "Melwin", player.PositionDefender, 60, 50, 55, 50, 88, 82),
		seedPlayer("smfc-006", "Vaibhav", player.PositionForward, 85, 82, 65, 80, 35, 70),
		seedPlayer("smfc-007", "Anoop", player.PositionDefender, 55, 30, 50, 45, 85, 88),
		seedPlayer("smfc-008", "Vigith", player.PositionMidfielder, 68, 60, 80, 70, 60, 65),
		seedPlayer("smfc-009", "Rasith", player.PositionMidfielder, 72, 75, 75, 74, 50, 68),
		seedPlayer("smfc-010", "Krithik", player.PositionForward, 82, 80, 70, 78, 40, 72),
		seedPlayer("smfc-011", "Agin", player.PositionDefender, 62, 40, 60, 50, 85, 80),
		seedPlayer("smfc-012", "Gilson", player.PositionMidfielder, 70, 70, 75, 72, 60, 70),
		seedPlayer("smfc-013", "Diganta", player.PositionDefender, 50, 30, 60, 50, 80, 75),
		seedPlayer("smfc-014", "Sanil", player.PositionDefender, 65, 50, 60, 55, 82, 78),
		seedPlayer("smfc-015", "Cibin", player.PositionMidfielder, 72, 68, 72, 70, 55, 65),
		seedPlayer("smfc-016", "Sandeep", player.PositionForward, 80, 78, 65, 75, 45, 70),
		seedPlayer("smfc-017", "Arun", player.PositionDefender, 60, 45, 55, 50, 84, 80),
		seedPlayer("smfc-018", "Rakhil", player.PositionMidfielder, 74, 72, 78, 75, 58, 68),
	}
}

func seedPlayer(id, name string, pos player.Position, pace, shooting, passing, dribbling, defense, physicality float64) player.Player {
	return player.Player{
		ID:       id,
		Name:     name,
		Position: pos,
		Attributes: player.Attributes{
			Pace:        pace,
			Shooting:    shooting,
			Passing:     passing,
			Dribbling:   dribbling,
			Defense:     defense,
			Physicality: physicality,
		},
		StarRating: player.DefaultStarRating,
	}
}

// SeedMatches is a short demo history over the seed roster.
func SeedMatches() []matchrecord.MatchRecord {
	return []matchrecord.MatchRecord{
		{
			ID: "match-001", Date: "2026-09-26", Time: "07:00", Venue: "BFC",
			ScoreBlue: 4, ScoreRed: 2, Winner: matchrecord.WinnerBlue,
			TeamBlue: []string{"Akhil", "Isa", "Anchal", "Anoop", "Rasith"},
			TeamRed:  []string{"Aravind", "Melwin", "Vaibhav", "Vigith", "Krithik"},
		},
		{
			ID: "match-002", Date: "2026-10-03", Time: "07:00", Venue: "BFC",
			ScoreBlue: 3, ScoreRed: 3, Winner: matchrecord.WinnerDraw,
			TeamBlue: []string{"Akhil", "Melwin", "Vigith", "Agin", "Gilson"},
			TeamRed:  []string{"Aravind", "Isa", "Vaibhav", "Rasith", "Krithik"},
		},
		{
			ID: "match-003", Date: "2026-10-10", Time: "07:00", Venue: "BFC",
			ScoreBlue: 1, ScoreRed: 2, Winner: matchrecord.WinnerRed,
			TeamBlue: []string{"Akhil", "Anoop", "Anchal", "Sanil", "Cibin"},
			TeamRed:  []string{"Isa", "Aravind", "Vaibhav", "Gilson", "Sandeep"},
		},
	}
}
