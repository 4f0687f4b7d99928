package squad

import (
	"sort"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

// Team labels the two sides of a generated fixture.
type Team string

const (
	TeamRed  Team = "RED"
	TeamBlue Team = "BLUE"
)

func (t Team) Other() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Member is a scored player assigned to a team.
type Member struct {
	Player player.Player
	Power  float64
	Team   Team
}

// Squad is the output of one balancing run plus the manual transfers applied since.
type Squad struct {
	Policy    Policy
	Members   []Member
	Transfers []string
}

func (s Squad) Clone() Squad {
	out := s
	out.Members = append([]Member(nil), s.Members...)
	out.Transfers = append([]string(nil), s.Transfers...)
	return out
}

// Team returns one side ordered GK, DEF, MID, FWD and by Power within a position.
func (s Squad) Team(t Team) []Member {
	out := make([]Member, 0, len(s.Members)/2+1)
	for _, m := range s.Members {
		if m.Team == t {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := a.Player.Position.Rank(), b.Player.Position.Rank(); ra != rb {
			return ra < rb
		}
		return byPowerDesc(a, b)
	})
	return out
}

func (s Squad) Size(t Team) int {
	n := 0
	for _, m := range s.Members {
		if m.Team == t {
			n++
		}
	}
	return n
}

// AveragePower is the mean member Power rounded to one decimal, 0 for an empty side.
func (s Squad) AveragePower(t Team) float64 {
	return player.Round1(s.mean(t))
}

func (s Squad) mean(t Team) float64 {
	total, n := 0.0, 0
	for _, m := range s.Members {
		if m.Team == t {
			total += m.Power
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// byPowerDesc orders by Power desc, then name, then id so equal ratings stay deterministic.
func byPowerDesc(a, b Member) bool {
	if a.Power != b.Power {
		return a.Power > b.Power
	}
	if a.Player.Name != b.Player.Name {
		return a.Player.Name < b.Player.Name
	}
	return a.Player.ID < b.Player.ID
}
