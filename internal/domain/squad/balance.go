package squad

import (
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

var (
	ErrEmptyRoster   = errors.New("no active players to balance")
	ErrUnknownPolicy = errors.New("unknown balancing policy")
)

// Policy selects the draft algorithm.
type Policy string

const (
	// PolicySnake drafts position buckets in snake order and is deterministic.
	PolicySnake Policy = "snake"
	// PolicyJitter ranks by Power plus uniform noise in [-3, 3) and assigns R B B R.
	PolicyJitter Policy = "jitter"
)

const jitterSpread = 3.0

func ParsePolicy(raw string) (Policy, error) {
	switch Policy(raw) {
	case "", PolicySnake:
		return PolicySnake, nil
	case PolicyJitter:
		return PolicyJitter, nil
	default:
		return "", ErrUnknownPolicy
	}
}

type Options struct {
	Policy Policy
	// Rand feeds PolicyJitter. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// Balance splits the active players into Red and Blue. Players are scored
// here, repeated IDs (or names when the ID is blank) are ignored, and team sizes differ by at most one.
func Balance(players []player.Player, opts Options) (Squad, error) {
	members := score(players)
	if len(members) == 0 {
		return Squad{}, ErrEmptyRoster
	}

	policy := opts.Policy
	if policy == "" {
		policy = PolicySnake
	}

	switch policy {
	case PolicySnake:
		snakeDraft(members)
	case PolicyJitter:
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
		}
		jitterDraft(members, rng)
	default:
		return Squad{}, ErrUnknownPolicy
	}

	return Squad{Policy: policy, Members: members}, nil
}

func score(players []player.Player) []Member {
	seen := make(map[string]struct{}, len(players))
	out := make([]Member, 0, len(players))
	for _, p := range players {
		key := p.ID
		if key == "" {
			key = "name:" + player.NameKey(p.Name)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		p = player.Normalize(p)
		out = append(out, Member{Player: p, Power: player.ComputePower(p)})
	}
	return out
}

type tally struct {
	size  map[Team]int
	power map[Team]float64
}

func (t *tally) add(m *Member, team Team) {
	m.Team = team
	t.size[team]++
	t.power[team] += m.Power
}

// weaker is the side that should open a bucket: fewer players, then lower
// running Power, then Red.
func (t *tally) weaker() Team {
	switch {
	case t.size[TeamRed] != t.size[TeamBlue]:
		if t.size[TeamRed] < t.size[TeamBlue] {
			return TeamRed
		}
		return TeamBlue
	case t.power[TeamRed] != t.power[TeamBlue]:
		if t.power[TeamRed] < t.power[TeamBlue] {
			return TeamRed
		}
		return TeamBlue
	default:
		return TeamRed
	}
}

// snakeDraft mutates members in place, assigning teams bucket by bucket.
func snakeDraft(members []Member) {
	buckets := make(map[player.Position][]int, len(player.DraftOrder))
	for i := range members {
		pos := members[i].Player.Position
		buckets[pos] = append(buckets[pos], i)
	}

	t := &tally{size: map[Team]int{}, power: map[Team]float64{}}
	for _, pos := range player.DraftOrder {
		idx := buckets[pos]
		sort.SliceStable(idx, func(a, b int) bool { return byPowerDesc(members[idx[a]], members[idx[b]]) })

		first := t.weaker()
		for pick, i := range idx {
			team := first
			if r := pick % 4; r == 1 || r == 2 {
				team = first.Other()
			}
			if t.size[team] > t.size[team.Other()] {
				team = team.Other()
			}
			t.add(&members[i], team)
		}
	}
}

func jitterDraft(members []Member, rng *rand.Rand) {
	type ranked struct {
		idx   int
		score float64
	}
	order := make([]ranked, len(members))
	for i := range members {
		order[i] = ranked{idx: i, score: members[i].Power + (rng.Float64()*2-1)*jitterSpread}
	}
	sort.SliceStable(order, func(a, b int) bool {
		if order[a].score != order[b].score {
			return order[a].score > order[b].score
		}
		return byPowerDesc(members[order[a].idx], members[order[b].idx])
	})

	for i, r := range order {
		team := TeamBlue
		if i%4 == 0 || i%4 == 3 {
			team = TeamRed
		}
		members[r.idx].Team = team
	}
}
