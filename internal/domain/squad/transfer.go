package squad

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

// TransferResult reports whether a swap happened. Rejected swaps leave the squad untouched.
type TransferResult struct {
	Applied bool
	Entry   string
	Message string
}

// Transfer swaps one Red member with one Blue member. References resolve by
// player ID first, then by display name, then by cleaned name.
func (s *Squad) Transfer(redRef, blueRef string) TransferResult {
	lookup := newMemberLookup(s.Members)

	redIdx, ok := lookup.resolve(redRef)
	if !ok {
		return TransferResult{Message: fmt.Sprintf("player %q is not in this squad", strings.TrimSpace(redRef))}
	}
	blueIdx, ok := lookup.resolve(blueRef)
	if !ok {
		return TransferResult{Message: fmt.Sprintf("player %q is not in this squad", strings.TrimSpace(blueRef))}
	}

	red, blue := &s.Members[redIdx], &s.Members[blueIdx]
	if red.Team != TeamRed {
		return TransferResult{Message: fmt.Sprintf("%s is not on the red team", red.Player.Name)}
	}
	if blue.Team != TeamBlue {
		return TransferResult{Message: fmt.Sprintf("%s is not on the blue team", blue.Player.Name)}
	}

	red.Team, blue.Team = TeamBlue, TeamRed
	entry := fmt.Sprintf("%s (RED) ↔ %s (BLUE)", red.Player.Name, blue.Player.Name)
	s.Transfers = append(s.Transfers, entry)
	return TransferResult{Applied: true, Entry: entry, Message: "transfer applied"}
}

type memberLookup struct {
	byID   map[string]int
	byName map[string]int
	byKey  map[string]int
}

func newMemberLookup(members []Member) memberLookup {
	l := memberLookup{
		byID:   make(map[string]int, len(members)),
		byName: make(map[string]int, len(members)),
		byKey:  make(map[string]int, len(members)),
	}
	for i, m := range members {
		if m.Player.ID != "" {
			l.byID[m.Player.ID] = i
		}
		if _, dup := l.byName[m.Player.Name]; !dup {
			l.byName[m.Player.Name] = i
		}
		if key := player.NameKey(m.Player.Name); key != "" {
			if _, dup := l.byKey[key]; !dup {
				l.byKey[key] = i
			}
		}
	}
	return l
}

func (l memberLookup) resolve(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, false
	}
	if i, ok := l.byID[ref]; ok {
		return i, true
	}
	if i, ok := l.byName[ref]; ok {
		return i, true
	}
	i, ok := l.byKey[player.NameKey(ref)]
	return i, ok
}
