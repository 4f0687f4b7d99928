package session

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

const (
	guestIDPrefix   = "guest:"
	guestAttributes = 70.0
)

// PasteResult reports how a pasted chat list was applied.
type PasteResult struct {
	Matched   []string
	NewGuests []string
}

// ToggleSelection flips one roster member's flag and leaves every other row alone.
func (s *Session) ToggleSelection(playerID string) (player.Player, error) {
	for i := range s.Roster {
		if s.Roster[i].ID == playerID {
			s.Roster[i].Selected = !s.Roster[i].Selected
			return s.Roster[i], nil
		}
	}
	return player.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

// SelectFromPastedList replaces the selection with the roster members named
// in a numbered chat list. Unknown names join the guest pool. A text with no
// numbered entries leaves the session unchanged.
func (s *Session) SelectFromPastedList(text string) PasteResult {
	entries := player.ExtractListedNames(text)
	if len(entries) == 0 {
		return PasteResult{}
	}

	byKey := make(map[string]int, len(s.Roster))
	for i, p := range s.Roster {
		if key := player.NameKey(p.Name); key != "" {
			if _, dup := byKey[key]; !dup {
				byKey[key] = i
			}
		}
	}

	for i := range s.Roster {
		s.Roster[i].Selected = false
	}

	var res PasteResult
	var unmatched []string
	for _, entry := range entries {
		key := player.NameKey(entry)
		if key == "" {
			continue
		}
		if i, ok := byKey[key]; ok {
			if !s.Roster[i].Selected {
				s.Roster[i].Selected = true
				res.Matched = append(res.Matched, s.Roster[i].Name)
			}
			continue
		}
		unmatched = append(unmatched, player.CleanName(entry))
	}
	res.NewGuests = s.addGuests(unmatched)
	return res
}

// SetGuests replaces the guest pool from a comma-separated string. Profiles
// of guests that remain are kept and blank entries are dropped. A name that
// belongs to a roster member selects that member instead of adding a guest.
func (s *Session) SetGuests(raw string) []Guest {
	previous := make(map[string]Guest, len(s.Guests))
	for _, g := range s.Guests {
		previous[player.NameKey(g.Name)] = g
	}
	rosterIndex := make(map[string]int, len(s.Roster))
	for i, p := range s.Roster {
		rosterIndex[player.NameKey(p.Name)] = i
	}

	s.Guests = nil
	for _, name := range ParseGuestNames(raw) {
		key := player.NameKey(name)
		if i, ok := rosterIndex[key]; ok {
			s.Roster[i].Selected = true
			continue
		}
		if g, ok := previous[key]; ok {
			g.Name = name
			s.Guests = append(s.Guests, g)
			delete(previous, key)
			continue
		}
		s.addGuests([]string{name})
	}
	return append([]Guest(nil), s.Guests...)
}

// SetGuestProfile sets a guest's position and stars. Stars outside 1..5 become 3.
func (s *Session) SetGuestProfile(name string, pos player.Position, stars float64) (Guest, error) {
	key := player.NameKey(name)
	for i := range s.Guests {
		if player.NameKey(s.Guests[i].Name) != key {
			continue
		}
		if _, ok := player.AllPositions[pos]; !ok {
			pos = player.PositionMidfielder
		}
		if stars < player.MinStarRating || stars > player.MaxStarRating {
			stars = player.DefaultStarRating
		}
		s.Guests[i].Position = pos
		s.Guests[i].StarRating = stars
		return s.Guests[i], nil
	}
	return Guest{}, fmt.Errorf("%w: %s", ErrGuestNotFound, strings.TrimSpace(name))
}

// ChangePosition edits a roster member's position for this session only. The
// player is also selected and the change is logged as "Name: OLD → NEW".
func (s *Session) ChangePosition(playerID string, pos player.Position) (player.Player, error) {
	for i := range s.Roster {
		p := &s.Roster[i]
		if p.ID != playerID {
			continue
		}
		if p.Position != pos {
			s.PositionChanges = append(s.PositionChanges, fmt.Sprintf("%s: %s → %s", p.Name, p.Position, pos))
			p.Position = pos
		}
		p.Selected = true
		return *p, nil
	}
	return player.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

// ActivePlayers is the balancing input: selected roster members followed by
// guests materialized with flat 70 attributes.
func (s Session) ActivePlayers() []player.Player {
	out := make([]player.Player, 0, len(s.Roster)+len(s.Guests))
	for _, p := range s.Roster {
		if p.Selected {
			out = append(out, p)
		}
	}
	for _, g := range s.Guests {
		out = append(out, SynthesizeGuest(g))
	}
	return out
}

// SynthesizeGuest builds a normalized Player for a guest.
func SynthesizeGuest(g Guest) player.Player {
	return player.Normalize(player.Player{
		ID:         guestIDPrefix + player.NameKey(g.Name),
		Name:       g.Name,
		Position:   g.Position,
		StarRating: g.StarRating,
		Selected:   true,
		Guest:      true,
		Attributes: player.Attributes{
			Pace:        guestAttributes,
			Shooting:    guestAttributes,
			Passing:     guestAttributes,
			Dribbling:   guestAttributes,
			Defense:     guestAttributes,
			Physicality: guestAttributes,
		},
	})
}

// ParseGuestNames splits a comma-separated list, dropping blank entries.
func ParseGuestNames(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// addGuests appends names that are neither guests nor roster members yet,
// with the default MID / 3-star profile, and returns the names added.
func (s *Session) addGuests(names []string) []string {
	taken := make(map[string]struct{}, len(s.Guests)+len(s.Roster))
	for _, g := range s.Guests {
		taken[player.NameKey(g.Name)] = struct{}{}
	}
	for _, p := range s.Roster {
		taken[player.NameKey(p.Name)] = struct{}{}
	}

	var added []string
	for _, name := range names {
		key := player.NameKey(name)
		if key == "" {
			continue
		}
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		s.Guests = append(s.Guests, Guest{Name: name, Position: player.PositionMidfielder, StarRating: player.DefaultStarRating})
		added = append(added, name)
	}
	return added
}
