package session

import (
	"errors"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/domain/squad"
)

var (
	ErrPlayerNotFound = errors.New("player not in session roster")
	ErrGuestNotFound  = errors.New("guest not in session")
)

// Guest is a non-roster player added for one session.
type Guest struct {
	Name       string
	Position   player.Position
	StarRating float64
}

// Session is one organiser's working state: a roster snapshot with its
// selection flags, the guest pool, and the last generated squad.
type Session struct {
	ID              string
	Roster          []player.Player
	Guests          []Guest
	Squad           *squad.Squad
	Format          string
	PositionChanges []string
	Degraded        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Session) Clone() Session {
	out := s
	out.Roster = append([]player.Player(nil), s.Roster...)
	out.Guests = append([]Guest(nil), s.Guests...)
	out.PositionChanges = append([]string(nil), s.PositionChanges...)
	if s.Squad != nil {
		sq := s.Squad.Clone()
		out.Squad = &sq
	}
	return out
}

// SelectedCount counts roster members marked as playing.
func (s Session) SelectedCount() int {
	n := 0
	for _, p := range s.Roster {
		if p.Selected {
			n++
		}
	}
	return n
}

// OfficialNames lists roster display names in roster order.
func (s Session) OfficialNames() []string {
	out := make([]string, 0, len(s.Roster))
	for _, p := range s.Roster {
		out = append(out, p.Name)
	}
	return out
}
