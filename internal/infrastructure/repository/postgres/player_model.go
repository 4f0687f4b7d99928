package postgres

import (
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

type rosterPlayerTableModel struct {
	ID          int64      `db:"id,readonly"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	Position    string     `db:"position"`
	Pace        float64    `db:"pace"`
	Shooting    float64    `db:"shooting"`
	Passing     float64    `db:"passing"`
	Dribbling   float64    `db:"dribbling"`
	Defense     float64    `db:"defense"`
	Physicality float64    `db:"physicality"`
	StarRating  float64    `db:"star_rating"`
	Selected    bool       `db:"selected"`
	CreatedAt   time.Time  `db:"created_at,readonly"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at,readonly"`
}

func rosterPlayerFromDomain(p player.Player, now time.Time) rosterPlayerTableModel {
	return rosterPlayerTableModel{
		PublicID:    p.ID,
		Name:        p.Name,
		Position:    string(p.Position),
		Pace:        p.Attributes.Pace,
		Shooting:    p.Attributes.Shooting,
		Passing:     p.Attributes.Passing,
		Dribbling:   p.Attributes.Dribbling,
		Defense:     p.Attributes.Defense,
		Physicality: p.Attributes.Physicality,
		StarRating:  p.StarRating,
		Selected:    p.Selected,
		UpdatedAt:   now,
	}
}

func (m rosterPlayerTableModel) toDomain() player.Player {
	pos, _ := player.ParsePosition(m.Position)
	return player.Player{
		ID:       m.PublicID,
		Name:     m.Name,
		Position: pos,
		Attributes: player.Attributes{
			Pace:        m.Pace,
			Shooting:    m.Shooting,
			Passing:     m.Passing,
			Dribbling:   m.Dribbling,
			Defense:     m.Defense,
			Physicality: m.Physicality,
		},
		StarRating: m.StarRating,
		Selected:   m.Selected,
	}
}
