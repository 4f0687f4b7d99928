package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
)

type matchRecordTableModel struct {
	ID        int64          `db:"id,readonly"`
	PublicID  string         `db:"public_id"`
	PlayedOn  string         `db:"played_on"`
	Kickoff   string         `db:"kickoff"`
	Venue     string         `db:"venue"`
	ScoreBlue int            `db:"score_blue"`
	ScoreRed  int            `db:"score_red"`
	Winner    string         `db:"winner"`
	TeamBlue  pq.StringArray `db:"team_blue"`
	TeamRed   pq.StringArray `db:"team_red"`
	CreatedAt time.Time      `db:"created_at"`
}

func matchRecordFromDomain(m matchrecord.MatchRecord) matchRecordTableModel {
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return matchRecordTableModel{
		PublicID:  m.ID,
		PlayedOn:  m.Date,
		Kickoff:   m.Time,
		Venue:     m.Venue,
		ScoreBlue: m.ScoreBlue,
		ScoreRed:  m.ScoreRed,
		Winner:    string(m.Outcome()),
		TeamBlue:  pq.StringArray(m.TeamBlue),
		TeamRed:   pq.StringArray(m.TeamRed),
		CreatedAt: createdAt,
	}
}

func (m matchRecordTableModel) toDomain() matchrecord.MatchRecord {
	return matchrecord.MatchRecord{
		ID:        m.PublicID,
		Date:      m.PlayedOn,
		Time:      m.Kickoff,
		Venue:     m.Venue,
		ScoreBlue: m.ScoreBlue,
		ScoreRed:  m.ScoreRed,
		Winner:    matchrecord.Winner(m.Winner),
		TeamBlue:  []string(m.TeamBlue),
		TeamRed:   []string(m.TeamRed),
		CreatedAt: m.CreatedAt,
	}
}
