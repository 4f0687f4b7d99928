package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	qb "github.com/riskibarqy/smfc-manager/internal/platform/querybuilder"
)

// MatchRepository stores the append-only match log. played_on is text so
// history rows with free-form dates survive import.
type MatchRepository struct {
	db *sqlx.DB
}

var matchRecordSelectColumns = []string{
	"id",
	"public_id",
	"played_on",
	"kickoff",
	"venue",
	"score_blue",
	"score_red",
	"winner",
	"team_blue",
	"team_red",
	"created_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Append(ctx context.Context, m matchrecord.MatchRecord) error {
	query, args, err := qb.InsertModel("match_records", matchRecordFromDomain(m), "ON CONFLICT (public_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert match record query: %w", err)
	}

	if err := retryStale(func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return fmt.Errorf("insert match record id=%s: %w", m.ID, err)
	}
	return nil
}

// List returns records in append order.
func (r *MatchRepository) List(ctx context.Context) ([]matchrecord.MatchRecord, error) {
	query, args, err := qb.Select(matchRecordSelectColumns...).From("match_records").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match records query: %w", err)
	}

	var rows []matchRecordTableModel
	if err := retryStale(func() error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, fmt.Errorf("select match records: %w", err)
	}

	out := make([]matchrecord.MatchRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
