package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	qb "github.com/riskibarqy/smfc-manager/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var rosterPlayerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"position",
	"pace",
	"shooting",
	"passing",
	"dribbling",
	"defense",
	"physicality",
	"star_rating",
	"selected",
	"created_at",
	"updated_at",
	"deleted_at",
}

var rosterPlayerUpsertColumns = []string{
	"name",
	"position",
	"pace",
	"shooting",
	"passing",
	"dribbling",
	"defense",
	"physicality",
	"star_rating",
	"selected",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db, now: time.Now}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(rosterPlayerSelectColumns...).From("roster_players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster players query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := retryStale(func() error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, fmt.Errorf("select roster players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(rosterPlayerSelectColumns...).From("roster_players").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select roster player query: %w", err)
	}

	var row rosterPlayerTableModel
	if err := retryStale(func() error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get roster player id=%s: %w", playerID, err)
	}
	return row.toDomain(), true, nil
}

// Upsert writes by public_id and revives a soft-deleted row.
func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	model := rosterPlayerFromDomain(p, r.now().UTC())
	suffix := qb.UpsertSuffix("public_id", rosterPlayerUpsertColumns...) + ", deleted_at = NULL"
	query, args, err := qb.InsertModel("roster_players", model, suffix)
	if err != nil {
		return fmt.Errorf("build upsert roster player query: %w", err)
	}

	if err := retryStale(func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return fmt.Errorf("upsert roster player id=%s: %w", p.ID, err)
	}
	return nil
}
