package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/smfc-manager/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo roster into an empty roster_players table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM roster_players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count roster players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedRoster() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO roster_players (public_id, name, position, pace, shooting, passing, dribbling, defense, physicality, star_rating, selected)
VALUES (:public_id, :name, :position, :pace, :shooting, :passing, :dribbling, :defense, :physicality, :star_rating, FALSE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":   p.ID,
			"name":        p.Name,
			"position":    string(p.Position),
			"pace":        p.Attributes.Pace,
			"shooting":    p.Attributes.Shooting,
			"passing":     p.Attributes.Passing,
			"dribbling":   p.Attributes.Dribbling,
			"defense":     p.Attributes.Defense,
			"physicality": p.Attributes.Physicality,
			"star_rating": p.StarRating,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
