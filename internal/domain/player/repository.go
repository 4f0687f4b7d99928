package player

import "context"

// Repository persists the club roster.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Upsert(ctx context.Context, p Player) error
}
