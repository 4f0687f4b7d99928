package matchrecord

import "context"

// Repository is the append-only match log.
type Repository interface {
	Append(ctx context.Context, m MatchRecord) error
	List(ctx context.Context) ([]MatchRecord, error)
}
