package session

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// Repository stores sessions. Update runs fn on a private copy and stores it
// only when fn succeeds; calls for the same session are serialized.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Update(ctx context.Context, sessionID string, fn func(*Session) error) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}
