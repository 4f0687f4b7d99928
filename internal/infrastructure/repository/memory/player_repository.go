package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
)

// PlayerRepository keeps the roster in insertion order.
type PlayerRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{index: make(map[string]player.Player, len(players))}
	for _, p := range players {
		if _, exists := r.index[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.index[p.ID] = p
	}
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.index[id])
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.index[p.ID] = p
	return nil
}
