package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
)

// MatchRepository is an append-only log.
type MatchRepository struct {
	mu      sync.RWMutex
	records []matchrecord.MatchRecord
}

func NewMatchRepository(records []matchrecord.MatchRecord) *MatchRepository {
	r := &MatchRepository{}
	for _, m := range records {
		r.records = append(r.records, cloneMatch(m))
	}
	return r
}

func (r *MatchRepository) Append(_ context.Context, m matchrecord.MatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, cloneMatch(m))
	return nil
}

func (r *MatchRepository) List(_ context.Context) ([]matchrecord.MatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchrecord.MatchRecord, 0, len(r.records))
	for _, m := range r.records {
		out = append(out, cloneMatch(m))
	}
	return out, nil
}

func cloneMatch(m matchrecord.MatchRecord) matchrecord.MatchRecord {
	copied := m
	copied.TeamBlue = append([]string(nil), m.TeamBlue...)
	copied.TeamRed = append([]string(nil), m.TeamRed...)
	return copied
}
