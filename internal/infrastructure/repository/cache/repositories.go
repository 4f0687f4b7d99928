package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	basecache "github.com/riskibarqy/smfc-manager/internal/platform/cache"
)

const (
	rosterListKey = "roster:list"
	rosterIDKey   = "roster:id:"
	matchListKey  = "match:list"
)

// PlayerRepository caches roster reads. Any Upsert drops every cached entry.
type PlayerRepository struct {
	next player.Repository
	list *basecache.Store[[]player.Player]
	byID *basecache.Store[cachedPlayerByID]
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next: next,
		list: basecache.NewStore[[]player.Player](ttl),
		byID: basecache.NewStore[cachedPlayerByID](ttl),
	}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.list.GetOrLoad(ctx, rosterListKey, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, rosterIDKey+playerID, func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}

	r.list.Delete(ctx, rosterListKey)
	r.byID.DeletePrefix(ctx, rosterIDKey)
	return nil
}

// MatchRepository caches the match log between appends.
type MatchRepository struct {
	next  matchrecord.Repository
	cache *basecache.Store[[]matchrecord.MatchRecord]
}

func NewMatchRepository(next matchrecord.Repository, ttl time.Duration) *MatchRepository {
	return &MatchRepository{
		next:  next,
		cache: basecache.NewStore[[]matchrecord.MatchRecord](ttl),
	}
}

func (r *MatchRepository) Append(ctx context.Context, m matchrecord.MatchRecord) error {
	if err := r.next.Append(ctx, m); err != nil {
		return err
	}

	r.cache.Delete(ctx, matchListKey)
	return nil
}

func (r *MatchRepository) List(ctx context.Context) ([]matchrecord.MatchRecord, error) {
	items, err := r.cache.GetOrLoad(ctx, matchListKey, func(ctx context.Context) ([]matchrecord.MatchRecord, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	// Team slices are shared with the cache; copy them so callers may mutate.
	out := make([]matchrecord.MatchRecord, 0, len(items))
	for _, m := range items {
		m.TeamBlue = append([]string(nil), m.TeamBlue...)
		m.TeamRed = append([]string(nil), m.TeamRed...)
		out = append(out, m)
	}
	return out, nil
}
