package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/session"
)

func TestSessionRepository_UpdateIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(0)
	if err := repo.Create(ctx, session.Session{ID: "s1", Roster: SeedRoster()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Roster[0].Name = "mutated"

	again, _ := repo.Get(ctx, "s1")
	if again.Roster[0].Name == "mutated" {
		t.Fatalf("expected repository to hand out copies")
	}
}

func TestSessionRepository_FailedUpdateIsDiscarded(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(0)
	_ = repo.Create(ctx, session.Session{ID: "s1", Roster: SeedRoster()})

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "s1", func(s *session.Session) error {
		s.Roster[0].Selected = true
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, _ := repo.Get(ctx, "s1")
	if got.Roster[0].Selected {
		t.Fatalf("expected failed update to leave session untouched")
	}
}

func TestSessionRepository_ConcurrentUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(0)
	_ = repo.Create(ctx, session.Session{ID: "s1"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, "s1", func(s *session.Session) error {
				s.PositionChanges = append(s.PositionChanges, "x")
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := repo.Get(ctx, "s1")
	if len(got.PositionChanges) != 50 {
		t.Fatalf("expected 50 serialized updates, got %d", len(got.PositionChanges))
	}
}

func TestSessionRepository_ExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)
	now := time.Date(2026, 10, 14, 7, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	_ = repo.Create(ctx, session.Session{ID: "s1", CreatedAt: now, UpdatedAt: now})
	now = now.Add(2 * time.Hour)

	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected empty repository")
	}
}

func TestMatchRepository_AppendOnlyCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(nil)
	m := SeedMatches()[0]
	if err := repo.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}

	items, _ := repo.List(ctx)
	items[0].TeamBlue[0] = "mutated"

	again, _ := repo.List(ctx)
	if again[0].TeamBlue[0] == "mutated" {
		t.Fatalf("expected copies from List")
	}
}

func TestPlayerRepository_UpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	seed := SeedRoster()
	repo := NewPlayerRepository(seed[:2])

	updated := seed[0]
	updated.Name = "Akhil K"
	_ = repo.Upsert(ctx, updated)
	_ = repo.Upsert(ctx, seed[2])

	items, _ := repo.List(ctx)
	if len(items) != 3 || items[0].Name != "Akhil K" || items[2].ID != seed[2].ID {
		t.Fatalf("unexpected roster order: %+v", items)
	}
}
