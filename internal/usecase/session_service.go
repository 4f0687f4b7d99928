package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/domain/session"
	"github.com/riskibarqy/smfc-manager/internal/platform/id"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// SessionService owns the roster selection workflow of one organiser session.
type SessionService struct {
	rosterRepo  player.Repository
	sessionRepo session.Repository
	idGen       id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewSessionService(rosterRepo player.Repository, sessionRepo session.Repository, idGen id.Generator, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		rosterRepo:  rosterRepo,
		sessionRepo: sessionRepo,
		idGen:       idGen,
		logger:      logger.Named("usecase.session"),
		now:         time.Now,
	}
}

// Create opens a session on a snapshot of the persisted roster. An
// unreachable roster yields an empty, degraded session instead of an error.
func (s *SessionService) Create(ctx context.Context) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Create")
	defer span.End()

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return session.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	roster, degraded := s.snapshotRoster(ctx)
	now := s.now().UTC()
	sess := session.Session{
		ID:        sessionID,
		Roster:    roster,
		Degraded:  degraded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		recordSpanError(span, err)
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "session created", "session_id", sessionID, "roster_size", len(roster), "degraded", degraded)
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (session.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return session.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return session.Session{}, mapSessionError(err, sessionID)
	}
	return sess, nil
}

// Refresh re-reads the roster and resets selection, guests, squad and edits.
func (s *SessionService) Refresh(ctx context.Context, sessionID string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Refresh", attribute.String("session.id", sessionID))
	defer span.End()

	roster, degraded := s.snapshotRoster(ctx)
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Roster = roster
		sess.Degraded = degraded
		sess.Guests = nil
		sess.Squad = nil
		sess.PositionChanges = nil
		return nil
	})
}

func (s *SessionService) ToggleSelection(ctx context.Context, sessionID, playerID string) (session.Session, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return session.Session{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		_, err := sess.ToggleSelection(playerID)
		return err
	})
}

// SelectFromList applies a pasted numbered chat list.
func (s *SessionService) SelectFromList(ctx context.Context, sessionID, text string) (session.Session, session.PasteResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SelectFromList", attribute.String("session.id", sessionID))
	defer span.End()

	if len(player.ExtractListedNames(text)) == 0 {
		return session.Session{}, session.PasteResult{}, fmt.Errorf("%w: no numbered names found in pasted text", ErrInvalidInput)
	}

	var result session.PasteResult
	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		result = sess.SelectFromPastedList(text)
		return nil
	})
	if err != nil {
		return session.Session{}, session.PasteResult{}, err
	}

	s.logger.InfoContext(ctx, "pasted list applied",
		"session_id", sessionID,
		"matched", len(result.Matched),
		"new_guests", len(result.NewGuests),
	)
	return sess, result, nil
}

func (s *SessionService) SetGuests(ctx context.Context, sessionID, raw string) (session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.SetGuests(raw)
		return nil
	})
}

type GuestProfileInput struct {
	Name       string
	Position   string
	StarRating float64
}

func (s *SessionService) SetGuestProfile(ctx context.Context, sessionID string, input GuestProfileInput) (session.Session, error) {
	if strings.TrimSpace(input.Name) == "" {
		return session.Session{}, fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	pos, ok := player.ParsePosition(input.Position)
	if !ok && strings.TrimSpace(input.Position) != "" {
		return session.Session{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
	}
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		_, err := sess.SetGuestProfile(input.Name, pos, input.StarRating)
		return err
	})
}

// ChangePosition edits a position for this session only; the roster store is untouched.
func (s *SessionService) ChangePosition(ctx context.Context, sessionID, playerID, position string) (session.Session, error) {
	pos, ok := player.ParsePosition(position)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
	}
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		_, err := sess.ChangePosition(strings.TrimSpace(playerID), pos)
		return err
	})
}

func (s *SessionService) update(ctx context.Context, sessionID string, fn func(*session.Session) error) (session.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return session.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	sess, err := s.sessionRepo.Update(ctx, sessionID, func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		sess.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return session.Session{}, mapSessionError(err, sessionID)
	}
	return sess, nil
}

func (s *SessionService) snapshotRoster(ctx context.Context) ([]player.Player, bool) {
	roster, err := s.rosterRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "roster unavailable, using empty roster", "error", err)
		return []player.Player{}, true
	}
	out := make([]player.Player, 0, len(roster))
	for _, p := range roster {
		out = append(out, player.Normalize(p))
	}
	return out, false
}

func mapSessionError(err error, sessionID string) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	case errors.Is(err, session.ErrPlayerNotFound), errors.Is(err, session.ErrGuestNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
}
