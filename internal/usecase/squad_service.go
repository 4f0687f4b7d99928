package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/formation"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/domain/session"
	"github.com/riskibarqy/smfc-manager/internal/domain/squad"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type SquadServiceConfig struct {
	DefaultFormat string
	DefaultVenue  string
	// NewRand seeds the jitter policy; nil uses a time-seeded source.
	NewRand func() *rand.Rand
}

// SquadService generates and adjusts the teams of a session.
type SquadService struct {
	sessionRepo session.Repository
	cfg         SquadServiceConfig
	logger      *logging.Logger
}

func NewSquadService(sessionRepo session.Repository, cfg SquadServiceConfig, logger *logging.Logger) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}
	if _, ok := formation.Lookup(cfg.DefaultFormat); !ok {
		cfg.DefaultFormat = formation.DefaultFormat
	}
	return &SquadService{
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger.Named("usecase.squad"),
	}
}

type GenerateInput struct {
	Format string
	Policy string
}

// Generate balances the session's active players and replaces any previous
// squad and transfer history.
func (s *SquadService) Generate(ctx context.Context, sessionID string, input GenerateInput) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Generate", attribute.String("session.id", sessionID))
	defer span.End()

	policy, err := squad.ParsePolicy(strings.ToLower(strings.TrimSpace(input.Policy)))
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: policy %q", ErrInvalidInput, input.Policy)
	}
	format, err := s.resolveFormat(input.Format)
	if err != nil {
		return session.Session{}, err
	}

	opts := squad.Options{Policy: policy}
	if policy == squad.PolicyJitter && s.cfg.NewRand != nil {
		opts.Rand = s.cfg.NewRand()
	}

	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		balanced, err := squad.Balance(sess.ActivePlayers(), opts)
		if err != nil {
			if errors.Is(err, squad.ErrEmptyRoster) {
				return fmt.Errorf("%w: select players or add guests first", ErrNothingToGenerate)
			}
			return err
		}
		sess.Squad = &balanced
		sess.Format = format.Name
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return session.Session{}, err
	}

	s.logger.InfoContext(ctx, "squad generated",
		"session_id", sessionID,
		"policy", string(policy),
		"format", format.Name,
		"red_size", sess.Squad.Size(squad.TeamRed),
		"blue_size", sess.Squad.Size(squad.TeamBlue),
		"red_power", sess.Squad.AveragePower(squad.TeamRed),
		"blue_power", sess.Squad.AveragePower(squad.TeamBlue),
	)
	return sess, nil
}

func (s *SquadService) Get(ctx context.Context, sessionID string) (squad.Squad, error) {
	sess, err := s.sessionRepo.Get(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return squad.Squad{}, mapSessionError(err, sessionID)
	}
	if sess.Squad == nil {
		return squad.Squad{}, fmt.Errorf("%w: no squad generated for session=%s", ErrNotFound, sessionID)
	}
	return *sess.Squad, nil
}

type TransferOutcome struct {
	Applied bool
	Entry   string
	Message string
	Squad   squad.Squad
}

// Transfer swaps one Red and one Blue player. References that do not resolve
// return an unapplied outcome rather than an error.
func (s *SquadService) Transfer(ctx context.Context, sessionID, redRef, blueRef string) (TransferOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Transfer", attribute.String("session.id", sessionID))
	defer span.End()

	var outcome TransferOutcome
	_, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		if sess.Squad == nil {
			return fmt.Errorf("%w: no squad generated for session=%s", ErrNotFound, sessionID)
		}
		res := sess.Squad.Transfer(redRef, blueRef)
		outcome = TransferOutcome{Applied: res.Applied, Entry: res.Entry, Message: res.Message, Squad: sess.Squad.Clone()}
		return nil
	})
	if err != nil {
		return TransferOutcome{}, err
	}

	if outcome.Applied {
		s.logger.InfoContext(ctx, "transfer applied", "session_id", sessionID, "entry", outcome.Entry)
	} else {
		s.logger.InfoContext(ctx, "transfer rejected", "session_id", sessionID, "reason", outcome.Message)
	}
	return outcome, nil
}

type Lineup struct {
	Format string
	Red    formation.Placement
	Blue   formation.Placement
}

// Lineup maps both teams onto a preset; an empty format uses the one chosen at generation.
func (s *SquadService) Lineup(ctx context.Context, sessionID, format string) (Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Lineup", attribute.String("session.id", sessionID))
	defer span.End()

	sess, err := s.sessionRepo.Get(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return Lineup{}, mapSessionError(err, sessionID)
	}
	if sess.Squad == nil {
		return Lineup{}, fmt.Errorf("%w: no squad generated for session=%s", ErrNotFound, sessionID)
	}
	if strings.TrimSpace(format) == "" {
		format = sess.Format
	}
	f, err := s.resolveFormat(format)
	if err != nil {
		return Lineup{}, err
	}

	return Lineup{
		Format: f.Name,
		Red:    formation.Place(teamPlayers(*sess.Squad, squad.TeamRed), f, formation.SideRed),
		Blue:   formation.Place(teamPlayers(*sess.Squad, squad.TeamBlue), f, formation.SideBlue),
	}, nil
}

type SummaryInput struct {
	Date            string
	Kickoff         string
	DurationMinutes int
	Venue           string
	CostPerPlayer   string
	PaymentHandle   string
	LateFee         string
}

// Summary renders the chat announcement for the current squad.
func (s *SquadService) Summary(ctx context.Context, sessionID string, input SummaryInput) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Summary", attribute.String("session.id", sessionID))
	defer span.End()

	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	kickoff, err := time.Parse("15:04", strings.TrimSpace(input.Kickoff))
	if err != nil {
		return "", fmt.Errorf("%w: kickoff must be HH:MM", ErrInvalidInput)
	}
	if input.DurationMinutes != 0 && (input.DurationMinutes < squad.MinDurationMinutes || input.DurationMinutes > squad.MaxDurationMinutes) {
		return "", fmt.Errorf("%w: duration must be between %d and %d minutes", ErrInvalidInput, squad.MinDurationMinutes, squad.MaxDurationMinutes)
	}
	venue := strings.TrimSpace(input.Venue)
	if venue == "" {
		venue = s.cfg.DefaultVenue
	}

	sq, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return squad.Summary(sq, squad.MatchSettings{
		Date:            date,
		Kickoff:         kickoff,
		DurationMinutes: input.DurationMinutes,
		Venue:           venue,
		CostPerPlayer:   strings.TrimSpace(input.CostPerPlayer),
		PaymentHandle:   strings.TrimSpace(input.PaymentHandle),
		LateFee:         strings.TrimSpace(input.LateFee),
	}), nil
}

func (s *SquadService) resolveFormat(raw string) (formation.Format, error) {
	if strings.TrimSpace(raw) == "" {
		return formation.Resolve(s.cfg.DefaultFormat), nil
	}
	f, ok := formation.Lookup(raw)
	if !ok {
		return formation.Format{}, fmt.Errorf("%w: unknown format %q, expected one of %s", ErrInvalidInput, raw, strings.Join(formation.Names(), ", "))
	}
	return f, nil
}

func (s *SquadService) update(ctx context.Context, sessionID string, fn func(*session.Session) error) (session.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return session.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	sess, err := s.sessionRepo.Update(ctx, sessionID, func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		sess.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNothingToGenerate) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			return session.Session{}, err
		}
		return session.Session{}, mapSessionError(err, sessionID)
	}
	return sess, nil
}

func teamPlayers(sq squad.Squad, t squad.Team) []player.Player {
	members := sq.Team(t)
	out := make([]player.Player, 0, len(members))
	for _, m := range members {
		out = append(out, m.Player)
	}
	return out
}
