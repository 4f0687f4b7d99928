package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/leaderboard"
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/platform/id"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultRecentLimit = 10

type MatchServiceConfig struct {
	MinMatches   int
	DefaultVenue string
}

// MatchService records fixtures and derives the leaderboard from the log.
type MatchService struct {
	matchRepo  matchrecord.Repository
	rosterRepo player.Repository
	idGen      id.Generator
	cfg        MatchServiceConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(matchRepo matchrecord.Repository, rosterRepo player.Repository, idGen id.Generator, cfg MatchServiceConfig, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MinMatches <= 0 {
		cfg.MinMatches = leaderboard.DefaultMinMatches
	}
	return &MatchService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		idGen:      idGen,
		cfg:        cfg,
		logger:     logger.Named("usecase.match"),
		now:        time.Now,
	}
}

// ParseLog drafts a record from a pasted announcement. Nothing is stored.
func (s *MatchService) ParseLog(_ context.Context, text string) (matchrecord.MatchRecord, error) {
	if strings.TrimSpace(text) == "" {
		return matchrecord.MatchRecord{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	return matchrecord.ParseLog(text, s.now(), s.cfg.DefaultVenue), nil
}

type MatchInput struct {
	Date      string
	Time      string
	Venue     string
	ScoreBlue int
	ScoreRed  int
	Winner    string
	TeamBlue  []string
	TeamRed   []string
}

// LogMatch appends a fixture. A supplied winner must agree with the score.
func (s *MatchService) LogMatch(ctx context.Context, input MatchInput) (matchrecord.MatchRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.LogMatch")
	defer span.End()

	date := strings.TrimSpace(input.Date)
	if _, err := time.Parse(matchrecord.DateLayout, date); err != nil {
		return matchrecord.MatchRecord{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	m := matchrecord.Normalize(matchrecord.MatchRecord{
		Date:      date,
		Time:      strings.TrimSpace(input.Time),
		Venue:     input.Venue,
		ScoreBlue: input.ScoreBlue,
		ScoreRed:  input.ScoreRed,
		TeamBlue:  input.TeamBlue,
		TeamRed:   input.TeamRed,
	})
	if m.Venue == "" {
		m.Venue = s.cfg.DefaultVenue
	}
	if raw := strings.TrimSpace(input.Winner); raw != "" {
		supplied, ok := matchrecord.ParseWinner(raw)
		if !ok {
			return matchrecord.MatchRecord{}, fmt.Errorf("%w: unknown winner %q", ErrInvalidInput, raw)
		}
		if supplied != m.Winner {
			return matchrecord.MatchRecord{}, fmt.Errorf("%w: %w: %s for %d-%d", ErrInvalidInput, matchrecord.ErrWinnerMismatch, supplied, m.ScoreBlue, m.ScoreRed)
		}
	}
	if err := m.Validate(); err != nil {
		return matchrecord.MatchRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return matchrecord.MatchRecord{}, fmt.Errorf("generate match id: %w", err)
	}
	m.ID = matchID
	m.CreatedAt = s.now().UTC()

	if err := s.matchRepo.Append(ctx, m); err != nil {
		recordSpanError(span, err)
		return matchrecord.MatchRecord{}, fmt.Errorf("append match record: %w", err)
	}

	s.logger.InfoContext(ctx, "match logged",
		"match_id", m.ID,
		"date", m.Date,
		"score", fmt.Sprintf("%d-%d", m.ScoreBlue, m.ScoreRed),
		"winner", string(m.Winner),
	)
	return m, nil
}

// ListRecent returns the newest fixtures first. limit <= 0 uses DefaultRecentLimit.
func (s *MatchService) ListRecent(ctx context.Context, limit int) ([]matchrecord.MatchRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListRecent", attribute.Int("limit", limit))
	defer span.End()

	records, err := s.matchRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%w: list match records: %v", ErrDependencyUnavailable, err)
	}
	return recent(records, limit), nil
}

type LeaderboardResult struct {
	Entries  []leaderboard.Entry
	Degraded bool
}

// Leaderboard never fails on a source outage; it returns an empty degraded table instead.
func (s *MatchService) Leaderboard(ctx context.Context) (LeaderboardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Leaderboard")
	defer span.End()

	src := s.load(ctx)
	return LeaderboardResult{
		Entries:  leaderboard.Aggregate(src.records, src.officialNames(), leaderboard.Options{MinMatches: s.cfg.MinMatches}),
		Degraded: src.degraded(),
	}, nil
}

type Overview struct {
	TotalMatches  int
	TotalGoals    int
	PlayerCount   int
	Spotlights    leaderboard.Spotlights
	HasSpotlights bool
	Leaderboard   []leaderboard.Entry
	Recent        []matchrecord.MatchRecord
	Degraded      bool
}

func (s *MatchService) Overview(ctx context.Context, recentLimit int) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Overview")
	defer span.End()

	src := s.load(ctx)
	entries := leaderboard.Aggregate(src.records, src.officialNames(), leaderboard.Options{MinMatches: s.cfg.MinMatches})
	spotlights, ok := leaderboard.Highlight(entries)

	out := Overview{
		TotalMatches:  len(src.records),
		PlayerCount:   len(src.roster),
		Spotlights:    spotlights,
		HasSpotlights: ok,
		Leaderboard:   entries,
		Recent:        recent(src.records, recentLimit),
		Degraded:      src.degraded(),
	}
	for _, m := range src.records {
		out.TotalGoals += m.ScoreBlue + m.ScoreRed
	}
	return out, nil
}

type analyticsSource struct {
	roster    []player.Player
	records   []matchrecord.MatchRecord
	rosterErr error
	matchErr  error
}

func (a analyticsSource) degraded() bool {
	return a.rosterErr != nil || a.matchErr != nil
}

func (a analyticsSource) officialNames() []string {
	names := make([]string, 0, len(a.roster))
	for _, p := range a.roster {
		names = append(names, p.Name)
	}
	return names
}

// load reads the roster and the match log concurrently.
func (s *MatchService) load(ctx context.Context) analyticsSource {
	var src analyticsSource
	var wg conc.WaitGroup
	wg.Go(func() {
		src.roster, src.rosterErr = s.rosterRepo.List(ctx)
	})
	wg.Go(func() {
		src.records, src.matchErr = s.matchRepo.List(ctx)
	})
	if r := wg.WaitAndRecover(); r != nil {
		err := errors.New(r.String())
		src.rosterErr = errors.Join(src.rosterErr, err)
	}

	if src.rosterErr != nil {
		s.logger.WarnContext(ctx, "roster unavailable for analytics", "error", src.rosterErr)
		src.roster = nil
	}
	if src.matchErr != nil {
		s.logger.WarnContext(ctx, "match log unavailable for analytics", "error", src.matchErr)
		src.records = nil
	}
	return src
}

// recent orders by PlayedOn desc; same-day records keep newest-appended first.
func recent(records []matchrecord.MatchRecord, limit int) []matchrecord.MatchRecord {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := make([]matchrecord.MatchRecord, len(records))
	for i := range records {
		out[len(records)-1-i] = records[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayedOn().After(out[j].PlayedOn())
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
