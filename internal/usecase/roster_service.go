package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/platform/id"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultImportWorkers = 4

// SheetSource reads the published roster and match history tabs.
type SheetSource interface {
	FetchRoster(ctx context.Context) ([]player.Record, error)
	FetchMatches(ctx context.Context) ([]map[string]string, error)
}

type ImportStatus string

const (
	ImportStatusCreated ImportStatus = "created"
	ImportStatusUpdated ImportStatus = "updated"
	ImportStatusSkipped ImportStatus = "skipped"
	ImportStatusFailed  ImportStatus = "failed"
)

type ImportRowResult struct {
	Index    int
	Name     string
	PlayerID string
	Status   ImportStatus
	Message  string
}

type ImportResult struct {
	Rows    []ImportRowResult
	Created int
	Updated int
	Skipped int
	Failed  int
}

type SyncResult struct {
	Roster          ImportResult
	MatchesAppended int
	MatchesSkipped  int
}

// RosterService manages the persisted club roster.
type RosterService struct {
	rosterRepo player.Repository
	matchRepo  matchrecord.Repository
	sheets     SheetSource
	idGen      id.Generator
	workers    int
	logger     *logging.Logger
}

// NewRosterService accepts a nil sheets source when spreadsheet sync is disabled.
func NewRosterService(
	rosterRepo player.Repository,
	matchRepo matchrecord.Repository,
	sheets SheetSource,
	idGen id.Generator,
	workers int,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultImportWorkers
	}
	return &RosterService{
		rosterRepo: rosterRepo,
		matchRepo:  matchRepo,
		sheets:     sheets,
		idGen:      idGen,
		workers:    workers,
		logger:     logger.Named("usecase.roster"),
	}
}

func (s *RosterService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.List")
	defer span.End()

	items, err := s.rosterRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%w: list roster: %v", ErrDependencyUnavailable, err)
	}
	out := make([]player.Player, 0, len(items))
	for _, p := range items {
		out = append(out, player.Normalize(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *RosterService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.rosterRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player id=%s: %w", playerID, err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player id=%s", ErrNotFound, playerID)
	}
	return player.Normalize(p), nil
}

type importTask struct {
	index   int
	player  player.Player
	created bool
}

// Import upserts roster rows concurrently. Existing players are matched by
// normalized name so their IDs stay stable; a repeated name within the batch
// keeps the first row. Results are ordered by row index.
func (s *RosterService) Import(ctx context.Context, rows []player.Record) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Import", attribute.Int("rows", len(rows)))
	defer span.End()

	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no roster rows supplied", ErrInvalidInput)
	}

	existing, err := s.rosterRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return ImportResult{}, fmt.Errorf("%w: list roster: %v", ErrDependencyUnavailable, err)
	}
	idsByKey := make(map[string]string, len(existing))
	for _, p := range existing {
		idsByKey[player.NameKey(p.Name)] = p.ID
	}

	results := make([]ImportRowResult, 0, len(rows))
	tasks := make([]importTask, 0, len(rows))
	firstRow := make(map[string]int, len(rows))
	for i, row := range rows {
		p, ok := player.FromRecord(row)
		if !ok {
			results = append(results, ImportRowResult{Index: i, Status: ImportStatusSkipped, Message: "name is blank"})
			continue
		}
		key := player.NameKey(p.Name)
		if first, dup := firstRow[key]; dup {
			results = append(results, ImportRowResult{
				Index:   i,
				Name:    p.Name,
				Status:  ImportStatusSkipped,
				Message: fmt.Sprintf("duplicate of row %d", first),
			})
			continue
		}
		firstRow[key] = i

		task := importTask{index: i, player: p}
		if existingID, ok := idsByKey[key]; ok {
			task.player.ID = existingID
		} else {
			newID, err := s.idGen.NewID()
			if err != nil {
				return ImportResult{}, fmt.Errorf("generate player id: %w", err)
			}
			task.player.ID = newID
			task.created = true
		}
		tasks = append(tasks, task)
	}

	upserted, err := s.upsertAll(ctx, tasks)
	if err != nil {
		recordSpanError(span, err)
		return ImportResult{}, err
	}
	results = append(results, upserted...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	out := ImportResult{Rows: results}
	for _, row := range results {
		switch row.Status {
		case ImportStatusCreated:
			out.Created++
		case ImportStatusUpdated:
			out.Updated++
		case ImportStatusSkipped:
			out.Skipped++
		default:
			out.Failed++
		}
	}

	s.logger.InfoContext(ctx, "roster import finished",
		"rows", len(rows),
		"created", out.Created,
		"updated", out.Updated,
		"skipped", out.Skipped,
		"failed", out.Failed,
	)
	return out, nil
}

func (s *RosterService) upsertAll(ctx context.Context, tasks []importTask) ([]ImportRowResult, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	workerCount := s.workers
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan ImportRowResult, len(tasks))
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := ImportRowResult{Index: task.index, Name: task.player.Name, PlayerID: task.player.ID}
			if err := s.upsertOne(ctx, task.player); err != nil {
				failedCount.Add(1)
				row.Status = ImportStatusFailed
				row.Message = err.Error()
			} else if task.created {
				row.Status = ImportStatusCreated
			} else {
				row.Status = ImportStatusUpdated
			}
			results <- row
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit import task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]ImportRowResult, 0, len(tasks))
	for row := range results {
		out = append(out, row)
	}
	if n := failedCount.Load(); n > 0 {
		s.logger.WarnContext(ctx, "roster rows failed to upsert", "failed", n)
	}
	return out, nil
}

func (s *RosterService) upsertOne(ctx context.Context, p player.Player) error {
	p = player.Normalize(p)
	if err := p.Validate(); err != nil {
		return err
	}
	return s.rosterRepo.Upsert(ctx, p)
}

// SyncFromSheets imports the published roster and appends history rows not
// already in the match log.
func (s *RosterService) SyncFromSheets(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SyncFromSheets")
	defer span.End()

	if s.sheets == nil {
		return SyncResult{}, fmt.Errorf("%w: spreadsheet sync is disabled", ErrDependencyUnavailable)
	}

	rows, err := s.sheets.FetchRoster(ctx)
	if err != nil {
		recordSpanError(span, err)
		return SyncResult{}, fmt.Errorf("%w: fetch roster sheet: %v", ErrDependencyUnavailable, err)
	}
	var result SyncResult
	if len(rows) > 0 {
		result.Roster, err = s.Import(ctx, rows)
		if err != nil {
			return SyncResult{}, err
		}
	}

	if s.matchRepo == nil {
		return result, nil
	}
	appended, skipped, err := s.syncMatches(ctx)
	if err != nil {
		recordSpanError(span, err)
		return result, err
	}
	result.MatchesAppended = appended
	result.MatchesSkipped = skipped

	s.logger.InfoContext(ctx, "sheets sync finished",
		"roster_rows", len(rows),
		"matches_appended", appended,
		"matches_skipped", skipped,
	)
	return result, nil
}

func (s *RosterService) syncMatches(ctx context.Context) (int, int, error) {
	rows, err := s.sheets.FetchMatches(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: fetch match sheet: %v", ErrDependencyUnavailable, err)
	}
	existing, err := s.matchRepo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: list match records: %v", ErrDependencyUnavailable, err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		seen[matchrecord.DedupeKey(m)] = struct{}{}
	}

	var appended, skipped int
	for _, row := range rows {
		m, ok := matchrecord.FromRecord(row)
		if !ok {
			skipped++
			continue
		}
		m = matchrecord.Normalize(m)
		if m.Validate() != nil {
			skipped++
			continue
		}
		key := matchrecord.DedupeKey(m)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}

		m.ID, err = s.idGen.NewID()
		if err != nil {
			return appended, skipped, fmt.Errorf("generate match id: %w", err)
		}
		if err := s.matchRepo.Append(ctx, m); err != nil {
			return appended, skipped, errors.Join(ErrDependencyUnavailable, fmt.Errorf("append match record: %w", err))
		}
		seen[key] = struct{}{}
		appended++
	}
	return appended, skipped, nil
}
