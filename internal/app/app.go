package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/smfc-manager/external/sheets"
	"github.com/riskibarqy/smfc-manager/internal/config"
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/smfc-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/smfc-manager/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/smfc-manager/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/smfc-manager/internal/platform/id"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"github.com/riskibarqy/smfc-manager/internal/platform/resilience"
	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

type repositories struct {
	roster  player.Repository
	matches matchrecord.Repository
	db      *sqlx.DB
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// closes the database pool when one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if repos.db == nil {
			return nil
		}
		return repos.db.Close()
	}

	ids := idgen.NewRandomGenerator()
	sessionRepo := memory.NewSessionRepository(cfg.SessionTTL)

	var sheetSource usecase.SheetSource
	if cfg.SheetsEnabled {
		sheetSource = sheets.NewClient(sheets.ClientConfig{
			RosterCSVURL:  cfg.SheetsRosterCSVURL,
			MatchesCSVURL: cfg.SheetsMatchesCSVURL,
			Timeout:       cfg.SheetsTimeout,
			MaxRetries:    cfg.SheetsMaxRetries,
			Logger:        logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SheetsCircuitEnabled,
				FailureThreshold: cfg.SheetsCircuitFailureCount,
				OpenTimeout:      cfg.SheetsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SheetsCircuitHalfOpenMaxReq,
			},
		})
	}

	sessionSvc := usecase.NewSessionService(repos.roster, sessionRepo, ids, logger)
	squadSvc := usecase.NewSquadService(sessionRepo, usecase.SquadServiceConfig{
		DefaultFormat: cfg.DefaultMatchFormat,
		DefaultVenue:  cfg.DefaultVenue,
	}, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.roster, ids, usecase.MatchServiceConfig{
		MinMatches:   cfg.LeaderboardMinMatches,
		DefaultVenue: cfg.DefaultVenue,
	}, logger)
	rosterSvc := usecase.NewRosterService(repos.roster, repos.matches, sheetSource, ids, cfg.ImportWorkers, logger)

	handler := httpapi.NewHandler(sessionSvc, squadSvc, matchSvc, rosterSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage", cfg.StorageBackend,
		"cache_enabled", cfg.CacheEnabled,
		"sheets_enabled", cfg.SheetsEnabled,
		"admin_routes_enabled", cfg.AdminToken != "",
	)
	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBSeedOnStart {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("seed roster: %w", err)
			}
			logger.Info("roster seed applied")
		}
		repos = repositories{
			roster:  postgres.NewPlayerRepository(db),
			matches: postgres.NewMatchRepository(db),
			db:      db,
		}
	case config.StorageMemory, "":
		repos = repositories{
			roster:  memory.NewPlayerRepository(memory.SeedRoster()),
			matches: memory.NewMatchRepository(memory.SeedMatches()),
		}
	default:
		return repositories{}, errors.New("unsupported storage backend " + cfg.StorageBackend)
	}

	if cfg.CacheEnabled {
		repos.roster = cache.NewPlayerRepository(repos.roster, cfg.CacheTTL)
		repos.matches = cache.NewMatchRepository(repos.matches, cfg.CacheTTL)
	}
	return repos, nil
}
