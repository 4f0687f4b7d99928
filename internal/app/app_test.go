package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/config"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
)

func TestNewHTTPServer_MemoryBackend(t *testing.T) {
	cfg := config.Config{
		AppEnv:                config.EnvDev,
		HTTPAddr:              ":0",
		StorageBackend:        config.StorageMemory,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		CORSAllowedOrigins:    []string{"*"},
		SessionTTL:            time.Hour,
		LeaderboardMinMatches: 2,
		DefaultMatchFormat:    "7v7",
		DefaultVenue:          "BFC",
		ImportWorkers:         2,
	}

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/roster", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from roster, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/admin/roster/sync", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected admin routes disabled without token, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	if _, _, err := NewHTTPServer(context.Background(), config.Config{}, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
