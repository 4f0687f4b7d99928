package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/smfc-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/smfc-manager/internal/platform/id"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

const testAdminToken = "letmein"

type testEnvelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, adminToken string) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	rosterRepo := memory.NewPlayerRepository(memory.SeedRoster())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	sessionRepo := memory.NewSessionRepository(time.Hour)

	handler := NewHandler(
		usecase.NewSessionService(rosterRepo, sessionRepo, id.NewSequenceGenerator("session"), logger),
		usecase.NewSquadService(sessionRepo, usecase.SquadServiceConfig{DefaultFormat: "7v7", DefaultVenue: "BFC"}, logger),
		usecase.NewMatchService(matchRepo, rosterRepo, id.NewSequenceGenerator("match"), usecase.MatchServiceConfig{MinMatches: 2, DefaultVenue: "BFC"}, logger),
		usecase.NewRosterService(rosterRepo, matchRepo, nil, id.NewSequenceGenerator("player"), 2, logger),
		logger,
	)
	return NewRouter(handler, logger, RouterOptions{
		SwaggerEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
		AdminToken:         adminToken,
	})
}

func do(t *testing.T, router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouter_SessionToSummaryFlow(t *testing.T) {
	router := newTestRouter(t, testAdminToken)

	rec := do(t, router, http.MethodPost, "/v1/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[sessionDTO](t, rec)
	if created.Data.ID != "session-1" || len(created.Data.Roster) != 18 {
		t.Fatalf("unexpected session: id=%q roster=%d", created.Data.ID, len(created.Data.Roster))
	}

	rec = do(t, router, http.MethodPost, "/v1/sessions/session-1/selection/paste",
		`{"text":"1. Akhil\n2. Isa\n3. Vaibhav\n4. Melwin\n5. Aravind\n6. Anchal\n7. Temp Guy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("paste: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	pasted := decode[pasteResultDTO](t, rec)
	if len(pasted.Data.Matched) != 6 || len(pasted.Data.NewGuests) != 1 || pasted.Data.NewGuests[0] != "Temp Guy" {
		t.Fatalf("unexpected paste result: %+v", pasted.Data)
	}
	if pasted.Data.Session.TotalCount != 7 {
		t.Fatalf("expected 7 active players, got %d", pasted.Data.Session.TotalCount)
	}

	rec = do(t, router, http.MethodPut, "/v1/sessions/session-1/guests/Temp%20Guy", `{"position":"GK","stars":4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("guest profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/v1/sessions/session-1/squad", `{"policy":"snake"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	generated := decode[squadDTO](t, rec)
	if generated.Data.Red.Size+generated.Data.Blue.Size != 7 {
		t.Fatalf("expected 7 placed members, got red=%d blue=%d", generated.Data.Red.Size, generated.Data.Blue.Size)
	}
	diff := generated.Data.Red.Size - generated.Data.Blue.Size
	if diff < -1 || diff > 1 {
		t.Fatalf("team sizes differ by more than one: %d vs %d", generated.Data.Red.Size, generated.Data.Blue.Size)
	}

	rec = do(t, router, http.MethodGet, "/v1/sessions/session-1/lineup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("lineup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	lineup := decode[lineupDTO](t, rec)
	if lineup.Data.Format != "7v7" {
		t.Fatalf("expected default format 7v7, got %q", lineup.Data.Format)
	}

	rec = do(t, router, http.MethodPost, "/v1/sessions/session-1/summary", `{"date":"2026-10-17","kickoff":"07:00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := decode[summaryDTO](t, rec)
	for _, want := range []string{"Date: Saturday, 17 Oct", "Time: 07:00 AM - 08:30 AM", "Ground: BFC", "BLUE TEAM", "RED TEAM", "Temp Guy"} {
		if !strings.Contains(summary.Data.Text, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary.Data.Text)
		}
	}
}

func TestRouter_GenerateWithoutSelectionIsUnprocessable(t *testing.T) {
	router := newTestRouter(t, testAdminToken)
	do(t, router, http.MethodPost, "/v1/sessions", "")

	rec := do(t, router, http.MethodPost, "/v1/sessions/session-1/squad", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode[map[string]any](t, rec)
	if body.Error == nil || body.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestRouter_RejectsUnknownFieldsAndMissingSessions(t *testing.T) {
	router := newTestRouter(t, testAdminToken)
	do(t, router, http.MethodPost, "/v1/sessions", "")

	rec := do(t, router, http.MethodPost, "/v1/sessions/session-1/selection/toggle", `{"player_id":"smfc-001","extra":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/v1/sessions/session-1/squad", `{"policy":"random"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown policy, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/v1/sessions/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/v1/matches?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestRouter_TransferRejectionIsNotAnError(t *testing.T) {
	router := newTestRouter(t, testAdminToken)
	do(t, router, http.MethodPost, "/v1/sessions", "")
	do(t, router, http.MethodPost, "/v1/sessions/session-1/selection/paste", `{"text":"1. Akhil\n2. Isa\n3. Vaibhav\n4. Melwin"}`)
	if rec := do(t, router, http.MethodPost, "/v1/sessions/session-1/squad", `{"format":"5v5"}`); rec.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(t, router, http.MethodPost, "/v1/sessions/session-1/squad/transfer", `{"red":"Nobody","blue":"Akhil"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	outcome := decode[transferDTO](t, rec)
	if outcome.Data.Applied || outcome.Data.Message == "" {
		t.Fatalf("expected rejected transfer with message, got %+v", outcome.Data)
	}
	if len(outcome.Data.Squad.Transfers) != 0 {
		t.Fatalf("rejected transfer must not be logged: %v", outcome.Data.Squad.Transfers)
	}
}

func TestRouter_AdminMatchLogging(t *testing.T) {
	router := newTestRouter(t, testAdminToken)
	payload := `{"date":"2026-10-17","time":"07:00 AM - 08:30 AM","score_blue":2,"score_red":1,"team_blue":["Akhil","Isa"],"team_red":["Vaibhav","Melwin"]}`

	rec := do(t, router, http.MethodPost, "/v1/admin/matches", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/v1/admin/matches", payload, adminTokenHeader, testAdminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	logged := decode[matchDTO](t, rec)
	if logged.Data.Winner != "Blue" || logged.Data.Venue != "BFC" || logged.Data.ID != "match-1" {
		t.Fatalf("unexpected logged match: %+v", logged.Data)
	}

	rec = do(t, router, http.MethodGet, "/v1/matches?limit=1", "")
	recent := decode[[]matchDTO](t, rec)
	if len(recent.Data) != 1 || recent.Data[0].Date != "2026-10-17" {
		t.Fatalf("expected newest match first, got %+v", recent.Data)
	}

	mismatch := strings.Replace(payload, `"score_red":1`, `"score_red":1,"winner":"Red"`, 1)
	rec = do(t, router, http.MethodPost, "/v1/admin/matches", mismatch, adminTokenHeader, testAdminToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for winner mismatch, got %d", rec.Code)
	}
}

func TestRouter_AdminRoutesDisabledWithoutToken(t *testing.T) {
	router := newTestRouter(t, "")

	rec := do(t, router, http.MethodPost, "/v1/admin/roster/sync", "", adminTokenHeader, "anything")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when admin token is unset, got %d", rec.Code)
	}
}

func TestRouter_ImportRosterCSV(t *testing.T) {
	router := newTestRouter(t, testAdminToken)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/roster/import",
		strings.NewReader("Name,Position,PAC,SHO,PAS,DRI,DEF,PHY\nAkhil,FWD,90,85,70,82,40,75\nNew Face,MID,60,60,60,60,60,60\n"))
	req.Header.Set("Content-Type", "text/csv; charset=utf-8")
	req.Header.Set(adminTokenHeader, testAdminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := decode[importResultDTO](t, rec)
	if result.Data.Created != 1 || result.Data.Updated != 1 {
		t.Fatalf("expected 1 created and 1 updated, got %+v", result.Data)
	}

	rec = do(t, router, http.MethodGet, "/v1/roster", "")
	roster := decode[[]playerDTO](t, rec)
	if len(roster.Data) != 19 {
		t.Fatalf("expected 19 players after import, got %d", len(roster.Data))
	}
}

func TestRouter_LeaderboardAndOverview(t *testing.T) {
	router := newTestRouter(t, testAdminToken)

	rec := do(t, router, http.MethodGet, "/v1/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: expected 200, got %d", rec.Code)
	}
	board := decode[leaderboardDTO](t, rec)
	if board.Data.Degraded {
		t.Fatalf("leaderboard should not be degraded")
	}
	for i, e := range board.Data.Entries {
		if e.Matches < 2 {
			t.Fatalf("entry %d (%s) below min matches: %d", i, e.Name, e.Matches)
		}
	}

	rec = do(t, router, http.MethodGet, "/v1/overview", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("overview: expected 200, got %d", rec.Code)
	}
	overview := decode[overviewDTO](t, rec)
	if overview.Data.TotalMatches != 3 || overview.Data.TotalGoals != 15 || overview.Data.PlayerCount != 18 {
		t.Fatalf("unexpected overview totals: %+v", overview.Data)
	}
}

func TestRouter_HealthAndDocs(t *testing.T) {
	router := newTestRouter(t, testAdminToken)

	if rec := do(t, router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	rec := do(t, router, http.MethodGet, "/openapi.yaml", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/v1/sessions/{sessionID}/squad") {
		t.Fatalf("openapi: unexpected response %d", rec.Code)
	}
}
