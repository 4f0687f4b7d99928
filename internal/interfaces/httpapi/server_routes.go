package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("GET /v1/roster", handler.ListRoster)
	mux.Handle("POST /v1/admin/roster/import", RequireAdminToken(adminToken, http.HandlerFunc(handler.ImportRoster)))
	mux.Handle("POST /v1/admin/roster/sync", RequireAdminToken(adminToken, http.HandlerFunc(handler.SyncRoster)))
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/sessions", handler.CreateSession)
	mux.HandleFunc("GET /v1/sessions/{sessionID}", handler.GetSession)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/refresh", handler.RefreshSession)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/selection/toggle", handler.ToggleSelection)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/selection/paste", handler.PasteSelection)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/guests", handler.SetGuests)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/guests/{name}", handler.SetGuestProfile)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}/positions", handler.ChangePosition)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/squad", handler.GenerateSquad)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/squad", handler.GetSquad)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/squad/transfer", handler.TransferPlayers)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/lineup", handler.GetLineup)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/summary", handler.RenderSummary)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("POST /v1/matches/parse", handler.ParseMatchLog)
	mux.Handle("POST /v1/admin/matches", RequireAdminToken(adminToken, http.HandlerFunc(handler.LogMatch)))
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/overview", handler.GetOverview)
}
