package httpapi

import (
	"net/http"

	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

func (h *Handler) ParseMatchLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ParseMatchLog")
	defer span.End()

	var req parseMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draft, err := h.matchService.ParseLog(ctx, req.Text)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(draft))
}

func (h *Handler) LogMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LogMatch")
	defer span.End()

	var req logMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.LogMatch(ctx, usecase.MatchInput{
		Date:      req.Date,
		Time:      req.Time,
		Venue:     req.Venue,
		ScoreBlue: req.ScoreBlue,
		ScoreRed:  req.ScoreRed,
		Winner:    req.Winner,
		TeamBlue:  req.TeamBlue,
		TeamRed:   req.TeamRed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "log match failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(m))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	limit, err := parseLimit(r, usecase.DefaultRecentLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListRecent(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	result, err := h.matchService.Leaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Entries:  leaderboardEntriesToDTO(result.Entries),
		Degraded: result.Degraded,
	})
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	limit, err := parseLimit(r, usecase.DefaultRecentLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.matchService.Overview(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}
