package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

func (h *Handler) GenerateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSquad")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req generateSquadRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	sess, err := h.squadService.Generate(ctx, sessionID, usecase.GenerateInput{
		Format: req.Format,
		Policy: req.Policy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate squad failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(*sess.Squad))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	sq, err := h.squadService.Get(ctx, sessionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(sq))
}

func (h *Handler) TransferPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferPlayers")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req transferRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.squadService.Transfer(ctx, sessionID, req.Red, req.Blue)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferDTO{
		Applied: outcome.Applied,
		Entry:   outcome.Entry,
		Message: outcome.Message,
		Squad:   squadToDTO(outcome.Squad),
	})
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	format := strings.TrimSpace(r.URL.Query().Get("format"))
	lineup, err := h.squadService.Lineup(ctx, sessionID, format)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(lineup))
}

func (h *Handler) RenderSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenderSummary")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req summaryRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	text, err := h.squadService.Summary(ctx, sessionID, usecase.SummaryInput{
		Date:            req.Date,
		Kickoff:         req.Kickoff,
		DurationMinutes: req.DurationMinutes,
		Venue:           req.Venue,
		CostPerPlayer:   req.CostPerPlayer,
		PaymentHandle:   req.PaymentHandle,
		LateFee:         req.LateFee,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "render summary failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryDTO{Text: text})
}
