package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	sess, err := h.sessionService.Create(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "create session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(sess))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	sess, err := h.sessionService.Get(ctx, sessionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}

func (h *Handler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshSession")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	sess, err := h.sessionService.Refresh(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}

func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSelection")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req toggleSelectionRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.sessionService.ToggleSelection(ctx, sessionID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle selection failed", "session_id", sessionID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}

func (h *Handler) PasteSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PasteSelection")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req pasteSelectionRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, result, err := h.sessionService.SelectFromList(ctx, sessionID, req.Text)
	if err != nil {
		h.logger.WarnContext(ctx, "paste selection failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	matched, guests := result.Matched, result.NewGuests
	if matched == nil {
		matched = []string{}
	}
	if guests == nil {
		guests = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, pasteResultDTO{
		Session:   sessionToDTO(sess),
		Matched:   matched,
		NewGuests: guests,
	})
}

func (h *Handler) SetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGuests")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req setGuestsRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.sessionService.SetGuests(ctx, sessionID, req.Guests)
	if err != nil {
		h.logger.WarnContext(ctx, "set guests failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}

func (h *Handler) SetGuestProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGuestProfile")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	name := strings.TrimSpace(r.PathValue("name"))
	var req guestProfileRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.sessionService.SetGuestProfile(ctx, sessionID, usecase.GuestProfileInput{
		Name:       name,
		Position:   req.Position,
		StarRating: req.Stars,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set guest profile failed", "session_id", sessionID, "guest", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}

func (h *Handler) ChangePosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangePosition")
	defer span.End()

	sessionID := sessionIDParam(r, span)
	var req changePositionRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.sessionService.ChangePosition(ctx, sessionID, req.PlayerID, req.Position)
	if err != nil {
		h.logger.WarnContext(ctx, "change position failed", "session_id", sessionID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}
