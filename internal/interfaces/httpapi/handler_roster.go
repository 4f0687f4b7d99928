package httpapi

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/riskibarqy/smfc-manager/external/sheets"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	players, err := h.rosterService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

// ImportRoster accepts either {"rows": [...]} or a text/csv body using the sheet headers.
func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRoster")
	defer span.End()

	var rows []player.Record
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch strings.ToLower(mediaType) {
	case "text/csv":
		parsed, err := sheets.ParseCSV(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid CSV payload: %v", usecase.ErrInvalidInput, err))
			return
		}
		for _, row := range parsed {
			rows = append(rows, player.Record(row))
		}
	default:
		var req importRosterRequest
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		for _, row := range req.Rows {
			rows = append(rows, player.Record(row))
		}
	}

	result, err := h.rosterService.Import(ctx, rows)
	if err != nil {
		h.logger.WarnContext(ctx, "import roster failed", "rows", len(rows), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultToDTO(result))
}

func (h *Handler) SyncRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncRoster")
	defer span.End()

	result, err := h.rosterService.SyncFromSheets(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultDTO{
		Roster:          importResultToDTO(result.Roster),
		MatchesAppended: result.MatchesAppended,
		MatchesSkipped:  result.MatchesSkipped,
	})
}
