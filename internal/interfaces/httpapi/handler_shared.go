package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

// maxBodyBytes caps request bodies; pasted chat lists and roster CSVs stay well below it.
const maxBodyBytes = 1 << 20

type Handler struct {
	sessionService *usecase.SessionService
	squadService   *usecase.SquadService
	matchService   *usecase.MatchService
	rosterService  *usecase.RosterService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	sessionService *usecase.SessionService,
	squadService *usecase.SquadService,
	matchService *usecase.MatchService,
	rosterService *usecase.RosterService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		sessionService: sessionService,
		squadService:   squadService,
		matchService:   matchService,
		rosterService:  rosterService,
		logger:         logger.Named("httpapi"),
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body into dst and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func parseLimit(r *http.Request, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: limit must be positive integer", usecase.ErrInvalidInput)
	}
	return v, nil
}

type toggleSelectionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
}

type pasteSelectionRequest struct {
	Text string `json:"text" validate:"required"`
}

type setGuestsRequest struct {
	Guests string `json:"guests" validate:"max=2000"`
}

type guestProfileRequest struct {
	Position string  `json:"position" validate:"omitempty,max=16"`
	Stars    float64 `json:"stars" validate:"omitempty,gte=1,lte=5"`
}

type changePositionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Position string `json:"position" validate:"required,max=16"`
}

type generateSquadRequest struct {
	Format string `json:"format" validate:"omitempty,max=8"`
	Policy string `json:"policy" validate:"omitempty,oneof=snake jitter"`
}

type transferRequest struct {
	Red  string `json:"red" validate:"required,max=100"`
	Blue string `json:"blue" validate:"required,max=100"`
}

type summaryRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Kickoff         string `json:"kickoff" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=60,lte=120"`
	Venue           string `json:"venue" validate:"omitempty,max=100"`
	CostPerPlayer   string `json:"cost_per_player" validate:"omitempty,max=50"`
	PaymentHandle   string `json:"payment_handle" validate:"omitempty,max=100"`
	LateFee         string `json:"late_fee" validate:"omitempty,max=50"`
}

type parseMatchRequest struct {
	Text string `json:"text" validate:"required"`
}

type logMatchRequest struct {
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string   `json:"time" validate:"omitempty,max=40"`
	Venue     string   `json:"venue" validate:"omitempty,max=100"`
	ScoreBlue int      `json:"score_blue" validate:"gte=0,lte=99"`
	ScoreRed  int      `json:"score_red" validate:"gte=0,lte=99"`
	Winner    string   `json:"winner" validate:"omitempty,max=8"`
	TeamBlue  []string `json:"team_blue" validate:"required,min=1,dive,required,max=100"`
	TeamRed   []string `json:"team_red" validate:"required,min=1,dive,required,max=100"`
}

type importRosterRequest struct {
	Rows []map[string]string `json:"rows" validate:"required,min=1"`
}
