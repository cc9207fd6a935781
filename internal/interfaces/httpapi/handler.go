package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/platform/cache"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/riskibarqy/today-api/internal/usecase"
)

// CacheStats reports tier occupancy for /healthz.
type CacheStats interface {
	Stats() []cache.TierStats
}

type Handler struct {
	fixtureService   *usecase.FixtureService
	referenceService *usecase.ReferenceService
	cacheStats       CacheStats
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	fixtureService *usecase.FixtureService,
	referenceService *usecase.ReferenceService,
	cacheStats CacheStats,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		fixtureService:   fixtureService,
		referenceService: referenceService,
		cacheStats:       cacheStats,
		logger:           logger,
		validator:        newValidator(),
	}
}

// idListPattern accepts upstream style "1-2-3" as well as "1,2,3".
var idListPattern = regexp.MustCompile(`^\d+([,-]\d+)*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("idlist", func(fl validator.FieldLevel) bool {
		return idListPattern.MatchString(fl.Field().String())
	})
	return v
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// respond validates req and writes the envelope produced by run.
func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, req any, run func() football.Envelope) {
	if req != nil {
		if err := h.validateRequest(ctx, req); err != nil {
			h.logger.DebugContext(ctx, "rejected request", "error", err)
			writeError(ctx, w, err)
			return
		}
	}
	writeEnvelope(ctx, w, run())
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"message": "Today API is live"})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{"status": "ok"}
	if h.cacheStats != nil {
		payload["cache"] = h.cacheStats.Stats()
	}
	writeJSON(r.Context(), w, http.StatusOK, payload)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	return parseInt64(name, r.PathValue(name))
}

// queryInt64 returns 0 when the parameter is absent.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	return parseInt64(name, raw)
}

func parseInt64(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func normalizeIDList(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", "-")
}
