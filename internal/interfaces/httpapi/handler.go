package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/spreadpool/against-the-spread/internal/platform/logging"
	"github.com/spreadpool/against-the-spread/internal/usecase"
)

const defaultUploadMaxBytes = 5 << 20

type Handler struct {
	linesService   *usecase.LinesService
	picksService   *usecase.PicksService
	uploadMaxBytes int64
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	linesService *usecase.LinesService,
	picksService *usecase.PicksService,
	uploadMaxBytes int64,
	logger *logging.Logger,
) *Handler {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		linesService:   linesService,
		picksService:   picksService,
		uploadMaxBytes: uploadMaxBytes,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
