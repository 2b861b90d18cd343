package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/spreadpool/against-the-spread/internal/usecase"
)

// picksMaxBytes caps the picks request body; a six-pick submission is tiny.
const picksMaxBytes = 64 << 10

type submitPicksRequest struct {
	Name  string   `json:"name"`
	Week  int      `json:"week"`
	Year  int      `json:"year"`
	Picks []string `json:"picks"`
	// Accepted on the wire but discarded; the submission time is stamped
	// server-side.
	SubmittedAt time.Time `json:"submittedAt"`
}

// SubmitPicks validates a submission and responds with the generated picks
// workbook as a download attachment. Field-level rules live on the domain
// model so their messages reach the client verbatim.
func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	var req submitPicksRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, picksMaxBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	submission, workbook, err := h.picksService.Submit(ctx, usecase.SubmitPicksInput{
		Name:  req.Name,
		Week:  req.Week,
		Year:  req.Year,
		Picks: req.Picks,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "week", req.Week, "year", req.Year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeWorkbook(ctx, w, submission.DownloadFilename(), workbook)
}
