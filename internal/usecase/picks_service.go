package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/spreadpool/against-the-spread/internal/domain/picks"
	"github.com/spreadpool/against-the-spread/internal/platform/excel"
	"github.com/spreadpool/against-the-spread/internal/platform/logging"
)

type SubmitPicksInput struct {
	Name  string
	Week  int
	Year  int
	Picks []string
}

// PicksService validates a submission and renders it into a downloadable
// workbook. Submissions are not persisted.
type PicksService struct {
	logger *logging.Logger
	now    func() time.Time
}

func NewPicksService(logger *logging.Logger) *PicksService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PicksService{logger: logger, now: time.Now}
}

// Submit stamps the submission time server-side, validates the picks, and
// returns the submission together with the generated workbook bytes. A rule
// violation comes back as the domain validation error so its message reaches
// the caller verbatim.
func (s *PicksService) Submit(ctx context.Context, input SubmitPicksInput) (picks.UserPicks, []byte, error) {
	submission := picks.UserPicks{
		Name:        input.Name,
		Week:        input.Week,
		Year:        input.Year,
		Picks:       input.Picks,
		SubmittedAt: s.now().UTC(),
	}

	if err := submission.Validate(); err != nil {
		return picks.UserPicks{}, nil, err
	}

	workbook, err := excel.GeneratePicksWorkbook(submission)
	if err != nil {
		return picks.UserPicks{}, nil, fmt.Errorf("generate picks workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "picks workbook generated",
		"week", submission.Week,
		"year", submission.Year,
		"size_bytes", len(workbook),
	)

	return submission, workbook, nil
}
