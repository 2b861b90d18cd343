package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/spreadpool/against-the-spread/internal/domain/lines"
	"github.com/spreadpool/against-the-spread/internal/platform/excel"
	"github.com/spreadpool/against-the-spread/internal/platform/logging"
)

type UploadLinesInput struct {
	Week     int
	Year     int
	Workbook []byte
}

// LinesService owns the weekly-lines pipeline: workbook parsing on upload and
// the cached-JSON read path afterwards.
type LinesService struct {
	repo   lines.Repository
	logger *logging.Logger
}

func NewLinesService(repo lines.Repository, logger *logging.Logger) *LinesService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LinesService{repo: repo, logger: logger}
}

// Upload parses the workbook and stores both the raw bytes and the canonical
// JSON under the (week, year) key, replacing any prior upload for that key.
func (s *LinesService) Upload(ctx context.Context, input UploadLinesInput) (lines.WeeklyLines, error) {
	if !lines.ValidWeek(input.Week) {
		return lines.WeeklyLines{}, fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, lines.MinWeek, lines.MaxWeek)
	}
	if !lines.ValidYear(input.Year) {
		return lines.WeeklyLines{}, fmt.Errorf("%w: year must be %d or later", ErrInvalidInput, lines.MinYear)
	}
	if len(input.Workbook) == 0 {
		return lines.WeeklyLines{}, fmt.Errorf("%w: no file uploaded", ErrInvalidInput)
	}

	weekly, err := excel.ParseWeeklyLines(input.Workbook, input.Week, input.Year)
	if err != nil {
		if errors.Is(err, excel.ErrInvalidWorkbook) {
			return lines.WeeklyLines{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return lines.WeeklyLines{}, fmt.Errorf("parse weekly lines: %w", err)
	}
	if len(weekly.Games) == 0 {
		return lines.WeeklyLines{}, fmt.Errorf("%w: no games found in the uploaded file", ErrInvalidInput)
	}

	if err := s.repo.Put(ctx, weekly, input.Workbook); err != nil {
		return lines.WeeklyLines{}, fmt.Errorf("store weekly lines: %w", err)
	}

	s.logger.InfoContext(ctx, "weekly lines stored",
		"week", weekly.Week,
		"year", weekly.Year,
		"games", len(weekly.Games),
	)

	return weekly, nil
}

// Get returns the canonical lines for a week, or found=false when none were
// uploaded. A storage failure is reported as absence; the cause is only
// visible in the log.
func (s *LinesService) Get(ctx context.Context, week, year int) (lines.WeeklyLines, bool, error) {
	if !lines.ValidWeek(week) {
		return lines.WeeklyLines{}, false, fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, lines.MinWeek, lines.MaxWeek)
	}

	weekly, found, err := s.repo.Get(ctx, week, year)
	if err != nil {
		s.logger.WarnContext(ctx, "weekly lines read failed, reporting absent", "week", week, "year", year, "error", err)
		return lines.WeeklyLines{}, false, nil
	}

	return weekly, found, nil
}

// GetWorkbook returns the originally uploaded workbook for audit re-download.
func (s *LinesService) GetWorkbook(ctx context.Context, week, year int) ([]byte, bool, error) {
	if !lines.ValidWeek(week) {
		return nil, false, fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, lines.MinWeek, lines.MaxWeek)
	}

	workbook, found, err := s.repo.GetWorkbook(ctx, week, year)
	if err != nil {
		s.logger.WarnContext(ctx, "workbook read failed, reporting absent", "week", week, "year", year, "error", err)
		return nil, false, nil
	}

	return workbook, found, nil
}

// ListWeeks returns the sorted distinct weeks with lines for a year. A scan
// failure degrades to an empty list; callers cannot distinguish the two
// outcomes without the log.
func (s *LinesService) ListWeeks(ctx context.Context, year int) ([]int, error) {
	weeks, err := s.repo.ListWeeks(ctx, year)
	if err != nil {
		s.logger.WarnContext(ctx, "week listing failed, reporting empty", "year", year, "error", err)
		return []int{}, nil
	}
	if weeks == nil {
		weeks = []int{}
	}

	return weeks, nil
}
