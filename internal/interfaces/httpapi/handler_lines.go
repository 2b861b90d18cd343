package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spreadpool/against-the-spread/internal/domain/lines"
	"github.com/spreadpool/against-the-spread/internal/usecase"
)

type gameDTO struct {
	Favorite        string  `json:"favorite"`
	Line            float64 `json:"line"`
	VsAt            string  `json:"vsAt"`
	Underdog        string  `json:"underdog"`
	GameDate        string  `json:"gameDate"`
	FavoriteDisplay string  `json:"favoriteDisplay"`
	Description     string  `json:"description"`
}

type weeklyLinesDTO struct {
	Week  int       `json:"week"`
	Year  int       `json:"year"`
	Games []gameDTO `json:"games"`
}

type weeksDTO struct {
	Year  int   `json:"year"`
	Weeks []int `json:"weeks"`
}

type uploadLinesRequest struct {
	Week int `validate:"required,min=1,max=14"`
	Year int `validate:"required,min=2020"`
}

type uploadLinesResponse struct {
	Success    bool   `json:"success"`
	Week       int    `json:"week"`
	Year       int    `json:"year"`
	GamesCount int    `json:"gamesCount"`
	Message    string `json:"message"`
}

func (h *Handler) GetLines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLines")
	defer span.End()

	week, err := parseWeekPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	year, err := parseYearQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	weekly, found, err := h.linesService.Get(ctx, week, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get lines failed", "week", week, "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: Lines not found for week %d of %d", usecase.ErrNotFound, week, year))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyLinesToDTO(ctx, weekly))
}

func (h *Handler) DownloadLinesWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadLinesWorkbook")
	defer span.End()

	week, err := parseWeekPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	year, err := parseYearQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	workbook, found, err := h.linesService.GetWorkbook(ctx, week, year)
	if err != nil {
		h.logger.WarnContext(ctx, "download workbook failed", "week", week, "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: Lines not found for week %d of %d", usecase.ErrNotFound, week, year))
		return
	}

	filename := fmt.Sprintf("Week_%d_%d_Lines.xlsx", week, year)
	writeWorkbook(ctx, w, filename, workbook)
}

func (h *Handler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeks")
	defer span.End()

	year, err := parseYearQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	weeks, err := h.linesService.ListWeeks(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list weeks failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeksDTO{Year: year, Weeks: weeks})
}

func (h *Handler) UploadLines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadLines")
	defer span.End()

	req := uploadLinesRequest{}
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid week %q", usecase.ErrInvalidInput, raw))
			return
		}
		req.Week = week
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid year %q", usecase.ErrInvalidInput, raw))
			return
		}
		req.Year = year
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	workbook, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.uploadMaxBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read uploaded file: %v", usecase.ErrInvalidInput, err))
		return
	}

	weekly, err := h.linesService.Upload(ctx, usecase.UploadLinesInput{
		Week:     req.Week,
		Year:     req.Year,
		Workbook: workbook,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upload lines failed", "week", req.Week, "year", req.Year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, uploadLinesResponse{
		Success:    true,
		Week:       weekly.Week,
		Year:       weekly.Year,
		GamesCount: len(weekly.Games),
		Message:    fmt.Sprintf("Successfully uploaded %d games for Week %d", len(weekly.Games), weekly.Week),
	})
}

func parseWeekPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid week %q", usecase.ErrInvalidInput, raw)
	}

	return week, nil
}

// parseYearQuery reads the optional year query parameter, defaulting to the
// current UTC year.
func parseYearQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return time.Now().UTC().Year(), nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid year %q", usecase.ErrInvalidInput, raw)
	}

	return year, nil
}

func weeklyLinesToDTO(ctx context.Context, weekly lines.WeeklyLines) weeklyLinesDTO {
	items := make([]gameDTO, 0, len(weekly.Games))
	for _, game := range weekly.Games {
		items = append(items, gameToDTO(ctx, game))
	}

	return weeklyLinesDTO{
		Week:  weekly.Week,
		Year:  weekly.Year,
		Games: items,
	}
}

func gameToDTO(_ context.Context, game lines.Game) gameDTO {
	gameDate := ""
	if !game.GameDate.IsZero() {
		gameDate = game.GameDate.Format(time.RFC3339)
	}

	return gameDTO{
		Favorite:        game.Favorite,
		Line:            game.Line,
		VsAt:            game.VsAt,
		Underdog:        game.Underdog,
		GameDate:        gameDate,
		FavoriteDisplay: game.FavoriteDisplay(),
		Description:     game.Description(),
	}
}
