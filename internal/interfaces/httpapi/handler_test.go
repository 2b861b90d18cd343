package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/xuri/excelize/v2"

	"github.com/spreadpool/against-the-spread/internal/infrastructure/repository/memory"
	"github.com/spreadpool/against-the-spread/internal/platform/logging"
	"github.com/spreadpool/against-the-spread/internal/usecase"
)

const testAdminToken = "test-admin-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	repo := memory.NewLinesRepository()
	linesService := usecase.NewLinesService(repo, logger)
	picksService := usecase.NewPicksService(logger)
	handler := NewHandler(linesService, picksService, 0, logger)

	return NewRouter(handler, logger, []string{"*"}, testAdminToken)
}

func buildLinesWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []string{"Favorite", "Line", "Vs/At", "Underdog", "Date", "Time"}
	for col, value := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set header cell: %v", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}

	return buf.Bytes()
}

func uploadLines(t *testing.T, router http.Handler, week, year string, workbook []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/lines?week="+week+"&year="+year, bytes.NewReader(workbook))
	req.Header.Set("X-Admin-Token", testAdminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	return body
}

func TestUploadThenGetLines(t *testing.T) {
	router := newTestRouter(t)
	workbook := buildLinesWorkbook(t, [][]string{
		{"Alabama", "-9.5", "vs", "Florida State", "2025-09-06 12:00", ""},
		{"Georgia", "-7", "at", "Auburn", "2025-09-06", "15:30"},
	})

	rec := uploadLines(t, router, "3", "2025", workbook)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected upload status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got, _ := data["gamesCount"].(float64); got != 2 {
		t.Fatalf("expected gamesCount=2, got %v", data["gamesCount"])
	}
	if got, _ := data["message"].(string); got != "Successfully uploaded 2 games for Week 3" {
		t.Fatalf("unexpected upload message %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/lines/3?year=2025", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected get status 200, got %d: %s", getRec.Code, getRec.Body.String())
	}

	lines, _ := decodeEnvelope(t, getRec)["data"].(map[string]any)
	if got, _ := lines["week"].(float64); got != 3 {
		t.Fatalf("expected week=3, got %v", lines["week"])
	}
	games, _ := lines["games"].([]any)
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	first, _ := games[0].(map[string]any)
	if got, _ := first["favoriteDisplay"].(string); got != "Alabama -9.5" {
		t.Fatalf("unexpected favoriteDisplay %q", got)
	}
	if got, _ := first["vsAt"].(string); got != "vs" {
		t.Fatalf("unexpected vsAt %q", got)
	}
}

func TestGetLines_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/lines/5?year=2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	errorObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	msg, _ := errorObj["message"].(string)
	if !strings.Contains(msg, "Lines not found for week 5 of 2025") {
		t.Fatalf("unexpected not-found message %q", msg)
	}
}

func TestGetLines_InvalidWeekPath(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/lines/abc?year=2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetWeeks(t *testing.T) {
	router := newTestRouter(t)
	workbook := buildLinesWorkbook(t, [][]string{
		{"Texas", "-3.5", "vs", "Oklahoma", "", ""},
	})

	for _, week := range []string{"9", "2", "5"} {
		if rec := uploadLines(t, router, week, "2025", workbook); rec.Code != http.StatusOK {
			t.Fatalf("upload week %s failed with %d", week, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/weeks?year=2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	weeks, _ := data["weeks"].([]any)
	if len(weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %v", data["weeks"])
	}
	for i, want := range []float64{2, 5, 9} {
		if got, _ := weeks[i].(float64); got != want {
			t.Fatalf("expected weeks sorted ascending, got %v", data["weeks"])
		}
	}
}

func TestGetWeeks_EmptyYear(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/weeks?year=2023", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	weeks, ok := data["weeks"].([]any)
	if !ok || len(weeks) != 0 {
		t.Fatalf("expected empty weeks array, got %v", data["weeks"])
	}
}

func TestDownloadLinesWorkbook_RoundTrip(t *testing.T) {
	router := newTestRouter(t)
	workbook := buildLinesWorkbook(t, [][]string{
		{"Texas", "-3.5", "vs", "Oklahoma", "", ""},
	})

	if rec := uploadLines(t, router, "4", "2025", workbook); rec.Code != http.StatusOK {
		t.Fatalf("upload failed with %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/lines/4/workbook?year=2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != workbookContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), workbook) {
		t.Fatalf("downloaded workbook differs from uploaded bytes")
	}
}

func TestUploadLines_RequiresToken(t *testing.T) {
	router := newTestRouter(t)
	workbook := buildLinesWorkbook(t, [][]string{
		{"Texas", "-3.5", "vs", "Oklahoma", "", ""},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/lines?week=3&year=2025", bytes.NewReader(workbook))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestUploadLines_InvalidWeek(t *testing.T) {
	router := newTestRouter(t)
	workbook := buildLinesWorkbook(t, [][]string{
		{"Texas", "-3.5", "vs", "Oklahoma", "", ""},
	})

	rec := uploadLines(t, router, "15", "2025", workbook)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUploadLines_EmptyWorkbook(t *testing.T) {
	router := newTestRouter(t)

	rec := uploadLines(t, router, "3", "2025", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSubmitPicks_GeneratesWorkbook(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"name":"Jane Doe","week":3,"year":2025,"picks":["Alabama","Georgia","Texas","Ohio State","Michigan","USC"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != workbookContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Jane_Doe_Week_3_Picks.xlsx") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("reopen generated workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	name, err := f.GetCellValue(sheet, "A4")
	if err != nil {
		t.Fatalf("read name cell: %v", err)
	}
	if name != "Jane Doe" {
		t.Fatalf("expected name in A4, got %q", name)
	}
	firstPick, err := f.GetCellValue(sheet, "B4")
	if err != nil {
		t.Fatalf("read pick cell: %v", err)
	}
	if firstPick != "Alabama" {
		t.Fatalf("expected first pick in B4, got %q", firstPick)
	}
}

func TestSubmitPicks_ValidationMessage(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"name":"Jane Doe","week":3,"year":2025,"picks":["Alabama","Georgia"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	errorObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "Exactly 6 picks are required (you have 2)" {
		t.Fatalf("unexpected validation message %q", got)
	}
}

func TestSubmitPicks_IgnoresClientSubmittedAt(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"name":"Jane Doe","week":3,"year":2025,"picks":["Alabama","Georgia","Texas","Ohio State","Michigan","USC"],"submittedAt":"1999-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != workbookContentType {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestSubmitPicks_RejectsOversizedBody(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"name":"` + strings.Repeat("x", 70<<10) + `","week":3,"year":2025,"picks":[]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSubmitPicks_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"name":"Jane Doe","week":3,"year":2025,"picks":[],"bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("unexpected health status %v", data["status"])
	}
}
