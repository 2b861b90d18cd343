package excel

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spreadpool/against-the-spread/internal/domain/lines"
)

// ErrInvalidWorkbook marks input bytes that cannot be opened as a spreadsheet
// at all. Individual bad rows never produce this error.
var ErrInvalidWorkbook = errors.New("invalid workbook")

// Fixed column layout of the weekly lines sheet. Row 1 is the header, data
// rows follow. The kickoff time column is optional.
const (
	headerRows = 1

	colFavorite = 0
	colLine     = 1
	colVsAt     = 2
	colUnderdog = 3
	colGameDate = 4
	colGameTime = 5
)

var gameDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
}

var gameTimeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// ParseWeeklyLines reads a lines workbook and returns the games for the given
// week and year. Week and year come from the caller, never from the sheet.
// Rows that are blank or do not yield a usable matchup are dropped so one bad
// row cannot reject an entire week; an empty result is not an error here.
func ParseWeeklyLines(workbook []byte, week, year int) (lines.WeeklyLines, error) {
	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		return lines.WeeklyLines{}, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return lines.WeeklyLines{}, fmt.Errorf("%w: workbook has no sheets", ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return lines.WeeklyLines{}, fmt.Errorf("%w: read sheet %q: %v", ErrInvalidWorkbook, sheets[0], err)
	}

	weekly := lines.WeeklyLines{Week: week, Year: year}
	for i, row := range rows {
		if i < headerRows {
			continue
		}
		game, ok := parseGameRow(row)
		if !ok {
			continue
		}
		weekly.Games = append(weekly.Games, game)
	}

	return weekly, nil
}

func parseGameRow(row []string) (lines.Game, bool) {
	favorite := cellAt(row, colFavorite)
	underdog := cellAt(row, colUnderdog)
	if favorite == "" || underdog == "" || favorite == underdog {
		return lines.Game{}, false
	}

	line, err := strconv.ParseFloat(cellAt(row, colLine), 64)
	if err != nil || math.IsInf(line, 0) || math.IsNaN(line) {
		return lines.Game{}, false
	}

	return lines.Game{
		Favorite: favorite,
		Line:     line,
		VsAt:     parseLocation(cellAt(row, colVsAt)),
		Underdog: underdog,
		GameDate: parseGameDate(cellAt(row, colGameDate), cellAt(row, colGameTime)),
	}, true
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseLocation(v string) string {
	if strings.EqualFold(v, lines.LocationAway) {
		return lines.LocationAway
	}
	return lines.LocationHome
}

// parseGameDate tolerates missing or unreadable schedule cells: the four core
// fields make a usable game, so a bad date yields the zero time, not a drop.
func parseGameDate(dateValue, timeValue string) time.Time {
	if dateValue == "" {
		return time.Time{}
	}

	var parsed time.Time
	for _, layout := range gameDateLayouts {
		v, err := time.Parse(layout, dateValue)
		if err == nil {
			parsed = v
			break
		}
	}
	if parsed.IsZero() {
		return time.Time{}
	}

	if timeValue == "" || parsed.Hour() != 0 || parsed.Minute() != 0 {
		return parsed
	}
	for _, layout := range gameTimeLayouts {
		v, err := time.Parse(layout, timeValue)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), v.Hour(), v.Minute(), 0, 0, time.UTC)
		}
	}

	return parsed
}
