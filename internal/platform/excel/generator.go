package excel

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
	"github.com/xuri/excelize/v2"

	"github.com/spreadpool/against-the-spread/internal/domain/picks"
)

// Cell layout of the generated picks workbook: rows 1 and 2 stay empty, row 3
// carries the headers and row 4 the submission.
const (
	headerRow = 3
	dataRow   = 4

	nameColumn      = 1
	firstPickColumn = 2
)

// GeneratePicksWorkbook renders an already-validated submission into the fixed
// picks layout and returns the workbook bytes. It performs no validation; a
// wrong pick count is the caller's responsibility to reject beforehand.
func GeneratePicksWorkbook(p picks.UserPicks) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := setCell(f, sheet, nameColumn, headerRow, "Name"); err != nil {
		return nil, err
	}
	if err := setCell(f, sheet, nameColumn, dataRow, p.Name); err != nil {
		return nil, err
	}
	for i, pick := range p.Picks {
		if err := setCell(f, sheet, firstPickColumn+i, headerRow, fmt.Sprintf("Pick %d", i+1)); err != nil {
			return nil, err
		}
		if err := setCell(f, sheet, firstPickColumn+i, dataRow, pick); err != nil {
			return nil, err
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write picks workbook: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name col=%d row=%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}

	return nil
}
