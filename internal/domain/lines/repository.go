package lines

import "context"

// Repository exposes weekly lines persistence operations. Writes replace both
// stored objects for a (week, year) unconditionally; reads report absence with
// the found flag instead of an error.
type Repository interface {
	Put(ctx context.Context, weekly WeeklyLines, workbook []byte) error
	Get(ctx context.Context, week, year int) (WeeklyLines, bool, error)
	GetWorkbook(ctx context.Context, week, year int) ([]byte, bool, error)
	ListWeeks(ctx context.Context, year int) ([]int, error)
}
