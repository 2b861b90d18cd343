package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spreadpool/against-the-spread/internal/domain/lines"
)

type storedWeek struct {
	weekly   lines.WeeklyLines
	workbook []byte
}

// LinesRepository keeps weekly lines in process memory. It backs local
// development when no storage connection string is configured, and tests.
type LinesRepository struct {
	mu    sync.RWMutex
	items map[linesKey]storedWeek
}

type linesKey struct {
	week int
	year int
}

func NewLinesRepository() *LinesRepository {
	return &LinesRepository{items: make(map[linesKey]storedWeek)}
}

func (r *LinesRepository) Put(_ context.Context, weekly lines.WeeklyLines, workbook []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[linesKey{week: weekly.Week, year: weekly.Year}] = storedWeek{
		weekly:   cloneWeeklyLines(weekly),
		workbook: append([]byte(nil), workbook...),
	}

	return nil
}

func (r *LinesRepository) Get(_ context.Context, week, year int) (lines.WeeklyLines, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[linesKey{week: week, year: year}]
	if !ok {
		return lines.WeeklyLines{}, false, nil
	}

	return cloneWeeklyLines(item.weekly), true, nil
}

func (r *LinesRepository) GetWorkbook(_ context.Context, week, year int) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[linesKey{week: week, year: year}]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), item.workbook...), true, nil
}

func (r *LinesRepository) ListWeeks(_ context.Context, year int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	weeks := make([]int, 0, len(r.items))
	for key := range r.items {
		if key.year == year {
			weeks = append(weeks, key.week)
		}
	}
	sort.Ints(weeks)

	return weeks, nil
}

func cloneWeeklyLines(weekly lines.WeeklyLines) lines.WeeklyLines {
	copied := weekly
	copied.Games = append([]lines.Game(nil), weekly.Games...)
	return copied
}
