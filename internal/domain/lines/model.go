package lines

import (
	"strconv"
	"strings"
	"time"
)

// Week and year bounds for a pool season.
const (
	MinWeek = 1
	MaxWeek = 14
	MinYear = 2020
)

// Location indicator for the favorite: home/neutral or away.
const (
	LocationHome = "vs"
	LocationAway = "at"
)

// Game is one scheduled matchup with a betting line. The line is stored as
// parsed from the sheet; sample data carries the favorite's spread as a
// negative number.
type Game struct {
	Favorite string
	Line     float64
	VsAt     string
	Underdog string
	GameDate time.Time
}

// FavoriteDisplay renders the favorite with its line, e.g. "Alabama -9.5".
func (g Game) FavoriteDisplay() string {
	return g.Favorite + " " + formatLine(g.Line)
}

// Description renders the full matchup, e.g. "Alabama -9.5 vs Florida State".
func (g Game) Description() string {
	return strings.Join([]string{g.Favorite, formatLine(g.Line), g.VsAt, g.Underdog}, " ")
}

// WeeklyLines is the set of games available for one week of one season.
// Games keep source-row order; identity is (Week, Year) and a later upload
// for the same key fully replaces the prior value.
type WeeklyLines struct {
	Week  int
	Year  int
	Games []Game
}

// ValidWeek reports whether week is inside the pool's 1-14 season window.
func ValidWeek(week int) bool {
	return week >= MinWeek && week <= MaxWeek
}

// ValidYear reports whether year is a season this pool can host.
func ValidYear(year int) bool {
	return year >= MinYear
}

func formatLine(line float64) string {
	return strconv.FormatFloat(line, 'f', -1, 64)
}
