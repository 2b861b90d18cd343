package blob

import (
	"time"

	"github.com/spreadpool/against-the-spread/internal/domain/lines"
)

// Canonical JSON stored next to the uploaded workbook. Only the four core
// game fields plus the schedule are persisted; display strings are recomputed
// on every render.
type weeklyLinesBlob struct {
	Week  int        `json:"week"`
	Year  int        `json:"year"`
	Games []gameBlob `json:"games"`
}

type gameBlob struct {
	Favorite string    `json:"favorite"`
	Line     float64   `json:"line"`
	VsAt     string    `json:"vsAt"`
	Underdog string    `json:"underdog"`
	GameDate time.Time `json:"gameDate"`
}

func toWeeklyLinesBlob(weekly lines.WeeklyLines) weeklyLinesBlob {
	games := make([]gameBlob, 0, len(weekly.Games))
	for _, game := range weekly.Games {
		games = append(games, gameBlob{
			Favorite: game.Favorite,
			Line:     game.Line,
			VsAt:     game.VsAt,
			Underdog: game.Underdog,
			GameDate: game.GameDate,
		})
	}

	return weeklyLinesBlob{Week: weekly.Week, Year: weekly.Year, Games: games}
}

func fromWeeklyLinesBlob(stored weeklyLinesBlob) lines.WeeklyLines {
	games := make([]lines.Game, 0, len(stored.Games))
	for _, game := range stored.Games {
		games = append(games, lines.Game{
			Favorite: game.Favorite,
			Line:     game.Line,
			VsAt:     game.VsAt,
			Underdog: game.Underdog,
			GameDate: game.GameDate,
		})
	}

	return lines.WeeklyLines{Week: stored.Week, Year: stored.Year, Games: games}
}
