package picks

import (
	"fmt"
	"strings"
	"time"
)

// RequiredPickCount is the number of teams a submission must name.
const RequiredPickCount = 6

const (
	minWeek = 1
	maxWeek = 14
	minYear = 2020
)

// UserPicks is one user's submission for one week. Submissions are validated
// and rendered to a workbook within a single request and never persisted.
type UserPicks struct {
	Name        string
	Week        int
	Year        int
	Picks       []string
	SubmittedAt time.Time
}

// ValidationError reports the first rule a submission violates.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the submission rules in a fixed order and returns the first
// violation, or nil when the submission is acceptable. Duplicate team names
// across the six picks are accepted.
func (p UserPicks) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Message: "Name is required"}
	}
	if p.Week < minWeek || p.Week > maxWeek {
		return &ValidationError{Message: "Week must be between 1 and 14"}
	}
	if len(p.Picks) != RequiredPickCount {
		return &ValidationError{
			Message: fmt.Sprintf("Exactly %d picks are required (you have %d)", RequiredPickCount, len(p.Picks)),
		}
	}
	for _, pick := range p.Picks {
		if strings.TrimSpace(pick) == "" {
			return &ValidationError{Message: "All picks must have a team name"}
		}
	}
	if p.Year < minYear {
		return &ValidationError{Message: "Invalid year"}
	}

	return nil
}

// DownloadFilename is the attachment name for the generated workbook,
// e.g. "Jane_Doe_Week_3_Picks.xlsx".
func (p UserPicks) DownloadFilename() string {
	return fmt.Sprintf("%s_Week_%d_Picks.xlsx", strings.ReplaceAll(p.Name, " ", "_"), p.Week)
}
