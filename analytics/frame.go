package analytics

import (
	"errors"
	"fmt"

	"github.com/dev-mohitbeniwal/smartlearning/model"
)

var (
	ErrEmptyFrame   = errors.New("no progress rows")
	ErrMalformedRow = errors.New("malformed progress row")
)

// CourseProgress is the typed view of one progress row.
type CourseProgress struct {
	Course   string
	Progress float64
	Credits  int64
	Passed   bool
}

// Frame is a validated, typed table of progress rows.
type Frame struct {
	Courses []CourseProgress
}

// NewFrame rebuilds a Frame from cached rows. Every row needs a non-empty
// course name and a numeric progress; credits and passed are optional.
func NewFrame(rows model.Rows) (*Frame, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFrame
	}

	courses := make([]CourseProgress, 0, len(rows))
	for i, row := range rows {
		course, ok := row[ColCourse].(string)
		if !ok || course == "" {
			return nil, fmt.Errorf("%w: row %d has no course", ErrMalformedRow, i)
		}
		progress, ok := number(row[ColProgress])
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no numeric progress", ErrMalformedRow, i)
		}
		cp := CourseProgress{Course: course, Progress: progress}
		if credits, ok := number(row[ColCredits]); ok {
			cp.Credits = int64(credits)
		}
		if passed, ok := row[ColPassed].(bool); ok {
			cp.Passed = passed
		} else {
			cp.Passed = progress >= PassThreshold
		}
		courses = append(courses, cp)
	}
	return &Frame{Courses: courses}, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
