// Package analytics turns raw provider records into the tabular rows the
// frontend renders, and derives recommendations, predictions and insights
// from them. Everything here is a pure function of its input.
package analytics

import (
	"math"

	"github.com/dev-mohitbeniwal/smartlearning/model"
)

// Column names shared by the progress rows and everything derived from them.
const (
	ColCourse      = "course"
	ColSubjectCode = "subject_code"
	ColCredits     = "credits"
	ColMark        = "mark"
	ColMark4       = "mark4"
	ColCharMark    = "char_mark"
	ColProgress    = "progress"
	ColPassed      = "passed"
	ColStudentID   = "student_id"
)

// ProgressFromMarks builds one progress row per subject. A retaken subject
// keeps its best mark. Progress is the 10-point mark scaled to a percentage.
func ProgressFromMarks(marks []model.MarkRecord, studentID string) model.Rows {
	rows := make(model.Rows, 0, len(marks))
	index := make(map[string]int, len(marks))

	for _, m := range marks {
		key := m.SubjectCode
		if key == "" {
			key = m.SubjectName
		}
		row := model.Row{
			ColCourse:      courseName(m.SubjectName, m.SubjectCode),
			ColSubjectCode: m.SubjectCode,
			ColCredits:     m.Credits,
			ColMark:        round1(m.Mark),
			ColMark4:       round1(m.Mark4),
			ColCharMark:    m.CharMark,
			ColProgress:    clampPercent(round1(m.Mark * 10)),
			ColPassed:      m.Passed,
			ColStudentID:   studentID,
		}
		if i, seen := index[key]; seen {
			if m.Mark > rows[i][ColMark].(float64) {
				rows[i] = row
			}
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

func courseName(name, code string) string {
	if name != "" {
		return name
	}
	return code
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func clampPercent(f float64) float64 {
	return math.Max(0, math.Min(100, f))
}
