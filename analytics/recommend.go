package analytics

import (
	"sort"

	"github.com/dev-mohitbeniwal/smartlearning/model"
)

// PassThreshold is the progress percentage a course needs to count as passed.
const PassThreshold = 40.0

// Recommendation priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
	PriorityNone   = "none"
)

type band struct {
	below    float64
	priority string
	roadmap  string
}

var roadmapBands = []band{
	{PassThreshold, PriorityHigh, "Retake the course: rebuild the fundamentals and book weekly sessions with the lecturer"},
	{65, PriorityMedium, "Review weak chapters and redo past exam papers before the next assessment"},
	{85, PriorityLow, "Practise advanced exercises to move the grade up a band"},
}

// Recommend attaches a study roadmap to every progress row, weakest course
// first. No rows gives no recommendations.
func Recommend(rows model.Rows) (model.Rows, error) {
	if len(rows) == 0 {
		return model.Rows{}, nil
	}
	frame, err := NewFrame(rows)
	if err != nil {
		return nil, err
	}

	courses := append([]CourseProgress(nil), frame.Courses...)
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Progress < courses[j].Progress
	})

	out := make(model.Rows, 0, len(courses))
	for _, c := range courses {
		priority, roadmap := roadmapFor(c.Progress)
		out = append(out, model.Row{
			ColCourse:   c.Course,
			ColProgress: c.Progress,
			"roadmap":   roadmap,
			"priority":  priority,
		})
	}
	return out, nil
}

func roadmapFor(progress float64) (string, string) {
	for _, b := range roadmapBands {
		if progress < b.below {
			return b.priority, b.roadmap
		}
	}
	return PriorityNone, "Course mastered: consider an advanced elective in the same area"
}
