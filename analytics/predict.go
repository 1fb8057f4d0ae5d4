package analytics

import "github.com/dev-mohitbeniwal/smartlearning/model"

// Risk levels attached to predictions.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Predict projects each course's final progress. The projection closes a
// fixed share of the remaining gap, scaled down for heavier courses, and the
// risk level follows the projected value.
func Predict(frame *Frame) model.Rows {
	if frame == nil {
		return model.Rows{}
	}

	out := make(model.Rows, 0, len(frame.Courses))
	for _, c := range frame.Courses {
		predicted := projectProgress(c.Progress, c.Credits)
		risk, advice := riskFor(predicted)
		out = append(out, model.Row{
			ColCourse:            c.Course,
			"predicted_progress": predicted,
			"risk":               risk,
			"advice":             advice,
		})
	}
	return out
}

func projectProgress(progress float64, credits int64) float64 {
	gain := 0.2
	if credits > 3 {
		gain = 0.2 * 3 / float64(credits)
	}
	return clampPercent(round1(progress + (100-progress)*gain))
}

func riskFor(predicted float64) (string, string) {
	switch {
	case predicted < 50:
		return RiskHigh, "At risk of failing: prioritise this course and ask for tutoring"
	case predicted < 70:
		return RiskMedium, "Borderline: keep up regular revision to stay above the pass mark"
	default:
		return RiskLow, "On track: maintain the current study pace"
	}
}
