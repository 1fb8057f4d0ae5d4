package analytics

import (
	"fmt"
	"math"
)

// Insight placeholders returned instead of an error.
const (
	NoStudentInsight = "No logged-in student yet. Log in to see insights."
	NoDataInsight    = "Not enough data to compute insights."
)

// Insights summarises a frame as human-readable sentences. A nil or empty
// frame yields the no-data placeholder.
func Insights(frame *Frame) []string {
	if frame == nil || len(frame.Courses) == 0 {
		return []string{NoDataInsight}
	}

	courses := frame.Courses
	var sum float64
	var passed int
	best, worst := courses[0], courses[0]
	for _, c := range courses {
		sum += c.Progress
		if c.Passed {
			passed++
		}
		if c.Progress > best.Progress {
			best = c
		}
		if c.Progress < worst.Progress {
			worst = c
		}
	}

	insights := []string{
		fmt.Sprintf("Average progress across %d courses is %.1f%%.", len(courses), round1(sum/float64(len(courses)))),
		fmt.Sprintf("Passed %d of %d courses.", passed, len(courses)),
	}
	if len(courses) > 1 {
		insights = append(insights,
			fmt.Sprintf("Strongest course: %s (%.1f%%).", best.Course, best.Progress),
			fmt.Sprintf("Weakest course: %s (%.1f%%).", worst.Course, worst.Progress),
		)
	}
	if avg, ok := weightedAverage(courses); ok {
		insights = append(insights, fmt.Sprintf("Credit-weighted average progress is %.1f%%.", avg))
	}
	if r, ok := creditCorrelation(courses); ok {
		insights = append(insights, correlationSentence(r))
	}
	return insights
}

func weightedAverage(courses []CourseProgress) (float64, bool) {
	var total, weights float64
	for _, c := range courses {
		if c.Credits <= 0 {
			continue
		}
		total += c.Progress * float64(c.Credits)
		weights += float64(c.Credits)
	}
	if weights == 0 {
		return 0, false
	}
	return round1(total / weights), true
}

// creditCorrelation is the Pearson coefficient between credits and progress.
// It needs at least three courses and variance on both sides.
func creditCorrelation(courses []CourseProgress) (float64, bool) {
	n := float64(len(courses))
	if n < 3 {
		return 0, false
	}
	var sx, sy float64
	for _, c := range courses {
		sx += float64(c.Credits)
		sy += c.Progress
	}
	mx, my := sx/n, sy/n

	var cov, vx, vy float64
	for _, c := range courses {
		dx, dy := float64(c.Credits)-mx, c.Progress-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0, false
	}
	return cov / math.Sqrt(vx*vy), true
}

func correlationSentence(r float64) string {
	switch {
	case r <= -0.3:
		return fmt.Sprintf("Heavier courses tend to score lower (correlation %.2f).", r)
	case r >= 0.3:
		return fmt.Sprintf("Heavier courses tend to score higher (correlation %.2f).", r)
	default:
		return fmt.Sprintf("Course load shows no clear link with progress (correlation %.2f).", r)
	}
}
