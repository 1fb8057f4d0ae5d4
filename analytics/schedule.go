package analytics

import "github.com/dev-mohitbeniwal/smartlearning/model"

// CoursesFromSchedule lists the courses of the current semester. Progress is
// the share of teaching weeks already elapsed; 0 when weeks are unknown.
func CoursesFromSchedule(records []model.ScheduleRecord, studentID string) model.Rows {
	rows := make(model.Rows, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, r := range records {
		key := r.SubjectCode + "|" + r.CourseCode
		if seen[key] {
			continue
		}
		seen[key] = true

		rows = append(rows, model.Row{
			"course":      courseName(r.SubjectName, r.SubjectCode),
			"subjectCode": r.SubjectCode,
			"teacherName": r.TeacherName,
			"room":        r.Room,
			"progress":    weekProgress(r.StartWeek, r.EndWeek, r.CurrentWeek),
			"student_id":  studentID,
		})
	}
	return rows
}

func weekProgress(start, end, current int64) float64 {
	if start <= 0 || end < start || current <= 0 {
		return 0
	}
	total := float64(end - start + 1)
	done := float64(current - start + 1)
	return clampPercent(round1(done / total * 100))
}
