package services

import (
	"trainhub/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	DB       *gorm.DB
	Progress *ProgressService
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db, Progress: NewProgressService(db)}
}

// CourseAnalytics reduces the per-user progress report for the current
// cycle into course-wide summary statistics.
func (as *AnalyticsService) CourseAnalytics(courseID uuid.UUID) (models.CourseAnalytics, error) {
	rows, err := as.Progress.CourseProgress(courseID)
	if err != nil {
		return models.CourseAnalytics{}, err
	}
	return BuildCourseAnalytics(rows), nil
}

// BuildCourseAnalytics is a pure reduce over progress rows.
// averageScore is taken over users with at least one in-cycle attempt;
// untouched assigned users have no meaningful score to average in.
func BuildCourseAnalytics(rows []models.CourseUserProgress) models.CourseAnalytics {
	a := models.CourseAnalytics{TotalUsers: len(rows)}

	totalAttempts := 0
	scoreSum := 0.0
	scored := 0
	for _, r := range rows {
		switch r.Status {
		case models.StatusPassed:
			a.PassedUsers++
		case models.StatusFailed:
			a.FailedUsers++
		case models.StatusInProgress, models.StatusAssigned:
			// Users who have not finished (or not started) both count as
			// still in progress, so the three buckets always sum to the total.
			a.InProgressUsers++
		}
		totalAttempts += r.AttemptCount
		if r.AttemptCount > 0 {
			scoreSum += r.Score
			scored++
		}
	}

	if a.TotalUsers > 0 {
		a.CompletionRate = float64(a.PassedUsers+a.FailedUsers) / float64(a.TotalUsers) * 100
		a.PassRate = float64(a.PassedUsers) / float64(a.TotalUsers) * 100
		a.FailRate = float64(a.FailedUsers) / float64(a.TotalUsers) * 100
		a.AverageAttempts = float64(totalAttempts) / float64(a.TotalUsers)
		a.CourseCompleted = a.InProgressUsers == 0
	}
	if scored > 0 {
		a.AverageScore = scoreSum / float64(scored)
	}
	return a
}
