package services

import (
	"testing"

	"trainhub/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildCourseAnalyticsEmpty(t *testing.T) {
	a := BuildCourseAnalytics(nil)

	assert.Equal(t, 0, a.TotalUsers)
	assert.False(t, a.CourseCompleted)
	assert.Equal(t, 0.0, a.CompletionRate)
	assert.Equal(t, 0.0, a.AverageScore)
}

func TestBuildCourseAnalyticsMixedStatuses(t *testing.T) {
	rows := []models.CourseUserProgress{
		{Status: models.StatusPassed, AttemptCount: 1, Score: 100},
		{Status: models.StatusFailed, AttemptCount: 3, Score: 50},
	}

	a := BuildCourseAnalytics(rows)

	assert.Equal(t, 2, a.TotalUsers)
	assert.Equal(t, 1, a.PassedUsers)
	assert.Equal(t, 1, a.FailedUsers)
	assert.Equal(t, 0, a.InProgressUsers)
	assert.True(t, a.CourseCompleted)
	assert.Equal(t, 100.0, a.CompletionRate)
	assert.Equal(t, 50.0, a.PassRate)
	assert.Equal(t, 50.0, a.FailRate)
	assert.Equal(t, 2.0, a.AverageAttempts)
	assert.Equal(t, 75.0, a.AverageScore)
}

func TestBuildCourseAnalyticsInProgressBlocksCompletion(t *testing.T) {
	rows := []models.CourseUserProgress{
		{Status: models.StatusPassed, AttemptCount: 2, Score: 85},
		{Status: models.StatusInProgress, AttemptCount: 1, Score: 40},
	}

	a := BuildCourseAnalytics(rows)

	assert.False(t, a.CourseCompleted)
	assert.Equal(t, 50.0, a.CompletionRate)
}

func TestBuildCourseAnalyticsStatusCountsAddUp(t *testing.T) {
	rows := []models.CourseUserProgress{
		{Status: models.StatusPassed, AttemptCount: 1, Score: 90},
		{Status: models.StatusFailed, AttemptCount: 2, Score: 30},
		{Status: models.StatusInProgress, AttemptCount: 1, Score: 60},
		{Status: models.StatusAssigned},
	}

	a := BuildCourseAnalytics(rows)

	// Assigned users land in the in-progress bucket, so the three
	// buckets always sum to the total.
	assert.Equal(t, 2, a.InProgressUsers)
	assert.Equal(t, a.TotalUsers, a.PassedUsers+a.FailedUsers+a.InProgressUsers)
}

func TestBuildCourseAnalyticsAverageScoreSkipsNonAttempters(t *testing.T) {
	rows := []models.CourseUserProgress{
		{Status: models.StatusPassed, AttemptCount: 1, Score: 80},
		{Status: models.StatusAssigned, AttemptCount: 0, Score: 0},
	}

	a := BuildCourseAnalytics(rows)

	assert.Equal(t, 80.0, a.AverageScore)
	assert.Equal(t, 0.5, a.AverageAttempts)
	assert.False(t, a.CourseCompleted)
}
