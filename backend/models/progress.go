package models

import "github.com/google/uuid"

// Per-user course status for the current assignment cycle. Derived on
// read from the attempt ledger, never persisted.
const (
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusPassed     = "passed"
	StatusFailed     = "failed"
)

type CourseUserProgress struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	AttemptCount int       `json:"attempt_count"`
	Score        float64   `json:"score"`
}

type CourseAnalytics struct {
	TotalUsers      int     `json:"total_users"`
	PassedUsers     int     `json:"passed_users"`
	FailedUsers     int     `json:"failed_users"`
	InProgressUsers int     `json:"in_progress_users"`
	CourseCompleted bool    `json:"course_completed"`
	CompletionRate  float64 `json:"completion_rate"`
	PassRate        float64 `json:"pass_rate"`
	FailRate        float64 `json:"fail_rate"`
	AverageAttempts float64 `json:"average_attempts"`
	AverageScore    float64 `json:"average_score"`
}
