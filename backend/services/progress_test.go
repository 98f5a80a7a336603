package services

import (
	"testing"
	"time"

	"trainhub/backend/models"

	"github.com/stretchr/testify/assert"
)

func attemptAt(minute int, score float64, passed bool) models.QuizAttempt {
	return models.QuizAttempt{
		Score:     score,
		Passed:    passed,
		CreatedAt: time.Date(2025, 3, 1, 10, minute, 0, 0, time.UTC),
	}
}

func TestDeriveUserStatusNoAttempts(t *testing.T) {
	status, count, score := DeriveUserStatus(nil, 3)
	assert.Equal(t, models.StatusAssigned, status)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0.0, score)
}

func TestDeriveUserStatusInProgress(t *testing.T) {
	attempts := []models.QuizAttempt{attemptAt(0, 40, false)}

	status, count, score := DeriveUserStatus(attempts, 3)
	assert.Equal(t, models.StatusInProgress, status)
	assert.Equal(t, 1, count)
	assert.Equal(t, 40.0, score)
}

func TestDeriveUserStatusPassed(t *testing.T) {
	attempts := []models.QuizAttempt{
		attemptAt(0, 40, false),
		attemptAt(1, 90, true),
	}

	status, count, score := DeriveUserStatus(attempts, 3)
	assert.Equal(t, models.StatusPassed, status)
	assert.Equal(t, 2, count)
	assert.Equal(t, 90.0, score)
}

func TestDeriveUserStatusPassedIsSticky(t *testing.T) {
	// A later failing attempt in the same cycle cannot undo a pass.
	attempts := []models.QuizAttempt{
		attemptAt(0, 90, true),
		attemptAt(1, 10, false),
		attemptAt(2, 20, false),
	}

	status, _, score := DeriveUserStatus(attempts, 3)
	assert.Equal(t, models.StatusPassed, status)
	assert.Equal(t, 20.0, score) // score still reflects the latest attempt
}

func TestDeriveUserStatusFailedAtQuota(t *testing.T) {
	attempts := []models.QuizAttempt{
		attemptAt(0, 40, false),
		attemptAt(1, 50, false),
		attemptAt(2, 60, false),
	}

	status, count, score := DeriveUserStatus(attempts, 3)
	assert.Equal(t, models.StatusFailed, status)
	assert.Equal(t, 3, count)
	assert.Equal(t, 60.0, score)
}

func TestDeriveUserStatusSingleAttemptQuota(t *testing.T) {
	attempts := []models.QuizAttempt{attemptAt(0, 50, false)}

	status, _, _ := DeriveUserStatus(attempts, 1)
	assert.Equal(t, models.StatusFailed, status)
}
