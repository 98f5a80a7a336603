package services

import (
	"errors"

	"trainhub/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService derives per-user course statuses for the current
// assignment cycle from the membership set and the attempt ledger.
type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// DeriveUserStatus classifies one user's attempt history for a single
// cycle. Attempts must be ordered oldest first. Once any attempt in the
// cycle has passed, the status is passed regardless of later attempts.
func DeriveUserStatus(attempts []models.QuizAttempt, maxAttempts int) (status string, attemptCount int, score float64) {
	if len(attempts) == 0 {
		return models.StatusAssigned, 0, 0
	}

	latest := attempts[len(attempts)-1]
	for _, a := range attempts {
		if a.Passed {
			return models.StatusPassed, len(attempts), latest.Score
		}
	}
	if len(attempts) >= maxAttempts {
		return models.StatusFailed, len(attempts), latest.Score
	}
	return models.StatusInProgress, len(attempts), latest.Score
}

// CourseProgress returns the status of every assigned user for the
// course's current cycle, sorted by user id. All reads happen in one
// transaction so a concurrent cycle bump cannot mix pre- and
// post-increment state into the same report.
func (ps *ProgressService) CourseProgress(courseID uuid.UUID) ([]models.CourseUserProgress, error) {
	// Initialized so an empty course serializes as [] rather than null.
	rows := []models.CourseUserProgress{}

	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Preload("Quiz").First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		members, err := (&MembershipService{DB: tx}).Resolve(&course)
		if err != nil {
			return err
		}

		// Without a quiz there is nothing to grade: everyone stays assigned.
		if course.Quiz == nil {
			for _, u := range members {
				rows = append(rows, models.CourseUserProgress{
					UserID: u.ID,
					Name:   u.Name,
					Email:  u.Email,
					Status: models.StatusAssigned,
				})
			}
			return nil
		}

		attempts, err := (&AttemptService{DB: tx}).AttemptsForQuiz(course.Quiz.ID, &course.CurrentCycle)
		if err != nil {
			return err
		}

		byUser := make(map[uuid.UUID][]models.QuizAttempt)
		for _, a := range attempts {
			byUser[a.UserID] = append(byUser[a.UserID], a)
		}

		for _, u := range members {
			status, count, score := DeriveUserStatus(byUser[u.ID], course.Quiz.MaxAttempts)
			rows = append(rows, models.CourseUserProgress{
				UserID:       u.ID,
				Name:         u.Name,
				Email:        u.Email,
				Status:       status,
				AttemptCount: count,
				Score:        score,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
