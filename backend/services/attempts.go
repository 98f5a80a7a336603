package services

import (
	"encoding/json"
	"errors"

	"trainhub/backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptService is the append-only ledger of quiz attempts. It owns
// the per-cycle quota check; attempts are never updated or deleted.
type AttemptService struct {
	DB *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{DB: db}
}

// standaloneCycle is used for quizzes not attached to any course; they
// have no cycle counter to advance.
const standaloneCycle = 1

// RecordAttempt scores and persists a new attempt for (quiz, user),
// tagged with the course's current cycle. The whole check-then-insert
// runs in one transaction holding a row lock on the quiz, so two
// concurrent submissions at the quota boundary cannot both slip
// through; the additional lock on the owning course ensures a
// concurrent cycle bump cannot produce an attempt tagged with a
// superseded cycle value.
func (as *AttemptService) RecordAttempt(quizID, userID uuid.UUID, selected []int) (*models.QuizAttempt, error) {
	for _, idx := range selected {
		if idx < 0 {
			return nil, ErrInvalidAnswerSet
		}
	}

	var attempt *models.QuizAttempt

	err := as.DB.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("sequence_order")
			}).First(&quiz, "id = ?", quizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		cycle := standaloneCycle
		if quiz.CourseID != nil {
			var course models.Course
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&course, "id = ?", *quiz.CourseID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCourseNotFound
				}
				return err
			}
			cycle = course.CurrentCycle
		}

		var count int64
		if err := tx.Model(&models.QuizAttempt{}).
			Where("quiz_id = ? AND user_id = ? AND assignment_cycle = ?", quiz.ID, userID, cycle).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(quiz.MaxAttempts) {
			return ErrMaxAttemptsExceeded
		}

		score, passed := ScoreAttempt(&quiz, selected)

		raw, err := json.Marshal(selected)
		if err != nil {
			return err
		}

		attempt = &models.QuizAttempt{
			QuizID:          quiz.ID,
			UserID:          userID,
			SelectedIndexes: datatypes.JSON(raw),
			Score:           score,
			Passed:          passed,
			AttemptNumber:   int(count) + 1,
			AssignmentCycle: cycle,
		}
		return tx.Create(attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// AttemptsForQuiz returns all attempts for a quiz, optionally filtered
// to a single cycle, oldest first.
func (as *AttemptService) AttemptsForQuiz(quizID uuid.UUID, cycle *int) ([]models.QuizAttempt, error) {
	query := as.DB.Where("quiz_id = ?", quizID)
	if cycle != nil {
		query = query.Where("assignment_cycle = ?", *cycle)
	}

	var attempts []models.QuizAttempt
	if err := query.Order("created_at, id").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// AttemptsForUser returns one user's attempts on a quiz, optionally
// filtered to a single cycle, oldest first.
func (as *AttemptService) AttemptsForUser(quizID, userID uuid.UUID, cycle *int) ([]models.QuizAttempt, error) {
	query := as.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID)
	if cycle != nil {
		query = query.Where("assignment_cycle = ?", *cycle)
	}

	var attempts []models.QuizAttempt
	if err := query.Order("created_at, id").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// LatestAttempts returns the most recent attempt per user for a quiz in
// the given cycle. Creation timestamps can collide at the database's
// clock resolution, so ties are broken by attempt id to stay
// deterministic.
func (as *AttemptService) LatestAttempts(quizID uuid.UUID, cycle int) (map[uuid.UUID]models.QuizAttempt, error) {
	attempts, err := as.AttemptsForQuiz(quizID, &cycle)
	if err != nil {
		return nil, err
	}

	latest := make(map[uuid.UUID]models.QuizAttempt, len(attempts))
	for _, a := range attempts {
		prev, ok := latest[a.UserID]
		if !ok || a.CreatedAt.After(prev.CreatedAt) ||
			(a.CreatedAt.Equal(prev.CreatedAt) && a.ID.String() > prev.ID.String()) {
			latest[a.UserID] = a
		}
	}
	return latest, nil
}
