package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"trainhub/backend/config"
	"trainhub/backend/models"
	"trainhub/backend/services"
	"trainhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errCourseHasQuiz signals a quiz-create against a course that already
// has one; it maps to 400 instead of surfacing the unique index error.
var errCourseHasQuiz = errors.New("course already has a quiz")

type QuizzesController struct {
	DB            *gorm.DB
	Cfg           *config.Config
	Attempts      *services.AttemptService
	Notifications *services.NotificationService
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{
		DB:            db,
		Cfg:           cfg,
		Attempts:      services.NewAttemptService(db),
		Notifications: services.NewNotificationService(db),
	}
}

type questionInput struct {
	Prompt       string   `json:"prompt" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2,max=5,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"min=0"`
}

func buildQuestions(quizID uuid.UUID, inputs []questionInput) ([]models.QuizQuestion, error) {
	questions := make([]models.QuizQuestion, 0, len(inputs))
	for i, in := range inputs {
		if in.CorrectIndex >= len(in.Options) {
			return nil, fmt.Errorf("question %d: correct_index out of range", i+1)
		}
		raw, err := json.Marshal(in.Options)
		if err != nil {
			return nil, err
		}
		questions = append(questions, models.QuizQuestion{
			QuizID:        quizID,
			Prompt:        in.Prompt,
			Options:       datatypes.JSON(raw),
			CorrectIndex:  in.CorrectIndex,
			SequenceOrder: i + 1,
		})
	}
	return questions, nil
}

func (qc *QuizzesController) getQuiz(c *fiber.Ctx) (*models.Quiz, error) {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Quiz not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}
	return &quiz, nil
}

func (qc *QuizzesController) GetQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	if err := qc.DB.Order("created_at").Find(&quizzes).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(quizzes)
}

// GetQuiz returns the quiz without correct answer indexes; this is the
// payload shown to a user about to take the quiz.
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return utils.InternalServerError(c, "Could not decode question options")
		}

		questions = append(questions, fiber.Map{
			"id":      q.ID,
			"prompt":  q.Prompt,
			"options": options,
			"order":   q.SequenceOrder,
		})
	}

	return c.JSON(fiber.Map{
		"quiz": fiber.Map{
			"id":                quiz.ID,
			"course_id":         quiz.CourseID,
			"max_attempts":      quiz.MaxAttempts,
			"passing_threshold": quiz.PassingThreshold,
			"questions":         questions,
		},
	})
}

// GetQuizFull returns the quiz including correct answers (admin only).
func (qc *QuizzesController) GetQuizFull(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"quiz": quiz,
	})
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	type QuizInput struct {
		CourseID         *uuid.UUID      `json:"course_id"`
		MaxAttempts      int             `json:"max_attempts" validate:"required,min=1"`
		PassingThreshold int             `json:"passing_threshold" validate:"min=0,max=100"`
		Questions        []questionInput `json:"questions" validate:"required,min=1,dive"`
	}

	var input QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	quiz := models.Quiz{
		CourseID:         input.CourseID,
		MaxAttempts:      input.MaxAttempts,
		PassingThreshold: input.PassingThreshold,
	}

	// The one-quiz-per-course check runs inside the transaction under a
	// course row lock, so a concurrent attach cannot slip between the
	// check and the insert.
	err := qc.DB.Transaction(func(tx *gorm.DB) error {
		if input.CourseID != nil {
			var course models.Course
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Quiz").First(&course, "id = ?", *input.CourseID).Error; err != nil {
				return err
			}
			if course.Quiz != nil {
				return errCourseHasQuiz
			}
		}
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		questions, err := buildQuestions(quiz.ID, input.Questions)
		if err != nil {
			return err
		}
		quiz.Questions = questions
		return tx.Create(&questions).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.NotFound(c, "Course not found")
		case errors.Is(err, errCourseHasQuiz):
			return utils.BadRequest(c, "Course already has a quiz")
		default:
			return utils.BadRequest(c, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"message": "Quiz created",
		"quiz":    quiz,
	})
}

func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	type QuizUpdate struct {
		CourseID         *uuid.UUID `json:"course_id"`
		MaxAttempts      *int       `json:"max_attempts"`
		PassingThreshold *int       `json:"passing_threshold"`
	}

	var input QuizUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.MaxAttempts != nil {
		if *input.MaxAttempts < 1 {
			return utils.BadRequest(c, "max_attempts must be at least 1")
		}
		quiz.MaxAttempts = *input.MaxAttempts
	}
	if input.PassingThreshold != nil {
		if *input.PassingThreshold < 0 || *input.PassingThreshold > 100 {
			return utils.BadRequest(c, "passing_threshold must be between 0 and 100")
		}
		quiz.PassingThreshold = *input.PassingThreshold
	}
	if input.CourseID != nil {
		var course models.Course
		if err := qc.DB.First(&course, "id = ?", *input.CourseID).Error; err != nil {
			return utils.NotFound(c, "Course not found")
		}
		quiz.CourseID = input.CourseID
	}

	if err := qc.DB.Save(quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not update quiz")
	}

	return c.JSON(fiber.Map{
		"message": "Quiz updated",
		"quiz":    quiz,
	})
}

// ReplaceQuestions swaps the quiz's question list. Stored attempts keep
// their frozen scores, so editing questions never rewrites history.
func (qc *QuizzesController) ReplaceQuestions(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	type QuestionsInput struct {
		Questions []questionInput `json:"questions" validate:"required,min=1,dive"`
	}

	var input QuestionsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		questions, err := buildQuestions(quiz.ID, input.Questions)
		if err != nil {
			return err
		}
		quiz.Questions = questions
		return tx.Create(&questions).Error
	})
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Questions replaced",
		"quiz":    quiz,
	})
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	if err := qc.DB.Delete(quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete quiz")
	}

	return c.JSON(fiber.Map{
		"message": "Quiz deleted",
	})
}

// SubmitAttempt records a new attempt for the current user. The quota
// check and insert are atomic inside the attempt service; on a quota
// violation admins get a best-effort notification and the user gets 409.
func (qc *QuizzesController) SubmitAttempt(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	type AttemptInput struct {
		SelectedIndexes []int `json:"selected_indexes" validate:"required"`
	}

	var input AttemptInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	attempt, err := qc.Attempts.RecordAttempt(quizID, userID, input.SelectedIndexes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			return utils.NotFound(c, "Quiz not found")
		case errors.Is(err, services.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, services.ErrInvalidAnswerSet):
			return utils.BadRequest(c, "Invalid answer set")
		case errors.Is(err, services.ErrMaxAttemptsExceeded):
			// Best-effort: a failed notification must not change the response.
			msg := fmt.Sprintf("User %s exceeded the attempt limit on quiz %s", userID, quizID)
			if nerr := qc.Notifications.NotifyAdmins(msg); nerr != nil {
				log.Printf("failed to notify admins about quota violation: %v", nerr)
			}
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Max attempts exceeded for current cycle",
			})
		default:
			return utils.InternalServerError(c, "Could not record attempt")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Attempt recorded",
		"attempt": fiber.Map{
			"id":               attempt.ID,
			"score":            attempt.Score,
			"passed":           attempt.Passed,
			"attempt_number":   attempt.AttemptNumber,
			"assignment_cycle": attempt.AssignmentCycle,
		},
	})
}

// cycleFilter reads an optional ?cycle= query parameter.
func cycleFilter(c *fiber.Ctx) *int {
	if c.Query("cycle") == "" {
		return nil
	}
	cycle := c.QueryInt("cycle")
	return &cycle
}

func (qc *QuizzesController) GetQuizAttempts(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	attempts, err := qc.Attempts.AttemptsForQuiz(quiz.ID, cycleFilter(c))
	if err != nil {
		return utils.InternalServerError(c, "Could not query attempts")
	}
	return c.JSON(attempts)
}

func (qc *QuizzesController) GetUserAttempts(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	attempts, err := qc.Attempts.AttemptsForUser(quiz.ID, userID, cycleFilter(c))
	if err != nil {
		return utils.InternalServerError(c, "Could not query attempts")
	}
	return c.JSON(attempts)
}

func (qc *QuizzesController) GetMyAttempts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	attempts, err := qc.Attempts.AttemptsForUser(quiz.ID, userID, cycleFilter(c))
	if err != nil {
		return utils.InternalServerError(c, "Could not query attempts")
	}
	return c.JSON(attempts)
}

// GetLatestAttempts returns the most recent attempt per user for a
// given cycle (defaults to cycle 1 for standalone quizzes, otherwise
// the owning course's current cycle).
func (qc *QuizzesController) GetLatestAttempts(c *fiber.Ctx) error {
	quiz, err := qc.getQuiz(c)
	if err != nil {
		return err
	}

	cycle := 1
	if quiz.CourseID != nil {
		var course models.Course
		if err := qc.DB.First(&course, "id = ?", *quiz.CourseID).Error; err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		cycle = course.CurrentCycle
	}
	if f := cycleFilter(c); f != nil {
		cycle = *f
	}

	latest, err := qc.Attempts.LatestAttempts(quiz.ID, cycle)
	if err != nil {
		return utils.InternalServerError(c, "Could not query attempts")
	}

	return c.JSON(fiber.Map{
		"cycle":  cycle,
		"latest": latest,
	})
}
