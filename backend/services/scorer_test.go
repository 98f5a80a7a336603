package services

import (
	"testing"

	"trainhub/backend/models"

	"github.com/stretchr/testify/assert"
)

func quizWithAnswers(threshold int, correct ...int) *models.Quiz {
	quiz := &models.Quiz{PassingThreshold: threshold, MaxAttempts: 3}
	for i, idx := range correct {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			CorrectIndex:  idx,
			SequenceOrder: i + 1,
		})
	}
	return quiz
}

func TestScoreAttemptAllCorrect(t *testing.T) {
	quiz := quizWithAnswers(80, 0, 1)

	score, passed := ScoreAttempt(quiz, []int{0, 1})
	assert.Equal(t, 100.0, score)
	assert.True(t, passed)
}

func TestScoreAttemptPartiallyCorrect(t *testing.T) {
	quiz := quizWithAnswers(80, 0, 1)

	score, passed := ScoreAttempt(quiz, []int{1, 1})
	assert.Equal(t, 50.0, score)
	assert.False(t, passed)
}

func TestScoreAttemptThresholdBoundary(t *testing.T) {
	quiz := quizWithAnswers(50, 0, 1)

	// Exactly at the threshold counts as passed.
	score, passed := ScoreAttempt(quiz, []int{0, 2})
	assert.Equal(t, 50.0, score)
	assert.True(t, passed)
}

func TestScoreAttemptMissingAnswersCountWrong(t *testing.T) {
	quiz := quizWithAnswers(70, 0, 1, 2)

	score, passed := ScoreAttempt(quiz, []int{0})
	assert.InDelta(t, 33.33, score, 0.01)
	assert.False(t, passed)
}

func TestScoreAttemptExtraAnswersIgnored(t *testing.T) {
	quiz := quizWithAnswers(70, 0, 1)

	score, passed := ScoreAttempt(quiz, []int{0, 1, 4, 4})
	assert.Equal(t, 100.0, score)
	assert.True(t, passed)
}

func TestScoreAttemptNoQuestions(t *testing.T) {
	quiz := quizWithAnswers(70)

	score, passed := ScoreAttempt(quiz, nil)
	assert.Equal(t, 0.0, score)
	assert.False(t, passed)
}

func TestScoreAttemptDeterministic(t *testing.T) {
	quiz := quizWithAnswers(60, 1, 0, 3)
	selected := []int{1, 2, 3}

	score1, passed1 := ScoreAttempt(quiz, selected)
	score2, passed2 := ScoreAttempt(quiz, selected)
	assert.Equal(t, score1, score2)
	assert.Equal(t, passed1, passed2)
}
