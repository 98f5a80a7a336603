package services

import "trainhub/backend/models"

// ScoreAttempt grades a set of selected option indexes against the
// quiz's questions (in sequence order). Missing entries count as wrong,
// extra entries are ignored, so the percentage is always out of the
// full question count. A quiz with zero questions scores 0.
func ScoreAttempt(quiz *models.Quiz, selected []int) (percentage float64, passed bool) {
	questions := quiz.Questions
	if len(questions) == 0 {
		return 0, 0 >= quiz.PassingThreshold
	}

	correct := 0
	for i, q := range questions {
		if i < len(selected) && selected[i] == q.CorrectIndex {
			correct++
		}
	}

	percentage = float64(correct) / float64(len(questions)) * 100
	passed = percentage >= float64(quiz.PassingThreshold)
	return percentage, passed
}
