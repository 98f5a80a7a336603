package services

import "errors"

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrRoleNotFound   = errors.New("role not found")

	// ErrMaxAttemptsExceeded is the expected terminal condition for a
	// user who has exhausted the quiz quota in the current cycle. It is
	// not a system fault; callers decide whether to notify admins.
	ErrMaxAttemptsExceeded = errors.New("max attempts exceeded for current cycle")

	ErrInvalidAnswerSet = errors.New("invalid answer set")
)
