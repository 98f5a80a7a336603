package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID         *uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"course_id"`
	MaxAttempts      int            `gorm:"default:3;not null" json:"max_attempts"`
	PassingThreshold int            `gorm:"default:70;not null" json:"passing_threshold"`
	Questions        []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Prompt        string         `gorm:"type:text;not null" json:"prompt"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"` // []string, 2-5 entries
	CorrectIndex  int            `gorm:"not null" json:"correct_index"`
	SequenceOrder int            `gorm:"not null" json:"sequence_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// QuizAttempt rows are append-only. Score and Passed are frozen at
// submission time so later question edits never rescore history.
type QuizAttempt struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_quota" json:"quiz_id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_quota" json:"user_id"`
	SelectedIndexes datatypes.JSON `gorm:"type:jsonb;not null" json:"selected_indexes"` // []int, one per question
	Score           float64        `gorm:"not null" json:"score"`
	Passed          bool           `gorm:"default:false;not null" json:"passed"`
	AttemptNumber   int            `gorm:"not null" json:"attempt_number"`
	AssignmentCycle int            `gorm:"not null;index:idx_attempt_quota" json:"assignment_cycle"`
	CreatedAt       time.Time      `json:"created_at"`
}
