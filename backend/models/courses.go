package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"size:500" json:"description"`
	IsActive     bool       `gorm:"default:false" json:"is_active"`
	CurrentCycle int        `gorm:"default:1;not null" json:"current_cycle"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Users        []User     `gorm:"many2many:course_user_links" json:"users,omitempty"`
	Roles        []Role     `gorm:"many2many:course_role_links" json:"roles,omitempty"`
	Quiz         *Quiz      `gorm:"foreignKey:CourseID" json:"quiz,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CourseUpdate carries a partial update; nil fields are left untouched.
type CourseUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"is_active"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}
