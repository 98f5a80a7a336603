package services

import (
	"errors"

	"trainhub/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CycleService owns the course's current_cycle counter. Advancing it
// grants every assigned user a fresh attempt quota; prior attempts are
// kept untouched and stay queryable by their cycle number.
type CycleService struct {
	DB *gorm.DB
}

func NewCycleService(db *gorm.DB) *CycleService {
	return &CycleService{DB: db}
}

// IncrementCycle bumps current_cycle by exactly 1 under a row lock, so
// it cannot interleave with an attempt submission reading the counter.
func (cs *CycleService) IncrementCycle(courseID uuid.UUID) (*models.Course, error) {
	var course models.Course

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		course.CurrentCycle++
		return tx.Model(&course).UpdateColumn("current_cycle", course.CurrentCycle).Error
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}
