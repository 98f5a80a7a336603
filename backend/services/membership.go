package services

import (
	"trainhub/backend/models"

	"gorm.io/gorm"
)

type MembershipService struct {
	DB *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{DB: db}
}

// Resolve returns the effective set of users assigned to a course: the
// union of directly-linked users and users whose role is linked to the
// course. Selecting from the users table keeps set semantics, so a user
// reachable both ways appears once. Ordered by user id for stable output.
func (ms *MembershipService) Resolve(course *models.Course) ([]models.User, error) {
	var users []models.User
	err := ms.DB.
		Where("id IN (SELECT user_id FROM course_user_links WHERE course_id = ?)", course.ID).
		Or("role_id IN (SELECT role_id FROM course_role_links WHERE course_id = ?)", course.ID).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
