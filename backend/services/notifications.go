package services

import (
	"trainhub/backend/models"

	"gorm.io/gorm"
)

// NotificationService is the sink used to alert administrators, e.g.
// when a user submits past the attempt quota. Writes are best-effort;
// callers log failures instead of surfacing them.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (ns *NotificationService) NotifyAdmins(message string) error {
	var admins []models.User
	if err := ns.DB.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		return err
	}

	for _, admin := range admins {
		n := models.Notification{UserID: admin.ID, Message: message}
		if err := ns.DB.Create(&n).Error; err != nil {
			return err
		}
	}
	return nil
}
