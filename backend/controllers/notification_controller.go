package controllers

import (
	"errors"

	"trainhub/backend/config"
	"trainhub/backend/models"
	"trainhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNotificationController(db *gorm.DB, cfg *config.Config) *NotificationController {
	return &NotificationController{DB: db, Cfg: cfg}
}

func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(notifications)
}

func (nc *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid notification ID")
	}

	var notification models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Notification not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := nc.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return utils.InternalServerError(c, "Could not update notification")
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}
