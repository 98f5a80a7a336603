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

type RoleController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewRoleController(db *gorm.DB, cfg *config.Config) *RoleController {
	return &RoleController{DB: db, Cfg: cfg}
}

func (rc *RoleController) GetRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := rc.DB.Order("name").Find(&roles).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(roles)
}

func (rc *RoleController) GetRole(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var role models.Role
	if err := rc.DB.First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(role)
}

func (rc *RoleController) CreateRole(c *fiber.Ctx) error {
	type RoleInput struct {
		Name string `json:"name" validate:"required"`
	}

	var input RoleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var existing models.Role
	if err := rc.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "A role with this name already exists")
	}

	role := models.Role{Name: input.Name}
	if err := rc.DB.Create(&role).Error; err != nil {
		return utils.InternalServerError(c, "Could not create role")
	}

	return c.JSON(fiber.Map{
		"message": "Role created",
		"role":    role,
	})
}

func (rc *RoleController) UpdateRole(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	type RoleUpdate struct {
		Name *string `json:"name"`
	}

	var input RoleUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var role models.Role
	if err := rc.DB.First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Name != nil {
		role.Name = *input.Name
	}

	if err := rc.DB.Save(&role).Error; err != nil {
		return utils.InternalServerError(c, "Could not update role")
	}

	return c.JSON(fiber.Map{
		"message": "Role updated",
		"role":    role,
	})
}

func (rc *RoleController) DeleteRole(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var role models.Role
	if err := rc.DB.First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := rc.DB.Delete(&role).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete role")
	}

	return c.JSON(fiber.Map{
		"message": "Role deleted",
	})
}

func (rc *RoleController) GetRoleUsers(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var role models.Role
	if err := rc.DB.First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var users []models.User
	if err := rc.DB.Where("role_id = ?", roleID).Order("id").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(users)
}
