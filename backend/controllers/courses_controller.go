package controllers

import (
	"errors"

	"trainhub/backend/config"
	"trainhub/backend/models"
	"trainhub/backend/services"
	"trainhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Members   *services.MembershipService
	Progress  *services.ProgressService
	Analytics *services.AnalyticsService
	Cycle     *services.CycleService
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{
		DB:        db,
		Cfg:       cfg,
		Members:   services.NewMembershipService(db),
		Progress:  services.NewProgressService(db),
		Analytics: services.NewAnalyticsService(db),
		Cycle:     services.NewCycleService(db),
	}
}

func (cc *CoursesController) getCourse(c *fiber.Ctx, preload bool) (*models.Course, error) {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid course ID")
	}

	query := cc.DB
	if preload {
		query = query.Preload("Users").Preload("Roles").
			Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("sequence_order")
			})
	}

	var course models.Course
	if err := query.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Course not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}
	return &course, nil
}

func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 50)

	var total int64
	cc.DB.Model(&models.Course{}).Count(&total)

	var courses []models.Course
	if err := cc.DB.Order("created_at").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Paginate(c, courses, total, page, pageSize)
}

// GetMyCourses returns the courses the current user is assigned to,
// directly or through their role.
func (cc *CoursesController) GetMyCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := cc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	query := cc.DB.
		Where("id IN (SELECT course_id FROM course_user_links WHERE user_id = ?)", userID)
	if user.RoleID != nil {
		query = query.Or("id IN (SELECT course_id FROM course_role_links WHERE role_id = ?)", *user.RoleID)
	}

	var courses []models.Course
	if err := query.Order("id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(courses)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"course": course,
	})
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	type CourseInput struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		IsActive    bool   `json:"is_active"`
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		IsActive:     input.IsActive,
		CurrentCycle: 1,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	var input models.CourseUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.IsActive != nil {
		course.IsActive = *input.IsActive
	}
	if input.StartDate != nil {
		course.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		course.EndDate = input.EndDate
	}

	if err := cc.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	if err := cc.DB.Delete(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return c.JSON(fiber.Map{
		"message": "Course deleted",
	})
}

func (cc *CoursesController) AssignUser(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	type AssignInput struct {
		UserID uuid.UUID `json:"user_id" validate:"required"`
	}
	var input AssignInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := cc.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if err := cc.DB.Model(course).Association("Users").Append(&user); err != nil {
		return utils.InternalServerError(c, "Could not assign user")
	}

	return c.JSON(fiber.Map{
		"message": "User assigned to course",
	})
}

func (cc *CoursesController) UnassignUser(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := cc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if err := cc.DB.Model(course).Association("Users").Delete(&user); err != nil {
		return utils.InternalServerError(c, "Could not unassign user")
	}

	return c.JSON(fiber.Map{
		"message": "User unassigned from course",
	})
}

func (cc *CoursesController) AssignRole(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	type AssignInput struct {
		RoleID uuid.UUID `json:"role_id" validate:"required"`
	}
	var input AssignInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var role models.Role
	if err := cc.DB.First(&role, "id = ?", input.RoleID).Error; err != nil {
		return utils.NotFound(c, "Role not found")
	}

	if err := cc.DB.Model(course).Association("Roles").Append(&role); err != nil {
		return utils.InternalServerError(c, "Could not assign role")
	}

	return c.JSON(fiber.Map{
		"message": "Role assigned to course",
	})
}

func (cc *CoursesController) UnassignRole(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var role models.Role
	if err := cc.DB.First(&role, "id = ?", roleID).Error; err != nil {
		return utils.NotFound(c, "Role not found")
	}

	if err := cc.DB.Model(course).Association("Roles").Delete(&role); err != nil {
		return utils.InternalServerError(c, "Could not unassign role")
	}

	return c.JSON(fiber.Map{
		"message": "Role unassigned from course",
	})
}

func (cc *CoursesController) GetAssignedUsers(c *fiber.Ctx) error {
	course, err := cc.getCourse(c, false)
	if err != nil {
		return err
	}

	users, err := cc.Members.Resolve(course)
	if err != nil {
		return utils.InternalServerError(c, "Could not resolve course membership")
	}

	return c.JSON(users)
}

func (cc *CoursesController) GetCourseProgress(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	progress, err := cc.Progress.CourseProgress(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not compute course progress")
	}

	return c.JSON(fiber.Map{
		"progress": progress,
	})
}

func (cc *CoursesController) GetCourseAnalytics(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	analytics, err := cc.Analytics.CourseAnalytics(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not compute course analytics")
	}

	return c.JSON(fiber.Map{
		"analytics": analytics,
	})
}

// IncrementCycle starts a new assignment cycle for the course. Old
// attempts are kept for history; quotas and statuses reset because they
// are always derived from the current cycle only.
func (cc *CoursesController) IncrementCycle(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	course, err := cc.Cycle.IncrementCycle(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not increment cycle")
	}

	return c.JSON(fiber.Map{
		"message": "Cycle incremented",
		"course":  course,
	})
}
