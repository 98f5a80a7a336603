package routes

import (
	"trainhub/backend/config"
	"trainhub/backend/controllers"
	"trainhub/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Notification routes
	notificationController := controllers.NewNotificationController(db, cfg)
	app.Get("/api/notifications", authMiddleware, notificationController.GetNotifications)
	app.Put("/api/notifications/:id/read", authMiddleware, notificationController.MarkAsRead)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/my", coursesController.GetMyCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Get("/:id/progress", adminMiddleware, coursesController.GetCourseProgress)
	courses.Get("/:id/analytics", adminMiddleware, coursesController.GetCourseAnalytics)

	// Quizzes routes
	quizzesController := controllers.NewQuizzesController(db, cfg)
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Post("/:id/attempts", quizzesController.SubmitAttempt)
	quizzes.Get("/:id/attempts/my", quizzesController.GetMyAttempts)

	// Admin routes for users and roles
	adminUsers := app.Group("/api/admin/users", authMiddleware, adminMiddleware)
	adminUsers.Get("/", userController.GetUsers)
	adminUsers.Post("/", userController.CreateUser)
	adminUsers.Get("/:id", userController.GetUser)
	adminUsers.Put("/:id", userController.UpdateUser)
	adminUsers.Put("/:id/role", userController.AssignRole)
	adminUsers.Delete("/:id", userController.DeleteUser)

	roleController := controllers.NewRoleController(db, cfg)
	adminRoles := app.Group("/api/admin/roles", authMiddleware, adminMiddleware)
	adminRoles.Get("/", roleController.GetRoles)
	adminRoles.Post("/", roleController.CreateRole)
	adminRoles.Get("/:id", roleController.GetRole)
	adminRoles.Put("/:id", roleController.UpdateRole)
	adminRoles.Delete("/:id", roleController.DeleteRole)
	adminRoles.Get("/:id/users", roleController.GetRoleUsers)

	// Admin routes for courses
	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Put("/:id", coursesController.UpdateCourse)
	adminCourses.Delete("/:id", coursesController.DeleteCourse)
	adminCourses.Post("/:id/users", coursesController.AssignUser)
	adminCourses.Delete("/:id/users/:userId", coursesController.UnassignUser)
	adminCourses.Post("/:id/roles", coursesController.AssignRole)
	adminCourses.Delete("/:id/roles/:roleId", coursesController.UnassignRole)
	adminCourses.Get("/:id/assigned", coursesController.GetAssignedUsers)
	adminCourses.Post("/:id/cycle", coursesController.IncrementCycle)

	// Admin routes for quizzes
	adminQuizzes := app.Group("/api/admin/quizzes", authMiddleware, adminMiddleware)
	adminQuizzes.Get("/", quizzesController.GetQuizzes)
	adminQuizzes.Post("/", quizzesController.CreateQuiz)
	adminQuizzes.Get("/:id", quizzesController.GetQuizFull)
	adminQuizzes.Put("/:id", quizzesController.UpdateQuiz)
	adminQuizzes.Put("/:id/questions", quizzesController.ReplaceQuestions)
	adminQuizzes.Delete("/:id", quizzesController.DeleteQuiz)
	adminQuizzes.Get("/:id/attempts", quizzesController.GetQuizAttempts)
	adminQuizzes.Get("/:id/attempts/latest", quizzesController.GetLatestAttempts)
	adminQuizzes.Get("/:id/users/:userId/attempts", quizzesController.GetUserAttempts)
}
