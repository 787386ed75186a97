package courseRoutes

import (
	courseController "skillfund/controllers/course"
	"skillfund/middleware"
	courseValidator "skillfund/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", courseController.ListCourses)
	courseGroup.Get("/:id", courseController.GetCourse)

	// Admin catalog management
	adminGroup := courseGroup.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminGroup.Get("/list", courseController.AdminListCourses)
	adminGroup.Post("/create", courseValidator.Course(), courseController.AdminCreateCourse)
	adminGroup.Put("/:id", courseValidator.Course(), courseController.AdminUpdateCourse)
	adminGroup.Delete("/:id", courseController.AdminDeleteCourse)
}
