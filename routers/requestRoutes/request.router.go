package requestRoutes

import (
	requestController "skillfund/controllers/request"
	"skillfund/middleware"
	requestValidator "skillfund/validators/request"

	"github.com/gofiber/fiber/v2"
)

func SetupRequestRoutes(app *fiber.App) {
	requestGroup := app.Group("/request", middleware.JWTMiddleware)

	// Admin review and listing; registered before the :id routes so
	// "/admin" is not swallowed by the id parameter
	adminGroup := requestGroup.Group("/admin", middleware.RequireRole("ADMIN"))
	adminGroup.Get("/list", requestController.AdminListRequests)
	adminGroup.Post("/review", requestValidator.Review(), requestController.ReviewRequest)
	adminGroup.Post("/disburse", requestValidator.Disburse(), requestController.DisburseRequest)
	adminGroup.Get("/:id", requestController.AdminGetRequest)

	// Student routes
	requestGroup.Post("/submit", middleware.RequireRole("STUDENT"), requestValidator.Submit(), requestController.SubmitRequest)
	requestGroup.Get("/my", middleware.RequireRole("STUDENT"), requestController.MyRequests)
	requestGroup.Get("/:id", requestController.GetRequest)
	requestGroup.Delete("/:id", middleware.RequireRole("STUDENT"), requestController.DeleteRequest)
}
