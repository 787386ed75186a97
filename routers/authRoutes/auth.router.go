package authRoutes

import (
	authController "skillfund/controllers/auth"
	"skillfund/middleware"
	authValidator "skillfund/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/verify-otp", authController.VerifyOTP)
	authGroup.Post("/login", authController.Login)
	authGroup.Get("/login-history", middleware.JWTMiddleware, authController.LoginHistoryList)
}
