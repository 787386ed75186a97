package donationRoutes

import (
	donationController "skillfund/controllers/donation"
	"skillfund/middleware"
	donationValidator "skillfund/validators/donation"

	"github.com/gofiber/fiber/v2"
)

func SetupDonationRoutes(app *fiber.App) {
	donationGroup := app.Group("/donation", middleware.JWTMiddleware)

	// Donor routes
	donationGroup.Post("/donate", middleware.RequireRole("DONOR"), donationValidator.Donate(), donationController.Donate)
	donationGroup.Get("/my", middleware.RequireRole("DONOR"), donationController.MyDonations)

	// Admin routes
	adminGroup := donationGroup.Group("/admin", middleware.RequireRole("ADMIN"))
	adminGroup.Get("/transactions", donationController.AdminListTransactions)
	adminGroup.Post("/status", donationValidator.TransactionStatus(), donationController.AdminUpdateTransactionStatus)
	adminGroup.Get("/bank", donationController.AdminBankSummary)
	adminGroup.Get("/analytics", donationController.AdminAnalytics)
}
