package donationValidator

import (
	"skillfund/middleware"
	"skillfund/models"

	"github.com/gofiber/fiber/v2"
)

// Donate validates a donor contribution payload
func Donate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount          float64 `json:"amount"`
			Source          string  `json:"source"`
			PaymentGateway  string  `json:"paymentGateway"`
			PaymentOrderID  string  `json:"paymentOrderId"`
			PaymentID       string  `json:"paymentId"`
			PaymentMethod   string  `json:"paymentMethod"`
			PaymentResponse any     `json:"paymentResponse"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.PaymentGateway == "" {
			errors["paymentGateway"] = "Payment gateway is required!"
		}
		if reqData.PaymentID == "" {
			errors["paymentId"] = "Payment ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDonation", reqData)
		return c.Next()
	}
}

// TransactionStatus validates an admin ledger status change
func TransactionStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TransactionID uint   `json:"transactionId"`
			Status        string `json:"status"`
			Reason        string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TransactionID == 0 {
			errors["transactionId"] = "Transaction ID is required!"
		}
		switch models.TransactionStatus(reqData.Status) {
		case models.TransactionStatusCompleted, models.TransactionStatusFlagged, models.TransactionStatusRefunded:
		default:
			errors["status"] = "Status must be COMPLETED, FLAGGED or REFUNDED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTxnStatus", reqData)
		return c.Next()
	}
}
