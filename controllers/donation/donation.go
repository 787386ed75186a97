package donationController

import (
	"encoding/json"
	"log"
	"skillfund/config"
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// Donate records a donor contribution to the donation bank. The payment
// itself is simulated; when a sandbox gateway is configured the payment id
// is verified against it before the ledger row is written.
func Donate(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDonation").(*struct {
		Amount          float64 `json:"amount"`
		Source          string  `json:"source"`
		PaymentGateway  string  `json:"paymentGateway"`
		PaymentOrderID  string  `json:"paymentOrderId"`
		PaymentID       string  `json:"paymentId"`
		PaymentMethod   string  `json:"paymentMethod"`
		PaymentResponse any     `json:"paymentResponse"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Duplicate payment guard
	var existing models.DonationTransaction
	if err := db.Where("payment_id = ? AND is_deleted = false", reqData.PaymentID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already processed!", nil)
	}

	// Verify the payment against the sandbox gateway when configured
	if config.AppConfig.GatewayVerifyURL != "" {
		if err := verifyPayment(reqData.PaymentID, reqData.Amount); err != nil {
			log.Printf("Gateway verification failed for payment %s: %v", reqData.PaymentID, err)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", nil)
		}
	}

	paymentResponseJSON := ""
	if reqData.PaymentResponse != nil {
		if jsonBytes, err := json.Marshal(reqData.PaymentResponse); err == nil {
			paymentResponseJSON = string(jsonBytes)
		}
	}

	tx := db.Begin()

	balance, err := models.DonationBankBalance(tx)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record donation!", nil)
	}

	source := reqData.Source
	if source == "" {
		source = "web"
	}

	donation := models.DonationTransaction{
		DonorID:            userId,
		TransactionType:    models.TransactionTypeDonation,
		Amount:             reqData.Amount,
		BalanceBefore:      balance,
		BalanceAfter:       balance + reqData.Amount,
		Status:             models.TransactionStatusCompleted,
		Source:             source,
		Description:        "Donation via " + reqData.PaymentGateway,
		PaymentGateway:     reqData.PaymentGateway,
		PaymentOrderID:     reqData.PaymentOrderID,
		PaymentID:          reqData.PaymentID,
		PaymentMethod:      reqData.PaymentMethod,
		PaymentResponseRaw: paymentResponseJSON,
		TransactionDate:    time.Now(),
	}

	if err := tx.Create(&donation).Error; err != nil {
		tx.Rollback()
		log.Printf("Error recording donation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record donation!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Donation recorded. Thank you!", fiber.Map{
		"transactionId": donation.ID,
		"amount":        donation.Amount,
		"bankBalance":   donation.BalanceAfter,
		"status":        donation.Status,
	})
}

// MyDonations lists the caller's donation history
func MyDonations(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.DonationTransaction{}).
		Where("donor_id = ? AND transaction_type = ? AND is_deleted = ?", userId, models.TransactionTypeDonation, false)

	var total int64
	query.Count(&total)

	var donations []models.DonationTransaction
	if err := query.Order("transaction_date DESC").Offset(offset).Limit(limit).Find(&donations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch donations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Donation history fetched!", fiber.Map{
		"donations": donations,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// verifyPayment asks the sandbox gateway whether the payment id is genuine
func verifyPayment(paymentID string, amount float64) error {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.GatewayApiKey).
		SetBody(map[string]interface{}{
			"paymentId": paymentID,
			"amount":    amount,
		}).
		Post(config.AppConfig.GatewayVerifyURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fiber.NewError(resp.StatusCode(), "gateway returned "+resp.Status())
	}
	return nil
}
