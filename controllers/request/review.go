package requestController

import (
	"log"
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	"skillfund/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ReviewRequest applies an admin decision to a pending funding request.
// Approval records the purchase price and debits the donation bank in the
// same transaction; the pending-status guard sits in the UPDATE's WHERE
// clause so a concurrent double-review loses with a Conflict.
func ReviewRequest(c *fiber.Ctx) error {
	adminId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		RequestID     uint    `json:"requestId"`
		Action        string  `json:"action"`
		Note          string  `json:"note"`
		PurchasePrice float64 `json:"purchasePrice"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.FundingRequest
	if err := db.Where("id = ? AND is_deleted = ?", reqData.RequestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.Status != models.RequestStatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been reviewed!", nil)
	}

	now := time.Now()

	if reqData.Action == "reject" {
		result := db.Model(&models.FundingRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":      models.RequestStatusRejected,
				"review_note": reqData.Note,
				"reviewed_by": adminId,
				"reviewed_at": now,
			})
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review request!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been reviewed!", nil)
		}

		go notifyDecision(request.StudentID, "rejected", reqData.Note, 0)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Request rejected.", fiber.Map{
			"requestId": request.ID,
			"status":    models.RequestStatusRejected,
		})
	}

	// approve
	if reqData.PurchasePrice <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing or invalid price", nil)
	}

	tx := db.Begin()

	balance, err := models.DonationBankBalance(tx)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review request!", nil)
	}
	if balance < reqData.PurchasePrice {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient donation bank balance!", nil)
	}

	result := tx.Model(&models.FundingRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":         models.RequestStatusApproved,
			"review_note":    reqData.Note,
			"purchase_price": reqData.PurchasePrice,
			"reviewed_by":    adminId,
			"reviewed_at":    now,
		})
	if result.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review request!", nil)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been reviewed!", nil)
	}

	debit := models.DonationTransaction{
		TransactionType: models.TransactionTypeDisbursement,
		Amount:          reqData.PurchasePrice,
		BalanceBefore:   balance,
		BalanceAfter:    balance - reqData.PurchasePrice,
		Status:          models.TransactionStatusCompleted,
		Source:          "review",
		Description:     "Funding approved for request",
		RequestID:       request.ID,
		StudentID:       request.StudentID,
		AdminID:         adminId,
		Reason:          reqData.Note,
		TransactionDate: now,
	}
	if err := tx.Create(&debit).Error; err != nil {
		tx.Rollback()
		log.Printf("Error recording disbursement for request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review request!", nil)
	}

	tx.Commit()

	go notifyDecision(request.StudentID, "approved", reqData.Note, reqData.PurchasePrice)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request approved.", fiber.Map{
		"requestId":     request.ID,
		"status":        models.RequestStatusApproved,
		"purchasePrice": reqData.PurchasePrice,
		"transactionId": debit.ID,
		"bankBalance":   balance - reqData.PurchasePrice,
	})
}

// DisburseRequest marks an approved request as funded once the money has
// actually gone out. The ledger debit already happened at approval.
func DisburseRequest(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDisburse").(*struct {
		RequestID uint `json:"requestId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.FundingRequest
	if err := db.Where("id = ? AND is_deleted = ?", reqData.RequestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	now := time.Now()
	result := db.Model(&models.FundingRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestStatusApproved).
		Updates(map[string]interface{}{
			"status":       models.RequestStatusFunded,
			"disbursed_at": now,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to disburse request!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only approved requests can be disbursed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request marked as funded.", fiber.Map{
		"requestId":   request.ID,
		"status":      models.RequestStatusFunded,
		"disbursedAt": now,
	})
}

func notifyDecision(studentID uint, decision, note string, price float64) {
	var student models.User
	if err := database.Database.Db.Select("name", "email").Where("id = ?", studentID).First(&student).Error; err != nil {
		log.Printf("Error fetching student %d for decision email: %v", studentID, err)
		return
	}
	utils.SendReviewDecisionEmail(student.Email, student.Name, decision, note, price)
}
