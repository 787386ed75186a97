package donationController

import (
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListTransactions returns all ledger entries with filters
func AdminListTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type")
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.DonationTransaction{}).Where("is_deleted = ?", false)
	if txnType != "" {
		query = query.Where("transaction_type = ?", txnType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var transactions []models.DonationTransaction
	if err := query.Order("transaction_date DESC").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminUpdateTransactionStatus moves a ledger entry between
// completed/flagged/refunded. Totals are recomputed per read so no
// aggregate reconciliation is needed here.
func AdminUpdateTransactionStatus(c *fiber.Ctx) error {
	adminId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTxnStatus").(*struct {
		TransactionID uint   `json:"transactionId"`
		Status        string `json:"status"`
		Reason        string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var transaction models.DonationTransaction
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TransactionID, false).First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	transaction.Status = models.TransactionStatus(reqData.Status)
	transaction.AdminID = adminId
	if reqData.Reason != "" {
		transaction.Reason = reqData.Reason
	}

	if err := db.Save(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction status updated!", fiber.Map{
		"transactionId": transaction.ID,
		"status":        transaction.Status,
	})
}

// AdminBankSummary returns the donation bank aggregates: spendable total,
// donor count and the top donors by contributed sum.
func AdminBankSummary(c *fiber.Ctx) error {
	topN := c.QueryInt("top", 5)
	if topN < 1 {
		topN = 5
	}

	db := database.Database.Db

	balance, err := models.DonationBankBalance(db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute bank summary!", nil)
	}

	var donorCount int64
	db.Model(&models.DonationTransaction{}).
		Where("transaction_type = ? AND status = ? AND is_deleted = false",
			models.TransactionTypeDonation, models.TransactionStatusCompleted).
		Distinct("donor_id").
		Count(&donorCount)

	var totalDonated float64
	db.Model(&models.DonationTransaction{}).
		Where("transaction_type = ? AND status = ? AND is_deleted = false",
			models.TransactionTypeDonation, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalDonated)

	type topDonor struct {
		DonorID   uint    `json:"donorId"`
		DonorName string  `json:"donorName"`
		Total     float64 `json:"total"`
	}

	var top []topDonor
	db.Model(&models.DonationTransaction{}).
		Select("donor_id, COALESCE(SUM(amount), 0) AS total").
		Where("transaction_type = ? AND status = ? AND is_deleted = false",
			models.TransactionTypeDonation, models.TransactionStatusCompleted).
		Group("donor_id").
		Order("total DESC").
		Limit(topN).
		Scan(&top)

	for i := range top {
		var donor models.User
		if err := db.Select("name").Where("id = ?", top[i].DonorID).First(&donor).Error; err == nil {
			top[i].DonorName = donor.Name
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank summary fetched!", fiber.Map{
		"bankBalance":  balance,
		"totalDonated": totalDonated,
		"donorCount":   donorCount,
		"topDonors":    top,
	})
}
