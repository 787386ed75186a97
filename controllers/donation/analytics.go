package donationController

import (
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// rangeStart maps the range query parameter to its window start
func rangeStart(rangeKey string) (time.Time, bool) {
	today := now.BeginningOfDay()

	switch rangeKey {
	case "7d":
		return today.AddDate(0, 0, -7), true
	case "30d":
		return today.AddDate(0, 0, -30), true
	case "90d":
		return today.AddDate(0, 0, -90), true
	case "1y":
		return today.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// AdminAnalytics returns windowed aggregates for the admin dashboard:
// donations in, disbursements out, request counts per status, new users.
func AdminAnalytics(c *fiber.Ctx) error {
	rangeKey := c.Query("range", "30d")
	since, ok := rangeStart(rangeKey)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Range must be one of 7d, 30d, 90d, 1y!", nil)
	}

	db := database.Database.Db

	var donationsIn, disbursementsOut float64
	db.Model(&models.DonationTransaction{}).
		Where("transaction_type = ? AND status = ? AND transaction_date >= ? AND is_deleted = false",
			models.TransactionTypeDonation, models.TransactionStatusCompleted, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&donationsIn)
	db.Model(&models.DonationTransaction{}).
		Where("transaction_type = ? AND status = ? AND transaction_date >= ? AND is_deleted = false",
			models.TransactionTypeDisbursement, models.TransactionStatusCompleted, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&disbursementsOut)

	requestCounts := fiber.Map{}
	for _, status := range []models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusApproved,
		models.RequestStatusRejected,
		models.RequestStatusFunded,
	} {
		var count int64
		db.Model(&models.FundingRequest{}).
			Where("status = ? AND created_at >= ? AND is_deleted = false", status, since).
			Count(&count)
		requestCounts[string(status)] = count
	}

	var newUsers int64
	db.Model(&models.User{}).
		Where("created_at >= ? AND is_deleted = false", since).
		Count(&newUsers)

	balance, err := models.DonationBankBalance(db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute analytics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched!", fiber.Map{
		"range":            rangeKey,
		"since":            since,
		"donationsIn":      donationsIn,
		"disbursementsOut": disbursementsOut,
		"bankBalance":      balance,
		"requests":         requestCounts,
		"newUsers":         newUsers,
	})
}
