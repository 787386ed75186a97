package donationController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"skillfund/config"
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	donationRoutes "skillfund/routers/donationRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	donationRoutes.SetupDonationRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, role, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:            "Test " + role,
		Email:           email,
		Role:            role,
		Password:        "irrelevant",
		IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, payload interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func donate(t *testing.T, app *fiber.App, token, paymentID string, amount float64) apiResponse {
	t.Helper()

	resp, parsed := doJSON(t, app, http.MethodPost, "/donation/donate", token, fiber.Map{
		"amount":         amount,
		"paymentGateway": "razorpay",
		"paymentId":      paymentID,
		"paymentMethod":  "UPI",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, parsed.Message)
	return parsed
}

func TestDonateTracksBankBalance(t *testing.T) {
	app, db := setupTest(t)

	_, donorToken := createUser(t, db, "DONOR", "donor@test.io")

	parsed := donate(t, app, donorToken, "pay-1", 400)
	assert.Equal(t, float64(400), parsed.Data["bankBalance"])

	parsed = donate(t, app, donorToken, "pay-2", 100)
	assert.Equal(t, float64(500), parsed.Data["bankBalance"])

	var txn models.DonationTransaction
	require.NoError(t, db.Where("payment_id = ?", "pay-2").First(&txn).Error)
	assert.Equal(t, float64(400), txn.BalanceBefore)
	assert.Equal(t, float64(500), txn.BalanceAfter)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
}

func TestDonateRejectsDuplicatePayment(t *testing.T) {
	app, db := setupTest(t)

	_, donorToken := createUser(t, db, "DONOR", "donor@test.io")

	donate(t, app, donorToken, "pay-dup", 50)

	resp, parsed := doJSON(t, app, http.MethodPost, "/donation/donate", donorToken, fiber.Map{
		"amount":         50,
		"paymentGateway": "razorpay",
		"paymentId":      "pay-dup",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Transaction already processed!", parsed.Message)

	var count int64
	db.Model(&models.DonationTransaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDonateValidatesAmount(t *testing.T) {
	app, db := setupTest(t)

	_, donorToken := createUser(t, db, "DONOR", "donor@test.io")

	resp, _ := doJSON(t, app, http.MethodPost, "/donation/donate", donorToken, fiber.Map{
		"amount":         0,
		"paymentGateway": "razorpay",
		"paymentId":      "pay-zero",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestStudentCannotDonate(t *testing.T) {
	app, db := setupTest(t)

	_, studentToken := createUser(t, db, "STUDENT", "student@test.io")

	resp, _ := doJSON(t, app, http.MethodPost, "/donation/donate", studentToken, fiber.Map{
		"amount": 10, "paymentGateway": "razorpay", "paymentId": "pay-x",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestBankSummaryExcludesFlaggedAndRefunded(t *testing.T) {
	app, db := setupTest(t)

	alice, aliceToken := createUser(t, db, "DONOR", "alice@test.io")
	bob, bobToken := createUser(t, db, "DONOR", "bob@test.io")
	_, adminToken := createUser(t, db, "ADMIN", "admin@test.io")

	donate(t, app, aliceToken, "pay-a1", 300)
	donate(t, app, bobToken, "pay-b1", 200)
	donate(t, app, bobToken, "pay-b2", 150)

	// Flag one of Bob's donations; it must drop out of every aggregate
	var flaggedTxn models.DonationTransaction
	require.NoError(t, db.Where("payment_id = ?", "pay-b2").First(&flaggedTxn).Error)

	resp, _ := doJSON(t, app, http.MethodPost, "/donation/admin/status", adminToken, fiber.Map{
		"transactionId": flaggedTxn.ID,
		"status":        "FLAGGED",
		"reason":        "chargeback inquiry",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, parsed := doJSON(t, app, http.MethodGet, "/donation/admin/bank", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(500), parsed.Data["bankBalance"])
	assert.Equal(t, float64(500), parsed.Data["totalDonated"])
	assert.Equal(t, float64(2), parsed.Data["donorCount"])

	top := parsed.Data["topDonors"].([]interface{})
	require.Len(t, top, 2)
	first := top[0].(map[string]interface{})
	assert.Equal(t, float64(alice.ID), first["donorId"])
	assert.Equal(t, float64(300), first["total"])
	second := top[1].(map[string]interface{})
	assert.Equal(t, float64(bob.ID), second["donorId"])
	assert.Equal(t, float64(200), second["total"])
}

func TestAnalyticsRejectsUnknownRange(t *testing.T) {
	app, db := setupTest(t)

	_, adminToken := createUser(t, db, "ADMIN", "admin@test.io")

	resp, _ := doJSON(t, app, http.MethodGet, "/donation/admin/analytics?range=2w", adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, parsed := doJSON(t, app, http.MethodGet, "/donation/admin/analytics?range=7d", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "7d", parsed.Data["range"])
}

func TestMyDonationsListsOnlyOwn(t *testing.T) {
	app, db := setupTest(t)

	_, aliceToken := createUser(t, db, "DONOR", "alice@test.io")
	_, bobToken := createUser(t, db, "DONOR", "bob@test.io")

	donate(t, app, aliceToken, "pay-a1", 25)
	donate(t, app, bobToken, "pay-b1", 75)

	resp, parsed := doJSON(t, app, http.MethodGet, "/donation/my", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	donations := parsed.Data["donations"].([]interface{})
	require.Len(t, donations, 1)
	first := donations[0].(map[string]interface{})
	assert.Equal(t, float64(25), first["amount"])
}
