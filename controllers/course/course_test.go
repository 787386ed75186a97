package courseController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"skillfund/config"
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	courseRoutes "skillfund/routers/courseRoutes"

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
	courseRoutes.SetupCourseRoutes(app)
	return app, db
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()

	admin := models.User{Name: "Admin", Email: "admin@test.io", Role: "ADMIN", Password: "irrelevant"}
	require.NoError(t, db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
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

func TestPublicListShowsOnlyApprovedCourses(t *testing.T) {
	app, db := setupTest(t)
	token := adminToken(t, db)

	resp, _ := doJSON(t, app, http.MethodPost, "/course/admin/create", token, fiber.Map{
		"title": "Approved Course", "provider": "Coursera", "category": "data", "price": 99.0, "isApproved": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/course/admin/create", token, fiber.Map{
		"title": "Draft Course", "provider": "Coursera", "category": "data", "price": 50.0,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, parsed := doJSON(t, app, http.MethodGet, "/course/list", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := parsed.Data["courses"].([]interface{})
	require.Len(t, courses, 1)
	first := courses[0].(map[string]interface{})
	assert.Equal(t, "Approved Course", first["title"])

	// Admin list sees both
	resp, parsed = doJSON(t, app, http.MethodGet, "/course/admin/list", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, parsed.Data["courses"].([]interface{}), 2)
}

func TestCourseCreateRequiresAdmin(t *testing.T) {
	app, db := setupTest(t)

	student := models.User{Name: "Student", Email: "student@test.io", Role: "STUDENT", Password: "irrelevant"}
	require.NoError(t, db.Create(&student).Error)
	token, err := middleware.GenerateJWT(student.ID, student.Name, student.Role, student.Email)
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodPost, "/course/admin/create", token, fiber.Map{
		"title": "Nope", "provider": "X", "category": "y",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeletedCourseDisappears(t *testing.T) {
	app, db := setupTest(t)
	token := adminToken(t, db)

	resp, parsed := doJSON(t, app, http.MethodPost, "/course/admin/create", token, fiber.Map{
		"title": "Ephemeral", "provider": "Udemy", "category": "misc", "isApproved": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	courseId := parsed.Data["ID"].(float64)

	resp, _ = doJSON(t, app, http.MethodDelete, "/course/admin/"+strconv.Itoa(int(courseId)), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/course/"+strconv.Itoa(int(courseId)), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseCreateValidatesPayload(t *testing.T) {
	app, db := setupTest(t)
	token := adminToken(t, db)

	resp, parsed := doJSON(t, app, http.MethodPost, "/course/admin/create", token, fiber.Map{
		"title": "ab", "provider": "", "category": "data", "price": -5,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	assert.Contains(t, parsed.Data, "title")
	assert.Contains(t, parsed.Data, "provider")
	assert.Contains(t, parsed.Data, "price")
}

func TestCourseUpdateChangesCatalogEntry(t *testing.T) {
	app, db := setupTest(t)
	token := adminToken(t, db)

	resp, parsed := doJSON(t, app, http.MethodPost, "/course/admin/create", token, fiber.Map{
		"title": "Old Title", "provider": "edX", "category": "cloud", "price": 120.0,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	courseId := int(parsed.Data["ID"].(float64))

	resp, _ = doJSON(t, app, http.MethodPut, "/course/admin/"+strconv.Itoa(courseId), token, fiber.Map{
		"title": "New Title", "provider": "edX", "category": "cloud", "price": 99.0, "isApproved": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var course models.Course
	require.NoError(t, db.First(&course, courseId).Error)
	assert.Equal(t, "New Title", course.Title)
	assert.Equal(t, 99.0, course.Price)
	assert.True(t, course.IsApproved)
}
