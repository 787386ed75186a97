package courseController

import (
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse adds a new catalog entry
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title             string  `json:"title" validate:"required,min=3"`
		Provider          string  `json:"provider" validate:"required"`
		Category          string  `json:"category" validate:"required"`
		Price             float64 `json:"price" validate:"gte=0"`
		Duration          string  `json:"duration"`
		CertificationType string  `json:"certificationType"`
		URL               string  `json:"url" validate:"omitempty,url"`
		IsApproved        bool    `json:"isApproved"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:             reqData.Title,
		Provider:          reqData.Provider,
		Category:          reqData.Category,
		Price:             reqData.Price,
		Duration:          reqData.Duration,
		CertificationType: reqData.CertificationType,
		URL:               reqData.URL,
		IsApproved:        reqData.IsApproved,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing catalog entry
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	db := database.Database.Db
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title             string  `json:"title" validate:"required,min=3"`
		Provider          string  `json:"provider" validate:"required"`
		Category          string  `json:"category" validate:"required"`
		Price             float64 `json:"price" validate:"gte=0"`
		Duration          string  `json:"duration"`
		CertificationType string  `json:"certificationType"`
		URL               string  `json:"url" validate:"omitempty,url"`
		IsApproved        bool    `json:"isApproved"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.Title = reqData.Title
	course.Provider = reqData.Provider
	course.Category = reqData.Category
	course.Price = reqData.Price
	course.Duration = reqData.Duration
	course.CertificationType = reqData.CertificationType
	course.URL = reqData.URL
	course.IsApproved = reqData.IsApproved

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft-deletes a catalog entry
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminListCourses returns all catalog entries including unapproved ones
func AdminListCourses(c *fiber.Ctx) error {
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
	query := db.Model(&models.Course{}).Where("is_deleted = ?", false)

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
