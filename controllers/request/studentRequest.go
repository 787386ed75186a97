package requestController

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	"skillfund/storage"
	requestValidator "skillfund/validators/request"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Docs is the document store behind the request handlers. main wires the
// configured local store; tests swap in a temp-dir store.
var Docs storage.Store = storage.NewLocalStore("public/uploads/documents")

// SubmitRequest creates a pending funding request with its five supporting
// documents. Validation and the duplicate guard run before any file is
// stored; a failure during document handling removes already-stored files.
func SubmitRequest(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	payload, ok := c.Locals("validatedSubmit").(*requestValidator.SubmitPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	request := models.FundingRequest{
		StudentID:          userId,
		RequestType:        payload.RequestType,
		Status:             models.RequestStatusPending,
		Reason:             payload.Reason,
		CareerGoals:        payload.CareerGoals,
		PreviousExperience: payload.PreviousExperience,
		ExpectedOutcome:    payload.ExpectedOutcome,
		Urgency:            payload.Urgency,
	}

	switch payload.RequestType {
	case models.RequestTypeAvailableCourse:
		var course models.Course
		if err := db.Where("id = ? AND is_approved = ? AND is_deleted = ?", payload.CourseID, true, false).
			First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		request.CourseID = course.ID
		request.TitleKey = fmt.Sprintf("course:%d", course.ID)

	case models.RequestTypeNewCourse:
		request.TitleKey = "title:" + strings.ToLower(payload.NewCourse.Title)
		details, err := json.Marshal(payload.NewCourse)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process request details!", nil)
		}
		request.Details = details

	case models.RequestTypeCertification:
		request.TitleKey = "cert:" + strings.ToLower(payload.Certification.CertificationType)
		details, err := json.Marshal(payload.Certification)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process request details!", nil)
		}
		request.Details = details
	}

	// Duplicate-submission guard: one pending/approved request per
	// (student, course-or-title)
	var duplicates int64
	db.Model(&models.FundingRequest{}).
		Where("student_id = ? AND title_key = ? AND status IN ? AND is_deleted = false",
			userId, request.TitleKey,
			[]models.RequestStatus{models.RequestStatusPending, models.RequestStatusApproved}).
		Count(&duplicates)
	if duplicates > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A request for this course is already pending or approved!", nil)
	}

	// Store the five documents, cleaning up on any failure
	var stored []models.RequestDocument
	var storedPaths []string
	for _, docType := range models.DocumentTypes {
		file, err := c.FormFile(docType)
		if err != nil {
			Docs.DeleteMany(storedPaths)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document missing: "+docType, nil)
		}

		saved, err := Docs.Save(file, userId, docType)
		if err != nil {
			Docs.DeleteMany(storedPaths)
			if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrDisallowedType) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, docType+": "+err.Error(), nil)
			}
			log.Printf("Error storing document %s for user %d: %v", docType, userId, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload documents!", nil)
		}

		storedPaths = append(storedPaths, saved.FilePath)
		stored = append(stored, models.RequestDocument{
			StudentID:    userId,
			DocumentType: docType,
			OriginalName: saved.OriginalName,
			FileName:     saved.FileName,
			FilePath:     saved.FilePath,
			FileSize:     saved.FileSize,
			FileType:     saved.FileType,
			UploadedAt:   saved.UploadedAt,
		})
	}

	// Persist request and document metadata together
	tx := db.Begin()

	if err := tx.Create(&request).Error; err != nil {
		tx.Rollback()
		Docs.DeleteMany(storedPaths)
		log.Printf("Error creating funding request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create request!", nil)
	}

	for i := range stored {
		stored[i].RequestID = request.ID
	}
	if err := tx.Create(&stored).Error; err != nil {
		tx.Rollback()
		Docs.DeleteMany(storedPaths)
		log.Printf("Error creating document records: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create request!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Funding request submitted successfully!", fiber.Map{
		"requestId":   request.ID,
		"requestType": request.RequestType,
		"status":      request.Status,
		"documents":   len(stored),
	})
}

// MyRequests lists the caller's own funding requests
func MyRequests(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.FundingRequest{}).Where("student_id = ? AND is_deleted = ?", userId, false)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var requests []models.FundingRequest
	if err := query.Preload("Documents").Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetRequest returns one request with documents for its owner or an admin
func GetRequest(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	requestId, err := c.ParamsInt("id")
	if err != nil || requestId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	var request models.FundingRequest
	if err := database.Database.Db.Preload("Documents").
		Where("id = ? AND is_deleted = ?", requestId, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.StudentID != userId && role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request fetched successfully!", request)
}

// DeleteRequest removes a pending request. Metadata rows go first in one
// transaction, then files are deleted best-effort and the per-file outcome
// is reported. Decided requests are immutable.
func DeleteRequest(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestId, err := c.ParamsInt("id")
	if err != nil || requestId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	db := database.Database.Db

	var request models.FundingRequest
	if err := db.Preload("Documents").
		Where("id = ? AND student_id = ? AND is_deleted = ?", requestId, userId, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.Status != models.RequestStatusPending {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			fmt.Sprintf("Cannot delete application with status: %s", request.Status), nil)
	}

	var paths []string
	for _, doc := range request.Documents {
		paths = append(paths, doc.FilePath)
	}

	tx := db.Begin()
	if err := tx.Where("request_id = ?", request.ID).Delete(&models.RequestDocument{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete request!", nil)
	}
	if err := tx.Delete(&request).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete request!", nil)
	}
	tx.Commit()

	report := Docs.DeleteMany(paths)
	if report.FilesFailed() > 0 {
		log.Printf("Request %d deleted with %d file deletion failures: %v", request.ID, report.FilesFailed(), report.Failed)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request deleted successfully!", fiber.Map{
		"filesDeleted": report.FilesDeleted(),
		"filesFailed":  report.FilesFailed(),
	})
}
