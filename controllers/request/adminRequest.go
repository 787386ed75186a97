package requestController

import (
	"encoding/json"
	"skillfund/database"
	"skillfund/middleware"
	"skillfund/models"
	"skillfund/storage"

	"github.com/gofiber/fiber/v2"
)

// normalizedView is the type-normalized projection of a funding request:
// one title/provider/cost triple regardless of subtype.
type normalizedView struct {
	ID            uint                 `json:"id"`
	StudentID     uint                 `json:"studentId"`
	StudentName   string               `json:"studentName"`
	StudentEmail  string               `json:"studentEmail"`
	RequestType   models.RequestType   `json:"requestType"`
	Status        models.RequestStatus `json:"status"`
	Title         string               `json:"title"`
	Provider      string               `json:"provider"`
	EstimatedCost float64              `json:"estimatedCost"`
	Urgency       string               `json:"urgency"`
	Reason        string               `json:"reason"`
	PurchasePrice float64              `json:"purchasePrice"`
	ReviewNote    string               `json:"reviewNote"`
	CreatedAt     string               `json:"createdAt"`
	DocumentCount int                  `json:"documentCount"`
	DocumentNames []string             `json:"documentNames"`
}

// normalize resolves the subtype-specific title/provider/cost columns
func normalize(request *models.FundingRequest) normalizedView {
	view := normalizedView{
		ID:            request.ID,
		StudentID:     request.StudentID,
		RequestType:   request.RequestType,
		Status:        request.Status,
		Urgency:       request.Urgency,
		Reason:        request.Reason,
		PurchasePrice: request.PurchasePrice,
		ReviewNote:    request.ReviewNote,
		CreatedAt:     request.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		DocumentCount: len(request.Documents),
	}

	for _, doc := range request.Documents {
		view.DocumentNames = append(view.DocumentNames, doc.DocumentType)
	}

	switch request.RequestType {
	case models.RequestTypeAvailableCourse:
		var course models.Course
		if err := database.Database.Db.Where("id = ?", request.CourseID).First(&course).Error; err == nil {
			view.Title = course.Title
			view.Provider = course.Provider
			view.EstimatedCost = course.Price
		}

	case models.RequestTypeNewCourse:
		var details models.NewCourseDetails
		if err := json.Unmarshal(request.Details, &details); err == nil {
			view.Title = details.Title
			view.Provider = details.Provider
			view.EstimatedCost = details.EstimatedFee
		}

	case models.RequestTypeCertification:
		var details models.CertificationDetails
		if err := json.Unmarshal(request.Details, &details); err == nil {
			view.Title = details.CertificationType
			view.Provider = details.Provider
			view.EstimatedCost = details.EstimatedFee
		}
	}

	return view
}

// AdminListRequests returns the unified, type-normalized request list
func AdminListRequests(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")
	requestType := c.Query("type")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.FundingRequest{}).Where("is_deleted = ?", false)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if requestType != "" {
		query = query.Where("request_type = ?", requestType)
	}

	var total int64
	query.Count(&total)

	var requests []models.FundingRequest
	if err := query.Preload("Documents").Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	views := make([]normalizedView, len(requests))
	for i := range requests {
		views[i] = normalize(&requests[i])

		var student models.User
		if err := db.Select("name", "email").Where("id = ?", requests[i].StudentID).First(&student).Error; err == nil {
			views[i].StudentName = student.Name
			views[i].StudentEmail = student.Email
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": views,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetRequest returns the normalized detail view of one request,
// documents included with their public URLs.
func AdminGetRequest(c *fiber.Ctx) error {
	requestId, err := c.ParamsInt("id")
	if err != nil || requestId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	db := database.Database.Db

	var request models.FundingRequest
	if err := db.Preload("Documents").
		Where("id = ? AND is_deleted = ?", requestId, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	view := normalize(&request)

	var student models.User
	if err := db.Select("name", "email").Where("id = ?", request.StudentID).First(&student).Error; err == nil {
		view.StudentName = student.Name
		view.StudentEmail = student.Email
	}

	documents := make([]fiber.Map, len(request.Documents))
	for i, doc := range request.Documents {
		documents[i] = fiber.Map{
			"documentType": doc.DocumentType,
			"originalName": doc.OriginalName,
			"fileName":     doc.FileName,
			"fileSize":     doc.FileSize,
			"fileType":     doc.FileType,
			"url":          storage.PublicURL(doc.FilePath),
			"uploadedAt":   doc.UploadedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request fetched successfully!", fiber.Map{
		"request":   view,
		"documents": documents,
	})
}
