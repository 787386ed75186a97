package requestValidator

import (
	"skillfund/middleware"
	"skillfund/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SubmitPayload carries the parsed multipart fields of a funding request
// submission. File handling stays in the controller; this middleware only
// checks presence and shape.
type SubmitPayload struct {
	RequestType        models.RequestType
	Reason             string
	CareerGoals        string
	PreviousExperience string
	ExpectedOutcome    string
	Urgency            string

	// available-course
	CourseID uint

	// new-course
	NewCourse models.NewCourseDetails

	// certification
	Certification models.CertificationDetails
}

// Submit validates the multipart form of a funding request submission:
// the discriminant, the per-type required fields and the presence of all
// five required document files.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		payload := &SubmitPayload{
			RequestType:        models.RequestType(c.FormValue("requestType")),
			Reason:             strings.TrimSpace(c.FormValue("reason")),
			CareerGoals:        strings.TrimSpace(c.FormValue("careerGoals")),
			PreviousExperience: strings.TrimSpace(c.FormValue("previousExperience")),
			ExpectedOutcome:    strings.TrimSpace(c.FormValue("expectedOutcome")),
			Urgency:            c.FormValue("urgency", models.UrgencyMedium),
		}

		switch payload.Urgency {
		case models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh:
		default:
			errors["urgency"] = "Urgency must be low, medium or high!"
		}

		if payload.Reason == "" {
			errors["reason"] = "Reason is required!"
		}

		switch payload.RequestType {
		case models.RequestTypeAvailableCourse:
			courseId, err := strconv.Atoi(c.FormValue("courseId"))
			if err != nil || courseId < 1 {
				errors["courseId"] = "A valid courseId is required!"
			} else {
				payload.CourseID = uint(courseId)
			}

		case models.RequestTypeNewCourse:
			fee, _ := strconv.ParseFloat(c.FormValue("estimatedFee"), 64)
			payload.NewCourse = models.NewCourseDetails{
				Title:        strings.TrimSpace(c.FormValue("title")),
				Provider:     strings.TrimSpace(c.FormValue("provider")),
				Category:     strings.TrimSpace(c.FormValue("category")),
				EstimatedFee: fee,
				Duration:     strings.TrimSpace(c.FormValue("duration")),
				URL:          strings.TrimSpace(c.FormValue("url")),
			}
			if payload.NewCourse.Title == "" {
				errors["title"] = "Course title is required!"
			}
			if payload.NewCourse.Provider == "" {
				errors["provider"] = "Provider is required!"
			}
			if payload.NewCourse.EstimatedFee <= 0 {
				errors["estimatedFee"] = "Estimated fee must be greater than 0!"
			}

		case models.RequestTypeCertification:
			fee, _ := strconv.ParseFloat(c.FormValue("estimatedFee"), 64)
			payload.Certification = models.CertificationDetails{
				CertificationType: strings.TrimSpace(c.FormValue("certificationType")),
				Provider:          strings.TrimSpace(c.FormValue("provider")),
				EstimatedFee:      fee,
				Description:       strings.TrimSpace(c.FormValue("description")),
			}
			if payload.Certification.CertificationType == "" {
				errors["certificationType"] = "Certification type is required!"
			}
			if payload.Certification.Provider == "" {
				errors["provider"] = "Provider is required!"
			}
			if payload.Certification.EstimatedFee <= 0 {
				errors["estimatedFee"] = "Estimated fee must be greater than 0!"
			}

		default:
			errors["requestType"] = "Request type must be available-course, new-course or certification!"
		}

		// All five supporting documents are required at submission
		for _, docType := range models.DocumentTypes {
			if _, err := c.FormFile(docType); err != nil {
				errors[docType] = "Document is required!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmit", payload)
		return c.Next()
	}
}

// Review validates the admin review payload
func Review() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID     uint    `json:"requestId"`
			Action        string  `json:"action"`
			Note          string  `json:"note"`
			PurchasePrice float64 `json:"purchasePrice"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestID == 0 {
			errors["requestId"] = "Request ID is required!"
		}
		if reqData.Action != "approve" && reqData.Action != "reject" {
			errors["action"] = "Action must be approve or reject!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// Disburse validates the admin disbursement payload
func Disburse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID uint `json:"requestId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.RequestID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"requestId": "Request ID is required!"})
		}

		c.Locals("validatedDisburse", reqData)
		return c.Next()
	}
}
