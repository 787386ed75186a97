package courseValidator

import (
	"skillfund/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Course validates admin create/update course payloads
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string  `json:"title" validate:"required,min=3"`
			Provider          string  `json:"provider" validate:"required"`
			Category          string  `json:"category" validate:"required"`
			Price             float64 `json:"price" validate:"gte=0"`
			Duration          string  `json:"duration"`
			CertificationType string  `json:"certificationType"`
			URL               string  `json:"url" validate:"omitempty,url"`
			IsApproved        bool    `json:"isApproved"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "Provider":
					errors["provider"] = "Provider is required!"
				case "Category":
					errors["category"] = "Category is required!"
				case "Price":
					errors["price"] = "Price cannot be negative!"
				case "URL":
					errors["url"] = "Invalid URL!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
