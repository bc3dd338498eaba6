package utils

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the custom rules this service
// registers.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)

	return &Validator{validate: validate}
}

// ValidateStruct validates struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("activity_kind", validateActivityKind)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("recommendation_priority", validateRecommendationPriority)

	// Report json field names in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateActivityKind(fl validator.FieldLevel) bool {
	validKinds := []models.ActivityKind{
		models.ActivityLessonView,
		models.ActivityTestAttempt,
		models.ActivityResourceAccess,
		models.ActivityDiscussion,
	}

	value := fl.Field().String()
	for _, validKind := range validKinds {
		if string(validKind) == value {
			return true
		}
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleTeacher,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func validateRecommendationPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "high", "medium", "low":
		return true
	}
	return false
}
