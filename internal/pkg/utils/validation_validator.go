package utils

import (
	"claimsreview-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("document_type", validateDocumentType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateDocumentType accepts only the closed set of document type tags.
// UNKNOWN is a valid tag; it just never participates in type-specific checks.
func validateDocumentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, dt := range models.AllDocumentTypes {
		if string(dt) == value {
			return true
		}
	}
	return false
}
