package util

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required", "required_if":
			messages = append(messages, fieldError.Field()+" is required")
		case "url":
			messages = append(messages, fieldError.Field()+" must be a valid URL")
		case "oneof":
			messages = append(messages, fieldError.Field()+" must be one of: "+fieldError.Param())
		case "min":
			messages = append(messages, fieldError.Field()+" must be at least "+fieldError.Param()+" characters")
		case "max":
			messages = append(messages, fieldError.Field()+" must be at most "+fieldError.Param()+" characters")
		case "gt":
			messages = append(messages, fieldError.Field()+" must be greater than "+fieldError.Param())
		case "gte":
			messages = append(messages, fieldError.Field()+" must be at least "+fieldError.Param())
		case "lte":
			messages = append(messages, fieldError.Field()+" must be at most "+fieldError.Param())
		default:
			messages = append(messages, fieldError.Field()+" is invalid")
		}
	}
	return messages
}
