package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError is one failed validation rule on one field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

var validate = validator.New()

func init() {
	// "required" on a uuid.UUID never fires (zero UUID is a valid value to
	// the library), so foreign-key fields use this tag instead.
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

// ValidateStruct runs the struct tags and returns every failure.
func ValidateStruct(data interface{}) []FieldError {
	var fieldErrors []FieldError
	if err := validate.Struct(data); err != nil {
		for _, verr := range err.(validator.ValidationErrors) {
			fieldErrors = append(fieldErrors, FieldError{
				Field: verr.StructNamespace(),
				Tag:   verr.Tag(),
				Param: verr.Param(),
			})
		}
	}
	return fieldErrors
}
