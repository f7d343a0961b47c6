package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "frontier/pkg/domain-errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("hazard_severity", func(fl validator.FieldLevel) bool {
		return Severity(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("hazard_type", func(fl validator.FieldLevel) bool {
		return Type(fl.Field().String()).IsValid()
	})
}

// CreateInput is what a reporter supplies.
type CreateInput struct {
	Location    string `json:"location" validate:"required"`
	Type        string `json:"type" validate:"required,hazard_type"`
	Severity    string `json:"severity" validate:"required,hazard_severity"`
	Description string `json:"description" validate:"required"`
}

// Validate reports the first failing field as a validation error. Free-text
// fields are checked trimmed but stored as supplied.
func (in CreateInput) Validate() error {
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid hazard report")
	}
	return dErrors.New(dErrors.CodeValidation, describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "hazard_type":
		return "type must be one of " + joinValues(Types)
	case "hazard_severity":
		return "severity must be one of " + joinValues(Severities)
	}
	return field + " is invalid"
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
