package handler

import (
	"strings"

	"frontier/internal/hazard/models"
	dErrors "frontier/pkg/domain-errors"
)

// CreateRequest is the body of POST /hazards.
type CreateRequest struct {
	Location    string `json:"location"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Validate implements httputil.Validatable. Field rules live in the model.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return r.Input().Validate()
}

func (r *CreateRequest) Input() models.CreateInput {
	return models.CreateInput{
		Location:    r.Location,
		Type:        r.Type,
		Severity:    r.Severity,
		Description: r.Description,
	}
}

// TransitionRequest is the body of POST /hazards/{id}/transition.
type TransitionRequest struct {
	Status string `json:"status"`
}

func (r *TransitionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}
