package models

import (
	"slices"
	"strings"
	"time"

	dErrors "frontier/pkg/domain-errors"
)

// DateLayout is the calendar-date form stored on a report.
const DateLayout = "2006-01-02"

// Severity is fixed at creation.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities lists the accepted values in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) IsValid() bool {
	return slices.Contains(Severities, s)
}

// Type categorizes what was observed.
type Type string

const (
	TypeUnsafeCondition Type = "Unsafe Condition"
	TypeUnsafeAct       Type = "Unsafe Act"
	TypeEquipmentIssue  Type = "Equipment Issue"
	TypeNearMiss        Type = "Near Miss"
	TypeEnvironmental   Type = "Environmental"
)

// Types lists the accepted hazard types.
var Types = []Type{TypeUnsafeCondition, TypeUnsafeAct, TypeEquipmentIssue, TypeNearMiss, TypeEnvironmental}

func (t Type) IsValid() bool {
	return slices.Contains(Types, t)
}

// Status is the lifecycle position of a report.
type Status string

const (
	StatusOpen          Status = "Open"
	StatusInvestigating Status = "Investigating"
	StatusClosed        Status = "Closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInvestigating, StatusClosed:
		return true
	}
	return false
}

// IsActive reports whether the hazard still needs attention.
func (s Status) IsActive() bool {
	return s == StatusOpen || s == StatusInvestigating
}

// CanTransitionTo checks the lifecycle edges:
//
//	Open -> Investigating -> Closed
//	Open -> Closed
//	Closed -> Open (reopen)
//
// Self-edges are not transitions.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOpen:
		return target == StatusInvestigating || target == StatusClosed
	case StatusInvestigating:
		return target == StatusClosed
	case StatusClosed:
		return target == StatusOpen
	}
	return false
}

// ParseStatus validates a requested target status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "status must be one of Open, Investigating, Closed")
	}
	return s, nil
}

// HazardReport is a logged hazard.
//
// Invariants:
//   - ID is assigned by the store and never changes
//   - Location and Description are non-empty
//   - Type and Severity are members of their enumerations
//   - Status moves only along CanTransitionTo edges
type HazardReport struct {
	ID          string   `json:"id"`
	Location    string   `json:"location"`
	Type        Type     `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	ReportedBy  string   `json:"reportedBy"`
	Date        string   `json:"date"`
}

// CanTransition checks whether the report may move to target.
func (h *HazardReport) CanTransition(target Status) error {
	if !h.Status.CanTransitionTo(target) {
		return dErrors.New(dErrors.CodeInvalidTransition,
			"cannot move hazard from "+string(h.Status)+" to "+string(target))
	}
	return nil
}

// ApplyTransition sets the new status. Call CanTransition first.
func (h *HazardReport) ApplyTransition(target Status) {
	h.Status = target
}

// NewHazardReport builds an Open report dated in the reporter's location.
func NewHazardReport(in CreateInput, reportedBy string, now time.Time, loc *time.Location) (*HazardReport, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &HazardReport{
		Location:    in.Location,
		Type:        Type(in.Type),
		Severity:    Severity(in.Severity),
		Description: in.Description,
		Status:      StatusOpen,
		ReportedBy:  reportedBy,
		Date:        now.In(loc).Format(DateLayout),
	}, nil
}
