package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events that make up the safety record:
	// hazard lifecycle changes, policy acknowledgments, user provisioning.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. It is an
// append-only trail; nothing in the engine reads it back to make decisions.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	UserID    string        `json:"userId"`
	Subject   string        `json:"subject"`
	Action    string        `json:"action"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	ClientIP  string        `json:"clientIp,omitempty"`
	Device    string        `json:"device,omitempty"`
}

type AuditEvent string

const (
	EventHazardReported     AuditEvent = "hazard_reported"
	EventHazardTransitioned AuditEvent = "hazard_transitioned"
	EventPolicyAcknowledged AuditEvent = "policy_acknowledged"
	EventUserProvisioned    AuditEvent = "user_provisioned"
	EventAdvisoryRequested  AuditEvent = "advisory_requested"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventHazardReported:     CategoryCompliance,
	EventHazardTransitioned: CategoryCompliance,
	EventPolicyAcknowledged: CategoryCompliance,
	EventUserProvisioned:    CategoryCompliance,
	EventAdvisoryRequested:  CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}
