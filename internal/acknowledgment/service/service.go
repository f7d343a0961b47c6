package service

import (
	"context"
	"log/slog"

	"frontier/internal/acknowledgment/models"
	"frontier/pkg/attrs"
	dErrors "frontier/pkg/domain-errors"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/requestcontext"
)

type Store interface {
	Put(ctx context.Context, a *models.PolicyAcknowledgment) error
	Find(ctx context.Context, policyID, userID string) (*models.PolicyAcknowledgment, error)
	ListByPolicy(ctx context.Context, policyID string) ([]*models.PolicyAcknowledgment, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service records policy acknowledgments. Writes are keyed by (policy, user)
// so repeats are idempotent and the last write wins.
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Acknowledge records that user has read policyID and returns the stored
// record with the store-assigned timestamp.
func (s *Service) Acknowledge(ctx context.Context, policyID string, user models.Acknowledger) (*models.PolicyAcknowledgment, error) {
	if err := models.ValidatePolicyID(policyID); err != nil {
		return nil, err
	}
	if user.UserID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	ack := &models.PolicyAcknowledgment{PolicyID: policyID, UserID: user.UserID, Email: user.Email}
	if err := s.store.Put(ctx, ack); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record acknowledgment")
	}
	stored, err := s.store.Find(ctx, policyID, user.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read acknowledgment")
	}

	s.logAudit(ctx, string(audit.EventPolicyAcknowledged),
		"user_id", user.UserID,
		"policy_id", policyID,
	)
	return stored, nil
}

func (s *Service) ListAcknowledgments(ctx context.Context, policyID string) ([]*models.PolicyAcknowledgment, error) {
	if err := models.ValidatePolicyID(policyID); err != nil {
		return nil, err
	}
	acks, err := s.store.ListByPolicy(ctx, policyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list acknowledgments")
	}
	return acks, nil
}

// HasAcknowledged is derived from ListAcknowledgments and never stored.
func (s *Service) HasAcknowledged(ctx context.Context, policyID, userID string) (bool, error) {
	acks, err := s.ListAcknowledgments(ctx, policyID)
	if err != nil {
		return false, err
	}
	return models.Acknowledged(acks, userID), nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	userID := attrs.ExtractString(attributes, "user_id")
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   attrs.ExtractString(attributes, "policy_id"),
		Action:    event,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    requestcontext.Device(ctx),
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}
