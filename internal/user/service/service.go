package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"frontier/internal/platform/metrics"
	"frontier/internal/user/models"
	"frontier/pkg/attrs"
	dErrors "frontier/pkg/domain-errors"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/platform/sentinel"
	"frontier/pkg/requestcontext"
)

type Store interface {
	CreateIfAbsent(ctx context.Context, u *models.User) (bool, error)
	FindByID(ctx context.Context, uid string) (*models.User, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service provisions users lazily and resolves their profiles.
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
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

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provision creates the default record for uid if none exists. Existing
// records are never touched; losing a concurrent race reports created=false
// without error.
func (s *Service) Provision(ctx context.Context, uid, email string) (bool, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return false, dErrors.New(dErrors.CodeValidation, "uid is required")
	}

	created, err := s.store.CreateIfAbsent(ctx, models.NewDefaultUser(uid, email))
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to provision user")
	}
	if !created {
		return false, nil
	}

	s.logAudit(ctx, string(audit.EventUserProvisioned),
		"user_id", uid,
	)
	s.metrics.IncrementUsersCreated()
	return true, nil
}

// Profile returns the stored user, or the defaults a first login would
// write when the record does not exist yet.
func (s *Service) Profile(ctx context.Context, uid, email string) (*models.User, error) {
	u, err := s.store.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.NewDefaultUser(uid, email), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

// DisplayName resolves the name captured on hazard reports.
func (s *Service) DisplayName(ctx context.Context, uid, email string) (string, error) {
	u, err := s.Profile(ctx, uid, email)
	if err != nil {
		return "", err
	}
	return u.DisplayName, nil
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
		UserID:  userID,
		Subject: userID,
		Action:  event,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}
