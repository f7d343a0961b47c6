package service

import (
	"context"
	"errors"
	"log/slog"

	"frontier/internal/hazard/metrics"
	"frontier/internal/hazard/models"
	"frontier/pkg/attrs"
	dErrors "frontier/pkg/domain-errors"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/platform/sentinel"
	"frontier/pkg/platform/tx"
	"frontier/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, h *models.HazardReport) (string, error)
	FindByID(ctx context.Context, id string) (*models.HazardReport, error)
	List(ctx context.Context) ([]*models.HazardReport, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}

// ReporterDirectory resolves the display name captured on new reports.
type ReporterDirectory interface {
	DisplayName(ctx context.Context, uid, email string) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns the hazard lifecycle. It re-reads the store on every call and
// keeps no copies between requests.
type Service struct {
	store          Store
	reporters      ReporterDirectory
	locks          *tx.Sharded
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

// WithLocks shares a lock set with other writers of the hazard collection.
func WithLocks(locks *tx.Sharded) Option {
	return func(s *Service) {
		s.locks = locks
	}
}

func New(store Store, reporters ReporterDirectory, opts ...Option) *Service {
	s := &Service{store: store, reporters: reporters}
	for _, opt := range opts {
		opt(s)
	}
	if s.locks == nil {
		s.locks = tx.NewSharded(0)
	}
	return s
}

// Create validates in and persists a new Open report for the caller.
func (s *Service) Create(ctx context.Context, in models.CreateInput) (*models.HazardReport, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	uid := requestcontext.UserID(ctx)
	reportedBy, err := s.reportedBy(ctx, uid, requestcontext.Email(ctx))
	if err != nil {
		return nil, err
	}

	h, err := models.NewHazardReport(in, reportedBy, requestcontext.Now(ctx), requestcontext.Location(ctx))
	if err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, h)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save hazard")
	}
	h.ID = id

	s.logAudit(ctx, string(audit.EventHazardReported),
		"user_id", uid,
		"hazard_id", id,
		"severity", string(h.Severity),
	)
	s.metrics.IncrementReported(string(h.Severity))
	return h, nil
}

// Transition moves a report along one lifecycle edge and overwrites its status.
func (s *Service) Transition(ctx context.Context, id, target string) (*models.HazardReport, error) {
	next, err := models.ParseStatus(target)
	if err != nil {
		s.metrics.IncrementRejected("unknown_status")
		return nil, err
	}

	var (
		h    *models.HazardReport
		from models.Status
	)
	err = s.locks.RunLocked(ctx, id, func(ctx context.Context) error {
		var err error
		h, err = s.store.FindByID(ctx, id)
		if err != nil {
			return translate(err, "failed to load hazard")
		}
		if err := h.CanTransition(next); err != nil {
			s.metrics.IncrementRejected("illegal_edge")
			return err
		}
		if err := s.store.UpdateStatus(ctx, id, next); err != nil {
			return translate(err, "failed to update hazard")
		}
		from = h.Status
		h.ApplyTransition(next)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, string(audit.EventHazardTransitioned),
		"user_id", requestcontext.UserID(ctx),
		"hazard_id", id,
		"from", string(from),
		"to", string(next),
	)
	s.metrics.IncrementTransition(string(from), string(next))
	return h, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.HazardReport, error) {
	h, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to load hazard")
	}
	return h, nil
}

func (s *Service) List(ctx context.Context) ([]*models.HazardReport, error) {
	hazards, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list hazards")
	}
	return hazards, nil
}

func (s *Service) reportedBy(ctx context.Context, uid, email string) (string, error) {
	if s.reporters == nil {
		return email, nil
	}
	name, err := s.reporters.DisplayName(ctx, uid, email)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve reporter")
	}
	if name == "" {
		return email, nil
	}
	return name, nil
}

func translate(err error, msg string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "hazard not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
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
		Subject:   attrs.ExtractString(attributes, "hazard_id"),
		Action:    event,
		Reason:    attrs.ExtractString(attributes, "to"),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    requestcontext.Device(ctx),
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}
