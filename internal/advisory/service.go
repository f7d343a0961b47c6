package advisory

import (
	"context"
	"log/slog"

	hazardmodels "frontier/internal/hazard/models"
	dErrors "frontier/pkg/domain-errors"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/requestcontext"
)

type HazardGetter interface {
	Get(ctx context.Context, id string) (*hazardmodels.HazardReport, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, description, location, severity string) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Advice is one analysis of a stored hazard.
type Advice struct {
	HazardID string `json:"hazardId"`
	Analysis string `json:"analysis"`
}

// Service looks a hazard up and asks the analyzer about it. It never writes
// to the hazard record.
type Service struct {
	hazards        HazardGetter
	analyzer       Analyzer
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type ServiceOption func(*Service)

func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) ServiceOption {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func NewService(hazards HazardGetter, analyzer Analyzer, opts ...ServiceOption) *Service {
	s := &Service{hazards: hazards, analyzer: analyzer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) AnalyzeHazard(ctx context.Context, id string) (*Advice, error) {
	h, err := s.hazards.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, h.Description, h.Location, string(h.Severity))
	if err != nil {
		if _, ok := dErrors.From(err); !ok {
			err = dErrors.Wrap(err, dErrors.CodeAdvisoryUnavailable, "hazard advisory failed")
		}
		return nil, err
	}

	uid := requestcontext.UserID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(audit.EventAdvisoryRequested),
			"user_id", uid,
			"hazard_id", id,
			"request_id", requestcontext.RequestID(ctx),
			"event", string(audit.EventAdvisoryRequested),
			"log_type", "audit",
		)
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, audit.Event{
			UserID:    uid,
			Subject:   id,
			Action:    string(audit.EventAdvisoryRequested),
			RequestID: requestcontext.RequestID(ctx),
		})
	}
	return &Advice{HazardID: id, Analysis: analysis}, nil
}
