package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	ackmodels "frontier/internal/acknowledgment/models"
	"frontier/internal/compliance/metrics"
	"frontier/internal/compliance/models"
	hazardmodels "frontier/internal/hazard/models"
	usermodels "frontier/internal/user/models"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/requestcontext"
)

var tracer = otel.Tracer("frontier.compliance")

const (
	reportDashboard = "dashboard"
	reportAudit     = "audit"
)

type HazardReader interface {
	List(ctx context.Context) ([]*hazardmodels.HazardReport, error)
}

type AcknowledgmentReader interface {
	ListAll(ctx context.Context) ([]*ackmodels.PolicyAcknowledgment, error)
}

type UserReader interface {
	List(ctx context.Context) ([]*usermodels.User, error)
}

type InspectionReader interface {
	List(ctx context.Context) ([]*models.Inspection, error)
}

// Service aggregates the stored collections on demand. It holds no state
// between calls; each report re-reads what it needs.
type Service struct {
	hazards         HazardReader
	acknowledgments AcknowledgmentReader
	users           UserReader
	inspections     InspectionReader
	inputs          models.ExternalInputs
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithExternalInputs supplies the figures other subsystems own.
func WithExternalInputs(in models.ExternalInputs) Option {
	return func(s *Service) {
		s.inputs = in
	}
}

func New(hazards HazardReader, acknowledgments AcknowledgmentReader, users UserReader, inspections InspectionReader, opts ...Option) *Service {
	s := &Service{
		hazards:         hazards,
		acknowledgments: acknowledgments,
		users:           users,
		inspections:     inspections,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DashboardMetrics reads hazards and inspections. Any failed read fails the
// whole call with an aggregation error.
func (s *Service) DashboardMetrics(ctx context.Context) (*models.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "compliance.DashboardMetrics")
	defer span.End()
	start := time.Now()

	var (
		hazards     []*hazardmodels.HazardReport
		inspections []*models.Inspection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		hazards, err = read(gctx, s, reportDashboard, "hazards", s.hazards.List)
		return err
	})
	g.Go(func() (err error) {
		inspections, err = read(gctx, s, reportDashboard, "inspections", s.inspections.List)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation failed")
		return nil, err
	}

	d := models.ComputeDashboard(hazards, inspections, s.inputs)
	s.metrics.ObserveDuration(reportDashboard, time.Since(start))
	span.SetStatus(codes.Ok, "")
	return d, nil
}

// AuditReport reads hazards, acknowledgments and users. The three reads are
// not one snapshot; a concurrent write may show up in some counts only.
func (s *Service) AuditReport(ctx context.Context) (*models.AuditReport, error) {
	ctx, span := tracer.Start(ctx, "compliance.AuditReport")
	defer span.End()
	start := time.Now()

	var (
		hazards []*hazardmodels.HazardReport
		acks    []*ackmodels.PolicyAcknowledgment
		users   []*usermodels.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		hazards, err = read(gctx, s, reportAudit, "hazards", s.hazards.List)
		return err
	})
	g.Go(func() (err error) {
		acks, err = read(gctx, s, reportAudit, "acknowledgments", s.acknowledgments.ListAll)
		return err
	})
	g.Go(func() (err error) {
		users, err = read(gctx, s, reportAudit, "users", s.users.List)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation failed")
		return nil, err
	}

	r := models.ComputeAuditReport(hazards, len(acks), len(users))
	s.metrics.ObserveDuration(reportAudit, time.Since(start))
	span.SetStatus(codes.Ok, "")

	if s.logger != nil {
		s.logger.InfoContext(ctx, "audit report generated",
			"request_id", requestcontext.RequestID(ctx),
			"total_hazards", r.HazardAssessment.TotalHazards,
			"acknowledgment_rate", r.LeadershipCommitment.AcknowledgmentRate,
		)
	}
	return r, nil
}

// Inspections lists the inspection read model.
func (s *Service) Inspections(ctx context.Context) ([]*models.Inspection, error) {
	inspections, err := s.inspections.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list inspections")
	}
	return inspections, nil
}

// read runs one collection read in its own span and maps failure to an
// aggregation error naming the collection.
func read[T any](ctx context.Context, s *Service, report, collection string, list func(context.Context) ([]T, error)) ([]T, error) {
	ctx, span := tracer.Start(ctx, "compliance.read")
	defer span.End()
	span.SetAttributes(
		attribute.String("compliance.report", report),
		attribute.String("compliance.collection", collection),
	)

	items, err := list(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.IncrementFailure(report, collection)
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "compliance read failed",
				"request_id", requestcontext.RequestID(ctx),
				"report", report,
				"collection", collection,
				"error", err,
			)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeAggregation, "failed to read "+collection)
	}
	span.SetAttributes(attribute.Int("compliance.records", len(items)))
	return items, nil
}
