// Package advisory calls an external language model for hazard analysis.
// The response is opaque text; nothing in the engine parses it.
package advisory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"frontier/internal/platform/config"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/platform/circuit"
)

var tracer = otel.Tracer("frontier.advisory")

const systemPrompt = "You are a workplace health and safety advisor."

const promptTemplate = `Analyze this workplace hazard and give practical guidance.

Location: %s
Severity: %s
Description: %s

Respond with three sections:
1. Likely root cause
2. Immediate controls
3. Long-term corrective actions`

// ChatClient is the subset of the OpenAI client the gateway uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Gateway sends hazard details to the model. Calls over the rate limit fail
// immediately; nothing is retried.
type Gateway struct {
	client  ChatClient
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithClient replaces the OpenAI client.
func WithClient(client ChatClient) Option {
	return func(g *Gateway) {
		g.client = client
	}
}

// WithBreaker replaces the default breaker, which opens after five
// consecutive failures and probes again after 30s.
func WithBreaker(b *circuit.Breaker) Option {
	return func(g *Gateway) {
		g.breaker = b
	}
}

// New builds a gateway from cfg. With no API key and no WithClient option
// the gateway is disabled and every call reports the advisory unavailable.
func New(cfg config.Advisory, opts ...Option) *Gateway {
	g := &Gateway{
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
	if cfg.RequestsPerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		g.client = openai.NewClientWithConfig(oc)
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.breaker == nil {
		g.breaker = circuit.New("advisory")
	}
	if g.model == "" {
		g.model = openai.GPT4oMini
	}
	return g
}

// Enabled reports whether a client is configured.
func (g *Gateway) Enabled() bool {
	return g.client != nil
}

// Analyze returns the model's analysis of one hazard.
func (g *Gateway) Analyze(ctx context.Context, description, location, severity string) (string, error) {
	ctx, span := tracer.Start(ctx, "advisory.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("advisory.model", g.model),
		attribute.String("hazard.severity", severity),
	)

	if g.client == nil {
		span.SetStatus(codes.Error, "not configured")
		return "", dErrors.New(dErrors.CodeAdvisoryUnavailable, "hazard advisory is not configured")
	}
	if g.limiter != nil && !g.limiter.Allow() {
		span.SetStatus(codes.Error, "rate limited")
		return "", dErrors.New(dErrors.CodeAdvisoryUnavailable, "hazard advisory is busy, try again later")
	}
	if !g.breaker.Allow() {
		span.SetStatus(codes.Error, "circuit open")
		return "", dErrors.New(dErrors.CodeAdvisoryUnavailable, "hazard advisory is temporarily unavailable")
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(description, location, severity)},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		g.recordFailure(ctx, err)
		return "", dErrors.Wrap(err, dErrors.CodeAdvisoryUnavailable, "hazard advisory failed")
	}
	// The upstream answered, so an empty completion still counts as reachable.
	if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
		g.logger.InfoContext(ctx, "advisory circuit closed", "breaker", g.breaker.Name())
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", dErrors.New(dErrors.CodeAdvisoryUnavailable, "hazard advisory returned no analysis")
	}
	span.SetStatus(codes.Ok, "")
	return resp.Choices[0].Message.Content, nil
}

func (g *Gateway) recordFailure(ctx context.Context, err error) {
	_, change := g.breaker.RecordFailure()
	if g.logger == nil {
		return
	}
	g.logger.WarnContext(ctx, "advisory call failed", "model", g.model, "error", err)
	if change.Opened {
		g.logger.WarnContext(ctx, "advisory circuit opened", "breaker", g.breaker.Name())
	}
}

// Prompt renders the fixed analysis prompt.
func Prompt(description, location, severity string) string {
	return fmt.Sprintf(promptTemplate, location, severity, description)
}
