// Package advisor implements the advisory pipeline: resolve the query into a
// context, generate candidate recommendations, rank them, build the decision
// matrix, assess risk and opportunity, and compose the result.
package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"counsel/internal/advisor/metrics"
	"counsel/internal/audit"
	"counsel/internal/domain"
	"counsel/internal/history"
	"counsel/internal/registry"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/requestcontext"
)

// AuditPublisher records issued advice for downstream consumers.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// ResultCache stores advise results under their request fingerprint.
// Implementations must fail open.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.Result, bool)
	Set(ctx context.Context, key string, result *domain.Result)
}

// Service orchestrates the advisory pipeline.
type Service struct {
	registry       *registry.Registry
	history        *history.Store
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	cache          ResultCache
	auditPublisher AuditPublisher
	heuristics     Heuristics
	defaults       Options
}

type Option func(s *Service)

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

func WithCache(cache ResultCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithHeuristics(h Heuristics) Option {
	return func(s *Service) {
		s.heuristics = h
	}
}

func WithDefaults(defaults Options) Option {
	return func(s *Service) {
		s.defaults = defaults
	}
}

// New constructs a Service.
//
// Errors: CodeInvalidInput when the registry or history store is missing.
func New(reg *registry.Registry, hist *history.Store, opts ...Option) (*Service, error) {
	if reg == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "advisor requires a rule registry")
	}
	if hist == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "advisor requires a history store")
	}

	s := &Service{
		registry:   reg,
		history:    hist,
		logger:     slog.Default(),
		tracer:     otel.Tracer("counsel/advisor"),
		heuristics: DefaultHeuristics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Advise runs the full pipeline for one query. Resolution failures are the
// only errors a caller sees; everything downstream degrades instead of
// failing.
func (s *Service) Advise(ctx context.Context, q Query, opts Options) (*domain.Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "advisor.Advise")
	defer span.End()

	opts = opts.Normalize(s.defaults)

	resolved, err := Resolve(q)
	if err != nil {
		s.metrics.IncValidationFailure()
		s.emitRejection(ctx, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("advisor.domain", resolved.Domain),
		attribute.Int("advisor.max_recommendations", opts.MaxRecommendations),
	)

	fingerprint := requestFingerprint(resolved, opts)
	if s.cache != nil && fingerprint != "" {
		if cached, ok := s.cache.Get(ctx, fingerprint); ok {
			s.metrics.IncCacheHit()
			s.recordHistory(ctx, resolved, *cached)
			return cached, nil
		}
		s.metrics.IncCacheMiss()
	}

	candidates := s.generate(ctx, resolved)
	ranked := rank(resolved, candidates, opts)
	matrix := buildMatrix(resolved, ranked, s.heuristics)
	risk := assessRisk(resolved, ranked, s.heuristics)
	opportunity := assessOpportunity(resolved)

	result := compose(resolved, ranked, matrix, risk, opportunity,
		time.Since(start), requestcontext.Now(ctx))

	s.logger.InfoContext(ctx, "advice issued",
		"advice_id", result.ID,
		"domain", resolved.Domain,
		"candidates", len(candidates),
		"recommendations", len(ranked),
		"risk_level", risk.Level,
		"confidence", result.Confidence,
	)
	s.metrics.ObserveAdvise(resolved.Domain, string(risk.Level), len(ranked), time.Since(start))

	s.recordHistory(ctx, resolved, result)
	if s.cache != nil && fingerprint != "" {
		s.cache.Set(ctx, fingerprint, &result)
	}
	s.emitAudit(ctx, resolved, result)

	return &result, nil
}

// History returns up to n past advise invocations, most recent first.
func (s *Service) History(n int) []history.Entry {
	return s.history.Recent(n)
}

// Registry exposes the rule registry for administrative mutation.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

func (s *Service) recordHistory(ctx context.Context, c domain.Context, result domain.Result) {
	s.history.Append(history.Entry{
		ID:        result.ID,
		Context:   c,
		Result:    result,
		CreatedAt: requestcontext.Now(ctx),
	})
}

// emitAudit is fail-open: a broken audit sink must not block advice.
func (s *Service) emitAudit(ctx context.Context, c domain.Context, result domain.Result) {
	if s.auditPublisher == nil {
		return
	}

	event := audit.Event{
		Timestamp:       requestcontext.Now(ctx),
		Action:          audit.ActionAdviceIssued,
		AdviceID:        result.ID,
		RequestID:       requestcontext.RequestID(ctx),
		ClientIP:        requestcontext.ClientIP(ctx),
		Domain:          c.Domain,
		Objective:       c.Objective,
		Recommendations: len(result.Recommendations),
		Confidence:      result.Confidence,
		RiskLevel:       string(result.Analysis.Risk.Level),
	}
	if len(result.Recommendations) > 0 {
		event.TopCategory = result.Recommendations[0].Category
	}

	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "advice_id", result.ID, "error", err)
	}
}

// emitRejection records a refused query. Fail-open like emitAudit.
func (s *Service) emitRejection(ctx context.Context, cause error) {
	if s.auditPublisher == nil {
		return
	}

	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    audit.ActionAdviceRejected,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Reason:    cause.Error(),
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

// requestFingerprint hashes the canonical JSON of the resolved context and
// normalized options. Two requests with the same fingerprint get the same
// advice content.
func requestFingerprint(c domain.Context, opts Options) string {
	payload, err := json.Marshal(struct {
		Context domain.Context `json:"context"`
		Options Options        `json:"options"`
	}{c, opts})
	if err != nil {
		return "" // unhashable contexts simply never hit the cache
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
