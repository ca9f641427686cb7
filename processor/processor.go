// Package processor drives a processing round: every request is extracted,
// dispatched to its strategy, rendered and emitted, with failures reported
// as diagnostics against the request site.
package processor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/d-fournier/wrappy/diag"
	"github.com/d-fournier/wrappy/emit"
	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/extract"
	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/logger"
	"github.com/d-fournier/wrappy/registry"
	"github.com/d-fournier/wrappy/strategy"
)

// Isolation decides how far a failing request reaches
type Isolation int

const (
	// IsolateRequest ends only the failing request; the round continues.
	IsolateRequest Isolation = iota
	// IsolateRound stops the round at the first failing request. Requests
	// are processed sequentially.
	IsolateRound
)

// ParseIsolation maps the configuration spelling to an Isolation.
func ParseIsolation(s string) (Isolation, error) {
	switch s {
	case "", "request":
		return IsolateRequest, nil
	case "round":
		return IsolateRound, nil
	}
	return IsolateRequest, errors.WithHint(
		errors.NewInvalidRequestError("unknown isolation %q", s),
		"use request or round")
}

func (i Isolation) String() string {
	if i == IsolateRound {
		return "round"
	}
	return "request"
}

// Processor runs rounds against a fixed registry and filer.
type Processor struct {
	registry  *registry.Registry
	filer     emit.Filer
	logger    *zap.SugaredLogger
	metrics   *Metrics
	jobs      int
	isolation Isolation
}

// Option configures a Processor
type Option func(*Processor)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Processor) { p.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithJobs sets how many requests are processed concurrently. Values below
// two process sequentially.
func WithJobs(n int) Option {
	return func(p *Processor) { p.jobs = n }
}

func WithIsolation(i Isolation) Option {
	return func(p *Processor) { p.isolation = i }
}

// New returns a processor dispatching to reg and writing through filer.
func New(reg *registry.Registry, filer emit.Filer, opts ...Option) *Processor {
	p := &Processor{
		registry: reg,
		filer:    filer,
		logger:   logger.ComponentLogger("processor"),
		jobs:     1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GeneratedUnit is one source unit written during a round.
type GeneratedUnit struct {
	Request  host.Request
	Strategy string
	Unit     strategy.SourceUnit
}

// RoundResult summarizes a processed round.
type RoundResult struct {
	RoundID   string
	Generated []GeneratedUnit
	// Failed counts requests that produced no unit
	Failed int
	// Skipped counts requests never attempted because the round stopped early
	Skipped     int
	Diagnostics map[diag.Severity]int

	reporter *diag.Reporter
}

// Err returns diag.ErrAborted when any error was reported during the round.
func (r *RoundResult) Err() error {
	return r.reporter.AbortIfAnyError()
}

// outcome is the result of processing one request.
type outcome struct {
	unit    GeneratedUnit
	ok      bool
	scope   *diag.Reporter
	visited bool
}

// ProcessRound processes every request of round. Diagnostics reach sink in
// request order whatever the number of jobs. The returned error is only
// non-nil when ctx is cancelled; request failures are in the result.
func (p *Processor) ProcessRound(ctx context.Context, round *host.Round, sink diag.Sink) (*RoundResult, error) {
	if sink == nil {
		sink = diag.Discard
	}
	roundID := uuid.NewString()
	ctx = logger.WithRoundID(ctx, roundID)
	log := p.logger.With(logger.FieldRoundID, roundID)

	reporter := diag.NewReporter(diag.MultiSink{sink, p.metrics.sink()})
	result := &RoundResult{RoundID: roundID, reporter: reporter}

	requests := round.Requests
	log.Debugw("Processing round",
		logger.FieldCount, len(requests),
		logger.FieldJobs, p.jobs,
		"isolation", p.isolation.String())

	start := time.Now()
	outcomes := make([]outcome, len(requests))
	var err error
	if p.jobs > 1 && p.isolation == IsolateRequest {
		err = p.processParallel(ctx, round, reporter, outcomes)
	} else {
		err = p.processSequential(ctx, round, reporter, outcomes)
	}

	for _, o := range outcomes {
		switch {
		case !o.visited:
			result.Skipped++
		case o.ok:
			result.Generated = append(result.Generated, o.unit)
		default:
			result.Failed++
		}
	}
	if p.isolation == IsolateRound && ctx.Err() == nil {
		for i, o := range outcomes {
			if !o.visited {
				p.metrics.observeRequest(requests[i].Strategy, OutcomeSkipped)
			}
		}
	}

	result.Diagnostics = map[diag.Severity]int{
		diag.SeverityNote:    reporter.Count(diag.SeverityNote),
		diag.SeverityWarning: reporter.Count(diag.SeverityWarning),
		diag.SeverityError:   reporter.Count(diag.SeverityError),
	}

	log.Infow("Round processed",
		logger.FieldGenerated, len(result.Generated),
		logger.FieldFailed, result.Failed,
		"skipped", result.Skipped,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return result, err
}

func (p *Processor) processSequential(ctx context.Context, round *host.Round, reporter *diag.Reporter, outcomes []outcome) error {
	for i, req := range round.Requests {
		if err := ctx.Err(); err != nil {
			return err
		}
		scope := reporter.Scope()
		unit, err := p.processRequest(ctx, round, scope, req)
		scope.Flush()
		outcomes[i] = outcome{unit: unit, ok: err == nil, visited: true}

		if err != nil && p.isolation == IsolateRound {
			p.logger.Warnw("Stopping round after failed request",
				logger.FieldRequest, req.SiteName(),
				"remaining", len(round.Requests)-i-1)
			return nil
		}
	}
	return nil
}

func (p *Processor) processParallel(ctx context.Context, round *host.Round, reporter *diag.Reporter, outcomes []outcome) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs)

	for i, req := range round.Requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each request reports into its own scope; scopes are flushed
			// below in request order.
			scope := reporter.Scope()
			unit, err := p.processRequest(gctx, round, scope, req)
			outcomes[i] = outcome{unit: unit, ok: err == nil, scope: scope, visited: true}
			return nil
		})
	}
	err := g.Wait()

	for _, o := range outcomes {
		if o.scope != nil {
			o.scope.Flush()
		}
	}
	return err
}

// processRequest runs one request to completion. A failure is reported on
// scope and ends the request with the resulting *diag.AbortError.
func (p *Processor) processRequest(ctx context.Context, round *host.Round, scope *diag.Reporter, req host.Request) (GeneratedUnit, error) {
	log := p.logger.With(logger.FieldsFromContext(ctx)...).With(
		logger.FieldRequest, req.SiteName(),
		logger.FieldStrategy, req.Strategy)
	locus := req.Locus()

	def, err := extract.New(round, scope).Extract(req)
	if err != nil {
		log.Debugw("Request rejected", logger.FieldError, err)
		p.metrics.observeRequest(req.Strategy, OutcomeInvalid)
		var shape *extract.ShapeError
		if errors.As(err, &shape) {
			return GeneratedUnit{}, scope.AbortWithError(shape.Code(), shape.Error(), shape.Locus)
		}
		return GeneratedUnit{}, scope.AbortWithError(diag.CodeTypeNotFound, err.Error(), locus)
	}

	s, err := p.registry.Resolve(req.Strategy)
	if err != nil {
		code := diag.CodeStrategyNotFound
		var lookup *registry.LookupError
		if errors.As(err, &lookup) && lookup.Kind == registry.LookupNoStrategies {
			code = diag.CodeNoStrategies
		}
		log.Debugw("Strategy lookup failed", logger.FieldError, err)
		p.metrics.observeRequest(req.Strategy, OutcomeNoMatch)
		return GeneratedUnit{}, scope.AbortWithError(code, err.Error(), locus)
	}

	renderStart := time.Now()
	unit, err := s.Render(ctx, def)
	p.metrics.observeRender(req.Strategy, time.Since(renderStart).Seconds())
	if err != nil {
		log.Warnw("Render failed", logger.FieldError, err)
		p.metrics.observeRequest(req.Strategy, OutcomeFailed)
		return GeneratedUnit{}, scope.AbortWithError(diag.CodeRenderFailed, "failed to render "+def.QualifiedClassName()+": "+err.Error(), locus)
	}

	if err := p.filer.Write(ctx, unit); err != nil {
		log.Warnw("Emission failed", logger.FieldUnit, unit.QualifiedName(), logger.FieldError, err)
		p.metrics.observeRequest(req.Strategy, OutcomeFailed)
		return GeneratedUnit{}, scope.AbortWithError(diag.CodeEmitFailed, err.Error(), locus)
	}

	log.Debugw("Generated wrapper",
		logger.FieldUnit, unit.QualifiedName(),
		logger.FieldCount, len(def.Methods))
	p.metrics.observeRequest(req.Strategy, OutcomeGenerated)
	return GeneratedUnit{Request: req, Strategy: s.Name(), Unit: unit}, nil
}
