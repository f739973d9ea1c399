package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/auth"
	"github.com/rickgao/disclosure-data/internal/identifier"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/normalize"
	"github.com/rickgao/disclosure-data/internal/query"
)

// ErrMissingCredential is reported at StageCredentials when the dataset's
// service has no key configured.
var ErrMissingCredential = api.ErrMissingCredential

// Service runs lookups against a Fetcher.
type Service struct {
	fetcher     api.Fetcher
	creds       auth.Credentials
	logger      *slog.Logger
	recorder    Recorder
	now         func() time.Time
	diagnostics bool
	queryOpts   query.Options
	filingLag   time.Duration

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	tel            telemetry
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithRecorder sets a recorder notified after every lookup.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock sets the time source used for durations and the default
// holdings period.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDiagnostics attaches normalization diagnostics to every table.
func WithDiagnostics(enabled bool) Option {
	return func(s *Service) { s.diagnostics = enabled }
}

// WithQueryOptions sets the holdings page size and period of report. An
// empty period resolves to the latest filed quarter.
func WithQueryOptions(opts query.Options) Option {
	return func(s *Service) { s.queryOpts = opts }
}

// WithFilingLag sets the lag used to pick the default holdings period.
func WithFilingLag(lag time.Duration) Option {
	return func(s *Service) { s.filingLag = lag }
}

// WithTracerProvider sets the provider for lookup spans. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracerProvider = tp }
}

// WithMeterProvider sets the provider for lookup metrics. The global
// provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meterProvider = mp }
}

// New creates a Service.
func New(fetcher api.Fetcher, creds auth.Credentials, opts ...Option) *Service {
	s := &Service{
		fetcher:   fetcher,
		creds:     creds,
		logger:    slog.Default(),
		now:       time.Now,
		filingLag: query.DefaultFilingLag,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tel = newTelemetry(s.tracerProvider, s.meterProvider, s.logger)
	return s
}

// CheckCredentials returns an error wrapping ErrMissingCredential for the
// first dataset whose service has no key.
func (s *Service) CheckCredentials(kinds ...model.DatasetKind) error {
	for _, kind := range kinds {
		svc := kind.Service()
		if !s.creds.For(svc).Present() {
			return fmt.Errorf("%s needs %s: %w", kind, svc, ErrMissingCredential)
		}
	}
	return nil
}

// Lookup runs the full pipeline for raw against dataset kind.
func (s *Service) Lookup(ctx context.Context, kind model.DatasetKind, raw string) Result {
	ctx, span := s.tel.tracer.Start(ctx, "lookup "+kind.String(),
		trace.WithAttributes(AttrDataset.String(kind.String())))
	defer span.End()

	started := s.now()
	res := s.lookup(ctx, kind, raw)
	res.Duration = s.now().Sub(started)

	s.tel.observe(ctx, span, res)
	s.log(res)
	if s.recorder != nil {
		if err := s.recorder.RecordLookup(ctx, newEvent(res, started)); err != nil {
			s.logger.Warn("record lookup failed", "lookup_id", res.ID, "err", err)
		}
	}
	return res
}

func (s *Service) lookup(ctx context.Context, kind model.DatasetKind, raw string) Result {
	res := Result{ID: uuid.New(), Dataset: kind}

	res.Identifier = identifier.Normalize(raw, kind.IdentifierKind())
	if res.Identifier.Empty() {
		res.Status = StatusNoQuery
		return res
	}

	svc := kind.Service()
	cred := s.creds.For(svc)
	if !cred.Present() {
		res.Outcome = api.OutcomeAuthError
		return failed(res, StageCredentials, &api.AuthError{Service: svc, Message: "credential not configured"})
	}

	q, err := query.Build(res.Identifier, kind, s.resolveOptions(kind))
	if err != nil {
		return failed(res, StageBuild, err)
	}
	res.Query = q

	rawResult, err := s.fetcher.Fetch(ctx, q, cred)
	res.Outcome = api.Classify(rawResult, err)
	if err != nil {
		return failed(res, StageFetch, err)
	}
	res.Truncated = q.MayBeTruncated(len(rawResult.Records))

	res.Table = normalize.Normalize(rawResult, kind,
		normalize.WithLogger(s.logger),
		normalize.WithDiagnostics(s.diagnostics),
	)
	if res.Table.Len() == 0 {
		res.Status = StatusEmpty
	} else {
		res.Status = StatusSuccess
	}
	return res
}

func (s *Service) resolveOptions(kind model.DatasetKind) query.Options {
	opts := s.queryOpts
	if kind == model.InstitutionalHoldings && opts.Period == "" {
		opts.Period = query.LatestReportPeriod(s.now(), s.filingLag)
	}
	return opts
}

func failed(res Result, stage Stage, err error) Result {
	res.Status = StatusFailed
	res.Table = nil
	res.Err = &StageError{Stage: stage, Err: err}
	return res
}

func (s *Service) log(res Result) {
	attrs := []any{
		"lookup_id", res.ID,
		"dataset", res.Dataset.String(),
		"identifier", res.Identifier.Normalized(),
		"status", res.Status.String(),
		"duration", res.Duration,
	}
	switch {
	case res.Err != nil:
		attrs = append(attrs, "stage", res.Err.Stage.String())
		if res.Outcome != api.OutcomeNone {
			attrs = append(attrs, "outcome", res.Outcome.String())
		}
		s.logger.Warn("lookup failed", append(attrs, "err", res.Err.Err)...)
	case res.Table != nil:
		s.logger.Info("lookup complete", append(attrs, "rows", res.Table.Len(), "truncated", res.Truncated)...)
	default:
		s.logger.Debug("lookup skipped", attrs...)
	}
}
