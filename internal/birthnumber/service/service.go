package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"rcgate/internal/birthnumber/metrics"
	"rcgate/pkg/birthnumber"
	dErrors "rcgate/pkg/domain-errors"
	"rcgate/pkg/requestcontext"
)

// Config holds the service's tunables.
type Config struct {
	DefaultSeparator string
	RollingCentury   bool
	MaxBatchSize     int
	BatchConcurrency int
}

// Result is a successfully parsed birth number plus values derived at
// request time.
type Result struct {
	BirthNumber birthnumber.BirthNumber
	Formatted   string
	Age         int
	Adult       bool
}

// BatchItem is the outcome for one input of a batch, at the input's index.
// Result is nil when Reason is not ReasonValid.
type BatchItem struct {
	Index  int
	Result *Result
	Reason birthnumber.Reason
}

// Service validates birth numbers against the request-scoped clock.
type Service struct {
	parser  *birthnumber.Parser
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs the service. A nil logger discards output; nil metrics are
// skipped.
func New(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Service {
	if cfg.DefaultSeparator == "" {
		cfg.DefaultSeparator = birthnumber.DefaultSeparator
	}
	if cfg.MaxBatchSize < 1 {
		cfg.MaxBatchSize = 100
	}
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	policy := birthnumber.CenturyFixed
	if cfg.RollingCentury {
		policy = birthnumber.CenturyRolling
	}
	return &Service{
		parser:  birthnumber.NewParser(birthnumber.WithCenturyPolicy(policy)),
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// Parse validates input and renders it with separator, or the configured
// default when separator is empty. Rejections carry CodeValidation and the
// rejection reason as the message.
func (s *Service) Parse(ctx context.Context, input, separator string) (*Result, error) {
	sep, err := s.separator(separator)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	bn, reason := s.inspect(input, now)
	if reason != birthnumber.ReasonValid {
		return nil, rejection(input, reason)
	}
	return s.result(bn, sep, now), nil
}

// Format parses input and returns it rendered with separator.
func (s *Service) Format(ctx context.Context, input, separator string) (string, error) {
	res, err := s.Parse(ctx, input, separator)
	if err != nil {
		return "", err
	}
	return res.Formatted, nil
}

// ParseBatch validates inputs concurrently. Individual rejections are
// reported per item; only an empty, oversized or cancelled batch fails as a
// whole. Items are returned in input order.
func (s *Service) ParseBatch(ctx context.Context, inputs []string) ([]BatchItem, error) {
	if len(inputs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one value is required")
	}
	if len(inputs) > s.cfg.MaxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, "too many values in one batch")
	}
	s.metrics.ObserveBatchSize(len(inputs))

	now := requestcontext.Now(ctx)
	items := make([]BatchItem, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bn, reason := s.inspect(input, now)
			items[i] = BatchItem{Index: i, Reason: reason}
			if reason == birthnumber.ReasonValid {
				items[i].Result = s.result(bn, s.cfg.DefaultSeparator, now)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation cancelled")
	}

	s.logger.DebugContext(ctx, "batch validated",
		"request_id", requestcontext.RequestID(ctx),
		"size", len(inputs),
	)
	return items, nil
}

func (s *Service) inspect(input string, now time.Time) (birthnumber.BirthNumber, birthnumber.Reason) {
	start := time.Now()
	bn, reason := s.parser.Inspect(input, now)
	s.metrics.ObserveParseLatency(time.Since(start))
	s.metrics.IncrementOutcome(reason == birthnumber.ReasonValid, reason.String())
	return bn, reason
}

func (s *Service) result(bn birthnumber.BirthNumber, sep string, now time.Time) *Result {
	return &Result{
		BirthNumber: bn,
		Formatted:   bn.Format(sep),
		Age:         bn.AgeAt(now),
		Adult:       bn.IsAdultAt(now),
	}
}

func (s *Service) separator(sep string) (string, error) {
	if sep == "" {
		return s.cfg.DefaultSeparator, nil
	}
	if err := birthnumber.ValidateSeparator(sep); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, err.Error())
	}
	return sep, nil
}

func rejection(input string, reason birthnumber.Reason) error {
	return dErrors.Wrap(&birthnumber.FormatError{Input: input}, dErrors.CodeValidation, reason.Description())
}
