package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"rcgate/internal/birthnumber/metrics"
	"rcgate/pkg/birthnumber"
	dErrors "rcgate/pkg/domain-errors"
	"rcgate/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *metrics.Metrics
	svc     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = New(Config{MaxBatchSize: 5, BatchConcurrency: 2}, nil, s.metrics)
}

func (s *ServiceSuite) TestParse() {
	s.Run("returns derived values", func() {
		res, err := s.svc.Parse(s.ctx, "736028/0719", "")
		s.Require().NoError(err)
		s.Equal("7360280719", res.BirthNumber.Normalized())
		s.Equal("736028/0719", res.Formatted)
		s.Equal(52, res.Age)
		s.True(res.Adult)
	})

	s.Run("honours a custom separator", func() {
		res, err := s.svc.Parse(s.ctx, "7360280719", " - ")
		s.Require().NoError(err)
		s.Equal("736028 - 0719", res.Formatted)
	})

	s.Run("rejects with validation code and reason", func() {
		_, err := s.svc.Parse(s.ctx, "9856011234", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(birthnumber.ReasonChecksum.Description(), dErrors.MessageOf(err))
		s.ErrorIs(err, birthnumber.ErrInvalidFormat)

		var formatErr *birthnumber.FormatError
		s.Require().True(errors.As(err, &formatErr))
		s.Equal("9856011234", formatErr.Input)
	})

	s.Run("rejects unsafe separators", func() {
		for _, sep := range []string{"////", "1"} {
			_, err := s.svc.Parse(s.ctx, "7360280719", sep)
			s.Require().Error(err, sep)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), sep)
		}
		_, err := s.svc.Parse(s.ctx, "7360280719", "////")
		s.ErrorIs(err, birthnumber.ErrSeparatorTooLong)
		s.Equal("separator must be at most 3 characters", dErrors.MessageOf(err))
	})

	s.Run("uses the request clock for the short form", func() {
		ctx := requestcontext.WithTime(context.Background(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		_, err := s.svc.Parse(ctx, "300101123", "")
		s.Require().Error(err)
		s.Equal(birthnumber.ReasonMissingChecksum.Description(), dErrors.MessageOf(err))

		res, err := s.svc.Parse(s.ctx, "300101123", "")
		s.Require().NoError(err)
		s.Equal(1930, res.BirthNumber.Year())
	})

	s.Run("records outcomes", func() {
		svc := New(Config{}, nil, metrics.New(prometheus.NewRegistry()))
		_, _ = svc.Parse(s.ctx, "7360280719", "")
		_, _ = svc.Parse(s.ctx, "123", "")
		s.Equal(1.0, testutil.ToFloat64(svc.metrics.ParseOutcome.WithLabelValues("accepted", "valid")))
		s.Equal(1.0, testutil.ToFloat64(svc.metrics.ParseOutcome.WithLabelValues("rejected", "invalid_length")))
	})
}

func (s *ServiceSuite) TestRollingCentury() {
	svc := New(Config{RollingCentury: true}, nil, nil)

	res, err := svc.Parse(s.ctx, "0471010012", "")
	s.Require().NoError(err)
	s.Equal(2004, res.BirthNumber.Year())
	s.True(res.BirthNumber.IsFemale())

	_, err = s.svc.Parse(s.ctx, "0471010012", "")
	s.Require().Error(err, "fixed policy reads 1904, where +70 is not in use")
}

func (s *ServiceSuite) TestFormat() {
	out, err := s.svc.Format(s.ctx, "736028/0719", "-")
	s.Require().NoError(err)
	s.Equal("736028-0719", out)

	_, err = s.svc.Format(s.ctx, "736028/0718", "-")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestParseBatch() {
	s.Run("keeps input order and per-item outcomes", func() {
		inputs := []string{"7360280719", "985601234", "9856011231", "8604310011", "300101123"}
		items, err := s.svc.ParseBatch(s.ctx, inputs)
		s.Require().NoError(err)
		s.Require().Len(items, len(inputs))

		want := []birthnumber.Reason{
			birthnumber.ReasonValid,
			birthnumber.ReasonMissingChecksum,
			birthnumber.ReasonValid,
			birthnumber.ReasonDate,
			birthnumber.ReasonValid,
		}
		for i, item := range items {
			s.Equal(i, item.Index)
			s.Equal(want[i], item.Reason, fmt.Sprintf("item %d", i))
			s.Equal(want[i] == birthnumber.ReasonValid, item.Result != nil)
		}
		s.Equal("985601/1231", items[2].Result.Formatted)
		s.Equal(1, testutil.CollectAndCount(s.metrics.BatchSize))
	})

	s.Run("rejects empty batch", func() {
		_, err := s.svc.ParseBatch(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects oversized batch", func() {
		_, err := s.svc.ParseBatch(s.ctx, make([]string, 6))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("cancelled context fails the batch", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.svc.ParseBatch(ctx, []string{"7360280719"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
		s.ErrorIs(err, context.Canceled)
	})
}

func (s *ServiceSuite) TestDefaults() {
	svc := New(Config{}, nil, nil)
	s.Equal(birthnumber.DefaultSeparator, svc.cfg.DefaultSeparator)
	s.Equal(100, svc.cfg.MaxBatchSize)
	s.Equal(1, svc.cfg.BatchConcurrency)
	s.Equal(birthnumber.CenturyFixed, svc.parser.Policy())
}
