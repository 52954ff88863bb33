package normalizer

import (
	"context"
	"strings"
	"time"

	"urlnorm/internal/config"
	"urlnorm/pkg/logger"
	"urlnorm/pkg/metrics"
	"urlnorm/pkg/serrors"
	"urlnorm/pkg/urlnorm"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "urlnorm/internal/normalizer"

// Outcomes recorded on the normalizations counter.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
)

// Options limit the input accepted by the normalizer. Zero values disable the
// corresponding limit.
type Options struct {
	// MaxURLLength is the longest URL, in bytes, accepted for normalization.
	MaxURLLength int
	// MaxBatchSize is the largest number of URLs accepted by NormalizeBatch.
	MaxBatchSize int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxURLLength: cfg.Normalizer.MaxURLLength,
		MaxBatchSize: cfg.Normalizer.MaxBatchSize,
	}
}

// Deps are the telemetry providers used by the normalizer. Nil providers fall
// back to the global ones.
type Deps struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

type normalizer struct {
	options Options
	tracer  trace.Tracer

	// normalizations counts normalized URLs by outcome.
	normalizations metric.Int64Counter
	// duration observes the time spent normalizing a single URL.
	duration metric.Float64Histogram
}

// New creates a Normalizer with the given telemetry providers and limits.
func New(deps Deps, options Options) (Normalizer, error) {
	if deps.MeterProvider == nil {
		deps.MeterProvider = otel.GetMeterProvider()
	}
	if deps.TracerProvider == nil {
		deps.TracerProvider = otel.GetTracerProvider()
	}

	meter := deps.MeterProvider.Meter(instrumentationName)
	normalizations, err := meter.Int64Counter("urlnorm.normalizations",
		metric.WithDescription("Number of URLs normalized, by outcome."),
		metric.WithUnit("{url}"))
	if err != nil {
		return nil, errors.Wrap(err, "create normalizations counter")
	}
	duration, err := meter.Float64Histogram("urlnorm.normalize.duration",
		metric.WithDescription("Time spent normalizing a single URL."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, errors.Wrap(err, "create duration histogram")
	}

	return &normalizer{
		options:        options,
		tracer:         deps.TracerProvider.Tracer(instrumentationName),
		normalizations: normalizations,
		duration:       duration,
	}, nil
}

// Normalize normalizes a single URL. Malformed input yields an error of kind
// serrors.ErrInvalidURL; blank input or input over the length limit yields
// serrors.ErrBadRequest.
func (n *normalizer) Normalize(ctx context.Context, raw string) (*Result, error) {
	ctx, span := n.tracer.Start(ctx, "normalizer.Normalize",
		trace.WithAttributes(attribute.Int("url.length", len(raw))))
	defer span.End()

	res, err := n.normalize(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return res, nil
}

// NormalizeBatch normalizes every URL in raws, in order. A failing URL does not
// fail the batch: its error is reported on the corresponding item. The batch
// itself fails when it is over the size limit or when ctx is done before all
// items are processed.
func (n *normalizer) NormalizeBatch(ctx context.Context, raws []string) ([]BatchItem, error) {
	ctx, span := n.tracer.Start(ctx, "normalizer.NormalizeBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(raws))))
	defer span.End()

	if n.options.MaxBatchSize > 0 && len(raws) > n.options.MaxBatchSize {
		err := serrors.With(serrors.ErrBadRequest,
			"batch of %d URLs exceeds the limit of %d", len(raws), n.options.MaxBatchSize)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	items := make([]BatchItem, 0, len(raws))
	failed := 0
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			err = serrors.Wrap(serrors.ErrTimeout, errors.Wrap(err, "batch interrupted"),
				"normalized %d of %d URLs", len(items), len(raws))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return nil, err
		}

		item := BatchItem{Input: raw}
		res, err := n.normalize(ctx, raw)
		if err != nil {
			item.Err = err
			failed++
		} else {
			item.Normalized = res.Normalized
		}
		items = append(items, item)
	}
	span.SetAttributes(attribute.Int("batch.failed", failed))

	return items, nil
}

// Equal reports whether a and b normalize to the same URL.
func (n *normalizer) Equal(ctx context.Context, a, b string) (bool, error) {
	ctx, span := n.tracer.Start(ctx, "normalizer.Equal")
	defer span.End()

	ra, err := n.normalize(ctx, a)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return false, errors.Wrap(err, "first URL")
	}
	rb, err := n.normalize(ctx, b)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return false, errors.Wrap(err, "second URL")
	}

	equal := ra.Normalized == rb.Normalized
	span.SetAttributes(attribute.Bool("urls.equal", equal))

	return equal, nil
}

func (n *normalizer) normalize(ctx context.Context, raw string) (*Result, error) {
	if strings.TrimSpace(raw) == "" {
		n.record(ctx, OutcomeRejected, 0)

		return nil, serrors.With(serrors.ErrBadRequest, "empty URL")
	}
	if n.options.MaxURLLength > 0 && len(raw) > n.options.MaxURLLength {
		n.record(ctx, OutcomeRejected, 0)

		return nil, serrors.With(serrors.ErrBadRequest,
			"URL of %d bytes exceeds the limit of %d", len(raw), n.options.MaxURLLength)
	}

	start := time.Now()
	c, err := urlnorm.Split(raw)
	if err == nil {
		c, err = urlnorm.NormalizeComponents(c)
	}
	elapsed := time.Since(start)
	if err != nil {
		n.record(ctx, OutcomeInvalid, elapsed)
		if logger.IsDebug(ctx) {
			logger.Debug(ctx, "could not normalize URL", zap.String("url", raw), zap.Error(err))
		}

		return nil, err //nolint: wrapcheck
	}
	n.record(ctx, OutcomeOK, elapsed)

	return &Result{
		Input:      raw,
		Normalized: c.String(),
		Components: c,
	}, nil
}

func (n *normalizer) record(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	n.normalizations.Add(ctx, 1, attrs)
	if outcome != OutcomeRejected {
		n.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
