package normalizer_test

import (
	"context"
	"strings"
	"testing"

	"urlnorm/internal/config"
	"urlnorm/internal/normalizer"
	"urlnorm/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type telemetry struct {
	reader *sdkmetric.ManualReader
	spans  *tracetest.SpanRecorder
}

func newTestNormalizer(t *testing.T, opts normalizer.Options) (normalizer.Normalizer, *telemetry) {
	t.Helper()

	tel := &telemetry{
		reader: sdkmetric.NewManualReader(),
		spans:  tracetest.NewSpanRecorder(),
	}
	n, err := normalizer.New(normalizer.Deps{
		MeterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(tel.reader)),
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tel.spans)),
	}, opts)
	require.NoError(t, err)

	return n, tel
}

// outcomes returns the normalizations counter value per outcome.
func (tel *telemetry) outcomes(t *testing.T) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, tel.reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "urlnorm.normalizations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				v, ok := dp.Attributes.Value("outcome")
				require.True(t, ok)
				out[v.AsString()] = dp.Value
			}
		}
	}

	return out
}

// durationCount returns the number of observations on the duration histogram.
func (tel *telemetry) durationCount(t *testing.T) uint64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, tel.reader.Collect(context.Background(), &rm))

	var count uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "urlnorm.normalize.duration" {
				continue
			}
			h, ok := m.Data.(metricdata.Histogram[float64])
			require.True(t, ok)
			for _, dp := range h.DataPoints {
				count += dp.Count
			}
		}
	}

	return count
}

func TestNewOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Normalizer.MaxURLLength = 10
	cfg.Normalizer.MaxBatchSize = 2

	require.Equal(t, normalizer.Options{MaxURLLength: 10, MaxBatchSize: 2}, normalizer.NewOptions(cfg))
}

func TestNew_GlobalProviders(t *testing.T) {
	n, err := normalizer.New(normalizer.Deps{}, normalizer.Options{})
	require.NoError(t, err)

	res, err := n.Normalize(context.Background(), "HTTP://Example.COM")
	require.NoError(t, err)
	require.Equal(t, "http://example.com/", res.Normalized)
}

func TestNormalizer_Normalize(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{})

	res, err := n.Normalize(context.Background(), "HTTP://User@Example.COM:80/a/./b/../c;p%3d?q=%7e#f")
	require.NoError(t, err)
	require.Equal(t, "HTTP://User@Example.COM:80/a/./b/../c;p%3d?q=%7e#f", res.Input)
	require.Equal(t, "http://User@example.com/a/c;p%3D?q=~#f", res.Normalized)
	require.Equal(t, "http", res.Components.Scheme)
	require.Equal(t, "User@example.com", res.Components.Authority)
	require.Equal(t, "/a/c", res.Components.Path)
	require.Equal(t, "p%3D", res.Components.Params)
	require.Equal(t, "q=~", res.Components.Query)
	require.Equal(t, "f", res.Components.Fragment)

	require.Equal(t, map[string]int64{normalizer.OutcomeOK: 1}, tel.outcomes(t))
	require.EqualValues(t, 1, tel.durationCount(t))

	ended := tel.spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "normalizer.Normalize", ended[0].Name())
	require.Equal(t, codes.Unset, ended[0].Status().Code)
}

func TestNormalizer_Normalize_Invalid(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{})

	_, err := n.Normalize(context.Background(), "http://localhost/")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrInvalidURL)
	require.Equal(t, serrors.ErrInvalidURL, serrors.KindOf(err))

	require.Equal(t, map[string]int64{normalizer.OutcomeInvalid: 1}, tel.outcomes(t))

	ended := tel.spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, codes.Error, ended[0].Status().Code)
	require.NotEmpty(t, ended[0].Events(), "error should be recorded on the span")
}

func TestNormalizer_Normalize_TooLong(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{MaxURLLength: 32})

	_, err := n.Normalize(context.Background(), "http://example.com/"+strings.Repeat("a", 32))
	require.Error(t, err)
	require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(err))

	require.Equal(t, map[string]int64{normalizer.OutcomeRejected: 1}, tel.outcomes(t))
	require.Zero(t, tel.durationCount(t))
}

func TestNormalizer_NormalizeBatch(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{MaxBatchSize: 3})

	items, err := n.NormalizeBatch(context.Background(), []string{
		"http://Example.com:80",
		"noscheme",
		"https://example.com/%7e/",
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Equal(t, "http://Example.com:80", items[0].Input)
	require.Equal(t, "http://example.com/", items[0].Normalized)
	require.NoError(t, items[0].Err)

	require.Equal(t, "noscheme", items[1].Input)
	require.Empty(t, items[1].Normalized)
	require.ErrorIs(t, items[1].Err, serrors.ErrInvalidURL)

	require.Equal(t, "https://example.com/~/", items[2].Normalized)

	require.Equal(t, map[string]int64{
		normalizer.OutcomeOK:      2,
		normalizer.OutcomeInvalid: 1,
	}, tel.outcomes(t))

	ended := tel.spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "normalizer.NormalizeBatch", ended[0].Name())
}

func TestNormalizer_NormalizeBatch_Empty(t *testing.T) {
	n, _ := newTestNormalizer(t, normalizer.Options{MaxBatchSize: 3})

	items, err := n.NormalizeBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestNormalizer_NormalizeBatch_TooLarge(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{MaxBatchSize: 1})

	_, err := n.NormalizeBatch(context.Background(), []string{"http://a.com/", "http://b.com/"})
	require.Error(t, err)
	require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(err))
	require.Empty(t, tel.outcomes(t))
}

func TestNormalizer_NormalizeBatch_Cancelled(t *testing.T) {
	n, _ := newTestNormalizer(t, normalizer.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.NormalizeBatch(ctx, []string{"http://a.com/"})
	require.Error(t, err)
	require.Equal(t, serrors.ErrTimeout, serrors.KindOf(err))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalizer_Equal(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{})
	ctx := context.Background()

	eq, err := n.Equal(ctx, "http://example.com:80/a/../b", "HTTP://EXAMPLE.com/b")
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = n.Equal(ctx, "http://example.com/a", "http://example.com/b")
	require.NoError(t, err)
	require.False(t, eq)

	_, err = n.Equal(ctx, "http://example.com/", "http://localhost/")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrInvalidURL)
	require.Contains(t, err.Error(), "second URL")

	require.Equal(t, map[string]int64{
		normalizer.OutcomeOK:      5,
		normalizer.OutcomeInvalid: 1,
	}, tel.outcomes(t))
}

func TestNormalizer_Normalize_Blank(t *testing.T) {
	n, tel := newTestNormalizer(t, normalizer.Options{})

	_, err := n.Normalize(context.Background(), " \t\n")
	require.Error(t, err)
	require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(err))
	require.Equal(t, map[string]int64{normalizer.OutcomeRejected: 1}, tel.outcomes(t))
}
