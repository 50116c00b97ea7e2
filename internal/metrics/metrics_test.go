package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/MikeMC777/beyblade-store/internal/config"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestRecord_CountsErrorsSeparately(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	m, err := NewClientMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	ctx := context.Background()
	m.Record(ctx, "GET", "/product", 200, 12*time.Millisecond)
	m.Record(ctx, "GET", "/product/9", 404, 3*time.Millisecond)
	m.Record(ctx, "POST", "/upload/image", 0, time.Millisecond)

	got := collect(t, reader)

	sumOf := func(name string) int64 {
		s, ok := got[name].(metricdata.Sum[int64])
		require.True(t, ok, name)
		var n int64
		for _, dp := range s.DataPoints {
			n += dp.Value
		}
		return n
	}
	assert.Equal(t, int64(3), sumOf("xano.requests.total"))
	assert.Equal(t, int64(2), sumOf("xano.requests.errors"))
	assert.Contains(t, got, "xano.request.duration")
}

func TestRecord_NilIsNoop(t *testing.T) {
	var m *ClientMetrics
	assert.NotPanics(t, func() {
		m.Record(context.Background(), "GET", "/product", 200, time.Millisecond)
	})
}

func TestInit_DisabledReturnsNoop(t *testing.T) {
	mp, shutdown, err := Init(context.Background(), config.Config{MetricsEnabled: false})
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.NoError(t, shutdown(context.Background()))

	_, err = NewClientMetrics(mp)
	assert.NoError(t, err)
}
