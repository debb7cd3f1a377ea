package observability_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speckJ8/graph-algorithms/pkg/observability"
)

func quietConfig() observability.Config {
	cfg := observability.DefaultConfig()
	cfg.LogWriter = io.Discard

	return cfg
}

func TestInitWithoutEndpoint(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(quietConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.NotNil(t, providers.Registry)

	ctx, span := providers.Tracer.Start(context.Background(), "noop")
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsSampled())
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitShutdownTwice(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(quietConfig())
	require.NoError(t, err)

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestBuildResourceAttributes(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.ServiceVersion = "1.2.3"
	cfg.Environment = "ci"
	cfg.Mode = observability.ModeStress

	res, err := observability.ProbeBuildResource(cfg)
	require.NoError(t, err)

	found := map[string]string{}
	for _, attr := range res.Attributes() {
		found[string(attr.Key)] = attr.Value.Emit()
	}

	assert.Equal(t, "rbt", found["service.name"])
	assert.Equal(t, "1.2.3", found["service.version"])
	assert.Equal(t, "ci", found["deployment.environment"])
	assert.Equal(t, "stress", found["app.mode"])
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single", "key=value", map[string]string{"key": "value"}},
		{"multiple", "k1=v1,k2=v2", map[string]string{"k1": "v1", "k2": "v2"}},
		{"spaces", " k1 = v1 , k2 = v2 ", map[string]string{"k1": "v1", "k2": "v2"}},
		{"no_equals", "invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.input))
		})
	}
}

func TestSamplerFromEnv(t *testing.T) {
	tests := []struct {
		sampler string
		arg     string
		sampled bool
	}{
		{"always_on", "", true},
		{"always_off", "", false},
		{"traceidratio", "1.0", true},
		{"traceidratio", "0", false},
		{"parentbased_always_on", "", true},
		{"parentbased_always_off", "", false},
		{"parentbased_traceidratio", "garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.sampler+"/"+tt.arg, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLER", tt.sampler)
			t.Setenv("OTEL_TRACES_SAMPLER_ARG", tt.arg)

			assert.Equal(t, tt.sampled, observability.ProbeSamplerSpan(quietConfig()))
		})
	}
}

//nolint:paralleltest // t.Setenv forbids t.Parallel.
func TestSamplerDebugTraceOverridesEnv(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "always_off")

	cfg := quietConfig()
	cfg.DebugTrace = true

	assert.True(t, observability.ProbeSamplerSpan(cfg))
}

func TestSamplerRatioFallback(t *testing.T) {
	t.Parallel()

	cfg := quietConfig()
	cfg.SampleRatio = 1.0

	assert.True(t, observability.ProbeSamplerSpan(cfg))
}
