package logger_test

import (
	"context"
	"testing"

	"urlnorm/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		debug       bool
	}{
		{name: "development defaults to debug", environment: logger.DevelopmentEnvironment, debug: true},
		{name: "production defaults to info", environment: logger.ProductionEnvironment, debug: false},
		{name: "level override", environment: logger.DevelopmentEnvironment, level: "warn", debug: false},
		{name: "production debug override", environment: logger.ProductionEnvironment, level: "debug", debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, logger.Setup(tt.environment, tt.level))

			ctx := context.Background()
			require.NotNil(t, logger.Get(ctx))
			require.Equal(t, tt.debug, logger.IsDebug(ctx))
		})
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	require.Error(t, logger.Setup(logger.DevelopmentEnvironment, "loud"))
}

func TestGet(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))

	ctx := context.Background()
	require.NotNil(t, logger.Get(ctx), "should return default logger when context has no logger")

	customLogger := zap.NewExample()
	require.Equal(t, customLogger, logger.Get(logger.WithLogger(ctx, customLogger)))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("request_id", "abc"), zap.Int("attempt", 2))
	logger.Info(ctx, "normalized")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "normalized", entries[0].Message)
	require.Equal(t, "abc", entries[0].ContextMap()["request_id"])
	require.EqualValues(t, 2, entries[0].ContextMap()["attempt"])
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message", zap.String("key", "value"))
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 4, logs.Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	require.Equal(t, 1, logs.FilterMessage("error message").Len())

	require.NotPanics(t, logger.Sync)
}
