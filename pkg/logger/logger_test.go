package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		level  string
		format string
	}{
		{
			name:   "creates logger with debug level",
			level:  logger.LogLevelDebug,
			format: "console",
		},
		{
			name:   "creates logger with json format",
			level:  logger.LogLevelInfo,
			format: logger.JSONLoggingFormat,
		},
		{
			name:   "creates logger with default level for unknown",
			level:  "unknown",
			format: "console",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			log := logger.New(tc.level, tc.format)
			require.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: "debug", expected: zerolog.DebugLevel},
		{level: " INFO ", expected: zerolog.InfoLevel},
		{level: "warning", expected: zerolog.WarnLevel},
		{level: "warn", expected: zerolog.WarnLevel},
		{level: "error", expected: zerolog.ErrorLevel},
		{level: "fatal", expected: zerolog.FatalLevel},
		{level: "panic", expected: zerolog.PanicLevel},
		{level: "", expected: zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, logger.ParseLevel(tc.level))
		})
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                  string
		setupContext          func() context.Context
		expectedRequestID     string
		expectedCorrelationID string
	}{
		{
			name: "adds request ID to logger",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), logger.ContextKeyRequestID, "req-123")
			},
			expectedRequestID: "req-123",
		},
		{
			name: "adds correlation ID to logger",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), logger.ContextKeyCorrelationID, "corr-456")
			},
			expectedCorrelationID: "corr-456",
		},
		{
			name: "skips empty request ID",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), logger.ContextKeyRequestID, "")
			},
		},
		{
			name:         "handles empty context",
			setupContext: context.Background,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.NewBufferedTestLogger(&buf)

			ctxLogger := log.WithContext(tc.setupContext())
			ctxLogger.Info().Msg("test message")

			var logEntry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

			if tc.expectedRequestID != "" {
				require.Equal(t, tc.expectedRequestID, logEntry["request_id"])
			} else {
				require.NotContains(t, logEntry, "request_id")
			}

			if tc.expectedCorrelationID != "" {
				require.Equal(t, tc.expectedCorrelationID, logEntry["correlation_id"])
			}
		})
	}
}

func TestComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewBufferedTestLogger(&buf).Component("compiler")

	log.Info().Msg("compiled")

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	require.Equal(t, "compiler", logEntry["component"])
}
