package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/pkg/config"
	"github.com/lukas4311/WpfValidation/pkg/logger"
)

func unsetForms() {
	for _, k := range []string{
		"FORMS_ENV", "FORMS_LOG_LEVEL", "FORMS_LOG_FORMAT", "FORMS_LANGUAGE",
		"FORMS_MESSAGES_FILE", "FORMS_NOTIFY_BUFFER", "FORMS_REDIS_URL",
		"FORMS_REDIS_CHANNEL", "FORMS_REDIS_CONNECT_TIMEOUT",
		"FORMS_REDIS_RETRY_ATTEMPTS", "FORMS_REDIS_RETRY_INTERVAL",
		"FORMS_TRACE_EXPORTER", "FORMS_TRACE_ENDPOINT",
	} {
		os.Unsetenv(k)
	}
}

func TestForms_Defaults(t *testing.T) {
	unsetForms()

	var cfg config.Forms
	require.NoError(t, config.Parse(&cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 256, cfg.NotifyBuffer)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, "forms:notifications", cfg.RedisChannel)
	assert.Equal(t, 10*time.Second, cfg.RedisConnectTimeout)
	assert.False(t, cfg.TracingEnabled())
	assert.Equal(t, "http://localhost:4318", cfg.TraceEndpoint)
}

func TestForms_FromEnvironment(t *testing.T) {
	unsetForms()
	t.Setenv("FORMS_ENV", "production")
	t.Setenv("FORMS_LOG_LEVEL", "warn")
	t.Setenv("FORMS_LANGUAGE", "cs")
	t.Setenv("FORMS_REDIS_URL", "redis://:secret@localhost:6379/0")
	t.Setenv("FORMS_REDIS_RETRY_ATTEMPTS", "5")
	t.Setenv("FORMS_REDIS_RETRY_INTERVAL", "250ms")

	var cfg config.Forms
	require.NoError(t, config.Parse(&cfg))
	require.NoError(t, cfg.Validate())

	rc := cfg.Redis()
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 5, rc.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, rc.RetryInterval)

	buf := &bytes.Buffer{}
	log := logger.New(append(cfg.LoggerOptions("formdemo"), logger.WithOutput(buf))...)
	log.Info("dropped")
	log.Warn("kept", slog.Any("config", cfg))
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"service":"formdemo"`)
	assert.NotContains(t, buf.String(), "secret")
}

func TestForms_Validate(t *testing.T) {
	t.Parallel()

	cfg := config.Forms{
		LogLevel:      "loud",
		LogFormat:     "xml",
		NotifyBuffer:  0,
		RedisURL:      "redis://localhost",
		TraceExporter: "jaeger",
	}
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	for _, part := range []string{"FORMS_LOG_LEVEL", "FORMS_LOG_FORMAT", "FORMS_LANGUAGE", "FORMS_NOTIFY_BUFFER", "FORMS_REDIS_CHANNEL", "FORMS_TRACE_EXPORTER"} {
		assert.Contains(t, err.Error(), part)
	}
}
