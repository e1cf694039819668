package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lukas4311/WpfValidation/pkg/logger"
	"github.com/lukas4311/WpfValidation/pkg/notify"
)

// Forms configures the forms runtime.
type Forms struct {
	Env string `env:"FORMS_ENV" envDefault:"development"`
	// LogLevel and LogFormat override the defaults of Env when set.
	LogLevel  string `env:"FORMS_LOG_LEVEL"`
	LogFormat string `env:"FORMS_LOG_FORMAT"`

	// Language selects the message language; MessagesFile is a YAML or JSON
	// message catalog. Without a file the built-in English messages are used.
	Language     string `env:"FORMS_LANGUAGE" envDefault:"en"`
	MessagesFile string `env:"FORMS_MESSAGES_FILE"`

	NotifyBuffer int `env:"FORMS_NOTIFY_BUFFER" envDefault:"256"`

	// RedisURL enables the Redis notification relay, e.g. redis://localhost:6379/0.
	RedisURL            string        `env:"FORMS_REDIS_URL"`
	RedisChannel        string        `env:"FORMS_REDIS_CHANNEL" envDefault:"forms:notifications"`
	RedisConnectTimeout time.Duration `env:"FORMS_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	RedisRetryAttempts  int           `env:"FORMS_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RedisRetryInterval  time.Duration `env:"FORMS_REDIS_RETRY_INTERVAL" envDefault:"1s"`

	// TraceExporter is empty (tracing off), "stdout" or "otlp".
	TraceExporter string `env:"FORMS_TRACE_EXPORTER"`
	TraceEndpoint string `env:"FORMS_TRACE_ENDPOINT" envDefault:"http://localhost:4318"`
}

// Validate reports every invalid setting.
func (f Forms) Validate() error {
	var errs []error
	if f.LogLevel != "" {
		if _, err := logger.ParseLevel(f.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("FORMS_LOG_LEVEL: %w", err))
		}
	}
	if f.LogFormat != "" {
		if _, err := logger.ParseFormat(f.LogFormat); err != nil {
			errs = append(errs, fmt.Errorf("FORMS_LOG_FORMAT: %w", err))
		}
	}
	if f.Language == "" {
		errs = append(errs, errors.New("FORMS_LANGUAGE is empty"))
	}
	if f.NotifyBuffer < 1 {
		errs = append(errs, fmt.Errorf("FORMS_NOTIFY_BUFFER must be positive, got %d", f.NotifyBuffer))
	}
	if f.RedisURL != "" && f.RedisChannel == "" {
		errs = append(errs, errors.New("FORMS_REDIS_CHANNEL is required with FORMS_REDIS_URL"))
	}
	switch f.TraceExporter {
	case "", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("FORMS_TRACE_EXPORTER must be stdout or otlp, got %q", f.TraceExporter))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// LoggerOptions translates the logging settings into logger options.
// Call Validate first; unparsable values are ignored here.
func (f Forms) LoggerOptions(service string) []logger.Option {
	opts := []logger.Option{logger.WithEnvironment(f.Env, service)}
	if l, err := logger.ParseLevel(f.LogLevel); f.LogLevel != "" && err == nil {
		opts = append(opts, logger.WithLevel(l))
	}
	if ft, err := logger.ParseFormat(f.LogFormat); f.LogFormat != "" && err == nil {
		opts = append(opts, logger.WithFormat(ft))
	}
	return opts
}

// RedisEnabled reports whether the Redis relay is configured.
func (f Forms) RedisEnabled() bool {
	return f.RedisURL != ""
}

// TracingEnabled reports whether pass spans are exported.
func (f Forms) TracingEnabled() bool {
	return f.TraceExporter != ""
}

func (f Forms) Redis() notify.RedisConfig {
	return notify.RedisConfig{
		URL:            f.RedisURL,
		RetryAttempts:  f.RedisRetryAttempts,
		RetryInterval:  f.RedisRetryInterval,
		ConnectTimeout: f.RedisConnectTimeout,
	}
}

// LogValue keeps the Redis URL, which may hold a password, out of logs.
func (f Forms) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", f.Env),
		slog.String("language", f.Language),
		slog.Bool("redis", f.RedisEnabled()),
		slog.String("redis_channel", f.RedisChannel),
		slog.Int("notify_buffer", f.NotifyBuffer),
		slog.String("trace_exporter", f.TraceExporter),
	)
}
