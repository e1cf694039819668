package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/lukas4311/WpfValidation/pkg/config"
	"github.com/lukas4311/WpfValidation/pkg/entity"
	"github.com/lukas4311/WpfValidation/pkg/i18n"
	"github.com/lukas4311/WpfValidation/pkg/logger"
	"github.com/lukas4311/WpfValidation/pkg/notify"
	"github.com/lukas4311/WpfValidation/pkg/telemetry"
	"github.com/lukas4311/WpfValidation/pkg/validation"
)

//go:embed messages.yaml
var builtinMessages []byte

// drainTimeout bounds how long finish waits for relayed notifications.
const drainTimeout = 2 * time.Second

// countingBroadcaster counts the notifications published through it, so the
// watcher knows how many to wait for.
type countingBroadcaster struct {
	notify.Broadcaster
	published atomic.Int64
}

func (b *countingBroadcaster) Publish(ctx context.Context, n notify.Notification) error {
	if err := b.Broadcaster.Publish(ctx, n); err != nil {
		return err
	}
	b.published.Add(1)
	return nil
}

// rootFlags are the flags shared by every form command.
type rootFlags struct {
	envFiles []string
	language string
	watch    bool
	metrics  bool
}

// app holds the runtime shared by the form commands.
type app struct {
	cfg         config.Forms
	log         *slog.Logger
	translator  *i18n.Translator
	broadcaster *countingBroadcaster
	registry    *prometheus.Registry
	metrics     *validation.Metrics
	flags       rootFlags
	out         io.Writer
	errOut      io.Writer

	closers []func(ctx context.Context) error
	stop    func()
}

func newApp(ctx context.Context, flags rootFlags, out, errOut io.Writer) (*app, error) {
	var cfg config.Forms
	if err := config.Parse(&cfg, flags.envFiles...); err != nil {
		return nil, err
	}
	if flags.language != "" {
		cfg.Language = flags.language
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(append(cfg.LoggerOptions(appName), logger.WithOutput(errOut))...)
	a := &app{cfg: cfg, log: log, flags: flags, out: out, errOut: errOut, stop: func() {}}
	log.DebugContext(ctx, "configuration loaded", slog.Any("config", cfg))

	if err := a.setup(ctx); err != nil {
		_ = a.close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *app) setup(ctx context.Context) error {
	messages, err := i18n.ParseYAML(builtinMessages)
	if err != nil {
		return fmt.Errorf("built-in messages: %w", err)
	}
	a.translator, err = i18n.NewTranslator(messages, i18n.WithMissingLog(a.log))
	if err != nil {
		return err
	}
	if a.cfg.MessagesFile != "" {
		if err := a.translator.LoadFile(a.cfg.MessagesFile); err != nil {
			return fmt.Errorf("messages file %s: %w", a.cfg.MessagesFile, err)
		}
	}

	a.registry = prometheus.NewRegistry()
	if a.metrics, err = validation.NewMetrics(a.registry); err != nil {
		return err
	}

	if a.cfg.TracingEnabled() {
		tp, err := telemetry.InitTracer(ctx, appName, a.cfg.TraceExporter, a.cfg.TraceEndpoint,
			telemetry.WithWriter(a.errOut))
		if err != nil {
			return err
		}
		a.closers = append(a.closers, tp.Shutdown)
	}

	if a.cfg.RedisEnabled() {
		client, err := notify.ConnectRedis(ctx, a.cfg.Redis())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })

		b, err := notify.NewRedisBroadcaster(client, a.cfg.RedisChannel,
			notify.WithRedisBuffer(a.cfg.NotifyBuffer), notify.WithRedisLogger(a.log))
		if err != nil {
			return err
		}
		a.broadcaster = &countingBroadcaster{Broadcaster: b}
	} else {
		a.broadcaster = &countingBroadcaster{Broadcaster: notify.NewMemoryBroadcaster(a.cfg.NotifyBuffer)}
	}
	a.closers = append(a.closers, func(context.Context) error { return a.broadcaster.Close() })

	if a.flags.watch {
		return a.watch(ctx)
	}
	return nil
}

// entityOptions wires the shared runtime into a form's entity.
func (a *app) entityOptions() []entity.Option {
	return []entity.Option{
		entity.WithLogger(a.log),
		entity.WithMetrics(a.metrics),
		entity.WithTranslator(a.translator, a.translator.Match(a.cfg.Language)),
		entity.WithBroadcaster(a.broadcaster),
		entity.WithFeedBuffer(a.cfg.NotifyBuffer),
	}
}

// watch prints every notification of the feed to errOut.
func (a *app) watch(ctx context.Context) error {
	sub, err := a.broadcaster.Subscribe(ctx)
	if err != nil {
		return err
	}
	var received atomic.Int64
	caughtUp := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range sub.C() {
			received.Add(1)
			select {
			case caughtUp <- struct{}{}:
			default:
			}
			line := n.Kind.String()
			if n.Property != "" {
				line += " " + n.Property
			}
			if n.Kind == notify.ValidationStateChanged {
				line += fmt.Sprintf(" running=%t", n.Running)
			}
			fmt.Fprintf(a.errOut, "notification: %s\n", line)
		}
	}()
	var once sync.Once
	a.stop = func() {
		once.Do(func() {
			a.drain(&received, caughtUp)
			_ = sub.Close()
			<-done
		})
	}
	return nil
}

// drain waits until the watcher received every notification published so
// far, or drainTimeout passed. Relayed notifications arrive after Publish
// returns.
func (a *app) drain(received *atomic.Int64, caughtUp <-chan struct{}) {
	timeout := time.NewTimer(drainTimeout)
	defer timeout.Stop()
	for received.Load() < a.broadcaster.published.Load() {
		select {
		case <-caughtUp:
		case <-timeout.C:
			a.log.Warn("stopped watching before every notification arrived",
				slog.Int64("published", a.broadcaster.published.Load()),
				slog.Int64("received", received.Load()))
			return
		}
	}
}

// finish stops watching after the form's feed was drained and prints the
// metrics when asked to.
func (a *app) finish() error {
	a.stop()
	if !a.flags.metrics {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(a.out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	a.stop()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
