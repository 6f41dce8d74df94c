package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/five82/dnsdeck/internal/actions"
	"github.com/five82/dnsdeck/internal/busy"
	"github.com/five82/dnsdeck/internal/config"
	"github.com/five82/dnsdeck/internal/logging"
	"github.com/five82/dnsdeck/internal/metrics"
	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/prefs"
	"github.com/five82/dnsdeck/internal/resolvex"
	"github.com/five82/dnsdeck/internal/state"
	"github.com/five82/dnsdeck/internal/syncer"
	"github.com/five82/dnsdeck/internal/transport"
	"github.com/five82/dnsdeck/internal/ui"
	"github.com/five82/dnsdeck/internal/view"
)

// Options configure the dnsdeck application. Zero values fall back to the
// config file, then to built-in defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/dnsdeck/prefs.toml
	APIURL     string
	PollEvery  time.Duration
	LogLevel   string
	LogFormat  string

	// Stderr receives logs for one-shot commands. Defaults to os.Stderr.
	Stderr io.Writer
}

// LoadConfig reads the config file and applies the overrides in opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(opts.LogFormat)); v != "" {
		if v != config.LogFormatConsole && v != config.LogFormatJSON {
			return config.Config{}, fmt.Errorf("load config: log format: unknown format %q", opts.LogFormat)
		}
		cfg.LogFormat = v
	}
	return cfg, nil
}

// engine is everything below the UI: transport, counters, alerts, store,
// synchronizer and mutations.
type engine struct {
	cfg       config.Config
	logger    *slog.Logger
	transport *transport.Instrumented
	counter   *busy.Counter
	alerts    *notify.Queue
	store     *state.Store
	client    *resolvex.Client
	syncer    *syncer.Synchronizer
	metrics   *metrics.Metrics
	actions   *actions.Service
}

func newEngine(cfg config.Config, logger *slog.Logger) (*engine, error) {
	m := metrics.New()

	tr := transport.NewInstrumented(resolvex.NewHTTPClient(cfg.RequestTimeout))
	counter := &busy.Counter{}
	tr.Subscribe(counter)
	tr.Subscribe(m)

	client, err := resolvex.NewClient(cfg.APIURL, tr)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	queue := notify.New(cfg.AlertTTL, nil)
	pusher := m.CountAlerts(queue)
	store := &state.Store{}

	sync, err := syncer.New(syncer.Options{
		Fetcher:  client,
		Store:    store,
		Alerts:   pusher,
		Logger:   logger.With(slog.String("component", "syncer")),
		Reporter: m,
	})
	if err != nil {
		return nil, err
	}

	return &engine{
		cfg:       cfg,
		logger:    logger,
		transport: tr,
		counter:   counter,
		alerts:    queue,
		store:     store,
		client:    client,
		syncer:    sync,
		metrics:   m,
		actions: &actions.Service{
			Client: client,
			Sync:   sync,
			Alerts: pusher,
			Logger: logger.With(slog.String("component", "actions")),
		},
	}, nil
}

// changes returns a channel that receives a signal whenever the snapshot,
// the alerts, the busy count or the sync phase moves. Signals coalesce: a
// reader that falls behind sees one pending signal, not one per change. The
// hooks can run under other locks, so sends never block.
func (e *engine) changes() <-chan struct{} {
	ch := make(chan struct{}, 1)
	poke := func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	e.store.Subscribe(func(state.Snapshot) { poke() })
	e.alerts.OnChange(poke)
	e.counter.OnChange(func(int) { poke() })
	e.syncer.OnPhaseChange(func(syncer.Phase) { poke() })
	return ch
}

// Run boots the dnsdeck TUI until the operator quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Path:  cfg.LogFile,
		Level: cfg.LogLevel,
		JSON:  cfg.LogFormat == config.LogFormatJSON,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	eng, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer eng.alerts.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	predicate := &view.Predicate{}
	predicate.Set(userPrefs.Filter)

	confirm := ui.NewConfirmBridge()
	defer confirm.Close()
	eng.actions.Confirm = confirm

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := eng.metrics.Serve(runCtx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	logger.Info("dnsdeck starting",
		slog.String("api", eng.client.BaseURL()),
		slog.Duration("poll_interval", cfg.PollInterval),
		slog.Duration("alert_ttl", eng.alerts.TTL()))

	changes := eng.changes()
	pollerDone := syncer.StartPoller(runCtx, eng.syncer, cfg.PollInterval, nil, logger)

	err = ui.Run(runCtx, ui.Options{
		Store:     eng.store,
		Alerts:    eng.alerts,
		Busy:      eng.counter,
		Phase:     eng.syncer,
		Sync:      eng.syncer,
		Actions:   eng.actions,
		Confirm:   confirm,
		Predicate: predicate,
		APIURL:    eng.client.BaseURL(),
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Changes:   changes,
	})

	cancel()
	<-pollerDone
	logger.Info("dnsdeck stopped")
	return err
}

// Once runs a single sync cycle and returns the resulting snapshot. Logs go
// to opts.Stderr. A payload without a record list leaves the snapshot
// without data rather than failing. Once backs the one-shot CLI commands.
func Once(ctx context.Context, opts Options) (state.Snapshot, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return state.Snapshot{}, err
	}

	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	logger, closeLog, err := logging.New(logging.Options{
		Writer: w,
		Level:  cfg.LogLevel,
		JSON:   cfg.LogFormat == config.LogFormatJSON,
	})
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	eng, err := newEngine(cfg, logger)
	if err != nil {
		return state.Snapshot{}, err
	}
	defer eng.alerts.Close()

	if _, err := eng.syncer.RefreshResult(ctx); err != nil {
		return state.Snapshot{}, fmt.Errorf("sync: %w", err)
	}
	return eng.store.Snapshot(), nil
}
