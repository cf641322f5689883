// Package app wires the scrub demo together: it lays configured fields
// out on a surface, binds each one through the registry and rebuilds the
// bindings when the configuration file changes.
package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/scrubbing/internal/config"
	"github.com/dshills/scrubbing/internal/logging"
	"github.com/dshills/scrubbing/internal/renderer/backend"
	"github.com/dshills/scrubbing/internal/scrub"
	"github.com/dshills/scrubbing/internal/scrub/adapter"
	"github.com/dshills/scrubbing/internal/scrub/registry"
	"github.com/dshills/scrubbing/internal/surface"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.Default and
	// disables live reload.
	ConfigPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogFile receives logs when Logger is nil. Empty falls back to the
	// configured logging.file; if that is empty too, logs are discarded.
	LogFile string

	// Logger receives application logs.
	Logger *logging.Logger
}

// Application owns the surface, the registry and the live bindings.
// Bindings and elements are only touched from the surface event loop.
type Application struct {
	mu sync.RWMutex

	opts    Options
	cfg     *config.Config
	logger  *logging.Logger
	backend backend.Backend
	metrics *Metrics
	logFile *os.File

	surface  *surface.Surface
	registry *registry.Registry
	doc      *adapter.Document
	fields   []*field
	status   *surface.Element
	watchIDs []surface.ListenerID

	running atomic.Bool
}

// New creates an application from opts, loading the configuration file
// if one is given.
func New(opts Options) (*Application, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, NewOperationError("load config", opts.ConfigPath, err)
		}
		cfg = loaded
	}

	app := &Application{
		opts:    opts,
		cfg:     cfg,
		metrics: NewMetrics(),
	}

	logger := opts.Logger
	if logger == nil {
		path := opts.LogFile
		if path == "" {
			path = cfg.Logging.File
		}
		if path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, NewOperationError("open log", path, err)
			}
			app.logFile = f
			logger = logging.New(logging.Config{Output: f, Prefix: "scrub"})
		}
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	app.logger = logging.OrNull(logger).WithComponent("app")
	app.logger.SetLevel(logging.ParseLevel(level))

	return app, nil
}

// Close releases the log file, if New opened one.
func (app *Application) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Config returns the configuration currently applied.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Document returns the JSON document shared by json fields, or nil
// before the first build.
func (app *Application) Document() *adapter.Document {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.doc
}

// Metrics returns the scrub activity counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Run builds the bindings and runs the surface until ctx is done or the
// user quits. Quitting is not an error.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.setup(b)
	defer app.teardown()

	if app.opts.ConfigPath != "" {
		w := config.NewWatcher(app.opts.ConfigPath, func() { app.reload(ctx) },
			config.WithWatcherLogger(app.logger))
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	app.logger.Info("running with %d field(s)", len(app.Config().Fields))
	err := app.surface.Run(ctx)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// setup creates the surface and registry and builds the configured
// fields. It runs before the event loop starts.
func (app *Application) setup(b backend.Backend) {
	app.surface = surface.New(b,
		surface.WithLogger(app.logger),
		surface.WithTheme(buildTheme(app.Config().Theme)),
		surface.WithKeyHandler(handleKey),
	)
	app.registry = registry.New(app.surface, app.logger)
	app.build(app.Config())
}

// teardown removes every binding and detaches the registry.
func (app *Application) teardown() {
	app.unbuild()
	app.registry.Close()
}

// reload loads the configuration file again and rebuilds on the event
// loop. A file that fails to load leaves the current bindings in place.
func (app *Application) reload(ctx context.Context) {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		app.logger.Error("%v", NewOperationError("reload", app.opts.ConfigPath, err))
		return
	}
	app.applyLogLevel(cfg)

	err = app.surface.Invoke(ctx, func() {
		app.unbuild()
		app.mu.Lock()
		app.cfg = cfg
		app.mu.Unlock()
		app.surface.SetTheme(buildTheme(cfg.Theme))
		app.build(cfg)
	})
	if err != nil {
		app.logger.Debug("reload skipped: %v", err)
	}
}

// applyLogLevel sets the configured level unless the command line
// overrides it. Every logger derived from app.logger follows.
func (app *Application) applyLogLevel(cfg *config.Config) {
	if lvl := cfg.Logging.Level; lvl != "" && app.opts.LogLevel == "" {
		app.logger.SetLevel(logging.ParseLevel(lvl))
	}
}

func handleKey(ev backend.Event) error {
	switch {
	case ev.Key == backend.KeyEscape, ev.Key == backend.KeyCtrlC:
		return ErrQuit
	case ev.Key == backend.KeyRune && (ev.Rune == 'q' || ev.Rune == 'Q'):
		return ErrQuit
	}
	return nil
}

// Bindings returns the live bindings in field order. Call it from the
// event loop or while the application is not running.
func (app *Application) Bindings() []*scrub.Binding {
	out := make([]*scrub.Binding, 0, len(app.fields))
	for _, f := range app.fields {
		out = append(out, f.binding)
	}
	return out
}
