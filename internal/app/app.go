// Package app provides the main application structure and coordination
// for the trilex editor. It wires the dictionary rows, the reorder
// controller, the grid, the store and the translator together and runs
// the terminal event loop.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/trilex/internal/config"
	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/event"
	"github.com/dshills/trilex/internal/input/mouse"
	"github.com/dshills/trilex/internal/plugin/keyscript"
	"github.com/dshills/trilex/internal/renderer/backend"
	"github.com/dshills/trilex/internal/renderer/grid"
	"github.com/dshills/trilex/internal/renderer/statusline"
	"github.com/dshills/trilex/internal/store"
	"github.com/dshills/trilex/internal/translate"
)

// Application is the central coordinator for all trilex components.
// Everything below the State marker is owned by the event loop goroutine.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	eventBus event.Bus
	subs     *subscriptionManager
	config   *config.Config
	logger   *Logger
	logFile  io.Closer
	metrics  *Metrics

	// Collaborators
	store      store.Store
	watcher    *store.Watcher
	translator *translate.Translator
	keyScript  *keyscript.Script

	// Editor components
	backend backend.Backend
	grid    *grid.Grid
	status  *statusline.StatusLine
	mouse   *mouse.Handler
	rows    *drag.Controller[dictionary.Row]

	// State
	fields      []dictionary.Field
	cursor      grid.Cursor
	editing     bool
	editText    []rune
	modified    bool
	generation  int
	quitArmed   bool
	saving      bool
	bulk        bool
	busy        map[string]bool
	deferred    []any
	dragY       int
	dragCount   int
	lastPreview drag.Preview

	ctx      context.Context
	cancel   context.CancelFunc
	running  atomic.Bool
	results  chan any
	done     chan struct{}
	doneOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means the
	// default location.
	ConfigPath string

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// Debug enables debug mode with extra logging.
	Debug bool

	// LogLevel overrides the configured log level.
	LogLevel string

	// ReadOnly opens the dictionary without editing.
	ReadOnly bool

	// Store overrides the configured store.
	Store store.Store

	// Translator overrides the configured translation provider.
	Translator *translate.Translator

	// Logger overrides the configured log file.
	Logger *Logger
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		opts:    opts,
		results: make(chan any, resultQueueSize),
		done:    make(chan struct{}),
		busy:    make(map[string]bool),
		metrics: NewMetrics(),
		ctx:     ctx,
		cancel:  cancel,
	}

	if err := app.bootstrap(); err != nil {
		app.shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	if err := app.setupLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	// 3. Event bus
	app.eventBus = event.NewBus(
		event.WithPanicRecovery(true),
		event.WithErrorHandler(func(herr *event.HandlerError) {
			app.logComponentError("event", herr)
		}),
	)

	// 4. Store
	app.store = app.opts.Store
	if app.store == nil {
		st, err := store.Open(cfg.Store)
		if err != nil {
			return &InitError{Component: "store", Err: err}
		}
		app.store = st
	}

	// 5. Translator, optionally with a key script
	if err := app.setupTranslator(); err != nil {
		return err
	}

	// 6. Grid, status line and input
	fields, err := cfg.Editor.ParseFields()
	if err != nil {
		return &InitError{Component: "grid", Err: err}
	}
	if len(fields) == 0 {
		fields = dictionary.Fields
	}
	theme, err := grid.NewTheme(grid.ThemeColors{
		Background: cfg.Theme.Background,
		Foreground: cfg.Theme.Foreground,
		Accent:     cfg.Theme.Accent,
		Error:      cfg.Theme.Error,
	})
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.fields = fields
	app.grid = grid.New(grid.Options{MaxLines: cfg.Editor.MaxLines, Fields: fields}, theme)
	app.cursor = grid.Cursor{Row: 0, Field: fields[0]}
	app.status = statusline.New()
	app.status.SetStore(app.store.Name())
	if app.translator != nil {
		app.status.SetModel(app.translator.Provider().Model())
	}
	app.mouse = mouse.NewHandler(mouse.DefaultConfig())

	// 7. Reorder controller
	app.rows = drag.NewController(app.eventBus, app.grid, []dictionary.Row(dictionary.Blank()),
		drag.WithPolicy(cfg.Editor.Policy()),
		drag.WithPreviewMove(app.onPreviewMove),
		drag.WithMoveRows(app.onMoveRows),
	)
	app.grid.SetRows(app.sequence())

	// 8. Subscriptions
	app.subs = newSubscriptionManager(app)
	if err := app.subs.setupSubscriptions(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	app.Logger().Info("ready: store=%s read-only=%t", app.store.Name(), app.readOnly())
	return nil
}

func (app *Application) setupLogger() error {
	level := app.config.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	if app.opts.Debug {
		level = "debug"
	}

	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
		app.logger.SetLevel(ParseLogLevel(level))
		return nil
	}

	f, err := OpenLogFile(app.config.Log.File)
	if err != nil {
		return err
	}
	app.logFile = f
	app.logger = NewLogger(LoggerConfig{Level: ParseLogLevel(level), Output: f, Prefix: "trilex"})
	SetLogger(app.logger)
	return nil
}

func (app *Application) setupTranslator() error {
	if app.opts.Translator != nil {
		app.translator = app.opts.Translator
		return nil
	}

	t, script, err := OpenTranslator(app.ctx, app.config)
	switch {
	case errors.Is(err, translate.ErrNoAPIKey):
		app.Logger().Warn("translation disabled: %v", err)
		return nil
	case err != nil:
		return err
	}
	app.translator = t
	app.keyScript = script
	return nil
}

// OpenTranslator builds the configured translator, with the key script
// attached when one is set. The caller closes the returned script, which
// is nil without one. A missing API key is reported as
// translate.ErrNoAPIKey.
func OpenTranslator(ctx context.Context, cfg *config.Config) (*translate.Translator, *keyscript.Script, error) {
	var (
		opts   []translate.Option
		script *keyscript.Script
	)
	if path := cfg.Keys.Script; path != "" {
		s, err := keyscript.LoadFile(path)
		if err != nil {
			return nil, nil, &InitError{Component: "key script", Err: err}
		}
		script = s
		opts = append(opts, translate.WithKeyFunc(script.Make))
	}

	provider, err := translate.NewProvider(ctx, cfg.Translate)
	if err != nil {
		if script != nil {
			script.Close()
		}
		if errors.Is(err, translate.ErrNoAPIKey) {
			return nil, nil, err
		}
		return nil, nil, &InitError{Component: "translator", Err: err}
	}
	return translate.New(provider, opts...), script, nil
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

// Run loads the dictionary and runs the event loop until the user quits
// or Shutdown is called. A user quit returns ErrQuit. An application runs
// at most once; call Close afterwards.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := app.Load(); err != nil {
		return err
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	defer app.Shutdown()

	app.resize(b.Size())
	app.startWatcher()
	return app.eventLoop()
}

// Load replaces the rows with the store's contents. It is called by Run
// and may be called before it.
func (app *Application) Load() error {
	ctx, cancel := app.storeContext()
	defer cancel()

	snap, err := app.store.Load(ctx)
	if err != nil {
		return NewOperationError("load", app.store.Name(), err)
	}
	app.replaceRows(dictionary.FromSnapshot(snap))
	app.publishStore(TopicStoreLoaded)
	return nil
}

func (app *Application) startWatcher() {
	dir, ok := app.store.(*store.Dir)
	if !ok || !app.config.Store.Watch {
		return
	}
	w, err := dir.Watch(func() {
		app.post(reloadRequest{})
	}, store.WithWatchErrors(func(err error) {
		app.logComponentError("watch", err)
	}))
	if err != nil {
		app.logComponentError("watch", err)
		return
	}
	app.watcher = w
}

// Shutdown stops the event loop and releases every component. It is safe
// to call more than once and from any goroutine.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
		app.mu.Lock()
		b := app.backend
		app.mu.Unlock()
		if b != nil {
			b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: wakeup{}})
		}
	})
}

// shutdown performs cleanup in reverse initialization order.
func (app *Application) shutdown() {
	if app.cancel != nil {
		app.cancel()
	}
	if app.rows != nil {
		app.rows.Close()
	}
	if app.subs != nil {
		app.subs.cleanup()
	}
	if app.store != nil {
		app.logComponentError("store", app.store.Close())
	}
	if app.keyScript != nil {
		app.keyScript.Close()
	}
	if app.logger != nil {
		s := app.metrics.Snapshot()
		app.logger.Info("session: events=%d moves=%d rows-moved=%d translations=%d failed=%d saves=%d avg-render=%s",
			s.Events, s.Moves, s.MovedRows, s.Translations, s.Failures, s.Saves, s.AvgRender)
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// Close releases all resources. The application cannot be run again.
func (app *Application) Close() {
	app.Shutdown()
	app.shutdown()
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// EventBus returns the event bus.
func (app *Application) EventBus() event.Bus {
	return app.eventBus
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Metrics returns the session counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Rows returns the current row order.
func (app *Application) Rows() dictionary.Sequence {
	return app.sequence()
}

// Modified reports whether there are unsaved changes.
func (app *Application) Modified() bool {
	return app.modified
}

func (app *Application) sequence() dictionary.Sequence {
	return dictionary.Sequence(app.rows.Rows())
}

func (app *Application) readOnly() bool {
	return app.opts.ReadOnly || app.config.Editor.ReadOnly
}

func (app *Application) storeContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(app.config.Store.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		return context.WithCancel(app.ctx)
	}
	return context.WithTimeout(app.ctx, timeout)
}
