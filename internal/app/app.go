package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kataras/golog"

	"github.com/dshills/inputtrack/internal/config"
	"github.com/dshills/inputtrack/internal/input"
	"github.com/dshills/inputtrack/internal/platform/terminal"
	"github.com/dshills/inputtrack/internal/script"
	"github.com/dshills/inputtrack/internal/watcher"
)

// Options holds command-line overrides. Zero values leave the configured
// value alone.
type Options struct {
	ConfigPath string
	Exclusive  *bool
	ScriptPath string
	LogLevel   string
	LogFile    string
	FPS        int

	// Screen replaces the controlling terminal, for tests.
	Screen tcell.Screen

	// LogOutput replaces the configured log destination.
	LogOutput io.Writer
}

// App is a terminal host around one input tracker.
type App struct {
	opts   Options
	config config.Config

	log    *golog.Logger
	closer io.Closer

	term    *terminal.Terminal
	tracker *input.Tracker
	script  *script.Host
	watcher *watcher.Watcher

	status    string
	lastFrame time.Time
	quit      bool

	mu       sync.Mutex
	running  bool
	shutdown sync.Once
}

// New loads configuration and builds every component. The screen is
// initialized but no frames run until Run.
func New(opts Options) (*App, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, closer, err := NewLogger(cfg.Logging, opts.LogOutput)
	if err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			closer.Close()
			return nil, NewOperationError("open", "terminal", err)
		}
	}

	term := terminal.New(screen, terminal.Config{
		FrameRate:       cfg.Terminal.FrameRate,
		KeyReleaseDelay: cfg.Terminal.KeyReleaseDelay.Std(),
		WheelStep:       cfg.Terminal.WheelStep,
	}, nil)
	if err := term.Init(); err != nil {
		closer.Close()
		return nil, NewOperationError("init", "terminal", err)
	}

	a := &App{
		opts:   opts,
		config: cfg,
		log:    logger,
		closer: closer,
		term:   term,
	}

	a.tracker = input.New(term, term, term,
		input.WithExclusiveCapture(cfg.Input.ExclusiveCapture),
		input.WithLogger(logger.Child("[input]")),
	)
	logger.Infof("tracker %s started, exclusive=%t", a.tracker.ID(), cfg.Input.ExclusiveCapture)

	if cfg.Script.Path != "" {
		a.script = script.New(a.tracker, script.WithLogger(logger.Child("[script]")))
		if err := a.script.Load(cfg.Script.Path); err == nil {
			logger.Infof("loaded script %s", cfg.Script.Path)
		}
	}

	a.startWatcher()
	return a, nil
}

// resolveConfig layers the config file, the environment and opts.
func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, NewOperationError("load", opts.ConfigPath, err)
	}
	if err := config.ApplyEnv(&cfg, config.EnvPrefix); err != nil {
		return cfg, NewOperationError("load", "environment", err)
	}

	if opts.Exclusive != nil {
		cfg.Input.ExclusiveCapture = *opts.Exclusive
	}
	if opts.ScriptPath != "" {
		cfg.Script.Path = opts.ScriptPath
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}
	if opts.FPS != 0 {
		cfg.Terminal.FrameRate = opts.FPS
	}

	if err := cfg.Validate(); err != nil {
		return cfg, NewOperationError("validate", "config", err)
	}
	return cfg, nil
}

func (a *App) startWatcher() {
	watchScript := a.script != nil && a.config.Script.Watch
	watchConfig := a.opts.ConfigPath != ""
	if !watchScript && !watchConfig {
		return
	}

	log := a.log.Child("[watch]")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warnf("%v", err)
	}))
	if err != nil {
		log.Warnf("file watching disabled: %v", err)
		return
	}
	a.watcher = w

	// Handlers run on a watcher goroutine; reloads are posted to the loop.
	if watchScript {
		if err := w.Watch(a.config.Script.Path, func(string) {
			_ = a.term.Post(a.reloadScript)
		}); err != nil {
			log.Warnf("watch %s: %v", a.config.Script.Path, err)
		}
	}
	if watchConfig {
		if err := w.Watch(a.opts.ConfigPath, func(string) {
			_ = a.term.Post(a.reloadConfig)
		}); err != nil {
			log.Warnf("watch %s: %v", a.opts.ConfigPath, err)
		}
	}
}

func (a *App) reloadScript() {
	if a.script == nil {
		return
	}
	if err := a.script.Load(a.config.Script.Path); err == nil {
		a.log.Infof("reloaded script %s", a.config.Script.Path)
	}
}

// reloadConfig re-reads the config file. Only the log level is applied
// live; other settings take effect on restart.
func (a *App) reloadConfig() {
	cfg, err := resolveConfig(a.opts)
	if err != nil {
		a.log.Warnf("reload: %v", err)
		return
	}
	if cfg.Logging.Level != a.config.Logging.Level {
		a.log.SetLevel(levelName(cfg.Logging.Level))
		a.log.Infof("log level now %s", cfg.Logging.Level)
	}
	a.config.Logging.Level = cfg.Logging.Level
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config { return a.config }

// Tracker returns the input tracker.
func (a *App) Tracker() *input.Tracker { return a.tracker }

// Terminal returns the terminal platform.
func (a *App) Terminal() *terminal.Terminal { return a.term }

// Status returns the most recently drawn status line.
func (a *App) Status() string { return a.status }

// Run owns the event loop until Ctrl+C or ctx is done, then shuts down.
// A normal exit returns ErrQuit.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.mu.Unlock()

	defer a.Shutdown()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.term.Post(func() { a.quit = true })
		case <-done:
		}
	}()

	a.lastFrame = time.Now()
	a.term.RequestFrame(a.render)
	a.term.Start()

	for !a.quit {
		ev := a.term.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ev)
	}
	return ErrQuit
}

func (a *App) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			a.quit = true
			return
		}
	case *tcell.EventResize:
		a.term.Sync()
	}
	a.term.Dispatch(ev)
}

// render draws the status line and re-arms itself for the next frame.
func (a *App) render() {
	now := time.Now()
	dt := now.Sub(a.lastFrame)
	a.lastFrame = now

	a.status = a.statusLine(dt)

	a.term.Clear()
	a.term.DrawOutline()
	a.term.DrawText(1, 1, a.status)
	if a.tracker.Exclusive() {
		hint := "click to capture"
		if a.tracker.Active() {
			hint = "esc to release"
		}
		a.term.DrawText(1, 2, hint+", ctrl+c to quit")
	}
	a.term.Show()

	a.term.RequestFrame(a.render)
}

func (a *App) statusLine(dt time.Duration) string {
	if a.script != nil && a.script.Loaded() {
		line, err := a.script.Frame(dt)
		if err != nil {
			return "script error: " + err.Error()
		}
		return line
	}
	return script.Describe(a.tracker)
}

// Shutdown releases every component and restores the terminal. It is safe
// to call more than once.
func (a *App) Shutdown() {
	a.shutdown.Do(func() {
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		a.tracker.Close()
		if a.script != nil {
			_ = a.script.Close()
		}
		a.term.Shutdown()
		a.log.Infof("shutdown")
		_ = a.closer.Close()
	})
}
