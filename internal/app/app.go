// Package app wires the structlab components together and manages their
// lifecycle: configuration, logging, the dispatcher with its default
// handlers, the script sequencer, the event feed, the optional Lua
// executor, and the REPL.
package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/config"
	"github.com/dshills/structlab/internal/config/loader"
	"github.com/dshills/structlab/internal/config/watcher"
	"github.com/dshills/structlab/internal/dispatcher"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/dispatcher/session"
	"github.com/dshills/structlab/internal/event"
	"github.com/dshills/structlab/internal/lang"
	luaplugin "github.com/dshills/structlab/internal/plugin/lua"
	"github.com/dshills/structlab/internal/script"
)

// Application is the central coordinator for the structlab components.
type Application struct {
	mu     sync.RWMutex
	config config.Config

	logger *Logger

	dispatcher *dispatcher.Dispatcher
	sequencer  *script.Sequencer
	feed       *event.Feed

	lua     *luaplugin.Executor
	watcher *watcher.Watcher

	closeOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file to load. Empty means
	// defaults plus environment overrides.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Quiet silences all log output.
	Quiet bool

	// LogOutput overrides where logs are written. Defaults to stderr.
	LogOutput io.Writer

	// WatchConfig reloads runtime settings when the config file changes.
	// Only effective with a non-empty ConfigPath.
	WatchConfig bool
}

// New creates an application with the given options.
func New(opts Options) (*Application, error) {
	cfg, err := loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Quiet {
		cfg.Log.Quiet = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &Application{config: cfg}

	// 1. Logger
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(cfg.Log.Level)
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	app.logger = NewLogger(logCfg)
	if cfg.Log.Quiet {
		app.logger.Disable()
	}

	// 2. Dispatcher with the default handler set
	dcfg := dispatcher.DefaultConfig().
		WithPanicRecovery(cfg.Dispatcher.PanicRecovery).
		WithBuildQueueLimit(cfg.Dispatcher.BuildQueueLimit)
	if cfg.Dispatcher.Metrics {
		dcfg = dcfg.WithMetrics()
	}
	app.dispatcher = dispatcher.New(dcfg)
	registerDefaults(app.dispatcher)

	// 3. Event feed, fed from a post-dispatch hook
	app.feed = event.NewFeed(event.WithHistoryLimit(cfg.Feed.HistoryLimit))
	app.dispatcher.RegisterPostHook(dispatcher.PostDispatchFunc(
		func(cmd *command.Command, _ *session.Session, result *handler.Result) {
			app.feed.Publish(event.NewRecord(*cmd, *result))
		}))

	// 4. Sequencer
	app.sequencer = script.NewSequencer(app.dispatcher)

	// 5. Lua executor
	if cfg.Lua.Enabled {
		app.lua = luaplugin.NewExecutor(app.dispatcher,
			luaplugin.WithTimeout(time.Duration(cfg.Lua.TimeoutSeconds)*time.Second))
	}

	// 6. Config watcher
	if opts.WatchConfig && opts.ConfigPath != "" {
		if err := app.watchConfig(opts.ConfigPath); err != nil {
			app.logger.WithComponent("config").Warn("watch failed: %v", err)
		}
	}

	return app, nil
}

// Execute compiles and dispatches one command line. A build command runs
// to completion before Execute returns, so its result is the completion
// result.
func (app *Application) Execute(text string) (command.Command, handler.Result) {
	cmd, err := lang.Compile(text)
	if err != nil {
		return command.Command{}, handler.Error(err)
	}

	result := app.dispatcher.Dispatch(cmd.WithSource(command.SourceTyped))
	if result.IsError() {
		return cmd, result
	}
	for app.dispatcher.Session().Building() {
		step := app.dispatcher.AdvanceBuild()
		if step.IsError() {
			return cmd, step
		}
		result = step
	}
	return cmd, result
}

// RunScript executes multi-line script text and returns the report.
func (app *Application) RunScript(text string) script.Report {
	return app.sequencer.Run(text)
}

// RunScenario loads a YAML scenario file and runs it.
func (app *Application) RunScenario(path string) (*script.Scenario, script.Report, error) {
	return app.sequencer.RunScenarioFile(path)
}

// RunLua executes a Lua script file against the lab API.
func (app *Application) RunLua(ctx context.Context, path string) error {
	if app.lua == nil {
		return ErrLuaDisabled
	}
	return app.lua.RunFile(ctx, path)
}

// RunLuaString executes Lua source text against the lab API.
func (app *Application) RunLuaString(ctx context.Context, code string) error {
	if app.lua == nil {
		return ErrLuaDisabled
	}
	return app.lua.RunString(ctx, code)
}

// watchConfig starts a watcher that applies config changes at runtime.
func (app *Application) watchConfig(path string) error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	w.OnChange(func(changed string) {
		app.reloadConfig(changed)
	})
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return err
	}
	app.watcher = w
	return nil
}

// reloadConfig re-reads the config file and applies the settings that
// can change at runtime: log level and quiet. Structural settings such
// as queue limits and the Lua executor keep their boot values.
func (app *Application) reloadConfig(path string) {
	log := app.logger.WithComponent("config")

	cfg, err := loader.Load(path)
	if err != nil {
		log.Warn("reload failed: %v", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Warn("reload rejected: %v", err)
		return
	}

	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	if cfg.Log.Quiet {
		app.logger.Disable()
	} else {
		app.logger.Enable()
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	log.Info("configuration reloaded from %s", path)
}

// Events returns the command feed.
func (app *Application) Events() *event.Feed {
	return app.feed
}

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Sequencer returns the script sequencer.
func (app *Application) Sequencer() *script.Sequencer {
	return app.sequencer
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Close releases application resources. Safe to call more than once.
func (app *Application) Close() {
	app.closeOnce.Do(func() {
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.WithComponent("config").Warn("watcher close: %v", err)
			}
		}
		if app.lua != nil {
			app.lua.Close()
		}
	})
}
