package config

import (
	"fmt"
)

// Config holds the full structlab configuration. The zero value is not
// usable; start from Default and overlay file and environment settings
// through the loader package.
type Config struct {
	Dispatcher DispatcherConfig `toml:"dispatcher" yaml:"dispatcher"`
	Log        LogConfig        `toml:"log" yaml:"log"`
	Feed       FeedConfig       `toml:"feed" yaml:"feed"`
	Lua        LuaConfig        `toml:"lua" yaml:"lua"`
}

// DispatcherConfig controls command execution.
type DispatcherConfig struct {
	// BuildQueueLimit caps the number of commands queued behind a build
	// in progress. Zero means unbounded.
	BuildQueueLimit int `toml:"build_queue_limit" yaml:"build_queue_limit"`

	// PanicRecovery converts handler panics into error results.
	PanicRecovery bool `toml:"panic_recovery" yaml:"panic_recovery"`

	// Metrics enables per-command dispatch metrics.
	Metrics bool `toml:"metrics" yaml:"metrics"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level"`

	// Quiet suppresses all log output.
	Quiet bool `toml:"quiet" yaml:"quiet"`
}

// FeedConfig controls the command event feed.
type FeedConfig struct {
	// HistoryLimit is the number of recent records the feed retains.
	// Zero disables history.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit"`
}

// LuaConfig controls the Lua scripting surface.
type LuaConfig struct {
	// Enabled allows Lua scripts to run.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// TimeoutSeconds bounds a single Lua run. Zero means no limit.
	TimeoutSeconds int `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Dispatcher: DispatcherConfig{
			BuildQueueLimit: 0,
			PanicRecovery:   true,
			Metrics:         false,
		},
		Log: LogConfig{
			Level: "info",
			Quiet: false,
		},
		Feed: FeedConfig{
			HistoryLimit: 100,
		},
		Lua: LuaConfig{
			Enabled:        true,
			TimeoutSeconds: 5,
		},
	}
}

// logLevels are the accepted Log.Level values.
var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for values no component can honor.
func (c Config) Validate() error {
	if c.Dispatcher.BuildQueueLimit < 0 {
		return fmt.Errorf("%w: dispatcher.build_queue_limit must not be negative, got %d",
			ErrValidation, c.Dispatcher.BuildQueueLimit)
	}
	if !logLevels[c.Log.Level] {
		return fmt.Errorf("%w: log.level must be debug, info, warn, or error, got %q",
			ErrValidation, c.Log.Level)
	}
	if c.Feed.HistoryLimit < 0 {
		return fmt.Errorf("%w: feed.history_limit must not be negative, got %d",
			ErrValidation, c.Feed.HistoryLimit)
	}
	if c.Lua.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: lua.timeout_seconds must not be negative, got %d",
			ErrValidation, c.Lua.TimeoutSeconds)
	}
	return nil
}
