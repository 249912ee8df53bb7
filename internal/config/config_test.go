package config

import (
	"errors"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if !cfg.Dispatcher.PanicRecovery {
		t.Error("Dispatcher.PanicRecovery should default to true")
	}
	if cfg.Dispatcher.BuildQueueLimit != 0 {
		t.Errorf("Dispatcher.BuildQueueLimit = %d, want 0", cfg.Dispatcher.BuildQueueLimit)
	}
	if cfg.Feed.HistoryLimit != 100 {
		t.Errorf("Feed.HistoryLimit = %d, want 100", cfg.Feed.HistoryLimit)
	}
	if !cfg.Lua.Enabled {
		t.Error("Lua.Enabled should default to true")
	}
	if cfg.Lua.TimeoutSeconds != 5 {
		t.Errorf("Lua.TimeoutSeconds = %d, want 5", cfg.Lua.TimeoutSeconds)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"debug level", func(c *Config) { c.Log.Level = "debug" }, true},
		{"error level", func(c *Config) { c.Log.Level = "error" }, true},
		{"queue limit", func(c *Config) { c.Dispatcher.BuildQueueLimit = 16 }, true},
		{"history disabled", func(c *Config) { c.Feed.HistoryLimit = 0 }, true},
		{"no lua timeout", func(c *Config) { c.Lua.TimeoutSeconds = 0 }, true},
		{"negative queue limit", func(c *Config) { c.Dispatcher.BuildQueueLimit = -1 }, false},
		{"negative lua timeout", func(c *Config) { c.Lua.TimeoutSeconds = -1 }, false},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }, false},
		{"empty level", func(c *Config) { c.Log.Level = "" }, false},
		{"negative history", func(c *Config) { c.Feed.HistoryLimit = -5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() = %v, want ErrValidation", err)
			}
		})
	}
}
