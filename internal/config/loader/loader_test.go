package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/structlab/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "structlab.toml", `
[dispatcher]
build_queue_limit = 8
metrics = true

[log]
level = "debug"

[feed]
history_limit = 25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Dispatcher.BuildQueueLimit != 8 {
		t.Errorf("BuildQueueLimit = %d, want 8", cfg.Dispatcher.BuildQueueLimit)
	}
	if !cfg.Dispatcher.Metrics {
		t.Error("Metrics should be true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Feed.HistoryLimit != 25 {
		t.Errorf("HistoryLimit = %d, want 25", cfg.Feed.HistoryLimit)
	}
	// Sections absent from the file keep their defaults.
	if !cfg.Dispatcher.PanicRecovery {
		t.Error("PanicRecovery should keep its default")
	}
	if !cfg.Lua.Enabled {
		t.Error("Lua.Enabled should keep its default")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "structlab.yaml", `
dispatcher:
  build_queue_limit: 4
log:
  level: warn
  quiet: true
lua:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Dispatcher.BuildQueueLimit != 4 {
		t.Errorf("BuildQueueLimit = %d, want 4", cfg.Dispatcher.BuildQueueLimit)
	}
	if cfg.Log.Level != "warn" || !cfg.Log.Quiet {
		t.Errorf("Log = %+v, want warn and quiet", cfg.Log)
	}
	if cfg.Lua.Enabled {
		t.Error("Lua.Enabled should be false")
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeFile(t, "structlab.ini", "level=info\n")

	_, err := Load(path)
	if !errors.Is(err, config.ErrUnknownFormat) {
		t.Errorf("Load error = %v, want ErrUnknownFormat", err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, "structlab.toml", "[log\nlevel = \"info\"\n")

	_, err := Load(path)
	var perr *config.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
}
