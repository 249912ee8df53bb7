package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/structlab/internal/command"
)

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.LogOutput == nil {
		opts.LogOutput = io.Discard
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestNew(t *testing.T) {
	app := newTestApp(t, Options{})

	if app.Dispatcher() == nil {
		t.Error("expected non-nil dispatcher")
	}
	if app.Sequencer() == nil {
		t.Error("expected non-nil sequencer")
	}
	if app.Events() == nil {
		t.Error("expected non-nil event feed")
	}
	if app.Logger() == nil {
		t.Error("expected non-nil logger")
	}
	if got := app.Config().Log.Level; got != "info" {
		t.Errorf("expected default log level info, got %q", got)
	}
}

func TestNewInvalidLogLevel(t *testing.T) {
	_, err := New(Options{LogLevel: "loud", LogOutput: io.Discard})
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %T", err)
	}
	if initErr.Component != "config" {
		t.Errorf("expected component config, got %q", initErr.Component)
	}
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, Options{Quiet: true, LogOutput: &buf})

	app.Logger().Info("should not appear")
	if buf.Len() != 0 {
		t.Errorf("expected no log output when quiet, got %q", buf.String())
	}
}

func TestNewConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structlab.toml")
	content := "[log]\nlevel = \"debug\"\n\n[lua]\nenabled = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	app := newTestApp(t, Options{ConfigPath: path})
	if got := app.Config().Log.Level; got != "debug" {
		t.Errorf("expected log level debug, got %q", got)
	}
	if app.Config().Lua.Enabled {
		t.Error("expected lua disabled")
	}
}

func TestExecute(t *testing.T) {
	app := newTestApp(t, Options{})

	cmd, result := app.Execute("create array list with 10, 20, 30")
	if result.IsError() {
		t.Fatalf("Execute() error = %v", result.Error)
	}
	if cmd.Op != command.OpCreate {
		t.Errorf("expected OpCreate, got %v", cmd.Op)
	}
	if result.Message != "created array_list with 3 elements" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if _, ok := result.LinearSnapshot(); !ok {
		t.Error("expected a linear snapshot on the result")
	}
}

func TestExecuteCompileError(t *testing.T) {
	app := newTestApp(t, Options{})

	cmd, result := app.Execute("frobnicate the widget")
	if !result.IsError() {
		t.Fatal("expected an error result")
	}
	if cmd.Op != command.OpNone {
		t.Errorf("expected zero command on compile error, got op %v", cmd.Op)
	}
}

func TestExecuteHandlerError(t *testing.T) {
	app := newTestApp(t, Options{})

	_, result := app.Execute("pop")
	if !result.IsError() {
		t.Fatal("expected an error result")
	}
	if !strings.Contains(result.Error.Error(), "structure not initialized") {
		t.Errorf("unexpected error: %v", result.Error)
	}
}

func TestExecuteBuildRunsToCompletion(t *testing.T) {
	app := newTestApp(t, Options{})

	_, result := app.Execute("build avl with 3, 1, 2")
	if result.IsError() {
		t.Fatalf("Execute() error = %v", result.Error)
	}
	if result.Message != "built avl with 3 nodes" {
		t.Errorf("expected completion message, got %q", result.Message)
	}
	if app.Dispatcher().Session().Building() {
		t.Error("expected build to be finished after Execute")
	}

	_, result = app.Execute("search 2")
	if result.IsError() {
		t.Fatalf("search after build error = %v", result.Error)
	}
	if result.Message != "found 2" {
		t.Errorf("expected found 2, got %q", result.Message)
	}
}

func TestRunScript(t *testing.T) {
	app := newTestApp(t, Options{})

	report := app.RunScript("create stack with 1, 2\npush 9\nbogus line\n")
	if report.Total != 3 {
		t.Errorf("expected 3 statements, got %d", report.Total)
	}
	if report.Succeeded != 2 {
		t.Errorf("expected 2 succeeded, got %d", report.Succeeded)
	}
	if report.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", report.Failed)
	}
}

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	content := "name: stack warmup\ncommands:\n  - create stack with 1, 2\n  - push 9\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	app := newTestApp(t, Options{})
	scenario, report, err := app.RunScenario(path)
	if err != nil {
		t.Fatalf("RunScenario() error = %v", err)
	}
	if scenario.Name != "stack warmup" {
		t.Errorf("expected scenario name, got %q", scenario.Name)
	}
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Errorf("expected 2 ok 0 failed, got %d ok %d failed", report.Succeeded, report.Failed)
	}

	eng := app.Dispatcher().Session().Linear()
	if eng == nil || eng.Len() != 3 {
		t.Error("expected stack with 3 elements after scenario")
	}
}

func TestEventsRecordExecutions(t *testing.T) {
	app := newTestApp(t, Options{})

	app.Execute("create stack with 4, 5")
	app.Execute("push 6")

	records := app.Events().Recent(10)
	if len(records) != 2 {
		t.Fatalf("expected 2 feed records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Source != "typed" {
			t.Errorf("expected source typed, got %q", rec.Source)
		}
	}
	if records[0].Command != "linear.create" {
		t.Errorf("unexpected first record command key: %q", records[0].Command)
	}
}

func TestRunLuaString(t *testing.T) {
	app := newTestApp(t, Options{})

	err := app.RunLuaString(context.Background(), `lab.exec("create stack with 1, 2, 3")`)
	if err != nil {
		t.Fatalf("RunLuaString() error = %v", err)
	}

	eng := app.Dispatcher().Session().Linear()
	if eng == nil {
		t.Fatal("expected a linear structure after lua exec")
	}
	if eng.Len() != 3 {
		t.Errorf("expected 3 elements, got %d", eng.Len())
	}
}

func TestLuaDisabled(t *testing.T) {
	t.Setenv("STRUCTLAB_LUA_ENABLED", "false")
	app := newTestApp(t, Options{})

	err := app.RunLuaString(context.Background(), `lab.size("linear")`)
	if !errors.Is(err, ErrLuaDisabled) {
		t.Errorf("expected ErrLuaDisabled, got %v", err)
	}
	err = app.RunLua(context.Background(), "missing.lua")
	if !errors.Is(err, ErrLuaDisabled) {
		t.Errorf("expected ErrLuaDisabled, got %v", err)
	}
}

func TestReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structlab.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	app := newTestApp(t, Options{ConfigPath: path})

	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	app.reloadConfig(path)

	if got := app.Config().Log.Level; got != "debug" {
		t.Errorf("expected reloaded level debug, got %q", got)
	}
}

func TestReloadConfigInvalidKeepsOld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structlab.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	app := newTestApp(t, Options{ConfigPath: path})

	if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	app.reloadConfig(path)

	if got := app.Config().Log.Level; got != "info" {
		t.Errorf("expected level to stay info after rejected reload, got %q", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Close()
	app.Close()
}
