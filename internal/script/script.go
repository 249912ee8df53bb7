// Package script runs multi-command text through the pipeline. A script
// is split into single statements on newlines and semicolons, comment
// lines are stripped, and the statements execute in order. A failing
// statement never aborts the rest; the report carries every outcome.
//
// The sequencer is also the build driver: after each statement it pulls
// any build in progress to completion, so scripts observe builds as
// synchronous operations.
package script

import (
	"strings"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher"
	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/lang"
)

// Statement is one executable command extracted from a script.
type Statement struct {
	// Line is the 1-based source line the statement came from.
	// Statements split from the same line by semicolons share it.
	Line int

	// Text is the trimmed command text.
	Text string
}

// Split breaks script text into statements. Lines are split on
// semicolons; blank lines and lines starting with # are dropped.
func Split(text string) []Statement {
	var statements []Statement

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, part := range strings.Split(trimmed, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			statements = append(statements, Statement{Line: i + 1, Text: part})
		}
	}
	return statements
}

// Outcome is the result of one statement.
type Outcome struct {
	Line   int
	Text   string
	Result handler.Result
}

// Report aggregates a script run.
type Report struct {
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []Outcome
}

// Sequencer executes scripts against a dispatcher.
type Sequencer struct {
	dispatcher *dispatcher.Dispatcher
}

// NewSequencer creates a sequencer bound to the dispatcher.
func NewSequencer(d *dispatcher.Dispatcher) *Sequencer {
	return &Sequencer{dispatcher: d}
}

// Run executes every statement in the script and returns the report.
func (s *Sequencer) Run(text string) Report {
	var report Report

	for _, stmt := range Split(text) {
		result := s.runStatement(stmt.Text)

		report.Total++
		if result.IsError() {
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Outcomes = append(report.Outcomes, Outcome{
			Line:   stmt.Line,
			Text:   stmt.Text,
			Result: result,
		})
	}
	return report
}

// runStatement compiles and dispatches one statement, then drains any
// build it started. A build command's outcome is the completion result,
// which carries the full trace.
func (s *Sequencer) runStatement(text string) handler.Result {
	cmd, err := lang.Compile(text)
	if err != nil {
		return handler.Error(err)
	}

	result := s.dispatcher.Dispatch(cmd.WithSource(command.SourceScript))
	if result.IsError() {
		return result
	}

	for s.dispatcher.Session().Building() {
		step := s.dispatcher.AdvanceBuild()
		if step.IsError() {
			return step
		}
		result = step
	}
	return result
}
