package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt is printed before each REPL input line.
const Prompt = "structlab> "

// REPL reads command lines, executes them, and prints rendered results.
type REPL struct {
	app *Application
	in  io.Reader
	out io.Writer
}

// NewREPL creates a REPL bound to the application.
func NewREPL(app *Application, in io.Reader, out io.Writer) *REPL {
	return &REPL{app: app, in: in, out: out}
}

// Run reads and executes lines until EOF, an exit command, or context
// cancellation.
func (r *REPL) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.out, Prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if r.execute(line) {
				return nil
			}
		}
	}
}

// execute runs one input line. Returns true when the line asks to leave.
func (r *REPL) execute(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case "exit", "quit":
		return true
	}

	_, result := r.app.Execute(line)
	fmt.Fprintln(r.out, RenderResult(result))
	return false
}
