package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/dispatcher/handler"
)

// Record is one entry in the command feed.
type Record struct {
	// ID uniquely identifies the record.
	ID uuid.UUID `json:"id"`

	// Time is when the command finished dispatching.
	Time time.Time `json:"time"`

	// Source is where the command originated (typed, script, lua,
	// replay).
	Source string `json:"source"`

	// Command is the dispatch key, e.g. "tree.insert".
	Command string `json:"command"`

	// Outcome is the coarse contract outcome, "success" or "error".
	Outcome string `json:"outcome"`

	// Status is the fine-grained handler status (ok, no-op, queued,
	// cancelled, error).
	Status string `json:"status"`

	// Message is the human-readable result message.
	Message string `json:"message,omitempty"`

	// Target names the family the command acted on: "linear", "tree",
	// or "null".
	Target string `json:"target"`
}

// NewRecord builds a feed record from a dispatched command and its
// result.
func NewRecord(cmd command.Command, result handler.Result) Record {
	msg := result.Message
	if msg == "" && result.Error != nil {
		msg = result.Error.Error()
	}

	return Record{
		ID:      uuid.New(),
		Time:    time.Now(),
		Source:  cmd.Source.String(),
		Command: cmd.Key(),
		Outcome: result.Outcome(),
		Status:  result.Status.String(),
		Message: msg,
		Target:  result.TargetString(),
	}
}
