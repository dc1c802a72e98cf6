package audit

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Event records one pipeline action worth auditing: key generation,
// signing, verification, chain appends.
type Event struct {
	Timestamp time.Time
	EventType string // e.g. "KeyGeneration", "SignatureVerification", "BlockAppend"
	EntityID  string // participant name, address, or block hash
	Result    string // "success" or "failure"
	Reason    string // error message or reason code
	Metadata  map[string]string
}

// Logger is the interface for recording audit events.
type Logger interface {
	LogEvent(event Event)
}

// WriterLogger writes one line per event to an io.Writer.
type WriterLogger struct {
	Out io.Writer
}

func (l *WriterLogger) LogEvent(event Event) {
	fmt.Fprintf(l.Out, "[%s] [%s] Entity: %s, Result: %s, Reason: %s, Metadata: %+v\n",
		event.Timestamp.Format(time.RFC3339), event.EventType, event.EntityID,
		event.Result, event.Reason, event.Metadata)
}

// NewStdoutLogger returns a Logger writing to stdout.
func NewStdoutLogger() Logger {
	return &WriterLogger{Out: os.Stdout}
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) LogEvent(Event) {}
