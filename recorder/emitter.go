package recorder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Stdout is the output destination sentinel meaning "write records to the
// standard output stream".
const Stdout = "stdout"

// Emitter serializes events as newline-delimited JSON to an append-only
// sink. A zero Emitter is disabled: every Emit and Append is a no-op.
type Emitter struct {
	out    io.Writer
	closer io.Closer
	filter *PathFilter
}

// newEmitter attaches the emitter to its sink. destination is a file path or
// the Stdout sentinel; when w is non-nil it takes precedence (used by hosts
// that own the sink, and by tests).
func newEmitter(destination string, w io.Writer, filter *PathFilter) (*Emitter, error) {
	e := &Emitter{filter: filter}
	switch {
	case w != nil:
		e.out = w
	case destination == Stdout:
		e.out = os.Stdout
	case destination != "":
		f, err := os.Create(destination)
		if err != nil {
			return nil, fmt.Errorf("failed to open graph output %s: %w", destination, err)
		}
		e.out = f
		e.closer = f
	}
	return e, nil
}

func (e *Emitter) enabled() bool {
	return e != nil && e.out != nil
}

// Emit writes event iff scopeFile is in scope. The record carries scopeFile
// as its "file" field.
func (e *Emitter) Emit(event Event, scopeFile string) error {
	if !e.enabled() {
		return nil
	}
	if scopeFile == "" {
		// No file is known for this event; only an unrestricted filter
		// can accept it.
		if len(e.filter.roots) > 0 {
			return nil
		}
	} else if !e.filter.InScope(scopeFile) {
		return nil
	}
	return e.Append(event, scopeFile)
}

// Append writes event unconditionally (when enabled), attaching file as the
// record's "file" field. Callers use it after deciding scope themselves, as
// reference and call edges are scoped on their destination rather than on
// the emitting file.
func (e *Emitter) Append(event Event, file string) error {
	if !e.enabled() {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type(), err)
	}
	record := map[string]any{"type": event.Type()}
	if err := json.Unmarshal(payload, &record); err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type(), err)
	}
	if file != "" {
		record["file"] = file
	}
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type(), err)
	}
	if _, err := e.out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write graph record: %w", err)
	}
	return nil
}

// Close releases the sink when the emitter owns it. Standard output and
// caller-supplied writers are left open.
func (e *Emitter) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}
