package depgraph

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Record is one decoded line of a code-graph event stream. The stream is a
// flat union: Type selects which of the remaining fields are meaningful.
// Unknown additive fields are ignored so newer producers stay readable.
type Record struct {
	Type     string `json:"type"`
	File     string `json:"file,omitempty"`
	Module   string `json:"module,omitempty"`
	Importer string `json:"importer,omitempty"`
	Importee string `json:"importee,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Src      string `json:"src,omitempty"`
	Dst      string `json:"dst,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Caller   string `json:"caller,omitempty"`
	Callee   string `json:"callee,omitempty"`
}

// Record types produced by the recorder.
const (
	TypeModule      = "module"
	TypeImport      = "import"
	TypeInvalidate  = "invalidate"
	TypeClassDef    = "class_def"
	TypeClassRef    = "class_ref"
	TypeFunctionDef = "function_def"
	TypeCall        = "call"
)

// ReadRecords decodes a newline-delimited JSON event stream. Blank lines are
// skipped; a malformed line is an error, since a broken stream invalidates
// everything derived from it.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(text, &record); err != nil {
			return nil, fmt.Errorf("malformed record on line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event stream: %w", err)
	}

	return records, nil
}
