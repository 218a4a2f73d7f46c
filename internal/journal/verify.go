package journal

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/record.schema.json
var recordSchemaJSON string

// recordSchema is compiled once; the schema is embedded and cannot fail to
// compile at runtime without a build-time mistake.
var recordSchema = jsonschema.MustCompileString("record-v1.schema.json", recordSchemaJSON)

// LineError describes one journal line that failed validation.
type LineError struct {
	Line int
	Err  string
}

// VerifyResult summarizes a schema validation pass over a journal.
type VerifyResult struct {
	Valid   int
	Invalid int
	Errors  []LineError
}

// maxReportedErrors bounds the per-line error list so a fully corrupt file
// does not balloon the result.
const maxReportedErrors = 50

// Verify validates every journal line against the record schema. Unlike
// Read, it distinguishes structurally valid JSON that violates the schema
// from unparseable lines; both count as invalid.
func Verify(path string) (VerifyResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return VerifyResult{}, fmt.Errorf("%w: %s", ErrNoJournal, path)
		}
		return VerifyResult{}, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var (
		result VerifyResult
		lineNo int
	)
	br := bufio.NewReaderSize(f, 4096)
	for {
		line, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read journal: %w", err)
		}
		lineNo++
		if tooLong {
			result.record(lineNo, fmt.Sprintf("line exceeds %d bytes", maxLineBytes))
			continue
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var instance any
		if err := json.Unmarshal(line, &instance); err != nil {
			result.record(lineNo, fmt.Sprintf("invalid JSON: %v", err))
			continue
		}
		if err := recordSchema.Validate(instance); err != nil {
			result.record(lineNo, err.Error())
			continue
		}
		result.Valid++
	}
	return result, nil
}

func (r *VerifyResult) record(line int, msg string) {
	r.Invalid++
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, LineError{Line: line, Err: msg})
	}
}
