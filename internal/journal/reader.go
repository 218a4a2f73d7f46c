package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"typetrace/internal/event"
	"typetrace/internal/logging"
)

// ErrNoJournal indicates the journal file does not exist yet.
var ErrNoJournal = errors.New("journal: no journal file")

// maxLineBytes bounds a single record line. Real records are under 200
// bytes; anything longer is garbage and costs one corrupt record, never the
// whole read.
const maxLineBytes = 64 * 1024

// ReadStats summarizes a replay pass.
type ReadStats struct {
	// Events is the number of valid records returned.
	Events int

	// Corrupt is the number of skipped lines: malformed JSON, missing
	// fields, bad enums, or a truncated final line from an unclean
	// shutdown.
	Corrupt int
}

// Read replays the journal in file order, which the writer guarantees is
// arrival order. Each call re-reads from the start. Lines that fail to parse
// are skipped with a warning, never fatal; a file still being appended to
// reads cleanly up to its current end. The closed-open range [from, to)
// filters by timestamp when bounds are non-nil.
func Read(path string, from, to *float64) ([]event.KeyEvent, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ReadStats{}, fmt.Errorf("%w: %s", ErrNoJournal, path)
		}
		return nil, ReadStats{}, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	events, stats, err := scan(f, from, to)
	if err != nil {
		return nil, stats, err
	}
	return events, stats, nil
}

func scan(r io.Reader, from, to *float64) ([]event.KeyEvent, ReadStats, error) {
	var (
		events []event.KeyEvent
		stats  ReadStats
		lineNo int
	)

	br := bufio.NewReaderSize(r, 4096)
	for {
		line, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read journal: %w", err)
		}
		lineNo++
		if tooLong {
			stats.Corrupt++
			logging.Warn("skipping oversized journal line", "line", lineNo, "limit", maxLineBytes)
			continue
		}
		if len(line) == 0 {
			continue
		}

		ev, err := event.ParseRecord(line)
		if err != nil {
			stats.Corrupt++
			logging.Warn("skipping corrupt journal line", "line", lineNo, "error", err)
			continue
		}

		if from != nil && ev.Timestamp < *from {
			continue
		}
		if to != nil && ev.Timestamp >= *to {
			continue
		}

		events = append(events, ev)
		stats.Events++
	}
	return events, stats, nil
}

// readLine returns the next line without its trailing newline, or io.EOF
// when the input is exhausted. A line longer than maxLineBytes is consumed
// through its newline with the excess discarded and reported as tooLong, so
// a run of garbage costs one corrupt record instead of aborting the read.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	var buf []byte
	for {
		frag, ferr := br.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, frag...)
			if len(buf) > maxLineBytes+1 {
				buf = nil
				tooLong = true
			}
		}
		if ferr == bufio.ErrBufferFull {
			continue
		}
		if ferr != nil && ferr != io.EOF {
			return nil, false, ferr
		}
		if n := len(buf); n > 0 && buf[n-1] == '\n' {
			buf = buf[:n-1]
		}
		if ferr == io.EOF && len(buf) == 0 && !tooLong {
			return nil, false, io.EOF
		}
		return buf, tooLong, nil
	}
}
