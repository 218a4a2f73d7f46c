// Package journal persists key events as an append-only line-delimited JSON
// log and replays them for analysis.
//
// Durability model: every Append is a complete, independent unit — one JSON
// line written and fsynced before Append returns. A crash between appends
// can lose at most the in-flight record and can never corrupt records
// already on disk. The file is never rewritten, seeked, or truncated;
// rotation is someone else's job.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"typetrace/internal/event"
)

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("journal: writer is closed")

// Writer appends key events to a journal file, one durable record per call.
// It is the single writer for its file; concurrent readers are expected and
// safe because records are only ever added, never changed.
type Writer struct {
	f    *os.File
	path string
}

// OpenWriter opens the journal for appending, creating parent directories as
// needed.
func OpenWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Writer{f: f, path: path}, nil
}

// Path returns the journal file path.
func (w *Writer) Path() string { return w.path }

// Append serializes one event as a single line and syncs it to disk before
// returning.
func (w *Writer) Append(ev event.KeyEvent) error {
	if w.f == nil {
		return ErrClosed
	}
	data, err := ev.Marshal()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	// Line plus newline in one write; O_APPEND keeps it atomic with respect
	// to position.
	if _, err := w.f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}
	return nil
}

// Close releases the file handle. The writer is unusable afterwards.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
