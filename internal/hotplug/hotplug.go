// Package hotplug watches an input device directory and reports keyboard
// device nodes appearing and disappearing.
package hotplug

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultDir is the kernel input device directory.
const DefaultDir = "/dev/input"

// Op describes what happened to a device node.
type Op int

const (
	Add Op = iota
	Remove
)

func (o Op) String() string {
	if o == Add {
		return "add"
	}
	return "remove"
}

// Event is one device node change.
type Event struct {
	Path string
	Op   Op
}

// Watcher streams device node changes from a directory. Only event* nodes
// are reported; js*, mouse*, and by-id symlink churn are ignored.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string

	events chan Event
	errs   chan error

	done     chan struct{}
	wg       sync.WaitGroup
	closeOne sync.Once
}

// New creates a watcher for dir (DefaultDir if empty) and starts streaming.
func New(dir string) (*Watcher, error) {
	if dir == "" {
		dir = DefaultDir
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		dir:       dir,
		events:    make(chan Event, 16),
		errs:      make(chan error, 4),
		done:      make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the device change stream. The channel closes on Close.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns watcher-level errors.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case fsEvent, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !isEventNode(fsEvent.Name) {
				continue
			}
			switch {
			case fsEvent.Op.Has(fsnotify.Create):
				w.emit(Event{Path: fsEvent.Name, Op: Add})
			case fsEvent.Op.Has(fsnotify.Remove):
				w.emit(Event{Path: fsEvent.Name, Op: Remove})
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

// isEventNode reports whether a path names an evdev node like
// /dev/input/event7.
func isEventNode(path string) bool {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "event") {
		return false
	}
	rest := base[len("event"):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	var err error
	w.closeOne.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}
