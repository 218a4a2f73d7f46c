// typetrace captures raw keyboard events from Linux evdev into an
// append-only JSONL journal and derives typing-performance statistics from
// that journal.
package main

import (
	"errors"
	"fmt"
	"os"

	"typetrace/internal/evdev"
	"typetrace/internal/journal"
)

// Exit codes. A supervising restart policy may treat these differently: a
// missing device is worth retrying after backoff, missing data usually is
// not.
const (
	exitOK      = 0
	exitFailure = 1
	exitDevice  = 2
	exitNoData  = 3
)

// errNoData marks an analysis window that matched no events.
var errNoData = errors.New("no keystroke data found for the specified period")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var devErr *evdev.DeviceError
	switch {
	case errors.As(err, &devErr),
		errors.Is(err, evdev.ErrNoKeyboards),
		errors.Is(err, evdev.ErrNotKeyboard),
		errors.Is(err, evdev.ErrUnsupportedPlatform):
		return exitDevice
	case errors.Is(err, journal.ErrNoJournal),
		errors.Is(err, errNoData):
		return exitNoData
	default:
		return exitFailure
	}
}
