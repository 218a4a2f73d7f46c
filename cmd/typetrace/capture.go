package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"typetrace/internal/evdev"
	"typetrace/internal/hotplug"
	"typetrace/internal/journal"
	"typetrace/internal/logging"
)

var (
	captureDevice         string
	captureOutput         string
	captureVerbose        bool
	captureNonInteractive bool
)

func newCaptureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture keyboard events into the journal",
		Long: `Capture opens a keyboard device and appends every key event to the
journal until interrupted. Each event is synced to disk before the next
device read, so an unclean shutdown can lose at most the in-flight event.

Without --device the first detected keyboard is used; on a terminal with
several candidates a selection prompt appears unless --non-interactive is
given (service managers get the auto-selection behavior for free, since
there is no TTY attached).`,
		Args: cobra.NoArgs,
		RunE: runCapture,
	}

	cmd.Flags().StringVarP(&captureDevice, "device", "d", "", "device path (e.g. /dev/input/event3)")
	cmd.Flags().StringVarP(&captureOutput, "output", "o", "", "output journal path override")
	cmd.Flags().BoolVarP(&captureVerbose, "verbose", "v", false, "echo each event to stdout")
	cmd.Flags().BoolVar(&captureNonInteractive, "non-interactive", false, "never prompt; auto-select the first keyboard")

	return cmd
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	devicePath := captureDevice
	if devicePath == "" {
		devicePath = cfg.Capture.Device
	}
	if devicePath == "" {
		devices, err := evdev.ListKeyboards()
		if err != nil {
			return err
		}
		interactive := !captureNonInteractive && !cfg.Capture.NonInteractive &&
			term.IsTerminal(int(os.Stdin.Fd()))
		selected, err := evdev.SelectDevice(devices, interactive, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		devicePath = selected.Path
	}

	dev, err := evdev.Open(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	journalPath := cfg.Journal.Path
	if captureOutput != "" {
		journalPath = captureOutput
	}
	w, err := journal.OpenWriter(journalPath)
	if err != nil {
		return err
	}
	defer w.Close()

	logging.Info("capturing keystrokes", "device", dev.Name(), "path", dev.Path(), "journal", journalPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Logging keystrokes from: %s\n", dev.Name())
	fmt.Fprintf(cmd.OutOrStdout(), "Output file: %s\n", journalPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Closing the device is what unblocks the read loop when the signal
	// arrives; the per-event sync in Append means cancellation cannot tear
	// a record no matter where it lands.
	unblock := context.AfterFunc(ctx, func() { dev.Close() })
	defer unblock()

	watchUnplug(ctx, dev.Path())

	verbose := captureVerbose || cfg.Capture.Verbose
	src := dev.Source()
	for {
		ev, err := src.Next()
		if err != nil {
			if ctx.Err() != nil {
				logging.Info("capture stopped")
				return nil
			}
			return err
		}
		if err := w.Append(ev); err != nil {
			return err
		}
		if verbose {
			rec := ev.Record()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s\n", rec.Datetime, ev.Key, ev.Kind)
		}
	}
}

// watchUnplug logs when our device node disappears, so the journal carries a
// diagnosis alongside the read error the capture loop is about to hit.
// Hotplug watching is best-effort; capture works without it.
func watchUnplug(ctx context.Context, devicePath string) {
	w, err := hotplug.New(hotplug.DefaultDir)
	if err != nil {
		logging.Debug("hotplug watch unavailable", "error", err)
		return
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				if ev.Op == hotplug.Remove && ev.Path == devicePath {
					logging.Warn("capture device removed", "path", ev.Path)
				}
			}
		}
	}()
}
