package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"typetrace/internal/evdev"
	"typetrace/internal/hotplug"
)

var devicesWatch bool

func newDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List keyboard-capable input devices",
		Args:  cobra.NoArgs,
		RunE:  runDevices,
	}
	cmd.Flags().BoolVar(&devicesWatch, "watch", false, "stream hotplug add/remove events until interrupted")
	return cmd
}

func runDevices(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	devices, err := evdev.ListKeyboards()
	if err != nil && !devicesWatch {
		return err
	}
	if len(devices) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Available keyboards:")
		for _, d := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", d.Path, d.Name)
		}
	}

	if !devicesWatch {
		return nil
	}

	w, err := hotplug.New(hotplug.DefaultDir)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Watching for device changes (Ctrl+C to stop)...")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ev.Op, ev.Path)
		case err := <-w.Errors():
			return err
		}
	}
}
