package evdev

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// DeviceInfo describes one keyboard-capable input device found during
// enumeration.
type DeviceInfo struct {
	Path string
	Name string
}

// parseProcDevices scans the /proc/bus/input/devices format and returns the
// devices that expose an eventN handler and whose key capability bitmap
// covers letter keys. Results are sorted by event number so enumeration
// order is stable across runs regardless of the order the kernel lists
// device blocks.
func parseProcDevices(r io.Reader) []DeviceInfo {
	var (
		devices  []DeviceInfo
		name     string
		handler  string
		keyboard bool
	)

	flush := func() {
		if keyboard && handler != "" {
			devices = append(devices, DeviceInfo{Path: handler, Name: name})
		}
		name = ""
		handler = ""
		keyboard = false
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "N: Name="):
			name = strings.Trim(strings.TrimPrefix(line, "N: Name="), `"`)
		case strings.HasPrefix(line, "H: Handlers="):
			for _, part := range strings.Fields(line) {
				if strings.HasPrefix(part, "event") {
					handler = "/dev/input/" + part
				}
			}
		case strings.HasPrefix(line, "B: KEY="):
			keyboard = bitmapHasLetterKeys(strings.TrimPrefix(line, "B: KEY="))
		case line == "":
			flush()
		}
	}
	flush()

	sort.Slice(devices, func(i, j int) bool {
		return eventNumber(devices[i].Path) < eventNumber(devices[j].Path)
	})
	return devices
}

// bitmapHasLetterKeys reports whether a "B: KEY=" capability bitmap has any
// of the letter key codes set. The bitmap is space-separated 64-bit hex
// words, most significant first, so the last word covers codes 0-63.
func bitmapHasLetterKeys(bitmap string) bool {
	words := strings.Fields(bitmap)
	if len(words) == 0 {
		return false
	}
	low, err := strconv.ParseUint(words[len(words)-1], 16, 64)
	if err != nil {
		return false
	}
	for code := keyA; code <= keyZ; code++ {
		if low&(1<<uint(code)) != 0 {
			return true
		}
	}
	return false
}

func eventNumber(path string) int {
	idx := strings.LastIndex(path, "event")
	if idx < 0 {
		return -1
	}
	n, err := strconv.Atoi(path[idx+len("event"):])
	if err != nil {
		return -1
	}
	return n
}

// SelectDevice picks one device from the enumeration result. With a single
// candidate it is returned directly. With several, interactive mode prompts
// on out for an index read from in; anything unparseable falls back to the
// first device. Non-interactive mode always takes the first device, which is
// the lowest-numbered event node.
func SelectDevice(devices []DeviceInfo, interactive bool, in io.Reader, out io.Writer) (DeviceInfo, error) {
	if len(devices) == 0 {
		return DeviceInfo{}, ErrNoKeyboards
	}
	if len(devices) == 1 || !interactive {
		return devices[0], nil
	}

	fmt.Fprintln(out, "Multiple keyboards found:")
	for i, d := range devices {
		fmt.Fprintf(out, "  %d: %s (%s)\n", i, d.Name, d.Path)
	}
	fmt.Fprint(out, "Select keyboard number: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return devices[0], nil
	}
	idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || idx < 0 || idx >= len(devices) {
		return devices[0], nil
	}
	return devices[idx], nil
}
