package stats

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Render writes the human-readable report. The layout favors scanability
// over density: overall block first, then the ranked tables that suggest
// what to practice.
func Render(w io.Writer, r *Report) error {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	b.WriteString(rule + "\n")
	b.WriteString("TYPING ANALYSIS REPORT\n")
	b.WriteString(rule + "\n\n")

	if r.FirstEvent > 0 {
		b.WriteString(fmt.Sprintf("Period: %s to %s\n",
			formatDay(r.FirstEvent), formatDay(r.LastEvent)))
		b.WriteString(fmt.Sprintf("Span: %s\n\n", formatDuration(r.LastEvent-r.FirstEvent)))
	}

	b.WriteString("OVERALL STATISTICS\n")
	b.WriteString(sub + "\n")
	b.WriteString(fmt.Sprintf("Keystrokes (presses): %d\n", r.TotalPresses))
	b.WriteString(fmt.Sprintf("Raw events:           %d\n", r.TotalEvents))
	b.WriteString(fmt.Sprintf("Typing sessions:      %d\n", r.SessionCount))
	b.WriteString(fmt.Sprintf("Typing time:          %s\n", formatDuration(r.TypingSeconds)))
	b.WriteString(fmt.Sprintf("Average WPM:          %.1f\n", r.MeanWPM))
	b.WriteString(fmt.Sprintf("Best WPM:             %.1f\n", r.BestWPM))
	b.WriteString(fmt.Sprintf("Errors (backspaces):  %d\n", r.Errors))
	b.WriteString(fmt.Sprintf("Error rate:           %.1f%%\n\n", r.ErrorRate*100))

	if len(r.SlowestDigraphs) > 0 {
		b.WriteString("SLOWEST KEY TRANSITIONS (practice these)\n")
		b.WriteString(sub + "\n")
		for _, d := range r.SlowestDigraphs {
			b.WriteString(fmt.Sprintf("  %-25s %4.0fms  (%d samples)\n",
				formatDigraph(d.Pair), d.MeanSeconds*1000, d.Count))
		}
		b.WriteString("\n")
	}

	if len(r.TopErrorProneKeys) > 0 {
		b.WriteString("KEYS BEFORE BACKSPACE (error-prone keys)\n")
		b.WriteString(sub + "\n")
		for _, k := range r.TopErrorProneKeys {
			b.WriteString(fmt.Sprintf("  %-20s %d\n", formatKey(k.Key), k.Count))
		}
		b.WriteString("\n")
	}

	if len(r.TopKeys) > 0 {
		b.WriteString("MOST USED KEYS\n")
		b.WriteString(sub + "\n")
		for _, k := range r.TopKeys {
			b.WriteString(fmt.Sprintf("  %-20s %d\n", formatKey(k.Key), k.Count))
		}
		b.WriteString("\n")
	}

	if len(r.FastestDigraphs) > 0 {
		b.WriteString("FASTEST KEY TRANSITIONS (your strengths)\n")
		b.WriteString(sub + "\n")
		for _, d := range r.FastestDigraphs {
			b.WriteString(fmt.Sprintf("  %-25s %4.0fms  (%d samples)\n",
				formatDigraph(d.Pair), d.MeanSeconds*1000, d.Count))
		}
		b.WriteString("\n")
	}

	if len(r.Sessions) > 0 {
		b.WriteString("SESSIONS\n")
		b.WriteString(sub + "\n")
		for _, s := range r.Sessions {
			b.WriteString(fmt.Sprintf("  %s  %8s  %5d keys  %5.1f wpm\n",
				formatTime(s.Start), formatDuration(s.DurationSeconds), s.Presses, s.WPM))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatKey strips the KEY_ prefix for display.
func formatKey(key string) string {
	return strings.TrimPrefix(key, "KEY_")
}

// formatDigraph renders "KEY_A->KEY_B" as "A -> B".
func formatDigraph(pair string) string {
	parts := strings.SplitN(pair, "->", 2)
	if len(parts) != 2 {
		return pair
	}
	return formatKey(parts[0]) + " -> " + formatKey(parts[1])
}

func formatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", seconds/60)
	default:
		return fmt.Sprintf("%.1fh", seconds/3600)
	}
}

func formatDay(ts float64) string {
	return time.Unix(int64(ts), 0).Format("2006-01-02")
}

func formatTime(ts float64) string {
	return time.Unix(int64(ts), 0).Format("2006-01-02 15:04")
}
