// Package stats derives typing-performance statistics from segmented key
// event history.
//
// Counting convention: totals, WPM, and error rate count press events only.
// Release events mirror presses and repeats fire continuously while a key is
// held, so counting either would double-count actual typing. The raw event
// count is still reported alongside for completeness.
package stats

import (
	"sort"

	"typetrace/internal/event"
	"typetrace/internal/session"
)

// Options tunes the analysis.
type Options struct {
	// DigraphCutoffSeconds is the largest in-session press-to-press latency
	// recorded as a digraph sample. Longer pauses are thinking time, not
	// transition speed.
	DigraphCutoffSeconds float64

	// MinDigraphSamples is the smallest sample count a pair needs to appear
	// in the ranked lists. The full table always carries every pair.
	MinDigraphSamples int

	// TopN bounds the ranked views.
	TopN int
}

// DefaultOptions returns the standard analysis tuning.
func DefaultOptions() Options {
	return Options{
		DigraphCutoffSeconds: 2.0,
		MinDigraphSamples:    2,
		TopN:                 20,
	}
}

// KeyCount is one entry of a ranked per-key table.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DigraphStat aggregates latency samples for one ordered key pair.
type DigraphStat struct {
	Count       int     `json:"count"`
	MeanSeconds float64 `json:"mean_seconds"`
}

// DigraphRank is one entry of a ranked digraph table.
type DigraphRank struct {
	Pair        string  `json:"pair"`
	Count       int     `json:"count"`
	MeanSeconds float64 `json:"mean_seconds"`
}

// SessionStats summarizes one typing session.
type SessionStats struct {
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	DurationSeconds float64 `json:"duration_seconds"`
	Presses         int     `json:"presses"`
	Errors          int     `json:"errors"`

	// WPM is presses/5 per minute; zero when the session has no measurable
	// duration, in which case it is excluded from the overall mean.
	WPM float64 `json:"wpm"`
}

// Report is the full analysis output. The ranked Top/Slowest/Fastest views
// are bounded to Options.TopN; the map fields carry the complete tables for
// raw JSON consumers. All collections are non-nil even for empty input.
type Report struct {
	TotalEvents   int     `json:"total_events"`
	TotalPresses  int     `json:"total_presses"`
	SessionCount  int     `json:"session_count"`
	TypingSeconds float64 `json:"typing_seconds"`
	FirstEvent    float64 `json:"first_event,omitempty"`
	LastEvent     float64 `json:"last_event,omitempty"`

	MeanWPM float64 `json:"mean_wpm"`
	BestWPM float64 `json:"best_wpm"`

	Errors    int     `json:"errors"`
	ErrorRate float64 `json:"error_rate"`

	Sessions []SessionStats `json:"sessions"`

	KeyCounts map[string]int `json:"key_counts"`
	TopKeys   []KeyCount     `json:"top_keys"`

	Digraphs        map[string]DigraphStat `json:"digraphs"`
	SlowestDigraphs []DigraphRank          `json:"slowest_digraphs"`
	FastestDigraphs []DigraphRank          `json:"fastest_digraphs"`

	ErrorProneKeys    map[string]int `json:"error_prone_keys"`
	TopErrorProneKeys []KeyCount     `json:"top_error_prone_keys"`
}

// digraphKey renders the ordered pair form used in tables, e.g.
// "KEY_A->KEY_B".
func digraphKey(first, second string) string {
	return first + "->" + second
}

type digraphAgg struct {
	count int
	sum   float64
}

// Analyze computes the full report from the raw event sequence and its
// segmentation. An empty input yields a zero-valued report, never an error.
func Analyze(events []event.KeyEvent, sessions []session.Session, opts Options) *Report {
	if opts.DigraphCutoffSeconds <= 0 {
		opts.DigraphCutoffSeconds = DefaultOptions().DigraphCutoffSeconds
	}
	if opts.MinDigraphSamples < 1 {
		opts.MinDigraphSamples = DefaultOptions().MinDigraphSamples
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}

	r := &Report{
		TotalEvents:    len(events),
		SessionCount:   len(sessions),
		Sessions:       make([]SessionStats, 0, len(sessions)),
		KeyCounts:      make(map[string]int),
		ErrorProneKeys: make(map[string]int),
	}
	if len(events) > 0 {
		r.FirstEvent = events[0].Timestamp
		r.LastEvent = events[len(events)-1].Timestamp
	}

	digraphs := make(map[string]*digraphAgg)
	var wpmSum float64
	var wpmSessions int

	for _, s := range sessions {
		ss := SessionStats{
			Start:           s.Start(),
			End:             s.End(),
			DurationSeconds: s.Duration(),
		}

		// Digraph and error-adjacency state never crosses a session
		// boundary: the inactivity gap would corrupt the latency signal.
		var prevKey string
		var prevTime float64
		havePrev := false

		for _, ev := range s.Events {
			if ev.Kind != event.KindPress {
				continue
			}

			ss.Presses++
			r.TotalPresses++
			r.KeyCounts[ev.Key]++

			if ev.IsBackspace() {
				ss.Errors++
				r.Errors++
				if havePrev {
					r.ErrorProneKeys[prevKey]++
				}
			}

			if havePrev {
				latency := ev.Timestamp - prevTime
				if latency <= opts.DigraphCutoffSeconds {
					key := digraphKey(prevKey, ev.Key)
					agg := digraphs[key]
					if agg == nil {
						agg = &digraphAgg{}
						digraphs[key] = agg
					}
					agg.count++
					agg.sum += latency
				}
			}

			prevKey = ev.Key
			prevTime = ev.Timestamp
			havePrev = true
		}

		r.TypingSeconds += ss.DurationSeconds
		if ss.DurationSeconds > 0 {
			ss.WPM = float64(ss.Presses) / 5.0 / (ss.DurationSeconds / 60.0)
			wpmSum += ss.WPM
			wpmSessions++
			if ss.WPM > r.BestWPM {
				r.BestWPM = ss.WPM
			}
		}
		r.Sessions = append(r.Sessions, ss)
	}

	if wpmSessions > 0 {
		r.MeanWPM = wpmSum / float64(wpmSessions)
	}
	if r.TotalPresses > 0 {
		r.ErrorRate = float64(r.Errors) / float64(r.TotalPresses)
	}

	r.Digraphs = make(map[string]DigraphStat, len(digraphs))
	for key, agg := range digraphs {
		r.Digraphs[key] = DigraphStat{
			Count:       agg.count,
			MeanSeconds: agg.sum / float64(agg.count),
		}
	}

	r.TopKeys = rankKeyCounts(r.KeyCounts, opts.TopN)
	r.TopErrorProneKeys = rankKeyCounts(r.ErrorProneKeys, opts.TopN)
	r.SlowestDigraphs = rankDigraphs(r.Digraphs, opts, true)
	r.FastestDigraphs = rankDigraphs(r.Digraphs, opts, false)

	return r
}

// rankKeyCounts orders a count table descending, ties broken by key name for
// determinism, bounded to n entries.
func rankKeyCounts(counts map[string]int, n int) []KeyCount {
	ranked := make([]KeyCount, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, KeyCount{Key: key, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// rankDigraphs orders digraph stats by mean latency, slowest or fastest
// first, dropping pairs with fewer than MinDigraphSamples samples.
func rankDigraphs(table map[string]DigraphStat, opts Options, slowest bool) []DigraphRank {
	ranked := make([]DigraphRank, 0, len(table))
	for pair, stat := range table {
		if stat.Count < opts.MinDigraphSamples {
			continue
		}
		ranked = append(ranked, DigraphRank{Pair: pair, Count: stat.Count, MeanSeconds: stat.MeanSeconds})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MeanSeconds != ranked[j].MeanSeconds {
			if slowest {
				return ranked[i].MeanSeconds > ranked[j].MeanSeconds
			}
			return ranked[i].MeanSeconds < ranked[j].MeanSeconds
		}
		return ranked[i].Pair < ranked[j].Pair
	})
	if len(ranked) > opts.TopN {
		ranked = ranked[:opts.TopN]
	}
	return ranked
}
