package main

import (
	"fmt"
	"time"
)

// dateLayout is the accepted flag format for date filters.
const dateLayout = "2006-01-02"

// parseDateFlag parses a YYYY-MM-DD flag value as local midnight and returns
// it as float epoch seconds.
func parseDateFlag(name, value string) (float64, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD)", name, value)
	}
	return float64(t.Unix()), nil
}

// timeWindow resolves the from/to filter flags shared by analyze and report.
// The returned bounds are nil when unset; from is inclusive, to exclusive.
func timeWindow(fromFlag, toFlag string, today, week bool) (from, to *float64, err error) {
	now := time.Now()
	switch {
	case today:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		f := float64(start.Unix())
		return &f, nil, nil
	case week:
		f := float64(now.AddDate(0, 0, -7).Unix())
		return &f, nil, nil
	}

	if fromFlag != "" {
		f, err := parseDateFlag("from", fromFlag)
		if err != nil {
			return nil, nil, err
		}
		from = &f
	}
	if toFlag != "" {
		t, err := parseDateFlag("to", toFlag)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	if from != nil && to != nil && *to <= *from {
		return nil, nil, fmt.Errorf("--to date must be after --from date")
	}
	return from, to, nil
}
