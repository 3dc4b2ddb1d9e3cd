package temporal

import "time"

// Interval is the fixed day step between consecutive occurrences.
type Interval int

const (
	Daily  Interval = 1
	Weekly Interval = 7
)

// ExpandDateRange materializes the ascending series of calendar dates from
// start through end inclusive, stepping by the given interval. The series is
// recomputed on every read and never stored. start == end yields a single
// element; an inverted range yields nil.
func ExpandDateRange(start, end time.Time, step Interval) []time.Time {
	if step <= 0 {
		step = Daily
	}
	if end.Before(start) {
		return nil
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, int(step)) {
		dates = append(dates, d)
	}
	return dates
}
