// Package temporal parses free-text dates and clock times submitted through
// event forms and expands stored date ranges into calendar occurrences.
//
// Parsing is a two stage pipeline: a lexer recognizes the first matching
// pattern from a fixed, ordered set and captures its raw fields, then a
// normalizer resolves those fields into a calendar date or clock time.
// Both a lexer miss and a normalizer rejection collapse into the same
// ok=false result; callers treat that as "leave the existing value
// unchanged", never as a fatal error.
package temporal

import "time"

// ParseDate parses text as a calendar date. The returned time carries only
// year/month/day (UTC midnight). ok is false when no pattern matches or the
// captured fields do not form a real calendar date.
func ParseDate(text string) (time.Time, bool) {
	lx, ok := lexDate(text)
	if !ok {
		return time.Time{}, false
	}
	return normalizeDate(lx)
}

// ParseTime parses text as a time of day. Seconds and UTC offsets are
// recognized by the lexer but not retained in the result.
func ParseTime(text string) (ClockTime, bool) {
	lx, ok := lexTime(text)
	if !ok {
		return ClockTime{}, false
	}
	return normalizeTime(lx)
}
