package temporal

import (
	"strconv"
	"strings"
	"time"
)

var monthsOfYear = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// normalizeDate resolves a date lexeme into a calendar date. Constructing
// the date is the sole validity gate: a triple like February 30 fails the
// round-trip check and is rejected.
func normalizeDate(lx dateLexeme) (time.Time, bool) {
	var year, day string
	var month time.Month

	switch v := lx.(type) {
	case yearFirstDate:
		m, err := strconv.Atoi(v.month)
		if err != nil {
			return time.Time{}, false
		}
		year, month, day = v.year, time.Month(m), v.day
	case monthFirstDate:
		m, err := strconv.Atoi(v.month)
		if err != nil {
			return time.Time{}, false
		}
		year, month, day = v.year, time.Month(m), v.day
	case namedMonthDate:
		m, ok := monthsOfYear[strings.ToLower(v.month)]
		if !ok {
			return time.Time{}, false
		}
		year, month, day = v.year, m, v.day
	default:
		return time.Time{}, false
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}

	date := time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	if date.Year() != y || date.Month() != month || date.Day() != d {
		return time.Time{}, false
	}
	return date, true
}

// normalizeTime resolves a time lexeme into a ClockTime. A meridiem whose
// first letter is p adds 12 to the hour before the range gate, so "12:30 pm"
// lands on hour 24 and is rejected while "12:30 am" stays 12:30. Seconds and
// offsets are discarded.
func normalizeTime(lx timeLexeme) (ClockTime, bool) {
	var hour, minute, meridiem string

	switch v := lx.(type) {
	case offsetTime:
		hour, minute = v.hour, v.minute
	case meridiemTime:
		hour, minute, meridiem = v.hour, v.minute, v.meridiem
	case plainTime:
		hour, minute = v.hour, v.minute
	default:
		return ClockTime{}, false
	}

	h, err := strconv.Atoi(hour)
	if err != nil {
		return ClockTime{}, false
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return ClockTime{}, false
	}

	if meridiem != "" && (meridiem[0] == 'p' || meridiem[0] == 'P') {
		h += 12
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, false
	}
	return ClockTime{Hour: h, Minute: m}, true
}
