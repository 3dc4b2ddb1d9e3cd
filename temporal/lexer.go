package temporal

import "regexp"

// Each recognized pattern gets its own lexeme type carrying only the fields
// that pattern actually captures. The normalizer switches on the concrete
// type instead of probing a shared field map.

type dateLexeme interface{ dateLexeme() }

// yearFirstDate is YYYY[-/]?MM[-/]?DD.
type yearFirstDate struct{ year, month, day string }

// monthFirstDate is MM[-/]?DD[-/]?YYYY.
type monthFirstDate struct{ month, day, year string }

// namedMonthDate is "MonthName DD[,] YYYY" with the month spelled out.
type namedMonthDate struct{ month, day, year string }

func (yearFirstDate) dateLexeme()  {}
func (monthFirstDate) dateLexeme() {}
func (namedMonthDate) dateLexeme() {}

type timeLexeme interface{ timeLexeme() }

// offsetTime is HH:MM:SS with an explicit UTC offset.
type offsetTime struct{ hour, minute, second, offset string }

// meridiemTime is a 12-hour clock reading; second may be empty.
type meridiemTime struct{ hour, minute, second, meridiem string }

// plainTime is a 24-hour clock reading; second may be empty.
type plainTime struct{ hour, minute, second string }

func (offsetTime) timeLexeme()   {}
func (meridiemTime) timeLexeme() {}
func (plainTime) timeLexeme()    {}

// All patterns are anchored at the start of the input only; trailing
// characters after a successful match are ignored. Evaluation order matters:
// the first pattern to match wins and later ones are never tried.
var (
	reYearFirst  = regexp.MustCompile(`^(\d{4})[-/]?(\d{2})[-/]?(\d{2})`)
	reMonthFirst = regexp.MustCompile(`^(\d{2})[-/]?(\d{2})[-/]?(\d{4})`)
	reNamedMonth = regexp.MustCompile(`^(?i)([a-z]+)\s+(\d{1,2}),?\s+(\d{4})`)

	reOffsetTime  = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})([+-]\d{2}:\d{2})`)
	reMeridiemSec = regexp.MustCompile(`^(?i)(\d{1,2}):(\d{2}):(\d{2})\s*([ap])\.?m\.?`)
	reMeridiem    = regexp.MustCompile(`^(?i)(\d{1,2}):(\d{2})\s*([ap])\.?m\.?`)
	reClockSec    = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})`)
	reClock       = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)
)

func lexDate(text string) (dateLexeme, bool) {
	if m := reYearFirst.FindStringSubmatch(text); m != nil {
		return yearFirstDate{year: m[1], month: m[2], day: m[3]}, true
	}
	if m := reMonthFirst.FindStringSubmatch(text); m != nil {
		return monthFirstDate{month: m[1], day: m[2], year: m[3]}, true
	}
	if m := reNamedMonth.FindStringSubmatch(text); m != nil {
		return namedMonthDate{month: m[1], day: m[2], year: m[3]}, true
	}
	return nil, false
}

func lexTime(text string) (timeLexeme, bool) {
	if m := reOffsetTime.FindStringSubmatch(text); m != nil {
		return offsetTime{hour: m[1], minute: m[2], second: m[3], offset: m[4]}, true
	}
	if m := reMeridiemSec.FindStringSubmatch(text); m != nil {
		return meridiemTime{hour: m[1], minute: m[2], second: m[3], meridiem: m[4]}, true
	}
	if m := reMeridiem.FindStringSubmatch(text); m != nil {
		return meridiemTime{hour: m[1], minute: m[2], meridiem: m[3]}, true
	}
	if m := reClockSec.FindStringSubmatch(text); m != nil {
		return plainTime{hour: m[1], minute: m[2], second: m[3]}, true
	}
	if m := reClock.FindStringSubmatch(text); m != nil {
		return plainTime{hour: m[1], minute: m[2]}, true
	}
	return nil, false
}
