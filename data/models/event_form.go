package models

import (
	"time"

	"events-calendar/temporal"
)

// DefaultDescription fills the description of an otherwise-valid submission
// that left the field blank.
const DefaultDescription = "No description provided"

// FieldErrors maps a form field to the message rendered next to it.
type FieldErrors map[string]string

// EventForm carries the raw string inputs of an event create/edit
// submission. An empty string means the field was not sent.
type EventForm struct {
	Name        string
	Description string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
}

// Apply reconciles the form against an event draft. Fields that parse are
// written to the draft; fields that fail to parse leave the draft value
// unchanged. Cross-field rules (start before end, required name and date)
// produce entries in the returned FieldErrors and make the result invalid.
// Callers persist the draft only when valid is true, and re-render the form
// with the errors and the partially applied draft otherwise.
func (f EventForm) Apply(draft *Event) (valid bool, errs FieldErrors) {
	errs = FieldErrors{}

	if f.Name != "" {
		draft.Name = f.Name
	} else {
		errs["name"] = "name is required"
	}

	if f.Description != "" {
		draft.Description = f.Description
	}

	f.applyDates(draft, errs)
	f.applyTimes(draft, errs)

	if len(errs) > 0 {
		return false, errs
	}

	if draft.Description == "" {
		draft.Description = DefaultDescription
	}
	return true, errs
}

// applyDates resolves the date pair. A single parsed date is used for both
// ends (single-day event); an inverted pair rejects and clears both.
func (f EventForm) applyDates(draft *Event, errs FieldErrors) {
	start, startOK := temporal.ParseDate(f.StartDate)
	end, endOK := temporal.ParseDate(f.EndDate)

	switch {
	case startOK && endOK:
		if end.Before(start) {
			errs["date"] = "ending date cannot occur before starting date"
			draft.StartDate = time.Time{}
			draft.EndDate = time.Time{}
			return
		}
		draft.StartDate = start
		draft.EndDate = end
	case startOK:
		draft.StartDate = start
		draft.EndDate = start
	case endOK:
		draft.StartDate = end
		draft.EndDate = end
	default:
		errs["date"] = "date is required"
	}
}

// applyTimes resolves each time independently; a rejected input does not
// block the other. Ordering is enforced only for single-day events.
func (f EventForm) applyTimes(draft *Event, errs FieldErrors) {
	if ct, ok := temporal.ParseTime(f.StartTime); ok {
		draft.StartTime = temporal.NullClockTime{ClockTime: ct, Valid: true}
	}
	if ct, ok := temporal.ParseTime(f.EndTime); ok {
		draft.EndTime = temporal.NullClockTime{ClockTime: ct, Valid: true}
	}

	if _, dateInvalid := errs["date"]; dateInvalid {
		return
	}
	if !draft.StartDate.Equal(draft.EndDate) {
		return
	}
	if draft.StartTime.Valid && draft.EndTime.Valid &&
		draft.EndTime.ClockTime.Before(draft.StartTime.ClockTime) {
		errs["time"] = "ending time cannot occur before starting time"
		draft.StartTime = temporal.NullClockTime{}
		draft.EndTime = temporal.NullClockTime{}
	}
}
