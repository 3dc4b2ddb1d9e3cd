package models

import (
	"time"

	"events-calendar/temporal"
)

// Event is a planned occasion spanning one or more calendar days. Start and
// end times are optional and independent of each other; either, both, or
// neither may be set.
type Event struct {
	ID          int64                  `json:"id" db:"id" readOnly:"true"`
	UserID      int64                  `json:"user_id" db:"user_id"`
	ActivityID  int64                  `json:"activity_id" db:"activity_id"`
	Name        string                 `validate:"required" json:"name" db:"name"`
	Description string                 `json:"description" db:"description"`
	StartDate   time.Time              `validate:"required" json:"start_date" db:"start_date"`
	EndDate     time.Time              `validate:"required" json:"end_date" db:"end_date"`
	StartTime   temporal.NullClockTime `json:"start_time" db:"start_time"`
	EndTime     temporal.NullClockTime `json:"end_time" db:"end_time"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at" readOnly:"true"`
}

func (Event) TableName() string {
	return "event"
}

func (e Event) GetID() int64 {
	return e.ID
}

func (Event) EmptySlice() interface{} {
	return &[]Event{}
}

// StartDateLongForm renders the starting date as
// "Day_of_the_week, Month DD, YYYY" for listing views.
func (e Event) StartDateLongForm() string {
	return e.StartDate.Format("Monday, January 2, 2006")
}

// OccupiedDates is the series of calendar dates the event appears under in
// date-ordered listings.
func (e Event) OccupiedDates() []time.Time {
	return temporal.ExpandDateRange(e.StartDate, e.EndDate, temporal.Daily)
}
