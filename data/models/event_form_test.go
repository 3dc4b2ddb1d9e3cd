package models

import (
	"testing"
	"time"

	"events-calendar/temporal"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventFormApply(t *testing.T) {
	t.Run("complete submission", func(t *testing.T) {
		draft := Event{UserID: 1, ActivityID: 1}
		form := EventForm{
			Name:        "board game night",
			Description: "bring snacks",
			StartDate:   "2017-11-20",
			EndDate:     "2017-11-23",
			StartTime:   "5:00 pm",
			EndTime:     "9:00 pm",
		}

		valid, errs := form.Apply(&draft)

		assert.True(t, valid)
		assert.Empty(t, errs)
		assert.Equal(t, "board game night", draft.Name)
		assert.Equal(t, "bring snacks", draft.Description)
		assert.Equal(t, date(2017, time.November, 20), draft.StartDate)
		assert.Equal(t, date(2017, time.November, 23), draft.EndDate)
		assert.Equal(t, temporal.ClockTime{Hour: 17}, draft.StartTime.ClockTime)
		assert.Equal(t, temporal.ClockTime{Hour: 21}, draft.EndTime.ClockTime)
	})

	t.Run("missing name rejects", func(t *testing.T) {
		draft := Event{}
		valid, errs := EventForm{StartDate: "2017-11-20"}.Apply(&draft)

		assert.False(t, valid)
		assert.Equal(t, "name is required", errs["name"])
	})

	t.Run("missing description gets placeholder when valid", func(t *testing.T) {
		draft := Event{}
		valid, _ := EventForm{Name: "hiking", StartDate: "2017-11-20"}.Apply(&draft)

		assert.True(t, valid)
		assert.Equal(t, DefaultDescription, draft.Description)
	})

	t.Run("no placeholder on invalid submission", func(t *testing.T) {
		draft := Event{}
		valid, _ := EventForm{StartDate: "2017-11-20"}.Apply(&draft)

		assert.False(t, valid)
		assert.Empty(t, draft.Description)
	})

	t.Run("ending date before starting date rejects and clears", func(t *testing.T) {
		draft := Event{}
		form := EventForm{Name: "hiking", StartDate: "2017-11-23", EndDate: "2017-11-20"}

		valid, errs := form.Apply(&draft)

		assert.False(t, valid)
		assert.Equal(t, "ending date cannot occur before starting date", errs["date"])
		assert.True(t, draft.StartDate.IsZero())
		assert.True(t, draft.EndDate.IsZero())
	})

	t.Run("single date used for both ends", func(t *testing.T) {
		draft := Event{}
		valid, _ := EventForm{Name: "hiking", StartDate: "2017-11-20"}.Apply(&draft)

		assert.True(t, valid)
		assert.Equal(t, draft.StartDate, draft.EndDate)
		assert.Equal(t, date(2017, time.November, 20), draft.StartDate)
	})

	t.Run("end date alone used for both ends", func(t *testing.T) {
		draft := Event{}
		valid, _ := EventForm{Name: "hiking", EndDate: "2017-11-20"}.Apply(&draft)

		assert.True(t, valid)
		assert.Equal(t, draft.StartDate, draft.EndDate)
	})

	t.Run("no valid date rejects", func(t *testing.T) {
		draft := Event{}
		valid, errs := EventForm{Name: "hiking", StartDate: "someday"}.Apply(&draft)

		assert.False(t, valid)
		assert.Equal(t, "date is required", errs["date"])
	})

	t.Run("unparseable time leaves draft value unchanged", func(t *testing.T) {
		draft := Event{
			StartTime: temporal.NullClockTime{ClockTime: temporal.ClockTime{Hour: 10}, Valid: true},
		}
		form := EventForm{Name: "hiking", StartDate: "2017-11-20", StartTime: "garbage", EndTime: "15:00"}

		valid, _ := form.Apply(&draft)

		assert.True(t, valid)
		assert.Equal(t, temporal.ClockTime{Hour: 10}, draft.StartTime.ClockTime)
		assert.Equal(t, temporal.ClockTime{Hour: 15}, draft.EndTime.ClockTime)
	})

	t.Run("single-day event with inverted times rejects and clears", func(t *testing.T) {
		draft := Event{}
		form := EventForm{
			Name:      "hiking",
			StartDate: "2017-11-20",
			EndDate:   "2017-11-20",
			StartTime: "17:00",
			EndTime:   "9:00",
		}

		valid, errs := form.Apply(&draft)

		assert.False(t, valid)
		assert.Equal(t, "ending time cannot occur before starting time", errs["time"])
		assert.False(t, draft.StartTime.Valid)
		assert.False(t, draft.EndTime.Valid)
	})

	t.Run("multi-day event skips time ordering", func(t *testing.T) {
		draft := Event{}
		form := EventForm{
			Name:      "festival",
			StartDate: "2017-11-20",
			EndDate:   "2017-11-22",
			StartTime: "17:00",
			EndTime:   "9:00",
		}

		valid, errs := form.Apply(&draft)

		assert.True(t, valid)
		assert.Empty(t, errs)
		assert.Equal(t, temporal.ClockTime{Hour: 17}, draft.StartTime.ClockTime)
		assert.Equal(t, temporal.ClockTime{Hour: 9}, draft.EndTime.ClockTime)
	})

	t.Run("partial edit keeps unsent times", func(t *testing.T) {
		draft := Event{
			Name:        "camping",
			Description: "two nights",
			StartTime:   temporal.NullClockTime{ClockTime: temporal.ClockTime{Hour: 8}, Valid: true},
		}
		form := EventForm{Name: "camping trip", StartDate: "2018-06-01", EndDate: "2018-06-03"}

		valid, _ := form.Apply(&draft)

		assert.True(t, valid)
		assert.Equal(t, "camping trip", draft.Name)
		assert.Equal(t, "two nights", draft.Description)
		assert.True(t, draft.StartTime.Valid)
		assert.False(t, draft.EndTime.Valid)
	})
}
