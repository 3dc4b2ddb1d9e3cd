package repository

import (
	"log"
	"testing"
	"time"

	"events-calendar/data/models"
	"events-calendar/data/rsvp"
	"events-calendar/temporal"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func countRows(t *testing.T, table string, eventID int64) int {
	var n int
	err := testDB.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE event_id = $1", eventID).Scan(&n)
	if err != nil {
		t.Fatalf("counting %s rows: %s", table, err)
	}
	return n
}

func TestDBRepo(t *testing.T) {
	t.Run("Create test UserAccount", func(t *testing.T) {
		defer handleRecover(t.Name())

		u := models.UserAccount{
			Name:  "Tester",
			Email: "hello@example.com",
		}
		id, err := testRepo.Create(u)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("Create test Activity", func(t *testing.T) {
		defer handleRecover(t.Name())

		a := models.Activity{
			UserID: 1,
			Name:   "outdoors",
			Icon:   "/static/img/outdoors-icon.svg",
		}
		id, err := testRepo.Create(a)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("CreateEventWithHost writes exactly one hosting row", func(t *testing.T) {
		defer handleRecover(t.Name())

		e := models.Event{
			UserID:      1,
			ActivityID:  1,
			Name:        "camping",
			Description: "two nights at the lake",
			StartDate:   date(2019, time.August, 5),
			EndDate:     date(2019, time.August, 7),
			StartTime:   temporal.NullClockTime{ClockTime: temporal.ClockTime{Hour: 9}, Valid: true},
		}
		id, err := testRepo.CreateEventWithHost(e)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, 1, countRows(t, "hosting", id))
	})

	t.Run("Test GetEventByID", func(t *testing.T) {
		defer handleRecover(t.Name())

		e, err := testRepo.GetEventByID(1)
		assert.NoError(t, err)

		assert.Equal(t, int64(1), e.ID)
		assert.Equal(t, int64(1), e.UserID)
		assert.Equal(t, int64(1), e.ActivityID)
		assert.Equal(t, "camping", e.Name)
		assert.True(t, date(2019, time.August, 5).Equal(e.StartDate))
		assert.True(t, date(2019, time.August, 7).Equal(e.EndDate))
		assert.True(t, e.StartTime.Valid)
		assert.Equal(t, temporal.ClockTime{Hour: 9}, e.StartTime.ClockTime)
		assert.False(t, e.EndTime.Valid)
		assert.NotEmpty(t, e.CreatedAt)
	})

	t.Run("Test Update and its persistence", func(t *testing.T) {
		defer handleRecover(t.Name())

		e, err := testRepo.GetEventByID(1)
		assert.NoError(t, err)

		e.Description = "three nights at the lake"
		assert.NoError(t, testRepo.Update(e))

		e, err = testRepo.GetEventByID(1)
		assert.NoError(t, err)
		assert.Equal(t, "three nights at the lake", e.Description)
	})

	t.Run("Test unique email constraint", func(t *testing.T) {
		defer handleRecover(t.Name())

		u := models.UserAccount{
			Name:  "Copycat",
			Email: "hello@example.com",
		}
		_, err := testRepo.Create(u)
		assert.Error(t, err)
	})

	t.Run("DeleteActivity refuses while events exist", func(t *testing.T) {
		defer handleRecover(t.Name())

		err := testRepo.DeleteActivity(1)
		assert.ErrorIs(t, err, ErrActivityHasEvents)

		_, err = testRepo.GetActivityByID(1)
		assert.NoError(t, err)
	})

	t.Run("DeleteActivity removes an empty activity", func(t *testing.T) {
		defer handleRecover(t.Name())

		id, err := testRepo.Create(models.Activity{
			UserID: 1,
			Name:   "film",
			Icon:   "/static/img/film-icon.svg",
		})
		assert.NoError(t, err)

		assert.NoError(t, testRepo.DeleteActivity(id))
		_, err = testRepo.GetActivityByID(id)
		assert.Error(t, err)
	})

	t.Run("RSVP exclusivity against a live store", func(t *testing.T) {
		defer handleRecover(t.Name())

		sm := rsvp.New(testRepo.Connection())

		assert.NoError(t, sm.Consider(1, 1))
		assert.Equal(t, 1, countRows(t, "considering", 1))

		assert.NoError(t, sm.Attend(1, 1))
		assert.Equal(t, 1, countRows(t, "attending", 1))
		assert.Equal(t, 0, countRows(t, "considering", 1))

		assert.ErrorIs(t, sm.Attend(1, 1), rsvp.ErrAlreadyAttending)

		assert.NoError(t, sm.Leave(1, 1))
		assert.ErrorIs(t, sm.Leave(1, 1), rsvp.ErrNotAttending)
		assert.Equal(t, 0, countRows(t, "attending", 1))
	})

	t.Run("Test QueryEvents", func(t *testing.T) {
		defer handleRecover(t.Name())
		seedDBWithEvents(t)

		var tests = []struct {
			name        string
			queryParams map[string]string
			expectedLen int
			expectedErr string
		}{
			{
				name:        "by name",
				queryParams: map[string]string{"name": "board game night"},
				expectedLen: 2,
			},
			{
				name:        "no query params uses default limit",
				queryParams: map[string]string{},
				expectedLen: 10,
			},
			{
				name:        "increase limit",
				queryParams: map[string]string{"limit": "30"},
				expectedLen: 19,
			},
			{
				name:        "date window",
				queryParams: map[string]string{"start_date_gte": "2021-06-01", "start_date_lte": "2021-06-30"},
				expectedLen: 2,
			},
			{
				name:        "invalid model field",
				queryParams: map[string]string{"noSuchThing": "who cares?"},
				expectedErr: "invalid query: invalid query parameter: noSuchThing",
			},
			{
				name:        "no matches",
				queryParams: map[string]string{"name": "noSuchEvent"},
				expectedLen: 0,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				defer handleRecover(tt.name)
				events, err := testRepo.QueryEvents(tt.queryParams)

				if tt.expectedErr != "" {
					assert.EqualError(t, err, tt.expectedErr)
				} else {
					assert.NoError(t, err)
					assert.Equal(t, tt.expectedLen, len(events))
				}
			})
		}
	})

	t.Run("QueryEvents sorts by start date by default", func(t *testing.T) {
		defer handleRecover(t.Name())

		events, err := testRepo.QueryEvents(map[string]string{"limit": "30"})
		assert.NoError(t, err)

		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].StartDate.Before(events[i-1].StartDate))
		}
	})

	t.Run("Delete event cascades its RSVP rows", func(t *testing.T) {
		defer handleRecover(t.Name())

		sm := rsvp.New(testRepo.Connection())
		assert.NoError(t, sm.Consider(1, 1))

		e, err := testRepo.GetEventByID(1)
		assert.NoError(t, err)
		assert.NoError(t, testRepo.Delete(e))

		_, err = testRepo.GetEventByID(1)
		assert.Error(t, err)
		assert.Equal(t, 0, countRows(t, "hosting", 1))
		assert.Equal(t, 0, countRows(t, "considering", 1))
	})
}

func seedDBWithEvents(t *testing.T) {
	defer handleRecover("seeding DB")
	log.Println("Seeding DB")

	var events []models.Event
	e1 := models.Event{
		UserID:      1,
		ActivityID:  1,
		Name:        "board game night",
		Description: "at the manor hotel",
		StartDate:   date(2021, time.June, 5),
		EndDate:     date(2021, time.June, 5),
	}
	e2 := models.Event{
		UserID:      1,
		ActivityID:  1,
		Name:        "board game night",
		Description: "a different event with the same name",
		StartDate:   date(2021, time.June, 12),
		EndDate:     date(2021, time.June, 12),
	}
	e3 := models.Event{
		UserID:      1,
		ActivityID:  1,
		Name:        "Brooklyn Bridge Park BBQ",
		Description: "bring a side",
		StartDate:   date(2021, time.July, 3),
		EndDate:     date(2021, time.July, 4),
	}
	events = append(events, e1, e2, e3)

	faker := gofakeit.New(0)
	for i := 0; i < 15; i++ {
		start := faker.DateRange(date(2022, time.January, 1), date(2022, time.December, 31))
		start = date(start.Year(), start.Month(), start.Day())
		e := models.Event{
			UserID:      1,
			ActivityID:  1,
			Name:        faker.LoremIpsumSentence(4),
			Description: faker.LoremIpsumSentence(15),
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 1),
		}
		if _, err := testRepo.Create(e); err != nil {
			t.Fatalf("Could not seed DB: %s", err)
		}
	}

	for _, e := range events {
		if _, err := testRepo.Create(e); err != nil {
			t.Fatalf("Could not seed DB: %s", err)
		}
	}
	log.Println("DB Seeded")
}
