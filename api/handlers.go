package main

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"events-calendar/data/models"
	"events-calendar/data/repository"
	"events-calendar/data/rsvp"
	"events-calendar/temporal"
)

// attendance is the slice of the RSVP state machine the handlers need.
type attendance interface {
	Attend(userID, eventID int64) error
	Leave(userID, eventID int64) error
	Consider(userID, eventID int64) error
	Unconsider(userID, eventID int64) error
}

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /activities", app.listActivities)
	mux.HandleFunc("DELETE /activities/{id}", app.deleteActivity)
	mux.HandleFunc("GET /activities/{id}/events", app.listEvents)
	mux.HandleFunc("GET /activities/{id}/calendar", app.activityCalendar)
	mux.HandleFunc("POST /activities/{id}/events", app.createEvent)
	mux.HandleFunc("PUT /events/{id}", app.updateEvent)
	mux.HandleFunc("DELETE /events/{id}", app.deleteEvent)

	mux.HandleFunc("POST /events/{id}/attend", app.rsvpTransition("attend", func(u, e int64) error { return app.RSVP.Attend(u, e) }))
	mux.HandleFunc("POST /events/{id}/leave", app.rsvpTransition("leave", func(u, e int64) error { return app.RSVP.Leave(u, e) }))
	mux.HandleFunc("POST /events/{id}/consider", app.rsvpTransition("consider", func(u, e int64) error { return app.RSVP.Consider(u, e) }))
	mux.HandleFunc("POST /events/{id}/unconsider", app.rsvpTransition("unconsider", func(u, e int64) error { return app.RSVP.Unconsider(u, e) }))

	mux.HandleFunc("GET /icons", app.listIcons)

	return mux
}

// callerID is the authenticated user id supplied by the session layer in
// front of this service. Zero means anonymous.
func (app *application) callerID(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

func eventFormFromRequest(r *http.Request) models.EventForm {
	return models.EventForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		StartDate:   r.FormValue("start_date"),
		StartTime:   r.FormValue("start_time"),
		EndDate:     r.FormValue("end_date"),
		EndTime:     r.FormValue("end_time"),
	}
}

func (app *application) listActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := app.Repo.ListActivities()
	if err != nil {
		app.Logger.Error().Err(err).Msg("listing activities")
		app.SendErrorJSON(w, http.StatusInternalServerError, rsvp.ErrDatabase)
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, activities, "activities")
}

func (app *application) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	if err := app.Repo.DeleteActivity(id); err != nil {
		if errors.Is(err, repository.ErrActivityHasEvents) {
			app.SendErrorJSON(w, http.StatusConflict, err)
			return
		}
		app.Logger.Error().Err(err).Int64("activity_id", id).Msg("deleting activity")
		app.SendErrorJSON(w, http.StatusInternalServerError, rsvp.ErrDatabase)
		return
	}

	app.Logger.Info().Int64("activity_id", id).Msg("activity deleted")
	app.SendSuccessJSON(w, http.StatusOK, nil)
}

func (app *application) listEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	params := map[string]string{}
	for key, vals := range r.URL.Query() {
		params[key] = vals[0]
	}
	params["activity_id"] = strconv.FormatInt(id, 10)

	events, err := app.Repo.QueryEvents(params)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	views := make([]eventView, len(events))
	for i, e := range events {
		views[i] = viewOfEvent(e)
	}
	app.SendSuccessJSON(w, http.StatusOK, views, "events")
}

// activityCalendar projects each event onto every calendar date it occupies
// within the requested window. The projection is recomputed per request,
// never stored.
func (app *application) activityCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)
	if d, ok := temporal.ParseDate(r.URL.Query().Get("from")); ok {
		from = d
	}
	if d, ok := temporal.ParseDate(r.URL.Query().Get("to")); ok {
		to = d
	}

	events, err := app.Repo.QueryEvents(map[string]string{
		"activity_id":    strconv.FormatInt(id, 10),
		"start_date_lte": to.Format("2006-01-02"),
		"end_date_gte":   from.Format("2006-01-02"),
		"limit":          "500",
	})
	if err != nil {
		app.Logger.Error().Err(err).Int64("activity_id", id).Msg("querying calendar events")
		app.SendErrorJSON(w, http.StatusInternalServerError, rsvp.ErrDatabase)
		return
	}

	days := map[string][]eventView{}
	for _, e := range events {
		for _, d := range e.OccupiedDates() {
			if d.Before(from) || d.After(to) {
				continue
			}
			key := d.Format("2006-01-02")
			days[key] = append(days[key], viewOfEvent(e))
		}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	calendar := make([]calendarDay, len(keys))
	for i, k := range keys {
		calendar[i] = calendarDay{Date: k, Events: days[k]}
	}
	app.SendSuccessJSON(w, http.StatusOK, calendar, "calendar")
}

func (app *application) createEvent(w http.ResponseWriter, r *http.Request) {
	activityID, err := pathID(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	userID := app.callerID(r)
	if userID == 0 {
		app.SendErrorJSON(w, http.StatusUnauthorized, rsvp.ErrLoginRequired)
		return
	}

	draft := models.Event{UserID: userID, ActivityID: activityID}
	valid, fieldErrors := eventFormFromRequest(r).Apply(&draft)
	if !valid {
		app.SendFailJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": fieldErrors,
			"event":  draft,
		})
		return
	}

	id, err := app.Repo.CreateEventWithHost(draft)
	if err != nil {
		app.Logger.Error().Err(err).Int64("user_id", userID).Msg("creating event")
		app.SendErrorJSON(w, http.StatusInternalServerError, rsvp.ErrDatabase)
		return
	}
	draft.ID = id

	app.Logger.Info().Int64("event_id", id).Int64("user_id", userID).Msg("event created")
	app.SendSuccessJSON(w, http.StatusCreated, viewOfEvent(draft), "event")
}

func (app *application) updateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	userID := app.callerID(r)
	if userID == 0 {
		app.SendErrorJSON(w, http.StatusUnauthorized, rsvp.ErrLoginRequired)
		return
	}

	draft, err := app.Repo.GetEventByID(eventID)
	if err != nil {
		app.SendErrorJSON(w, http.StatusNotFound, errors.New("event not found"))
		return
	}
	if draft.UserID != userID {
		app.SendErrorJSON(w, http.StatusForbidden, errors.New("only the host may edit this event"))
		return
	}

	valid, fieldErrors := eventFormFromRequest(r).Apply(&draft)
	if !valid {
		app.SendFailJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": fieldErrors,
			"event":  draft,
		})
		return
	}

	if err := app.Repo.Update(draft); err != nil {
		app.Logger.Error().Err(err).Int64("event_id", eventID).Msg("updating event")
		app.SendErrorJSON(w, http.StatusInternalServerError, rsvp.ErrDatabase)
		return
	}

	app.Logger.Info().Int64("event_id", eventID).Int64("user_id", userID).Msg("event updated")
	app.SendSuccessJSON(w, http.StatusOK, viewOfEvent(draft), "event")
}

func (app *application) deleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	userID := app.callerID(r)
	if userID == 0 {
		app.SendErrorJSON(w, http.StatusUnauthorized, rsvp.ErrLoginRequired)
		return
	}

	event, err := app.Repo.GetEventByID(eventID)
	if err != nil {
		app.SendErrorJSON(w, http.StatusNotFound, errors.New("event not found"))
		return
	}
	if event.UserID != userID {
		app.SendErrorJSON(w, http.StatusForbidden, errors.New("only the host may delete this event"))
		return
	}

	if err := app.Repo.Delete(event); err != nil {
		app.Logger.Error().Err(err).Int64("event_id", eventID).Msg("deleting event")
		app.SendErrorJSON(w, http.StatusInternalServerError, rsvp.ErrDatabase)
		return
	}

	app.Logger.Info().Int64("event_id", eventID).Int64("user_id", userID).Msg("event deleted")
	app.SendSuccessJSON(w, http.StatusOK, nil)
}

// rsvpTransition adapts one state machine transition into a handler. The
// machine's message strings go to the client verbatim.
func (app *application) rsvpTransition(name string, fn func(userID, eventID int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := pathID(r)
		if err != nil {
			app.SendErrorJSON(w, http.StatusBadRequest, err)
			return
		}
		userID := app.callerID(r)

		if err := fn(userID, eventID); err != nil {
			app.Logger.Info().
				Err(err).
				Str("transition", name).
				Int64("user_id", userID).
				Int64("event_id", eventID).
				Msg("rsvp transition refused")
			app.SendErrorJSON(w, rsvpStatusCode(err), err)
			return
		}

		app.Logger.Info().
			Str("transition", name).
			Int64("user_id", userID).
			Int64("event_id", eventID).
			Msg("rsvp transition applied")
		app.SendSuccessJSON(w, http.StatusOK, map[string]string{"transition": name})
	}
}

func rsvpStatusCode(err error) int {
	switch {
	case errors.Is(err, rsvp.ErrLoginRequired):
		return http.StatusUnauthorized
	case errors.Is(err, rsvp.ErrDatabase):
		return http.StatusInternalServerError
	default:
		// precondition failures on the current state
		return http.StatusConflict
	}
}

func (app *application) listIcons(w http.ResponseWriter, r *http.Request) {
	icons, err := IconList(app.StaticDir)
	if err != nil {
		app.Logger.Error().Err(err).Str("dir", app.StaticDir).Msg("listing icons")
		app.SendErrorJSON(w, http.StatusInternalServerError, errors.New("icon discovery failed"))
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, icons, "icons")
}

// eventView mirrors the serialized record shape the listing templates
// consume; times use 12-hour notation.
type eventView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	StartDate     string `json:"start date"`
	StartTime     string `json:"start time,omitempty"`
	StartDateLong string `json:"starting date long form"`
	EndDate       string `json:"end date"`
	EndTime       string `json:"end time,omitempty"`
}

type calendarDay struct {
	Date   string      `json:"date"`
	Events []eventView `json:"events"`
}

func viewOfEvent(e models.Event) eventView {
	v := eventView{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		StartDate:     e.StartDate.Format("2006-01-02"),
		StartDateLong: e.StartDateLongForm(),
		EndDate:       e.EndDate.Format("2006-01-02"),
	}
	if e.StartTime.Valid {
		v.StartTime = e.StartTime.ClockTime.TwelveHour()
	}
	if e.EndTime.Valid {
		v.EndTime = e.EndTime.ClockTime.TwelveHour()
	}
	return v
}
