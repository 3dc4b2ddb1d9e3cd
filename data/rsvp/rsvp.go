// Package rsvp enforces the attendance rules for a (user, event) pair. The
// pair occupies at most one of the attending / considering states; hosting
// is fixed at event creation and is not touched here. Every transition runs
// as a single transaction so no observer sees both states, or neither,
// mid-switch.
package rsvp

import (
	"database/sql"
	"errors"
)

// The message strings are part of the observable contract; handlers send
// them verbatim in JSON responses.
var (
	ErrLoginRequired      = errors.New("user login required")
	ErrAlreadyAttending   = errors.New("user already attending")
	ErrNotAttending       = errors.New("user was not attending event")
	ErrAlreadyConsidering = errors.New("user already considering")
	ErrNotConsidering     = errors.New("user was not considering event")
	ErrDatabase           = errors.New("database error encountered")
)

// StateMachine performs attendance transitions against the store. The store
// handle is passed in at construction; there is no package-level state.
type StateMachine struct {
	DB *sql.DB
}

func New(db *sql.DB) *StateMachine {
	return &StateMachine{DB: db}
}

// Attend moves the pair to the attending state, evicting a considering row
// if one exists. Fails with ErrAlreadyAttending when the user already
// attends; the store is left untouched on any failure.
func (sm *StateMachine) Attend(userID, eventID int64) error {
	return sm.enter(userID, eventID, "attending", "considering", ErrAlreadyAttending)
}

// Leave removes the attending row. Fails with ErrNotAttending when there is
// none.
func (sm *StateMachine) Leave(userID, eventID int64) error {
	return sm.exit(userID, eventID, "attending", ErrNotAttending)
}

// Consider moves the pair to the considering state, evicting an attending
// row if one exists.
func (sm *StateMachine) Consider(userID, eventID int64) error {
	return sm.enter(userID, eventID, "considering", "attending", ErrAlreadyConsidering)
}

// Unconsider removes the considering row.
func (sm *StateMachine) Unconsider(userID, eventID int64) error {
	return sm.exit(userID, eventID, "considering", ErrNotConsidering)
}

// enter inserts a row into the target state table after deleting any row in
// the opposite one, all inside one transaction. conflictErr reports a
// precondition failure on the current state; any store failure rolls the
// unit back and surfaces ErrDatabase.
func (sm *StateMachine) enter(userID, eventID int64, target, opposite string, conflictErr error) error {
	if userID == 0 {
		return ErrLoginRequired
	}

	tx, err := sm.DB.Begin()
	if err != nil {
		return ErrDatabase
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM " + target + " WHERE user_id = $1 AND event_id = $2)"
	if err := tx.QueryRow(query, userID, eventID).Scan(&exists); err != nil {
		_ = tx.Rollback()
		return ErrDatabase
	}
	if exists {
		_ = tx.Rollback()
		return conflictErr
	}

	if _, err := tx.Exec("DELETE FROM "+opposite+" WHERE user_id = $1 AND event_id = $2",
		userID, eventID); err != nil {
		_ = tx.Rollback()
		return ErrDatabase
	}

	if _, err := tx.Exec("INSERT INTO "+target+" (user_id, event_id) VALUES ($1, $2)",
		userID, eventID); err != nil {
		_ = tx.Rollback()
		return ErrDatabase
	}

	if err := tx.Commit(); err != nil {
		return ErrDatabase
	}
	return nil
}

// exit deletes the row in the given state table. absentErr reports the
// precondition failure when no row was there to delete.
func (sm *StateMachine) exit(userID, eventID int64, state string, absentErr error) error {
	if userID == 0 {
		return ErrLoginRequired
	}

	res, err := sm.DB.Exec("DELETE FROM "+state+" WHERE user_id = $1 AND event_id = $2",
		userID, eventID)
	if err != nil {
		return ErrDatabase
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ErrDatabase
	}
	if affected == 0 {
		return absentErr
	}
	return nil
}
