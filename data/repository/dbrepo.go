package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	"events-calendar/data/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrActivityHasEvents guards the referential rule that an activity cannot
// be deleted while it still owns events.
var ErrActivityHasEvents = errors.New("activity still has events")

type DBRepo interface {
	Connection() *sql.DB
	RunMigrations(dbName string) error
	Create(m models.Model) (id int64, err error)
	Update(m models.Model) error
	Delete(m models.Model) error
	GetModelByID(m models.Model, id int64) (models.Model, error)
	GetUserByID(id int64) (models.UserAccount, error)
	GetActivityByID(id int64) (models.Activity, error)
	GetEventByID(id int64) (models.Event, error)
	ListActivities() ([]models.Activity, error)
	QueryEvents(queryParams map[string]string) ([]models.Event, error)
	CreateEventWithHost(e models.Event) (eventID int64, err error)
	DeleteActivity(id int64) error
}

type SqlRepo struct {
	DB *sql.DB
}

func (sr *SqlRepo) Connection() *sql.DB {
	return sr.DB
}

func (sr *SqlRepo) RunMigrations(dbName string) error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("failed to get current file path")
	}

	dir := filepath.Dir(filename)
	migrationsDir := filepath.Join(dir, "../migrations")
	// Convert backslashes to forward slashes for Windows compatibility
	migrationsDir = strings.ReplaceAll(migrationsDir, "\\", "/")

	driver, err := pgx.WithInstance(sr.DB, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	log.Println("Migrations complete")
	return nil
}

// Create inserts a model into the corresponding db table and returns the id
// of the newly created record.
func (sr *SqlRepo) Create(m models.Model) (id int64, err error) {
	if err := models.ValidateModel(m); err != nil {
		return 0, err
	}

	vals := models.GetValsFromModel(m)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		m.TableName(),
		strings.Join(models.GetColumnNames(m, true), ", "),
		placeholders(len(vals)))

	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("error preparing query: %v", err)
	}
	defer stmt.Close()

	row := stmt.QueryRow(vals...)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %v", err)
	}

	return id, nil
}

func (sr *SqlRepo) Update(m models.Model) error {
	if err := models.ValidateModel(m); err != nil {
		return err
	}

	columns := models.GetColumnNames(m, true)

	setClause := make([]string, len(columns))
	for i, c := range columns {
		setClause[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		m.TableName(),
		strings.Join(setClause, ", "),
		len(columns)+1)

	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("error preparing query: %v", err)
	}
	defer stmt.Close()

	vals := models.GetValsFromModel(m)
	vals = append(vals, m.GetID())
	if _, err := stmt.Exec(vals...); err != nil {
		return fmt.Errorf("error executing query: %v", err)
	}
	return nil
}

// Delete removes the record. RSVP rows referencing a deleted event go with
// it through the schema's ON DELETE CASCADE.
func (sr *SqlRepo) Delete(m models.Model) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", m.TableName())
	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(m.GetID()); err != nil {
		return fmt.Errorf("error deleting record: %v", err)
	}
	return nil
}

// GetModelByID retrieves a model from the db by its ID and returns it. The
// model must be passed as a pointer to the desired model type.
func (sr *SqlRepo) GetModelByID(m models.Model, id int64) (models.Model, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", m.TableName())
	r := sr.DB.QueryRow(query, id)

	if err := models.ScanRowToModel(m, r); err != nil {
		return nil, err
	}
	return m, nil
}

func (sr *SqlRepo) GetUserByID(id int64) (models.UserAccount, error) {
	model, err := sr.GetModelByID(&models.UserAccount{}, id)
	if err != nil {
		return models.UserAccount{}, err
	}

	user, ok := model.(*models.UserAccount)
	if !ok {
		return models.UserAccount{}, fmt.Errorf("type assertion to UserAccount failed")
	}

	return *user, nil
}

func (sr *SqlRepo) GetActivityByID(id int64) (models.Activity, error) {
	model, err := sr.GetModelByID(&models.Activity{}, id)
	if err != nil {
		return models.Activity{}, err
	}

	activity, ok := model.(*models.Activity)
	if !ok {
		return models.Activity{}, fmt.Errorf("type assertion to Activity failed")
	}

	return *activity, nil
}

func (sr *SqlRepo) GetEventByID(id int64) (models.Event, error) {
	model, err := sr.GetModelByID(&models.Event{}, id)
	if err != nil {
		return models.Event{}, err
	}

	event, ok := model.(*models.Event)
	if !ok {
		return models.Event{}, fmt.Errorf("type assertion to Event failed")
	}

	return *event, nil
}

func (sr *SqlRepo) ListActivities() ([]models.Activity, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY name", models.Activity{}.TableName())
	rows, err := sr.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %v", err)
	}
	defer rows.Close()

	result, err := models.ScanRowsToSliceOfModels(models.Activity{}, rows, 10)
	if err != nil {
		return nil, err
	}

	activities, ok := result.(*[]models.Activity)
	if !ok {
		return nil, fmt.Errorf("type assertion to []Activity failed")
	}
	return *activities, nil
}

// CreateEventWithHost inserts the event and its creator's hosting row as a
// single transaction. Hosting is written here, once, and never re-assigned.
func (sr *SqlRepo) CreateEventWithHost(e models.Event) (eventID int64, err error) {
	if err := models.ValidateModel(e); err != nil {
		return 0, err
	}

	tx, err := sr.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %v", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	vals := models.GetValsFromModel(e)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		e.TableName(),
		strings.Join(models.GetColumnNames(e, true), ", "),
		placeholders(len(vals)))

	if err := tx.QueryRow(query, vals...).Scan(&eventID); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("error inserting event: %v", err)
	}

	if _, err := tx.Exec("INSERT INTO hosting (user_id, event_id) VALUES ($1, $2)",
		e.UserID, eventID); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("error inserting hosting record: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return eventID, nil
}

// DeleteActivity removes an activity unless it still owns events.
func (sr *SqlRepo) DeleteActivity(id int64) error {
	tx, err := sr.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %v", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM event WHERE activity_id = $1", id).Scan(&count); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("error counting events: %v", err)
	}
	if count > 0 {
		_ = tx.Rollback()
		return ErrActivityHasEvents
	}

	if _, err := tx.Exec("DELETE FROM activity WHERE id = $1", id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("error deleting activity: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := 1; i <= n; i++ {
		ph[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(ph, ", ")
}
