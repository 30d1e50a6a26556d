package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

// ClockRepository persists prayer clocks and their attached rosters.
type ClockRepository struct {
	db *sqlx.DB
}

// NewClockRepository constructs the repository.
func NewClockRepository(db *sqlx.DB) *ClockRepository {
	return &ClockRepository{db: db}
}

// Create inserts a new prayer clock.
func (r *ClockRepository) Create(ctx context.Context, clock *models.PrayerClock) error {
	if clock.ID == "" {
		clock.ID = uuid.NewString()
	}
	if clock.CreatedAt.IsZero() {
		clock.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO prayer_clocks (id, title, date, created_at)
	VALUES (:id, :title, :date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, clock); err != nil {
		return fmt.Errorf("create prayer clock: %w", err)
	}
	return nil
}

// List returns every clock, newest date first.
func (r *ClockRepository) List(ctx context.Context) ([]models.PrayerClock, error) {
	const query = `SELECT id, title, date, created_at FROM prayer_clocks ORDER BY date DESC, created_at DESC`
	var clocks []models.PrayerClock
	if err := r.db.SelectContext(ctx, &clocks, query); err != nil {
		return nil, fmt.Errorf("list prayer clocks: %w", err)
	}
	return clocks, nil
}

// GetByID fetches a clock by identifier.
func (r *ClockRepository) GetByID(ctx context.Context, id string) (*models.PrayerClock, error) {
	const query = `SELECT id, title, date, created_at FROM prayer_clocks WHERE id = $1`
	var clock models.PrayerClock
	if err := r.db.GetContext(ctx, &clock, query, id); err != nil {
		return nil, err
	}
	return &clock, nil
}

// FindLatest returns the clock with the most recent date, the one the
// public site displays.
func (r *ClockRepository) FindLatest(ctx context.Context) (*models.PrayerClock, error) {
	const query = `SELECT id, title, date, created_at FROM prayer_clocks ORDER BY date DESC, created_at DESC LIMIT 1`
	var clock models.PrayerClock
	if err := r.db.GetContext(ctx, &clock, query); err != nil {
		return nil, err
	}
	return &clock, nil
}

// Update rewrites a clock's title and date.
func (r *ClockRepository) Update(ctx context.Context, clock *models.PrayerClock) error {
	const query = `UPDATE prayer_clocks SET title = :title, date = :date WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, clock)
	if err != nil {
		return fmt.Errorf("update prayer clock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update prayer clock rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a clock together with its volunteer slots and prayer
// requests in a single transaction.
func (r *ClockRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete clock tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM volunteer_slots WHERE clock_id = $1`, id); err != nil {
		return fmt.Errorf("delete clock volunteers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM prayer_requests WHERE clock_id = $1`, id); err != nil {
		return fmt.Errorf("delete clock prayer requests: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM prayer_clocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prayer clock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete prayer clock rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete clock tx: %w", err)
	}
	return nil
}
