package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

// VolunteerRepository persists the hour-by-hour roster of a prayer clock.
type VolunteerRepository struct {
	db *sqlx.DB
}

// NewVolunteerRepository constructs the repository.
func NewVolunteerRepository(db *sqlx.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// ListByClock returns the claimed slots of a clock ordered by hour.
func (r *VolunteerRepository) ListByClock(ctx context.Context, clockID string) ([]models.VolunteerSlot, error) {
	const query = `SELECT id, clock_id, volunteer_name, hour FROM volunteer_slots WHERE clock_id = $1 ORDER BY hour ASC, volunteer_name ASC`
	var slots []models.VolunteerSlot
	if err := r.db.SelectContext(ctx, &slots, query, clockID); err != nil {
		return nil, fmt.Errorf("list volunteer slots: %w", err)
	}
	return slots, nil
}

// GetByID fetches a single slot.
func (r *VolunteerRepository) GetByID(ctx context.Context, id string) (*models.VolunteerSlot, error) {
	const query = `SELECT id, clock_id, volunteer_name, hour FROM volunteer_slots WHERE id = $1`
	var slot models.VolunteerSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ExistsByClockAndHour checks whether the hour is already claimed on the
// clock, optionally ignoring one slot during updates.
func (r *VolunteerRepository) ExistsByClockAndHour(ctx context.Context, clockID string, hour int, excludeID string) (bool, error) {
	query := `SELECT 1 FROM volunteer_slots WHERE clock_id = $1 AND hour = $2`
	args := []interface{}{clockID, hour}
	if excludeID != "" {
		query += ` AND id <> $3`
		args = append(args, excludeID)
	}
	query += ` LIMIT 1`

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check slot hour: %w", err)
	}
	return true, nil
}

// Create inserts a new volunteer slot.
func (r *VolunteerRepository) Create(ctx context.Context, slot *models.VolunteerSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	const query = `INSERT INTO volunteer_slots (id, clock_id, volunteer_name, hour)
	VALUES (:id, :clock_id, :volunteer_name, :hour)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create volunteer slot: %w", err)
	}
	return nil
}

// Update rewrites a slot's volunteer name and hour.
func (r *VolunteerRepository) Update(ctx context.Context, slot *models.VolunteerSlot) error {
	const query = `UPDATE volunteer_slots SET volunteer_name = :volunteer_name, hour = :hour WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, slot)
	if err != nil {
		return fmt.Errorf("update volunteer slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update volunteer slot rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a slot. Returns the number of rows removed so callers can
// treat a missing slot as already done.
func (r *VolunteerRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM volunteer_slots WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete volunteer slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete volunteer slot rows affected: %w", err)
	}
	return affected, nil
}
