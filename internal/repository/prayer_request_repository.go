package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

// PrayerRequestRepository persists the intentions attached to a clock.
type PrayerRequestRepository struct {
	db *sqlx.DB
}

// NewPrayerRequestRepository constructs the repository.
func NewPrayerRequestRepository(db *sqlx.DB) *PrayerRequestRepository {
	return &PrayerRequestRepository{db: db}
}

// ListByClock returns a clock's intentions in insertion order.
func (r *PrayerRequestRepository) ListByClock(ctx context.Context, clockID string) ([]models.PrayerRequest, error) {
	const query = `SELECT id, clock_id, description FROM prayer_requests WHERE clock_id = $1 ORDER BY id ASC`
	var requests []models.PrayerRequest
	if err := r.db.SelectContext(ctx, &requests, query, clockID); err != nil {
		return nil, fmt.Errorf("list prayer requests: %w", err)
	}
	return requests, nil
}

// GetByID fetches one intention.
func (r *PrayerRequestRepository) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	const query = `SELECT id, clock_id, description FROM prayer_requests WHERE id = $1`
	var request models.PrayerRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// Create inserts a new intention.
func (r *PrayerRequestRepository) Create(ctx context.Context, request *models.PrayerRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	const query = `INSERT INTO prayer_requests (id, clock_id, description)
	VALUES (:id, :clock_id, :description)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create prayer request: %w", err)
	}
	return nil
}

// Update rewrites an intention's text.
func (r *PrayerRequestRepository) Update(ctx context.Context, request *models.PrayerRequest) error {
	const query = `UPDATE prayer_requests SET description = :description WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, request)
	if err != nil {
		return fmt.Errorf("update prayer request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update prayer request rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an intention, returning the number of rows removed.
func (r *PrayerRequestRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prayer_requests WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete prayer request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete prayer request rows affected: %w", err)
	}
	return affected, nil
}
