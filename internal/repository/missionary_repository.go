package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

// MissionaryRepository persists missionary profiles.
type MissionaryRepository struct {
	db *sqlx.DB
}

// NewMissionaryRepository constructs the repository.
func NewMissionaryRepository(db *sqlx.DB) *MissionaryRepository {
	return &MissionaryRepository{db: db}
}

const missionaryColumns = `id, first_name, last_name, birth_date, city, country, image_url, summary, story`

// List returns every missionary ordered by name.
func (r *MissionaryRepository) List(ctx context.Context) ([]models.Missionary, error) {
	query := fmt.Sprintf(`SELECT %s FROM missionaries ORDER BY first_name ASC, last_name ASC`, missionaryColumns)
	var missionaries []models.Missionary
	if err := r.db.SelectContext(ctx, &missionaries, query); err != nil {
		return nil, fmt.Errorf("list missionaries: %w", err)
	}
	return missionaries, nil
}

// GetByID fetches one missionary.
func (r *MissionaryRepository) GetByID(ctx context.Context, id string) (*models.Missionary, error) {
	query := fmt.Sprintf(`SELECT %s FROM missionaries WHERE id = $1`, missionaryColumns)
	var missionary models.Missionary
	if err := r.db.GetContext(ctx, &missionary, query, id); err != nil {
		return nil, err
	}
	return &missionary, nil
}

// Create inserts a missionary profile.
func (r *MissionaryRepository) Create(ctx context.Context, missionary *models.Missionary) error {
	if missionary.ID == "" {
		missionary.ID = uuid.NewString()
	}
	const query = `INSERT INTO missionaries (id, first_name, last_name, birth_date, city, country, image_url, summary, story)
	VALUES (:id, :first_name, :last_name, :birth_date, :city, :country, :image_url, :summary, :story)`
	if _, err := r.db.NamedExecContext(ctx, query, missionary); err != nil {
		return fmt.Errorf("create missionary: %w", err)
	}
	return nil
}

// Update rewrites a missionary profile.
func (r *MissionaryRepository) Update(ctx context.Context, missionary *models.Missionary) error {
	const query = `UPDATE missionaries SET first_name = :first_name, last_name = :last_name,
	birth_date = :birth_date, city = :city, country = :country,
	image_url = :image_url, summary = :summary, story = :story
	WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, missionary)
	if err != nil {
		return fmt.Errorf("update missionary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update missionary rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a missionary profile.
func (r *MissionaryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM missionaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete missionary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete missionary rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
