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

// NewsRepository persists published news items.
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository constructs the repository.
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// List returns news newest first, capped at limit when positive.
func (r *NewsRepository) List(ctx context.Context, limit int) ([]models.NewsItem, error) {
	query := `SELECT id, title, body, image_path, published_at FROM news ORDER BY published_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	var items []models.NewsItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// GetByID fetches one news item.
func (r *NewsRepository) GetByID(ctx context.Context, id string) (*models.NewsItem, error) {
	const query = `SELECT id, title, body, image_path, published_at FROM news WHERE id = $1`
	var item models.NewsItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a news item.
func (r *NewsRepository) Create(ctx context.Context, item *models.NewsItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.PublishedAt.IsZero() {
		item.PublishedAt = time.Now().UTC()
	}
	const query = `INSERT INTO news (id, title, body, image_path, published_at)
	VALUES (:id, :title, :body, :image_path, :published_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// Update rewrites a news item.
func (r *NewsRepository) Update(ctx context.Context, item *models.NewsItem) error {
	const query = `UPDATE news SET title = :title, body = :body, image_path = :image_path WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update news rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a news item.
func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete news rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
