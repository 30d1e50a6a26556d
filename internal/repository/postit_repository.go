package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

// PostItRepository persists the notes pinned to boards.
type PostItRepository struct {
	db *sqlx.DB
}

// NewPostItRepository constructs the repository.
func NewPostItRepository(db *sqlx.DB) *PostItRepository {
	return &PostItRepository{db: db}
}

// List returns every post-it joined with its board title for admin lists.
func (r *PostItRepository) List(ctx context.Context) ([]models.PostItDetail, error) {
	const query = `SELECT p.id, p.board_id, p.content, b.title AS board_title
	FROM post_its p
	LEFT JOIN boards b ON b.id = p.board_id
	ORDER BY b.start_date DESC, p.id ASC`
	var postIts []models.PostItDetail
	if err := r.db.SelectContext(ctx, &postIts, query); err != nil {
		return nil, fmt.Errorf("list post-its: %w", err)
	}
	return postIts, nil
}

// ListByBoard returns the post-its of one board in insertion order.
func (r *PostItRepository) ListByBoard(ctx context.Context, boardID string) ([]models.PostIt, error) {
	const query = `SELECT id, board_id, content FROM post_its WHERE board_id = $1 ORDER BY id ASC`
	var postIts []models.PostIt
	if err := r.db.SelectContext(ctx, &postIts, query, boardID); err != nil {
		return nil, fmt.Errorf("list board post-its: %w", err)
	}
	return postIts, nil
}

// GetByID fetches one post-it.
func (r *PostItRepository) GetByID(ctx context.Context, id string) (*models.PostIt, error) {
	const query = `SELECT id, board_id, content FROM post_its WHERE id = $1`
	var postIt models.PostIt
	if err := r.db.GetContext(ctx, &postIt, query, id); err != nil {
		return nil, err
	}
	return &postIt, nil
}

// Create inserts a new post-it.
func (r *PostItRepository) Create(ctx context.Context, postIt *models.PostIt) error {
	if postIt.ID == "" {
		postIt.ID = uuid.NewString()
	}
	const query = `INSERT INTO post_its (id, board_id, content) VALUES (:id, :board_id, :content)`
	if _, err := r.db.NamedExecContext(ctx, query, postIt); err != nil {
		return fmt.Errorf("create post-it: %w", err)
	}
	return nil
}

// Update rewrites a post-it's content.
func (r *PostItRepository) Update(ctx context.Context, postIt *models.PostIt) error {
	const query = `UPDATE post_its SET content = :content WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, postIt)
	if err != nil {
		return fmt.Errorf("update post-it: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post-it rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a post-it, returning the number of rows removed so the
// service can treat a repeat delete as already done.
func (r *PostItRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_its WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete post-it: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete post-it rows affected: %w", err)
	}
	return affected, nil
}
