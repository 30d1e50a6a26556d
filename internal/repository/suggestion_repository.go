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

// SuggestionRepository persists visitor submissions and their moderation
// outcomes.
type SuggestionRepository struct {
	db *sqlx.DB
}

// NewSuggestionRepository constructs the repository.
func NewSuggestionRepository(db *sqlx.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create inserts a new pending suggestion.
func (r *SuggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) error {
	if suggestion.ID == "" {
		suggestion.ID = uuid.NewString()
	}
	if suggestion.Status == "" {
		suggestion.Status = models.SuggestionStatusPending
	}
	if suggestion.CreatedAt.IsZero() {
		suggestion.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO suggestions (id, board_id, author_name, content, status, created_at, reviewed_at)
	VALUES (:id, :board_id, :author_name, :content, :status, :created_at, :reviewed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, suggestion); err != nil {
		return fmt.Errorf("create suggestion: %w", err)
	}
	return nil
}

// GetByID fetches one suggestion.
func (r *SuggestionRepository) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	const query = `SELECT id, board_id, author_name, content, status, created_at, reviewed_at
	FROM suggestions WHERE id = $1`
	var suggestion models.Suggestion
	if err := r.db.GetContext(ctx, &suggestion, query, id); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// ListPending returns unreviewed suggestions, oldest first, so moderators
// work the queue in arrival order.
func (r *SuggestionRepository) ListPending(ctx context.Context) ([]models.Suggestion, error) {
	const query = `SELECT id, board_id, author_name, content, status, created_at, reviewed_at
	FROM suggestions WHERE status = $1 ORDER BY created_at ASC, id ASC`
	var suggestions []models.Suggestion
	if err := r.db.SelectContext(ctx, &suggestions, query, models.SuggestionStatusPending); err != nil {
		return nil, fmt.Errorf("list pending suggestions: %w", err)
	}
	return suggestions, nil
}

// ListReviewed returns the moderation history, latest decision first.
func (r *SuggestionRepository) ListReviewed(ctx context.Context) ([]models.Suggestion, error) {
	const query = `SELECT id, board_id, author_name, content, status, created_at, reviewed_at
	FROM suggestions WHERE status <> $1 ORDER BY reviewed_at DESC, id DESC`
	var suggestions []models.Suggestion
	if err := r.db.SelectContext(ctx, &suggestions, query, models.SuggestionStatusPending); err != nil {
		return nil, fmt.Errorf("list reviewed suggestions: %w", err)
	}
	return suggestions, nil
}

// Approve promotes a pending suggestion into a post-it on its board and
// marks it approved, both inside one transaction. Returns sql.ErrNoRows
// when the suggestion does not exist or was already reviewed.
func (r *SuggestionRepository) Approve(ctx context.Context, id string, reviewedAt time.Time) (*models.Suggestion, *models.PostIt, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin approve tx: %w", err)
	}
	defer tx.Rollback()

	const selectQuery = `SELECT id, board_id, author_name, content, status, created_at, reviewed_at
	FROM suggestions WHERE id = $1 AND status = $2 FOR UPDATE`
	var suggestion models.Suggestion
	if err := tx.GetContext(ctx, &suggestion, selectQuery, id, models.SuggestionStatusPending); err != nil {
		return nil, nil, err
	}

	postIt := models.PostIt{
		ID:      uuid.NewString(),
		BoardID: suggestion.BoardID,
		Content: suggestion.Content,
	}
	const insertQuery = `INSERT INTO post_its (id, board_id, content) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insertQuery, postIt.ID, postIt.BoardID, postIt.Content); err != nil {
		return nil, nil, fmt.Errorf("promote suggestion to post-it: %w", err)
	}

	const updateQuery = `UPDATE suggestions SET status = $2, reviewed_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, id, models.SuggestionStatusApproved, reviewedAt); err != nil {
		return nil, nil, fmt.Errorf("mark suggestion approved: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit approve tx: %w", err)
	}

	suggestion.Status = models.SuggestionStatusApproved
	suggestion.ReviewedAt = &reviewedAt
	return &suggestion, &postIt, nil
}

// Refuse marks a pending suggestion refused. Returns sql.ErrNoRows when the
// suggestion does not exist or was already reviewed.
func (r *SuggestionRepository) Refuse(ctx context.Context, id string, reviewedAt time.Time) error {
	const query = `UPDATE suggestions SET status = $2, reviewed_at = $3 WHERE id = $1 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, id, models.SuggestionStatusRefused, reviewedAt, models.SuggestionStatusPending)
	if err != nil {
		return fmt.Errorf("refuse suggestion: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("refuse suggestion rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountPending reports the size of the moderation queue.
func (r *SuggestionRepository) CountPending(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM suggestions WHERE status = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, models.SuggestionStatusPending); err != nil {
		return 0, fmt.Errorf("count pending suggestions: %w", err)
	}
	return total, nil
}
