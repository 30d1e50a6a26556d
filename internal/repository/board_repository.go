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

// BoardRepository persists post-it boards and their date ranges.
type BoardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository constructs the repository.
func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts a new board.
func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	if board.ID == "" {
		board.ID = uuid.NewString()
	}
	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO boards (id, title, start_date, end_date, created_at)
	VALUES (:id, :title, :start_date, :end_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, board); err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

// List returns every board, most recent range first.
func (r *BoardRepository) List(ctx context.Context) ([]models.Board, error) {
	const query = `SELECT id, title, start_date, end_date, created_at FROM boards ORDER BY start_date DESC, created_at DESC`
	var boards []models.Board
	if err := r.db.SelectContext(ctx, &boards, query); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// GetByID fetches a board by identifier.
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*models.Board, error) {
	const query = `SELECT id, title, start_date, end_date, created_at FROM boards WHERE id = $1`
	var board models.Board
	if err := r.db.GetContext(ctx, &board, query, id); err != nil {
		return nil, err
	}
	return &board, nil
}

// FindContaining returns the board whose range contains the given day.
func (r *BoardRepository) FindContaining(ctx context.Context, day time.Time) (*models.Board, error) {
	const query = `SELECT id, title, start_date, end_date, created_at FROM boards
	WHERE start_date <= $1 AND end_date >= $1
	ORDER BY start_date DESC LIMIT 1`
	var board models.Board
	if err := r.db.GetContext(ctx, &board, query, day); err != nil {
		return nil, err
	}
	return &board, nil
}

// ExistsOverlapping checks whether any other board's range intersects
// [start, end], bounds inclusive.
func (r *BoardRepository) ExistsOverlapping(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	query := `SELECT 1 FROM boards WHERE start_date <= $2 AND end_date >= $1`
	args := []interface{}{start, end}
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
		return false, fmt.Errorf("check board overlap: %w", err)
	}
	return true, nil
}

// Update rewrites a board's title and date range.
func (r *BoardRepository) Update(ctx context.Context, board *models.Board) error {
	const query = `UPDATE boards SET title = :title, start_date = :start_date, end_date = :end_date WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, board)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update board rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a board with its post-its and suggestions in a single
// transaction.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete board tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM suggestions WHERE board_id = $1`, id); err != nil {
		return fmt.Errorf("delete board suggestions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_its WHERE board_id = $1`, id); err != nil {
		return fmt.Errorf("delete board post-its: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete board tx: %w", err)
	}
	return nil
}
