package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

func suggestionRows(id, boardID string, status models.SuggestionStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "board_id", "author_name", "content", "status", "created_at", "reviewed_at"}).
		AddRow(id, boardID, "Maria", "Pray for the youth retreat", string(status), time.Now(), nil)
}

func TestSuggestionRepositoryApprovePromotesInOneTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSuggestionRepository(db)
	reviewedAt := time.Date(2024, time.May, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("sug-1", string(models.SuggestionStatusPending)).
		WillReturnRows(suggestionRows("sug-1", "board-1", models.SuggestionStatusPending))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_its")).
		WithArgs(sqlmock.AnyArg(), "board-1", "Pray for the youth retreat").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE suggestions SET status = $2, reviewed_at = $3")).
		WithArgs("sug-1", string(models.SuggestionStatusApproved), reviewedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	suggestion, postIt, err := repo.Approve(context.Background(), "sug-1", reviewedAt)
	require.NoError(t, err)
	require.Equal(t, models.SuggestionStatusApproved, suggestion.Status)
	require.Equal(t, "board-1", postIt.BoardID)
	require.Equal(t, suggestion.Content, postIt.Content)
	require.NotNil(t, suggestion.ReviewedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepositoryApproveAlreadyReviewed(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSuggestionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("sug-1", string(models.SuggestionStatusPending)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.Approve(context.Background(), "sug-1", time.Now())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepositoryApproveRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSuggestionRepository(db)
	boom := errors.New("constraint violation")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("sug-1", string(models.SuggestionStatusPending)).
		WillReturnRows(suggestionRows("sug-1", "board-1", models.SuggestionStatusPending))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_its")).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, _, err := repo.Approve(context.Background(), "sug-1", time.Now())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepositoryRefuse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSuggestionRepository(db)
	reviewedAt := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE suggestions SET status = $2, reviewed_at = $3 WHERE id = $1 AND status = $4")).
		WithArgs("sug-1", string(models.SuggestionStatusRefused), reviewedAt, string(models.SuggestionStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Refuse(context.Background(), "sug-1", reviewedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepositoryRefuseAlreadyReviewed(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSuggestionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE suggestions SET status = $2, reviewed_at = $3")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Refuse(context.Background(), "sug-1", time.Now())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepositoryListPendingOldestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSuggestionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC")).
		WithArgs(string(models.SuggestionStatusPending)).
		WillReturnRows(suggestionRows("sug-1", "board-1", models.SuggestionStatusPending))

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
