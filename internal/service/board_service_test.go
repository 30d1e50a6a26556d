package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type boardStoreStub struct {
	boards map[string]*models.Board
	next   int
}

func newBoardStoreStub() *boardStoreStub {
	return &boardStoreStub{boards: make(map[string]*models.Board)}
}

func (s *boardStoreStub) Create(ctx context.Context, board *models.Board) error {
	if board.ID == "" {
		s.next++
		board.ID = fmt.Sprintf("board-%d", s.next)
	}
	copy := *board
	s.boards[board.ID] = &copy
	return nil
}

func (s *boardStoreStub) List(ctx context.Context) ([]models.Board, error) {
	result := make([]models.Board, 0, len(s.boards))
	for _, board := range s.boards {
		result = append(result, *board)
	}
	return result, nil
}

func (s *boardStoreStub) GetByID(ctx context.Context, id string) (*models.Board, error) {
	if board, ok := s.boards[id]; ok {
		copy := *board
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *boardStoreStub) FindContaining(ctx context.Context, day time.Time) (*models.Board, error) {
	for _, board := range s.boards {
		if !day.Before(board.StartDate) && !day.After(board.EndDate) {
			copy := *board
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *boardStoreStub) ExistsOverlapping(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	for _, board := range s.boards {
		if board.ID == excludeID {
			continue
		}
		if !board.StartDate.After(end) && !board.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (s *boardStoreStub) Update(ctx context.Context, board *models.Board) error {
	if _, ok := s.boards[board.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *board
	s.boards[board.ID] = &copy
	return nil
}

func (s *boardStoreStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.boards[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.boards, id)
	return nil
}

type postItStoreStub struct {
	postIts map[string]*models.PostIt
	next    int
}

func newPostItStoreStub() *postItStoreStub {
	return &postItStoreStub{postIts: make(map[string]*models.PostIt)}
}

func (s *postItStoreStub) List(ctx context.Context) ([]models.PostItDetail, error) {
	result := make([]models.PostItDetail, 0, len(s.postIts))
	for _, postIt := range s.postIts {
		result = append(result, models.PostItDetail{PostIt: *postIt})
	}
	return result, nil
}

func (s *postItStoreStub) ListByBoard(ctx context.Context, boardID string) ([]models.PostIt, error) {
	var result []models.PostIt
	for _, postIt := range s.postIts {
		if postIt.BoardID == boardID {
			result = append(result, *postIt)
		}
	}
	return result, nil
}

func (s *postItStoreStub) GetByID(ctx context.Context, id string) (*models.PostIt, error) {
	if postIt, ok := s.postIts[id]; ok {
		copy := *postIt
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *postItStoreStub) Create(ctx context.Context, postIt *models.PostIt) error {
	if postIt.ID == "" {
		s.next++
		postIt.ID = fmt.Sprintf("postit-%d", s.next)
	}
	copy := *postIt
	s.postIts[postIt.ID] = &copy
	return nil
}

func (s *postItStoreStub) Update(ctx context.Context, postIt *models.PostIt) error {
	if _, ok := s.postIts[postIt.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *postIt
	s.postIts[postIt.ID] = &copy
	return nil
}

func (s *postItStoreStub) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := s.postIts[id]; !ok {
		return 0, nil
	}
	delete(s.postIts, id)
	return 1, nil
}

func newBoardFixture(t *testing.T, today time.Time) (*BoardService, *boardStoreStub, *postItStoreStub) {
	t.Helper()
	boards := newBoardStoreStub()
	postIts := newPostItStoreStub()
	svc := NewBoardService(boards, postIts, fixedResolver(today), nil, nil)
	return svc, boards, postIts
}

func TestCreateBoardRejectsOverlap(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	_, err := svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "May", StartDate: "2024-05-01", EndDate: "2024-05-15",
	})
	require.NoError(t, err)

	// Sharing a single boundary day counts as overlap.
	_, err = svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "Mid May", StartDate: "2024-05-15", EndDate: "2024-05-20",
	})
	require.ErrorIs(t, err, appErrors.ErrOverlap)

	// A disjoint range is fine.
	_, err = svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "Late May", StartDate: "2024-05-16", EndDate: "2024-05-31",
	})
	require.NoError(t, err)
}

func TestUpdateBoardIgnoresItselfInOverlapCheck(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	board, err := svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "May", StartDate: "2024-05-01", EndDate: "2024-05-15",
	})
	require.NoError(t, err)

	// Shrinking its own range overlaps only itself, which is allowed.
	updated, err := svc.UpdateBoard(context.Background(), board.ID, dto.BoardRequest{
		Title: "May", StartDate: "2024-05-02", EndDate: "2024-05-14",
	})
	require.NoError(t, err)
	require.Equal(t, "2024-05-02", updated.StartDate.Format("2006-01-02"))
}

func TestCreateBoardRejectsInvertedRange(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	_, err := svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "Backwards", StartDate: "2024-05-10", EndDate: "2024-05-01",
	})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestBoardPublicViewOnActiveRange(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, postIts := newBoardFixture(t, today)

	board, err := svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "May", StartDate: "2024-05-01", EndDate: "2024-05-15",
	})
	require.NoError(t, err)
	require.NoError(t, postIts.Create(context.Background(), &models.PostIt{BoardID: board.ID, Content: "Love one another"}))

	view, err := svc.PublicView(context.Background())
	require.NoError(t, err)
	require.Equal(t, board.ID, view.Board.ID)
	require.Len(t, view.PostIts, 1)
}

func TestBoardPublicViewWithoutActiveRange(t *testing.T) {
	today := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	_, err := svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "May", StartDate: "2024-05-01", EndDate: "2024-05-15",
	})
	require.NoError(t, err)

	view, err := svc.PublicView(context.Background())
	require.NoError(t, err)
	require.Nil(t, view.Board)
	require.Empty(t, view.PostIts)
}

func TestCreatePostItOnEndedBoardIsLocked(t *testing.T) {
	today := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	svc, boards, _ := newBoardFixture(t, today)

	ended := &models.Board{
		ID:        "board-old",
		Title:     "April",
		StartDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, boards.Create(context.Background(), ended))

	_, err := svc.CreatePostIt(context.Background(), dto.CreatePostItRequest{
		BoardID: "board-old", Content: "Too late",
	})
	require.ErrorIs(t, err, appErrors.ErrLockedPeriod)
}

func TestCreatePostItOnLastDayAllowed(t *testing.T) {
	today := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	board, err := svc.CreateBoard(context.Background(), dto.BoardRequest{
		Title: "May", StartDate: "2024-05-01", EndDate: "2024-05-15",
	})
	require.NoError(t, err)

	postIt, err := svc.CreatePostIt(context.Background(), dto.CreatePostItRequest{
		BoardID: board.ID, Content: "Last call",
	})
	require.NoError(t, err)
	require.Equal(t, board.ID, postIt.BoardID)
}

func TestDeletePostItIsIdempotent(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	require.NoError(t, svc.DeletePostIt(context.Background(), "never-existed"))
}

func TestActiveBoardErrorsWhenNoneCurrent(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newBoardFixture(t, today)

	_, err := svc.ActiveBoard(context.Background())
	require.ErrorIs(t, err, appErrors.ErrNoActiveBoard)
}
