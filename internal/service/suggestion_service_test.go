package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	"github.com/ministerio-antioquia/antioquia-api/internal/realtime"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type suggestionStoreStub struct {
	suggestions map[string]*models.Suggestion
	postIts     []*models.PostIt
	next        int
}

func newSuggestionStoreStub() *suggestionStoreStub {
	return &suggestionStoreStub{suggestions: make(map[string]*models.Suggestion)}
}

func (s *suggestionStoreStub) Create(ctx context.Context, suggestion *models.Suggestion) error {
	if suggestion.ID == "" {
		s.next++
		suggestion.ID = fmt.Sprintf("sug-%d", s.next)
	}
	if suggestion.CreatedAt.IsZero() {
		suggestion.CreatedAt = time.Now().UTC()
	}
	copy := *suggestion
	s.suggestions[suggestion.ID] = &copy
	return nil
}

func (s *suggestionStoreStub) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	if suggestion, ok := s.suggestions[id]; ok {
		copy := *suggestion
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *suggestionStoreStub) ListPending(ctx context.Context) ([]models.Suggestion, error) {
	var pending []models.Suggestion
	for _, suggestion := range s.suggestions {
		if suggestion.Status == models.SuggestionStatusPending {
			pending = append(pending, *suggestion)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	return pending, nil
}

func (s *suggestionStoreStub) ListReviewed(ctx context.Context) ([]models.Suggestion, error) {
	var reviewed []models.Suggestion
	for _, suggestion := range s.suggestions {
		if suggestion.Status != models.SuggestionStatusPending {
			reviewed = append(reviewed, *suggestion)
		}
	}
	return reviewed, nil
}

func (s *suggestionStoreStub) Approve(ctx context.Context, id string, reviewedAt time.Time) (*models.Suggestion, *models.PostIt, error) {
	suggestion, ok := s.suggestions[id]
	if !ok || suggestion.Status != models.SuggestionStatusPending {
		return nil, nil, sql.ErrNoRows
	}
	suggestion.Status = models.SuggestionStatusApproved
	suggestion.ReviewedAt = &reviewedAt
	postIt := &models.PostIt{ID: "postit-" + id, BoardID: suggestion.BoardID, Content: suggestion.Content}
	s.postIts = append(s.postIts, postIt)
	copy := *suggestion
	return &copy, postIt, nil
}

func (s *suggestionStoreStub) Refuse(ctx context.Context, id string, reviewedAt time.Time) error {
	suggestion, ok := s.suggestions[id]
	if !ok || suggestion.Status != models.SuggestionStatusPending {
		return sql.ErrNoRows
	}
	suggestion.Status = models.SuggestionStatusRefused
	suggestion.ReviewedAt = &reviewedAt
	return nil
}

func (s *suggestionStoreStub) CountPending(ctx context.Context) (int, error) {
	pending, _ := s.ListPending(ctx)
	return len(pending), nil
}

type activeBoardStub struct {
	board *models.Board
}

func (s *activeBoardStub) ActiveBoard(ctx context.Context) (*models.Board, error) {
	if s.board == nil {
		return nil, appErrors.ErrNoActiveBoard
	}
	return s.board, nil
}

type eventRecorder struct {
	events []realtime.Event
}

func (r *eventRecorder) Publish(event realtime.Event) {
	r.events = append(r.events, event)
}

func newSuggestionFixture(board *models.Board) (*SuggestionService, *suggestionStoreStub, *eventRecorder) {
	store := newSuggestionStoreStub()
	events := &eventRecorder{}
	svc := NewSuggestionService(store, &activeBoardStub{board: board}, events, nil, nil)
	return svc, store, events
}

func activeBoard() *models.Board {
	return &models.Board{
		ID:        "board-1",
		Title:     "May",
		StartDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestSubmitAttachesToActiveBoardAndNotifies(t *testing.T) {
	svc, store, events := newSuggestionFixture(activeBoard())

	suggestion, err := svc.Submit(context.Background(), dto.CreateSuggestionRequest{
		AuthorName: "Maria", Content: "Pray for the youth retreat",
	})
	require.NoError(t, err)
	require.Equal(t, "board-1", suggestion.BoardID)
	require.Equal(t, models.SuggestionStatusPending, suggestion.Status)
	require.Len(t, store.suggestions, 1)

	require.Len(t, events.events, 1)
	require.Equal(t, realtime.EventNewSuggestion, events.events[0].Type)
}

func TestSubmitWithoutActiveBoard(t *testing.T) {
	svc, store, events := newSuggestionFixture(nil)

	_, err := svc.Submit(context.Background(), dto.CreateSuggestionRequest{
		AuthorName: "Maria", Content: "Pray for the youth retreat",
	})
	require.ErrorIs(t, err, appErrors.ErrNoActiveBoard)
	require.Empty(t, store.suggestions)
	require.Empty(t, events.events)
}

func TestApprovePromotesAndBroadcasts(t *testing.T) {
	svc, store, events := newSuggestionFixture(activeBoard())

	submitted, err := svc.Submit(context.Background(), dto.CreateSuggestionRequest{
		AuthorName: "Maria", Content: "Pray for the youth retreat",
	})
	require.NoError(t, err)

	suggestion, postIt, err := svc.Approve(context.Background(), submitted.ID)
	require.NoError(t, err)
	require.Equal(t, models.SuggestionStatusApproved, suggestion.Status)
	require.NotNil(t, suggestion.ReviewedAt)
	require.Equal(t, submitted.Content, postIt.Content)
	require.Len(t, store.postIts, 1)

	require.Len(t, events.events, 2)
	require.Equal(t, realtime.EventSuggestionReviewed, events.events[1].Type)
}

func TestApproveTwiceReportsNotFound(t *testing.T) {
	svc, _, _ := newSuggestionFixture(activeBoard())

	submitted, err := svc.Submit(context.Background(), dto.CreateSuggestionRequest{
		AuthorName: "Maria", Content: "Pray for the youth retreat",
	})
	require.NoError(t, err)

	_, _, err = svc.Approve(context.Background(), submitted.ID)
	require.NoError(t, err)

	_, _, err = svc.Approve(context.Background(), submitted.ID)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestRefuseKeepsHistoryWithoutPostIt(t *testing.T) {
	svc, store, events := newSuggestionFixture(activeBoard())

	submitted, err := svc.Submit(context.Background(), dto.CreateSuggestionRequest{
		AuthorName: "Maria", Content: "Pray for the youth retreat",
	})
	require.NoError(t, err)

	refused, err := svc.Refuse(context.Background(), submitted.ID)
	require.NoError(t, err)
	require.Equal(t, models.SuggestionStatusRefused, refused.Status)
	require.Empty(t, store.postIts, "refusal must not create a post-it")

	history, err := svc.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Empty(t, pending)

	require.Equal(t, realtime.EventSuggestionReviewed, events.events[len(events.events)-1].Type)
}

func TestListPendingOldestFirst(t *testing.T) {
	svc, store, _ := newSuggestionFixture(activeBoard())

	base := time.Date(2024, time.May, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(context.Background(), &models.Suggestion{
			BoardID:    "board-1",
			AuthorName: fmt.Sprintf("Author %d", i),
			Content:    fmt.Sprintf("Suggestion %d", i),
			Status:     models.SuggestionStatusPending,
			CreatedAt:  base.Add(time.Duration(2-i) * time.Minute),
		}))
	}

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i := 1; i < len(pending); i++ {
		require.False(t, pending[i].CreatedAt.Before(pending[i-1].CreatedAt))
	}
}
