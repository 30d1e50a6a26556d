package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	"github.com/ministerio-antioquia/antioquia-api/internal/realtime"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type suggestionStore interface {
	Create(ctx context.Context, suggestion *models.Suggestion) error
	GetByID(ctx context.Context, id string) (*models.Suggestion, error)
	ListPending(ctx context.Context) ([]models.Suggestion, error)
	ListReviewed(ctx context.Context) ([]models.Suggestion, error)
	Approve(ctx context.Context, id string, reviewedAt time.Time) (*models.Suggestion, *models.PostIt, error)
	Refuse(ctx context.Context, id string, reviewedAt time.Time) error
	CountPending(ctx context.Context) (int, error)
}

type activeBoardResolver interface {
	ActiveBoard(ctx context.Context) (*models.Board, error)
}

type eventPublisher interface {
	Publish(event realtime.Event)
}

// SuggestionService runs the moderation pipeline: public submissions land
// as pending, moderators approve them into post-its or refuse them, and
// every transition is broadcast to connected dashboards.
type SuggestionService struct {
	suggestions suggestionStore
	boards      activeBoardResolver
	events      eventPublisher
	cache       viewCache
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// SuggestionServiceOption configures the service.
type SuggestionServiceOption func(*SuggestionService)

// WithSuggestionCache lets moderation decisions invalidate the cached
// public board view, since approving creates a post-it.
func WithSuggestionCache(cache viewCache) SuggestionServiceOption {
	return func(s *SuggestionService) {
		s.cache = cache
	}
}

// WithSuggestionClock overrides the review timestamp source, used by tests.
func WithSuggestionClock(now func() time.Time) SuggestionServiceOption {
	return func(s *SuggestionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSuggestionService constructs the service with defaults.
func NewSuggestionService(suggestions suggestionStore, boards activeBoardResolver, events eventPublisher, validate *validator.Validate, logger *zap.Logger, opts ...SuggestionServiceOption) *SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	svc := &SuggestionService{
		suggestions: suggestions,
		boards:      boards,
		events:      events,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit files a public suggestion against the currently active board and
// notifies connected moderators.
func (s *SuggestionService) Submit(ctx context.Context, req dto.CreateSuggestionRequest) (*models.Suggestion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid suggestion payload")
	}
	board, err := s.boards.ActiveBoard(ctx)
	if err != nil {
		return nil, err
	}
	suggestion := &models.Suggestion{
		BoardID:    board.ID,
		AuthorName: req.AuthorName,
		Content:    req.Content,
		Status:     models.SuggestionStatusPending,
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create suggestion")
	}

	s.publish(realtime.Event{Type: realtime.EventNewSuggestion, Payload: suggestion})
	s.logger.Info("suggestion submitted",
		zap.String("suggestion_id", suggestion.ID),
		zap.String("board_id", board.ID))
	return suggestion, nil
}

// ListPending returns the moderation queue in arrival order.
func (s *SuggestionService) ListPending(ctx context.Context) ([]models.Suggestion, error) {
	pending, err := s.suggestions.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending suggestions")
	}
	return pending, nil
}

// ListHistory returns reviewed suggestions, latest decision first.
func (s *SuggestionService) ListHistory(ctx context.Context) ([]models.Suggestion, error) {
	history, err := s.suggestions.ListReviewed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list suggestion history")
	}
	return history, nil
}

// Approve promotes a pending suggestion into a post-it on its board. A
// suggestion already reviewed, by this moderator or another, is reported as
// not found so double clicks and races resolve the same way.
func (s *SuggestionService) Approve(ctx context.Context, id string) (*models.Suggestion, *models.PostIt, error) {
	suggestion, postIt, err := s.suggestions.Approve(ctx, id, s.now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "suggestion not found or already reviewed")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve suggestion")
	}

	// The board gained a post-it, so the cached public view is stale.
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, boardViewCacheKey); err != nil {
			s.logger.Warn("board view cache invalidation failed", zap.Error(err))
		}
	}

	s.publish(realtime.Event{Type: realtime.EventSuggestionReviewed, Payload: suggestion})
	s.logger.Info("suggestion approved",
		zap.String("suggestion_id", suggestion.ID),
		zap.String("post_it_id", postIt.ID))
	return suggestion, postIt, nil
}

// Refuse marks a pending suggestion refused, keeping it in the history.
func (s *SuggestionService) Refuse(ctx context.Context, id string) (*models.Suggestion, error) {
	if err := s.suggestions.Refuse(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "suggestion not found or already reviewed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to refuse suggestion")
	}

	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load refused suggestion")
	}

	s.publish(realtime.Event{Type: realtime.EventSuggestionReviewed, Payload: suggestion})
	s.logger.Info("suggestion refused", zap.String("suggestion_id", suggestion.ID))
	return suggestion, nil
}

// PendingCount reports the moderation queue size.
func (s *SuggestionService) PendingCount(ctx context.Context) (int, error) {
	count, err := s.suggestions.CountPending(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending suggestions")
	}
	return count, nil
}

func (s *SuggestionService) publish(event realtime.Event) {
	if s.events != nil {
		s.events.Publish(event)
	}
}
