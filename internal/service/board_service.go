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
	"github.com/ministerio-antioquia/antioquia-api/internal/period"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type boardStore interface {
	Create(ctx context.Context, board *models.Board) error
	List(ctx context.Context) ([]models.Board, error)
	GetByID(ctx context.Context, id string) (*models.Board, error)
	FindContaining(ctx context.Context, day time.Time) (*models.Board, error)
	ExistsOverlapping(ctx context.Context, start, end time.Time, excludeID string) (bool, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id string) error
}

type postItStore interface {
	List(ctx context.Context) ([]models.PostItDetail, error)
	ListByBoard(ctx context.Context, boardID string) ([]models.PostIt, error)
	GetByID(ctx context.Context, id string) (*models.PostIt, error)
	Create(ctx context.Context, postIt *models.PostIt) error
	Update(ctx context.Context, postIt *models.PostIt) error
	Delete(ctx context.Context, id string) (int64, error)
}

const boardViewCacheKey = "view:board:active"

// BoardService orchestrates post-it boards and their notes. Board date
// ranges never overlap and a board's notes freeze once its period ends.
type BoardService struct {
	boards    boardStore
	postIts   postItStore
	cache     viewCache
	cacheTTL  time.Duration
	resolver  *period.Resolver
	validator *validator.Validate
	logger    *zap.Logger
}

// BoardServiceOption configures the service.
type BoardServiceOption func(*BoardService)

// WithBoardCache enables caching of the public board view.
func WithBoardCache(cache viewCache, ttl time.Duration) BoardServiceOption {
	return func(s *BoardService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// NewBoardService constructs the service with defaults.
func NewBoardService(boards boardStore, postIts postItStore, resolver *period.Resolver, validate *validator.Validate, logger *zap.Logger, opts ...BoardServiceOption) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if resolver == nil {
		resolver = period.NewResolver(nil)
	}
	svc := &BoardService{
		boards:    boards,
		postIts:   postIts,
		resolver:  resolver,
		validator: validate,
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// ListBoards returns every board newest first.
func (s *BoardService) ListBoards(ctx context.Context) ([]models.Board, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list boards")
	}
	return boards, nil
}

// GetBoard loads one board.
func (s *BoardService) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "board not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load board")
	}
	return board, nil
}

// CreateBoard registers a new board after checking its range against every
// existing one.
func (s *BoardService) CreateBoard(ctx context.Context, req dto.BoardRequest) (*models.Board, error) {
	start, end, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}
	overlapping, err := s.boards.ExistsOverlapping(ctx, start, end, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check board overlap")
	}
	if overlapping {
		return nil, appErrors.ErrOverlap
	}
	board := &models.Board{Title: req.Title, StartDate: start, EndDate: end}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create board")
	}
	s.invalidateView(ctx)
	return board, nil
}

// UpdateBoard rewrites a board's title and range, keeping the no-overlap
// invariant against every other board.
func (s *BoardService) UpdateBoard(ctx context.Context, id string, req dto.BoardRequest) (*models.Board, error) {
	start, end, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}
	board, err := s.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	overlapping, err := s.boards.ExistsOverlapping(ctx, start, end, board.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check board overlap")
	}
	if overlapping {
		return nil, appErrors.ErrOverlap
	}
	board.Title = req.Title
	board.StartDate = start
	board.EndDate = end
	if err := s.boards.Update(ctx, board); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "board not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update board")
	}
	s.invalidateView(ctx)
	return board, nil
}

// DeleteBoard removes a board together with its notes and suggestions.
func (s *BoardService) DeleteBoard(ctx context.Context, id string) error {
	if err := s.boards.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "board not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete board")
	}
	s.invalidateView(ctx)
	return nil
}

// PublicView assembles the board the public site displays right now. When
// no range contains today the view carries a nil board and no notes.
func (s *BoardService) PublicView(ctx context.Context) (*models.BoardView, error) {
	if s.cache != nil {
		var cached models.BoardView
		if err := s.cache.Get(ctx, boardViewCacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("board view cache read failed", zap.Error(err))
		}
	}

	view := &models.BoardView{PostIts: []models.PostIt{}}
	board, err := s.boards.FindContaining(ctx, s.resolver.Today())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return view, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active board")
	}

	postIts, err := s.postIts.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load board post-its")
	}
	view.Board = board
	if len(postIts) > 0 {
		view.PostIts = postIts
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, boardViewCacheKey, view, s.cacheTTL); err != nil {
			s.logger.Warn("board view cache write failed", zap.Error(err))
		}
	}
	return view, nil
}

// ActiveBoard returns the board containing today, or ErrNoActiveBoard.
func (s *BoardService) ActiveBoard(ctx context.Context) (*models.Board, error) {
	board, err := s.boards.FindContaining(ctx, s.resolver.Today())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoActiveBoard
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active board")
	}
	return board, nil
}

// ListPostIts returns every note with its board title for the admin list.
func (s *BoardService) ListPostIts(ctx context.Context) ([]models.PostItDetail, error) {
	postIts, err := s.postIts.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list post-its")
	}
	return postIts, nil
}

// CreatePostIt pins a note to a board whose period has not ended yet.
func (s *BoardService) CreatePostIt(ctx context.Context, req dto.CreatePostItRequest) (*models.PostIt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post-it payload")
	}
	board, err := s.GetBoard(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Mutable(board.EndDate, s.resolver.Today()) {
		return nil, appErrors.ErrLockedPeriod
	}
	postIt := &models.PostIt{BoardID: board.ID, Content: req.Content}
	if err := s.postIts.Create(ctx, postIt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post-it")
	}
	s.invalidateView(ctx)
	return postIt, nil
}

// UpdatePostIt edits a note's text while its board is still current.
func (s *BoardService) UpdatePostIt(ctx context.Context, id string, req dto.UpdatePostItRequest) (*models.PostIt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post-it payload")
	}
	postIt, err := s.postIts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post-it not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post-it")
	}
	board, err := s.GetBoard(ctx, postIt.BoardID)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Mutable(board.EndDate, s.resolver.Today()) {
		return nil, appErrors.ErrLockedPeriod
	}
	postIt.Content = req.Content
	if err := s.postIts.Update(ctx, postIt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post-it not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update post-it")
	}
	s.invalidateView(ctx)
	return postIt, nil
}

// DeletePostIt removes a note. Deleting an already absent note succeeds so
// repeated clicks behave.
func (s *BoardService) DeletePostIt(ctx context.Context, id string) error {
	postIt, err := s.postIts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post-it")
	}
	board, err := s.GetBoard(ctx, postIt.BoardID)
	if err != nil {
		return err
	}
	if !s.resolver.Mutable(board.EndDate, s.resolver.Today()) {
		return appErrors.ErrLockedPeriod
	}
	if _, err := s.postIts.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete post-it")
	}
	s.invalidateView(ctx)
	return nil
}

func (s *BoardService) parseRange(req dto.BoardRequest) (time.Time, time.Time, error) {
	if err := s.validator.Struct(req); err != nil {
		return time.Time{}, time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board payload")
	}
	start, err := parseDay(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "end_date must not precede start_date")
	}
	return start, end, nil
}

func (s *BoardService) invalidateView(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, boardViewCacheKey); err != nil {
		s.logger.Warn("board view cache invalidation failed", zap.Error(err))
	}
}
