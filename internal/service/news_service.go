package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type newsStore interface {
	List(ctx context.Context, limit int) ([]models.NewsItem, error)
	GetByID(ctx context.Context, id string) (*models.NewsItem, error)
	Create(ctx context.Context, item *models.NewsItem) error
	Update(ctx context.Context, item *models.NewsItem) error
	Delete(ctx context.Context, id string) error
}

// NewsService manages published news items.
type NewsService struct {
	repo      newsStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNewsService constructs the service.
func NewNewsService(repo newsStore, validate *validator.Validate, logger *zap.Logger) *NewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NewsService{repo: repo, validator: validate, logger: logger}
}

// List returns news newest first; limit caps the page when positive.
func (s *NewsService) List(ctx context.Context, limit int) ([]models.NewsItem, error) {
	items, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list news")
	}
	return items, nil
}

// Get loads one published item.
func (s *NewsService) Get(ctx context.Context, id string) (*models.NewsItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load news item")
	}
	return item, nil
}

// Create publishes a news item.
func (s *NewsService) Create(ctx context.Context, req dto.NewsRequest) (*models.NewsItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid news payload")
	}
	item := &models.NewsItem{Title: req.Title, Body: req.Body, ImagePath: req.ImagePath}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create news item")
	}
	return item, nil
}

// Update rewrites a news item.
func (s *NewsService) Update(ctx context.Context, id string, req dto.NewsRequest) (*models.NewsItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid news payload")
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Title = req.Title
	item.Body = req.Body
	item.ImagePath = req.ImagePath
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update news item")
	}
	return item, nil
}

// Delete removes a news item.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "news item not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete news item")
	}
	return nil
}
