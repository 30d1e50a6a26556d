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
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type missionaryStore interface {
	List(ctx context.Context) ([]models.Missionary, error)
	GetByID(ctx context.Context, id string) (*models.Missionary, error)
	Create(ctx context.Context, missionary *models.Missionary) error
	Update(ctx context.Context, missionary *models.Missionary) error
	Delete(ctx context.Context, id string) error
}

// MissionaryService manages missionary profiles.
type MissionaryService struct {
	repo      missionaryStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMissionaryService constructs the service.
func NewMissionaryService(repo missionaryStore, validate *validator.Validate, logger *zap.Logger) *MissionaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MissionaryService{repo: repo, validator: validate, logger: logger}
}

// List returns every profile ordered by name.
func (s *MissionaryService) List(ctx context.Context) ([]models.Missionary, error) {
	missionaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list missionaries")
	}
	return missionaries, nil
}

// Get loads one profile.
func (s *MissionaryService) Get(ctx context.Context, id string) (*models.Missionary, error) {
	missionary, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "missionary not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load missionary")
	}
	return missionary, nil
}

// Create registers a profile.
func (s *MissionaryService) Create(ctx context.Context, req dto.MissionaryRequest) (*models.Missionary, error) {
	missionary, err := s.fromRequest(req, &models.Missionary{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, missionary); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create missionary")
	}
	return missionary, nil
}

// Update rewrites a profile.
func (s *MissionaryService) Update(ctx context.Context, id string, req dto.MissionaryRequest) (*models.Missionary, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	missionary, err := s.fromRequest(req, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, missionary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "missionary not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update missionary")
	}
	return missionary, nil
}

// Delete removes a profile.
func (s *MissionaryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "missionary not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete missionary")
	}
	return nil
}

func (s *MissionaryService) fromRequest(req dto.MissionaryRequest, missionary *models.Missionary) (*models.Missionary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid missionary payload")
	}
	var birthDate *time.Time
	if req.BirthDate != "" {
		day, err := parseDay(req.BirthDate)
		if err != nil {
			return nil, err
		}
		birthDate = &day
	}
	missionary.FirstName = req.FirstName
	missionary.LastName = req.LastName
	missionary.BirthDate = birthDate
	missionary.City = req.City
	missionary.Country = req.Country
	missionary.ImageURL = req.ImageURL
	missionary.Summary = req.Summary
	missionary.Story = req.Story
	return missionary, nil
}
