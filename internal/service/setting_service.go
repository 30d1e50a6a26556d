package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type settingStore interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

// allowedSettings is the closed set of keys the admin API will accept,
// with the type each key's value must parse as.
var allowedSettings = map[string]models.SettingType{
	models.SettingMaintenanceMode:    models.SettingTypeBoolean,
	models.SettingEnablePixDonations: models.SettingTypeBoolean,
	models.SettingSiteAnnouncement:   models.SettingTypeString,
}

// SettingService manages the site-wide toggles behind the public site.
type SettingService struct {
	repo      settingStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingService constructs the service.
func NewSettingService(repo settingStore, validate *validator.Validate, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingService{repo: repo, validator: validate, logger: logger}
}

// List returns every known setting, filling defaults for keys never written.
func (s *SettingService) List(ctx context.Context) ([]models.Setting, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list settings")
	}

	seen := make(map[string]bool, len(stored))
	settings := make([]models.Setting, 0, len(allowedSettings))
	for _, setting := range stored {
		if _, known := allowedSettings[setting.Key]; !known {
			continue
		}
		seen[setting.Key] = true
		settings = append(settings, setting)
	}
	for key, settingType := range allowedSettings {
		if seen[key] {
			continue
		}
		settings = append(settings, models.Setting{Key: key, Value: defaultValue(settingType), Type: settingType})
	}
	return settings, nil
}

// Get returns one setting, defaulted when never written.
func (s *SettingService) Get(ctx context.Context, key string) (*models.Setting, error) {
	settingType, known := allowedSettings[key]
	if !known {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown setting %q", key))
	}
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Setting{Key: key, Value: defaultValue(settingType), Type: settingType}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load setting")
	}
	return setting, nil
}

// Update writes one setting after checking the key is known and the value
// parses for the key's type.
func (s *SettingService) Update(ctx context.Context, key string, req dto.UpdateSettingRequest, updatedBy string) (*models.Setting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setting payload")
	}
	settingType, known := allowedSettings[key]
	if !known {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown setting %q", key))
	}
	if settingType == models.SettingTypeBoolean {
		if _, err := strconv.ParseBool(req.Value); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("setting %q expects a boolean value", key))
		}
	}

	setting := &models.Setting{
		Key:       key,
		Value:     req.Value,
		Type:      settingType,
		UpdatedBy: &updatedBy,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update setting")
	}
	s.logger.Info("setting updated", zap.String("key", key), zap.String("value", req.Value))
	return setting, nil
}

// MaintenanceMode reports whether the public site is gated. Errors degrade
// to "not in maintenance" so a storage hiccup never locks visitors out.
func (s *SettingService) MaintenanceMode(ctx context.Context) bool {
	setting, err := s.Get(ctx, models.SettingMaintenanceMode)
	if err != nil {
		s.logger.Warn("failed to read maintenance mode", zap.Error(err))
		return false
	}
	enabled, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return false
	}
	return enabled
}

func defaultValue(settingType models.SettingType) string {
	if settingType == models.SettingTypeBoolean {
		return "false"
	}
	return ""
}
