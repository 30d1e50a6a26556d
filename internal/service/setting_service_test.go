package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type settingStoreStub struct {
	settings map[string]*models.Setting
}

func newSettingStoreStub() *settingStoreStub {
	return &settingStoreStub{settings: make(map[string]*models.Setting)}
}

func (s *settingStoreStub) List(ctx context.Context) ([]models.Setting, error) {
	result := make([]models.Setting, 0, len(s.settings))
	for _, setting := range s.settings {
		result = append(result, *setting)
	}
	return result, nil
}

func (s *settingStoreStub) Get(ctx context.Context, key string) (*models.Setting, error) {
	if setting, ok := s.settings[key]; ok {
		copy := *setting
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *settingStoreStub) Upsert(ctx context.Context, setting *models.Setting) error {
	copy := *setting
	s.settings[setting.Key] = &copy
	return nil
}

func TestSettingUpdateRejectsUnknownKey(t *testing.T) {
	svc := NewSettingService(newSettingStoreStub(), nil, nil)

	_, err := svc.Update(context.Background(), "made_up_key", dto.UpdateSettingRequest{Value: "true"}, "admin-1")
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSettingUpdateRejectsNonBooleanValue(t *testing.T) {
	svc := NewSettingService(newSettingStoreStub(), nil, nil)

	_, err := svc.Update(context.Background(), models.SettingMaintenanceMode, dto.UpdateSettingRequest{Value: "yes please"}, "admin-1")
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSettingMaintenanceModeRoundTrip(t *testing.T) {
	store := newSettingStoreStub()
	svc := NewSettingService(store, nil, nil)

	require.False(t, svc.MaintenanceMode(context.Background()), "defaults to off")

	_, err := svc.Update(context.Background(), models.SettingMaintenanceMode, dto.UpdateSettingRequest{Value: "true"}, "admin-1")
	require.NoError(t, err)
	require.True(t, svc.MaintenanceMode(context.Background()))
}

func TestSettingListFillsDefaults(t *testing.T) {
	svc := NewSettingService(newSettingStoreStub(), nil, nil)

	settings, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, len(allowedSettings))

	byKey := make(map[string]models.Setting, len(settings))
	for _, setting := range settings {
		byKey[setting.Key] = setting
	}
	require.Equal(t, "false", byKey[models.SettingMaintenanceMode].Value)
	require.Equal(t, "", byKey[models.SettingSiteAnnouncement].Value)
}
