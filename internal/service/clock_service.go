package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	"github.com/ministerio-antioquia/antioquia-api/internal/period"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/export"
)

type clockStore interface {
	Create(ctx context.Context, clock *models.PrayerClock) error
	List(ctx context.Context) ([]models.PrayerClock, error)
	GetByID(ctx context.Context, id string) (*models.PrayerClock, error)
	FindLatest(ctx context.Context) (*models.PrayerClock, error)
	Update(ctx context.Context, clock *models.PrayerClock) error
	Delete(ctx context.Context, id string) error
}

type volunteerStore interface {
	ListByClock(ctx context.Context, clockID string) ([]models.VolunteerSlot, error)
	GetByID(ctx context.Context, id string) (*models.VolunteerSlot, error)
	ExistsByClockAndHour(ctx context.Context, clockID string, hour int, excludeID string) (bool, error)
	Create(ctx context.Context, slot *models.VolunteerSlot) error
	Update(ctx context.Context, slot *models.VolunteerSlot) error
	Delete(ctx context.Context, id string) (int64, error)
}

type prayerRequestStore interface {
	ListByClock(ctx context.Context, clockID string) ([]models.PrayerRequest, error)
	GetByID(ctx context.Context, id string) (*models.PrayerRequest, error)
	Create(ctx context.Context, request *models.PrayerRequest) error
	Update(ctx context.Context, request *models.PrayerRequest) error
	Delete(ctx context.Context, id string) (int64, error)
}

type viewCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const clockViewCacheKey = "view:clock:latest"

// ClockService orchestrates prayer clocks, their 24-hour rosters and their
// intentions.
type ClockService struct {
	clocks     clockStore
	volunteers volunteerStore
	requests   prayerRequestStore
	cache      viewCache
	cacheTTL   time.Duration
	resolver   *period.Resolver
	validator  *validator.Validate
	logger     *zap.Logger
	// sharedHours allows several volunteers to claim the same hour. When
	// false an hour has at most one name.
	sharedHours bool
}

// ClockServiceOption configures the service.
type ClockServiceOption func(*ClockService)

// WithClockCache enables caching of the public clock view.
func WithClockCache(cache viewCache, ttl time.Duration) ClockServiceOption {
	return func(s *ClockService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithSharedHours toggles whether one hour may carry several volunteers.
func WithSharedHours(allowed bool) ClockServiceOption {
	return func(s *ClockService) {
		s.sharedHours = allowed
	}
}

// NewClockService constructs the service with defaults.
func NewClockService(clocks clockStore, volunteers volunteerStore, requests prayerRequestStore, resolver *period.Resolver, validate *validator.Validate, logger *zap.Logger, opts ...ClockServiceOption) *ClockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if resolver == nil {
		resolver = period.NewResolver(nil)
	}
	svc := &ClockService{
		clocks:      clocks,
		volunteers:  volunteers,
		requests:    requests,
		resolver:    resolver,
		validator:   validate,
		logger:      logger,
		sharedHours: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// ListClocks returns every clock for the admin list.
func (s *ClockService) ListClocks(ctx context.Context) ([]models.PrayerClock, error) {
	clocks, err := s.clocks.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list prayer clocks")
	}
	return clocks, nil
}

// GetClock loads one clock.
func (s *ClockService) GetClock(ctx context.Context, id string) (*models.PrayerClock, error) {
	clock, err := s.clocks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "prayer clock not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prayer clock")
	}
	return clock, nil
}

// CreateClock registers a new prayer clock.
func (s *ClockService) CreateClock(ctx context.Context, req dto.ClockRequest) (*models.PrayerClock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clock payload")
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	clock := &models.PrayerClock{Title: req.Title, Date: date}
	if err := s.clocks.Create(ctx, clock); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create prayer clock")
	}
	s.invalidateView(ctx)
	return clock, nil
}

// UpdateClock rewrites a clock's title and date. Past clocks stay editable
// so admins can correct the archive.
func (s *ClockService) UpdateClock(ctx context.Context, id string, req dto.ClockRequest) (*models.PrayerClock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clock payload")
	}
	clock, err := s.GetClock(ctx, id)
	if err != nil {
		return nil, err
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	clock.Title = req.Title
	clock.Date = date
	if err := s.clocks.Update(ctx, clock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "prayer clock not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update prayer clock")
	}
	s.invalidateView(ctx)
	return clock, nil
}

// DeleteClock removes a clock together with its roster and intentions.
func (s *ClockService) DeleteClock(ctx context.Context, id string) error {
	if err := s.clocks.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "prayer clock not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete prayer clock")
	}
	s.invalidateView(ctx)
	return nil
}

// PublicView assembles the clock the public site displays: the clock with
// the most recent date, its full 24-hour roster with unclaimed hours filled
// in, and its intentions.
func (s *ClockService) PublicView(ctx context.Context) (*models.ClockView, error) {
	if s.cache != nil {
		var cached models.ClockView
		if err := s.cache.Get(ctx, clockViewCacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("clock view cache read failed", zap.Error(err))
		}
	}

	view := &models.ClockView{Volunteers: []models.VolunteerSlot{}, PrayerRequests: []string{}}
	clock, err := s.clocks.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return view, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest clock")
	}

	slots, err := s.volunteers.ListByClock(ctx, clock.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	requests, err := s.requests.ListByClock(ctx, clock.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prayer requests")
	}

	view.Clock = clock
	view.Volunteers = fillRoster(clock.ID, slots)
	for _, request := range requests {
		view.PrayerRequests = append(view.PrayerRequests, request.Description)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, clockViewCacheKey, view, s.cacheTTL); err != nil {
			s.logger.Warn("clock view cache write failed", zap.Error(err))
		}
	}
	return view, nil
}

// fillRoster returns the 24-hour roster in hour order, synthesising a
// placeholder entry for every hour nobody claimed.
func fillRoster(clockID string, slots []models.VolunteerSlot) []models.VolunteerSlot {
	byHour := make(map[int][]models.VolunteerSlot, len(slots))
	for _, slot := range slots {
		byHour[slot.Hour] = append(byHour[slot.Hour], slot)
	}
	roster := make([]models.VolunteerSlot, 0, 24)
	for hour := 0; hour < 24; hour++ {
		claimed, ok := byHour[hour]
		if !ok {
			roster = append(roster, models.VolunteerSlot{
				ClockID:       clockID,
				VolunteerName: models.AvailableSlotName,
				Hour:          hour,
			})
			continue
		}
		roster = append(roster, claimed...)
	}
	return roster
}

// AddVolunteer claims an hour on a clock's roster. Rosters freeze once the
// clock's date has passed.
func (s *ClockService) AddVolunteer(ctx context.Context, clockID string, req dto.VolunteerRequest) (*models.VolunteerSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid volunteer payload")
	}
	clock, err := s.GetClock(ctx, clockID)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Mutable(clock.Date, s.resolver.Today()) {
		return nil, appErrors.ErrLockedPeriod
	}
	if !s.sharedHours {
		taken, err := s.volunteers.ExistsByClockAndHour(ctx, clockID, req.Hour, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check hour availability")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("hour %d is already claimed", req.Hour))
		}
	}
	slot := &models.VolunteerSlot{ClockID: clockID, VolunteerName: req.VolunteerName, Hour: req.Hour}
	if err := s.volunteers.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create volunteer slot")
	}
	s.invalidateView(ctx)
	return slot, nil
}

// UpdateVolunteer renames or moves an existing roster entry.
func (s *ClockService) UpdateVolunteer(ctx context.Context, slotID string, req dto.VolunteerRequest) (*models.VolunteerSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid volunteer payload")
	}
	slot, err := s.volunteers.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "volunteer slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load volunteer slot")
	}
	clock, err := s.GetClock(ctx, slot.ClockID)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Mutable(clock.Date, s.resolver.Today()) {
		return nil, appErrors.ErrLockedPeriod
	}
	if !s.sharedHours && req.Hour != slot.Hour {
		taken, err := s.volunteers.ExistsByClockAndHour(ctx, slot.ClockID, req.Hour, slot.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check hour availability")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("hour %d is already claimed", req.Hour))
		}
	}
	slot.VolunteerName = req.VolunteerName
	slot.Hour = req.Hour
	if err := s.volunteers.Update(ctx, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "volunteer slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update volunteer slot")
	}
	s.invalidateView(ctx)
	return slot, nil
}

// RemoveVolunteer frees an hour. Removing an already absent slot is treated
// as done.
func (s *ClockService) RemoveVolunteer(ctx context.Context, slotID string) error {
	slot, err := s.volunteers.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load volunteer slot")
	}
	clock, err := s.GetClock(ctx, slot.ClockID)
	if err != nil {
		return err
	}
	if !s.resolver.Mutable(clock.Date, s.resolver.Today()) {
		return appErrors.ErrLockedPeriod
	}
	if _, err := s.volunteers.Delete(ctx, slotID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete volunteer slot")
	}
	s.invalidateView(ctx)
	return nil
}

// AddPrayerRequest attaches an intention to a clock.
func (s *ClockService) AddPrayerRequest(ctx context.Context, clockID string, req dto.PrayerRequestPayload) (*models.PrayerRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prayer request payload")
	}
	clock, err := s.GetClock(ctx, clockID)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Mutable(clock.Date, s.resolver.Today()) {
		return nil, appErrors.ErrLockedPeriod
	}
	request := &models.PrayerRequest{ClockID: clockID, Description: req.Description}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create prayer request")
	}
	s.invalidateView(ctx)
	return request, nil
}

// UpdatePrayerRequest rewrites an intention's text.
func (s *ClockService) UpdatePrayerRequest(ctx context.Context, id string, req dto.PrayerRequestPayload) (*models.PrayerRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prayer request payload")
	}
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "prayer request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prayer request")
	}
	clock, err := s.GetClock(ctx, request.ClockID)
	if err != nil {
		return nil, err
	}
	if !s.resolver.Mutable(clock.Date, s.resolver.Today()) {
		return nil, appErrors.ErrLockedPeriod
	}
	request.Description = req.Description
	if err := s.requests.Update(ctx, request); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "prayer request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update prayer request")
	}
	s.invalidateView(ctx)
	return request, nil
}

// RemovePrayerRequest deletes an intention, tolerating repeats.
func (s *ClockService) RemovePrayerRequest(ctx context.Context, id string) error {
	if _, err := s.requests.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete prayer request")
	}
	s.invalidateView(ctx)
	return nil
}

// ExportRoster renders a clock's roster as a downloadable file. Supported
// formats are "csv" and "pdf".
func (s *ClockService) ExportRoster(ctx context.Context, clockID, format string) ([]byte, string, error) {
	clock, err := s.GetClock(ctx, clockID)
	if err != nil {
		return nil, "", err
	}
	slots, err := s.volunteers.ListByClock(ctx, clockID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	requests, err := s.requests.ListByClock(ctx, clockID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prayer requests")
	}

	roster := export.Roster{
		Title: clock.Title,
		Date:  clock.Date.Format("02/01/2006"),
	}
	for _, slot := range fillRoster(clock.ID, slots) {
		roster.Entries = append(roster.Entries, export.RosterEntry{
			Hour:      fmt.Sprintf("%02d:00", slot.Hour),
			Volunteer: slot.VolunteerName,
		})
	}
	for _, request := range requests {
		roster.Motives = append(roster.Motives, request.Description)
	}

	stamp := clock.Date.Format(dayLayout)
	switch format {
	case "csv":
		payload, err := export.RenderCSV(roster)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster csv")
		}
		return payload, fmt.Sprintf("prayer-clock-%s.csv", stamp), nil
	case "pdf":
		payload, err := export.RenderPDF(roster)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster pdf")
		}
		return payload, fmt.Sprintf("prayer-clock-%s.pdf", stamp), nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format, expected csv or pdf")
	}
}

func (s *ClockService) invalidateView(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, clockViewCacheKey); err != nil {
		s.logger.Warn("clock view cache invalidation failed", zap.Error(err))
	}
}
