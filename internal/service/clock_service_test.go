package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	"github.com/ministerio-antioquia/antioquia-api/internal/period"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

type clockStoreStub struct {
	clocks map[string]*models.PrayerClock
}

func newClockStoreStub() *clockStoreStub {
	return &clockStoreStub{clocks: make(map[string]*models.PrayerClock)}
}

func (s *clockStoreStub) Create(ctx context.Context, clock *models.PrayerClock) error {
	if clock.ID == "" {
		clock.ID = "clock-" + clock.Date.Format("2006-01-02")
	}
	copy := *clock
	s.clocks[clock.ID] = &copy
	return nil
}

func (s *clockStoreStub) List(ctx context.Context) ([]models.PrayerClock, error) {
	result := make([]models.PrayerClock, 0, len(s.clocks))
	for _, clock := range s.clocks {
		result = append(result, *clock)
	}
	return result, nil
}

func (s *clockStoreStub) GetByID(ctx context.Context, id string) (*models.PrayerClock, error) {
	if clock, ok := s.clocks[id]; ok {
		copy := *clock
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *clockStoreStub) FindLatest(ctx context.Context) (*models.PrayerClock, error) {
	var latest *models.PrayerClock
	for _, clock := range s.clocks {
		if latest == nil || clock.Date.After(latest.Date) {
			latest = clock
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	copy := *latest
	return &copy, nil
}

func (s *clockStoreStub) Update(ctx context.Context, clock *models.PrayerClock) error {
	if _, ok := s.clocks[clock.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *clock
	s.clocks[clock.ID] = &copy
	return nil
}

func (s *clockStoreStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.clocks[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.clocks, id)
	return nil
}

type volunteerStoreStub struct {
	slots map[string]*models.VolunteerSlot
	next  int
}

func newVolunteerStoreStub() *volunteerStoreStub {
	return &volunteerStoreStub{slots: make(map[string]*models.VolunteerSlot)}
}

func (s *volunteerStoreStub) ListByClock(ctx context.Context, clockID string) ([]models.VolunteerSlot, error) {
	var result []models.VolunteerSlot
	for _, slot := range s.slots {
		if slot.ClockID == clockID {
			result = append(result, *slot)
		}
	}
	return result, nil
}

func (s *volunteerStoreStub) GetByID(ctx context.Context, id string) (*models.VolunteerSlot, error) {
	if slot, ok := s.slots[id]; ok {
		copy := *slot
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *volunteerStoreStub) ExistsByClockAndHour(ctx context.Context, clockID string, hour int, excludeID string) (bool, error) {
	for _, slot := range s.slots {
		if slot.ClockID == clockID && slot.Hour == hour && slot.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *volunteerStoreStub) Create(ctx context.Context, slot *models.VolunteerSlot) error {
	if slot.ID == "" {
		s.next++
		slot.ID = "slot-" + strings.Repeat("x", s.next)
	}
	copy := *slot
	s.slots[slot.ID] = &copy
	return nil
}

func (s *volunteerStoreStub) Update(ctx context.Context, slot *models.VolunteerSlot) error {
	if _, ok := s.slots[slot.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *slot
	s.slots[slot.ID] = &copy
	return nil
}

func (s *volunteerStoreStub) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := s.slots[id]; !ok {
		return 0, nil
	}
	delete(s.slots, id)
	return 1, nil
}

type prayerRequestStoreStub struct {
	requests map[string]*models.PrayerRequest
	next     int
}

func newPrayerRequestStoreStub() *prayerRequestStoreStub {
	return &prayerRequestStoreStub{requests: make(map[string]*models.PrayerRequest)}
}

func (s *prayerRequestStoreStub) ListByClock(ctx context.Context, clockID string) ([]models.PrayerRequest, error) {
	var result []models.PrayerRequest
	for _, request := range s.requests {
		if request.ClockID == clockID {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (s *prayerRequestStoreStub) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	if request, ok := s.requests[id]; ok {
		copy := *request
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *prayerRequestStoreStub) Create(ctx context.Context, request *models.PrayerRequest) error {
	if request.ID == "" {
		s.next++
		request.ID = "req-" + strings.Repeat("x", s.next)
	}
	copy := *request
	s.requests[request.ID] = &copy
	return nil
}

func (s *prayerRequestStoreStub) Update(ctx context.Context, request *models.PrayerRequest) error {
	if _, ok := s.requests[request.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *request
	s.requests[request.ID] = &copy
	return nil
}

func (s *prayerRequestStoreStub) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := s.requests[id]; !ok {
		return 0, nil
	}
	delete(s.requests, id)
	return 1, nil
}

func fixedResolver(day time.Time) *period.Resolver {
	return period.NewResolver(time.UTC, period.WithNow(func() time.Time { return day }))
}

func newClockFixture(t *testing.T, today time.Time, opts ...ClockServiceOption) (*ClockService, *clockStoreStub, *volunteerStoreStub, *prayerRequestStoreStub) {
	t.Helper()
	clocks := newClockStoreStub()
	volunteers := newVolunteerStoreStub()
	requests := newPrayerRequestStoreStub()
	svc := NewClockService(clocks, volunteers, requests, fixedResolver(today), nil, nil, opts...)
	return svc, clocks, volunteers, requests
}

func TestClockPublicViewFillsAllHours(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, volunteers, requests := newClockFixture(t, today)

	clock := &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: today}
	require.NoError(t, clocks.Create(context.Background(), clock))
	require.NoError(t, volunteers.Create(context.Background(), &models.VolunteerSlot{ClockID: "clock-1", VolunteerName: "Ana", Hour: 3}))
	require.NoError(t, requests.Create(context.Background(), &models.PrayerRequest{ClockID: "clock-1", Description: "For the missions"}))

	view, err := svc.PublicView(context.Background())
	require.NoError(t, err)
	require.Equal(t, "clock-1", view.Clock.ID)
	require.Len(t, view.Volunteers, 24)
	require.Equal(t, "Ana", view.Volunteers[3].VolunteerName)
	for hour, slot := range view.Volunteers {
		require.Equal(t, hour, slot.Hour)
		if hour != 3 {
			require.Equal(t, models.AvailableSlotName, slot.VolunteerName)
		}
	}
	require.Equal(t, []string{"For the missions"}, view.PrayerRequests)
}

func TestClockPublicViewWithoutClocks(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _, _ := newClockFixture(t, today)

	view, err := svc.PublicView(context.Background())
	require.NoError(t, err)
	require.Nil(t, view.Clock)
	require.Empty(t, view.Volunteers)
	require.Empty(t, view.PrayerRequests)
}

func TestAddVolunteerOnPastClockIsLocked(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, _, _ := newClockFixture(t, today)

	past := &models.PrayerClock{ID: "clock-past", Title: "Old vigil", Date: today.AddDate(0, 0, -1)}
	require.NoError(t, clocks.Create(context.Background(), past))

	_, err := svc.AddVolunteer(context.Background(), "clock-past", dto.VolunteerRequest{VolunteerName: "Ana", Hour: 8})
	require.ErrorIs(t, err, appErrors.ErrLockedPeriod)
}

func TestAddVolunteerOnClockDayStillAllowed(t *testing.T) {
	today := time.Date(2024, time.May, 5, 23, 0, 0, 0, time.UTC)
	svc, clocks, _, _ := newClockFixture(t, today)

	clock := &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, clocks.Create(context.Background(), clock))

	slot, err := svc.AddVolunteer(context.Background(), "clock-1", dto.VolunteerRequest{VolunteerName: "Ana", Hour: 23})
	require.NoError(t, err)
	require.Equal(t, 23, slot.Hour)
}

func TestAddVolunteerRejectsInvalidHour(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, _, _ := newClockFixture(t, today)
	require.NoError(t, clocks.Create(context.Background(), &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: today}))

	_, err := svc.AddVolunteer(context.Background(), "clock-1", dto.VolunteerRequest{VolunteerName: "Ana", Hour: 24})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAddVolunteerSharedHoursAllowed(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, volunteers, _ := newClockFixture(t, today, WithSharedHours(true))
	require.NoError(t, clocks.Create(context.Background(), &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: today}))

	_, err := svc.AddVolunteer(context.Background(), "clock-1", dto.VolunteerRequest{VolunteerName: "Ana", Hour: 8})
	require.NoError(t, err)
	_, err = svc.AddVolunteer(context.Background(), "clock-1", dto.VolunteerRequest{VolunteerName: "Bruno", Hour: 8})
	require.NoError(t, err)

	slots, err := volunteers.ListByClock(context.Background(), "clock-1")
	require.NoError(t, err)
	require.Len(t, slots, 2)
}

func TestAddVolunteerExclusiveHoursConflict(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, _, _ := newClockFixture(t, today, WithSharedHours(false))
	require.NoError(t, clocks.Create(context.Background(), &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: today}))

	_, err := svc.AddVolunteer(context.Background(), "clock-1", dto.VolunteerRequest{VolunteerName: "Ana", Hour: 8})
	require.NoError(t, err)
	_, err = svc.AddVolunteer(context.Background(), "clock-1", dto.VolunteerRequest{VolunteerName: "Bruno", Hour: 8})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestRemoveVolunteerIsIdempotent(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, _, _, _ := newClockFixture(t, today)

	require.NoError(t, svc.RemoveVolunteer(context.Background(), "never-existed"))
}

func TestExportRosterCSV(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, volunteers, _ := newClockFixture(t, today)
	require.NoError(t, clocks.Create(context.Background(), &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: today}))
	require.NoError(t, volunteers.Create(context.Background(), &models.VolunteerSlot{ClockID: "clock-1", VolunteerName: "Ana", Hour: 0}))

	payload, filename, err := svc.ExportRoster(context.Background(), "clock-1", "csv")
	require.NoError(t, err)
	require.Equal(t, "prayer-clock-2024-05-05.csv", filename)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 25, "header plus one line per hour")
	require.Equal(t, "hour,volunteer", lines[0])
	require.Equal(t, "00:00,Ana", lines[1])
	require.Contains(t, lines[2], models.AvailableSlotName)
}

func TestExportRosterUnknownFormat(t *testing.T) {
	today := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	svc, clocks, _, _ := newClockFixture(t, today)
	require.NoError(t, clocks.Create(context.Background(), &models.PrayerClock{ID: "clock-1", Title: "Vigil", Date: today}))

	_, _, err := svc.ExportRoster(context.Background(), "clock-1", "xlsx")
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
