package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository/memory"
	"github.com/medagenda/agenda-api/internal/service/schedule"
	"github.com/medagenda/agenda-api/pkg/clock"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// monday is a fixed reference date (2025-03-10 is a Monday).
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	templates *memory.TemplateRepo
	blocks    *memory.BlockRepo
	bookings  *memory.BookingRepo
	svc       *schedule.Service
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		templates: memory.NewTemplateRepository(store),
		blocks:    memory.NewBlockRepository(store),
		bookings:  memory.NewBookingRepository(store),
	}
	f.svc = schedule.NewService(f.templates, f.blocks, f.bookings, clock.At(now), nil)
	return f
}

func (f *fixture) addTemplate(t *testing.T, professionalID uuid.UUID, dayOfWeek, startMinute, endMinute, duration int) *model.AvailabilityTemplate {
	t.Helper()
	tpl := &model.AvailabilityTemplate{
		ProfessionalID:      professionalID,
		DayOfWeek:           dayOfWeek,
		StartMinute:         startMinute,
		EndMinute:           endMinute,
		SlotDurationMinutes: duration,
		Active:              true,
	}
	require.NoError(t, f.templates.Create(context.Background(), tpl))
	return tpl
}

func (f *fixture) addBooking(t *testing.T, professionalID uuid.UUID, start, end time.Time, status model.BookingStatus) *model.Booking {
	t.Helper()
	b := &model.Booking{
		ProfessionalID: professionalID,
		PatientID:      uuid.New(),
		StartTime:      start,
		EndTime:        end,
		Status:         status,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func (f *fixture) addBlock(t *testing.T, professionalID uuid.UUID, start, end time.Time) *model.ExceptionBlock {
	t.Helper()
	block := &model.ExceptionBlock{
		ProfessionalID: professionalID,
		StartTime:      start,
		EndTime:        end,
	}
	require.NoError(t, f.blocks.Create(context.Background(), block))
	return block
}

func TestGenerateSlotsBasicExpansion(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 12*60, 30)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.Equal(t, monday.Add(9*time.Hour), slots[0].StartTime)
	assert.Equal(t, monday.Add(12*time.Hour), slots[5].EndTime)
	for i, slot := range slots {
		assert.Equal(t, model.SlotStateAvailable, slot.State)
		assert.False(t, slot.Past)
		assert.Equal(t, 30*time.Minute, slot.EndTime.Sub(slot.StartTime))
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, slot.StartTime, "slots must be contiguous and ordered")
		}
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	// 09:00-10:45 with 30-minute slots: the 10:30-10:45 remainder is dropped.
	f.addTemplate(t, pro, 1, 9*60, 10*60+45, 30)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), slots[2].EndTime)
}

func TestGenerateSlotsBlockedWinsOverOccupied(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 12*60, 30)
	f.addBlock(t, pro, monday.Add(10*time.Hour), monday.Add(11*time.Hour))
	f.addBooking(t, pro, monday.Add(10*time.Hour), monday.Add(10*time.Hour+30*time.Minute), model.BookingStatusConfirmed)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for _, slot := range slots {
		if slot.StartTime.Before(monday.Add(10*time.Hour)) || !slot.StartTime.Before(monday.Add(11*time.Hour)) {
			assert.Equal(t, model.SlotStateAvailable, slot.State)
			continue
		}
		assert.Equal(t, model.SlotStateBlocked, slot.State, "slot at %v", slot.StartTime)
		assert.Nil(t, slot.BookingID)
	}
}

func TestGenerateSlotsEarliestBookingOwnsSlot(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 10*60, 30)
	first := f.addBooking(t, pro, monday.Add(9*time.Hour), monday.Add(9*time.Hour+30*time.Minute), model.BookingStatusConfirmed)
	f.addBooking(t, pro, monday.Add(9*time.Hour), monday.Add(9*time.Hour+30*time.Minute), model.BookingStatusConfirmed)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, model.SlotStateOccupied, slots[0].State)
	require.NotNil(t, slots[0].BookingID)
	assert.Equal(t, first.ID, *slots[0].BookingID)
}

func TestGenerateSlotsPastTagging(t *testing.T) {
	// Clock frozen mid-morning on the queried day.
	now := monday.Add(10 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 12*60, 30)
	f.addBooking(t, pro, monday.Add(9*time.Hour), monday.Add(9*time.Hour+30*time.Minute), model.BookingStatusConfirmed)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	// 09:00 elapsed and booked: stays occupied, tagged past.
	assert.Equal(t, model.SlotStateOccupied, slots[0].State)
	assert.True(t, slots[0].Past)

	// 09:30 elapsed and unbooked.
	assert.Equal(t, model.SlotStatePast, slots[1].State)
	assert.True(t, slots[1].Past)

	// 10:00 onward still upcoming.
	assert.Equal(t, model.SlotStateAvailable, slots[2].State)
	assert.False(t, slots[2].Past)
}

func TestGenerateSlotsInvalidRange(t *testing.T) {
	now := monday
	f := newFixture(t, now)
	pro := uuid.New()
	f.addTemplate(t, pro, 1, 9*60, 12*60, 30)

	_, err := f.svc.GenerateSlots(context.Background(), pro, monday.AddDate(0, 0, 1), monday, now)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidRange(err))
}

func TestGenerateSlotsUnknownProfessional(t *testing.T) {
	f := newFixture(t, monday)

	slots, err := f.svc.GenerateSlots(context.Background(), uuid.New(), monday, monday.AddDate(0, 0, 7), monday)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlotsLastCreatedTemplateWins(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	// Older hourly template, newer half-hour template over part of the
	// same window. The newer one owns the conflicting start times.
	f.addTemplate(t, pro, 1, 9*60, 12*60, 60)
	f.addTemplate(t, pro, 1, 9*60, 10*60+30, 30)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, 30*time.Minute, slots[0].EndTime.Sub(slots[0].StartTime))
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[1].StartTime)
	assert.Equal(t, 30*time.Minute, slots[2].EndTime.Sub(slots[2].StartTime))
	assert.Equal(t, monday.Add(11*time.Hour), slots[3].StartTime)
	assert.Equal(t, time.Hour, slots[3].EndTime.Sub(slots[3].StartTime))
}

func TestGenerateSlotsMisalignedTemplatesDoNotOverlap(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	// The newer window starts mid-slot of the older one, so start-time
	// de-duplication alone would leave overlapping hours. The newer
	// template claims 09:30-10:30 and the older one only keeps slots
	// clear of it.
	f.addTemplate(t, pro, 1, 9*60, 12*60, 60)
	f.addTemplate(t, pro, 1, 9*60+30, 10*60+30, 60)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[0].StartTime)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), slots[0].EndTime)
	assert.Equal(t, monday.Add(11*time.Hour), slots[1].StartTime)
	assert.Equal(t, monday.Add(12*time.Hour), slots[1].EndTime)

	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			assert.False(t,
				model.Overlaps(slots[i].StartTime, slots[i].EndTime, slots[j].StartTime, slots[j].EndTime),
				"slots starting %v and %v overlap", slots[i].StartTime, slots[j].StartTime)
		}
	}
}

func TestGenerateSlotsIsIdempotent(t *testing.T) {
	now := monday.Add(10 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 12*60, 30)
	f.addBooking(t, pro, monday.Add(9*time.Hour), monday.Add(9*time.Hour+30*time.Minute), model.BookingStatusConfirmed)
	f.addBlock(t, pro, monday.Add(11*time.Hour), monday.Add(12*time.Hour))

	first, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	second, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlotsMultiDayRange(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 10*60, 30)
	f.addTemplate(t, pro, 3, 14*60, 15*60, 30)

	// Monday through Wednesday inclusive; Tuesday contributes nothing.
	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday.AddDate(0, 0, 2), now)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, monday.Add(9*time.Hour), slots[0].StartTime)
	wednesday := monday.AddDate(0, 0, 2)
	assert.Equal(t, wednesday.Add(14*time.Hour), slots[2].StartTime)
}

func TestGenerateSlotsCancelledBookingFreesSlot(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 10*60, 30)
	f.addBooking(t, pro, monday.Add(9*time.Hour), monday.Add(9*time.Hour+30*time.Minute), model.BookingStatusCancelled)

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, model.SlotStateAvailable, slots[0].State)
	assert.Nil(t, slots[0].BookingID)
}

func TestGenerateSlotsHonorsValidityWindow(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	tpl := &model.AvailabilityTemplate{
		ProfessionalID:      pro,
		DayOfWeek:           1,
		StartMinute:         9 * 60,
		EndMinute:           10 * 60,
		SlotDurationMinutes: 30,
		Active:              true,
	}
	validTo := monday.AddDate(0, 0, -7)
	tpl.ValidTo = &validTo
	require.NoError(t, f.templates.Create(context.Background(), tpl))

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsIgnoresInactiveTemplates(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	tpl := f.addTemplate(t, pro, 1, 9*60, 10*60, 30)
	tpl.Active = false
	require.NoError(t, f.templates.Update(context.Background(), tpl))

	slots, err := f.svc.GenerateSlots(context.Background(), pro, monday, monday, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListSlotsUsesInjectedClock(t *testing.T) {
	now := monday.Add(10 * time.Hour)
	f := newFixture(t, now)
	pro := uuid.New()

	f.addTemplate(t, pro, 1, 9*60, 12*60, 30)

	slots, err := f.svc.ListSlots(context.Background(), pro, monday, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.True(t, slots[0].Past)
	assert.False(t, slots[5].Past)
}
