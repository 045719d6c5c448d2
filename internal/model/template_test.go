package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/internal/model"
)

func TestParseMinuteOfDay(t *testing.T) {
	m, err := model.ParseMinuteOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = model.ParseMinuteOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = model.ParseMinuteOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, m)

	for _, bad := range []string{"24:00", "12:60", "-1:00", "noon"} {
		_, err := model.ParseMinuteOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	assert.Equal(t, "09:05", model.FormatMinuteOfDay(545))
	assert.Equal(t, "00:00", model.FormatMinuteOfDay(0))
	assert.Equal(t, "23:59", model.FormatMinuteOfDay(23*60+59))
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	assert.True(t, model.Overlaps(at(0), at(60), at(30), at(90)))
	assert.True(t, model.Overlaps(at(0), at(60), at(0), at(60)))
	assert.True(t, model.Overlaps(at(0), at(60), at(59), at(61)))

	// Half-open: touching endpoints do not overlap.
	assert.False(t, model.Overlaps(at(0), at(60), at(60), at(120)))
	assert.False(t, model.Overlaps(at(60), at(120), at(0), at(60)))
}

func TestTemplateCoversDate(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	from := day.AddDate(0, 0, -7)
	to := day.AddDate(0, 0, 7)

	open := &model.AvailabilityTemplate{}
	assert.True(t, open.CoversDate(day))

	bounded := &model.AvailabilityTemplate{ValidFrom: &from, ValidTo: &to}
	assert.True(t, bounded.CoversDate(day))
	assert.True(t, bounded.CoversDate(from), "bounds are inclusive")
	assert.True(t, bounded.CoversDate(to), "bounds are inclusive")
	assert.False(t, bounded.CoversDate(from.AddDate(0, 0, -1)))
	assert.False(t, bounded.CoversDate(to.AddDate(0, 0, 1)))
}

func TestBookingOccupancy(t *testing.T) {
	for _, status := range model.OccupyingStatuses() {
		b := &model.Booking{Status: status}
		assert.True(t, b.Occupies(), string(status))
	}
	for _, status := range []model.BookingStatus{model.BookingStatusCancelled, model.BookingStatusNoShow} {
		b := &model.Booking{Status: status}
		assert.False(t, b.Occupies(), string(status))
	}

	assert.False(t, (&model.Booking{Status: model.BookingStatusPending}).IsTerminal())
	assert.False(t, (&model.Booking{Status: model.BookingStatusConfirmed}).IsTerminal())
	assert.True(t, (&model.Booking{Status: model.BookingStatusCancelled}).IsTerminal())
	assert.True(t, (&model.Booking{Status: model.BookingStatusCompleted}).IsTerminal())
	assert.True(t, (&model.Booking{Status: model.BookingStatusNoShow}).IsTerminal())
}
