package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/internal/service/calendar"
	"github.com/medagenda/agenda-api/pkg/circuitbreaker"
)

type flakyDirectory struct {
	calls int
	err   error
}

func (d *flakyDirectory) DisplayName(ctx context.Context, patientID uuid.UUID) (string, error) {
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	return "Ana Souza", nil
}

func TestStaticDirectory(t *testing.T) {
	id := uuid.New()
	dir := calendar.NewStaticDirectory(map[uuid.UUID]string{id: "Ana Souza"})

	name, err := dir.DisplayName(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", name)

	_, err = dir.DisplayName(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestBreakerDirectoryTripsAfterRepeatedFailures(t *testing.T) {
	inner := &flakyDirectory{err: errors.New("directory unavailable")}
	dir := calendar.NewBreakerDirectory(inner, circuitbreaker.Settings{
		Name:        "patient-directory",
		MaxFailures: 3,
		Timeout:     time.Minute,
	})

	for i := 0; i < 3; i++ {
		_, err := dir.DisplayName(context.Background(), uuid.New())
		assert.Error(t, err)
	}
	assert.Equal(t, 3, inner.calls)

	// Tripped: further lookups fail fast without reaching the inner
	// directory.
	_, err := dir.DisplayName(context.Background(), uuid.New())
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 3, inner.calls)
}

func TestBreakerDirectoryPassesThrough(t *testing.T) {
	inner := &flakyDirectory{}
	dir := calendar.NewBreakerDirectory(inner, circuitbreaker.Settings{Name: "patient-directory"})

	name, err := dir.DisplayName(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", name)
}
