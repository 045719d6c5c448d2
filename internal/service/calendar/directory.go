package calendar

import (
	"context"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/pkg/circuitbreaker"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// StaticDirectory is a PatientDirectory backed by a fixed map, for
// tests and standalone deployments without a patient service.
type StaticDirectory struct {
	names map[uuid.UUID]string
}

func NewStaticDirectory(names map[uuid.UUID]string) *StaticDirectory {
	if names == nil {
		names = make(map[uuid.UUID]string)
	}
	return &StaticDirectory{names: names}
}

func (d *StaticDirectory) DisplayName(ctx context.Context, patientID uuid.UUID) (string, error) {
	name, ok := d.names[patientID]
	if !ok {
		return "", apperrors.NewNotFound("patient", nil)
	}
	return name, nil
}

// BreakerDirectory wraps a remote PatientDirectory behind a circuit
// breaker. Label lookups are cosmetic, so a tripped breaker degrades
// views to id-prefix labels instead of failing them.
type BreakerDirectory struct {
	inner   PatientDirectory
	breaker *circuitbreaker.CircuitBreaker
}

func NewBreakerDirectory(inner PatientDirectory, settings circuitbreaker.Settings) *BreakerDirectory {
	return &BreakerDirectory{
		inner:   inner,
		breaker: circuitbreaker.New(settings),
	}
}

func (d *BreakerDirectory) DisplayName(ctx context.Context, patientID uuid.UUID) (string, error) {
	var name string
	err := d.breaker.Execute(func() error {
		var err error
		name, err = d.inner.DisplayName(ctx, patientID)
		return err
	})
	if err != nil {
		return "", err
	}
	return name, nil
}
