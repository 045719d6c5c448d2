package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
)

// All repository interfaces in one file
type (
	// TemplateRepository holds recurring weekly availability rules.
	TemplateRepository interface {
		Create(ctx context.Context, tpl *model.AvailabilityTemplate) error
		Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityTemplate, error)
		Update(ctx context.Context, tpl *model.AvailabilityTemplate) error
		ListForProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.AvailabilityTemplate, error)
	}

	// BlockRepository holds time-bounded unavailability intervals.
	BlockRepository interface {
		Create(ctx context.Context, block *model.ExceptionBlock) error
		Get(ctx context.Context, id uuid.UUID) (*model.ExceptionBlock, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListForRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.ExceptionBlock, error)
		ListForProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.ExceptionBlock, error)
	}

	// BookingRepository holds appointments.
	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		// CheckConflicts reports whether any booking in an occupying
		// status overlaps [start, end) for the professional.
		CheckConflicts(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
		// ListStalePending returns pending bookings whose end instant
		// passed before the cutoff.
		ListStalePending(ctx context.Context, cutoff time.Time) ([]*model.Booking, error)
	}

	ProfessionalRepository interface {
		Create(ctx context.Context, professional *model.Professional) error
		Get(ctx context.Context, id uuid.UUID) (*model.Professional, error)
		List(ctx context.Context) ([]*model.Professional, error)
	}
)
