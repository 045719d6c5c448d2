package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository"
	"github.com/medagenda/agenda-api/pkg/clock"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/locker"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

// SystemActor is recorded as cancelled_by when the service itself
// cancels a booking (e.g. the stale-pending sweep).
const SystemActor = "system"

// Service drives the booking state machine. Every mutation runs under
// a per-professional lock so two concurrent creates for overlapping
// intervals cannot both pass the overlap guard.
type Service struct {
	repo    repository.BookingRepository
	locker  locker.Locker
	clock   clock.Clock
	metrics *metrics.Metrics
	grace   time.Duration
}

func NewService(repo repository.BookingRepository, lock locker.Locker, clk clock.Clock, m *metrics.Metrics, grace time.Duration) *Service {
	return &Service{
		repo:    repo,
		locker:  lock,
		clock:   clk,
		metrics: m,
		grace:   grace,
	}
}

// Create books an interval for a patient. is_overbooking deliberately
// bypasses the overlap guard for urgent add-ons; the interval checks
// still apply.
func (s *Service) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, apperrors.NewInvalidInterval("booking start must be before end")
	}
	if req.StartTime.Before(s.clock.Now().Add(-s.grace)) {
		return nil, apperrors.NewInvalidInterval("booking start is in the past")
	}

	status := req.InitialStatus
	if status == "" {
		status = model.BookingStatusPending
	}
	if status != model.BookingStatusPending && status != model.BookingStatusConfirmed {
		return nil, apperrors.NewBadRequest("initial status must be pending or confirmed", nil)
	}

	booking := &model.Booking{
		ProfessionalID: req.ProfessionalID,
		PatientID:      req.PatientID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         status,
		IsOverbooking:  req.IsOverbooking,
		Reason:         req.Reason,
	}

	err := s.locker.WithLock(ctx, req.ProfessionalID.String(), func(lockCtx context.Context) error {
		if !req.IsOverbooking {
			hasConflict, err := s.repo.CheckConflicts(lockCtx, req.ProfessionalID, req.StartTime, req.EndTime, nil)
			if err != nil {
				return fmt.Errorf("failed to check conflicts: %w", err)
			}
			if hasConflict {
				if s.metrics != nil {
					s.metrics.BookingConflicts.Inc()
				}
				return apperrors.NewConflict("interval overlaps an existing booking")
			}
		}
		return s.repo.Create(lockCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.WithLabelValues(string(status)).Inc()
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("professional_id", booking.ProfessionalID.String()).
		Str("status", string(status)).
		Bool("overbooking", booking.IsOverbooking).
		Msg("booking created")

	return booking, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Confirm moves a pending booking to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, func(b *model.Booking) error {
		if b.Status != model.BookingStatusPending {
			return apperrors.NewInvalidTransition(fmt.Sprintf("cannot confirm a %s booking", b.Status))
		}
		b.Status = model.BookingStatusConfirmed
		return nil
	})
}

// Cancel moves a pending or confirmed booking to cancelled. A reason
// is mandatory.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, cancelledBy, reason string) (*model.Booking, error) {
	if reason == "" {
		return nil, apperrors.NewBadRequest("cancellation reason is required", nil)
	}
	return s.transition(ctx, id, func(b *model.Booking) error {
		if b.Status != model.BookingStatusPending && b.Status != model.BookingStatusConfirmed {
			return apperrors.NewInvalidTransition(fmt.Sprintf("cannot cancel a %s booking", b.Status))
		}
		b.Status = model.BookingStatusCancelled
		b.CancelledBy = &cancelledBy
		b.CancellationReason = &reason
		return nil
	})
}

// Complete moves a confirmed booking to completed. A pending booking
// cannot be completed without confirmation first.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, func(b *model.Booking) error {
		if b.Status != model.BookingStatusConfirmed {
			return apperrors.NewInvalidTransition(fmt.Sprintf("cannot complete a %s booking", b.Status))
		}
		b.Status = model.BookingStatusCompleted
		return nil
	})
}

// MarkNoShow moves a confirmed booking to no-show once its end instant
// has passed.
func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, func(b *model.Booking) error {
		if b.Status != model.BookingStatusConfirmed {
			return apperrors.NewInvalidTransition(fmt.Sprintf("cannot mark a %s booking as no-show", b.Status))
		}
		if b.EndTime.After(s.clock.Now()) {
			return apperrors.NewInvalidTransition("cannot mark no-show before the booking has ended")
		}
		b.Status = model.BookingStatusNoShow
		return nil
	})
}

// CancelStalePending cancels pending bookings whose end instant passed
// more than ttl ago. Returns the number of bookings swept.
func (s *Service) CancelStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.clock.Now().Add(-ttl)
	stale, err := s.repo.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending bookings: %w", err)
	}

	swept := 0
	for _, b := range stale {
		if _, err := s.Cancel(ctx, b.ID, SystemActor, "expired without confirmation"); err != nil {
			log.Error().Err(err).Str("booking_id", b.ID.String()).Msg("failed to sweep stale booking")
			continue
		}
		swept++
	}
	return swept, nil
}

// transition applies fn to the booking under the professional's lock
// and persists the result. fn mutates the booking or returns the guard
// violation.
func (s *Service) transition(ctx context.Context, id uuid.UUID, fn func(*model.Booking) error) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.locker.WithLock(ctx, booking.ProfessionalID.String(), func(lockCtx context.Context) error {
		// Re-read inside the critical section; another caller may have
		// transitioned the booking while we waited for the lock.
		current, err := s.repo.Get(lockCtx, id)
		if err != nil {
			return err
		}
		from := current.Status

		if err := fn(current); err != nil {
			if s.metrics != nil && apperrors.IsInvalidTransition(err) {
				s.metrics.TransitionViolations.Inc()
			}
			return err
		}

		if err := s.repo.Update(lockCtx, current); err != nil {
			return err
		}

		if s.metrics != nil {
			s.metrics.BookingTransitions.WithLabelValues(string(from), string(current.Status)).Inc()
		}
		log.Info().
			Str("booking_id", id.String()).
			Str("from", string(from)).
			Str("to", string(current.Status)).
			Msg("booking transition")

		booking = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}
