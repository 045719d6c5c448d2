package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// BookingRepo exposes the store as a repository.BookingRepository.
type BookingRepo struct {
	store *Store
}

func NewBookingRepository(store *Store) *BookingRepo {
	return &BookingRepo{store: store}
}

func (r *BookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking.ID = uuid.New()
	booking.CreatedAt = r.store.nextCreatedAt()
	booking.UpdatedAt = booking.CreatedAt
	r.store.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFound("booking", nil)
	}
	return copyBooking(booking), nil
}

func (r *BookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.bookings[booking.ID]
	if !ok {
		return apperrors.NewNotFound("booking", nil)
	}
	booking.CreatedAt = existing.CreatedAt
	booking.UpdatedAt = time.Now()
	r.store.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *BookingRepo) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bookings []*model.Booking
	for _, booking := range r.store.bookings {
		if booking.ProfessionalID != filters.ProfessionalID {
			continue
		}
		if filters.PatientID != uuid.Nil && booking.PatientID != filters.PatientID {
			continue
		}
		if len(filters.Statuses) > 0 && !statusIn(booking.Status, filters.Statuses) {
			continue
		}
		if !filters.StartDate.IsZero() && !booking.EndTime.After(filters.StartDate) {
			continue
		}
		if !filters.EndDate.IsZero() && !booking.StartTime.Before(filters.EndDate) {
			continue
		}
		bookings = append(bookings, copyBooking(booking))
	}
	sortBookings(bookings)
	return bookings, nil
}

func (r *BookingRepo) CheckConflicts(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, booking := range r.store.bookings {
		if booking.ProfessionalID != professionalID || !booking.Occupies() {
			continue
		}
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if model.Overlaps(booking.StartTime, booking.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]*model.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bookings []*model.Booking
	for _, booking := range r.store.bookings {
		if booking.Status == model.BookingStatusPending && booking.EndTime.Before(cutoff) {
			bookings = append(bookings, copyBooking(booking))
		}
	}
	sortBookings(bookings)
	return bookings, nil
}

func statusIn(status model.BookingStatus, statuses []model.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
