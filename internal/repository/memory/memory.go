// Package memory provides in-memory implementations of the repository
// interfaces. They back the unit tests; production runs on the postgres
// implementations.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
)

type Store struct {
	mu            sync.RWMutex
	templates     map[uuid.UUID]*model.AvailabilityTemplate
	blocks        map[uuid.UUID]*model.ExceptionBlock
	bookings      map[uuid.UUID]*model.Booking
	professionals map[uuid.UUID]*model.Professional
	seq           int64
}

func NewStore() *Store {
	return &Store{
		templates:     make(map[uuid.UUID]*model.AvailabilityTemplate),
		blocks:        make(map[uuid.UUID]*model.ExceptionBlock),
		bookings:      make(map[uuid.UUID]*model.Booking),
		professionals: make(map[uuid.UUID]*model.Professional),
	}
}

// nextCreatedAt hands out strictly increasing timestamps so created_at
// ordering is deterministic even when rows are inserted within the
// same wall-clock nanosecond.
func (s *Store) nextCreatedAt() time.Time {
	s.seq++
	return time.Now().Add(time.Duration(s.seq) * time.Microsecond)
}

func sortBookings(bookings []*model.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}

func copyBooking(b *model.Booking) *model.Booking {
	dup := *b
	return &dup
}

func copyTemplate(t *model.AvailabilityTemplate) *model.AvailabilityTemplate {
	dup := *t
	return &dup
}

func copyBlock(b *model.ExceptionBlock) *model.ExceptionBlock {
	dup := *b
	return &dup
}
