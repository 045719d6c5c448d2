package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Booking is a concrete patient appointment for a professional.
type Booking struct {
	Base
	ProfessionalID     uuid.UUID     `db:"professional_id" json:"professional_id"`
	PatientID          uuid.UUID     `db:"patient_id" json:"patient_id"`
	StartTime          time.Time     `db:"start_time" json:"start_time"`
	EndTime            time.Time     `db:"end_time" json:"end_time"`
	Status             BookingStatus `db:"status" json:"status"`
	IsOverbooking      bool          `db:"is_overbooking" json:"is_overbooking"`
	Reason             string        `db:"reason" json:"reason,omitempty"`
	CancelledBy        *string       `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancellationReason *string       `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
}

// IsTerminal reports whether no further lifecycle transition is
// permitted from the booking's current status.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// Occupies reports whether the booking claims its time interval for
// conflict checks and slot occupancy.
func (b *Booking) Occupies() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

// OccupyingStatuses are the statuses that claim time on the schedule.
func OccupyingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted}
}

type CreateBookingRequest struct {
	ProfessionalID uuid.UUID     `json:"professional_id" binding:"required"`
	PatientID      uuid.UUID     `json:"patient_id" binding:"required"`
	StartTime      time.Time     `json:"start_time" binding:"required"`
	EndTime        time.Time     `json:"end_time" binding:"required"`
	InitialStatus  BookingStatus `json:"initial_status" binding:"omitempty,oneof=pending confirmed"`
	IsOverbooking  bool          `json:"is_overbooking"`
	Reason         string        `json:"reason" binding:"max=1000"`
}

type CancelBookingRequest struct {
	CancelledBy string `json:"cancelled_by" binding:"required,max=255"`
	Reason      string `json:"reason" binding:"required,max=500"`
}

type BookingFilters struct {
	ProfessionalID uuid.UUID
	PatientID      uuid.UUID
	Statuses       []BookingStatus
	StartDate      time.Time
	EndDate        time.Time
}
