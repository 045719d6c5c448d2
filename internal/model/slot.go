package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotState string

const (
	SlotStateAvailable SlotState = "available"
	SlotStateOccupied  SlotState = "occupied"
	SlotStateBlocked   SlotState = "blocked"
	SlotStatePast      SlotState = "past"
)

// Slot is an ephemeral fixed-duration time unit derived from templates,
// blocks and bookings. It is recomputed on every query, never stored.
// Past slots carry the past flag; an unbooked past slot reports
// SlotStatePast while past occupied/blocked slots keep their state so
// historical views stay accurate.
type Slot struct {
	ProfessionalID uuid.UUID  `json:"professional_id"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	State          SlotState  `json:"state"`
	Past           bool       `json:"past"`
	BookingID      *uuid.UUID `json:"booking_id,omitempty"`
}

// Overlaps reports whether two half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
