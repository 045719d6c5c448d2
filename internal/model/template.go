package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AvailabilityTemplate is a recurring weekly work-hour rule for a
// professional. Start and end are minutes from midnight in the
// professional's local day; day-of-week uses 0=Sunday..6=Saturday.
type AvailabilityTemplate struct {
	Base
	ProfessionalID      uuid.UUID  `db:"professional_id" json:"professional_id"`
	DayOfWeek           int        `db:"day_of_week" json:"day_of_week"`
	StartMinute         int        `db:"start_minute" json:"start_minute"`
	EndMinute           int        `db:"end_minute" json:"end_minute"`
	SlotDurationMinutes int        `db:"slot_duration_minutes" json:"slot_duration_minutes"`
	Active              bool       `db:"active" json:"active"`
	ValidFrom           *time.Time `db:"valid_from" json:"valid_from,omitempty"`
	ValidTo             *time.Time `db:"valid_to" json:"valid_to,omitempty"`
}

// CoversDate reports whether the template applies on the given calendar
// date. An absent bound is open-ended; bounds are inclusive.
func (t *AvailabilityTemplate) CoversDate(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	if t.ValidFrom != nil {
		from := time.Date(t.ValidFrom.Year(), t.ValidFrom.Month(), t.ValidFrom.Day(), 0, 0, 0, 0, d.Location())
		if day.Before(from) {
			return false
		}
	}
	if t.ValidTo != nil {
		to := time.Date(t.ValidTo.Year(), t.ValidTo.Month(), t.ValidTo.Day(), 0, 0, 0, 0, d.Location())
		if day.After(to) {
			return false
		}
	}
	return true
}

// ParseMinuteOfDay parses a "HH:MM" value into minutes from midnight.
func ParseMinuteOfDay(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatMinuteOfDay renders minutes from midnight as "HH:MM".
func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

type CreateTemplateRequest struct {
	ProfessionalID      uuid.UUID `json:"professional_id" binding:"required"`
	DayOfWeek           int       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime           string    `json:"start_time" binding:"required,timeofday"`
	EndTime             string    `json:"end_time" binding:"required,timeofday"`
	SlotDurationMinutes int       `json:"slot_duration_minutes" binding:"required,min=1"`
	ValidFrom           string    `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidTo             string    `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateTemplateRequest struct {
	DayOfWeek           *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime           *string `json:"start_time" binding:"omitempty,timeofday"`
	EndTime             *string `json:"end_time" binding:"omitempty,timeofday"`
	SlotDurationMinutes *int    `json:"slot_duration_minutes" binding:"omitempty,min=1"`
	Active              *bool   `json:"active"`
	ValidFrom           *string `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidTo             *string `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
}
