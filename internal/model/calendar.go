package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingPreview is the display payload for an occupied calendar cell.
type BookingPreview struct {
	BookingID    uuid.UUID     `json:"booking_id"`
	PatientID    uuid.UUID     `json:"patient_id"`
	PatientLabel string        `json:"patient_label"`
	Status       BookingStatus `json:"status"`
}

// CalendarCell is one display row (day view) or grid cell (week view)
// covering a fixed hourly window. InSchedule is false when no template
// covers any part of the hour; such cells are not rendered by the UI.
type CalendarCell struct {
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	InSchedule bool            `json:"in_schedule"`
	Blocked    bool            `json:"blocked"`
	Past       bool            `json:"past"`
	Booking    *BookingPreview `json:"booking,omitempty"`
}

type DayView struct {
	ProfessionalID uuid.UUID      `json:"professional_id"`
	Date           string         `json:"date"`
	Rows           []CalendarCell `json:"rows"`
}

type WeekDay struct {
	Date      string         `json:"date"`
	DayOfWeek int            `json:"day_of_week"`
	Cells     []CalendarCell `json:"cells"`
}

type WeekView struct {
	ProfessionalID uuid.UUID `json:"professional_id"`
	WeekStart      string    `json:"week_start"`
	Days           []WeekDay `json:"days"`
}

// MonthCell carries enough per-day data to drive the month grid and the
// drill-down into a day view.
type MonthCell struct {
	Date         string   `json:"date"`
	InMonth      bool     `json:"in_month"`
	BookingCount int      `json:"booking_count"`
	Previews     []string `json:"previews,omitempty"`
}

type MonthView struct {
	ProfessionalID uuid.UUID     `json:"professional_id"`
	Month          string        `json:"month"`
	Weeks          [][]MonthCell `json:"weeks"`
}
