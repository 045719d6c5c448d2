package model

import (
	"time"

	"github.com/google/uuid"
)

// ExceptionBlock is a time-bounded unavailability interval for a
// professional (leave, holiday). Blocks may overlap each other; the
// slot generator treats the union of all blocks as covered time.
type ExceptionBlock struct {
	Base
	ProfessionalID uuid.UUID `db:"professional_id" json:"professional_id"`
	StartTime      time.Time `db:"start_time" json:"start_time"`
	EndTime        time.Time `db:"end_time" json:"end_time"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
}

type CreateBlockRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	Reason         string    `json:"reason" binding:"max=500"`
}
