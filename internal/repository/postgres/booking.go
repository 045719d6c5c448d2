package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/medagenda/agenda-api/internal/model"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, professional_id, patient_id, start_time, end_time,
			status, is_overbooking, reason, cancelled_by,
			cancellation_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.ProfessionalID,
		booking.PatientID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.IsOverbooking,
		booking.Reason,
		booking.CancelledBy,
		booking.CancellationReason,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, professional_id, patient_id, start_time, end_time,
			   status, is_overbooking, reason, cancelled_by,
			   cancellation_reason, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET start_time = $1, end_time = $2, status = $3,
			cancelled_by = $4, cancellation_reason = $5, updated_at = $6
		WHERE id = $7
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.CancelledBy,
		booking.CancellationReason,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("booking", nil)
	}

	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `
		SELECT id, professional_id, patient_id, start_time, end_time,
			   status, is_overbooking, reason, cancelled_by,
			   cancellation_reason, created_at, updated_at
		FROM bookings
		WHERE professional_id = $1
	`
	args := []interface{}{filters.ProfessionalID}
	argCount := 2

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, s := range filters.Statuses {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND status = ANY($%d)", argCount)
		args = append(args, pq.Array(statuses))
		argCount++
	}

	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND end_time > $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}

	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND start_time < $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY start_time ASC, created_at ASC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) CheckConflicts(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE professional_id = $1
			AND status IN ('pending', 'confirmed', 'completed')
			AND start_time < $3
			AND end_time > $2
	`
	args := []interface{}{professionalID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var hasConflict bool
	err := r.db.GetContext(ctx, &hasConflict, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

func (r *bookingRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]*model.Booking, error) {
	query := `
		SELECT id, professional_id, patient_id, start_time, end_time,
			   status, is_overbooking, reason, cancelled_by,
			   cancellation_reason, created_at, updated_at
		FROM bookings
		WHERE status = 'pending'
		AND end_time < $1
		ORDER BY end_time ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale pending bookings: %w", err)
	}
	return bookings, nil
}
