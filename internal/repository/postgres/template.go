package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

func (r *templateRepository) Create(ctx context.Context, tpl *model.AvailabilityTemplate) error {
	query := `
		INSERT INTO availability_templates (
			id, professional_id, day_of_week, start_minute, end_minute,
			slot_duration_minutes, active, valid_from, valid_to,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	tpl.ID = uuid.New()
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tpl.ID,
		tpl.ProfessionalID,
		tpl.DayOfWeek,
		tpl.StartMinute,
		tpl.EndMinute,
		tpl.SlotDurationMinutes,
		tpl.Active,
		tpl.ValidFrom,
		tpl.ValidTo,
		tpl.CreatedAt,
		tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityTemplate, error) {
	query := `
		SELECT id, professional_id, day_of_week, start_minute, end_minute,
			   slot_duration_minutes, active, valid_from, valid_to,
			   created_at, updated_at
		FROM availability_templates
		WHERE id = $1
	`
	var tpl model.AvailabilityTemplate
	err := r.db.GetContext(ctx, &tpl, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("template", err)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &tpl, nil
}

func (r *templateRepository) Update(ctx context.Context, tpl *model.AvailabilityTemplate) error {
	query := `
		UPDATE availability_templates
		SET day_of_week = $1, start_minute = $2, end_minute = $3,
			slot_duration_minutes = $4, active = $5, valid_from = $6,
			valid_to = $7, updated_at = $8
		WHERE id = $9
	`
	tpl.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		tpl.DayOfWeek,
		tpl.StartMinute,
		tpl.EndMinute,
		tpl.SlotDurationMinutes,
		tpl.Active,
		tpl.ValidFrom,
		tpl.ValidTo,
		tpl.UpdatedAt,
		tpl.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("template", nil)
	}

	return nil
}

func (r *templateRepository) ListForProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.AvailabilityTemplate, error) {
	query := `
		SELECT id, professional_id, day_of_week, start_minute, end_minute,
			   slot_duration_minutes, active, valid_from, valid_to,
			   created_at, updated_at
		FROM availability_templates
		WHERE professional_id = $1
		ORDER BY day_of_week ASC, start_minute ASC, created_at ASC
	`
	var templates []*model.AvailabilityTemplate
	err := r.db.SelectContext(ctx, &templates, query, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}
