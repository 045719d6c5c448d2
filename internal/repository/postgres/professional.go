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

func (r *professionalRepository) Create(ctx context.Context, professional *model.Professional) error {
	query := `
		INSERT INTO professionals (
			id, name, email, timezone, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	professional.ID = uuid.New()
	professional.CreatedAt = time.Now()
	professional.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		professional.ID,
		professional.Name,
		professional.Email,
		professional.Timezone,
		professional.Status,
		professional.CreatedAt,
		professional.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}

func (r *professionalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	query := `
		SELECT id, name, email, timezone, status, created_at, updated_at
		FROM professionals
		WHERE id = $1
	`
	var professional model.Professional
	err := r.db.GetContext(ctx, &professional, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("professional", err)
		}
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}
	return &professional, nil
}

func (r *professionalRepository) List(ctx context.Context) ([]*model.Professional, error) {
	query := `
		SELECT id, name, email, timezone, status, created_at, updated_at
		FROM professionals
		ORDER BY name ASC
	`
	var professionals []*model.Professional
	err := r.db.SelectContext(ctx, &professionals, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return professionals, nil
}
