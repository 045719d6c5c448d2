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

func (r *blockRepository) Create(ctx context.Context, block *model.ExceptionBlock) error {
	query := `
		INSERT INTO exception_blocks (
			id, professional_id, start_time, end_time, reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	block.ID = uuid.New()
	block.CreatedAt = time.Now()
	block.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		block.ID,
		block.ProfessionalID,
		block.StartTime,
		block.EndTime,
		block.Reason,
		block.CreatedAt,
		block.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exception block: %w", err)
	}
	return nil
}

func (r *blockRepository) Get(ctx context.Context, id uuid.UUID) (*model.ExceptionBlock, error) {
	query := `
		SELECT id, professional_id, start_time, end_time, reason,
			   created_at, updated_at
		FROM exception_blocks
		WHERE id = $1
	`
	var block model.ExceptionBlock
	err := r.db.GetContext(ctx, &block, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("exception block", err)
		}
		return nil, fmt.Errorf("failed to get exception block: %w", err)
	}
	return &block, nil
}

func (r *blockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM exception_blocks
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete exception block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("exception block", nil)
	}

	return nil
}

func (r *blockRepository) ListForRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.ExceptionBlock, error) {
	query := `
		SELECT id, professional_id, start_time, end_time, reason,
			   created_at, updated_at
		FROM exception_blocks
		WHERE professional_id = $1
		AND start_time < $3
		AND end_time > $2
		ORDER BY start_time ASC
	`
	var blocks []*model.ExceptionBlock
	err := r.db.SelectContext(ctx, &blocks, query, professionalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list exception blocks: %w", err)
	}
	return blocks, nil
}

func (r *blockRepository) ListForProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.ExceptionBlock, error) {
	query := `
		SELECT id, professional_id, start_time, end_time, reason,
			   created_at, updated_at
		FROM exception_blocks
		WHERE professional_id = $1
		ORDER BY start_time ASC
	`
	var blocks []*model.ExceptionBlock
	err := r.db.SelectContext(ctx, &blocks, query, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exception blocks: %w", err)
	}
	return blocks, nil
}
