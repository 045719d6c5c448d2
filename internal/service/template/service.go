package template

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// Service administers availability templates and exception blocks.
type Service struct {
	templates repository.TemplateRepository
	blocks    repository.BlockRepository
}

func NewService(templates repository.TemplateRepository, blocks repository.BlockRepository) *Service {
	return &Service{templates: templates, blocks: blocks}
}

func (s *Service) CreateTemplate(ctx context.Context, req *model.CreateTemplateRequest) (*model.AvailabilityTemplate, error) {
	startMinute, endMinute, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	tpl := &model.AvailabilityTemplate{
		ProfessionalID:      req.ProfessionalID,
		DayOfWeek:           req.DayOfWeek,
		StartMinute:         startMinute,
		EndMinute:           endMinute,
		SlotDurationMinutes: req.SlotDurationMinutes,
		Active:              true,
	}

	if req.ValidFrom != "" {
		from, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid valid_from date", err)
		}
		tpl.ValidFrom = &from
	}
	if req.ValidTo != "" {
		to, err := time.Parse("2006-01-02", req.ValidTo)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid valid_to date", err)
		}
		tpl.ValidTo = &to
	}
	if tpl.ValidFrom != nil && tpl.ValidTo != nil && tpl.ValidTo.Before(*tpl.ValidFrom) {
		return nil, apperrors.NewInvalidInterval("valid_to is before valid_from")
	}

	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	log.Info().
		Str("template_id", tpl.ID.String()).
		Str("professional_id", tpl.ProfessionalID.String()).
		Int("day_of_week", tpl.DayOfWeek).
		Msg("template created")

	return tpl, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, id uuid.UUID, req *model.UpdateTemplateRequest) (*model.AvailabilityTemplate, error) {
	tpl, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		tpl.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		minute, err := model.ParseMinuteOfDay(*req.StartTime)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid start_time", err)
		}
		tpl.StartMinute = minute
	}
	if req.EndTime != nil {
		minute, err := model.ParseMinuteOfDay(*req.EndTime)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid end_time", err)
		}
		tpl.EndMinute = minute
	}
	if req.SlotDurationMinutes != nil {
		tpl.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.Active != nil {
		tpl.Active = *req.Active
	}
	if req.ValidFrom != nil {
		from, err := time.Parse("2006-01-02", *req.ValidFrom)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid valid_from date", err)
		}
		tpl.ValidFrom = &from
	}
	if req.ValidTo != nil {
		to, err := time.Parse("2006-01-02", *req.ValidTo)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid valid_to date", err)
		}
		tpl.ValidTo = &to
	}

	if tpl.StartMinute >= tpl.EndMinute {
		return nil, apperrors.NewInvalidInterval("template start must be before end")
	}
	if tpl.SlotDurationMinutes <= 0 {
		return nil, apperrors.NewInvalidInterval("slot duration must be positive")
	}

	if err := s.templates.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// DeactivateTemplate turns the rule off without deleting it; history
// and future re-activation stay possible.
func (s *Service) DeactivateTemplate(ctx context.Context, id uuid.UUID) (*model.AvailabilityTemplate, error) {
	tpl, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl.Active = false
	if err := s.templates.Update(ctx, tpl); err != nil {
		return nil, err
	}

	log.Info().Str("template_id", id.String()).Msg("template deactivated")
	return tpl, nil
}

func (s *Service) ListTemplates(ctx context.Context, professionalID uuid.UUID) ([]*model.AvailabilityTemplate, error) {
	templates, err := s.templates.ListForProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *Service) CreateBlock(ctx context.Context, req *model.CreateBlockRequest) (*model.ExceptionBlock, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, apperrors.NewInvalidInterval("block start must be before end")
	}

	block := &model.ExceptionBlock{
		ProfessionalID: req.ProfessionalID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	}
	if req.Reason != "" {
		reason := req.Reason
		block.Reason = &reason
	}

	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create exception block: %w", err)
	}

	log.Info().
		Str("block_id", block.ID.String()).
		Str("professional_id", block.ProfessionalID.String()).
		Time("start", block.StartTime).
		Time("end", block.EndTime).
		Msg("exception block created")

	return block, nil
}

func (s *Service) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	return s.blocks.Delete(ctx, id)
}

func (s *Service) ListBlocks(ctx context.Context, professionalID uuid.UUID) ([]*model.ExceptionBlock, error) {
	blocks, err := s.blocks.ListForProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exception blocks: %w", err)
	}
	return blocks, nil
}

func parseWindow(start, end string) (int, int, error) {
	startMinute, err := model.ParseMinuteOfDay(start)
	if err != nil {
		return 0, 0, apperrors.NewBadRequest("invalid start_time", err)
	}
	endMinute, err := model.ParseMinuteOfDay(end)
	if err != nil {
		return 0, 0, apperrors.NewBadRequest("invalid end_time", err)
	}
	if startMinute >= endMinute {
		return 0, 0, apperrors.NewInvalidInterval("template start must be before end")
	}
	return startMinute, endMinute, nil
}
