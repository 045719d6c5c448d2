package professional

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/repository"
)

// Service manages the minimal professional registry the scheduler
// needs (display name, timezone). Everything else about a professional
// lives in the surrounding clinic systems.
type Service struct {
	repo repository.ProfessionalRepository
}

func NewService(repo repository.ProfessionalRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateProfessionalRequest) (*model.Professional, error) {
	professional := &model.Professional{
		Name:     req.Name,
		Email:    req.Email,
		Timezone: req.Timezone,
		Status:   "active",
	}
	if professional.Timezone == "" {
		professional.Timezone = "UTC"
	}
	if err := s.repo.Create(ctx, professional); err != nil {
		return nil, fmt.Errorf("failed to create professional: %w", err)
	}
	return professional, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Professional, error) {
	professionals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return professionals, nil
}
