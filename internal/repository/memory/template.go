package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// TemplateRepo exposes the store as a repository.TemplateRepository.
type TemplateRepo struct {
	store *Store
}

func NewTemplateRepository(store *Store) *TemplateRepo {
	return &TemplateRepo{store: store}
}

func (r *TemplateRepo) Create(ctx context.Context, tpl *model.AvailabilityTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tpl.ID = uuid.New()
	tpl.CreatedAt = r.store.nextCreatedAt()
	tpl.UpdatedAt = tpl.CreatedAt
	r.store.templates[tpl.ID] = copyTemplate(tpl)
	return nil
}

func (r *TemplateRepo) Get(ctx context.Context, id uuid.UUID) (*model.AvailabilityTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tpl, ok := r.store.templates[id]
	if !ok {
		return nil, apperrors.NewNotFound("template", nil)
	}
	return copyTemplate(tpl), nil
}

func (r *TemplateRepo) Update(ctx context.Context, tpl *model.AvailabilityTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.templates[tpl.ID]
	if !ok {
		return apperrors.NewNotFound("template", nil)
	}
	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now()
	r.store.templates[tpl.ID] = copyTemplate(tpl)
	return nil
}

func (r *TemplateRepo) ListForProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.AvailabilityTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var templates []*model.AvailabilityTemplate
	for _, tpl := range r.store.templates {
		if tpl.ProfessionalID == professionalID {
			templates = append(templates, copyTemplate(tpl))
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].DayOfWeek != templates[j].DayOfWeek {
			return templates[i].DayOfWeek < templates[j].DayOfWeek
		}
		if templates[i].StartMinute != templates[j].StartMinute {
			return templates[i].StartMinute < templates[j].StartMinute
		}
		return templates[i].CreatedAt.Before(templates[j].CreatedAt)
	})
	return templates, nil
}
