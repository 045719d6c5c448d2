package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// ProfessionalRepo exposes the store as a repository.ProfessionalRepository.
type ProfessionalRepo struct {
	store *Store
}

func NewProfessionalRepository(store *Store) *ProfessionalRepo {
	return &ProfessionalRepo{store: store}
}

func (r *ProfessionalRepo) Create(ctx context.Context, professional *model.Professional) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	professional.ID = uuid.New()
	professional.CreatedAt = r.store.nextCreatedAt()
	professional.UpdatedAt = professional.CreatedAt
	dup := *professional
	r.store.professionals[professional.ID] = &dup
	return nil
}

func (r *ProfessionalRepo) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	professional, ok := r.store.professionals[id]
	if !ok {
		return nil, apperrors.NewNotFound("professional", nil)
	}
	dup := *professional
	return &dup, nil
}

func (r *ProfessionalRepo) List(ctx context.Context) ([]*model.Professional, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var professionals []*model.Professional
	for _, professional := range r.store.professionals {
		dup := *professional
		professionals = append(professionals, &dup)
	}
	sort.Slice(professionals, func(i, j int) bool {
		return professionals[i].Name < professionals[j].Name
	})
	return professionals, nil
}
