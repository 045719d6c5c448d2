package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/agenda-api/internal/model"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

// BlockRepo exposes the store as a repository.BlockRepository.
type BlockRepo struct {
	store *Store
}

func NewBlockRepository(store *Store) *BlockRepo {
	return &BlockRepo{store: store}
}

func (r *BlockRepo) Create(ctx context.Context, block *model.ExceptionBlock) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	block.ID = uuid.New()
	block.CreatedAt = r.store.nextCreatedAt()
	block.UpdatedAt = block.CreatedAt
	r.store.blocks[block.ID] = copyBlock(block)
	return nil
}

func (r *BlockRepo) Get(ctx context.Context, id uuid.UUID) (*model.ExceptionBlock, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	block, ok := r.store.blocks[id]
	if !ok {
		return nil, apperrors.NewNotFound("exception block", nil)
	}
	return copyBlock(block), nil
}

func (r *BlockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.blocks[id]; !ok {
		return apperrors.NewNotFound("exception block", nil)
	}
	delete(r.store.blocks, id)
	return nil
}

func (r *BlockRepo) ListForRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*model.ExceptionBlock, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var blocks []*model.ExceptionBlock
	for _, block := range r.store.blocks {
		if block.ProfessionalID != professionalID {
			continue
		}
		if model.Overlaps(block.StartTime, block.EndTime, from, to) {
			blocks = append(blocks, copyBlock(block))
		}
	}
	sortBlocks(blocks)
	return blocks, nil
}

func (r *BlockRepo) ListForProfessional(ctx context.Context, professionalID uuid.UUID) ([]*model.ExceptionBlock, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var blocks []*model.ExceptionBlock
	for _, block := range r.store.blocks {
		if block.ProfessionalID == professionalID {
			blocks = append(blocks, copyBlock(block))
		}
	}
	sortBlocks(blocks)
	return blocks, nil
}

func sortBlocks(blocks []*model.ExceptionBlock) {
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].StartTime.Before(blocks[j].StartTime)
	})
}
