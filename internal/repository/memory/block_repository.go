package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"schedule-board/internal/domain"
	"schedule-board/internal/repository"
)

// BlockRepository keeps time blocks in insertion order. The occupancy
// resolver relies on that order for its first-match tie-break, so blocks are
// only ever appended or removed, never reordered.
type BlockRepository struct {
	mu     sync.RWMutex
	blocks []domain.TimeBlock
}

func NewBlockRepository() repository.BlockRepository {
	return &BlockRepository{}
}

func (r *BlockRepository) Insert(_ context.Context, block *domain.TimeBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, *block)
	return nil
}

// Delete is an idempotent no-op when the id is absent.
func (r *BlockRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.blocks {
		if r.blocks[i].ID == id {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *BlockRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.blocks[:0]
	for _, b := range r.blocks {
		if b.UserID != userID {
			kept = append(kept, b)
		}
	}
	r.blocks = kept
	return nil
}

func (r *BlockRepository) List(_ context.Context) ([]domain.TimeBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.TimeBlock, len(r.blocks))
	copy(out, r.blocks)
	return out, nil
}
