package repository

import (
	"context"

	"github.com/google/uuid"

	"schedule-board/internal/domain"
)

// BlockRepository defines storage operations for TimeBlock entities.
// List returns blocks in insertion order; the occupancy resolver depends on
// that order for its first-match tie-break.
type BlockRepository interface {
	Insert(ctx context.Context, block *domain.TimeBlock) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context) ([]domain.TimeBlock, error)
}
