package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"schedule-board/internal/domain"
)

// ErrNotFound is returned by lookups for ids that are not present.
var ErrNotFound = errors.New("not found")

// UserRepository defines storage operations for User entities.
// List returns users in insertion order.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
