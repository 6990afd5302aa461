package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"schedule-board/internal/domain"
	"schedule-board/internal/repository"
)

var (
	// ErrInvalidRange is returned for intervals that are inverted, empty or
	// not aligned to the whole-hour marks.
	ErrInvalidRange = errors.New("invalid time range")
	// ErrConflict is returned when a candidate block overlaps one of the same
	// user's existing blocks.
	ErrConflict = errors.New("time block overlaps an existing one")
)

// AddBlockParams carries a candidate time block. Start and end must be hour
// marks ("HH:00"); the interval is half-open.
type AddBlockParams struct {
	StartTime string
	EndTime   string
	UserID    uuid.UUID
}

// BlockService owns the assigned time blocks. Blocks of one user never
// overlap; blocks of different users may.
type BlockService interface {
	Add(ctx context.Context, params AddBlockParams) (*domain.TimeBlock, error)
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveByUser(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context) ([]domain.TimeBlock, error)
}

type blockService struct {
	blocks    repository.BlockRepository
	users     repository.UserRepository
	hourMarks map[string]struct{}
}

func NewBlockService(blocks repository.BlockRepository, users repository.UserRepository, hours []string) BlockService {
	marks := make(map[string]struct{}, len(hours))
	for _, h := range hours {
		marks[h] = struct{}{}
	}
	return &blockService{
		blocks:    blocks,
		users:     users,
		hourMarks: marks,
	}
}

func (s *blockService) Add(ctx context.Context, params AddBlockParams) (*domain.TimeBlock, error) {
	if _, ok := s.hourMarks[params.StartTime]; !ok {
		return nil, ErrInvalidRange
	}
	if _, ok := s.hourMarks[params.EndTime]; !ok {
		return nil, ErrInvalidRange
	}
	if params.StartTime >= params.EndTime {
		return nil, ErrInvalidRange
	}

	if _, err := s.users.GetByID(ctx, params.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.blocks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	candidate := domain.Interval{Start: params.StartTime, End: params.EndTime}
	for _, b := range existing {
		if b.UserID != params.UserID {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			return nil, ErrConflict
		}
	}

	block := &domain.TimeBlock{
		ID:        uuid.New(),
		UserID:    params.UserID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
	}
	if err := s.blocks.Insert(ctx, block); err != nil {
		return nil, fmt.Errorf("insert block: %w", err)
	}
	return block, nil
}

// Remove deletes a single block; absent ids are a no-op.
func (s *blockService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.blocks.Delete(ctx, id)
}

// RemoveByUser is the cascade hook used when a user is deleted.
func (s *blockService) RemoveByUser(ctx context.Context, userID uuid.UUID) error {
	return s.blocks.DeleteByUser(ctx, userID)
}

func (s *blockService) List(ctx context.Context) ([]domain.TimeBlock, error) {
	return s.blocks.List(ctx)
}
