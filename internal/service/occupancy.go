package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"schedule-board/internal/repository"
)

// HourSlot pairs an hour mark with the color to render for that hour.
type HourSlot struct {
	Hour  string
	Color string
}

// OccupancyService answers "who owns hour H" for every hour mark of the day.
type OccupancyService interface {
	Resolve(ctx context.Context) ([]HourSlot, error)
}

type occupancyService struct {
	blocks        repository.BlockRepository
	users         repository.UserRepository
	hours         []string
	fallbackColor string
}

func NewOccupancyService(blocks repository.BlockRepository, users repository.UserRepository, hours []string, fallbackColor string) OccupancyService {
	return &occupancyService{
		blocks:        blocks,
		users:         users,
		hours:         hours,
		fallbackColor: fallbackColor,
	}
}

// Resolve scans the blocks in insertion order and, per hour, the first block
// covering that hour wins. Same-user blocks cannot overlap, so the scan order
// only decides ties between blocks of different users. Hours with no block,
// or whose block points at a user that no longer exists, get the fallback
// color.
func (s *occupancyService) Resolve(ctx context.Context) ([]HourSlot, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	colors := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		colors[u.ID] = u.Color
	}

	slots := make([]HourSlot, len(s.hours))
	for i, hour := range s.hours {
		slot := HourSlot{Hour: hour, Color: s.fallbackColor}
		for _, b := range blocks {
			if b.StartTime <= hour && b.EndTime > hour {
				if c, ok := colors[b.UserID]; ok {
					slot.Color = c
				}
				break
			}
		}
		slots[i] = slot
	}
	return slots, nil
}
