package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-board/internal/domain"
	"schedule-board/internal/repository"
	"schedule-board/internal/repository/memory"
	"schedule-board/internal/service"
)

func newScheduler(t *testing.T) (service.BlockService, service.UserService, repository.BlockRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	blocks := memory.NewBlockRepository()
	userSvc := service.NewUserService(users, blocks, testPalette, nil)
	blockSvc := service.NewBlockService(blocks, users, domain.HourMarks())
	return blockSvc, userSvc, blocks
}

func mustCreateUser(t *testing.T, svc service.UserService, email string) *domain.User {
	t.Helper()
	params := aliceParams()
	params.Email = email
	user, err := svc.Create(context.Background(), params)
	require.NoError(t, err)
	return user
}

func TestBlockServiceAdd(t *testing.T) {
	t.Run("stores a valid block", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		user := mustCreateUser(t, userSvc, "a@x.io")

		block, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "09:00", EndTime: "12:00", UserID: user.ID,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, block.ID)
		assert.Equal(t, user.ID, block.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		blockSvc, _, _ := newScheduler(t)

		_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "09:00", EndTime: "10:00", UserID: uuid.New(),
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("invalid ranges", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		user := mustCreateUser(t, userSvc, "a@x.io")

		cases := []struct {
			name       string
			start, end string
		}{
			{"zero length", "09:00", "09:00"},
			{"inverted", "09:00", "08:00"},
			{"off-grid start", "09:30", "11:00"},
			{"off-grid end", "09:00", "10:15"},
			{"not a time", "morning", "noon"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
					StartTime: tc.start, EndTime: tc.end, UserID: user.ID,
				})
				assert.ErrorIs(t, err, service.ErrInvalidRange)
			})
		}
	})

	t.Run("rejects same-user overlap", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		user := mustCreateUser(t, userSvc, "a@x.io")

		_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "09:00", EndTime: "12:00", UserID: user.ID,
		})
		require.NoError(t, err)

		for _, span := range [][2]string{
			{"10:00", "11:00"}, // inside
			{"08:00", "10:00"}, // end inside
			{"11:00", "14:00"}, // start inside
			{"08:00", "13:00"}, // contains
		} {
			_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
				StartTime: span[0], EndTime: span[1], UserID: user.ID,
			})
			assert.ErrorIs(t, err, service.ErrConflict, "span %v", span)
		}
	})

	t.Run("adjacent blocks are legal", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		user := mustCreateUser(t, userSvc, "a@x.io")

		_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "10:00", EndTime: "11:00", UserID: user.ID,
		})
		require.NoError(t, err)
		_, err = blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "11:00", EndTime: "12:00", UserID: user.ID,
		})
		assert.NoError(t, err)
	})

	t.Run("different users may overlap", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		a := mustCreateUser(t, userSvc, "a@x.io")
		b := mustCreateUser(t, userSvc, "b@x.io")

		_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "09:00", EndTime: "12:00", UserID: a.ID,
		})
		require.NoError(t, err)
		_, err = blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "10:00", EndTime: "11:00", UserID: b.ID,
		})
		assert.NoError(t, err)
	})
}

func TestBlockServiceRemove(t *testing.T) {
	t.Run("remove frees the slot", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		user := mustCreateUser(t, userSvc, "a@x.io")

		block, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "09:00", EndTime: "10:00", UserID: user.ID,
		})
		require.NoError(t, err)
		require.NoError(t, blockSvc.Remove(context.Background(), block.ID))

		// the edit-as-replace flow: the freed slot can be taken again
		_, err = blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: "09:00", EndTime: "10:00", UserID: user.ID,
		})
		assert.NoError(t, err)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		blockSvc, _, _ := newScheduler(t)
		assert.NoError(t, blockSvc.Remove(context.Background(), uuid.New()))
	})

	t.Run("remove by user clears only that user", func(t *testing.T) {
		blockSvc, userSvc, _ := newScheduler(t)
		a := mustCreateUser(t, userSvc, "a@x.io")
		b := mustCreateUser(t, userSvc, "b@x.io")

		_, err := blockSvc.Add(context.Background(), service.AddBlockParams{StartTime: "09:00", EndTime: "10:00", UserID: a.ID})
		require.NoError(t, err)
		_, err = blockSvc.Add(context.Background(), service.AddBlockParams{StartTime: "09:00", EndTime: "10:00", UserID: b.ID})
		require.NoError(t, err)

		require.NoError(t, blockSvc.RemoveByUser(context.Background(), a.ID))

		blocks, err := blockSvc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, b.ID, blocks[0].UserID)
	})
}

func TestBlockServiceListOrder(t *testing.T) {
	blockSvc, userSvc, _ := newScheduler(t)
	user := mustCreateUser(t, userSvc, "a@x.io")

	spans := [][2]string{{"14:00", "15:00"}, {"08:00", "09:00"}, {"11:00", "12:00"}}
	for _, span := range spans {
		_, err := blockSvc.Add(context.Background(), service.AddBlockParams{
			StartTime: span[0], EndTime: span[1], UserID: user.ID,
		})
		require.NoError(t, err)
	}

	blocks, err := blockSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	for i, span := range spans {
		assert.Equal(t, span[0], blocks[i].StartTime, "blocks must keep insertion order")
	}
}
