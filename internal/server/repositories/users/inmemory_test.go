package users

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/eventboard/internal/common"
	"github.com/dmitrijs2005/eventboard/internal/server/models"
)

func TestInMemory_CreateAndFind(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Name: "Alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.FindByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound, "email lookup is case-sensitive")
}

func TestInMemory_Duplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestInMemory_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	in := &models.User{Email: "a@x.com", Name: "Alice"}
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)
	in.Name = "Mallory"

	got, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	got.Name = "Eve"

	again, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestInMemory_ConcurrentCreateSingleWinner(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const n = 32
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Email: "race@x.com"})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, common.ErrorAlreadyExists):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())
}

func TestInMemory_CanceledContext(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, context.Canceled)
}
