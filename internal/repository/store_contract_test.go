package repository_test

import (
	"context"
	"sync"
	"testing"

	"task_manager_api/internal/domain"
	"task_manager_api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every TaskStore backend shares.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) repository.TaskStore) {
	t.Helper()

	t.Run("CreateThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, 7, domain.NewTask{Title: "T", Description: "D"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Positive(t, created.ID)
		assert.False(t, created.Completed)
		assert.Equal(t, int64(7), created.UserID)

		got, err := s.Get(ctx, 7, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *created, *got)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "D", got.Description)
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)

		got, err := s.Get(context.Background(), 1, 12345)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ListEmptyIsNotNil", func(t *testing.T) {
		s := newStore(t)

		tasks, err := s.List(context.Background(), 1)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("ListAscendingByID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []int64
		for _, title := range []string{"A", "B", "C"} {
			created, err := s.Create(ctx, 3, domain.NewTask{Title: title, Description: title})
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}
		_, err := s.Create(ctx, 4, domain.NewTask{Title: "other", Description: "x"})
		require.NoError(t, err)

		tasks, err := s.List(ctx, 3)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		for i, task := range tasks {
			assert.Equal(t, ids[i], task.ID)
			assert.Equal(t, []string{"A", "B", "C"}[i], task.Title)
			assert.Equal(t, int64(3), task.UserID)
		}
	})

	t.Run("UpdateReplacesTitleAndDescription", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, 1, domain.NewTask{Title: "Buy milk", Description: "2%"})
		require.NoError(t, err)

		ok, err := s.Update(ctx, 1, created.ID, domain.NewTask{Title: "Buy oat milk", Description: ""})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := s.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Buy oat milk", got.Title)
		assert.Equal(t, "", got.Description)
		assert.False(t, got.Completed)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		s := newStore(t)

		ok, err := s.Update(context.Background(), 1, 999, domain.NewTask{Title: "x", Description: "y"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DeleteAbsentIsRepeatable", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			ok, err := s.Delete(ctx, 1, 999)
			require.NoError(t, err)
			assert.False(t, ok)
		}
	})

	t.Run("DeleteThenGone", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, 1, domain.NewTask{Title: "T", Description: "D"})
		require.NoError(t, err)

		ok, err := s.Delete(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Delete(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := s.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		tasks, err := s.List(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("OwnershipIsolation", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, 1, domain.NewTask{Title: "mine", Description: "D"})
		require.NoError(t, err)

		got, err := s.Get(ctx, 2, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		ok, err := s.Update(ctx, 2, created.ID, domain.NewTask{Title: "stolen", Description: "x"})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.Delete(ctx, 2, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		tasks, err := s.List(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		got, err = s.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "mine", got.Title)
	})

	t.Run("IDsAreUnique", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const n = 20
		var (
			mu   sync.Mutex
			wg   sync.WaitGroup
			seen = make(map[int64]bool)
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := s.Create(ctx, 5, domain.NewTask{Title: "t", Description: "d"})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[created.ID] = true
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Len(t, seen, n)

		tasks, err := s.List(ctx, 5)
		require.NoError(t, err)
		require.Len(t, tasks, n)
		for i := 1; i < len(tasks); i++ {
			assert.Less(t, tasks[i-1].ID, tasks[i].ID)
		}
	})
}
