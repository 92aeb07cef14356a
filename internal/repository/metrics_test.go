package repository_test

import (
	"context"
	"testing"

	"task_manager_api/internal/domain"
	"task_manager_api/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) repository.TaskStore {
		return repository.Instrument(repository.NewMemoryTaskRepository(), "memory-contract")
	})
}

func TestInstrumentedStore_CountsResults(t *testing.T) {
	s := repository.Instrument(repository.NewMemoryTaskRepository(), "memory-count")
	ctx := context.Background()

	created, err := s.Create(ctx, 1, domain.NewTask{Title: "T", Description: "D"})
	require.NoError(t, err)
	_, err = s.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	_, err = s.Get(ctx, 2, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(repository.StoreOps.WithLabelValues("memory-count", "create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repository.StoreOps.WithLabelValues("memory-count", "get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repository.StoreOps.WithLabelValues("memory-count", "get", "not_found")))
}
