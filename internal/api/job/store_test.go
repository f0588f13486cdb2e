// internal/api/job/store_test.go
package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(100, time.Hour)

	job := store.Create("backtest")
	require.NotEmpty(t, job.ID)
	assert.Equal(t, StatusPending, job.Status)

	retrieved, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, retrieved.ID)
	assert.Equal(t, "backtest", retrieved.Type)
}

func TestStore_Update(t *testing.T) {
	store := NewStore(100, time.Hour)
	job := store.Create("backtest")

	err := store.Update(job.ID, func(j *Job) {
		j.Status = StatusRunning
		j.Progress = 50
	})
	require.NoError(t, err)

	retrieved, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, retrieved.Status)
	assert.Equal(t, 50, retrieved.Progress)
}

func TestStore_UpdateUnknown(t *testing.T) {
	store := NewStore(100, time.Hour)

	err := store.Update("nonexistent", func(j *Job) {
		j.Status = StatusRunning
	})
	assert.Error(t, err)
}

func TestStore_MaxSize(t *testing.T) {
	store := NewStore(2, time.Hour)

	job1 := store.Create("backtest")
	store.Create("backtest")
	store.Create("backtest") // evicts job1

	_, err := store.Get(job1.ID)
	assert.Error(t, err, "oldest job should have been evicted")
}

func TestStore_NotFound(t *testing.T) {
	store := NewStore(100, time.Hour)

	_, err := store.Get("nonexistent")
	assert.Error(t, err)
}

func TestStore_List(t *testing.T) {
	store := NewStore(100, time.Hour)
	store.Create("backtest")
	store.Create("seed")

	assert.Len(t, store.List(), 2)
}
