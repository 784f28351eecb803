package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStartReplacesExisting(t *testing.T) {
	store := NewStore()
	now := time.Now()

	first := store.Start(1, now)
	first.Step = StepPhone
	first.Model = "iPhone 13"

	second := store.Start(1, now.Add(time.Minute))
	require.NotNil(t, second)
	assert.Equal(t, StepCondition, second.Step)
	assert.Empty(t, second.Model)
	assert.Equal(t, 1, store.Len(), "restart must not grow the store")
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Get(42))
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	store.Start(1, time.Now())
	store.Delete(1)
	assert.Nil(t, store.Get(1))
	assert.Zero(t, store.Len())
}

func TestStoreEvictOlderThan(t *testing.T) {
	store := NewStore()
	now := time.Now()
	store.Start(1, now.Add(-2*time.Hour))
	store.Start(2, now)

	evicted := store.EvictOlderThan(now.Add(-time.Hour))
	require.Len(t, evicted, 1)
	assert.Equal(t, int64(1), evicted[0])
	assert.Nil(t, store.Get(1))
	assert.NotNil(t, store.Get(2))
}

func TestStoreTouchDefersEviction(t *testing.T) {
	store := NewStore()
	now := time.Now()
	store.Start(1, now.Add(-2*time.Hour))
	store.Touch(1, now)

	evicted := store.EvictOlderThan(now.Add(-time.Hour))
	assert.Empty(t, evicted)
}
