package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUniqueSameInstant(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID(now)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRegistryPutGetDelete(t *testing.T) {
	reg := NewRegistry()
	o := &Order{ID: "ORD-1", CustomerID: 10, Status: StatusNew}
	reg.Put(o)

	require.Same(t, o, reg.Get("ORD-1"))
	assert.Equal(t, 1, reg.Len())

	reg.Delete("ORD-1")
	assert.Nil(t, reg.Get("ORD-1"))
	assert.Zero(t, reg.Len())
}

func TestRegistryGetMissing(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.Get("nope"))
}

func TestAwaitingPriceScan(t *testing.T) {
	reg := NewRegistry()
	reg.Put(&Order{ID: "a", AwaitingPrice: true})
	reg.Put(&Order{ID: "b"})
	reg.Put(&Order{ID: "c", AwaitingPrice: true})

	got := reg.AwaitingPrice()
	assert.Len(t, got, 2)
}

func TestAwaitingPaymentFrom(t *testing.T) {
	reg := NewRegistry()
	reg.Put(&Order{ID: "a", CustomerID: 10, AwaitingPayment: 10})
	reg.Put(&Order{ID: "b", CustomerID: 20})

	require.NotNil(t, reg.AwaitingPaymentFrom(10))
	assert.Nil(t, reg.AwaitingPaymentFrom(20))
	assert.Nil(t, reg.AwaitingPaymentFrom(0), "zero sender never matches")
}

func TestAwaitingLocationFrom(t *testing.T) {
	reg := NewRegistry()
	reg.Put(&Order{ID: "a", CustomerID: 10, AwaitingLocation: true})

	require.NotNil(t, reg.AwaitingLocationFrom(10))
	assert.Nil(t, reg.AwaitingLocationFrom(11))
}

func TestEvictOlderThan(t *testing.T) {
	reg := NewRegistry()
	now := time.Now()
	reg.Put(&Order{ID: "old", UpdatedAt: now.Add(-48 * time.Hour)})
	reg.Put(&Order{ID: "fresh", UpdatedAt: now})

	evicted := reg.EvictOlderThan(now.Add(-24 * time.Hour))
	require.Len(t, evicted, 1)
	assert.Equal(t, "old", evicted[0].ID)
	assert.Nil(t, reg.Get("old"))
	assert.NotNil(t, reg.Get("fresh"))
}
