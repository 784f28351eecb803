package order

import (
	"sync"
	"time"
)

// Registry is the in-memory keyed order store. Flag-scan lookups cover the
// whole registry, so callers serialize admin-driven mutations behind the
// engine's lock; the registry's own mutex only protects map integrity.
type Registry struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{orders: make(map[string]*Order)}
}

// Put stores an order under its id.
func (r *Registry) Put(o *Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
}

// Get returns the order by id, or nil when it no longer exists.
func (r *Registry) Get(id string) *Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orders[id]
}

// Delete evicts the order from the registry.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
}

// Len returns the number of live orders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// AwaitingPrice returns all orders currently waiting for an admin price,
// oldest first is not guaranteed.
func (r *Registry) AwaitingPrice() []*Order {
	return r.scan(func(o *Order) bool { return o.AwaitingPrice })
}

// AwaitingRejectReason returns all orders waiting for an admin reject reason.
func (r *Registry) AwaitingRejectReason() []*Order {
	return r.scan(func(o *Order) bool { return o.AwaitingRejectReason })
}

// AwaitingPaymentFrom returns the order expecting a payment proof from the
// given customer, or nil.
func (r *Registry) AwaitingPaymentFrom(customerID int64) *Order {
	matches := r.scan(func(o *Order) bool { return o.AwaitingPayment == customerID && customerID != 0 })
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// AwaitingLocationFrom returns the order expecting a location share from the
// given customer, or nil.
func (r *Registry) AwaitingLocationFrom(customerID int64) *Order {
	matches := r.scan(func(o *Order) bool { return o.AwaitingLocation && o.CustomerID == customerID })
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// EvictOlderThan deletes orders untouched since before the cutoff and
// returns them.
func (r *Registry) EvictOlderThan(cutoff time.Time) []*Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []*Order
	for id, o := range r.orders {
		if o.UpdatedAt.Before(cutoff) {
			delete(r.orders, id)
			evicted = append(evicted, o)
		}
	}
	return evicted
}

func (r *Registry) scan(match func(*Order) bool) []*Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Order
	for _, o := range r.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	return out
}
