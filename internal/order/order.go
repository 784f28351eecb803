// Package order defines the order record and its in-memory registry. Orders
// live only for the duration of their lifecycle; terminal outcomes evict
// them from the registry.
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew            Status = "new"
	StatusConfirmed      Status = "confirmed"
	StatusPriced         Status = "priced"
	StatusPaymentPending Status = "payment_pending"
	StatusPaymentReview  Status = "payment_review"
	StatusFulfillment    Status = "fulfillment"
	StatusCancelled      Status = "cancelled"
	StatusOutOfStock     Status = "out_of_stock"
	StatusCompleted      Status = "completed"
)

// Fulfillment is how the customer receives the order.
type Fulfillment string

const (
	FulfillmentPickup   Fulfillment = "Pickup"
	FulfillmentDelivery Fulfillment = "Delivery"
)

// Location is a shared delivery coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Order is the frozen result of a completed intake plus everything the
// lifecycle accumulates afterwards.
type Order struct {
	ID         string
	CustomerID int64

	// Frozen intake answers, verbatim as entered.
	Condition string
	Model     string
	Storage   string
	Color     string
	Name      string
	Phone     string

	Status         Status
	Price          string
	Fulfillment    Fulfillment
	Location       *Location
	PaymentProof   string
	PaymentSkipped bool
	RejectReason   string

	// Waiting flags: what input the engine currently expects, and from whom.
	AwaitingPrice        bool
	AwaitingRejectReason bool
	AwaitingPayment      int64 // customer id the proof must come from; 0 when none
	AwaitingLocation     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewID allocates an order identity. The timestamp keeps ids sortable by
// creation time; the random suffix tolerates same-instant creation.
func NewID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}
