package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shopbot/internal/order"
)

func TestToRecordMapsAllFields(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &order.Order{
		ID:           "ORD-20260301120000-abcd1234",
		CustomerID:   42,
		Condition:    "🆕 Brand New",
		Model:        "iPhone 13",
		Storage:      "128GB",
		Color:        "Black",
		Name:         "Jane Doe",
		Phone:        "0551234567",
		Price:        "950",
		Fulfillment:  order.FulfillmentDelivery,
		Location:     &order.Location{Latitude: 6.2, Longitude: -1.61},
		RejectReason: "blurry",
		CreatedAt:    created,
	}

	rec := toRecord(o, order.StatusCompleted)

	assert.Equal(t, o.ID, rec.OrderID)
	assert.Equal(t, int64(42), rec.CustomerID)
	assert.Equal(t, "Jane Doe", rec.CustomerName)
	assert.Equal(t, "0551234567", rec.CustomerPhone)
	assert.Equal(t, "Delivery", rec.Fulfillment)
	assert.Equal(t, "completed", rec.Outcome)
	assert.Equal(t, created, rec.CreatedAt)
	if assert.NotNil(t, rec.Latitude) {
		assert.InDelta(t, 6.2, *rec.Latitude, 1e-9)
	}
	if assert.NotNil(t, rec.Longitude) {
		assert.InDelta(t, -1.61, *rec.Longitude, 1e-9)
	}
}

func TestToRecordWithoutLocation(t *testing.T) {
	rec := toRecord(&order.Order{ID: "ORD-x"}, order.StatusOutOfStock)

	assert.Nil(t, rec.Latitude)
	assert.Nil(t, rec.Longitude)
	assert.Equal(t, "out_of_stock", rec.Outcome)
}
