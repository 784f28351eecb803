// Package archive writes terminal orders to Postgres. The table is
// append-only bookkeeping: nothing in the bot ever reads it back, so a
// failed insert costs a log line, never a lifecycle transition.
package archive

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"shopbot/core/logger"
	"shopbot/internal/order"

	"log/slog"
)

const insertTimeout = 5 * time.Second

const insertQuery = `
INSERT INTO orders_archive (
	order_id, customer_id, condition, model, storage, color,
	customer_name, customer_phone, price, fulfillment,
	latitude, longitude, reject_reason, outcome, created_at
) VALUES (
	:order_id, :customer_id, :condition, :model, :storage, :color,
	:customer_name, :customer_phone, :price, :fulfillment,
	:latitude, :longitude, :reject_reason, :outcome, :created_at
)`

type record struct {
	OrderID       string    `db:"order_id"`
	CustomerID    int64     `db:"customer_id"`
	Condition     string    `db:"condition"`
	Model         string    `db:"model"`
	Storage       string    `db:"storage"`
	Color         string    `db:"color"`
	CustomerName  string    `db:"customer_name"`
	CustomerPhone string    `db:"customer_phone"`
	Price         string    `db:"price"`
	Fulfillment   string    `db:"fulfillment"`
	Latitude      *float64  `db:"latitude"`
	Longitude     *float64  `db:"longitude"`
	RejectReason  string    `db:"reject_reason"`
	Outcome       string    `db:"outcome"`
	CreatedAt     time.Time `db:"created_at"`
}

// Store persists terminal orders.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Archive inserts an order with its terminal outcome. The write happens on
// the calling goroutine but is bounded by a short timeout; errors are
// logged and swallowed so a database outage cannot stall chat handling.
func (s *Store) Archive(o *order.Order, outcome order.Status) {
	rec := toRecord(o, outcome)

	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	start := time.Now()
	if _, err := s.db.NamedExecContext(ctx, insertQuery, rec); err != nil {
		logger.ARC.Error("archive insert failed",
			slog.String("event", "archive.insert"),
			slog.String("order_id", o.ID),
			slog.String("outcome", string(outcome)),
			slog.Any("error", err),
		)
		return
	}
	logger.ARC.Debug("order archived",
		slog.String("event", "archive.insert"),
		slog.String("order_id", o.ID),
		slog.String("outcome", string(outcome)),
		slog.Duration("took", time.Since(start)),
	)
}

func toRecord(o *order.Order, outcome order.Status) record {
	rec := record{
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		Condition:     o.Condition,
		Model:         o.Model,
		Storage:       o.Storage,
		Color:         o.Color,
		CustomerName:  o.Name,
		CustomerPhone: o.Phone,
		Price:         o.Price,
		Fulfillment:   string(o.Fulfillment),
		RejectReason:  o.RejectReason,
		Outcome:       string(outcome),
		CreatedAt:     o.CreatedAt,
	}
	if o.Location != nil {
		lat, lng := o.Location.Latitude, o.Location.Longitude
		rec.Latitude = &lat
		rec.Longitude = &lng
	}
	return rec
}
