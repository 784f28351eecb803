// Package engine implements the order lifecycle state machine: intake
// questionnaire, order creation, and the admin/customer driven transitions.
// The engine is the sole mutator of the session store and the order
// registry; every inbound event is processed to completion under one lock
// before its notifications are handed to the fire-and-forget outbox.
package engine

import (
	"sync"
	"time"

	"shopbot/core/logger"
	"shopbot/internal/order"
	"shopbot/internal/session"

	"log/slog"
)

// Config carries the engine's static settings.
type Config struct {
	AdminID         int64
	BroadcastChatID int64

	ShopName       string
	Currency       string
	PaymentAccount string
	PaymentNumber  string
	PickupLocation string

	SessionTTL time.Duration
	OrderTTL   time.Duration
}

// promptKind says what free-text answer the admin currently owes.
type promptKind int

const (
	promptNone promptKind = iota
	promptPrice
	promptReject
)

// adminPrompt is the admin-session record: instead of relying on a
// registry-wide flag scan to resolve admin free text, the engine remembers
// which order the admin is currently answering. A second prompt cannot be
// opened while one is outstanding, so the reply is always unambiguous.
type adminPrompt struct {
	kind    promptKind
	orderID string
}

// Engine drives the order lifecycle.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	sessions *session.Store
	orders   *order.Registry
	out      Outbox
	arch     Archiver

	admin adminPrompt

	now func() time.Time
}

// New constructs an Engine. arch may be nil when archiving is disabled.
func New(cfg Config, sessions *session.Store, orders *order.Registry, out Outbox, arch Archiver) *Engine {
	return &Engine{
		cfg:      cfg,
		sessions: sessions,
		orders:   orders,
		out:      out,
		arch:     arch,
		now:      time.Now,
	}
}

// HandleText processes a free-text message from any sender.
func (e *Engine) HandleText(sender int64, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sender == e.cfg.AdminID {
		if e.handleAdminText(text) {
			return nil
		}
		// The admin may walk through the intake flow too, but an
		// unconsumed reply with no prompt open stays a silent no-op.
		if e.sessions.Get(sender) == nil && !isGreeting(text) {
			return nil
		}
	}
	e.handleIntakeText(sender, text)
	return nil
}

// HandlePhoto processes a photo upload, which is only meaningful as payment
// proof from a customer whose order awaits it.
func (e *Engine) HandlePhoto(sender int64, fileID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.orders.AwaitingPaymentFrom(sender)
	if o == nil {
		logger.ENG.Debug("stray photo ignored",
			slog.String("event", "payment.proof.skip"),
			slog.Int64("user_id", sender),
		)
		return nil
	}

	now := e.now()
	o.PaymentProof = fileID
	o.AwaitingPayment = 0
	o.Status = order.StatusPaymentReview
	o.UpdatedAt = now
	e.logTransition(o, "payment.proof.received")

	e.notifyAdminPhoto(fileID, msgPaymentReceivedCaption(o), InlineColumn(
		Button{Label: "✅ Approve Payment", Action: Action{Kind: ActionApprove, OrderID: o.ID}},
		Button{Label: "❌ Reject Payment", Action: Action{Kind: ActionReject, OrderID: o.ID}},
	))
	e.out.SendText(o.CustomerID, msgProofForwarded, nil)
	return nil
}

// HandleLocation processes a shared location for an order awaiting delivery
// coordinates from this sender.
func (e *Engine) HandleLocation(sender int64, lat, lng float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.orders.AwaitingLocationFrom(sender)
	if o == nil {
		return nil
	}

	o.Location = &order.Location{Latitude: lat, Longitude: lng}
	o.AwaitingLocation = false
	o.UpdatedAt = e.now()
	e.logTransition(o, "delivery.location.received")

	e.notifyAdmin(msgDeliveryLocation(o), nil)
	e.complete(o)
	return nil
}

// HandleAction processes a button press already parsed into a tagged Action.
func (e *Engine) HandleAction(sender int64, act Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch act.Kind {
	case ActionConfirm, ActionOutOfStock, ActionApprove, ActionReject:
		if sender != e.cfg.AdminID {
			return nil
		}
		e.handleAdminAction(act)
	case ActionYes, ActionNo, ActionPay, ActionSkip, ActionPickup, ActionDelivery:
		e.handleCustomerAction(sender, act)
	case ActionRestart, ActionNewOrder:
		e.handleRestart(sender, act)
	default:
		logger.ENG.Debug("unknown action ignored",
			slog.String("event", "action.unknown"),
			slog.String("kind", string(act.Kind)),
		)
	}
	return nil
}

// EvictStale removes sessions and orders idle beyond their TTLs. Zero TTLs
// disable eviction for the corresponding store.
func (e *Engine) EvictStale() (sessions, orders int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if e.cfg.SessionTTL > 0 {
		evicted := e.sessions.EvictOlderThan(now.Add(-e.cfg.SessionTTL))
		sessions = len(evicted)
	}
	if e.cfg.OrderTTL > 0 {
		for _, o := range e.orders.EvictOlderThan(now.Add(-e.cfg.OrderTTL)) {
			orders++
			if e.admin.orderID == o.ID {
				e.admin = adminPrompt{}
			}
			if e.arch != nil {
				e.arch.Archive(o, o.Status)
			}
			e.logTransition(o, "order.expired")
		}
	}
	if sessions > 0 || orders > 0 {
		logger.ENG.Info("stale entries evicted",
			slog.String("event", "sweep"),
			slog.Int("sessions", sessions),
			slog.Int("orders", orders),
		)
	}
	return sessions, orders
}

// notifyAdmin sends to the admin chat and mirrors to the broadcast channel
// when one is configured.
func (e *Engine) notifyAdmin(text string, kb *Keyboard) {
	e.out.SendText(e.cfg.AdminID, text, kb)
	if e.cfg.BroadcastChatID != 0 {
		e.out.SendText(e.cfg.BroadcastChatID, text, nil)
	}
}

func (e *Engine) notifyAdminPhoto(fileID, caption string, kb *Keyboard) {
	e.out.SendPhoto(e.cfg.AdminID, fileID, caption, kb)
	if e.cfg.BroadcastChatID != 0 {
		e.out.SendPhoto(e.cfg.BroadcastChatID, fileID, caption, nil)
	}
}

func (e *Engine) logTransition(o *order.Order, event string) {
	logger.ENG.Info("order transition",
		slog.String("event", event),
		slog.String("order_id", o.ID),
		slog.String("status", string(o.Status)),
		slog.Int64("customer_id", o.CustomerID),
	)
}
