package engine

import (
	"shopbot/core/logger"
	"shopbot/internal/order"

	"log/slog"
)

// handleAdminText resolves the admin's free-text reply to whatever prompt is
// outstanding. It reports whether the text was consumed; unconsumed text
// falls through to the intake flow so the admin can place orders too.
func (e *Engine) handleAdminText(text string) bool {
	switch e.admin.kind {
	case promptPrice:
		o := e.orders.Get(e.admin.orderID)
		e.admin = adminPrompt{}
		if o == nil {
			// Order evicted while the prompt was open; swallow the reply.
			logger.ENG.Debug("price reply for missing order",
				slog.String("event", "price.skip"),
			)
			return true
		}
		e.applyPrice(o, text)
		return true

	case promptReject:
		o := e.orders.Get(e.admin.orderID)
		e.admin = adminPrompt{}
		if o == nil {
			logger.ENG.Debug("reject reason for missing order",
				slog.String("event", "reject.skip"),
			)
			return true
		}
		e.applyRejectReason(o, text)
		return true
	}

	// No explicit prompt open: fall back to the registry scan for orders
	// whose waiting flag was set at creation, before any Confirm press.
	if pending := e.orders.AwaitingPrice(); len(pending) > 0 {
		if len(pending) > 1 {
			e.out.SendText(e.cfg.AdminID, msgAmbiguousPrice(pending), nil)
			return true
		}
		e.applyPrice(pending[0], text)
		return true
	}
	if pending := e.orders.AwaitingRejectReason(); len(pending) > 0 {
		if len(pending) > 1 {
			e.out.SendText(e.cfg.AdminID, msgAmbiguousReject(pending), nil)
			return true
		}
		e.applyRejectReason(pending[0], text)
		return true
	}
	return false
}

func (e *Engine) applyPrice(o *order.Order, price string) {
	o.Price = price
	o.AwaitingPrice = false
	o.Status = order.StatusPriced
	o.UpdatedAt = e.now()
	e.logTransition(o, "order.priced")

	e.out.SendText(o.CustomerID, msgPriceProposal(o, e.cfg.Currency), InlineColumn(
		Button{Label: "✅ Yes", Action: Action{Kind: ActionYes, OrderID: o.ID}},
		Button{Label: "❌ No", Action: Action{Kind: ActionNo, OrderID: o.ID}},
	))
	e.out.SendText(e.cfg.AdminID, msgPriceSent(o), nil)
}

func (e *Engine) applyRejectReason(o *order.Order, reason string) {
	o.RejectReason = reason
	o.AwaitingRejectReason = false
	// Re-arm the payment flag so the offered retry actually works.
	o.AwaitingPayment = o.CustomerID
	o.Status = order.StatusPaymentPending
	o.UpdatedAt = e.now()
	e.logTransition(o, "payment.rejected")

	e.out.SendText(o.CustomerID, msgPaymentRejected(reason), InlineColumn(
		Button{Label: "💳 Send New Screenshot", Action: Action{Kind: ActionPay, OrderID: o.ID}},
		Button{Label: "⏭ Skip Payment", Action: Action{Kind: ActionSkip, OrderID: o.ID}},
	))
}

// handleAdminAction routes admin button presses. A missing order means the
// press raced with eviction and is silently dropped.
func (e *Engine) handleAdminAction(act Action) {
	o := e.orders.Get(act.OrderID)
	if o == nil {
		return
	}

	switch act.Kind {
	case ActionConfirm:
		if o.Status != order.StatusNew {
			return
		}
		// Only one admin prompt may be outstanding; a second Confirm
		// while a reply is owed would make the next free text ambiguous.
		if e.admin.kind != promptNone && e.admin.orderID != o.ID {
			e.out.SendText(e.cfg.AdminID, msgPromptBusy(e.admin.orderID), nil)
			return
		}
		o.Status = order.StatusConfirmed
		o.AwaitingPrice = true
		o.UpdatedAt = e.now()
		e.admin = adminPrompt{kind: promptPrice, orderID: o.ID}
		e.logTransition(o, "order.confirmed")
		e.out.SendText(e.cfg.AdminID, msgEnterPrice(o), nil)

	case ActionOutOfStock:
		if o.Status != order.StatusNew && o.Status != order.StatusConfirmed {
			return
		}
		o.Status = order.StatusOutOfStock
		o.UpdatedAt = e.now()
		if e.admin.orderID == o.ID {
			e.admin = adminPrompt{}
		}
		e.logTransition(o, "order.out_of_stock")

		e.out.SendText(o.CustomerID, msgOutOfStock(o), InlineColumn(
			Button{Label: "🔄 Restart Order", Action: Action{Kind: ActionRestart, OrderID: o.ID}},
		))
		e.finish(o)

	case ActionApprove:
		if o.Status != order.StatusPaymentReview {
			return
		}
		o.Status = order.StatusFulfillment
		o.UpdatedAt = e.now()
		e.logTransition(o, "payment.approved")
		e.out.SendText(o.CustomerID, msgPaymentApproved, fulfillmentKeyboard(o))

	case ActionReject:
		if o.Status != order.StatusPaymentReview {
			return
		}
		if e.admin.kind != promptNone && e.admin.orderID != o.ID {
			e.out.SendText(e.cfg.AdminID, msgPromptBusy(e.admin.orderID), nil)
			return
		}
		o.AwaitingRejectReason = true
		o.UpdatedAt = e.now()
		e.admin = adminPrompt{kind: promptReject, orderID: o.ID}
		e.out.SendText(e.cfg.AdminID, msgEnterRejectReason(o), nil)
	}
}

// finish archives a terminal order and evicts it from the registry.
func (e *Engine) finish(o *order.Order) {
	if e.arch != nil {
		e.arch.Archive(o, o.Status)
	}
	e.orders.Delete(o.ID)
}

func fulfillmentKeyboard(o *order.Order) *Keyboard {
	return InlineColumn(
		Button{Label: "Pickup", Action: Action{Kind: ActionPickup, OrderID: o.ID}},
		Button{Label: "Delivery", Action: Action{Kind: ActionDelivery, OrderID: o.ID}},
	)
}
