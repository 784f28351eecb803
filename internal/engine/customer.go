package engine

import (
	"shopbot/internal/order"
)

// handleCustomerAction routes order-owner button presses. Presses against a
// vanished order, or from anyone but the owner, are silently dropped.
func (e *Engine) handleCustomerAction(sender int64, act Action) {
	o := e.orders.Get(act.OrderID)
	if o == nil || o.CustomerID != sender {
		return
	}

	switch act.Kind {
	case ActionYes:
		if o.Status != order.StatusPriced {
			return
		}
		o.AwaitingPayment = o.CustomerID
		o.Status = order.StatusPaymentPending
		o.UpdatedAt = e.now()
		e.logTransition(o, "order.accepted")

		e.out.SendText(o.CustomerID, msgPaymentInstructions(e.cfg.PaymentNumber, e.cfg.PaymentAccount), InlineColumn(
			Button{Label: "💳 Send Payment Screenshot", Action: Action{Kind: ActionPay, OrderID: o.ID}},
			Button{Label: "⏭ Skip Payment", Action: Action{Kind: ActionSkip, OrderID: o.ID}},
		))

	case ActionNo:
		if o.Status != order.StatusPriced {
			return
		}
		o.Status = order.StatusCancelled
		o.UpdatedAt = e.now()
		e.logTransition(o, "order.cancelled")

		e.out.SendText(o.CustomerID, msgOrderCancelled(o), nil)
		e.finish(o)
		e.offerNewOrder(o.CustomerID)

	case ActionPay:
		if o.AwaitingPayment != sender {
			return
		}
		e.out.SendText(o.CustomerID, msgSendScreenshot, nil)

	case ActionSkip:
		// Skipping is allowed while the proof is awaited, or straight from
		// the priced state before the customer ever pressed Yes.
		if o.Status != order.StatusPaymentPending && o.Status != order.StatusPriced {
			return
		}
		o.AwaitingPayment = 0
		o.PaymentSkipped = true
		o.Status = order.StatusFulfillment
		o.UpdatedAt = e.now()
		e.logTransition(o, "payment.skipped")
		e.out.SendText(o.CustomerID, msgPaymentSkipped, fulfillmentKeyboard(o))

	case ActionPickup:
		if o.Status != order.StatusFulfillment {
			return
		}
		o.Fulfillment = order.FulfillmentPickup
		o.UpdatedAt = e.now()
		e.complete(o)

	case ActionDelivery:
		if o.Status != order.StatusFulfillment {
			return
		}
		o.Fulfillment = order.FulfillmentDelivery
		o.AwaitingLocation = true
		o.UpdatedAt = e.now()
		e.logTransition(o, "delivery.awaiting_location")
		e.out.SendText(o.CustomerID, msgShareLocation, nil)
	}
}

// handleRestart opens a fresh intake for the sender. Any order referenced by
// the button payload is discarded; a stale reference is a no-op.
func (e *Engine) handleRestart(sender int64, act Action) {
	if act.OrderID != "" {
		if o := e.orders.Get(act.OrderID); o != nil && o.CustomerID == sender {
			if e.admin.orderID == o.ID {
				e.admin = adminPrompt{}
			}
			e.orders.Delete(o.ID)
		}
	}
	e.startIntake(sender, msgRestart)
}

// complete finishes a fulfilled order: final summary to both parties,
// archive, evict, and a fresh-start entry point for the customer. Pickup
// arrives here immediately; delivery arrives once the location is stored.
func (e *Engine) complete(o *order.Order) {
	o.Status = order.StatusCompleted
	o.UpdatedAt = e.now()
	e.logTransition(o, "order.completed")

	summary := msgFinalSummary(o, e.cfg.Currency, e.cfg.PickupLocation)
	e.out.SendText(o.CustomerID, summary, nil)
	e.notifyAdmin(summary, nil)

	e.finish(o)
	e.offerNewOrder(o.CustomerID)
}

func (e *Engine) offerNewOrder(customerID int64) {
	e.out.SendText(customerID, msgNewOrderOffer, InlineColumn(
		Button{Label: "🛒 Start New Order", Action: Action{Kind: ActionNewOrder}},
	))
}
