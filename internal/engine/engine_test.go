package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/order"
	"shopbot/internal/session"
)

const (
	adminID    = int64(999)
	customerID = int64(10)
)

type sent struct {
	To      int64
	Text    string
	FileID  string
	Caption string
	KB      *Keyboard
	Photo   bool
}

type fakeOutbox struct {
	msgs []sent
}

func (f *fakeOutbox) SendText(to int64, text string, kb *Keyboard) {
	f.msgs = append(f.msgs, sent{To: to, Text: text, KB: kb})
}

func (f *fakeOutbox) SendPhoto(to int64, fileID, caption string, kb *Keyboard) {
	f.msgs = append(f.msgs, sent{To: to, FileID: fileID, Caption: caption, KB: kb, Photo: true})
}

func (f *fakeOutbox) reset() { f.msgs = nil }

func (f *fakeOutbox) to(id int64) []sent {
	var out []sent
	for _, m := range f.msgs {
		if m.To == id {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeOutbox) last() sent {
	if len(f.msgs) == 0 {
		return sent{}
	}
	return f.msgs[len(f.msgs)-1]
}

type fakeArchive struct {
	records []order.Status
}

func (f *fakeArchive) Archive(_ *order.Order, outcome order.Status) {
	f.records = append(f.records, outcome)
}

func newTestEngine() (*Engine, *fakeOutbox, *fakeArchive) {
	out := &fakeOutbox{}
	arch := &fakeArchive{}
	e := New(Config{
		AdminID:        adminID,
		ShopName:       "Abdul iPhone Shop",
		Currency:       "GHS",
		PaymentAccount: "Daa Yussif",
		PaymentNumber:  "0593827001",
		PickupLocation: "OBUASI OPPOSITE SARK MOMO SHOP",
	}, session.NewStore(), order.NewRegistry(), out, arch)
	return e, out, arch
}

// runIntake drives a customer through the whole questionnaire and returns
// the created order.
func runIntake(t *testing.T, e *Engine, out *fakeOutbox, customer int64) *order.Order {
	t.Helper()
	for _, text := range []string{
		"hi", "🆕 Brand New", "iPhone 13", "128GB", "Black", "Jane Doe", "0551234567",
	} {
		require.NoError(t, e.HandleText(customer, text))
	}
	for _, o := range e.orders.AwaitingPrice() {
		if o.CustomerID == customer {
			return o
		}
	}
	t.Fatalf("no awaiting-price order for customer %d", customer)
	return nil
}

func inlineKinds(kb *Keyboard) []ActionKind {
	var kinds []ActionKind
	if kb == nil {
		return kinds
	}
	for _, row := range kb.Inline {
		for _, b := range row {
			kinds = append(kinds, b.Action.Kind)
		}
	}
	return kinds
}

func TestGreetingStartsIntake(t *testing.T) {
	e, out, _ := newTestEngine()

	require.NoError(t, e.HandleText(customerID, "Hello there"))

	require.NotNil(t, e.sessions.Get(customerID))
	assert.Equal(t, session.StepCondition, e.sessions.Get(customerID).Step)

	last := out.last()
	assert.Equal(t, customerID, last.To)
	assert.Contains(t, last.Text, "Select phone condition")
	require.NotNil(t, last.KB)
	assert.Equal(t, [][]string{{"🆕 Brand New", "🇬🇧 UK Used iPhone"}}, last.KB.ReplyRows)
}

func TestUnknownTextWithoutSession(t *testing.T) {
	e, out, _ := newTestEngine()

	require.NoError(t, e.HandleText(customerID, "how much is shipping"))

	assert.Nil(t, e.sessions.Get(customerID))
	assert.Contains(t, out.last().Text, "didn't understand")
}

func TestConditionRequiresExactMatch(t *testing.T) {
	e, out, _ := newTestEngine()
	require.NoError(t, e.HandleText(customerID, "hi"))
	out.reset()

	require.NoError(t, e.HandleText(customerID, "brand new")) // wrong case

	assert.Equal(t, session.StepCondition, e.sessions.Get(customerID).Step)
	assert.Contains(t, out.last().Text, "didn't understand")
}

func TestStorageRequiresCatalogMatch(t *testing.T) {
	e, _, _ := newTestEngine()
	require.NoError(t, e.HandleText(customerID, "hi"))
	require.NoError(t, e.HandleText(customerID, "🆕 Brand New"))
	require.NoError(t, e.HandleText(customerID, "iPhone 13"))

	require.NoError(t, e.HandleText(customerID, "5 terabytes"))

	assert.Equal(t, session.StepStorage, e.sessions.Get(customerID).Step)
}

func TestFreeformColorAccepted(t *testing.T) {
	e, _, _ := newTestEngine()
	require.NoError(t, e.HandleText(customerID, "hi"))
	require.NoError(t, e.HandleText(customerID, "🆕 Brand New"))
	require.NoError(t, e.HandleText(customerID, "iPhone 13"))
	require.NoError(t, e.HandleText(customerID, "128GB"))

	require.NoError(t, e.HandleText(customerID, "Millennium Falcon Grey"))

	sess := e.sessions.Get(customerID)
	assert.Equal(t, "Millennium Falcon Grey", sess.Color)
	assert.True(t, sess.ColorFreeform)
	assert.Equal(t, session.StepName, sess.Step)
}

func TestLatestGenerationPalette(t *testing.T) {
	e, out, _ := newTestEngine()
	require.NoError(t, e.HandleText(customerID, "hi"))
	require.NoError(t, e.HandleText(customerID, "🆕 Brand New"))
	require.NoError(t, e.HandleText(customerID, "iPhone 17 Pro"))
	out.reset()

	require.NoError(t, e.HandleText(customerID, "256GB"))

	last := out.last()
	require.NotNil(t, last.KB)
	joined := ""
	for _, row := range last.KB.ReplyRows {
		joined += strings.Join(row, " ")
	}
	assert.Contains(t, joined, "Titanium")
	assert.NotContains(t, joined, "Red")
}

func TestScenarioAOrderCreation(t *testing.T) {
	e, out, _ := newTestEngine()

	o := runIntake(t, e, out, customerID)

	assert.Equal(t, order.StatusNew, o.Status)
	assert.True(t, o.AwaitingPrice)
	assert.Equal(t, customerID, o.CustomerID)

	// Frozen answers, verbatim.
	assert.Equal(t, "🆕 Brand New", o.Condition)
	assert.Equal(t, "iPhone 13", o.Model)
	assert.Equal(t, "128GB", o.Storage)
	assert.Equal(t, "Black", o.Color)
	assert.Equal(t, "Jane Doe", o.Name)
	assert.Equal(t, "0551234567", o.Phone)

	// Session converted, not retained.
	assert.Nil(t, e.sessions.Get(customerID))

	adminMsgs := out.to(adminID)
	require.NotEmpty(t, adminMsgs)
	notif := adminMsgs[len(adminMsgs)-1]
	for _, field := range []string{"iPhone 13", "🆕 Brand New", "128GB", "Black", "Jane Doe", "0551234567"} {
		assert.Contains(t, notif.Text, field)
	}
	assert.ElementsMatch(t, []ActionKind{ActionConfirm, ActionOutOfStock}, inlineKinds(notif.KB))
}

func TestScenarioBPriceEntry(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	out.reset()

	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionConfirm, OrderID: o.ID}))
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.Contains(t, out.last().Text, "Enter price")

	require.NoError(t, e.HandleText(adminID, "950"))

	assert.Equal(t, "950", o.Price)
	assert.Equal(t, order.StatusPriced, o.Status)
	assert.False(t, o.AwaitingPrice)

	custMsgs := out.to(customerID)
	require.NotEmpty(t, custMsgs)
	proposal := custMsgs[len(custMsgs)-1]
	assert.Contains(t, proposal.Text, "GHS 950")
	assert.ElementsMatch(t, []ActionKind{ActionYes, ActionNo}, inlineKinds(proposal.KB))
}

func TestPriceWithoutConfirmAppliesToSoleOrder(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)

	require.NoError(t, e.HandleText(adminID, "1200"))

	assert.Equal(t, "1200", o.Price)
	assert.Equal(t, order.StatusPriced, o.Status)
}

func TestAdminPriceNoAwaitingOrdersIsNoop(t *testing.T) {
	e, out, _ := newTestEngine()

	require.NoError(t, e.HandleText(adminID, "950"))

	assert.Empty(t, out.msgs, "no awaiting order: no crash, no message")
}

func TestScenarioCNoEvictsOrder(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionConfirm, OrderID: o.ID}))
	require.NoError(t, e.HandleText(adminID, "950"))
	out.reset()

	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionNo, OrderID: o.ID}))

	assert.Nil(t, e.orders.Get(o.ID))
	custMsgs := out.to(customerID)
	require.NotEmpty(t, custMsgs)
	assert.Contains(t, custMsgs[0].Text, "cancelled")

	// A later price entry finds nothing and stays silent.
	out.reset()
	require.NoError(t, e.HandleText(adminID, "1000"))
	assert.Empty(t, out.msgs)
}

func TestScenarioDDeliveryCompletion(t *testing.T) {
	e, out, arch := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionConfirm, OrderID: o.ID}))
	require.NoError(t, e.HandleText(adminID, "950"))
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionYes, OrderID: o.ID}))
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionSkip, OrderID: o.ID}))
	out.reset()

	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionDelivery, OrderID: o.ID}))
	assert.True(t, o.AwaitingLocation)
	assert.Contains(t, out.last().Text, "share your location")

	require.NoError(t, e.HandleLocation(customerID, 6.20, -1.61))

	var customerSummary, adminSummary bool
	for _, m := range out.msgs {
		if !strings.Contains(m.Text, "ORDER COMPLETED") {
			continue
		}
		assert.Contains(t, m.Text, "6.20, -1.61")
		assert.Contains(t, m.Text, "google.com/maps")
		if m.To == customerID {
			customerSummary = true
		}
		if m.To == adminID {
			adminSummary = true
		}
	}
	assert.True(t, customerSummary, "customer must receive the final summary")
	assert.True(t, adminSummary, "admin must receive the final summary")

	assert.Nil(t, e.orders.Get(o.ID), "completed order is evicted")
	require.Len(t, arch.records, 1)
	assert.Equal(t, order.StatusCompleted, arch.records[0])

	// Fresh-start entry point offered.
	last := out.to(customerID)
	assert.Contains(t, inlineKinds(last[len(last)-1].KB), ActionNewOrder)
}

func TestPickupCompletesImmediately(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(adminID, "950"))
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionSkip, OrderID: o.ID}))
	out.reset()

	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionPickup, OrderID: o.ID}))

	require.NotEmpty(t, out.msgs)
	assert.Contains(t, out.msgs[0].Text, "ORDER COMPLETED")
	assert.Contains(t, out.msgs[0].Text, "OBUASI OPPOSITE SARK MOMO SHOP")
	assert.Nil(t, e.orders.Get(o.ID))
}

func TestPaymentProofFlow(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(adminID, "950"))
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionYes, OrderID: o.ID}))
	assert.Equal(t, customerID, o.AwaitingPayment)
	out.reset()

	require.NoError(t, e.HandlePhoto(customerID, "file-123"))

	assert.Equal(t, order.StatusPaymentReview, o.Status)
	assert.Zero(t, o.AwaitingPayment)
	assert.Equal(t, "file-123", o.PaymentProof)

	adminMsgs := out.to(adminID)
	require.Len(t, adminMsgs, 1)
	assert.True(t, adminMsgs[0].Photo)
	assert.Equal(t, "file-123", adminMsgs[0].FileID)
	assert.ElementsMatch(t, []ActionKind{ActionApprove, ActionReject}, inlineKinds(adminMsgs[0].KB))

	out.reset()
	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionApprove, OrderID: o.ID}))
	assert.Equal(t, order.StatusFulfillment, o.Status)
	assert.ElementsMatch(t, []ActionKind{ActionPickup, ActionDelivery}, inlineKinds(out.last().KB))
}

func TestPaymentRejectFlow(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(adminID, "950"))
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionYes, OrderID: o.ID}))
	require.NoError(t, e.HandlePhoto(customerID, "file-123"))
	out.reset()

	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionReject, OrderID: o.ID}))
	assert.True(t, o.AwaitingRejectReason)
	assert.Contains(t, out.last().Text, "reason")

	require.NoError(t, e.HandleText(adminID, "blurry screenshot"))

	assert.Equal(t, "blurry screenshot", o.RejectReason)
	assert.False(t, o.AwaitingRejectReason)
	assert.Equal(t, customerID, o.AwaitingPayment, "retry must be possible after rejection")

	custMsgs := out.to(customerID)
	require.NotEmpty(t, custMsgs)
	assert.Contains(t, custMsgs[len(custMsgs)-1].Text, "blurry screenshot")

	// Retry with a fresh screenshot goes through.
	out.reset()
	require.NoError(t, e.HandlePhoto(customerID, "file-456"))
	assert.Equal(t, "file-456", o.PaymentProof)
	assert.Equal(t, order.StatusPaymentReview, o.Status)
}

func TestStrayPhotoIsNoop(t *testing.T) {
	e, out, _ := newTestEngine()

	require.NoError(t, e.HandlePhoto(customerID, "file-999"))

	assert.Empty(t, out.msgs)
}

func TestSecondConfirmRefused(t *testing.T) {
	e, out, _ := newTestEngine()
	first := runIntake(t, e, out, customerID)
	second := runIntake(t, e, out, customerID+1)

	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionConfirm, OrderID: first.ID}))
	out.reset()

	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionConfirm, OrderID: second.ID}))

	assert.Equal(t, order.StatusNew, second.Status, "second confirm must not advance")
	assert.Contains(t, out.last().Text, first.ID, "refusal names the outstanding order")

	// The next free text still prices the first order.
	require.NoError(t, e.HandleText(adminID, "800"))
	assert.Equal(t, "800", first.Price)
	assert.Empty(t, second.Price)
}

func TestAmbiguousPriceEntryFailsLoudly(t *testing.T) {
	e, out, _ := newTestEngine()
	first := runIntake(t, e, out, customerID)
	second := runIntake(t, e, out, customerID+1)
	out.reset()

	// Both orders carry awaiting-price from creation and no Confirm was
	// pressed, so a bare price is ambiguous.
	require.NoError(t, e.HandleText(adminID, "950"))

	assert.Empty(t, first.Price)
	assert.Empty(t, second.Price)
	refusal := out.last()
	assert.Equal(t, adminID, refusal.To)
	assert.Contains(t, refusal.Text, first.ID)
	assert.Contains(t, refusal.Text, second.ID)
}

func TestOutOfStockEvictsAndOffersRestart(t *testing.T) {
	e, out, arch := newTestEngine()
	o := runIntake(t, e, out, customerID)
	out.reset()

	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionOutOfStock, OrderID: o.ID}))

	assert.Nil(t, e.orders.Get(o.ID))
	require.Len(t, arch.records, 1)
	assert.Equal(t, order.StatusOutOfStock, arch.records[0])

	custMsgs := out.to(customerID)
	require.Len(t, custMsgs, 1)
	assert.Contains(t, custMsgs[0].Text, "out of stock")
	assert.Contains(t, inlineKinds(custMsgs[0].KB), ActionRestart)
}

func TestRestartOpensFreshSession(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	out.reset()

	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionRestart, OrderID: o.ID}))

	assert.Nil(t, e.orders.Get(o.ID), "restart discards the referenced order")
	sess := e.sessions.Get(customerID)
	require.NotNil(t, sess)
	assert.Equal(t, session.StepCondition, sess.Step)
}

func TestStaleButtonIsIdempotent(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(adminID, "950"))
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionNo, OrderID: o.ID}))
	out.reset()

	// Pressing the already-handled button again: order is gone.
	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionNo, OrderID: o.ID}))
	require.NoError(t, e.HandleAction(adminID, Action{Kind: ActionConfirm, OrderID: o.ID}))

	assert.Empty(t, out.msgs)
}

func TestCustomerActionsRequireOwnership(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(adminID, "950"))
	out.reset()

	require.NoError(t, e.HandleAction(customerID+5, Action{Kind: ActionYes, OrderID: o.ID}))

	assert.Equal(t, order.StatusPriced, o.Status)
	assert.Empty(t, out.msgs)
}

func TestAdminActionsRequireAdmin(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	out.reset()

	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionConfirm, OrderID: o.ID}))

	assert.Equal(t, order.StatusNew, o.Status)
	assert.Empty(t, out.msgs)
}

func TestEvictStaleSweepsBothStores(t *testing.T) {
	e, out, arch := newTestEngine()
	e.cfg.SessionTTL = time.Hour
	e.cfg.OrderTTL = time.Hour
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(customerID+1, "hi")) // open session

	e.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	sessions, orders := e.EvictStale()

	assert.Equal(t, 1, sessions)
	assert.Equal(t, 1, orders)
	assert.Nil(t, e.orders.Get(o.ID))
	assert.Nil(t, e.sessions.Get(customerID+1))
	require.Len(t, arch.records, 1, "expired order is archived")
}

func TestEvictStaleZeroTTLDisabled(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)

	e.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	sessions, orders := e.EvictStale()

	assert.Zero(t, sessions)
	assert.Zero(t, orders)
	assert.NotNil(t, e.orders.Get(o.ID))
}

func TestSkipStraightFromPriced(t *testing.T) {
	e, out, _ := newTestEngine()
	o := runIntake(t, e, out, customerID)
	require.NoError(t, e.HandleText(adminID, "950"))
	out.reset()

	require.NoError(t, e.HandleAction(customerID, Action{Kind: ActionSkip, OrderID: o.ID}))

	assert.Equal(t, order.StatusFulfillment, o.Status)
	assert.True(t, o.PaymentSkipped)
	assert.ElementsMatch(t, []ActionKind{ActionPickup, ActionDelivery}, inlineKinds(out.last().KB))
}
