package engine

import "shopbot/internal/order"

// ActionKind names a button action. The transport layer encodes it as the
// button's unique key and carries the order id as payload.
type ActionKind string

const (
	ActionConfirm    ActionKind = "confirm"
	ActionOutOfStock ActionKind = "out"
	ActionApprove    ActionKind = "approve"
	ActionReject     ActionKind = "reject"
	ActionYes        ActionKind = "yes"
	ActionNo         ActionKind = "no"
	ActionPay        ActionKind = "pay"
	ActionSkip       ActionKind = "skip"
	ActionPickup     ActionKind = "pickup"
	ActionDelivery   ActionKind = "delivery"
	ActionRestart    ActionKind = "restart"
	ActionNewOrder   ActionKind = "new"
)

// Action is the tagged form of a button press. No raw delimited payload
// strings reach the engine; the boundary parses them into this.
type Action struct {
	Kind    ActionKind
	OrderID string
}

// Button is an inline keyboard button carrying an Action.
type Button struct {
	Label  string
	Action Action
}

// Keyboard is a transport-neutral keyboard description: either reply rows (plain
// text buttons in a grid), a removal marker, or inline action buttons.
type Keyboard struct {
	ReplyRows   [][]string
	RemoveReply bool
	Inline      [][]Button
}

// ReplyKeyboard builds a reply keyboard from pre-chunked rows.
func ReplyKeyboard(rows [][]string) *Keyboard {
	return &Keyboard{ReplyRows: rows}
}

// RemoveKeyboard hides any visible reply keyboard.
func RemoveKeyboard() *Keyboard {
	return &Keyboard{RemoveReply: true}
}

// InlineColumn builds an inline keyboard with one button per row.
func InlineColumn(buttons ...Button) *Keyboard {
	kb := &Keyboard{}
	for _, b := range buttons {
		kb.Inline = append(kb.Inline, []Button{b})
	}
	return kb
}

// Outbox delivers outbound messages. Implementations are fire-and-forget:
// the engine commits state before calling them and never observes delivery
// failures (they are logged by the transport).
type Outbox interface {
	SendText(recipient int64, text string, kb *Keyboard)
	SendPhoto(recipient int64, fileID, caption string, kb *Keyboard)
}

// Archiver records terminal orders. Implementations must not block the
// calling goroutine on failure paths; errors are logged, never returned.
type Archiver interface {
	Archive(o *order.Order, outcome order.Status)
}
