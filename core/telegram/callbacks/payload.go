// Package callbacks parses Telebot callback data at the transport boundary.
// Raw button data never travels further than this package; handlers receive
// the already-split action key and payload.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Parse splits Telebot's \f<unique>|<payload> callback encoding. When the
// library has already resolved the unique key, Data holds the bare payload.
// Both parts may be empty for foreign or malformed presses.
func Parse(cb *tele.Callback) (key, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	raw = strings.TrimPrefix(raw, "\\f")
	parts := strings.SplitN(raw, "|", 2)
	key = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}

// Key returns the action key of the pressed button.
func Key(c tele.Context) string {
	k, _ := Parse(c.Callback())
	return k
}

// Payload returns the payload of the pressed button, typically an order id.
func Payload(c tele.Context) string {
	_, p := Parse(c.Callback())
	return p
}
