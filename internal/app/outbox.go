package app

import (
	"context"
	"fmt"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"shopbot/core/logger"
	"shopbot/core/telegram/keyboard"
	"shopbot/core/telegram/sender"
	"shopbot/internal/engine"

	"log/slog"
)

// teleOutbox delivers engine notifications over Telegram through the
// outbound dispatcher. The bot handle is bound late, once the bot is
// constructed; the engine never sends before updates flow.
type teleOutbox struct {
	bot  atomic.Pointer[tele.Bot]
	disp *sender.Dispatcher
}

func newTeleOutbox(disp *sender.Dispatcher) *teleOutbox {
	return &teleOutbox{disp: disp}
}

func (t *teleOutbox) Bind(bot *tele.Bot) {
	t.bot.Store(bot)
}

func (t *teleOutbox) SendText(recipient int64, text string, kb *engine.Keyboard) {
	t.enqueue("send.text", recipient, func(bot *tele.Bot) error {
		_, err := bot.Send(tele.ChatID(recipient), text, sendOptions(kb)...)
		return err
	})
}

func (t *teleOutbox) SendPhoto(recipient int64, fileID, caption string, kb *engine.Keyboard) {
	t.enqueue("send.photo", recipient, func(bot *tele.Bot) error {
		photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
		_, err := bot.Send(tele.ChatID(recipient), photo, sendOptions(kb)...)
		return err
	})
}

func (t *teleOutbox) enqueue(action string, recipient int64, run func(*tele.Bot) error) {
	err := t.disp.Enqueue(context.Background(), action, func() error {
		bot := t.bot.Load()
		if bot == nil {
			return fmt.Errorf("outbox: bot not bound")
		}
		return run(bot)
	})
	if err != nil {
		logger.TG.Error("outbound enqueue failed",
			slog.String("event", "outbox.enqueue"),
			slog.String("action", action),
			slog.Int64("recipient", recipient),
			slog.Any("error", err),
		)
	}
}

// sendOptions converts the engine's transport-neutral keyboard into Telebot
// reply markup.
func sendOptions(kb *engine.Keyboard) []any {
	markup := toMarkup(kb)
	if markup == nil {
		return nil
	}
	return []any{markup}
}

func toMarkup(kb *engine.Keyboard) *tele.ReplyMarkup {
	switch {
	case kb == nil:
		return nil
	case len(kb.Inline) > 0:
		rows := make([][]keyboard.InlineBtn, 0, len(kb.Inline))
		for _, row := range kb.Inline {
			btns := make([]keyboard.InlineBtn, 0, len(row))
			for _, b := range row {
				btns = append(btns, keyboard.InlineBtn{
					Text:   b.Label,
					Unique: string(b.Action.Kind),
					Data:   b.Action.OrderID,
				})
			}
			rows = append(rows, btns)
		}
		return keyboard.InlineRows(rows...)
	case len(kb.ReplyRows) > 0:
		return keyboard.ReplyRows(kb.ReplyRows...)
	case kb.RemoveReply:
		return keyboard.RemoveKeyboard()
	default:
		return nil
	}
}
