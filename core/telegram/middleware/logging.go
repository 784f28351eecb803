package middleware

import (
	"context"
	"time"

	"shopbot/core/logger"
	tghelpers "shopbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// LoggerMiddleware logs a single receipt line per update and seeds the
// request context (rid, update metadata) for downstream handlers.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		var chatID, userID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}

		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(context.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.TG)
		tghelpers.StoreContext(c, ctx)

		attrs := []slog.Attr{
			slog.Int("update_id", upd.ID),
			slog.Int64("chat_id", chatID),
			slog.Int64("user_id", userID),
		}
		switch {
		case upd.Callback != nil:
			attrs = append(attrs, slog.String("kind", "callback"))
		case upd.Message != nil && upd.Message.Photo != nil:
			attrs = append(attrs, slog.String("kind", "photo"))
		case upd.Message != nil && upd.Message.Location != nil:
			attrs = append(attrs, slog.String("kind", "location"))
		default:
			if t := c.Text(); t != "" {
				attrs = append(attrs,
					slog.String("kind", "text"),
					slog.String("payload", logger.SanitizeLimit(t, 256)),
				)
			}
		}
		logger.Debug(ctx, "tg", "update.received", attrs...)

		return next(c)
	}
}
