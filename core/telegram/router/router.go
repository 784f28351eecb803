// Package router binds Telegram update kinds to registry handlers with the
// shared recover/logging middleware chain applied.
package router

import (
	"time"

	tg "shopbot/core/telegram"
	"shopbot/core/telegram/callbacks"
	tghelpers "shopbot/core/telegram/helpers"
	"shopbot/core/telegram/middleware"

	"shopbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Options configures the routes built by Build.
type Options struct {
	// Registry resolves callback keys and the text fallback.
	Registry *tg.Registry
	// OnPhoto receives photo uploads (highest-resolution file id).
	OnPhoto tele.HandlerFunc
	// OnLocation receives shared locations.
	OnLocation tele.HandlerFunc
}

// Build returns the route set for text, photo, location, and callback updates.
func Build(opts Options) []tg.Route {
	reg := opts.Registry

	textHandler := func(c tele.Context) error {
		start := time.Now()
		if reg == nil {
			return nil
		}
		fb := reg.TextFallback()
		if fb == nil {
			logSummary(c, "text", start, nil)
			return nil
		}
		err := fb(c)
		logSummary(c, "text", start, err)
		return err
	}

	callbackHandler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		// Every press is acknowledged so the client clears its spinner,
		// even when the target order is long gone.
		_ = c.Respond()

		key := callbacks.Key(c)
		name := "callback." + key
		if reg == nil {
			return nil
		}
		handler, ok := reg.GetCallback(key)
		if !ok || handler == nil {
			handler = reg.CallbackNotFound()
			name = "callback.not_found"
		}
		if handler == nil {
			logSummary(c, name, start, nil)
			return nil
		}
		err := handler(c)
		logSummary(c, name, start, err)
		return err
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}

	routes := []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(textHandler)},
		{Endpoint: tele.OnCallback, Handler: wrap(callbackHandler)},
	}
	if opts.OnPhoto != nil {
		h := opts.OnPhoto
		routes = append(routes, tg.Route{Endpoint: tele.OnPhoto, Handler: wrap(func(c tele.Context) error {
			start := time.Now()
			err := h(c)
			logSummary(c, "photo", start, err)
			return err
		})})
	}
	if opts.OnLocation != nil {
		h := opts.OnLocation
		routes = append(routes, tg.Route{Endpoint: tele.OnLocation, Handler: wrap(func(c tele.Context) error {
			start := time.Now()
			err := h(c)
			logSummary(c, "location", start, err)
			return err
		})})
	}
	return routes
}

func logSummary(c tele.Context, handler string, start time.Time, err error) {
	ctx := tghelpers.BuildContext(c)
	attrs := []slog.Attr{
		slog.String("handler", handler),
		slog.String("status", logger.Status(err)),
		slog.Int64("duration_ms", logger.Took(start).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	logger.Debug(ctx, "tg", "handler.summary", attrs...)
}
