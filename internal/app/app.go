// Package app composes the bot: stores, lifecycle engine, Telegram
// transport, and the route set that bridges them.
package app

import (
	tele "gopkg.in/telebot.v4"

	"shopbot/core/config"
	tg "shopbot/core/telegram"
	"shopbot/core/telegram/callbacks"
	"shopbot/core/telegram/router"
	"shopbot/core/telegram/sender"
	"shopbot/internal/engine"
	"shopbot/internal/order"
	"shopbot/internal/session"
)

// actionKinds is every button action the engine understands. Each becomes a
// registered callback key; the order id travels as the payload.
var actionKinds = []engine.ActionKind{
	engine.ActionConfirm,
	engine.ActionOutOfStock,
	engine.ActionApprove,
	engine.ActionReject,
	engine.ActionYes,
	engine.ActionNo,
	engine.ActionPay,
	engine.ActionSkip,
	engine.ActionPickup,
	engine.ActionDelivery,
	engine.ActionRestart,
	engine.ActionNewOrder,
}

// App holds the composed bot components.
type App struct {
	Sessions   *session.Store
	Orders     *order.Registry
	Engine     *engine.Engine
	Registry   *tg.Registry
	Dispatcher *sender.Dispatcher

	outbox *teleOutbox
}

// New wires the engine to the Telegram transport. arch may be nil when the
// database is not configured.
func New(cfg *config.Config, arch engine.Archiver) (*App, error) {
	sessions := session.NewStore()
	orders := order.NewRegistry()

	disp := sender.NewDispatcher(sender.Options{})
	outbox := newTeleOutbox(disp)

	eng := engine.New(engine.Config{
		AdminID:         cfg.Telegram.AdminID,
		BroadcastChatID: cfg.Telegram.BroadcastChatID,
		ShopName:        cfg.Shop.Name,
		Currency:        cfg.Shop.Currency,
		PaymentAccount:  cfg.Shop.PaymentAccount,
		PaymentNumber:   cfg.Shop.PaymentNumber,
		PickupLocation:  cfg.Shop.PickupLocation,
		SessionTTL:      cfg.Lifecycle.SessionTTL,
		OrderTTL:        cfg.Lifecycle.OrderTTL,
	}, sessions, orders, outbox, arch)

	reg := tg.NewRegistry()
	reg.SetTextFallback(func(c tele.Context) error {
		return eng.HandleText(c.Sender().ID, c.Text())
	})
	for _, kind := range actionKinds {
		if err := reg.RegisterCallback(string(kind), func(c tele.Context) error {
			return eng.HandleAction(c.Sender().ID, engine.Action{
				Kind:    kind,
				OrderID: callbacks.Payload(c),
			})
		}); err != nil {
			return nil, err
		}
	}

	return &App{
		Sessions:   sessions,
		Orders:     orders,
		Engine:     eng,
		Registry:   reg,
		Dispatcher: disp,
		outbox:     outbox,
	}, nil
}

// Routes returns the bot route set for all update kinds the engine consumes.
func (a *App) Routes() []tg.Route {
	return router.Build(router.Options{
		Registry:   a.Registry,
		OnPhoto:    a.onPhoto,
		OnLocation: a.onLocation,
	})
}

// Bind attaches the constructed bot to the outbox. Must happen before
// updates flow; Run's OnStart hook is the place.
func (a *App) Bind(bot *tele.Bot) {
	a.outbox.Bind(bot)
}

func (a *App) onPhoto(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return nil
	}
	// Telebot keeps only the highest-resolution size.
	return a.Engine.HandlePhoto(c.Sender().ID, msg.Photo.FileID)
}

func (a *App) onLocation(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Location == nil {
		return nil
	}
	loc := msg.Location
	return a.Engine.HandleLocation(c.Sender().ID, float64(loc.Lat), float64(loc.Lng))
}
