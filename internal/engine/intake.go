package engine

import (
	"regexp"
	"strings"

	"shopbot/core/logger"
	"shopbot/internal/catalog"
	"shopbot/internal/order"
	"shopbot/internal/session"

	"log/slog"
)

var greetingRe = regexp.MustCompile(`(?i)\b(hi|hello|hey)\b`)

func isGreeting(text string) bool {
	return greetingRe.MatchString(text) || strings.HasPrefix(text, "/start")
}

// handleIntakeText advances the sender's intake session by one step, or
// starts one on a greeting. Unmatched text never crashes and never advances
// the state: no session means a help prompt, a failed catalog match means a
// reprompt of the same step.
func (e *Engine) handleIntakeText(sender int64, text string) {
	sess := e.sessions.Get(sender)

	if sess == nil {
		if isGreeting(text) {
			e.startIntake(sender, msgWelcome(e.cfg.ShopName))
			return
		}
		e.out.SendText(sender, msgHelp, nil)
		return
	}

	now := e.now()
	switch sess.Step {
	case session.StepCondition:
		if !catalog.IsCondition(text) {
			e.repromptStep(sender, sess)
			return
		}
		sess.Condition = text
		sess.Step = session.StepModel
		sess.UpdatedAt = now
		e.out.SendText(sender, msgSelectModel, ReplyKeyboard(chunk(catalog.Models, catalog.ModelColumns)))

	case session.StepModel:
		if !catalog.IsModel(text) {
			e.repromptStep(sender, sess)
			return
		}
		sess.Model = text
		sess.Step = session.StepStorage
		sess.UpdatedAt = now
		e.out.SendText(sender, msgSelectStorage, ReplyKeyboard(chunk(catalog.Storage, catalog.StorageColumns)))

	case session.StepStorage:
		if !catalog.IsStorage(text) {
			e.repromptStep(sender, sess)
			return
		}
		sess.Storage = text
		sess.Step = session.StepColor
		sess.UpdatedAt = now
		// The palette depends on the chosen model; newest generation
		// models carry their own colors.
		e.out.SendText(sender, msgPickColor, ReplyKeyboard(chunk(catalog.ColorsFor(sess.Model), catalog.ColorColumns)))

	case session.StepColor:
		// Open string capture: custom colors are welcome.
		sess.Color = text
		sess.ColorFreeform = !contains(catalog.ColorsFor(sess.Model), text)
		sess.Step = session.StepName
		sess.UpdatedAt = now
		e.out.SendText(sender, msgEnterName, RemoveKeyboard())

	case session.StepName:
		sess.Name = text
		sess.Step = session.StepPhone
		sess.UpdatedAt = now
		e.out.SendText(sender, msgEnterPhone, nil)

	case session.StepPhone:
		sess.Phone = text
		e.finalizeOrder(sess)
	}
}

// startIntake opens a fresh session at the condition step and presents the
// condition choices.
func (e *Engine) startIntake(sender int64, prompt string) {
	e.sessions.Start(sender, e.now())
	e.out.SendText(sender, prompt, ReplyKeyboard(chunk(catalog.Conditions, catalog.ConditionColumns)))
}

func (e *Engine) repromptStep(sender int64, sess *session.Session) {
	logIgnoredText(sender, sess.Step)
	var kb *Keyboard
	switch sess.Step {
	case session.StepCondition:
		kb = ReplyKeyboard(chunk(catalog.Conditions, catalog.ConditionColumns))
	case session.StepModel:
		kb = ReplyKeyboard(chunk(catalog.Models, catalog.ModelColumns))
	case session.StepStorage:
		kb = ReplyKeyboard(chunk(catalog.Storage, catalog.StorageColumns))
	}
	e.out.SendText(sender, msgReprompt, kb)
}

// finalizeOrder freezes the completed session into a new order, notifies
// both parties, and deletes the session.
func (e *Engine) finalizeOrder(sess *session.Session) {
	now := e.now()
	o := &order.Order{
		ID:         order.NewID(now),
		CustomerID: sess.CustomerID,
		Condition:  sess.Condition,
		Model:      sess.Model,
		Storage:    sess.Storage,
		Color:      sess.Color,
		Name:       sess.Name,
		Phone:      sess.Phone,
		Status:     order.StatusNew,
		// The admin may type the price right away, without pressing Confirm.
		AwaitingPrice: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	e.orders.Put(o)
	e.sessions.Delete(sess.CustomerID)
	e.logTransition(o, "order.created")

	e.out.SendText(o.CustomerID, msgOrderSummary(o), RemoveKeyboard())
	e.out.SendText(o.CustomerID, msgWaitingForAdmin, nil)

	e.notifyAdmin(msgAdminNewOrder(o), InlineColumn(
		Button{Label: "✅ Confirm", Action: Action{Kind: ActionConfirm, OrderID: o.ID}},
		Button{Label: "❌ Out of Stock", Action: Action{Kind: ActionOutOfStock, OrderID: o.ID}},
	))
}

func chunk(items []string, n int) [][]string {
	if n <= 1 {
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it})
		}
		return rows
	}
	var rows [][]string
	for i := 0; i < len(items); i += n {
		end := i + n
		if end > len(items) {
			end = len(items)
		}
		rows = append(rows, items[i:end])
	}
	return rows
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func logIgnoredText(sender int64, step session.Step) {
	logger.ENG.Debug("intake text ignored",
		slog.String("event", "intake.skip"),
		slog.Int64("user_id", sender),
		slog.String("step", string(step)),
	)
}
