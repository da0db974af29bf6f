package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/internal/session"
)

func adminKeyboard() [][]string {
	return [][]string{
		{btnAdminSchedule, btnAdminClients},
		{btnAdminThreshold, btnAdminPercentage},
		{btnAdminPriceAdd, btnAdminPriceDel},
		{btnBack},
	}
}

func (e *Engine) toAdminMenu(ctx context.Context, sess *session.Session, text string) error {
	sess.PriceDraftName = ""
	sess.State = session.StateAdminMenu
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{Text: text, Keyboard: adminKeyboard()})
	return nil
}

func (e *Engine) handleAdminMenu(ctx context.Context, sess *session.Session, text string) error {
	if sess.ChatID != e.adminChatID {
		return e.toMenu(ctx, sess, msgAdminOnly)
	}

	switch text {
	case btnAdminSchedule:
		return e.showAdminSchedule(ctx, sess)

	case btnAdminClients:
		return e.showAdminClients(ctx, sess)

	case btnAdminThreshold:
		sess.State = session.StateAdminThreshold
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{Text: msgAskThreshold, RemoveKeyboard: true})
		return nil

	case btnAdminPercentage:
		sess.State = session.StateAdminPercentage
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{Text: msgAskPercentage, RemoveKeyboard: true})
		return nil

	case btnAdminPriceAdd:
		sess.State = session.StateAdminPriceName
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{Text: msgAskPriceItemName, RemoveKeyboard: true})
		return nil

	case btnAdminPriceDel:
		return e.promptPriceDelete(ctx, sess)

	case btnBack:
		return e.toMenu(ctx, sess, msgWelcome)

	default:
		e.send(ctx, sess.ChatID, Reply{Text: msgUnknownCommand, Keyboard: adminKeyboard()})
		return nil
	}
}

// showAdminSchedule renders the booked slots for the coming week.
func (e *Engine) showAdminSchedule(ctx context.Context, sess *session.Session) error {
	var b strings.Builder
	b.WriteString("<b>Schedule, next 7 days</b>\n")
	total := 0
	now := e.now()
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, i).Format(booking.DateFormat)
		appts, err := e.appointments.ListByDate(ctx, date)
		if err != nil {
			return err
		}
		for _, a := range appts {
			fmt.Fprintf(&b, "%s %s — %s (%.0f%%)\n", a.Date, a.TimeOfDay, a.FullName, a.DiscountPercent)
			total++
		}
	}
	if total == 0 {
		b.WriteString("No bookings.\n")
	}
	e.send(ctx, sess.ChatID, Reply{Text: b.String(), HTML: true, Keyboard: adminKeyboard()})
	return nil
}

func (e *Engine) showAdminClients(ctx context.Context, sess *session.Session) error {
	list, err := e.profiles.List(ctx, 50)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		e.send(ctx, sess.ChatID, Reply{Text: "No clients yet.", Keyboard: adminKeyboard()})
		return nil
	}

	var b strings.Builder
	b.WriteString("<b>Clients</b>\n")
	for _, c := range list {
		name := c.FullName
		if name == "" {
			name = "(no name)"
		}
		fmt.Fprintf(&b, "%s — %s, visits: %d\n", name, c.Phone, c.VisitCount)
	}
	e.send(ctx, sess.ChatID, Reply{Text: b.String(), HTML: true, Keyboard: adminKeyboard()})
	return nil
}

func (e *Engine) handleAdminThreshold(ctx context.Context, sess *session.Session, text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		e.send(ctx, sess.ChatID, Reply{Text: msgBadNumber})
		return nil
	}
	if err := e.settings.SetThreshold(ctx, n); err != nil {
		return err
	}
	return e.toAdminMenu(ctx, sess, fmt.Sprintf("Visit threshold set to %d.", n))
}

func (e *Engine) handleAdminPercentage(ctx context.Context, sess *session.Session, text string) error {
	pct, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || pct < 0 || pct > 100 {
		e.send(ctx, sess.ChatID, Reply{Text: msgBadNumber})
		return nil
	}
	if err := e.settings.SetPercent(ctx, pct); err != nil {
		return err
	}
	return e.toAdminMenu(ctx, sess, fmt.Sprintf("Visit discount set to %g%%.", pct))
}

func (e *Engine) handleAdminPriceName(ctx context.Context, sess *session.Session, text string) error {
	if text == "" {
		e.send(ctx, sess.ChatID, Reply{Text: msgAskPriceItemName})
		return nil
	}
	sess.PriceDraftName = text
	sess.State = session.StateAdminPricePrice
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{Text: msgAskPriceItemPrice})
	return nil
}

func (e *Engine) handleAdminPricePrice(ctx context.Context, sess *session.Session, text string) error {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || price < 0 {
		e.send(ctx, sess.ChatID, Reply{Text: msgBadNumber})
		return nil
	}
	id, err := e.catalog.Add(ctx, sess.PriceDraftName, price)
	if err != nil {
		return err
	}
	return e.toAdminMenu(ctx, sess, fmt.Sprintf("Added price item #%d.", id))
}

func (e *Engine) promptPriceDelete(ctx context.Context, sess *session.Session) error {
	items, err := e.catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		e.send(ctx, sess.ChatID, Reply{Text: msgPriceListEmpty, Keyboard: adminKeyboard()})
		return nil
	}

	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%d. %s — %.2f\n", it.ID, it.Name, it.Price)
	}
	b.WriteString("\n" + msgAskPriceItemID)

	sess.State = session.StateAdminPriceDelete
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{Text: b.String(), RemoveKeyboard: true})
	return nil
}

func (e *Engine) handleAdminPriceDelete(ctx context.Context, sess *session.Session, text string) error {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		e.send(ctx, sess.ChatID, Reply{Text: msgBadNumber})
		return nil
	}
	if err := e.catalog.Delete(ctx, id); err != nil {
		return e.toAdminMenu(ctx, sess, fmt.Sprintf("Could not delete item #%d.", id))
	}
	return e.toAdminMenu(ctx, sess, fmt.Sprintf("Deleted price item #%d.", id))
}
