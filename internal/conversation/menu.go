package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/internal/session"
)

func (e *Engine) handleMenu(ctx context.Context, sess *session.Session, text string) error {
	switch text {
	case btnBook:
		sess.Appointment = &session.AppointmentDraft{}
		sess.State = session.StateAppointmentName
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{Text: msgAskFullName, RemoveKeyboard: true})
		return nil

	case btnMyBooking:
		return e.showMyAppointments(ctx, sess)

	case btnSurvey:
		sess.Survey = &session.SurveyDraft{}
		sess.State = session.StateSurvey
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{
			Text:     surveyQuestions[0],
			Keyboard: [][]string{{btnSurveyLeave}},
		})
		return nil

	case btnPrices:
		return e.showPriceList(ctx, sess)

	case btnAdminMenu:
		if sess.ChatID != e.adminChatID {
			e.send(ctx, sess.ChatID, Reply{Text: msgAdminOnly, Keyboard: e.menuKeyboard(sess.ChatID)})
			return nil
		}
		sess.State = session.StateAdminMenu
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, sess.ChatID, Reply{Text: msgAdminWelcome, Keyboard: adminKeyboard()})
		return nil

	default:
		e.send(ctx, sess.ChatID, Reply{
			Text:     msgUnknownCommand,
			Keyboard: e.menuKeyboard(sess.ChatID),
		})
		return nil
	}
}

func (e *Engine) showPriceList(ctx context.Context, sess *session.Session) error {
	items, err := e.catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		e.send(ctx, sess.ChatID, Reply{Text: msgPriceListEmpty, Keyboard: e.menuKeyboard(sess.ChatID)})
		return nil
	}

	var b strings.Builder
	b.WriteString("<b>Price list</b>\n")
	for _, it := range items {
		fmt.Fprintf(&b, "• %s — %.2f\n", it.Name, it.Price)
	}
	e.send(ctx, sess.ChatID, Reply{
		Text:     b.String(),
		HTML:     true,
		Keyboard: e.menuKeyboard(sess.ChatID),
	})
	return nil
}

func (e *Engine) showMyAppointments(ctx context.Context, sess *session.Session) error {
	today := e.now().Format(booking.DateFormat)
	upcoming, err := e.appointments.ListUpcomingByClient(ctx, sess.ChatID, today)
	if err != nil {
		return err
	}
	if len(upcoming) == 0 {
		e.send(ctx, sess.ChatID, Reply{Text: msgNoAppointments, Keyboard: e.menuKeyboard(sess.ChatID)})
		return nil
	}

	var b strings.Builder
	b.WriteString("Your upcoming appointments:\n")
	for _, a := range upcoming {
		fmt.Fprintf(&b, "- %s at %s\n", a.Date, a.TimeOfDay)
	}
	b.WriteString("\nPress \"" + btnCancelAppt + "\" to cancel your nearest appointment, or \"" + btnBack + "\" to return to the menu.")

	// The nearest appointment is first; it is the cancellation target.
	sess.CancelTargetID = upcoming[0].ID.String()
	sess.State = session.StateCancelAppointment
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{
		Text:     b.String(),
		Keyboard: [][]string{{btnCancelAppt, btnBack}},
	})
	return nil
}

func (e *Engine) handleCancelAppointment(ctx context.Context, sess *session.Session, text string) error {
	if !strings.EqualFold(text, btnCancelAppt) {
		return e.toMenu(ctx, sess, msgCancelDismissed)
	}

	today := e.now().Format(booking.DateFormat)
	upcoming, err := e.appointments.ListUpcomingByClient(ctx, sess.ChatID, today)
	if err != nil {
		return err
	}
	for _, a := range upcoming {
		if a.ID.String() == sess.CancelTargetID {
			if err := e.booker.Cancel(ctx, a); err != nil {
				return err
			}
			return e.toMenu(ctx, sess, msgCancelDone)
		}
	}
	// Already gone (swept or cancelled elsewhere); nothing to do.
	return e.toMenu(ctx, sess, msgNoAppointments)
}
