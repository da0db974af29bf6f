package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/internal/session"
)

func (e *Engine) handleAppointmentName(ctx context.Context, sess *session.Session, text string) error {
	if text == "" {
		e.send(ctx, sess.ChatID, Reply{Text: msgAskFullName})
		return nil
	}
	if sess.Appointment == nil {
		sess.Appointment = &session.AppointmentDraft{}
	}
	sess.Appointment.FullName = text
	sess.State = session.StateAppointmentDate
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.sendDateChoices(ctx, sess.ChatID, msgAskDate)
	return nil
}

func (e *Engine) sendDateChoices(ctx context.Context, chatID int64, text string) {
	dates := e.slots.Dates()
	kb := make([][]string, 0, len(dates))
	for _, d := range dates {
		kb = append(kb, []string{d})
	}
	e.send(ctx, chatID, Reply{Text: text, Keyboard: kb})
}

func (e *Engine) handleAppointmentDate(ctx context.Context, sess *session.Session, text string) error {
	offered := e.slots.Dates()
	valid := false
	for _, d := range offered {
		if d == text {
			valid = true
			break
		}
	}
	if !valid {
		// Not in the offered set: re-prompt with the same choices.
		e.sendDateChoices(ctx, sess.ChatID, msgPickOfferedDay)
		return nil
	}
	return e.offerTimes(ctx, sess, text)
}

// offerTimes recomputes availability for a date and either advances to time
// selection or re-prompts for another date when the grid is exhausted.
func (e *Engine) offerTimes(ctx context.Context, sess *session.Session, date string) error {
	times, err := e.slots.Slots(ctx, date)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		sess.State = session.StateAppointmentDate
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.sendDateChoices(ctx, sess.ChatID, msgNoSlots)
		return nil
	}

	sess.Appointment.Date = date
	sess.Appointment.OfferedTimes = times
	sess.State = session.StateAppointmentTime
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{Text: msgAskTime, Keyboard: timeKeyboard(times)})
	return nil
}

// timeKeyboard lays slot times out four to a row.
func timeKeyboard(times []string) [][]string {
	var kb [][]string
	for i := 0; i < len(times); i += 4 {
		end := i + 4
		if end > len(times) {
			end = len(times)
		}
		kb = append(kb, times[i:end])
	}
	return kb
}

func (e *Engine) handleAppointmentTime(ctx context.Context, sess *session.Session, text string) error {
	draft := sess.Appointment
	if draft == nil || draft.Date == "" {
		return e.toMenu(ctx, sess, msgGenericError)
	}

	member := false
	for _, t := range draft.OfferedTimes {
		if t == text {
			member = true
			break
		}
	}
	if !member {
		e.send(ctx, sess.ChatID, Reply{Text: msgPickOffered, Keyboard: timeKeyboard(draft.OfferedTimes)})
		return nil
	}

	draft.Time = text
	sess.State = session.StateConfirmAppointment
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{
		Text: fmt.Sprintf("Please confirm your booking:\nName: %s\nDate: %s\nTime: %s\n\nPress \"%s\" to confirm or \"%s\" to cancel.",
			draft.FullName, draft.Date, draft.Time, btnYes, btnCancel),
		Keyboard: [][]string{{btnYes, btnCancel}},
	})
	return nil
}

func (e *Engine) handleConfirmAppointment(ctx context.Context, sess *session.Session, text string) error {
	draft := sess.Appointment
	if draft == nil || draft.Date == "" || draft.Time == "" {
		return e.toMenu(ctx, sess, msgGenericError)
	}

	// Only the affirmative token commits; any other non-empty input is a
	// cancellation, not an error.
	if !strings.EqualFold(text, btnYes) {
		return e.toMenu(ctx, sess, msgBookingAborted)
	}

	conf, err := e.booker.Confirm(ctx, booking.ConfirmInput{
		ChatID:   sess.ChatID,
		FullName: draft.FullName,
		Date:     draft.Date,
		Time:     draft.Time,
	})
	if errors.Is(err, booking.ErrSlotTaken) {
		// Lost the race: re-offer availability for the same date, never
		// retry the same slot.
		e.send(ctx, sess.ChatID, Reply{Text: msgSlotTaken, RemoveKeyboard: true})
		return e.offerTimes(ctx, sess, draft.Date)
	}
	if err != nil {
		// Keep the draft so the client can confirm again once the store
		// recovers.
		return err
	}

	if _, err := e.reminders.Schedule(ctx, conf.Appointment); err != nil {
		e.logger.Error("conversation: scheduling reminders failed",
			"chat_id", sess.ChatID, "appointment_id", conf.Appointment.ID, "error", err)
	}

	text = fmt.Sprintf("Thank you! Your booking is confirmed for <b>%s</b> at <b>%s</b>.", draft.Date, draft.Time)
	if conf.DiscountPercent > 0 {
		text += fmt.Sprintf("\nYou received a %g%% discount!", conf.DiscountPercent)
	}
	sess.ResetScratch()
	sess.State = session.StateMenu
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{
		Text:     text,
		HTML:     true,
		Keyboard: e.menuKeyboard(sess.ChatID),
	})
	return nil
}
