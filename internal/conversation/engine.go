package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/internal/catalog"
	"github.com/okravets/barberflow/internal/clients"
	"github.com/okravets/barberflow/internal/observability/metrics"
	"github.com/okravets/barberflow/internal/reminder"
	"github.com/okravets/barberflow/internal/session"
	"github.com/okravets/barberflow/internal/settings"
	"github.com/okravets/barberflow/pkg/logging"
)

// ProfileStore is the client-profile surface the engine needs.
type ProfileStore interface {
	Get(ctx context.Context, chatID int64) (*clients.Client, error)
	SetLanguage(ctx context.Context, chatID int64, lang string) error
	SaveSurvey(ctx context.Context, chatID int64, a clients.SurveyAnswers) error
	List(ctx context.Context, limit int) ([]clients.Client, error)
}

// Booker commits and cancels appointments.
type Booker interface {
	Confirm(ctx context.Context, in booking.ConfirmInput) (*booking.Confirmation, error)
	Cancel(ctx context.Context, appt booking.Appointment) error
}

// SlotSource computes bookable dates and times.
type SlotSource interface {
	Dates() []string
	Slots(ctx context.Context, date string) ([]string, error)
}

// AppointmentReader lists existing appointments.
type AppointmentReader interface {
	ListUpcomingByClient(ctx context.Context, chatID int64, fromDate string) ([]booking.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]booking.Appointment, error)
}

// ReminderScheduler creates reminder jobs after a confirmed booking.
type ReminderScheduler interface {
	Schedule(ctx context.Context, appt booking.Appointment) ([]reminder.Job, error)
}

// Catalog is the price-list surface.
type Catalog interface {
	List(ctx context.Context) ([]catalog.Item, error)
	Add(ctx context.Context, name string, price float64) (int, error)
	Delete(ctx context.Context, id int) error
}

// SettingsAdmin reads and mutates discount settings.
type SettingsAdmin interface {
	Get(ctx context.Context) (settings.Discounts, error)
	SetThreshold(ctx context.Context, threshold int) error
	SetPercent(ctx context.Context, pct float64) error
}

// Engine drives the conversation state machine. Inbound messages for one
// chat are processed serially by the transport adapter; the engine itself
// keeps no per-chat state outside the session store.
type Engine struct {
	sessions     session.Store
	profiles     ProfileStore
	booker       Booker
	slots        SlotSource
	appointments AppointmentReader
	reminders    ReminderScheduler
	catalog      Catalog
	settings     SettingsAdmin
	out          Outbound
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
	adminChatID  int64
	now          func() time.Time
}

// EngineConfig wires the engine's collaborators.
type EngineConfig struct {
	Sessions     session.Store
	Profiles     ProfileStore
	Booker       Booker
	Slots        SlotSource
	Appointments AppointmentReader
	Reminders    ReminderScheduler
	Catalog      Catalog
	Settings     SettingsAdmin
	Outbound     Outbound
	Metrics      *metrics.BookingMetrics
	Logger       *logging.Logger
	AdminChatID  int64
	Now          func() time.Time
}

// NewEngine constructs the conversation engine.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Sessions == nil {
		panic("conversation: session store required")
	}
	if cfg.Outbound == nil {
		panic("conversation: outbound required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		sessions:     cfg.Sessions,
		profiles:     cfg.Profiles,
		booker:       cfg.Booker,
		slots:        cfg.Slots,
		appointments: cfg.Appointments,
		reminders:    cfg.Reminders,
		catalog:      cfg.Catalog,
		settings:     cfg.Settings,
		out:          cfg.Outbound,
		metrics:      cfg.Metrics,
		logger:       logger,
		adminChatID:  cfg.AdminChatID,
		now:          now,
	}
}

// HandleMessage routes one inbound message. Errors never escape a single
// interaction: failures are logged and converted to a user-facing message,
// and in-progress session data is preserved.
func (e *Engine) HandleMessage(ctx context.Context, chatID int64, text string) {
	text = strings.TrimSpace(text)

	sess, err := e.sessions.Get(ctx, chatID)
	if err != nil {
		e.logger.Error("conversation: session load failed", "chat_id", chatID, "error", err)
		e.send(ctx, chatID, Reply{Text: msgGenericError})
		return
	}

	if sess == nil || text == "/start" {
		if err := e.startOver(ctx, chatID); err != nil {
			e.logger.Error("conversation: start failed", "chat_id", chatID, "error", err)
			e.send(ctx, chatID, Reply{Text: msgGenericError})
		}
		return
	}

	e.metrics.ObserveMessage(string(sess.State))

	var handlerErr error
	switch sess.State {
	case session.StateLanguageChoice:
		handlerErr = e.handleLanguageChoice(ctx, sess, text)
	case session.StateMenu:
		handlerErr = e.handleMenu(ctx, sess, text)
	case session.StateAppointmentName:
		handlerErr = e.handleAppointmentName(ctx, sess, text)
	case session.StateAppointmentDate:
		handlerErr = e.handleAppointmentDate(ctx, sess, text)
	case session.StateAppointmentTime:
		handlerErr = e.handleAppointmentTime(ctx, sess, text)
	case session.StateConfirmAppointment:
		handlerErr = e.handleConfirmAppointment(ctx, sess, text)
	case session.StateSurvey:
		handlerErr = e.handleSurvey(ctx, sess, text)
	case session.StateCancelAppointment:
		handlerErr = e.handleCancelAppointment(ctx, sess, text)
	case session.StateAdminMenu:
		handlerErr = e.handleAdminMenu(ctx, sess, text)
	case session.StateAdminThreshold:
		handlerErr = e.handleAdminThreshold(ctx, sess, text)
	case session.StateAdminPercentage:
		handlerErr = e.handleAdminPercentage(ctx, sess, text)
	case session.StateAdminPriceName:
		handlerErr = e.handleAdminPriceName(ctx, sess, text)
	case session.StateAdminPricePrice:
		handlerErr = e.handleAdminPricePrice(ctx, sess, text)
	case session.StateAdminPriceDelete:
		handlerErr = e.handleAdminPriceDelete(ctx, sess, text)
	default:
		handlerErr = e.startOver(ctx, chatID)
	}

	if handlerErr != nil {
		// Session scratch stays as it was so no in-progress work is lost.
		e.logger.Error("conversation: handler failed",
			"chat_id", chatID, "state", sess.State, "error", handlerErr)
		e.send(ctx, chatID, Reply{Text: msgGenericError})
	}
}

// startOver resets the conversation to its initial state: language choice for
// unknown clients, the main menu otherwise. Any in-progress scratch data is
// discarded.
func (e *Engine) startOver(ctx context.Context, chatID int64) error {
	var lang string
	client, err := e.profiles.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if client != nil {
		lang = client.Language
	}

	sess := session.New(chatID, session.StateLanguageChoice)
	sess.Language = lang
	if lang == "" {
		if err := e.sessions.Put(ctx, sess); err != nil {
			return err
		}
		e.send(ctx, chatID, Reply{
			Text:     msgChooseLanguage,
			Keyboard: [][]string{{langUkrainian, langEnglish}},
		})
		return nil
	}

	sess.State = session.StateMenu
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, chatID, Reply{
		Text:     msgWelcome,
		Keyboard: e.menuKeyboard(chatID),
	})
	return nil
}

func (e *Engine) handleLanguageChoice(ctx context.Context, sess *session.Session, text string) error {
	var lang string
	switch text {
	case langUkrainian:
		lang = "uk"
	case langEnglish:
		lang = "en"
	default:
		e.send(ctx, sess.ChatID, Reply{
			Text:     msgChooseLanguage,
			Keyboard: [][]string{{langUkrainian, langEnglish}},
		})
		return nil
	}

	if err := e.profiles.SetLanguage(ctx, sess.ChatID, lang); err != nil {
		return err
	}
	sess.Language = lang
	return e.toMenu(ctx, sess, msgLanguageSet)
}

// toMenu clears scratch data and returns the client to the main menu.
func (e *Engine) toMenu(ctx context.Context, sess *session.Session, text string) error {
	sess.ResetScratch()
	sess.State = session.StateMenu
	if err := e.sessions.Put(ctx, sess); err != nil {
		return err
	}
	e.send(ctx, sess.ChatID, Reply{
		Text:     text,
		Keyboard: e.menuKeyboard(sess.ChatID),
	})
	return nil
}

func (e *Engine) menuKeyboard(chatID int64) [][]string {
	kb := [][]string{
		{btnBook},
		{btnPrices, btnMyBooking},
		{btnSurvey},
	}
	if chatID == e.adminChatID {
		kb = append(kb, []string{btnAdminMenu})
	}
	return kb
}

// send delivers a reply, logging delivery failures. Outbound delivery is
// fire-and-forget.
func (e *Engine) send(ctx context.Context, chatID int64, r Reply) {
	if err := e.out.Send(ctx, chatID, r); err != nil {
		e.logger.Error("conversation: send failed", "chat_id", chatID, "error", err)
	}
}
