package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking and reminder flows.
type BookingMetrics struct {
	confirmedTotal     prometheus.Counter
	slotConflictsTotal prometheus.Counter
	remindersSent      *prometheus.CounterVec
	remindersDiscarded prometheus.Counter
	messagesHandled    *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		confirmedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "booking",
			Name:      "confirmed_total",
			Help:      "Total confirmed appointments",
		}),
		slotConflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "booking",
			Name:      "slot_conflicts_total",
			Help:      "Total commits rejected by the slot unique constraint",
		}),
		remindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "reminder",
			Name:      "sent_total",
			Help:      "Total reminder notifications delivered",
		}, []string{"kind"}),
		remindersDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "reminder",
			Name:      "discarded_total",
			Help:      "Reminder jobs discarded because the appointment was gone",
		}),
		messagesHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "conversation",
			Name:      "messages_handled_total",
			Help:      "Inbound messages routed by conversation state",
		}, []string{"state"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.confirmedTotal, m.slotConflictsTotal, m.remindersSent,
		m.remindersDiscarded, m.messagesHandled)
	return m
}

func (m *BookingMetrics) ObserveConfirmed() {
	if m == nil {
		return
	}
	m.confirmedTotal.Inc()
}

func (m *BookingMetrics) ObserveSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflictsTotal.Inc()
}

func (m *BookingMetrics) ObserveReminderSent(kind string) {
	if m == nil {
		return
	}
	m.remindersSent.WithLabelValues(kind).Inc()
}

func (m *BookingMetrics) ObserveReminderDiscarded() {
	if m == nil {
		return
	}
	m.remindersDiscarded.Inc()
}

func (m *BookingMetrics) ObserveMessage(state string) {
	if m == nil {
		return
	}
	m.messagesHandled.WithLabelValues(state).Inc()
}
