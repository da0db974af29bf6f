package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveConfirmed()
	m.ObserveConfirmed()
	m.ObserveSlotConflict()
	m.ObserveReminderSent("day_before")
	m.ObserveReminderDiscarded()
	m.ObserveMessage("menu_selection")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.confirmedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotConflictsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remindersSent.WithLabelValues("day_before")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remindersDiscarded))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveConfirmed()
		m.ObserveSlotConflict()
		m.ObserveReminderSent("hour_before")
		m.ObserveReminderDiscarded()
		m.ObserveMessage("survey")
	})
}
