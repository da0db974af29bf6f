package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/pkg/logging"
)

const rebookNudgeBody = "<b>Time to freshen up your haircut!</b> ✂️✨\n" +
	"Book your next visit to keep your style sharp."

// JobCreator is the store surface the scheduler writes through.
type JobCreator interface {
	Create(ctx context.Context, j *Job) error
}

// Scheduler creates the reminder jobs for a confirmed appointment.
type Scheduler struct {
	store  JobCreator
	logger *logging.Logger
	now    func() time.Time
}

// NewScheduler creates a reminder scheduler. now is injectable for tests.
func NewScheduler(store JobCreator, logger *logging.Logger, now func() time.Time) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{store: store, logger: logger, now: now}
}

// Schedule creates up to three one-shot jobs relative to the appointment's
// start time T: day-before (T-24h) and hour-before (T-1h), each only when the
// offset is still in the future and each tied to the appointment id; and the
// rebook nudge (T+2w), which is evergreen content with no existence check.
func (s *Scheduler) Schedule(ctx context.Context, appt booking.Appointment) ([]Job, error) {
	now := s.now()
	startsAt, err := appt.StartsAt(now.Location())
	if err != nil {
		return nil, fmt.Errorf("reminder: schedule: %w", err)
	}

	when := startsAt.Format(booking.DateFormat + " " + booking.TimeFormat)
	apptID := appt.ID
	candidates := []Job{
		{
			ChatID:        appt.ChatID,
			AppointmentID: &apptID,
			Kind:          KindDayBefore,
			FireAt:        startsAt.Add(-24 * time.Hour),
			Body:          fmt.Sprintf("Reminder: you have an appointment tomorrow at %s.", when),
		},
		{
			ChatID:        appt.ChatID,
			AppointmentID: &apptID,
			Kind:          KindHourBefore,
			FireAt:        startsAt.Add(-time.Hour),
			Body:          fmt.Sprintf("Reminder: your appointment is in one hour, at %s.", when),
		},
		{
			ChatID: appt.ChatID,
			Kind:   KindRebookNudge,
			FireAt: startsAt.Add(14 * 24 * time.Hour),
			Body:   rebookNudgeBody,
		},
	}

	var scheduled []Job
	for i := range candidates {
		j := candidates[i]
		if !j.FireAt.After(now) {
			continue
		}
		if err := s.store.Create(ctx, &j); err != nil {
			return scheduled, err
		}
		scheduled = append(scheduled, j)
	}

	s.logger.Info("reminders scheduled",
		"appointment_id", appt.ID,
		"chat_id", appt.ChatID,
		"count", len(scheduled),
	)
	return scheduled, nil
}
