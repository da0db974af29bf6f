package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okravets/barberflow/internal/observability/metrics"
	"github.com/okravets/barberflow/pkg/logging"
)

// Notifier delivers a reminder text to a chat. Delivery is fire-and-forget;
// the worker logs failures and never retries.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string, html bool) error
}

// AppointmentChecker re-validates that an appointment still exists at fire
// time. The worker must not assume any session state is live; the check goes
// against durable storage.
type AppointmentChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// JobSource is the store surface the worker consumes.
type JobSource interface {
	ListDue(ctx context.Context, asOf time.Time) ([]Job, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkDiscarded(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// Worker delivers due reminder jobs.
type Worker struct {
	store        JobSource
	appointments AppointmentChecker
	notifier     Notifier
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
	now          func() time.Time
}

// NewWorker creates a reminder worker.
func NewWorker(store JobSource, appointments AppointmentChecker, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger, now func() time.Time) *Worker {
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Worker{
		store:        store,
		appointments: appointments,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
		now:          now,
	}
}

// Run polls for due jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.ProcessDue(ctx); err != nil {
				w.logger.Error("reminder worker: process due failed", "error", err)
			}
		}
	}
}

// ProcessDue fires every due job once. Jobs tied to an appointment are
// silently discarded when the appointment no longer exists. Returns the
// number of notifications delivered.
func (w *Worker) ProcessDue(ctx context.Context) (int, error) {
	jobs, err := w.store.ListDue(ctx, w.now())
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	delivered := 0
	for i := range jobs {
		if w.processOne(ctx, &jobs[i]) {
			delivered++
		}
	}
	return delivered, nil
}

func (w *Worker) processOne(ctx context.Context, j *Job) bool {
	if j.AppointmentID != nil {
		exists, err := w.appointments.Exists(ctx, *j.AppointmentID)
		if err != nil {
			// Leave the job pending; the next poll re-checks.
			w.logger.Error("reminder worker: existence check failed",
				"job_id", j.ID, "appointment_id", *j.AppointmentID, "error", err)
			return false
		}
		if !exists {
			if err := w.store.MarkDiscarded(ctx, j.ID); err != nil {
				w.logger.Error("reminder worker: mark discarded failed", "job_id", j.ID, "error", err)
			}
			w.metrics.ObserveReminderDiscarded()
			return false
		}
	}

	html := j.Kind == KindRebookNudge
	if err := w.notifier.Notify(ctx, j.ChatID, j.Body, html); err != nil {
		w.logger.Error("reminder worker: delivery failed",
			"job_id", j.ID, "chat_id", j.ChatID, "kind", j.Kind, "error", err)
		if err := w.store.MarkFailed(ctx, j.ID); err != nil {
			w.logger.Error("reminder worker: mark failed failed", "job_id", j.ID, "error", err)
		}
		return false
	}

	if err := w.store.MarkSent(ctx, j.ID); err != nil {
		w.logger.Error("reminder worker: mark sent failed", "job_id", j.ID, "error", err)
	}
	w.metrics.ObserveReminderSent(string(j.Kind))
	w.logger.Info("reminder sent", "job_id", j.ID, "chat_id", j.ChatID, "kind", j.Kind)
	return true
}
