// Package reminder schedules and delivers the one-shot notifications tied to
// an appointment's timeline. Jobs are durable rows consumed by a polling
// worker, so pending reminders survive a process restart.
package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies which point of the appointment timeline a job covers.
type Kind string

const (
	KindDayBefore   Kind = "day_before"
	KindHourBefore  Kind = "hour_before"
	KindRebookNudge Kind = "rebook_nudge"
)

// JobStatus is the lifecycle state of a reminder job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusSent      JobStatus = "sent"
	StatusDiscarded JobStatus = "discarded"
	StatusFailed    JobStatus = "failed"
)

// Job is a scheduled one-shot notification. AppointmentID is set for the two
// pre-appointment reminders and re-validated at fire time; the rebook nudge
// carries none and fires unconditionally.
type Job struct {
	ID            uuid.UUID
	ChatID        int64
	AppointmentID *uuid.UUID
	Kind          Kind
	FireAt        time.Time
	Body          string
	Status        JobStatus
	SentAt        *time.Time
	CreatedAt     time.Time
}
