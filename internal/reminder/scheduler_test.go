package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okravets/barberflow/internal/booking"
)

type recordingCreator struct {
	created []Job
	err     error
}

func (r *recordingCreator) Create(_ context.Context, j *Job) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *j)
	return nil
}

func TestScheduleCreatesAllThreeJobs(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &recordingCreator{}
	s := NewScheduler(store, nil, func() time.Time { return now })

	appt := booking.Appointment{
		ID:        uuid.New(),
		ChatID:    42,
		Date:      "2025-03-13",
		TimeOfDay: "10:00",
	}
	jobs, err := s.Schedule(context.Background(), appt)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, KindDayBefore, jobs[0].Kind)
	assert.Equal(t, time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), jobs[0].FireAt)
	require.NotNil(t, jobs[0].AppointmentID)
	assert.Equal(t, appt.ID, *jobs[0].AppointmentID)

	assert.Equal(t, KindHourBefore, jobs[1].Kind)
	assert.Equal(t, time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC), jobs[1].FireAt)

	// The nudge is not tied to the appointment: it fires even if the
	// appointment is later cancelled.
	assert.Equal(t, KindRebookNudge, jobs[2].Kind)
	assert.Equal(t, time.Date(2025, 3, 27, 10, 0, 0, 0, time.UTC), jobs[2].FireAt)
	assert.Nil(t, jobs[2].AppointmentID)
}

func TestScheduleSkipsElapsedOffsets(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &recordingCreator{}
	s := NewScheduler(store, nil, func() time.Time { return now })

	// Booked half an hour out: both pre-appointment offsets already passed.
	appt := booking.Appointment{
		ID:        uuid.New(),
		ChatID:    42,
		Date:      "2025-03-10",
		TimeOfDay: "12:30",
	}
	jobs, err := s.Schedule(context.Background(), appt)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, KindRebookNudge, jobs[0].Kind)
}

func TestScheduleRejectsMalformedSlot(t *testing.T) {
	s := NewScheduler(&recordingCreator{}, nil, nil)
	_, err := s.Schedule(context.Background(), booking.Appointment{Date: "garbage", TimeOfDay: "10:00"})
	assert.Error(t, err)
}
