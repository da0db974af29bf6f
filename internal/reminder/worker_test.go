package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobSource struct {
	due       []Job
	sent      []uuid.UUID
	discarded []uuid.UUID
	failed    []uuid.UUID
}

func (f *fakeJobSource) ListDue(_ context.Context, _ time.Time) ([]Job, error) {
	return f.due, nil
}

func (f *fakeJobSource) MarkSent(_ context.Context, id uuid.UUID) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeJobSource) MarkDiscarded(_ context.Context, id uuid.UUID) error {
	f.discarded = append(f.discarded, id)
	return nil
}

func (f *fakeJobSource) MarkFailed(_ context.Context, id uuid.UUID) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeChecker struct {
	exists bool
	err    error
	calls  int
}

func (f *fakeChecker) Exists(_ context.Context, _ uuid.UUID) (bool, error) {
	f.calls++
	return f.exists, f.err
}

type delivery struct {
	chatID int64
	text   string
	html   bool
}

type fakeNotifier struct {
	err       error
	delivered []delivery
}

func (f *fakeNotifier) Notify(_ context.Context, chatID int64, text string, html bool) error {
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, delivery{chatID, text, html})
	return nil
}

func apptJob(kind Kind) Job {
	id := uuid.New()
	return Job{
		ID:            uuid.New(),
		ChatID:        42,
		AppointmentID: &id,
		Kind:          kind,
		Body:          "Reminder",
		Status:        StatusPending,
	}
}

func TestProcessDueDeliversAndMarksSent(t *testing.T) {
	job := apptJob(KindDayBefore)
	store := &fakeJobSource{due: []Job{job}}
	notifier := &fakeNotifier{}
	w := NewWorker(store, &fakeChecker{exists: true}, notifier, nil, nil, nil)

	n, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, notifier.delivered, 1)
	assert.Equal(t, int64(42), notifier.delivered[0].chatID)
	assert.False(t, notifier.delivered[0].html)
	assert.Equal(t, []uuid.UUID{job.ID}, store.sent)
}

func TestProcessDueDiscardsWhenAppointmentGone(t *testing.T) {
	job := apptJob(KindHourBefore)
	store := &fakeJobSource{due: []Job{job}}
	notifier := &fakeNotifier{}
	w := NewWorker(store, &fakeChecker{exists: false}, notifier, nil, nil, nil)

	n, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, notifier.delivered)
	assert.Equal(t, []uuid.UUID{job.ID}, store.discarded)
}

func TestProcessDueLeavesJobPendingOnCheckError(t *testing.T) {
	job := apptJob(KindDayBefore)
	store := &fakeJobSource{due: []Job{job}}
	w := NewWorker(store, &fakeChecker{err: errors.New("db down")}, &fakeNotifier{}, nil, nil, nil)

	n, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, store.sent)
	assert.Empty(t, store.discarded)
	assert.Empty(t, store.failed)
}

func TestProcessDueNudgeSkipsExistenceCheck(t *testing.T) {
	job := Job{ID: uuid.New(), ChatID: 42, Kind: KindRebookNudge, Body: "<b>Come back!</b>", Status: StatusPending}
	store := &fakeJobSource{due: []Job{job}}
	checker := &fakeChecker{exists: false}
	notifier := &fakeNotifier{}
	w := NewWorker(store, checker, notifier, nil, nil, nil)

	n, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, checker.calls)
	require.Len(t, notifier.delivered, 1)
	assert.True(t, notifier.delivered[0].html)
}

func TestProcessDueMarksFailedOnDeliveryError(t *testing.T) {
	job := apptJob(KindDayBefore)
	store := &fakeJobSource{due: []Job{job}}
	w := NewWorker(store, &fakeChecker{exists: true}, &fakeNotifier{err: errors.New("blocked")}, nil, nil, nil)

	n, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []uuid.UUID{job.ID}, store.failed)
	assert.Empty(t, store.sent)
}
