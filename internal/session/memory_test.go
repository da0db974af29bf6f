package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New(42, StateSurvey)
	sess.Survey = &SurveyDraft{QuestionIndex: 2, Answers: []string{"Taras", "+380501112233"}}
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateSurvey, got.State)
	assert.Equal(t, 2, got.Survey.QuestionIndex)

	missing, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStorePutCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New(42, StateMenu)
	require.NoError(t, store.Put(ctx, sess))

	// Mutating the caller's struct after Put must not leak into the store.
	sess.State = StateAdminMenu

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateMenu, got.State)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, New(42, StateMenu)))
	require.NoError(t, store.Clear(ctx, 42))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResetScratchKeepsIdentity(t *testing.T) {
	sess := New(42, StateConfirmAppointment)
	sess.Language = "uk"
	sess.Appointment = &AppointmentDraft{Date: "2025-03-12"}
	sess.Survey = &SurveyDraft{}
	sess.CancelTargetID = "abc"
	sess.PriceDraftName = "Fade"

	sess.ResetScratch()

	assert.Equal(t, int64(42), sess.ChatID)
	assert.Equal(t, "uk", sess.Language)
	assert.Nil(t, sess.Appointment)
	assert.Nil(t, sess.Survey)
	assert.Empty(t, sess.CancelTargetID)
	assert.Empty(t, sess.PriceDraftName)
}
