package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAssignsID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a := Appointment{ChatID: 42, FullName: "Taras", Date: "2025-03-12", TimeOfDay: "10:00"}
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), a.ChatID, a.FullName, a.Date, a.TimeOfDay, a.DiscountPercent, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewStore(mock).Create(context.Background(), &a))
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreateUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	a := Appointment{ChatID: 42, Date: "2025-03-12", TimeOfDay: "10:00"}
	err = NewStore(mock).Create(context.Background(), &a)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestStoreTakenTimes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT to_char").
		WithArgs("2025-03-12").
		WillReturnRows(pgxmock.NewRows([]string{"to_char"}).AddRow("09:30").AddRow("14:00"))

	times, err := NewStore(mock).TakenTimes(context.Background(), "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "14:00"}, times)
}

func TestStoreExists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := NewStore(mock).Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStoreDeletePast(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 3, 12, 11, 15, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM appointments").
		WithArgs("2025-03-12", "11:15").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := NewStore(mock).DeletePast(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
