package settings

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFallsBackToDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT visit_threshold").WillReturnError(pgx.ErrNoRows)

	d, err := NewStore(mock).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultVisitThreshold, d.VisitThreshold)
	assert.Equal(t, DefaultVisitDiscountPct, d.VisitDiscountPct)
}

func TestGetReadsStoredRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT visit_threshold").
		WillReturnRows(pgxmock.NewRows([]string{"visit_threshold", "visit_discount_percent"}).
			AddRow(4, 20.0))

	d, err := NewStore(mock).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Discounts{VisitThreshold: 4, VisitDiscountPct: 20}, d)
}

func TestSetThresholdRejectsNonPositive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Error(t, NewStore(mock).SetThreshold(context.Background(), 0))
	assert.Error(t, NewStore(mock).SetThreshold(context.Background(), -3))
}

func TestSetPercentValidatesRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)
	assert.Error(t, store.SetPercent(context.Background(), -1))
	assert.Error(t, store.SetPercent(context.Background(), 101))

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(25.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, store.SetPercent(context.Background(), 25))
	require.NoError(t, mock.ExpectationsWereMet())
}
