package clients

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"chat_id", "full_name", "phone", "hair_length", "has_beard",
		"why_chose_us", "likes_dislikes", "suggestions", "visit_count",
		"survey_discount_eligible", "language", "created_at", "updated_at",
	})
}

func TestGetReturnsNilForUnknownClient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT chat_id").WithArgs(int64(42)).WillReturnError(pgx.ErrNoRows)

	c, err := NewStore(mock).Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGetScansProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT chat_id").
		WithArgs(int64(42)).
		WillReturnRows(clientRows().AddRow(
			int64(42), "Taras", "+380501112233", "short", true,
			"friends", "all good", "", 5, true, "en", now, now,
		))

	c, err := NewStore(mock).Get(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Taras", c.FullName)
	assert.Equal(t, 5, c.VisitCount)
	assert.True(t, c.SurveyDiscountEligible)
	assert.Equal(t, "en", c.Language)
}

func TestSaveSurveyMarksEligible(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a := SurveyAnswers{
		FullName: "Taras", Phone: "+380501112233", HairLength: "short",
		HasBeard: true, WhyChoseUs: "friends", LikesDislikes: "all good", Suggestions: "",
	}
	mock.ExpectExec("INSERT INTO clients").
		WithArgs(int64(42), a.FullName, a.Phone, a.HairLength, a.HasBeard,
			a.WhyChoseUs, a.LikesDislikes, a.Suggestions).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewStore(mock).SaveSurvey(context.Background(), 42, a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscountProfileAbsentRowReadsZero(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT visit_count").WithArgs(int64(42)).WillReturnError(pgx.ErrNoRows)

	p, err := NewStore(mock).DiscountProfile(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, p.VisitCount)
	assert.False(t, p.SurveyDiscountEligible)
}

func TestIncrementVisitsUpserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO clients").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewStore(mock).IncrementVisits(context.Background(), 42))
	require.NoError(t, mock.ExpectationsWereMet())
}
