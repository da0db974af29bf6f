package booking

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okravets/barberflow/internal/clients"
	"github.com/okravets/barberflow/internal/config"
	"github.com/okravets/barberflow/internal/settings"
)

type fakeProfiles struct {
	profile            clients.DiscountProfile
	incremented        []int64
	eligibilityCleared []int64
}

func (f *fakeProfiles) DiscountProfile(_ context.Context, _ int64) (clients.DiscountProfile, error) {
	return f.profile, nil
}

func (f *fakeProfiles) IncrementVisits(_ context.Context, chatID int64) error {
	f.incremented = append(f.incremented, chatID)
	return nil
}

func (f *fakeProfiles) ClearSurveyEligibility(_ context.Context, chatID int64) error {
	f.eligibilityCleared = append(f.eligibilityCleared, chatID)
	return nil
}

type fakeDiscounts struct {
	d settings.Discounts
}

func (f *fakeDiscounts) Get(_ context.Context) (settings.Discounts, error) {
	return f.d, nil
}

func serviceCfg() *config.Config {
	return &config.Config{
		SurveyDiscountPct: 10,
		DiscountCapPct:    100,
		SurveyBonusPolicy: config.SurveyBonusRetain,
	}
}

func expectInsert(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
}

func TestConfirmDiscountMatrix(t *testing.T) {
	tests := []struct {
		name    string
		profile clients.DiscountProfile
		disc    settings.Discounts
		want    float64
	}{
		{
			name:    "no discounts",
			profile: clients.DiscountProfile{VisitCount: 1},
			disc:    settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15},
			want:    0,
		},
		{
			name:    "survey bonus only",
			profile: clients.DiscountProfile{VisitCount: 1, SurveyDiscountEligible: true},
			disc:    settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15},
			want:    10,
		},
		{
			name:    "sixth visit crosses threshold",
			profile: clients.DiscountProfile{VisitCount: 5},
			disc:    settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15},
			want:    15,
		},
		{
			name:    "both bonuses stack",
			profile: clients.DiscountProfile{VisitCount: 5, SurveyDiscountEligible: true},
			disc:    settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15},
			want:    25,
		},
		{
			name:    "twelfth visit hits threshold again",
			profile: clients.DiscountProfile{VisitCount: 11},
			disc:    settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15},
			want:    15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			expectInsert(mock)

			profiles := &fakeProfiles{profile: tt.profile}
			svc := NewService(NewStore(mock), profiles, &fakeDiscounts{d: tt.disc}, serviceCfg(), nil, nil)

			conf, err := svc.Confirm(context.Background(), ConfirmInput{
				ChatID: 42, FullName: "Taras", Date: "2025-03-12", Time: "10:00",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, conf.DiscountPercent)
			assert.Equal(t, []int64{42}, profiles.incremented)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConfirmCapsDiscount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	expectInsert(mock)

	cfg := serviceCfg()
	cfg.DiscountCapPct = 20
	profiles := &fakeProfiles{profile: clients.DiscountProfile{VisitCount: 5, SurveyDiscountEligible: true}}
	svc := NewService(NewStore(mock), profiles,
		&fakeDiscounts{d: settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15}}, cfg, nil, nil)

	conf, err := svc.Confirm(context.Background(), ConfirmInput{
		ChatID: 42, FullName: "Taras", Date: "2025-03-12", Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, conf.DiscountPercent)
}

func TestConfirmSlotConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "appointments_slot_unique"})

	profiles := &fakeProfiles{}
	svc := NewService(NewStore(mock), profiles,
		&fakeDiscounts{d: settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15}}, serviceCfg(), nil, nil)

	_, err = svc.Confirm(context.Background(), ConfirmInput{
		ChatID: 42, FullName: "Taras", Date: "2025-03-12", Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// The losing commit must not touch the visit counter.
	assert.Empty(t, profiles.incremented)
}

func TestConfirmSurveyBonusPolicy(t *testing.T) {
	tests := []struct {
		name        string
		policy      string
		eligible    bool
		wantCleared bool
	}{
		{"retain keeps eligibility", config.SurveyBonusRetain, true, false},
		{"clear_on_use consumes it", config.SurveyBonusClearOnUse, true, true},
		{"nothing to clear", config.SurveyBonusClearOnUse, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			expectInsert(mock)

			cfg := serviceCfg()
			cfg.SurveyBonusPolicy = tt.policy
			profiles := &fakeProfiles{profile: clients.DiscountProfile{SurveyDiscountEligible: tt.eligible}}
			svc := NewService(NewStore(mock), profiles,
				&fakeDiscounts{d: settings.Discounts{VisitThreshold: 6, VisitDiscountPct: 15}}, cfg, nil, nil)

			_, err = svc.Confirm(context.Background(), ConfirmInput{
				ChatID: 42, FullName: "Taras", Date: "2025-03-12", Time: "10:00",
			})
			require.NoError(t, err)

			if tt.wantCleared {
				assert.Equal(t, []int64{42}, profiles.eligibilityCleared)
			} else {
				assert.Empty(t, profiles.eligibilityCleared)
			}
		})
	}
}
