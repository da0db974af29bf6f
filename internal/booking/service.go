package booking

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/okravets/barberflow/internal/clients"
	"github.com/okravets/barberflow/internal/config"
	"github.com/okravets/barberflow/internal/observability/metrics"
	"github.com/okravets/barberflow/internal/settings"
	"github.com/okravets/barberflow/pkg/logging"
)

var bookingTracer = otel.Tracer("barberflow.internal.booking")

// ProfileStore is the client-profile surface the commit path needs.
type ProfileStore interface {
	DiscountProfile(ctx context.Context, chatID int64) (clients.DiscountProfile, error)
	IncrementVisits(ctx context.Context, chatID int64) error
	ClearSurveyEligibility(ctx context.Context, chatID int64) error
}

// DiscountSettings reads the singleton discount configuration.
type DiscountSettings interface {
	Get(ctx context.Context) (settings.Discounts, error)
}

// Service commits bookings under the slot exclusivity constraint and applies
// discounts at confirmation time.
type Service struct {
	store     *Store
	profiles  ProfileStore
	discounts DiscountSettings

	surveyPct    float64
	capPct       float64
	surveyPolicy string

	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewService constructs a booking service.
func NewService(store *Store, profiles ProfileStore, discounts DiscountSettings, cfg *config.Config, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("booking: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	surveyPct := 10.0
	capPct := 100.0
	policy := config.SurveyBonusRetain
	if cfg != nil {
		surveyPct = cfg.SurveyDiscountPct
		capPct = cfg.DiscountCapPct
		policy = cfg.SurveyBonusPolicy
	}
	return &Service{
		store:        store,
		profiles:     profiles,
		discounts:    discounts,
		surveyPct:    surveyPct,
		capPct:       capPct,
		surveyPolicy: policy,
		metrics:      m,
		logger:       logger,
	}
}

// ConfirmInput identifies the slot the client selected at offer time. The
// service does not re-derive availability; the storage unique constraint
// resolves any race.
type ConfirmInput struct {
	ChatID   int64
	FullName string
	Date     string
	Time     string
}

// Confirmation is the outcome of a successful commit.
type Confirmation struct {
	Appointment     Appointment
	DiscountPercent float64
}

// Confirm inserts the appointment, computes the applicable discount, and
// increments the client's visit counter. A storage-level slot conflict
// surfaces as ErrSlotTaken; any other failure is wrapped and leaves the
// caller's in-progress state intact.
func (s *Service) Confirm(ctx context.Context, in ConfirmInput) (*Confirmation, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("barberflow.chat_id", in.ChatID),
		attribute.String("barberflow.slot", in.Date+" "+in.Time),
	)

	profile, err := s.profiles.DiscountProfile(ctx, in.ChatID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	disc, err := s.discounts.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	discount := s.computeDiscount(profile, disc)

	appt := Appointment{
		ChatID:          in.ChatID,
		FullName:        in.FullName,
		Date:            in.Date,
		TimeOfDay:       in.Time,
		DiscountPercent: discount,
	}
	if err := s.store.Create(ctx, &appt); err != nil {
		if err == ErrSlotTaken {
			s.metrics.ObserveSlotConflict()
			s.logger.Info("booking: slot conflict", "chat_id", in.ChatID, "date", in.Date, "time", in.Time)
			return nil, ErrSlotTaken
		}
		span.RecordError(err)
		return nil, err
	}

	if err := s.profiles.IncrementVisits(ctx, in.ChatID); err != nil {
		// The slot is held; losing the counter bump is preferable to a
		// double booking, so log and keep the appointment.
		s.logger.Error("booking: increment visits failed", "chat_id", in.ChatID, "error", err)
	}

	if profile.SurveyDiscountEligible && s.surveyPolicy == config.SurveyBonusClearOnUse {
		if err := s.profiles.ClearSurveyEligibility(ctx, in.ChatID); err != nil {
			s.logger.Error("booking: clear survey eligibility failed", "chat_id", in.ChatID, "error", err)
		}
	}

	s.metrics.ObserveConfirmed()
	s.logger.Info("booking confirmed",
		"chat_id", in.ChatID,
		"appointment_id", appt.ID,
		"date", in.Date,
		"time", in.Time,
		"discount_pct", discount,
	)
	return &Confirmation{Appointment: appt, DiscountPercent: discount}, nil
}

// computeDiscount applies the survey bonus and the every-Nth-visit bonus.
// Both are additive; the visit being booked counts toward the threshold.
func (s *Service) computeDiscount(p clients.DiscountProfile, d settings.Discounts) float64 {
	discount := 0.0
	if p.SurveyDiscountEligible {
		discount += s.surveyPct
	}
	if d.VisitThreshold > 0 && (p.VisitCount+1)%d.VisitThreshold == 0 {
		discount += d.VisitDiscountPct
	}
	discount = math.Round(discount*100) / 100
	if discount > s.capPct {
		discount = s.capPct
	}
	return discount
}

// Cancel removes an appointment on the client's request.
func (s *Service) Cancel(ctx context.Context, appt Appointment) error {
	if err := s.store.Delete(ctx, appt.ID); err != nil {
		return fmt.Errorf("booking: cancel: %w", err)
	}
	s.logger.Info("booking cancelled", "chat_id", appt.ChatID, "appointment_id", appt.ID)
	return nil
}
