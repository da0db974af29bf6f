package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides persistence for appointments.
type Store struct {
	db DB
}

// NewStore creates an appointment store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Create inserts an appointment row. A conflict on the (date, time) unique
// constraint surfaces as ErrSlotTaken.
func (s *Store) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(ctx, `
		INSERT INTO appointments (id, chat_id, full_name, appointment_date, appointment_time, discount_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ChatID, a.FullName, a.Date, a.TimeOfDay, a.DiscountPercent, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking: create appointment: %w", err)
	}
	return nil
}

// TakenTimes returns the occupied slot times for a date in grid order.
func (s *Store) TakenTimes(ctx context.Context, date string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT to_char(appointment_time, 'HH24:MI') FROM appointments
		WHERE appointment_date = $1
		ORDER BY appointment_time`, date)
	if err != nil {
		return nil, fmt.Errorf("booking: taken times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("booking: scan taken time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

const appointmentColumns = `id, chat_id, full_name,
	to_char(appointment_date, 'YYYY-MM-DD'),
	to_char(appointment_time, 'HH24:MI'),
	discount_percent, created_at`

// ListByDate returns all appointments on a date in time order.
func (s *Store) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE appointment_date = $1
		ORDER BY appointment_time`, date)
	if err != nil {
		return nil, fmt.Errorf("booking: list by date: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListUpcomingByClient returns a client's appointments from the given date
// forward, soonest first.
func (s *Store) ListUpcomingByClient(ctx context.Context, chatID int64, fromDate string) ([]Appointment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE chat_id = $1 AND appointment_date >= $2
		ORDER BY appointment_date, appointment_time`, chatID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("booking: list upcoming: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// Exists reports whether an appointment row is still present. Reminder jobs
// use this as their fire-time existence check.
func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("booking: exists: %w", err)
	}
	return exists, nil
}

// Delete removes an appointment. Deleting an already-removed row is not an
// error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("booking: delete: %w", err)
	}
	return nil
}

// DeletePast removes appointments whose slot has already passed. The daily
// sweep calls this; the delete is idempotent and needs no coordination.
func (s *Store) DeletePast(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM appointments
		WHERE appointment_date < $1
		   OR (appointment_date = $1 AND appointment_time < $2)`,
		now.Format(DateFormat), now.Format(TimeFormat))
	if err != nil {
		return 0, fmt.Errorf("booking: delete past: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		var a Appointment
		err := rows.Scan(&a.ID, &a.ChatID, &a.FullName, &a.Date, &a.TimeOfDay,
			&a.DiscountPercent, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("booking: scan appointment: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
