package reminder

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

// Store provides persistence for reminder jobs.
type Store struct {
	db DB
}

// NewStore creates a reminder job store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Create inserts a pending job.
func (s *Store) Create(ctx context.Context, j *Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = StatusPending
	}
	j.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(ctx, `
		INSERT INTO reminder_jobs (id, chat_id, appointment_id, kind, fire_at, body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.ChatID, j.AppointmentID, string(j.Kind), j.FireAt, j.Body, string(j.Status), j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("reminder: create job: %w", err)
	}
	return nil
}

// ListDue returns pending jobs whose fire time is on or before asOf, oldest
// first.
func (s *Store) ListDue(ctx context.Context, asOf time.Time) ([]Job, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, chat_id, appointment_id, kind, fire_at, body, status, sent_at, created_at
		FROM reminder_jobs
		WHERE status = 'pending' AND fire_at <= $1
		ORDER BY fire_at ASC`, asOf)
	if err != nil {
		return nil, fmt.Errorf("reminder: list due: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

// MarkSent transitions a job pending → sent.
func (s *Store) MarkSent(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusSent, "mark sent")
}

// MarkDiscarded records that the job's appointment was gone at fire time.
func (s *Store) MarkDiscarded(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusDiscarded, "mark discarded")
}

// MarkFailed records a delivery failure. Failed jobs are never retried.
func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusFailed, "mark failed")
}

func (s *Store) transition(ctx context.Context, id uuid.UUID, to JobStatus, verb string) error {
	now := time.Now().UTC()
	tag, err := s.db.Exec(ctx, `
		UPDATE reminder_jobs SET status = $1, sent_at = $2
		WHERE id = $3 AND status = 'pending'`, string(to), now, id)
	if err != nil {
		return fmt.Errorf("reminder: %s: %w", verb, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reminder: %s: no pending job with id %s", verb, id)
	}
	return nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var result []Job
	for rows.Next() {
		var j Job
		var kind, status string
		err := rows.Scan(&j.ID, &j.ChatID, &j.AppointmentID, &kind, &j.FireAt,
			&j.Body, &status, &j.SentAt, &j.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("reminder: scan job: %w", err)
		}
		j.Kind = Kind(kind)
		j.Status = JobStatus(status)
		result = append(result, j)
	}
	return result, rows.Err()
}
