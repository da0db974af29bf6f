package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides persistence for client profiles.
type Store struct {
	db DB
}

// NewStore creates a client profile store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

const clientColumns = `chat_id, full_name, phone, hair_length, has_beard,
	why_chose_us, likes_dislikes, suggestions, visit_count,
	survey_discount_eligible, language, created_at, updated_at`

// Get returns the profile for a chat, or nil when none exists yet.
func (s *Store) Get(ctx context.Context, chatID int64) (*Client, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients WHERE chat_id = $1`, chatID)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("clients: get: %w", err)
	}
	return c, nil
}

// SetLanguage records the preferred language, creating the profile row if
// this is the client's first interaction.
func (s *Store) SetLanguage(ctx context.Context, chatID int64, lang string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO clients (chat_id, language) VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET language = $2, updated_at = now()`,
		chatID, lang)
	if err != nil {
		return fmt.Errorf("clients: set language: %w", err)
	}
	return nil
}

// SaveSurvey upserts the survey answers and marks the client eligible for the
// survey discount.
func (s *Store) SaveSurvey(ctx context.Context, chatID int64, a SurveyAnswers) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO clients (chat_id, full_name, phone, hair_length, has_beard,
			why_chose_us, likes_dislikes, suggestions, survey_discount_eligible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (chat_id) DO UPDATE SET
			full_name = $2, phone = $3, hair_length = $4, has_beard = $5,
			why_chose_us = $6, likes_dislikes = $7, suggestions = $8,
			survey_discount_eligible = TRUE, updated_at = now()`,
		chatID, a.FullName, a.Phone, a.HairLength, a.HasBeard,
		a.WhyChoseUs, a.LikesDislikes, a.Suggestions)
	if err != nil {
		return fmt.Errorf("clients: save survey: %w", err)
	}
	return nil
}

// DiscountProfile returns the visit count and survey eligibility for a chat.
// Absent rows read as zero visits, not eligible.
func (s *Store) DiscountProfile(ctx context.Context, chatID int64) (DiscountProfile, error) {
	var p DiscountProfile
	row := s.db.QueryRow(ctx, `
		SELECT visit_count, survey_discount_eligible
		FROM clients WHERE chat_id = $1`, chatID)
	if err := row.Scan(&p.VisitCount, &p.SurveyDiscountEligible); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DiscountProfile{}, nil
		}
		return DiscountProfile{}, fmt.Errorf("clients: discount profile: %w", err)
	}
	return p, nil
}

// IncrementVisits bumps the visit counter by one, creating the profile row
// when needed so the first booking of a fresh client still counts.
func (s *Store) IncrementVisits(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO clients (chat_id, visit_count) VALUES ($1, 1)
		ON CONFLICT (chat_id) DO UPDATE SET
			visit_count = clients.visit_count + 1, updated_at = now()`, chatID)
	if err != nil {
		return fmt.Errorf("clients: increment visits: %w", err)
	}
	return nil
}

// ClearSurveyEligibility consumes the one-time survey bonus.
func (s *Store) ClearSurveyEligibility(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx, `
		UPDATE clients SET survey_discount_eligible = FALSE, updated_at = now()
		WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("clients: clear survey eligibility: %w", err)
	}
	return nil
}

// List returns all client profiles, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Client, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("clients: list: %w", err)
	}
	defer rows.Close()

	var result []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("clients: scan: %w", err)
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanClient(row scannable) (*Client, error) {
	var c Client
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&c.ChatID, &c.FullName, &c.Phone, &c.HairLength, &c.HasBeard,
		&c.WhyChoseUs, &c.LikesDislikes, &c.Suggestions, &c.VisitCount,
		&c.SurveyDiscountEligible, &c.Language, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return &c, nil
}
