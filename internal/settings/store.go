// Package settings manages the singleton discount configuration row.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Defaults applied when the settings row is absent.
const (
	DefaultVisitThreshold   = 6
	DefaultVisitDiscountPct = 15.0
)

// Discounts is the singleton discount configuration.
type Discounts struct {
	VisitThreshold   int
	VisitDiscountPct float64
}

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads and mutates the settings row.
type Store struct {
	db DB
}

// NewStore creates a settings store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Get returns the discount settings, falling back to defaults when the row
// does not exist.
func (s *Store) Get(ctx context.Context) (Discounts, error) {
	var d Discounts
	row := s.db.QueryRow(ctx, `
		SELECT visit_threshold, visit_discount_percent FROM settings WHERE id = 1`)
	if err := row.Scan(&d.VisitThreshold, &d.VisitDiscountPct); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Discounts{
				VisitThreshold:   DefaultVisitThreshold,
				VisitDiscountPct: DefaultVisitDiscountPct,
			}, nil
		}
		return Discounts{}, fmt.Errorf("settings: get: %w", err)
	}
	if d.VisitThreshold <= 0 {
		d.VisitThreshold = DefaultVisitThreshold
	}
	return d, nil
}

// SetThreshold updates the visit-count threshold for the periodic discount.
func (s *Store) SetThreshold(ctx context.Context, threshold int) error {
	if threshold <= 0 {
		return fmt.Errorf("settings: threshold must be positive, got %d", threshold)
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO settings (id, visit_threshold) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET visit_threshold = $1, updated_at = now()`,
		threshold)
	if err != nil {
		return fmt.Errorf("settings: set threshold: %w", err)
	}
	return nil
}

// SetPercent updates the periodic visit discount percentage.
func (s *Store) SetPercent(ctx context.Context, pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("settings: percent must be within [0,100], got %g", pct)
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO settings (id, visit_discount_percent) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET visit_discount_percent = $1, updated_at = now()`,
		pct)
	if err != nil {
		return fmt.Errorf("settings: set percent: %w", err)
	}
	return nil
}
