// Package catalog manages the admin-curated price list shown to clients.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Item is a single service on the price list.
type Item struct {
	ID    int
	Name  string
	Price float64
}

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides CRUD over price_items.
type Store struct {
	db DB
}

// NewStore creates a catalog store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// List returns all price items ordered by id.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, price FROM price_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Add inserts a new price item and returns its id.
func (s *Store) Add(ctx context.Context, name string, price float64) (int, error) {
	var id int
	row := s.db.QueryRow(ctx, `
		INSERT INTO price_items (name, price) VALUES ($1, $2) RETURNING id`,
		name, price)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("catalog: add: %w", err)
	}
	return id, nil
}

// Update changes the name and price of an existing item.
func (s *Store) Update(ctx context.Context, id int, name string, price float64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE price_items SET name = $1, price = $2 WHERE id = $3`,
		name, price, id)
	if err != nil {
		return fmt.Errorf("catalog: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("catalog: update: no item with id %d", id)
	}
	return nil
}

// Delete removes a price item.
func (s *Store) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM price_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("catalog: delete: no item with id %d", id)
	}
	return nil
}
