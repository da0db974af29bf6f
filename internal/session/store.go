package session

import "context"

// Store persists conversation sessions keyed by chat id. Get returns nil when
// no session exists.
type Store interface {
	Get(ctx context.Context, chatID int64) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Clear(ctx context.Context, chatID int64) error
}
