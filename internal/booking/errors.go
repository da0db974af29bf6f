package booking

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlotTaken is returned when the (date, time) pair is already booked.
// The unique constraint on appointments is the authoritative exclusivity
// check; callers must re-offer availability instead of retrying the slot.
var ErrSlotTaken = errors.New("booking: slot already taken")

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
