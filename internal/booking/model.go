// Package booking holds the appointment model, slot availability engine, and
// the commit path that enforces slot exclusivity through storage.
package booking

import (
	"time"

	"github.com/google/uuid"
)

// Wire formats for calendar dates and slot times. Slots are value-matched on
// these exact representations.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Appointment is a confirmed reservation of a single slot.
type Appointment struct {
	ID              uuid.UUID
	ChatID          int64
	FullName        string
	Date            string // DateFormat
	TimeOfDay       string // TimeFormat
	DiscountPercent float64
	CreatedAt       time.Time
}

// StartsAt combines the date and time-of-day into an absolute timestamp in
// the given location.
func (a Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateFormat+" "+TimeFormat, a.Date+" "+a.TimeOfDay, loc)
}
