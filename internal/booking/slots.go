package booking

import (
	"context"
	"fmt"
	"time"
)

// TakenLister is the slice of the appointment store the availability engine
// reads. It never writes.
type TakenLister interface {
	TakenTimes(ctx context.Context, date string) ([]string, error)
}

// Availability computes the bookable slot grid for a calendar date.
type Availability struct {
	store    TakenLister
	open     int // opening hour, inclusive
	close    int // closing hour, exclusive
	interval time.Duration
	leadTime time.Duration
	days     int
	now      func() time.Time
}

// NewAvailability creates the slot availability engine. now is injectable for
// tests and defaults to time.Now.
func NewAvailability(store TakenLister, openHour, closeHour int, interval, leadTime time.Duration, days int, now func() time.Time) *Availability {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	if days <= 0 {
		days = 14
	}
	return &Availability{
		store:    store,
		open:     openHour,
		close:    closeHour,
		interval: interval,
		leadTime: leadTime,
		days:     days,
		now:      now,
	}
}

// Dates returns the offerable calendar dates, today included.
func (a *Availability) Dates() []string {
	now := a.now()
	dates := make([]string, 0, a.days)
	for i := 0; i < a.days; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(DateFormat))
	}
	return dates
}

// Slots returns the ordered bookable times for a date: the working-hours grid
// minus occupied slots, minus (when the date is today) slots closer than the
// lead-time cutoff. Recomputed on every call, no side effects. An empty
// result means the caller should re-prompt for a different date.
func (a *Availability) Slots(ctx context.Context, date string) ([]string, error) {
	day, err := time.Parse(DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("booking: invalid date %q: %w", date, err)
	}

	takenList, err := a.store.TakenTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(takenList))
	for _, t := range takenList {
		taken[t] = struct{}{}
	}

	now := a.now()
	isToday := day.Format(DateFormat) == now.Format(DateFormat)
	cutoff := now.Add(a.leadTime)

	var slots []string
	openAt := time.Date(day.Year(), day.Month(), day.Day(), a.open, 0, 0, 0, now.Location())
	closeAt := time.Date(day.Year(), day.Month(), day.Day(), a.close, 0, 0, 0, now.Location())
	for t := openAt; t.Before(closeAt); t = t.Add(a.interval) {
		if isToday && t.Before(cutoff) {
			continue
		}
		slot := t.Format(TimeFormat)
		if _, occupied := taken[slot]; occupied {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
