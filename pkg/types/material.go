package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for last_review_date in the
// store and in all user-facing output. No time component.
const DateLayout = "2006-01-02"

// Material represents one stocked raw material.
type Material struct {
	ID                  int64           // autoincrement key, assigned by the store, never reused
	SKUDescription      string          // material family code, not unique
	SKUID               int64           // lookup key for stock changes; uniqueness by convention only
	CurrentStockKg      decimal.Decimal // non-negative by convention
	Price               decimal.Decimal // unit price, set at creation
	LastReview          time.Time       // calendar date; only moves forward
	ResponsibleEmployee string          // contact email for reminders
}

// NextReview returns the date the material becomes due, i.e. the last review
// date shifted by intervalDays.
func (m Material) NextReview(intervalDays int) time.Time {
	return m.LastReview.AddDate(0, 0, intervalDays)
}

// Truncate drops the time-of-day component, leaving a bare calendar date in
// UTC. The store and the due filter compare dates at this granularity.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
