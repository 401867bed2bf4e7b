package testutil

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Clock is a manually advanced time source for engine tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock pinned to noon UTC on the given day.
func NewClock(year int, month time.Month, day int) *Clock {
	return &Clock{now: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}

// Now returns the pinned time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Today returns the pinned calendar day in UTC.
func (c *Clock) Today() civil.Date {
	return civil.DateOf(c.Now())
}

// AddDays moves the clock forward by n days.
func (c *Clock) AddDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Date builds a civil date.
func Date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}
