package model

import "time"

// FocusSession is a logged duration of focused work, distinct from the
// auth session that identifies a logged-in caller.
type FocusSession struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Duration  int64     `json:"duration"` // seconds
	CreatedAt time.Time `json:"created_at"`
}

// DayTotal is one calendar-day bucket of an aggregation, keyed by UTC date.
type DayTotal struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Seconds int64  `json:"seconds"`
}

// Minutes returns the bucket's total in whole minutes, rounding down.
func (d DayTotal) Minutes() int64 {
	return d.Seconds / 60
}
