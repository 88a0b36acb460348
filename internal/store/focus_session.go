package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dstanek/focusflow/internal/model"
)

// FocusSessionStore persists logged work durations. Rows are append-only:
// nothing updates or deletes them.
type FocusSessionStore struct {
	db *sql.DB
}

func NewFocusSessionStore(db *sql.DB) *FocusSessionStore {
	return &FocusSessionStore{db: db}
}

func scanFocusSession(scanner interface{ Scan(...any) error }) (*model.FocusSession, error) {
	var fs model.FocusSession
	err := scanner.Scan(&fs.ID, &fs.UserID, &fs.Duration, &fs.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &fs, nil
}

const focusSessionCols = `id, user_id, duration, created_at`

// Append records a finished work session. The timestamp is the database
// clock (datetime('now'), UTC), not a caller-supplied value.
func (s *FocusSessionStore) Append(userID, durationSeconds int64) (*model.FocusSession, error) {
	result, err := s.db.Exec(
		`INSERT INTO focus_sessions (user_id, duration) VALUES (?, ?)`,
		userID, durationSeconds,
	)
	if err != nil {
		return nil, fmt.Errorf("insert focus session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *FocusSessionStore) GetByID(id int64) (*model.FocusSession, error) {
	row := s.db.QueryRow(`SELECT `+focusSessionCols+` FROM focus_sessions WHERE id = ?`, id)
	fs, err := scanFocusSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get focus session: %w", err)
	}
	return fs, nil
}

// TodayTotal sums the user's durations for the current UTC calendar date.
func (s *FocusSessionStore) TodayTotal(userID int64) (int64, error) {
	var total int64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(duration), 0) FROM focus_sessions
		 WHERE user_id = ? AND date(created_at) = date('now')`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today total: %w", err)
	}
	return total, nil
}

// Last7Days returns exactly seven calendar-day buckets, from six days ago
// through today (UTC) in chronological order. Days with no sessions report
// zero seconds.
func (s *FocusSessionStore) Last7Days(userID int64) ([]model.DayTotal, error) {
	start := time.Now().UTC().AddDate(0, 0, -6)
	startDate := start.Format("2006-01-02")

	rows, err := s.db.Query(
		`SELECT date(created_at), SUM(duration) FROM focus_sessions
		 WHERE user_id = ? AND date(created_at) >= ?
		 GROUP BY date(created_at)`,
		userID, startDate,
	)
	if err != nil {
		return nil, fmt.Errorf("last 7 days: %w", err)
	}
	defer rows.Close()

	byDate := make(map[string]int64, 7)
	for rows.Next() {
		var date string
		var seconds int64
		if err := rows.Scan(&date, &seconds); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		byDate[date] = seconds
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totals := make([]model.DayTotal, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		totals = append(totals, model.DayTotal{Date: date, Seconds: byDate[date]})
	}
	return totals, nil
}
