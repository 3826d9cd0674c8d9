package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Preference keys. The preference store is a flat key-value table; values
// are strings and callers own their parsing.
const (
	PrefWeeklyGoal          = "weekly_workout_goal"
	PrefDefaultRestSeconds  = "default_rest_timer"
	PrefOnboardingCompleted = "onboarding_completed"
	PrefSelectedTrack       = "selected_track"
)

// GetPref reads a preference value. The second return is false when the key
// has never been written.
func (db *DB) GetPref(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading pref %s: %w", key, err)
	}
	return value, true, nil
}

// SetPref writes a preference value, replacing any previous one.
func (db *DB) SetPref(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO prefs (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("writing pref %s: %w", key, err)
	}
	return nil
}
