package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/lifttrack/internal/models"
)

var ErrSetNotFound = errors.New("set not found")

// InsertSet adds a single set to an existing workout (manual "add set" in
// edit mode).
func (db *DB) InsertSet(ctx context.Context, s models.SetRow) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sets (id, workout_id, exercise_id, weight, reps, completed, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.WorkoutID, s.ExerciseID, s.Weight, s.Reps, boolToInt(s.Completed), s.Timestamp)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// UpdateSet mutates a set's weight, reps and completed flag in place.
func (db *DB) UpdateSet(ctx context.Context, id string, weight, reps *float64, completed bool) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE sets SET weight = ?, reps = ?, completed = ? WHERE id = ?`,
		weight, reps, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("set %s: %w", id, ErrSetNotFound)
	}
	return nil
}

// DeleteSet removes a single set.
func (db *DB) DeleteSet(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("set %s: %w", id, ErrSetNotFound)
	}
	return nil
}
