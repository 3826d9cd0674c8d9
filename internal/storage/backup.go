package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/claude/lifttrack/internal/models"
)

// BackupVersion is the version stamped into exported backup documents.
const BackupVersion = 1

// Export collects every row of every user table into a backup document.
// Ids are exported as-is so an import reproduces the dataset exactly.
func (db *DB) Export(ctx context.Context) (*models.Backup, error) {
	b := &models.Backup{
		Version:          BackupVersion,
		Timestamp:        time.Now().Format(time.RFC3339),
		Routines:         []models.RoutineRow{},
		RoutineExercises: []models.RoutineExerciseRow{},
		Workouts:         []models.WorkoutRow{},
		Sets:             []models.SetRow{},
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at, track, is_temporary FROM routines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("exporting routines: %w", err)
	}
	for rows.Next() {
		var r models.RoutineRow
		var temp int
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt, &r.Track, &temp); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		r.IsTemporary = temp != 0
		b.Routines = append(b.Routines, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.conn.QueryContext(ctx,
		`SELECT id, routine_id, exercise_id, order_index FROM routine_exercises ORDER BY routine_id, order_index`)
	if err != nil {
		return nil, fmt.Errorf("exporting routine exercises: %w", err)
	}
	for rows.Next() {
		var l models.RoutineExerciseRow
		if err := rows.Scan(&l.ID, &l.RoutineID, &l.ExerciseID, &l.OrderIndex); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning routine exercise: %w", err)
		}
		b.RoutineExercises = append(b.RoutineExercises, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.conn.QueryContext(ctx,
		`SELECT id, date, name, duration_seconds, routine_id FROM workouts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("exporting workouts: %w", err)
	}
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.Date, &w.Name, &w.DurationSeconds, &w.RoutineID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		b.Workouts = append(b.Workouts, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.conn.QueryContext(ctx,
		`SELECT id, workout_id, exercise_id, weight, reps, completed, timestamp FROM sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("exporting sets: %w", err)
	}
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		b.Sets = append(b.Sets, s)
	}
	rows.Close()
	return b, rows.Err()
}

// Import wipes all user data and restores the backup inside one
// transaction. Deletes run child-first, inserts parent-first, so the
// sequence stays safe under schema versions with enforced foreign keys.
func (db *DB) Import(ctx context.Context, b *models.Backup) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM sets`,
			`DELETE FROM routine_exercises`,
			`DELETE FROM workouts`,
			`DELETE FROM routines`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("wiping tables: %w", err)
			}
		}

		for _, r := range b.Routines {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO routines (id, name, created_at, updated_at, track, is_temporary)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, r.Name, r.CreatedAt, r.UpdatedAt, r.Track, boolToInt(r.IsTemporary)); err != nil {
				return fmt.Errorf("restoring routine %s: %w", r.ID, err)
			}
		}
		for _, l := range b.RoutineExercises {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO routine_exercises (id, routine_id, exercise_id, order_index)
				 VALUES (?, ?, ?, ?)`,
				l.ID, l.RoutineID, l.ExerciseID, l.OrderIndex); err != nil {
				return fmt.Errorf("restoring routine exercise %s: %w", l.ID, err)
			}
		}
		for _, w := range b.Workouts {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO workouts (id, date, name, duration_seconds, routine_id)
				 VALUES (?, ?, ?, ?, ?)`,
				w.ID, w.Date, w.Name, w.DurationSeconds, w.RoutineID); err != nil {
				return fmt.Errorf("restoring workout %s: %w", w.ID, err)
			}
		}
		for _, s := range b.Sets {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sets (id, workout_id, exercise_id, weight, reps, completed, timestamp)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.WorkoutID, s.ExerciseID, s.Weight, s.Reps, boolToInt(s.Completed), s.Timestamp); err != nil {
				return fmt.Errorf("restoring set %s: %w", s.ID, err)
			}
		}
		return nil
	})
}
