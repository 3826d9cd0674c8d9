package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claude/lifttrack/internal/models"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// InsertWorkout inserts a workout row together with all of its sets in one
// transaction, so a crash mid-write cannot leave a workout without its sets
// or orphaned sets without their workout.
func (db *DB) InsertWorkout(ctx context.Context, w models.WorkoutRow, sets []models.SetRow) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (id, date, name, duration_seconds, routine_id)
			 VALUES (?, ?, ?, ?, ?)`,
			w.ID, w.Date, w.Name, w.DurationSeconds, w.RoutineID); err != nil {
			return fmt.Errorf("inserting workout: %w", err)
		}
		for _, s := range sets {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sets (id, workout_id, exercise_id, weight, reps, completed, timestamp)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.WorkoutID, s.ExerciseID, s.Weight, s.Reps, boolToInt(s.Completed), s.Timestamp); err != nil {
				return fmt.Errorf("inserting set: %w", err)
			}
		}
		return nil
	})
}

// WorkoutDetail is a workout expanded with its sets and, when the routine
// still exists, the routine name (left-join semantics: an orphaned routine
// reference yields a nil name, not an error).
type WorkoutDetail struct {
	models.WorkoutRow
	RoutineName *string        `json:"routine_name,omitempty"`
	Sets        []models.SetRow `json:"sets"`
}

// GetWorkout retrieves a single workout with its sets ordered by creation
// timestamp.
func (db *DB) GetWorkout(ctx context.Context, id string) (*WorkoutDetail, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT w.id, w.date, w.name, w.duration_seconds, w.routine_id, r.name
		 FROM workouts w
		 LEFT JOIN routines r ON w.routine_id = r.id
		 WHERE w.id = ?`, id)

	var d WorkoutDetail
	err := row.Scan(&d.ID, &d.Date, &d.Name, &d.DurationSeconds, &d.RoutineID, &d.RoutineName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, workout_id, exercise_id, weight, reps, completed, timestamp
		 FROM sets WHERE workout_id = ?
		 ORDER BY timestamp ASC, id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	d.Sets = []models.SetRow{}
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		d.Sets = append(d.Sets, s)
	}
	return &d, rows.Err()
}

// ListWorkouts returns all workouts, most recent first.
func (db *DB) ListWorkouts(ctx context.Context) ([]models.WorkoutRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, date, name, duration_seconds, routine_id
		 FROM workouts ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	workouts := []models.WorkoutRow{}
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.Date, &w.Name, &w.DurationSeconds, &w.RoutineID); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// UpdateWorkout replaces a workout's editable fields (name and date).
func (db *DB) UpdateWorkout(ctx context.Context, id string, name *string, date string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE workouts SET name = ?, date = ? WHERE id = ?`, name, date, id)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// DeleteWorkout deletes a workout and its sets. Sets go first since the
// schema does not declare cascading foreign keys.
func (db *DB) DeleteWorkout(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sets WHERE workout_id = ?`, id); err != nil {
			return fmt.Errorf("deleting sets: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting workout: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrWorkoutNotFound
		}
		return nil
	})
}

// LastWorkoutRoutineRef returns the routine reference of the most recently
// logged workout, nil when there is no prior workout or the workout was
// freestyle.
func (db *DB) LastWorkoutRoutineRef(ctx context.Context) (*string, error) {
	var ref *string
	err := db.conn.QueryRowContext(ctx,
		`SELECT routine_id FROM workouts ORDER BY date DESC LIMIT 1`).Scan(&ref)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last workout: %w", err)
	}
	return ref, nil
}

// MostRecentSeedSets finds the most recent workout containing at least one
// set for the exercise and returns that workout's sets for it, in creation
// order, as pre-fill seeds. The completed flag is always reset to false.
func (db *DB) MostRecentSeedSets(ctx context.Context, exerciseID string) ([]models.SeedSet, error) {
	var workoutID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT s.workout_id
		 FROM sets s
		 INNER JOIN workouts w ON s.workout_id = w.id
		 WHERE s.exercise_id = ?
		 ORDER BY w.date DESC
		 LIMIT 1`, exerciseID).Scan(&workoutID)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.SeedSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying most recent workout: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT weight, reps FROM sets
		 WHERE workout_id = ? AND exercise_id = ?
		 ORDER BY timestamp ASC, id ASC`, workoutID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying seed sets: %w", err)
	}
	defer rows.Close()

	seeds := []models.SeedSet{}
	for rows.Next() {
		var s models.SeedSet
		if err := rows.Scan(&s.Weight, &s.Reps); err != nil {
			return nil, fmt.Errorf("scanning seed set: %w", err)
		}
		s.Completed = false
		seeds = append(seeds, s)
	}
	return seeds, rows.Err()
}

// RoutineDurations returns the recorded durations (seconds) of all workouts
// referencing the routine, skipping workouts with no duration.
func (db *DB) RoutineDurations(ctx context.Context, routineID string) ([]int, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT duration_seconds FROM workouts
		 WHERE routine_id = ? AND duration_seconds IS NOT NULL`, routineID)
	if err != nil {
		return nil, fmt.Errorf("querying routine durations: %w", err)
	}
	defer rows.Close()

	durations := []int{}
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning duration: %w", err)
		}
		durations = append(durations, d)
	}
	return durations, rows.Err()
}

// WorkoutDates returns the raw date strings of every workout.
func (db *DB) WorkoutDates(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT date FROM workouts`)
	if err != nil {
		return nil, fmt.Errorf("querying workout dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func scanSet(rows *sql.Rows) (models.SetRow, error) {
	var s models.SetRow
	var completed int
	if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.Weight, &s.Reps, &completed, &s.Timestamp); err != nil {
		return s, fmt.Errorf("scanning set: %w", err)
	}
	s.Completed = completed != 0
	return s, nil
}
