package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/claude/lifttrack/internal/models"
	"github.com/google/uuid"
)

var ErrRoutineNotFound = errors.New("routine not found")

// CreateRoutine inserts a routine together with its exercise links in a
// single transaction. Order indices are written dense and zero-based.
func (db *DB) CreateRoutine(ctx context.Context, name string, exerciseIDs []string, track *string, temporary bool) (*models.Routine, error) {
	now := time.Now().Format(time.RFC3339)
	row := models.RoutineRow{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Track:       track,
		IsTemporary: temporary,
	}

	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO routines (id, name, created_at, updated_at, track, is_temporary)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			row.ID, row.Name, row.CreatedAt, row.UpdatedAt, row.Track, boolToInt(row.IsTemporary)); err != nil {
			return fmt.Errorf("inserting routine: %w", err)
		}
		return insertRoutineLinks(ctx, tx, row.ID, exerciseIDs)
	})
	if err != nil {
		return nil, err
	}

	return &models.Routine{RoutineRow: row, ExerciseIDs: exerciseIDs}, nil
}

func insertRoutineLinks(ctx context.Context, tx *sql.Tx, routineID string, exerciseIDs []string) error {
	for i, exID := range exerciseIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO routine_exercises (id, routine_id, exercise_id, order_index)
			 VALUES (?, ?, ?, ?)`,
			uuid.NewString(), routineID, exID, i); err != nil {
			return fmt.Errorf("inserting routine exercise %d: %w", i, err)
		}
	}
	return nil
}

// GetRoutine retrieves a routine with its exercise references ordered by
// index. Readers sort by index and tolerate gaps.
func (db *DB) GetRoutine(ctx context.Context, id string) (*models.Routine, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at, track, is_temporary
		 FROM routines WHERE id = ?`, id)

	var r models.Routine
	var temp int
	err := row.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt, &r.Track, &temp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoutineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying routine: %w", err)
	}
	r.IsTemporary = temp != 0

	r.ExerciseIDs, err = db.routineExerciseIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *DB) routineExerciseIDs(ctx context.Context, routineID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT exercise_id FROM routine_exercises
		 WHERE routine_id = ? ORDER BY order_index ASC`, routineID)
	if err != nil {
		return nil, fmt.Errorf("querying routine exercises: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning exercise id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListRoutines returns all persisted (non-temporary) routines in
// most-recently-created order, each expanded with its exercise ids and the
// date it was last performed.
func (db *DB) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at, track, is_temporary
		 FROM routines WHERE is_temporary = 0
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		var r models.Routine
		var temp int
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt, &r.Track, &temp); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		r.IsTemporary = temp != 0
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routines {
		routines[i].ExerciseIDs, err = db.routineExerciseIDs(ctx, routines[i].ID)
		if err != nil {
			return nil, err
		}
		routines[i].LastPerformed, err = db.lastPerformed(ctx, routines[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return routines, nil
}

func (db *DB) lastPerformed(ctx context.Context, routineID string) (*string, error) {
	var date string
	err := db.conn.QueryRowContext(ctx,
		`SELECT date FROM workouts WHERE routine_id = ? ORDER BY date DESC LIMIT 1`,
		routineID).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last performed: %w", err)
	}
	return &date, nil
}

// RotationRing returns the routines eligible for next-routine rotation,
// ordered by id ascending. Id order is the rotation's stable ring:
// most-recently-used ordering elsewhere must not change what "next" means.
// Temporary routines are excluded from the ring.
func (db *DB) RotationRing(ctx context.Context) ([]models.RoutineRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at, track, is_temporary
		 FROM routines WHERE is_temporary = 0
		 ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying rotation ring: %w", err)
	}
	defer rows.Close()

	ring := []models.RoutineRow{}
	for rows.Next() {
		var r models.RoutineRow
		var temp int
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt, &r.Track, &temp); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		r.IsTemporary = temp != 0
		ring = append(ring, r)
	}
	return ring, rows.Err()
}

// RoutineExerciseIDs returns the ordered exercise references of a routine.
func (db *DB) RoutineExerciseIDs(ctx context.Context, routineID string) ([]string, error) {
	return db.routineExerciseIDs(ctx, routineID)
}

// RenameRoutine updates a routine's name.
func (db *DB) RenameRoutine(ctx context.Context, id, name string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE routines SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("renaming routine: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

// UpdateRoutine renames a routine and replaces its exercise list in one
// transaction, so a partial update can never be observed.
func (db *DB) UpdateRoutine(ctx context.Context, id, name string, exerciseIDs []string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE routines SET name = ?, updated_at = ? WHERE id = ?`,
			name, time.Now().Format(time.RFC3339), id)
		if err != nil {
			return fmt.Errorf("renaming routine: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRoutineNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM routine_exercises WHERE routine_id = ?`, id); err != nil {
			return fmt.Errorf("clearing routine exercises: %w", err)
		}
		return insertRoutineLinks(ctx, tx, id, exerciseIDs)
	})
}

// ReplaceRoutineExercises replaces a routine's exercise list wholesale:
// delete all links, reinsert with fresh dense indices. Not incremental.
func (db *DB) ReplaceRoutineExercises(ctx context.Context, id string, exerciseIDs []string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE routines SET updated_at = ? WHERE id = ?`,
			time.Now().Format(time.RFC3339), id)
		if err != nil {
			return fmt.Errorf("touching routine: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRoutineNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM routine_exercises WHERE routine_id = ?`, id); err != nil {
			return fmt.Errorf("clearing routine exercises: %w", err)
		}
		return insertRoutineLinks(ctx, tx, id, exerciseIDs)
	})
}

// DeleteRoutine deletes a routine and its exercise links. Link rows go
// first: the schema does not enforce cascading foreign keys in all
// versions. Workouts referencing the routine are left in place so that
// history survives routine deletion.
func (db *DB) DeleteRoutine(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM routine_exercises WHERE routine_id = ?`, id); err != nil {
			return fmt.Errorf("deleting routine exercises: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting routine: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRoutineNotFound
		}
		return nil
	})
}

// DuplicateRoutine copies a routine and its exercise list under fresh ids
// and a "(Copy)" suffixed name. Workout history is not copied.
func (db *DB) DuplicateRoutine(ctx context.Context, id string) (*models.Routine, error) {
	src, err := db.GetRoutine(ctx, id)
	if err != nil {
		return nil, err
	}
	return db.CreateRoutine(ctx, src.Name+" (Copy)", src.ExerciseIDs, src.Track, src.IsTemporary)
}

// SeedRoutine is one routine to create when seeding a training track.
type SeedRoutine struct {
	Name        string
	ExerciseIDs []string
}

// SeedTrack creates the routines of a training track, each tagged with the
// track key. Used once during onboarding.
func (db *DB) SeedTrack(ctx context.Context, trackKey string, routines []SeedRoutine) error {
	for _, r := range routines {
		if _, err := db.CreateRoutine(ctx, r.Name, r.ExerciseIDs, &trackKey, false); err != nil {
			return fmt.Errorf("seeding routine %q: %w", r.Name, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
