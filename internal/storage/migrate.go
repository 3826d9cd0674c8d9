package storage

import (
	"context"
	"fmt"
)

// schemaVersion is the target PRAGMA user_version. Migrations are
// forward-only and idempotent: each step only runs when the stored counter
// is below it, and every statement tolerates pre-existing objects.
const schemaVersion = 3

// Migrate brings the schema up to the current version. The version counter
// is SQLite's user_version pragma; steps are applied in order and the
// counter is advanced after each one.
func (db *DB) Migrate(ctx context.Context) error {
	var version int
	if err := db.conn.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading user_version: %w", err)
	}

	if version < 1 {
		if err := db.migrateV1(ctx); err != nil {
			return fmt.Errorf("migration to v1: %w", err)
		}
		version = 1
	}
	if version < 2 {
		if err := db.migrateV2(ctx); err != nil {
			return fmt.Errorf("migration to v2: %w", err)
		}
		version = 2
	}
	if version < 3 {
		if err := db.migrateV3(ctx); err != nil {
			return fmt.Errorf("migration to v3: %w", err)
		}
		version = 3
	}

	if _, err := db.conn.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("writing user_version: %w", err)
	}
	return nil
}

// migrateV1 creates the base schema.
func (db *DB) migrateV1(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS routines (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS routine_exercises (
			id          TEXT PRIMARY KEY,
			routine_id  TEXT NOT NULL,
			exercise_id TEXT NOT NULL,
			order_index INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS workouts (
			id               TEXT PRIMARY KEY,
			date             TEXT NOT NULL,
			name             TEXT,
			duration_seconds INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS sets (
			id          TEXT PRIMARY KEY,
			workout_id  TEXT NOT NULL,
			exercise_id TEXT NOT NULL,
			weight      REAL,
			reps        REAL,
			completed   INTEGER NOT NULL DEFAULT 0,
			timestamp   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_routine_exercises_routine_id ON routine_exercises(routine_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sets_workout_id ON sets(workout_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sets_exercise_id ON sets(exercise_id)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// migrateV2 links workouts to the routine they were generated from and tags
// routines with the seed track they came from.
func (db *DB) migrateV2(ctx context.Context) error {
	if err := db.addColumnIfAbsent(ctx, "workouts", "routine_id", "TEXT"); err != nil {
		return err
	}
	return db.addColumnIfAbsent(ctx, "routines", "track", "TEXT")
}

// migrateV3 adds the temporary-routine flag and the preference store.
func (db *DB) migrateV3(ctx context.Context) error {
	if err := db.addColumnIfAbsent(ctx, "routines", "is_temporary", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	_, err := db.conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// addColumnIfAbsent adds a column only when the table does not already have
// it, so re-running a partially applied migration stays safe.
func (db *DB) addColumnIfAbsent(ctx context.Context, table, column, decl string) error {
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", table, err)
	}
	defer rows.Close()

	exists := false
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			exists = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.conn.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl))
	if err != nil {
		return fmt.Errorf("adding %s.%s: %w", table, column, err)
	}
	return nil
}
