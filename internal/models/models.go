package models

// RoutineRow is a row of the routines table.
type RoutineRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	Track       *string `json:"track,omitempty"`
	IsTemporary bool    `json:"is_temporary"`
}

// RoutineExerciseRow is a row of the routine_exercises link table.
type RoutineExerciseRow struct {
	ID         string `json:"id"`
	RoutineID  string `json:"routine_id"`
	ExerciseID string `json:"exercise_id"`
	OrderIndex int    `json:"order_index"`
}

// Routine is a routine expanded with its ordered exercise references.
type Routine struct {
	RoutineRow
	ExerciseIDs   []string `json:"exercise_ids"`
	LastPerformed *string  `json:"last_performed,omitempty"`
}

// WorkoutRow is a row of the workouts table. RoutineID is nullable:
// freestyle workouts carry no routine reference, and a reference may
// outlive its routine (readers use left-join semantics, never fail).
type WorkoutRow struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Name            *string `json:"name"`
	DurationSeconds *int    `json:"duration_seconds"`
	RoutineID       *string `json:"routine_id"`
}

// SetRow is a row of the sets table. Weight and reps are nullable:
// a logged set with no recorded numbers is valid data.
type SetRow struct {
	ID         string   `json:"id"`
	WorkoutID  string   `json:"workout_id"`
	ExerciseID string   `json:"exercise_id"`
	Weight     *float64 `json:"weight"`
	Reps       *float64 `json:"reps"`
	Completed  bool     `json:"completed"`
	Timestamp  *string  `json:"timestamp"`
}

// SeedSet is a historical set used to pre-fill a new session. Completed is
// always false on a seed: history informs targets, never completion state.
type SeedSet struct {
	Weight    *float64 `json:"weight"`
	Reps      *float64 `json:"reps"`
	Completed bool     `json:"completed"`
}

// SessionSet is one editable set row within an active session. Weight and
// reps hold free-form numeric text; parsing happens at finish time and
// invalid text becomes null rather than an error.
type SessionSet struct {
	ID        string `json:"id"`
	Weight    string `json:"weight"`
	Reps      string `json:"reps"`
	Completed bool   `json:"completed"`
}

// SessionExercise is one exercise within an active session.
type SessionExercise struct {
	ExerciseID   string       `json:"exercise_id"`
	ExerciseName string       `json:"exercise_name"`
	Sets         []SessionSet `json:"sets"`
}

// Backup is the export/import document: raw rows per table, in the
// relational schema's shape, restored verbatim on import.
type Backup struct {
	Version          int                  `json:"version"`
	Timestamp        string               `json:"timestamp"`
	Routines         []RoutineRow         `json:"routines"`
	RoutineExercises []RoutineExerciseRow `json:"routine_exercises"`
	Workouts         []WorkoutRow         `json:"workouts"`
	Sets             []SetRow             `json:"sets"`
}
