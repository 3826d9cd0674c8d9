// Package catalog holds the static exercise reference data: the exercise
// library, quick-start routine templates, and the seed training tracks.
// The data is fixed at build time and never mutated.
package catalog

// Exercise is one entry of the static exercise library. Alternatives lists
// exercise ids that can be swapped in for this one; the relation is not
// enforced to be bidirectional.
type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MuscleGroup  string   `json:"muscle_group"`
	TargetReps   int      `json:"target_reps"`
	Alternatives []string `json:"alternatives,omitempty"`
}

var exercises = []Exercise{
	{ID: "barbell-squat", Name: "Barbell Squat", MuscleGroup: "Legs", TargetReps: 5, Alternatives: []string{"goblet-squat", "leg-press"}},
	{ID: "bench-press", Name: "Bench Press", MuscleGroup: "Chest", TargetReps: 5, Alternatives: []string{"dumbbell-bench-press", "push-up"}},
	{ID: "bent-over-row", Name: "Bent-Over Row", MuscleGroup: "Back", TargetReps: 8, Alternatives: []string{"seated-cable-row", "dumbbell-row"}},
	{ID: "hanging-leg-raise", Name: "Hanging Leg Raise", MuscleGroup: "Core", TargetReps: 12, Alternatives: []string{"ab-wheel", "russian-twist", "leg-raise"}},
	{ID: "bicep-curl", Name: "Bicep Curl", MuscleGroup: "Arms", TargetReps: 12},
	{ID: "tricep-pushdown", Name: "Tricep Pushdown", MuscleGroup: "Arms", TargetReps: 12},

	{ID: "deadlift", Name: "Deadlift", MuscleGroup: "Back", TargetReps: 5, Alternatives: []string{"romanian-deadlift"}},
	{ID: "overhead-press", Name: "Overhead Press", MuscleGroup: "Shoulders", TargetReps: 5, Alternatives: []string{"seated-db-press"}},
	{ID: "pull-up", Name: "Pull Up", MuscleGroup: "Back", TargetReps: 8, Alternatives: []string{"lat-pulldown"}},
	{ID: "plank", Name: "Plank", MuscleGroup: "Core", TargetReps: 60},
	{ID: "face-pull", Name: "Face Pull", MuscleGroup: "Shoulders", TargetReps: 15},
	{ID: "side-lateral-raise", Name: "Side Lateral Raise", MuscleGroup: "Shoulders", TargetReps: 12},

	{ID: "goblet-squat", Name: "Goblet Squat", MuscleGroup: "Legs", TargetReps: 10},
	{ID: "leg-press", Name: "Leg Press", MuscleGroup: "Legs", TargetReps: 10},
	{ID: "dumbbell-bench-press", Name: "Dumbbell Bench Press", MuscleGroup: "Chest", TargetReps: 8},
	{ID: "push-up", Name: "Push Up", MuscleGroup: "Chest", TargetReps: 15},
	{ID: "seated-cable-row", Name: "Seated Cable Row", MuscleGroup: "Back", TargetReps: 10},
	{ID: "dumbbell-row", Name: "Dumbbell Row", MuscleGroup: "Back", TargetReps: 10},
	{ID: "romanian-deadlift", Name: "Romanian Deadlift (RDL)", MuscleGroup: "Legs", TargetReps: 8},
	{ID: "lat-pulldown", Name: "Lat Pulldown", MuscleGroup: "Back", TargetReps: 10},
	{ID: "ab-wheel", Name: "Ab Wheel Rollout", MuscleGroup: "Core", TargetReps: 10},
	{ID: "russian-twist", Name: "Russian Twist", MuscleGroup: "Core", TargetReps: 20},
	{ID: "leg-raise", Name: "Lying Leg Raise", MuscleGroup: "Core", TargetReps: 15},
	{ID: "seated-db-press", Name: "Seated DB Overhead Press", MuscleGroup: "Shoulders", TargetReps: 10},
}

var byID = func() map[string]Exercise {
	m := make(map[string]Exercise, len(exercises))
	for _, e := range exercises {
		m[e.ID] = e
	}
	return m
}()

// All returns the full exercise library in its declared order.
func All() []Exercise {
	out := make([]Exercise, len(exercises))
	copy(out, exercises)
	return out
}

// Get looks up an exercise by id.
func Get(id string) (Exercise, bool) {
	e, ok := byID[id]
	return e, ok
}

// Alternatives resolves the declared swap candidates for an exercise,
// dropping any ids that no longer exist in the library.
func Alternatives(id string) []Exercise {
	e, ok := byID[id]
	if !ok {
		return nil
	}
	var out []Exercise
	for _, altID := range e.Alternatives {
		if alt, ok := byID[altID]; ok {
			out = append(out, alt)
		}
	}
	return out
}

// IsAlternative reports whether altID is a declared swap candidate for id.
func IsAlternative(id, altID string) bool {
	e, ok := byID[id]
	if !ok {
		return false
	}
	for _, a := range e.Alternatives {
		if a == altID {
			return true
		}
	}
	return false
}
