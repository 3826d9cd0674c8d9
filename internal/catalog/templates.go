package catalog

// RoutineTemplate is a predefined quick-start routine. Templates are not
// persisted; starting one builds a session directly from its exercise list.
type RoutineTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ExerciseIDs []string `json:"exercise_ids"`
}

var templates = []RoutineTemplate{
	{
		ID:          "full-body-a",
		Name:        "Full Body A",
		Description: "Squat, Bench, Row, Core, Arms",
		ExerciseIDs: []string{"barbell-squat", "bench-press", "bent-over-row", "hanging-leg-raise", "bicep-curl"},
	},
	{
		ID:          "full-body-b",
		Name:        "Full Body B",
		Description: "Deadlift, Press, Pull, Core, Shoulders",
		ExerciseIDs: []string{"deadlift", "overhead-press", "pull-up", "plank", "face-pull"},
	},
	{
		ID:          "push",
		Name:        "Push Day",
		Description: "Chest, Shoulders, Triceps",
		ExerciseIDs: []string{"bench-press", "overhead-press", "tricep-pushdown", "side-lateral-raise"},
	},
	{
		ID:          "pull",
		Name:        "Pull Day",
		Description: "Back, Biceps, Rear Delts",
		ExerciseIDs: []string{"pull-up", "bent-over-row", "bicep-curl", "face-pull"},
	},
	{
		ID:          "legs",
		Name:        "Leg Day",
		Description: "Squats, Deadlifts, Leg Accessories",
		ExerciseIDs: []string{"barbell-squat", "deadlift", "romanian-deadlift", "leg-press"},
	},
}

// Templates returns the quick-start routine templates.
func Templates() []RoutineTemplate {
	out := make([]RoutineTemplate, len(templates))
	copy(out, templates)
	return out
}

// Template looks up a quick-start template by id.
func Template(id string) (RoutineTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return RoutineTemplate{}, false
}
