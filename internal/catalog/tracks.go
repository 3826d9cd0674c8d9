package catalog

// TrackRoutine is one routine of a training track seed program.
type TrackRoutine struct {
	Name        string   `json:"name"`
	ExerciseIDs []string `json:"exercise_ids"`
}

// TrainingTrack is a seed program offered during onboarding. Selecting a
// track creates its routines, each tagged with the track key.
type TrainingTrack struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Routines    []TrackRoutine `json:"routines"`
}

var tracks = []TrainingTrack{
	{
		Key:         "FULL_BODY",
		Name:        "Full Body",
		Description: "Full body workouts covering all muscle groups",
		Routines: []TrackRoutine{
			{Name: "Workout A", ExerciseIDs: []string{"barbell-squat", "bench-press", "bent-over-row", "hanging-leg-raise", "bicep-curl"}},
			{Name: "Workout B", ExerciseIDs: []string{"deadlift", "overhead-press", "pull-up", "plank", "face-pull"}},
		},
	},
	{
		Key:         "PPL",
		Name:        "Push/Pull/Legs",
		Description: "Push, Pull, and Legs split routine",
		Routines: []TrackRoutine{
			{Name: "Push A", ExerciseIDs: []string{"bench-press", "overhead-press", "tricep-pushdown", "side-lateral-raise"}},
			{Name: "Pull A", ExerciseIDs: []string{"bent-over-row", "pull-up", "bicep-curl", "face-pull"}},
			{Name: "Legs A", ExerciseIDs: []string{"barbell-squat", "deadlift", "hanging-leg-raise", "plank"}},
		},
	},
	{
		Key:         "UPPER_LOWER",
		Name:        "Upper/Lower",
		Description: "Upper body and lower body split routine",
		Routines: []TrackRoutine{
			{Name: "Upper A", ExerciseIDs: []string{"bench-press", "bent-over-row", "overhead-press", "bicep-curl", "tricep-pushdown"}},
			{Name: "Lower A", ExerciseIDs: []string{"barbell-squat", "deadlift", "hanging-leg-raise", "plank"}},
		},
	},
}

// Tracks returns all seed training tracks.
func Tracks() []TrainingTrack {
	out := make([]TrainingTrack, len(tracks))
	copy(out, tracks)
	return out
}

// Track looks up a training track by key.
func Track(key string) (TrainingTrack, bool) {
	for _, t := range tracks {
		if t.Key == key {
			return t, true
		}
	}
	return TrainingTrack{}, false
}
