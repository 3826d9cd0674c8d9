// Package planner holds the session and recommendation core: history
// pre-fill, next-routine rotation, duration estimation and the active
// session lifecycle. Everything here is deterministic given the store
// contents; store failures on advisory paths degrade to empty results
// instead of blocking the caller.
package planner

import (
	"context"
	"log/slog"

	"github.com/claude/lifttrack/internal/models"
)

// Store is the slice of the storage layer the planner reads and writes.
// *storage.DB satisfies it.
type Store interface {
	RotationRing(ctx context.Context) ([]models.RoutineRow, error)
	RoutineExerciseIDs(ctx context.Context, routineID string) ([]string, error)
	LastWorkoutRoutineRef(ctx context.Context) (*string, error)
	MostRecentSeedSets(ctx context.Context, exerciseID string) ([]models.SeedSet, error)
	RoutineDurations(ctx context.Context, routineID string) ([]int, error)
	InsertWorkout(ctx context.Context, w models.WorkoutRow, sets []models.SetRow) error
	WorkoutDates(ctx context.Context) ([]string, error)
	GetPref(ctx context.Context, key string) (string, bool, error)
}

type Planner struct {
	store Store
	log   *slog.Logger
}

func New(store Store, log *slog.Logger) *Planner {
	return &Planner{store: store, log: log}
}
