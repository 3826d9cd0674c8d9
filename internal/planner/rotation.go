package planner

import (
	"context"
	"fmt"
	"math"

	"github.com/claude/lifttrack/internal/models"
)

// NextRoutine computes the next recommended routine by rotating through
// the id-ascending routine ring, keyed off the most recently logged
// workout's routine reference. Returns nil when no routines exist.
//
// The ring is ordered by id, not by recency: routine lists shown to the
// user elsewhere are sorted by usage, but the rotation must stay stable
// regardless of usage order. A last-workout reference that no longer
// matches any routine falls back to the first ring entry.
func (p *Planner) NextRoutine(ctx context.Context) (*models.Routine, error) {
	ring, err := p.store.RotationRing(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rotation ring: %w", err)
	}
	if len(ring) == 0 {
		return nil, nil
	}

	target := 0
	lastRef, err := p.store.LastWorkoutRoutineRef(ctx)
	if err != nil {
		p.log.Warn("last workout lookup failed, recommending first routine", "error", err)
		lastRef = nil
	}
	if lastRef != nil {
		for i, r := range ring {
			if r.ID == *lastRef {
				target = (i + 1) % len(ring)
				break
			}
		}
	}

	next := &models.Routine{RoutineRow: ring[target]}
	ids, err := p.store.RoutineExerciseIDs(ctx, next.ID)
	if err != nil {
		p.log.Warn("exercise list lookup failed for recommendation", "routine_id", next.ID, "error", err)
		ids = []string{}
	}
	next.ExerciseIDs = ids
	return next, nil
}

// secondsPerExercise is the fallback estimate when a routine has no
// recorded workout durations.
const secondsPerExercise = 300

// EstimateDuration returns the expected length of a routine's workout in
// seconds: the mean of recorded durations, rounded to the nearest
// second, or exercise count times five minutes when no history exists.
// Returns 0 only for a routine with no exercises and no history. The
// estimate is advisory, so store failures degrade to the fallback.
func (p *Planner) EstimateDuration(ctx context.Context, routineID string) int {
	durations, err := p.store.RoutineDurations(ctx, routineID)
	if err != nil {
		p.log.Warn("duration history lookup failed", "routine_id", routineID, "error", err)
		durations = nil
	}
	if len(durations) > 0 {
		sum := 0
		for _, d := range durations {
			sum += d
		}
		return int(math.Round(float64(sum) / float64(len(durations))))
	}

	ids, err := p.store.RoutineExerciseIDs(ctx, routineID)
	if err != nil {
		p.log.Warn("exercise count lookup failed", "routine_id", routineID, "error", err)
		return 0
	}
	return len(ids) * secondsPerExercise
}
