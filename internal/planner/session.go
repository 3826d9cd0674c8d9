package planner

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/catalog"
	"github.com/claude/lifttrack/internal/models"
)

// SeedSets resolves the pre-fill seeds for an exercise: the sets of the
// most recent workout containing it, completed always false. History is
// advisory, so any store failure is logged and answered with no seeds.
func (p *Planner) SeedSets(ctx context.Context, exerciseID string) []models.SeedSet {
	seeds, err := p.store.MostRecentSeedSets(ctx, exerciseID)
	if err != nil {
		p.log.Warn("seed set lookup failed, starting blank", "exercise_id", exerciseID, "error", err)
		return []models.SeedSet{}
	}
	return seeds
}

// BuildSession assembles the initial state of a live workout from an
// ordered exercise id list. Unknown ids are dropped with a warning. Each
// exercise starts with its historical seed sets, or one blank set when
// no history exists.
func (p *Planner) BuildSession(ctx context.Context, exerciseIDs []string) []models.SessionExercise {
	session := []models.SessionExercise{}
	for _, id := range exerciseIDs {
		ex, ok := catalog.Get(id)
		if !ok {
			p.log.Warn("dropping unknown exercise from session", "exercise_id", id)
			continue
		}

		seeds := p.SeedSets(ctx, id)
		sets := make([]models.SessionSet, 0, len(seeds))
		for _, s := range seeds {
			sets = append(sets, models.SessionSet{
				ID:     uuid.NewString(),
				Weight: formatNumeric(s.Weight),
				Reps:   formatNumeric(s.Reps),
			})
		}
		if len(sets) == 0 {
			sets = append(sets, blankSet())
		}

		session = append(session, models.SessionExercise{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Sets:         sets,
		})
	}
	return session
}

// AddSet appends a set to a session exercise, pre-filled from the last
// set's weight and reps text but never its completed flag.
func AddSet(ex *models.SessionExercise) {
	if len(ex.Sets) == 0 {
		ex.Sets = append(ex.Sets, blankSet())
		return
	}
	last := ex.Sets[len(ex.Sets)-1]
	ex.Sets = append(ex.Sets, models.SessionSet{
		ID:     uuid.NewString(),
		Weight: last.Weight,
		Reps:   last.Reps,
	})
}

// RemoveSet deletes a set from a session exercise by id. Reports whether
// a set was removed.
func RemoveSet(ex *models.SessionExercise, setID string) bool {
	for i, s := range ex.Sets {
		if s.ID == setID {
			ex.Sets = append(ex.Sets[:i], ex.Sets[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateSet replaces a session set's weight and reps text and completed
// flag in place. Reports whether the set was found.
func UpdateSet(ex *models.SessionExercise, setID, weight, reps string, completed bool) bool {
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			ex.Sets[i].Weight = weight
			ex.Sets[i].Reps = reps
			ex.Sets[i].Completed = completed
			return true
		}
	}
	return false
}

// SwapExercise replaces a session exercise's identity with one of its
// declared catalog alternatives. The set list is preserved, only the
// exercise changes.
func SwapExercise(ex *models.SessionExercise, altID string) error {
	alt, ok := catalog.Get(altID)
	if !ok {
		return fmt.Errorf("unknown exercise %q", altID)
	}
	if !catalog.IsAlternative(ex.ExerciseID, altID) {
		return fmt.Errorf("%q is not an alternative of %q", altID, ex.ExerciseID)
	}
	ex.ExerciseID = alt.ID
	ex.ExerciseName = alt.Name
	return nil
}

// FinishSession persists a completed session as one workout plus its
// sets in a single atomic write. Weight and reps free text is parsed
// leniently: empty or non-numeric input becomes null, never an error.
// A nil duration stays null so it never enters the duration history.
// Returns the new workout id.
func (p *Planner) FinishSession(ctx context.Context, name, routineID *string, durationSeconds *int, session []models.SessionExercise) (string, error) {
	now := time.Now()
	// Nanosecond precision keeps date ordering strict for rapid
	// successive finishes.
	w := models.WorkoutRow{
		ID:              uuid.NewString(),
		Date:            now.Format(time.RFC3339Nano),
		Name:            name,
		DurationSeconds: durationSeconds,
		RoutineID:       routineID,
	}

	var rows []models.SetRow
	seq := 0
	for _, ex := range session {
		for _, s := range ex.Sets {
			// Distinct ascending timestamps keep read-back order
			// equal to session order.
			ts := now.Add(time.Duration(seq) * time.Millisecond).Format(time.RFC3339Nano)
			seq++
			rows = append(rows, models.SetRow{
				ID:         uuid.NewString(),
				WorkoutID:  w.ID,
				ExerciseID: ex.ExerciseID,
				Weight:     ParseNumeric(s.Weight),
				Reps:       ParseNumeric(s.Reps),
				Completed:  s.Completed,
				Timestamp:  &ts,
			})
		}
	}

	if err := p.store.InsertWorkout(ctx, w, rows); err != nil {
		return "", fmt.Errorf("saving workout: %w", err)
	}
	return w.ID, nil
}

// ParseNumeric converts free-text numeric input to a nullable value.
// Empty or unparseable text is null, not an error.
func ParseNumeric(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formatNumeric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func blankSet() models.SessionSet {
	return models.SessionSet{ID: uuid.NewString()}
}
