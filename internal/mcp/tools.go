package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/lifttrack/internal/catalog"
	"github.com/claude/lifttrack/internal/storage"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the static exercise library: id, name, muscle group, target reps and swap alternatives. Optionally filter by muscle group."),
	mcp.WithString("muscle_group", mcp.Description("Filter by muscle group (e.g. 'Chest', 'Back', 'Legs', 'Core', 'Shoulders', 'Arms')")),
)

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List all saved routines with their ordered exercise ids and the date each was last performed."),
)

var toolGetRoutine = mcp.NewTool("get_routine",
	mcp.WithDescription("Get a single routine by id, including its ordered exercise list."),
	mcp.WithString("routine_id", mcp.Required(), mcp.Description("Routine id")),
)

var toolNextRoutine = mcp.NewTool("next_routine",
	mcp.WithDescription("Get the next recommended routine: the rotation walks the routine list in id order, keyed off the most recently logged workout. Returns null when no routines exist."),
)

var toolEstimateDuration = mcp.NewTool("estimate_duration",
	mcp.WithDescription("Estimate a routine's workout duration in seconds, from historical averages or a per-exercise heuristic."),
	mcp.WithString("routine_id", mcp.Required(), mcp.Description("Routine id")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List logged workouts, most recent first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts to return. Defaults to 20.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get a workout with all of its logged sets."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout id")),
)

var toolExerciseHistory = mcp.NewTool("exercise_history",
	mcp.WithDescription("Get the most recent logged sets for an exercise, the same seed values a new session would pre-fill."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id (e.g. 'bench-press')")),
)

var toolWeeklyStats = mcp.NewTool("weekly_stats",
	mcp.WithDescription("Current training week summary: workouts completed against the weekly goal, per-day flags (Monday first), and the consecutive-training-weeks streak."),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group := req.GetString("muscle_group", "")
	exercises := catalog.All()
	if group != "" {
		filtered := exercises[:0]
		for _, e := range exercises {
			if e.MuscleGroup == group {
				filtered = append(filtered, e)
			}
		}
		exercises = filtered
	}
	return toolJSON(exercises)
}

func (h *handlers) listRoutines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routines, err := h.db.ListRoutines(ctx)
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(routines)
}

func (h *handlers) getRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("routine_id")
	if err != nil {
		return mcp.NewToolResultError("routine_id parameter is required"), nil
	}
	routine, err := h.db.GetRoutine(ctx, id)
	if errors.Is(err, storage.ErrRoutineNotFound) {
		return mcp.NewToolResultError("routine not found: " + id), nil
	}
	if err != nil {
		h.log.Error("mcp get_routine", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(routine)
}

func (h *handlers) nextRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	next, err := h.pl.NextRoutine(ctx)
	if err != nil {
		h.log.Error("mcp next_routine", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(next)
}

func (h *handlers) estimateDuration(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("routine_id")
	if err != nil {
		return mcp.NewToolResultError("routine_id parameter is required"), nil
	}
	if _, err := h.db.GetRoutine(ctx, id); errors.Is(err, storage.ErrRoutineNotFound) {
		return mcp.NewToolResultError("routine not found: " + id), nil
	} else if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(map[string]int{"estimated_seconds": h.pl.EstimateDuration(ctx, id)})
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	workouts, err := h.db.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return toolJSON(workouts)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	detail, err := h.db.GetWorkout(ctx, id)
	if errors.Is(err, storage.ErrWorkoutNotFound) {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(detail)
}

func (h *handlers) exerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	if _, ok := catalog.Get(id); !ok {
		return mcp.NewToolResultError("unknown exercise: " + id), nil
	}
	return toolJSON(h.pl.SeedSets(ctx, id))
}

func (h *handlers) weeklyStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prog, err := h.pl.WeeklyProgress(ctx)
	if err != nil {
		h.log.Error("mcp weekly_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	streak, err := h.pl.WeekStreak(ctx)
	if err != nil {
		h.log.Error("mcp weekly_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(map[string]any{
		"goal":         prog.Goal,
		"completed":    prog.Completed,
		"days":         prog.Days,
		"streak_weeks": streak,
	})
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
