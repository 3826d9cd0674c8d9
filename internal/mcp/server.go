// Package mcp exposes the workout data over the Model Context Protocol,
// so an assistant can read routines, history and recommendations.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/lifttrack/internal/planner"
	"github.com/claude/lifttrack/internal/storage"
)

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, pl *planner.Planner, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftTrack workout data server. Query the exercise library, routines, workout history, the next recommended routine, and weekly training stats."),
	)

	h := &handlers{db: db, pl: pl, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolListRoutines, Handler: h.listRoutines},
		server.ServerTool{Tool: toolGetRoutine, Handler: h.getRoutine},
		server.ServerTool{Tool: toolNextRoutine, Handler: h.nextRoutine},
		server.ServerTool{Tool: toolEstimateDuration, Handler: h.estimateDuration},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolExerciseHistory, Handler: h.exerciseHistory},
		server.ServerTool{Tool: toolWeeklyStats, Handler: h.weeklyStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resRoutines, Handler: h.routinesResource},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	pl  *planner.Planner
	log *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"lifttrack://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("The full static exercise library with muscle groups, target reps and swap alternatives"),
	mcp.WithMIMEType("application/json"),
)

var resRoutines = mcp.NewResource(
	"lifttrack://routines",
	"Routines",
	mcp.WithResourceDescription("All saved routines with their ordered exercise lists and last-performed dates"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"lifttrack://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The 20 most recent workouts"),
	mcp.WithMIMEType("application/json"),
)
