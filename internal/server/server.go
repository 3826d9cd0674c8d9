package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/lifttrack/internal/planner"
	"github.com/claude/lifttrack/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	planner *planner.Planner
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, pl *planner.Planner, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		planner: pl,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Static library
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Get("/api/v1/exercises/{id}/alternatives", s.handleExerciseAlternatives)
	s.router.Get("/api/v1/exercises/{id}/prefill", s.handleExercisePrefill)
	s.router.Get("/api/v1/templates", s.handleListTemplates)
	s.router.Get("/api/v1/tracks", s.handleListTracks)

	// Routines
	s.router.Route("/api/v1/routines", func(r chi.Router) {
		r.Get("/", s.handleListRoutines)
		r.Post("/", s.handleCreateRoutine)
		r.Get("/next", s.handleNextRoutine)
		r.Get("/{id}", s.handleGetRoutine)
		r.Put("/{id}", s.handleUpdateRoutine)
		r.Delete("/{id}", s.handleDeleteRoutine)
		r.Post("/{id}/duplicate", s.handleDuplicateRoutine)
		r.Get("/{id}/duration", s.handleRoutineDuration)
	})

	// Live session
	s.router.Post("/api/v1/session/build", s.handleBuildSession)
	s.router.Post("/api/v1/session/finish", s.handleFinishSession)

	// History
	s.router.Route("/api/v1/workouts", func(r chi.Router) {
		r.Get("/", s.handleListWorkouts)
		r.Get("/{id}", s.handleGetWorkout)
		r.Patch("/{id}", s.handleUpdateWorkout)
		r.Delete("/{id}", s.handleDeleteWorkout)
		r.Post("/{id}/sets", s.handleAddWorkoutSet)
	})
	s.router.Patch("/api/v1/sets/{id}", s.handleUpdateSet)
	s.router.Delete("/api/v1/sets/{id}", s.handleDeleteSet)

	// Dashboard stats
	s.router.Get("/api/v1/stats/weekly", s.handleWeeklyStats)
	s.router.Get("/api/v1/stats/streak", s.handleStreak)

	// Settings and data management
	s.router.Get("/api/v1/prefs/{key}", s.handleGetPref)
	s.router.Put("/api/v1/prefs/{key}", s.handleSetPref)
	s.router.Post("/api/v1/onboarding", s.handleOnboarding)
	s.router.Get("/api/v1/backup/export", s.handleBackupExport)
	s.router.Post("/api/v1/backup/import", s.handleBackupImport)
}
