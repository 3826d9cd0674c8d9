package server

import (
	"errors"
	"net/http"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/storage"
)

// handleBuildSession assembles the initial live-session state from either
// a routine or an ad-hoc exercise selection.
func (s *Server) handleBuildSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RoutineID   *string  `json:"routine_id"`
		ExerciseIDs []string `json:"exercise_ids"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	exerciseIDs := payload.ExerciseIDs
	if payload.RoutineID != nil {
		routine, err := s.db.GetRoutine(r.Context(), *payload.RoutineID)
		if errors.Is(err, storage.ErrRoutineNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		exerciseIDs = routine.ExerciseIDs
	}
	if len(exerciseIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one exercise is required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"exercises": s.planner.BuildSession(r.Context(), exerciseIDs),
	})
}

// handleFinishSession persists a completed session as one atomic
// workout-plus-sets write.
func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name            *string                  `json:"name"`
		RoutineID       *string                  `json:"routine_id"`
		DurationSeconds *int                     `json:"duration_seconds"`
		Exercises       []models.SessionExercise `json:"exercises"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if len(payload.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session has no exercises"})
		return
	}

	id, err := s.planner.FinishSession(r.Context(),
		payload.Name, payload.RoutineID, payload.DurationSeconds, payload.Exercises)
	if err != nil {
		s.log.Error("finishing session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"workout_id": id})
}
