package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/catalog"
	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/planner"
	"github.com/claude/lifttrack/internal/storage"
)

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.db.ListWorkouts(r.Context())
	if err != nil {
		s.log.Error("listing workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	detail, err := s.db.GetWorkout(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrWorkoutNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name *string `json:"name"`
		Date string  `json:"date"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if _, err := models.NormalizeDate(payload.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date: " + payload.Date})
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.db.UpdateWorkout(r.Context(), id, payload.Name, payload.Date); err != nil {
		if errors.Is(err, storage.ErrWorkoutNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	detail, err := s.db.GetWorkout(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteWorkout(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrWorkoutNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWorkoutSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExerciseID string `json:"exercise_id"`
		Weight     string `json:"weight"`
		Reps       string `json:"reps"`
		Completed  bool   `json:"completed"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if _, ok := catalog.Get(payload.ExerciseID); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown exercise: " + payload.ExerciseID})
		return
	}

	workoutID := chi.URLParam(r, "id")
	if _, err := s.db.GetWorkout(r.Context(), workoutID); err != nil {
		if errors.Is(err, storage.ErrWorkoutNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	ts := time.Now().Format(time.RFC3339Nano)
	set := models.SetRow{
		ID:         uuid.NewString(),
		WorkoutID:  workoutID,
		ExerciseID: payload.ExerciseID,
		Weight:     planner.ParseNumeric(payload.Weight),
		Reps:       planner.ParseNumeric(payload.Reps),
		Completed:  payload.Completed,
		Timestamp:  &ts,
	}
	if err := s.db.InsertSet(r.Context(), set); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Weight    string `json:"weight"`
		Reps      string `json:"reps"`
		Completed bool   `json:"completed"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	id := chi.URLParam(r, "id")
	err := s.db.UpdateSet(r.Context(), id,
		planner.ParseNumeric(payload.Weight), planner.ParseNumeric(payload.Reps), payload.Completed)
	if errors.Is(err, storage.ErrSetNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteSet(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrSetNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
