package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/claude/lifttrack/internal/catalog"
	"github.com/claude/lifttrack/internal/storage"
)

type routinePayload struct {
	Name        string   `json:"name"`
	ExerciseIDs []string `json:"exercise_ids"`
}

// validateRoutinePayload enforces the pre-write checks: a name and at
// least one known exercise.
func validateRoutinePayload(p routinePayload) string {
	if strings.TrimSpace(p.Name) == "" {
		return "routine name is required"
	}
	if len(p.ExerciseIDs) == 0 {
		return "at least one exercise is required"
	}
	for _, id := range p.ExerciseIDs {
		if _, ok := catalog.Get(id); !ok {
			return "unknown exercise: " + id
		}
	}
	return ""
}

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.db.ListRoutines(r.Context())
	if err != nil {
		s.log.Error("listing routines", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, routines)
}

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var payload routinePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if msg := validateRoutinePayload(payload); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	routine, err := s.db.CreateRoutine(r.Context(), strings.TrimSpace(payload.Name), payload.ExerciseIDs, nil, false)
	if err != nil {
		s.log.Error("creating routine", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleNextRoutine(w http.ResponseWriter, r *http.Request) {
	next, err := s.planner.NextRoutine(r.Context())
	if err != nil {
		s.log.Error("computing next routine", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if next == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	routine, err := s.db.GetRoutine(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrRoutineNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	var payload routinePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if msg := validateRoutinePayload(payload); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.db.UpdateRoutine(r.Context(), id, strings.TrimSpace(payload.Name), payload.ExerciseIDs); err != nil {
		if errors.Is(err, storage.ErrRoutineNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	routine, err := s.db.GetRoutine(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteRoutine(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrRoutineNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateRoutine(w http.ResponseWriter, r *http.Request) {
	dup, err := s.db.DuplicateRoutine(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrRoutineNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, dup)
}

func (s *Server) handleRoutineDuration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.db.GetRoutine(r.Context(), id); errors.Is(err, storage.ErrRoutineNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
		return
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"estimated_seconds": s.planner.EstimateDuration(r.Context(), id),
	})
}
