package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/lifttrack/internal/catalog"
	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/storage"
)

// knownPrefKeys guards the preference endpoints against arbitrary keys.
var knownPrefKeys = map[string]bool{
	storage.PrefWeeklyGoal:          true,
	storage.PrefDefaultRestSeconds:  true,
	storage.PrefOnboardingCompleted: true,
	storage.PrefSelectedTrack:       true,
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	prog, err := s.planner.WeeklyProgress(r.Context())
	if err != nil {
		s.log.Error("computing weekly progress", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.planner.WeekStreak(r.Context())
	if err != nil {
		s.log.Error("computing streak", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"weeks": streak})
}

func (s *Server) handleGetPref(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !knownPrefKeys[key] {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown preference: " + key})
		return
	}
	value, found, err := s.db.GetPref(r.Context(), key)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value, "set": found})
}

func (s *Server) handleSetPref(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !knownPrefKeys[key] {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown preference: " + key})
		return
	}
	var payload struct {
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := s.db.SetPref(r.Context(), key, payload.Value); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOnboarding seeds the routines of the selected training track and
// records the selection.
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Track string `json:"track"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	track, ok := catalog.Track(payload.Track)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown track: " + payload.Track})
		return
	}

	seeds := make([]storage.SeedRoutine, 0, len(track.Routines))
	for _, tr := range track.Routines {
		seeds = append(seeds, storage.SeedRoutine{Name: tr.Name, ExerciseIDs: tr.ExerciseIDs})
	}
	if err := s.db.SeedTrack(r.Context(), track.Key, seeds); err != nil {
		s.log.Error("seeding track", "track", track.Key, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.db.SetPref(r.Context(), storage.PrefSelectedTrack, track.Key); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.db.SetPref(r.Context(), storage.PrefOnboardingCompleted, "true"); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"track": track.Key})
}

func (s *Server) handleBackupExport(w http.ResponseWriter, r *http.Request) {
	backup, err := s.db.Export(r.Context())
	if err != nil {
		s.log.Error("exporting backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="lifttrack-backup.json"`)
	writeJSON(w, http.StatusOK, backup)
}

func (s *Server) handleBackupImport(w http.ResponseWriter, r *http.Request) {
	var backup models.Backup
	if !decodeJSON(w, r, &backup) {
		return
	}
	// A valid backup document carries all three row arrays, even empty.
	if backup.Routines == nil || backup.Workouts == nil || backup.Sets == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid backup: missing routines, workouts or sets"})
		return
	}

	if err := s.db.Import(r.Context(), &backup); err != nil {
		s.log.Error("importing backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"routines": len(backup.Routines),
		"workouts": len(backup.Workouts),
		"sets":     len(backup.Sets),
	})
}
