package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"testing"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/planner"
	"github.com/claude/lifttrack/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(t.Context()); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, planner.New(db, log), log)
}

// do runs a request against the full router and decodes the JSON reply
// into out when out is non-nil.
func do(t *testing.T, s *Server, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return rec
}

func createRoutine(t *testing.T, s *Server, name string, exerciseIDs []string) models.Routine {
	t.Helper()
	var routine models.Routine
	rec := do(t, s, http.MethodPost, "/api/v1/routines",
		routinePayload{Name: name, ExerciseIDs: exerciseIDs}, &routine)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating routine: status = %d, body %s", rec.Code, rec.Body)
	}
	return routine
}

type sessionFinishPayload struct {
	Name            *string                  `json:"name"`
	RoutineID       *string                  `json:"routine_id"`
	DurationSeconds *int                     `json:"duration_seconds"`
	Exercises       []models.SessionExercise `json:"exercises"`
}

func intPtr(n int) *int { return &n }

func finishSession(t *testing.T, s *Server, routineID *string, exercises []models.SessionExercise) string {
	t.Helper()
	var out map[string]string
	rec := do(t, s, http.MethodPost, "/api/v1/session/finish", sessionFinishPayload{
		RoutineID:       routineID,
		DurationSeconds: intPtr(1800),
		Exercises:       exercises,
	}, &out)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finishing session: status = %d, body %s", rec.Code, rec.Body)
	}
	return out["workout_id"]
}

func benchSession(weight, reps string) []models.SessionExercise {
	return []models.SessionExercise{{
		ExerciseID:   "bench-press",
		ExerciseName: "Bench Press",
		Sets:         []models.SessionSet{{ID: "s1", Weight: weight, Reps: reps, Completed: true}},
	}}
}

// TestListExercises verifies the static library endpoint.
func TestListExercises(t *testing.T) {
	s := newTestServer(t)
	var exercises []map[string]any
	rec := do(t, s, http.MethodGet, "/api/v1/exercises", nil, &exercises)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(exercises) == 0 {
		t.Fatal("exercise library is empty")
	}
}

// TestRoutineLifecycle verifies create, read, update, duplicate and
// delete through the HTTP surface, including the duplicate read-back
// keeping the source's exercise order.
func TestRoutineLifecycle(t *testing.T) {
	s := newTestServer(t)
	created := createRoutine(t, s, "Push Day", []string{"bench-press", "overhead-press", "tricep-pushdown"})

	var got models.Routine
	if rec := do(t, s, http.MethodGet, "/api/v1/routines/"+created.ID, nil, &got); rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	if got.Name != "Push Day" || len(got.ExerciseIDs) != 3 {
		t.Fatalf("read back %+v", got)
	}

	var updated models.Routine
	rec := do(t, s, http.MethodPut, "/api/v1/routines/"+created.ID,
		routinePayload{Name: "Push Day 2", ExerciseIDs: []string{"bench-press"}}, &updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body)
	}
	if updated.Name != "Push Day 2" || len(updated.ExerciseIDs) != 1 {
		t.Fatalf("after update %+v", updated)
	}

	var dup models.Routine
	rec = do(t, s, http.MethodPost, "/api/v1/routines/"+created.ID+"/duplicate", nil, &dup)
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate: status = %d", rec.Code)
	}
	if dup.ID == created.ID {
		t.Error("duplicate must have a fresh id")
	}
	if dup.Name != "Push Day 2 (Copy)" {
		t.Errorf("duplicate name = %q", dup.Name)
	}
	var dupBack models.Routine
	do(t, s, http.MethodGet, "/api/v1/routines/"+dup.ID, nil, &dupBack)
	if len(dupBack.ExerciseIDs) != 1 || dupBack.ExerciseIDs[0] != "bench-press" {
		t.Errorf("duplicate exercises = %v, want source order", dupBack.ExerciseIDs)
	}

	if rec := do(t, s, http.MethodDelete, "/api/v1/routines/"+created.ID, nil, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/routines/"+created.ID, nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d", rec.Code)
	}
}

// TestRoutineValidation verifies the pre-write checks reject bad
// payloads without touching the store.
func TestRoutineValidation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name    string
		payload routinePayload
	}{
		{"empty name", routinePayload{Name: "  ", ExerciseIDs: []string{"bench-press"}}},
		{"no exercises", routinePayload{Name: "Legs"}},
		{"unknown exercise", routinePayload{Name: "Legs", ExerciseIDs: []string{"nope"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, http.MethodPost, "/api/v1/routines", tt.payload, nil); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}

	var routines []models.Routine
	do(t, s, http.MethodGet, "/api/v1/routines", nil, &routines)
	if len(routines) != 0 {
		t.Errorf("invalid payloads must not create routines, got %d", len(routines))
	}
}

// TestNextRoutineRotation verifies the recommendation walks the
// id-ascending ring through the HTTP surface.
func TestNextRoutineRotation(t *testing.T) {
	s := newTestServer(t)

	// No routines yet: no recommendation.
	rec := do(t, s, http.MethodGet, "/api/v1/routines/next", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "null\n" {
		t.Fatalf("empty store recommendation = %q, want null", body)
	}

	ids := []string{
		createRoutine(t, s, "A", []string{"barbell-squat"}).ID,
		createRoutine(t, s, "B", []string{"bench-press"}).ID,
		createRoutine(t, s, "C", []string{"deadlift"}).ID,
	}
	sort.Strings(ids)

	var next models.Routine
	do(t, s, http.MethodGet, "/api/v1/routines/next", nil, &next)
	if next.ID != ids[0] {
		t.Fatalf("with no history next = %s, want first of ring", next.ID)
	}

	finishSession(t, s, &ids[1], benchSession("80", "5"))
	next = models.Routine{}
	do(t, s, http.MethodGet, "/api/v1/routines/next", nil, &next)
	if next.ID != ids[2] {
		t.Fatalf("after ring[1] next = %s, want ring[2]", next.ID)
	}

	finishSession(t, s, &ids[2], benchSession("85", "5"))
	next = models.Routine{}
	do(t, s, http.MethodGet, "/api/v1/routines/next", nil, &next)
	if next.ID != ids[0] {
		t.Fatalf("after ring[2] next = %s, want wrap to ring[0]", next.ID)
	}
}

// TestSessionBuildPrefill verifies that building a session starts blank,
// and after one finished workout pre-fills from history with completion
// reset.
func TestSessionBuildPrefill(t *testing.T) {
	s := newTestServer(t)
	routine := createRoutine(t, s, "Push", []string{"bench-press"})

	var built struct {
		Exercises []models.SessionExercise `json:"exercises"`
	}
	do(t, s, http.MethodPost, "/api/v1/session/build", map[string]any{"routine_id": routine.ID}, &built)
	if len(built.Exercises) != 1 || len(built.Exercises[0].Sets) != 1 {
		t.Fatalf("fresh session = %+v, want one blank set", built.Exercises)
	}
	if built.Exercises[0].Sets[0].Weight != "" {
		t.Fatal("fresh session set should be blank")
	}

	finishSession(t, s, &routine.ID, []models.SessionExercise{{
		ExerciseID: "bench-press",
		Sets: []models.SessionSet{
			{ID: "s1", Weight: "80", Reps: "5", Completed: true},
			{ID: "s2", Weight: "85", Reps: "3", Completed: true},
		},
	}})

	built.Exercises = nil
	do(t, s, http.MethodPost, "/api/v1/session/build", map[string]any{"routine_id": routine.ID}, &built)
	sets := built.Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("prefilled session has %d sets, want 2", len(sets))
	}
	if sets[0].Weight != "80" || sets[1].Weight != "85" {
		t.Errorf("prefill weights = %q, %q", sets[0].Weight, sets[1].Weight)
	}
	for i, set := range sets {
		if set.Completed {
			t.Errorf("prefilled set %d must not be completed", i)
		}
	}
}

// TestRoutineDurationUnmeasuredFinish verifies that finishing a session
// without a measured duration leaves the per-exercise heuristic intact
// instead of pulling the estimate toward zero.
func TestRoutineDurationUnmeasuredFinish(t *testing.T) {
	s := newTestServer(t)
	routine := createRoutine(t, s, "Push Day", []string{"bench-press", "overhead-press", "push-up"})

	var out map[string]string
	rec := do(t, s, http.MethodPost, "/api/v1/session/finish", sessionFinishPayload{
		RoutineID: &routine.ID,
		Exercises: benchSession("80", "5"),
	}, &out)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finishing session: status = %d, body %s", rec.Code, rec.Body)
	}

	var workout map[string]any
	do(t, s, http.MethodGet, "/api/v1/workouts/"+out["workout_id"], nil, &workout)
	if workout["duration_seconds"] != nil {
		t.Errorf("unmeasured duration = %v, want null", workout["duration_seconds"])
	}

	var est map[string]int
	rec = do(t, s, http.MethodGet, "/api/v1/routines/"+routine.ID+"/duration", nil, &est)
	if rec.Code != http.StatusOK {
		t.Fatalf("duration: status = %d", rec.Code)
	}
	if est["estimated_seconds"] != 900 {
		t.Errorf("estimate = %d, want 900", est["estimated_seconds"])
	}
}

// TestWorkoutEditing verifies rename, date change, set editing and the
// cascading delete through the HTTP surface.
func TestWorkoutEditing(t *testing.T) {
	s := newTestServer(t)
	id := finishSession(t, s, nil, benchSession("80", "5"))

	var detail storage.WorkoutDetail
	do(t, s, http.MethodGet, "/api/v1/workouts/"+id, nil, &detail)
	if len(detail.Sets) != 1 || detail.RoutineID != nil {
		t.Fatalf("freestyle workout detail %+v", detail)
	}

	rec := do(t, s, http.MethodPatch, "/api/v1/workouts/"+id,
		map[string]any{"name": "Morning Push", "date": "2026-08-20"}, &detail)
	if rec.Code != http.StatusOK {
		t.Fatalf("update workout: status = %d, body %s", rec.Code, rec.Body)
	}
	if detail.Name == nil || *detail.Name != "Morning Push" || detail.Date != "2026-08-20" {
		t.Fatalf("after edit %+v", detail)
	}

	rec = do(t, s, http.MethodPatch, "/api/v1/workouts/"+id,
		map[string]any{"date": "yesterday-ish"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status = %d", rec.Code)
	}

	var added models.SetRow
	rec = do(t, s, http.MethodPost, "/api/v1/workouts/"+id+"/sets",
		map[string]any{"exercise_id": "bench-press", "weight": "90", "reps": "junk", "completed": true}, &added)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add set: status = %d", rec.Code)
	}
	if added.Weight == nil || *added.Weight != 90 || added.Reps != nil {
		t.Fatalf("added set %+v, want weight 90 and null reps", added)
	}

	rec = do(t, s, http.MethodPatch, "/api/v1/sets/"+added.ID,
		map[string]any{"weight": "95", "reps": "2", "completed": false}, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update set: status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPatch, "/api/v1/sets/no-such-set",
		map[string]any{"weight": "1", "reps": "1"}, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("update missing set: status = %d", rec.Code)
	}

	if rec := do(t, s, http.MethodDelete, "/api/v1/sets/"+added.ID, nil, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete set: status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/v1/sets/"+added.ID, nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing set: status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/v1/workouts/"+id, nil, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete workout: status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/workouts/"+id, nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d", rec.Code)
	}
}

// TestOnboarding verifies track seeding and the recorded preferences.
func TestOnboarding(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/onboarding", map[string]string{"track": "PPL"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("onboarding: status = %d, body %s", rec.Code, rec.Body)
	}

	var routines []models.Routine
	do(t, s, http.MethodGet, "/api/v1/routines", nil, &routines)
	if len(routines) != 3 {
		t.Fatalf("PPL should seed 3 routines, got %d", len(routines))
	}
	for _, r := range routines {
		if r.Track == nil || *r.Track != "PPL" {
			t.Errorf("routine %q track = %v, want PPL", r.Name, r.Track)
		}
	}

	var pref map[string]any
	do(t, s, http.MethodGet, "/api/v1/prefs/onboarding_completed", nil, &pref)
	if pref["value"] != "true" || pref["set"] != true {
		t.Errorf("onboarding_completed pref = %v", pref)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/onboarding", map[string]string{"track": "NOPE"}, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown track: status = %d", rec.Code)
	}
}

// TestPrefs verifies the preference round trip and the unknown-key guard.
func TestPrefs(t *testing.T) {
	s := newTestServer(t)

	var pref map[string]any
	do(t, s, http.MethodGet, "/api/v1/prefs/weekly_workout_goal", nil, &pref)
	if pref["set"] != false {
		t.Errorf("unset pref reported as set: %v", pref)
	}

	if rec := do(t, s, http.MethodPut, "/api/v1/prefs/weekly_workout_goal",
		map[string]string{"value": "4"}, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("set pref: status = %d", rec.Code)
	}
	do(t, s, http.MethodGet, "/api/v1/prefs/weekly_workout_goal", nil, &pref)
	if pref["value"] != "4" || pref["set"] != true {
		t.Errorf("pref after write = %v", pref)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/prefs/favourite_color", nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown pref key: status = %d", rec.Code)
	}
}

// TestWeeklyStats verifies the dashboard counters after finished
// sessions.
func TestWeeklyStats(t *testing.T) {
	s := newTestServer(t)
	finishSession(t, s, nil, benchSession("80", "5"))

	var prog planner.WeekProgress
	do(t, s, http.MethodGet, "/api/v1/stats/weekly", nil, &prog)
	if prog.Completed != 1 {
		t.Errorf("completed = %d, want 1", prog.Completed)
	}

	var streak map[string]int
	do(t, s, http.MethodGet, "/api/v1/stats/streak", nil, &streak)
	if streak["weeks"] != 1 {
		t.Errorf("streak = %d, want 1", streak["weeks"])
	}
}

// TestBackupRoundTrip verifies export, wipe via import of the exported
// document, and identical read-back.
func TestBackupRoundTrip(t *testing.T) {
	s := newTestServer(t)
	routine := createRoutine(t, s, "Push", []string{"bench-press", "overhead-press"})
	finishSession(t, s, &routine.ID, benchSession("80", "5"))

	var exported models.Backup
	if rec := do(t, s, http.MethodGet, "/api/v1/backup/export", nil, &exported); rec.Code != http.StatusOK {
		t.Fatalf("export: status = %d", rec.Code)
	}
	if len(exported.Routines) != 1 || len(exported.RoutineExercises) != 2 ||
		len(exported.Workouts) != 1 || len(exported.Sets) != 1 {
		t.Fatalf("export counts: %d routines, %d links, %d workouts, %d sets",
			len(exported.Routines), len(exported.RoutineExercises), len(exported.Workouts), len(exported.Sets))
	}

	// Pile on extra data, then restore the snapshot over it.
	createRoutine(t, s, "Scratch", []string{"deadlift"})
	finishSession(t, s, nil, benchSession("100", "3"))

	if rec := do(t, s, http.MethodPost, "/api/v1/backup/import", exported, nil); rec.Code != http.StatusOK {
		t.Fatalf("import: status = %d", rec.Code)
	}

	var after models.Backup
	do(t, s, http.MethodGet, "/api/v1/backup/export", nil, &after)
	if len(after.Routines) != 1 || after.Routines[0].ID != routine.ID {
		t.Fatalf("after import routines = %+v", after.Routines)
	}
	if len(after.Workouts) != 1 || len(after.Sets) != 1 || len(after.RoutineExercises) != 2 {
		t.Fatalf("after import counts: %d workouts, %d sets, %d links",
			len(after.Workouts), len(after.Sets), len(after.RoutineExercises))
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/backup/import",
		map[string]any{"version": 1, "routines": []any{}}, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("incomplete backup: status = %d", rec.Code)
	}
}
