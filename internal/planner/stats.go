package planner

import (
	"context"
	"strconv"
	"time"

	"github.com/claude/lifttrack/internal/models"
	"github.com/claude/lifttrack/internal/storage"
)

// defaultWeeklyGoal applies when the user has not set a weekly workout
// goal preference.
const defaultWeeklyGoal = 3

// WeekProgress summarizes the current training week, Monday through
// Sunday in local time.
type WeekProgress struct {
	Goal      int     `json:"goal"`
	Completed int     `json:"completed"`
	Days      [7]bool `json:"days"`
}

// WeeklyProgress counts this week's workouts against the weekly goal
// preference and flags each trained day. Malformed workout dates are
// skipped rather than failing the dashboard.
func (p *Planner) WeeklyProgress(ctx context.Context) (WeekProgress, error) {
	prog := WeekProgress{Goal: defaultWeeklyGoal}
	if raw, ok, err := p.store.GetPref(ctx, storage.PrefWeeklyGoal); err != nil {
		p.log.Warn("weekly goal lookup failed, using default", "error", err)
	} else if ok {
		if goal, err := strconv.Atoi(raw); err == nil && goal > 0 {
			prog.Goal = goal
		}
	}

	dates, err := p.store.WorkoutDates(ctx)
	if err != nil {
		return prog, err
	}

	weekStart := startOfWeek(time.Now())
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, raw := range dates {
		d, err := models.NormalizeDate(raw)
		if err != nil {
			p.log.Warn("skipping workout with malformed date", "date", raw)
			continue
		}
		if d.Before(weekStart) || !d.Before(weekEnd) {
			continue
		}
		prog.Completed++
		prog.Days[mondayIndex(d)] = true
	}
	return prog, nil
}

// WeekStreak counts consecutive weeks with at least one workout, walking
// backwards from the current week. A current week with no workouts yet
// does not break a streak that ran through last week.
func (p *Planner) WeekStreak(ctx context.Context) (int, error) {
	dates, err := p.store.WorkoutDates(ctx)
	if err != nil {
		return 0, err
	}

	trained := make(map[string]bool)
	for _, raw := range dates {
		d, err := models.NormalizeDate(raw)
		if err != nil {
			continue
		}
		trained[weekKey(startOfWeek(d))] = true
	}
	if len(trained) == 0 {
		return 0, nil
	}

	cursor := startOfWeek(time.Now())
	if !trained[weekKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -7)
	}
	streak := 0
	for trained[weekKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -7)
	}
	return streak, nil
}

// startOfWeek returns local midnight on the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	t = t.Local()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -mondayIndex(t))
}

// mondayIndex maps a weekday to 0..6 with Monday first.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func weekKey(weekStart time.Time) string {
	return weekStart.Format("2006-01-02")
}
