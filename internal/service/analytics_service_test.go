package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var streakToday = time.Date(2026, 2, 20, 0, 0, 0, 0, time.Local)

func daysAgo(n int) time.Time {
	return streakToday.AddDate(0, 0, -n)
}

func TestStreakLength(t *testing.T) {
	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{name: "empty", days: nil, want: 0},
		{name: "logged today", days: []time.Time{daysAgo(0)}, want: 1},
		{name: "logged yesterday keeps streak alive", days: []time.Time{daysAgo(1)}, want: 1},
		{name: "last log two days ago is dead", days: []time.Time{daysAgo(2)}, want: 0},
		{name: "gap stops the walk", days: []time.Time{daysAgo(0), daysAgo(1), daysAgo(3)}, want: 2},
		{name: "five consecutive days", days: []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4)}, want: 5},
		{name: "single day plus old history", days: []time.Time{daysAgo(0), daysAgo(3)}, want: 1},
		{name: "week ending yesterday", days: []time.Time{daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4), daysAgo(5), daysAgo(6), daysAgo(7)}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, streakLength(tt.days, streakToday))
		})
	}
}

func TestComputeStreak(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)
	task := env.mustCreateTask(t, "Morning Workout", nil)

	// Today, yesterday, then a gap before day -3. Future seed data on day +2
	// must not count as a tracked day, only toward total time.
	env.mustCreateBlock(t, task.ID, "2026-02-20T09:00:00", "2026-02-20T10:00:00")
	env.mustCreateBlock(t, task.ID, "2026-02-19T09:00:00", "2026-02-19T09:30:00")
	env.mustCreateBlock(t, task.ID, "2026-02-17T09:00:00", "2026-02-17T10:00:00")
	env.mustCreateBlock(t, task.ID, "2026-02-22T09:00:00", "2026-02-22T10:00:00")

	now := time.Date(2026, 2, 20, 15, 0, 0, 0, time.Local)
	report, err := svc.ComputeStreak(context.Background(), task.ID, now)
	require.NoError(t, err)

	assert.Equal(t, task.ID, report.TaskID)
	assert.Equal(t, "Morning Workout", report.TaskTitle)
	assert.Equal(t, 2, report.CurrentStreakDays)
	assert.Equal(t, 3, report.TrackedDaysCount)
	assert.Equal(t, 60+30+60+60, report.TotalTimeSpentMinutes)
}

func TestComputeStreakNoBlocks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)
	task := env.mustCreateTask(t, "Morning Workout", nil)

	report, err := svc.ComputeStreak(context.Background(), task.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, report.CurrentStreakDays)
	assert.Equal(t, 0, report.TotalTimeSpentMinutes)
	assert.Equal(t, 0, report.TrackedDaysCount)
}

func TestComputeStreakMissingTask(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)

	_, err := svc.ComputeStreak(context.Background(), 42, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildDashboardSingleBlock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)

	work := env.mustCreateCategory(t, "Work", "#ff0000")
	task := env.mustCreateTask(t, "Review PRs", &work.ID)
	env.mustCreateBlock(t, task.ID, "2026-03-01T09:00:00", "2026-03-01T10:00:00")

	report, err := svc.BuildDashboard(context.Background(),
		mustParseTime(t, "2026-03-01T00:00:00"), mustParseTime(t, "2026-03-02T00:00:00"))
	require.NoError(t, err)

	assert.Equal(t, 60, report.TotalMinutes)
	require.Len(t, report.PieChart, 1)
	assert.Equal(t, PieSlice{Name: "Work", Minutes: 60, Color: "#ff0000"}, report.PieChart[0])
	require.Len(t, report.BarChart, 1)
	assert.Equal(t, "2026-03-01", report.BarChart[0].Date)
	assert.Equal(t, map[string]int{"Work": 60}, report.BarChart[0].Categories)
	require.Len(t, report.TaskBreakdown, 1)
	assert.Equal(t, TaskSlice{Task: "Review PRs", Minutes: 60, Color: "#ff0000"}, report.TaskBreakdown[0])
}

func TestBuildDashboardExcludesPartialBlocks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)
	task := env.mustCreateTask(t, "Review PRs", nil)

	// Straddles the range start, so it is excluded entirely, not clipped.
	env.mustCreateBlock(t, task.ID, "2026-02-28T23:30:00", "2026-03-01T00:30:00")
	env.mustCreateBlock(t, task.ID, "2026-03-01T09:00:00", "2026-03-01T10:00:00")

	report, err := svc.BuildDashboard(context.Background(),
		mustParseTime(t, "2026-03-01T00:00:00"), mustParseTime(t, "2026-03-02T00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, 60, report.TotalMinutes)
}

func TestBuildDashboardAggregation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)

	work := env.mustCreateCategory(t, "Work", "#ff0000")
	fitness := env.mustCreateCategory(t, "Fitness", "#22c55e")
	review := env.mustCreateTask(t, "Review PRs", &work.ID)
	blog := env.mustCreateTask(t, "Write blog post", &work.ID)
	workout := env.mustCreateTask(t, "Morning Workout", &fitness.ID)
	errand := env.mustCreateTask(t, "Grocery run", nil)

	env.mustCreateBlock(t, review.ID, "2026-03-01T09:00:00", "2026-03-01T10:00:00")
	env.mustCreateBlock(t, workout.ID, "2026-03-01T11:00:00", "2026-03-01T11:45:00")
	env.mustCreateBlock(t, review.ID, "2026-03-02T09:00:00", "2026-03-02T09:30:00")
	env.mustCreateBlock(t, blog.ID, "2026-03-02T10:00:00", "2026-03-02T12:00:00")
	env.mustCreateBlock(t, errand.ID, "2026-03-02T13:00:00", "2026-03-02T13:20:00")

	report, err := svc.BuildDashboard(context.Background(),
		mustParseTime(t, "2026-03-01T00:00:00"), mustParseTime(t, "2026-03-03T00:00:00"))
	require.NoError(t, err)

	assert.Equal(t, 60+45+30+120+20, report.TotalMinutes)

	// Pie slices keep first-encounter order; tasks without a category land in
	// the synthetic bucket.
	require.Len(t, report.PieChart, 3)
	assert.Equal(t, PieSlice{Name: "Work", Minutes: 210, Color: "#ff0000"}, report.PieChart[0])
	assert.Equal(t, PieSlice{Name: "Fitness", Minutes: 45, Color: "#22c55e"}, report.PieChart[1])
	assert.Equal(t, PieSlice{Name: "Uncategorized", Minutes: 20, Color: "#CCCCCC"}, report.PieChart[2])

	// Bar chart sorted by date ascending, keyed by the block's own calendar day.
	require.Len(t, report.BarChart, 2)
	assert.Equal(t, "2026-03-01", report.BarChart[0].Date)
	assert.Equal(t, map[string]int{"Work": 60, "Fitness": 45}, report.BarChart[0].Categories)
	assert.Equal(t, "2026-03-02", report.BarChart[1].Date)
	assert.Equal(t, map[string]int{"Work": 150, "Uncategorized": 20}, report.BarChart[1].Categories)

	// Task breakdown sorted by minutes descending, title ascending on ties.
	require.Len(t, report.TaskBreakdown, 4)
	assert.Equal(t, "Write blog post", report.TaskBreakdown[0].Task)
	assert.Equal(t, "Review PRs", report.TaskBreakdown[1].Task)
	assert.Equal(t, 90, report.TaskBreakdown[1].Minutes)
	assert.Equal(t, "Morning Workout", report.TaskBreakdown[2].Task)
	assert.Equal(t, "Grocery run", report.TaskBreakdown[3].Task)
}

func TestBuildDashboardDeletedCategoryFallsBack(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)

	work := env.mustCreateCategory(t, "Work", "#ff0000")
	task := env.mustCreateTask(t, "Review PRs", &work.ID)
	env.mustCreateBlock(t, task.ID, "2026-03-01T09:00:00", "2026-03-01T10:00:00")

	categorySvc := NewCategoryService(env.categories)
	require.NoError(t, categorySvc.DeleteCategory(context.Background(), work.ID))

	report, err := svc.BuildDashboard(context.Background(),
		mustParseTime(t, "2026-03-01T00:00:00"), mustParseTime(t, "2026-03-02T00:00:00"))
	require.NoError(t, err)
	require.Len(t, report.PieChart, 1)
	assert.Equal(t, "Uncategorized", report.PieChart[0].Name)
	assert.Equal(t, "#CCCCCC", report.PieChart[0].Color)
}

func TestBuildDashboardEmptyRange(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.blocks, env.tasks, env.categories)

	report, err := svc.BuildDashboard(context.Background(),
		mustParseTime(t, "2026-03-01T00:00:00"), mustParseTime(t, "2026-03-02T00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalMinutes)
	assert.Empty(t, report.PieChart)
	assert.Empty(t, report.BarChart)
	assert.Empty(t, report.TaskBreakdown)
}
