package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"daily-focus/internal/model"
	"daily-focus/internal/repository"
)

const (
	uncategorizedName  = "Uncategorized"
	uncategorizedColor = "#CCCCCC"
	unknownTaskTitle   = "Unknown"
)

// PieSlice is one category's share of the dashboard range.
type PieSlice struct {
	Name    string `json:"name"`
	Minutes int    `json:"value"`
	Color   string `json:"color"`
}

// DayBar holds one calendar day's minutes split by category.
type DayBar struct {
	Date       string         `json:"date"`
	Categories map[string]int `json:"categories"`
}

// TaskSlice is one task's total over the dashboard range.
type TaskSlice struct {
	Task    string `json:"task"`
	Minutes int    `json:"minutes"`
	Color   string `json:"color"`
}

// DashboardReport aggregates every block fully inside the queried range.
type DashboardReport struct {
	TotalMinutes  int         `json:"total_minutes"`
	PieChart      []PieSlice  `json:"pie_chart"`
	BarChart      []DayBar    `json:"bar_chart"`
	TaskBreakdown []TaskSlice `json:"task_breakdown"`
}

// StreakReport describes daily consistency for a single task.
type StreakReport struct {
	TaskID                uint   `json:"task_id"`
	TaskTitle             string `json:"task_title"`
	CurrentStreakDays     int    `json:"current_streak_days"`
	TotalTimeSpentMinutes int    `json:"total_time_spent_minutes"`
	TrackedDaysCount      int    `json:"tracked_days_count"`
}

// AnalyticsService builds on-demand reports over persisted blocks. Reads are
// plain snapshot reads; nothing here mutates state.
type AnalyticsService struct {
	blockRepo    *repository.BlockRepository
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewAnalyticsService(blockRepo *repository.BlockRepository, taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *AnalyticsService {
	return &AnalyticsService{blockRepo: blockRepo, taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// BuildDashboard aggregates all blocks lying entirely inside [start, end].
// Pie slices keep first-encounter order; bar entries are sorted by date; the
// task breakdown is sorted by minutes descending, title ascending on ties.
func (s *AnalyticsService) BuildDashboard(ctx context.Context, start, end time.Time) (*DashboardReport, error) {
	blocks, err := s.blockRepo.ListFullyWithin(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// One lookup index per aggregation call, instead of chasing relations
	// per block.
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	taskByID := make(map[uint]model.Task, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryByID := make(map[uint]model.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	report := &DashboardReport{
		PieChart:      []PieSlice{},
		BarChart:      []DayBar{},
		TaskBreakdown: []TaskSlice{},
	}
	pieIndex := make(map[string]int)
	taskIndex := make(map[string]int)
	barByDate := make(map[string]map[string]int)

	for _, block := range blocks {
		duration := blockMinutes(block)
		report.TotalMinutes += duration

		title := unknownTaskTitle
		catName := uncategorizedName
		catColor := uncategorizedColor
		if task, ok := taskByID[block.TaskID]; ok {
			title = task.Title
			if task.CategoryID != nil {
				if cat, ok := categoryByID[*task.CategoryID]; ok {
					catName = cat.Name
					catColor = cat.ColorHex
				}
			}
		}

		idx, ok := pieIndex[catName]
		if !ok {
			idx = len(report.PieChart)
			pieIndex[catName] = idx
			report.PieChart = append(report.PieChart, PieSlice{Name: catName, Color: catColor})
		}
		report.PieChart[idx].Minutes += duration

		date := calendarDate(block.StartTime).Format("2006-01-02")
		if barByDate[date] == nil {
			barByDate[date] = make(map[string]int)
		}
		barByDate[date][catName] += duration

		idx, ok = taskIndex[title]
		if !ok {
			idx = len(report.TaskBreakdown)
			taskIndex[title] = idx
			report.TaskBreakdown = append(report.TaskBreakdown, TaskSlice{Task: title, Color: catColor})
		}
		report.TaskBreakdown[idx].Minutes += duration
	}

	dates := make([]string, 0, len(barByDate))
	for date := range barByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		report.BarChart = append(report.BarChart, DayBar{Date: date, Categories: barByDate[date]})
	}

	sort.SliceStable(report.TaskBreakdown, func(i, j int) bool {
		if report.TaskBreakdown[i].Minutes != report.TaskBreakdown[j].Minutes {
			return report.TaskBreakdown[i].Minutes > report.TaskBreakdown[j].Minutes
		}
		return report.TaskBreakdown[i].Task < report.TaskBreakdown[j].Task
	})

	return report, nil
}

// ComputeStreak reports the task's current run of consecutive tracked days,
// walking backward from today (or yesterday, which keeps a streak alive until
// the day is over).
func (s *AnalyticsService) ComputeStreak(ctx context.Context, taskID uint, now time.Time) (*StreakReport, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	blocks, err := s.blockRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	report := &StreakReport{TaskID: task.ID, TaskTitle: task.Title}
	if len(blocks) == 0 {
		return report, nil
	}

	today := calendarDate(now)
	seen := make(map[time.Time]struct{})
	for _, block := range blocks {
		report.TotalTimeSpentMinutes += blockMinutes(block)
		// Future-dated blocks (seed data) never count as tracked days.
		day := calendarDate(block.StartTime)
		if !day.After(today) {
			seen[day] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	report.TrackedDaysCount = len(days)
	report.CurrentStreakDays = streakLength(days, today)
	return report, nil
}

// streakLength walks a descending list of distinct tracked days. The streak is
// dead unless the most recent day is today or yesterday; from there every
// exact-predecessor day extends it and the first gap stops the scan.
func streakLength(daysDesc []time.Time, today time.Time) int {
	if len(daysDesc) == 0 {
		return 0
	}
	if !daysDesc[0].Equal(today) && !daysDesc[0].Equal(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	current := daysDesc[0]
	for _, day := range daysDesc[1:] {
		if !day.Equal(current.AddDate(0, 0, -1)) {
			break
		}
		streak++
		current = day
	}
	return streak
}

// blockMinutes returns the block duration in whole minutes, rounded down.
func blockMinutes(block model.TimeBlock) int {
	return int(block.EndTime.Sub(block.StartTime).Seconds()) / 60
}
