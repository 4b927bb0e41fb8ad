package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
)

const digestTaskLimit = 5

// ReportService builds the human-readable daily digest sent over Telegram.
type ReportService struct {
	analytics   *AnalyticsService
	offsetHours int
}

func NewReportService(analytics *AnalyticsService, offsetHours int) *ReportService {
	return &ReportService{analytics: analytics, offsetHours: offsetHours}
}

// DailyDigest summarizes the current planner day: total focus time, minutes
// per category, and the top tasks.
func (s *ReportService) DailyDigest(ctx context.Context, now time.Time) (string, error) {
	day := EffectiveDate(now, s.offsetHours)
	windowStart, windowEnd := EffectiveWindow(day, s.offsetHours)
	// ListFullyWithin treats both bounds as inclusive; back off one second so
	// a block ending exactly at the next rollover is not pulled in.
	report, err := s.analytics.BuildDashboard(ctx, windowStart, windowEnd.Add(-time.Second))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("🎯 <b>Daily focus digest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", day.Format("02.01.2006")))

	if report.TotalMinutes == 0 {
		builder.WriteString("No blocks logged today.")
		return builder.String(), nil
	}

	builder.WriteString(fmt.Sprintf("⏱ Total: <b>%s</b>\n\n", formatMinutes(report.TotalMinutes)))

	builder.WriteString("📂 <b>By category</b>\n")
	for _, slice := range report.PieChart {
		builder.WriteString(fmt.Sprintf("• %s — %s\n", html.EscapeString(slice.Name), formatMinutes(slice.Minutes)))
	}

	builder.WriteString("\n🏆 <b>Top tasks</b>\n")
	for i, task := range report.TaskBreakdown {
		if i == digestTaskLimit {
			break
		}
		builder.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, html.EscapeString(task.Task), formatMinutes(task.Minutes)))
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
