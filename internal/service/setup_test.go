package service

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"daily-focus/internal/model"
	"daily-focus/internal/repository"
)

func mustParseTime(t *testing.T, raw string) time.Time {
	t.Helper()
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts
		}
	}
	t.Fatalf("parse time %q", raw)
	return time.Time{}
}

const testOffsetHours = 4

type testEnv struct {
	db         *gorm.DB
	categories *repository.CategoryRepository
	tasks      *repository.TaskRepository
	blocks     *repository.BlockRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testEnv{
		db:         db,
		categories: repository.NewCategoryRepository(db),
		tasks:      repository.NewTaskRepository(db),
		blocks:     repository.NewBlockRepository(db),
	}
}

func (e *testEnv) mustCreateCategory(t *testing.T, name, color string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, ColorHex: color}
	if err := e.db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func (e *testEnv) mustCreateTask(t *testing.T, title string, categoryID *uint) *model.Task {
	t.Helper()
	task := &model.Task{Title: title, CategoryID: categoryID}
	if err := e.db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func (e *testEnv) mustCreateBlock(t *testing.T, taskID uint, start, end string) *model.TimeBlock {
	t.Helper()
	block := &model.TimeBlock{TaskID: taskID, StartTime: mustParseTime(t, start), EndTime: mustParseTime(t, end)}
	if err := e.db.Create(block).Error; err != nil {
		t.Fatalf("create block: %v", err)
	}
	return block
}
