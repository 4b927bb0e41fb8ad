package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"daily-focus/internal/model"
	"daily-focus/internal/repository"
)

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	blockRepo   *repository.BlockRepository
	offsetHours int
}

func NewTaskService(taskRepo *repository.TaskRepository, blockRepo *repository.BlockRepository, offsetHours int) *TaskService {
	return &TaskService{taskRepo: taskRepo, blockRepo: blockRepo, offsetHours: offsetHours}
}

func (s *TaskService) CreateTask(ctx context.Context, title string, categoryID *uint) (*model.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	task := model.Task{Title: title, CategoryID: categoryID}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) SetCompletion(ctx context.Context, id uint, completed bool) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	task.IsCompleted = completed
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask clears the task's blocks for the current planner day, then drops
// the task row only if no blocks remain on any date. A task with history
// survives deletion so past analytics stay intact.
func (s *TaskService) DeleteTask(ctx context.Context, id uint, now time.Time) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.taskRepo.Transaction(ctx, func(tx *gorm.DB) error {
		blocks := s.blockRepo.WithTx(tx)
		tasks := s.taskRepo.WithTx(tx)

		windowStart, windowEnd := EffectiveWindow(EffectiveDate(now, s.offsetHours), s.offsetHours)
		if err := blocks.DeleteInWindow(ctx, id, windowStart, windowEnd); err != nil {
			return err
		}

		remaining, err := blocks.CountByTask(ctx, id)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return tasks.Delete(ctx, id)
		}
		return nil
	})
}
