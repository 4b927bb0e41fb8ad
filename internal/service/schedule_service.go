package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"daily-focus/internal/model"
	"daily-focus/internal/repository"
)

// ScheduleService validates and persists time blocks. Two rules hold at all
// times: a task gets at most one block per planner day, and no two blocks
// overlap anywhere on the calendar.
type ScheduleService struct {
	blockRepo   *repository.BlockRepository
	offsetHours int
}

func NewScheduleService(blockRepo *repository.BlockRepository, offsetHours int) *ScheduleService {
	return &ScheduleService{blockRepo: blockRepo, offsetHours: offsetHours}
}

// ProposeBlock checks the proposed interval against current state and persists
// it if both rules pass. The reads and the insert share one transaction so two
// concurrent proposals cannot both pass the overlap check and commit.
func (s *ScheduleService) ProposeBlock(ctx context.Context, taskID uint, start, end time.Time) (*model.TimeBlock, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	block := &model.TimeBlock{TaskID: taskID, StartTime: start, EndTime: end}
	err := s.blockRepo.Transaction(ctx, func(tx *gorm.DB) error {
		blocks := s.blockRepo.WithTx(tx)

		windowStart, windowEnd := EffectiveWindow(EffectiveDate(start, s.offsetHours), s.offsetHours)
		taken, err := blocks.HasBlockInWindow(ctx, taskID, windowStart, windowEnd)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateTaskForDay
		}

		conflict, err := blocks.FindOverlapping(ctx, start, end)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &OverlapError{Start: conflict.StartTime, End: conflict.EndTime}
		}

		return blocks.Create(ctx, block)
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// ListBlocks returns blocks starting in [start, end], both bounds inclusive.
func (s *ScheduleService) ListBlocks(ctx context.Context, start, end time.Time) ([]model.TimeBlock, error) {
	return s.blockRepo.ListStartingIn(ctx, start, end)
}

func (s *ScheduleService) DeleteBlock(ctx context.Context, id uint) error {
	err := s.blockRepo.DeleteByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
