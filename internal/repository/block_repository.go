package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"daily-focus/internal/model"
)

// BlockRepository handles persistence for time blocks.
type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *BlockRepository) WithTx(tx *gorm.DB) *BlockRepository {
	return &BlockRepository{db: tx}
}

// Transaction runs fn inside a single database transaction. Validate-and-commit
// sequences must go through here so concurrent proposals serialize instead of
// racing their overlap checks.
func (r *BlockRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *BlockRepository) Create(ctx context.Context, block *model.TimeBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return fmt.Errorf("create time block: %w", err)
	}
	return nil
}

// ListStartingIn returns blocks whose start time falls in [start, end],
// both bounds inclusive.
func (r *BlockRepository) ListStartingIn(ctx context.Context, start, end time.Time) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	if err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", start, end).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListFullyWithin returns blocks that lie entirely inside [start, end].
// A block partially outside the range is excluded, not clipped.
func (r *BlockRepository) ListFullyWithin(ctx context.Context, start, end time.Time) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	if err := r.db.WithContext(ctx).
		Where("start_time >= ? AND end_time <= ?", start, end).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BlockRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// HasBlockInWindow reports whether the task already has a block starting in
// the half-open window [windowStart, windowEnd).
func (r *BlockRepository) HasBlockInWindow(ctx context.Context, taskID uint, windowStart, windowEnd time.Time) (bool, error) {
	var block model.TimeBlock
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND start_time >= ? AND start_time < ?", taskID, windowStart, windowEnd).
		First(&block).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check daily block: %w", err)
	}
}

// FindOverlapping returns any block, for any task, that overlaps [start, end)
// under half-open semantics, or nil if there is none.
func (r *BlockRepository) FindOverlapping(ctx context.Context, start, end time.Time) (*model.TimeBlock, error) {
	var block model.TimeBlock
	err := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", end, start).
		First(&block).Error
	switch {
	case err == nil:
		return &block, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("check overlap: %w", err)
	}
}

func (r *BlockRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.TimeBlock{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete time block: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInWindow removes the task's blocks starting in [windowStart, windowEnd).
func (r *BlockRepository) DeleteInWindow(ctx context.Context, taskID uint, windowStart, windowEnd time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND start_time >= ? AND start_time < ?", taskID, windowStart, windowEnd).
		Delete(&model.TimeBlock{}).Error; err != nil {
		return fmt.Errorf("delete blocks in window: %w", err)
	}
	return nil
}

func (r *BlockRepository) CountByTask(ctx context.Context, taskID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.TimeBlock{}).
		Where("task_id = ?", taskID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count blocks: %w", err)
	}
	return count, nil
}
