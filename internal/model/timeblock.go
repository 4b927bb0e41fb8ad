package model

import "time"

// TimeBlock is a logged interval of work attributed to one task.
// Times are naive wall-clock values; EndTime is strictly after StartTime.
type TimeBlock struct {
	ID        uint      `gorm:"primaryKey"`
	TaskID    uint      `gorm:"index"`
	StartTime time.Time `gorm:"index"`
	EndTime   time.Time
}
