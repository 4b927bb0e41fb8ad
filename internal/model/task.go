package model

import "time"

// Task represents a single trackable item. CategoryID is nullable; a task
// whose category was deleted keeps the dangling id and is reported as
// "Uncategorized".
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	CategoryID  *uint `gorm:"index"`
	Title       string
	IsCompleted bool `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
