package model

import "time"

// Category groups tasks by area (deep work, fitness, learning, etc.)
// and carries the color used for that slice of the dashboard.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	ColorHex  string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
