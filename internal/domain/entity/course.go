package entity

import "time"

type Course struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string `gorm:"not null"`
	Icon      string
}
