package entity

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID           int64 `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Login        string `gorm:"not null;uniqueIndex"`
	Email        string
	LangKey      string
	ImageURL     string
	DeviceTokens pq.StringArray `gorm:"type:text[]"`
}
