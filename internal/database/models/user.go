package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID   int64  `gorm:"uniqueIndex;not null"`
	UserName     string `gorm:"size:255"`
	IsActive     bool   `gorm:"default:true"`
	DailyReports bool   `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Budgets []Budget `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
