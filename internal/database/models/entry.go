package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Entry хранит сумму в минорных единицах валюты (копейки, центы):
// значение умножается на 100 при записи и делится на 100 при отображении.
// Расходы хранятся отрицательными, доходы положительными.
type Entry struct {
	gorm.Model
	Sum             int64     `gorm:"not null;check:sum <> 0"`
	Description     string    `gorm:"size:255"`
	TransactionDate time.Time `gorm:"index;not null"`
	BudgetID        uint      `gorm:"not null;index"`
	CategoryID      uint      `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category Category `gorm:"foreignKey:CategoryID"`
}

// RenderSum форматирует сумму в основных единицах с двумя знаками.
func (e *Entry) RenderSum() string {
	return FormatMinorUnits(e.Sum)
}

// FormatMinorUnits переводит минорные единицы в строку вида "-123.45".
func FormatMinorUnits(sum int64) string {
	sign := ""
	if sum < 0 {
		sign = "-"
		sum = -sum
	}
	return fmt.Sprintf("%s%d.%02d", sign, sum/100, sum%100)
}
