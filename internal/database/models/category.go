package models

import (
	"time"

	"gorm.io/gorm"
)

type CategoryType string

const (
	CategoryTypeIncome   CategoryType = "income"
	CategoryTypeExpenses CategoryType = "expenses"
)

// Label возвращает человекочитаемое название типа.
func (t CategoryType) Label() string {
	if t == CategoryTypeIncome {
		return "Доходы"
	}
	return "Расходы"
}

type Category struct {
	gorm.Model
	Name      string       `gorm:"size:128;not null;uniqueIndex:idx_category_budget_name"`
	Type      CategoryType `gorm:"size:16;not null;check:type IN ('income','expenses')"`
	LastUsed  time.Time
	BudgetID  uint         `gorm:"not null;index;uniqueIndex:idx_category_budget_name"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Entries []Entry `gorm:"foreignKey:CategoryID"`
}
