package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const DefaultCurrency = "RUB"

type Budget struct {
	gorm.Model
	// Имя хранится с префиксом "user_<id>:", наружу отдается без него.
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	Currency  string `gorm:"size:10;default:RUB"`
	UserID    uint   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Categories []Category `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE"`
	Entries    []Entry    `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE"`
}

// MakeBudgetName строит уникальное имя бюджета в рамках пользователя.
func MakeBudgetName(userID uint, name string) string {
	return fmt.Sprintf("user_%d:%s", userID, name)
}

// PublicName возвращает имя бюджета без служебного префикса.
func (b *Budget) PublicName() string {
	if i := strings.LastIndex(b.Name, ":"); i >= 0 {
		return b.Name[i+1:]
	}
	return b.Name
}
