package database

import (
	"BudgetBot/internal/database/models"

	"gorm.io/gorm"
)

// DefaultBudget возвращает бюджет пользователя, созданный при регистрации.
// Он хранит активную валюту пользователя.
func DefaultBudget(db *gorm.DB, userID uint) (*models.Budget, error) {
	var budget models.Budget
	result := db.Where("user_id = ?", userID).Order("id ASC").First(&budget)
	if result.Error != nil {
		return nil, result.Error
	}
	return &budget, nil
}

func GetUserBudgets(db *gorm.DB, userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	result := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&budgets)
	if result.Error != nil {
		return nil, result.Error
	}
	return budgets, nil
}

// UpdateBudgetCurrency меняет активную валюту бюджета.
func UpdateBudgetCurrency(db *gorm.DB, budgetID uint, currency string) error {
	result := db.Model(&models.Budget{}).
		Where("id = ?", budgetID).
		Update("currency", currency)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
