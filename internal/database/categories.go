package database

import (
	"time"

	"BudgetBot/internal/database/models"

	"gorm.io/gorm"
)

func CreateCategory(db *gorm.DB, budgetID uint, name string, categoryType models.CategoryType) (*models.Category, error) {
	category := &models.Category{
		BudgetID: budgetID,
		Name:     name,
		Type:     categoryType,
		LastUsed: time.Unix(0, 0).UTC(),
	}

	result := db.Create(category)
	if result.Error != nil {
		return nil, result.Error
	}
	return category, nil
}

// GetBudgetCategories возвращает страницу категорий бюджета, свежесозданные
// первыми. limit <= 0 означает без ограничения.
func GetBudgetCategories(db *gorm.DB, budgetID uint, offset, limit int) ([]models.Category, error) {
	query := db.Where("budget_id = ?", budgetID).
		Order("created_at DESC, id DESC")

	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var categories []models.Category
	if result := query.Find(&categories); result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// GetCategoriesByType возвращает страницу категорий нужного типа, недавно
// использованные первыми — при создании записи привычные категории сверху.
func GetCategoriesByType(db *gorm.DB, budgetID uint, categoryType models.CategoryType, offset, limit int) ([]models.Category, error) {
	query := db.Where("budget_id = ? AND type = ?", budgetID, categoryType).
		Order("last_used DESC, id DESC")

	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var categories []models.Category
	if result := query.Find(&categories); result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func GetCategoryByID(db *gorm.DB, budgetID, categoryID uint) (*models.Category, error) {
	var category models.Category
	result := db.Where("budget_id = ? AND id = ?", budgetID, categoryID).First(&category)
	if result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

func CategoryNameTaken(db *gorm.DB, budgetID uint, name string) (bool, error) {
	var count int64
	result := db.Model(&models.Category{}).
		Where("budget_id = ? AND name = ?", budgetID, name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func RenameCategory(db *gorm.DB, budgetID, categoryID uint, name string) error {
	result := db.Model(&models.Category{}).
		Where("budget_id = ? AND id = ?", budgetID, categoryID).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory удаляет категорию вместе с ее записями.
func DeleteCategory(db *gorm.DB, budgetID, categoryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ? AND category_id = ?", budgetID, categoryID).
			Delete(&models.Entry{}).Error; err != nil {
			return err
		}

		result := tx.Where("budget_id = ? AND id = ?", budgetID, categoryID).
			Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func CountBudgetCategories(db *gorm.DB, budgetID uint) (int64, error) {
	var count int64
	result := db.Model(&models.Category{}).Where("budget_id = ?", budgetID).Count(&count)
	return count, result.Error
}

func CountCategoriesByType(db *gorm.DB, budgetID uint, categoryType models.CategoryType) (int64, error) {
	var count int64
	result := db.Model(&models.Category{}).
		Where("budget_id = ? AND type = ?", budgetID, categoryType).
		Count(&count)
	return count, result.Error
}
