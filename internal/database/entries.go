package database

import (
	"time"

	"BudgetBot/internal/database/models"

	"gorm.io/gorm"
)

// CreateEntry записывает операцию и отмечает категорию как недавно
// использованную.
func CreateEntry(db *gorm.DB, entry *models.Entry) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Category{}).
			Where("id = ?", entry.CategoryID).
			Update("last_used", entry.TransactionDate).Error
	})
}

// GetBudgetEntries возвращает страницу записей бюджета, новые первыми.
func GetBudgetEntries(db *gorm.DB, budgetID uint, offset, limit int) ([]models.Entry, error) {
	query := db.Preload("Category").
		Where("budget_id = ?", budgetID).
		Order("transaction_date DESC, id DESC")

	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var entries []models.Entry
	if result := query.Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func GetEntryByID(db *gorm.DB, budgetID, entryID uint) (*models.Entry, error) {
	var entry models.Entry
	result := db.Preload("Category").
		Where("budget_id = ? AND id = ?", budgetID, entryID).
		First(&entry)
	if result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

func DeleteEntry(db *gorm.DB, budgetID, entryID uint) error {
	result := db.Where("budget_id = ? AND id = ?", budgetID, entryID).Delete(&models.Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func CountCategoryEntries(db *gorm.DB, categoryID uint) (int64, error) {
	var count int64
	result := db.Model(&models.Entry{}).Where("category_id = ?", categoryID).Count(&count)
	return count, result.Error
}

func CountBudgetEntries(db *gorm.DB, budgetID uint) (int64, error) {
	var count int64
	result := db.Model(&models.Entry{}).Where("budget_id = ?", budgetID).Count(&count)
	return count, result.Error
}

// CategoryTotal хранит оборот по одной категории за период.
type CategoryTotal struct {
	CategoryName string
	CategoryType models.CategoryType
	Total        int64
}

// SumByCategory агрегирует суммы записей по категориям за период
// [since, until). Категории без записей в выборку не попадают.
func SumByCategory(db *gorm.DB, budgetID uint, since, until time.Time) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	result := db.Model(&models.Entry{}).
		Select("categories.name AS category_name, categories.type AS category_type, SUM(entries.sum) AS total").
		Joins("JOIN categories ON categories.id = entries.category_id").
		Where("entries.budget_id = ? AND entries.transaction_date >= ? AND entries.transaction_date < ?",
			budgetID, since, until).
		Where("entries.deleted_at IS NULL").
		Group("categories.name, categories.type").
		Order("total ASC").
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}
	return totals, nil
}
