package database

import (
	"errors"
	"fmt"

	"BudgetBot/internal/database/models"

	"gorm.io/gorm"
)

var ErrNotFound = gorm.ErrRecordNotFound

// GetUserByTelegramID возвращает пользователя вместе с его бюджетами.
func GetUserByTelegramID(db *gorm.DB, telegramID int64) (*models.User, error) {
	var user models.User
	result := db.Preload("Budgets").Where("telegram_id = ?", telegramID).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func UserExists(db *gorm.DB, telegramID int64) (bool, error) {
	var count int64
	result := db.Model(&models.User{}).Where("telegram_id = ?", telegramID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CreateUser регистрирует пользователя и создает ему бюджет по умолчанию
// с выбранной валютой. Обе записи создаются в одной транзакции.
func CreateUser(db *gorm.DB, telegramID int64, userName, currency string) (*models.User, error) {
	if currency == "" {
		currency = models.DefaultCurrency
	}

	user := &models.User{
		TelegramID: telegramID,
		UserName:   userName,
		IsActive:   true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		budget := &models.Budget{
			Name:     models.MakeBudgetName(user.ID, "default"),
			Currency: currency,
			UserID:   user.ID,
		}
		return tx.Create(budget).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return GetUserByTelegramID(db, telegramID)
}

// SetUserActive включает или выключает аккаунт (мягкое удаление по спецификации:
// данные пользователя сохраняются до повторной активации).
func SetUserActive(db *gorm.DB, telegramID int64, active bool) error {
	result := db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func SetDailyReports(db *gorm.DB, telegramID int64, enabled bool) error {
	result := db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("daily_reports", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSubscribedUsers возвращает активных пользователей с включенной
// ежедневной сводкой.
func GetSubscribedUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	result := db.Preload("Budgets").
		Where("is_active = ? AND daily_reports = ?", true, true).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// CountUsers возвращает количество активных пользователей и записей. Используется
// менеджером поддержки в /stats.
func CountUsers(db *gorm.DB) (users int64, entries int64, err error) {
	if err = db.Model(&models.User{}).Where("is_active = ?", true).Count(&users).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&models.Entry{}).Count(&entries).Error; err != nil {
		return 0, 0, err
	}
	return users, entries, nil
}

// IsNotFound сообщает, что ошибка означает отсутствие записи.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
