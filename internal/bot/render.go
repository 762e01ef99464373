package bot

import (
	"fmt"

	"BudgetBot/internal/database/models"
)

// pluralRu выбирает русскую форму слова для числительного.
func pluralRu(n int64, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return many
	case n%10 == 1:
		return one
	case n%10 >= 2 && n%10 <= 4:
		return few
	default:
		return many
	}
}

func categoryIcon(categoryType models.CategoryType) string {
	if categoryType == models.CategoryTypeIncome {
		return "💰"
	}
	return "💸"
}

// renderCategoryLabel — подпись категории для кнопки списка.
func renderCategoryLabel(category *models.Category) string {
	return fmt.Sprintf("%s %s", categoryIcon(category.Type), category.Name)
}

// renderCategoryCard — карточка категории в сообщении.
func renderCategoryCard(category *models.Category, entryCount int64) string {
	return fmt.Sprintf("%s %s\nТип: %s\nОпераций: %d",
		categoryIcon(category.Type), category.Name, category.Type.Label(), entryCount)
}

// renderEntryLabel — подпись записи для кнопки списка.
func renderEntryLabel(entry *models.Entry, currency string) string {
	return fmt.Sprintf("%s %s %s · %s",
		entry.TransactionDate.Format("02.01"),
		entry.RenderSum(),
		currency,
		entry.Category.Name,
	)
}

// renderEntryCard — карточка записи в сообщении.
func renderEntryCard(entry *models.Entry, currency string) string {
	text := fmt.Sprintf("%s %s %s\nКатегория: %s\nДата: %s",
		categoryIcon(entry.Category.Type),
		entry.RenderSum(),
		currency,
		entry.Category.Name,
		entry.TransactionDate.Format("02.01.2006 15:04"),
	)
	if entry.Description != "" {
		text += "\nОписание: " + entry.Description
	}
	return text
}

// renderProfile — карточка профиля: валюта, счетчики, подписка на сводку.
func renderProfile(budget *models.Budget, categoryCount, entryCount int64, dailyReports bool) string {
	daily := "выключена"
	if dailyReports {
		daily = "включена"
	}
	return fmt.Sprintf(
		"👤 Ваш профиль\n\n💱 Валюта: %s\n🗂 %d %s\n📜 %d %s\n🔔 Ежедневная сводка: %s",
		budget.Currency,
		categoryCount, pluralRu(categoryCount, "категория", "категории", "категорий"),
		entryCount, pluralRu(entryCount, "операция", "операции", "операций"),
		daily,
	)
}
