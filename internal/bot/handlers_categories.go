package bot

import (
	"fmt"

	"BudgetBot/internal/database"
	dbmodels "BudgetBot/internal/database/models"
	"BudgetBot/internal/validate"
)

func (h *UpdateHandler) startCategoryCreation(chatID int64) {
	h.storage.ClearDialog(chatID)
	h.storage.SetState(chatID, StateCategoryName)
	h.msg.send(chatID, fmt.Sprintf(
		"Введите название категории (от %d до %d символов).",
		validate.MinCategoryNameLen, validate.MaxCategoryNameLen))
}

func (h *UpdateHandler) categoryReceiveName(chatID int64, user *dbmodels.User, text string) {
	name, err := validate.CategoryName(text)
	if err != nil {
		h.msg.send(chatID, "Название не подходит: "+err.Error()+"\nПопробуйте другое.")
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	taken, err := database.CategoryNameTaken(h.db, budget.ID, name)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if taken {
		h.msg.send(chatID, "Категория с таким названием уже есть. Введите другое название.")
		return
	}

	data, _ := h.storage.GetDialogData(chatID)
	data.CategoryName = name
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateCategoryType)

	h.msg.sendWithKeyboard(chatID, "Выберите тип категории", categoryTypeKeyboard())
}

func (h *UpdateHandler) categoryReceiveType(chatID int64, user *dbmodels.User, arg string) {
	categoryType := dbmodels.CategoryType(arg)
	if categoryType != dbmodels.CategoryTypeIncome && categoryType != dbmodels.CategoryTypeExpenses {
		h.msg.sendWithKeyboard(chatID, "Выберите тип кнопкой ниже.", categoryTypeKeyboard())
		return
	}

	data, _ := h.storage.GetDialogData(chatID)
	if data.CategoryName == "" {
		h.startCategoryCreation(chatID)
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	category, err := database.CreateCategory(h.db, budget.ID, data.CategoryName, categoryType)
	if err != nil {
		h.log.Error("create category", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.storage.ClearDialog(chatID)
	h.log.Info("category created", "chat_id", chatID, "category_id", category.ID, "type", categoryType)
	h.msg.sendWithKeyboard(chatID,
		fmt.Sprintf("Категория `%s` (%s) создана.", category.Name, categoryType.Label()),
		categoryMenuKeyboard())
}

// showCategoriesPage показывает страницу списка категорий. При edit=true
// перерисовывает последнее сообщение вместо отправки нового.
func (h *UpdateHandler) showCategoriesPage(chatID int64, user *dbmodels.User, offset int, edit bool) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	total, err := database.CountBudgetCategories(h.db, budget.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if total == 0 {
		h.msg.sendWithKeyboard(chatID, "У Вас пока нет категорий. Создайте первую.", categoryMenuKeyboard())
		return
	}

	if int64(offset) >= total {
		offset = 0
	}

	categories, err := database.GetBudgetCategories(h.db, budget.ID, offset, categoriesPageSize)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	items := make([]listItem, 0, len(categories))
	for i := range categories {
		items = append(items, listItem{ID: categories[i].ID, Label: renderCategoryLabel(&categories[i])})
	}

	text := fmt.Sprintf("🗂 Ваши категории (%d). Нажмите, чтобы выбрать действие.", total)
	keyboard := pagedListKeyboard(cbCategoryItem, cbCategoryPage, items, offset, categoriesPageSize, total)
	if edit {
		h.msg.editLast(chatID, text, keyboard)
	} else {
		h.msg.sendWithKeyboard(chatID, text, keyboard)
	}
}

func (h *UpdateHandler) showCategoryCard(chatID int64, user *dbmodels.User, categoryID uint) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	category, err := database.GetCategoryByID(h.db, budget.ID, categoryID)
	if database.IsNotFound(err) {
		h.msg.send(chatID, "Категория не найдена. Возможно, она была удалена.")
		h.showCategoriesPage(chatID, user, 0, false)
		return
	}
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	entryCount, err := database.CountCategoryEntries(h.db, category.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	h.msg.sendWithKeyboard(chatID, renderCategoryCard(category, entryCount), categoryActionsKeyboard(category.ID))
}

func (h *UpdateHandler) startCategoryRename(chatID int64, categoryID uint) {
	if categoryID == 0 {
		h.msg.SendMainMenu(chatID)
		return
	}

	data, _ := h.storage.GetDialogData(chatID)
	data.CategoryID = categoryID
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateCategoryRename)

	h.msg.send(chatID, fmt.Sprintf(
		"Введите новое название категории (от %d до %d символов).",
		validate.MinCategoryNameLen, validate.MaxCategoryNameLen))
}

func (h *UpdateHandler) categoryReceiveNewName(chatID int64, user *dbmodels.User, text string) {
	name, err := validate.CategoryName(text)
	if err != nil {
		h.msg.send(chatID, "Название не подходит: "+err.Error()+"\nПопробуйте другое.")
		return
	}

	data, _ := h.storage.GetDialogData(chatID)
	if data.CategoryID == 0 {
		h.storage.ClearDialog(chatID)
		h.msg.SendMainMenu(chatID)
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	taken, err := database.CategoryNameTaken(h.db, budget.ID, name)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if taken {
		h.msg.send(chatID, "Категория с таким названием уже есть. Введите другое название.")
		return
	}

	err = database.RenameCategory(h.db, budget.ID, data.CategoryID, name)
	if database.IsNotFound(err) {
		h.storage.ClearDialog(chatID)
		h.msg.send(chatID, "Категория не найдена. Возможно, она была удалена.")
		return
	}
	if err != nil {
		h.log.Error("rename category", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.storage.ClearDialog(chatID)
	h.msg.sendWithKeyboard(chatID, "Название изменено на: "+name, categoryMenuKeyboard())
}

func (h *UpdateHandler) confirmCategoryDelete(chatID int64, user *dbmodels.User, categoryID uint) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	category, err := database.GetCategoryByID(h.db, budget.ID, categoryID)
	if database.IsNotFound(err) {
		h.msg.send(chatID, "Категория не найдена. Возможно, она была удалена.")
		return
	}
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	entryCount, err := database.CountCategoryEntries(h.db, category.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	text := fmt.Sprintf("Удалить категорию `%s`?", category.Name)
	if entryCount > 0 {
		text += fmt.Sprintf("\n⚠️ Вместе с ней удалятся %d %s.",
			entryCount, pluralRu(entryCount, "операция", "операции", "операций"))
	}
	h.msg.sendWithKeyboard(chatID, text, confirmKeyboard(callbackData(cbCategoryDeleteYes, fmt.Sprint(categoryID))))
}

func (h *UpdateHandler) deleteCategory(chatID int64, user *dbmodels.User, categoryID uint) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	err = database.DeleteCategory(h.db, budget.ID, categoryID)
	if database.IsNotFound(err) {
		h.msg.send(chatID, "Категория отсутствует или была удалена ранее.")
		return
	}
	if err != nil {
		h.log.Error("delete category", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.log.Info("category deleted", "chat_id", chatID, "category_id", categoryID)
	h.msg.send(chatID, "Категория удалена.")
	h.showCategoriesPage(chatID, user, 0, false)
}
