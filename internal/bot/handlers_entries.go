package bot

import (
	"fmt"
	"time"

	"BudgetBot/internal/database"
	dbmodels "BudgetBot/internal/database/models"
	"BudgetBot/internal/reports"
	"BudgetBot/internal/validate"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *UpdateHandler) startEntryCreation(chatID int64, categoryType dbmodels.CategoryType) {
	if categoryType != dbmodels.CategoryTypeIncome && categoryType != dbmodels.CategoryTypeExpenses {
		h.msg.SendMainMenu(chatID)
		return
	}

	user, err := h.currentUser(chatID)
	if err != nil || user == nil {
		h.msg.sendError(chatID)
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	count, err := database.CountCategoriesByType(h.db, budget.ID, categoryType)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if count == 0 {
		h.msg.sendWithKeyboard(chatID,
			fmt.Sprintf("Сначала создайте хотя бы одну категорию типа «%s».", categoryType.Label()),
			categoryMenuKeyboard())
		return
	}

	h.storage.ClearDialog(chatID)
	data, _ := h.storage.GetDialogData(chatID)
	data.CategoryType = string(categoryType)
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateEntrySum)

	verb := "расхода"
	if categoryType == dbmodels.CategoryTypeIncome {
		verb = "дохода"
	}
	h.msg.send(chatID, fmt.Sprintf("Введите сумму %s, например 450 или 123.45", verb))
}

func (h *UpdateHandler) entryReceiveSum(chatID int64, user *dbmodels.User, text string) {
	sum, err := validate.EntrySum(text)
	if err != nil {
		h.msg.send(chatID, "Сумма не подходит: "+err.Error()+"\nПопробуйте снова.")
		return
	}

	data, _ := h.storage.GetDialogData(chatID)
	data.EntrySum = sum
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateEntryCategory)

	h.showEntryCategoriesPage(chatID, user, 0, false)
}

// showEntryCategoriesPage показывает категории нужного типа для выбора,
// недавно использованные первыми.
func (h *UpdateHandler) showEntryCategoriesPage(chatID int64, user *dbmodels.User, offset int, edit bool) {
	data, _ := h.storage.GetDialogData(chatID)
	categoryType := dbmodels.CategoryType(data.CategoryType)
	if categoryType == "" {
		h.msg.SendMainMenu(chatID)
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	total, err := database.CountCategoriesByType(h.db, budget.ID, categoryType)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if int64(offset) >= total {
		offset = 0
	}

	categories, err := database.GetCategoriesByType(h.db, budget.ID, categoryType, offset, categoriesPageSize)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	items := make([]listItem, 0, len(categories))
	for i := range categories {
		items = append(items, listItem{ID: categories[i].ID, Label: renderCategoryLabel(&categories[i])})
	}

	text := "Выберите категорию"
	keyboard := pagedListKeyboard(cbEntryCategory, cbEntryCatPage, items, offset, categoriesPageSize, total)
	if edit {
		h.msg.editLast(chatID, text, keyboard)
	} else {
		h.msg.sendWithKeyboard(chatID, text, keyboard)
	}
}

func (h *UpdateHandler) entryPickCategory(chatID int64, user *dbmodels.User, categoryID uint) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	if _, err := database.GetCategoryByID(h.db, budget.ID, categoryID); err != nil {
		if database.IsNotFound(err) {
			h.msg.send(chatID, "Выбрана несуществующая категория. Выберите из списка ниже.")
			h.showEntryCategoriesPage(chatID, user, 0, false)
			return
		}
		h.msg.sendError(chatID)
		return
	}

	data, _ := h.storage.GetDialogData(chatID)
	data.CategoryID = categoryID
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateEntryDate)

	h.msg.sendWithKeyboard(chatID,
		"Дата операции: нажмите «Сейчас» или отправьте дату в формате ГГГГ-ММ-ДД или ГГГГ-ММ-ДД ЧЧ:ММ.\n"+
			"Точка `.` тоже означает «сейчас».",
		entryDateKeyboard())
}

func (h *UpdateHandler) entryPickDateNow(chatID int64, user *dbmodels.User, message *tgbotapi.Message) {
	if state, _ := h.storage.GetState(chatID); state != StateEntryDate {
		h.msg.SendMainMenu(chatID)
		return
	}
	h.entrySetDate(chatID, time.Now().In(h.tz))
}

func (h *UpdateHandler) entryReceiveDate(chatID int64, user *dbmodels.User, message *tgbotapi.Message, text string) {
	if text == "." {
		h.entrySetDate(chatID, message.Time().In(h.tz))
		return
	}

	date, err := validate.EntryDate(text, h.tz)
	if err != nil {
		h.msg.sendWithKeyboard(chatID, "Дата не подходит: "+err.Error(), entryDateKeyboard())
		return
	}
	h.entrySetDate(chatID, date)
}

func (h *UpdateHandler) entrySetDate(chatID int64, date time.Time) {
	data, _ := h.storage.GetDialogData(chatID)
	data.EntryDate = date
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateEntryDescription)

	h.msg.sendWithKeyboard(chatID,
		"Добавьте описание операции или пропустите этот шаг. Точка `.` — без описания.",
		entryDescriptionKeyboard())
}

func (h *UpdateHandler) entryReceiveDescription(chatID int64, user *dbmodels.User, text string) {
	if state, _ := h.storage.GetState(chatID); state != StateEntryDescription {
		h.msg.SendMainMenu(chatID)
		return
	}

	description := ""
	if text != "." {
		description = validate.SanitizeText(text)
		if len(description) > 255 {
			h.msg.send(chatID, "Описание длиннее 255 символов, сократите его.")
			return
		}
	}

	h.finishEntry(chatID, user, description)
}

func (h *UpdateHandler) finishEntry(chatID int64, user *dbmodels.User, description string) {
	data, _ := h.storage.GetDialogData(chatID)
	if data.EntrySum == 0 || data.CategoryID == 0 {
		h.storage.ClearDialog(chatID)
		h.msg.SendMainMenu(chatID)
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	// расход хранится отрицательным, доход положительным
	sum := data.EntrySum
	if dbmodels.CategoryType(data.CategoryType) == dbmodels.CategoryTypeExpenses {
		sum = -sum
	}

	date := data.EntryDate
	if date.IsZero() {
		date = time.Now().In(h.tz)
	}

	entry := &dbmodels.Entry{
		Sum:             sum,
		Description:     description,
		TransactionDate: date,
		BudgetID:        budget.ID,
		CategoryID:      data.CategoryID,
	}
	if err := database.CreateEntry(h.db, entry); err != nil {
		h.log.Error("create entry", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	category, err := database.GetCategoryByID(h.db, budget.ID, data.CategoryID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	h.storage.ClearDialog(chatID)
	h.log.Info("entry created", "chat_id", chatID, "entry_id", entry.ID, "sum", sum)
	h.msg.sendWithKeyboard(chatID,
		fmt.Sprintf("Записано: %s %s, категория `%s`.", entry.RenderSum(), budget.Currency, category.Name),
		mainMenuKeyboard())
}

// --- список операций ---

func (h *UpdateHandler) showEntriesPage(chatID int64, user *dbmodels.User, offset int, edit bool) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	total, err := database.CountBudgetEntries(h.db, budget.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if total == 0 {
		h.msg.sendWithKeyboard(chatID, "Операций пока нет. Запишите первый расход или доход.", mainMenuKeyboard())
		return
	}
	if int64(offset) >= total {
		offset = 0
	}

	entries, err := database.GetBudgetEntries(h.db, budget.ID, offset, entriesPageSize)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	items := make([]listItem, 0, len(entries))
	for i := range entries {
		items = append(items, listItem{ID: entries[i].ID, Label: renderEntryLabel(&entries[i], budget.Currency)})
	}

	text := fmt.Sprintf("📜 Операции (%d), новые сверху. Нажмите, чтобы открыть.", total)
	keyboard := pagedListKeyboard(cbEntryItem, cbEntriesPage, items, offset, entriesPageSize, total)
	if edit {
		h.msg.editLast(chatID, text, keyboard)
	} else {
		h.msg.sendWithKeyboard(chatID, text, keyboard)
	}
}

func (h *UpdateHandler) showEntryCard(chatID int64, user *dbmodels.User, entryID uint) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	entry, err := database.GetEntryByID(h.db, budget.ID, entryID)
	if database.IsNotFound(err) {
		h.msg.send(chatID, "Запись не найдена. Возможно, она была удалена.")
		h.showEntriesPage(chatID, user, 0, false)
		return
	}
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	h.msg.sendWithKeyboard(chatID, renderEntryCard(entry, budget.Currency), entryActionsKeyboard(entry.ID))
}

func (h *UpdateHandler) confirmEntryDelete(chatID int64, entryID uint) {
	if entryID == 0 {
		h.msg.SendMainMenu(chatID)
		return
	}
	h.msg.sendWithKeyboard(chatID, "Удалить запись?",
		confirmKeyboard(callbackData(cbEntryDeleteYes, fmt.Sprint(entryID))))
}

func (h *UpdateHandler) deleteEntry(chatID int64, user *dbmodels.User, entryID uint) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	err = database.DeleteEntry(h.db, budget.ID, entryID)
	if database.IsNotFound(err) {
		h.msg.send(chatID, "Запись отсутствует или была удалена ранее.")
		return
	}
	if err != nil {
		h.log.Error("delete entry", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.log.Info("entry deleted", "chat_id", chatID, "entry_id", entryID)
	h.msg.send(chatID, "Запись удалена.")
	h.showEntriesPage(chatID, user, 0, false)
}

// --- отчеты ---

func (h *UpdateHandler) handleReport(chatID int64, user *dbmodels.User, arg string) {
	if arg == "" {
		h.msg.sendWithKeyboard(chatID, "Выберите период отчета", reportPeriodKeyboard())
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}

	report, err := h.msg.reports.Build(budget, reports.Period(arg), time.Now().In(h.tz))
	if err != nil {
		h.log.Error("build report", "chat_id", chatID, "period", arg, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.msg.editLast(chatID, report.Format(), reportPeriodKeyboard())
}
