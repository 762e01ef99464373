package bot

import (
	"fmt"
	"strconv"
	"strings"

	"BudgetBot/internal/database/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Префиксы callback-данных. Аргумент отделяется двоеточием: "category_item:42".
const (
	cbSignup         = "signup"
	cbSignupCurrency = "signup_currency"
	cbSignupFinish   = "signup_finish"
	cbActivate       = "activate"
	cbDeactivate     = "deactivate"
	cbDeactivateYes  = "deactivate_confirm"

	cbMainMenu = "main_menu"
	cbCancel   = "cancel"

	cbProfile        = "profile"
	cbChangeCurrency = "change_currency"
	cbToggleDaily    = "toggle_daily"

	cbCategoryMenu      = "category_menu"
	cbCategoryCreate    = "category_create"
	cbCategoryType      = "category_type"
	cbCategoryPage      = "category_page"
	cbCategoryItem      = "category_item"
	cbCategoryRename    = "category_rename"
	cbCategoryDelete    = "category_delete"
	cbCategoryDeleteYes = "category_delete_confirm"

	cbEntryNew       = "entry_new"
	cbEntryCategory  = "entry_category"
	cbEntryCatPage   = "entry_category_page"
	cbEntriesPage    = "entries_page"
	cbEntryItem      = "entry_item"
	cbEntryDelete    = "entry_delete"
	cbEntryDeleteYes = "entry_delete_confirm"
	cbEntryDateNow   = "entry_date_now"
	cbEntrySkipDesc  = "entry_skip_description"

	cbReport = "report"
)

const categoriesPageSize = 5
const entriesPageSize = 10

// callbackData склеивает префикс с аргументом.
func callbackData(prefix string, arg string) string {
	return prefix + ":" + arg
}

// splitCallback возвращает префикс и аргумент callback-данных.
func splitCallback(data string) (prefix, arg string) {
	prefix, arg, _ = strings.Cut(data, ":")
	return prefix, arg
}

// parseID разбирает идентификатор из аргумента callback-данных.
// Ноль означает испорченные данные, обработчики отвечают на него отказом.
func parseID(arg string) uint {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func parseOffset(arg string) int {
	offset, err := strconv.Atoi(arg)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Новый расход", callbackData(cbEntryNew, string(models.CategoryTypeExpenses))),
			tgbotapi.NewInlineKeyboardButtonData("💰 Новый доход", callbackData(cbEntryNew, string(models.CategoryTypeIncome))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 Категории", cbCategoryMenu),
			tgbotapi.NewInlineKeyboardButtonData("📜 Операции", callbackData(cbEntriesPage, "0")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Отчет", cbReport),
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", cbProfile),
		),
	)
}

func signupKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Зарегистрироваться", cbSignup),
		),
	)
}

func activateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♻️ Активировать аккаунт", cbActivate),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel),
		),
	)
}

// currencyKeyboard предлагает частые валюты; свой код можно ввести текстом.
func currencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := tgbotapi.NewInlineKeyboardRow()
	for _, code := range []string{"RUB", "USD", "EUR"} {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(code, callbackData(cbSignupCurrency, code)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel),
		),
	)
}

func signupConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Завершить регистрацию", cbSignupFinish),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить валюту", cbChangeCurrency),
		),
	)
}

func profileKeyboard(dailyReports bool) tgbotapi.InlineKeyboardMarkup {
	dailyLabel := "🔔 Включить ежедневную сводку"
	if dailyReports {
		dailyLabel = "🔕 Выключить ежедневную сводку"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💱 Изменить валюту", cbChangeCurrency),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(dailyLabel, cbToggleDaily),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить аккаунт", cbDeactivate),
			tgbotapi.NewInlineKeyboardButtonData("🏠 В начало", cbMainMenu),
		),
	)
}

func confirmKeyboard(yesData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", yesData),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel),
		),
	)
}

func categoryTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Доходы", callbackData(cbCategoryType, string(models.CategoryTypeIncome))),
			tgbotapi.NewInlineKeyboardButtonData("💸 Расходы", callbackData(cbCategoryType, string(models.CategoryTypeExpenses))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel),
		),
	)
}

func categoryMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Создать категорию", cbCategoryCreate),
			tgbotapi.NewInlineKeyboardButtonData("🏠 В начало", cbMainMenu),
		),
	)
}

func categoryActionsKeyboard(categoryID uint) tgbotapi.InlineKeyboardMarkup {
	arg := strconv.FormatUint(uint64(categoryID), 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Переименовать", callbackData(cbCategoryRename, arg)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", callbackData(cbCategoryDelete, arg)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", callbackData(cbCategoryPage, "0")),
		),
	)
}

func entryActionsKeyboard(entryID uint) tgbotapi.InlineKeyboardMarkup {
	arg := strconv.FormatUint(uint64(entryID), 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить запись", callbackData(cbEntryDelete, arg)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", callbackData(cbEntriesPage, "0")),
		),
	)
}

func entryDateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Сейчас", cbEntryDateNow),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel),
		),
	)
}

func entryDescriptionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Без описания", cbEntrySkipDesc),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel),
		),
	)
}

func reportPeriodKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Сегодня", callbackData(cbReport, "today")),
			tgbotapi.NewInlineKeyboardButtonData("Вчера", callbackData(cbReport, "yesterday")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Неделя", callbackData(cbReport, "week")),
			tgbotapi.NewInlineKeyboardButtonData("Месяц", callbackData(cbReport, "month")),
			tgbotapi.NewInlineKeyboardButtonData("Год", callbackData(cbReport, "year")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 В начало", cbMainMenu),
		),
	)
}

func supportKeyboard(managerID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📞 Написать в поддержку", fmt.Sprintf("tg://user?id=%d", managerID)),
		),
	)
}

type listItem struct {
	ID    uint
	Label string
}

// pagedListKeyboard строит список-страницу: по кнопке на элемент плюс
// навигация, когда элементы не умещаются на одной странице.
func pagedListKeyboard(itemPrefix, pagePrefix string, items []listItem, offset, pageSize int, total int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(item.Label, callbackData(itemPrefix, strconv.FormatUint(uint64(item.ID), 10))),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if offset > 0 {
		prev := offset - pageSize
		if prev < 0 {
			prev = 0
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Предыдущие", callbackData(pagePrefix, strconv.Itoa(prev))))
	}
	if int64(offset+pageSize) < total {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Следующие ➡️", callbackData(pagePrefix, strconv.Itoa(offset+pageSize))))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 В начало", cbMainMenu),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
