package bot

import (
	"fmt"
	"log/slog"
	"time"

	"BudgetBot/internal/database"
	"BudgetBot/internal/database/models"
	"BudgetBot/internal/reports"
	"BudgetBot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

// Состояния диалогов. Пустое состояние означает, что бот ждет команду.
const (
	StateSignupCurrency   = "signup_currency"
	StateSignupConfirm    = "signup_confirm"
	StateChangeCurrency   = "change_currency"
	StateCategoryName     = "category_create_name"
	StateCategoryType     = "category_create_type"
	StateCategoryRename   = "category_rename"
	StateEntrySum         = "entry_sum"
	StateEntryCategory    = "entry_category"
	StateEntryDate        = "entry_date"
	StateEntryDescription = "entry_description"
)

const supportHint = "Что-то пошло не так. Попробуйте позже или обратитесь в поддержку."

// MessageHandler отправляет сообщения и экраны меню.
type MessageHandler struct {
	api       *tgbotapi.BotAPI
	storage   storage.BotStorage
	db        *gorm.DB
	reports   *reports.Service
	log       *slog.Logger
	managerID int64
	tz        *time.Location
}

func NewMessageHandler(api *tgbotapi.BotAPI, botStorage storage.BotStorage, db *gorm.DB, managerID int64, tz *time.Location) *MessageHandler {
	return &MessageHandler{
		api:       api,
		storage:   botStorage,
		db:        db,
		reports:   reports.NewService(db),
		log:       slog.Default().With("component", "bot"),
		managerID: managerID,
		tz:        tz,
	}
}

func (h *MessageHandler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	h.deliver(chatID, msg)
}

func (h *MessageHandler) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	h.deliver(chatID, msg)
}

func (h *MessageHandler) deliver(chatID int64, msg tgbotapi.MessageConfig) {
	sent, err := h.api.Send(msg)
	if err != nil {
		h.log.Error("send message failed", "chat_id", chatID, "error", err)
		return
	}
	h.storage.SetLastMessageID(chatID, sent.MessageID)
}

// editLast заменяет текст и клавиатуру последнего сообщения бота.
// Используется пагинируемыми списками, чтобы не засорять чат.
func (h *MessageHandler) editLast(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	messageID, ok := h.storage.GetLastMessageID(chatID)
	if !ok {
		h.sendWithKeyboard(chatID, text, keyboard)
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	if _, err := h.api.Send(edit); err != nil {
		// сообщение могло устареть или быть удалено, шлем новое
		h.sendWithKeyboard(chatID, text, keyboard)
	}
}

func (h *MessageHandler) sendError(chatID int64) {
	h.sendWithKeyboard(chatID, supportHint, supportKeyboard(h.managerID))
}

func (h *MessageHandler) SendGreeting(chatID int64) {
	text := `👋 Привет! Я бюджетный бот.

Помогаю вести личный бюджет: записывать доходы и расходы по категориям
и смотреть отчеты за день, неделю, месяц и год.

Для начала нужно зарегистрироваться и выбрать валюту бюджета.`
	h.sendWithKeyboard(chatID, text, signupKeyboard())
}

func (h *MessageHandler) SendMainMenu(chatID int64) {
	h.storage.ClearDialog(chatID)
	h.sendWithKeyboard(chatID, "Выберите действие", mainMenuKeyboard())
}

func (h *MessageHandler) SendActivateOffer(chatID int64) {
	text := "Ранее Вы уже пользовались ботом, но удалили аккаунт.\n" +
		"Ваши бюджеты сохранены — можно продолжить работу, активировав аккаунт."
	h.sendWithKeyboard(chatID, text, activateKeyboard())
}

func (h *MessageHandler) SendProfile(chatID int64, user *models.User) {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.log.Error("load default budget", "chat_id", chatID, "error", err)
		h.sendError(chatID)
		return
	}

	categoryCount, err := database.CountBudgetCategories(h.db, budget.ID)
	if err != nil {
		h.sendError(chatID)
		return
	}
	entryCount, err := database.CountBudgetEntries(h.db, budget.ID)
	if err != nil {
		h.sendError(chatID)
		return
	}

	text := renderProfile(budget, categoryCount, entryCount, user.DailyReports)
	h.sendWithKeyboard(chatID, text, profileKeyboard(user.DailyReports))
}

// SendDailyReport отправляет пользователю утреннюю сводку за вчерашний день.
// Пустые дни пропускаются, чтобы не будить пользователя без повода.
func (h *MessageHandler) SendDailyReport(user *models.User, now time.Time) error {
	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		return fmt.Errorf("load default budget: %w", err)
	}

	report, err := h.reports.Build(budget, reports.PeriodYesterday, now)
	if err != nil {
		return err
	}
	if report.Empty() {
		return nil
	}

	msg := tgbotapi.NewMessage(user.TelegramID, "🌅 Доброе утро! Вот сводка за вчера:\n\n"+report.Format())
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err = h.api.Send(msg)
	return err
}

func (h *MessageHandler) SendSupport(chatID int64) {
	h.sendWithKeyboard(chatID, "По вопросам работы бота пишите менеджеру поддержки.", supportKeyboard(h.managerID))
}

// SendStats отвечает менеджеру счетчиками системы.
func (h *MessageHandler) SendStats(chatID int64) {
	users, entries, err := database.CountUsers(h.db)
	if err != nil {
		h.log.Error("count stats", "error", err)
		h.sendError(chatID)
		return
	}
	h.send(chatID, fmt.Sprintf("👥 Активных пользователей: %d\n📜 Всего операций: %d", users, entries))
}

func (h *MessageHandler) SendHelp(chatID int64) {
	h.send(chatID, `Команды:
/start — начало работы и регистрация
/create_category — новая категория
/show_categories — список категорий
/create_expense — записать расход
/create_income — записать доход
/show_entries — последние операции
/get_report — отчет за период
/cancel — отменить текущее действие
/help — эта справка`)
}
