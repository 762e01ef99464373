package bot

import (
	"log/slog"
	"strings"
	"time"

	"BudgetBot/internal/database"
	dbmodels "BudgetBot/internal/database/models"
	"BudgetBot/internal/storage"
	"BudgetBot/internal/validate"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

// UpdateHandler разбирает входящие обновления и ведет диалоги.
type UpdateHandler struct {
	api       *tgbotapi.BotAPI
	storage   storage.BotStorage
	db        *gorm.DB
	msg       *MessageHandler
	log       *slog.Logger
	managerID int64
	tz        *time.Location
}

func NewUpdateHandler(api *tgbotapi.BotAPI, botStorage storage.BotStorage, db *gorm.DB, managerID int64, tz *time.Location) *UpdateHandler {
	return &UpdateHandler{
		api:       api,
		storage:   botStorage,
		db:        db,
		msg:       NewMessageHandler(api, botStorage, db, managerID, tz),
		log:       slog.Default().With("component", "bot"),
		managerID: managerID,
		tz:        tz,
	}
}

// MessageHandler отдает обработчик сообщений, его использует планировщик.
func (h *UpdateHandler) MessageHandler() *MessageHandler {
	return h.msg
}

// HandleUpdates обрабатывает обновления до закрытия канала.
func (h *UpdateHandler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		switch {
		case update.Message != nil:
			if update.Message.From == nil || update.Message.From.IsBot {
				continue
			}
			h.handleMessage(update.Message)
		case update.CallbackQuery != nil:
			h.handleCallback(update.CallbackQuery)
		}
	}
}

// currentUser возвращает пользователя чата или nil, если он не зарегистрирован.
func (h *UpdateHandler) currentUser(telegramID int64) (*dbmodels.User, error) {
	user, err := database.GetUserByTelegramID(h.db, telegramID)
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (h *UpdateHandler) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(validate.FixEncoding(message.Text))

	h.log.Debug("message received", "chat_id", chatID, "text", text)

	user, err := h.currentUser(chatID)
	if err != nil {
		h.log.Error("resolve user", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	if message.IsCommand() {
		h.handleCommand(message, user)
		return
	}

	if state, ok := h.storage.GetState(chatID); ok {
		h.handleStateText(message, user, state, text)
		return
	}

	switch {
	case user == nil:
		h.msg.SendGreeting(chatID)
	case !user.IsActive:
		h.msg.SendActivateOffer(chatID)
	default:
		h.msg.sendWithKeyboard(chatID, "Я не понял. Воспользуйтесь меню или /help.", mainMenuKeyboard())
	}
}

func (h *UpdateHandler) handleCommand(message *tgbotapi.Message, user *dbmodels.User) {
	chatID := message.Chat.ID

	// любая команда прерывает начатый диалог
	h.storage.ClearDialog(chatID)

	switch message.Command() {
	case "start":
		switch {
		case user == nil:
			h.msg.SendGreeting(chatID)
		case !user.IsActive:
			h.msg.SendActivateOffer(chatID)
		default:
			h.msg.SendMainMenu(chatID)
		}
		return
	case "cancel":
		h.msg.send(chatID, "Действие отменено.")
		h.msg.SendMainMenu(chatID)
		return
	case "help":
		h.msg.SendHelp(chatID)
		return
	case "stats":
		if chatID == h.managerID {
			h.msg.SendStats(chatID)
		}
		return
	}

	// остальные команды требуют активный аккаунт
	switch {
	case user == nil:
		h.msg.SendGreeting(chatID)
		return
	case !user.IsActive:
		h.msg.SendActivateOffer(chatID)
		return
	}

	switch message.Command() {
	case "create_category":
		h.startCategoryCreation(chatID)
	case "show_categories":
		h.showCategoriesPage(chatID, user, 0, false)
	case "create_expense":
		h.startEntryCreation(chatID, dbmodels.CategoryTypeExpenses)
	case "create_income":
		h.startEntryCreation(chatID, dbmodels.CategoryTypeIncome)
	case "show_entries":
		h.showEntriesPage(chatID, user, 0, false)
	case "get_report":
		h.msg.sendWithKeyboard(chatID, "Выберите период отчета", reportPeriodKeyboard())
	default:
		h.msg.send(chatID, "Неизвестная команда. Напишите /help.")
	}
}

// handleStateText обрабатывает текстовый ответ на текущий шаг диалога.
func (h *UpdateHandler) handleStateText(message *tgbotapi.Message, user *dbmodels.User, state, text string) {
	chatID := message.Chat.ID

	switch state {
	case StateSignupCurrency:
		h.signupReceiveCurrency(chatID, text)
	case StateChangeCurrency:
		h.profileChangeCurrency(chatID, user, text)
	case StateCategoryName:
		h.categoryReceiveName(chatID, user, text)
	case StateCategoryRename:
		h.categoryReceiveNewName(chatID, user, text)
	case StateEntrySum:
		h.entryReceiveSum(chatID, user, text)
	case StateEntryDate:
		h.entryReceiveDate(chatID, user, message, text)
	case StateEntryDescription:
		h.entryReceiveDescription(chatID, user, text)
	default:
		h.storage.ClearDialog(chatID)
		h.msg.SendMainMenu(chatID)
	}
}

func (h *UpdateHandler) handleCallback(callback *tgbotapi.CallbackQuery) {
	// закрываем "часики" на кнопке сразу
	if _, err := h.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		h.log.Warn("answer callback", "error", err)
	}

	// у кнопок из сообщений старше 48 часов и inline-сообщений Message отсутствует
	if callback.Message == nil {
		h.log.Warn("callback without message", "data", callback.Data)
		return
	}

	chatID := callback.Message.Chat.ID
	prefix, arg := splitCallback(callback.Data)

	user, err := h.currentUser(chatID)
	if err != nil {
		h.log.Error("resolve user", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	// регистрация и активация доступны без аккаунта
	switch prefix {
	case cbSignup:
		h.signupStart(chatID, user)
		return
	case cbSignupCurrency:
		h.signupPickCurrency(chatID, arg)
		return
	case cbSignupFinish:
		h.signupFinish(chatID, callback.From)
		return
	case cbActivate:
		h.activateUser(chatID, user)
		return
	case cbChangeCurrency:
		// шаг назад на подтверждении валюты регистрации; для активных
		// аккаунтов кнопка обрабатывается ниже, из профиля
		if state, ok := h.storage.GetState(chatID); ok && state == StateSignupConfirm {
			h.requestCurrencyChange(chatID)
			return
		}
	case cbCancel:
		h.storage.ClearDialog(chatID)
		if user != nil && user.IsActive {
			h.msg.SendMainMenu(chatID)
		} else {
			h.msg.send(chatID, "Действие отменено.")
		}
		return
	}

	switch {
	case user == nil:
		h.msg.SendGreeting(chatID)
		return
	case !user.IsActive:
		h.msg.SendActivateOffer(chatID)
		return
	}

	switch prefix {
	case cbMainMenu:
		h.msg.SendMainMenu(chatID)
	case cbProfile:
		h.msg.SendProfile(chatID, user)
	case cbChangeCurrency:
		h.requestCurrencyChange(chatID)
	case cbToggleDaily:
		h.toggleDailyReports(chatID, user)
	case cbDeactivate:
		h.msg.sendWithKeyboard(chatID,
			"Удалить аккаунт? Бюджеты и записи сохранятся и вернутся при повторной активации.",
			confirmKeyboard(cbDeactivateYes))
	case cbDeactivateYes:
		h.deactivateUser(chatID)
	case cbCategoryMenu:
		h.showCategoriesPage(chatID, user, 0, false)
	case cbCategoryCreate:
		h.startCategoryCreation(chatID)
	case cbCategoryType:
		h.categoryReceiveType(chatID, user, arg)
	case cbCategoryPage:
		h.showCategoriesPage(chatID, user, parseOffset(arg), true)
	case cbCategoryItem:
		h.showCategoryCard(chatID, user, parseID(arg))
	case cbCategoryRename:
		h.startCategoryRename(chatID, parseID(arg))
	case cbCategoryDelete:
		h.confirmCategoryDelete(chatID, user, parseID(arg))
	case cbCategoryDeleteYes:
		h.deleteCategory(chatID, user, parseID(arg))
	case cbEntryNew:
		h.startEntryCreation(chatID, dbmodels.CategoryType(arg))
	case cbEntryCategory:
		h.entryPickCategory(chatID, user, parseID(arg))
	case cbEntryCatPage:
		h.showEntryCategoriesPage(chatID, user, parseOffset(arg), true)
	case cbEntriesPage:
		h.showEntriesPage(chatID, user, parseOffset(arg), true)
	case cbEntryItem:
		h.showEntryCard(chatID, user, parseID(arg))
	case cbEntryDelete:
		h.confirmEntryDelete(chatID, parseID(arg))
	case cbEntryDeleteYes:
		h.deleteEntry(chatID, user, parseID(arg))
	case cbEntryDateNow:
		h.entryPickDateNow(chatID, user, callback.Message)
	case cbEntrySkipDesc:
		h.entryReceiveDescription(chatID, user, ".")
	case cbReport:
		h.handleReport(chatID, user, arg)
	default:
		h.log.Warn("unknown callback", "chat_id", chatID, "data", callback.Data)
		h.msg.SendMainMenu(chatID)
	}
}

// --- регистрация и профиль ---

func (h *UpdateHandler) signupStart(chatID int64, user *dbmodels.User) {
	switch {
	case user != nil && user.IsActive:
		h.msg.sendWithKeyboard(chatID, "Вы уже зарегистрированы.", mainMenuKeyboard())
	case user != nil:
		h.msg.SendActivateOffer(chatID)
	default:
		h.storage.SetState(chatID, StateSignupCurrency)
		h.msg.sendWithKeyboard(chatID,
			"Выберите валюту бюджета или отправьте код валюты текстом (например, GBP).",
			currencyKeyboard())
	}
}

func (h *UpdateHandler) signupPickCurrency(chatID int64, code string) {
	currency, err := validate.Currency(code)
	if err != nil {
		h.msg.send(chatID, "Некорректный код валюты: "+err.Error())
		return
	}
	h.signupConfirmCurrency(chatID, currency)
}

func (h *UpdateHandler) signupReceiveCurrency(chatID int64, text string) {
	currency, err := validate.Currency(text)
	if err != nil {
		h.msg.sendWithKeyboard(chatID, "Некорректный код валюты: "+err.Error(), currencyKeyboard())
		return
	}
	h.signupConfirmCurrency(chatID, currency)
}

func (h *UpdateHandler) signupConfirmCurrency(chatID int64, currency string) {
	data, _ := h.storage.GetDialogData(chatID)
	data.Currency = currency
	h.storage.SetDialogData(chatID, data)
	h.storage.SetState(chatID, StateSignupConfirm)

	h.msg.sendWithKeyboard(chatID,
		"Валюта бюджета — "+currency+". Завершите регистрацию.",
		signupConfirmKeyboard())
}

func (h *UpdateHandler) signupFinish(chatID int64, from *tgbotapi.User) {
	existing, err := h.currentUser(chatID)
	if err != nil {
		h.log.Error("resolve user", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}
	if existing != nil {
		h.storage.ClearDialog(chatID)
		if existing.IsActive {
			h.msg.sendWithKeyboard(chatID, "Вы уже зарегистрированы.", mainMenuKeyboard())
		} else {
			h.msg.SendActivateOffer(chatID)
		}
		return
	}

	data, _ := h.storage.GetDialogData(chatID)

	userName := ""
	if from != nil {
		userName = from.UserName
	}

	user, err := database.CreateUser(h.db, chatID, userName, data.Currency)
	if err != nil {
		h.log.Error("create user", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.storage.ClearDialog(chatID)
	h.log.Info("user registered", "chat_id", chatID, "currency", user.Budgets[0].Currency)
	h.msg.sendWithKeyboard(chatID,
		"Поздравляем, Вы зарегистрированы! Начните с создания категорий.",
		mainMenuKeyboard())
}

func (h *UpdateHandler) activateUser(chatID int64, user *dbmodels.User) {
	if user == nil {
		h.msg.SendGreeting(chatID)
		return
	}
	if user.IsActive {
		h.msg.sendWithKeyboard(chatID, "Аккаунт уже активен.", mainMenuKeyboard())
		return
	}

	if err := database.SetUserActive(h.db, chatID, true); err != nil {
		h.log.Error("activate user", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}
	h.log.Info("user activated", "chat_id", chatID)
	h.msg.sendWithKeyboard(chatID, "Аккаунт активирован. С возвращением!", mainMenuKeyboard())
}

func (h *UpdateHandler) deactivateUser(chatID int64) {
	if err := database.SetUserActive(h.db, chatID, false); err != nil {
		h.log.Error("deactivate user", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}
	h.storage.ClearDialog(chatID)
	h.log.Info("user deactivated", "chat_id", chatID)
	h.msg.send(chatID, "Аккаунт удален. Данные сохранены — вернуться можно командой /start.")
}

func (h *UpdateHandler) requestCurrencyChange(chatID int64) {
	// смена валюты из профиля, в отличие от регистрации, только текстом
	if state, ok := h.storage.GetState(chatID); ok && state == StateSignupConfirm {
		h.storage.SetState(chatID, StateSignupCurrency)
		h.msg.sendWithKeyboard(chatID, "Выберите валюту бюджета.", currencyKeyboard())
		return
	}

	h.storage.SetState(chatID, StateChangeCurrency)
	h.msg.send(chatID, "Отправьте новый код валюты (например, USD).")
}

func (h *UpdateHandler) profileChangeCurrency(chatID int64, user *dbmodels.User, text string) {
	if user == nil || !user.IsActive {
		h.storage.ClearDialog(chatID)
		h.msg.SendGreeting(chatID)
		return
	}

	currency, err := validate.Currency(text)
	if err != nil {
		h.msg.send(chatID, "Некорректный код валюты: "+err.Error())
		return
	}

	budget, err := database.DefaultBudget(h.db, user.ID)
	if err != nil {
		h.msg.sendError(chatID)
		return
	}
	if err := database.UpdateBudgetCurrency(h.db, budget.ID, currency); err != nil {
		h.log.Error("update currency", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	h.storage.ClearDialog(chatID)
	h.msg.send(chatID, "Валюта изменена на "+currency+".")
	h.msg.SendProfile(chatID, user)
}

func (h *UpdateHandler) toggleDailyReports(chatID int64, user *dbmodels.User) {
	enabled := !user.DailyReports
	if err := database.SetDailyReports(h.db, chatID, enabled); err != nil {
		h.log.Error("toggle daily reports", "chat_id", chatID, "error", err)
		h.msg.sendError(chatID)
		return
	}

	user.DailyReports = enabled
	h.msg.SendProfile(chatID, user)
}
