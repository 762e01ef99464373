package bot

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"BudgetBot/internal/database"
	"BudgetBot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubClient отвечает на любой запрос к Bot API успехом,
// сетевых вызовов в тестах нет.
type stubClient struct{}

func (stubClient) Do(*http.Request) (*http.Response, error) {
	body := `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"testbot"}}`
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func newTestHandler(t *testing.T) (*UpdateHandler, *gorm.DB) {
	t.Helper()

	api, err := tgbotapi.NewBotAPIWithClient("test-token", tgbotapi.APIEndpoint, stubClient{})
	if err != nil {
		t.Fatalf("create bot api: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	botStorage, err := storage.NewMemoryStorage()
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	t.Cleanup(botStorage.Close)

	return NewUpdateHandler(api, botStorage, db, 1, time.UTC), db
}

func chatCallback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "1",
		Data:    data,
		From:    &tgbotapi.User{ID: chatID, UserName: "tester"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

// Кнопка из сообщения старше 48 часов приходит без Message;
// такой callback отвечается и игнорируется.
func TestCallbackWithoutMessage(t *testing.T) {
	h, _ := newTestHandler(t)

	h.handleCallback(&tgbotapi.CallbackQuery{
		ID:   "1",
		Data: callbackData(cbReport, "today"),
		From: &tgbotapi.User{ID: 42},
	})
}

// "Изменить валюту" на подтверждении регистрации возвращает
// незарегистрированного пользователя к выбору валюты.
func TestSignupCurrencyBackStep(t *testing.T) {
	h, _ := newTestHandler(t)
	chatID := int64(42)

	h.storage.SetState(chatID, StateSignupConfirm)
	data, _ := h.storage.GetDialogData(chatID)
	data.Currency = "USD"
	h.storage.SetDialogData(chatID, data)

	h.handleCallback(chatCallback(chatID, cbChangeCurrency))

	state, ok := h.storage.GetState(chatID)
	if !ok || state != StateSignupCurrency {
		t.Errorf("state = %q, %v; want %q", state, ok, StateSignupCurrency)
	}
}

// Та же кнопка у активного пользователя ведет к смене валюты из профиля.
func TestChangeCurrencyFromProfile(t *testing.T) {
	h, db := newTestHandler(t)
	chatID := int64(42)

	if _, err := database.CreateUser(db, chatID, "tester", "RUB"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	h.handleCallback(chatCallback(chatID, cbChangeCurrency))

	state, ok := h.storage.GetState(chatID)
	if !ok || state != StateChangeCurrency {
		t.Errorf("state = %q, %v; want %q", state, ok, StateChangeCurrency)
	}
}

// Повторное нажатие "Завершить регистрацию" не создает второй аккаунт
// и не показывает экран ошибки.
func TestSignupFinishExistingUser(t *testing.T) {
	h, db := newTestHandler(t)
	chatID := int64(42)

	if _, err := database.CreateUser(db, chatID, "tester", "RUB"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	h.storage.SetState(chatID, StateSignupConfirm)
	data, _ := h.storage.GetDialogData(chatID)
	data.Currency = "EUR"
	h.storage.SetDialogData(chatID, data)

	h.handleCallback(chatCallback(chatID, cbSignupFinish))

	users, _, err := database.CountUsers(db)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if users != 1 {
		t.Errorf("users = %d, want 1", users)
	}
	if _, ok := h.storage.GetState(chatID); ok {
		t.Error("dialog state not cleared")
	}
}
