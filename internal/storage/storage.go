package storage

import (
	"sync"
	"time"

	"BudgetBot/pkg/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultCacheSize       = 1000
	DefaultCleanupInterval = 5 * time.Minute
	DefaultMaxAge          = 24 * time.Hour
)

// BotStorage хранит состояние диалога между сообщениями одного чата.
type BotStorage interface {
	GetState(chatID int64) (string, bool)
	SetState(chatID int64, state string)
	GetDialogData(chatID int64) (models.DialogData, bool)
	SetDialogData(chatID int64, data models.DialogData)
	GetLastMessageID(chatID int64) (int, bool)
	SetLastMessageID(chatID int64, messageID int)
	ClearDialog(chatID int64)
	CleanupExpired()
}

// MemoryStorage ограничивает число чатов LRU-кэшем и выбрасывает
// брошенные диалоги по TTL.
type MemoryStorage struct {
	mu sync.RWMutex

	states       *lru.Cache[int64, string]
	dialogData   *lru.Cache[int64, models.DialogData]
	lastMessages *lru.Cache[int64, int]

	touchedAt map[int64]time.Time
	maxAge    time.Duration
	done      chan struct{}
}

func NewMemoryStorage() (*MemoryStorage, error) {
	states, err := lru.New[int64, string](DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	dialogData, err := lru.New[int64, models.DialogData](DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	lastMessages, err := lru.New[int64, int](DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	s := &MemoryStorage{
		states:       states,
		dialogData:   dialogData,
		lastMessages: lastMessages,
		touchedAt:    make(map[int64]time.Time),
		maxAge:       DefaultMaxAge,
		done:         make(chan struct{}),
	}

	go s.cleanupLoop()

	return s, nil
}

func (s *MemoryStorage) cleanupLoop() {
	ticker := time.NewTicker(DefaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.CleanupExpired()
		case <-s.done:
			return
		}
	}
}

// Close останавливает фоновую очистку.
func (s *MemoryStorage) Close() {
	close(s.done)
}

// CleanupExpired удаляет диалоги, к которым давно не обращались.
func (s *MemoryStorage) CleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for chatID, touched := range s.touchedAt {
		if now.Sub(touched) > s.maxAge {
			s.removeLocked(chatID)
		}
	}
}

func (s *MemoryStorage) removeLocked(chatID int64) {
	delete(s.touchedAt, chatID)
	s.states.Remove(chatID)
	s.dialogData.Remove(chatID)
	s.lastMessages.Remove(chatID)
}

func (s *MemoryStorage) GetState(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states.Get(chatID)
}

func (s *MemoryStorage) SetState(chatID int64, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states.Add(chatID, state)
	s.touchedAt[chatID] = time.Now()
}

func (s *MemoryStorage) GetDialogData(chatID int64) (models.DialogData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialogData.Get(chatID)
}

func (s *MemoryStorage) SetDialogData(chatID int64, data models.DialogData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogData.Add(chatID, data)
	s.touchedAt[chatID] = time.Now()
}

func (s *MemoryStorage) GetLastMessageID(chatID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessages.Get(chatID)
}

func (s *MemoryStorage) SetLastMessageID(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMessages.Add(chatID, messageID)
	s.touchedAt[chatID] = time.Now()
}

// ClearDialog сбрасывает состояние и черновик, не трогая id последнего
// сообщения: его используют для редактирования меню.
func (s *MemoryStorage) ClearDialog(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states.Remove(chatID)
	s.dialogData.Remove(chatID)
	delete(s.touchedAt, chatID)
}

// Stats отдает размеры кэшей для мониторинга.
func (s *MemoryStorage) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		"states":        s.states.Len(),
		"dialog_data":   s.dialogData.Len(),
		"last_messages": s.lastMessages.Len(),
		"active_chats":  len(s.touchedAt),
	}
}
