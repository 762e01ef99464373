package storage

import (
	"testing"
	"time"

	"BudgetBot/pkg/models"
)

func newStorage(t *testing.T) *MemoryStorage {
	t.Helper()
	s, err := NewMemoryStorage()
	if err != nil {
		t.Fatalf("NewMemoryStorage: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStateRoundTrip(t *testing.T) {
	s := newStorage(t)

	if _, ok := s.GetState(1); ok {
		t.Error("GetState on empty storage returned ok")
	}

	s.SetState(1, "category_create_name")
	state, ok := s.GetState(1)
	if !ok || state != "category_create_name" {
		t.Errorf("GetState = (%q, %v), want (category_create_name, true)", state, ok)
	}
}

func TestDialogDataIsolation(t *testing.T) {
	s := newStorage(t)

	s.SetDialogData(1, models.DialogData{CategoryName: "продукты"})
	s.SetDialogData(2, models.DialogData{CategoryName: "такси"})

	data, ok := s.GetDialogData(1)
	if !ok || data.CategoryName != "продукты" {
		t.Errorf("chat 1 data = (%+v, %v)", data, ok)
	}
	data, _ = s.GetDialogData(2)
	if data.CategoryName != "такси" {
		t.Errorf("chat 2 data = %+v", data)
	}
}

func TestClearDialogKeepsLastMessageID(t *testing.T) {
	s := newStorage(t)

	s.SetState(1, "entry_create_sum")
	s.SetDialogData(1, models.DialogData{EntrySum: 100})
	s.SetLastMessageID(1, 55)

	s.ClearDialog(1)

	if _, ok := s.GetState(1); ok {
		t.Error("state survived ClearDialog")
	}
	if _, ok := s.GetDialogData(1); ok {
		t.Error("dialog data survived ClearDialog")
	}
	if id, ok := s.GetLastMessageID(1); !ok || id != 55 {
		t.Errorf("last message id = (%d, %v), want (55, true)", id, ok)
	}
}

func TestCleanupExpired(t *testing.T) {
	s := newStorage(t)
	s.maxAge = time.Millisecond

	s.SetState(1, "entry_create_sum")
	time.Sleep(5 * time.Millisecond)
	s.CleanupExpired()

	if _, ok := s.GetState(1); ok {
		t.Error("expired state survived cleanup")
	}
}
