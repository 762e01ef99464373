package bot

import (
	"strings"
	"testing"
	"time"

	"BudgetBot/internal/database/models"
)

func TestPluralRu(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "операция"},
		{2, "операции"},
		{4, "операции"},
		{5, "операций"},
		{11, "операций"},
		{12, "операций"},
		{14, "операций"},
		{21, "операция"},
		{22, "операции"},
		{100, "операций"},
		{101, "операция"},
		{111, "операций"},
		{0, "операций"},
	}

	for _, tt := range tests {
		if got := pluralRu(tt.n, "операция", "операции", "операций"); got != tt.want {
			t.Errorf("pluralRu(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRenderEntryLabel(t *testing.T) {
	entry := &models.Entry{
		Sum:             -12550,
		TransactionDate: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC),
		Category:        models.Category{Name: "продукты", Type: models.CategoryTypeExpenses},
	}

	got := renderEntryLabel(entry, "RUB")
	want := "05.03 -125.50 RUB · продукты"
	if got != want {
		t.Errorf("renderEntryLabel = %q, want %q", got, want)
	}
}

func TestRenderEntryCardWithDescription(t *testing.T) {
	entry := &models.Entry{
		Sum:             95000,
		Description:     "аванс",
		TransactionDate: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		Category:        models.Category{Name: "зарплата", Type: models.CategoryTypeIncome},
	}

	got := renderEntryCard(entry, "RUB")
	for _, want := range []string{"950.00 RUB", "зарплата", "05.03.2026 09:30", "Описание: аванс"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderEntryCard missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderProfile(t *testing.T) {
	budget := &models.Budget{Currency: "USD"}

	got := renderProfile(budget, 1, 22, true)
	for _, want := range []string{"Валюта: USD", "1 категория", "22 операции", "сводка: включена"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderProfile missing %q in:\n%s", want, got)
		}
	}
}

func TestSplitCallback(t *testing.T) {
	tests := []struct {
		data   string
		prefix string
		arg    string
	}{
		{"category_item:42", "category_item", "42"},
		{"main_menu", "main_menu", ""},
		{"report:today", "report", "today"},
	}

	for _, tt := range tests {
		prefix, arg := splitCallback(tt.data)
		if prefix != tt.prefix || arg != tt.arg {
			t.Errorf("splitCallback(%q) = (%q, %q), want (%q, %q)", tt.data, prefix, arg, tt.prefix, tt.arg)
		}
	}
}
