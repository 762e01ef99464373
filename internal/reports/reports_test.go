package reports

import (
	"strings"
	"testing"
	"time"

	"BudgetBot/internal/database"
	"BudgetBot/internal/database/models"
)

func TestRangeFor(t *testing.T) {
	now := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC) // четверг

	tests := []struct {
		period Period
		since  time.Time
		until  time.Time
	}{
		{PeriodToday, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)},
		{PeriodYesterday, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{PeriodMonth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r, err := RangeFor(tt.period, now)
			if err != nil {
				t.Fatalf("RangeFor: %v", err)
			}
			if !r.Since.Equal(tt.since) || !r.Until.Equal(tt.until) {
				t.Errorf("RangeFor(%s) = [%v, %v), want [%v, %v)", tt.period, r.Since, r.Until, tt.since, tt.until)
			}
		})
	}

	if _, err := RangeFor(Period("quarter"), now); err == nil {
		t.Error("RangeFor must reject unknown periods")
	}
}

func TestReportTotals(t *testing.T) {
	report := &Report{
		Totals: []database.CategoryTotal{
			{CategoryName: "зарплата", CategoryType: models.CategoryTypeIncome, Total: 100000},
			{CategoryName: "продукты", CategoryType: models.CategoryTypeExpenses, Total: -34550},
			{CategoryName: "такси", CategoryType: models.CategoryTypeExpenses, Total: -12000},
		},
	}
	for _, total := range report.Totals {
		if total.Total >= 0 {
			report.Income += total.Total
		} else {
			report.Expenses += total.Total
		}
	}

	if report.Income != 100000 {
		t.Errorf("Income = %d, want 100000", report.Income)
	}
	if report.Expenses != -46550 {
		t.Errorf("Expenses = %d, want -46550", report.Expenses)
	}
	if report.Net() != 53450 {
		t.Errorf("Net() = %d, want 53450", report.Net())
	}
}

func TestReportFormat(t *testing.T) {
	report := &Report{
		Period:   PeriodToday,
		Currency: "RUB",
		Totals: []database.CategoryTotal{
			{CategoryName: "зарплата", CategoryType: models.CategoryTypeIncome, Total: 100000},
			{CategoryName: "продукты", CategoryType: models.CategoryTypeExpenses, Total: -34550},
		},
		Income:   100000,
		Expenses: -34550,
	}
	report.Range, _ = RangeFor(PeriodToday, time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC))

	text := report.Format()
	for _, want := range []string{
		"05.03.2026",
		"зарплата: 1000.00 RUB",
		"продукты: -345.50 RUB",
		"Баланс: 654.50 RUB",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Format() missing %q in:\n%s", want, text)
		}
	}
}

func TestReportFormatEmpty(t *testing.T) {
	report := &Report{Period: PeriodWeek}
	if text := report.Format(); !strings.Contains(text, "операций не было") {
		t.Errorf("empty report format = %q", text)
	}
}
