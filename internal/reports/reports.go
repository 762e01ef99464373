package reports

import (
	"fmt"
	"strings"
	"time"

	"BudgetBot/internal/database"
	"BudgetBot/internal/database/models"
	"BudgetBot/internal/dates"

	"gorm.io/gorm"
)

// Period — отчетный период, выбираемый кнопкой в /get_report.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodYear      Period = "year"
)

// Title возвращает название периода для сообщений.
func (p Period) Title() string {
	switch p {
	case PeriodToday:
		return "сегодня"
	case PeriodYesterday:
		return "вчера"
	case PeriodWeek:
		return "эту неделю"
	case PeriodMonth:
		return "этот месяц"
	case PeriodYear:
		return "этот год"
	default:
		return string(p)
	}
}

// RangeFor переводит период в календарный диапазон относительно момента now.
func RangeFor(p Period, now time.Time) (dates.Range, error) {
	switch p {
	case PeriodToday:
		return dates.Day(now), nil
	case PeriodYesterday:
		return dates.Yesterday(now), nil
	case PeriodWeek:
		return dates.Week(now), nil
	case PeriodMonth:
		return dates.Month(now), nil
	case PeriodYear:
		return dates.Year(now), nil
	default:
		return dates.Range{}, fmt.Errorf("unknown report period %q", p)
	}
}

// Report — сводка бюджета за период: обороты по категориям и итоги.
type Report struct {
	Period   Period
	Range    dates.Range
	Currency string
	Totals   []database.CategoryTotal
	Income   int64
	Expenses int64
}

// Net возвращает итог периода: доходы минус расходы.
func (r *Report) Net() int64 {
	return r.Income + r.Expenses
}

// Empty сообщает, что за период не было ни одной операции.
func (r *Report) Empty() bool {
	return len(r.Totals) == 0
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Build собирает отчет по бюджету за период.
func (s *Service) Build(budget *models.Budget, period Period, now time.Time) (*Report, error) {
	periodRange, err := RangeFor(period, now)
	if err != nil {
		return nil, err
	}

	totals, err := database.SumByCategory(s.db, budget.ID, periodRange.Since, periodRange.Until)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	report := &Report{
		Period:   period,
		Range:    periodRange,
		Currency: budget.Currency,
		Totals:   totals,
	}
	for _, total := range totals {
		if total.Total >= 0 {
			report.Income += total.Total
		} else {
			report.Expenses += total.Total
		}
	}
	return report, nil
}

// Format превращает отчет в сообщение для чата.
func (r *Report) Format() string {
	if r.Empty() {
		return fmt.Sprintf("📭 За %s операций не было.", r.Period.Title())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Отчет за %s (%s — %s)\n",
		r.Period.Title(),
		r.Range.Since.Format("02.01.2006"),
		r.Range.Until.AddDate(0, 0, -1).Format("02.01.2006"),
	)

	var income, expenses []database.CategoryTotal
	for _, total := range r.Totals {
		if total.CategoryType == models.CategoryTypeIncome {
			income = append(income, total)
		} else {
			expenses = append(expenses, total)
		}
	}

	if len(income) > 0 {
		b.WriteString("\n💰 Доходы:\n")
		for _, total := range income {
			fmt.Fprintf(&b, "  %s: %s %s\n", total.CategoryName, models.FormatMinorUnits(total.Total), r.Currency)
		}
	}
	if len(expenses) > 0 {
		b.WriteString("\n💸 Расходы:\n")
		for _, total := range expenses {
			fmt.Fprintf(&b, "  %s: %s %s\n", total.CategoryName, models.FormatMinorUnits(total.Total), r.Currency)
		}
	}

	fmt.Fprintf(&b, "\nИтого доходы: %s %s", models.FormatMinorUnits(r.Income), r.Currency)
	fmt.Fprintf(&b, "\nИтого расходы: %s %s", models.FormatMinorUnits(r.Expenses), r.Currency)
	fmt.Fprintf(&b, "\nБаланс: %s %s", models.FormatMinorUnits(r.Net()), r.Currency)
	return b.String()
}
