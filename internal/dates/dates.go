// Package dates считает календарные периоды для отчетов.
// Все диапазоны полуоткрытые: [Since, Until).
package dates

import "time"

type Range struct {
	Since time.Time
	Until time.Time
}

// Contains проверяет попадание момента в диапазон.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Since) && t.Before(r.Until)
}

// Day возвращает границы суток, в которые попадает момент.
func Day(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Range{Since: start, Until: start.AddDate(0, 0, 1)}
}

// Yesterday возвращает границы предыдущих суток.
func Yesterday(t time.Time) Range {
	return Day(t.AddDate(0, 0, -1))
}

// Week возвращает границы ISO-недели (понедельник — воскресенье).
func Week(t time.Time) Range {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // воскресенье — последний день недели
	}
	monday := Day(t.AddDate(0, 0, 1-weekday)).Since
	return Range{Since: monday, Until: monday.AddDate(0, 0, 7)}
}

// Month возвращает границы календарного месяца.
func Month(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Range{Since: start, Until: start.AddDate(0, 1, 0)}
}

// Year возвращает границы календарного года.
func Year(t time.Time) Range {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return Range{Since: start, Until: start.AddDate(1, 0, 0)}
}
