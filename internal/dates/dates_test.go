package dates

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDay(t *testing.T) {
	r := Day(time.Date(2023, time.May, 9, 15, 30, 45, 0, time.UTC))

	if !r.Since.Equal(date(2023, time.May, 9)) {
		t.Errorf("Since = %v, want 2023-05-09", r.Since)
	}
	if !r.Until.Equal(date(2023, time.May, 10)) {
		t.Errorf("Until = %v, want 2023-05-10", r.Until)
	}
}

func TestYesterdayAcrossMonthStart(t *testing.T) {
	r := Yesterday(date(2023, time.March, 1))

	if !r.Since.Equal(date(2023, time.February, 28)) {
		t.Errorf("Since = %v, want 2023-02-28", r.Since)
	}
	if !r.Until.Equal(date(2023, time.March, 1)) {
		t.Errorf("Until = %v, want 2023-03-01", r.Until)
	}
}

func TestWeek(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		since time.Time
	}{
		{"tuesday january", date(2023, time.January, 10), date(2023, time.January, 9)},
		{"friday february", date(2023, time.February, 17), date(2023, time.February, 13)},
		{"wednesday march", date(2023, time.March, 8), date(2023, time.March, 6)},
		{"saturday crosses month start", date(2023, time.April, 1), date(2023, time.March, 27)},
		{"monday is its own week start", date(2023, time.June, 12), date(2023, time.June, 12)},
		{"sunday belongs to preceding week", date(2023, time.July, 23), date(2023, time.July, 17)},
		{"week crosses year end", date(2023, time.December, 30), date(2023, time.December, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Week(tt.in)
			if !r.Since.Equal(tt.since) {
				t.Errorf("Since = %v, want %v", r.Since, tt.since)
			}
			if !r.Until.Equal(tt.since.AddDate(0, 0, 7)) {
				t.Errorf("Until = %v, want %v", r.Until, tt.since.AddDate(0, 0, 7))
			}
		})
	}
}

func TestMonthHandlesShortMonths(t *testing.T) {
	tests := []struct {
		in    time.Time
		until time.Time
	}{
		{date(2023, time.January, 10), date(2023, time.February, 1)},
		{date(2023, time.April, 10), date(2023, time.May, 1)},
		{date(2023, time.February, 15), date(2023, time.March, 1)},
		{date(2024, time.February, 15), date(2024, time.March, 1)}, // високосный
		{date(2023, time.December, 31), date(2024, time.January, 1)},
	}

	for _, tt := range tests {
		r := Month(tt.in)
		if !r.Since.Equal(date(tt.in.Year(), tt.in.Month(), 1)) {
			t.Errorf("Month(%v).Since = %v", tt.in, r.Since)
		}
		if !r.Until.Equal(tt.until) {
			t.Errorf("Month(%v).Until = %v, want %v", tt.in, r.Until, tt.until)
		}
	}
}

func TestYear(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		r := Year(date(2023, month, 1))
		if !r.Since.Equal(date(2023, time.January, 1)) || !r.Until.Equal(date(2024, time.January, 1)) {
			t.Errorf("Year(2023-%02d) = [%v, %v)", month, r.Since, r.Until)
		}
	}
}

func TestContains(t *testing.T) {
	r := Day(date(2023, time.May, 9))

	if !r.Contains(time.Date(2023, time.May, 9, 23, 59, 59, 0, time.UTC)) {
		t.Error("end of day must be inside the range")
	}
	if r.Contains(date(2023, time.May, 10)) {
		t.Error("range must be half-open on the right")
	}
}
