package validate

import (
	"testing"
	"time"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  продукты  ", "продукты"},
		{"на\tтакси\n", "на такси"},
		{"две   категории", "две категории"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid", "продукты", "продукты", false},
		{"trimmed and collapsed", "  кафе  и  рестораны ", "кафе и рестораны", false},
		{"too short", "дом", "", true},
		{"command-like", "/start12", "", true},
		{"empty", "   ", "", true},
		{"digits only", "12345", "", true},
		{"long but allowed", "категория с очень длинным названием", "категория с очень длинным названием", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CategoryName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CategoryName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CategoryName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := make([]rune, MaxCategoryNameLen+1)
	for i := range long {
		long[i] = 'я'
	}
	if _, err := CategoryName(string(long)); err == nil {
		t.Error("expected error for overlong name")
	}
}

func TestEntrySum(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{"integer", "250", 25000, false},
		{"two decimals", "123.45", 12345, false},
		{"one decimal", "9.5", 950, false},
		{"comma separator", "10,99", 1099, false},
		{"zero", "0", 0, true},
		{"zero with decimals", "0.00", 0, true},
		{"negative", "-5", 0, true},
		{"three decimals", "1.234", 0, true},
		{"garbage", "десять", 0, true},
		{"fraction only", ".50", 0, true},
		{"negative fraction", "12.-1", 0, true},
		{"too big", "100000000", 0, true},
		{"empty", " ", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntrySum(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EntrySum(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("EntrySum(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntryDate(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	got, err := EntryDate("2026-03-05 12:30", moscow)
	if err != nil {
		t.Fatalf("EntryDate: %v", err)
	}
	want := time.Date(2026, 3, 5, 12, 30, 0, 0, moscow)
	if !got.Equal(want) {
		t.Errorf("EntryDate = %v, want %v", got, want)
	}

	got, err = EntryDate("2026-03-05", moscow)
	if err != nil {
		t.Fatalf("EntryDate date-only: %v", err)
	}
	if got.Hour() != 0 || got.Day() != 5 {
		t.Errorf("EntryDate date-only = %v", got)
	}

	for _, bad := range []string{"05.03.2026", "2026-13-01", "завтра", ""} {
		if _, err := EntryDate(bad, moscow); err == nil {
			t.Errorf("EntryDate(%q) expected error", bad)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"rub", "RUB", false},
		{" usd ", "USD", false},
		{"EUR", "EUR", false},
		{"RU", "", true},
		{"R1B", "", true},
		{"оченьдлиннаявалюта", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := Currency(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Currency(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Currency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixEncoding(t *testing.T) {
	if got := FixEncoding("продукты"); got != "продукты" {
		t.Errorf("valid utf8 must pass through, got %q", got)
	}

	// "тест" в windows-1251
	cp1251 := string([]byte{0xF2, 0xE5, 0xF1, 0xF2})
	if got := FixEncoding(cp1251); got != "тест" {
		t.Errorf("FixEncoding(cp1251) = %q, want тест", got)
	}
}
