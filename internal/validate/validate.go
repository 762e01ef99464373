// Package validate проверяет пользовательский ввод из чата.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	MinCategoryNameLen = 5
	MaxCategoryNameLen = 128

	MinCurrencyLen = 3
	MaxCurrencyLen = 10

	// максимально допустимая сумма одной операции в минорных единицах
	MaxEntrySum = 10_000_000_00
)

var (
	ErrEmptyInput = errors.New("empty input")

	errNameTooShort = fmt.Errorf("название короче %d символов", MinCategoryNameLen)
	errNameTooLong  = fmt.Errorf("название длиннее %d символов", MaxCategoryNameLen)
)

// SanitizeText нормализует пробельные символы и убирает лишние пробелы.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FixEncoding восстанавливает текст, пришедший в windows-1251.
func FixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoder := charmap.Windows1251.NewDecoder()
	if fixed, err := decoder.String(s); err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}

// CategoryName проверяет название категории: длина, наличие букв,
// отсутствие служебных префиксов. Возвращает нормализованное название.
func CategoryName(raw string) (string, error) {
	name := SanitizeText(raw)
	if name == "" {
		return "", ErrEmptyInput
	}
	if strings.HasPrefix(name, "/") {
		return "", errors.New("название не может начинаться с /")
	}

	length := utf8.RuneCountInString(name)
	if length < MinCategoryNameLen {
		return "", errNameTooShort
	}
	if length > MaxCategoryNameLen {
		return "", errNameTooLong
	}

	for _, r := range name {
		if unicode.IsLetter(r) {
			return name, nil
		}
	}
	return "", errors.New("название должно содержать хотя бы одну букву")
}

// EntrySum разбирает денежную сумму вида "123.45" (допускается запятая)
// и переводит ее в минорные единицы. Сумма должна быть положительной,
// знак операции расход/доход проставляет обработчик.
func EntrySum(raw string) (int64, error) {
	text := strings.ReplaceAll(SanitizeText(raw), ",", ".")
	if text == "" {
		return 0, ErrEmptyInput
	}

	whole, frac, _ := strings.Cut(text, ".")
	if whole == "" {
		return 0, errors.New("сумма должна начинаться с цифры")
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("не похоже на число: %q", raw)
	}
	if major < 0 {
		return 0, errors.New("сумма должна быть больше нуля")
	}

	var minor int64
	switch len(frac) {
	case 0:
	case 1:
		frac += "0"
		fallthrough
	case 2:
		parsed, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("не похоже на число: %q", raw)
		}
		minor = int64(parsed)
	default:
		return 0, errors.New("в сумме не может быть больше двух знаков после точки")
	}

	sum := major*100 + minor
	if sum == 0 {
		return 0, errors.New("сумма должна быть больше нуля")
	}
	if sum > MaxEntrySum {
		return 0, errors.New("слишком большая сумма")
	}
	return sum, nil
}

// EntryDate разбирает дату операции: "2006-01-02" или "2006-01-02 15:04"
// в часовом поясе loc.
func EntryDate(raw string, loc *time.Location) (time.Time, error) {
	text := SanitizeText(raw)
	if text == "" {
		return time.Time{}, ErrEmptyInput
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, text, loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("дата должна быть в формате ГГГГ-ММ-ДД или ГГГГ-ММ-ДД ЧЧ:ММ, получено %q", raw)
}

// Currency проверяет код валюты: только буквы, от 3 до 10 символов.
// Возвращает код в верхнем регистре.
func Currency(raw string) (string, error) {
	code := SanitizeText(raw)
	if code == "" {
		return "", ErrEmptyInput
	}

	length := utf8.RuneCountInString(code)
	if length < MinCurrencyLen || length > MaxCurrencyLen {
		return "", fmt.Errorf("код валюты должен быть от %d до %d букв", MinCurrencyLen, MaxCurrencyLen)
	}

	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", errors.New("код валюты может состоять только из букв")
		}
	}
	return strings.ToUpper(code), nil
}
