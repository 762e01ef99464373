package models

import "time"

// DialogData накапливает ответы пользователя по шагам диалога
// (регистрация, создание категории, создание записи) до подтверждения.
type DialogData struct {
	// регистрация и профиль
	Currency string

	// создание и изменение категории
	CategoryName string
	CategoryType string
	CategoryID   uint

	// создание записи
	EntrySum  int64
	EntryDate time.Time
}
