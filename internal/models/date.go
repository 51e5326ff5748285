package models

import "time"

// DateOf возвращает календарную дату t как полночь UTC.
// Все даты в базе хранятся в этом виде, чтобы сравнение строк в SQLite
// совпадало со сравнением дат.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
