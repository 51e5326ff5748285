package timecalc

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock переводит "ЧЧ:ММ" в минуты от полуночи.
// Пустая, битая или строка без двоеточия дает 0, ошибки нет.
// Битой считается и строка с часами вне 0..23, минутами вне 0..59
// или лишним сегментом ("24:00", "8:30:00"): такое время не лежит в сутках,
// и ShiftDuration не должен выходить за [0, 1440).
// Для валидации ввода не годится.
func ParseClock(s string) int {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0
	}

	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0
	}

	return hours*60 + minutes
}

// ShiftDuration возвращает длительность смены в минутах.
// Если конец раньше начала, смена переходит через полночь.
// Одинаковое время начала и конца дает 0, а не сутки.
func ShiftDuration(start, end string) int {
	d := ParseClock(end) - ParseClock(start)
	if d < 0 {
		d += minutesPerDay
	}
	return d
}
