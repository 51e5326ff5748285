package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shift-log-bot/internal/service"
	"shift-log-bot/pkg/timecalc"
)

// parseDate разбирает дату в форматах ДД.ММ.ГГГГ, ДД-ММ-ГГГГ, ДД.ММ, ДД-ММ,
// а также "сегодня" и "вчера". Без года берется год now.
func parseDate(dateStr string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(dateStr)) {
	case "сегодня", "today":
		return dateOnly(now), nil
	case "вчера", "yesterday":
		return dateOnly(now).AddDate(0, 0, -1), nil
	}

	formats := []string{
		"02.01.2006",
		"02-01-2006",
		"2.1.2006",
		"02.01",
		"02-01",
		"2.1",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			year := t.Year()
			// Если указан только день и месяц, добавляем текущий год
			if !strings.Contains(format, "2006") {
				year = now.Year()
			}
			return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, now.Location()), nil
		}
	}

	return time.Time{}, fmt.Errorf("неверный формат даты %q. Используйте ДД.ММ.ГГГГ или ДД.ММ", dateStr)
}

// parseMonth разбирает ММ.ГГГГ, ММ-ГГГГ или ММ. Пустая строка дает year == 0.
func parseMonth(s string, now time.Time) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}

	for _, format := range []string{"01.2006", "01-2006", "1.2006", "01/2006"} {
		if t, err := time.Parse(format, s); err == nil {
			return t.Year(), t.Month(), nil
		}
	}

	if m, err := strconv.Atoi(s); err == nil && m >= 1 && m <= 12 {
		return now.Year(), time.Month(m), nil
	}

	return 0, 0, fmt.Errorf("неверный формат месяца %q. Используйте ММ.ГГГГ", s)
}

func looksLikeDate(s string) bool {
	if strings.Contains(s, ":") || strings.Contains(s, "=") {
		return false
	}
	switch strings.ToLower(s) {
	case "сегодня", "today", "вчера", "yesterday":
		return true
	}
	return strings.ContainsAny(s, ".-")
}

// parseShiftArgs разбирает аргументы /shift:
// [ДАТА] ЧЧ:ММ ЧЧ:ММ [meal=N] [rest=N] [holiday|holiday=no] [oncall] [odo=A-B] [ref=X] [-- заметка]
func parseShiftArgs(args string, now time.Time) (service.ShiftInput, error) {
	var in service.ShiftInput

	head, note, _ := strings.Cut(args, "--")
	in.Record.Notes = strings.TrimSpace(note)

	tokens := strings.Fields(head)
	if len(tokens) == 0 {
		return in, fmt.Errorf("укажите время начала и окончания")
	}

	in.Record.Date = dateOnly(now)
	if looksLikeDate(tokens[0]) {
		d, err := parseDate(tokens[0], now)
		if err != nil {
			return in, err
		}
		in.Record.Date = d
		tokens = tokens[1:]
	}

	if len(tokens) < 2 {
		return in, fmt.Errorf("укажите время начала и окончания в формате ЧЧ:ММ")
	}
	in.Record.StartTime = normalizeClock(tokens[0])
	in.Record.EndTime = normalizeClock(tokens[1])

	for _, tok := range tokens[2:] {
		key, value, hasValue := strings.Cut(tok, "=")
		switch strings.ToLower(key) {
		case "meal", "обед":
			n, err := parseMinutes(value, hasValue)
			if err != nil {
				return in, fmt.Errorf("обед: %w", err)
			}
			in.Record.MealMinutes = n
		case "rest", "отдых":
			n, err := parseMinutes(value, hasValue)
			if err != nil {
				return in, fmt.Errorf("отдых: %w", err)
			}
			in.Record.RestMinutes = n
		case "holiday", "праздник":
			in.HolidayExplicit = true
			in.Record.IsHoliday = !hasValue || isYes(value)
		case "oncall", "дежурство":
			in.Record.IsOnCall = !hasValue || isYes(value)
		case "odo", "одометр":
			start, end, err := parseOdometer(value)
			if err != nil {
				return in, err
			}
			in.Record.OdometerStart, in.Record.OdometerEnd = start, end
		case "ref", "номер":
			in.Record.ReferenceNumber = value
		default:
			return in, fmt.Errorf("неизвестный параметр %q", tok)
		}
	}

	return in, nil
}

// normalizeClock приводит "8:05" к "08:05"
func normalizeClock(s string) string {
	hh, mm, ok := strings.Cut(s, ":")
	if ok && len(hh) == 1 {
		return "0" + hh + ":" + mm
	}
	return s
}

func parseMinutes(value string, hasValue bool) (int, error) {
	if !hasValue {
		return 0, fmt.Errorf("укажите число минут")
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q не число минут", value)
	}
	return n, nil
}

func isYes(v string) bool {
	switch strings.ToLower(v) {
	case "no", "нет", "0", "false", "off":
		return false
	}
	return true
}

// parseOdometer разбирает "A-B"; любая из частей может быть пустой
func parseOdometer(value string) (decimal.NullDecimal, decimal.NullDecimal, error) {
	var start, end decimal.NullDecimal

	a, b, ok := strings.Cut(value, "-")
	if !ok {
		return start, end, fmt.Errorf("одометр указывается как odo=НАЧАЛО-КОНЕЦ")
	}

	for _, part := range []struct {
		raw string
		dst *decimal.NullDecimal
	}{{a, &start}, {b, &end}} {
		raw := strings.ReplaceAll(strings.TrimSpace(part.raw), ",", ".")
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return start, end, fmt.Errorf("показание одометра %q не число", part.raw)
		}
		*part.dst = decimal.NewNullDecimal(d)
	}

	return start, end, nil
}

// parseDateRange разбирает "ДАТА [ДАТА_КОНЦА]"
func parseDateRange(args string, now time.Time) (time.Time, time.Time, error) {
	parts := strings.Fields(args)
	switch len(parts) {
	case 1:
		d, err := parseDate(parts[0], now)
		return d, d, err
	case 2:
		from, err := parseDate(parts[0], now)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, err := parseDate(parts[1], now)
		return from, to, err
	}
	return time.Time{}, time.Time{}, fmt.Errorf("укажите дату или две даты")
}

// parseRotationArgs разбирает "NxM [ДАТА]", без даты нулевым днем считается сегодня
func parseRotationArgs(args string, now time.Time) (*timecalc.RotationPattern, time.Time, error) {
	parts := strings.Fields(args)
	if len(parts) == 0 || len(parts) > 2 {
		return nil, time.Time{}, fmt.Errorf("укажите график и дату первого рабочего дня")
	}

	pattern := timecalc.ParseRotation(parts[0])
	if pattern == nil {
		return nil, time.Time{}, fmt.Errorf("неверный график %q, пример: 4x2", parts[0])
	}

	anchor := dateOnly(now)
	if len(parts) == 2 {
		d, err := parseDate(parts[1], now)
		if err != nil {
			return nil, time.Time{}, err
		}
		anchor = d
	}

	return pattern, anchor, nil
}

func dateOnly(t time.Time) time.Time {
	return timecalc.StartOfDay(t)
}

// parseBaseShift разбирает норму смены: "8:30" или число минут
func parseBaseShift(s string) (int, error) {
	s = strings.TrimSpace(s)
	if hh, mm, ok := strings.Cut(s, ":"); ok {
		h, errH := strconv.Atoi(hh)
		m, errM := strconv.Atoi(mm)
		if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 {
			return 0, fmt.Errorf("неверная норма %q, пример: 8:00 или 480", s)
		}
		return h*60 + m, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("неверная норма %q, пример: 8:00 или 480", s)
	}
	return n, nil
}

// parseSwitch разбирает on/off
func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "вкл", "да", "yes", "1":
		return true, nil
	case "off", "выкл", "нет", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("укажите on или off")
}
