package service

import (
	"fmt"
	"strings"
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/pkg/timecalc"

	"github.com/shopspring/decimal"
)

var weekdayShort = map[time.Weekday]string{
	time.Monday:    "Пн",
	time.Tuesday:   "Вт",
	time.Wednesday: "Ср",
	time.Thursday:  "Чт",
	time.Friday:    "Пт",
	time.Saturday:  "Сб",
	time.Sunday:    "Вс",
}

// FormatMinutes переводит минуты в "7ч 30м"
func FormatMinutes(m int) string {
	if m <= 0 {
		return "0м"
	}
	hours, minutes := m/60, m%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dм", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dч", hours)
	default:
		return fmt.Sprintf("%dч %dм", hours, minutes)
	}
}

// FormatDistance форматирует пробег с одним знаком после запятой
func FormatDistance(d decimal.Decimal) string {
	return d.StringFixed(1) + " км"
}

// FormatEntry форматирует запись и ее расчет
func FormatEntry(e *models.ShiftEntry, as timecalc.AccountingSettings) string {
	r := e.Record()
	calc := timecalc.Calculate(r, as)

	var lines []string
	lines = append(lines, fmt.Sprintf("📅 %s (%s)", r.Date.Format("02.01.2006"), weekdayShort[r.Date.Weekday()]))

	if r.IsDayOff {
		lines = append(lines, "🏖 Выходной")
	} else {
		lines = append(lines, fmt.Sprintf("⏰ %s - %s", r.StartTime, r.EndTime))
		if r.MealMinutes > 0 || r.RestMinutes > 0 {
			lines = append(lines, fmt.Sprintf("🍽 Обед: %d мин, отдых: %d мин", r.MealMinutes, r.RestMinutes))
		}

		var flags []string
		if r.IsHoliday {
			flags = append(flags, "праздник")
		}
		if r.IsOnCall {
			flags = append(flags, "дежурство")
		}
		if len(flags) > 0 {
			lines = append(lines, "🏷 "+strings.Join(flags, ", "))
		}

		lines = append(lines, fmt.Sprintf("✅ Отработано: %s", FormatMinutes(calc.WorkedMinutes)))
		if calc.Overtime50Minutes > 0 {
			lines = append(lines, fmt.Sprintf("➕ Переработка 50%%: %s", FormatMinutes(calc.Overtime50Minutes)))
		}
		if calc.Overtime100Minutes > 0 {
			lines = append(lines, fmt.Sprintf("➕ Переработка 100%%: %s", FormatMinutes(calc.Overtime100Minutes)))
		}
	}

	if as.DistanceTrackingEnabled && (r.OdometerStart.Valid || r.OdometerEnd.Valid) {
		lines = append(lines, fmt.Sprintf("🚗 Пробег: %s", FormatDistance(calc.Distance)))
	}
	if r.ReferenceNumber != "" {
		lines = append(lines, fmt.Sprintf("🔖 Номер: %s", r.ReferenceNumber))
	}
	if r.Notes != "" {
		lines = append(lines, fmt.Sprintf("📝 %s", r.Notes))
	}

	return strings.Join(lines, "\n")
}

// FormatPeriodReport форматирует итоги учетного месяца
func FormatPeriodReport(r *PeriodReport) string {
	var lines []string

	title := fmt.Sprintf("📊 Учетный месяц %s - %s",
		r.Window.Start.Format("02.01.2006"), r.Window.End.Format("02.01.2006"))
	if r.Current {
		title += " (текущий)"
	}
	lines = append(lines, title)
	lines = append(lines, "")

	if len(r.Entries) == 0 {
		lines = append(lines, "📭 Записей пока нет.")
		return strings.Join(lines, "\n")
	}

	sum := r.Summary
	lines = append(lines, fmt.Sprintf("📆 Рабочих дней: %d", sum.WorkedDayCount))
	lines = append(lines, fmt.Sprintf("✅ Отработано: %s", FormatMinutes(sum.WorkedMinutes)))
	lines = append(lines, fmt.Sprintf("➕ Переработка 50%%: %s", FormatMinutes(sum.Overtime50Minutes)))
	lines = append(lines, fmt.Sprintf("➕ Переработка 100%%: %s", FormatMinutes(sum.Overtime100Minutes)))
	if r.Settings.DistanceTrackingEnabled {
		lines = append(lines, fmt.Sprintf("🚗 Пробег: %s", FormatDistance(sum.Distance)))
	}

	return strings.Join(lines, "\n")
}

// FormatEntriesList форматирует записи учетного месяца по строке на день
func FormatEntriesList(r *PeriodReport) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("📋 Записи %s", r.Window.String()))
	lines = append(lines, "")

	if len(r.Entries) == 0 {
		lines = append(lines, "📭 Записей пока нет.")
		return strings.Join(lines, "\n")
	}

	for _, e := range r.Entries {
		rec := e.Record()
		date := fmt.Sprintf("%s %s", rec.Date.Format("02.01"), weekdayShort[rec.Date.Weekday()])
		if rec.IsDayOff {
			lines = append(lines, fmt.Sprintf("%s 🏖 выходной", date))
			continue
		}

		calc := timecalc.Calculate(rec, r.Settings)
		line := fmt.Sprintf("%s %s-%s %s", date, rec.StartTime, rec.EndTime, FormatMinutes(calc.WorkedMinutes))
		if calc.Overtime50Minutes > 0 {
			line += fmt.Sprintf(" +%s", FormatMinutes(calc.Overtime50Minutes))
		}
		if calc.Overtime100Minutes > 0 {
			line += fmt.Sprintf(" ×2 %s", FormatMinutes(calc.Overtime100Minutes))
		}
		if rec.IsOnCall {
			line += " 📟"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// FormatCalendar рисует график на учетный месяц по неделям
func FormatCalendar(w timecalc.Window, days []CalendarDay) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("🗓 График %s", w.String()))
	lines = append(lines, "")
	lines = append(lines, "Пн Вт Ср Чт Пт Сб Вс")

	if len(days) == 0 {
		return strings.Join(lines, "\n")
	}

	var row []string
	// пустые клетки до первого дня
	offset := (int(days[0].Date.Weekday()) + 6) % 7
	for i := 0; i < offset; i++ {
		row = append(row, "  ")
	}

	work := 0
	for _, d := range days {
		row = append(row, calendarCell(d))
		if d.Type == timecalc.DayWork {
			work++
		}
		if len(row) == 7 {
			lines = append(lines, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, " "))
	}

	lines = append(lines, "")
	if days[0].Type == timecalc.DayUnknown {
		lines = append(lines, "❔ График не задан: /setrotation")
	} else {
		lines = append(lines, fmt.Sprintf("Р - рабочий, В - выходной. Рабочих дней: %d", work))
	}
	lines = append(lines, "✓ - есть запись, * - праздник")

	return strings.Join(lines, "\n")
}

func calendarCell(d CalendarDay) string {
	mark := "?"
	switch d.Type {
	case timecalc.DayWork:
		mark = "Р"
	case timecalc.DayOff:
		mark = "В"
	}
	switch {
	case d.Entry != nil:
		mark = "✓"
	case d.Holiday:
		mark += "*"
		return mark
	}
	return mark + " "
}
