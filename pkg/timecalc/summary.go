package timecalc

import "github.com/shopspring/decimal"

// Summarize складывает расчеты по всем переданным сменам.
// Фильтрация по периоду - забота вызывающего, см. FilterWindow.
// Пустой список или nil-настройки дают нулевой итог.
func Summarize(records []ShiftRecord, settings *AccountingSettings) MonthSummary {
	summary := MonthSummary{Calculation: Calculation{Distance: decimal.Zero}}
	if settings == nil {
		return summary
	}

	for _, r := range records {
		calc := Calculate(r, *settings)

		summary.WorkedMinutes += calc.WorkedMinutes
		summary.Overtime50Minutes += calc.Overtime50Minutes
		summary.Overtime100Minutes += calc.Overtime100Minutes
		summary.Distance = summary.Distance.Add(calc.Distance)

		if !r.IsDayOff {
			summary.WorkedDayCount++
		}
	}

	return summary
}

// FilterWindow возвращает смены, дата которых попадает в окно
func FilterWindow(records []ShiftRecord, w Window) []ShiftRecord {
	var result []ShiftRecord
	for _, r := range records {
		if w.Contains(r.Date) {
			result = append(result, r)
		}
	}
	return result
}
