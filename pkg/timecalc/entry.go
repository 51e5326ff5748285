package timecalc

import "github.com/shopspring/decimal"

// overtimeRule - одно правило начисления переработки.
// Правила проверяются по порядку, срабатывает первое подходящее.
type overtimeRule struct {
	name    string
	applies func(r ShiftRecord, worked int, s AccountingSettings) bool
	split   func(worked int, s AccountingSettings) (ot50, ot100 int)
}

// Праздник важнее дежурства, дежурство важнее обычной переработки
var overtimeRules = []overtimeRule{
	{
		name:    "holiday",
		applies: func(r ShiftRecord, _ int, _ AccountingSettings) bool { return r.IsHoliday },
		split:   func(worked int, _ AccountingSettings) (int, int) { return 0, worked },
	},
	{
		name:    "on_call",
		applies: func(r ShiftRecord, _ int, _ AccountingSettings) bool { return r.IsOnCall },
		split:   func(int, AccountingSettings) (int, int) { return 0, 0 },
	},
	{
		name: "over_base",
		applies: func(_ ShiftRecord, worked int, s AccountingSettings) bool {
			return worked > s.BaseShiftMinutes
		},
		split: func(worked int, s AccountingSettings) (int, int) {
			return worked - s.BaseShiftMinutes, 0
		},
	},
	{
		name:    "regular",
		applies: func(ShiftRecord, int, AccountingSettings) bool { return true },
		split:   func(int, AccountingSettings) (int, int) { return 0, 0 },
	},
}

// Calculate считает отработанные минуты, переработки и пробег одной смены
func Calculate(r ShiftRecord, s AccountingSettings) Calculation {
	calc := Calculation{Distance: Distance(r)}

	if r.IsDayOff {
		return calc
	}

	gross := ShiftDuration(r.StartTime, r.EndTime)
	calc.WorkedMinutes = clampMinutes(gross - r.MealMinutes - r.RestMinutes)

	rule := matchOvertimeRule(r, calc.WorkedMinutes, s)
	ot50, ot100 := rule.split(calc.WorkedMinutes, s)
	calc.Overtime50Minutes = clampMinutes(ot50)
	calc.Overtime100Minutes = clampMinutes(ot100)

	return calc
}

// OvertimeRuleName возвращает имя правила, по которому посчитана переработка смены.
// Для выходного дня возвращает "day_off".
func OvertimeRuleName(r ShiftRecord, s AccountingSettings) string {
	if r.IsDayOff {
		return "day_off"
	}
	worked := clampMinutes(ShiftDuration(r.StartTime, r.EndTime) - r.MealMinutes - r.RestMinutes)
	return matchOvertimeRule(r, worked, s).name
}

// Distance возвращает пробег по одометру, не меньше нуля.
// Отсутствующее показание считается нулем.
func Distance(r ShiftRecord) decimal.Decimal {
	start := decimal.Zero
	if r.OdometerStart.Valid {
		start = r.OdometerStart.Decimal
	}
	end := decimal.Zero
	if r.OdometerEnd.Valid {
		end = r.OdometerEnd.Decimal
	}

	d := end.Sub(start)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func matchOvertimeRule(r ShiftRecord, worked int, s AccountingSettings) overtimeRule {
	for _, rule := range overtimeRules {
		if rule.applies(r, worked, s) {
			return rule
		}
	}
	// последнее правило подходит всегда
	return overtimeRules[len(overtimeRules)-1]
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	return m
}
