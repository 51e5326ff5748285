package timecalc_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"shift-log-bot/pkg/timecalc"
)

func settings480() timecalc.AccountingSettings {
	return timecalc.AccountingSettings{BaseShiftMinutes: 480, AccountingMonthStartDay: 1}
}

func odo(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func shift(start, end string) timecalc.ShiftRecord {
	return timecalc.ShiftRecord{
		Date:      time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
	}
}

func TestCalculate_OvernightWithMeal(t *testing.T) {
	// GIVEN: ночная смена 22:00-06:00 с обедом 30 минут
	// WHEN: считаем при базе 480
	// THEN: 450 отработано, переработок нет
	r := shift("22:00", "06:00")
	r.MealMinutes = 30

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 450, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 0, calc.Overtime100Minutes)
	assert.True(t, calc.Distance.IsZero())
}

func TestCalculate_HolidayAllAt100(t *testing.T) {
	r := shift("22:00", "06:00")
	r.MealMinutes = 30
	r.IsHoliday = true

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 450, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 450, calc.Overtime100Minutes)
}

func TestCalculate_OverBase(t *testing.T) {
	r := shift("08:00", "19:00")
	r.MealMinutes = 60

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 600, calc.WorkedMinutes)
	assert.Equal(t, 120, calc.Overtime50Minutes)
	assert.Equal(t, 0, calc.Overtime100Minutes)
	assert.Equal(t, "over_base", timecalc.OvertimeRuleName(r, settings480()))
}

func TestCalculate_ExactlyBase(t *testing.T) {
	calc := timecalc.Calculate(shift("08:00", "16:00"), settings480())

	assert.Equal(t, 480, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
}

func TestCalculate_OnCallNoOvertime(t *testing.T) {
	r := shift("08:00", "20:00")
	r.IsOnCall = true

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 720, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 0, calc.Overtime100Minutes)
	assert.Equal(t, "on_call", timecalc.OvertimeRuleName(r, settings480()))
}

func TestCalculate_HolidayBeatsOnCall(t *testing.T) {
	r := shift("08:00", "20:00")
	r.IsOnCall = true
	r.IsHoliday = true

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 720, calc.Overtime100Minutes)
	assert.Equal(t, "holiday", timecalc.OvertimeRuleName(r, settings480()))
}

func TestCalculate_DayOff(t *testing.T) {
	// GIVEN: выходной с заполненным временем и одометром
	// WHEN: считаем
	// THEN: минуты нулевые, пробег сохраняется
	r := shift("08:00", "20:00")
	r.IsDayOff = true
	r.IsHoliday = true
	r.OdometerStart = odo(1000)
	r.OdometerEnd = odo(1040)

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 0, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 0, calc.Overtime100Minutes)
	assert.True(t, calc.Distance.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "day_off", timecalc.OvertimeRuleName(r, settings480()))
}

func TestCalculate_DeductionsClampAtZero(t *testing.T) {
	r := shift("09:00", "10:00")
	r.MealMinutes = 45
	r.RestMinutes = 45

	calc := timecalc.Calculate(r, settings480())

	assert.Equal(t, 0, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 0, calc.Overtime100Minutes)
}

func TestCalculate_MoreDeductionsNeverIncreaseWorked(t *testing.T) {
	prev := -1
	for meal := 600; meal >= 0; meal -= 15 {
		r := shift("08:00", "18:00")
		r.MealMinutes = meal
		worked := timecalc.Calculate(r, settings480()).WorkedMinutes
		if prev >= 0 {
			assert.GreaterOrEqual(t, worked, prev, "meal=%d", meal)
		}
		prev = worked
	}
}

func TestCalculate_ZeroLengthShift(t *testing.T) {
	calc := timecalc.Calculate(shift("07:00", "07:00"), settings480())

	assert.Equal(t, 0, calc.WorkedMinutes)
	assert.Equal(t, 0, calc.Overtime50Minutes)
	assert.Equal(t, 0, calc.Overtime100Minutes)
}

func TestCalculate_ZeroBaseMakesAllOvertime(t *testing.T) {
	s := timecalc.AccountingSettings{BaseShiftMinutes: 0}

	calc := timecalc.Calculate(shift("08:00", "12:00"), s)

	assert.Equal(t, 240, calc.WorkedMinutes)
	assert.Equal(t, 240, calc.Overtime50Minutes)
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		start, end decimal.NullDecimal
		want       decimal.Decimal
	}{
		{"both present", odo(120), odo(185), decimal.NewFromInt(65)},
		{"fractional", decimal.NewNullDecimal(decimal.RequireFromString("100.4")), decimal.NewNullDecimal(decimal.RequireFromString("110.1")), decimal.RequireFromString("9.7")},
		{"end below start", odo(200), odo(150), decimal.Zero},
		{"missing start", decimal.NullDecimal{}, odo(30), decimal.NewFromInt(30)},
		{"missing end", odo(30), decimal.NullDecimal{}, decimal.Zero},
		{"both missing", decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := timecalc.ShiftRecord{OdometerStart: tt.start, OdometerEnd: tt.end}
			got := timecalc.Distance(r)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}
