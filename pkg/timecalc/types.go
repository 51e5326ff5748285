// Package timecalc считает отработанное время по сменам: переработки двух уровней,
// итоги за учетный месяц и график ротации "N рабочих через M выходных".
//
// Пакет не читает часы, не ходит в базу и не пишет логи. Все функции зависят
// только от аргументов и безопасны для параллельного вызова.
package timecalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftRecord - одна смена пользователя за дату
type ShiftRecord struct {
	Date      time.Time
	StartTime string // ЧЧ:ММ
	EndTime   string // ЧЧ:ММ

	MealMinutes int
	RestMinutes int

	IsHoliday bool
	IsOnCall  bool
	IsDayOff  bool

	// Показания одометра необязательны
	OdometerStart decimal.NullDecimal
	OdometerEnd   decimal.NullDecimal

	ReferenceNumber string
	Notes           string
}

// RotationPattern - цикл "WorkDays рабочих, OffDays выходных"
type RotationPattern struct {
	WorkDays int
	OffDays  int
}

// CycleLength возвращает длину цикла в днях
func (p RotationPattern) CycleLength() int {
	return p.WorkDays + p.OffDays
}

// AccountingSettings - настройки учета пользователя
type AccountingSettings struct {
	BaseShiftMinutes        int
	AccountingMonthStartDay int
	Rotation                *RotationPattern
	RotationAnchor          *time.Time

	// Влияет только на отображение, расчеты его не учитывают
	DistanceTrackingEnabled bool
}

// Calculation - вычисленные значения по смене
type Calculation struct {
	WorkedMinutes      int
	Overtime50Minutes  int
	Overtime100Minutes int
	Distance           decimal.Decimal
}

// MonthSummary - итоги за набор смен
type MonthSummary struct {
	Calculation
	WorkedDayCount int
}
