package timecalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shift-log-bot/pkg/timecalc"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodWindow(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		startDay  int
		wantStart time.Time
		wantLast  time.Time
	}{
		{"calendar month", 2024, time.February, 1, day(2024, 2, 1), day(2024, 2, 29)},
		{"starts on 21st", 2024, time.February, 21, day(2024, 2, 21), day(2024, 3, 20)},
		{"crosses year", 2024, time.December, 15, day(2024, 12, 15), day(2025, 1, 14)},
		{"overflowed start day", 2023, time.February, 31, day(2023, 3, 3), day(2023, 3, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := timecalc.PeriodWindow(tt.year, tt.month, tt.startDay, time.UTC)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantLast, timecalc.StartOfDay(w.End))
			assert.Equal(t, 23, w.End.Hour())
			assert.Equal(t, 59, w.End.Second())
		})
	}
}

func TestAccountingWindow_ReferenceBeforeStartDay(t *testing.T) {
	// GIVEN: учетный месяц начинается 21-го
	// WHEN: берем окно для 15 марта
	// THEN: это [21 февраля, 20 марта]
	w := timecalc.AccountingWindow(day(2024, 3, 15), 21)

	assert.Equal(t, day(2024, 2, 21), w.Start)
	assert.Equal(t, day(2024, 3, 20), timecalc.StartOfDay(w.End))
	assert.Equal(t, "[2024-02-21, 2024-03-20]", w.String())
}

func TestAccountingWindow_ReferenceOnStartDay(t *testing.T) {
	w := timecalc.AccountingWindow(day(2024, 3, 21), 21)

	assert.Equal(t, day(2024, 3, 21), w.Start)
	assert.Equal(t, day(2024, 4, 20), timecalc.StartOfDay(w.End))
}

func TestAccountingWindow_StartDayOneIsCalendarMonth(t *testing.T) {
	w := timecalc.AccountingWindow(day(2024, 3, 15), 1)

	assert.Equal(t, day(2024, 3, 1), w.Start)
	assert.Equal(t, day(2024, 3, 31), timecalc.StartOfDay(w.End))
}

func TestAccountingWindow_OverflowedStartDayContainsReference(t *testing.T) {
	// GIVEN: учетный месяц с 31-го, в феврале такого дня нет
	// WHEN: считаем окно для 1 марта 2024
	// THEN: окно январское (31.01 - 01.03) и содержит дату
	w := timecalc.AccountingWindow(day(2024, 3, 1), 31)

	assert.True(t, w.Contains(day(2024, 3, 1)))
	assert.Equal(t, day(2024, 1, 31), w.Start)
	assert.Equal(t, day(2024, 3, 1), timecalc.StartOfDay(w.End))

	y, m := timecalc.CurrentPeriodStart(day(2024, 3, 1), 31)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.January, m)

	// следующий день уже в "февральском" окне, начавшемся 2 марта
	next := timecalc.AccountingWindow(day(2024, 3, 2), 31)
	assert.Equal(t, day(2024, 3, 2), next.Start)
	assert.True(t, next.Contains(day(2024, 3, 30)))
}

func TestCurrentPeriodStart(t *testing.T) {
	y, m := timecalc.CurrentPeriodStart(day(2024, 1, 10), 21)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = timecalc.CurrentPeriodStart(day(2024, 1, 25), 21)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.January, m)
}

func TestWindow_Contains(t *testing.T) {
	w := timecalc.PeriodWindow(2024, time.February, 21, time.UTC)

	assert.True(t, w.Contains(day(2024, 2, 21)))
	assert.True(t, w.Contains(time.Date(2024, 3, 20, 23, 30, 0, 0, time.UTC)))
	assert.False(t, w.Contains(day(2024, 2, 20)))
	assert.False(t, w.Contains(day(2024, 3, 21)))

	msk := time.FixedZone("MSK", 3*3600)
	assert.True(t, w.Contains(time.Date(2024, 3, 20, 1, 0, 0, 0, msk)))
}

func TestWindow_NextPrev(t *testing.T) {
	w := timecalc.PeriodWindow(2024, time.December, 21, time.UTC)

	next := w.Next()
	assert.Equal(t, day(2025, 1, 21), next.Start)
	assert.Equal(t, day(2025, 2, 20), timecalc.StartOfDay(next.End))

	prev := w.Prev()
	assert.Equal(t, day(2024, 11, 21), prev.Start)

	assert.Equal(t, w.Start, next.Prev().Start)
}

func TestWindow_NextKeepsNominalStartDay(t *testing.T) {
	jan := timecalc.PeriodWindow(2023, time.January, 31, time.UTC)
	feb := jan.Next()
	mar := feb.Next()

	y, m := feb.Month()
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.February, m)
	assert.Equal(t, day(2023, 3, 31), mar.Start)
}

func TestWindow_Days(t *testing.T) {
	w := timecalc.PeriodWindow(2024, time.February, 1, time.UTC)
	days := w.Days()

	assert.Len(t, days, 29)
	assert.Equal(t, day(2024, 2, 1), days[0])
	assert.Equal(t, day(2024, 2, 29), days[len(days)-1])
}
