package handler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-log-bot/pkg/timecalc"
)

var testNow = time.Date(2024, 3, 15, 21, 30, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"05.03.2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"05-03-2023", time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"5.3.2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"31.12", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"сегодня", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"вчера", time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseDate("32.01.2024", testNow)
	assert.Error(t, err)
	_, err = parseDate("завтра", testNow)
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	y, m, err := parseMonth("", testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, y)

	y, m, err = parseMonth("02.2023", testNow)
	require.NoError(t, err)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.February, m)

	y, m, err = parseMonth("11", testNow)
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.November, m)

	_, _, err = parseMonth("13", testNow)
	assert.Error(t, err)
}

func TestParseShiftArgs_Full(t *testing.T) {
	in, err := parseShiftArgs("05.03 22:00 6:00 meal=30 rest=15 oncall odo=1000-1080,5 ref=A-17 -- ночной выезд", testNow)
	require.NoError(t, err)

	r := in.Record
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, "22:00", r.StartTime)
	assert.Equal(t, "06:00", r.EndTime)
	assert.Equal(t, 30, r.MealMinutes)
	assert.Equal(t, 15, r.RestMinutes)
	assert.True(t, r.IsOnCall)
	assert.False(t, in.HolidayExplicit)
	assert.True(t, r.OdometerEnd.Decimal.Equal(decimal.RequireFromString("1080.5")))
	assert.Equal(t, "A-17", r.ReferenceNumber)
	assert.Equal(t, "ночной выезд", r.Notes)
}

func TestParseShiftArgs_DefaultsToToday(t *testing.T) {
	in, err := parseShiftArgs("08:00 17:00", testNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), in.Record.Date)
	assert.Equal(t, 0, in.Record.MealMinutes)
}

func TestParseShiftArgs_HolidayFlag(t *testing.T) {
	in, err := parseShiftArgs("08:00 17:00 holiday", testNow)
	require.NoError(t, err)
	assert.True(t, in.HolidayExplicit)
	assert.True(t, in.Record.IsHoliday)

	in, err = parseShiftArgs("08:00 17:00 праздник=нет", testNow)
	require.NoError(t, err)
	assert.True(t, in.HolidayExplicit)
	assert.False(t, in.Record.IsHoliday)
}

func TestParseShiftArgs_Errors(t *testing.T) {
	tests := []string{
		"",
		"08:00",
		"05.03",
		"08:00 17:00 meal=abc",
		"08:00 17:00 meal",
		"08:00 17:00 odo=100",
		"08:00 17:00 odo=x-200",
		"08:00 17:00 bonus=1",
	}

	for _, args := range tests {
		t.Run(args, func(t *testing.T) {
			_, err := parseShiftArgs(args, testNow)
			assert.Error(t, err)
		})
	}
}

func TestParseOdometer_PartialReading(t *testing.T) {
	start, end, err := parseOdometer("1200-")
	require.NoError(t, err)
	assert.True(t, start.Valid)
	assert.False(t, end.Valid)
}

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("01.03 05.03", testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, 5, to.Day())

	from, to, err = parseDateRange("10.03.2024", testNow)
	require.NoError(t, err)
	assert.Equal(t, from, to)

	_, _, err = parseDateRange("", testNow)
	assert.Error(t, err)
}

func TestParseRotationArgs(t *testing.T) {
	p, anchor, err := parseRotationArgs("4x2 01.03.2024", testNow)
	require.NoError(t, err)
	assert.Equal(t, &timecalc.RotationPattern{WorkDays: 4, OffDays: 2}, p)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), anchor)

	_, anchor, err = parseRotationArgs("2/2", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), anchor)

	_, _, err = parseRotationArgs("0x2", testNow)
	assert.Error(t, err)
	_, _, err = parseRotationArgs("", testNow)
	assert.Error(t, err)
}

func TestParseBaseShift(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"8:00", 480},
		{"7:30", 450},
		{"510", 510},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := parseBaseShift(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseBaseShift("8:75")
	assert.Error(t, err)
	_, err = parseBaseShift("восемь")
	assert.Error(t, err)
}

func TestParseSwitch(t *testing.T) {
	on, err := parseSwitch("ON")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = parseSwitch("выкл")
	require.NoError(t, err)
	assert.False(t, on)

	_, err = parseSwitch("maybe")
	assert.Error(t, err)
}
