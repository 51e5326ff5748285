package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-log-bot/pkg/timecalc"
)

func TestDateOf_DropsClockAndZone(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	got := DateOf(time.Date(2024, 3, 1, 1, 30, 0, 0, msk))

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestShiftEntry_RecordKeepsInput(t *testing.T) {
	in := timecalc.ShiftRecord{
		Date:            time.Date(2024, 3, 5, 14, 0, 0, 0, time.Local),
		StartTime:       "22:00",
		EndTime:         "06:00",
		MealMinutes:     30,
		IsOnCall:        true,
		OdometerStart:   decimal.NewNullDecimal(decimal.RequireFromString("100.5")),
		ReferenceNumber: "A-1",
		Notes:           "ночь",
	}

	entry := NewShiftEntry(7, in)
	assert.Equal(t, uint(7), entry.UserID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), entry.Date)

	out := entry.Record()
	assert.Equal(t, in.StartTime, out.StartTime)
	assert.Equal(t, in.MealMinutes, out.MealMinutes)
	assert.True(t, out.IsOnCall)
	assert.True(t, out.OdometerStart.Decimal.Equal(in.OdometerStart.Decimal))
	assert.False(t, out.OdometerEnd.Valid)
	assert.Equal(t, "A-1", out.ReferenceNumber)
}

func TestUserSettings_Rotation(t *testing.T) {
	s := &UserSettings{BaseShiftMinutes: 480, AccountingMonthStartDay: 21}
	assert.False(t, s.HasRotation())
	assert.Nil(t, s.Accounting().Rotation)

	s.SetRotation(&timecalc.RotationPattern{WorkDays: 4, OffDays: 2}, time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	require.True(t, s.HasRotation())

	as := s.Accounting()
	assert.Equal(t, 480, as.BaseShiftMinutes)
	assert.Equal(t, 21, as.AccountingMonthStartDay)
	require.NotNil(t, as.Rotation)
	assert.Equal(t, 4, as.Rotation.WorkDays)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *as.RotationAnchor)

	s.SetRotation(nil, time.Time{})
	assert.False(t, s.HasRotation())
	assert.Nil(t, s.RotationAnchor)
}

func TestUser_DisplayNameAndRole(t *testing.T) {
	u := &User{FirstName: "Иван", LastName: "Петров", Role: RoleAdmin}

	assert.True(t, u.IsAdmin())
	assert.Equal(t, "Иван Петров", u.DisplayName())
}
