package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shift-log-bot/internal/models"
	"shift-log-bot/pkg/timecalc"
)

func newTestDB(t *testing.T) (*gorm.DB, *logrus.Logger) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: живет в одном соединении
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	log, _ := test.NewNullLogger()
	return db, log
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// USERS
// =============================================================================

func TestUserRepository_CRUD(t *testing.T) {
	db, log := newTestDB(t)
	repo, err := NewGormUserRepository(db, log)
	require.NoError(t, err)

	user := &models.User{ChatID: 100, FirstName: "Иван", Role: models.RoleClient}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	assert.ErrorIs(t, repo.Create(&models.User{ChatID: 100, FirstName: "Дубль"}), ErrUserExists)

	got, err := repo.GetByChatID(100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Иван", got.FirstName)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), byID.ChatID)

	missing, err := repo.GetByChatID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.UpdateRole(100, models.RoleAdmin))
	total, admins, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, admins)

	require.NoError(t, repo.Delete(100))
	assert.ErrorIs(t, repo.Delete(100), ErrUserNotFoundInDB)
}

// =============================================================================
// SHIFT ENTRIES
// =============================================================================

func TestShiftEntryRepository_UpsertReplacesSameDate(t *testing.T) {
	// GIVEN: запись за 5 марта
	// WHEN: сохраняем другую запись за ту же дату
	// THEN: запись одна, поля новые
	db, log := newTestDB(t)
	repo, err := NewGormShiftEntryRepository(db, log)
	require.NoError(t, err)

	first := models.NewShiftEntry(1, timecalc.ShiftRecord{Date: day(2024, 3, 5), StartTime: "08:00", EndTime: "17:00"})
	created, err := repo.Upsert(first)
	require.NoError(t, err)
	assert.True(t, created)

	second := models.NewShiftEntry(1, timecalc.ShiftRecord{
		Date:          time.Date(2024, 3, 5, 15, 0, 0, 0, time.FixedZone("MSK", 3*3600)),
		StartTime:     "22:00",
		EndTime:       "06:00",
		MealMinutes:   30,
		OdometerStart: decimal.NewNullDecimal(decimal.RequireFromString("1000.5")),
		OdometerEnd:   decimal.NewNullDecimal(decimal.RequireFromString("1042.7")),
	})
	created, err = repo.Upsert(second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	entries, err := repo.ListByUserInRange(1, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "22:00", entries[0].StartTime)
	assert.Equal(t, 30, entries[0].MealMinutes)
	assert.True(t, entries[0].OdometerEnd.Valid)
	assert.True(t, timecalc.Distance(entries[0].Record()).Equal(decimal.RequireFromString("42.2")))
}

func TestShiftEntryRepository_RangeIsInclusiveAndOrdered(t *testing.T) {
	db, log := newTestDB(t)
	repo, err := NewGormShiftEntryRepository(db, log)
	require.NoError(t, err)

	for _, d := range []time.Time{day(2024, 3, 21), day(2024, 2, 20), day(2024, 2, 21), day(2024, 3, 20)} {
		_, err := repo.Upsert(models.NewShiftEntry(7, timecalc.ShiftRecord{Date: d, StartTime: "08:00", EndTime: "16:00"}))
		require.NoError(t, err)
	}
	_, err = repo.Upsert(models.NewShiftEntry(8, timecalc.ShiftRecord{Date: day(2024, 3, 1)}))
	require.NoError(t, err)

	dates, err := repo.ListDatesByUserInRange(7, day(2024, 2, 21), day(2024, 3, 20))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 2, 21), day(2024, 3, 20)}, dates)
}

func TestShiftEntryRepository_Delete(t *testing.T) {
	db, log := newTestDB(t)
	repo, err := NewGormShiftEntryRepository(db, log)
	require.NoError(t, err)

	_, err = repo.Upsert(models.NewShiftEntry(1, timecalc.ShiftRecord{Date: day(2024, 3, 5), IsDayOff: true}))
	require.NoError(t, err)
	_, err = repo.Upsert(models.NewShiftEntry(1, timecalc.ShiftRecord{Date: day(2024, 3, 6), IsDayOff: true}))
	require.NoError(t, err)

	deleted, err := repo.DeleteByUserAndDate(1, day(2024, 3, 5))
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByUserAndDate(1, day(2024, 3, 5))
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, repo.DeleteByUserID(1))
	got, err := repo.GetByUserAndDate(1, day(2024, 3, 6))
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSettingsRepository_SaveAndLoad(t *testing.T) {
	db, log := newTestDB(t)
	repo, err := NewGormSettingsRepository(db, log)
	require.NoError(t, err)

	none, err := repo.GetByUserID(3)
	require.NoError(t, err)
	assert.Nil(t, none)

	s := &models.UserSettings{UserID: 3, BaseShiftMinutes: 0, AccountingMonthStartDay: 21}
	s.SetRotation(&timecalc.RotationPattern{WorkDays: 4, OffDays: 2}, day(2024, 1, 1))
	require.NoError(t, repo.Save(s))

	// повторное сохранение новой структуры не плодит записи
	again := &models.UserSettings{UserID: 3, BaseShiftMinutes: 420, AccountingMonthStartDay: 21}
	require.NoError(t, repo.Save(again))
	assert.Equal(t, s.ID, again.ID)

	got, err := repo.GetByUserID(3)
	require.NoError(t, err)
	assert.Equal(t, 420, got.BaseShiftMinutes)
	assert.False(t, got.HasRotation())

	require.NoError(t, repo.Save(s))
	list, err := repo.ListWithRotation()
	require.NoError(t, err)
	require.Len(t, list, 1)

	acc := list[0].Accounting()
	require.NotNil(t, acc.Rotation)
	assert.Equal(t, 4, acc.Rotation.WorkDays)
	assert.Equal(t, day(2024, 1, 1), *acc.RotationAnchor)
	assert.Equal(t, 0, acc.BaseShiftMinutes)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidayRepository(t *testing.T) {
	db, log := newTestDB(t)
	repo, err := NewGormHolidayRepository(db, log)
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceYear(2024, []models.Holiday{
		{Date: day(2024, 1, 1), Year: 2024, Month: 1, Day: 1},
		{Date: day(2024, 1, 13), Year: 2024, Month: 1, Day: 13, Weekend: true},
		{Date: day(2024, 5, 9), Year: 2024, Month: 5, Day: 9},
	}))
	require.NoError(t, repo.ReplaceYear(2025, []models.Holiday{
		{Date: day(2025, 1, 1), Year: 2025, Month: 1, Day: 1},
	}))

	ok, err := repo.IsHoliday(time.Date(2024, 5, 9, 13, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsHoliday(day(2024, 5, 10))
	require.NoError(t, err)
	assert.False(t, ok)

	// обычный выходной из календаря праздником не считается
	ok, err = repo.IsHoliday(day(2024, 1, 13))
	require.NoError(t, err)
	assert.False(t, ok)

	inRange, err := repo.GetInRange(day(2024, 4, 21), day(2024, 5, 20))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	require.NoError(t, repo.ReplaceYear(2024, []models.Holiday{
		{Date: day(2024, 2, 23), Year: 2024, Month: 2, Day: 23},
	}))
	replaced, err := repo.GetByYear(2024)
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.Equal(t, 23, replaced[0].Day)

	next, err := repo.GetByYear(2025)
	require.NoError(t, err)
	assert.Len(t, next, 1)
}

func TestHolidayRepository_ReplaceYearRollsBackOnError(t *testing.T) {
	// GIVEN: загружен год из трех дней
	// WHEN: новая загрузка падает на дубле даты
	// THEN: старые дни года на месте
	db, log := newTestDB(t)
	repo, err := NewGormHolidayRepository(db, log)
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceYear(2024, []models.Holiday{
		{Date: day(2024, 1, 1), Year: 2024, Month: 1, Day: 1},
		{Date: day(2024, 1, 2), Year: 2024, Month: 1, Day: 2},
		{Date: day(2024, 1, 3), Year: 2024, Month: 1, Day: 3},
	}))

	err = repo.ReplaceYear(2024, []models.Holiday{
		{Date: day(2024, 1, 1), Year: 2024, Month: 1, Day: 1},
		{Date: day(2024, 1, 1), Year: 2024, Month: 1, Day: 1},
	})
	require.Error(t, err)

	left, err := repo.GetByYear(2024)
	require.NoError(t, err)
	assert.Len(t, left, 3)
}
