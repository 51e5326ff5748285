package models

import (
	"time"

	"github.com/shopspring/decimal"

	"shift-log-bot/pkg/timecalc"
)

// ShiftEntry - запись о смене, одна на пользователя за дату.
// Вычисляемые значения (минуты, переработки, пробег) не хранятся.
type ShiftEntry struct {
	ID     uint      `gorm:"primarykey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_shift_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_shift_user_date" json:"date"`

	StartTime string `gorm:"type:varchar(5)" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5)" json:"end_time"`

	MealMinutes int `gorm:"not null" json:"meal_minutes"`
	RestMinutes int `gorm:"not null" json:"rest_minutes"`

	IsHoliday bool `gorm:"not null" json:"is_holiday"`
	IsOnCall  bool `gorm:"not null" json:"is_on_call"`
	IsDayOff  bool `gorm:"not null" json:"is_day_off"`

	OdometerStart decimal.NullDecimal `gorm:"type:text" json:"odometer_start"`
	OdometerEnd   decimal.NullDecimal `gorm:"type:text" json:"odometer_end"`

	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftEntry) TableName() string {
	return "shift_entries"
}

// NewShiftEntry переносит смену в модель хранения
func NewShiftEntry(userID uint, r timecalc.ShiftRecord) *ShiftEntry {
	return &ShiftEntry{
		UserID:          userID,
		Date:            DateOf(r.Date),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		MealMinutes:     r.MealMinutes,
		RestMinutes:     r.RestMinutes,
		IsHoliday:       r.IsHoliday,
		IsOnCall:        r.IsOnCall,
		IsDayOff:        r.IsDayOff,
		OdometerStart:   r.OdometerStart,
		OdometerEnd:     r.OdometerEnd,
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
	}
}

// Record возвращает смену в виде, понятном калькулятору
func (e *ShiftEntry) Record() timecalc.ShiftRecord {
	return timecalc.ShiftRecord{
		Date:            DateOf(e.Date),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		MealMinutes:     e.MealMinutes,
		RestMinutes:     e.RestMinutes,
		IsHoliday:       e.IsHoliday,
		IsOnCall:        e.IsOnCall,
		IsDayOff:        e.IsDayOff,
		OdometerStart:   e.OdometerStart,
		OdometerEnd:     e.OdometerEnd,
		ReferenceNumber: e.ReferenceNumber,
		Notes:           e.Notes,
	}
}

// Records переводит список записей в смены
func Records(entries []*ShiftEntry) []timecalc.ShiftRecord {
	records := make([]timecalc.ShiftRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return records
}
