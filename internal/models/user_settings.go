package models

import (
	"time"

	"shift-log-bot/pkg/timecalc"
)

// UserSettings - настройки учета пользователя
type UserSettings struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	BaseShiftMinutes        int `gorm:"not null" json:"base_shift_minutes"`
	AccountingMonthStartDay int `gorm:"not null" json:"accounting_month_start_day"`

	// График не задан, пока RotationWorkDays == 0
	RotationWorkDays int        `gorm:"not null" json:"rotation_work_days"`
	RotationOffDays  int        `gorm:"not null" json:"rotation_off_days"`
	RotationAnchor   *time.Time `gorm:"type:date" json:"rotation_anchor"`

	DistanceTrackingEnabled bool `gorm:"not null" json:"distance_tracking_enabled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// HasRotation проверяет, задан ли график ротации
func (s *UserSettings) HasRotation() bool {
	return s.RotationWorkDays > 0 && s.RotationAnchor != nil
}

// SetRotation задает график, nil сбрасывает его
func (s *UserSettings) SetRotation(p *timecalc.RotationPattern, anchor time.Time) {
	if p == nil {
		s.RotationWorkDays = 0
		s.RotationOffDays = 0
		s.RotationAnchor = nil
		return
	}
	a := DateOf(anchor)
	s.RotationWorkDays = p.WorkDays
	s.RotationOffDays = p.OffDays
	s.RotationAnchor = &a
}

// Accounting возвращает настройки в виде, понятном калькулятору
func (s *UserSettings) Accounting() timecalc.AccountingSettings {
	as := timecalc.AccountingSettings{
		BaseShiftMinutes:        s.BaseShiftMinutes,
		AccountingMonthStartDay: s.AccountingMonthStartDay,
		DistanceTrackingEnabled: s.DistanceTrackingEnabled,
	}
	if s.HasRotation() {
		anchor := DateOf(*s.RotationAnchor)
		as.Rotation = &timecalc.RotationPattern{WorkDays: s.RotationWorkDays, OffDays: s.RotationOffDays}
		as.RotationAnchor = &anchor
	}
	return as
}
