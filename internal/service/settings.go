package service

import (
	"fmt"
	"strings"
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/repository"
	"shift-log-bot/pkg/timecalc"

	"github.com/sirupsen/logrus"
)

// Defaults - настройки нового профиля
type Defaults struct {
	BaseShiftMinutes int
	MonthStartDay    int
}

type SettingsService struct {
	repo     repository.SettingsRepository
	defaults Defaults
	logger   *logrus.Logger
}

func NewSettingsService(repo repository.SettingsRepository, defaults Defaults, logger *logrus.Logger) *SettingsService {
	if defaults.MonthStartDay < 1 || defaults.MonthStartDay > 31 {
		defaults.MonthStartDay = 1
	}
	if defaults.BaseShiftMinutes < 0 {
		defaults.BaseShiftMinutes = 480
	}
	return &SettingsService{repo: repo, defaults: defaults, logger: logger}
}

// Get возвращает настройки пользователя, при отсутствии создает их из значений по умолчанию
func (s *SettingsService) Get(userID uint) (*models.UserSettings, error) {
	settings, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения настроек: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	settings = &models.UserSettings{
		UserID:                  userID,
		BaseShiftMinutes:        s.defaults.BaseShiftMinutes,
		AccountingMonthStartDay: s.defaults.MonthStartDay,
	}
	if err := s.repo.Save(settings); err != nil {
		return nil, fmt.Errorf("ошибка сохранения настроек: %w", err)
	}

	s.logger.WithField("user_id", userID).Info("Default settings created")
	return settings, nil
}

// Accounting возвращает настройки в виде для расчетов
func (s *SettingsService) Accounting(userID uint) (timecalc.AccountingSettings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return timecalc.AccountingSettings{}, err
	}
	return settings.Accounting(), nil
}

// SetBaseShift задает норму смены в минутах, от 0 до суток
func (s *SettingsService) SetBaseShift(userID uint, minutes int) (*models.UserSettings, error) {
	if minutes < 0 || minutes > 24*60 {
		return nil, fmt.Errorf("%w: норма должна быть от 0 до 1440 минут", ErrInvalidSettings)
	}
	return s.update(userID, func(us *models.UserSettings) { us.BaseShiftMinutes = minutes })
}

// SetMonthStartDay задает день начала учетного месяца
func (s *SettingsService) SetMonthStartDay(userID uint, day int) (*models.UserSettings, error) {
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: день начала месяца должен быть от 1 до 31", ErrInvalidSettings)
	}
	return s.update(userID, func(us *models.UserSettings) { us.AccountingMonthStartDay = day })
}

// SetRotation задает график ротации с нулевым днем anchor
func (s *SettingsService) SetRotation(userID uint, pattern *timecalc.RotationPattern, anchor time.Time) (*models.UserSettings, error) {
	if pattern == nil || !pattern.IsValid() {
		return nil, fmt.Errorf("%w: в графике должен быть хотя бы один рабочий день", ErrInvalidSettings)
	}
	if anchor.IsZero() {
		return nil, fmt.Errorf("%w: не задана дата начала графика", ErrInvalidSettings)
	}
	return s.update(userID, func(us *models.UserSettings) { us.SetRotation(pattern, anchor) })
}

func (s *SettingsService) ClearRotation(userID uint) (*models.UserSettings, error) {
	return s.update(userID, func(us *models.UserSettings) { us.SetRotation(nil, time.Time{}) })
}

func (s *SettingsService) SetDistanceTracking(userID uint, enabled bool) (*models.UserSettings, error) {
	return s.update(userID, func(us *models.UserSettings) { us.DistanceTrackingEnabled = enabled })
}

// WithRotation возвращает настройки всех пользователей с графиком
func (s *SettingsService) WithRotation() ([]*models.UserSettings, error) {
	return s.repo.ListWithRotation()
}

func (s *SettingsService) Delete(userID uint) error {
	return s.repo.DeleteByUserID(userID)
}

func (s *SettingsService) update(userID uint, apply func(*models.UserSettings)) (*models.UserSettings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	apply(settings)

	if err := s.repo.Save(settings); err != nil {
		return nil, fmt.Errorf("ошибка сохранения настроек: %w", err)
	}
	return settings, nil
}

// FormatSettings форматирует настройки для вывода
func FormatSettings(us *models.UserSettings) string {
	var lines []string
	lines = append(lines, "⚙️ Настройки учета:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("⏱ Норма смены: %s (%d мин)", FormatMinutes(us.BaseShiftMinutes), us.BaseShiftMinutes))
	lines = append(lines, fmt.Sprintf("📅 Учетный месяц начинается %d-го числа", us.AccountingMonthStartDay))

	if us.HasRotation() {
		lines = append(lines, fmt.Sprintf("🔁 График: %dx%d с %s",
			us.RotationWorkDays, us.RotationOffDays, us.RotationAnchor.Format("02.01.2006")))
	} else {
		lines = append(lines, "🔁 График: не задан")
	}

	distance := "выключен"
	if us.DistanceTrackingEnabled {
		distance = "включен"
	}
	lines = append(lines, fmt.Sprintf("🚗 Учет пробега: %s", distance))

	return strings.Join(lines, "\n")
}
