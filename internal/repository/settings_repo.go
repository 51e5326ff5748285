package repository

import (
	"errors"

	"shift-log-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	GetByUserID(userID uint) (*models.UserSettings, error)
	ListWithRotation() ([]*models.UserSettings, error)
	Save(settings *models.UserSettings) error
	DeleteByUserID(userID uint) error
}

type GormSettingsRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSettingsRepository(db *gorm.DB, logger *logrus.Logger) (*GormSettingsRepository, error) {
	if err := db.AutoMigrate(&models.UserSettings{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate user_settings table")
		return nil, err
	}

	return &GormSettingsRepository{db: db, logger: logger}, nil
}

func (r *GormSettingsRepository) GetByUserID(userID uint) (*models.UserSettings, error) {
	var s models.UserSettings
	result := r.db.Where("user_id = ?", userID).First(&s)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &s, nil
}

// ListWithRotation возвращает настройки всех пользователей с заданным графиком
func (r *GormSettingsRepository) ListWithRotation() ([]*models.UserSettings, error) {
	var list []*models.UserSettings
	result := r.db.Where("rotation_work_days > 0 AND rotation_anchor IS NOT NULL").Find(&list)
	if result.Error != nil {
		return nil, result.Error
	}
	return list, nil
}

// Save создает или обновляет настройки пользователя
func (r *GormSettingsRepository) Save(s *models.UserSettings) error {
	if s.ID == 0 {
		existing, err := r.GetByUserID(s.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			s.ID = existing.ID
			s.CreatedAt = existing.CreatedAt
		}
	}

	if err := r.db.Save(s).Error; err != nil {
		r.logger.WithError(err).WithField("user_id", s.UserID).Error("Failed to save settings")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":            s.UserID,
		"base_shift_minutes": s.BaseShiftMinutes,
		"month_start_day":    s.AccountingMonthStartDay,
		"rotation_work_days": s.RotationWorkDays,
		"rotation_off_days":  s.RotationOffDays,
	}).Info("Settings saved")

	return nil
}

func (r *GormSettingsRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserSettings{}).Error
}
