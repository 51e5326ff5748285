package repository

import (
	"time"

	"shift-log-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HolidayRepository interface {
	ReplaceYear(year int, days []models.Holiday) error
	GetByYear(year int) ([]models.Holiday, error)
	GetInRange(from, to time.Time) ([]models.Holiday, error)
	IsHoliday(date time.Time) (bool, error)
}

type GormHolidayRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormHolidayRepository(db *gorm.DB, logger *logrus.Logger) (*GormHolidayRepository, error) {
	// Автомиграция для таблицы holidays
	if err := db.AutoMigrate(&models.Holiday{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate holidays table")
		return nil, err
	}

	return &GormHolidayRepository{db: db, logger: logger}, nil
}

// ReplaceYear заменяет дни года одной транзакцией: при ошибке вставки старые дни остаются
func (r *GormHolidayRepository) ReplaceYear(year int, days []models.Holiday) error {
	for i := range days {
		days[i].Date = models.DateOf(days[i].Date)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("year = ?", year).Delete(&models.Holiday{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

func (r *GormHolidayRepository) GetByYear(year int) ([]models.Holiday, error) {
	var days []models.Holiday
	err := r.db.Where("year = ?", year).Order("date").Find(&days).Error
	return days, err
}

func (r *GormHolidayRepository) GetInRange(from, to time.Time) ([]models.Holiday, error) {
	var days []models.Holiday
	err := r.db.
		Where("date >= ? AND date <= ?", models.DateOf(from), models.DateOf(to)).
		Order("date").
		Find(&days).Error
	return days, err
}

// IsHoliday учитывает только праздники, обычные выходные календаря не считаются
func (r *GormHolidayRepository) IsHoliday(date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Holiday{}).
		Where("date = ? AND weekend = ?", models.DateOf(date), false).
		Count(&count).Error
	return count > 0, err
}
