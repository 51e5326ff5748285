package repository

import (
	"errors"
	"time"

	"shift-log-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ShiftEntryRepository interface {
	// Upsert создает запись или заменяет существующую за ту же дату
	Upsert(entry *models.ShiftEntry) (created bool, err error)
	GetByUserAndDate(userID uint, date time.Time) (*models.ShiftEntry, error)
	ListByUserInRange(userID uint, from, to time.Time) ([]*models.ShiftEntry, error)
	ListDatesByUserInRange(userID uint, from, to time.Time) ([]time.Time, error)
	DeleteByUserAndDate(userID uint, date time.Time) (bool, error)
	DeleteByUserID(userID uint) error
}

type GormShiftEntryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftEntryRepository(db *gorm.DB, logger *logrus.Logger) (*GormShiftEntryRepository, error) {
	if err := db.AutoMigrate(&models.ShiftEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_entries table")
		return nil, err
	}

	logger.Debug("Shift entry repository initialized")

	return &GormShiftEntryRepository{db: db, logger: logger}, nil
}

func (r *GormShiftEntryRepository) Upsert(entry *models.ShiftEntry) (bool, error) {
	entry.Date = models.DateOf(entry.Date)

	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ShiftEntry
		result := tx.Where("user_id = ? AND date = ?", entry.UserID, entry.Date).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(entry).Error
		}
		if result.Error != nil {
			return result.Error
		}

		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return tx.Save(entry).Error
	})
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": entry.UserID,
			"date":    entry.Date.Format("2006-01-02"),
		}).Error("Failed to save shift entry")
		return false, err
	}

	r.logger.WithFields(logrus.Fields{
		"id":      entry.ID,
		"user_id": entry.UserID,
		"date":    entry.Date.Format("2006-01-02"),
		"created": created,
	}).Info("Shift entry saved")

	return created, nil
}

func (r *GormShiftEntryRepository) GetByUserAndDate(userID uint, date time.Time) (*models.ShiftEntry, error) {
	var entry models.ShiftEntry
	result := r.db.Where("user_id = ? AND date = ?", userID, models.DateOf(date)).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift entry by date")
		return nil, result.Error
	}

	return &entry, nil
}

// ListByUserInRange возвращает записи с from по to включительно, по возрастанию даты
func (r *GormShiftEntryRepository) ListByUserInRange(userID uint, from, to time.Time) ([]*models.ShiftEntry, error) {
	var entries []*models.ShiftEntry
	result := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, models.DateOf(from), models.DateOf(to)).
		Order("date").
		Find(&entries)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list shift entries")
		return nil, result.Error
	}

	return entries, nil
}

func (r *GormShiftEntryRepository) ListDatesByUserInRange(userID uint, from, to time.Time) ([]time.Time, error) {
	entries, err := r.ListByUserInRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, models.DateOf(e.Date))
	}
	return dates, nil
}

func (r *GormShiftEntryRepository) DeleteByUserAndDate(userID uint, date time.Time) (bool, error) {
	result := r.db.Where("user_id = ? AND date = ?", userID, models.DateOf(date)).Delete(&models.ShiftEntry{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete shift entry")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormShiftEntryRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.ShiftEntry{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user shift entries")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"deleted": result.RowsAffected,
	}).Info("User shift entries deleted")

	return nil
}
