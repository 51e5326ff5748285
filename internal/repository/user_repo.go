package repository

import (
	"errors"

	"shift-log-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUserExists       = errors.New("пользователь уже существует")
	ErrUserNotFoundInDB = errors.New("пользователь не найден")
)

type UserRepository interface {
	Create(user *models.User) error
	GetByChatID(chatID int64) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Delete(chatID int64) error
	Exists(chatID int64) (bool, error)
	GetAll() ([]*models.User, error)
	UpdateRole(chatID int64, role models.Role) error
	GetStats() (int, int, error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB, logger *logrus.Logger) (*GormUserRepository, error) {
	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{db: db, logger: logger}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	exists, err := r.Exists(user.ChatID)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	if err := r.db.Create(user).Error; err != nil {
		r.logger.WithError(err).WithField("chat_id", user.ChatID).Error("Failed to create user")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":      user.ID,
		"chat_id": user.ChatID,
	}).Info("User created")

	return nil
}

func (r *GormUserRepository) GetByChatID(chatID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	exists, err := r.Exists(user.ChatID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFoundInDB
	}

	return r.db.Save(user).Error
}

func (r *GormUserRepository) Delete(chatID int64) error {
	result := r.db.Where("chat_id = ?", chatID).Delete(&models.User{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFoundInDB
	}

	r.logger.WithField("chat_id", chatID).Info("User deleted")
	return nil
}

func (r *GormUserRepository) Exists(chatID int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.User{}).Where("chat_id = ?", chatID).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormUserRepository) GetAll() ([]*models.User, error) {
	var users []*models.User
	result := r.db.Order("id").Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (r *GormUserRepository) UpdateRole(chatID int64, role models.Role) error {
	result := r.db.Model(&models.User{}).
		Where("chat_id = ?", chatID).
		Update("role", role)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFoundInDB
	}

	r.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"role":    role,
	}).Info("User role updated")

	return nil
}

// GetStats возвращает общее число пользователей и число администраторов
func (r *GormUserRepository) GetStats() (int, int, error) {
	var total int64
	var admins int64

	result := r.db.Model(&models.User{}).Count(&total)
	if result.Error != nil {
		return 0, 0, result.Error
	}

	result = r.db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&admins)
	if result.Error != nil {
		return 0, 0, result.Error
	}

	return int(total), int(admins), nil
}
