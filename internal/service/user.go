package service

import (
	"errors"
	"fmt"
	"strings"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo     repository.UserRepository
	entries  repository.ShiftEntryRepository
	settings *SettingsService
	logger   *logrus.Logger
}

func NewUserService(
	repo repository.UserRepository,
	entries repository.ShiftEntryRepository,
	settings *SettingsService,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		entries:  entries,
		settings: settings,
		logger:   logger,
	}
}

// CreateUser создает пользователя с ролью client и настройками по умолчанию
func (s *UserService) CreateUser(chatID int64, username, firstName, lastName string) (*models.User, error) {
	if firstName == "" {
		return nil, fmt.Errorf("имя не может быть пустым")
	}

	user := &models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleClient,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	if _, err := s.settings.Get(user.ID); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to create default settings")
	}

	return user, nil
}

// GetUser возвращает пользователя по chatID
func (s *UserService) GetUser(chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// UpdateUser обновляет имя и никнейм, пустые значения не трогает
func (s *UserService) UpdateUser(chatID int64, username, firstName, lastName string) (*models.User, error) {
	user, err := s.GetUser(chatID)
	if err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	return user, nil
}

// UpdateRole меняет роль пользователя, доступно только администраторам
func (s *UserService) UpdateRole(adminChatID, targetChatID int64, role models.Role) error {
	admin, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return fmt.Errorf("ошибка проверки админа: %w", err)
	}

	if admin == nil || !admin.IsAdmin() {
		return ErrAccessDenied
	}

	target, err := s.repo.GetByChatID(targetChatID)
	if err != nil {
		return fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if target == nil {
		return ErrUserNotFound
	}

	return s.repo.UpdateRole(targetChatID, role)
}

// DeleteUser удаляет пользователя вместе с записями и настройками
func (s *UserService) DeleteUser(chatID int64) error {
	user, err := s.GetUser(chatID)
	if err != nil {
		return err
	}

	if err := s.entries.DeleteByUserID(user.ID); err != nil {
		return fmt.Errorf("ошибка удаления записей: %w", err)
	}
	if err := s.settings.Delete(user.ID); err != nil {
		return fmt.Errorf("ошибка удаления настроек: %w", err)
	}

	if err := s.repo.Delete(chatID); err != nil {
		if errors.Is(err, repository.ErrUserNotFoundInDB) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"chat_id": chatID,
	}).Info("User deleted with all data")

	return nil
}

func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.repo.GetAll()
}

// GetByID нужен фоновым задачам, которые знают только user_id
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// IsAdmin проверяет, является ли пользователь администратором
func (s *UserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}

	return user != nil && user.IsAdmin(), nil
}

// InitializeAdmin создает или повышает администратора из конфига
func (s *UserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil
	}

	existing, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}

	if existing != nil {
		return s.repo.UpdateRole(adminChatID, models.RoleAdmin)
	}

	admin := &models.User{
		ChatID:    adminChatID,
		Username:  "admin",
		FirstName: "Администратор",
		Role:      models.RoleAdmin,
	}
	if err := s.repo.Create(admin); err != nil {
		return err
	}

	_, err = s.settings.Get(admin.ID)
	return err
}

// FormatUserInfo форматирует профиль для вывода
func (s *UserService) FormatUserInfo(user *models.User) string {
	var lines []string

	lines = append(lines, "👤 Профиль пользователя:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID чата: %d", user.ChatID))

	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Никнейм: @%s", user.Username))
	}

	lines = append(lines, fmt.Sprintf("👨‍💼 Имя: %s", user.FirstName))

	if user.LastName != "" {
		lines = append(lines, fmt.Sprintf("👨‍💼 Фамилия: %s", user.LastName))
	}

	roleEmoji := "👤"
	if user.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Роль: %s", roleEmoji, string(user.Role)))

	return strings.Join(lines, "\n")
}

// FormatAllUsers форматирует список всех пользователей
func (s *UserService) FormatAllUsers() (string, error) {
	users, err := s.GetAllUsers()
	if err != nil {
		return "", err
	}

	if len(users) == 0 {
		return "📭 Список пользователей пуст.", nil
	}

	var lines []string
	lines = append(lines, "📋 Все пользователи:")
	lines = append(lines, "")

	admins := 0
	for i, user := range users {
		roleEmoji := "👤"
		if user.IsAdmin() {
			roleEmoji = "👑"
			admins++
		}

		info := fmt.Sprintf("%d. %s %s ", i+1, roleEmoji, user.DisplayName())
		if user.Username != "" {
			info += fmt.Sprintf("(@%s) ", user.Username)
		}
		info += fmt.Sprintf("- ID: %d", user.ChatID)
		lines = append(lines, info)
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📊 Всего пользователей: %d", len(users)))
	lines = append(lines, fmt.Sprintf("👑 Администраторов: %d", admins))

	return strings.Join(lines, "\n"), nil
}
