package handler

import (
	"errors"
	"strings"
	"time"

	"shift-log-bot/internal/config"
	"shift-log-bot/internal/models"
	"shift-log-bot/internal/notify"
	"shift-log-bot/internal/service"
	"shift-log-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client          *telegram.Client
	userService     *service.UserService
	settingsService *service.SettingsService
	shiftService    *service.ShiftService
	periodService   *service.PeriodService
	scheduleService *service.ScheduleService
	holidayService  *service.HolidayService
	exportService   *service.ExportService
	outbox          *notify.Outbox
	userStates      map[int64]string
	config          *config.BotConfig
	logger          *logrus.Logger
	now             func() time.Time
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	settingsService *service.SettingsService,
	shiftService *service.ShiftService,
	periodService *service.PeriodService,
	scheduleService *service.ScheduleService,
	holidayService *service.HolidayService,
	exportService *service.ExportService,
	outbox *notify.Outbox,
	cfg *config.BotConfig,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		client:          client,
		userService:     userService,
		settingsService: settingsService,
		shiftService:    shiftService,
		periodService:   periodService,
		scheduleService: scheduleService,
		holidayService:  holidayService,
		exportService:   exportService,
		outbox:          outbox,
		userStates:      make(map[int64]string),
		config:          cfg,
		logger:          logger,
		now:             time.Now,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		// Обработка callback query (для inline кнопок)
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Bot.Send(editMsg)

	switch {
	case data == "confirm_delete":
		err := h.userService.DeleteUser(chatID)
		if err != nil {
			h.reply(chatID, "❌ Ошибка удаления профиля: "+err.Error())
		} else {
			h.reply(chatID, "✅ Ваш профиль и все записи смен удалены!")
		}

	case data == "cancel_delete":
		h.reply(chatID, "❌ Удаление профиля отменено.")

	case strings.HasPrefix(data, confirmDeleteEntryPrefix):
		h.confirmDeleteEntry(chatID, strings.TrimPrefix(data, confirmDeleteEntryPrefix))

	case data == cancelDeleteEntry:
		h.reply(chatID, "❌ Удаление записи отменено.")
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	h.client.Bot.Request(callbackConfig)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"username": message.From.UserName,
	}).Debug(message.Text)

	chatID := message.Chat.ID

	// Файл производственного календаря с подписью /loadholidays
	if message.Document != nil && strings.HasPrefix(strings.TrimSpace(message.Caption), "/loadholidays") {
		h.loadHolidaysFromDocument(message)
		return
	}

	// Проверяем, находится ли пользователь в процессе создания/обновления профиля
	if state, exists := h.userStates[chatID]; exists {
		h.handleProfileState(message, state)
		return
	}

	// Обработка команд
	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(chatID, "🤔 Я понимаю только команды. Используйте /help для списка команд.")
}

func (h *Handler) reply(chatID int64, text string) {
	if err := h.client.Send(chatID, text); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

// requireUser возвращает профиль или сообщает, что его нет
func (h *Handler) requireUser(chatID int64) (*models.User, bool) {
	user, err := h.userService.GetUser(chatID)
	if err != nil || user == nil {
		if err != nil && !errors.Is(err, service.ErrUserNotFound) {
			h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to get user")
		}
		h.reply(chatID, "❌ Профиль не найден.\nИспользуйте /createprofile чтобы создать профиль.")
		return nil, false
	}
	return user, true
}

// requireAdmin проверяет права администратора
func (h *Handler) requireAdmin(chatID int64) bool {
	isAdmin, err := h.userService.IsAdmin(chatID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка проверки прав доступа: "+err.Error())
		return false
	}

	if !isAdmin {
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return false
	}
	return true
}
