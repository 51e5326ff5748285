package handler

import (
	"fmt"
	"strconv"
	"strings"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showSettings показывает настройки учета
func (h *Handler) showSettings(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(user.ID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения настроек: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatSettings(settings))
}

// setBaseShift задает норму смены
func (h *Handler) setBaseShift(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "❌ Укажите норму смены.\nПример: /setbase 8:00 или /setbase 480")
		return
	}

	minutes, err := parseBaseShift(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	h.updateSettings(chatID, func(userID uint) (*models.UserSettings, error) {
		return h.settingsService.SetBaseShift(userID, minutes)
	})
}

// setMonthStartDay задает день начала учетного месяца
func (h *Handler) setMonthStartDay(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	day, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		h.reply(chatID, "❌ Укажите число от 1 до 31.\nПример: /setstartday 21")
		return
	}

	h.updateSettings(chatID, func(userID uint) (*models.UserSettings, error) {
		return h.settingsService.SetMonthStartDay(userID, day)
	})
}

// setRotation задает график ротации и первый рабочий день цикла
func (h *Handler) setRotation(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "❌ Укажите график и дату первого рабочего дня.\nПример: /setrotation 4x2 01.03.2024")
		return
	}

	pattern, anchor, err := parseRotationArgs(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	h.updateSettings(chatID, func(userID uint) (*models.UserSettings, error) {
		return h.settingsService.SetRotation(userID, pattern, anchor)
	})
}

// clearRotation сбрасывает график ротации
func (h *Handler) clearRotation(message *tgbotapi.Message) {
	h.updateSettings(message.Chat.ID, func(userID uint) (*models.UserSettings, error) {
		return h.settingsService.ClearRotation(userID)
	})
}

// setDistanceTracking включает или выключает учет пробега
func (h *Handler) setDistanceTracking(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	enabled, err := parseSwitch(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nПример: /distance on")
		return
	}

	h.updateSettings(chatID, func(userID uint) (*models.UserSettings, error) {
		return h.settingsService.SetDistanceTracking(userID, enabled)
	})
}

func (h *Handler) updateSettings(chatID int64, apply func(userID uint) (*models.UserSettings, error)) {
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	settings, err := apply(user.ID)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Настройки сохранены!\n\n%s", service.FormatSettings(settings)))
}
