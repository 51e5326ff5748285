package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/notify"
	"shift-log-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Календарь на год занимает несколько килобайт
const maxHolidayFileSize = 1 << 20

var downloadClient = &http.Client{Timeout: 30 * time.Second}

// showAllUsers показывает всех пользователей
func (h *Handler) showAllUsers(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	allUsers, err := h.userService.FormatAllUsers()
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения списка пользователей: "+err.Error())
		return
	}

	h.reply(chatID, allUsers)
}

// promoteToAdmin назначает пользователя администратором
func (h *Handler) promoteToAdmin(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	targetChatID, ok := h.parseTargetID(chatID, args, "/promote")
	if !ok {
		return
	}

	if err := h.userService.UpdateRole(chatID, targetChatID, models.RoleAdmin); err != nil {
		h.reply(chatID, "❌ Ошибка назначения администратора: "+err.Error())
		return
	}

	h.outbox.Enqueue(notify.Message{
		ChatID: targetChatID,
		Text:   "👑 Вам выданы права администратора. Список команд: /helpadmin",
	})

	h.reply(chatID, fmt.Sprintf("✅ Пользователь с ID %d теперь администратор!", targetChatID))
}

// demoteToClient снимает права администратора
func (h *Handler) demoteToClient(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	targetChatID, ok := h.parseTargetID(chatID, args, "/demote")
	if !ok {
		return
	}

	// Не позволяем снять главного администратора из конфига
	if targetChatID == h.config.BaseAdminChatID && h.config.BaseAdminChatID != 0 {
		h.reply(chatID, "❌ Нельзя снять главного администратора, заданного в конфигурации!")
		return
	}

	if err := h.userService.UpdateRole(chatID, targetChatID, models.RoleClient); err != nil {
		h.reply(chatID, "❌ Ошибка снятия администратора: "+err.Error())
		return
	}

	h.outbox.Enqueue(notify.Message{
		ChatID: targetChatID,
		Text:   "ℹ️ Права администратора сняты.",
	})

	h.reply(chatID, fmt.Sprintf("✅ Пользователь с ID %d теперь клиент!", targetChatID))
}

func (h *Handler) parseTargetID(chatID int64, args, command string) (int64, bool) {
	args = strings.TrimSpace(args)
	if args == "" {
		h.reply(chatID, fmt.Sprintf("❌ Укажите ID пользователя.\nПример: %s 123456789", command))
		return 0, false
	}

	targetChatID, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат ID.\nID должен быть числом.")
		return 0, false
	}
	return targetChatID, true
}

// loadHolidays загружает производственный календарь из файла конфигурации
func (h *Handler) loadHolidays(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	if h.config.HolidaysFile == "" {
		h.reply(chatID, "❌ Файл календаря не задан в конфигурации (HOLIDAYS_FILE).\nОтправьте JSON файл с подписью /loadholidays")
		return
	}

	year, count, err := h.holidayService.LoadFile(h.config.HolidaysFile)
	if err != nil {
		h.logger.WithError(err).WithField("file", h.config.HolidaysFile).Error("Failed to load holiday calendar")
		h.reply(chatID, "❌ Ошибка загрузки календаря: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Календарь на %d год загружен: %d нерабочих дней.", year, count))
}

// loadHolidaysFromDocument загружает календарь из присланного файла
func (h *Handler) loadHolidaysFromDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	if message.Document.FileSize > maxHolidayFileSize {
		h.reply(chatID, "❌ Файл слишком большой.")
		return
	}

	url, err := h.client.FileURL(message.Document.FileID)
	if err != nil {
		h.reply(chatID, "❌ Не удалось получить файл: "+err.Error())
		return
	}

	resp, err := downloadClient.Get(url)
	if err != nil {
		h.reply(chatID, "❌ Не удалось скачать файл: "+err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.reply(chatID, fmt.Sprintf("❌ Не удалось скачать файл: статус %d", resp.StatusCode))
		return
	}

	year, count, err := h.holidayService.LoadReader(io.LimitReader(resp.Body, maxHolidayFileSize))
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"chat_id": chatID,
			"file":    message.Document.FileName,
		}).Error("Failed to load holiday calendar")
		h.reply(chatID, "❌ Ошибка загрузки календаря: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Календарь на %d год загружен: %d нерабочих дней.", year, count))
}

// showHolidays показывает праздники года
func (h *Handler) showHolidays(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	year := h.now().Year()
	if args = strings.TrimSpace(args); args != "" {
		y, err := strconv.Atoi(args)
		if err != nil || y < 1900 || y > 2100 {
			h.reply(chatID, "❌ Неверный год.\nПример: /holidays 2025")
			return
		}
		year = y
	}

	days, err := h.holidayService.ForYear(year)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения календаря: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatHolidays(year, days))
}
