package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shift-log-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	confirmDeleteEntryPrefix = "confirm_delete_entry:"
	cancelDeleteEntry        = "cancel_delete_entry"
)

// logShift записывает смену. Повторная запись за ту же дату заменяет прежнюю.
func (h *Handler) logShift(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "❌ Укажите время смены.\nПример: /shift 08:00 20:00\nИли: /shift 05.03 22:00 06:00 meal=30 oncall")
		return
	}

	in, err := parseShiftArgs(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	entry, created, err := h.shiftService.Log(user.ID, in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEntry) {
			h.reply(chatID, "❌ "+err.Error())
			return
		}
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to log shift")
		h.reply(chatID, "❌ Ошибка сохранения смены: "+err.Error())
		return
	}

	as, err := h.settingsService.Accounting(user.ID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения настроек: "+err.Error())
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"date":    entry.Date.Format("2006-01-02"),
		"created": created,
	}).Info("Shift logged")

	title := "✅ Смена записана!"
	if !created {
		title = "♻️ Смена за эту дату заменена!"
	}
	h.reply(chatID, title+"\n\n"+service.FormatEntry(entry, as))
}

// logDayOff отмечает выходной за дату или диапазон дат
func (h *Handler) logDayOff(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	from, to, err := parseDateRange(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nПример: /dayoff 08.03 или /dayoff 01.07.2024 14.07.2024")
		return
	}

	created, skipped, err := h.shiftService.LogDayOffRange(user.ID, from, to)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	text := fmt.Sprintf("🏖 Отмечено выходных: %d", created)
	if skipped > 0 {
		text += fmt.Sprintf("\n⏭ Пропущено дней с записями: %d\nЧтобы заменить запись, удалите ее командой /delete", skipped)
	}
	h.reply(chatID, text)
}

// showToday показывает запись за сегодня
func (h *Handler) showToday(message *tgbotapi.Message) {
	h.showEntryFor(message.Chat.ID, dateOnly(h.now()))
}

// showEntry показывает запись за дату
func (h *Handler) showEntry(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "❌ Укажите дату.\nПример: /entry 05.03.2024")
		return
	}

	date, err := parseDate(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	h.showEntryFor(chatID, date)
}

func (h *Handler) showEntryFor(chatID int64, date time.Time) {
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	entry, err := h.shiftService.Get(user.ID, date)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			h.reply(chatID, fmt.Sprintf("📭 За %s записи нет.\nЗапишите смену: /shift %s ЧЧ:ММ ЧЧ:ММ",
				date.Format("02.01.2006"), date.Format("02.01")))
			return
		}
		h.reply(chatID, "❌ Ошибка получения записи: "+err.Error())
		return
	}

	as, err := h.settingsService.Accounting(user.ID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения настроек: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatEntry(entry, as))
}

// deleteEntry спрашивает подтверждение удаления записи за дату
func (h *Handler) deleteEntry(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "❌ Укажите дату.\nПример: /delete 05.03.2024")
		return
	}

	date, err := parseDate(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	if _, err := h.shiftService.Get(user.ID, date); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			h.reply(chatID, fmt.Sprintf("📭 За %s записи нет.", date.Format("02.01.2006")))
			return
		}
		h.reply(chatID, "❌ Ошибка получения записи: "+err.Error())
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", confirmDeleteEntryPrefix+date.Format("2006-01-02")),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет, отменить", cancelDeleteEntry),
		),
	)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ Удалить запись за %s?", date.Format("02.01.2006")))
	msg.ReplyMarkup = keyboard
	h.client.Bot.Send(msg)
}

func (h *Handler) confirmDeleteEntry(chatID int64, rawDate string) {
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	date, err := time.ParseInLocation("2006-01-02", rawDate, h.now().Location())
	if err != nil {
		h.reply(chatID, "❌ Неверная дата в запросе.")
		return
	}

	if err := h.shiftService.Delete(user.ID, date); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			h.reply(chatID, "📭 Запись уже удалена.")
			return
		}
		h.reply(chatID, "❌ Ошибка удаления записи: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Запись за %s удалена.", date.Format("02.01.2006")))
}
