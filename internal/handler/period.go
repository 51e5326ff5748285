package handler

import (
	"errors"
	"fmt"
	"strings"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/service"
	"shift-log-bot/pkg/timecalc"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// resolvePeriod находит учетный месяц по аргументу ММ.ГГГГ, без аргумента берет текущий
func (h *Handler) resolvePeriod(chatID int64, args string) (*models.User, *service.PeriodReport, bool) {
	user, ok := h.requireUser(chatID)
	if !ok {
		return nil, nil, false
	}

	year, month, err := parseMonth(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return nil, nil, false
	}

	report, err := h.periodService.Resolve(user.ID, year, month)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to build period report")
		h.reply(chatID, "❌ Ошибка расчета учетного месяца: "+err.Error())
		return nil, nil, false
	}

	return user, report, true
}

// showPeriod показывает итоги учетного месяца
func (h *Handler) showPeriod(message *tgbotapi.Message, args string) {
	_, report, ok := h.resolvePeriod(message.Chat.ID, args)
	if !ok {
		return
	}

	h.reply(message.Chat.ID, service.FormatPeriodReport(report))
}

// showEntries показывает все записи учетного месяца
func (h *Handler) showEntries(message *tgbotapi.Message, args string) {
	_, report, ok := h.resolvePeriod(message.Chat.ID, args)
	if !ok {
		return
	}

	h.reply(message.Chat.ID, service.FormatEntriesList(report))
}

// showCalendar показывает дни учетного месяца по графику ротации
func (h *Handler) showCalendar(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, report, ok := h.resolvePeriod(chatID, args)
	if !ok {
		return
	}

	days, err := h.scheduleService.Month(user.ID, report.Window)
	if err != nil {
		h.reply(chatID, "❌ Ошибка построения календаря: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatCalendar(report.Window, days))
}

// checkWorkday отвечает, рабочий ли день по графику пользователя
func (h *Handler) checkWorkday(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	date := dateOnly(h.now())
	if strings.TrimSpace(args) != "" {
		d, err := parseDate(args, h.now())
		if err != nil {
			h.reply(chatID, "❌ "+err.Error())
			return
		}
		date = d
	}

	dayType, err := h.scheduleService.DayType(user.ID, date)
	if err != nil {
		h.reply(chatID, "❌ Ошибка проверки дня: "+err.Error())
		return
	}

	var text string
	switch dayType {
	case timecalc.DayWork:
		text = fmt.Sprintf("💼 %s - рабочий день по графику.", date.Format("02.01.2006"))
	case timecalc.DayOff:
		text = fmt.Sprintf("🏖 %s - выходной по графику.", date.Format("02.01.2006"))
	default:
		text = "❓ График ротации не задан.\nЗадайте его командой /setrotation 4x2 01.03.2024"
	}

	if holiday, err := h.holidayService.IsHoliday(date); err == nil && holiday {
		text += "\n🎉 По производственному календарю день нерабочий, смена будет оплачена как праздничная."
	}

	h.reply(chatID, text)
}

// exportWorkbook отправляет учетный месяц файлом Excel
func (h *Handler) exportWorkbook(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	year, month, err := parseMonth(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	buf, name, err := h.exportService.PeriodWorkbook(user.ID, year, month)
	if err != nil {
		if errors.Is(err, service.ErrNoEntries) {
			h.reply(chatID, "📭 За этот учетный месяц записей нет, выгружать нечего.")
			return
		}
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to export workbook")
		h.reply(chatID, "❌ Ошибка выгрузки: "+err.Error())
		return
	}

	h.sendFile(chatID, name, buf.Bytes(), "📊 Учет смен за месяц")
}

// exportCalendar отправляет рабочие дни графика файлом .ics
func (h *Handler) exportCalendar(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	year, month, err := parseMonth(args, h.now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	buf, name, err := h.exportService.RotationCalendar(user.ID, year, month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			h.reply(chatID, "❓ График ротации не задан.\nЗадайте его командой /setrotation 4x2 01.03.2024")
			return
		}
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to export calendar")
		h.reply(chatID, "❌ Ошибка выгрузки: "+err.Error())
		return
	}

	h.sendFile(chatID, name, buf.Bytes(), "📆 Рабочие дни по графику. Откройте файл, чтобы добавить их в календарь.")
}

func (h *Handler) sendFile(chatID int64, name string, data []byte, caption string) {
	if err := h.client.SendDocument(chatID, name, data, caption); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"chat_id": chatID,
			"file":    name,
		}).Error("Failed to send document")
		h.reply(chatID, "❌ Не удалось отправить файл.")
	}
}
