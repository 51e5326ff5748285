package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// startProfileCreation начинает процесс создания профиля
func (h *Handler) startProfileCreation(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	// Проверяем, есть ли уже профиль
	user, err := h.userService.GetUser(chatID)
	if err == nil && user != nil {
		h.reply(chatID, "❌ У вас уже есть профиль!\nИспользуйте /myprofile чтобы посмотреть его или /updateprofile чтобы изменить.")
		return
	}

	h.userStates[chatID] = "awaiting_first_name"

	text := `👤 Создание профиля

Шаг 1 из 2:
✏️ Пожалуйста, отправьте ваше имя:`

	h.reply(chatID, text)
}

// handleProfileState обрабатывает состояния создания/обновления профиля
func (h *Handler) handleProfileState(message *tgbotapi.Message, state string) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	if text == "/cancel" {
		delete(h.userStates, chatID)
		h.reply(chatID, "❌ Действие отменено.")
		return
	}

	switch {
	case state == "awaiting_first_name":
		if text == "" || strings.HasPrefix(text, "/") {
			h.reply(chatID, "✏️ Отправьте имя текстом или /cancel для отмены.")
			return
		}

		// Сохраняем имя и запрашиваем фамилию
		h.userStates[chatID] = "awaiting_last_name:" + text

		h.reply(chatID, fmt.Sprintf(`Шаг 2 из 2:
✅ Имя сохранено: %s
✏️ Теперь отправьте вашу фамилию (если нет фамилии, отправьте "-"):`, text))

	case strings.HasPrefix(state, "awaiting_last_name:"):
		firstName := strings.TrimPrefix(state, "awaiting_last_name:")
		lastName := text
		if lastName == "-" {
			lastName = ""
		}

		delete(h.userStates, chatID)

		user, err := h.userService.CreateUser(chatID, message.From.UserName, firstName, lastName)
		if err != nil {
			h.reply(chatID, "❌ Ошибка создания профиля: "+err.Error())
			return
		}

		h.reply(chatID, fmt.Sprintf(`🎉 Профиль успешно создан!

%s

Настройте норму смены командой /setbase и записывайте смены командой /shift.`,
			h.userService.FormatUserInfo(user)))

	case state == "awaiting_update":
		delete(h.userStates, chatID)

		parts := strings.Fields(text)
		if len(parts) < 1 {
			h.reply(chatID, "❌ Неверный формат. Пожалуйста, отправьте имя и фамилию.")
			return
		}

		firstName := parts[0]
		lastName := ""
		if len(parts) > 1 {
			lastName = strings.Join(parts[1:], " ")
		}

		user, err := h.userService.UpdateUser(chatID, message.From.UserName, firstName, lastName)
		if err != nil {
			h.reply(chatID, "❌ Ошибка обновления профиля: "+err.Error())
			return
		}

		h.reply(chatID, "✅ Профиль успешно обновлен!\n\n"+h.userService.FormatUserInfo(user))

	default:
		delete(h.userStates, chatID)
	}
}

// showProfile показывает профиль пользователя
func (h *Handler) showProfile(message *tgbotapi.Message) {
	user, ok := h.requireUser(message.Chat.ID)
	if !ok {
		return
	}

	h.reply(message.Chat.ID, h.userService.FormatUserInfo(user))
}

// startProfileUpdate начинает процесс обновления профиля
func (h *Handler) startProfileUpdate(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, ok := h.requireUser(chatID); !ok {
		return
	}

	text := `✏️ Обновление профиля

Отправьте новые данные в формате:
Имя Фамилия

Например: Иван Иванов
Или просто: Иван (если нужно обновить только имя)`

	h.reply(chatID, text)

	h.userStates[chatID] = "awaiting_update"
}

// deleteProfile удаляет профиль пользователя после подтверждения
func (h *Handler) deleteProfile(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, ok := h.requireUser(chatID); !ok {
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", "confirm_delete"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет, отменить", "cancel_delete"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "⚠️ Вы уверены, что хотите удалить свой профиль?\nВсе записи смен и настройки будут удалены. Это действие нельзя отменить.")
	msg.ReplyMarkup = keyboard
	h.client.Bot.Send(msg)
}
