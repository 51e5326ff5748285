package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)
	case "helpadmin":
		h.sendAdminHelpMessage(message)

	// Профиль
	case "createprofile":
		h.startProfileCreation(message)
	case "myprofile":
		h.showProfile(message)
	case "updateprofile":
		h.startProfileUpdate(message)
	case "deleteprofile":
		h.deleteProfile(message)

	// Учет смен
	case "shift":
		h.logShift(message, args)
	case "dayoff":
		h.logDayOff(message, args)
	case "today":
		h.showToday(message)
	case "entry":
		h.showEntry(message, args)
	case "delete":
		h.deleteEntry(message, args)

	// Учетный месяц и график
	case "period":
		h.showPeriod(message, args)
	case "entries":
		h.showEntries(message, args)
	case "calendar":
		h.showCalendar(message, args)
	case "isworkday":
		h.checkWorkday(message, args)
	case "export":
		h.exportWorkbook(message, args)
	case "exportics":
		h.exportCalendar(message, args)

	// Настройки
	case "settings":
		h.showSettings(message)
	case "setbase":
		h.setBaseShift(message, args)
	case "setstartday":
		h.setMonthStartDay(message, args)
	case "setrotation":
		h.setRotation(message, args)
	case "clearrotation":
		h.clearRotation(message)
	case "distance":
		h.setDistanceTracking(message, args)

	// Администрирование
	case "loadholidays":
		h.loadHolidays(message)
	case "holidays":
		h.showHolidays(message, args)
	case "allusers":
		h.showAllUsers(message)
	case "promote":
		h.promoteToAdmin(message, args)
	case "demote":
		h.demoteToClient(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	text := `👋 Привет! Я веду учет смен и считаю переработки.

💡 Как пользоваться:
1. Создайте профиль командой /createprofile
2. Задайте норму смены /setbase и день начала учетного месяца /setstartday
3. Записывайте смены командой /shift 08:00 20:00
4. Смотрите итоги месяца командой /period

Полный список команд: /help`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📋 Доступные команды:

👤 Профиль:
/createprofile - Создать профиль (ФИО)
/myprofile - Показать мой профиль
/updateprofile - Обновить профиль
/deleteprofile - Удалить профиль и все записи

⏰ Смены:
/shift [дата] ЧЧ:ММ ЧЧ:ММ [параметры] [-- заметка] - Записать смену
    Параметры: meal=мин rest=мин holiday oncall odo=начало-конец ref=номер
    Пример: /shift 05.03 22:00 06:00 meal=30 oncall -- ночной выезд
/dayoff дата [дата_окончания] - Отметить выходной или диапазон выходных
/today - Запись за сегодня
/entry дата - Запись за дату с расчетом
/delete дата - Удалить запись за дату

📊 Учетный месяц:
/period [ММ.ГГГГ] - Итоги учетного месяца (по умолчанию текущего)
/entries [ММ.ГГГГ] - Все записи учетного месяца
/calendar [ММ.ГГГГ] - Календарь смен по графику
/isworkday [дата] - Рабочий ли день по графику
/export [ММ.ГГГГ] - Выгрузить месяц в Excel
/exportics [ММ.ГГГГ] - Выгрузить график в календарь (.ics)

⚙️ Настройки:
/settings - Показать настройки
/setbase ЧЧ:ММ или минуты - Норма смены, сверх нее идет переработка
/setstartday N - День начала учетного месяца (1-31)
/setrotation 4x2 [дата] - График ротации и первый рабочий день
/clearrotation - Сбросить график
/distance on|off - Учет пробега по одометру

🛠 Утилиты:
/start - Начать работу с ботом
/help - Показать это сообщение
/helpadmin - Команды администратора`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendAdminHelpMessage(message *tgbotapi.Message) {
	if !h.requireAdmin(message.Chat.ID) {
		return
	}

	text := `👑 Команды администратора:

📆 Производственный календарь:
/loadholidays - Загрузить календарь из файла конфигурации
    Или отправьте JSON файл с подписью /loadholidays
/holidays [ГГГГ] - Нерабочие дни года

👥 Пользователи:
/allusers - Все пользователи
/promote ID - Назначить администратором
/demote ID - Снять права администратора`

	h.reply(message.Chat.ID, text)
}
