package service

import (
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/repository"
	"shift-log-bot/pkg/timecalc"

	"github.com/sirupsen/logrus"
)

// CalendarDay - день учетного месяца с типом по графику
type CalendarDay struct {
	Date    time.Time
	Type    timecalc.DayType
	Entry   *models.ShiftEntry
	Holiday bool
}

// ReminderTarget - пользователь, которому пора заполнить смену
type ReminderTarget struct {
	UserID uint
	ChatID int64
	Name   string
}

type ScheduleService struct {
	settings *SettingsService
	entries  repository.ShiftEntryRepository
	holidays repository.HolidayRepository
	users    repository.UserRepository
	logger   *logrus.Logger
}

func NewScheduleService(
	settings *SettingsService,
	entries repository.ShiftEntryRepository,
	holidays repository.HolidayRepository,
	users repository.UserRepository,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		settings: settings,
		entries:  entries,
		holidays: holidays,
		users:    users,
		logger:   logger,
	}
}

// DayType возвращает тип дня по графику пользователя
func (s *ScheduleService) DayType(userID uint, date time.Time) (timecalc.DayType, error) {
	as, err := s.settings.Accounting(userID)
	if err != nil {
		return timecalc.DayUnknown, err
	}
	return timecalc.DayTypeFor(models.DateOf(date), as.Rotation, as.RotationAnchor), nil
}

// Month раскладывает график на дни окна и отмечает записи и праздники
func (s *ScheduleService) Month(userID uint, w timecalc.Window) ([]CalendarDay, error) {
	as, err := s.settings.Accounting(userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByUserInRange(userID, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*models.ShiftEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date.Format("2006-01-02")] = e
	}

	holidays, err := s.holidays.GetInRange(w.Start, w.End)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load holidays for calendar")
	}
	isHoliday := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if !h.Weekend {
			isHoliday[h.Date.Format("2006-01-02")] = true
		}
	}

	projection := timecalc.Project(w, as.Rotation, as.RotationAnchor)
	days := make([]CalendarDay, 0, len(projection))
	for _, p := range projection {
		key := p.Date.Format("2006-01-02")
		days = append(days, CalendarDay{
			Date:    p.Date,
			Type:    p.Type,
			Entry:   byDate[key],
			Holiday: isHoliday[key],
		})
	}

	return days, nil
}

// ReminderTargets возвращает пользователей, у которых day рабочий по графику,
// а записи за этот день еще нет
func (s *ScheduleService) ReminderTargets(day time.Time) ([]ReminderTarget, error) {
	list, err := s.settings.WithRotation()
	if err != nil {
		return nil, err
	}

	var targets []ReminderTarget
	for _, us := range list {
		as := us.Accounting()
		if timecalc.DayTypeFor(models.DateOf(day), as.Rotation, as.RotationAnchor) != timecalc.DayWork {
			continue
		}

		entry, err := s.entries.GetByUserAndDate(us.UserID, day)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", us.UserID).Warn("Failed to check entry for reminder")
			continue
		}
		if entry != nil {
			continue
		}

		user, err := s.users.GetByID(us.UserID)
		if err != nil || user == nil {
			continue
		}

		targets = append(targets, ReminderTarget{
			UserID: user.ID,
			ChatID: user.ChatID,
			Name:   user.FirstName,
		})
	}

	return targets, nil
}
