package service

import (
	"fmt"
	"regexp"
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/repository"
	"shift-log-bot/pkg/timecalc"

	"github.com/sirupsen/logrus"
)

// Максимальная длина диапазона выходных за одну команду
const maxDayOffRange = 62

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// HolidayChecker отвечает, является ли дата праздничной
type HolidayChecker interface {
	IsHoliday(date time.Time) (bool, error)
}

// ShiftInput - смена, введенная пользователем.
// Если HolidayExplicit == false, признак праздника берется из производственного календаря.
type ShiftInput struct {
	Record          timecalc.ShiftRecord
	HolidayExplicit bool
}

type ShiftService struct {
	entries  repository.ShiftEntryRepository
	holidays HolidayChecker
	logger   *logrus.Logger
}

func NewShiftService(entries repository.ShiftEntryRepository, holidays HolidayChecker, logger *logrus.Logger) *ShiftService {
	return &ShiftService{
		entries:  entries,
		holidays: holidays,
		logger:   logger,
	}
}

// Log сохраняет смену за дату, заменяя прежнюю запись за ту же дату
func (s *ShiftService) Log(userID uint, in ShiftInput) (*models.ShiftEntry, bool, error) {
	r := in.Record

	if err := ValidateRecord(r); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Invalid shift entry")
		return nil, false, err
	}

	if !in.HolidayExplicit && !r.IsDayOff && s.holidays != nil {
		isHoliday, err := s.holidays.IsHoliday(r.Date)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to check holiday calendar")
		} else if isHoliday {
			r.IsHoliday = true
		}
	}

	entry := models.NewShiftEntry(userID, r)
	created, err := s.entries.Upsert(entry)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка сохранения смены: %w", err)
	}

	return entry, created, nil
}

// LogDayOffRange отмечает выходными дни с from по to, даты с записями пропускает
func (s *ShiftService) LogDayOffRange(userID uint, from, to time.Time) (created int, skipped int, err error) {
	from, to = models.DateOf(from), models.DateOf(to)
	if to.Before(from) {
		return 0, 0, fmt.Errorf("%w: дата окончания раньше даты начала", ErrInvalidEntry)
	}
	if days := timecalc.DaysBetween(from, to) + 1; days > maxDayOffRange {
		return 0, 0, fmt.Errorf("%w: не больше %d дней за раз", ErrInvalidEntry, maxDayOffRange)
	}

	existing, err := s.entries.ListDatesByUserInRange(userID, from, to)
	if err != nil {
		return 0, 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, d := range existing {
		taken[d.Format("2006-01-02")] = true
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if taken[d.Format("2006-01-02")] {
			skipped++
			continue
		}
		entry := models.NewShiftEntry(userID, timecalc.ShiftRecord{Date: d, IsDayOff: true})
		if _, err := s.entries.Upsert(entry); err != nil {
			return created, skipped, fmt.Errorf("ошибка сохранения выходного: %w", err)
		}
		created++
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
		"created": created,
		"skipped": skipped,
	}).Info("Day-off range logged")

	return created, skipped, nil
}

func (s *ShiftService) Get(userID uint, date time.Time) (*models.ShiftEntry, error) {
	entry, err := s.entries.GetByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

func (s *ShiftService) Delete(userID uint, date time.Time) error {
	deleted, err := s.entries.DeleteByUserAndDate(userID, date)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    date.Format("2006-01-02"),
	}).Info("Shift entry deleted")
	return nil
}

// List возвращает записи, попадающие в окно
func (s *ShiftService) List(userID uint, w timecalc.Window) ([]*models.ShiftEntry, error) {
	return s.entries.ListByUserInRange(userID, w.Start, w.End)
}

// ValidateRecord проверяет ввод до сохранения. Калькулятор сам ничего не проверяет.
func ValidateRecord(r timecalc.ShiftRecord) error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: не указана дата", ErrInvalidEntry)
	}
	if r.IsDayOff {
		return validateOdometer(r)
	}
	if !clockPattern.MatchString(r.StartTime) {
		return fmt.Errorf("%w: время начала %q не в формате ЧЧ:ММ", ErrInvalidEntry, r.StartTime)
	}
	if !clockPattern.MatchString(r.EndTime) {
		return fmt.Errorf("%w: время окончания %q не в формате ЧЧ:ММ", ErrInvalidEntry, r.EndTime)
	}
	if r.MealMinutes < 0 || r.RestMinutes < 0 {
		return fmt.Errorf("%w: перерывы не могут быть отрицательными", ErrInvalidEntry)
	}
	return validateOdometer(r)
}

func validateOdometer(r timecalc.ShiftRecord) error {
	if r.OdometerStart.Valid && r.OdometerStart.Decimal.IsNegative() {
		return fmt.Errorf("%w: показание одометра не может быть отрицательным", ErrInvalidEntry)
	}
	if r.OdometerEnd.Valid && r.OdometerEnd.Decimal.IsNegative() {
		return fmt.Errorf("%w: показание одометра не может быть отрицательным", ErrInvalidEntry)
	}
	if r.OdometerStart.Valid && r.OdometerEnd.Valid && r.OdometerEnd.Decimal.LessThan(r.OdometerStart.Decimal) {
		return fmt.Errorf("%w: одометр в конце меньше, чем в начале", ErrInvalidEntry)
	}
	return nil
}
