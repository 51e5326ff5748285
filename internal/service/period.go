package service

import (
	"fmt"
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/pkg/timecalc"

	"github.com/sirupsen/logrus"
)

// PeriodReport - записи и итоги за учетный месяц
type PeriodReport struct {
	Window   timecalc.Window
	Settings timecalc.AccountingSettings
	Entries  []*models.ShiftEntry
	Summary  timecalc.MonthSummary
	Current  bool
}

// Records возвращает записи отчета в виде смен
func (r *PeriodReport) Records() []timecalc.ShiftRecord {
	return models.Records(r.Entries)
}

type PeriodService struct {
	shifts   *ShiftService
	settings *SettingsService
	now      func() time.Time
	logger   *logrus.Logger
}

func NewPeriodService(shifts *ShiftService, settings *SettingsService, now func() time.Time, logger *logrus.Logger) *PeriodService {
	if now == nil {
		now = time.Now
	}
	return &PeriodService{
		shifts:   shifts,
		settings: settings,
		now:      now,
		logger:   logger,
	}
}

// Current возвращает учетный месяц, в который попадает сегодняшний день
func (s *PeriodService) Current(userID uint) (*PeriodReport, error) {
	as, err := s.settings.Accounting(userID)
	if err != nil {
		return nil, err
	}

	w := timecalc.AccountingWindow(s.now(), as.AccountingMonthStartDay)
	return s.build(userID, as, w)
}

// ForMonth возвращает учетный месяц, начинающийся в указанном календарном месяце
func (s *PeriodService) ForMonth(userID uint, year int, month time.Month) (*PeriodReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: месяц %d", ErrInvalidEntry, month)
	}

	as, err := s.settings.Accounting(userID)
	if err != nil {
		return nil, err
	}

	w := timecalc.PeriodWindow(year, month, as.AccountingMonthStartDay, s.now().Location())
	return s.build(userID, as, w)
}

// Resolve возвращает текущий учетный месяц при year == 0, иначе ForMonth
func (s *PeriodService) Resolve(userID uint, year int, month time.Month) (*PeriodReport, error) {
	if year == 0 {
		return s.Current(userID)
	}
	return s.ForMonth(userID, year, month)
}

func (s *PeriodService) build(userID uint, as timecalc.AccountingSettings, w timecalc.Window) (*PeriodReport, error) {
	entries, err := s.shifts.List(userID, w)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей: %w", err)
	}

	records := timecalc.FilterWindow(models.Records(entries), w)
	summary := timecalc.Summarize(records, &as)

	s.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"window":         w.String(),
		"entries":        len(entries),
		"worked_minutes": summary.WorkedMinutes,
	}).Debug("Period summarized")

	return &PeriodReport{
		Window:   w,
		Settings: as,
		Entries:  entries,
		Summary:  summary,
		Current:  w.Contains(s.now()),
	}, nil
}
