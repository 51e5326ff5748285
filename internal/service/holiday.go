package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"shift-log-bot/internal/models"
	"shift-log-bot/internal/repository"
	"shift-log-bot/pkg/holidaycal"

	"github.com/sirupsen/logrus"
)

type HolidayService struct {
	repo   repository.HolidayRepository
	logger *logrus.Logger
}

func NewHolidayService(repo repository.HolidayRepository, logger *logrus.Logger) *HolidayService {
	return &HolidayService{repo: repo, logger: logger}
}

// LoadFile загружает производственный календарь из файла
func (s *HolidayService) LoadFile(path string) (int, int, error) {
	cal, err := holidaycal.ParseFile(path)
	if err != nil {
		return 0, 0, err
	}
	n, err := s.Load(cal)
	return cal.Year, n, err
}

// LoadReader загружает календарь, например из присланного документа
func (s *HolidayService) LoadReader(r io.Reader) (int, int, error) {
	cal, err := holidaycal.Parse(r)
	if err != nil {
		return 0, 0, err
	}
	n, err := s.Load(cal)
	return cal.Year, n, err
}

// Load заменяет нерабочие дни года календаря
func (s *HolidayService) Load(cal *holidaycal.Calendar) (int, error) {
	days := make([]models.Holiday, 0, len(cal.Days))
	for _, d := range cal.Days {
		days = append(days, models.Holiday{
			Date:    d.Date,
			Year:    d.Year,
			Month:   d.Month,
			Day:     d.Day,
			Moved:   d.Moved,
			Weekend: d.Weekend,
		})
	}

	if err := s.repo.ReplaceYear(cal.Year, days); err != nil {
		return 0, fmt.Errorf("ошибка сохранения календаря: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"year":     cal.Year,
		"count":    len(days),
		"holidays": len(cal.Holidays()),
	}).Info("Holiday calendar loaded")

	return len(days), nil
}

func (s *HolidayService) IsHoliday(date time.Time) (bool, error) {
	return s.repo.IsHoliday(date)
}

func (s *HolidayService) ForYear(year int) ([]models.Holiday, error) {
	return s.repo.GetByYear(year)
}

var monthNames = []string{"", "Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"}

// FormatHolidays форматирует праздники года по месяцам, обычные выходные только считает
func FormatHolidays(year int, days []models.Holiday) string {
	if len(days) == 0 {
		return fmt.Sprintf("📭 Календарь на %d год не загружен.", year)
	}

	byMonth := make(map[int][]string)
	holidays, weekends := 0, 0
	for _, d := range days {
		if d.Weekend {
			weekends++
			continue
		}
		holidays++
		label := fmt.Sprintf("%d", d.Day)
		if d.Moved {
			label += "+"
		}
		byMonth[d.Month] = append(byMonth[d.Month], label)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("📆 Праздники %d года:", year))
	lines = append(lines, "")
	for m := 1; m <= 12; m++ {
		if len(byMonth[m]) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", monthNames[m], strings.Join(byMonth[m], ", ")))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Праздников: %d, выходных: %d, всего нерабочих: %d", holidays, weekends, len(days)))

	return strings.Join(lines, "\n")
}
