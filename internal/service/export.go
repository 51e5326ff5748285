package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"shift-log-bot/pkg/timecalc"
)

var ErrExportGenerateFail = errors.New("не удалось сформировать файл")

const reportSheet = "Смены"

type ExportService struct {
	periods  *PeriodService
	schedule *ScheduleService
	now      func() time.Time
	logger   *logrus.Logger
}

func NewExportService(periods *PeriodService, schedule *ScheduleService, now func() time.Time, logger *logrus.Logger) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{periods: periods, schedule: schedule, now: now, logger: logger}
}

// PeriodWorkbook выгружает учетный месяц в Excel: строка на запись и строка итогов.
// year == 0 означает текущий учетный месяц.
func (s *ExportService) PeriodWorkbook(userID uint, year int, month time.Month) (*bytes.Buffer, string, error) {
	report, err := s.periods.Resolve(userID, year, month)
	if err != nil {
		return nil, "", err
	}
	if len(report.Entries) == 0 {
		return nil, "", ErrNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Дата", "Начало", "Конец", "Обед, мин", "Отдых, мин", "Отметки",
		"Отработано, мин", "Переработка 50%, мин", "Переработка 100%, мин", "Номер", "Заметка"}
	if report.Settings.DistanceTrackingEnabled {
		headers = append(headers, "Пробег, км")
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	f.SetCellValue(reportSheet, "A1", fmt.Sprintf("Учетный месяц %s - %s",
		report.Window.Start.Format("02.01.2006"), report.Window.End.Format("02.01.2006")))

	for i, h := range headers {
		f.SetCellValue(reportSheet, cell(i+1, 2), h)
	}
	f.SetCellStyle(reportSheet, "A2", cell(len(headers), 2), headerStyle)
	f.SetColWidth(reportSheet, "A", "A", 12)
	f.SetColWidth(reportSheet, "B", "E", 10)
	f.SetColWidth(reportSheet, "F", "F", 18)
	f.SetColWidth(reportSheet, "G", "I", 14)
	f.SetColWidth(reportSheet, "J", "K", 20)

	row := 3
	for _, e := range report.Entries {
		r := e.Record()
		calc := timecalc.Calculate(r, report.Settings)

		values := []interface{}{
			r.Date.Format("02.01.2006"),
			r.StartTime,
			r.EndTime,
			r.MealMinutes,
			r.RestMinutes,
			entryFlags(r),
			calc.WorkedMinutes,
			calc.Overtime50Minutes,
			calc.Overtime100Minutes,
			r.ReferenceNumber,
			r.Notes,
		}
		if report.Settings.DistanceTrackingEnabled {
			values = append(values, calc.Distance.InexactFloat64())
		}
		for i, v := range values {
			f.SetCellValue(reportSheet, cell(i+1, row), v)
		}
		row++
	}

	// итоги берутся из агрегатора, а не суммой по колонкам
	sum := report.Summary
	f.SetCellValue(reportSheet, cell(1, row), "Итого")
	f.SetCellValue(reportSheet, cell(6, row), fmt.Sprintf("рабочих дней: %d", sum.WorkedDayCount))
	f.SetCellValue(reportSheet, cell(7, row), sum.WorkedMinutes)
	f.SetCellValue(reportSheet, cell(8, row), sum.Overtime50Minutes)
	f.SetCellValue(reportSheet, cell(9, row), sum.Overtime100Minutes)
	if report.Settings.DistanceTrackingEnabled {
		f.SetCellValue(reportSheet, cell(len(headers), row), sum.Distance.InexactFloat64())
	}
	f.SetCellStyle(reportSheet, cell(1, row), cell(len(headers), row), totalStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.WithError(err).Error("Failed to write workbook")
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("смены_%s_%s.xlsx",
		report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02"))

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"rows":    len(report.Entries),
		"file":    filename,
	}).Info("Period workbook exported")

	return buf, filename, nil
}

// RotationCalendar выгружает рабочие дни графика за учетный месяц в iCalendar,
// по событию на весь день для каждого рабочего дня
func (s *ExportService) RotationCalendar(userID uint, year int, month time.Month) (*bytes.Buffer, string, error) {
	report, err := s.periods.Resolve(userID, year, month)
	if err != nil {
		return nil, "", err
	}
	if report.Settings.Rotation == nil {
		return nil, "", fmt.Errorf("%w: график ротации не задан", ErrInvalidSettings)
	}

	days, err := s.schedule.Month(userID, report.Window)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shift-log-bot//rotation//RU")

	stamp := s.now().UTC()
	count := 0
	for _, d := range days {
		if d.Type != timecalc.DayWork {
			continue
		}
		uid := fmt.Sprintf("%d-%s@shift-log-bot", userID, d.Date.Format("20060102"))
		event := cal.AddEvent(uid)
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(d.Date)
		event.SetAllDayEndAt(d.Date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Смена (%s)", report.Settings.Rotation.String()))
		count++
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("график_%s_%s.ics",
		report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02"))

	s.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"work_days": count,
		"file":      filename,
	}).Info("Rotation calendar exported")

	return buf, filename, nil
}

func entryFlags(r timecalc.ShiftRecord) string {
	switch {
	case r.IsDayOff:
		return "выходной"
	case r.IsHoliday && r.IsOnCall:
		return "праздник, дежурство"
	case r.IsHoliday:
		return "праздник"
	case r.IsOnCall:
		return "дежурство"
	}
	return ""
}

// cell переводит номер колонки (с 1) и строки в адрес ячейки
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
