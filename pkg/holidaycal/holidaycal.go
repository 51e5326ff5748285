// Package holidaycal читает производственный календарь в формате xmlcalendar.ru (JSON).
package holidaycal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// calendarJSON - структура исходного JSON
type calendarJSON struct {
	Year   int         `json:"year"`
	Months []monthDays `json:"months"`
}

type monthDays struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// Day - нерабочий день календаря
type Day struct {
	Date    time.Time // полночь UTC
	Year    int
	Month   int
	Day     int
	Moved   bool // перенесенный выходной, в файле помечен "+"
	Weekend bool // обычные суббота или воскресенье, не праздник
}

// publicHolidays - нерабочие праздничные дни по ст. 112 ТК РФ
var publicHolidays = map[[2]int]bool{
	{1, 1}: true, {1, 2}: true, {1, 3}: true, {1, 4}: true,
	{1, 5}: true, {1, 6}: true, {1, 7}: true, {1, 8}: true,
	{2, 23}: true,
	{3, 8}:  true,
	{5, 1}:  true,
	{5, 9}:  true,
	{6, 12}: true,
	{11, 4}: true,
}

// IsHoliday отличает праздник от обычного выходного
func (d Day) IsHoliday() bool {
	return !d.Weekend
}

// isPlainWeekend: суббота или воскресенье, не праздник по закону и не перенос
func isPlainWeekend(date time.Time, moved bool) bool {
	if moved || publicHolidays[[2]int{int(date.Month()), date.Day()}] {
		return false
	}
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Calendar - нерабочие дни одного года
type Calendar struct {
	Year int
	Days []Day
}

// ParseFile читает календарь из файла
func ParseFile(path string) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse разбирает календарь.
// Дни с "*" - сокращенные рабочие, в список нерабочих они не попадают.
// Повтор дня в месяце не ошибка: день попадает в список один раз.
// Weekend ставится субботам и воскресеньям, которые не праздники
// по ст. 112 ТК РФ и не помечены "+".
func Parse(r io.Reader) (*Calendar, error) {
	var raw calendarJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar JSON: %w", err)
	}
	if raw.Year <= 0 {
		return nil, fmt.Errorf("calendar has no year")
	}

	cal := &Calendar{Year: raw.Year}
	seen := make(map[time.Time]int)

	for _, m := range raw.Months {
		if m.Month < 1 || m.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", m.Month)
		}

		for _, token := range strings.Split(m.Days, ",") {
			token = strings.TrimSpace(token)
			if token == "" || strings.HasSuffix(token, "*") {
				continue
			}

			moved := strings.HasSuffix(token, "+")
			token = strings.TrimSuffix(token, "+")

			day, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w", token, m.Month, err)
			}

			date := time.Date(raw.Year, time.Month(m.Month), day, 0, 0, 0, 0, time.UTC)
			if date.Month() != time.Month(m.Month) {
				return nil, fmt.Errorf("day %d does not exist in month %d", day, m.Month)
			}

			if i, ok := seen[date]; ok {
				cal.Days[i].Moved = cal.Days[i].Moved || moved
				continue
			}
			seen[date] = len(cal.Days)

			cal.Days = append(cal.Days, Day{
				Date:  date,
				Year:  raw.Year,
				Month: m.Month,
				Day:   day,
				Moved: moved,
			})
		}
	}

	for i := range cal.Days {
		cal.Days[i].Weekend = isPlainWeekend(cal.Days[i].Date, cal.Days[i].Moved)
	}

	sort.Slice(cal.Days, func(i, j int) bool { return cal.Days[i].Date.Before(cal.Days[j].Date) })

	return cal, nil
}

// Contains проверяет, нерабочий ли день
func (c *Calendar) Contains(date time.Time) bool {
	for _, d := range c.Days {
		if d.Date.Year() == date.Year() && d.Date.Month() == date.Month() && d.Date.Day() == date.Day() {
			return true
		}
	}
	return false
}

// ForMonth возвращает нерабочие дни месяца
func (c *Calendar) ForMonth(month int) []Day {
	var result []Day
	for _, d := range c.Days {
		if d.Month == month {
			result = append(result, d)
		}
	}
	return result
}

// Holidays возвращает только праздничные дни, без обычных выходных
func (c *Calendar) Holidays() []Day {
	var result []Day
	for _, d := range c.Days {
		if d.IsHoliday() {
			result = append(result, d)
		}
	}
	return result
}
