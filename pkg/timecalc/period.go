package timecalc

import "time"

// Window - учетный месяц, обе границы включительно.
// Start - полночь первого дня, End - 23:59:59.999 последнего.
type Window struct {
	Start time.Time
	End   time.Time

	year     int
	month    time.Month
	startDay int
}

// PeriodWindow возвращает учетный месяц, который начинается в указанном календарном месяце.
// День начала больше длины месяца переносится дальше обычной нормализацией time.Date,
// например 31 февраля превращается в 2 или 3 марта.
func PeriodWindow(year int, month time.Month, startDay int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := time.Date(year, month, startDay, 0, 0, 0, 0, loc)
	lastDay := time.Date(year, month+1, startDay-1, 0, 0, 0, 0, loc)
	return Window{
		Start:    start,
		End:      endOfDay(lastDay),
		year:     first.Year(),
		month:    first.Month(),
		startDay: startDay,
	}
}

// CurrentPeriodStart возвращает календарный месяц, в котором начался учетный месяц,
// содержащий дату today. До дня начала периода это обычно предыдущий календарный месяц.
func CurrentPeriodStart(today time.Time, startDay int) (int, time.Month) {
	return AccountingWindow(today, startDay).Month()
}

// AccountingWindow возвращает учетный месяц, в который попадает reference.
// Если день начала больше длины месяца, окно после нормализации может начаться
// позже reference (31 февраля = 2 марта), тогда берется соседнее окно.
func AccountingWindow(reference time.Time, startDay int) Window {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	if reference.Day() < startDay {
		first = first.AddDate(0, -1, 0)
	}

	w := PeriodWindow(first.Year(), first.Month(), startDay, reference.Location())
	for i := 0; i < 2 && !w.Contains(reference); i++ {
		if StartOfDay(reference).Before(w.Start) {
			w = w.Prev()
		} else {
			w = w.Next()
		}
	}
	return w
}

// Contains проверяет, попадает ли календарная дата в окно.
// Время суток и часовой пояс даты не учитываются.
func (w Window) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, w.Start.Location())
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days возвращает все дни окна
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Next возвращает следующий учетный месяц
func (w Window) Next() Window {
	return w.shift(1)
}

// Prev возвращает предыдущий учетный месяц
func (w Window) Prev() Window {
	return w.shift(-1)
}

// Month возвращает календарный месяц, в котором начинается окно
func (w Window) Month() (int, time.Month) {
	if w.startDay == 0 {
		return w.Start.Year(), w.Start.Month()
	}
	return w.year, w.month
}

func (w Window) shift(months int) Window {
	startDay := w.startDay
	if startDay == 0 {
		startDay = w.Start.Day()
	}
	year, month := w.Month()
	return PeriodWindow(year, month+time.Month(months), startDay, w.Start.Location())
}

func (w Window) String() string {
	return "[" + w.Start.Format("2006-01-02") + ", " + w.End.Format("2006-01-02") + "]"
}

// StartOfDay возвращает полночь того же дня в той же зоне
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
