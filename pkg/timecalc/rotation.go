package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DayType - тип дня по графику ротации
type DayType int

const (
	DayUnknown DayType = iota // график не задан, день не раскрашиваем
	DayWork
	DayOff
)

func (t DayType) String() string {
	switch t {
	case DayWork:
		return "work"
	case DayOff:
		return "off"
	default:
		return "unknown"
	}
}

// DayProjection - тип конкретного дня
type DayProjection struct {
	Date time.Time
	Type DayType
}

// ParseRotation разбирает график вида "4x2" (также "4/2", "4-2", "4х2").
// Для нераспознанной строки возвращает nil.
func ParseRotation(s string) *RotationPattern {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sep := range []string{"x", "х", "/", "-", "*"} {
		work, off, ok := strings.Cut(s, sep)
		if !ok {
			continue
		}
		w, err := strconv.Atoi(strings.TrimSpace(work))
		if err != nil {
			return nil
		}
		o, err := strconv.Atoi(strings.TrimSpace(off))
		if err != nil {
			return nil
		}
		p := RotationPattern{WorkDays: w, OffDays: o}
		if !p.IsValid() {
			return nil
		}
		return &p
	}
	return nil
}

// IsValid проверяет, что по графику можно считать
func (p RotationPattern) IsValid() bool {
	return p.WorkDays > 0 && p.OffDays >= 0 && p.CycleLength() > 0
}

func (p RotationPattern) String() string {
	return fmt.Sprintf("%dx%d", p.WorkDays, p.OffDays)
}

// DayTypeFor определяет, рабочий ли день date по графику pattern с нулевым днем anchor.
// Нулевой день всегда рабочий. Работает и для дат до anchor.
func DayTypeFor(date time.Time, pattern *RotationPattern, anchor *time.Time) DayType {
	if pattern == nil || !pattern.IsValid() || anchor == nil || anchor.IsZero() {
		return DayUnknown
	}

	cycle := pattern.CycleLength()
	elapsed := DaysBetween(*anchor, date)
	position := ((elapsed % cycle) + cycle) % cycle

	if position < pattern.WorkDays {
		return DayWork
	}
	return DayOff
}

// Project раскладывает график на все дни окна
func Project(w Window, pattern *RotationPattern, anchor *time.Time) []DayProjection {
	days := w.Days()
	result := make([]DayProjection, 0, len(days))
	for _, d := range days {
		result = append(result, DayProjection{Date: d, Type: DayTypeFor(d, pattern, anchor)})
	}
	return result
}

// DaysBetween возвращает число суток от from до to по местным полуночам.
// Округление убирает сдвиг на час при переходе на летнее время.
func DaysBetween(from, to time.Time) int {
	loc := from.Location()
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
