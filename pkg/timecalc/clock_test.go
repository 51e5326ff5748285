package timecalc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shift-log-bot/pkg/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"8:05", 485},
		{"23:59", 1439},
		{" 22:00 ", 1320},
		{"", 0},
		{"0830", 0},
		{"ab:cd", 0},
		{"24:00", 0},
		{"12:60", 0},
		{"-1:30", 0},
		{"8:30:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, timecalc.ParseClock(tt.in))
		})
	}
}

func TestShiftDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"day shift", "08:00", "17:00", 540},
		{"overnight", "22:00", "06:00", 480},
		{"ends at midnight", "16:00", "00:00", 480},
		{"zero length", "09:00", "09:00", 0},
		{"empty end", "09:00", "", 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timecalc.ShiftDuration(tt.start, tt.end)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.Less(t, got, 1440)
		})
	}
}
