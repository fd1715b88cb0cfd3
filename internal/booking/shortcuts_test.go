package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

func TestShortcutAndPeriodLookup(t *testing.T) {
	band, ok := ShortcutByID("dia-completo")
	require.True(t, ok)
	assert.Equal(t, 6, band.StartHour)
	assert.Equal(t, 23, band.EndHour)

	_, ok = ShortcutByID("manana")
	assert.False(t, ok, "periods are not shortcuts")

	band, ok = PeriodByID("tarde")
	require.True(t, ok)
	assert.Equal(t, 12, band.StartHour)

	_, ok = PeriodByID("dia-completo")
	assert.False(t, ok, "shortcuts are not periods")
}

func TestHourBandContains(t *testing.T) {
	band := HourBand{StartHour: 6, EndHour: 12}

	tests := []struct {
		start string
		want  bool
	}{
		{"06:00", true},
		{"11:00", true},
		{"12:00", false}, // end hour is exclusive
		{"05:00", false},
		{"", false},
		{"xx:00", false},
	}
	for _, tt := range tests {
		got := band.Contains(model.TimeSlot{StartTime: tt.start})
		assert.Equal(t, tt.want, got, "start %q", tt.start)
	}
}
