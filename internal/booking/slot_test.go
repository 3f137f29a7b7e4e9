package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var venue = time.FixedZone("CET", 60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, venue)
}

func calendarDay(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func span(day, fromHour, toHour int) Interval {
	return Interval{Start: at(day, fromHour, 0), End: at(day, toHour, 0)}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"08:00", 8, nil},
		{"8:00", 8, nil},
		{"21:00:00", 21, nil},
		{"00:00", 0, nil},
		{" 10:00 ", 10, nil},
		{"09:30", 0, ErrHourNotAligned},
		{"10:00:15", 0, ErrHourNotAligned},
		{"24:00", 0, ErrInvalidHour},
		{"ab:00", 0, ErrInvalidHour},
		{"10", 0, ErrInvalidHour},
		{"", 0, ErrInvalidHour},
		{"10:0", 0, ErrInvalidHour},
		{"10:00:00:00", 0, ErrInvalidHour},
		{"-1:00", 0, ErrInvalidHour},
		{"10:75", 0, ErrInvalidHour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHour(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	existing := span(16, 10, 12)

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"ends when existing starts", span(16, 9, 10), false},
		{"starts when existing ends", span(16, 12, 13), false},
		{"starts inside", span(16, 11, 12), true},
		{"ends inside", Interval{Start: at(16, 9, 0), End: at(16, 10, 30)}, true},
		{"same interval", span(16, 10, 12), true},
		{"same start shorter", span(16, 10, 11), true},
		{"contains existing", span(16, 9, 13), true},
		{"well before", span(16, 7, 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.Overlaps(existing))
		})
	}
}

func TestCheckSlotRules(t *testing.T) {
	policy := DefaultSlotPolicy(venue)
	day := calendarDay(16)

	tests := []struct {
		name     string
		hour     string
		now      time.Time
		existing []Interval
		wantErr  error
	}{
		{"bookable", "14:00", at(16, 9, 0), nil, nil},
		{"in the past", "08:00", at(16, 9, 0), nil, ErrSlotInPast},
		{"lead exactly two hours", "11:00", at(16, 9, 0), nil, nil},
		{"lead one minute short", "11:00", at(16, 9, 1), nil, ErrLeadTimeTooShort},
		{"starting now is too soon", "09:00", at(16, 9, 0), nil, ErrLeadTimeTooShort},
		{"before opening", "07:00", at(15, 9, 0), nil, ErrOutsideOperatingHours},
		{"opening hour", "08:00", at(15, 9, 0), nil, nil},
		{"last hour", "21:00", at(15, 9, 0), nil, nil},
		{"closing hour", "22:00", at(15, 9, 0), nil, ErrOutsideOperatingHours},
		{"conflict", "10:00", at(15, 9, 0), []Interval{span(16, 10, 11)}, ErrSlotConflict},
		{"inside a long booking", "11:00", at(15, 9, 0), []Interval{span(16, 10, 13)}, ErrSlotConflict},
		{"touching bookings", "11:00", at(15, 9, 0), []Interval{span(16, 10, 11), span(16, 12, 13)}, nil},
		{"misaligned", "10:30", at(15, 9, 0), nil, ErrHourNotAligned},
		{"garbage", "ten", at(15, 9, 0), nil, ErrInvalidHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(day, tt.hour, tt.existing, tt.now, policy)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckSlotUsesVenueZone(t *testing.T) {
	policy := DefaultSlotPolicy(venue)

	// 10:00 in the venue is 09:00 UTC; "now" is expressed in UTC.
	now := time.Date(2026, time.March, 16, 7, 0, 0, 0, time.UTC)
	assert.NoError(t, CheckSlot(calendarDay(16), "10:00", nil, now, policy))

	now = time.Date(2026, time.March, 16, 7, 30, 0, 0, time.UTC)
	assert.ErrorIs(t, CheckSlot(calendarDay(16), "10:00", nil, now, policy), ErrLeadTimeTooShort)
}

func TestCourtTypeHoursOverrideDefaults(t *testing.T) {
	policy := DefaultSlotPolicy(venue).WithHours("06:00", "24:00")
	now := at(15, 9, 0)

	assert.NoError(t, CheckSlot(calendarDay(16), "06:00", nil, now, policy))
	assert.NoError(t, CheckSlot(calendarDay(16), "23:00", nil, now, policy))

	// Unparseable settings keep the defaults.
	fallback := DefaultSlotPolicy(venue).WithHours("early", "")
	assert.Equal(t, 8, fallback.OpenHour)
	assert.Equal(t, 22, fallback.CloseHour)
}

func TestIsTimeSlotAvailable(t *testing.T) {
	policy := DefaultSlotPolicy(venue)
	day := calendarDay(16)
	paid := []Interval{span(16, 10, 11)}

	t.Run("club scenario", func(t *testing.T) {
		now := at(16, 9, 0)

		ok, err := IsTimeSlotAvailable(day, "10:00", paid, now, policy)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = IsTimeSlotAvailable(day, "11:00", paid, now, policy)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = IsTimeSlotAvailable(day, "09:30", paid, now, policy)
		assert.ErrorIs(t, err, ErrHourNotAligned)
	})

	t.Run("lead time beats free court", func(t *testing.T) {
		now := at(16, 12, 0)
		for h := 12; h < 14; h++ {
			ok, err := IsTimeSlotAvailable(day, FormatHour(h), nil, now, policy)
			require.NoError(t, err)
			assert.False(t, ok, "hour %d", h)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		now := at(15, 20, 0)
		first, err1 := IsTimeSlotAvailable(day, "15:00", paid, now, policy)
		second, err2 := IsTimeSlotAvailable(day, "15:00", paid, now, policy)
		assert.Equal(t, first, second)
		assert.Equal(t, err1, err2)
	})
}

func TestDaySlots(t *testing.T) {
	policy := DefaultSlotPolicy(venue)
	slots := DaySlots(calendarDay(16), []Interval{span(16, 14, 16)}, at(16, 9, 0), policy)

	require.Len(t, slots, 14)
	assert.Equal(t, 8, slots[0].Hour)
	assert.Equal(t, 21, slots[len(slots)-1].Hour)

	byHour := make(map[int]HourSlot)
	for _, s := range slots {
		byHour[s.Hour] = s
	}
	assert.ErrorIs(t, byHour[8].Reason, ErrSlotInPast)
	assert.ErrorIs(t, byHour[10].Reason, ErrLeadTimeTooShort)
	assert.True(t, byHour[11].Available)
	assert.ErrorIs(t, byHour[14].Reason, ErrSlotConflict)
	assert.ErrorIs(t, byHour[15].Reason, ErrSlotConflict)
	assert.True(t, byHour[16].Available)
	assert.Equal(t, at(16, 16, 0), byHour[16].Start)
}
