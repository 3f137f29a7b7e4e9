package request

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "8:00", " 9:00 ", "14:30", "23:59:59", "24:00", "24:00:00", "10:00:00"}
	invalid := []string{"", "800", "10:0", "24:30", "25:00", "12:60", "ab:cd", "10:00:61", "10:00am", "-1:00", "100:00"}

	for _, s := range valid {
		assert.True(t, IsClock(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsClock(s), s)
	}
}

func TestValidationTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("hour", validateClock))
	require.NoError(t, v.RegisterValidation("date", validateDate))

	type payload struct {
		Date string `validate:"required,date"`
		Hour string `validate:"required,hour"`
	}

	assert.NoError(t, v.Struct(payload{Date: "2026-03-15", Hour: "10:00"}))
	assert.Error(t, v.Struct(payload{Date: "2026-02-30", Hour: "10:00"}))
	assert.Error(t, v.Struct(payload{Date: "15/03/2026", Hour: "10:00"}))
	assert.Error(t, v.Struct(payload{Date: "2026-03-15", Hour: "noon"}))
	assert.NoError(t, v.Struct(payload{Date: "2026-03-15", Hour: "8:00"}))
}

func TestWholeHour(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"08:00", 8, true},
		{"8:00", 8, true},
		{"24:00", 24, true},
		{"21:00:00", 21, true},
		{"22:30", 0, false},
		{"10:00:15", 0, false},
		{"", 0, false},
		{"late", 0, false},
	}

	for _, tt := range tests {
		got, ok := WholeHour(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
