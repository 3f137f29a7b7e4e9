package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSlotTaken = New(http.StatusConflict, "time slot already booked")

func TestWrappedSentinelStillMatches(t *testing.T) {
	wrapped := Wrap(errors.New("exclusion_violation"), http.StatusConflict, "time slot already booked")

	assert.ErrorIs(t, wrapped, errSlotTaken)
	assert.Equal(t, "exclusion_violation", errors.Unwrap(wrapped).Error())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(fmt.Errorf("create: %w", errSlotTaken)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
