package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidWorkDays(t *testing.T) {
	assert.True(t, ValidWorkDays(WorkDaySaturday))
	assert.True(t, ValidWorkDays(AllowedWorkDaysMask))
	assert.True(t, ValidWorkDays(WorkDayMonday|WorkDayFriday))

	assert.False(t, ValidWorkDays(0))
	assert.False(t, ValidWorkDays(-1))
	assert.False(t, ValidWorkDays(1<<7))
	assert.False(t, ValidWorkDays(AllowedWorkDaysMask|1<<8))
}

func TestWorkingDaysPerWeek(t *testing.T) {
	assert.Equal(t, 1, WorkingDaysPerWeek(WorkDaySunday))
	assert.Equal(t, 3, WorkingDaysPerWeek(WorkDaySaturday|WorkDayMonday|WorkDayWednesday))
	assert.Equal(t, 7, WorkingDaysPerWeek(AllowedWorkDaysMask))
	assert.Equal(t, 0, WorkingDaysPerWeek(0))
}

func TestShiftDurationHours(t *testing.T) {
	h, err := ShiftDurationHours("09:00", "17:00")
	assert.NoError(t, err)
	assert.Equal(t, 8, h)

	// Overnight shift wraps to next day
	h, err = ShiftDurationHours("22:00", "06:00")
	assert.NoError(t, err)
	assert.Equal(t, 8, h)

	// Equal start and end means a full day
	h, err = ShiftDurationHours("08:00", "08:00")
	assert.NoError(t, err)
	assert.Equal(t, 24, h)

	_, err = ShiftDurationHours("9am", "17:00")
	assert.Error(t, err)

	_, err = ShiftDurationHours("09:00", "25:00")
	assert.Error(t, err)
}
