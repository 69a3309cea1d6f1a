package model

import (
	"math/bits"
	"time"
)

// Work day bitmask, one bit per weekday starting from Saturday
const (
	WorkDaySaturday  = 1 << 0
	WorkDaySunday    = 1 << 1
	WorkDayMonday    = 1 << 2
	WorkDayTuesday   = 1 << 3
	WorkDayWednesday = 1 << 4
	WorkDayThursday  = 1 << 5
	WorkDayFriday    = 1 << 6

	// AllowedWorkDaysMask is the sum of every valid work day bit
	AllowedWorkDaysMask = WorkDaySaturday | WorkDaySunday | WorkDayMonday |
		WorkDayTuesday | WorkDayWednesday | WorkDayThursday | WorkDayFriday
)

// ValidWorkDays reports whether mask selects at least one day and
// no bits outside the seven weekday bits.
func ValidWorkDays(mask int) bool {
	return mask > 0 && mask&^AllowedWorkDaysMask == 0
}

// WorkingDaysPerWeek counts the selected days in the bitmask.
func WorkingDaysPerWeek(mask int) int {
	return bits.OnesCount(uint(mask & AllowedWorkDaysMask))
}

// ShiftDurationHours returns the whole hours between shift start and end,
// both in "15:04" form. An end at or before the start wraps to the next day.
func ShiftDurationHours(start, end string) (int, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, err
	}
	if !e.After(s) {
		e = e.Add(24 * time.Hour)
	}
	return int(e.Sub(s).Hours()), nil
}
