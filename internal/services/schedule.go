// This file implements the Strategy Pattern for recurring payment
// scheduling. Each frequency has its own strategy that computes the next
// charge date after a given occurrence.

package services

import (
	"fmt"
	"time"

	"scbank/internal/core"
)

// NextDater is the strategy interface for recurring payment schedules.
type NextDater interface {
	// NextAfter returns the first charge date strictly after from.
	NextAfter(from time.Time) time.Time
}

// WeeklyNext advances by seven days.
type WeeklyNext struct{}

func (WeeklyNext) NextAfter(from time.Time) time.Time {
	return from.AddDate(0, 0, 7)
}

// BiWeeklyNext advances by fourteen days.
type BiWeeklyNext struct{}

func (BiWeeklyNext) NextAfter(from time.Time) time.Time {
	return from.AddDate(0, 0, 14)
}

// MonthlyNext advances by one calendar month, clamping to the last day of
// shorter months.
type MonthlyNext struct{}

func (MonthlyNext) NextAfter(from time.Time) time.Time {
	year, month, day := from.Date()
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, from.Location())
	lastDay := time.Date(next.Year(), next.Month()+1, 0, 0, 0, 0, 0, from.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, from.Location())
}

// YearlyNext advances by one year, clamping Feb 29 to Feb 28 off leap years.
type YearlyNext struct{}

func (YearlyNext) NextAfter(from time.Time) time.Time {
	year, month, day := from.Date()
	lastDay := time.Date(year+1, month+1, 0, 0, 0, 0, 0, from.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year+1, month, day, 0, 0, 0, 0, from.Location())
}

// scheduleStrategies maps frequencies to their corresponding strategies.
var scheduleStrategies = map[core.Frequency]NextDater{
	core.Weekly:   WeeklyNext{},
	core.BiWeekly: BiWeeklyNext{},
	core.Monthly:  MonthlyNext{},
	core.Yearly:   YearlyNext{},
}

// GetNextDater returns the schedule strategy for a frequency.
func GetNextDater(frequency core.Frequency) (NextDater, error) {
	strategy, ok := scheduleStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return strategy, nil
}

// UpcomingCharges projects the next n charge dates of a payment starting
// from now. A payment whose NextDate is already in the future starts there.
func UpcomingCharges(p core.RecurringPayment, now time.Time, n int) ([]time.Time, error) {
	strategy, err := GetNextDater(p.Frequency)
	if err != nil {
		return nil, err
	}

	next := p.NextDate
	for !next.After(now) {
		next = strategy.NextAfter(next)
	}

	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, next)
		next = strategy.NextAfter(next)
	}
	return dates, nil
}
