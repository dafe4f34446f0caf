// Copyright 2026 Roxy Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0


package datefix

import (
	"fmt"
	"time"
)

// Range of years that form a computable calendar date.
const (
	MinYear = 1
	MaxYear = 9999
)

// daysInMonth is the length of each month in a common year.
var daysInMonth = [...]int{
	time.January:   31,
	time.February:  28,
	time.March:     31,
	time.April:     30,
	time.May:       31,
	time.June:      30,
	time.July:      31,
	time.August:    31,
	time.September: 30,
	time.October:   31,
	time.November:  30,
	time.December:  31,
}

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days in the given month,
// or zero if m is not a month.
func DaysIn(m time.Month, year int) int {
	if m < time.January || m > time.December {
		return 0
	}
	if m == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[m]
}

// isCalendarPair reports whether (year, m) names a month
// that this package can reason about.
func isCalendarPair(year int, m time.Month) bool {
	return MinYear <= year && year <= MaxYear && time.January <= m && m <= time.December
}

// DayName returns the English weekday name of the given date
// in the proleptic Gregorian calendar.
func DayName(year int, m time.Month, day int) (string, error) {
	if !isCalendarPair(year, m) || day < 1 || day > DaysIn(m, year) {
		return "", fmt.Errorf("%04d-%02d-%02d: %w", year, int(m), day, ErrInvalidDate)
	}
	return time.Date(year, m, day, 0, 0, 0, 0, time.UTC).Weekday().String(), nil
}

// validate fills in the calendar fields of r from the resolved fields,
// clamping r.Day to the end of the month if necessary.
// validate returns false if r was rejected and no further processing should happen.
func validate(r *Result, day int, m time.Month, year int) bool {
	leap := IsLeapYear(year)
	r.LeapYear = &leap
	if !isCalendarPair(year, m) {
		r.reject(fmt.Errorf("%d-%02d: %w", year, int(m), ErrInvalidCalendarDate), msgInvalidCalendar)
		return false
	}
	r.ValidLastDay = DaysIn(m, year)
	if day > r.ValidLastDay {
		err := &DayOutOfRangeError{Day: day, LastDay: r.ValidLastDay}
		r.Err = err
		r.Error = err.Error()
		day = r.ValidLastDay
	} else {
		r.IsValid = true
	}

	r.Month = m
	r.Year = year
	name, err := DayName(year, m, day)
	if err != nil {
		// Month and year are kept so that the corrected form
		// can still name the end of the month.
		r.IsValid = false
		r.Err = err
		r.Error = msgInvalidDate
		return false
	}
	r.Day = day
	r.DayName = name
	return true
}
