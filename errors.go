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
	"errors"
	"fmt"
)

// Errors reported in [Result.Err].
// Use [errors.Is] to classify a result's failure.
var (
	// ErrMonthNotFound indicates that no field could be read as a month.
	ErrMonthNotFound = errors.New("month not found")
	// ErrInvalidNumericFields indicates that the fields other than the month
	// were not exactly two integers.
	ErrInvalidNumericFields = errors.New("invalid numeric fields")
	// ErrInvalidCalendarDate indicates that the year and month
	// do not form a computable calendar month.
	ErrInvalidCalendarDate = errors.New("invalid month or year")
	// ErrDayOutOfRange indicates that the day was past the end of its month.
	// Results with this error carry a clamped date.
	ErrDayOutOfRange = errors.New("day out of range")
	// ErrInvalidDate indicates that a weekday could not be computed for the date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidFormat indicates that the input did not have the shape
	// required by a fixed-format parse (see [Parser.ParseEuropean]).
	ErrInvalidFormat = errors.New("invalid date format")
)

// Messages reported in [Result.Error].
const (
	msgMonthNotFound   = "Invalid month found. Could not correct."
	msgInvalidNumeric  = "Invalid numeric values in date."
	msgInvalidCalendar = "Invalid month or year."
	msgInvalidDate     = "Invalid date"
	msgInvalidEuropean = "Invalid date format. Expected format: dd-month-yyyy."
)

// DayOutOfRangeError is the error recorded when a day is clamped
// to the last day of its month.
type DayOutOfRangeError struct {
	Day     int
	LastDay int
}

func (e *DayOutOfRangeError) Error() string {
	return fmt.Sprintf("Invalid day (%d). Replaced with last valid day %d.", e.Day, e.LastDay)
}

// Is reports whether target is [ErrDayOutOfRange].
func (e *DayOutOfRangeError) Is(target error) bool {
	return target == ErrDayOutOfRange
}
