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


package main

import (
	"time"

	"zombiezen.com/go/gregorian"
)

func localDateFromTime(t time.Time) gregorian.Date {
	if t.IsZero() {
		return gregorian.Date{}
	}
	t = t.Local()
	return gregorian.NewDate(t.Year(), t.Month(), t.Day())
}

// localDayRange returns the half-open interval of instants
// from the start of start to the end of end in loc.
func localDayRange(start, end gregorian.Date, loc *time.Location) (minTime, maxTime time.Time) {
	minTime = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	maxTime = time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, loc)
	return minTime, maxTime
}
