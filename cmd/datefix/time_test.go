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
	"testing"
	"time"

	"zombiezen.com/go/gregorian"
)

func TestLocalDayRange(t *testing.T) {
	loc := time.FixedZone("America/Los_Angeles", -8*int(time.Hour/time.Second))
	tests := []struct {
		start   gregorian.Date
		end     gregorian.Date
		wantMin time.Time
		wantMax time.Time
	}{
		{
			start:   gregorian.NewDate(2026, time.January, 23),
			end:     gregorian.NewDate(2026, time.January, 23),
			wantMin: time.Date(2026, time.January, 23, 8, 0, 0, 0, time.UTC),
			wantMax: time.Date(2026, time.January, 24, 8, 0, 0, 0, time.UTC),
		},
		{
			start:   gregorian.NewDate(2024, time.February, 28),
			end:     gregorian.NewDate(2024, time.February, 29),
			wantMin: time.Date(2024, time.February, 28, 8, 0, 0, 0, time.UTC),
			wantMax: time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			start:   gregorian.NewDate(2025, time.December, 31),
			end:     gregorian.NewDate(2025, time.December, 31),
			wantMin: time.Date(2025, time.December, 31, 8, 0, 0, 0, time.UTC),
			wantMax: time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, test := range tests {
		gotMin, gotMax := localDayRange(test.start, test.end, loc)
		if !gotMin.Equal(test.wantMin) || !gotMax.Equal(test.wantMax) {
			t.Errorf("localDayRange(%v, %v) = %v, %v; want %v, %v",
				test.start, test.end, gotMin.UTC(), gotMax.UTC(), test.wantMin, test.wantMax)
		}
	}
}

func TestLocalDateFromTime(t *testing.T) {
	if got := localDateFromTime(time.Time{}); !got.IsZero() {
		t.Errorf("localDateFromTime(time.Time{}) = %v; want zero", got)
	}
	now := time.Now()
	got := localDateFromTime(now)
	if got.Year() != now.Year() || got.Month() != now.Month() || got.Day() != now.Day() {
		t.Errorf("localDateFromTime(%v) = %v", now, got)
	}
}
