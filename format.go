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

// FallbackDate is returned by [Format] when its arguments cannot be formatted.
const FallbackDate = "01-January-2000"

// Format returns the date in "DD-Month-YYYY" form,
// like "05-March-2023".
// If m is not a month, Format returns [FallbackDate].
func Format(day int, m time.Month, year int) string {
	if m < time.January || m > time.December {
		return FallbackDate
	}
	return fmt.Sprintf("%02d-%v-%d", day, m, year)
}

// Pair is the pair of renderings of a [Result].
type Pair struct {
	// Converted is the formatted date if the input was valid,
	// or "Invalid (input)" otherwise.
	Converted string
	// Corrected is always a formatted date.
	// For invalid input, it is the last day of the resolved month.
	Corrected string
}

// Pair returns the converted and corrected forms of r.
func (r *Result) Pair() Pair {
	if r.IsValid {
		s := Format(r.Day, r.Month, r.Year)
		return Pair{Converted: s, Corrected: s}
	}
	return Pair{
		Converted: "Invalid (" + r.InputDate + ")",
		Corrected: Format(r.ValidLastDay, r.Month, r.Year),
	}
}
