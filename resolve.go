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
	"context"
	"fmt"
	"strconv"
	"time"

	"zombiezen.com/go/log"
)

// maxDay is the largest value that the field disambiguator will read as a day.
const maxDay = 31

// resolveMonth finds the first token that names a month.
// A token names a month if it is a number from 1 to 12,
// a month name or abbreviation,
// or close enough to one under p's similarity and cutoff.
// resolveMonth returns the month and the token's index.
func (p *Parser) resolveMonth(ctx context.Context, toks Tokens) (m time.Month, i int, ok bool) {
	for i, tok := range toks {
		if isDigits(tok) {
			n, err := strconv.Atoi(tok)
			if err == nil && int(time.January) <= n && n <= int(time.December) {
				return time.Month(n), i, true
			}
			continue
		}
		if m, ok := p.lookupMonthName(ctx, tok, p.cutoff); ok {
			return m, i, true
		}
	}
	return 0, -1, false
}

// lookupMonthName resolves a month name, correcting misspellings
// that score at least cutoff.
func (p *Parser) lookupMonthName(ctx context.Context, tok string, cutoff float64) (time.Month, bool) {
	if m, ok := LookupMonth(tok); ok {
		return m, true
	}
	m, score, ok := closestMonth(p.sim, tok, cutoff)
	if !ok {
		return 0, false
	}
	log.Debugf(ctx, "Corrected %q to %v (score %.2f)", tok, m, score)
	return m, true
}

// disambiguate assigns the two non-month fields to the year and the day.
//
// A value greater than 31 is the year.
// If neither value is greater than 31,
// the first field is the year and the second is the day.
// This positional rule does not consult the calendar.
// Years less than 100 are taken to be in the 2000s.
func disambiguate(rest Tokens) (year, day int, err error) {
	if len(rest) != 2 {
		return 0, 0, fmt.Errorf("found %d fields besides month (want 2): %w", len(rest), ErrInvalidNumericFields)
	}
	var nums [2]int
	for i, tok := range rest {
		if !isDigits(tok) {
			return 0, 0, fmt.Errorf("%q is not a number: %w", tok, ErrInvalidNumericFields)
		}
		nums[i], err = strconv.Atoi(tok)
		if err != nil {
			return 0, 0, fmt.Errorf("%q: %w", tok, ErrInvalidNumericFields)
		}
	}
	switch first, second := nums[0], nums[1]; {
	case first > maxDay:
		year, day = first, second
	case second > maxDay:
		year, day = second, first
	default:
		year, day = first, second
	}
	if year < 100 {
		year += 2000
	}
	return year, day, nil
}
