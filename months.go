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
	"strconv"
	"strings"
	"time"
)

// monthTable maps month spellings to month numbers.
// It is built once during package initialization and never modified,
// so it may be read from any goroutine without synchronization.
type monthTable struct {
	// index is keyed by lowercased full name, lowercased 3-letter abbreviation,
	// and the decimal strings "1" through "12".
	index map[string]time.Month
	// vocabulary is the list of candidate spellings for fuzzy matching:
	// full names followed by abbreviations, capitalized.
	vocabulary []string
}

var months = newMonthTable()

func newMonthTable() *monthTable {
	tab := &monthTable{
		index:      make(map[string]time.Month, 36),
		vocabulary: make([]string, 0, 24),
	}
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		tab.index[strings.ToLower(name)] = m
		tab.index[strings.ToLower(name[:3])] = m
		tab.index[strconv.Itoa(int(m))] = m
		tab.vocabulary = append(tab.vocabulary, name)
	}
	for m := time.January; m <= time.December; m++ {
		tab.vocabulary = append(tab.vocabulary, m.String()[:3])
	}
	return tab
}

// LookupMonth returns the month named by s.
// s may be a full English month name, a 3-letter abbreviation,
// or a month number without leading zeroes ("1" through "12").
// Names are matched case-insensitively.
func LookupMonth(s string) (time.Month, bool) {
	m, ok := months.index[strings.ToLower(s)]
	return m, ok
}

// monthFromName resolves a spelling from the fuzzy vocabulary.
func (tab *monthTable) monthFromName(name string) time.Month {
	return tab.index[strings.ToLower(name)]
}
