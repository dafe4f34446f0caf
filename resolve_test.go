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
	"testing"
	"time"
)

func TestResolveMonth(t *testing.T) {
	tests := []struct {
		toks  Tokens
		want  time.Month
		index int
		ok    bool
	}{
		{toks: Tokens{"15", "March", "2023"}, want: time.March, index: 1, ok: true},
		{toks: Tokens{"2024", "02", "30"}, want: time.February, index: 1, ok: true},
		{toks: Tokens{"31", "Novembr", "2023"}, want: time.November, index: 1, ok: true},
		{toks: Tokens{"mar", "12", "2023"}, want: time.March, index: 0, ok: true},
		// Greedy: the first qualifying token wins, even if a later one is a month name.
		{toks: Tokens{"5", "March", "2023"}, want: time.May, index: 0, ok: true},
		{toks: Tokens{"13", "14", "2023"}, index: -1, ok: false},
		{toks: Tokens{"hello", "world"}, index: -1, ok: false},
		{toks: nil, index: -1, ok: false},
	}
	p := New(nil)
	for _, test := range tests {
		got, index, ok := p.resolveMonth(t.Context(), test.toks)
		if got != test.want || index != test.index || ok != test.ok {
			t.Errorf("resolveMonth(%q) = %v, %d, %t; want %v, %d, %t",
				test.toks, got, index, ok, test.want, test.index, test.ok)
		}
	}
}

func TestDisambiguate(t *testing.T) {
	tests := []struct {
		rest     Tokens
		wantYear int
		wantDay  int
		err      bool
	}{
		{rest: Tokens{"15", "2023"}, wantYear: 2023, wantDay: 15},
		{rest: Tokens{"2023", "15"}, wantYear: 2023, wantDay: 15},
		{rest: Tokens{"31", "2023"}, wantYear: 2023, wantDay: 31},
		{rest: Tokens{"29", "05"}, wantYear: 2029, wantDay: 5},
		// Neither exceeds 31: the first field is the year.
		{rest: Tokens{"05", "29"}, wantYear: 2005, wantDay: 29},
		{rest: Tokens{"10", "12"}, wantYear: 2010, wantDay: 12},
		{rest: Tokens{"99", "1"}, wantYear: 2099, wantDay: 1},
		{rest: Tokens{"100", "1"}, wantYear: 100, wantDay: 1},
		{rest: Tokens{"2023"}, err: true},
		{rest: Tokens{"1", "2", "2023"}, err: true},
		{rest: Tokens{"x", "2023"}, err: true},
		{rest: Tokens{"99999999999999999999999", "1"}, err: true},
	}
	for _, test := range tests {
		year, day, err := disambiguate(test.rest)
		if test.err {
			if err == nil {
				t.Errorf("disambiguate(%q) = %d, %d, <nil>; want _, _, <error>", test.rest, year, day)
			} else if !errors.Is(err, ErrInvalidNumericFields) {
				t.Errorf("disambiguate(%q) error = %v; want ErrInvalidNumericFields", test.rest, err)
			}
			continue
		}
		if year != test.wantYear || day != test.wantDay || err != nil {
			t.Errorf("disambiguate(%q) = %d, %d, %v; want %d, %d, <nil>",
				test.rest, year, day, err, test.wantYear, test.wantDay)
		}
	}
}
