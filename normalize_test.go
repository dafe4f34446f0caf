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
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		s         string
		want      Tokens
		wantTitle string
	}{
		{
			s:         "",
			want:      nil,
			wantTitle: "",
		},
		{
			s:         " \t ",
			want:      nil,
			wantTitle: "",
		},
		{
			s:         "31-novembr-2023",
			want:      Tokens{"31", "novembr", "2023"},
			wantTitle: "31 Novembr 2023",
		},
		{
			s:         "15 MARCH, 2023",
			want:      Tokens{"15", "MARCH", "2023"},
			wantTitle: "15 March 2023",
		},
		{
			s:         "32 | 12 - 2029",
			want:      Tokens{"32", "12", "2029"},
			wantTitle: "32 12 2029",
		},
		{
			s:         "2024/02/30",
			want:      Tokens{"2024", "02", "30"},
			wantTitle: "2024 02 30",
		},
		{
			s:         "1'12;1999",
			want:      Tokens{"1", "12", "1999"},
			wantTitle: "1 12 1999",
		},
		{
			s:         "a.b:c",
			want:      Tokens{"a", "b", "c"},
			wantTitle: "A B C",
		},
		{
			s:         "01/01/0000",
			want:      Tokens{"01", "01", "2000"},
			wantTitle: "01 01 2000",
		},
		{
			s:         "01/01/1000",
			want:      Tokens{"01", "01", "1000"},
			wantTitle: "01 01 1000",
		},
	}
	for _, test := range tests {
		got := Normalize(test.s)
		if !slices.Equal(got, test.want) {
			t.Errorf("Normalize(%q) = %q; want %q", test.s, got, test.want)
		}
		if got := got.title(); got != test.wantTitle {
			t.Errorf("Normalize(%q).title() = %q; want %q", test.s, got, test.wantTitle)
		}
	}
}

func TestLookupMonth(t *testing.T) {
	tests := []struct {
		s    string
		want int
		ok   bool
	}{
		{s: "January", want: 1, ok: true},
		{s: "january", want: 1, ok: true},
		{s: "JAN", want: 1, ok: true},
		{s: "Sep", want: 9, ok: true},
		{s: "sept", ok: false},
		{s: "1", want: 1, ok: true},
		{s: "12", want: 12, ok: true},
		{s: "01", ok: false},
		{s: "13", ok: false},
		{s: "", ok: false},
	}
	for _, test := range tests {
		got, ok := LookupMonth(test.s)
		if int(got) != test.want || ok != test.ok {
			t.Errorf("LookupMonth(%q) = %d, %t; want %d, %t", test.s, got, ok, test.want, test.ok)
		}
	}
}
