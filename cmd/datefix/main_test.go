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
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/datefix"
)

func TestJoinSeq(t *testing.T) {
	tests := []struct {
		words       []string
		sep         string
		conjunction string
		want        string
	}{
		{
			words:       []string{},
			sep:         ", ",
			conjunction: "or",
			want:        "",
		},
		{
			words:       []string{"plain"},
			sep:         ", ",
			conjunction: "or",
			want:        "plain",
		},
		{
			words:       []string{"sequence", "levenshtein"},
			sep:         ", ",
			conjunction: "or",
			want:        "sequence or levenshtein",
		},
		{
			words:       []string{"plain", "csv", "json"},
			sep:         ", ",
			conjunction: "or",
			want:        "plain, csv, or json",
		},
		{
			words: []string{"plain", "csv"},
			sep:   ", ",
			want:  "plain, csv",
		},
		{
			words: []string{"a", "b", "c"},
			want:  "abc",
		},
		{
			words:       []string{"a", "b", "c"},
			conjunction: "and",
			want:        "aband c",
		},
	}

	for _, test := range tests {
		got := joinSeq(slices.Values(test.words), test.sep, test.conjunction)
		if got != test.want {
			t.Errorf("joinSeq(slices.Values(%#v), %q, %q) = %q; want %q", test.words, test.sep, test.conjunction, got, test.want)
		}
	}
}

func TestCleanTags(t *testing.T) {
	tests := []struct {
		tags    []string
		want    []string
		wantErr bool
	}{
		{tags: nil, want: nil},
		{tags: []string{"invoices"}, want: []string{"invoices"}},
		{tags: []string{" invoices ", "q3"}, want: []string{"invoices", "q3"}},
		{tags: []string{"invoices", "  "}, wantErr: true},
		{tags: []string{"a,b"}, wantErr: true},
	}
	for _, test := range tests {
		input := slices.Clone(test.tags)
		got, err := cleanTags(input)
		if err != nil {
			if !test.wantErr {
				t.Errorf("cleanTags(%q): %v", test.tags, err)
			}
			continue
		}
		if test.wantErr {
			t.Errorf("cleanTags(%q) = %q, <nil>; want error", test.tags, got)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("cleanTags(%q) (-want +got):\n%s", test.tags, diff)
		}
		if !slices.Equal(input, test.tags) {
			t.Errorf("cleanTags(%q) modified its argument to %q", test.tags, input)
		}
	}
}

func TestPlainResult(t *testing.T) {
	p := datefix.New(&datefix.Options{DisablePermissive: true})
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "15 March 2023",
			want:  "15 March 2023: 15-March-2023 (Wednesday)",
		},
		{
			input: "2024-02-30",
			want:  "2024-02-30: 29-February-2024 (Thursday) [Invalid day (30). Replaced with last valid day 29.]",
		},
		{
			input: "hello world",
			want:  "hello world: rejected [Invalid month found. Could not correct.]",
		},
	}
	for _, test := range tests {
		r := p.Parse(context.Background(), test.input)
		if got := plainResult(r); got != test.want {
			t.Errorf("plainResult(Parse(%q)) = %q; want %q", test.input, got, test.want)
		}
	}
}

func TestConvertCSV(t *testing.T) {
	p := datefix.New(&datefix.Options{DisablePermissive: true})
	parse := func(s string) *datefix.Result {
		return p.Parse(context.Background(), s)
	}

	t.Run("Column", func(t *testing.T) {
		const input = "Invoice,Date,Amount\n" +
			"A-1,15 March 2023,10.00\n" +
			"A-2,2024-02-30,12.50\n" +
			"A-3,someday,1.00\n"
		const want = "Invoice,Date,Amount,Date_corrected,Date_valid\n" +
			"A-1,15-March-2023,10.00,15-March-2023,true\n" +
			"A-2,Invalid (2024 02 30),12.50,29-February-2024,false\n" +
			"A-3,Invalid (Someday),1.00,01-January-2000,false\n"
		got := new(strings.Builder)
		if err := convertCSV(got, strings.NewReader(input), "Date", parse); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got.String()); diff != "" {
			t.Errorf("output (-want +got):\n%s", diff)
		}
	})

	t.Run("MissingColumn", func(t *testing.T) {
		const input = "Invoice,Amount\nA-1,10.00\n"
		if err := convertCSV(new(strings.Builder), strings.NewReader(input), "Date", parse); err == nil {
			t.Error("convertCSV did not return an error")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if err := convertCSV(new(strings.Builder), strings.NewReader(""), "Date", parse); err == nil {
			t.Error("convertCSV did not return an error")
		}
	})
}
