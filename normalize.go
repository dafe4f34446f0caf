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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokens is the ordered sequence of fields of a normalized date string.
// Order is significant: the field disambiguator breaks ties by position.
type Tokens []string

// noiseReplacer turns every separator character into a space.
var noiseReplacer = strings.NewReplacer(
	"-", " ",
	"/", " ",
	",", " ",
	":", " ",
	";", " ",
	"|", " ",
	"'", " ",
	".", " ",
)

// placeholderYear is rewritten to fixedPlaceholderYear before tokenizing.
// This only handles the literal substring "0000";
// other four-digit years are left alone.
const (
	placeholderYear      = "0000"
	fixedPlaceholderYear = "2000"
)

// Normalize splits s into date fields.
// Hyphens, slashes, commas, colons, semicolons, pipes, apostrophes, and periods
// are treated as whitespace, and runs of whitespace are collapsed.
func Normalize(s string) Tokens {
	s = strings.ReplaceAll(s, placeholderYear, fixedPlaceholderYear)
	s = noiseReplacer.Replace(s)
	toks := Tokens(strings.Fields(s))
	if len(toks) == 0 {
		return nil
	}
	return toks
}

// String returns the tokens joined by single spaces.
func (toks Tokens) String() string {
	return strings.Join(toks, " ")
}

// title returns the tokens joined by single spaces with each word title-cased.
// This is the form reported as [Result.InputDate].
func (toks Tokens) title() string {
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(toks.String())
}

// without returns a copy of toks with the element at i removed.
func (toks Tokens) without(i int) Tokens {
	rest := make(Tokens, 0, len(toks)-1)
	rest = append(rest, toks[:i]...)
	return append(rest, toks[i+1:]...)
}

// isDigits reports whether s is a non-empty string of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
