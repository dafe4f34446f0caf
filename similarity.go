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
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores how alike two strings are.
// Scores range from 0 (nothing in common) to 1 (identical).
type Similarity interface {
	Similarity(a, b string) float64
}

// SimilarityFunc is an adapter to allow an ordinary function to be used as a [Similarity].
type SimilarityFunc func(a, b string) float64

// Similarity returns f(a, b).
func (f SimilarityFunc) Similarity(a, b string) float64 {
	return f(a, b)
}

// SequenceRatio scores strings by the Ratcliff/Obershelp matching-subsequence ratio:
// twice the number of matched characters divided by the total number of characters.
// This is the default [Similarity].
var SequenceRatio Similarity = SimilarityFunc(sequenceRatio)

func sequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(runeStrings(a), runeStrings(b)).Ratio()
}

func runeStrings(s string) []string {
	result := make([]string, 0, len(s))
	for _, c := range s {
		result = append(result, string(c))
	}
	return result
}

// LevenshteinRatio scores strings by edit distance,
// normalized by the length of the longer string.
var LevenshteinRatio Similarity = SimilarityFunc(levenshteinRatio)

func levenshteinRatio(a, b string) float64 {
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if n == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}

// Fuzzy match thresholds.
const (
	// DefaultCutoff is the minimum score for the heuristic pipeline
	// to accept a misspelled month.
	DefaultCutoff = 0.7
	// FallbackCutoff is the minimum score used by
	// the fuzzy-month template of the strict parser.
	FallbackCutoff = 0.6
)

// closestMonth finds the month spelling most similar to word.
// Ties go to the lexicographically greater spelling.
func closestMonth(sim Similarity, word string, cutoff float64) (m time.Month, score float64, ok bool) {
	word = capitalize(word)
	best := ""
	bestScore := -1.0
	for _, candidate := range months.vocabulary {
		s := sim.Similarity(candidate, word)
		if s > bestScore || (s == bestScore && candidate > best) {
			best, bestScore = candidate, s
		}
	}
	if best == "" || bestScore < cutoff {
		return 0, bestScore, false
	}
	return months.monthFromName(best), bestScore, true
}

// capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	c, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(c)) + strings.ToLower(s[size:])
}
