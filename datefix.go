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


// Package datefix normalizes loosely formatted date strings.
//
// A [Parser] first tries a fixed list of explicit date layouts.
// If none matches, it splits the input into fields,
// finds the month (correcting misspellings),
// assigns the remaining two numbers to the day and year,
// and validates the result against the Gregorian calendar.
// A day past the end of its month is replaced with the last day of the month
// and the result is marked invalid rather than rejected.
//
// Parsing never fails with a Go error:
// every call returns a [*Result] whose IsValid and Error fields
// say whether the date is authoritative.
package datefix

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"zombiezen.com/go/gregorian"
	"zombiezen.com/go/log"
)

// Result is the outcome of parsing a date string.
//
// If IsValid is true, then Day, Month, Year, and DayName are set
// and Day is at most ValidLastDay.
// Otherwise, Error describes the problem and the date fields
// may hold a clamped substitute.
type Result struct {
	// Input is the text passed to the parser.
	Input string
	// InputDate is the normalized form of Input.
	InputDate string

	// Day is the day of the month or zero if unresolved.
	Day int
	// Month is zero if unresolved.
	Month time.Month
	// Year is zero if unresolved.
	Year int
	// DayName is the English weekday name or empty if unresolved.
	DayName string
	// LeapYear is nil until a year has been resolved.
	LeapYear *bool
	// ValidLastDay is the number of days in the resolved month
	// or zero if unresolved.
	ValidLastDay int

	// Error is a human-readable description of why the result is not valid.
	Error string
	// Err is the cause of Error.
	// It matches one of the package's Err* variables with [errors.Is].
	Err error
	// IsValid reports whether the date fields are exactly what the input said.
	IsValid bool

	// Method is the parsing stage that produced the result.
	Method Method
}

// Method identifies the stage of a [Parser] that produced a [Result].
type Method string

// Parsing stages.
const (
	MethodStrict     Method = "strict"
	MethodPermissive Method = "permissive"
	MethodHeuristic  Method = "heuristic"
	MethodEuropean   Method = "european"
)

// Outcome classifies a [Result].
type Outcome int

// Outcomes.
const (
	// Rejected results have no date.
	Rejected Outcome = iota
	// Recovered results have a substitute date and IsValid = false.
	Recovered
	// Valid results have IsValid = true.
	Valid
)

// String returns "rejected", "recovered", or "valid".
func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Recovered:
		return "recovered"
	case Valid:
		return "valid"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Outcome classifies r.
func (r *Result) Outcome() Outcome {
	switch {
	case r.IsValid:
		return Valid
	case r.Day != 0 && r.Month != 0 && r.Year != 0:
		return Recovered
	default:
		return Rejected
	}
}

// Date returns the resolved date
// or the zero Date if r does not hold a complete date.
func (r *Result) Date() gregorian.Date {
	if r.Day == 0 || r.Month == 0 || r.Year == 0 {
		return gregorian.Date{}
	}
	return gregorian.NewDate(r.Year, r.Month, r.Day)
}

func (r *Result) reject(err error, msg string) {
	r.IsValid = false
	r.Err = err
	r.Error = msg
}

// Options is the set of optional parameters to [New].
type Options struct {
	// Similarity is used to correct misspelled month names.
	// If nil, [SequenceRatio] is used.
	Similarity Similarity
	// Cutoff is the minimum similarity score for a misspelled month
	// to be accepted by the heuristic pipeline.
	// If zero, [DefaultCutoff] is used.
	Cutoff float64
	// FallbackCutoff is the minimum similarity score for a misspelled month
	// to be accepted by the strict parser's fuzzy template.
	// If zero, [FallbackCutoff] is used.
	FallbackCutoff float64
	// DisablePermissive skips the general-purpose date parser
	// that runs after the strict templates fail.
	DisablePermissive bool
	// OnResult is called with every finished result.
	// It must not modify the result.
	// The parser has no other side effects.
	OnResult func(ctx context.Context, r *Result)
}

// Parser normalizes date strings.
// A Parser is safe to use from multiple goroutines.
type Parser struct {
	sim               Similarity
	cutoff            float64
	fallbackCutoff    float64
	disablePermissive bool
	onResult          func(ctx context.Context, r *Result)
}

// New returns a new parser.
// A nil opts is treated the same as the zero Options.
func New(opts *Options) *Parser {
	p := &Parser{
		sim:            SequenceRatio,
		cutoff:         DefaultCutoff,
		fallbackCutoff: FallbackCutoff,
	}
	if opts != nil {
		if opts.Similarity != nil {
			p.sim = opts.Similarity
		}
		if opts.Cutoff != 0 {
			p.cutoff = opts.Cutoff
		}
		if opts.FallbackCutoff != 0 {
			p.fallbackCutoff = opts.FallbackCutoff
		}
		p.disablePermissive = opts.DisablePermissive
		p.onResult = opts.OnResult
	}
	return p
}

var defaultParser = New(nil)

// Parse parses s with a parser that has default options.
func Parse(ctx context.Context, s string) *Result {
	return defaultParser.Parse(ctx, s)
}

// Convert returns the converted and corrected forms of s
// using a parser that has default options.
func Convert(ctx context.Context, s string) Pair {
	return defaultParser.Convert(ctx, s)
}

// Parse resolves the date written in s.
func (p *Parser) Parse(ctx context.Context, s string) *Result {
	r := &Result{Input: s}
	toks := Normalize(s)
	r.InputDate = toks.title()
	if !p.strictParse(ctx, r, s, toks) {
		p.parseFields(ctx, r, toks)
	}
	p.finish(ctx, r)
	return r
}

// Convert resolves the date written in s and formats it.
func (p *Parser) Convert(ctx context.Context, s string) Pair {
	return p.Parse(ctx, s).Pair()
}

// ParseEuropean parses s as exactly three fields in day, month, year order,
// where the month is a (possibly misspelled) English month name.
// Unlike [Parser.Parse], it does not try other layouts
// and does not promote two-digit years.
func (p *Parser) ParseEuropean(ctx context.Context, s string) *Result {
	r := &Result{Input: s, Method: MethodEuropean}
	toks := Normalize(s)
	r.InputDate = toks.title()
	defer p.finish(ctx, r)

	if len(toks) != 3 || !isDigits(toks[0]) || !isDigits(toks[2]) {
		r.reject(fmt.Errorf("%q: %w", r.InputDate, ErrInvalidFormat), msgInvalidEuropean)
		return r
	}
	day, err1 := strconv.Atoi(toks[0])
	year, err2 := strconv.Atoi(toks[2])
	if err1 != nil || err2 != nil {
		r.reject(fmt.Errorf("%q: %w", r.InputDate, ErrInvalidFormat), msgInvalidEuropean)
		return r
	}
	m, ok := p.lookupMonthName(ctx, toks[1], p.cutoff)
	if !ok {
		r.reject(fmt.Errorf("%q: %w", toks[1], ErrMonthNotFound), msgMonthNotFound)
		return r
	}
	validate(r, day, m, year)
	return r
}

// ConvertEuropean formats the result of [Parser.ParseEuropean].
func (p *Parser) ConvertEuropean(ctx context.Context, s string) Pair {
	return p.ParseEuropean(ctx, s).Pair()
}

// parseFields runs the heuristic pipeline on toks.
func (p *Parser) parseFields(ctx context.Context, r *Result, toks Tokens) {
	r.Method = MethodHeuristic
	m, i, ok := p.resolveMonth(ctx, toks)
	if !ok {
		r.reject(fmt.Errorf("%q: %w", r.InputDate, ErrMonthNotFound), msgMonthNotFound)
		return
	}
	year, day, err := disambiguate(toks.without(i))
	if err != nil {
		r.reject(err, msgInvalidNumeric)
		return
	}
	validate(r, day, m, year)
}

func (p *Parser) finish(ctx context.Context, r *Result) {
	switch {
	case r.IsValid:
		log.Debugf(ctx, "%q: %v via %s", r.Input, r.Date(), r.Method)
	default:
		log.Debugf(ctx, "%q: %s via %s: %v", r.Input, r.Outcome(), r.Method, r.Err)
	}
	if p.onResult != nil {
		p.onResult(ctx, r)
	}
}
