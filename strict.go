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
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"zombiezen.com/go/log"
)

// A template is one entry in the strict parser's table.
// parse reports a date only if it is a real calendar date;
// templates never clamp.
type template struct {
	name   string
	method Method
	parse  func(p *Parser, ctx context.Context, s string, toks Tokens) (civil, bool)
}

type civil struct {
	year  int
	month time.Month
	day   int
}

// strictTemplates is tried in order; the first match wins.
// Numeric layouts prefer month-first when both readings are valid.
var strictTemplates = []template{
	layoutTemplate("1/2/2006"),
	layoutTemplate("2/1/2006"),
	layoutTemplate("1-2-2006"),
	layoutTemplate("2-1-2006"),
	layoutTemplate("2 1 2006"),
	layoutTemplate("1 2 2006"),
	layoutTemplate("2006-1-2"),
	layoutTemplate("2006-2-1"),
	layoutTemplate("2006 1 2"),
	layoutTemplate("2006 2 1"),
	layoutTemplate("2006/1/2"),
	layoutTemplate("2-January-2006"),
	layoutTemplate("2 January 2006"),
	layoutTemplate("2-Jan-2006"),
	layoutTemplate("2 Jan 2006"),
	layoutTemplate("January 2 2006"),
	layoutTemplate("January 2, 2006"),
	layoutTemplate("Jan 2 2006"),
	layoutTemplate("Jan 2, 2006"),
	{
		name:   "DAY MONTH YEAR",
		method: MethodStrict,
		parse:  (*Parser).parseFuzzyMonthTemplate,
	},
	{
		name:   "dateparse",
		method: MethodPermissive,
		parse:  (*Parser).parsePermissive,
	},
}

func layoutTemplate(layout string) template {
	return template{
		name:   layout,
		method: MethodStrict,
		parse: func(_ *Parser, _ context.Context, s string, _ Tokens) (civil, bool) {
			t, err := time.Parse(layout, strings.TrimSpace(s))
			if err != nil {
				return civil{}, false
			}
			return civilFromTime(t)
		},
	}
}

// parseFuzzyMonthTemplate matches "DAY MONTH YEAR" with a four-digit year
// and a month name that may be misspelled.
func (p *Parser) parseFuzzyMonthTemplate(ctx context.Context, s string, toks Tokens) (civil, bool) {
	if len(toks) != 3 || !isDigits(toks[0]) || isDigits(toks[1]) || len(toks[2]) != 4 || !isDigits(toks[2]) {
		return civil{}, false
	}
	m, ok := p.lookupMonthName(ctx, toks[1], p.fallbackCutoff)
	if !ok {
		return civil{}, false
	}
	day, err := strconv.Atoi(toks[0])
	if err != nil {
		return civil{}, false
	}
	year, err := strconv.Atoi(toks[2])
	if err != nil || !isCalendarPair(year, m) || day < 1 || day > DaysIn(m, year) {
		return civil{}, false
	}
	return civil{year: year, month: m, day: day}, true
}

func (p *Parser) parsePermissive(ctx context.Context, s string, _ Tokens) (civil, bool) {
	if p.disablePermissive {
		return civil{}, false
	}
	t, err := permissiveParse(strings.TrimSpace(s))
	if err != nil {
		return civil{}, false
	}
	return civilFromTime(t)
}

// permissiveParse guards against panics in the general-purpose parser
// so that arbitrary input cannot crash the caller.
func permissiveParse(s string) (t time.Time, err error) {
	defer func() {
		if v := recover(); v != nil {
			t = time.Time{}
			err = fmt.Errorf("parse %q: %v", s, v)
		}
	}()
	return dateparse.ParseIn(s, time.UTC)
}

func civilFromTime(t time.Time) (civil, bool) {
	c := civil{year: t.Year(), month: t.Month(), day: t.Day()}
	if !isCalendarPair(c.year, c.month) {
		return civil{}, false
	}
	return c, true
}

// strictParse tries each template against s.
// On a match, it fills in r as a valid result and returns true.
func (p *Parser) strictParse(ctx context.Context, r *Result, s string, toks Tokens) bool {
	if len(toks) == 0 {
		return false
	}
	for _, tmpl := range strictTemplates {
		c, ok := tmpl.parse(p, ctx, s, toks)
		if !ok {
			continue
		}
		log.Debugf(ctx, "%q matched template %q", s, tmpl.name)
		r.Method = tmpl.method
		return validate(r, c.day, c.month, c.year)
	}
	return false
}
