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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"zombiezen.com/go/datefix"
	"zombiezen.com/go/log"
	"zombiezen.com/go/sqlite/sqlitex"
)

// parserFlags are the flags shared by commands that parse dates.
type parserFlags struct {
	european bool
	record   bool
	tags     []string
	jsonLog  string

	cutoff        float64
	hasCutoff     bool
	similarity    string
	hasSimilarity bool
	noPermissive  bool
}

func registerParserFlags(c *cobra.Command, pf *parserFlags) {
	c.Flags().BoolVar(&pf.european, "european", false, "require DAY MONTH YEAR with a month name")
	c.Flags().BoolVar(&pf.record, "record", false, "save results to the database")
	c.Flags().StringSliceVar(&pf.tags, "tag", nil, "comma-separated `tags` for recorded results")
	c.Flags().StringVar(&pf.jsonLog, "json-log", "", "append each result as a JSON line to `file`")
	c.Flags().Float64Var(&pf.cutoff, "cutoff", 0, "minimum `score` for correcting a misspelled month (overrides settings)")
	c.Flags().StringVar(&pf.similarity, "similarity", "", "month correction `metric` (overrides settings)")
	c.Flags().BoolVar(&pf.noPermissive, "no-permissive", false, "disable the general-purpose fallback parser")
}

// load reads flag state that cobra only exposes after parsing.
func (pf *parserFlags) load(c *cobra.Command) error {
	pf.hasCutoff = c.Flags().Changed("cutoff")
	pf.hasSimilarity = c.Flags().Changed("similarity")
	if pf.hasCutoff && (pf.cutoff <= 0 || pf.cutoff > 1) {
		return fmt.Errorf("cutoff must be in (0, 1]")
	}
	var err error
	pf.tags, err = cleanTags(pf.tags)
	if err != nil {
		return err
	}
	if len(pf.tags) > 0 && !pf.record {
		return fmt.Errorf("--tag requires --record")
	}
	return nil
}

// session is a parser plus the sinks that its results flow into.
type session struct {
	parser   *datefix.Parser
	european bool

	record  bool
	tags    []string
	results []*datefix.Result

	jsonLog *os.File
}

func newSession(ctx context.Context, g *globalConfig, pf *parserFlags) (*session, error) {
	settings := defaultParserSettings()
	if g.dbPath != "" {
		db, err := g.open(ctx)
		if err != nil {
			return nil, err
		}
		settings, err = readParserSettings(db)
		closeConn(ctx, db)
		if err != nil {
			return nil, err
		}
	} else if pf.record {
		return nil, fmt.Errorf("--record: DATEFIX_DB not set")
	}
	if pf.hasCutoff {
		settings.cutoff = pf.cutoff
	}
	if pf.hasSimilarity {
		settings.similarity = strings.ToLower(strings.TrimSpace(pf.similarity))
	}
	if pf.noPermissive {
		settings.permissive = false
	}
	sim, err := similarityByName(settings.similarity)
	if err != nil {
		return nil, err
	}
	log.Debugf(ctx, "Parser settings: %v", settings)

	s := &session{
		european: pf.european,
		record:   pf.record,
		tags:     pf.tags,
	}
	if pf.jsonLog != "" {
		s.jsonLog, err = os.OpenFile(pf.jsonLog, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
		if err != nil {
			return nil, err
		}
	}
	s.parser = datefix.New(&datefix.Options{
		Similarity:        sim,
		Cutoff:            settings.cutoff,
		DisablePermissive: !settings.permissive,
		OnResult:          s.collect,
	})
	return s, nil
}

func (s *session) collect(ctx context.Context, r *datefix.Result) {
	if s.record {
		s.results = append(s.results, r)
	}
	if s.jsonLog != nil {
		line, err := marshalRecord(newResultRecord(r))
		if err == nil {
			line = append(line, '\n')
			_, err = s.jsonLog.Write(line)
		}
		if err != nil {
			log.Warnf(ctx, "Writing JSON log: %v", err)
		}
	}
}

func (s *session) parse(ctx context.Context, input string) *datefix.Result {
	if s.european {
		return s.parser.ParseEuropean(ctx, input)
	}
	return s.parser.Parse(ctx, input)
}

// close flushes the session's sinks.
func (s *session) close(ctx context.Context, g *globalConfig) error {
	var errs []error
	if s.jsonLog != nil {
		if err := s.jsonLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("json log: %v", err))
		}
	}
	if s.record && len(s.results) > 0 {
		if err := recordResults(ctx, g, s.results, s.tags); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func recordResults(ctx context.Context, g *globalConfig, results []*datefix.Result, tags []string) (err error) {
	db, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer closeConn(ctx, db)
	endFn, err := sqlitex.ImmediateTransaction(db)
	if err != nil {
		return err
	}
	defer endFn(&err)

	now := time.Now()
	for _, r := range results {
		rec := newResultRecord(r)
		rec.RecordedAt = now
		id, err := insertResult(db, rec)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := addResultTags(db, id, slices.Values(tags)); err != nil {
				return err
			}
		}
		log.Debugf(ctx, "Recorded %q as %v", r.Input, id)
	}
	return nil
}

func newParseCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "parse [flags] DATE [...]",
		Short:         "Resolve the day, month, and year of dates",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	opts := new(parseOptions)
	registerParserFlags(c, &opts.parserFlags)
	registerOutputFormatFlagVar(c, &opts.format)
	c.RunE = func(cmd *cobra.Command, args []string) error {
		if err := opts.parserFlags.load(cmd); err != nil {
			return err
		}
		opts.inputs = args
		return runParse(cmd.Context(), g, opts)
	}
	return c
}

type parseOptions struct {
	parserFlags
	format outputFormat
	inputs []string
}

func runParse(ctx context.Context, g *globalConfig, opts *parseOptions) (err error) {
	s, err := newSession(ctx, g, &opts.parserFlags)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close(ctx, g))
	}()

	var w *csv.Writer
	if opts.format == csvOutputFormat {
		w = csv.NewWriter(os.Stdout)
		w.Write(resultCSVHeader)
	}
	for _, input := range opts.inputs {
		r := s.parse(ctx, input)
		switch opts.format {
		case plainOutputFormat:
			if _, err := io.WriteString(os.Stdout, plainResult(r)+"\n"); err != nil {
				return err
			}
		case csvOutputFormat:
			if err := w.Write(resultCSVRow(r)); err != nil {
				return err
			}
		case jsonOutputFormat:
			if err := writeJSONLine(os.Stdout, newResultRecord(r)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unhandled format %s", opts.format)
		}
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return nil
}

// plainResult describes r on a single line.
func plainResult(r *datefix.Result) string {
	pair := r.Pair()
	switch r.Outcome() {
	case datefix.Valid:
		return fmt.Sprintf("%s: %s (%s)", r.Input, pair.Converted, r.DayName)
	case datefix.Recovered:
		return fmt.Sprintf("%s: %s (%s) [%s]", r.Input, pair.Corrected, r.DayName, r.Error)
	default:
		return fmt.Sprintf("%s: rejected [%s]", r.Input, r.Error)
	}
}

var resultCSVHeader = []string{
	"Input",
	"Input Date",
	"Day",
	"Month",
	"Year",
	"Day Name",
	"Leap Year",
	"Valid Last Day",
	"Valid",
	"Error",
	"Method",
	"Converted",
	"Corrected",
}

func resultCSVRow(r *datefix.Result) []string {
	optionalInt := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	leap := ""
	if r.LeapYear != nil {
		leap = strconv.FormatBool(*r.LeapYear)
	}
	pair := r.Pair()
	return []string{
		r.Input,
		r.InputDate,
		optionalInt(r.Day),
		optionalInt(int(r.Month)),
		optionalInt(r.Year),
		r.DayName,
		leap,
		optionalInt(r.ValidLastDay),
		strconv.FormatBool(r.IsValid),
		r.Error,
		string(r.Method),
		pair.Converted,
		pair.Corrected,
	}
}

func newConvertCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "convert [flags] [DATE [...]]",
		Short:         "Print converted and corrected forms of dates",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	opts := new(convertOptions)
	registerParserFlags(c, &opts.parserFlags)
	registerOutputFormatFlagVar(c, &opts.format)
	c.Flags().StringVar(&opts.csvPath, "csv", "", "convert a column of the CSV `file` (- for stdin)")
	c.Flags().StringVar(&opts.column, "column", "Date", "`name` of the CSV column to convert")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		if err := opts.parserFlags.load(cmd); err != nil {
			return err
		}
		switch {
		case opts.csvPath != "" && len(args) > 0:
			return fmt.Errorf("cannot pass dates with --csv")
		case opts.csvPath == "" && len(args) == 0:
			return fmt.Errorf("no dates given")
		case opts.csvPath != "" && cmd.Flags().Changed("format"):
			return fmt.Errorf("--format cannot be used with --csv")
		}
		opts.inputs = args
		return runConvert(cmd.Context(), g, opts)
	}
	return c
}

type convertOptions struct {
	parserFlags
	format outputFormat
	inputs []string

	csvPath string
	column  string
}

func runConvert(ctx context.Context, g *globalConfig, opts *convertOptions) (err error) {
	s, err := newSession(ctx, g, &opts.parserFlags)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close(ctx, g))
	}()

	if opts.csvPath != "" {
		var r io.Reader = os.Stdin
		if opts.csvPath != "-" {
			f, err := os.Open(opts.csvPath)
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		return convertCSV(os.Stdout, r, opts.column, func(input string) *datefix.Result {
			return s.parse(ctx, input)
		})
	}

	var w *csv.Writer
	if opts.format == csvOutputFormat {
		w = csv.NewWriter(os.Stdout)
		w.Write([]string{"Input", "Converted", "Corrected"})
	}
	for _, input := range opts.inputs {
		r := s.parse(ctx, input)
		pair := r.Pair()
		switch opts.format {
		case plainOutputFormat:
			if _, err := fmt.Printf("%s\t%s\n", pair.Converted, pair.Corrected); err != nil {
				return err
			}
		case csvOutputFormat:
			if err := w.Write([]string{input, pair.Converted, pair.Corrected}); err != nil {
				return err
			}
		case jsonOutputFormat:
			if err := writeJSONLine(os.Stdout, newResultRecord(r)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unhandled format %s", opts.format)
		}
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return nil
}

// convertCSV copies CSV from src to dst, replacing the named column
// with its converted form and appending "<column>_corrected"
// and "<column>_valid" columns.
// The first row must be a header.
func convertCSV(dst io.Writer, src io.Reader, column string, parse func(string) *datefix.Result) error {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("csv: missing header")
	}
	if err != nil {
		return fmt.Errorf("csv: %v", err)
	}
	col := slices.Index(header, column)
	if col < 0 {
		return fmt.Errorf("csv: no column %q in header", column)
	}

	w := csv.NewWriter(dst)
	w.Write(append(slices.Clip(header), column+"_corrected", column+"_valid"))
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("csv: %v", err)
		}
		if col >= len(row) {
			return fmt.Errorf("csv: line %d: missing %q field", line, column)
		}
		result := parse(row[col])
		pair := result.Pair()
		row = slices.Clip(row)
		row[col] = pair.Converted
		if err := w.Write(append(row, pair.Corrected, strconv.FormatBool(result.IsValid))); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
