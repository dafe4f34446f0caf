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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"zombiezen.com/go/datefix"
	"zombiezen.com/go/gregorian"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// resultRecord is the serialized form of a [datefix.Result].
type resultRecord struct {
	ID           uuid.UUID `json:"id,omitzero"`
	Input        string    `json:"input"`
	InputDate    string    `json:"input_date"`
	Day          int       `json:"day,omitzero"`
	Month        int       `json:"month,omitzero"`
	Year         int       `json:"year,omitzero"`
	DayName      string    `json:"day_name,omitzero"`
	LeapYear     *bool     `json:"leap_year,omitzero"`
	ValidLastDay int       `json:"valid_last_day,omitzero"`
	Error        string    `json:"error,omitzero"`
	IsValid      bool      `json:"is_valid"`
	Method       string    `json:"method,omitzero"`
	Converted    string    `json:"converted"`
	Corrected    string    `json:"corrected"`
	RecordedAt   time.Time `json:"recorded_at,omitzero,format:RFC3339"`
	Tags         []string  `json:"tags,omitzero"`
}

func newResultRecord(r *datefix.Result) *resultRecord {
	pair := r.Pair()
	return &resultRecord{
		Input:        r.Input,
		InputDate:    r.InputDate,
		Day:          r.Day,
		Month:        int(r.Month),
		Year:         r.Year,
		DayName:      r.DayName,
		LeapYear:     r.LeapYear,
		ValidLastDay: r.ValidLastDay,
		Error:        r.Error,
		IsValid:      r.IsValid,
		Method:       string(r.Method),
		Converted:    pair.Converted,
		Corrected:    pair.Corrected,
	}
}

func marshalUUIDTo(enc *jsontext.Encoder, u uuid.UUID) error {
	return enc.WriteToken(jsontext.String(u.String()))
}

func marshalRecord(rec *resultRecord) ([]byte, error) {
	return jsonv2.Marshal(rec, jsonv2.WithMarshalers(jsonv2.MarshalToFunc(marshalUUIDTo)))
}

func writeJSONLine(w io.Writer, rec *resultRecord) error {
	line, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("%q: %v", rec.Input, err)
	}
	line = append(line, '\n')
	_, err = w.Write(line)
	return err
}

// insertResult stores rec under a new ID and returns the ID.
// rec.RecordedAt must be set.
func insertResult(db *sqlite.Conn, rec *resultRecord) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("record %q: %v", rec.Input, err)
	}
	args := map[string]any{
		":uuid":           id.String(),
		":input":          rec.Input,
		":input_date":     rec.InputDate,
		":day":            nullInt(rec.Day),
		":month":          nullInt(rec.Month),
		":year":           nullInt(rec.Year),
		":day_name":       nullString(rec.DayName),
		":leap_year":      nil,
		":valid_last_day": nullInt(rec.ValidLastDay),
		":error":          nullString(rec.Error),
		":is_valid":       boolInt(rec.IsValid),
		":method":         nullString(rec.Method),
		":converted":      rec.Converted,
		":corrected":      rec.Corrected,
		":recorded_at":    rec.RecordedAt.UTC().Format(time.RFC3339),
	}
	if rec.LeapYear != nil {
		args[":leap_year"] = boolInt(*rec.LeapYear)
	}
	err = sqlitex.ExecuteTransientFS(db, sqlFiles(), "results/insert.sql", &sqlitex.ExecOptions{
		Named: args,
	})
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("record %q: %v", rec.Input, err)
	}
	return id, nil
}

// resultFilter selects rows from results/list.sql.
// Zero fields do not filter.
type resultFilter struct {
	minTime time.Time
	maxTime time.Time
	pattern string
	tag     string
	id      uuid.UUID
}

func (f *resultFilter) args() map[string]any {
	args := map[string]any{
		":min_time": nil,
		":max_time": nil,
		":pattern":  nullString(f.pattern),
		":tag":      nullString(f.tag),
		":uuid":     nil,
	}
	if !f.minTime.IsZero() {
		args[":min_time"] = f.minTime.UTC().Format(time.RFC3339)
	}
	if !f.maxTime.IsZero() {
		args[":max_time"] = f.maxTime.UTC().Format(time.RFC3339)
	}
	if f.id != (uuid.UUID{}) {
		args[":uuid"] = f.id.String()
	}
	return args
}

func listResults(db *sqlite.Conn, f *resultFilter, yield func(*resultRecord) error) error {
	return sqlitex.ExecuteTransientFS(db, sqlFiles(), "results/list.sql", &sqlitex.ExecOptions{
		Named: f.args(),
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rec, err := resultFromDatabase(stmt)
			if err != nil {
				return err
			}
			return yield(rec)
		},
	})
}

func resultFromDatabase(stmt *sqlite.Stmt) (*resultRecord, error) {
	rec := &resultRecord{
		Input:        stmt.GetText("input"),
		InputDate:    stmt.GetText("input_date"),
		Day:          getOptionalInt(stmt, "day"),
		Month:        getOptionalInt(stmt, "month"),
		Year:         getOptionalInt(stmt, "year"),
		DayName:      stmt.GetText("day_name"),
		ValidLastDay: getOptionalInt(stmt, "valid_last_day"),
		Error:        stmt.GetText("error"),
		IsValid:      stmt.GetBool("is_valid"),
		Method:       stmt.GetText("method"),
		Converted:    stmt.GetText("converted"),
		Corrected:    stmt.GetText("corrected"),
	}
	var err error
	rec.ID, err = uuid.Parse(stmt.GetText("uuid"))
	if err != nil {
		return nil, fmt.Errorf("uuid: %v", err)
	}
	if i := stmt.ColumnIndex("leap_year"); stmt.ColumnType(i) != sqlite.TypeNull {
		leap := stmt.ColumnBool(i)
		rec.LeapYear = &leap
	}
	rec.RecordedAt, err = time.Parse(time.RFC3339, stmt.GetText("recorded_at"))
	if err != nil {
		return nil, fmt.Errorf("result %v: recorded_at: %v", rec.ID, err)
	}
	rec.Tags, err = tagsFromDatabase(stmt, "tags")
	if err != nil {
		return nil, fmt.Errorf("result %v: %v", rec.ID, err)
	}
	return rec, nil
}

// tagsFromDatabase decodes a JSON array of tag names.
func tagsFromDatabase(stmt *sqlite.Stmt, col string) ([]string, error) {
	var tags []string
	if err := jsonv2.Unmarshal([]byte(stmt.GetText(col)), &tags); err != nil {
		return nil, fmt.Errorf("%s: %v", col, err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

func fetchResult(db *sqlite.Conn, id uuid.UUID) (*resultRecord, error) {
	var result *resultRecord
	err := listResults(db, &resultFilter{id: id}, func(rec *resultRecord) error {
		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, &resultNotFoundError{id: id}
	}
	return result, nil
}

type resultNotFoundError struct {
	id uuid.UUID
}

func (e *resultNotFoundError) Error() string {
	return fmt.Sprintf("no result with ID %v", e.id)
}

func newHistoryCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "history [flags] [START_DATE [END_DATE]]",
		Short:         "Show recorded results",
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	opts := &historyOptions{globalConfig: g}
	c.Flags().BoolVarP(&opts.all, "all", "a", false, "show all results")
	c.Flags().StringVar(&opts.pattern, "match", "", "only show results whose input matches the regular `expression`")
	c.Flags().StringVar(&opts.tag, "tag", "", "only show results with the given `tag`")
	c.Flags().StringVar(&opts.id, "id", "", "only show the result with the given `ID`")
	c.Flags().BoolVar(&opts.pick, "pick", false, "select a result interactively (using fzf) and print its ID")
	registerOutputFormatFlagVar(c, &opts.format)
	c.RunE = func(cmd *cobra.Command, args []string) error {
		if opts.all || opts.id != "" {
			if len(args) != 0 {
				return fmt.Errorf("cannot pass dates with --all or --id")
			}
		} else {
			switch len(args) {
			case 0:
				opts.startDate = localDateFromTime(time.Now())
				opts.endDate = opts.startDate
			case 1:
				var err error
				opts.startDate, err = gregorian.ParseDate(args[0])
				if err != nil {
					return err
				}
				opts.endDate = opts.startDate
			default:
				var err error
				opts.startDate, err = gregorian.ParseDate(args[0])
				if err != nil {
					return err
				}
				opts.endDate, err = gregorian.ParseDate(args[1])
				if err != nil {
					return err
				}
			}
		}
		if opts.pick && cmd.Flags().Changed("format") {
			return fmt.Errorf("--format cannot be used with --pick")
		}
		return runHistory(cmd.Context(), opts)
	}
	return c
}

type historyOptions struct {
	*globalConfig

	all       bool
	startDate gregorian.Date
	endDate   gregorian.Date
	pattern   string
	tag       string
	id        string

	pick   bool
	format outputFormat
}

func (opts *historyOptions) filter() (*resultFilter, error) {
	f := &resultFilter{
		pattern: opts.pattern,
		tag:     strings.TrimSpace(opts.tag),
	}
	if opts.id != "" {
		var err error
		f.id, err = uuid.Parse(opts.id)
		if err != nil {
			return nil, fmt.Errorf("result ID: %v", err)
		}
	}
	if !opts.all && !opts.startDate.IsZero() {
		f.minTime, f.maxTime = localDayRange(opts.startDate, opts.endDate, time.Local)
	}
	return f, nil
}

func runHistory(ctx context.Context, opts *historyOptions) error {
	f, err := opts.filter()
	if err != nil {
		return err
	}
	db, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer closeConn(ctx, db)

	if opts.pick {
		id, err := pickResult(ctx, db, f, opts.pattern)
		if err != nil {
			return err
		}
		_, err = fmt.Println(id)
		return err
	}
	if f.id != (uuid.UUID{}) {
		if _, err := fetchResult(db, f.id); err != nil {
			return err
		}
	}

	var w *csv.Writer
	if opts.format == csvOutputFormat {
		w = csv.NewWriter(os.Stdout)
		w.Write(append([]string{"ID", "Recorded At"}, append(resultCSVHeader, "Tags")...))
	}
	var lastDateHeader gregorian.Date
	err = listResults(db, f, func(rec *resultRecord) error {
		switch opts.format {
		case plainOutputFormat:
			recordedDate := localDateFromTime(rec.RecordedAt)
			var headerFormat string
			switch {
			case lastDateHeader.IsZero():
				headerFormat = "# %v\n\n"
			case !lastDateHeader.Equal(recordedDate):
				headerFormat = "\n# %v\n\n"
			}
			if headerFormat != "" {
				fmt.Printf(headerFormat, recordedDate)
				lastDateHeader = recordedDate
			}
			_, err := fmt.Printf("- %s\n", plainRecord(rec))
			return err
		case csvOutputFormat:
			return w.Write(recordCSVRow(rec))
		case jsonOutputFormat:
			return writeJSONLine(os.Stdout, rec)
		default:
			return fmt.Errorf("unhandled format %s", opts.format)
		}
	})
	if err != nil {
		return err
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return nil
}

func plainRecord(rec *resultRecord) string {
	sb := new(strings.Builder)
	sb.WriteString(rec.Input)
	sb.WriteString(" → ")
	switch {
	case rec.IsValid:
		sb.WriteString(rec.Converted)
	case rec.Error != "" && rec.DayName != "":
		sb.WriteString(rec.Corrected)
		sb.WriteString(" (corrected)")
	default:
		sb.WriteString("invalid")
	}
	for _, tag := range rec.Tags {
		sb.WriteString(" #")
		sb.WriteString(tag)
	}
	return sb.String()
}

func recordCSVRow(rec *resultRecord) []string {
	optionalInt := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	leap := ""
	if rec.LeapYear != nil {
		leap = strconv.FormatBool(*rec.LeapYear)
	}
	return []string{
		rec.ID.String(),
		rec.RecordedAt.UTC().Format(time.RFC3339),
		rec.Input,
		rec.InputDate,
		optionalInt(rec.Day),
		optionalInt(rec.Month),
		optionalInt(rec.Year),
		rec.DayName,
		leap,
		optionalInt(rec.ValidLastDay),
		strconv.FormatBool(rec.IsValid),
		rec.Error,
		rec.Method,
		rec.Converted,
		rec.Corrected,
		strings.Join(rec.Tags, ","),
	}
}

// pickResult asks the user to choose one of the results matching f.
func pickResult(ctx context.Context, db *sqlite.Conn, f *resultFilter, pattern string) (uuid.UUID, error) {
	r := strings.NewReplacer(pickerFieldSeparator, "", "\x00", "")
	var records []string
	err := listResults(db, f, func(rec *resultRecord) error {
		records = append(records, rec.ID.String()+pickerFieldSeparator+r.Replace(plainRecord(rec)))
		return nil
	})
	if err != nil {
		return uuid.UUID{}, err
	}
	if len(records) == 0 {
		return uuid.UUID{}, fmt.Errorf("no results recorded")
	}

	p := &picker{
		display: "2..",
		accept:  "1",
	}
	if pattern != "" {
		p.prompt = pattern + "> "
	}
	picked, err := p.pick(ctx, records)
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(picked)
}
