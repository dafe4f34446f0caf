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
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"zombiezen.com/go/datefix"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// parserSettings is the persisted configuration for building a [datefix.Parser].
type parserSettings struct {
	cutoff     float64
	similarity string
	permissive bool
}

func defaultParserSettings() *parserSettings {
	return &parserSettings{
		cutoff:     datefix.DefaultCutoff,
		similarity: sequenceSimilarity,
		permissive: true,
	}
}

// Similarity metric names.
const (
	sequenceSimilarity    = "sequence"
	levenshteinSimilarity = "levenshtein"
)

var knownSimilarities = []string{sequenceSimilarity, levenshteinSimilarity}

func similarityByName(name string) (datefix.Similarity, error) {
	switch name {
	case sequenceSimilarity:
		return datefix.SequenceRatio, nil
	case levenshteinSimilarity:
		return datefix.LevenshteinRatio, nil
	default:
		return nil, fmt.Errorf("unknown similarity %q (must be %s)",
			name, joinSeq(slices.Values(knownSimilarities), ", ", "or"))
	}
}

func (s *parserSettings) String() string {
	permissive := "off"
	if s.permissive {
		permissive = "on"
	}
	return fmt.Sprintf("cutoff %.2f, similarity %s, permissive fallback %s", s.cutoff, s.similarity, permissive)
}

func readParserSettings(db *sqlite.Conn) (*parserSettings, error) {
	s := defaultParserSettings()
	err := sqlitex.ExecuteTransientFS(db, sqlFiles(), "settings/get.sql", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s.cutoff = stmt.GetFloat("cutoff")
			s.similarity = stmt.GetText("similarity")
			s.permissive = stmt.GetInt64("permissive") != 0
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("read settings: %v", err)
	}
	return s, nil
}

func writeParserSettings(db *sqlite.Conn, s *parserSettings) (err error) {
	defer sqlitex.Save(db)(&err)

	err = sqlitex.ExecuteTransientFS(db, sqlFiles(), "settings/insert.sql", nil)
	if err != nil && sqlite.ErrCode(err).ToPrimary() != sqlite.ResultConstraint {
		// Ignoring constraint failures, since that should mean the row already exists.
		return fmt.Errorf("write settings: %v", err)
	}

	err = sqlitex.ExecuteScriptFS(db, sqlFiles(), "settings/set.sql", &sqlitex.ExecOptions{
		Named: map[string]any{
			":cutoff":     s.cutoff,
			":similarity": s.similarity,
			":permissive": boolInt(s.permissive),
		},
	})
	if err != nil {
		return fmt.Errorf("write settings: %v", err)
	}

	if n := db.Changes(); n != 1 {
		return fmt.Errorf("write settings: %d rows affected by write (corrupt database?)", n)
	}

	return nil
}

func newSettingsCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "settings",
		Short:         "Display or change default parser settings",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	opts := new(editSettingsOptions)
	c.Flags().Float64Var(&opts.cutoff, "cutoff", 0, "minimum `score` for correcting a misspelled month (0-1]")
	c.Flags().StringVar(&opts.similarity, "similarity", "", "`metric` for correcting misspelled months ("+
		joinSeq(slices.Values(knownSimilarities), ", ", "or")+")")
	c.Flags().BoolVar(&opts.permissive, "permissive", true, "fall back to a general-purpose parser after the strict layouts")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.hasCutoff = cmd.Flags().Changed("cutoff")
		opts.hasSimilarity = cmd.Flags().Changed("similarity")
		opts.hasPermissive = cmd.Flags().Changed("permissive")
		if opts.isEmpty() {
			return runSettingsShow(cmd.Context(), g)
		}
		return runSettingsEdit(cmd.Context(), g, opts)
	}
	return c
}

func runSettingsShow(ctx context.Context, g *globalConfig) error {
	db, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer closeConn(ctx, db)

	s, err := readParserSettings(db)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

type editSettingsOptions struct {
	cutoff        float64
	hasCutoff     bool
	similarity    string
	hasSimilarity bool
	permissive    bool
	hasPermissive bool
}

func (opts *editSettingsOptions) isEmpty() bool {
	return opts == nil || (!opts.hasCutoff && !opts.hasSimilarity && !opts.hasPermissive)
}

func (opts *editSettingsOptions) validate() error {
	if opts.hasCutoff && (opts.cutoff <= 0 || opts.cutoff > 1) {
		return fmt.Errorf("cutoff must be in (0, 1]")
	}
	if opts.hasSimilarity {
		opts.similarity = strings.ToLower(strings.TrimSpace(opts.similarity))
		if _, err := similarityByName(opts.similarity); err != nil {
			return err
		}
	}
	return nil
}

func (opts *editSettingsOptions) apply(s *parserSettings) {
	if opts.hasCutoff {
		s.cutoff = opts.cutoff
	}
	if opts.hasSimilarity {
		s.similarity = opts.similarity
	}
	if opts.hasPermissive {
		s.permissive = opts.permissive
	}
}

func runSettingsEdit(ctx context.Context, g *globalConfig, opts *editSettingsOptions) (err error) {
	if err := opts.validate(); err != nil {
		return err
	}

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

	s, err := readParserSettings(db)
	if err != nil {
		return err
	}
	opts.apply(s)
	if err := writeParserSettings(db, s); err != nil {
		return err
	}

	return nil
}
