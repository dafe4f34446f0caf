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
	"iter"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func newTagCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "tag",
		Short:         "Manage result tags",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c.AddCommand(
		newTagAddCommand(g),
		newTagListCommand(g),
	)
	return c
}

func newTagListCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "list",
		Short:         "List all tags",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	showCounts := c.Flags().Bool("count", false, "show the number of results with each tag")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runTagList(cmd.Context(), g, *showCounts)
	}
	return c
}

func runTagList(ctx context.Context, g *globalConfig, showCounts bool) error {
	db, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer closeConn(ctx, db)

	return sqlitex.ExecuteTransientFS(db, sqlFiles(), "tags/list.sql", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var err error
			if showCounts {
				_, err = fmt.Printf("%s\t%d\n", stmt.GetText("name"), stmt.GetInt64("result_count"))
			} else {
				_, err = fmt.Println(stmt.GetText("name"))
			}
			return err
		},
	})
}

func newTagAddCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:           "add [flags] ID TAG [...]",
		Short:         "Tag a recorded result",
		Args:          cobra.MinimumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("result ID: %v", err)
		}
		tags, err := cleanTags(args[1:])
		if err != nil {
			return err
		}
		return runTagAdd(cmd.Context(), g, id, tags)
	}
	return c
}

func runTagAdd(ctx context.Context, g *globalConfig, id uuid.UUID, tags []string) (err error) {
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

	if _, err := fetchResult(db, id); err != nil {
		return err
	}
	return addResultTags(db, id, slices.Values(tags))
}

// cleanTags trims the given tags and rejects ones that cannot be stored.
func cleanTags(tags []string) ([]string, error) {
	modified := false
	for i, tag := range tags {
		newTag := strings.TrimSpace(tag)
		if newTag == "" {
			return tags, fmt.Errorf("empty tag")
		}
		if strings.Contains(newTag, ",") {
			return tags, fmt.Errorf("tag %s: cannot contain commas", newTag)
		}
		if newTag != tag {
			if !modified {
				tags = slices.Clone(tags)
				modified = true
			}
			tags[i] = newTag
		}
	}
	return tags, nil
}

func upsertTags(db *sqlite.Conn, tags iter.Seq[string]) (err error) {
	defer sqlitex.Save(db)(&err)

	stmt, err := sqlitex.PrepareTransientFS(db, sqlFiles(), "tags/upsert.sql")
	if err != nil {
		return err
	}
	defer stmt.Finalize()
	for tag := range tags {
		stmt.SetText(":name", tag)
		if _, err := stmt.Step(); err != nil {
			return fmt.Errorf("insert tag %q: %v", tag, err)
		}
		if err := stmt.Reset(); err != nil {
			return fmt.Errorf("insert tag %q: %v", tag, err)
		}
	}
	return nil
}

// addResultTags attaches tags to the result with the given ID,
// creating any tags that do not exist yet.
func addResultTags(db *sqlite.Conn, id uuid.UUID, tags iter.Seq[string]) (err error) {
	defer sqlitex.Save(db)(&err)

	if err := upsertTags(db, tags); err != nil {
		return err
	}
	stmt, err := sqlitex.PrepareTransientFS(db, sqlFiles(), "results/add_tag.sql")
	if err != nil {
		return err
	}
	defer stmt.Finalize()
	stmt.SetText(":result_uuid", id.String())
	for tag := range tags {
		stmt.SetText(":tag", tag)
		if _, err := stmt.Step(); err != nil {
			return fmt.Errorf("tag %v with %q: %v", id, tag, err)
		}
		if err := stmt.Reset(); err != nil {
			return fmt.Errorf("tag %v with %q: %v", id, tag, err)
		}
	}
	return nil
}
