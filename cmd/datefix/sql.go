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
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/ext/refunc"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*/*.sql
var rawSQLFiles embed.FS

var sqlFiles = sync.OnceValue(func() fs.FS {
	sub, err := fs.Sub(rawSQLFiles, "sql")
	if err != nil {
		panic(err)
	}
	return sub
})

var schema = sync.OnceValue(func() sqlitemigration.Schema {
	result := sqlitemigration.Schema{
		AppID: 0x64617466,
	}
	files := sqlFiles()
	for i := 1; ; i++ {
		migration, err := fs.ReadFile(files, fmt.Sprintf("schema/%02d.sql", i))
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			panic(err)
		}
		result.Migrations = append(result.Migrations, string(migration))
	}
	return result
})

func prepareConn(conn *sqlite.Conn) error {
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA auto_vacuum = full;", nil); err != nil {
		return err
	}
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = on;", nil); err != nil {
		return err
	}
	// Provides the REGEXP operator used by history --match.
	if err := refunc.Register(conn); err != nil {
		return err
	}
	return nil
}

// nullInt returns nil for zero so that unresolved fields are stored as NULL.
func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// getOptionalInt returns zero if the column is NULL.
func getOptionalInt(stmt *sqlite.Stmt, col string) int {
	if stmt.ColumnType(stmt.ColumnIndex(col)) == sqlite.TypeNull {
		return 0
	}
	return int(stmt.GetInt64(col))
}
