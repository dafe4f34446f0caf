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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"zombiezen.com/go/log"
)

// picker describes how fzf presents a list of records.
// Each record is a sequence of fields joined by pickerFieldSeparator.
type picker struct {
	// display is a field index expression for the fields shown to the user.
	display string
	// accept is a field index expression for the fields printed on selection.
	accept string
	prompt string
	query  string
}

const pickerFieldSeparator = "\x1f" // unit separator in ASCII

// args returns the fzf command-line arguments for p.
func (p *picker) args() []string {
	args := []string{
		"--read0",
		"--print0",
		"--no-multi",
		"--select-1",
		"--delimiter=" + pickerFieldSeparator,
	}
	if p.display != "" {
		args = append(args, "--with-nth="+p.display)
	}
	if p.accept != "" {
		args = append(args, "--accept-nth="+p.accept)
	}
	if p.prompt != "" {
		args = append(args, "--prompt="+p.prompt)
	}
	if p.query != "" {
		args = append(args, "--query="+p.query)
	}
	return args
}

// pick runs fzf over records and returns the accepted fields
// of the record the user chose.
// The fzf binary is taken from DATEFIX_FZF if set.
func (p *picker) pick(ctx context.Context, records []string) (string, error) {
	fzfPath := os.Getenv("DATEFIX_FZF")
	if fzfPath == "" {
		fzfPath = "fzf"
	}
	input := new(bytes.Buffer)
	for _, rec := range records {
		if strings.Contains(rec, "\x00") {
			log.Warnf(ctx, "fzf: invalid record %q", rec)
			continue
		}
		input.WriteString(rec)
		input.WriteByte(0)
	}
	c := exec.CommandContext(ctx, fzfPath, p.args()...)
	c.Stdin = input
	output, err := c.Output()
	if err != nil {
		var exitError *exec.ExitError
		if !errors.As(err, &exitError) {
			return "", fmt.Errorf("fzf: %v", err)
		}
		switch code := exitError.ExitCode(); {
		case code == 1 && len(exitError.Stderr) == 0:
			// Wrappers commonly exit 1 too, so only trust it without stderr.
			return "", errFZFNoMatch
		case code == 130:
			return "", errFZFCanceled
		default:
			return "", fmt.Errorf("fzf: %v", err)
		}
	}
	selected := bytes.Split(bytes.TrimSuffix(output, []byte{0}), []byte{0})
	selected = slices.DeleteFunc(selected, func(b []byte) bool { return len(b) == 0 })
	if len(selected) != 1 {
		return "", fmt.Errorf("fzf: expected 1 selection, got %d", len(selected))
	}
	return string(selected[0]), nil
}

var (
	errFZFNoMatch  = errors.New("fzf: no match")
	errFZFCanceled = errors.New("fzf: user canceled")
)
