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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPickerArgs(t *testing.T) {
	tests := []struct {
		name   string
		picker picker
		want   []string
	}{
		{
			name: "Empty",
			want: []string{"--read0", "--print0", "--no-multi", "--select-1", "--delimiter=\x1f"},
		},
		{
			name: "History",
			picker: picker{
				display: "2..",
				accept:  "1",
				prompt:  "Mar.*> ",
			},
			want: []string{
				"--read0", "--print0", "--no-multi", "--select-1", "--delimiter=\x1f",
				"--with-nth=2..",
				"--accept-nth=1",
				"--prompt=Mar.*> ",
			},
		},
		{
			name:   "Query",
			picker: picker{query: "2023"},
			want:   []string{"--read0", "--print0", "--no-multi", "--select-1", "--delimiter=\x1f", "--query=2023"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.picker.args()
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("args() (-want +got):\n%s", diff)
			}
		})
	}
}
