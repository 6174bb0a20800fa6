// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fmt formats generated code for debugging.
package fmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Number prefixes every line of a source code with its line number.
// Numbers are padded with zeros to have the same width.
func Number(src string) string {
	if src == "" {
		return ""
	}
	lines := strings.SplitAfter(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	format := "%0" + strconv.Itoa(len(strconv.Itoa(len(lines)))) + "d %s"
	var s strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&s, format, i+1, line)
	}
	return s.String()
}
