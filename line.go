// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pack

import (
	"strings"
	"unicode"
)

const (
	lineSkip      = iota // Blank lines, comments and malformed directives.
	lineDirective        // @mode target
	lineFile             // a single file
	lineGlob             // all files in a directory, ends with *
)

type line struct {
	kind int

	mode   string // for directives
	target string // for directives

	path string // for files and globs; globs have the star removed
}

var skipLine = &line{kind: lineSkip}

// parseLine classifies a single manifest line.
func parseLine(s string) *line {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return skipLine
	}

	if strings.HasPrefix(s, "@") {
		mode, target, ok := splitDirective(s[1:])
		if !ok {
			return skipLine
		}
		return &line{kind: lineDirective, mode: mode, target: target}
	}

	if strings.HasSuffix(s, "*") {
		return &line{kind: lineGlob, path: strings.TrimSuffix(s, "*")}
	}
	return &line{kind: lineFile, path: s}
}

// splitDirective splits "mode target" where the mode is a non-empty token
// without white spaces, followed by at least one white space, and the target
// is the non-empty rest of the line.
func splitDirective(s string) (mode, target string, ok bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i <= 0 {
		return "", "", false
	}
	mode = s[:i]
	target = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	if target == "" {
		return "", "", false
	}
	return mode, target, true
}
