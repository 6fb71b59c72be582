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
	"regexp"
	"strings"
)

var (
	cssComment   = regexp.MustCompile(`/\*[^*]*\*+([^/*][^*]*\*+)*/`)
	cssLineBreak = strings.NewReplacer("\r", "", "\t", "", "\n", "")
	cssDelim     = regexp.MustCompile(`\s*([{:;,}])\s*`)
	cssEmptyRule = regexp.MustCompile(`[^{}]+\{\}`)
)

// MinifyCSS removes comments and optional white spaces from a style sheet,
// drops the last semicolon in each block, and removes rules with an empty
// body. Minifying an already minified style sheet changes nothing.
func MinifyCSS(css string) string {
	// Removing a comment can join its neighbors into a new comment, and
	// removing an empty rule can leave its parent block empty, so repeat
	// until nothing changes.
	for {
		s := minifyCSS1(css)
		if s == css {
			return s
		}
		css = s
	}
}

func minifyCSS1(css string) string {
	// Comments go first, so that the white spaces around them are collapsed.
	css = cssComment.ReplaceAllString(css, "")
	css = cssLineBreak.Replace(css)
	css = cssDelim.ReplaceAllString(css, "$1")
	css = strings.TrimSpace(css)
	css = strings.ReplaceAll(css, ";}", "}")
	return cssEmptyRule.ReplaceAllString(css, "")
}
