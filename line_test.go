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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	for _, test := range []struct {
		in   string
		want *line
	}{
		{"", skipLine},
		{"   \t", skipLine},
		{"# comment", skipLine},
		{"  # indented comment", skipLine},
		{"@compress out.js", &line{
			kind: lineDirective, mode: "compress", target: "out.js",
		}},
		{"  @combine   css/all.css  ", &line{
			kind: lineDirective, mode: "combine", target: "css/all.css",
		}},
		{"@combine\tout.css", &line{
			kind: lineDirective, mode: "combine", target: "out.css",
		}},
		{"@compress", skipLine},
		{"@ out.js", skipLine},
		{"@", skipLine},
		{"a.js", &line{kind: lineFile, path: "a.js"}},
		{"  sub/b.js ", &line{kind: lineFile, path: "sub/b.js"}},
		{"vendor/*", &line{kind: lineGlob, path: "vendor/"}},
		{"*", &line{kind: lineGlob, path: ""}},
	} {
		got := parseLine(test.in)
		assert.Equal(t, test.want, got, "line %q", test.in)
	}
}

func TestSplitDirective(t *testing.T) {
	mode, target, ok := splitDirective("compress dir with space/out.js")
	assert.True(t, ok)
	assert.Equal(t, "compress", mode)
	assert.Equal(t, "dir with space/out.js", target)
}

func TestTypeOf(t *testing.T) {
	for _, test := range []struct {
		target string
		want   Type
	}{
		{"out.js", TypeScript},
		{"a/b/out.css", TypeStylesheet},
		{"OUT.JS", TypeScript},
		{"x.min.Css", TypeStylesheet},
	} {
		got, err := typeOf(test.target)
		if assert.NoError(t, err, test.target) {
			assert.Equal(t, test.want, got, test.target)
		}
	}

	for _, target := range []string{"out.txt", "out", "out.", "js"} {
		_, err := typeOf(target)
		assert.Error(t, err, target)
	}
}
