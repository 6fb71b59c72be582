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

func TestClosureArgs(t *testing.T) {
	got := closureArgs("java/compiler.jar", []string{"/a/x.js", "/b/y.js"})
	assert.Equal(t, []string{
		"-jar", "java/compiler.jar", "--warning_level=QUIET",
		"--js=/a/x.js", "--js=/b/y.js",
	}, got)
}

func TestClosureCompilerMissingJava(t *testing.T) {
	c := &ClosureCompiler{Java: "pack-test-no-such-java-binary"}
	_, err := c.Compress([]string{"a.js"})
	assert.Error(t, err)
}

func TestDockerInputs(t *testing.T) {
	got := dockerInputs([]string{"/src/a.js", "/lib/a.js", "/src/b.js"})
	assert.Equal(t, []string{
		"/pack/in/0000-a.js",
		"/pack/in/0001-a.js",
		"/pack/in/0002-b.js",
	}, got)
}
