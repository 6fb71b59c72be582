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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shanhu.io/misc/jsonutil"
)

func TestPackerPack(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"load.txt": `# site assets
@compress build/js/site.js
js/*
@combine build/css/site.css
css/a.css
css/b.css
@compress build/css/site.min.css
css/*
`,
		"js/a.js":   "var a = 1;\n",
		"js/b.js":   "var b = 2;\n",
		"css/a.css": "body{color:red;}",
		"css/b.css": ".x { margin: 0 ; }",
	})

	log := new(bytes.Buffer)
	p := NewPackerWith(new(fakeCompressor), nil, log, nil)
	defer p.Close()

	manifest := filepath.Join(dir, "load.txt")
	report, errs := p.Pack(manifest)
	require.Nil(t, errs)

	assert.Equal(t,
		"compressed:a.js,b.js",
		readFile(t, filepath.Join(dir, "build/js/site.js")),
	)
	assert.Equal(t,
		"body{color:red;}.x { margin: 0 ; }",
		readFile(t, filepath.Join(dir, "build/css/site.css")),
	)
	assert.Equal(t,
		"body{color:red}.x{margin:0}",
		readFile(t, filepath.Join(dir, "build/css/site.min.css")),
	)

	require.Len(t, report.Outputs, 3)
	assert.Equal(t, "build/js/site.js", report.Outputs[0].Target)
	assert.Equal(t, "compress", report.Outputs[0].Mode)
	assert.Equal(t, "js", report.Outputs[0].Type)
	assert.Equal(t, []string{"js/a.js", "js/b.js"}, report.Outputs[0].Inputs)
	assert.Equal(t, "concatenate", report.Outputs[1].Mode)

	assert.Contains(t, log.String(), "Reading "+manifest)
	assert.Contains(t, log.String(), "Combining build/css/site.css...")
	assert.Contains(t, log.String(), "wrote build/css/site.min.css")

	reportFile := filepath.Join(dir, "report.json")
	require.NoError(t, WriteReports(reportFile, []*Report{report}))
	var saved []*Report
	require.NoError(t, jsonutil.ReadFile(reportFile, &saved))
	assert.Equal(t, []*Report{report}, saved)
}

func TestPackerIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"load.txt":  "@combine out/all.js\nsrc/*\n@compress out/all.css\nsrc/*\n",
		"src/a.js":  "a();\n",
		"src/b.js":  "b();\n",
		"src/a.css": "a { b : c ; }\n",
	})

	manifest := filepath.Join(dir, "load.txt")
	outs := []string{
		filepath.Join(dir, "out/all.js"),
		filepath.Join(dir, "out/all.css"),
	}

	var first []string
	for i := 0; i < 2; i++ {
		p := NewPackerWith(new(fakeCompressor), nil, nil, nil)
		_, errs := p.Pack(manifest)
		require.Nil(t, errs)

		var got []string
		for _, f := range outs {
			got = append(got, readFile(t, f))
		}
		if i == 0 {
			first = got
			continue
		}
		assert.Equal(t, first, got)
	}
	assert.Equal(t, []string{"a();\nb();\n", "a{b:c}"}, first)
}

func TestPackerNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"load.txt": "@combine out/a.css\na.css\n@compress out/b.js\nb.js\n",
		"a.css":    "a{}",
		"b.js":     "b();",
	})

	c := &fakeCompressor{err: errors.New("compiler crashed")}
	p := NewPackerWith(c, nil, nil, nil)
	_, errs := p.Pack(filepath.Join(dir, "load.txt"))
	require.Len(t, errs, 1)

	_, err := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestPackerOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"load.txt": "@combine out.js\na.js\n",
		"a.js":     "short",
		"out.js":   "a much longer previous output",
	})

	p := NewPackerWith(nil, nil, nil, nil)
	_, errs := p.Pack(filepath.Join(dir, "load.txt"))
	require.Nil(t, errs)
	assert.Equal(t, "short", readFile(t, filepath.Join(dir, "out.js")))
}

func TestPackerList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"load.txt": "@combine out.js\nmissing.js\n",
	})

	p := NewPackerWith(nil, nil, nil, nil)
	cs, errs := p.List(filepath.Join(dir, "load.txt"))
	require.Nil(t, errs)
	require.Len(t, cs, 1)
	assert.Equal(t, []string{"missing.js"}, cs[0].FilesDisplay)
}
