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
	"os"
	"strings"

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// DefaultManifest is the manifest file name used when none is given.
const DefaultManifest = "load.txt"

// ManifestOptions are options for reading a manifest.
type ManifestOptions struct {
	// Ignore lists patterns of files that directory globs never select.
	// Patterns are matched against the manifest-relative path and against
	// the base name of the file.
	Ignore []string
}

func readManifestFile(f string) ([]byte, error) {
	bs, err := os.ReadFile(f)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errcode.NotFoundf("manifest %q not found", f)
		}
		return nil, errcode.Annotatef(err, "read manifest %q", f)
	}
	return bs, nil
}

// ReadManifest reads a manifest file and parses it into collections, in the
// order that they are declared. The first fatal error aborts the parsing.
func ReadManifest(f string, opts *ManifestOptions) (
	[]*Collection, []*lexing.Error,
) {
	if opts == nil {
		opts = new(ManifestOptions)
	}

	bs, err := readManifestFile(f)
	if err != nil {
		return nil, lexing.SingleErr(err)
	}
	base, err := manifestBase(f)
	if err != nil {
		err := errcode.Annotate(err, "get manifest dir")
		return nil, lexing.SingleErr(err)
	}
	ig, err := newIgnorer(opts.Ignore)
	if err != nil {
		return nil, lexing.SingleErr(err)
	}

	b := newCollectionBuilder(base, ig)
	for i, text := range strings.Split(string(bs), "\n") {
		l := parseLine(text)
		if l.kind == lineSkip {
			continue
		}
		pos := &lexing.Pos{File: f, Line: i + 1, Col: 1}
		if err := b.add(l, pos); err != nil {
			return nil, []*lexing.Error{err}
		}
	}
	return b.finish(), nil
}
