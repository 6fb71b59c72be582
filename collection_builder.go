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
	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// collectionBuilder walks the lines of a manifest in order and groups the
// referenced files into collections. cur is nil until the first valid
// directive.
type collectionBuilder struct {
	base    string // Directory of the manifest, with trailing separator.
	ignorer *ignorer

	cur     *Collection
	results []*Collection
}

func newCollectionBuilder(base string, ig *ignorer) *collectionBuilder {
	return &collectionBuilder{
		base:    base,
		ignorer: ig,
	}
}

func (b *collectionBuilder) add(l *line, pos *lexing.Pos) *lexing.Error {
	var err error
	switch l.kind {
	case lineDirective:
		err = b.directive(l, pos)
	case lineFile:
		b.file(l)
	case lineGlob:
		err = b.glob(l)
	}
	if err != nil {
		return &lexing.Error{Pos: pos, Err: err}
	}
	return nil
}

func (b *collectionBuilder) directive(l *line, pos *lexing.Pos) error {
	t, err := typeOf(l.target)
	if err != nil {
		return err
	}

	b.flush()
	target := resolvePath(l.target, b.base)
	b.cur = newCollection(l.mode, target, l.target, t, pos)
	return nil
}

func (b *collectionBuilder) file(l *line) {
	if b.cur == nil || !b.cur.matchType(l.path) {
		return
	}
	b.cur.add(resolvePath(l.path, b.base), l.path)
	b.cur.dropTarget()
}

func (b *collectionBuilder) glob(l *line) error {
	if b.cur == nil {
		return nil
	}
	matches, err := globDir(l.path, b.base, b.cur.Type.Ext(), b.ignorer)
	if err != nil {
		return errcode.Annotatef(err, "expand %q", l.path+"*")
	}
	for _, m := range matches {
		b.cur.add(m.path, m.display)
	}
	b.cur.dropTarget()
	return nil
}

func (b *collectionBuilder) flush() {
	if b.cur != nil {
		b.results = append(b.results, b.cur)
		b.cur = nil
	}
}

// finish closes the last open collection and returns all collections in
// manifest order.
func (b *collectionBuilder) finish() []*Collection {
	b.flush()
	return b.results
}
