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

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// Mode is how a collection is processed after concatenation.
type Mode int

// Processing modes.
const (
	ModeConcatenate Mode = iota
	ModeCompress
)

const modeCompress = "compress"

func parseMode(s string) Mode {
	if s == modeCompress {
		return ModeCompress
	}
	return ModeConcatenate
}

func (m Mode) String() string {
	if m == ModeCompress {
		return "compress"
	}
	return "concatenate"
}

// Type is the asset type of a collection, inferred from the extension of
// its target file.
type Type string

// Supported asset types.
const (
	TypeScript     Type = "js"
	TypeStylesheet Type = "css"
)

// Ext returns the file extension for the type, including the dot.
func (t Type) Ext() string { return "." + string(t) }

func typeOf(target string) (Type, error) {
	i := strings.LastIndex(target, ".")
	if i < 0 {
		return "", errcode.InvalidArgf("%q has no file extension", target)
	}
	ext := strings.ToLower(target[i+1:])
	switch t := Type(ext); t {
	case TypeScript, TypeStylesheet:
		return t, nil
	}
	return "", errcode.InvalidArgf("unsupported type %q of %q", ext, target)
}

// Collection is an output target together with the ordered list of input
// files that are bundled into it.
type Collection struct {
	Mode     Mode
	ModeName string // Mode as written in the manifest.
	Type     Type

	Target        string // Absolute output path.
	TargetDisplay string // As written in the manifest.

	// Files and FilesDisplay are index-aligned.
	Files        []string
	FilesDisplay []string

	Pos *lexing.Pos
}

func newCollection(
	mode, target, targetDisplay string, t Type, pos *lexing.Pos,
) *Collection {
	return &Collection{
		Mode:          parseMode(mode),
		ModeName:      mode,
		Type:          t,
		Target:        target,
		TargetDisplay: targetDisplay,
		Pos:           pos,
	}
}

func (c *Collection) add(f, display string) {
	c.Files = append(c.Files, f)
	c.FilesDisplay = append(c.FilesDisplay, display)
}

// matchType checks if a file name has exactly the extension of the
// collection's type.
func (c *Collection) matchType(name string) bool {
	return strings.HasSuffix(name, c.Type.Ext())
}

// dropTarget removes all references to the target file itself from the
// input list, so that the output never gets read.
func (c *Collection) dropTarget() {
	target := cleanPath(c.Target)
	n := 0
	for i, f := range c.Files {
		if cleanPath(f) == target {
			continue
		}
		c.Files[n] = f
		c.FilesDisplay[n] = c.FilesDisplay[i]
		n++
	}
	c.Files = c.Files[:n]
	c.FilesDisplay = c.FilesDisplay[:n]
}
