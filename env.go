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
	"path/filepath"

	"shanhu.io/misc/errcode"
)

func prepareOut(p string) error {
	return os.MkdirAll(filepath.Dir(p), 0755)
}

func writeOut(p string, content []byte) error {
	if err := prepareOut(p); err != nil {
		return errcode.Annotate(err, "make output dir")
	}

	f, err := os.Create(p)
	if err != nil {
		return errcode.Annotate(err, "create")
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return errcode.Annotate(err, "write")
	}
	return f.Close()
}
