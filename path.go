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
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"shanhu.io/misc/errcode"
	"shanhu.io/misc/osutil"
)

// resolvePath makes f an absolute path. base is the directory of the
// manifest, ending with a path separator.
func resolvePath(f, base string) string {
	if filepath.IsAbs(f) {
		return f
	}
	return base + f
}

func cleanPath(p string) string { return filepath.Clean(p) }

// manifestBase returns the absolute directory of the manifest file, with a
// trailing separator.
func manifestBase(manifest string) (string, error) {
	abs, err := filepath.Abs(manifest)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir, nil
}

// globMatch is a file matched by a directory glob.
type globMatch struct {
	path    string
	display string
}

// ignorer checks if a file selected by a glob should be skipped.
type ignorer struct {
	patterns []string
}

func newIgnorer(patterns []string) (*ignorer, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errcode.InvalidArgf("bad ignore pattern: %q", p)
		}
	}
	return &ignorer{patterns: patterns}, nil
}

// ignore matches the display path (the path as it would be written in the
// manifest) against the ignore patterns.
func (ig *ignorer) ignore(display string) bool {
	if ig == nil {
		return false
	}
	p := filepath.ToSlash(display)
	for _, pat := range ig.patterns {
		if ok, _ := doublestar.Match(pat, p); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat, filepath.Base(p)); ok {
			return true
		}
	}
	return false
}

// globDir lists the files directly inside dir (a glob reference with the
// trailing star removed) that have the extension ext. Hidden files and
// directories are skipped. Matches are returned in lexicographic order of
// the file names.
func globDir(dir, base, ext string, ig *ignorer) ([]*globMatch, error) {
	abs := resolvePath(dir, base)
	isDir, err := osutil.IsDir(abs)
	if err != nil {
		return nil, errcode.Annotatef(err, "check dir %q", dir)
	}
	if !isDir {
		return nil, errcode.NotFoundf("%q is not a directory", dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errcode.Annotatef(err, "list dir %q", dir)
	}

	// "lib*" lists the same directory as "lib/*".
	prefix := dir
	if prefix != "" && !strings.HasSuffix(prefix, "/") &&
		!strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += "/"
	}

	var matches []*globMatch
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(name, ext) {
			continue
		}
		display := prefix + name
		if ig.ignore(display) {
			continue
		}
		matches = append(matches, &globMatch{
			path:    filepath.Join(abs, name),
			display: display,
		})
	}
	return matches, nil
}
