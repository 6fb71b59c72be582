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
	"path/filepath"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/jsonx"
	"shanhu.io/misc/osutil"
)

// ConfigFile is the default name of the config file.
const ConfigFile = "pack.jsonx"

// Config provides the configuration to start a packer.
type Config struct {
	Java string `json:",omitempty"` // Java binary.

	// ClosureJar is the closure compiler jar file. When read from a config
	// file, a relative path is relative to the directory of the file.
	ClosureJar string `json:",omitempty"`

	// DockerImage, when set, runs the closure compiler inside a container
	// of this image, and ClosureJar is the path inside the container.
	DockerImage string `json:",omitempty"`

	// Cache is the sqlite database file that caches compressed scripts.
	// Empty means no caching.
	Cache string `json:",omitempty"`

	// Ignore lists file patterns that directory globs never select.
	Ignore []string `json:",omitempty"`
}

// ReadConfig reads a config file. It returns an empty config when the file
// does not exist.
func ReadConfig(f string) (*Config, error) {
	c := new(Config)
	ok, err := osutil.IsRegular(f)
	if err != nil {
		return nil, errcode.Annotatef(err, "check config %q", f)
	}
	if !ok {
		return c, nil
	}
	if err := jsonx.ReadFile(f, c); err != nil {
		return nil, errcode.Annotatef(err, "read config %q", f)
	}

	// A local jar is relative to the config file. Inside a container, the
	// jar path is left as is.
	if c.ClosureJar != "" && c.DockerImage == "" &&
		!filepath.IsAbs(c.ClosureJar) {
		c.ClosureJar = filepath.Join(filepath.Dir(f), c.ClosureJar)
	}
	return c, nil
}
