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

package packbin

import (
	"shanhu.io/misc/errcode"
	"shanhu.io/misc/flagutil"
	"shanhu.io/pack"
)

var cmdFlags = flagutil.NewFactory("pack")

type packFlags struct {
	config      string
	java        string
	closureJar  string
	dockerImage string
	cache       string
	noCache     bool
}

func declarePackFlags(flags *flagutil.FlagSet, f *packFlags) {
	flags.StringVar(&f.config, "config", pack.ConfigFile, "config file")
	flags.StringVar(&f.java, "java", "", "java binary")
	flags.StringVar(
		&f.closureJar, "closure_jar", "",
		"closure compiler jar file; a relative path is relative to the "+
			"work dir, default "+pack.DefaultClosureJar,
	)
	flags.StringVar(
		&f.dockerImage, "docker", "",
		"run the closure compiler in a container of this docker image",
	)
	flags.StringVar(&f.cache, "cache", "", "compress cache database file")
	flags.BoolVar(&f.noCache, "no_cache", false, "disable compress cache")
}

func (f *packFlags) readConfig() (*pack.Config, error) {
	c, err := pack.ReadConfig(f.config)
	if err != nil {
		return nil, errcode.Annotate(err, "read config")
	}
	if f.java != "" {
		c.Java = f.java
	}
	if f.closureJar != "" {
		c.ClosureJar = f.closureJar
	}
	if f.dockerImage != "" {
		c.DockerImage = f.dockerImage
	}
	if f.cache != "" {
		c.Cache = f.cache
	}
	if f.noCache {
		c.Cache = ""
	}
	return c, nil
}

func manifestArgs(args []string) []string {
	if len(args) == 0 {
		return []string{pack.DefaultManifest}
	}
	return args
}
