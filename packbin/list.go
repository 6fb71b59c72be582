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
	"fmt"
	"os"

	"shanhu.io/misc/errcode"
	"shanhu.io/pack"
	"shanhu.io/text/lexing"
)

func printCollection(c *pack.Collection) {
	fmt.Printf("@%s %s (%s)\n", c.ModeName, c.TargetDisplay, c.Type)
	for _, f := range c.FilesDisplay {
		fmt.Printf("  - %s\n", f)
	}
}

func cmdList(args []string) error {
	flags := cmdFlags.New()
	pf := new(packFlags)
	declarePackFlags(flags, pf)
	args = flags.ParseArgs(args)

	config, err := pf.readConfig()
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return errcode.Annotate(err, "get work dir")
	}

	// Listing never compresses, so the packer needs no compressor.
	p := pack.NewPackerWith(nil, config.Ignore, nil, nil)
	defer p.Close()

	for _, m := range manifestArgs(args) {
		cs, errs := p.List(m)
		if errs != nil {
			lexing.FprintErrs(os.Stderr, errs, wd)
			return errcode.InvalidArgf("read %q got %d errors", m, len(errs))
		}
		for _, c := range cs {
			printCollection(c)
		}
	}
	return nil
}
