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
	"log"
	"os"

	"shanhu.io/misc/errcode"
	"shanhu.io/pack"
	"shanhu.io/text/lexing"
)

func cmdBuild(args []string) error {
	flags := cmdFlags.New()
	pf := new(packFlags)
	declarePackFlags(flags, pf)
	var report string
	flags.StringVar(&report, "report", "", "save a JSON report into this file")
	args = flags.ParseArgs(args)

	config, err := pf.readConfig()
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return errcode.Annotate(err, "get work dir")
	}

	p, err := pack.NewPacker(config, os.Stdout)
	if err != nil {
		return err
	}
	defer p.Close()

	var reports []*pack.Report
	for _, m := range manifestArgs(args) {
		r, errs := p.Pack(m)
		if errs != nil {
			lexing.FprintErrs(os.Stderr, errs, wd)
			return errcode.InvalidArgf("pack %q got %d errors", m, len(errs))
		}
		reports = append(reports, r)
	}

	if report != "" {
		if err := pack.WriteReports(report, reports); err != nil {
			return errcode.Annotate(err, "write report")
		}
		log.Printf("report saved in %s", report)
	}
	return nil
}
