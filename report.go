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
	"shanhu.io/misc/jsonutil"
)

// ReportEntry records how one output target was built.
type ReportEntry struct {
	Target string
	Mode   string
	Type   string
	Inputs []string `json:",omitempty"`
	Stats  *Stats
}

// Report records the outputs of a run.
type Report struct {
	Manifest string
	Outputs  []*ReportEntry
}

func newReport(manifest string, results []*Processed) *Report {
	r := &Report{Manifest: manifest}
	for _, p := range results {
		r.Outputs = append(r.Outputs, &ReportEntry{
			Target: p.TargetDisplay,
			Mode:   p.Mode.String(),
			Type:   string(p.Type),
			Inputs: p.FilesDisplay,
			Stats:  p.Stats,
		})
	}
	return r
}

// WriteReports saves reports as JSON into file f.
func WriteReports(f string, reports []*Report) error {
	return jsonutil.WriteFile(f, reports)
}
