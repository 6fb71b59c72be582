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
	"fmt"
	"math"
	"strconv"
)

// Stats compares the size of a collection before and after processing.
// Sizes are in bytes.
type Stats struct {
	Before int
	After  int

	// Diff is Before - After. It is negative when processing makes the
	// content larger.
	Diff int

	// PercentSaved is Diff/Before in percent, rounded to two decimal
	// places. It is 0 when Before is 0.
	PercentSaved float64
}

// Compare computes the size statistics of before and after.
func Compare(before, after []byte) *Stats {
	s := &Stats{
		Before: len(before),
		After:  len(after),
	}
	s.Diff = s.Before - s.After
	if s.Before > 0 {
		p := float64(s.Diff) / float64(s.Before) * 100
		s.PercentSaved = math.Round(p*100) / 100
	}
	return s
}

func (s *Stats) String() string {
	unit := "bytes"
	if s.Diff == 1 {
		unit = "byte"
	}
	pct := strconv.FormatFloat(s.PercentSaved, 'f', -1, 64)
	return fmt.Sprintf(
		"%d %s of %d saved (%s%%)", s.Diff, unit, s.Before, pct,
	)
}
