// github.com/heungwook/PDFVT - PDF/VT metadata stamping and compliance checking
// Copyright (C) 2026  The PDFVT Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdffile

import "testing"

func TestVersion(t *testing.T) {
	for v := V1_0; v <= V2_0; v++ {
		s, err := v.ToString()
		if err != nil {
			t.Fatal(err)
		}
		v2, err := ParseVersion(s)
		if err != nil {
			t.Fatal(err)
		}
		if v2 != v {
			t.Errorf("%q parsed to %d, want %d", s, v2, v)
		}
	}

	for _, s := range []string{"", "1", "1.8", "2.1", "3.0", "01.7"} {
		_, err := ParseVersion(s)
		if err == nil {
			t.Errorf("no error for version %q", s)
		}
	}
}
