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

package pdfvt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	p1, ok := reg.ByMarker("PDF/VT-1")
	if !ok || p1.Variant != VariantVT1 {
		t.Error("no profile for marker PDF/VT-1")
	}
	p3, ok := reg.ByVariant(VariantVT3)
	if !ok || p3.Marker != "PDF/VT-3" {
		t.Error("no profile for variant PDF/VT-3")
	}
	if _, ok := reg.ByMarker("PDF/X-4"); ok {
		t.Error("unexpected profile for marker PDF/X-4")
	}

	want := []string{"PDF/VT-1", "PDF/VT-3"}
	if d := cmp.Diff(want, reg.Markers()); d != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", d)
	}
}

func TestRegistryDuplicateMarker(t *testing.T) {
	_, err := NewRegistry(
		&Profile{Variant: VariantVT1, Marker: "PDF/VT-1", Rule: AtLeast{1, 6}},
		&Profile{Variant: VariantVT3, Marker: "PDF/VT-1", Rule: Exactly{"2.0"}},
	)
	if err == nil {
		t.Error("no error for duplicate marker")
	}
}

func TestRegistryScanOrder(t *testing.T) {
	reg, err := NewRegistry(
		&Profile{Variant: VariantVT1, Marker: "PDF/VT-1", Rule: AtLeast{1, 6}},
		&Profile{Variant: VariantVT3, Marker: "PDF/VT-1E", Rule: AtLeast{1, 6}},
	)
	if err != nil {
		t.Fatal(err)
	}

	// Longer markers are scanned first, so that "PDF/VT-1E" is not
	// mistaken for its prefix "PDF/VT-1".
	order := reg.scanOrder()
	if len(order) != 2 || order[0].Marker != "PDF/VT-1E" {
		t.Errorf("wrong scan order: %v, %v", order[0].Marker, order[1].Marker)
	}
}

func TestVersionRules(t *testing.T) {
	cases := []struct {
		rule    VersionRule
		version string
		ok      bool
	}{
		{AtLeast{1, 6}, "1.5", false},
		{AtLeast{1, 6}, "1.6", true},
		{AtLeast{1, 6}, "1.7", true},
		{AtLeast{1, 6}, "2.0", true},
		{AtLeast{1, 6}, "", false},
		{AtLeast{1, 6}, "junk", false},
		{Exactly{"2.0"}, "2.0", true},
		{Exactly{"2.0"}, "1.7", false},
		{Exactly{"2.0"}, "", false},
	}
	for _, test := range cases {
		if got := test.rule.Allows(test.version); got != test.ok {
			t.Errorf("%s.Allows(%q) = %t, want %t",
				test.rule, test.version, got, test.ok)
		}
	}
}
