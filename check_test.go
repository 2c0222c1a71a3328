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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/heungwook/PDFVT/pdffile"
)

// writeStamped creates a stamped PDF file for the given conformance level
// and returns its name.
func writeStamped(t *testing.T, variant Variant, ver pdffile.Version) string {
	t.Helper()

	p, ok := DefaultRegistry().ByVariant(variant)
	if !ok {
		t.Fatalf("no profile for variant %s", variant)
	}

	fname := filepath.Join(t.TempDir(), "test.pdf")
	w, err := pdffile.Create(fname, ver)
	if err != nil {
		t.Fatal(err)
	}
	w.AddPage(595, 842)

	mw := NewMetadataWriter(p)
	mw.Info.Title = "stamping test"
	mw.Producer = "PDFVT test suite"
	err = mw.Stamp(w)
	if err != nil {
		t.Fatal(err)
	}

	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestStampAndCheck(t *testing.T) {
	cases := []struct {
		variant Variant
		ver     pdffile.Version
	}{
		{VariantVT1, pdffile.V1_6},
		{VariantVT1, pdffile.V1_7},
		{VariantVT1, pdffile.V2_0},
		{VariantVT3, pdffile.V2_0},
	}
	checker := NewChecker(nil)
	for _, test := range cases {
		fname := writeStamped(t, test.variant, test.ver)
		res, err := checker.Check(fname)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Compliant {
			t.Errorf("%s at PDF %s not compliant: %v",
				test.variant, test.ver, res.Issues)
			continue
		}
		if res.Variant != test.variant {
			t.Errorf("got variant %s, want %s", res.Variant, test.variant)
		}
		if !res.HasCatalogMarker || !res.HasStructureFlag || !res.HasPacketMarker {
			t.Errorf("%s at PDF %s: evidence incomplete: %t %t %t",
				test.variant, test.ver,
				res.HasCatalogMarker, res.HasStructureFlag, res.HasPacketMarker)
		}
		if len(res.Issues) != 0 {
			t.Errorf("unexpected issues: %v", res.Issues)
		}
	}
}

func TestVersionTooOld(t *testing.T) {
	cases := []struct {
		variant Variant
		ver     pdffile.Version
	}{
		{VariantVT1, pdffile.V1_5},
		{VariantVT3, pdffile.V1_7},
	}
	checker := NewChecker(nil)
	for _, test := range cases {
		fname := writeStamped(t, test.variant, test.ver)
		res, err := checker.Check(fname)
		if err != nil {
			t.Fatal(err)
		}
		if res.Compliant {
			t.Errorf("%s at PDF %s reported compliant", test.variant, test.ver)
		}
		if len(res.Issues) == 0 {
			t.Error("no issue for disallowed PDF version")
		}
		// evidence is still recorded even though the version rule fails
		if !res.HasCatalogMarker || !res.HasStructureFlag {
			t.Error("evidence lost on version rule failure")
		}
	}
}

func TestCheckVariant(t *testing.T) {
	checker := NewChecker(nil)
	fname := writeStamped(t, VariantVT1, pdffile.V1_6)

	res, err := checker.CheckVariant(fname, VariantVT1)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Compliant {
		t.Errorf("not compliant: %v", res.Issues)
	}

	res, err = checker.CheckVariant(fname, VariantVT3)
	if err != nil {
		t.Fatal(err)
	}
	if res.Compliant {
		t.Error("PDF/VT-1 file accepted as PDF/VT-3")
	}
	if len(res.Issues) == 0 {
		t.Error("no issue for conformance level mismatch")
	}
}

func TestCheckMissingFile(t *testing.T) {
	checker := NewChecker(nil)
	_, err := checker.Check(filepath.Join(t.TempDir(), "nope.pdf"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}

func TestCheckGarbageFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "garbage.pdf")
	err := os.WriteFile(fname, []byte("what even is this\n"), 0o666)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(nil)
	res, err := checker.Check(fname)
	if err != nil {
		t.Fatalf("parse failure escalated to an error: %v", err)
	}
	if res.Compliant {
		t.Error("garbage file reported compliant")
	}
	if len(res.Issues) == 0 {
		t.Error("no issue for unreadable file")
	}
}

func TestPacketNotRequired(t *testing.T) {
	// The metadata packet is evidence only.  A file carrying the catalog
	// marker and the structure flag passes without one.
	fname := filepath.Join(t.TempDir(), "test.pdf")
	w, err := pdffile.Create(fname, pdffile.V1_6)
	if err != nil {
		t.Fatal(err)
	}
	w.SetCatalogEntry("GTS_PDFVTVersion", "PDF/VT-1")
	w.SetStructureFlag(true)
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}

	res, err := NewChecker(nil).Check(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Compliant {
		t.Errorf("not compliant: %v", res.Issues)
	}
	if res.HasPacketMarker {
		t.Error("packet marker reported for file without packet")
	}
	if len(res.Issues) != 1 {
		t.Errorf("got issues %v, want the missing packet noted", res.Issues)
	}
}

func TestStructureFlagRequired(t *testing.T) {
	for _, disabled := range []bool{true, false} {
		fname := filepath.Join(t.TempDir(), "test.pdf")
		w, err := pdffile.Create(fname, pdffile.V1_6)
		if err != nil {
			t.Fatal(err)
		}
		w.SetCatalogEntry("GTS_PDFVTVersion", "PDF/VT-1")
		if disabled {
			// flag present but false
			w.SetStructureFlag(false)
		}
		err = w.Close()
		if err != nil {
			t.Fatal(err)
		}

		res, err := NewChecker(nil).Check(fname)
		if err != nil {
			t.Fatal(err)
		}
		if res.Compliant {
			t.Errorf("compliant without structure flag (disabled=%t)", disabled)
		}
		if res.HasStructureFlag {
			t.Errorf("structure flag reported present (disabled=%t)", disabled)
		}
	}
}

func TestUnknownMarker(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "test.pdf")
	w, err := pdffile.Create(fname, pdffile.V1_6)
	if err != nil {
		t.Fatal(err)
	}
	w.SetCatalogEntry("GTS_PDFVTVersion", "PDF/VT-9")
	w.SetStructureFlag(true)
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}

	res, err := NewChecker(nil).Check(fname)
	if err != nil {
		t.Fatal(err)
	}
	if res.Compliant {
		t.Error("unknown marker reported compliant")
	}
	if res.Variant != VariantUnknown {
		t.Errorf("got variant %s, want unknown", res.Variant)
	}
	if res.Marker != "PDF/VT-9" {
		t.Errorf("got marker %q, want PDF/VT-9", res.Marker)
	}
}

// stubDoc is a Document for tests which need full control over the
// evidence.
type stubDoc struct {
	version string
	catalog map[string]string
	marked  *bool
	packet  []byte
}

func (d *stubDoc) DeclaredVersion() string { return d.version }

func (d *stubDoc) CatalogEntry(key string) (string, bool, error) {
	val, ok := d.catalog[key]
	return val, ok, nil
}

func (d *stubDoc) StructureFlag() (bool, bool, error) {
	if d.marked == nil {
		return false, false, nil
	}
	return *d.marked, true, nil
}

func (d *stubDoc) MetadataPacket() ([]byte, error) { return d.packet, nil }

func (d *stubDoc) Close() error { return nil }

func TestPacketFallback(t *testing.T) {
	// With no catalog entry, the marker is taken from the packet.  The
	// verdict still fails because the catalog evidence is missing.
	marked := true
	doc := &stubDoc{
		version: "2.0",
		marked:  &marked,
		packet:  []byte("<x:stuff>PDF/VT-3</x:stuff>"),
	}

	res := NewChecker(nil).CheckDocument(doc)
	if res.Marker != "PDF/VT-3" {
		t.Errorf("got marker %q, want PDF/VT-3", res.Marker)
	}
	if res.Variant != VariantVT3 {
		t.Errorf("got variant %s, want PDF/VT-3", res.Variant)
	}
	if !res.HasPacketMarker || res.HasCatalogMarker {
		t.Errorf("wrong evidence: catalog=%t packet=%t",
			res.HasCatalogMarker, res.HasPacketMarker)
	}
	if res.Compliant {
		t.Error("compliant without catalog marker")
	}
}

func TestPacketMismatch(t *testing.T) {
	marked := true
	doc := &stubDoc{
		version: "2.0",
		catalog: map[string]string{"GTS_PDFVTVersion": "PDF/VT-3"},
		marked:  &marked,
		packet:  []byte("this packet says PDF/VT-1 instead"),
	}

	res := NewChecker(nil).CheckDocument(doc)
	if res.Marker != "PDF/VT-3" {
		t.Errorf("got marker %q, want the catalog value", res.Marker)
	}
	if res.HasPacketMarker {
		t.Error("mismatched packet counted as packet evidence")
	}
	found := false
	for _, issue := range res.Issues {
		if issue == "metadata packet does not contain the conformance marker" {
			found = true
		}
	}
	if !found {
		t.Errorf("mismatch not reported: %v", res.Issues)
	}
}

func TestNoEvidenceAtAll(t *testing.T) {
	doc := &stubDoc{version: "1.7"}

	res := NewChecker(nil).CheckDocument(doc)
	if res.Compliant {
		t.Error("empty document reported compliant")
	}
	if res.Variant != VariantUnknown || res.Marker != "" {
		t.Errorf("got variant %s, marker %q", res.Variant, res.Marker)
	}
	// one issue per missing location, plus the failed marker resolution
	if len(res.Issues) != 4 {
		t.Errorf("unexpected issues: %v", res.Issues)
	}
}
