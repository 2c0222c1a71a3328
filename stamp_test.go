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
	"bytes"
	"os"
	"testing"

	"github.com/heungwook/PDFVT/pdffile"
)

func TestPacketContents(t *testing.T) {
	p, _ := DefaultRegistry().ByVariant(VariantVT3)
	mw := NewMetadataWriter(p)

	data, err := mw.packet()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"GTS_PDFVTVersion",
		"PDF/VT-3",
		"GTS_PDFXVersion",
		"PDF/X-6",
		"http://www.npes.org/pdfvt/ns/id/",
		"http://www.npes.org/pdfx/ns/id/",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("packet does not contain %q", want)
		}
	}
}

func TestPacketMinimal(t *testing.T) {
	// PDF/VT-1 has no extra namespaces
	p, _ := DefaultRegistry().ByVariant(VariantVT1)
	mw := NewMetadataWriter(p)

	data, err := mw.packet()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("PDF/VT-1")) {
		t.Error("packet does not contain the conformance marker")
	}
	if bytes.Contains(data, []byte("GTS_PDFXVersion")) {
		t.Error("unexpected GTS_PDFXVersion in PDF/VT-1 packet")
	}
}

func TestUnsupportedNamespace(t *testing.T) {
	mw := NewMetadataWriter(&Profile{
		Variant:       VariantVT1,
		Marker:        "PDF/VT-1",
		Rule:          AtLeast{1, 6},
		ExtraPacketNS: map[string]string{"xmpTPg": "1"},
	})
	_, err := mw.packet()
	if err == nil {
		t.Error("no error for unsupported packet namespace")
	}
}

func TestStampWritesInfo(t *testing.T) {
	fname := writeStamped(t, VariantVT1, pdffile.V1_6)
	raw, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"/Title (stamping test)",
		"/Producer (PDFVT test suite)",
		"/GTS_PDFVTVersion (PDF/VT-1)",
		"/MarkInfo",
	} {
		if !bytes.Contains(raw, []byte(want)) {
			t.Errorf("file does not contain %q", want)
		}
	}
}
