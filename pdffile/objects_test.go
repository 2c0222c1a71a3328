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

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Integer(0), "0"},
		{Integer(-4096), "-4096"},
		{Real(612), "612."},
		{Real(-0.5), "-0.5"},
		{String("hello"), "(hello)"},
		{String("a(b"), `(a\(b)`},
		{String("(balanced)"), "((balanced))"},
		{String([]byte{0, 1, 2}), "<000102>"},
		{Name("Metadata"), "/Metadata"},
		{Name("A B"), "/A#20B"},
		{Name("GTS_PDFVTVersion"), "/GTS_PDFVTVersion"},
		{Array{Integer(1), nil, Name("x")}, "[1 null /x]"},
		{Dict{"B": Integer(2), "A": Integer(1)}, "<<\n/A 1\n/B 2\n>>"},
		{Dict{"Gone": nil}, "<<\n>>"},
		{&Reference{Number: 3, Generation: 1}, "3 1 R"},
		{(*Reference)(nil), "null"},
	}
	for _, test := range cases {
		out := format(test.in)
		if out != test.out {
			t.Errorf("format(%#v) = %q, want %q", test.in, out, test.out)
		}
	}
}

func TestTextString(t *testing.T) {
	cases := []string{
		"",
		"hello world",
		"Größenwahn",
		"日本語",
		"a\tb\nc",
	}
	for _, in := range cases {
		enc := TextString(in)
		out := enc.AsTextString()
		if out != in {
			t.Errorf("%q round-tripped to %q", in, out)
		}
	}
}

func TestReadObject(t *testing.T) {
	cases := []struct {
		in  string
		out Object
	}{
		{"null", nil},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"123", Integer(123)},
		{"-4.5", Real(-4.5)},
		{"/Name", Name("Name")},
		{"/A#20B", Name("A B")},
		{"(hello (x))", String("hello (x)")},
		{"<48656C6C6F>", String("Hello")},
		{"<48656C6C6>", String("Hell`")},
		{"[1 2 R /X]", Array{&Reference{Number: 1, Generation: 2}, Name("X")}},
		{"<</A 1 0 R /B 2>>",
			Dict{"A": &Reference{Number: 1}, "B": Integer(2)}},
	}
	for _, test := range cases {
		s := newScanner(strings.NewReader(test.in), 0, nil)
		obj, err := s.ReadObject()
		if err != nil {
			t.Errorf("ReadObject(%q): %v", test.in, err)
			continue
		}
		if d := cmp.Diff(test.out, obj); d != "" {
			t.Errorf("ReadObject(%q) mismatch (-want +got):\n%s", test.in, d)
		}
	}
}

func FuzzReadObject(f *testing.F) {
	f.Add("null")
	f.Add("[1 2 R 3]")
	f.Add("<</Type/Catalog/Pages 1 0 R>>")
	f.Add("(string with \\(escapes\\))")
	f.Add("<FEFF00480069>")
	f.Fuzz(func(t *testing.T, in string) {
		s := newScanner(strings.NewReader(in), 0, nil)
		obj1, err := s.ReadObject()
		if err != nil {
			return
		}
		if _, isStream := obj1.(*Stream); isStream {
			return
		}

		enc := format(obj1)
		s = newScanner(strings.NewReader(enc), 0, nil)
		obj2, err := s.ReadObject()
		if err != nil {
			t.Fatalf("cannot re-read %q: %v", enc, err)
		}
		if d := cmp.Diff(obj1, obj2); d != "" {
			t.Errorf("%q did not round-trip (-first +second):\n%s", enc, d)
		}
	})
}
