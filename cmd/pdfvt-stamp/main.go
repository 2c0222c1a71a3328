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

// Pdfvt-stamp writes a PDF file carrying PDF/VT conformance metadata.
//
// Usage:
//
//	pdfvt-stamp [-variant level] [-title text] [-author text] out.pdf
//
// The generated file contains a single empty page; its purpose is to show
// and test the metadata stamping, not to produce printable content.
package main

import (
	"flag"
	"log"
	"strings"

	pdfvt "github.com/heungwook/PDFVT"
	"github.com/heungwook/PDFVT/pdffile"
)

func main() {
	log.SetFlags(0)

	variantFlag := flag.String("variant", "PDF/VT-1", "conformance level to stamp")
	titleFlag := flag.String("title", "", "document title")
	authorFlag := flag.String("author", "", "document author")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: pdfvt-stamp [options] out.pdf")
	}
	fname := flag.Arg(0)

	reg := pdfvt.DefaultRegistry()
	profile, ok := reg.ByMarker(*variantFlag)
	if !ok {
		log.Fatalf("unknown conformance level %q (known: %s)",
			*variantFlag, strings.Join(reg.Markers(), ", "))
	}

	// use the oldest PDF version the conformance level allows
	ver := pdffile.V2_0
	if profile.Rule.Allows("1.6") {
		ver = pdffile.V1_6
	}

	w, err := pdffile.Create(fname, ver)
	if err != nil {
		log.Fatal(err)
	}
	w.AddPage(595, 842)

	mw := pdfvt.NewMetadataWriter(profile)
	mw.Info.Title = *titleFlag
	mw.Info.Author = *authorFlag
	mw.Producer = "pdfvt-stamp"
	err = mw.Stamp(w)
	if err != nil {
		log.Fatal(err)
	}

	err = w.Close()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (PDF %s, %s)", fname, w.Version(), profile.Marker)
}
