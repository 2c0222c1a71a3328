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

// Pdfvt-check checks PDF files for PDF/VT compliance.
//
// Usage:
//
//	pdfvt-check [-json] [-variant level] file.pdf ...
//
// The exit status is 0 if all files are compliant, 1 if at least one file
// is not, and 2 if a file could not be checked at all.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	j "github.com/goccy/go-json"

	pdfvt "github.com/heungwook/PDFVT"
)

func main() {
	log.SetFlags(0)

	jsonFlag := flag.Bool("json", false, "print results as JSON")
	listFlag := flag.Bool("list", false, "list the known conformance levels and exit")
	variantFlag := flag.String("variant", "", `require a specific conformance level ("PDF/VT-1" or "PDF/VT-3")`)
	flag.Parse()

	if *listFlag {
		for _, p := range pdfvt.DefaultRegistry().All() {
			fmt.Printf("%s (based on %s, requires %s)\n", p.Marker, p.Base, p.Rule)
			for _, feature := range p.Features {
				fmt.Println("  - " + feature)
			}
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: pdfvt-check [-json] [-variant level] file.pdf ...")
		os.Exit(2)
	}

	reg := pdfvt.DefaultRegistry()
	checker := pdfvt.NewChecker(reg)

	want := pdfvt.VariantUnknown
	if *variantFlag != "" {
		p, ok := reg.ByMarker(*variantFlag)
		if !ok {
			log.Fatalf("unknown conformance level %q (known: %s)",
				*variantFlag, strings.Join(reg.Markers(), ", "))
		}
		want = p.Variant
	}

	exitCode := 0
	for _, fname := range flag.Args() {
		var res *pdfvt.Result
		var err error
		if want != pdfvt.VariantUnknown {
			res, err = checker.CheckVariant(fname, want)
		} else {
			res, err = checker.Check(fname)
		}
		if err != nil {
			log.Printf("%s: %v", fname, err)
			exitCode = 2
			continue
		}

		if *jsonFlag {
			printJSON(fname, res)
		} else {
			printText(fname, res)
		}
		if !res.Compliant && exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func printJSON(fname string, res *pdfvt.Result) {
	type report struct {
		File string `json:"file"`
		*pdfvt.Result
	}
	enc := j.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	err := enc.Encode(&report{File: fname, Result: res})
	if err != nil {
		log.Fatal(err)
	}
}

func printText(fname string, res *pdfvt.Result) {
	verdict := "not compliant"
	if res.Compliant {
		verdict = "compliant"
	}
	fmt.Printf("%s: %s (%s, PDF %s)\n",
		fname, verdict, res.Variant, res.DeclaredVersion)
	for _, issue := range res.Issues {
		fmt.Println("  - " + issue)
	}
}
