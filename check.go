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
	"errors"
	"io/fs"

	"seehuhn.de/go/xmp"

	"github.com/heungwook/PDFVT/pdffile"
)

// Document is the part of a PDF reader needed for compliance checking.
// *pdffile.Reader implements this interface.
type Document interface {
	// DeclaredVersion returns the PDF version from the file header, in
	// "major.minor" form.
	DeclaredVersion() string

	// CatalogEntry looks up a document catalog entry by key.  The second
	// return value reports whether the entry is present.
	CatalogEntry(key string) (string, bool, error)

	// StructureFlag returns the tagged content structure flag and
	// whether it is present.
	StructureFlag() (value bool, present bool, err error)

	// MetadataPacket returns the document level metadata stream, or nil
	// if there is none.
	MetadataPacket() ([]byte, error)

	Close() error
}

// Checker checks PDF files for PDF/VT compliance.
type Checker struct {
	registry *Registry
	open     func(fname string) (Document, error)
}

// NewChecker creates a Checker using the given registry of conformance
// levels.  If reg is nil, the default registry is used.
func NewChecker(reg *Registry) *Checker {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Checker{
		registry: reg,
		open: func(fname string) (Document, error) {
			r, err := pdffile.Open(fname)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	}
}

// Check checks the named file for PDF/VT compliance.
//
// An error is returned only if the file does not exist.  All other
// problems, including files which cannot be parsed as PDF, are reported as
// issues in the Result with Compliant set to false.
func (c *Checker) Check(fname string) (*Result, error) {
	doc, err := c.open(fname)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		res := &Result{}
		res.addIssue("cannot read file: %v", err)
		return res, nil
	}
	defer doc.Close()

	return c.CheckDocument(doc), nil
}

// CheckVariant checks the named file for compliance with one specific
// conformance level.  The check algorithm is the same as for Check; a file
// which claims a different level fails with an additional issue.
func (c *Checker) CheckVariant(fname string, want Variant) (*Result, error) {
	res, err := c.Check(fname)
	if err != nil {
		return nil, err
	}
	if res.Variant != want {
		res.addIssue("file claims conformance level %s, want %s",
			res.Variant, want)
		res.Compliant = false
	}
	return res, nil
}

// CheckDocument runs the compliance check on an already opened document.
// The document is not closed.
func (c *Checker) CheckDocument(doc Document) *Result {
	res := &Result{}
	res.DeclaredVersion = doc.DeclaredVersion()

	catalogMarker := ""
	val, ok, err := doc.CatalogEntry(conformanceKey)
	if err != nil {
		res.addIssue("cannot read catalog entry %s: %v", conformanceKey, err)
	} else if ok {
		catalogMarker = val
		res.HasCatalogMarker = true
	} else {
		res.addIssue("document catalog has no %s entry", conformanceKey)
	}

	marked, present, err := doc.StructureFlag()
	switch {
	case err != nil:
		res.addIssue("cannot read structure flag: %v", err)
	case !present:
		res.addIssue("document catalog has no /MarkInfo /Marked entry")
	case !marked:
		res.addIssue("tagged content structure is declared but disabled")
	default:
		res.HasStructureFlag = true
	}

	var packetData []byte
	data, err := doc.MetadataPacket()
	if err != nil {
		res.addIssue("cannot read metadata packet: %v", err)
	} else if data == nil {
		res.addIssue("document has no metadata packet")
	} else {
		packetData = data
	}

	// The catalog entry is authoritative; the packet serves as a fallback
	// for files which were stamped in the metadata only.
	marker := catalogMarker
	if marker == "" && packetData != nil {
		marker = c.packetMarker(packetData)
	}
	res.Marker = marker

	// Once a marker is established, the packet only counts as evidence if
	// it is consistent with it.
	if packetData != nil {
		if marker != "" && bytes.Contains(packetData, []byte(marker)) {
			res.HasPacketMarker = true
		} else {
			res.addIssue("metadata packet does not contain the conformance marker")
		}
	}

	ruleOK := false
	if marker == "" {
		res.addIssue("no conformance marker found")
	} else {
		p, known := c.registry.ByMarker(marker)
		if !known {
			res.addIssue("unknown conformance marker %q", marker)
		} else {
			res.Variant = p.Variant
			if p.Rule.Allows(res.DeclaredVersion) {
				ruleOK = true
			} else {
				res.addIssue("%s requires %s, but the file declares PDF %s",
					p.Marker, p.Rule, res.DeclaredVersion)
			}
		}
	}

	res.Compliant = ruleOK && res.HasCatalogMarker && res.HasStructureFlag
	return res
}

// packetMarker extracts the conformance marker from a metadata packet, for
// files which carry no catalog entry.  If the packet cannot be parsed as
// XMP, or parses but carries no GTS_PDFVTVersion property, the raw bytes
// are scanned for the known markers instead, longest marker first.
func (c *Checker) packetMarker(data []byte) string {
	packet, err := xmp.Read(bytes.NewReader(data))
	if err == nil {
		var id vtIdentification
		packet.Get(&id)
		if !id.Conformance.IsZero() {
			return id.Conformance.V
		}
	}

	for _, p := range c.registry.scanOrder() {
		if bytes.Contains(data, []byte(p.Marker)) {
			return p.Marker
		}
	}
	return ""
}
