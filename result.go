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

import "fmt"

// Result reports the outcome of a compliance check.
type Result struct {
	// Compliant is true if the file carries the catalog conformance
	// marker and the structure flag, and its declared PDF version is
	// allowed for the claimed conformance level.
	Compliant bool `json:"compliant"`

	// Variant is the conformance level the file claims, or
	// VariantUnknown if no known marker was found.
	Variant Variant `json:"variant"`

	// Marker is the conformance marker the check resolved, from the
	// document catalog or, failing that, from the metadata packet.
	Marker string `json:"marker,omitempty"`

	// DeclaredVersion is the PDF version from the file header.
	DeclaredVersion string `json:"declaredVersion,omitempty"`

	// HasCatalogMarker is true if the document catalog contains a
	// GTS_PDFVTVersion entry.
	HasCatalogMarker bool `json:"hasCatalogMarker"`

	// HasStructureFlag is true if the catalog declares tagged content
	// structure.
	HasStructureFlag bool `json:"hasStructureFlag"`

	// HasPacketMarker is true if the metadata packet contains the
	// resolved conformance marker.  The packet is evidence only and does
	// not gate the verdict.
	HasPacketMarker bool `json:"hasPacketMarker"`

	// Issues lists everything found wrong with the file, in the order
	// the checks ran.
	Issues []string `json:"issues,omitempty"`
}

func (res *Result) addIssue(format string, args ...any) {
	res.Issues = append(res.Issues, fmt.Sprintf(format, args...))
}
