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

import "seehuhn.de/go/xmp"

// vtIdentification is the XMP namespace for PDF/VT identification.
// See ISO 16612-2, Annex A.
type vtIdentification struct {
	_ xmp.Namespace `xmp:"http://www.npes.org/pdfvt/ns/id/"`
	_ xmp.Prefix    `xmp:"pdfvtid"`

	Conformance xmp.Text `xmp:"GTS_PDFVTVersion"`
}

// xIdentification is the XMP namespace for PDF/X identification.
// See ISO 15930.
type xIdentification struct {
	_ xmp.Namespace `xmp:"http://www.npes.org/pdfx/ns/id/"`
	_ xmp.Prefix    `xmp:"pdfxid"`

	Conformance xmp.Text `xmp:"GTS_PDFXVersion"`
}

// adobePDF is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type adobePDF struct {
	_ xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_ xmp.Prefix    `xmp:"pdf"`

	Keywords   xmp.Text
	PDFVersion xmp.Text
	Producer   xmp.AgentName
}
