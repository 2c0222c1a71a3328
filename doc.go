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

// Package pdfvt stamps and checks PDF/VT conformance metadata.
//
// PDF/VT (ISO 16612-2) is a family of PDF subsets for variable and
// transactional printing.  A conforming file identifies itself in three
// places: a GTS_PDFVTVersion entry in the document catalog, the tagged
// content structure flag, and an XMP metadata packet.  The
// [MetadataWriter] writes all three through a PDF writer, and the
// [Checker] inspects a file and reports which of them are present and
// whether the file's declared PDF version is allowed for the conformance
// level it claims.
//
// The package works on the metadata level only.  Page content, fonts,
// images and color handling are outside its scope; it talks to the
// underlying PDF container through the narrow [Author] and [Document]
// interfaces, implemented by the pdffile subpackage.
package pdfvt
