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
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/xmp"
)

// conformanceKey is the document catalog entry holding the PDF/VT
// conformance marker.
const conformanceKey = "GTS_PDFVTVersion"

// Author is the part of a PDF writer used for stamping conformance
// metadata.  *pdffile.Writer implements this interface.
type Author interface {
	// SetInfoField sets an entry in the document information dictionary.
	SetInfoField(key, value string)

	// SetCatalogEntry sets an entry in the document catalog.
	SetCatalogEntry(key, value string)

	// SetStructureFlag records whether the document declares tagged
	// content structure.
	SetStructureFlag(marked bool)

	// AttachMetadataPacket attaches the given bytes as the document
	// level metadata stream.
	AttachMetadataPacket(data []byte) error
}

// DocInfo holds entries for the document information dictionary.  Empty
// fields are not written.
type DocInfo struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// MetadataWriter stamps PDF/VT conformance metadata into a document.
type MetadataWriter struct {
	profile *Profile

	// Info is copied into the document information dictionary.
	Info DocInfo

	// Producer, if non-empty, is recorded in the information dictionary
	// and the metadata packet.
	Producer string
}

// NewMetadataWriter creates a MetadataWriter for the given conformance
// level.
func NewMetadataWriter(p *Profile) *MetadataWriter {
	return &MetadataWriter{profile: p}
}

// Profile returns the conformance level the writer stamps.
func (mw *MetadataWriter) Profile() *Profile {
	return mw.profile
}

// Stamp writes the conformance marker to the document catalog, enables the
// tagged content structure flag, and attaches a metadata packet carrying
// the marker.  All three are required for the document to pass a
// compliance check.
func (mw *MetadataWriter) Stamp(doc Author) error {
	p := mw.profile

	doc.SetCatalogEntry(conformanceKey, p.Marker)
	doc.SetStructureFlag(true)

	if mw.Info.Title != "" {
		doc.SetInfoField("Title", mw.Info.Title)
	}
	if mw.Info.Author != "" {
		doc.SetInfoField("Author", mw.Info.Author)
	}
	if mw.Info.Subject != "" {
		doc.SetInfoField("Subject", mw.Info.Subject)
	}
	if mw.Info.Keywords != "" {
		doc.SetInfoField("Keywords", mw.Info.Keywords)
	}
	if mw.Producer != "" {
		doc.SetInfoField("Producer", mw.Producer)
	}

	data, err := mw.packet()
	if err != nil {
		return err
	}
	return doc.AttachMetadataPacket(data)
}

// packet builds the XMP metadata packet for the conformance level.
func (mw *MetadataWriter) packet() ([]byte, error) {
	p := mw.profile

	id := &vtIdentification{
		Conformance: xmp.NewText(p.Marker),
	}
	models := []any{id}

	pdfModel := &adobePDF{}
	usePDFModel := false
	if mw.Producer != "" {
		pdfModel.Producer = xmp.NewAgentName(mw.Producer)
		usePDFModel = true
	}
	if mw.Info.Keywords != "" {
		pdfModel.Keywords = xmp.NewText(mw.Info.Keywords)
		usePDFModel = true
	}

	prefixes := maps.Keys(p.ExtraPacketNS)
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		val := p.ExtraPacketNS[prefix]
		switch prefix {
		case "pdfxid":
			models = append(models, &xIdentification{
				Conformance: xmp.NewText(val),
			})
		case "pdf":
			pdfModel.PDFVersion = xmp.NewText(val)
			usePDFModel = true
		default:
			return nil, fmt.Errorf("unsupported packet namespace %q", prefix)
		}
	}
	if usePDFModel {
		models = append(models, pdfModel)
	}

	packet := xmp.NewPacket()
	packet.Set(models...)

	buf := &bytes.Buffer{}
	err := packet.Write(buf, nil)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
