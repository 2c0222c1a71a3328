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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Writer represents a PDF file open for writing.
//
// Indirect objects are written sequentially as they are added.  The document
// catalog, the information dictionary, the page tree and the cross reference
// table are all emitted in a single pass when Close is called, so that a
// partially stamped document is never left behind as the steady state.
type Writer struct {
	w       *posWriter
	ver     Version
	xref    map[int]*xRefEntry
	nextRef int

	info          Dict
	catalogExtra  Dict
	structureFlag *bool
	metadataRef   *Reference
	pageSizes     [][2]float64

	closed bool
}

// NewWriter prepares a PDF file for writing.  The file header is written
// immediately.
func NewWriter(w io.Writer, ver Version) (*Writer, error) {
	verString, err := ver.ToString()
	if err != nil {
		return nil, err
	}

	pdf := &Writer{
		w:            &posWriter{w: w},
		ver:          ver,
		xref:         make(map[int]*xRefEntry),
		nextRef:      1,
		info:         Dict{},
		catalogExtra: Dict{},
	}
	pdf.xref[0] = &xRefEntry{
		Pos:        -1,
		Generation: 65535,
	}

	_, err = fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", verString)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  If a previous
// file with the same name exists, it is overwritten.  After writing is
// complete, Close must be called to write the trailer and to close the
// underlying file.
func Create(name string, ver Version) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(fd, ver)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return w, nil
}

// Version returns the PDF version the file is being written as.
func (pdf *Writer) Version() Version {
	return pdf.ver
}

// SetInfoField sets an entry in the document information dictionary.  The
// value is stored using the PDF text string encoding.
func (pdf *Writer) SetInfoField(key, value string) {
	pdf.info[Name(key)] = TextString(value)
}

// SetCatalogEntry sets an entry in the document catalog.  The value is
// stored using the PDF text string encoding.
func (pdf *Writer) SetCatalogEntry(key, value string) {
	pdf.catalogExtra[Name(key)] = TextString(value)
}

// SetStructureFlag records whether the document declares tagged content
// structure.  The flag is written as /MarkInfo <</Marked ...>> in the
// document catalog.
func (pdf *Writer) SetStructureFlag(marked bool) {
	pdf.structureFlag = &marked
}

// AttachMetadataPacket attaches the given bytes as the document level
// metadata stream.  The stream is stored without filters, so that
// packet scanners can locate markers in the raw file.
func (pdf *Writer) AttachMetadataPacket(data []byte) error {
	if pdf.closed {
		return ErrClosed
	}

	stream := &Stream{
		Dict: Dict{
			"Type":    Name("Metadata"),
			"Subtype": Name("XML"),
			"Length":  Integer(len(data)),
		},
		R: bytes.NewReader(data),
	}
	ref, err := pdf.WriteIndirect(stream, nil)
	if err != nil {
		return err
	}
	pdf.metadataRef = ref
	return nil
}

// AddPage appends a page with the given media box size to the document.  The
// page has no contents; page layout is outside the scope of this package.
func (pdf *Writer) AddPage(width, height float64) {
	pdf.pageSizes = append(pdf.pageSizes, [2]float64{width, height})
}

// Alloc allocates a number for a new indirect object.
func (pdf *Writer) Alloc() *Reference {
	res := &Reference{
		Number:     pdf.nextRef,
		Generation: 0,
	}
	pdf.nextRef++
	return res
}

// WriteIndirect writes an object to the PDF file, as an indirect object.
// The returned reference can be used to refer to this object from other
// parts of the file.
func (pdf *Writer) WriteIndirect(obj Object, ref *Reference) (*Reference, error) {
	if pdf.closed {
		return nil, ErrClosed
	}

	pos := pdf.w.pos

	if ref == nil {
		ref = pdf.Alloc()
	} else if _, seen := pdf.xref[ref.Number]; seen {
		return nil, errors.New("object already written")
	}

	if obj == nil {
		// missing objects are treated as null
		pos = -1
	} else {
		_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number, ref.Generation)
		if err != nil {
			return nil, err
		}
		err = obj.PDF(pdf.w)
		if err != nil {
			return nil, err
		}
		_, err = pdf.w.Write([]byte("\nendobj\n"))
		if err != nil {
			return nil, err
		}
	}

	pdf.xref[ref.Number] = &xRefEntry{
		Pos:        pos,
		Generation: ref.Generation,
	}
	return ref, nil
}

// Close writes the page tree, the document catalog, the information
// dictionary, the cross reference table and the trailer, and closes the
// underlying io.Writer if it has a Close method.
func (pdf *Writer) Close() error {
	if pdf.closed {
		return ErrClosed
	}

	pagesRef := pdf.Alloc()

	sizes := pdf.pageSizes
	if len(sizes) == 0 {
		// a valid PDF file needs at least one page
		sizes = [][2]float64{{612, 792}}
	}
	var kids Array
	for _, size := range sizes {
		page := Dict{
			"Type":   Name("Page"),
			"Parent": pagesRef,
			"MediaBox": Array{
				Integer(0), Integer(0), Real(size[0]), Real(size[1]),
			},
		}
		ref, err := pdf.WriteIndirect(page, nil)
		if err != nil {
			return err
		}
		kids = append(kids, ref)
	}
	_, err := pdf.WriteIndirect(Dict{
		"Type":  Name("Pages"),
		"Kids":  kids,
		"Count": Integer(len(kids)),
	}, pagesRef)
	if err != nil {
		return err
	}

	catalog := Dict{
		"Type":  Name("Catalog"),
		"Pages": pagesRef,
	}
	for key, val := range pdf.catalogExtra {
		catalog[key] = val
	}
	if pdf.structureFlag != nil {
		catalog["MarkInfo"] = Dict{
			"Marked": Bool(*pdf.structureFlag),
		}
	}
	if pdf.metadataRef != nil {
		catalog["Metadata"] = pdf.metadataRef
	}
	catalogRef, err := pdf.WriteIndirect(catalog, nil)
	if err != nil {
		return err
	}

	var infoRef *Reference
	if len(pdf.info) > 0 {
		infoRef, err = pdf.WriteIndirect(pdf.info, nil)
		if err != nil {
			return err
		}
	}

	xRefDict := Dict{
		"Size": Integer(pdf.nextRef),
		"Root": catalogRef,
	}
	if infoRef != nil {
		xRefDict["Info"] = infoRef
	}

	xRefPos := pdf.w.pos
	err = pdf.writeXRefTable(xRefDict)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return err
	}

	pdf.closed = true

	if closer, ok := pdf.w.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
