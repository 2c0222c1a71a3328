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
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader represents a PDF file opened for reading.  Use Open or NewReader to
// create a Reader.
type Reader struct {
	// Version is the PDF version from the header comment at the start of
	// the file.
	Version Version

	size int64
	r    io.ReaderAt

	xref    map[int]*xRefEntry
	trailer Dict
	catalog Dict

	level int
}

// Open opens the named PDF file for reading.  After use, Close must be
// called to release the underlying file.
func Open(fname string) (*Reader, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}
	r, err := NewReader(fd, fi.Size())
	if err != nil {
		fd.Close()
		return nil, err
	}
	return r, nil
}

// NewReader creates a new Reader from an io.ReaderAt.
func NewReader(data io.ReaderAt, size int64) (*Reader, error) {
	r := &Reader{
		size: size,
		r:    data,
	}

	s := r.scannerAt(0)
	version, err := s.readHeaderVersion()
	if err != nil {
		return nil, err
	}
	r.Version = version

	xref, trailer, err := r.readXRef()
	if err != nil {
		return nil, err
	}
	r.xref = xref
	r.trailer = trailer

	if _, ok := trailer["Encrypt"]; ok {
		return nil, &MalformedFileError{
			Err: errors.New("encrypted files are not supported"),
		}
	}

	catalog, err := r.getDict(trailer["Root"])
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, &MalformedFileError{
			Err: errors.New("missing document catalog"),
		}
	}
	r.catalog = catalog

	return r, nil
}

// Close closes the file underlying the Reader.  This call only has an effect
// if the io.ReaderAt passed to NewReader has a Close method, as is the case
// for Readers created with Open.
func (r *Reader) Close() error {
	closer, ok := r.r.(io.Closer)
	if ok {
		return closer.Close()
	}
	return nil
}

// DeclaredVersion returns the PDF version declared in the file header,
// normalized to the "major.minor" form.
func (r *Reader) DeclaredVersion() string {
	s, err := r.Version.ToString()
	if err != nil {
		// cannot happen, NewReader rejects unknown versions
		return ""
	}
	return s
}

// CatalogEntry looks up the given key in the document catalog and returns
// its value as a text string.  The second return value reports whether the
// entry is present.
func (r *Reader) CatalogEntry(key string) (string, bool, error) {
	obj, err := r.Resolve(r.catalog[Name(key)])
	if err != nil {
		return "", false, err
	}
	switch x := obj.(type) {
	case nil:
		return "", false, nil
	case String:
		return x.AsTextString(), true, nil
	case Name:
		return string(x), true, nil
	default:
		return "", false, &MalformedFileError{
			Err: fmt.Errorf("wrong type %T for catalog entry %q", obj, key),
		}
	}
}

// StructureFlag returns the value of the /MarkInfo /Marked flag in the
// document catalog, together with whether the flag is present at all.
func (r *Reader) StructureFlag() (value bool, present bool, err error) {
	obj, err := r.Resolve(r.catalog["MarkInfo"])
	if err != nil {
		return false, false, err
	}
	markInfo, ok := obj.(Dict)
	if !ok {
		if obj != nil {
			return false, false, &MalformedFileError{
				Err: fmt.Errorf("wrong type %T for /MarkInfo", obj),
			}
		}
		return false, false, nil
	}

	marked, err := r.Resolve(markInfo["Marked"])
	if err != nil {
		return false, false, err
	}
	flag, ok := marked.(Bool)
	if !ok {
		return false, false, nil
	}
	return bool(flag), true, nil
}

// MetadataPacket returns the decoded contents of the document level
// metadata stream, or nil if the document has none.
func (r *Reader) MetadataPacket() ([]byte, error) {
	obj, err := r.Resolve(r.catalog["Metadata"])
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	stream, ok := obj.(*Stream)
	if !ok {
		return nil, &MalformedFileError{
			Err: fmt.Errorf("wrong type %T for /Metadata", obj),
		}
	}
	decoded, err := stream.Decode(r.Resolve)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(decoded)
}

// Resolve resolves references to indirect objects.
//
// If obj is of type *Reference, the function loads the corresponding object
// from the file and returns the result.  Otherwise, obj is returned
// unchanged.
func (r *Reader) Resolve(obj Object) (Object, error) {
	return r.doGet(obj, true)
}

func (r *Reader) doGet(obj Object, canStream bool) (Object, error) {
	ref, ok := obj.(*Reference)
	if !ok {
		return obj, nil
	}

	entry := r.xref[ref.Number]
	if entry.IsFree() || entry.Generation != ref.Generation {
		return nil, nil
	}

	if entry.InStream != nil {
		if !canStream {
			return nil, &MalformedFileError{
				Err: errors.New("object streams inside streams not allowed"),
			}
		}
		return r.getFromObjectStream(ref.Number, entry.InStream)
	}

	s := r.scannerAt(entry.Pos)
	fileObj, fileRef, err := s.ReadIndirectObject()
	if err != nil {
		return nil, err
	}

	if *ref != *fileRef {
		return nil, &MalformedFileError{
			Pos: entry.Pos,
			Err: errors.New("xref corrupted"),
		}
	}

	return fileObj, nil
}

type objStm struct {
	s   *scanner
	idx []stmObj
}

type stmObj struct {
	number, offs int
}

func (r *Reader) objStmScanner(stream *Stream, errPos int64) (*objStm, error) {
	N, ok := stream.Dict["N"].(Integer)
	if !ok || N < 0 || N > 10000 {
		return nil, &MalformedFileError{
			Pos: errPos,
			Err: errors.New("no valid /N for ObjStm"),
		}
	}
	n := int(N)

	decoded, err := stream.Decode(r.Resolve)
	if err != nil {
		return nil, &MalformedFileError{
			Pos: errPos,
			Err: err,
		}
	}
	s := newScanner(decoded, 0, r.safeGetInt)

	idx := make([]stmObj, n)
	for i := 0; i < n; i++ {
		no, err := s.ReadInteger()
		if err != nil {
			return nil, err
		}
		err = s.SkipWhiteSpace()
		if err != nil {
			return nil, err
		}
		offs, err := s.ReadInteger()
		if err != nil {
			return nil, err
		}
		err = s.SkipWhiteSpace()
		if err != nil {
			return nil, err
		}
		idx[i].number = int(no)
		idx[i].offs = int(offs)
	}

	first, ok := stream.Dict["First"].(Integer)
	if !ok || first < Integer(s.bytesRead()) {
		return nil, &MalformedFileError{
			Pos: errPos,
			Err: errors.New("no valid /First for ObjStm"),
		}
	}
	for i := range idx {
		idx[i].offs += int(first)
	}

	return &objStm{s: s, idx: idx}, nil
}

func (r *Reader) getFromObjectStream(number int, sRef *Reference) (Object, error) {
	container, err := r.doGet(sRef, false)
	if err != nil {
		return nil, err
	}
	stream, ok := container.(*Stream)
	if !ok {
		return nil, &MalformedFileError{
			Err: errors.New("wrong type for object stream"),
		}
	}

	contents, err := r.objStmScanner(stream, 0)
	if err != nil {
		return nil, err
	}

	found := false
	for _, info := range contents.idx {
		if info.number == number {
			err = contents.s.Discard(int64(info.offs) - contents.s.bytesRead())
			if err != nil {
				return nil, err
			}
			found = true
			break
		}
	}
	if !found {
		return nil, &MalformedFileError{
			Err: errors.New("object missing from stream"),
		}
	}

	return contents.s.ReadObject()
}

// getDict resolves references to indirect objects and makes sure the
// resulting object is a dictionary.
func (r *Reader) getDict(obj Object) (Dict, error) {
	candidate, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, nil
	}
	val, ok := candidate.(Dict)
	if !ok {
		return nil, &MalformedFileError{
			Err: errors.New("wrong type (expected Dict)"),
		}
	}
	return val, nil
}

func (r *Reader) getInt(obj Object) (Integer, error) {
	candidate, err := r.Resolve(obj)
	if err != nil {
		return 0, err
	}
	val, ok := candidate.(Integer)
	if !ok {
		return 0, &MalformedFileError{
			Err: errors.New("wrong type (expected Integer)"),
		}
	}
	return val, nil
}

func (r *Reader) safeGetInt(obj Object) (Integer, error) {
	if x, ok := obj.(Integer); ok {
		return x, nil
	}

	if r.level > 2 {
		return 0, &MalformedFileError{
			Err: errors.New("resolution depth for /Length exceeded"),
		}
	}
	r.level++
	val, err := r.getInt(obj)
	r.level--
	return val, err
}

func (r *Reader) scannerAt(pos int64) *scanner {
	return newScanner(io.NewSectionReader(r.r, pos, r.size-pos), pos,
		r.safeGetInt)
}
