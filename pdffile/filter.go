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
	"compress/zlib"
	"fmt"
	"io"
)

// applyFilter returns a reader which decodes the stream filter given by name.
// Only FlateDecode is supported; metadata streams written by this package are
// stored unfiltered, but cross reference streams in files from other
// producers are almost always Flate compressed.
func applyFilter(r io.Reader, name Name, param Object) io.Reader {
	switch string(name) {
	case "FlateDecode":
		params := map[string]int{
			"Predictor":        1,
			"Colors":           1,
			"BitsPerComponent": 8,
			"Columns":          1,
		}
		if pDict, ok := param.(Dict); ok {
			for key := range params {
				if val, ok := pDict[Name(key)].(Integer); ok {
					params[key] = int(val)
				}
			}
		}
		zr, err := zlib.NewReader(r)
		if err != nil {
			return &errorReader{err}
		}
		switch params["Predictor"] {
		case 1:
			return zr
		case 12:
			columns := params["Columns"]
			return &pngUpReader{
				r:    zr,
				hist: make([]byte, 1+columns),
				tmp:  make([]byte, 1+columns),
				pend: []byte{},
			}
		default:
			return &errorReader{fmt.Errorf("unsupported predictor %d",
				params["Predictor"])}
		}
	default:
		return &errorReader{fmt.Errorf("unsupported filter %q", name)}
	}
}

type pngUpReader struct {
	r    io.Reader
	hist []byte
	tmp  []byte
	pend []byte
}

func (r *pngUpReader) Read(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		if len(r.pend) > 0 {
			m := copy(b, r.pend)
			n += m
			b = b[m:]
			r.pend = r.pend[m:]
			continue
		}
		_, err := io.ReadFull(r.r, r.tmp)
		if err != nil {
			return n, err
		}
		if r.tmp[0] != 2 {
			return n, fmt.Errorf("malformed PNG-Up encoding")
		}
		for i, b := range r.tmp {
			r.hist[i] += b
		}
		r.pend = r.hist[1:]
	}
	return n, nil
}

type errorReader struct {
	err error
}

func (e *errorReader) Read([]byte) (int, error) {
	return 0, e.err
}
