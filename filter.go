// seehuhn.de/go/pdfdoc - a library for reading, writing and laying out PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/pdfdoc/ascii85"
	"seehuhn.de/go/pdfdoc/internal/filter/asciihex"
	"seehuhn.de/go/pdfdoc/internal/filter/predict"
	"seehuhn.de/go/pdfdoc/internal/filter/runlength"
	"seehuhn.de/go/pdfdoc/lzw"
)

// Filter represents a PDF stream filter.
//
// Filters which are only supported for reading return [ErrDecodeOnly]
// from Encode.
type Filter interface {
	// Name returns the value used for the filter in the /Filter entry.
	Name() Name

	// Encode returns a writer which encodes data written to it and
	// writes the result to w.  Closing the returned writer must also
	// close w.
	Encode(w io.WriteCloser) (io.WriteCloser, error)

	// Decode returns a reader which decodes data read from r.
	Decode(r io.Reader) (io.Reader, error)
}

// ErrDecodeOnly is returned by filters which cannot be used for writing.
var ErrDecodeOnly = errors.New("filter is only supported for decoding")

// MakeFilter returns the filter for the given /Filter name and
// /DecodeParms dictionary.  The dictionary may be nil.
func MakeFilter(name Name, parms *Dict) (Filter, error) {
	switch name {
	case "FlateDecode", "Fl":
		return &FilterFlate{Params: predictParams(parms)}, nil
	case "LZWDecode", "LZW":
		f := &FilterLZW{Params: predictParams(parms), EarlyChange: true}
		if x, ok := parms.Get("EarlyChange").(Integer); ok && x == 0 {
			f.EarlyChange = false
		}
		return f, nil
	case "ASCII85Decode", "A85":
		return filterASCII85{}, nil
	case "ASCIIHexDecode", "AHx":
		return filterASCIIHex{}, nil
	case "RunLengthDecode", "RL":
		return filterRunLength{}, nil
	default:
		return nil, &FilterError{Filter: name, Err: errors.New("unsupported filter")}
	}
}

func predictParams(parms *Dict) *predict.Params {
	p := &predict.Params{
		Predictor:        1,
		Colors:           1,
		BitsPerComponent: 8,
		Columns:          1,
	}
	get := func(key Name, dst *int) {
		if x, ok := parms.Get(key).(Integer); ok {
			*dst = int(x)
		}
	}
	get("Predictor", &p.Predictor)
	get("Colors", &p.Colors)
	get("BitsPerComponent", &p.BitsPerComponent)
	get("Columns", &p.Columns)
	return p
}

// FilterFlate is the FlateDecode filter.
type FilterFlate struct {
	// Params holds the predictor settings.  Predictors are only
	// supported when decoding.
	Params *predict.Params
}

// Name implements the [Filter] interface.
func (f *FilterFlate) Name() Name { return "FlateDecode" }

// Encode implements the [Filter] interface.
func (f *FilterFlate) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	if f.Params != nil && f.Params.Predictor > 1 {
		return nil, &FilterError{Filter: f.Name(), Err: ErrDecodeOnly}
	}
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	return &closeBoth{zw, w}, nil
}

// Decode implements the [Filter] interface.
func (f *FilterFlate) Decode(r io.Reader) (io.Reader, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, &FilterError{Filter: f.Name(), Err: err}
	}
	return withPredictor(f.Name(), zr, f.Params)
}

// FilterLZW is the LZWDecode filter.
type FilterLZW struct {
	Params      *predict.Params
	EarlyChange bool
}

// Name implements the [Filter] interface.
func (f *FilterLZW) Name() Name { return "LZWDecode" }

// Encode implements the [Filter] interface.
func (f *FilterLZW) Encode(io.WriteCloser) (io.WriteCloser, error) {
	return nil, &FilterError{Filter: f.Name(), Err: ErrDecodeOnly}
}

// Decode implements the [Filter] interface.
func (f *FilterLZW) Decode(r io.Reader) (io.Reader, error) {
	return withPredictor(f.Name(), lzw.NewReader(r, f.EarlyChange), f.Params)
}

func withPredictor(name Name, r io.Reader, p *predict.Params) (io.Reader, error) {
	if p == nil || p.Predictor <= 1 {
		return r, nil
	}
	pr, err := predict.NewReader(r, p)
	if err != nil {
		return nil, &FilterError{Filter: name, Err: err}
	}
	return pr, nil
}

type filterASCII85 struct{}

func (filterASCII85) Name() Name { return "ASCII85Decode" }

func (f filterASCII85) Encode(io.WriteCloser) (io.WriteCloser, error) {
	return nil, &FilterError{Filter: f.Name(), Err: ErrDecodeOnly}
}

func (filterASCII85) Decode(r io.Reader) (io.Reader, error) {
	return ascii85.Decode(r), nil
}

type filterASCIIHex struct{}

func (filterASCIIHex) Name() Name { return "ASCIIHexDecode" }

func (f filterASCIIHex) Encode(io.WriteCloser) (io.WriteCloser, error) {
	return nil, &FilterError{Filter: f.Name(), Err: ErrDecodeOnly}
}

func (filterASCIIHex) Decode(r io.Reader) (io.Reader, error) {
	return asciihex.Decode(r), nil
}

type filterRunLength struct{}

func (filterRunLength) Name() Name { return "RunLengthDecode" }

func (f filterRunLength) Encode(io.WriteCloser) (io.WriteCloser, error) {
	return nil, &FilterError{Filter: f.Name(), Err: ErrDecodeOnly}
}

func (filterRunLength) Decode(r io.Reader) (io.Reader, error) {
	return runlength.Decode(r), nil
}

type closeBoth struct {
	io.WriteCloser
	next io.Closer
}

func (c *closeBoth) Close() error {
	err := c.WriteCloser.Close()
	err2 := c.next.Close()
	if err == nil {
		err = err2
	}
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// filtersOf returns the filters listed in a stream dictionary, in the
// order in which they are applied when decoding.
func filtersOf(dict *Dict) ([]Filter, error) {
	var names []Name
	var parms []*Dict
	switch f := dict.Get("Filter").(type) {
	case nil:
		return nil, nil
	case Name:
		names = []Name{f}
		p, _ := dict.Get("DecodeParms").(*Dict)
		parms = []*Dict{p}
	case Array:
		pa, _ := dict.Get("DecodeParms").(Array)
		for i, x := range f {
			name, ok := x.(Name)
			if !ok {
				return nil, fmt.Errorf("invalid filter %s", Format(x))
			}
			names = append(names, name)
			var p *Dict
			if i < len(pa) {
				p, _ = pa[i].(*Dict)
			}
			parms = append(parms, p)
		}
	default:
		return nil, &TypeMismatchError{Want: "filter name or array", Got: f}
	}

	res := make([]Filter, len(names))
	for i, name := range names {
		f, err := MakeFilter(name, parms[i])
		if err != nil {
			return nil, err
		}
		res[i] = f
	}
	return res, nil
}
