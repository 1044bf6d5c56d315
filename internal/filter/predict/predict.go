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

// Package predict undoes the PNG and TIFF predictors which can be applied
// before Flate or LZW compression.
package predict

import (
	"errors"
	"fmt"
	"io"
)

// Params describes the /DecodeParms of a predicted stream.
type Params struct {
	// Predictor is 1 (none), 2 (TIFF) or 10-15 (PNG).
	Predictor int

	// Colors is the number of colour components per sample.
	Colors int

	// BitsPerComponent is 1, 2, 4, 8 or 16.
	BitsPerComponent int

	// Columns is the number of samples per row.
	Columns int
}

// Validate checks that the parameters are in range.
func (p *Params) Validate() error {
	switch p.Predictor {
	case 1, 2, 10, 11, 12, 13, 14, 15:
	default:
		return fmt.Errorf("unsupported predictor %d", p.Predictor)
	}
	if p.Predictor == 1 {
		return nil
	}
	switch p.BitsPerComponent {
	case 1, 2, 4, 8, 16:
	default:
		return fmt.Errorf("invalid BitsPerComponent %d", p.BitsPerComponent)
	}
	if p.Colors < 1 || p.Colors > 256 {
		return fmt.Errorf("invalid Colors %d", p.Colors)
	}
	if p.Columns < 1 || p.Columns > 1<<20 {
		return fmt.Errorf("invalid Columns %d", p.Columns)
	}
	if p.Predictor == 2 && p.BitsPerComponent != 8 {
		return errors.New("TIFF predictor only supported for 8 bits per component")
	}
	return nil
}

func (p *Params) bytesPerPixel() int {
	return max(1, (p.Colors*p.BitsPerComponent+7)/8)
}

func (p *Params) bytesPerRow() int {
	return (p.Colors*p.BitsPerComponent*p.Columns + 7) / 8
}

// NewReader returns a reader which removes the predictor from the data
// read from r.
func NewReader(r io.Reader, p *Params) (io.Reader, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Predictor == 1 {
		return r, nil
	}

	n := p.bytesPerRow()
	res := &reader{
		r:   r,
		p:   p,
		bpp: p.bytesPerPixel(),
		cur: make([]byte, n),
		up:  make([]byte, n),
	}
	if p.Predictor >= 10 {
		res.in = make([]byte, n+1)
	} else {
		res.in = make([]byte, n)
	}
	return res, nil
}

type reader struct {
	r   io.Reader
	p   *Params
	bpp int

	in      []byte
	cur, up []byte
	pending []byte
	err     error
}

func (r *reader) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		if len(r.pending) > 0 {
			k := copy(buf[n:], r.pending)
			r.pending = r.pending[k:]
			n += k
			continue
		}
		if r.err != nil {
			return n, r.err
		}

		k, err := io.ReadFull(r.r, r.in)
		if err == io.ErrUnexpectedEOF {
			// decode the final, partial row
			err = nil
		}
		if k == 0 && err == nil {
			err = io.EOF
		}
		if k > 0 {
			if derr := r.decodeRow(r.in[:k]); derr != nil {
				err = derr
			}
		}
		if err != nil {
			r.err = err
		}
	}
	return n, nil
}

func (r *reader) decodeRow(in []byte) error {
	if r.p.Predictor == 2 {
		row := r.cur[:len(in)]
		copy(row, in)
		for i := r.bpp; i < len(row); i++ {
			row[i] += row[i-r.bpp]
		}
		r.pending = row
		return nil
	}

	tag := in[0]
	data := in[1:]
	row := r.cur[:len(data)]
	for i, x := range data {
		var left, up, upLeft byte
		if i >= r.bpp {
			left = row[i-r.bpp]
			upLeft = r.up[i-r.bpp]
		}
		up = r.up[i]
		switch tag {
		case 0:
			row[i] = x
		case 1:
			row[i] = x + left
		case 2:
			row[i] = x + up
		case 3:
			row[i] = x + byte((int(left)+int(up))/2)
		case 4:
			row[i] = x + paeth(left, up, upLeft)
		default:
			return fmt.Errorf("invalid PNG filter type %d", tag)
		}
	}
	r.cur, r.up = r.up, r.cur
	r.pending = r.up[:len(data)]
	return nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
