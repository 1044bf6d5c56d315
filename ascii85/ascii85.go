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

// Package ascii85 implements the ASCII85Decode filter.
package ascii85

import (
	"bufio"
	"errors"
	"io"
)

// Decode returns a reader which decodes ASCII base-85 data read from r.
// Decoding stops at the end-of-data marker "~>".
func Decode(r io.Reader) io.Reader {
	return &reader{r: bufio.NewReader(r)}
}

type reader struct {
	r        *bufio.Reader
	err      error
	v        uint32
	k        int
	leftover []byte
	out      [4]byte
}

func (r *reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	for n < len(p) {
		if len(r.leftover) > 0 {
			m := copy(p[n:], r.leftover)
			r.leftover = r.leftover[m:]
			n += m
			continue
		}
		if r.err != nil {
			return n, r.err
		}

		c, err := r.r.ReadByte()
		if err == io.EOF {
			// a missing end marker is tolerated
			r.finish()
			r.err = io.EOF
			continue
		} else if err != nil {
			r.err = err
			continue
		}

		switch {
		case isSpace[c]:
			continue
		case c == 'z' && r.k == 0:
			r.leftover = append(r.out[:0], 0, 0, 0, 0)
		case c == '~':
			c2, err := r.r.ReadByte()
			if err != nil && err != io.EOF || err == nil && c2 != '>' {
				r.err = errors.New("invalid end marker in ASCII85 stream")
				continue
			}
			r.finish()
			r.err = io.EOF
		case c >= '!' && c <= 'u':
			r.v = r.v*85 + uint32(c-'!')
			r.k++
			if r.k == 5 {
				v := r.v
				r.leftover = append(r.out[:0], byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
				r.v = 0
				r.k = 0
			}
		default:
			r.err = errors.New("invalid character in ASCII85 stream")
		}
	}
	return n, nil
}

// finish decodes a final, incomplete group of digits.
func (r *reader) finish() {
	if r.k < 2 {
		r.k = 0
		r.v = 0
		return
	}
	k := r.k
	v := r.v
	for i := k; i < 5; i++ {
		v = v*85 + 84
	}
	full := [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	r.leftover = append(r.out[:0], full[:k-1]...)
	r.v = 0
	r.k = 0
}

var isSpace = [256]bool{
	0:  true,
	9:  true,
	10: true,
	12: true,
	13: true,
	32: true,
}
