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

// Package asciihex implements the ASCIIHexDecode filter.
package asciihex

import (
	"bufio"
	"fmt"
	"io"
)

// Decode decodes data that has been encoded in ASCII hexadecimal form.
// The data ends at the first ">" character; an odd number of digits is
// completed with a trailing 0.
func Decode(r io.Reader) io.Reader {
	return &reader{r: bufio.NewReader(r)}
}

type reader struct {
	r   *bufio.Reader
	err error
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}

	haveHigh := false
	var high byte
readLoop:
	for n < len(p) {
		c, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF && haveHigh {
				p[n] = high << 4
				n++
				haveHigh = false
			}
			r.err = err
			break readLoop
		}

		var b byte
		switch {
		case c >= '0' && c <= '9':
			b = c - '0'
		case c >= 'A' && c <= 'F':
			b = c - 'A' + 10
		case c >= 'a' && c <= 'f':
			b = c - 'a' + 10
		case c == 0 || c == 9 || c == 10 || c == 12 || c == 13 || c == 32:
			continue readLoop
		case c == '>':
			if haveHigh {
				p[n] = high << 4
				n++
				haveHigh = false
			}
			r.err = io.EOF
			break readLoop
		default:
			r.err = fmt.Errorf("invalid hex character %q", c)
			break readLoop
		}

		if haveHigh {
			p[n] = high<<4 | b
			n++
			haveHigh = false
		} else {
			high = b
			haveHigh = true
		}
	}

	if n > 0 && r.err == io.EOF {
		return n, nil
	}
	return n, r.err
}
