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

// Package runlength implements the RunLengthDecode filter.
package runlength

import (
	"bufio"
	"io"
)

// Decode returns a reader which decodes run-length encoded data.
// A length byte of 128 marks the end of data.
func Decode(r io.Reader) io.Reader {
	return &reader{br: bufio.NewReader(r)}
}

type reader struct {
	br      *bufio.Reader
	err     error
	literal bool
	count   int
	value   byte
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}

	for len(p) > 0 {
		if r.count > 0 {
			count := min(r.count, len(p))
			if r.literal {
				k, err := io.ReadFull(r.br, p[:count])
				n += k
				r.count -= k
				p = p[k:]
				if err != nil {
					if err == io.EOF {
						err = io.ErrUnexpectedEOF
					}
					r.err = err
					return n, err
				}
			} else {
				for i := range count {
					p[i] = r.value
				}
				n += count
				r.count -= count
				p = p[count:]
			}
			continue
		}

		length, err := r.br.ReadByte()
		if err != nil {
			// a missing end-of-data marker is tolerated
			r.err = err
			if err == io.EOF && n > 0 {
				err = nil
			}
			return n, err
		}

		switch {
		case length == 128:
			r.err = io.EOF
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		case length < 128:
			r.count = int(length) + 1
			r.literal = true
		default:
			r.count = 257 - int(length)
			b, err := r.br.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				r.err = err
				return n, err
			}
			r.literal = false
			r.value = b
		}
	}

	return n, nil
}
