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

// Package lzw implements the LZWDecode filter.
//
// Codes are packed most significant bit first and start with a width of
// 9 bits.  Code 256 clears the table and code 257 marks the end of data.
package lzw

import (
	"bufio"
	"errors"
	"io"
)

const (
	clearCode = 256
	eodCode   = 257
	maxWidth  = 12
)

// NewReader returns a reader which decompresses LZW data read from r.
// If earlyChange is true, the code width is increased one code early,
// as selected by the default /EarlyChange 1 in PDF files.
func NewReader(r io.Reader, earlyChange bool) io.Reader {
	res := &reader{
		r:     bufio.NewReader(r),
		early: earlyChange,
	}
	res.reset()
	return res
}

type reader struct {
	r     *bufio.Reader
	early bool

	bits  uint32
	nBits uint

	width  uint
	prefix [1 << maxWidth]uint16
	suffix [1 << maxWidth]byte
	length [1 << maxWidth]uint16
	next   int
	prev   int

	pending []byte
	buf     []byte
	err     error
}

func (r *reader) reset() {
	r.width = 9
	r.next = eodCode + 1
	r.prev = -1
	for i := 0; i < 256; i++ {
		r.suffix[i] = byte(i)
		r.length[i] = 1
	}
}

func (r *reader) readCode() (int, error) {
	for r.nBits < r.width {
		c, err := r.r.ReadByte()
		if err != nil {
			return 0, err
		}
		r.bits = r.bits<<8 | uint32(c)
		r.nBits += 8
	}
	code := int(r.bits>>(r.nBits-r.width)) & (1<<r.width - 1)
	r.nBits -= r.width
	r.bits &= 1<<r.nBits - 1
	return code, nil
}

// expand writes the string for code into r.buf.
func (r *reader) expand(code int) []byte {
	n := int(r.length[code])
	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	out := r.buf[:n]
	for i := n - 1; i >= 0; i-- {
		out[i] = r.suffix[code]
		code = int(r.prefix[code])
	}
	return out
}

func (r *reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) > 0 {
			m := copy(p[n:], r.pending)
			r.pending = r.pending[m:]
			n += m
			continue
		}
		if r.err != nil {
			return n, r.err
		}
		r.err = r.step()
	}
	return n, nil
}

func (r *reader) step() error {
	code, err := r.readCode()
	if err == io.EOF {
		return io.EOF
	} else if err != nil {
		return err
	}

	switch {
	case code == clearCode:
		r.reset()
		return nil
	case code == eodCode:
		return io.EOF
	case r.prev < 0:
		if code > 255 {
			return errInvalidCode
		}
		r.pending = r.expand(code)
		r.prev = code
		return nil
	}

	var out []byte
	switch {
	case code < r.next:
		out = r.expand(code)
		r.add(r.prev, out[0])
	case code == r.next:
		prevStr := r.expand(r.prev)
		first := prevStr[0]
		r.add(r.prev, first)
		out = r.expand(code)
	default:
		return errInvalidCode
	}
	r.pending = out
	r.prev = code
	return nil
}

func (r *reader) add(prefix int, c byte) {
	if r.next >= 1<<maxWidth {
		return
	}
	r.prefix[r.next] = uint16(prefix)
	r.suffix[r.next] = c
	r.length[r.next] = r.length[prefix] + 1
	r.next++

	limit := r.next
	if r.early {
		limit++
	}
	if limit >= 1<<r.width && r.width < maxWidth {
		r.width++
	}
}

var errInvalidCode = errors.New("lzw: invalid code")
