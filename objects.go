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
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/pdfdoc/internal/float"
)

// Object represents an object in a PDF file.  There are nine native types of
// PDF objects, which implement this interface: [Array], [Bool], [*Dict],
// [Integer], [Name], [Real], [Reference], [*Stream], and [String].
// The PDF null object is represented by the Go value nil.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	var s string
	if x {
		s = "true"
	} else {
		s = "false"
	}
	_, err := w.Write([]byte(s))
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	s := strconv.FormatInt(int64(x), 10)
	_, err := w.Write([]byte(s))
	return err
}

// Real represents an real number in a PDF file.
//
// Reals are written with at most five decimal digits and never use
// exponential notation.
type Real float64

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	s := formatReal(float64(x))
	_, err := w.Write([]byte(s))
	return err
}

func formatReal(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	s := float.Format(x, 5)
	if s == "-0" || s == "-.0" {
		s = "0"
	}
	if !strings.Contains(s, ".") {
		s += "."
	}
	return s
}

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.  Use [TextString] to construct
// strings which hold human-readable text.
type String []byte

// PDF implements the [Object] interface.
//
// ASCII strings are written as literal strings.  Strings containing
// other bytes, including UTF-16BE text strings, are written in hexadecimal
// form.
func (x String) PDF(w io.Writer) error {
	l := []byte(x)

	level := 0
	balanced := true
	for _, c := range l {
		switch {
		case c >= 0x80:
			_, err := fmt.Fprintf(w, "<%X>", l)
			return err
		case c == '(':
			level++
		case c == ')':
			level--
			if level < 0 {
				balanced = false
			}
		}
	}
	balanced = balanced && level == 0

	buf := &bytes.Buffer{}
	buf.WriteByte('(')
	for _, c := range l {
		switch {
		case c == '\n':
			buf.WriteString(`\n`)
		case c == '\r':
			buf.WriteString(`\r`)
		case c == '\b':
			buf.WriteString(`\b`)
		case c == '\f':
			buf.WriteString(`\f`)
		case c == '\\':
			buf.WriteString(`\\`)
		case (c == '(' || c == ')') && !balanced:
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c < 32 && c != '\t' || c == 127:
			fmt.Fprintf(buf, `\%03o`, c)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')

	_, err := w.Write(buf.Bytes())
	return err
}

// Name represents a name in a PDF file.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	l := []byte(x)

	buf := &bytes.Buffer{}
	buf.WriteString("/")
	for _, c := range l {
		if isSpace[c] || isDelimiter[c] || c < 0x21 || c > 0x7e || c == '#' {
			fmt.Fprintf(buf, "#%02x", c)
		} else {
			buf.WriteByte(c)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Array represent an array of objects in a PDF file.
type Array []Object

func (x Array) String() string {
	return "<Array, " + strconv.Itoa(len(x)) + " elements>"
}

// PDF implements the [Object] interface.
// Arrays are always written on a single line, including any dictionaries
// they contain.
func (x Array) PDF(w io.Writer) error {
	_, err := w.Write([]byte("["))
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err := w.Write([]byte(" "))
			if err != nil {
				return err
			}
		}
		err = writeInline(w, val)
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("]"))
	return err
}

// writeInline writes obj without line breaks.
func writeInline(w io.Writer, obj Object) error {
	switch obj := obj.(type) {
	case nil:
		_, err := w.Write([]byte("null"))
		return err
	case *Dict:
		return obj.write(w, true)
	default:
		return obj.PDF(w)
	}
}

// Reference represents a reference to an indirect object in a PDF file.
// The lower 32 bits represent the object number, the next 16 bits the
// generation number.
type Reference uint64

// NewReference returns the reference for the given object number and
// generation.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(uint64(number) | uint64(generation)<<32)
}

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x)
}

// Generation returns the generation number of the reference.
func (x Reference) Generation() uint16 {
	return uint16(x >> 32)
}

func (x Reference) String() string {
	res := "obj_" + strconv.FormatUint(uint64(x.Number()), 10)
	if gen := x.Generation(); gen > 0 {
		res += "@" + strconv.FormatUint(uint64(gen), 10)
	}
	return res
}

// PDF implements the [Object] interface.
//
// When the object is written as part of a complete file, the reference
// is translated to the object number assigned by the writer.
func (x Reference) PDF(w io.Writer) error {
	if x>>48 != 0 {
		return fmt.Errorf("invalid reference: 0x%016x", uint64(x))
	}

	if pw, ok := w.(*posWriter); ok && pw.renumber != nil {
		y, ok := pw.renumber[x]
		if !ok {
			_, err := w.Write([]byte("null"))
			return err
		}
		x = y
	}

	_, err := fmt.Fprintf(w, "%d %d R", x.Number(), x.Generation())
	return err
}

// Format formats a PDF object as a string, in the same way as the
// it would be written to a PDF file.
func Format(obj Object) string {
	if obj == nil {
		return "null"
	}
	buf := &bytes.Buffer{}
	err := obj.PDF(buf)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}

// Equal reports whether two objects are equal.
//
// Names, booleans, strings, numbers and references are compared by value,
// where integers and reals are considered equal if they differ by at most
// 1e-5.  Dictionaries and streams are equal only if they are the same
// object.  Arrays are equal if they share the same underlying storage.
func Equal(a, b Object) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Name:
		b, ok := b.(Name)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && bytes.Equal(a, b)
	case Reference:
		b, ok := b.(Reference)
		return ok && a == b
	case Integer, Real:
		x, ok1 := asNumber(a)
		y, ok2 := asNumber(b)
		return ok1 && ok2 && math.Abs(x-y) <= 1e-5
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		if len(a) == 0 {
			return true
		}
		return &a[0] == &b[0]
	case *Dict:
		b, ok := b.(*Dict)
		return ok && a == b
	case *Stream:
		b, ok := b.(*Stream)
		return ok && a == b
	default:
		return false
	}
}

func asNumber(obj Object) (float64, bool) {
	switch x := obj.(type) {
	case Integer:
		return float64(x), true
	case Real:
		return float64(x), true
	default:
		return 0, false
	}
}

var (
	isSpace = [256]bool{
		0:  true,
		9:  true,
		10: true,
		12: true,
		13: true,
		32: true,
	}
	isDelimiter = [256]bool{
		'(': true,
		')': true,
		'<': true,
		'>': true,
		'[': true,
		']': true,
		'{': true,
		'}': true,
		'/': true,
		'%': true,
	}
)
