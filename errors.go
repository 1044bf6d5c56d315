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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MalformedFileError indicates that a PDF file could not be parsed.
type MalformedFileError struct {
	Pos int64
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// LexError is returned by the [Lexer] when the input cannot be split into
// tokens.
type LexError struct {
	Pos int64
	Msg string
}

func (err *LexError) Error() string {
	return "lexical error at byte " + strconv.FormatInt(err.Pos, 10) + ": " + err.Msg
}

// ParseError indicates that a sequence of tokens does not form a valid PDF
// object.
type ParseError struct {
	Pos int64
	Msg string
	Err error
}

func (err *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error at byte ")
	b.WriteString(strconv.FormatInt(err.Pos, 10))
	if err.Msg != "" {
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	if err.Err != nil {
		b.WriteString(": ")
		b.WriteString(err.Err.Error())
	}
	return b.String()
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// TypeMismatchError is returned (or used as a panic value) when an object is
// used as a kind it is not.
type TypeMismatchError struct {
	Want string
	Got  Object
}

func (err *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s but got %s", err.Want, kindOf(err.Got))
}

// FilterError indicates that stream data could not be encoded or decoded.
type FilterError struct {
	Filter Name
	Err    error
}

func (err *FilterError) Error() string {
	return "filter " + string(err.Filter) + ": " + err.Err.Error()
}

func (err *FilterError) Unwrap() error {
	return err.Err
}

// ConformanceError is returned by the writer when a document violates the
// requested conformance level.  No data is written in this case.
type ConformanceError struct {
	Level     Conformance
	Violation string
}

func (err *ConformanceError) Error() string {
	return err.Level.String() + " violation: " + err.Violation
}

var (
	// ErrXRefUnrepairable is returned when neither the cross-reference
	// data nor a scan of the file can locate the document catalog.
	ErrXRefUnrepairable = errors.New("cross-reference table cannot be repaired")

	errVersion = errors.New("unsupported PDF version")
	errNoDate  = errors.New("not a valid date string")
)

func kindOf(obj Object) string {
	switch obj.(type) {
	case nil:
		return "null"
	case Bool:
		return "boolean"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Name:
		return "name"
	case String:
		return "string"
	case Array:
		return "array"
	case *Dict:
		return "dictionary"
	case *Stream:
		return "stream"
	case Reference:
		return "reference"
	default:
		return fmt.Sprintf("%T", obj)
	}
}
