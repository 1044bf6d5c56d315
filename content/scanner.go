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

// Package content parses and interprets PDF content streams.
//
// The [Scan] function splits a content stream into operators.  A [Reader]
// executes the operators, keeps track of the graphics state and reports
// each operator, together with the text and bounding box of text showing
// operators, to a list of [Listener]s.
package content

import (
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/pdfdoc"
)

// Operator is a content stream operator together with its operands.
type Operator struct {
	Name string
	Args []pdf.Object

	// Start and End give the byte range of the operator, including its
	// operands, in the content stream.
	Start, End int
}

// Scan splits the content stream data into operators and calls yield for
// each of them, in order.
//
// Inline images are reported as a single operator "BI", with the image
// dictionary and the image data as arguments.
//
// Lexical errors, unbalanced arrays or dictionaries and operators inside
// arrays are reported as errors.  Operands which are not followed by an
// operator are ignored.
func Scan(data []byte, yield func(op Operator) error) error {
	lex := pdf.NewLexer(bytes.NewReader(data), 0)

	type frame struct {
		data   []pdf.Object
		isDict bool
	}
	var stack []*frame
	var args []pdf.Object
	start := -1

	push := func(obj pdf.Object) {
		if n := len(stack); n > 0 {
			stack[n-1].data = append(stack[n-1].data, obj)
		} else {
			args = append(args, obj)
		}
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if start < 0 {
			start = int(tok.Pos)
		}

		switch tok.Kind {
		case pdf.TokEOF:
			if len(stack) > 0 {
				return &pdf.ParseError{Pos: tok.Pos, Msg: "unterminated array or dictionary"}
			}
			return nil
		case pdf.TokInteger:
			push(pdf.Integer(tok.Int))
		case pdf.TokReal:
			push(pdf.Real(tok.Real))
		case pdf.TokName:
			push(pdf.Name(tok.Data))
		case pdf.TokString, pdf.TokHexString:
			push(pdf.String(tok.Data))
		case pdf.TokTrue:
			push(pdf.Bool(true))
		case pdf.TokFalse:
			push(pdf.Bool(false))
		case pdf.TokNull:
			push(nil)
		case pdf.TokArrayStart:
			stack = append(stack, &frame{})
		case pdf.TokDictStart:
			stack = append(stack, &frame{isDict: true})
		case pdf.TokArrayEnd, pdf.TokDictEnd:
			n := len(stack)
			if n == 0 || stack[n-1].isDict != (tok.Kind == pdf.TokDictEnd) {
				return &pdf.ParseError{Pos: tok.Pos, Msg: "unbalanced " + tok.String()}
			}
			top := stack[n-1]
			stack = stack[:n-1]
			if top.isDict {
				dict, err := makeDict(top.data)
				if err != nil {
					return &pdf.ParseError{Pos: tok.Pos, Err: err}
				}
				push(dict)
			} else {
				push(pdf.Array(top.data))
			}
		case pdf.TokEOFMarker, pdf.TokHeader, pdf.TokBraceOpen, pdf.TokBraceClose:
			// not used in content streams
		default:
			name := tok.String()
			if len(stack) > 0 {
				return &pdf.ParseError{Pos: tok.Pos, Msg: "operator " + name + " inside array or dictionary"}
			}

			switch name {
			case "BI":
				// operands are collected until "ID"
				continue
			case "ID":
				dict, err := makeDict(args)
				if err != nil {
					return &pdf.ParseError{Pos: tok.Pos, Err: err}
				}
				img, err := lex.ReadInlineImage()
				if err != nil {
					return &pdf.ParseError{Pos: tok.Pos, Msg: "inline image", Err: err}
				}
				name = "BI"
				args = []pdf.Object{dict, pdf.String(img)}
			}

			op := Operator{
				Name:  name,
				Args:  args,
				Start: start,
				End:   int(lex.Pos()),
			}
			err = yield(op)
			if err != nil {
				return err
			}
			args = nil
			start = -1
		}
	}
}

func makeDict(data []pdf.Object) (*pdf.Dict, error) {
	if len(data)%2 != 0 {
		return nil, errOddDict
	}
	dict := pdf.NewDict()
	for i := 0; i < len(data); i += 2 {
		key, ok := data[i].(pdf.Name)
		if !ok {
			return nil, fmt.Errorf("invalid dictionary key %s", pdf.Format(data[i]))
		}
		dict.Set(key, data[i+1])
	}
	return dict, nil
}

var errOddDict = errors.New("odd number of dictionary entries")
