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
	"errors"
)

// Parser builds PDF objects from the tokens produced by a [Lexer].
type Parser struct {
	lex  *Lexer
	peek []Token

	// GetInt is used to resolve indirect /Length entries of streams.
	// If GetInt is nil, only direct lengths are supported.
	GetInt func(Object) (Integer, error)

	// ScanStreams makes the parser ignore /Length and instead read stream
	// data up to the next "endstream" keyword.
	ScanStreams bool
}

// NewParser returns a parser which reads tokens from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// Lexer returns the underlying lexer.
func (p *Parser) Lexer() *Lexer {
	return p.lex
}

func (p *Parser) next() (Token, error) {
	if n := len(p.peek); n > 0 {
		tok := p.peek[n-1]
		p.peek = p.peek[:n-1]
		return tok, nil
	}
	return p.lex.Next()
}

func (p *Parser) unread(tok Token) {
	p.peek = append(p.peek, tok)
}

// ReadObject reads the next object.  The sequence "<int> <int> R" is
// returned as a [Reference].  At the end of input, io.EOF is returned.
func (p *Parser) ReadObject() (Object, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	return p.objectFrom(tok)
}

func (p *Parser) objectFrom(tok Token) (Object, error) {
	switch tok.Kind {
	case TokInteger:
		return p.maybeReference(tok)
	case TokReal:
		return Real(tok.Real), nil
	case TokName:
		return Name(tok.Data), nil
	case TokString, TokHexString:
		return String(tok.Data), nil
	case TokNull:
		return nil, nil
	case TokTrue:
		return Bool(true), nil
	case TokFalse:
		return Bool(false), nil
	case TokArrayStart:
		return p.readArray()
	case TokDictStart:
		return p.readDict()
	case TokEOF:
		return nil, errUnexpectedEOF
	default:
		return nil, &ParseError{Pos: tok.Pos, Msg: "unexpected " + tok.String()}
	}
}

var errUnexpectedEOF = errors.New("unexpected end of input")

func (p *Parser) maybeReference(first Token) (Object, error) {
	if first.Int < 0 || first.Int > 1<<32-1 {
		return Integer(first.Int), nil
	}
	second, err := p.next()
	if err != nil {
		return nil, err
	}
	if second.Kind != TokInteger || second.Int < 0 || second.Int > 65535 {
		p.unread(second)
		return Integer(first.Int), nil
	}
	third, err := p.next()
	if err != nil {
		return nil, err
	}
	if third.Kind != TokR {
		p.unread(third)
		p.unread(second)
		return Integer(first.Int), nil
	}
	return NewReference(uint32(first.Int), uint16(second.Int)), nil
}

func (p *Parser) readArray() (Array, error) {
	res := Array{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokArrayEnd {
			return res, nil
		}
		obj, err := p.objectFrom(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
	}
}

func (p *Parser) readDict() (*Dict, error) {
	res := NewDict()
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokDictEnd {
			return res, nil
		}
		if tok.Kind != TokName {
			return nil, &ParseError{Pos: tok.Pos, Msg: "dictionary key must be a name, not " + tok.String()}
		}
		key := Name(tok.Data)

		tok, err = p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokDictEnd {
			// a key without a value
			return res, nil
		}
		val, err := p.objectFrom(tok)
		if err != nil {
			return nil, err
		}
		res.Set(key, val)
	}
}

// ReadIndirect reads an object definition of the form
// "<int> <int> obj ... endobj".  Streams are read including their data.
func (p *Parser) ReadIndirect() (Reference, Object, error) {
	numTok, err := p.next()
	if err != nil {
		return 0, nil, err
	}
	genTok, err := p.next()
	if err != nil {
		return 0, nil, err
	}
	objTok, err := p.next()
	if err != nil {
		return 0, nil, err
	}
	if numTok.Kind != TokInteger || genTok.Kind != TokInteger || objTok.Kind != TokObj ||
		numTok.Int < 0 || numTok.Int > 1<<32-1 || genTok.Int < 0 || genTok.Int > 65535 {
		return 0, nil, &ParseError{Pos: numTok.Pos, Msg: "missing object header"}
	}
	ref := NewReference(uint32(numTok.Int), uint16(genTok.Int))

	obj, err := p.ReadObject()
	if err != nil {
		return ref, nil, err
	}

	tok, err := p.next()
	if err != nil {
		return ref, nil, err
	}
	switch tok.Kind {
	case TokEndObj:
		return ref, obj, nil
	case TokStream:
		dict, ok := obj.(*Dict)
		if !ok {
			return ref, nil, &ParseError{Pos: tok.Pos, Msg: "stream without dictionary"}
		}
		stm, err := p.readStreamData(dict)
		if err != nil {
			return ref, nil, err
		}
		tok, err = p.next()
		if err != nil {
			return ref, nil, err
		}
		if tok.Kind != TokEndObj {
			// tolerate a missing "endobj"
			p.unread(tok)
		}
		return ref, stm, nil
	default:
		// tolerate a missing "endobj"
		p.unread(tok)
		return ref, obj, nil
	}
}

var errStreamLength = errors.New("stream length does not match data")

func (p *Parser) readStreamData(dict *Dict) (*Stream, error) {
	p.lex.SkipStreamEOL()
	start := p.lex.Pos()

	if p.ScanStreams {
		data, err := p.lex.ReadUntil("endstream")
		if err != nil {
			return nil, &ParseError{Pos: start, Msg: "missing endstream", Err: err}
		}
		data = trimEOL(data)
		return NewStream(dict, data), nil
	}

	lengthObj := dict.Get("Length")
	var length Integer
	switch x := lengthObj.(type) {
	case Integer:
		length = x
	case Reference:
		if p.GetInt == nil {
			return nil, &ParseError{Pos: start, Msg: "indirect stream length"}
		}
		var err error
		length, err = p.GetInt(x)
		if err != nil {
			return nil, &ParseError{Pos: start, Msg: "cannot resolve stream length", Err: err}
		}
	default:
		return nil, &ParseError{Pos: start, Msg: "missing stream length"}
	}

	data, err := p.lex.ReadRaw(int(length))
	if err != nil {
		return nil, &ParseError{Pos: start, Err: err}
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokEndStream {
		return nil, &ParseError{Pos: tok.Pos, Err: errStreamLength}
	}
	return NewStream(dict, data), nil
}

func trimEOL(data []byte) []byte {
	if bytes.HasSuffix(data, []byte("\r\n")) {
		return data[:len(data)-2]
	}
	if bytes.HasSuffix(data, []byte("\n")) || bytes.HasSuffix(data, []byte("\r")) {
		return data[:len(data)-1]
	}
	return data
}
