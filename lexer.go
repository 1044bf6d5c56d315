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
	"io"
	"strconv"
)

// TokenKind identifies the type of a [Token].
type TokenKind int

// Token kinds produced by the [Lexer].
const (
	TokEOF TokenKind = iota
	TokInteger
	TokReal
	TokName
	TokString
	TokHexString
	TokArrayStart
	TokArrayEnd
	TokDictStart
	TokDictEnd
	TokObj
	TokEndObj
	TokStream
	TokEndStream
	TokXRef
	TokTrailer
	TokStartXRef
	TokN
	TokF
	TokNull
	TokTrue
	TokFalse
	TokR
	TokEOFMarker // %%EOF
	TokHeader    // %PDF-x.y
	TokOperator  // any other keyword, e.g. a content stream operator
	TokBraceOpen
	TokBraceClose
)

var keywords = map[string]TokenKind{
	"obj":       TokObj,
	"endobj":    TokEndObj,
	"stream":    TokStream,
	"endstream": TokEndStream,
	"xref":      TokXRef,
	"trailer":   TokTrailer,
	"startxref": TokStartXRef,
	"n":         TokN,
	"f":         TokF,
	"null":      TokNull,
	"true":      TokTrue,
	"false":     TokFalse,
	"R":         TokR,
}

// Token is a lexical unit of a PDF file or content stream.
type Token struct {
	Kind TokenKind

	// Pos is the byte offset of the first character of the token.
	Pos int64

	// Int holds the value of TokInteger tokens.
	Int int64

	// Real holds the value of TokReal tokens.
	Real float64

	// Data holds the decoded value of names and strings, the keyword of
	// TokOperator tokens, and the version of TokHeader tokens.
	Data []byte
}

func (t Token) String() string {
	switch t.Kind {
	case TokInteger:
		return strconv.FormatInt(t.Int, 10)
	case TokReal:
		return strconv.FormatFloat(t.Real, 'f', -1, 64)
	case TokName:
		return "/" + string(t.Data)
	case TokString, TokHexString:
		return strconv.Quote(string(t.Data))
	case TokEOF:
		return "EOF"
	case TokEOFMarker:
		return "%%EOF"
	case TokHeader:
		return "%PDF-" + string(t.Data)
	}
	for kw, kind := range keywords {
		if kind == t.Kind {
			return kw
		}
	}
	switch t.Kind {
	case TokArrayStart:
		return "["
	case TokArrayEnd:
		return "]"
	case TokDictStart:
		return "<<"
	case TokDictEnd:
		return ">>"
	case TokBraceOpen:
		return "{"
	case TokBraceClose:
		return "}"
	}
	return string(t.Data)
}

const lexerBufSize = 4096

// Lexer splits PDF data into tokens.
type Lexer struct {
	r   io.Reader
	buf []byte

	used, pos int
	err       error

	// total is the byte offset of buf[0] in the input.
	total int64
}

// NewLexer returns a lexer which reads from r.  The offset is the position
// of the first byte of r within the file; it is used to report positions.
func NewLexer(r io.Reader, offset int64) *Lexer {
	return &Lexer{
		r:     r,
		buf:   make([]byte, lexerBufSize),
		total: offset,
	}
}

// Pos returns the file offset of the next unread byte.
func (l *Lexer) Pos() int64 {
	return l.total + int64(l.pos)
}

// refill makes sure that at least n bytes are available in the buffer,
// if possible.  It returns the number of available bytes.
func (l *Lexer) refill(n int) int {
	if l.used-l.pos >= n || l.err != nil {
		return l.used - l.pos
	}
	l.total += int64(l.pos)
	copy(l.buf, l.buf[l.pos:l.used])
	l.used -= l.pos
	l.pos = 0
	if n > len(l.buf) {
		newBuf := make([]byte, n+lexerBufSize)
		copy(newBuf, l.buf[:l.used])
		l.buf = newBuf
	}
	for l.used < n && l.err == nil {
		k, err := l.r.Read(l.buf[l.used:])
		l.used += k
		if err != nil {
			l.err = err
		}
	}
	return l.used - l.pos
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.pos >= l.used && l.refill(1) == 0 {
		return 0, false
	}
	return l.buf[l.pos], true
}

func (l *Lexer) readByte() (byte, bool) {
	c, ok := l.peekByte()
	if ok {
		l.pos++
	}
	return c, ok
}

func (l *Lexer) hasPrefix(pat string) bool {
	if l.refill(len(pat)) < len(pat) {
		return false
	}
	return string(l.buf[l.pos:l.pos+len(pat)]) == pat
}

// ioError returns the error from the underlying reader, if this was not
// io.EOF.
func (l *Lexer) ioError() error {
	if l.err == io.EOF {
		return nil
	}
	return l.err
}

// skipSpace skips white space and comments.  Header and end-of-file
// comments are not skipped.
func (l *Lexer) skipSpace() {
	for {
		c, ok := l.peekByte()
		if !ok {
			return
		}
		switch {
		case isSpace[c]:
			l.pos++
		case c == '%':
			if l.hasPrefix("%PDF-") || l.hasPrefix("%%EOF") {
				return
			}
			l.skipLine()
		default:
			return
		}
	}
}

func (l *Lexer) skipLine() {
	for {
		c, ok := l.readByte()
		if !ok || c == '\n' {
			return
		}
		if c == '\r' {
			if c2, ok := l.peekByte(); ok && c2 == '\n' {
				l.pos++
			}
			return
		}
	}
}

// Next returns the next token.  At the end of input, a token of kind
// TokEOF is returned.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	pos := l.Pos()
	c, ok := l.peekByte()
	if !ok {
		return Token{Kind: TokEOF, Pos: pos}, l.ioError()
	}

	switch c {
	case '%':
		if l.hasPrefix("%%EOF") {
			l.pos += 5
			return Token{Kind: TokEOFMarker, Pos: pos}, nil
		}
		l.pos += 5 // "%PDF-"
		var version []byte
		for {
			c, ok := l.peekByte()
			if !ok || !(c >= '0' && c <= '9' || c == '.') {
				break
			}
			version = append(version, c)
			l.pos++
		}
		l.skipLine()
		return Token{Kind: TokHeader, Pos: pos, Data: version}, nil
	case '(':
		l.pos++
		s, err := l.readLiteralString(pos)
		return Token{Kind: TokString, Pos: pos, Data: s}, err
	case '<':
		l.pos++
		if c2, ok := l.peekByte(); ok && c2 == '<' {
			l.pos++
			return Token{Kind: TokDictStart, Pos: pos}, nil
		}
		s, err := l.readHexString(pos)
		return Token{Kind: TokHexString, Pos: pos, Data: s}, err
	case '>':
		l.pos++
		if c2, ok := l.peekByte(); ok && c2 == '>' {
			l.pos++
			return Token{Kind: TokDictEnd, Pos: pos}, nil
		}
		return Token{Pos: pos}, &LexError{Pos: pos, Msg: "unexpected '>'"}
	case '[':
		l.pos++
		return Token{Kind: TokArrayStart, Pos: pos}, nil
	case ']':
		l.pos++
		return Token{Kind: TokArrayEnd, Pos: pos}, nil
	case '{':
		l.pos++
		return Token{Kind: TokBraceOpen, Pos: pos}, nil
	case '}':
		l.pos++
		return Token{Kind: TokBraceClose, Pos: pos}, nil
	case ')':
		l.pos++
		return Token{Pos: pos}, &LexError{Pos: pos, Msg: "unexpected ')'"}
	case '/':
		l.pos++
		return Token{Kind: TokName, Pos: pos, Data: l.readName()}, nil
	}

	word := l.readRegular()
	if c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9' {
		return parseNumber(word, pos)
	}
	if kind, ok := keywords[string(word)]; ok {
		return Token{Kind: kind, Pos: pos}, nil
	}
	return Token{Kind: TokOperator, Pos: pos, Data: word}, nil
}

func (l *Lexer) readRegular() []byte {
	var res []byte
	for {
		c, ok := l.peekByte()
		if !ok || isSpace[c] || isDelimiter[c] {
			return res
		}
		res = append(res, c)
		l.pos++
	}
}

func parseNumber(word []byte, pos int64) (Token, error) {
	if !isNumber(word) {
		return Token{Pos: pos}, &LexError{Pos: pos, Msg: "malformed number " + strconv.Quote(string(word))}
	}
	if bytes.IndexByte(word, '.') < 0 {
		x, err := strconv.ParseInt(string(word), 10, 64)
		if err == nil {
			return Token{Kind: TokInteger, Pos: pos, Int: x}, nil
		}
	}
	s := string(word)
	if s == "." || s == "-." || s == "+." {
		s = "0"
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Token{Pos: pos}, &LexError{Pos: pos, Msg: "malformed number " + strconv.Quote(string(word))}
	}
	return Token{Kind: TokReal, Pos: pos, Real: x}, nil
}

// isNumber checks for an optional sign, digits, an optional decimal point
// and further digits.
func isNumber(word []byte) bool {
	if len(word) > 0 && (word[0] == '+' || word[0] == '-') {
		word = word[1:]
	}
	if len(word) == 0 {
		return false
	}
	seenDot := false
	for _, c := range word {
		switch {
		case c == '.' && !seenDot:
			seenDot = true
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func (l *Lexer) readName() []byte {
	res := []byte{}
	for {
		c, ok := l.peekByte()
		if !ok || isSpace[c] || isDelimiter[c] {
			return res
		}
		l.pos++
		if c == '#' && l.refill(2) >= 2 {
			h1, ok1 := hexValue(l.buf[l.pos])
			h2, ok2 := hexValue(l.buf[l.pos+1])
			if ok1 && ok2 {
				l.pos += 2
				c = h1<<4 | h2
			}
		}
		res = append(res, c)
	}
}

func (l *Lexer) readLiteralString(start int64) ([]byte, error) {
	res := []byte{}
	level := 0
	for {
		c, ok := l.readByte()
		if !ok {
			if err := l.ioError(); err != nil {
				return nil, err
			}
			return nil, &LexError{Pos: start, Msg: "unterminated string"}
		}
		switch c {
		case '(':
			level++
		case ')':
			if level == 0 {
				return res, nil
			}
			level--
		case '\r':
			// end-of-line markers within strings are read as \n
			if c2, ok := l.peekByte(); ok && c2 == '\n' {
				l.pos++
			}
			c = '\n'
		case '\\':
			c, ok = l.readByte()
			if !ok {
				return nil, &LexError{Pos: start, Msg: "unterminated string"}
			}
			switch c {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\r':
				if c2, ok := l.peekByte(); ok && c2 == '\n' {
					l.pos++
				}
				continue
			case '\n':
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := c - '0'
				for range 2 {
					d, ok := l.peekByte()
					if !ok || d < '0' || d > '7' {
						break
					}
					val = val*8 + (d - '0')
					l.pos++
				}
				c = val
			}
		}
		res = append(res, c)
	}
}

func (l *Lexer) readHexString(start int64) ([]byte, error) {
	res := []byte{}
	var high byte
	haveHigh := false
	for {
		c, ok := l.readByte()
		if !ok {
			if err := l.ioError(); err != nil {
				return nil, err
			}
			return nil, &LexError{Pos: start, Msg: "unterminated hex string"}
		}
		if isSpace[c] {
			continue
		}
		if c == '>' {
			if haveHigh {
				res = append(res, high<<4)
			}
			return res, nil
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, &LexError{Pos: l.Pos() - 1, Msg: "invalid character in hex string"}
		}
		if haveHigh {
			res = append(res, high<<4|v)
			haveHigh = false
		} else {
			high = v
			haveHigh = true
		}
	}
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}

// SkipStreamEOL consumes the end-of-line marker which follows the
// "stream" keyword.
func (l *Lexer) SkipStreamEOL() {
	c, ok := l.peekByte()
	if !ok {
		return
	}
	switch c {
	case '\r':
		l.pos++
		if c2, ok := l.peekByte(); ok && c2 == '\n' {
			l.pos++
		}
	case '\n':
		l.pos++
	case ' ':
		// some writers use a space instead of a newline
		l.pos++
		if c2, ok := l.peekByte(); ok && c2 == '\n' {
			l.pos++
		}
	}
}

// ReadRaw reads the next n bytes verbatim.
func (l *Lexer) ReadRaw(n int) ([]byte, error) {
	if n < 0 {
		return nil, &LexError{Pos: l.Pos(), Msg: "negative length"}
	}
	res := make([]byte, 0, min(n, 1<<20))
	for len(res) < n {
		avail := l.refill(min(n-len(res), lexerBufSize))
		if avail == 0 {
			if err := l.ioError(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		k := min(avail, n-len(res))
		res = append(res, l.buf[l.pos:l.pos+k]...)
		l.pos += k
	}
	return res, nil
}

// ReadUntil reads data up to the next occurrence of marker.  The marker
// itself is consumed but not included in the result.
func (l *Lexer) ReadUntil(marker string) ([]byte, error) {
	var res []byte
	for {
		avail := l.refill(len(marker))
		if avail < len(marker) {
			return nil, io.ErrUnexpectedEOF
		}
		data := l.buf[l.pos:l.used]
		idx := bytes.Index(data, []byte(marker))
		if idx >= 0 {
			res = append(res, data[:idx]...)
			l.pos += idx + len(marker)
			return res, nil
		}
		k := len(data) - len(marker) + 1
		res = append(res, data[:k]...)
		l.pos += k
	}
}

// ReadInlineImage reads the data of an inline image in a content stream.
// It must be called directly after the "ID" operator has been read; the
// data is read up to the "EI" operator, which is consumed.
func (l *Lexer) ReadInlineImage() ([]byte, error) {
	// a single white-space character follows "ID"
	if c, ok := l.peekByte(); ok && isSpace[c] {
		l.pos++
	}
	var res []byte
	for {
		c, ok := l.readByte()
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		if isSpace[c] && l.hasPrefix("EI") {
			n := l.refill(3)
			if n == 2 || isSpace[l.buf[l.pos+2]] || isDelimiter[l.buf[l.pos+2]] {
				l.pos += 2
				return res, nil
			}
		}
		res = append(res, c)
	}
}
