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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexerTokens(t *testing.T) {
	in := "%PDF-1.7\n%comment\n1 0 obj <</Type /Catalog>> endobj [1.5 -2 (a\\(b) <4142>] null true false 3 0 R xref trailer startxref %%EOF n f Tj"
	lex := NewLexer(strings.NewReader(in), 0)

	var kinds []TokenKind
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind == TokEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	expected := []TokenKind{
		TokHeader,
		TokInteger, TokInteger, TokObj,
		TokDictStart, TokName, TokName, TokDictEnd,
		TokEndObj,
		TokArrayStart, TokReal, TokInteger, TokString, TokHexString, TokArrayEnd,
		TokNull, TokTrue, TokFalse,
		TokInteger, TokInteger, TokR,
		TokXRef, TokTrailer, TokStartXRef, TokEOFMarker,
		TokN, TokF, TokOperator,
	}
	if d := cmp.Diff(expected, kinds); d != "" {
		t.Errorf("unexpected tokens (-want +got):\n%s", d)
	}
}

func TestLexerValues(t *testing.T) {
	cases := []struct {
		in   string
		kind TokenKind
		data string
	}{
		{"(hello)", TokString, "hello"},
		{"(a(b)c)", TokString, "a(b)c"},
		{`(\n\r\t\b\f\(\)\\)`, TokString, "\n\r\t\b\f()\\"},
		{`(\101\1011)`, TokString, "AA1"},
		{`(\0)`, TokString, "\x00"},
		{"(line\\\ncontinued)", TokString, "linecontinued"},
		{"(line\\\r\ncontinued)", TokString, "linecontinued"},
		{"(a\r\nb)", TokString, "a\nb"},
		{"(a\rb)", TokString, "a\nb"},
		{`(\q)`, TokString, "q"},
		{"<48656C6C6F>", TokHexString, "Hello"},
		{"<48 65 6c 6c 6f>", TokHexString, "Hello"},
		{"<414>", TokHexString, "A@"},
		{"<>", TokHexString, ""},
		{"/Name", TokName, "Name"},
		{"/A#42", TokName, "AB"},
		{"/F#23#20minor", TokName, "F# minor"},
		{"/", TokName, ""},
		{"/a#4", TokName, "a#4"},
		{"%PDF-1.4", TokHeader, "1.4"},
	}
	for _, test := range cases {
		tok, err := NewLexer(strings.NewReader(test.in), 0).Next()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if tok.Kind != test.kind || string(tok.Data) != test.data {
			t.Errorf("%q: got %s %q, want %q", test.in, tok, tok.Data, test.data)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind TokenKind
		val  float64
	}{
		{"0", TokInteger, 0},
		{"+17", TokInteger, 17},
		{"-98", TokInteger, -98},
		{"34.5", TokReal, 34.5},
		{"-3.62", TokReal, -3.62},
		{"+123.6", TokReal, 123.6},
		{"4.", TokReal, 4},
		{"-.002", TokReal, -0.002},
		{".5", TokReal, .5},
		{"0.0", TokReal, 0},
	}
	for _, test := range cases {
		tok, err := NewLexer(strings.NewReader(test.in), 0).Next()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if tok.Kind != test.kind {
			t.Errorf("%q: wrong kind %s", test.in, tok)
			continue
		}
		var got float64
		if tok.Kind == TokInteger {
			got = float64(tok.Int)
		} else {
			got = tok.Real
		}
		if got != test.val {
			t.Errorf("%q: got %g, want %g", test.in, got, test.val)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	cases := []string{
		"(unterminated",
		"<4142",
		"<41X2>",
		"1.2.3",
		"--5",
		")",
	}
	for _, in := range cases {
		_, err := NewLexer(strings.NewReader(in), 0).Next()
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Errorf("%q: expected LexError, got %v", in, err)
		}
	}
}

func TestLexerPos(t *testing.T) {
	lex := NewLexer(strings.NewReader("  12 /abc"), 100)
	tok, err := lex.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Pos != 102 {
		t.Errorf("wrong position %d", tok.Pos)
	}
	if lex.Pos() != 104 {
		t.Errorf("wrong lexer position %d", lex.Pos())
	}
	tok, _ = lex.Next()
	if tok.Pos != 105 {
		t.Errorf("wrong position %d", tok.Pos)
	}
}

func TestReadInlineImage(t *testing.T) {
	lex := NewLexer(strings.NewReader("ID \x00\x01EIx\xff EI\nQ"), 0)
	tok, err := lex.Next()
	if err != nil || tok.Kind != TokOperator || string(tok.Data) != "ID" {
		t.Fatalf("unexpected token %s, %v", tok, err)
	}
	data, err := lex.ReadInlineImage()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\x00\x01EIx\xff" {
		t.Errorf("wrong image data %q", data)
	}
	tok, _ = lex.Next()
	if tok.Kind != TokOperator || string(tok.Data) != "Q" {
		t.Errorf("unexpected token %s", tok)
	}
}
