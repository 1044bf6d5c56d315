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
)

func TestReadObject(t *testing.T) {
	cases := []struct {
		in  string
		val Object
	}{
		{"null", nil},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"12", Integer(12)},
		{"-4567", Integer(-4567)},
		{".5", Real(.5)},
		{"/F#23#20minor", Name("F# minor")},
		{"(he(ll)o)", String("he(ll)o")},
		{"<48656C6C6F>", String("Hello")},
		{"1 0 R", NewReference(1, 0)},
		{"12 3 R", NewReference(12, 3)},
		{"1 2", Integer(1)},
		{"-1 0 R", Integer(-1)},
	}
	for _, test := range cases {
		p := NewParser(NewLexer(strings.NewReader(test.in), 0))
		val, err := p.ReadObject()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if !Equal(val, test.val) {
			t.Errorf("%q: got %s, want %s", test.in, Format(val), Format(test.val))
		}
	}
}

func TestReadComposite(t *testing.T) {
	in := "<< /Type /Page /Kids [1 0 R 2 0 R 3] /Sub << /A 1.5 >> /Empty [] >>"
	p := NewParser(NewLexer(strings.NewReader(in), 0))
	obj, err := p.ReadObject()
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := obj.(*Dict)
	if !ok {
		t.Fatalf("expected dictionary, got %T", obj)
	}
	if got := Format(dict.Get("Kids")); got != "[1 0 R 2 0 R 3]" {
		t.Errorf("wrong /Kids %s", got)
	}
	sub, ok := dict.Get("Sub").(*Dict)
	if !ok || !Equal(sub.Get("A"), Real(1.5)) {
		t.Errorf("wrong /Sub %s", Format(dict.Get("Sub")))
	}
	if empty, ok := dict.Get("Empty").(Array); !ok || len(empty) != 0 {
		t.Errorf("wrong /Empty %s", Format(dict.Get("Empty")))
	}
	keys := dict.Keys()
	if len(keys) != 4 || keys[0] != "Type" || keys[3] != "Empty" {
		t.Errorf("wrong key order %v", keys)
	}
}

func TestReadObjectErrors(t *testing.T) {
	cases := []string{
		"",
		"[1 2",
		"<< 1 2 >>",
		"<< /A ]",
		"endobj",
	}
	for _, in := range cases {
		p := NewParser(NewLexer(strings.NewReader(in), 0))
		_, err := p.ReadObject()
		if err == nil {
			t.Errorf("%q: missing error", in)
		}
	}
}

func TestReadIndirect(t *testing.T) {
	in := "7 0 obj\n<< /Length 5 >>\nstream\nhello\nendstream\nendobj\n"
	p := NewParser(NewLexer(strings.NewReader(in), 0))
	ref, obj, err := p.ReadIndirect()
	if err != nil {
		t.Fatal(err)
	}
	if ref != NewReference(7, 0) {
		t.Errorf("wrong reference %s", ref)
	}
	stm, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("expected stream, got %T", obj)
	}
	data, err := stm.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("wrong stream data %q", data)
	}
}

func TestReadIndirectMissingEndobj(t *testing.T) {
	in := "3 1 obj (text)\n4 0 obj"
	p := NewParser(NewLexer(strings.NewReader(in), 0))
	ref, obj, err := p.ReadIndirect()
	if err != nil {
		t.Fatal(err)
	}
	if ref != NewReference(3, 1) || !Equal(obj, String("text")) {
		t.Errorf("got %s = %s", ref, Format(obj))
	}
}

func TestStreamLength(t *testing.T) {
	in := "7 0 obj\n<< /Length 3 >>\nstream\nhello\nendstream\nendobj\n"

	p := NewParser(NewLexer(strings.NewReader(in), 0))
	_, _, err := p.ReadIndirect()
	if !errors.Is(err, errStreamLength) {
		t.Errorf("expected length error, got %v", err)
	}

	p = NewParser(NewLexer(strings.NewReader(in), 0))
	p.ScanStreams = true
	_, obj, err := p.ReadIndirect()
	if err != nil {
		t.Fatal(err)
	}
	stm := obj.(*Stream)
	data, _ := stm.Decoded()
	if string(data) != "hello" {
		t.Errorf("wrong stream data %q", data)
	}
	if stm.Dict.Get("Length") != Integer(5) {
		t.Errorf("/Length not corrected: %s", Format(stm.Dict.Get("Length")))
	}
}

func TestIndirectLength(t *testing.T) {
	in := "7 0 obj\n<< /Length 8 0 R >>\nstream\nhello\nendstream\nendobj\n"
	p := NewParser(NewLexer(strings.NewReader(in), 0))
	p.GetInt = func(obj Object) (Integer, error) {
		if obj != NewReference(8, 0) {
			t.Errorf("unexpected length reference %s", Format(obj))
		}
		return 5, nil
	}
	_, obj, err := p.ReadIndirect()
	if err != nil {
		t.Fatal(err)
	}
	data, _ := obj.(*Stream).Decoded()
	if string(data) != "hello" {
		t.Errorf("wrong stream data %q", data)
	}
}
