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
	"compress/zlib"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestFlateRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("BT /F1 12 Tf (Hello World!) Tj ET\n", 20))
	stm := NewDecodedStream(NewDict().Set("Filter", Name("FlateDecode")), data)
	raw, err := stm.Raw()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) >= len(data) {
		t.Errorf("data not compressed: %d >= %d", len(raw), len(data))
	}
	if stm.Dict.Get("Length") != Integer(len(raw)) {
		t.Errorf("wrong /Length %s", Format(stm.Dict.Get("Length")))
	}

	stm2 := NewStream(NewDict().Set("Filter", Name("FlateDecode")), raw)
	out, err := stm2.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Error("round trip failed")
	}
}

func TestFilterChain(t *testing.T) {
	data := []byte("a chain of two filters")
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	zw.Write(data)
	zw.Close()
	raw := []byte(hex.EncodeToString(buf.Bytes()) + ">")

	dict := NewDict().Set("Filter", Array{Name("AHx"), Name("FlateDecode")})
	out, err := NewStream(dict, raw).Decoded()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("got %q", out)
	}
}

func TestDecodeOnlyFilters(t *testing.T) {
	cases := []struct {
		filter Name
		raw    string
		out    string
	}{
		{"ASCII85Decode", `87cURD]i,"Ebo80~>`, "Hello World!"},
		{"ASCIIHexDecode", "48 65 6C 6C 6F>", "Hello"},
		{"RunLengthDecode", "\x02abc\xfdx\x80", "abcxxxx"},
		{"LZWDecode", "\x80\x0B\x60\x50\x22\x0C\x0C\x85\x01", "-----A---B"},
	}
	for _, test := range cases {
		dict := NewDict().Set("Filter", test.filter)
		out, err := NewStream(dict, []byte(test.raw)).Decoded()
		if err != nil {
			t.Errorf("%s: %v", test.filter, err)
			continue
		}
		if string(out) != test.out {
			t.Errorf("%s: got %q, want %q", test.filter, out, test.out)
		}

		f, err := MakeFilter(test.filter, nil)
		if err != nil {
			t.Fatal(err)
		}
		_, err = f.Encode(nopCloser{&bytes.Buffer{}})
		if !errors.Is(err, ErrDecodeOnly) {
			t.Errorf("%s: expected ErrDecodeOnly, got %v", test.filter, err)
		}
	}
}

func TestReencodeDecodeOnly(t *testing.T) {
	dict := NewDict().Set("Filter", Name("ASCII85Decode"))
	stm := NewStream(dict, []byte("BOu!rDZ~>"))
	data, err := stm.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	stm.SetDecoded(append(data, " world"...))
	if !stm.Touched() {
		t.Error("stream not marked as touched")
	}
	raw, err := stm.Raw()
	if err != nil {
		t.Fatal(err)
	}
	if stm.Dict.Get("Filter") != Name("FlateDecode") {
		t.Errorf("filter not replaced: %s", Format(stm.Dict.Get("Filter")))
	}
	out, err := NewStream(NewDict().Set("Filter", Name("FlateDecode")), raw).Decoded()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "hello world" {
		t.Errorf("got %q", out)
	}
}

func TestPredictor(t *testing.T) {
	// two rows of three bytes, PNG "Sub" and "Up" predictors
	pred := []byte{1, 10, 5, 5, 2, 1, 1, 1}
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	zw.Write(pred)
	zw.Close()

	dict := NewDict().
		Set("Filter", Name("FlateDecode")).
		Set("DecodeParms", NewDict().Set("Predictor", Integer(12)).Set("Columns", Integer(3)))
	out, err := NewStream(dict, buf.Bytes()).Decoded()
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{10, 15, 20, 11, 16, 21}
	if !bytes.Equal(out, expected) {
		t.Errorf("got %v, want %v", out, expected)
	}
}

func TestDamagedStream(t *testing.T) {
	dict := NewDict().Set("Filter", Name("FlateDecode"))
	stm := NewStream(dict, []byte("this is not zlib data"))
	_, err := stm.Decoded()
	var filterErr *FilterError
	if !errors.As(err, &filterErr) {
		t.Errorf("expected FilterError, got %v", err)
	}
	if data := stm.DecodedOrEmpty(nil); len(data) != 0 {
		t.Errorf("expected empty data, got %q", data)
	}

	_, err = NewStream(NewDict().Set("Filter", Name("JBIG2Decode")), nil).Decoded()
	if !errors.As(err, &filterErr) {
		t.Errorf("expected FilterError for unsupported filter, got %v", err)
	}
}
