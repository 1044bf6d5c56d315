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

package runlength

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		in, out []byte
	}{
		{[]byte{128}, []byte{}},
		{[]byte{2, 'a', 'b', 'c', 128}, []byte("abc")},
		{[]byte{254, 'x', 128}, []byte("xxx")},
		{[]byte{1, 'a', 'b', 253, 0, 0, 'z', 128}, []byte{'a', 'b', 0, 0, 0, 0, 'z'}},
		{[]byte{0, 'q'}, []byte("q")},
		{append([]byte{129, 7}, 128), bytes.Repeat([]byte{7}, 128)},
	}
	for i, test := range cases {
		out, err := io.ReadAll(Decode(bytes.NewReader(test.in)))
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(test.out, out); diff != "" {
			t.Errorf("case %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestTruncated(t *testing.T) {
	_, err := io.ReadAll(Decode(bytes.NewReader([]byte{5, 'a', 'b'})))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}
