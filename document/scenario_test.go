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

package document_test

import (
	"bytes"
	"strings"
	"testing"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/font/standard"
	"seehuhn.de/go/pdfdoc/layout"
)

// helloWorld creates a one-page document showing "Hello World!".
func helloWorld(t *testing.T) []byte {
	t.Helper()
	doc := document.New(nil)
	l, err := layout.New(doc, &layout.Options{
		PageSize: pdf.Rectangle{URx: 595, URy: 842},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = l.Add(layout.NewParagraph("Hello World!", standard.Helvetica.New(), 12))
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	err = doc.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestHelloWorld(t *testing.T) {
	data := helloWorld(t)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatal(err)
	}
	live := 0
	for num, entry := range r.XRef() {
		if num != 0 && !entry.Free {
			live++
		}
	}
	if live != 5 {
		t.Errorf("got %d objects, want 5", live)
	}

	doc, err := document.Read(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatal(err)
	}
	c, err := doc.Page(0).Content()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(c.Bytes(), []byte("(Hello World!) Tj")) {
		t.Errorf("unexpected content %q", c.Bytes())
	}
}

// TestBrokenXRef checks that files with wrong object offsets can still be
// read.
func TestBrokenXRef(t *testing.T) {
	data := helloWorld(t)

	// 64 bytes of comments
	padding := strings.Repeat("% padding\n", 7)[:63] + "\n"
	pos := bytes.Index(data, []byte("obj"))
	if pos < 0 {
		t.Fatal("no object found")
	}
	var broken []byte
	broken = append(broken, data[:pos]...)
	broken = append(broken, padding...)
	broken = append(broken, data[pos:]...)

	doc, err := document.Read(bytes.NewReader(broken), int64(len(broken)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Repaired() {
		t.Error("damage not detected")
	}
	if doc.NumPages() != 1 {
		t.Fatalf("got %d pages", doc.NumPages())
	}
	text, err := doc.Page(0).Text()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(text) != "Hello World!" {
		t.Errorf("got %q", text)
	}

	// the repaired document can be written again
	buf := &bytes.Buffer{}
	err = doc.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
}
