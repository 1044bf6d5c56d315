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
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

// helloWorld builds a minimal one-page document.
func helloWorld() (*Arena, *Dict) {
	a := NewArena()
	pagesRef := a.Alloc()
	font := a.Add(NewDict().
		Set("Type", Name("Font")).
		Set("Subtype", Name("Type1")).
		Set("BaseFont", Name("Helvetica")))
	content := a.Add(NewDecodedStream(
		NewDict().Set("Filter", Name("FlateDecode")),
		[]byte("BT /F1 12 Tf 72 720 Td (Hello World!) Tj ET")))
	page := a.Add(NewDict().
		Set("Type", Name("Page")).
		Set("Parent", pagesRef).
		Set("MediaBox", RectXYWH(0, 0, 595, 842).AsArray()).
		Set("Resources", NewDict().Set("Font", NewDict().Set("F1", font))).
		Set("Contents", content))
	a.Put(pagesRef, NewDict().
		Set("Type", Name("Pages")).
		Set("Kids", Array{page}).
		Set("Count", Integer(1)))
	root := a.Add(NewDict().
		Set("Type", Name("Catalog")).
		Set("Pages", pagesRef))
	return a, NewDict().Set("Root", root)
}

func TestWriteStructure(t *testing.T) {
	a, trailer := helloWorld()
	buf := &bytes.Buffer{}
	err := Write(buf, a, trailer, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "%PDF-1.7\n%\x80\x80\x80\x80\n1 0 obj\n<<\n/Type /Catalog\n") {
		t.Errorf("unexpected start of file %q", out[:40])
	}
	if !strings.HasSuffix(out, "\n%%EOF\n") {
		t.Errorf("missing %%EOF")
	}

	xrefPos := strings.LastIndex(out, "xref\n0 6\n")
	if xrefPos < 0 {
		t.Fatal("xref table for 5 objects not found")
	}
	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindStringSubmatch(out)
	if m == nil || m[1] != strconv.Itoa(xrefPos) {
		t.Errorf("wrong startxref %v, want %d", m, xrefPos)
	}

	lines := strings.SplitAfter(out[xrefPos:], "\n")
	if lines[2] != "0000000000 65535 f \n" {
		t.Errorf("wrong free list head %q", lines[2])
	}
	entry := regexp.MustCompile(`^(\d{10}) 00000 n \n$`)
	for i := 1; i <= 5; i++ {
		line := lines[2+i]
		if len(line) != 20 {
			t.Errorf("xref entry %d has %d bytes", i, len(line))
		}
		m := entry.FindStringSubmatch(line)
		if m == nil {
			t.Errorf("malformed xref entry %q", line)
			continue
		}
		pos, _ := strconv.Atoi(m[1])
		if !strings.HasPrefix(out[pos:], fmt.Sprintf("%d 0 obj\n", i)) {
			t.Errorf("xref entry %d points to %q", i, out[pos:pos+10])
		}
	}

	for _, key := range []string{"/Size 6", "/Root 1 0 R", "/ID [<"} {
		if !strings.Contains(out[xrefPos:], key) {
			t.Errorf("trailer lacks %s", key)
		}
	}
	if strings.Contains(out[xrefPos:], "/Info") {
		t.Error("unexpected /Info")
	}
}

func TestWriteInterning(t *testing.T) {
	a := NewArena()
	shared := NewDict().Set("Type", Name("Font"))
	ref1 := a.Add(shared)
	ref2 := a.Add(shared)
	pages := a.Add(NewDict().Set("Type", Name("Pages")).Set("Kids", Array{}).Set("Count", Integer(0)))
	root := a.Add(NewDict().
		Set("Type", Name("Catalog")).
		Set("Pages", pages).
		Set("A", ref1).
		Set("B", ref2).
		Set("Missing", NewReference(99, 0)))

	buf := &bytes.Buffer{}
	err := Write(buf, a, NewDict().Set("Root", root), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "xref\n0 4\n") {
		t.Error("shared dictionary written more than once")
	}
	if !strings.Contains(out, "/A 3 0 R\n/B 3 0 R") {
		t.Errorf("references not merged:\n%s", out)
	}
	if !strings.Contains(out, "/Missing null") {
		t.Error("dangling reference not written as null")
	}
}

func TestWriteDirectStream(t *testing.T) {
	a := NewArena()
	pages := a.Add(NewDict().Set("Type", Name("Pages")).Set("Kids", Array{}).Set("Count", Integer(0)))
	stm := NewDecodedStream(nil, []byte("data"))
	root := a.Add(NewDict().
		Set("Type", Name("Catalog")).
		Set("Pages", pages).
		Set("Direct", stm))

	buf := &bytes.Buffer{}
	err := Write(buf, a, NewDict().Set("Root", root), nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := catalog.Get("Direct").(Reference); !ok {
		t.Fatalf("direct stream not written as a reference: %s", Format(catalog.Get("Direct")))
	}
	got, err := GetStream(r, catalog.Get("Direct"))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := got.Decoded()
	if string(data) != "data" {
		t.Errorf("wrong stream data %q", data)
	}
}

type countingWriter struct {
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func TestWriteAbort(t *testing.T) {
	a, trailer := helloWorld()
	broken := NewDecodedStream(NewDict().Set("Filter", Name("Bogus")), []byte("x"))
	catalog, _ := GetDict(a, trailer.Get("Root"))
	catalog.Set("Broken", a.Add(broken))

	w := &countingWriter{}
	err := Write(w, a, trailer, nil)
	if err == nil {
		t.Fatal("missing error")
	}
	if w.n != 0 {
		t.Errorf("%d bytes written despite error", w.n)
	}
}

func TestWriteConformance(t *testing.T) {
	a, trailer := helloWorld()
	w := &countingWriter{}
	err := Write(w, a, trailer, &WriterOptions{Conformance: PDFA1B})
	var confErr *ConformanceError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConformanceError, got %v", err)
	}
	if w.n != 0 {
		t.Errorf("%d bytes written despite error", w.n)
	}
}

func TestWriteID(t *testing.T) {
	a, trailer := helloWorld()
	trailer.Set("ID", Array{String("original"), String("old")})
	buf := &bytes.Buffer{}
	err := Write(buf, a, trailer, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)
	if err != nil {
		t.Fatal(err)
	}
	id := r.ID()
	if len(id) != 2 || string(id[0]) != "original" || len(id[1]) != 16 {
		t.Errorf("wrong file ID %q", id)
	}
}
