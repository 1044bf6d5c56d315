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
	"strings"
	"testing"
)

// buildFile assembles a PDF file with a classical cross-reference table
// from the given object bodies.  Object i+1 has body objs[i].
func buildFile(objs []string, trailer string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, pos := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", pos)
	}
	fmt.Fprintf(buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer, xref)
	return buf.Bytes()
}

func readBytes(t *testing.T, data []byte, opt *ReaderOptions) *Reader {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data), int64(len(data)), opt)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// pageText returns the decoded content stream of the first page.
func pageText(t *testing.T, r *Reader) string {
	t.Helper()
	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	pages, err := GetDict(r, catalog.Get("Pages"))
	if err != nil {
		t.Fatal(err)
	}
	kids, err := GetArray(r, pages.Get("Kids"))
	if err != nil || len(kids) == 0 {
		t.Fatalf("no pages: %v", err)
	}
	page, err := GetDict(r, kids[0])
	if err != nil {
		t.Fatal(err)
	}
	content, err := GetStream(r, page.Get("Contents"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := content.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRoundTrip(t *testing.T) {
	a, trailer := helloWorld()
	trailer.Set("Info", a.Add(NewDict().Set("Title", TextString("Grüße"))))
	buf := &bytes.Buffer{}
	err := Write(buf, a, trailer, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := readBytes(t, buf.Bytes(), nil)
	if r.Repaired() {
		t.Error("file unexpectedly repaired")
	}
	if r.Version != V1_7 {
		t.Errorf("wrong version %s", r.Version)
	}
	if text := pageText(t, r); !strings.Contains(text, "(Hello World!) Tj") {
		t.Errorf("wrong page content %q", text)
	}
	info, err := r.Info()
	if err != nil {
		t.Fatal(err)
	}
	if title, _ := info.Get("Title").(String); title.AsTextString() != "Grüße" {
		t.Errorf("wrong title %q", title)
	}
	if info.Has("XRefRepaired") {
		t.Error("unexpected repair marker")
	}

	// writing the file again gives the same structure
	buf2 := &bytes.Buffer{}
	err = Write(buf2, r, r.Trailer(), nil)
	if err != nil {
		t.Fatal(err)
	}
	r2 := readBytes(t, buf2.Bytes(), nil)
	if len(r2.XRef()) != len(r.XRef()) {
		t.Errorf("object count changed from %d to %d", len(r.XRef()), len(r2.XRef()))
	}
	if text := pageText(t, r2); !strings.Contains(text, "(Hello World!) Tj") {
		t.Errorf("wrong page content %q", text)
	}
}

func TestRepairPadding(t *testing.T) {
	a, trailer := helloWorld()
	buf := &bytes.Buffer{}
	err := Write(buf, a, trailer, nil)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	padding := bytes.Repeat([]byte("% padding\n"), 7)
	padding = append(padding[:63:63], '\n')
	idx := bytes.Index(data, []byte("1 0 obj"))
	damaged := append(append(append([]byte{}, data[:idx]...), padding...), data[idx:]...)

	r := readBytes(t, damaged, nil)
	if !r.Repaired() {
		t.Error("file not marked as repaired")
	}
	if text := pageText(t, r); !strings.Contains(text, "(Hello World!) Tj") {
		t.Errorf("wrong page content %q", text)
	}
	info, err := r.Info()
	if err != nil {
		t.Fatal(err)
	}
	if info.Get("XRefRepaired") != Bool(true) {
		t.Error("missing repair marker")
	}

	_, err = NewReader(bytes.NewReader(damaged), int64(len(damaged)), &ReaderOptions{Strict: true})
	if err == nil {
		t.Error("strict reader accepted damaged file")
	}
}

func TestRepairMissingTrailer(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}, "<< /Size 3 /Root 1 0 R >>")
	idx := bytes.Index(data, []byte("xref"))
	data = data[:idx]

	r := readBytes(t, data, nil)
	if !r.Repaired() {
		t.Error("file not marked as repaired")
	}
	if root, ok := r.Trailer().Get("Root").(Reference); !ok || root != NewReference(1, 0) {
		t.Errorf("wrong /Root %s", Format(r.Trailer().Get("Root")))
	}
}

func TestRepairLastDefinitionWins(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
		"(old)",
	}, "<< /Size 4 /Root 1 0 R >>")
	idx := bytes.Index(data, []byte("xref"))
	data = append(data[:idx:idx], "3 0 obj\n(new)\nendobj\ntrailer\n<< /Root 1 0 R >>\n"...)

	r := readBytes(t, data, nil)
	obj, err := r.Get(NewReference(3, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(obj, String("new")) {
		t.Errorf("got %s", Format(obj))
	}
}

func TestUnrepairable(t *testing.T) {
	data := []byte("%PDF-1.4\n1 0 obj\n(no catalog here)\nendobj\n")
	_, err := NewReader(bytes.NewReader(data), int64(len(data)), nil)
	if !errors.Is(err, ErrXRefUnrepairable) {
		t.Errorf("expected ErrXRefUnrepairable, got %v", err)
	}

	data = []byte("this is not a PDF file")
	_, err = NewReader(bytes.NewReader(data), int64(len(data)), nil)
	if err == nil {
		t.Error("missing error")
	}
}

func TestIncrementalUpdate(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
		"(old)",
	}, "<< /Size 4 /Root 1 0 R >>")
	prev := bytes.Index(data, []byte("xref\n"))

	buf := bytes.NewBuffer(data)
	obj3 := buf.Len()
	buf.WriteString("3 0 obj\n(new)\nendobj\n4 0 obj\n(added)\nendobj\n")
	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 1\n0000000000 65535 f \n3 2\n%010d 00000 n \n%010d 00000 n \n",
		obj3, obj3+21)
	fmt.Fprintf(buf, "trailer\n<< /Size 5 /Root 1 0 R /Prev %d >>\nstartxref\n%d\n%%%%EOF\n", prev, xref)

	r := readBytes(t, buf.Bytes(), nil)
	if r.Repaired() {
		t.Error("file unexpectedly repaired")
	}
	for _, test := range []struct {
		num int
		val Object
	}{
		{3, String("new")},
		{4, String("added")},
	} {
		obj, err := r.Get(NewReference(uint32(test.num), 0))
		if err != nil {
			t.Fatal(err)
		}
		if !Equal(obj, test.val) {
			t.Errorf("object %d: got %s", test.num, Format(obj))
		}
	}
	pages, err := GetDict(r, NewReference(2, 0))
	if err != nil || pages.Get("Type") != Name("Pages") {
		t.Errorf("object from previous section not found: %v", err)
	}
}

func TestXRefStream(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.5\n")
	off1 := buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	objStmData := "2 0 << /Type /Pages /Kids [] /Count 0 >>"
	off3 := buf.Len()
	fmt.Fprintf(buf, "3 0 obj\n<< /Type /ObjStm /N 1 /First 4 /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		len(objStmData), objStmData)

	off4 := buf.Len()
	entries := []byte{
		0, 0, 0, 255,
		1, byte(off1 >> 8), byte(off1), 0,
		2, 0, 3, 0,
		1, byte(off3 >> 8), byte(off3), 0,
		1, byte(off4 >> 8), byte(off4), 0,
	}
	fmt.Fprintf(buf, "4 0 obj\n<< /Type /XRef /Size 5 /W [1 2 1] /Root 1 0 R /Length %d >>\nstream\n",
		len(entries))
	buf.Write(entries)
	fmt.Fprintf(buf, "\nendstream\nendobj\nstartxref\n%d\n%%%%EOF\n", off4)

	r := readBytes(t, buf.Bytes(), nil)
	if r.Repaired() {
		t.Error("file unexpectedly repaired")
	}
	if r.Version != V1_5 {
		t.Errorf("wrong version %s", r.Version)
	}
	entry := r.XRef()[2]
	if entry == nil || entry.InStream != NewReference(3, 0) {
		t.Fatalf("wrong xref entry for object 2: %v", entry)
	}
	pages, err := GetDict(r, NewReference(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if pages.Get("Type") != Name("Pages") {
		t.Errorf("wrong object %s", Format(pages))
	}
	if !r.XRef()[0].Free {
		t.Error("object 0 not free")
	}
}

func TestWrongStreamLength(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
		"<< /Length 100 >>\nstream\nshort\nendstream",
	}, "<< /Size 4 /Root 1 0 R >>")
	r := readBytes(t, data, nil)
	stm, err := GetStream(r, NewReference(3, 0))
	if err != nil {
		t.Fatal(err)
	}
	out, _ := stm.Decoded()
	if string(out) != "short" {
		t.Errorf("wrong stream data %q", out)
	}
}

func TestCircularLength(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
		"<< /Length 3 0 R >>\nstream\ndata\nendstream",
	}, "<< /Size 4 /Root 1 0 R >>")
	r := readBytes(t, data, &ReaderOptions{Strict: true})
	_, err := r.Get(NewReference(3, 0))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestMissingObject(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}, "<< /Size 3 /Root 1 0 R >>")
	r := readBytes(t, data, nil)
	obj, err := r.Get(NewReference(17, 0))
	if err != nil || obj != nil {
		t.Errorf("got %s, %v", Format(obj), err)
	}
	obj, err = r.Get(NewReference(1, 5))
	if err != nil || obj != nil {
		t.Errorf("wrong generation: got %s, %v", Format(obj), err)
	}
}

func TestEncryptedRejected(t *testing.T) {
	data := buildFile([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}, "<< /Size 3 /Root 1 0 R /Encrypt << /Filter /Standard >> >>")
	_, err := NewReader(bytes.NewReader(data), int64(len(data)), nil)
	if err == nil {
		t.Error("encrypted file accepted")
	}
}
