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

package annotation

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/content"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/font/standard"
	"seehuhn.de/go/pdfdoc/graphics"
)

// newPage returns a document with one A4 page.  The content stream body is
// appended to the page, with /F1 set up as Helvetica.
func newPage(t *testing.T, body string) (*document.Document, *document.Page) {
	t.Helper()
	doc := document.New(nil)
	page := doc.AddPage(pdf.Rectangle{URx: 595, URy: 842})
	if body == "" {
		return doc, page
	}

	ref, err := doc.FontRef(standard.Helvetica.New())
	if err != nil {
		t.Fatal(err)
	}
	cs, err := page.Content()
	if err != nil {
		t.Fatal(err)
	}
	name, err := cs.FontName(ref)
	if err != nil {
		t.Fatal(err)
	}
	if name != "F1" {
		t.Fatalf("font name %q, want F1", name)
	}
	err = page.AppendOperators([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	return doc, page
}

func TestAddNames(t *testing.T) {
	doc, page := newPage(t, "")

	note := &Text{
		Common: Common{Rect: pdf.Rectangle{LLx: 10, LLy: 10, URx: 30, URy: 30}},
	}
	named := &Square{
		Common: Common{Rect: pdf.Rectangle{LLx: 40, LLy: 40, URx: 80, URy: 60}, Name: "box"},
	}
	link := &Link{
		Common: Common{Rect: pdf.Rectangle{LLx: 100, LLy: 100, URx: 200, URy: 120}},
		URI:    "https://example.com/",
	}
	var refs []pdf.Reference
	for _, a := range []Annotation{note, named, link} {
		ref, err := Add(doc, page, a)
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, ref)
	}

	annots := page.Dict.Get("Annots").(pdf.Array)
	if len(annots) != 3 {
		t.Fatalf("got %d annotations, want 3", len(annots))
	}
	wantNames := []string{"annotation-000", "box", "annotation-002"}
	for i, ref := range refs {
		if annots[i] != ref {
			t.Errorf("/Annots[%d] = %v, want %v", i, annots[i], ref)
		}
		dict, err := pdf.GetDict(doc.Arena, ref)
		if err != nil {
			t.Fatal(err)
		}
		nm, _ := pdf.GetString(doc.Arena, dict.Get("NM"))
		if nm.AsTextString() != wantNames[i] {
			t.Errorf("annotation %d: /NM %q, want %q", i, nm.AsTextString(), wantNames[i])
		}
		if dict.Get("P") != page.Ref {
			t.Errorf("annotation %d: /P %v, want %v", i, dict.Get("P"), page.Ref)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	doc, page := newPage(t, "")
	target := doc.AddPage(pdf.Rectangle{URx: 595, URy: 842})

	red := graphics.Red
	in := []Annotation{
		&Link{
			Common: Common{Rect: pdf.Rectangle{LLx: 10, LLy: 10, URx: 100, URy: 20}},
			URI:    "https://example.com/",
		},
		&Link{
			Common:    Common{Rect: pdf.Rectangle{LLx: 10, LLy: 30, URx: 100, URy: 40}},
			Dest:      target.Ref,
			Highlight: "O",
		},
		&Text{
			Common: Common{Rect: pdf.Rectangle{LLx: 10, LLy: 50, URx: 30, URy: 70}, Contents: "Ünïcode note"},
			Markup: Markup{Title: "Reviewer", Subject: "typo"},
			Open:   true,
			Icon:   "Comment",
		},
		&Square{
			Common:      Common{Rect: pdf.Rectangle{LLx: 50, LLy: 50, URx: 90, URy: 70}, Color: &red},
			FillColor:   &graphics.Blue,
			BorderWidth: 2,
			Margin:      []float64{1, 1, 1, 1},
		},
		&Circle{
			Common:      Common{Rect: pdf.Rectangle{LLx: 100, LLy: 50, URx: 140, URy: 70}, Flags: FlagPrint},
			BorderWidth: -1,
		},
		&Highlight{
			Common:     Common{Rect: pdf.Rectangle{LLx: 10, LLy: 80, URx: 200, URy: 100}},
			QuadPoints: []float64{10, 100, 200, 100, 10, 80, 200, 80},
		},
		&Redact{
			Common:      Common{Rect: pdf.Rectangle{LLx: 10, LLy: 110, URx: 200, URy: 130}},
			FillColor:   &graphics.White,
			OverlayText: "removed",
			Repeat:      true,
		},
	}
	for _, a := range in {
		_, err := Add(doc, page, a)
		if err != nil {
			t.Fatal(err)
		}
	}

	buf := &bytes.Buffer{}
	err := doc.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := document.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)
	if err != nil {
		t.Fatal(err)
	}
	page2 := doc2.Page(0)
	out, err := List(doc2.Arena, page2.Dict)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d annotations, want %d", len(out), len(in))
	}

	for i := range in {
		// page references are renumbered by the writer
		c := out[i].GetCommon()
		if c.Page != page2.Ref {
			t.Errorf("annotation %d: page %v, want %v", i, c.Page, page2.Ref)
		}
		c.Page = in[i].GetCommon().Page
	}
	// The second link points to the second page.
	link := out[1].(*Link)
	if link.Dest != doc2.Page(1).Ref {
		t.Errorf("link destination %v, want %v", link.Dest, doc2.Page(1).Ref)
	}
	link.Dest = target.Ref

	// Rect-only highlights are written with explicit quad points.
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}
}

func TestInvalid(t *testing.T) {
	doc, page := newPage(t, "")
	rect := pdf.Rectangle{LLx: 10, LLy: 10, URx: 20, URy: 20}
	cases := []Annotation{
		&Text{},
		&Link{Common: Common{Rect: rect}},
		&Link{Common: Common{Rect: rect}, URI: "https://example.com/", Dest: page.Ref},
		&Highlight{Common: Common{Rect: rect}, QuadPoints: []float64{1, 2, 3}},
	}
	for i, a := range cases {
		_, err := Add(doc, page, a)
		if err == nil {
			t.Errorf("%d: missing error", i)
		}
	}
	if page.Dict.Has("Annots") {
		t.Error("failed annotations were added to the page")
	}
}

// shown returns the text of each text showing operator on the page,
// together with the baseline of its first glyph.
func shown(t *testing.T, doc *document.Document, page *document.Page) map[string]float64 {
	t.Helper()
	res := make(map[string]float64)
	l := content.ListenerFunc(func(ev *content.Event) error {
		if ev.IsTextShowing() && len(ev.Glyphs) > 0 {
			res[ev.Text()] = ev.Glyphs[0].Y
		}
		return nil
	})
	err := content.NewReader(doc.Arena, nil, l).ParsePage(page.Dict)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestApplyRedactions(t *testing.T) {
	doc, page := newPage(t, "BT /F1 12 Tf 72 700 Td (Secret) Tj 0 -20 Td (Public) Tj ET")

	_, err := Add(doc, page, &Text{
		Common: Common{Rect: pdf.Rectangle{LLx: 300, LLy: 300, URx: 320, URy: 320}},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = Add(doc, page, &Redact{
		Common:    Common{Rect: pdf.Rectangle{LLx: 70, LLy: 695, URx: 200, URy: 712}},
		FillColor: &graphics.Gray,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = ApplyRedactions(doc, page)
	if err != nil {
		t.Fatal(err)
	}

	text, err := page.Text()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(text) != "Public" {
		t.Errorf("page text %q, want %q", text, "Public")
	}

	cs, err := page.Content()
	if err != nil {
		t.Fatal(err)
	}
	data := string(cs.Bytes())
	if strings.Contains(data, "Secret") {
		t.Error("redacted text is still present")
	}
	if !strings.Contains(data, " re\n") {
		t.Error("redacted area is not filled")
	}

	annots, err := List(doc.Arena, page.Dict)
	if err != nil {
		t.Fatal(err)
	}
	if len(annots) != 1 || annots[0].AnnotationType() != "Text" {
		t.Errorf("unexpected annotations after redaction: %v", annots)
	}
}

func TestRedactNextLine(t *testing.T) {
	doc, page := newPage(t, "BT /F1 12 Tf 14 TL 72 700 Td (Keep) Tj (Secret) ' 1 0.5 (After) \" ET")

	_, err := Add(doc, page, &Redact{
		Common:     Common{Rect: pdf.Rectangle{LLx: 60, LLy: 600, URx: 300, URy: 692}},
		QuadPoints: []float64{60, 692, 300, 692, 60, 684, 300, 684},
	})
	if err != nil {
		t.Fatal(err)
	}

	before := shown(t, doc, page)
	err = ApplyRedactions(doc, page)
	if err != nil {
		t.Fatal(err)
	}
	after := shown(t, doc, page)

	want := map[string]float64{
		"Keep":  before["Keep"],
		"After": before["After"],
	}
	if d := cmp.Diff(want, after); d != "" {
		t.Errorf("unexpected text after redaction (-want +got):\n%s", d)
	}
}

func TestRedactMalformed(t *testing.T) {
	body := "BT /F1 12 Tf 72 700 Td (Secret) Tj ET [1 2 >>"
	doc, page := newPage(t, body)

	_, err := Add(doc, page, &Redact{
		Common: Common{Rect: pdf.Rectangle{LLx: 70, LLy: 695, URx: 200, URy: 712}},
	})
	if err != nil {
		t.Fatal(err)
	}

	err = ApplyRedactions(doc, page)
	var pErr *pdf.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("got error %v, want a parse error", err)
	}

	cs, err := page.Content()
	if err != nil {
		t.Fatal(err)
	}
	if string(cs.Bytes()) != body {
		t.Errorf("content changed to %q", cs.Bytes())
	}
	annots, _ := pdf.GetArray(doc.Arena, page.Dict.Get("Annots"))
	if len(annots) != 1 {
		t.Errorf("got %d annotations, want 1", len(annots))
	}
}

func TestRedactUndecodable(t *testing.T) {
	doc, page := newPage(t, "")
	junk := []byte("this is not zlib data at all")
	stm := pdf.NewStream(pdf.NewDict().Set("Filter", pdf.Name("FlateDecode")), junk)
	page.Dict.Set("Contents", doc.Arena.Add(stm))

	_, err := Add(doc, page, &Redact{
		Common: Common{Rect: pdf.Rectangle{LLx: 70, LLy: 695, URx: 200, URy: 712}},
	})
	if err != nil {
		t.Fatal(err)
	}

	err = ApplyRedactions(doc, page)
	var fErr *pdf.FilterError
	if !errors.As(err, &fErr) {
		t.Fatalf("got error %v, want a filter error", err)
	}

	raw, err := stm.Raw()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, junk) {
		t.Errorf("content changed to %q", raw)
	}
	annots, _ := pdf.GetArray(doc.Arena, page.Dict.Get("Annots"))
	if len(annots) != 1 {
		t.Errorf("got %d annotations, want 1", len(annots))
	}
}
