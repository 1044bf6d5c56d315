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

package outline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/graphics"
)

func TestOutlineTree(t *testing.T) {
	doc := document.New(nil)

	refs := map[string]pdf.Reference{}
	for _, e := range []struct {
		depth int
		title string
	}{
		{0, "A"}, {0, "B"}, {1, "B.1"}, {1, "B.2"}, {0, "C"},
	} {
		ref, err := Add(doc, e.depth, e.title, 0)
		if err != nil {
			t.Fatal(err)
		}
		refs[e.title] = ref
	}

	a := doc.Arena
	root, err := pdf.GetDict(a, doc.Catalog.Get("Outlines"))
	if err != nil {
		t.Fatal(err)
	}
	if c := root.Get("Count"); c != pdf.Integer(5) {
		t.Errorf("root /Count = %v, want 5", c)
	}
	if root.Get("First") != refs["A"] || root.Get("Last") != refs["C"] {
		t.Errorf("root /First %v /Last %v, want %v %v",
			root.Get("First"), root.Get("Last"), refs["A"], refs["C"])
	}

	b, _ := pdf.GetDict(a, refs["B"])
	if c := b.Get("Count"); c != pdf.Integer(2) {
		t.Errorf("B /Count = %v, want 2", c)
	}
	if b.Get("First") != refs["B.1"] || b.Get("Last") != refs["B.2"] {
		t.Error("wrong children of B")
	}

	// walk the top-level list in both directions
	var fwd, back []string
	for ref, _ := root.Get("First").(pdf.Reference); ref != 0; {
		d, _ := pdf.GetDict(a, ref)
		title, _ := pdf.GetString(a, d.Get("Title"))
		fwd = append(fwd, title.AsTextString())
		if d.Get("Parent") != doc.Catalog.Get("Outlines") {
			t.Errorf("%s: wrong /Parent", title)
		}
		ref, _ = d.Get("Next").(pdf.Reference)
	}
	for ref, _ := root.Get("Last").(pdf.Reference); ref != 0; {
		d, _ := pdf.GetDict(a, ref)
		title, _ := pdf.GetString(a, d.Get("Title"))
		back = append(back, title.AsTextString())
		ref, _ = d.Get("Prev").(pdf.Reference)
	}
	if d := cmp.Diff([]string{"A", "B", "C"}, fwd); d != "" {
		t.Errorf("forward (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"C", "B", "A"}, back); d != "" {
		t.Errorf("backward (-want +got):\n%s", d)
	}
}

func TestMissingParent(t *testing.T) {
	doc := document.New(nil)
	_, err := Add(doc, 1, "orphan", 0)
	if !errors.Is(err, ErrNoParent) {
		t.Errorf("depth 1 in empty outline: got %v", err)
	}

	_, err = Add(doc, 0, "top", 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Add(doc, 2, "orphan", 0)
	if !errors.Is(err, ErrNoParent) {
		t.Errorf("depth 2 below depth 0: got %v", err)
	}
	_, err = Add(doc, -1, "negative", 0)
	if !errors.Is(err, ErrNoParent) {
		t.Errorf("negative depth: got %v", err)
	}
}

func TestClosedParent(t *testing.T) {
	doc := document.New(nil)
	top, err := Add(doc, 0, "top", 0)
	if err != nil {
		t.Fatal(err)
	}
	mid, err := Add(doc, 1, "mid", 0)
	if err != nil {
		t.Fatal(err)
	}
	a := doc.Arena
	midDict, _ := pdf.GetDict(a, mid)
	midDict.Set("Count", pdf.Integer(0))
	_, err = Add(doc, 2, "leaf", 0)
	if err != nil {
		t.Fatal(err)
	}
	midDict.Set("Count", pdf.Integer(-1))
	_, err = Add(doc, 2, "hidden", 0)
	if err != nil {
		t.Fatal(err)
	}

	topDict, _ := pdf.GetDict(a, top)
	root, _ := pdf.GetDict(a, doc.Catalog.Get("Outlines"))
	got := []pdf.Object{root.Get("Count"), topDict.Get("Count"), midDict.Get("Count")}
	want := []pdf.Object{pdf.Integer(3), pdf.Integer(2), pdf.Integer(-2)}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("counts (-want +got):\n%s", d)
	}
}

func TestBrokenAncestors(t *testing.T) {
	cases := []struct {
		key pdf.Name
		val pdf.Object
	}{
		{"Parent", pdf.Name("root")},
		{"Count", pdf.String("many")},
	}
	for _, test := range cases {
		doc := document.New(nil)
		top, err := Add(doc, 0, "top", 0)
		if err != nil {
			t.Fatal(err)
		}
		a := doc.Arena
		topDict, _ := pdf.GetDict(a, top)
		topDict.Set(test.key, test.val)

		_, err = Add(doc, 1, "child", 0)
		if !errors.Is(err, errBrokenOutline) {
			t.Errorf("/%s: got error %v", test.key, err)
		}
		root, _ := pdf.GetDict(a, doc.Catalog.Get("Outlines"))
		if got := root.Get("Count"); got != pdf.Integer(1) {
			t.Errorf("/%s: root /Count changed to %v", test.key, got)
		}
		if topDict.Has("First") {
			t.Errorf("/%s: child was linked into the tree", test.key)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	doc := document.New(nil)
	p1 := doc.AddPage(pdf.Rectangle{URx: 200, URy: 200})
	p2 := doc.AddPage(pdf.Rectangle{URx: 200, URy: 200})

	_, err := Add(doc, 0, "Chapter 1", p1.Ref)
	if err != nil {
		t.Fatal(err)
	}
	sec, err := Add(doc, 1, "Section 1.1", p2.Ref)
	if err != nil {
		t.Fatal(err)
	}
	err = SetStyle(doc, sec, &graphics.Red, true, false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Add(doc, 0, "Appendix", 0)
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	err = doc.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := document.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)
	if err != nil {
		t.Fatal(err)
	}
	o, err := Read(doc2.Arena, doc2.Catalog)
	if err != nil {
		t.Fatal(err)
	}

	want := &Outline{
		Items: []*Item{
			{
				Title: "Chapter 1",
				Dest:  doc2.Page(0).Ref,
				Open:  true,
				Children: []*Item{
					{Title: "Section 1.1", Dest: doc2.Page(1).Ref, Color: &graphics.Red, Bold: true},
				},
			},
			{Title: "Appendix"},
		},
	}
	if d := cmp.Diff(want, o); d != "" {
		t.Errorf("outline (-want +got):\n%s", d)
	}
}

func TestReadLoop(t *testing.T) {
	for _, good := range []bool{true, false} {
		a := pdf.NewArena()
		refRoot := a.Alloc()
		refA := a.Alloc()
		refB := a.Alloc()
		refC := a.Alloc()

		A := pdf.NewDict().
			Set("Title", pdf.TextString("A")).
			Set("Parent", refRoot)
		if good {
			A.Set("Next", refB)
		} else {
			A.Set("Next", refA).Set("Prev", refA)
		}
		a.Put(refA, A)
		a.Put(refB, pdf.NewDict().
			Set("Title", pdf.TextString("B")).
			Set("Prev", refA).
			Set("Next", refC).
			Set("Parent", refRoot))
		a.Put(refC, pdf.NewDict().
			Set("Title", pdf.TextString("C")).
			Set("Prev", refB).
			Set("Parent", refRoot))
		a.Put(refRoot, pdf.NewDict().
			Set("First", refA).
			Set("Last", refC))
		catalog := pdf.NewDict().Set("Outlines", refRoot)

		o, err := Read(a, catalog)
		if (err == nil) != good {
			t.Errorf("good=%v, err=%v", good, err)
		}
		if good && len(o.Items) != 3 {
			t.Errorf("got %d items, want 3", len(o.Items))
		}
	}
}

func TestNoOutline(t *testing.T) {
	doc := document.New(nil)
	o, err := Read(doc.Arena, doc.Catalog)
	if err != nil || o != nil {
		t.Errorf("got %v, %v", o, err)
	}
}
