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

package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/content"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/font/standard"
	"seehuhn.de/go/pdfdoc/graphics"
)

const lipsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do " +
	"eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad " +
	"minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip " +
	"ex ea commodo consequat. Duis aute irure dolor in reprehenderit in " +
	"voluptate velit esse cillum dolore eu fugiat nulla pariatur."

var testPage = pdf.Rectangle{URx: 595, URy: 842}

// textLine is a line of glyphs found on a page.
type textLine struct {
	y           float64
	left, right float64
	text        string
}

// pageLines interprets the content stream of a page and groups the
// glyphs by baseline.
func pageLines(t *testing.T, page *document.Page) []textLine {
	t.Helper()
	var lines []textLine
	listener := content.ListenerFunc(func(ev *content.Event) error {
		for _, g := range ev.Glyphs {
			n := len(lines)
			if n == 0 || math.Abs(lines[n-1].y-g.Y) > 0.1 {
				lines = append(lines, textLine{y: g.Y, left: g.X})
				n++
			}
			lines[n-1].right = g.X + g.Advance
			lines[n-1].text += string(g.Text)
		}
		return nil
	})
	r := content.NewReader(page.Document().Arena, nil, listener)
	err := r.ParsePage(page.Dict)
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestSingleParagraph(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{PageSize: testPage})
	if err != nil {
		t.Fatal(err)
	}
	err = l.Add(NewParagraph("Hello World!", standard.Helvetica.New(), 12))
	if err != nil {
		t.Fatal(err)
	}

	lines := pageLines(t, doc.Page(0))
	if len(lines) != 1 || lines[0].text != "Hello World!" {
		t.Fatalf("unexpected text %v", lines)
	}
	// default margins are 10% of the page size
	if math.Abs(lines[0].left-59.5) > 1e-3 {
		t.Errorf("text starts at x=%g", lines[0].left)
	}
	if lines[0].y > 842-84.2-18 {
		t.Errorf("text too high: y=%g", lines[0].y)
	}
}

// TestJustified checks that all lines of a justified paragraph, except for
// the final one, extend over the full column width.
func TestJustified(t *testing.T) {
	const width = 340
	doc := document.New(nil)
	margin := (testPage.URx - width) / 2
	l, err := New(doc, &Options{
		PageSize: testPage,
		Margins:  &Spacing{Top: 84.2, Bottom: 84.2, Left: margin, Right: margin},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := NewParagraph(lipsum, standard.Helvetica.New(), 12)
	p.Align = AlignJustify
	err = l.Add(p)
	if err != nil {
		t.Fatal(err)
	}

	want := p.Lines(width)
	if len(want) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(want))
	}
	lines := pageLines(t, doc.Page(0))
	if len(lines) != len(want) {
		t.Fatalf("found %d lines on the page, expected %d", len(lines), len(want))
	}
	for i, line := range lines {
		if math.Abs(line.left-margin) > 1e-2 {
			t.Errorf("line %d: left edge %g", i, line.left)
		}
		var wantWidth float64
		if i < len(lines)-1 {
			wantWidth = width
		} else {
			wantWidth = want[i].Width
			if wantWidth > width-50 {
				t.Errorf("final line is not short: %g", wantWidth)
			}
		}
		if got := line.right - line.left; math.Abs(got-wantWidth) > 1e-2 {
			t.Errorf("line %d: width %g, want %g", i, got, wantWidth)
		}
	}
}

func TestAlignment(t *testing.T) {
	F := standard.Helvetica.New()
	for _, align := range []Alignment{AlignLeft, AlignRight, AlignCenter} {
		doc := document.New(nil)
		l, err := New(doc, &Options{PageSize: testPage})
		if err != nil {
			t.Fatal(err)
		}
		p := NewParagraph("Hello World!", F, 12)
		p.Align = align
		err = l.Add(p)
		if err != nil {
			t.Fatal(err)
		}

		col := l.ColumnRect(0)
		lines := pageLines(t, doc.Page(0))
		if len(lines) != 1 {
			t.Fatalf("%d: got %d lines", align, len(lines))
		}
		var want float64
		switch align {
		case AlignLeft:
			want = lines[0].left - col.LLx
		case AlignRight:
			want = col.URx - lines[0].right
		case AlignCenter:
			want = (lines[0].left - col.LLx) - (col.URx - lines[0].right)
		}
		if math.Abs(want) > 1e-2 {
			t.Errorf("alignment %d: offset %g", align, want)
		}
	}
}

func TestWhiteSpace(t *testing.T) {
	F := standard.Helvetica.New()
	cases := []struct {
		newlines, spaces bool
		want             []string
	}{
		{false, false, []string{"a b c"}},
		{true, false, []string{"a b", "c"}},
		{true, true, []string{"a  b", "c"}},
		{false, true, []string{"a  b c"}},
	}
	for _, test := range cases {
		p := NewParagraph("a  b\nc", F, 10)
		p.RespectNewlines = test.newlines
		p.RespectSpaces = test.spaces
		var got []string
		for _, line := range p.Lines(1000) {
			got = append(got, line.Text)
		}
		if strings.Join(got, "|") != strings.Join(test.want, "|") {
			t.Errorf("%t %t: got %q, want %q", test.newlines, test.spaces, got, test.want)
		}
	}
}

func TestLeading(t *testing.T) {
	p := NewParagraph("x", standard.Helvetica.New(), 10)
	if h := p.LineHeight(); math.Abs(h-12) > 1e-9 {
		t.Errorf("multiplied leading: %g", h)
	}
	p.LeadingMode = LeadingFixed
	p.Leading = 3
	if h := p.LineHeight(); math.Abs(h-13) > 1e-9 {
		t.Errorf("fixed leading: %g", h)
	}
}

func TestLongWord(t *testing.T) {
	p := NewParagraph("a verylongword b", standard.Helvetica.New(), 10)
	lines := p.Lines(20)
	var got []string
	for _, line := range lines {
		got = append(got, line.Text)
	}
	if strings.Join(got, "|") != "a|verylongword|b" {
		t.Errorf("got %q", got)
	}
}

// TestColumnOverflow fills two columns with paragraphs.
func TestColumnOverflow(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{
		PageSize: testPage,
		Columns:  2,
		Margins:  &Spacing{Top: 84.2, Bottom: 84.2, Left: 59.5, Right: 59.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	F := standard.Helvetica.New()
	for i := 0; i < 30; i++ {
		err := l.Add(NewParagraph(lipsum[:40], F, 12))
		if err != nil {
			t.Fatal(err)
		}
		if i == 14 && (doc.NumPages() != 1 || l.Column() != 1) {
			t.Errorf("paragraph 15 on page %d, column %d", doc.NumPages(), l.Column())
		}
	}
	if doc.NumPages() != 2 {
		t.Errorf("got %d pages, want 2", doc.NumPages())
	}

	// all text on page 1 lies within the columns
	for _, line := range pageLines(t, doc.Page(0)) {
		inside := false
		for i := 0; i < 2; i++ {
			col := l.ColumnRect(i)
			if line.left >= col.LLx-epsilon && line.right <= col.URx+epsilon &&
				line.y >= col.LLy && line.y <= col.URy {
				inside = true
			}
		}
		if !inside {
			t.Errorf("line %q outside the columns", line.text)
		}
	}
}

func TestTooTall(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{PageSize: testPage})
	if err != nil {
		t.Fatal(err)
	}
	err = l.Add(&Shape{Width: 10, Height: 2000, Fill: &graphics.Black})
	if !errors.Is(err, ErrElementTooTall) {
		t.Errorf("unexpected error %v", err)
	}
	err = l.Add(&Shape{Width: 1000, Height: 10, Fill: &graphics.Black})
	if !errors.Is(err, ErrElementTooWide) {
		t.Errorf("unexpected error %v", err)
	}
	if doc.NumPages() != 1 {
		t.Errorf("got %d pages", doc.NumPages())
	}
}

// TestWideWithMargin checks that the left margin counts towards the width
// of an element.
func TestWideWithMargin(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{PageSize: testPage})
	if err != nil {
		t.Fatal(err)
	}
	col := l.ColumnRect(0)
	err = l.Add(&Shape{
		Width:   col.Width() - 5,
		Height:  10,
		Fill:    &graphics.Black,
		Margins: Spacing{Left: 10},
	})
	if !errors.Is(err, ErrElementTooWide) {
		t.Errorf("unexpected error %v", err)
	}

	err = l.Add(&Shape{
		Width:   col.Width() - 10,
		Height:  10,
		Fill:    &graphics.Black,
		Margins: Spacing{Left: 10},
	})
	if err != nil {
		t.Fatal(err)
	}
}

// TestFreshColumn checks that an element which does not fit below the
// previous element is placed into the next column.
func TestFreshColumn(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{PageSize: testPage, Columns: 2})
	if err != nil {
		t.Fatal(err)
	}
	colHeight := l.ColumnRect(0).Height()

	err = l.Add(&Shape{Width: 10, Height: colHeight / 2, Fill: &graphics.Black})
	if err != nil {
		t.Fatal(err)
	}
	err = l.Add(&Shape{Width: 10, Height: colHeight, Fill: &graphics.Black})
	if err != nil {
		t.Fatal(err)
	}
	if l.Column() != 1 || doc.NumPages() != 1 {
		t.Errorf("tall element placed in column %d on page %d", l.Column(), doc.NumPages())
	}
}

func TestHeaderFooter(t *testing.T) {
	doc := document.New(nil)
	var headers, footers []int
	var bands []pdf.Rectangle
	l, err := New(doc, &Options{
		PageSize:     testPage,
		HeaderHeight: 20,
		FooterHeight: 30,
		Header: func(c *Canvas, band pdf.Rectangle, pageNo int) error {
			headers = append(headers, pageNo)
			bands = append(bands, band)
			return nil
		},
		Footer: func(c *Canvas, band pdf.Rectangle, pageNo int) error {
			footers = append(footers, pageNo)
			bands = append(bands, band)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	col := l.ColumnRect(0)
	if math.Abs(col.URy-(842-84.2-20)) > 1e-9 || math.Abs(col.LLy-(84.2+30)) > 1e-9 {
		t.Errorf("wrong column %v", col)
	}
	err = l.NextPage()
	if err != nil {
		t.Fatal(err)
	}

	if len(headers) != 2 || len(footers) != 2 || headers[1] != 2 {
		t.Errorf("headers %v, footers %v", headers, footers)
	}
	if math.Abs(bands[0].Height()-20) > 1e-9 || math.Abs(bands[1].Height()-30) > 1e-9 {
		t.Errorf("wrong bands %v", bands[:2])
	}
	if bands[0].LLy < col.URy-1e-9 || bands[1].URy > col.LLy+1e-9 {
		t.Error("bands overlap the column")
	}
}

func TestOverflow(t *testing.T) {
	doc := document.New(nil)
	pages := 0
	l, err := New(doc, &Options{
		PageSize: testPage,
		NewPage: func(doc *document.Document) (*document.Page, error) {
			if pages > 0 {
				return nil, nil
			}
			pages++
			return doc.AddPage(testPage), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = l.NextColumn()
	if err != nil {
		t.Fatal(err)
	}
	if !l.Overflowed() {
		t.Fatal("overflow not detected")
	}
	err = l.Add(NewParagraph("lost", standard.Helvetica.New(), 12))
	if err != nil {
		t.Error(err)
	}
	if doc.NumPages() != 1 {
		t.Errorf("got %d pages", doc.NumPages())
	}
}

func TestList(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{PageSize: testPage})
	if err != nil {
		t.Fatal(err)
	}
	F := standard.Helvetica.New()
	inner := NewList(F, 10)
	inner.Ordered = true
	inner.AddItem(NewParagraph("inner one", F, 10)).AddItem(NewParagraph("inner two", F, 10))
	list := NewList(F, 10)
	list.AddItem(NewParagraph("first", F, 10)).AddItem(inner).AddItem(NewParagraph("last", F, 10))
	err = l.Add(list)
	if err != nil {
		t.Fatal(err)
	}

	lines := pageLines(t, doc.Page(0))
	var got []string
	for _, line := range lines {
		got = append(got, line.text)
	}
	// the labels of the outer and the first inner item share a baseline
	want := []string{"•", "first", "•1.", "inner one", "2.", "inner two", "•", "last"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q", got)
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].y >= lines[i-1].y {
			t.Errorf("line %q is not below %q", lines[i].text, lines[i-1].text)
		}
	}
}

func TestShapeOpacity(t *testing.T) {
	doc := document.New(nil)
	l, err := New(doc, &Options{PageSize: testPage})
	if err != nil {
		t.Fatal(err)
	}
	err = l.Add(&Shape{Kind: ShapeEllipse, Width: 50, Height: 30, Fill: &graphics.Red, Opacity: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	err = l.Add(&Rule{Opacity: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	data := string(l.Canvas().Content.Bytes())
	if strings.Count(data, "/GS1 gs") != 2 || strings.Contains(data, "/GS2") {
		t.Errorf("unexpected content %q", data)
	}
}
