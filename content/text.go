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

package content

import (
	"math"
	"strings"

	"seehuhn.de/go/pdfdoc"
)

// TextExtractor is a [Listener] which collects the text shown on a page.
// Line breaks are inserted when the baseline changes, and spaces where
// the gap between glyphs is wider than a fraction of the font size.
type TextExtractor struct {
	b       strings.Builder
	started bool
	lastX   float64
	lastY   float64
}

// Observe implements the [Listener] interface.
func (t *TextExtractor) Observe(ev *Event) error {
	for _, g := range ev.Glyphs {
		if t.started {
			switch {
			case math.Abs(g.Y-t.lastY) > 0.5*g.Size:
				t.b.WriteByte('\n')
			case g.X-t.lastX > 0.2*g.Size && g.Text != ' ' && !t.endsInSpace():
				t.b.WriteByte(' ')
			}
		}
		t.b.WriteRune(g.Text)
		t.started = true
		t.lastX = g.X + g.Advance
		t.lastY = g.Y
	}
	return nil
}

func (t *TextExtractor) endsInSpace() bool {
	s := t.b.String()
	return len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\n')
}

// Text returns the text collected so far.
func (t *TextExtractor) Text() string {
	return t.b.String()
}

// ExtractText returns the text shown on a page.
func ExtractText(r pdf.Getter, page *pdf.Dict) (string, error) {
	t := &TextExtractor{}
	reader := NewReader(r, nil, t)
	err := reader.ParsePage(page)
	if err != nil {
		return "", err
	}
	return t.Text(), nil
}
