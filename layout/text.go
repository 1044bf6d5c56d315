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
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/graphics"
	"seehuhn.de/go/pdfdoc/hyphenation"
)

// Alignment describes the horizontal placement of lines of text.
type Alignment int

// These are the supported text alignments.
const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter

	// AlignJustify stretches all lines except the last line of each
	// paragraph to the full width.
	AlignJustify
)

// LeadingMode selects how the distance between lines is computed.
type LeadingMode int

const (
	// LeadingMultiplied uses Leading times the font size as the line
	// distance.
	LeadingMultiplied LeadingMode = iota

	// LeadingFixed adds Leading to the font size.
	LeadingFixed
)

// Paragraph is a block of text set in a single font.
type Paragraph struct {
	Text     string
	Font     font.Font
	FontSize float64
	Color    *graphics.RGB

	Align       Alignment
	LeadingMode LeadingMode
	Leading     float64

	// RespectNewlines starts a new line at every newline character.
	// RespectSpaces keeps runs of spaces.  If neither is set, all white
	// space collapses to a single space.
	RespectNewlines bool
	RespectSpaces   bool

	// Hyphenator, if set, is used to break words which do not fit at the
	// end of a line.
	Hyphenator *hyphenation.Hyphenator

	// Margins overrides the default spacing of 1.5 times the font size
	// above and below the paragraph.
	Margins *Spacing

	measured float64
	lines    []Line
}

// NewParagraph returns a left-aligned paragraph with the usual leading of
// 1.2 times the font size.
func NewParagraph(text string, f font.Font, size float64) *Paragraph {
	return &Paragraph{
		Text:     text,
		Font:     f,
		FontSize: size,
		Leading:  1.2,
	}
}

// Line is one line of a paragraph.
type Line struct {
	Text string

	// Width is the natural width of the line, without any space added
	// for justification.
	Width float64

	// Gaps is the number of spaces between words.
	Gaps int

	// Final is set for the last line of a paragraph, and for lines ending
	// at a newline character.
	Final bool
}

// Spacing implements the [Element] interface.
func (p *Paragraph) Spacing() Spacing {
	if p.Margins != nil {
		return *p.Margins
	}
	v := 1.5 * p.FontSize
	return Spacing{Top: v, Bottom: v}
}

// TextSize implements the [Element] interface.
func (p *Paragraph) TextSize() float64 {
	return p.FontSize
}

// LineHeight returns the vertical distance between consecutive baselines.
func (p *Paragraph) LineHeight() float64 {
	if p.LeadingMode == LeadingFixed {
		return p.FontSize + p.Leading
	}
	leading := p.Leading
	if leading == 0 {
		leading = 1.2
	}
	return leading * p.FontSize
}

// Measure implements the [Element] interface.
func (p *Paragraph) Measure(avail pdf.Rectangle) (float64, float64) {
	p.measured = avail.Width()
	p.lines = p.Lines(p.measured)

	var width float64
	for _, line := range p.lines {
		width = math.Max(width, line.Width)
	}
	if p.Align != AlignLeft {
		width = math.Max(width, avail.Width())
	}
	return width, float64(len(p.lines)) * p.LineHeight()
}

// NaturalWidth returns the width of the paragraph when no lines are
// broken automatically.
func (p *Paragraph) NaturalWidth() float64 {
	var width float64
	for _, line := range p.Lines(math.Inf(1)) {
		width = math.Max(width, line.Width)
	}
	return width
}

// Draw implements the [Element] interface.
func (p *Paragraph) Draw(c *Canvas, box pdf.Rectangle) error {
	lines := p.lines
	if lines == nil || math.Abs(p.measured-box.Width()) > epsilon && p.Align != AlignLeft {
		lines = p.Lines(box.Width())
	}

	name, err := c.FontName(p.Font)
	if err != nil {
		return err
	}

	upem := float64(p.Font.UnitsPerEm())
	ascent := p.Font.Ascent() * p.FontSize / upem
	lh := p.LineHeight()
	pad := (lh - font.Height(p.Font, p.FontSize)) / 2

	ops := &graphics.Ops{}
	ops.TextBegin()
	if p.Color != nil {
		ops.SetFillRGB(*p.Color)
	}
	ops.TextSetFont(name, p.FontSize)
	var prevX, prevY, wordSpace float64
	for i, line := range lines {
		y := box.URy - float64(i)*lh - pad - ascent
		x := box.LLx
		switch p.Align {
		case AlignRight:
			x = box.URx - line.Width
		case AlignCenter:
			x = box.LLx + (box.Width()-line.Width)/2
		}

		var ws float64
		if p.Align == AlignJustify && !line.Final && line.Gaps > 0 {
			ws = math.Max((box.Width()-line.Width)/float64(line.Gaps), 0)
		}
		if ws != wordSpace {
			ops.TextSetWordSpacing(ws)
			wordSpace = ws
		}

		ops.TextFirstLine(x-prevX, y-prevY)
		prevX, prevY = x, y
		if line.Text != "" {
			ops.TextShow(font.Layout(p.Font, line.Text).Encode())
		}
	}
	ops.TextEnd()
	return c.Append(ops)
}

// Lines breaks the paragraph into lines of at most the given width.
// Words which are longer than a line are placed on a line by themselves.
func (p *Paragraph) Lines(width float64) []Line {
	text := norm.NFC.String(p.Text)

	segments := []string{text}
	if p.RespectNewlines {
		segments = strings.Split(text, "\n")
	}

	var res []Line
	for _, seg := range segments {
		lines := p.breakLines(p.words(seg), width)
		if len(lines) == 0 {
			lines = []Line{{}}
		}
		lines[len(lines)-1].Final = true
		res = append(res, lines...)
	}
	return res
}

func (p *Paragraph) words(seg string) []string {
	if !p.RespectSpaces {
		return strings.Fields(seg)
	}
	seg = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, seg)
	if seg == "" {
		return nil
	}
	return strings.Split(seg, " ")
}

// breakLines implements greedy line breaking.
func (p *Paragraph) breakLines(words []string, width float64) []Line {
	words = append([]string(nil), words...)

	var lines []Line
	var cur []string
	flush := func() {
		if cur != nil {
			lines = append(lines, p.makeLine(cur))
			cur = nil
		}
	}
	for i := 0; i < len(words); i++ {
		word := words[i]
		cand := append(cur[:len(cur):len(cur)], word)
		if p.width(strings.Join(cand, " ")) <= width+epsilon {
			cur = cand
			continue
		}

		if p.Hyphenator != nil {
			head, tail, ok := p.splitWord(cur, word, width)
			if ok {
				cur = append(cur, head)
				flush()
				words[i] = tail
				i--
				continue
			}
		}

		if len(cur) == 0 {
			cur = cand
			flush()
			continue
		}
		flush()
		i--
	}
	flush()
	return lines
}

// splitWord finds the longest hyphenated prefix of word which still fits
// onto the line.
func (p *Paragraph) splitWord(cur []string, word string, width float64) (string, string, bool) {
	start := strings.IndexFunc(word, unicode.IsLetter)
	end := strings.LastIndexFunc(word, unicode.IsLetter)
	if start < 0 {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(word[end:])
	end += size
	parts := p.Hyphenator.Hyphenate(word[start:end])
	if len(parts) < 2 {
		return "", "", false
	}
	parts[0] = word[:start] + parts[0]
	parts[len(parts)-1] += word[end:]

	fits := func(k int) bool {
		head := strings.Join(parts[:k], "") + "-"
		line := strings.Join(append(cur[:len(cur):len(cur)], head), " ")
		return p.width(line) <= width+epsilon
	}
	k := sort.Search(len(parts)-1, func(i int) bool { return !fits(i + 1) })
	if k == 0 {
		return "", "", false
	}
	return strings.Join(parts[:k], "") + "-", strings.Join(parts[k:], ""), true
}

func (p *Paragraph) makeLine(words []string) Line {
	text := strings.Join(words, " ")
	return Line{
		Text:  text,
		Width: p.width(text),
		Gaps:  len(words) - 1,
	}
}

func (p *Paragraph) width(s string) float64 {
	return font.TextWidth(p.Font, s, p.FontSize)
}
