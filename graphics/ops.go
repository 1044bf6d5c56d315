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

package graphics

import (
	"bytes"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/internal/float"
)

// Ops accumulates content stream operators.  Every operator is terminated
// by a newline.
//
// The zero value is ready to use.
type Ops struct {
	buf bytes.Buffer
}

// Bytes returns the accumulated operators.
func (o *Ops) Bytes() []byte {
	return o.buf.Bytes()
}

// Len returns the number of bytes accumulated so far.
func (o *Ops) Len() int {
	return o.buf.Len()
}

// Reset discards all accumulated operators.
func (o *Ops) Reset() {
	o.buf.Reset()
}

func (o *Ops) num(x float64) {
	o.buf.WriteString(format(x))
	o.buf.WriteByte(' ')
}

func (o *Ops) op(name string) {
	o.buf.WriteString(name)
	o.buf.WriteByte('\n')
}

func (o *Ops) obj(obj pdf.Object) {
	_ = obj.PDF(&o.buf)
	o.buf.WriteByte(' ')
}

func format(x float64) string {
	return float.Format(x, 3)
}

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (o *Ops) PushGraphicsState() {
	o.op("q")
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (o *Ops) PopGraphicsState() {
	o.op("Q")
}

// Transform applies a transformation matrix to the coordinate system.
//
// This implements the PDF graphics operator "cm".
func (o *Ops) Transform(m matrix.Matrix) {
	for _, x := range m {
		o.num(x)
	}
	o.op("cm")
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (o *Ops) SetLineWidth(w float64) {
	o.num(w)
	o.op("w")
}

// SetLineDash sets the dash pattern.  An empty pattern gives solid lines.
//
// This implements the PDF graphics operator "d".
func (o *Ops) SetLineDash(pattern []float64, phase float64) {
	arr := make(pdf.Array, len(pattern))
	for i, x := range pattern {
		arr[i] = pdf.Number(x)
	}
	o.obj(arr)
	o.num(phase)
	o.op("d")
}

// SetExtGState applies the named graphics state parameter dictionary.
//
// This implements the PDF graphics operator "gs".
func (o *Ops) SetExtGState(name pdf.Name) {
	o.obj(name)
	o.op("gs")
}

// SetStrokeGray sets the stroke color to a gray level.
//
// This implements the PDF graphics operator "G".
func (o *Ops) SetStrokeGray(g float64) {
	o.num(g)
	o.op("G")
}

// SetFillGray sets the fill color to a gray level.
//
// This implements the PDF graphics operator "g".
func (o *Ops) SetFillGray(g float64) {
	o.num(g)
	o.op("g")
}

// SetStrokeRGB sets the stroke color.
//
// This implements the PDF graphics operator "RG".
func (o *Ops) SetStrokeRGB(c RGB) {
	o.num(c.R)
	o.num(c.G)
	o.num(c.B)
	o.op("RG")
}

// SetFillRGB sets the fill color.
//
// This implements the PDF graphics operator "rg".
func (o *Ops) SetFillRGB(c RGB) {
	o.num(c.R)
	o.num(c.G)
	o.num(c.B)
	o.op("rg")
}

// MoveTo starts a new path at the given coordinates.
//
// This implements the PDF graphics operator "m".
func (o *Ops) MoveTo(x, y float64) {
	o.num(x)
	o.num(y)
	o.op("m")
}

// LineTo appends a straight line segment to the current path.
//
// This implements the PDF graphics operator "l".
func (o *Ops) LineTo(x, y float64) {
	o.num(x)
	o.num(y)
	o.op("l")
}

// CurveTo appends a cubic Bezier curve to the current path.
//
// This implements the PDF graphics operator "c".
func (o *Ops) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	for _, x := range []float64{x1, y1, x2, y2, x3, y3} {
		o.num(x)
	}
	o.op("c")
}

// ClosePath closes the current subpath.
//
// This implements the PDF graphics operator "h".
func (o *Ops) ClosePath() {
	o.op("h")
}

// Rectangle appends a rectangle to the current path as a closed subpath.
//
// This implements the PDF graphics operator "re".
func (o *Ops) Rectangle(x, y, width, height float64) {
	o.num(x)
	o.num(y)
	o.num(width)
	o.num(height)
	o.op("re")
}

// Circle appends a circle to the current path, approximated by four
// Bezier curves.
func (o *Ops) Circle(x, y, radius float64) {
	o.Ellipse(x, y, radius, radius)
}

// Ellipse appends an axis-parallel ellipse to the current path.
func (o *Ops) Ellipse(x, y, rx, ry float64) {
	k := 4 * (math.Sqrt2 - 1) / 3
	o.MoveTo(x+rx, y)
	o.CurveTo(x+rx, y+k*ry, x+k*rx, y+ry, x, y+ry)
	o.CurveTo(x-k*rx, y+ry, x-rx, y+k*ry, x-rx, y)
	o.CurveTo(x-rx, y-k*ry, x-k*rx, y-ry, x, y-ry)
	o.CurveTo(x+k*rx, y-ry, x+rx, y-k*ry, x+rx, y)
	o.ClosePath()
}

// Stroke strokes the current path.
//
// This implements the PDF graphics operator "S".
func (o *Ops) Stroke() {
	o.op("S")
}

// Fill fills the current path, using the nonzero winding number rule.
//
// This implements the PDF graphics operator "f".
func (o *Ops) Fill() {
	o.op("f")
}

// FillAndStroke fills and strokes the current path.
//
// This implements the PDF graphics operator "B".
func (o *Ops) FillAndStroke() {
	o.op("B")
}

// ClipNonZero sets the current path as the clipping path and ends the
// path without painting it.
//
// This implements the PDF graphics operators "W n".
func (o *Ops) ClipNonZero() {
	o.buf.WriteString("W ")
	o.op("n")
}

// DrawXObject paints the named XObject.
//
// This implements the PDF graphics operator "Do".
func (o *Ops) DrawXObject(name pdf.Name) {
	o.obj(name)
	o.op("Do")
}

// TextBegin starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (o *Ops) TextBegin() {
	o.op("BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (o *Ops) TextEnd() {
	o.op("ET")
}

// TextSetFont sets the font and font size.
//
// This implements the PDF graphics operator "Tf".
func (o *Ops) TextSetFont(name pdf.Name, size float64) {
	o.obj(name)
	o.num(size)
	o.op("Tf")
}

// TextFirstLine moves to the start of the first line of text.
//
// This implements the PDF graphics operator "Td".
func (o *Ops) TextFirstLine(x, y float64) {
	o.num(x)
	o.num(y)
	o.op("Td")
}

// TextSetMatrix replaces the text matrix and the text line matrix.
//
// This implements the PDF graphics operator "Tm".
func (o *Ops) TextSetMatrix(m matrix.Matrix) {
	for _, x := range m {
		o.num(x)
	}
	o.op("Tm")
}

// TextSetWordSpacing sets the extra space added at each space character.
//
// This implements the PDF graphics operator "Tw".
func (o *Ops) TextSetWordSpacing(w float64) {
	o.num(w)
	o.op("Tw")
}

// TextSetCharacterSpacing sets the extra space added after each glyph.
//
// This implements the PDF graphics operator "Tc".
func (o *Ops) TextSetCharacterSpacing(c float64) {
	o.num(c)
	o.op("Tc")
}

// TextShow shows a string.
//
// This implements the PDF graphics operator "Tj".
func (o *Ops) TextShow(s pdf.String) {
	o.obj(s)
	o.op("Tj")
}

// TextShowArray shows a sequence of strings, with position adjustments
// between them.  Elements of seq must be strings or numbers; a number
// moves the next glyph to the left by the given amount, in thousandths
// of text space units.
//
// This implements the PDF graphics operator "TJ".
func (o *Ops) TextShowArray(seq pdf.Array) {
	o.obj(seq)
	o.op("TJ")
}

// RGB is a color in the DeviceRGB color space.  Components range from
// 0 to 1.
type RGB struct {
	R, G, B float64
}

// Some commonly used colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
	Gray  = RGB{0.5, 0.5, 0.5}
	Red   = RGB{1, 0, 0}
	Blue  = RGB{0, 0, 1}
)

// AsArray returns the color as an array of three numbers.
func (c RGB) AsArray() pdf.Array {
	return pdf.Array{pdf.Number(c.R), pdf.Number(c.G), pdf.Number(c.B)}
}
