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
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Rule is a horizontal line across the available width.
type Rule struct {
	Thickness float64
	Color     graphics.RGB

	// Opacity between 0 and 1.  The value 0 is treated as fully opaque.
	Opacity float64
}

// Spacing implements the [Element] interface.
func (r *Rule) Spacing() Spacing {
	return Spacing{}
}

// TextSize implements the [Element] interface.
func (r *Rule) TextSize() float64 {
	return 0
}

func (r *Rule) thickness() float64 {
	if r.Thickness > 0 {
		return r.Thickness
	}
	return 0.5
}

// Measure implements the [Element] interface.
func (r *Rule) Measure(avail pdf.Rectangle) (float64, float64) {
	return avail.Width(), r.thickness()
}

// Draw implements the [Element] interface.
func (r *Rule) Draw(c *Canvas, box pdf.Rectangle) error {
	ops := &graphics.Ops{}
	ops.PushGraphicsState()
	err := c.SetOpacity(ops, r.Opacity)
	if err != nil {
		return err
	}
	ops.SetFillRGB(r.Color)
	ops.Rectangle(box.LLx, box.LLy, box.Width(), box.Height())
	ops.Fill()
	ops.PopGraphicsState()
	return c.Append(ops)
}

// ShapeKind selects the outline of a [Shape].
type ShapeKind int

// These are the supported shapes.
const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
)

// Shape is a rectangle or ellipse of fixed size.
type Shape struct {
	Kind          ShapeKind
	Width, Height float64

	// Fill and Stroke give the colors used to fill and outline the
	// shape.  A nil value disables filling or stroking.
	Fill      *graphics.RGB
	Stroke    *graphics.RGB
	LineWidth float64

	// Opacity between 0 and 1.  The value 0 is treated as fully opaque.
	Opacity float64

	Margins Spacing
}

// Spacing implements the [Element] interface.
func (s *Shape) Spacing() Spacing {
	return s.Margins
}

// TextSize implements the [Element] interface.
func (s *Shape) TextSize() float64 {
	return 0
}

// Measure implements the [Element] interface.
func (s *Shape) Measure(avail pdf.Rectangle) (float64, float64) {
	return s.Width, s.Height
}

// Draw implements the [Element] interface.
func (s *Shape) Draw(c *Canvas, box pdf.Rectangle) error {
	if s.Fill == nil && s.Stroke == nil {
		return nil
	}

	ops := &graphics.Ops{}
	ops.PushGraphicsState()
	err := c.SetOpacity(ops, s.Opacity)
	if err != nil {
		return err
	}
	if s.Fill != nil {
		ops.SetFillRGB(*s.Fill)
	}
	if s.Stroke != nil {
		ops.SetStrokeRGB(*s.Stroke)
		if s.LineWidth > 0 {
			ops.SetLineWidth(s.LineWidth)
		}
	}

	switch s.Kind {
	case ShapeEllipse:
		ops.Ellipse((box.LLx+box.URx)/2, (box.LLy+box.URy)/2, box.Width()/2, box.Height()/2)
	default:
		ops.Rectangle(box.LLx, box.LLy, box.Width(), box.Height())
	}

	switch {
	case s.Fill != nil && s.Stroke != nil:
		ops.FillAndStroke()
	case s.Fill != nil:
		ops.Fill()
	default:
		ops.Stroke()
	}
	ops.PopGraphicsState()
	return c.Append(ops)
}
