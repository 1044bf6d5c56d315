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

// Image places a raster image.
type Image struct {
	Image *graphics.Image

	// Width and Height give the size on the page.  If both are zero, one
	// pixel is drawn as one unit of user space.  If only one is given,
	// the other is chosen to keep the aspect ratio.  Images which are
	// wider than the available space are scaled down.
	Width, Height float64

	Margins Spacing
}

// Spacing implements the [Element] interface.
func (im *Image) Spacing() Spacing {
	return im.Margins
}

// TextSize implements the [Element] interface.
func (im *Image) TextSize() float64 {
	return 0
}

// Measure implements the [Element] interface.
func (im *Image) Measure(avail pdf.Rectangle) (float64, float64) {
	pw := float64(im.Image.Width)
	ph := float64(im.Image.Height)
	w, h := im.Width, im.Height
	switch {
	case w == 0 && h == 0:
		w, h = pw, ph
	case w == 0:
		w = h * pw / ph
	case h == 0:
		h = w * ph / pw
	}
	if aw := avail.Width(); w > aw && aw > 0 {
		h *= aw / w
		w = aw
	}
	return w, h
}

// Draw implements the [Element] interface.
func (im *Image) Draw(c *Canvas, box pdf.Rectangle) error {
	ops := &graphics.Ops{}
	err := c.Content.DrawImage(ops, im.Image, box)
	if err != nil {
		return err
	}
	return c.Append(ops)
}
