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
	"errors"
	"fmt"
	"math"
)

// Rectangle represents a PDF rectangle.  The coordinates use a coordinate
// system with the origin at the bottom left.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

// RectXYWH returns the rectangle with lower left corner (x, y) and the given
// width and height.
func RectXYWH(x, y, width, height float64) Rectangle {
	return Rectangle{LLx: x, LLy: y, URx: x + width, URy: y + height}
}

// GetRectangle resolves references to indirect objects and makes sure the
// resulting object is a PDF rectangle object.
// If the object is null, nil is returned.
func GetRectangle(r Getter, obj Object) (*Rectangle, error) {
	a, err := GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if len(a) != 4 {
		return nil, errNoRectangle
	}
	var values [4]float64
	for i, obj := range a {
		xi, err := GetNumber(r, obj)
		if err != nil {
			return nil, err
		}
		values[i] = xi
	}
	rect := &Rectangle{
		LLx: math.Min(values[0], values[2]),
		LLy: math.Min(values[1], values[3]),
		URx: math.Max(values[0], values[2]),
		URy: math.Max(values[1], values[3]),
	}
	return rect, nil
}

var errNoRectangle = errors.New("not a valid PDF rectangle")

// Width returns the width of the rectangle.
func (rect Rectangle) Width() float64 {
	return rect.URx - rect.LLx
}

// Height returns the height of the rectangle.
func (rect Rectangle) Height() float64 {
	return rect.URy - rect.LLy
}

// IsZero is true if the rectangle is the zero rectangle object.
func (rect Rectangle) IsZero() bool {
	return rect.LLx == 0 && rect.LLy == 0 && rect.URx == 0 && rect.URy == 0
}

// Contains reports whether other lies inside rect, allowing for a
// tolerance of eps.
func (rect Rectangle) Contains(other Rectangle, eps float64) bool {
	return other.LLx >= rect.LLx-eps && other.LLy >= rect.LLy-eps &&
		other.URx <= rect.URx+eps && other.URy <= rect.URy+eps
}

// Intersects reports whether the two rectangles have an interior point in
// common.
func (rect Rectangle) Intersects(other Rectangle) bool {
	return rect.LLx < other.URx && other.LLx < rect.URx &&
		rect.LLy < other.URy && other.LLy < rect.URy
}

// Union returns the smallest rectangle which contains both rectangles.
// Zero rectangles are ignored.
func (rect Rectangle) Union(other Rectangle) Rectangle {
	if other.IsZero() {
		return rect
	}
	if rect.IsZero() {
		return other
	}
	return Rectangle{
		LLx: math.Min(rect.LLx, other.LLx),
		LLy: math.Min(rect.LLy, other.LLy),
		URx: math.Max(rect.URx, other.URx),
		URy: math.Max(rect.URy, other.URy),
	}
}

// NearlyEqual reports whether the corner coordinates of two rectangles
// differ by less than eps.
func (rect Rectangle) NearlyEqual(other Rectangle, eps float64) bool {
	return math.Abs(rect.LLx-other.LLx) < eps &&
		math.Abs(rect.LLy-other.LLy) < eps &&
		math.Abs(rect.URx-other.URx) < eps &&
		math.Abs(rect.URy-other.URy) < eps
}

func (rect Rectangle) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", rect.LLx, rect.LLy, rect.URx, rect.URy)
}

// AsArray returns the PDF array representation of the rectangle.
func (rect Rectangle) AsArray() Array {
	res := make(Array, 4)
	for i, x := range []float64{rect.LLx, rect.LLy, rect.URx, rect.URy} {
		res[i] = Number(x)
	}
	return res
}

// Number returns x as an Integer if it is integral, and as a Real
// otherwise.
func Number(x float64) Object {
	if r := math.Round(x); math.Abs(x-r) < 1e-6 && math.Abs(r) < 1<<53 {
		return Integer(r)
	}
	return Real(x)
}
