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
	"seehuhn.de/go/pdfdoc"
)

// StateBits is used to indicate which fields of an [ExtGState] are set.
type StateBits uint8

// Possible values for [StateBits].
const (
	StateLineWidth StateBits = 1 << iota
	StateStrokeAlpha
	StateFillAlpha
	StateLineDash
)

// ExtGState represents a combination of graphics state parameters, which
// can be set in a single step using the "gs" operator.
type ExtGState struct {
	Set StateBits

	LineWidth   float64
	StrokeAlpha float64
	FillAlpha   float64
	DashPattern []float64
	DashPhase   float64
}

// AsDict returns the graphics state parameter dictionary.
func (e *ExtGState) AsDict() *pdf.Dict {
	dict := pdf.NewDict().Set("Type", pdf.Name("ExtGState"))
	if e.Set&StateLineWidth != 0 {
		dict.Set("LW", pdf.Number(e.LineWidth))
	}
	if e.Set&StateLineDash != 0 {
		pat := make(pdf.Array, len(e.DashPattern))
		for i, x := range e.DashPattern {
			pat[i] = pdf.Number(x)
		}
		dict.Set("D", pdf.Array{pat, pdf.Number(e.DashPhase)})
	}
	if e.Set&StateStrokeAlpha != 0 {
		dict.Set("CA", pdf.Number(e.StrokeAlpha))
	}
	if e.Set&StateFillAlpha != 0 {
		dict.Set("ca", pdf.Number(e.FillAlpha))
	}
	return dict
}

// Opacity returns a graphics state which sets both the stroke and the fill
// alpha to the given value.
func Opacity(alpha float64) *ExtGState {
	return &ExtGState{
		Set:         StateStrokeAlpha | StateFillAlpha,
		StrokeAlpha: alpha,
		FillAlpha:   alpha,
	}
}

// SetExtGState appends a "gs" operator for e to ops.  Graphics states with
// identical parameters share one resource entry.
func (c *ContentStream) SetExtGState(ops *Ops, e *ExtGState) error {
	dict := e.AsDict()
	known := false
	for _, cached := range c.gstates {
		if sameDict(cached, dict) {
			dict = cached
			known = true
			break
		}
	}
	name, err := c.ExtGStateName(dict)
	if err != nil {
		return err
	}
	if !known {
		c.gstates = append(c.gstates, dict)
	}
	ops.SetExtGState(name)
	return nil
}

func sameDict(a, b *pdf.Dict) bool {
	if a.Len() != b.Len() {
		return false
	}
	for key, val := range a.All() {
		if pdf.Format(val) != pdf.Format(b.Get(key)) {
			return false
		}
	}
	return true
}
