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
	"fmt"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/content"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Redact marks an area of the page for removal.  The content is only
// removed when [ApplyRedactions] is called.
type Redact struct {
	Common
	Markup

	// QuadPoints (optional) gives the areas to be removed, as for
	// [Highlight].  If this is empty, Rect is used.
	QuadPoints []float64

	// FillColor (optional) is the colour used to fill the redacted area
	// after the content has been removed.  If this is nil, black is used.
	//
	// This corresponds to the /IC entry in the PDF annotation dictionary.
	FillColor *graphics.RGB

	// OverlayText (optional) is a text shown by viewers in the redacted
	// area after the content has been removed.
	OverlayText string

	// Repeat specifies whether the overlay text is repeated to fill the
	// area.
	Repeat bool
}

// AnnotationType returns "Redact".
// This implements the [Annotation] interface.
func (r *Redact) AnnotationType() pdf.Name {
	return "Redact"
}

// AsDict implements the [Annotation] interface.
func (r *Redact) AsDict() (*pdf.Dict, error) {
	if len(r.QuadPoints)%8 != 0 {
		return nil, errQuadPoints
	}
	d := pdf.NewDict()
	if err := r.Common.fillDict(d, "Redact"); err != nil {
		return nil, err
	}
	r.Markup.fillDict(d)
	if len(r.QuadPoints) > 0 {
		d.Set("QuadPoints", numbers(r.QuadPoints))
	}
	if r.FillColor != nil {
		d.Set("IC", r.FillColor.AsArray())
	}
	if r.OverlayText != "" {
		d.Set("OverlayText", pdf.TextString(r.OverlayText))
	}
	if r.Repeat {
		d.Set("Repeat", pdf.Bool(true))
	}
	return d, nil
}

func decodeRedact(r pdf.Getter, d *pdf.Dict) (*Redact, error) {
	red := &Redact{}
	if err := decodeCommon(r, &red.Common, d); err != nil {
		return nil, err
	}
	decodeMarkup(r, &red.Markup, d)
	if qp := getNumbers(r, d.Get("QuadPoints")); len(qp)%8 == 0 {
		red.QuadPoints = qp
	}
	red.FillColor = getColor(r, d.Get("IC"))
	if s, err := pdf.GetString(r, d.Get("OverlayText")); err == nil {
		red.OverlayText = s.AsTextString()
	}
	rep, _ := pdf.GetBool(r, d.Get("Repeat"))
	red.Repeat = bool(rep)
	return red, nil
}

// areas returns the regions covered by the redaction.
func (r *Redact) areas() []pdf.Rectangle {
	return quadRects(quadPoints(r.QuadPoints, r.Rect))
}

// ApplyRedactions removes the content marked by the redaction annotations
// of a page.
//
// Every text showing operator whose glyphs intersect a redacted area is
// removed from the content stream.  Operators are removed as a whole, so
// text outside the redacted area may be removed, too.  The redacted areas
// are then filled and the redaction annotations are removed from the page.
//
// If the content stream cannot be parsed, the page is left unchanged and
// the error is returned.
func ApplyRedactions(doc *document.Document, page *document.Page) error {
	r := doc.Arena
	annots, err := pdf.GetArray(r, page.Dict.Get("Annots"))
	if err != nil {
		return fmt.Errorf("page /Annots: %w", err)
	}

	var redactions []*Redact
	var keep pdf.Array
	for _, obj := range annots {
		dict, err := pdf.GetDict(r, obj)
		if err == nil && dict != nil {
			if tp, _ := pdf.GetName(r, dict.Get("Subtype")); tp == "Redact" {
				red, err := decodeRedact(r, dict)
				if err != nil {
					return err
				}
				redactions = append(redactions, red)
				continue
			}
		}
		keep = append(keep, obj)
	}
	if len(redactions) == 0 {
		return nil
	}

	var areas []pdf.Rectangle
	for _, red := range redactions {
		areas = append(areas, red.areas()...)
	}

	res, err := content.Inherited(r, page.Dict, "Resources")
	if err != nil {
		return err
	}
	resources, err := pdf.GetDict(r, res)
	if err != nil {
		return fmt.Errorf("page /Resources: %w", err)
	}
	data, err := content.StrictPageContent(r, page.Dict)
	if err != nil {
		return err
	}

	drop := func(ev *content.Event) bool {
		if !ev.IsTextShowing() || ev.BBox.IsZero() {
			return false
		}
		for _, area := range areas {
			if ev.BBox.Intersects(area) {
				return true
			}
		}
		return false
	}
	out, err := content.Filter(content.NewReader(r, resources), data, drop, keepTextState)
	if err != nil {
		return err
	}

	cs, err := page.Content()
	if err != nil {
		return err
	}
	cs.Stream.SetDecoded(out)

	ops := &graphics.Ops{}
	ops.PushGraphicsState()
	for _, red := range redactions {
		col := graphics.Black
		if red.FillColor != nil {
			col = *red.FillColor
		}
		ops.SetFillRGB(col)
		for _, area := range red.areas() {
			ops.Rectangle(area.LLx, area.LLy, area.Width(), area.Height())
		}
		ops.Fill()
	}
	ops.PopGraphicsState()
	err = cs.AppendOperators(ops.Bytes())
	if err != nil {
		return err
	}

	if len(keep) == 0 {
		page.Dict.Delete("Annots")
	} else {
		page.Dict.Set("Annots", keep)
	}
	return nil
}

// keepTextState returns the operators which reproduce the changes to the
// text state made by a removed text showing operator.
func keepTextState(ev *content.Event) []byte {
	switch ev.Op.Name {
	case "'":
		return []byte("T*")
	case "\"":
		if len(ev.Op.Args) < 2 {
			return []byte("T*")
		}
		return fmt.Appendf(nil, "%s Tw %s Tc T*",
			pdf.Format(ev.Op.Args[0]), pdf.Format(ev.Op.Args[1]))
	}
	return nil
}
