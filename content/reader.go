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
	"fmt"
	"log/slog"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfdoc"
)

// State is the part of the graphics state tracked by a [Reader].
type State struct {
	CTM            matrix.Matrix
	TextMatrix     matrix.Matrix
	TextLineMatrix matrix.Matrix

	LineWidth float64

	Font                 pdf.Name
	FontSize             float64
	TextCharacterSpacing float64
	TextWordSpacing      float64
	TextHorizonalScaling float64
	TextLeading          float64
	TextRise             float64

	font *fontInfo
}

// NewState returns the graphics state at the start of a page.
func NewState() State {
	return State{
		CTM:                  matrix.Identity,
		TextMatrix:           matrix.Identity,
		TextLineMatrix:       matrix.Identity,
		LineWidth:            1,
		TextHorizonalScaling: 1,
	}
}

// Glyph is a glyph shown by a text showing operator.
type Glyph struct {
	Code byte
	Text rune

	// X and Y give the glyph origin in default user space.
	X, Y float64

	// Advance is the distance to the origin of the next glyph, and Size the
	// font size, both in default user space units.
	Advance float64
	Size    float64

	// BBox is the bounding box of the glyph in default user space, using
	// the ascent and descent of the font for the vertical extent.
	BBox pdf.Rectangle
}

// Event describes an operator executed by a [Reader].
type Event struct {
	Op Operator

	// State is the graphics state after the operator was executed.
	State *State

	// Glyphs lists the glyphs shown by text showing operators.
	Glyphs []Glyph

	// BBox is the union of the glyph bounding boxes.  It is the zero
	// rectangle if no glyphs were shown.
	BBox pdf.Rectangle
}

// IsTextShowing reports whether the event is for one of the operators Tj,
// TJ, ' or ".
func (e *Event) IsTextShowing() bool {
	switch e.Op.Name {
	case "Tj", "TJ", "'", "\"":
		return true
	}
	return false
}

// Text returns the text shown by the operator.
func (e *Event) Text() string {
	var b strings.Builder
	for _, g := range e.Glyphs {
		b.WriteRune(g.Text)
	}
	return b.String()
}

// A Listener observes the operators executed by a [Reader].
// Listeners are called in operator order.
type Listener interface {
	Observe(ev *Event) error
}

// ListenerFunc adapts an ordinary function to the [Listener] interface.
type ListenerFunc func(ev *Event) error

// Observe implements the [Listener] interface.
func (f ListenerFunc) Observe(ev *Event) error {
	return f(ev)
}

// A Reader interprets PDF content streams.
type Reader struct {
	R         pdf.Getter
	Resources *pdf.Dict
	State

	Listeners []Listener

	// Logger is used to report damaged content streams.  If this is nil,
	// slog.Default() is used.
	Logger *slog.Logger

	stack []State
	fonts map[pdf.Name]*fontInfo
}

// NewReader creates a new Reader.
func NewReader(r pdf.Getter, resources *pdf.Dict, listeners ...Listener) *Reader {
	return &Reader{
		R:         r,
		Resources: resources,
		State:     NewState(),
		Listeners: listeners,
		fonts:     make(map[pdf.Name]*fontInfo),
	}
}

// ParsePage interprets the content stream of a page.  Resources are looked
// up in the page dictionary or inherited from the page tree.
func (r *Reader) ParsePage(page *pdf.Dict) error {
	res, err := Inherited(r.R, page, "Resources")
	if err != nil {
		return err
	}
	r.Resources, err = pdf.GetDict(r.R, res)
	if err != nil {
		return fmt.Errorf("page /Resources: %w", err)
	}
	r.State = NewState()
	r.stack = r.stack[:0]
	r.fonts = make(map[pdf.Name]*fontInfo)

	data, err := PageContent(r.R, page, r.Logger)
	if err != nil {
		return err
	}
	return r.ParseContent(data)
}

// ParseContent interprets the given content stream data.
func (r *Reader) ParseContent(data []byte) error {
	return Scan(data, r.do)
}

// PageContent returns the decoded content stream of a page.  If /Contents
// is an array, the streams are concatenated, separated by newlines.
// Streams which cannot be decoded are logged and treated as empty.
func PageContent(r pdf.Getter, page *pdf.Dict, logger *slog.Logger) ([]byte, error) {
	return pageContent(r, page, func(stm *pdf.Stream) ([]byte, error) {
		return stm.DecodedOrEmpty(logger), nil
	})
}

// StrictPageContent is like [PageContent], but returns the error if
// one of the content streams cannot be decoded.
func StrictPageContent(r pdf.Getter, page *pdf.Dict) ([]byte, error) {
	return pageContent(r, page, (*pdf.Stream).Decoded)
}

func pageContent(r pdf.Getter, page *pdf.Dict, decode func(*pdf.Stream) ([]byte, error)) ([]byte, error) {
	var data []byte
	err := forAllContentStreamParts(r, page.Get("Contents"), func(stm *pdf.Stream) error {
		part, err := decode(stm)
		if err != nil {
			return err
		}
		if len(data) > 0 {
			data = append(data, '\n')
		}
		data = append(data, part...)
		return nil
	})
	return data, err
}

func forAllContentStreamParts(r pdf.Getter, ref pdf.Object, yield func(*pdf.Stream) error) error {
	contents, err := pdf.Resolve(r, ref)
	if err != nil {
		return err
	}
	switch contents := contents.(type) {
	case nil:
		return nil
	case *pdf.Stream:
		return yield(contents)
	case pdf.Array:
		for _, ref := range contents {
			contents, err := pdf.GetStream(r, ref)
			if err != nil {
				return err
			}
			if contents == nil {
				continue
			}
			err = yield(contents)
			if err != nil {
				return err
			}
		}
	default:
		return &pdf.MalformedFileError{
			Err: fmt.Errorf("unexpected type %T for page contents", contents),
		}
	}
	return nil
}

// Inherited returns the value of an inheritable page attribute, searching
// up the page tree if necessary.
func Inherited(r pdf.Getter, page *pdf.Dict, key pdf.Name) (pdf.Object, error) {
	node := page
	for i := 0; node != nil && i < 64; i++ {
		if val := node.Get(key); val != nil {
			return val, nil
		}
		parent := node.Parent()
		if parent == nil {
			var err error
			parent, err = pdf.GetDict(r, node.Get("Parent"))
			if err != nil {
				return nil, err
			}
		}
		node = parent
	}
	return nil, nil
}

// do processes the given operator.  This updates the graphics state, and
// calls the listeners.
func (r *Reader) do(op Operator) error {
	args := op.Args
	getNum := func() (float64, bool) {
		if len(args) == 0 {
			return 0, false
		}
		x, ok := getReal(args[0])
		args = args[1:]
		return x, ok
	}
	getName := func() (pdf.Name, bool) {
		if len(args) == 0 {
			return "", false
		}
		x, ok := args[0].(pdf.Name)
		args = args[1:]
		return x, ok
	}
	getString := func() (pdf.String, bool) {
		if len(args) == 0 {
			return nil, false
		}
		x, ok := args[0].(pdf.String)
		args = args[1:]
		return x, ok
	}
	getMatrix := func() (matrix.Matrix, bool) {
		var m matrix.Matrix
		for i := range m {
			x, ok := getNum()
			if !ok {
				return m, false
			}
			m[i] = x
		}
		return m, true
	}

	ev := &Event{Op: op, State: &r.State}

doOps:
	switch op.Name {
	// == General graphics state =========================================

	case "q":
		r.stack = append(r.stack, r.State)
	case "Q":
		if n := len(r.stack); n > 0 {
			r.State = r.stack[n-1]
			r.stack = r.stack[:n-1]
		}
	case "cm": // Concatenate matrix to current transformation matrix
		if m, ok := getMatrix(); ok {
			r.CTM = m.Mul(r.CTM)
		}
	case "w": // Set line width
		if x, ok := getNum(); ok {
			r.LineWidth = x
		}

	// == Text objects ===================================================

	case "BT": // Begin text object
		r.TextMatrix = matrix.Identity
		r.TextLineMatrix = matrix.Identity
	case "ET": // End text object

	// == Text state =====================================================

	case "Tc": // Set character spacing
		if x, ok := getNum(); ok {
			r.TextCharacterSpacing = x
		}
	case "Tw": // Set word spacing
		if x, ok := getNum(); ok {
			r.TextWordSpacing = x
		}
	case "Tz": // Set the horizontal scaling
		if x, ok := getNum(); ok {
			r.TextHorizonalScaling = x / 100
		}
	case "TL": // Set the leading
		if x, ok := getNum(); ok {
			r.TextLeading = x
		}
	case "Ts": // Set text rise
		if x, ok := getNum(); ok {
			r.TextRise = x
		}
	case "Tf": // Set text font and size
		name, ok1 := getName()
		size, ok2 := getNum()
		if !ok1 || !ok2 {
			break
		}
		r.Font = name
		r.FontSize = size
		r.font = r.getFont(name)

	// == Text positioning ===============================================

	case "Td": // Move text position
		dx, ok1 := getNum()
		dy, ok2 := getNum()
		if ok1 && ok2 {
			r.TextLineMatrix = matrix.Translate(dx, dy).Mul(r.TextLineMatrix)
			r.TextMatrix = r.TextLineMatrix
		}
	case "TD": // Move text position and set leading
		dx, ok1 := getNum()
		dy, ok2 := getNum()
		if ok1 && ok2 {
			r.TextLeading = -dy
			r.TextLineMatrix = matrix.Translate(dx, dy).Mul(r.TextLineMatrix)
			r.TextMatrix = r.TextLineMatrix
		}
	case "Tm": // Set text matrix and text line matrix
		if m, ok := getMatrix(); ok {
			r.TextMatrix = m
			r.TextLineMatrix = m
		}
	case "T*": // Move to start of next text line
		r.nextLine()

	// == Text showing ===================================================

	case "Tj": // Show text
		if s, ok := getString(); ok {
			r.showString(ev, s)
		}
	case "'": // Move to next line and show text
		if s, ok := getString(); ok {
			r.nextLine()
			r.showString(ev, s)
		}
	case "\"": // Set spacing, move to next line, and show text
		aw, ok1 := getNum()
		ac, ok2 := getNum()
		s, ok3 := getString()
		if ok1 && ok2 && ok3 {
			r.TextWordSpacing = aw
			r.TextCharacterSpacing = ac
			r.nextLine()
			r.showString(ev, s)
		}
	case "TJ": // Show text with kerning
		if len(args) == 0 {
			break
		}
		a, ok := args[0].(pdf.Array)
		if !ok {
			break
		}
		for _, ai := range a {
			switch ai := ai.(type) {
			case pdf.String:
				r.showString(ev, ai)
			case pdf.Integer, pdf.Real:
				x, _ := getReal(ai)
				tx := -x / 1000 * r.FontSize * r.TextHorizonalScaling
				r.TextMatrix = matrix.Translate(tx, 0).Mul(r.TextMatrix)
			default:
				break doOps
			}
		}
	}

	for _, l := range r.Listeners {
		err := l.Observe(ev)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) nextLine() {
	r.TextLineMatrix = matrix.Translate(0, -r.TextLeading).Mul(r.TextLineMatrix)
	r.TextMatrix = r.TextLineMatrix
}

func (r *Reader) getFont(name pdf.Name) *fontInfo {
	if f, ok := r.fonts[name]; ok {
		return f
	}
	var ref pdf.Object
	if fonts, err := pdf.GetDict(r.R, r.Resources.Get("Font")); err == nil {
		ref = fonts.Get(name)
	}
	f := makeFontInfo(r.R, ref)
	r.fonts[name] = f
	return f
}

// showString positions the glyphs of s and records them in ev.
func (r *Reader) showString(ev *Event, s pdf.String) {
	f := r.font
	if f == nil {
		f = r.getFont(r.Font)
		r.font = f
	}
	th := r.TextHorizonalScaling
	for _, c := range s {
		w0 := f.width(c)

		trm := matrix.Matrix{r.FontSize * th, 0, 0, r.FontSize, 0, r.TextRise}.Mul(r.TextMatrix).Mul(r.CTM)
		x0, y0 := apply(trm, 0, 0)
		bbox := glyphBox(trm, w0/1000, f.descent/1000, f.ascent/1000)

		tx := w0/1000*r.FontSize + r.TextCharacterSpacing
		if c == ' ' {
			tx += r.TextWordSpacing
		}
		tx *= th
		r.TextMatrix = matrix.Translate(tx, 0).Mul(r.TextMatrix)

		x1, y1 := apply(matrix.Translate(0, r.TextRise).Mul(r.TextMatrix).Mul(r.CTM), 0, 0)
		g := Glyph{
			Code:    c,
			Text:    f.decode(c),
			X:       x0,
			Y:       y0,
			Advance: math.Hypot(x1-x0, y1-y0),
			Size:    math.Hypot(trm[2], trm[3]),
			BBox:    bbox,
		}
		ev.Glyphs = append(ev.Glyphs, g)
		if len(ev.Glyphs) == 1 {
			ev.BBox = bbox
		} else {
			ev.BBox = ev.BBox.Union(bbox)
		}
	}
}

// glyphBox returns the bounding box of the rectangle [0,w]x[desc,asc] in
// glyph space, transformed by m.
func glyphBox(m matrix.Matrix, w, desc, asc float64) pdf.Rectangle {
	var res pdf.Rectangle
	for i, p := range [][2]float64{{0, desc}, {w, desc}, {0, asc}, {w, asc}} {
		x, y := apply(m, p[0], p[1])
		if i == 0 {
			res = pdf.Rectangle{LLx: x, LLy: y, URx: x, URy: y}
			continue
		}
		res.LLx = min(res.LLx, x)
		res.LLy = min(res.LLy, y)
		res.URx = max(res.URx, x)
		res.URy = max(res.URy, y)
	}
	return res
}

func apply(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func getReal(x pdf.Object) (float64, bool) {
	switch x := x.(type) {
	case pdf.Real:
		return float64(x), true
	case pdf.Integer:
		return float64(x), true
	default:
		return 0, false
	}
}
