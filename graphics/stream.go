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
	"fmt"
	"log/slog"
	"strconv"

	"seehuhn.de/go/pdfdoc"
)

// ContentStream is a content stream of a page, together with the page's
// resource dictionary.
type ContentStream struct {
	// Stream is the content stream.  Its decoded data holds the operators.
	Stream *pdf.Stream

	// Resources is the resource dictionary of the page.
	Resources *pdf.Dict

	// Logger receives a warning if existing stream data cannot be decoded.
	// If nil, [slog.Default] is used.
	Logger *slog.Logger

	r       pdf.Getter
	resName map[catRes]pdf.Name
	gstates []*pdf.Dict
}

type catRes struct {
	cat resourceCategory
	res pdf.Object
}

type resourceCategory byte

// The resource categories used by this package.
const (
	catFont resourceCategory = iota + 1
	catXObject
	catExtGState
)

func (cat resourceCategory) key() pdf.Name {
	switch cat {
	case catFont:
		return "Font"
	case catXObject:
		return "XObject"
	case catExtGState:
		return "ExtGState"
	default:
		panic("invalid resource category")
	}
}

func (cat resourceCategory) prefix() string {
	switch cat {
	case catFont:
		return "F"
	case catXObject:
		return "Im"
	case catExtGState:
		return "GS"
	default:
		panic("invalid resource category")
	}
}

// NewContentStream wraps stm and resources.  The getter r is used to resolve
// indirect objects in the resource dictionary; it can be nil if the
// dictionary contains no references to sub-dictionaries.
//
// A new, empty stream is created if stm is nil.  New streams use the Flate
// filter.
func NewContentStream(r pdf.Getter, stm *pdf.Stream, resources *pdf.Dict) *ContentStream {
	if stm == nil {
		dict := pdf.NewDict().Set("Filter", pdf.Name("FlateDecode"))
		stm = pdf.NewDecodedStream(dict, nil)
	}
	if resources == nil {
		resources = pdf.NewDict()
	}
	return &ContentStream{
		Stream:    stm,
		Resources: resources,
		r:         r,
		resName:   make(map[catRes]pdf.Name),
	}
}

// AppendOperators appends content stream operators to the stream.
//
// If the current stream data ends in a non-whitespace character and b
// starts with one, a single space is inserted.  The raw stream data is
// re-encoded, and the /Length entry updated, the next time it is needed.
// Existing data which cannot be decoded is logged and replaced.
func (c *ContentStream) AppendOperators(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	data := c.Stream.DecodedOrEmpty(c.Logger)

	out := make([]byte, 0, len(data)+len(b)+1)
	out = append(out, data...)
	if len(out) > 0 && !isSpace(out[len(out)-1]) && !isSpace(b[0]) {
		out = append(out, ' ')
	}
	out = append(out, b...)
	c.Stream.SetDecoded(out)
	return nil
}

// Mark returns a position in the content stream, for use with [Cut].
func (c *ContentStream) Mark() int {
	return len(c.Stream.DecodedOrEmpty(c.Logger))
}

// Cut removes everything after the mark from the content stream, and
// returns the removed data.
func (c *ContentStream) Cut(mark int) []byte {
	data := c.Stream.DecodedOrEmpty(c.Logger)
	if mark >= len(data) {
		return nil
	}
	if mark < 0 {
		mark = 0
	}
	tail := append([]byte(nil), data[mark:]...)
	c.Stream.SetDecoded(data[:mark:mark])
	return tail
}

// Bytes returns the decoded content of the stream.
func (c *ContentStream) Bytes() []byte {
	data, _ := c.Stream.Decoded()
	return data
}

// FontName returns the name under which the font dictionary obj is listed
// in the /Font resource dictionary.  The font is added, if needed.
func (c *ContentStream) FontName(obj pdf.Object) (pdf.Name, error) {
	return c.resourceName(catFont, obj)
}

// XObjectName returns the name under which obj is listed in the /XObject
// resource dictionary.  The object is added, if needed.
func (c *ContentStream) XObjectName(obj pdf.Object) (pdf.Name, error) {
	return c.resourceName(catXObject, obj)
}

// ExtGStateName returns the name under which obj is listed in the
// /ExtGState resource dictionary.  The object is added, if needed.
func (c *ContentStream) ExtGStateName(obj pdf.Object) (pdf.Name, error) {
	return c.resourceName(catExtGState, obj)
}

func (c *ContentStream) resourceName(cat resourceCategory, obj pdf.Object) (pdf.Name, error) {
	key := catRes{cat, obj}
	if name, ok := c.resName[key]; ok {
		return name, nil
	}

	dict, err := c.categoryDict(cat)
	if err != nil {
		return "", err
	}

	// re-use existing entries, for example in pages read from a file
	for name, val := range dict.All() {
		if pdf.Equal(val, obj) {
			c.resName[key] = name
			return name, nil
		}
	}

	prefix := cat.prefix()
	var name pdf.Name
	for k := 1; ; k++ {
		name = pdf.Name(prefix + strconv.Itoa(k))
		if !dict.Has(name) {
			break
		}
	}
	dict.Set(name, obj)
	c.resName[key] = name
	return name, nil
}

func (c *ContentStream) categoryDict(cat resourceCategory) (*pdf.Dict, error) {
	key := cat.key()
	obj := c.Resources.Get(key)
	if obj == nil {
		dict := pdf.NewDict()
		c.Resources.Set(key, dict)
		return dict, nil
	}
	dict, err := pdf.GetDict(c.r, obj)
	if err != nil {
		return nil, fmt.Errorf("resources /%s: %w", key, err)
	}
	if dict == nil {
		dict = pdf.NewDict()
		c.Resources.Set(key, dict)
	} else if _, isRef := obj.(pdf.Reference); isRef {
		// shared dictionaries are not modified
		dict = dict.Clone()
		c.Resources.Set(key, dict)
	}
	return dict, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}
