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
	"slices"
)

// Edit replaces the bytes in the range [Start, End) of a content stream.
type Edit struct {
	Start, End  int
	Replacement []byte
}

// Rewrite applies the edits to data and returns the new content stream.
// The edits must not overlap.  Data between edits is copied unchanged.
func Rewrite(data []byte, edits []Edit) []byte {
	edits = slices.Clone(edits)
	slices.SortFunc(edits, func(a, b Edit) int {
		return a.Start - b.Start
	})

	res := make([]byte, 0, len(data))
	pos := 0
	for _, e := range edits {
		if e.Start < pos || e.End > len(data) {
			continue
		}
		res = append(res, data[pos:e.Start]...)
		res = append(res, e.Replacement...)
		pos = e.End
	}
	return append(res, data[pos:]...)
}

// Filter removes every operator for which drop returns true from the
// content stream data.  If replace is not nil, its return value is
// inserted in place of the dropped operator, so that for example changes
// to the graphics state can be preserved.
func Filter(r *Reader, data []byte, drop func(ev *Event) bool, replace func(ev *Event) []byte) ([]byte, error) {
	var edits []Edit
	l := ListenerFunc(func(ev *Event) error {
		if !drop(ev) {
			return nil
		}
		e := Edit{Start: ev.Op.Start, End: ev.Op.End}
		if replace != nil {
			e.Replacement = replace(ev)
		}
		edits = append(edits, e)
		return nil
	})
	r.Listeners = append(r.Listeners, l)
	defer func() {
		r.Listeners = r.Listeners[:len(r.Listeners)-1]
	}()

	err := r.ParseContent(data)
	if err != nil {
		return nil, err
	}
	return Rewrite(data, edits), nil
}
