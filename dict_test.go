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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDictOrder(t *testing.T) {
	d := NewDict().
		Set("Type", Name("Page")).
		Set("MediaBox", Array{Integer(0), Integer(0), Integer(10), Integer(10)}).
		Set("Rotate", Integer(90))
	d.Set("Type", Name("Pages"))
	d.Set("MediaBox", nil)
	d.Set("Count", Integer(1))

	expected := []Name{"Type", "Rotate", "Count"}
	if diff := cmp.Diff(expected, d.Keys()); diff != "" {
		t.Errorf("wrong keys (-want +got):\n%s", diff)
	}
	if d.Get("Type") != Name("Pages") {
		t.Errorf("wrong /Type %s", Format(d.Get("Type")))
	}
	if d.Has("MediaBox") || d.Len() != 3 {
		t.Error("/MediaBox not removed")
	}

	var visited []Name
	for key := range d.All() {
		visited = append(visited, key)
	}
	if diff := cmp.Diff(expected, visited); diff != "" {
		t.Errorf("wrong iteration order (-want +got):\n%s", diff)
	}
}

func TestDictParent(t *testing.T) {
	root := NewDict().Set("Resources", NewDict()).Set("Rotate", Integer(90))
	mid := NewDict().Set("Rotate", Integer(180))
	leaf := NewDict()
	mid.SetParent(root)
	leaf.SetParent(mid)

	if leaf.Root() != root {
		t.Error("wrong root")
	}
	if leaf.Lookup("Rotate") != Integer(180) {
		t.Errorf("wrong inherited /Rotate %s", Format(leaf.Lookup("Rotate")))
	}
	if leaf.Lookup("Resources") == nil {
		t.Error("inherited /Resources not found")
	}
	if leaf.Lookup("Missing") != nil {
		t.Error("unexpected value for missing key")
	}

	// loops in the parent chain must not hang
	root.SetParent(leaf)
	if leaf.Lookup("Missing") != nil {
		t.Error("unexpected value for missing key")
	}
	_ = leaf.Root()
}

func TestDictClone(t *testing.T) {
	d := NewDict().Set("A", Integer(1))
	c := d.Clone()
	c.Set("B", Integer(2))
	if d.Has("B") {
		t.Error("clone shares storage with the original")
	}
	if c.Get("A") != Integer(1) {
		t.Error("clone lost entries")
	}
}

func TestNilDict(t *testing.T) {
	var d *Dict
	if d.Get("A") != nil || d.Has("A") || d.Len() != 0 || d.Keys() != nil {
		t.Error("nil dictionary is not empty")
	}
	if Format(d) != "null" {
		t.Errorf("nil dictionary formatted as %q", Format(d))
	}
}
