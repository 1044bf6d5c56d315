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
	"iter"

	"golang.org/x/exp/slices"
)

// Arena holds the indirect objects of a document.
//
// All indirect objects are owned by the arena; other objects refer to them
// using [Reference] values, which are the keys of the arena.  This allows
// the object graph to contain cycles.
type Arena struct {
	objects map[Reference]Object
	next    uint32
}

// NewArena returns an empty arena.  Object numbers start at 1.
func NewArena() *Arena {
	return &Arena{
		objects: make(map[Reference]Object),
		next:    1,
	}
}

// Alloc reserves a new object number.
func (a *Arena) Alloc() Reference {
	ref := NewReference(a.next, 0)
	a.next++
	return ref
}

// Add stores obj under a newly allocated reference.
func (a *Arena) Add(obj Object) Reference {
	ref := a.Alloc()
	a.objects[ref] = obj
	return ref
}

// Put stores obj under the given reference.  This is used both to fill
// references obtained from [Arena.Alloc] and to load objects read from a
// file.  Putting nil removes the object.
func (a *Arena) Put(ref Reference, obj Object) {
	if obj == nil {
		delete(a.objects, ref)
		return
	}
	a.objects[ref] = obj
	if n := ref.Number(); n >= a.next {
		a.next = n + 1
	}
}

// Get implements the [Getter] interface.
func (a *Arena) Get(ref Reference) (Object, error) {
	return a.objects[ref], nil
}

// Has reports whether the arena contains an object for ref.
func (a *Arena) Has(ref Reference) bool {
	_, ok := a.objects[ref]
	return ok
}

// Len returns the number of objects in the arena.
func (a *Arena) Len() int {
	return len(a.objects)
}

// All iterates over the objects in the arena, in order of increasing
// object number.
func (a *Arena) All() iter.Seq2[Reference, Object] {
	return func(yield func(Reference, Object) bool) {
		refs := make([]Reference, 0, len(a.objects))
		for ref := range a.objects {
			refs = append(refs, ref)
		}
		slices.SortFunc(refs, compareRefs)
		for _, ref := range refs {
			if !yield(ref, a.objects[ref]) {
				return
			}
		}
	}
}

func compareRefs(a, b Reference) int {
	if a.Number() != b.Number() {
		if a.Number() < b.Number() {
			return -1
		}
		return 1
	}
	return int(a.Generation()) - int(b.Generation())
}
