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
	"io"
	"iter"
	"strconv"
)

// Dict represent a Dictionary object in a PDF file.
//
// Keys are kept in insertion order, and the dictionary is written to
// a file in this order.  A Dict can optionally be linked to a parent
// dictionary; this is used for inherited attributes like page resources.
type Dict struct {
	keys   []Name
	vals   map[Name]Object
	parent *Dict
}

// NewDict returns a new, empty dictionary.
func NewDict() *Dict {
	return &Dict{vals: make(map[Name]Object)}
}

// Set stores val under the given key.  If the key is already present,
// its position in the key order is kept.  Setting a key to nil removes it.
// Set returns the dictionary, so that calls can be chained.
func (d *Dict) Set(key Name, val Object) *Dict {
	if val == nil {
		d.Delete(key)
		return d
	}
	if d.vals == nil {
		d.vals = make(map[Name]Object)
	}
	if _, exists := d.vals[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = val
	return d
}

// Get returns the value stored under key, or nil if the key is not present.
func (d *Dict) Get(key Name) Object {
	if d == nil {
		return nil
	}
	return d.vals[key]
}

// Has reports whether key is present in the dictionary.
func (d *Dict) Has(key Name) bool {
	if d == nil {
		return false
	}
	_, ok := d.vals[key]
	return ok
}

// Delete removes key from the dictionary.
func (d *Dict) Delete(key Name) {
	if d == nil {
		return
	}
	if _, ok := d.vals[key]; !ok {
		return
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys of the dictionary in insertion order.
func (d *Dict) Keys() []Name {
	if d == nil {
		return nil
	}
	return append([]Name(nil), d.keys...)
}

// All iterates over the entries in insertion order.
func (d *Dict) All() iter.Seq2[Name, Object] {
	return func(yield func(Name, Object) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of d.  The parent link is kept.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	res := &Dict{
		keys:   append([]Name(nil), d.keys...),
		vals:   make(map[Name]Object, len(d.vals)),
		parent: d.parent,
	}
	for k, v := range d.vals {
		res.vals[k] = v
	}
	return res
}

// SetParent links d to a parent dictionary.
func (d *Dict) SetParent(p *Dict) {
	d.parent = p
}

// Parent returns the parent dictionary, or nil.
func (d *Dict) Parent() *Dict {
	if d == nil {
		return nil
	}
	return d.parent
}

// Root follows the parent links up to the top-most dictionary.
func (d *Dict) Root() *Dict {
	if d == nil {
		return nil
	}
	seen := map[*Dict]bool{}
	for d.parent != nil && !seen[d] {
		seen[d] = true
		d = d.parent
	}
	return d
}

// Lookup returns the value for key, searching the parent chain if d does not
// contain the key itself.
func (d *Dict) Lookup(key Name) Object {
	seen := map[*Dict]bool{}
	for d != nil && !seen[d] {
		if val, ok := d.vals[key]; ok {
			return val
		}
		seen[d] = true
		d = d.parent
	}
	return nil
}

func (d *Dict) String() string {
	res := "<"
	if tp, ok := d.Get("Type").(Name); ok {
		res += string(tp) + " "
	}
	return res + "Dict, " + strconv.Itoa(d.Len()) + " entries>"
}

// PDF implements the [Object] interface.
// Every entry is written on a separate line.
func (d *Dict) PDF(w io.Writer) error {
	return d.write(w, false)
}

// write writes the dictionary.  If inline is set, entries are separated by
// spaces and nested dictionaries are written inline, too.
func (d *Dict) write(w io.Writer, inline bool) error {
	if d == nil {
		_, err := w.Write([]byte("null"))
		return err
	}

	_, err := w.Write([]byte("<<"))
	if err != nil {
		return err
	}

	sep := []byte("\n")
	if inline {
		sep = []byte(" ")
	}
	for i, name := range d.keys {
		val := d.vals[name]

		if !inline || i > 0 {
			_, err = w.Write(sep)
			if err != nil {
				return err
			}
		}
		err = name.PDF(w)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(" "))
		if err != nil {
			return err
		}
		if inline {
			err = writeInline(w, val)
		} else {
			err = val.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	if !inline {
		_, err = w.Write(sep)
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte(">>"))
	return err
}
