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

// Package outline reads and writes the document outline (bookmarks).
//
// Outline items form a tree below the outline dictionary referenced by
// the /Outlines entry of the document catalog.  The children of each node
// are a doubly linked list, connected by /First, /Last, /Next and /Prev
// entries, and each item links back to its parent.
package outline

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/graphics"
)

// PDF 2.0 sections: 12.3.3

// maxItems limits the size of outline trees read from files.
const maxItems = 65536

// Add inserts a new outline item as the last child of the most recently
// added item at depth-1.  Top-level items have depth 0.
//
// The item opens page dest when activated; dest can be 0 for items
// without a destination.  The /Count entries of all open ancestors,
// including the outline root, are increased by one.  The reference of
// the new item is returned.
func Add(doc *document.Document, depth int, title string, dest pdf.Reference) (pdf.Reference, error) {
	if depth < 0 {
		return 0, fmt.Errorf("outline depth %d: %w", depth, ErrNoParent)
	}
	a := doc.Arena

	rootRef, root, err := outlineRoot(doc)
	if err != nil {
		return 0, err
	}

	parentRef := rootRef
	parent := root
	if depth > 0 {
		parentRef, err = lastAtDepth(a, rootRef, depth-1)
		if err != nil {
			return 0, err
		}
		parent, err = pdf.GetDict(a, parentRef)
		if err != nil || parent == nil {
			return 0, fmt.Errorf("outline item %s: %w", parentRef, errBrokenOutline)
		}
	}

	chain, counts, err := ancestors(a, parent, depth+1)
	if err != nil {
		return 0, err
	}

	item := pdf.NewDict().
		Set("Title", pdf.TextString(title)).
		Set("Parent", parentRef)
	if dest != 0 {
		item.Set("Dest", pdf.Array{dest, pdf.Name("Fit")})
	}
	ref := a.Alloc()

	if lastRef, ok := parent.Get("Last").(pdf.Reference); ok {
		last, err := pdf.GetDict(a, lastRef)
		if err != nil || last == nil {
			return 0, fmt.Errorf("outline item %s: %w", lastRef, errBrokenOutline)
		}
		last.Set("Next", ref)
		item.Set("Prev", lastRef)
	} else {
		parent.Set("First", ref)
	}
	parent.Set("Last", ref)
	a.Put(ref, item)

	// Closed items store the negative number of hidden descendants.  Items
	// below a closed item are not visible, so propagation stops there.
	for i, node := range chain {
		if counts[i] < 0 {
			node.Set("Count", counts[i]-1)
			break
		}
		node.Set("Count", counts[i]+1)
	}

	return ref, nil
}

// ancestors returns node and at most n-1 of its ancestors, together with
// their /Count values.  The chain ends early at a closed item.
func ancestors(a *pdf.Arena, node *pdf.Dict, n int) ([]*pdf.Dict, []pdf.Integer, error) {
	var chain []*pdf.Dict
	var counts []pdf.Integer
	for node != nil && len(chain) < n {
		count, err := pdf.GetInteger(a, node.Get("Count"))
		if err != nil {
			return nil, nil, fmt.Errorf("/Count: %w: %w", errBrokenOutline, err)
		}
		chain = append(chain, node)
		counts = append(counts, count)
		if count < 0 {
			break
		}
		node, err = pdf.GetDict(a, node.Get("Parent"))
		if err != nil {
			return nil, nil, fmt.Errorf("/Parent: %w: %w", errBrokenOutline, err)
		}
	}
	return chain, counts, nil
}

// outlineRoot returns the outline dictionary of the document, creating it
// if needed.
func outlineRoot(doc *document.Document) (pdf.Reference, *pdf.Dict, error) {
	a := doc.Arena
	obj := doc.Catalog.Get("Outlines")
	if obj == nil {
		root := pdf.NewDict().
			Set("Type", pdf.Name("Outlines")).
			Set("Count", pdf.Integer(0))
		ref := a.Add(root)
		doc.Catalog.Set("Outlines", ref)
		return ref, root, nil
	}

	ref, ok := obj.(pdf.Reference)
	if !ok {
		// outline dictionaries must be indirect, since items link to them
		ref = a.Add(obj)
		doc.Catalog.Set("Outlines", ref)
	}
	root, err := pdf.GetDict(a, ref)
	if err != nil {
		return 0, nil, fmt.Errorf("/Outlines: %w", err)
	} else if root == nil {
		return 0, nil, fmt.Errorf("/Outlines: %w", errBrokenOutline)
	}
	return ref, root, nil
}

// lastAtDepth performs a depth-first search of the outline tree and
// returns the last item at the given depth.
func lastAtDepth(r pdf.Getter, rootRef pdf.Reference, depth int) (pdf.Reference, error) {
	var found pdf.Reference
	seen := map[pdf.Reference]bool{rootRef: true}

	var walk func(ref pdf.Reference, d int) error
	walk = func(ref pdf.Reference, d int) error {
		node, err := pdf.GetDict(r, ref)
		if err != nil {
			return err
		}
		child, _ := node.Get("First").(pdf.Reference)
		for child != 0 {
			if seen[child] {
				return errLoop
			}
			seen[child] = true
			if d == depth {
				found = child
			} else if err := walk(child, d+1); err != nil {
				return err
			}
			next, err := pdf.GetDict(r, child)
			if err != nil {
				return err
			}
			child, _ = next.Get("Next").(pdf.Reference)
		}
		return nil
	}
	err := walk(rootRef, 0)
	if err != nil {
		return 0, err
	}
	if found == 0 {
		return 0, fmt.Errorf("no outline item at depth %d: %w", depth, ErrNoParent)
	}
	return found, nil
}

// Outline represents the root of a document outline.
type Outline struct {
	// Items contains the top-level outline items.
	Items []*Item
}

// Item represents an outline item, with a title and a destination.
type Item struct {
	// Title is the text displayed for this outline item.
	Title string

	// Dest is the page shown when the item is activated, or 0.
	Dest pdf.Reference

	// URI is set for items which open a URI instead of a page.
	URI string

	// Color (optional) is the color of the item's text.
	Color *graphics.RGB

	Bold   bool
	Italic bool

	// Open indicates whether the children are shown initially.
	Open bool

	Children []*Item
}

// Read reads the document outline.  If the document has no outline, nil
// is returned.
func Read(r pdf.Getter, catalog *pdf.Dict) (*Outline, error) {
	rootRef, _ := catalog.Get("Outlines").(pdf.Reference)
	if rootRef == 0 {
		return nil, nil
	}
	root, err := pdf.GetDict(r, rootRef)
	if err != nil {
		return nil, err
	} else if root == nil {
		return nil, nil
	}

	seen := map[pdf.Reference]bool{rootRef: true}
	first, _ := root.Get("First").(pdf.Reference)
	items, err := readChildren(r, seen, first)
	if err != nil {
		return nil, err
	}
	return &Outline{Items: items}, nil
}

func readChildren(r pdf.Getter, seen map[pdf.Reference]bool, ref pdf.Reference) ([]*Item, error) {
	var res []*Item
	for ref != 0 {
		item, dict, err := readItem(r, seen, ref)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
		ref, _ = dict.Get("Next").(pdf.Reference)
	}
	return res, nil
}

func readItem(r pdf.Getter, seen map[pdf.Reference]bool, ref pdf.Reference) (*Item, *pdf.Dict, error) {
	if seen[ref] {
		return nil, nil, errLoop
	}
	seen[ref] = true
	if len(seen) > maxItems {
		return nil, nil, errTooLarge
	}

	dict, err := pdf.GetDict(r, ref)
	if err != nil {
		return nil, nil, err
	} else if dict == nil {
		return nil, nil, fmt.Errorf("outline item %s: %w", ref, errBrokenOutline)
	}

	item := &Item{}
	title, err := pdf.GetString(r, dict.Get("Title"))
	if err != nil {
		return nil, nil, fmt.Errorf("/Title in outline: %w", err)
	}
	item.Title = title.AsTextString()

	count, _ := pdf.GetInteger(r, dict.Get("Count"))
	item.Open = count > 0

	if dest, _ := pdf.GetArray(r, dict.Get("Dest")); len(dest) > 0 {
		item.Dest, _ = dest[0].(pdf.Reference)
	} else if action, _ := pdf.GetDict(r, dict.Get("A")); action != nil {
		switch tp, _ := pdf.GetName(r, action.Get("S")); tp {
		case "URI":
			uri, _ := pdf.GetString(r, action.Get("URI"))
			item.URI = string(uri)
		case "GoTo":
			if dest, _ := pdf.GetArray(r, action.Get("D")); len(dest) > 0 {
				item.Dest, _ = dest[0].(pdf.Reference)
			}
		}
	}

	if c, _ := pdf.GetArray(r, dict.Get("C")); len(c) == 3 {
		cr, _ := pdf.GetNumber(r, c[0])
		cg, _ := pdf.GetNumber(r, c[1])
		cb, _ := pdf.GetNumber(r, c[2])
		item.Color = &graphics.RGB{R: cr, G: cg, B: cb}
	}
	if f, _ := pdf.GetInteger(r, dict.Get("F")); f != 0 {
		item.Italic = f&1 != 0
		item.Bold = f&2 != 0
	}

	first, _ := dict.Get("First").(pdf.Reference)
	item.Children, err = readChildren(r, seen, first)
	if err != nil {
		return nil, nil, err
	}
	return item, dict, nil
}

// SetStyle changes the text style of an outline item.
func SetStyle(doc *document.Document, ref pdf.Reference, col *graphics.RGB, bold, italic bool) error {
	dict, err := pdf.GetDict(doc.Arena, ref)
	if err != nil {
		return err
	} else if dict == nil {
		return fmt.Errorf("outline item %s: %w", ref, errBrokenOutline)
	}
	if col != nil {
		dict.Set("C", col.AsArray())
	} else {
		dict.Delete("C")
	}
	var flags pdf.Integer
	if italic {
		flags |= 1
	}
	if bold {
		flags |= 2
	}
	if flags != 0 {
		dict.Set("F", flags)
	} else {
		dict.Delete("F")
	}
	return nil
}

var (
	// ErrNoParent is returned by [Add] if there is no item at the depth
	// above the new item.
	ErrNoParent = errors.New("no parent outline item")

	errLoop          = errors.New("outline tree contains a loop")
	errTooLarge      = errors.New("outline too large")
	errBrokenOutline = errors.New("malformed outline tree")
)
