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

package document

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"

	"seehuhn.de/go/pdfdoc"
)

// maxTreeDepth limits the nesting of page tree nodes.
const maxTreeDepth = 64

// inheritable lists the page attributes which can be inherited from
// intermediate page tree nodes.
var inheritable = []pdf.Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// Open reads a PDF file from disk.
func Open(fname string, opt *Options) (*Document, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	fi, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	return Read(fd, fi.Size(), opt)
}

// Read loads a complete PDF file into memory.
//
// All objects listed in the cross-reference table are copied into the
// arena of the new document.  Objects which cannot be read are logged and
// skipped.  The page tree is flattened, so that all pages become direct
// children of the root /Pages node; inherited attributes are copied to the
// pages when this happens.
func Read(ra io.ReaderAt, size int64, opt *Options) (*Document, error) {
	var logger *slog.Logger
	if opt != nil {
		logger = opt.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	r, err := pdf.NewReader(ra, size, &pdf.ReaderOptions{Logger: logger})
	if err != nil {
		return nil, err
	}

	// Reading an object can trigger a repair of the xref table, so the
	// object numbers are collected first.
	nums := maps.Keys(r.XRef())
	slices.Sort(nums)

	a := pdf.NewArena()
	for _, num := range nums {
		entry := r.XRef()[num]
		if entry == nil || entry.Free {
			continue
		}
		ref := pdf.NewReference(num, entry.Generation)
		obj, err := r.Get(ref)
		if err != nil {
			logger.Warn("skipping unreadable object",
				slog.String("ref", ref.String()),
				slog.String("error", err.Error()))
			continue
		}
		if obj == nil {
			continue
		}
		a.Put(ref, obj)
	}

	trailer := r.Trailer()
	catalogRef, ok := trailer.Get("Root").(pdf.Reference)
	if !ok {
		return nil, &pdf.MalformedFileError{Err: errors.New("missing /Root")}
	}
	catalog, err := pdf.GetDict(a, catalogRef)
	if err != nil || catalog == nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("invalid catalog %s", catalogRef)}
	}
	pagesRef, ok := catalog.Get("Pages").(pdf.Reference)
	if !ok {
		return nil, &pdf.MalformedFileError{Err: errNoPages}
	}
	pagesDict, err := pdf.GetDict(a, pagesRef)
	if err != nil || pagesDict == nil {
		return nil, &pdf.MalformedFileError{Err: errNoPages}
	}

	doc := newDocument(a, catalogRef, catalog, pagesRef, pagesDict, opt)
	doc.trailer = trailer
	doc.repaired = r.Repaired()
	if doc.opt.Version == 0 {
		doc.opt.Version = r.Version
	}

	err = doc.loadPages()
	if err != nil {
		return nil, err
	}

	if infoRef, ok := trailer.Get("Info").(pdf.Reference); ok {
		doc.infoRef = infoRef
	}
	infoDict, _ := pdf.GetDict(a, trailer.Get("Info"))
	doc.Info = infoFromDict(a, infoDict)
	if lang, err := pdf.GetString(a, catalog.Get("Lang")); err == nil && lang != nil {
		if tag, err := language.Parse(lang.AsTextString()); err == nil {
			doc.Info.Language = tag
		}
	}
	if metaRef, ok := catalog.Get("Metadata").(pdf.Reference); ok {
		doc.metaRef = metaRef
	}

	err = doc.walkFileTree(func(key pdf.String, val pdf.Object) error {
		doc.files[key.AsTextString()] = val
		return nil
	})
	if err != nil {
		logger.Warn("ignoring malformed file attachment tree",
			slog.String("error", err.Error()))
	}

	return doc, nil
}

// loadPages enumerates the page tree and rewrites it as a flat list.
func (d *Document) loadPages() error {
	r := d.Arena
	seen := map[pdf.Reference]bool{d.pagesRef: true}
	var kids pdf.Array

	var walk func(node *pdf.Dict, inherited *pdf.Dict, depth int) error
	walk = func(node *pdf.Dict, inherited *pdf.Dict, depth int) error {
		if depth > maxTreeDepth {
			return &pdf.MalformedFileError{Err: errors.New("page tree too deep")}
		}
		attrs := inherited.Clone()
		for _, key := range inheritable {
			if val := node.Get(key); val != nil {
				attrs.Set(key, val)
			}
		}

		nodeKids, err := pdf.GetArray(r, node.Get("Kids"))
		if err != nil {
			return err
		}
		for _, kid := range nodeKids {
			ref, ok := kid.(pdf.Reference)
			if !ok {
				d.logger.Warn("ignoring direct object in page tree")
				continue
			}
			if seen[ref] {
				d.logger.Warn("ignoring loop in page tree",
					slog.String("ref", ref.String()))
				continue
			}
			seen[ref] = true

			kidDict, err := pdf.GetDict(r, ref)
			if err != nil {
				return err
			}
			if kidDict == nil {
				continue
			}
			switch kidDict.Get("Type") {
			case pdf.Name("Pages"):
				err = walk(kidDict, attrs, depth+1)
				if err != nil {
					return err
				}
			default:
				for _, key := range inheritable {
					if !kidDict.Has(key) && attrs.Has(key) {
						kidDict.Set(key, attrs.Get(key))
					}
				}
				kidDict.Set("Parent", d.pagesRef)
				kidDict.SetParent(d.pagesDict)
				p, err := asPage(d, ref, kidDict)
				if err != nil {
					d.logger.Warn("skipping invalid page",
						slog.String("error", err.Error()))
					continue
				}
				d.pages = append(d.pages, p)
				kids = append(kids, ref)
			}
		}
		return nil
	}
	err := walk(d.pagesDict, pdf.NewDict(), 0)
	if err != nil {
		return err
	}

	for _, key := range inheritable {
		d.pagesDict.Delete(key)
	}
	d.pagesDict.Set("Kids", kids)
	d.pagesDict.Set("Count", pdf.Integer(len(kids)))
	return nil
}
