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

// Package document holds a PDF document in memory.
//
// A [Document] keeps all indirect objects in a [pdf.Arena].  The catalog
// refers to a flat page tree: a single /Pages node whose /Kids array lists
// all pages.  Documents can be created from scratch, or read from a file,
// modified and written again.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/metadata"
)

// Options control how a document is written.
type Options struct {
	// Version is the PDF version of the output.  The default is PDF 1.7.
	Version pdf.Version

	// Conformance selects an archival conformance level.  For PDF/A-1B,
	// the XMP metadata stream and the output intent are added
	// automatically when the document is written.
	Conformance pdf.Conformance

	// Compress applies the Flate filter to all streams without a filter.
	Compress bool

	// Logger is used for diagnostic messages.  If this is nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Document is a PDF document.
type Document struct {
	Arena   *pdf.Arena
	Catalog *pdf.Dict

	// Info is written to the document information dictionary and, for
	// PDF/A documents, to the XMP metadata.
	Info metadata.Info

	catalogRef pdf.Reference
	pagesRef   pdf.Reference
	pagesDict  *pdf.Dict
	pages      []*Page

	infoRef pdf.Reference
	metaRef pdf.Reference
	fonts   map[string]pdf.Reference
	files   map[string]pdf.Object

	trailer  *pdf.Dict
	repaired bool

	opt    Options
	logger *slog.Logger
}

// New creates an empty document.
func New(opt *Options) *Document {
	a := pdf.NewArena()

	catalog := pdf.NewDict().Set("Type", pdf.Name("Catalog"))
	catalogRef := a.Add(catalog)

	pagesDict := pdf.NewDict().
		Set("Type", pdf.Name("Pages")).
		Set("Kids", pdf.Array{}).
		Set("Count", pdf.Integer(0))
	pagesRef := a.Add(pagesDict)
	catalog.Set("Pages", pagesRef)

	return newDocument(a, catalogRef, catalog, pagesRef, pagesDict, opt)
}

func newDocument(a *pdf.Arena, catalogRef pdf.Reference, catalog *pdf.Dict, pagesRef pdf.Reference, pagesDict *pdf.Dict, opt *Options) *Document {
	doc := &Document{
		Arena:      a,
		Catalog:    catalog,
		catalogRef: catalogRef,
		pagesRef:   pagesRef,
		pagesDict:  pagesDict,
		fonts:      make(map[string]pdf.Reference),
		files:      make(map[string]pdf.Object),
	}
	if opt != nil {
		doc.opt = *opt
	}
	doc.logger = doc.opt.Logger
	if doc.logger == nil {
		doc.logger = slog.Default()
	}
	return doc
}

// Options returns the options of the document.
func (d *Document) Options() Options {
	return d.opt
}

// SetConformance changes the conformance level used when writing.
func (d *Document) SetConformance(c pdf.Conformance) {
	d.opt.Conformance = c
}

// CatalogRef returns the reference of the document catalog.
func (d *Document) CatalogRef() pdf.Reference {
	return d.catalogRef
}

// Repaired reports whether the document was read from a file with a
// damaged cross-reference table.
func (d *Document) Repaired() bool {
	return d.repaired
}

// Get implements the [pdf.Getter] interface.
func (d *Document) Get(ref pdf.Reference) (pdf.Object, error) {
	return d.Arena.Get(ref)
}

// AddPage appends a new, empty page with the given media box.
func (d *Document) AddPage(mediaBox pdf.Rectangle) *Page {
	dict := pdf.NewDict().
		Set("Type", pdf.Name("Page")).
		Set("Parent", d.pagesRef).
		Set("MediaBox", mediaBox.AsArray()).
		Set("Resources", pdf.NewDict())
	dict.SetParent(d.pagesDict)
	ref := d.Arena.Add(dict)

	kids, _ := d.pagesDict.Get("Kids").(pdf.Array)
	kids = append(kids, ref)
	d.pagesDict.Set("Kids", kids)
	d.pagesDict.Set("Count", pdf.Integer(len(kids)))

	p := &Page{Dict: dict, Ref: ref, doc: d}
	d.pages = append(d.pages, p)
	return p
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the page with the given index, starting at 0.
func (d *Document) Page(i int) *Page {
	if i < 0 || i >= len(d.pages) {
		return nil
	}
	return d.pages[i]
}

// Pages returns all pages of the document.
func (d *Document) Pages() []*Page {
	return append([]*Page(nil), d.pages...)
}

// FontRef returns a reference to the font dictionary for f.  The font is
// embedded into the document the first time it is used; later calls for a
// font with the same PostScript name return the same reference.
func (d *Document) FontRef(f font.Font) (pdf.Reference, error) {
	key := f.PostScriptName()
	if ref, ok := d.fonts[key]; ok {
		return ref, nil
	}
	ref, err := f.Embed(d.Arena)
	if err != nil {
		return 0, fmt.Errorf("font %q: %w", key, err)
	}
	d.fonts[key] = ref
	return ref, nil
}

// Write writes the document to w.
//
// If an error occurs, no data is written to w.
func (d *Document) Write(w io.Writer) error {
	trailer := pdf.NewDict().Set("Root", d.catalogRef)
	if d.trailer != nil {
		if id := d.trailer.Get("ID"); id != nil {
			trailer.Set("ID", id)
		}
	}

	infoDict := infoToDict(&d.Info)
	if infoDict != nil {
		if d.infoRef == 0 {
			d.infoRef = d.Arena.Alloc()
		}
		d.Arena.Put(d.infoRef, infoDict)
		trailer.Set("Info", d.infoRef)
	}

	if d.Info.Language != language.Und {
		d.Catalog.Set("Lang", pdf.TextString(d.Info.Language.String()))
	}

	if d.opt.Conformance == pdf.PDFA1B {
		err := d.preparePDFA()
		if err != nil {
			return err
		}
	}

	opt := &pdf.WriterOptions{
		Version:     d.opt.Version,
		Conformance: d.opt.Conformance,
		Compress:    d.opt.Compress,
		Logger:      d.logger,
	}
	return pdf.Write(w, d.Arena, trailer, opt)
}

// WriteFile writes the document to the named file.
func (d *Document) WriteFile(fname string) error {
	buf := &bytes.Buffer{}
	err := d.Write(buf)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0o644)
}

var errNoPages = errors.New("document has no page tree")
