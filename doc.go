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

// Package pdf provides support for reading and writing PDF files.
//
// This package treats PDF files as containers holding a graph of objects
// (typically Dictionaries and Streams).  A [Reader] reads objects from an
// existing PDF file on demand:
//
//	r, err := pdf.Open("in.pdf", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	catalog, err := r.Catalog()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	... use catalog to locate objects in the file ...
//
// Damaged cross-reference data is repaired automatically by scanning the
// file for object definitions.
//
// New files are built by storing the indirect objects in an [Arena] and
// then calling [Write]:
//
//	a := pdf.NewArena()
//	pages := a.Add(pdf.NewDict().Set("Type", pdf.Name("Pages")) ...)
//	root := a.Add(pdf.NewDict().
//	    Set("Type", pdf.Name("Catalog")).
//	    Set("Pages", pages))
//	trailer := pdf.NewDict().Set("Root", root)
//	err := pdf.Write(out, a, trailer, nil)
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	Stream
//	String
//
// The null object is represented by Go's nil.
//
// Subpackages implement fonts, content streams, a page layout engine,
// annotations and document outlines on top of this package.
package pdf
