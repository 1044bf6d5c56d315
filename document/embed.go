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
	"mime"
	"path"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfdoc"
)

// EmbeddedFile describes a file attached to the document.
type EmbeddedFile struct {
	Name        string
	Description string
	MimeType    string
	ModTime     time.Time
	Data        []byte
}

// EmbedFile attaches a file to the document.  The file is listed in the
// /EmbeddedFiles name tree of the catalog.  If no MIME type is given, it
// is guessed from the file name.
//
// Embedded files are not allowed in PDF/A-1 documents.
func (d *Document) EmbedFile(f *EmbeddedFile) error {
	if f.Name == "" {
		return errNoFileName
	}
	if d.opt.Conformance == pdf.PDFA1B {
		return &pdf.ConformanceError{Level: pdf.PDFA1B, Violation: "embedded files are not allowed"}
	}

	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(path.Ext(f.Name))
	}

	params := pdf.NewDict().Set("Size", pdf.Integer(len(f.Data)))
	if !f.ModTime.IsZero() {
		params.Set("ModDate", pdf.Date(f.ModTime))
	}
	stmDict := pdf.NewDict().
		Set("Type", pdf.Name("EmbeddedFile")).
		Set("Filter", pdf.Name("FlateDecode")).
		Set("Params", params)
	if mimeType != "" {
		if base, _, err := mime.ParseMediaType(mimeType); err == nil {
			stmDict.Set("Subtype", pdf.Name(base))
		}
	}
	stmRef := d.Arena.Add(pdf.NewDecodedStream(stmDict, f.Data))

	spec := pdf.NewDict().
		Set("Type", pdf.Name("Filespec")).
		Set("F", pdf.TextString(f.Name)).
		Set("UF", pdf.TextString(f.Name)).
		Set("EF", pdf.NewDict().Set("F", stmRef))
	if f.Description != "" {
		spec.Set("Desc", pdf.TextString(f.Description))
	}
	d.files[f.Name] = d.Arena.Add(spec)
	d.updateFileTree()
	return nil
}

// updateFileTree writes the /EmbeddedFiles name tree.  All files are
// stored in a single leaf node, sorted by name.
func (d *Document) updateFileTree() {
	names := maps.Keys(d.files)
	slices.Sort(names)
	arr := make(pdf.Array, 0, 2*len(names))
	for _, name := range names {
		arr = append(arr, pdf.TextString(name), d.files[name])
	}

	nameDict, _ := pdf.GetDict(d.Arena, d.Catalog.Get("Names"))
	if nameDict == nil {
		nameDict = pdf.NewDict()
		d.Catalog.Set("Names", nameDict)
	}
	nameDict.Set("EmbeddedFiles", pdf.NewDict().Set("Names", arr))
}

// EmbeddedFiles returns the files attached to the document.
func (d *Document) EmbeddedFiles() ([]*EmbeddedFile, error) {
	var res []*EmbeddedFile
	err := d.walkFileTree(func(key pdf.String, val pdf.Object) error {
		f, err := readFileSpec(d.Arena, key, val)
		if err != nil {
			return err
		}
		res = append(res, f)
		return nil
	})
	return res, err
}

// walkFileTree calls fn for every entry of the /EmbeddedFiles name tree.
func (d *Document) walkFileTree(fn func(key pdf.String, val pdf.Object) error) error {
	r := d.Arena
	nameDict, err := pdf.GetDict(r, d.Catalog.Get("Names"))
	if err != nil {
		return err
	}
	tree, err := pdf.GetDict(r, nameDict.Get("EmbeddedFiles"))
	if err != nil || tree == nil {
		return err
	}

	seen := make(map[*pdf.Dict]bool)
	var walk func(node *pdf.Dict) error
	walk = func(node *pdf.Dict) error {
		if seen[node] {
			return nil
		}
		seen[node] = true

		names, err := pdf.GetArray(r, node.Get("Names"))
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(names); i += 2 {
			key, err := pdf.GetString(r, names[i])
			if err != nil {
				return err
			}
			err = fn(key, names[i+1])
			if err != nil {
				return err
			}
		}

		kids, err := pdf.GetArray(r, node.Get("Kids"))
		if err != nil {
			return err
		}
		for _, kid := range kids {
			kidDict, err := pdf.GetDict(r, kid)
			if err != nil {
				return err
			}
			if kidDict != nil {
				if err := walk(kidDict); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(tree)
}

func readFileSpec(r pdf.Getter, name pdf.String, val pdf.Object) (*EmbeddedFile, error) {
	spec, err := pdf.GetDict(r, val)
	if err != nil {
		return nil, err
	}
	f := &EmbeddedFile{Name: name.AsTextString()}
	if desc, err := pdf.GetString(r, spec.Get("Desc")); err == nil {
		f.Description = desc.AsTextString()
	}
	ef, err := pdf.GetDict(r, spec.Get("EF"))
	if err != nil {
		return nil, err
	}
	stm, err := pdf.GetStream(r, ef.Get("F"))
	if err != nil || stm == nil {
		return f, err
	}
	if subtype, ok := stm.Dict.Get("Subtype").(pdf.Name); ok {
		f.MimeType = string(subtype)
	}
	if params, _ := pdf.GetDict(r, stm.Dict.Get("Params")); params != nil {
		if s, err := pdf.GetString(r, params.Get("ModDate")); err == nil && s != nil {
			f.ModTime, _ = s.AsDate()
		}
	}
	f.Data, err = stm.Decoded()
	if err != nil {
		return nil, err
	}
	return f, nil
}

var errNoFileName = errors.New("embedded file without name")
