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
	"bytes"
	"fmt"
)

// checkPDFA1B verifies that the objects collected for writing satisfy the
// requirements of PDF/A-1B.
func checkPDFA1B(src Getter, c *collector, trailer *Dict) error {
	fail := func(format string, args ...any) error {
		return &ConformanceError{Level: PDFA1B, Violation: fmt.Sprintf(format, args...)}
	}

	if trailer.Has("Encrypt") {
		return fail("encryption is not allowed")
	}

	catalog, err := GetDict(src, trailer.Get("Root"))
	if err != nil {
		return err
	}

	meta, err := GetStream(src, catalog.Get("Metadata"))
	if err != nil {
		return err
	}
	if meta == nil {
		return fail("missing XMP metadata stream")
	}
	data, err := meta.Decoded()
	if err != nil {
		return err
	}
	if !bytes.Contains(data, []byte("pdfaid:part")) {
		return fail("XMP metadata lacks the PDF/A identification schema")
	}

	intents, err := GetArray(src, catalog.Get("OutputIntents"))
	if err != nil {
		return err
	}
	hasIntent := false
	for _, obj := range intents {
		intent, err := GetDict(src, obj)
		if err != nil {
			return err
		}
		if intent.Get("S") != Name("GTS_PDFA1") {
			continue
		}
		profile, err := GetStream(src, intent.Get("DestOutputProfile"))
		if err != nil {
			return err
		}
		if profile != nil {
			hasIntent = true
		}
	}
	if !hasIntent {
		return fail("missing output intent with an ICC profile")
	}

	names, err := GetDict(src, catalog.Get("Names"))
	if err != nil {
		return err
	}
	if names.Has("EmbeddedFiles") {
		return fail("embedded files are not allowed")
	}

	for i, obj := range c.out {
		var violation error
		walkDicts(obj, func(d *Dict) bool {
			violation = checkPDFA1BDict(src, d)
			return violation == nil
		})
		if violation != nil {
			if ce, ok := violation.(*ConformanceError); ok {
				ce.Violation = fmt.Sprintf("object %d: %s", i+1, ce.Violation)
			}
			return violation
		}
	}
	return nil
}

func checkPDFA1BDict(src Getter, d *Dict) error {
	fail := func(format string, args ...any) error {
		return &ConformanceError{Level: PDFA1B, Violation: fmt.Sprintf(format, args...)}
	}

	switch f := d.Get("Filter").(type) {
	case Name:
		if f == "LZWDecode" || f == "LZW" {
			return fail("LZW compression is not allowed")
		}
	case Array:
		for _, name := range f {
			if name == Name("LZWDecode") || name == Name("LZW") {
				return fail("LZW compression is not allowed")
			}
		}
	}

	for _, key := range []Name{"CA", "ca"} {
		if alpha, ok := asNumber(d.Get(key)); ok && alpha < 1 {
			return fail("transparency (/%s %g) is not allowed", key, alpha)
		}
	}
	if smask, ok := d.Get("SMask").(Name); d.Has("SMask") && (!ok || smask != "None") {
		return fail("soft masks are not allowed")
	}
	if d.Has("JavaScript") || d.Get("S") == Name("JavaScript") {
		return fail("JavaScript is not allowed")
	}

	if d.Get("Type") != Name("Font") {
		return nil
	}
	subtype, _ := d.Get("Subtype").(Name)
	switch subtype {
	case "Type3":
		return nil
	case "Type0":
		// checked via the descendant font
		return nil
	}
	fd, err := GetDict(src, d.Get("FontDescriptor"))
	if err != nil {
		return err
	}
	if fd == nil || !fd.Has("FontFile") && !fd.Has("FontFile2") && !fd.Has("FontFile3") {
		base, _ := d.Get("BaseFont").(Name)
		return fail("font %q is not embedded", string(base))
	}
	return nil
}

// walkDicts calls fn for every dictionary contained directly in obj,
// including stream dictionaries.  Indirect references are not followed.
// The walk stops when fn returns false.
func walkDicts(obj Object, fn func(*Dict) bool) bool {
	switch x := obj.(type) {
	case Array:
		for _, elem := range x {
			if !walkDicts(elem, fn) {
				return false
			}
		}
	case *Dict:
		if !fn(x) {
			return false
		}
		for _, val := range x.All() {
			if !walkDicts(val, fn) {
				return false
			}
		}
	case *Stream:
		return walkDicts(x.Dict, fn)
	}
	return true
}
