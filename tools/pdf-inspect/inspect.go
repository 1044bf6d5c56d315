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

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/midbel/hexdump"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfdoc"
)

type showOptions struct {
	Raw   bool
	Hex   bool
	Width int // 0 means no limit
}

// locate follows the selectors, starting at the document catalog.
func locate(r *pdf.Reader, selectors ...string) (pdf.Object, error) {
	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	var obj pdf.Object = catalog

	for _, key := range selectors {
		switch {
		case key == "":
			return nil, errors.New("empty selector")
		case key == "@info":
			info, err := r.Info()
			if err != nil {
				return nil, err
			}
			obj = info
		case key == "@trailer":
			obj = r.Trailer()
		case key[0] == '@':
			ref, err := parseReference(key[1:])
			if err != nil {
				return nil, err
			}
			obj, err = r.Get(ref)
			if err != nil {
				return nil, err
			}
		default:
			obj, err = step(r, obj, key)
			if err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

func parseReference(s string) (pdf.Reference, error) {
	num, gen, hasGen := strings.Cut(s, ".")
	number, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid object number %q", num)
	}
	var generation uint64
	if hasGen {
		generation, err = strconv.ParseUint(gen, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid generation number %q", gen)
		}
	}
	return pdf.NewReference(uint32(number), uint16(generation)), nil
}

// step selects a dictionary entry or array element of obj.
func step(r pdf.Getter, obj pdf.Object, key string) (pdf.Object, error) {
	if stm, ok := obj.(*pdf.Stream); ok {
		obj = stm.Dict
	}
	switch x := obj.(type) {
	case *pdf.Dict:
		if !x.Has(pdf.Name(key)) {
			return nil, fmt.Errorf("key %q not present in dict", key)
		}
		return pdf.Resolve(r, x.Get(pdf.Name(key)))
	case pdf.Array:
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("key %q not valid for an array", key)
		}
		if idx < 0 {
			idx += len(x)
		}
		if idx < 0 || idx >= len(x) {
			return nil, fmt.Errorf("index %s out of range 0...%d", key, len(x)-1)
		}
		return pdf.Resolve(r, x[idx])
	default:
		return nil, fmt.Errorf("key %q not valid for %s", key, pdf.Format(obj))
	}
}

// summary shows the file version, a summary of the cross-reference table
// and the trailer dictionary.
func summary(w io.Writer, r *pdf.Reader, opt *showOptions) error {
	xref := r.XRef()
	var direct, inStream, free int
	for num, entry := range xref {
		switch {
		case num == 0:
		case entry.Free:
			free++
		case entry.InStream != 0:
			inStream++
		default:
			direct++
		}
	}

	fmt.Fprintf(w, "PDF version: %s\n", r.Version)
	if r.Repaired() {
		fmt.Fprintln(w, "cross-reference table: reconstructed")
	}
	fmt.Fprintf(w, "objects: %d (%d in object streams), %d free\n",
		direct+inStream, inStream, free)

	nums := maps.Keys(xref)
	slices.Sort(nums)
	if n := len(nums); n > 0 {
		fmt.Fprintf(w, "object numbers: %d...%d\n", nums[0], nums[n-1])
	}

	fmt.Fprintln(w, "trailer:")
	return show(w, r.Trailer(), opt)
}

// show prints obj.  Streams are shown as their dictionary followed by the
// stream data.
func show(w io.Writer, obj pdf.Object, opt *showOptions) error {
	stm, isStream := obj.(*pdf.Stream)
	if !isStream {
		return writeLines(w, pdf.Format(obj), opt.Width)
	}

	err := writeLines(w, pdf.Format(stm.Dict), opt.Width)
	if err != nil {
		return err
	}

	var data []byte
	if opt.Raw {
		data, err = stm.Raw()
	} else {
		data, err = stm.Decoded()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "stream")
	text := string(data)
	if opt.Hex || !printable(data) {
		text = hexdump.Dump(data)
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(w, text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "endstream")
	return err
}

// writeLines writes s, truncating lines to the given width.
func writeLines(w io.Writer, s string, width int) error {
	for line := range strings.Lines(s + "\n") {
		line = strings.TrimSuffix(line, "\n")
		if width > 1 && utf8.RuneCountInString(line) > width {
			runes := []rune(line)
			line = string(runes[:width-1]) + "…"
		}
		_, err := fmt.Fprintln(w, line)
		if err != nil {
			return err
		}
	}
	return nil
}

// printable reports whether data looks like text.
func printable(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, c := range data {
		if c < 32 && c != '\n' && c != '\r' && c != '\t' {
			return false
		}
	}
	return true
}
