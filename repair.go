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
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strconv"
)

// objHeader matches the start of an indirect object definition.  Comments
// may appear between the tokens.
var objHeader = regexp.MustCompile(`(\d{1,10})(?:\s|%[^\r\n]*)+(\d{1,5})(?:\s|%[^\r\n]*)+obj`)

// repair rebuilds the cross-reference table by scanning the whole file for
// object headers.  The trailer is taken from the last "trailer" dictionary
// in the file; if there is none, a trailer is synthesized from the
// document catalog.
func (r *Reader) repair() error {
	if r.repaired {
		return ErrXRefUnrepairable
	}
	r.repaired = true

	data := make([]byte, r.size)
	n, err := r.r.ReadAt(data, 0)
	if err != nil && !(err == io.EOF && int64(n) == r.size) {
		return err
	}

	xref := make(XRef)
	var objStreams []Reference
	for _, m := range objHeader.FindAllSubmatchIndex(data, -1) {
		start := m[0]
		if start > 0 && !isSpace[data[start-1]] && !isDelimiter[data[start-1]] {
			continue
		}
		end := m[1]
		if end < len(data) && !isSpace[data[end]] && !isDelimiter[data[end]] {
			continue
		}
		num, err1 := strconv.ParseUint(string(data[m[2]:m[3]]), 10, 32)
		gen, err2 := strconv.ParseUint(string(data[m[4]:m[5]]), 10, 16)
		if err1 != nil || err2 != nil {
			continue
		}

		// later definitions override earlier ones
		xref[uint32(num)] = &XRefEntry{Pos: int64(start), Generation: uint16(gen)}

		head := data[end:min(end+256, len(data))]
		if bytes.Contains(head, []byte("/ObjStm")) {
			objStreams = append(objStreams, NewReference(uint32(num), uint16(gen)))
		}
	}

	r.xref = xref
	r.cache = make(map[Reference]Object)
	r.objStms = make(map[Reference]*objStream)

	for _, ref := range objStreams {
		stm, err := r.getObjStream(ref)
		if err != nil {
			r.logger.Debug("skipping damaged object stream",
				slog.String("ref", ref.String()),
				slog.String("error", err.Error()))
			continue
		}
		for i, num := range stm.nums {
			if _, exists := xref[num]; exists {
				continue
			}
			xref[num] = &XRefEntry{Pos: int64(i), InStream: ref}
		}
	}

	trailer := r.findTrailer(data)
	if trailer == nil {
		trailer = NewDict()
	}
	if _, err := r.catalogFrom(trailer); err != nil {
		root := r.findCatalog()
		if root == 0 {
			return ErrXRefUnrepairable
		}
		trailer.Set("Root", root)
	}
	trailer.Set("Size", Integer(maxObjectNumber(xref)+1))
	trailer.Delete("Prev")
	trailer.Delete("XRefStm")
	r.trailer = trailer

	r.logger.Warn("cross-reference table was repaired",
		slog.Int("objects", len(xref)))
	return nil
}

// findTrailer returns the last usable trailer dictionary in the file.
// Both classical trailers and cross-reference stream dictionaries are
// considered.
func (r *Reader) findTrailer(data []byte) *Dict {
	end := len(data)
	for {
		idx := bytes.LastIndex(data[:end], []byte("trailer"))
		if idx < 0 {
			break
		}
		end = idx

		p := NewParser(NewLexer(bytes.NewReader(data[idx+7:]), int64(idx+7)))
		obj, err := p.ReadObject()
		if err != nil {
			continue
		}
		if dict, ok := obj.(*Dict); ok && dict.Has("Root") {
			return dict
		}
	}

	var best *Dict
	var bestPos int64 = -1
	for num, entry := range r.xref {
		if entry.InStream != 0 || entry.Pos < bestPos {
			continue
		}
		obj, err := r.loadAt(entry.Pos, NewReference(num, entry.Generation), true)
		if err != nil {
			continue
		}
		stm, ok := obj.(*Stream)
		if !ok || stm.Dict.Get("Type") != Name("XRef") || !stm.Dict.Has("Root") {
			continue
		}
		best = stm.Dict.Clone()
		bestPos = entry.Pos
	}
	if best != nil {
		for _, key := range []Name{"Type", "W", "Index", "Length", "Filter", "DecodeParms"} {
			best.Delete(key)
		}
	}
	return best
}

// findCatalog returns a reference to the last document catalog in the file,
// or 0 if no catalog can be found.
func (r *Reader) findCatalog() Reference {
	var res Reference
	var resPos int64 = -1
	for num, entry := range r.xref {
		ref := NewReference(num, entry.Generation)
		pos := entry.Pos
		if entry.InStream != 0 {
			// objects in object streams sort by the position of the stream
			pos = r.xref[entry.InStream.Number()].Pos
		}
		if pos < resPos {
			continue
		}
		obj, err := r.Get(ref)
		if err != nil {
			continue
		}
		dict, ok := obj.(*Dict)
		if !ok || dict.Get("Type") != Name("Catalog") || !dict.Has("Pages") {
			continue
		}
		res = ref
		resPos = pos
	}
	return res
}

func (r *Reader) catalogFrom(trailer *Dict) (*Dict, error) {
	root, err := GetDict(r, trailer.Get("Root"))
	if err != nil {
		return nil, err
	}
	if root == nil || !root.Has("Pages") {
		return nil, errors.New("missing document catalog")
	}
	return root, nil
}

func maxObjectNumber(xref XRef) uint32 {
	var res uint32
	for num := range xref {
		res = max(res, num)
	}
	return res
}
