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
	"fmt"
	"io"
)

// XRefEntry describes where an object is stored in a PDF file.
type XRefEntry struct {
	// Pos is the byte offset of the object, or the index of the object
	// within its object stream if InStream is non-zero.
	Pos int64

	Generation uint16

	// InStream is the object stream which contains the object, or 0 if
	// the object is stored directly in the file.
	InStream Reference

	// Free is set for deleted objects.
	Free bool
}

// XRef maps object numbers to their locations in the file.
type XRef map[uint32]*XRefEntry

// findXRef locates the start of the last cross-reference section, by
// searching backwards for the "startxref" keyword.
func (r *Reader) findXRef() (int64, error) {
	pos, err := r.lastOccurrence("startxref")
	if err != nil {
		return 0, err
	}

	lex := r.lexerAt(pos)
	tok, err := lex.Next()
	if err != nil || tok.Kind != TokStartXRef {
		return 0, &MalformedFileError{Pos: pos, Err: errors.New("startxref not found")}
	}
	tok, err = lex.Next()
	if err != nil || tok.Kind != TokInteger {
		return 0, &MalformedFileError{Pos: pos, Err: errors.New("missing xref position")}
	}
	xrefPos := tok.Int
	if xrefPos <= 0 || xrefPos >= r.size {
		return 0, &MalformedFileError{Pos: tok.Pos, Err: errors.New("invalid xref position")}
	}
	tok, err = lex.Next()
	if err != nil || tok.Kind != TokEOFMarker {
		return 0, &MalformedFileError{Pos: tok.Pos, Err: errors.New("missing %%EOF")}
	}
	return xrefPos, nil
}

func (r *Reader) lastOccurrence(pat string) (int64, error) {
	const chunkSize = 1024

	buf := make([]byte, chunkSize)
	k := int64(len(pat))
	pos := r.size
	for pos >= k {
		start := max(pos-chunkSize, 0)
		n, err := r.r.ReadAt(buf[:pos-start], start)
		if err != nil && err != io.EOF {
			return 0, err
		}

		idx := bytes.LastIndex(buf[:n], []byte(pat))
		if idx >= 0 {
			return start + int64(idx), nil
		}
		if start == 0 {
			break
		}
		pos = start + k - 1
	}
	return 0, &MalformedFileError{Err: errors.New(pat + " not found")}
}

// readXRef reads the chain of cross-reference sections, starting with the
// one at the given offset.  Entries from later sections take precedence.
func (r *Reader) readXRef(start int64) (XRef, *Dict, error) {
	xref := make(XRef)
	var trailer *Dict
	seen := make(map[int64]bool)
	for {
		// avoid xref loops
		if seen[start] {
			break
		}
		seen[start] = true

		lex := r.lexerAt(start)
		tok, err := lex.Next()
		if err != nil {
			return nil, nil, err
		}

		var dict *Dict
		if tok.Kind == TokXRef {
			dict, err = r.readXRefTable(xref, NewParser(lex))
			if err != nil {
				return nil, nil, err
			}
			if zStart, ok := dict.Get("XRefStm").(Integer); ok {
				_, err = r.readXRefStream(xref, int64(zStart))
				if err != nil {
					return nil, nil, err
				}
			}
		} else {
			dict, err = r.readXRefStream(xref, start)
			if err != nil {
				return nil, nil, err
			}
		}

		if trailer == nil {
			trailer = NewDict()
			for _, key := range []Name{"Size", "Root", "Encrypt", "Info", "ID"} {
				if val := dict.Get(key); val != nil {
					trailer.Set(key, val)
				}
			}
		}

		prev := dict.Get("Prev")
		if prev == nil {
			break
		}
		prevStart, ok := prev.(Integer)
		if !ok || prevStart <= 0 || int64(prevStart) >= r.size {
			return nil, nil, &MalformedFileError{
				Pos: start,
				Err: fmt.Errorf("invalid /Prev value %s", Format(prev)),
			}
		}
		start = int64(prevStart)
	}

	return xref, trailer, nil
}

// readXRefTable reads a classical cross-reference table.  The "xref"
// keyword has already been consumed.
func (r *Reader) readXRefTable(xref XRef, p *Parser) (*Dict, error) {
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokTrailer:
			obj, err := p.ReadObject()
			if err != nil {
				return nil, err
			}
			dict, ok := obj.(*Dict)
			if !ok {
				return nil, &MalformedFileError{Pos: tok.Pos, Err: errors.New("invalid trailer")}
			}
			return dict, nil
		case TokInteger:
			// subsection header
		default:
			return nil, &MalformedFileError{Pos: tok.Pos, Err: errors.New("malformed xref table")}
		}

		countTok, err := p.next()
		if err != nil {
			return nil, err
		}
		if countTok.Kind != TokInteger || tok.Int < 0 || countTok.Int < 0 || tok.Int+countTok.Int > 1<<32-1 {
			return nil, &MalformedFileError{Pos: tok.Pos, Err: errors.New("malformed xref subsection header")}
		}
		err = decodeXRefSection(xref, p, uint32(tok.Int), uint32(tok.Int+countTok.Int))
		if err != nil {
			return nil, err
		}
	}
}

func decodeXRefSection(xref XRef, p *Parser, start, end uint32) error {
	for i := start; i < end; i++ {
		posTok, err := p.next()
		if err != nil {
			return err
		}
		genTok, err := p.next()
		if err != nil {
			return err
		}
		typeTok, err := p.next()
		if err != nil {
			return err
		}
		if posTok.Kind != TokInteger || genTok.Kind != TokInteger ||
			typeTok.Kind != TokN && typeTok.Kind != TokF {
			return &MalformedFileError{Pos: posTok.Pos, Err: errors.New("malformed xref entry")}
		}

		if xref[i] != nil {
			continue
		}
		if typeTok.Kind == TokN && posTok.Int > 0 {
			xref[i] = &XRefEntry{Pos: posTok.Int, Generation: uint16(genTok.Int)}
		} else {
			xref[i] = &XRefEntry{Pos: -1, Generation: uint16(genTok.Int), Free: true}
		}
	}
	return nil
}

// readXRefStream reads a cross-reference stream which starts at the given
// offset.  The stream dictionary is returned.
func (r *Reader) readXRefStream(xref XRef, start int64) (*Dict, error) {
	p := NewParser(r.lexerAt(start))
	_, obj, err := p.ReadIndirect()
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*Stream)
	if !ok {
		return nil, &MalformedFileError{Pos: start, Err: errors.New("invalid xref stream")}
	}
	dict := stream.Dict

	w, ss, err := checkXRefStreamDict(dict)
	if err != nil {
		return nil, &MalformedFileError{Pos: start, Err: err}
	}
	data, err := stream.Decoded()
	if err != nil {
		return nil, &MalformedFileError{Pos: start, Err: err}
	}
	err = decodeXRefStream(xref, data, w, ss)
	if err != nil {
		return nil, &MalformedFileError{Pos: start, Err: err}
	}
	return dict, nil
}

type xRefSubSection struct {
	Start, Size int64
}

func checkXRefStreamDict(dict *Dict) ([]int, []xRefSubSection, error) {
	size, ok := dict.Get("Size").(Integer)
	if !ok || size < 0 {
		return nil, nil, errors.New("missing /Size in xref stream")
	}
	W, ok := dict.Get("W").(Array)
	if !ok || len(W) < 3 {
		return nil, nil, errors.New("invalid /W in xref stream")
	}
	var w []int
	for i, Wi := range W {
		wi, ok := Wi.(Integer)
		if !ok || wi < 0 || i < 3 && wi > 8 {
			return nil, nil, errors.New("invalid /W in xref stream")
		}
		w = append(w, int(wi))
	}

	var ss []xRefSubSection
	switch ind := dict.Get("Index").(type) {
	case nil:
		ss = append(ss, xRefSubSection{0, int64(size)})
	case Array:
		if len(ind)%2 != 0 {
			return nil, nil, errors.New("invalid /Index in xref stream")
		}
		for i := 0; i < len(ind); i += 2 {
			start, ok1 := ind[i].(Integer)
			n, ok2 := ind[i+1].(Integer)
			if !ok1 || !ok2 || start < 0 || n < 0 || start+n > 1<<32-1 {
				return nil, nil, errors.New("invalid /Index in xref stream")
			}
			ss = append(ss, xRefSubSection{int64(start), int64(n)})
		}
	default:
		return nil, nil, errors.New("invalid /Index in xref stream")
	}
	return w, ss, nil
}

func decodeXRefStream(xref XRef, data []byte, w []int, ss []xRefSubSection) error {
	wTotal := 0
	for _, wi := range w {
		wTotal += wi
	}
	if wTotal == 0 {
		return errors.New("invalid /W in xref stream")
	}

	w0, w1, w2 := w[0], w[1], w[2]
	for _, sec := range ss {
		for i := sec.Start; i < sec.Start+sec.Size; i++ {
			if len(data) < wTotal {
				return io.ErrUnexpectedEOF
			}
			buf := data[:wTotal]
			data = data[wTotal:]

			num := uint32(i)
			if xref[num] != nil {
				continue
			}

			tp := decodeInt(buf[:w0])
			if w0 == 0 {
				tp = 1
			}
			a := decodeInt(buf[w0 : w0+w1])
			b := decodeInt(buf[w0+w1 : w0+w1+w2])
			switch tp {
			case 0:
				xref[num] = &XRefEntry{Pos: -1, Generation: uint16(b), Free: true}
			case 1:
				xref[num] = &XRefEntry{Pos: a, Generation: uint16(b)}
			case 2:
				xref[num] = &XRefEntry{Pos: b, InStream: NewReference(uint32(a), 0)}
			}
		}
	}
	return nil
}

func decodeInt(buf []byte) (res int64) {
	for _, x := range buf {
		res = res<<8 | int64(x)
	}
	return res
}
