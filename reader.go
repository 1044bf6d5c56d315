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
	"log/slog"
	"os"
)

// ReaderOptions controls how a PDF file is read.
type ReaderOptions struct {
	// Logger receives warnings about damaged files.  If this is nil,
	// slog.Default() is used.
	Logger *slog.Logger

	// Strict disables the repair of damaged cross-reference data.
	Strict bool
}

// Reader represents a pdf file opened for reading.  Use [Open] or
// [NewReader] to create a new Reader.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	// Version is the PDF version used in this file.  This is specified in
	// the initial comment at the start of the file, and may be overridden by
	// the /Version entry in the document catalog.
	Version Version

	r      io.ReaderAt
	size   int64
	closer io.Closer
	logger *slog.Logger
	strict bool

	xref     XRef
	trailer  *Dict
	repaired bool
	loading  bool

	cache      map[Reference]Object
	inProgress map[Reference]bool
	objStms    map[Reference]*objStream
}

// Open opens the named PDF file for reading.  After use, [Reader.Close]
// must be called to close the file the Reader is reading from.
func Open(fname string, opt *ReaderOptions) (*Reader, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}
	r, err := NewReader(fd, fi.Size(), opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	r.closer = fd
	return r, nil
}

// NewReader creates a new Reader object.
//
// If the cross-reference data of the file is damaged, the reader tries
// to reconstruct it by scanning the file for object definitions, unless
// opt.Strict is set.  Use [Reader.Repaired] to check whether this
// happened.
func NewReader(data io.ReaderAt, size int64, opt *ReaderOptions) (*Reader, error) {
	if opt == nil {
		opt = &ReaderOptions{}
	}
	r := &Reader{
		r:          data,
		size:       size,
		logger:     opt.Logger,
		strict:     opt.Strict,
		cache:      make(map[Reference]Object),
		inProgress: make(map[Reference]bool),
		objStms:    make(map[Reference]*objStream),
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if c, ok := data.(io.Closer); ok {
		r.closer = c
	}

	version, err := r.readHeaderVersion()
	if err != nil {
		return nil, err
	}
	r.Version = version

	err = r.loadXRef()
	if err != nil {
		if r.strict {
			return nil, err
		}
		r.logger.Debug("cannot read cross-reference data",
			slog.String("error", err.Error()))
		err = r.repair()
		if err != nil {
			return nil, err
		}
	}

	if r.trailer.Has("Encrypt") {
		return nil, &MalformedFileError{Err: errors.New("encrypted files are not supported")}
	}

	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	if v, ok := catalog.Get("Version").(Name); ok {
		if cv, err := ParseVersion(string(v)); err == nil && cv > r.Version {
			r.Version = cv
		}
	}
	return r, nil
}

// loadXRef reads the cross-reference data of the file and checks that
// the document catalog can be found.
func (r *Reader) loadXRef() error {
	start, err := r.findXRef()
	if err != nil {
		return err
	}
	xref, trailer, err := r.readXRef(start)
	if err != nil {
		return err
	}
	r.xref = xref
	r.trailer = trailer

	if trailer.Has("Encrypt") {
		return nil
	}

	r.loading = true
	_, err = r.catalogFrom(trailer)
	r.loading = false
	if err != nil {
		r.cache = make(map[Reference]Object)
		r.objStms = make(map[Reference]*objStream)
		return err
	}
	return nil
}

func (r *Reader) readHeaderVersion() (Version, error) {
	buf := make([]byte, min(1024, r.size))
	n, err := r.r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return 0, err
	}
	buf = buf[:n]

	idx := bytes.Index(buf, []byte("%PDF-"))
	if idx < 0 {
		return 0, &MalformedFileError{Err: errors.New("PDF header not found")}
	}
	tok, err := r.lexerAt(int64(idx)).Next()
	if err != nil || tok.Kind != TokHeader {
		return 0, &MalformedFileError{Pos: int64(idx), Err: errors.New("malformed PDF header")}
	}
	v, err := ParseVersion(string(tok.Data))
	if err != nil {
		r.logger.Debug("unknown PDF version, assuming 1.7",
			slog.String("version", string(tok.Data)))
		v = V1_7
	}
	return v, nil
}

func (r *Reader) lexerAt(pos int64) *Lexer {
	return NewLexer(io.NewSectionReader(r.r, pos, r.size-pos), pos)
}

// Close closes the file underlying the reader.  This call only has an effect
// if the io.ReaderAt passed to NewReader() has a Close() method, or if the
// Reader was created using Open().  Otherwise, Close() has no effect and
// returns nil.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Trailer returns the trailer dictionary of the file.
// The dictionary must not be modified.
func (r *Reader) Trailer() *Dict {
	return r.trailer
}

// XRef returns the cross-reference table of the file.
// The table must not be modified.
func (r *Reader) XRef() XRef {
	return r.xref
}

// Repaired reports whether the cross-reference data had to be rebuilt by
// scanning the file.
func (r *Reader) Repaired() bool {
	return r.repaired
}

// Catalog returns the document catalog.
func (r *Reader) Catalog() (*Dict, error) {
	catalog, err := r.catalogFrom(r.trailer)
	if err != nil {
		return nil, &MalformedFileError{Err: err}
	}
	return catalog, nil
}

// Info returns the document information dictionary.  If the file has no
// information dictionary, an empty dictionary is returned.
//
// If the cross-reference table was repaired while opening the file, the
// returned dictionary contains the entry /XRefRepaired true.
func (r *Reader) Info() (*Dict, error) {
	info, err := GetDict(r, r.trailer.Get("Info"))
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = NewDict()
	} else if r.repaired {
		info = info.Clone()
	}
	if r.repaired {
		info.Set("XRefRepaired", Bool(true))
	}
	return info, nil
}

// ID returns the file identifier from the trailer, or nil if the file has
// no valid identifier.
func (r *Reader) ID() [][]byte {
	id, ok := r.trailer.Get("ID").(Array)
	if !ok || len(id) != 2 {
		return nil
	}
	var res [][]byte
	for _, x := range id {
		s, ok := x.(String)
		if !ok {
			return nil
		}
		res = append(res, []byte(s))
	}
	return res
}

// Resolve is a shorthand for [Resolve] using r as the [Getter].
func (r *Reader) Resolve(obj Object) (Object, error) {
	return Resolve(r, obj)
}

// Get implements the [Getter] interface.  Objects are read from the file
// on first use and cached afterwards.  References to objects which are
// missing from the file resolve to null.
//
// If an object cannot be read at the location given by the
// cross-reference table, the table is repaired and the read is retried.
func (r *Reader) Get(ref Reference) (Object, error) {
	if obj, ok := r.cache[ref]; ok {
		return obj, nil
	}

	obj, err := r.get(ref)
	if err != nil && !r.repaired && !r.strict && !r.loading {
		r.logger.Debug("cannot read object, repairing the file",
			slog.String("ref", ref.String()),
			slog.String("error", err.Error()))
		if rerr := r.repair(); rerr == nil {
			obj, err = r.get(ref)
		}
	}
	if err != nil {
		return nil, err
	}
	r.cache[ref] = obj
	return obj, nil
}

func (r *Reader) get(ref Reference) (Object, error) {
	if r.inProgress[ref] {
		return nil, &ParseError{Msg: "circular reference while reading " + ref.String()}
	}
	r.inProgress[ref] = true
	defer delete(r.inProgress, ref)

	entry := r.xref[ref.Number()]
	if entry == nil || entry.Free {
		return nil, nil
	}
	if entry.InStream != 0 {
		if ref.Generation() != 0 {
			return nil, nil
		}
		return r.getFromObjStream(ref, entry)
	}
	if entry.Generation != ref.Generation() {
		return nil, nil
	}

	obj, err := r.loadAt(entry.Pos, ref, false)
	if errors.Is(err, errStreamLength) || errors.Is(err, io.ErrUnexpectedEOF) {
		r.logger.Debug("invalid stream length, scanning for endstream",
			slog.String("ref", ref.String()))
		obj, err = r.loadAt(entry.Pos, ref, true)
	}
	return obj, err
}

// loadAt reads the object definition at the given file offset.
func (r *Reader) loadAt(pos int64, ref Reference, scanStreams bool) (Object, error) {
	if pos < 0 || pos >= r.size {
		return nil, &MalformedFileError{Pos: pos, Err: fmt.Errorf("invalid offset for %s", ref)}
	}
	p := NewParser(r.lexerAt(pos))
	p.GetInt = r.getInt
	p.ScanStreams = scanStreams
	got, obj, err := p.ReadIndirect()
	if err != nil {
		return nil, err
	}
	if got != ref {
		return nil, &MalformedFileError{
			Pos: pos,
			Err: fmt.Errorf("expected %s but found %s", ref, got),
		}
	}
	return obj, nil
}

func (r *Reader) getInt(obj Object) (Integer, error) {
	return GetInteger(r, obj)
}

type objStream struct {
	data  []byte
	first int
	nums  []uint32
	offs  []int
}

func (r *Reader) getObjStream(ref Reference) (*objStream, error) {
	if res, ok := r.objStms[ref]; ok {
		return res, nil
	}

	stm, err := GetStream(r, ref)
	if err != nil {
		return nil, err
	}
	if stm == nil {
		return nil, &MalformedFileError{Err: fmt.Errorf("object stream %s not found", ref)}
	}
	n, err := GetInteger(r, stm.Dict.Get("N"))
	if err != nil {
		return nil, err
	}
	first, err := GetInteger(r, stm.Dict.Get("First"))
	if err != nil {
		return nil, err
	}
	data, err := stm.Decoded()
	if err != nil {
		return nil, err
	}
	if n < 0 || first < 0 || int(first) > len(data) {
		return nil, &MalformedFileError{Err: fmt.Errorf("malformed object stream %s", ref)}
	}

	res := &objStream{data: data, first: int(first)}
	lex := NewLexer(bytes.NewReader(data[:first]), 0)
	for range n {
		numTok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		offTok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if numTok.Kind != TokInteger || offTok.Kind != TokInteger ||
			numTok.Int < 0 || numTok.Int > 1<<32-1 ||
			offTok.Int < 0 || int(first)+int(offTok.Int) > len(data) {
			return nil, &MalformedFileError{Err: fmt.Errorf("malformed object stream header in %s", ref)}
		}
		res.nums = append(res.nums, uint32(numTok.Int))
		res.offs = append(res.offs, int(offTok.Int))
	}

	r.objStms[ref] = res
	return res, nil
}

func (r *Reader) getFromObjStream(ref Reference, entry *XRefEntry) (Object, error) {
	stm, err := r.getObjStream(entry.InStream)
	if err != nil {
		return nil, err
	}

	idx := int(entry.Pos)
	if idx < 0 || idx >= len(stm.nums) || stm.nums[idx] != ref.Number() {
		idx = -1
		for i, num := range stm.nums {
			if num == ref.Number() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &MalformedFileError{
				Err: fmt.Errorf("%s not found in object stream %s", ref, entry.InStream),
			}
		}
	}

	start := int64(stm.first + stm.offs[idx])
	p := NewParser(NewLexer(bytes.NewReader(stm.data[start:]), start))
	return p.ReadObject()
}
