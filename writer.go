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
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// WriterOptions controls how a PDF file is written.
type WriterOptions struct {
	// Version is the PDF version written into the file header.
	// The default is PDF 1.7.
	Version Version

	// Conformance selects a conformance level.  If this is set, the
	// document is checked before any data is written, and the version is
	// adjusted as required by the conformance level.
	Conformance Conformance

	// Compress makes the writer apply /FlateDecode to streams which
	// have no filter.
	Compress bool

	// ID is the file identifier.  If this is nil, the first part of an
	// existing identifier in the trailer is kept, and the remaining parts
	// are computed from the file contents.
	ID [][]byte

	// Logger is used for debug output.  If this is nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Write writes a complete PDF file to w.
//
// The objects written are the ones reachable from the /Root and /Info
// entries of the trailer, where references are resolved using src.
// Objects are renumbered from 1 in breadth-first order, starting at the
// document catalog.  References to objects which cannot be found are
// written as null.  If the same dictionary or stream is stored under
// several references, it is written only once.
//
// The file is assembled in memory and only copied to w once it is
// complete; if an error occurs, nothing is written to w.
func Write(w io.Writer, src Getter, trailer *Dict, opt *WriterOptions) error {
	if opt == nil {
		opt = &WriterOptions{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := opt.Version
	if version == 0 {
		version = V1_7
	}
	if opt.Conformance == PDFA1B {
		version = V1_4
	}

	rootRef, ok := trailer.Get("Root").(Reference)
	if !ok {
		return errors.New("trailer: /Root must be an indirect reference")
	}

	c := &collector{
		src:      src,
		renumber: make(map[Reference]Reference),
		ptrs:     make(map[Object]Reference),
		direct:   make(map[*Stream]Reference),
		compress: opt.Compress,
	}
	err := c.collect(rootRef)
	if err != nil {
		return err
	}
	if _, ok := c.renumber[rootRef]; !ok {
		return errors.New("document catalog not found")
	}
	var infoRef Reference
	switch info := trailer.Get("Info").(type) {
	case Reference:
		err = c.collect(info)
		if err != nil {
			return err
		}
		infoRef = c.renumber[info]
	case *Dict:
		infoRef = c.add(info)
		err = c.drain()
		if err != nil {
			return err
		}
	}

	if opt.Conformance == PDFA1B {
		err = checkPDFA1B(src, c, trailer)
		if err != nil {
			return err
		}
	}
	logger.Debug("writing PDF file",
		slog.String("version", version.String()),
		slog.String("conformance", opt.Conformance.String()),
		slog.Int("objects", len(c.out)))

	buf := &bytes.Buffer{}
	pw := &posWriter{
		w:        buf,
		renumber: c.renumber,
		direct:   c.direct,
	}
	_, err = fmt.Fprintf(pw, "%%PDF-%s\n%%\x80\x80\x80\x80\n", version)
	if err != nil {
		return err
	}

	offsets := make([]int64, len(c.out))
	for i, obj := range c.out {
		offsets[i] = pw.pos
		_, err = fmt.Fprintf(pw, "%d 0 obj\n", i+1)
		if err != nil {
			return err
		}
		if stm, isStream := obj.(*Stream); isStream {
			pw.top = stm
		}
		err = obj.PDF(pw)
		pw.top = nil
		if err != nil {
			return fmt.Errorf("object %d: %w", i+1, err)
		}
		_, err = pw.Write([]byte("\nendobj\n"))
		if err != nil {
			return err
		}
	}

	id := opt.ID
	if len(id) != 2 {
		sum := md5.Sum(buf.Bytes())
		first := sum[:]
		if old, ok := trailer.Get("ID").(Array); ok && len(old) == 2 {
			if s, ok := old[0].(String); ok && len(s) > 0 {
				first = s
			}
		}
		id = [][]byte{first, sum[:]}
	}

	xrefPos := pw.pos
	_, err = fmt.Fprintf(pw, "xref\n0 %d\n0000000000 65535 f \n", len(c.out)+1)
	if err != nil {
		return err
	}
	for _, pos := range offsets {
		_, err = fmt.Fprintf(pw, "%010d 00000 n \n", pos)
		if err != nil {
			return err
		}
	}

	// The trailer refers to the new object numbers, so it is written
	// without renumbering.
	newTrailer := NewDict().
		Set("Size", Integer(len(c.out)+1)).
		Set("Root", NewReference(1, 0))
	if infoRef != 0 {
		newTrailer.Set("Info", infoRef)
	}
	newTrailer.Set("ID", Array{String(id[0]), String(id[1])})
	_, err = buf.WriteString("trailer\n")
	if err != nil {
		return err
	}
	err = newTrailer.PDF(buf)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(buf, "\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	if err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// collector determines the objects to be written and assigns the new
// object numbers.
type collector struct {
	src      Getter
	renumber map[Reference]Reference
	ptrs     map[Object]Reference
	direct   map[*Stream]Reference
	compress bool

	out   []Object
	queue []Reference
}

func (c *collector) collect(ref Reference) error {
	c.queue = append(c.queue, ref)
	return c.drain()
}

func (c *collector) drain() error {
	for len(c.queue) > 0 {
		ref := c.queue[0]
		c.queue = c.queue[1:]
		if _, seen := c.renumber[ref]; seen {
			continue
		}

		obj, err := c.src.Get(ref)
		if err != nil {
			return fmt.Errorf("reading %s: %w", ref, err)
		}
		if obj == nil {
			continue
		}

		switch obj.(type) {
		case *Dict, *Stream:
			if newRef, ok := c.ptrs[obj]; ok {
				c.renumber[ref] = newRef
				continue
			}
		}
		newRef := c.add(obj)
		c.renumber[ref] = newRef
	}
	return nil
}

// add assigns the next object number to obj and schedules the objects
// it refers to.
func (c *collector) add(obj Object) Reference {
	newRef := NewReference(uint32(len(c.out)+1), 0)
	switch obj.(type) {
	case *Dict, *Stream:
		c.ptrs[obj] = newRef
	}
	if stm, ok := obj.(*Stream); ok && c.compress && !stm.Dict.Has("Filter") {
		data, err := stm.Decoded()
		if err == nil {
			dict := stm.Dict.Clone()
			dict.Set("Filter", Name("FlateDecode"))
			obj = NewDecodedStream(dict, data)
			c.ptrs[obj] = newRef
		}
	}
	c.out = append(c.out, obj)
	c.scan(obj, true)
	return newRef
}

func (c *collector) scan(obj Object, top bool) {
	switch x := obj.(type) {
	case Reference:
		c.queue = append(c.queue, x)
	case Array:
		for _, elem := range x {
			c.scan(elem, false)
		}
	case *Dict:
		for _, val := range x.All() {
			c.scan(val, false)
		}
	case *Stream:
		if !top {
			if _, done := c.direct[x]; done {
				return
			}
			if newRef, ok := c.ptrs[x]; ok {
				c.direct[x] = newRef
				return
			}
			c.direct[x] = NewReference(uint32(len(c.out)+1), 0)
			c.add(x)
			return
		}
		for key, val := range x.Dict.All() {
			if key == "Length" {
				continue
			}
			c.scan(val, false)
		}
	}
}

// posWriter keeps track of the number of bytes written.  While a file is
// written, it also carries the mapping from the references used in the
// source to the new object numbers.
type posWriter struct {
	w   io.Writer
	pos int64

	renumber map[Reference]Reference
	direct   map[*Stream]Reference
	top      *Stream
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
