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

// Package metadata builds and reads XMP metadata streams.
//
// Documents which conform to PDF/A-1B must carry an XMP packet mirroring
// the document information dictionary, together with the PDF/A
// identification schema.
package metadata

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfdoc"
)

// Info holds the document level metadata.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	CreationDate time.Time
	ModDate      time.Time

	// Language is the language of the title and subject.
	Language language.Tag
}

// PDF is the XMP namespace for PDF metadata.
type PDF struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_          xmp.Prefix    `xmp:"pdf"`
	Keywords   xmp.Text
	PDFVersion xmp.Text
	Producer   xmp.AgentName
}

// PDFAID is the PDF/A identification schema.
type PDFAID struct {
	_           xmp.Namespace `xmp:"http://www.aiim.org/pdfa/ns/id/"`
	_           xmp.Prefix    `xmp:"pdfaid"`
	Part        xmp.Text      `xmp:"part"`
	Conformance xmp.Text      `xmp:"conformance"`
}

// NewPacket returns an XMP packet describing the document.  If pdfa is
// true, the packet identifies the document as PDF/A-1B.
func NewPacket(info *Info, version pdf.Version, pdfa bool) (*xmp.Packet, error) {
	lang := info.Language

	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(lang, info.Title)
	}
	if info.Subject != "" {
		dc.Description.Set(lang, info.Subject)
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}

	basic := &xmp.Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}
	if info.Creator != "" {
		basic.CreatorTool = xmp.NewAgentName(info.Creator)
	}

	pdfInfo := &PDF{}
	if info.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}
	pdfInfo.PDFVersion = xmp.NewText(version.String())

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}
	if pdfa {
		id := &PDFAID{
			Part:        xmp.NewText("1"),
			Conformance: xmp.NewText("B"),
		}
		err = packet.Set(id)
		if err != nil {
			return nil, err
		}
	}
	return packet, nil
}

// Stream represents an XMP metadata stream.
type Stream struct {
	Data *xmp.Packet
}

// Embed adds the metadata stream to the arena.  The stream is stored
// without compression, so that the metadata can be found by tools which
// do not understand PDF.
func (s *Stream) Embed(a *pdf.Arena) (pdf.Reference, error) {
	buf := &bytes.Buffer{}
	err := s.Data.Write(buf, nil)
	if err != nil {
		return 0, err
	}
	dict := pdf.NewDict().
		Set("Type", pdf.Name("Metadata")).
		Set("Subtype", pdf.Name("XML"))
	return a.Add(pdf.NewStream(dict, buf.Bytes())), nil
}

// Extract reads an XMP metadata stream.  Unlike content streams, a
// metadata stream which cannot be decoded is an error.
func Extract(r pdf.Getter, ref pdf.Object) (*Stream, error) {
	stm, err := pdf.GetStream(r, ref)
	if err != nil {
		return nil, err
	} else if stm == nil {
		return nil, errNoMetadata
	}
	data, err := stm.Decoded()
	if err != nil {
		return nil, err
	}
	packet, err := xmp.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// PDFA returns the PDF/A part and conformance level recorded in the
// metadata.  If the packet has no PDF/A identification, part is 0.
func (s *Stream) PDFA() (part int, conformance string) {
	id := &PDFAID{}
	s.Data.Get(id)
	part, _ = strconv.Atoi(id.Part.V)
	return part, id.Conformance.V
}

// Equal reports whether s and other represent the same XMP metadata.
func (s *Stream) Equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Data.Equal(other.Data)
}

var errNoMetadata = errors.New("missing metadata stream")
