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

package metadata

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfdoc"
)

func TestRoundTrip(t *testing.T) {
	info := &Info{
		Title:        "Test Document",
		Author:       "Test Author",
		Keywords:     "test, XMP",
		Producer:     "pdfdoc",
		CreationDate: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Language:     language.Und,
	}
	packet, err := NewPacket(info, pdf.V1_4, true)
	if err != nil {
		t.Fatal(err)
	}
	original := &Stream{Data: packet}

	a := pdf.NewArena()
	ref, err := original.Embed(a)
	if err != nil {
		t.Fatal(err)
	}

	stm, err := pdf.GetStream(a, ref)
	if err != nil {
		t.Fatal(err)
	}
	if stm.Dict.Has("Filter") {
		t.Error("metadata stream is compressed")
	}
	data, _ := stm.Decoded()
	if !strings.Contains(string(data), "http://www.aiim.org/pdfa/ns/id/") {
		t.Error("PDF/A schema missing")
	}

	extracted, err := Extract(a, ref)
	if err != nil {
		t.Fatal(err)
	}

	var originalDC, extractedDC xmp.DublinCore
	original.Data.Get(&originalDC)
	extracted.Data.Get(&extractedDC)
	if diff := cmp.Diff(extractedDC, originalDC); diff != "" {
		t.Errorf("round trip failed (-got +want):\n%s", diff)
	}

	part, conf := extracted.PDFA()
	if part != 1 || conf != "B" {
		t.Errorf("PDF/A identification %d%s", part, conf)
	}
}

func TestNoPDFA(t *testing.T) {
	packet, err := NewPacket(&Info{Title: "x"}, pdf.V1_7, false)
	if err != nil {
		t.Fatal(err)
	}
	part, _ := (&Stream{Data: packet}).PDFA()
	if part != 0 {
		t.Errorf("unexpected PDF/A part %d", part)
	}
}

func TestExtractBroken(t *testing.T) {
	a := pdf.NewArena()
	dict := pdf.NewDict().Set("Filter", pdf.Name("FlateDecode"))
	ref := a.Add(pdf.NewStream(dict, []byte("not flate data")))
	_, err := Extract(a, ref)
	if err == nil {
		t.Error("damaged metadata stream accepted")
	}
}
