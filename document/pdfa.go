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
	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/metadata"
)

// preparePDFA adds the XMP metadata stream and the sRGB output intent
// required for PDF/A-1B.  Existing output intents are kept.
func (d *Document) preparePDFA() error {
	packet, err := metadata.NewPacket(&d.Info, pdf.V1_4, true)
	if err != nil {
		return err
	}
	tmp := pdf.NewArena()
	ref, err := (&metadata.Stream{Data: packet}).Embed(tmp)
	if err != nil {
		return err
	}
	stm, _ := tmp.Get(ref)
	if d.metaRef == 0 {
		d.metaRef = d.Arena.Alloc()
	}
	d.Arena.Put(d.metaRef, stm)
	d.Catalog.Set("Metadata", d.metaRef)

	intents, _ := pdf.GetArray(d.Arena, d.Catalog.Get("OutputIntents"))
	for _, obj := range intents {
		intent, _ := pdf.GetDict(d.Arena, obj)
		if intent.Get("S") == pdf.Name("GTS_PDFA1") {
			return nil
		}
	}

	profileRef, err := embedProfile(d.Arena, icc.SRGBv2Profile)
	if err != nil {
		return err
	}
	intent := pdf.NewDict().
		Set("Type", pdf.Name("OutputIntent")).
		Set("S", pdf.Name("GTS_PDFA1")).
		Set("OutputConditionIdentifier", pdf.String("sRGB IEC61966-2.1")).
		Set("Info", pdf.String("sRGB IEC61966-2.1")).
		Set("DestOutputProfile", profileRef)
	d.Catalog.Set("OutputIntents", append(intents, intent))
	return nil
}

// embedProfile stores an ICC profile as an ICC profile stream.
func embedProfile(a *pdf.Arena, data []byte) (pdf.Reference, error) {
	p, err := icc.Decode(data)
	if err != nil {
		return 0, err
	}
	dict := pdf.NewDict().
		Set("N", pdf.Integer(p.ColorSpace.NumComponents())).
		Set("Filter", pdf.Name("FlateDecode"))
	return a.Add(pdf.NewDecodedStream(dict, data)), nil
}
