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
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/metadata"
)

// infoToDict converts the document information into an information
// dictionary.  If no field is set, nil is returned.
func infoToDict(info *metadata.Info) *pdf.Dict {
	dict := pdf.NewDict()
	setText := func(key pdf.Name, val string) {
		if val != "" {
			dict.Set(key, pdf.TextString(val))
		}
	}
	setText("Title", info.Title)
	setText("Author", info.Author)
	setText("Subject", info.Subject)
	setText("Keywords", info.Keywords)
	setText("Creator", info.Creator)
	setText("Producer", info.Producer)
	if !info.CreationDate.IsZero() {
		dict.Set("CreationDate", pdf.Date(info.CreationDate))
	}
	if !info.ModDate.IsZero() {
		dict.Set("ModDate", pdf.Date(info.ModDate))
	}
	if dict.Len() == 0 {
		return nil
	}
	return dict
}

// infoFromDict reads a document information dictionary.  Malformed
// entries are ignored.
func infoFromDict(r pdf.Getter, dict *pdf.Dict) metadata.Info {
	var info metadata.Info
	getText := func(key pdf.Name) string {
		s, err := pdf.GetString(r, dict.Get(key))
		if err != nil {
			return ""
		}
		return s.AsTextString()
	}
	info.Title = getText("Title")
	info.Author = getText("Author")
	info.Subject = getText("Subject")
	info.Keywords = getText("Keywords")
	info.Creator = getText("Creator")
	info.Producer = getText("Producer")
	if s, err := pdf.GetString(r, dict.Get("CreationDate")); err == nil && s != nil {
		info.CreationDate, _ = s.AsDate()
	}
	if s, err := pdf.GetString(r, dict.Get("ModDate")); err == nil && s != nil {
		info.ModDate, _ = s.AsDate()
	}
	return info
}
