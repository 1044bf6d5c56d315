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
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

// TextString creates a String object using the "text string" encoding,
// i.e. using either PDFDocEncoding or UTF-16BE encoding with a byte order
// mark.
func TextString(s string) String {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := pdfDocEncode(r)
		if !ok {
			goto useUTF16
		}
		buf = append(buf, c)
	}
	return String(buf)

useUTF16:
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		// only happens for invalid UTF-8, which we replace
		out, _ = enc.Bytes([]byte(strings.ToValidUTF8(s, "�")))
	}
	return String(out)
}

// AsTextString interprets x as a PDF "text string" and returns
// the corresponding utf-8 encoded string.
func (x String) AsTextString() string {
	if len(x) >= 2 && x[0] == 0xFE && x[1] == 0xFF {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(x)
		if err == nil {
			return string(out)
		}
	}
	if len(x) >= 3 && x[0] == 0xEF && x[1] == 0xBB && x[2] == 0xBF {
		return string(x[3:])
	}

	var b strings.Builder
	for _, c := range x {
		b.WriteRune(pdfDocDecode(c))
	}
	return b.String()
}

// Date creates a PDF String object encoding the given date and time.
func Date(t time.Time) String {
	s := t.Format("D:20060102150405-0700")
	k := len(s) - 2
	s = s[:k] + "'" + s[k:] + "'"
	return String(s)
}

// AsDate converts a PDF date string to a time.Time object.
// If the string does not have the correct format, an error is returned.
func (x String) AsDate() (time.Time, error) {
	s := x.AsTextString()
	s = strings.ReplaceAll(s, "'", "")
	if !strings.HasPrefix(s, "D:") {
		s = "D:" + s
	}

	formats := []string{
		"D:20060102150405-0700",
		"D:20060102150405-07",
		"D:20060102150405Z0000",
		"D:20060102150405Z00",
		"D:20060102150405Z",
		"D:20060102150405",
		"D:200601021504",
		"D:2006010215",
		"D:20060102",
		"D:200601",
		"D:2006",
	}
	for _, format := range formats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errNoDate
}

// pdfDocDecode maps a PDFDocEncoding code to the corresponding rune.
func pdfDocDecode(c byte) rune {
	switch {
	case c >= 0x18 && c < 0x20:
		return pdfDocLow[c-0x18]
	case c >= 0x80 && c <= 0xA0:
		return pdfDocHigh[c-0x80]
	case c == 0x7F || c == 0xAD:
		return 0xFFFD
	default:
		return rune(c)
	}
}

func pdfDocEncode(r rune) (byte, bool) {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return byte(r), true
	case r >= 0x20 && r < 0x7F:
		return byte(r), true
	case r >= 0xA1 && r <= 0xFF && r != 0xAD:
		return byte(r), true
	}
	for i, x := range pdfDocLow {
		if x == r {
			return byte(0x18 + i), true
		}
	}
	for i, x := range pdfDocHigh {
		if x == r && x != 0xFFFD {
			return byte(0x80 + i), true
		}
	}
	return 0, false
}

var pdfDocLow = [8]rune{
	0x02D8, 0x02C7, 0x02C6, 0x02D9, 0x02DD, 0x02DB, 0x02DA, 0x02DC,
}

var pdfDocHigh = [33]rune{
	0x2022, 0x2020, 0x2021, 0x2026, 0x2014, 0x2013, 0x0192, 0x2044,
	0x2039, 0x203A, 0x2212, 0x2030, 0x201E, 0x201C, 0x201D, 0x2018,
	0x2019, 0x201A, 0x2122, 0xFB01, 0xFB02, 0x0141, 0x0152, 0x0160,
	0x0178, 0x017D, 0x0131, 0x0142, 0x0153, 0x0161, 0x017E, 0xFFFD,
	0x20AC,
}
