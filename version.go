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

import "fmt"

// Version represents a version of the PDF standard.
type Version int

// Supported PDF versions
const (
	V1_0 Version = iota + 1
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
)

// ParseVersion parses a PDF version string, e.g. "1.7".
func ParseVersion(s string) (Version, error) {
	for v := V1_0; v <= V1_7; v++ {
		if s == v.String() {
			return v, nil
		}
	}
	return 0, errVersion
}

// String returns the version in the form used in PDF file headers.
func (v Version) String() string {
	if v < V1_0 || v > V1_7 {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return fmt.Sprintf("1.%d", int(v-V1_0))
}

// Conformance describes a conformance level for written files.
type Conformance int

// Supported conformance levels
const (
	NoConformance Conformance = iota
	PDFA1B
)

func (c Conformance) String() string {
	switch c {
	case NoConformance:
		return "PDF"
	case PDFA1B:
		return "PDF/A-1B"
	default:
		return fmt.Sprintf("Conformance(%d)", int(c))
	}
}
