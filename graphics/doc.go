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

// Package graphics appends drawing operators to PDF content streams.
//
// A [ContentStream] wraps the content stream and resource dictionary of a
// page.  Operators are built using [Ops] and appended to the stream using
// [ContentStream.AppendOperators].  Fonts, images and graphics states used
// by the operators are registered in the resource dictionary under short
// names like /F1, /Im1 and /GS1.
package graphics
