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

package annotation

// Flags specify how an annotation is displayed and printed.
type Flags uint16

// Annotation flags.
const (
	FlagInvisible Flags = 1 << iota
	FlagHidden
	FlagPrint
	FlagNoZoom
	FlagNoRotate
	FlagNoView
	FlagReadOnly
	FlagLocked
	FlagToggleNoView
	FlagLockedContents
)
