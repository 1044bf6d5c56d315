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

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// pageRange is an inclusive range of 1-based page numbers.  Last is 0 for
// ranges which extend to the end of the document.
type pageRange struct {
	First, Last int
}

// pageSet is a union of page ranges.  The empty set selects all pages.
type pageSet []pageRange

// Contains reports whether the page with the given 1-based number is
// selected.
func (s pageSet) Contains(pageNo int) bool {
	if len(s) == 0 {
		return true
	}
	for _, r := range s {
		if pageNo >= r.First && (r.Last == 0 || pageNo <= r.Last) {
			return true
		}
	}
	return false
}

// parsePages parses a comma separated list of pages and page ranges, for
// example "1-3,7,10-".
func parsePages(spec string) (pageSet, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var res pageSet
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		first, last, isRange := strings.Cut(part, "-")

		var r pageRange
		var err error
		if first == "" {
			r.First = 1
		} else if r.First, err = strconv.Atoi(first); err != nil || r.First < 1 {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		switch {
		case !isRange:
			r.Last = r.First
		case last == "":
			r.Last = 0
		default:
			r.Last, err = strconv.Atoi(last)
			if err != nil || r.Last < r.First {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if first == "" && !isRange {
			return nil, errEmptyRange
		}
		res = append(res, r)
	}
	return res, nil
}

var errEmptyRange = errors.New("empty page range")
