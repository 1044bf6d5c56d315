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

// Package hyphenation finds the points where words can be broken across
// lines.
//
// The implementation uses Frank Liang's algorithm: a set of patterns
// assigns a score to every position between two letters of a word, and
// positions with an odd score are valid break points.  Patterns are
// selected by language.
package hyphenation

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Hyphenator breaks words into parts.  A Hyphenator is safe for
// concurrent use.
type Hyphenator struct {
	patterns   map[string][]uint8
	exceptions map[string][]int
	maxLen     int

	// LeftMin and RightMin give the minimal number of letters before the
	// first and after the last break point.
	LeftMin, RightMin int
}

// Hyphenate splits word into parts at the valid break points.  The parts
// joined together give the original word.  Words which cannot be broken
// are returned as a single part.
func (h *Hyphenator) Hyphenate(word string) []string {
	n := utf8.RuneCountInString(word)
	if n < h.LeftMin+h.RightMin || n == 0 {
		return []string{word}
	}

	lower := strings.ToLower(word)
	var breaks []int
	if pos, ok := h.exceptions[lower]; ok {
		breaks = pos
	} else if isWord(lower) {
		breaks = h.breakPoints(lower)
	}
	if len(breaks) == 0 {
		return []string{word}
	}

	var res []string
	var start, runeIdx, bi int
	for i := range word {
		if bi < len(breaks) && runeIdx == breaks[bi] {
			res = append(res, word[start:i])
			start = i
			bi++
		}
		runeIdx++
	}
	return append(res, word[start:])
}

// breakPoints returns the letter indices before which the word can be
// broken.
func (h *Hyphenator) breakPoints(lower string) []int {
	letters := []rune("." + lower + ".")
	scores := make([]uint8, len(letters)+1)
	for i := range letters {
		for j := i + 1; j <= len(letters) && j-i <= h.maxLen; j++ {
			vals, ok := h.patterns[string(letters[i:j])]
			if !ok {
				continue
			}
			for k, v := range vals {
				if v > scores[i+k] {
					scores[i+k] = v
				}
			}
		}
	}

	// letter k of the word sits at index k+1 of letters
	n := len(letters) - 2
	var res []int
	for k := h.LeftMin; k <= n-h.RightMin; k++ {
		if scores[k+1]%2 == 1 {
			res = append(res, k)
		}
	}
	return res
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Parse reads hyphenation patterns in the format used by TeX.  The input
// contains a \patterns{...} group and optionally a \hyphenation{...} group
// listing exceptions, with break points marked by "-".  Text after "%" on a
// line is ignored.
func Parse(r io.Reader) (*Hyphenator, error) {
	h := &Hyphenator{
		patterns:   make(map[string][]uint8),
		exceptions: make(map[string][]int),
		LeftMin:    2,
		RightMin:   3,
	}

	const (
		outside = iota
		inPatterns
		inExceptions
	)
	state := outside

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '%'); idx >= 0 {
			line = line[:idx]
		}
		for _, field := range strings.Fields(line) {
			switch {
			case field == `\patterns{`:
				state = inPatterns
				continue
			case field == `\hyphenation{`:
				state = inExceptions
				continue
			case field == "}":
				state = outside
				continue
			}

			switch state {
			case inPatterns:
				err := h.addPattern(field)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			case inExceptions:
				h.addException(field)
			default:
				return nil, fmt.Errorf("line %d: unexpected %q", lineNo, field)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(h.patterns) == 0 {
		return nil, errNoPatterns
	}
	return h, nil
}

func (h *Hyphenator) addPattern(p string) error {
	var letters []rune
	vals := []uint8{0}
	for _, r := range p {
		if r >= '0' && r <= '9' {
			vals[len(vals)-1] = uint8(r - '0')
			continue
		}
		letters = append(letters, unicode.ToLower(r))
		vals = append(vals, 0)
	}
	if len(letters) == 0 {
		return fmt.Errorf("invalid pattern %q", p)
	}
	h.patterns[string(letters)] = vals
	if len(letters) > h.maxLen {
		h.maxLen = len(letters)
	}
	return nil
}

func (h *Hyphenator) addException(word string) {
	var pos []int
	var b strings.Builder
	n := 0
	for _, r := range word {
		if r == '-' {
			pos = append(pos, n)
			continue
		}
		b.WriteRune(unicode.ToLower(r))
		n++
	}
	h.exceptions[b.String()] = pos
}

//go:embed patterns
var patternFiles embed.FS

var builtin = []struct {
	tag  language.Tag
	file string
}{
	{language.AmericanEnglish, "patterns/hyph-en-us.tex"},
}

var (
	registryMutex sync.Mutex
	registry      = make(map[language.Tag]*Hyphenator)
	registryTags  []language.Tag
)

// Register makes h available for the given language.  Registered
// hyphenators take precedence over the built-in ones.
func Register(tag language.Tag, h *Hyphenator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if _, exists := registry[tag]; !exists {
		registryTags = append([]language.Tag{tag}, registryTags...)
	}
	registry[tag] = h
}

// New returns the hyphenator which best matches the given language.
// ErrUnsupported is returned if no patterns for the language are known.
func New(tag language.Tag) (*Hyphenator, error) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	var tags []language.Tag
	tags = append(tags, registryTags...)
	for _, b := range builtin {
		tags = append(tags, b.tag)
	}
	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, tag)
	}
	best := tags[index]

	if h, ok := registry[best]; ok {
		return h, nil
	}
	for _, b := range builtin {
		if b.tag != best {
			continue
		}
		fd, err := patternFiles.Open(b.file)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		h, err := Parse(fd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.file, err)
		}
		registry[best] = h
		registryTags = append(registryTags, best)
		return h, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, tag)
}

var (
	// ErrUnsupported indicates that no hyphenation patterns are available
	// for a language.
	ErrUnsupported = errors.New("unsupported language")

	errNoPatterns = errors.New("no hyphenation patterns found")
)
