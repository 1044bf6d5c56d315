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

// Pdf-inspect shows the low-level structure of a PDF file.
//
// Usage:
//
//	pdf-inspect [flags] file.pdf [selector ...]
//
// Without selectors, the file header version, a summary of the
// cross-reference table and the trailer dictionary are shown.  Otherwise
// the selectors locate an object, starting from the document catalog:
//
//	@12 or @12.0  the indirect object 12 0 R
//	@info         the document information dictionary
//	@trailer      the trailer dictionary
//	Pages         the value stored under /Pages
//	3             the element at index 3 of an array; -1 is the last one
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/tools/internal/buildinfo"
)

func main() {
	raw := flag.Bool("raw", false, "show stream data without decoding")
	hex := flag.Bool("x", false, "show stream data as a hex dump")
	quiet := flag.Bool("q", false, "suppress warnings about damaged files")
	version := flag.Bool("version", false, "show version information and exit")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: pdf-inspect [flags] file.pdf [selector ...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("pdf-inspect"))
		return
	}
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opt := &showOptions{
		Raw:   *raw,
		Hex:   *hex,
		Width: terminalWidth(),
	}
	err := run(flag.Arg(0), flag.Args()[1:], opt, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf-inspect:", err)
		os.Exit(1)
	}
}

func run(fname string, selectors []string, opt *showOptions, logger *slog.Logger) error {
	r, err := pdf.Open(fname, &pdf.ReaderOptions{Logger: logger})
	if err != nil {
		return err
	}
	defer r.Close()

	if len(selectors) == 0 {
		return summary(os.Stdout, r, opt)
	}
	obj, err := locate(r, selectors...)
	if err != nil {
		return err
	}
	return show(os.Stdout, obj, opt)
}

// terminalWidth returns the width of the terminal connected to stdout, or
// 0 if stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
