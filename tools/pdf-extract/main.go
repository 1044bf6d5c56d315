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

// Pdf-extract prints the text, outline or annotations of a PDF file.
//
// Usage:
//
//	pdf-extract [flags] file.pdf
//
// Page ranges given with -p use 1-based page numbers, for example
// "1-3,7,10-".
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/annotation"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/outline"
	"seehuhn.de/go/pdfdoc/tools/internal/buildinfo"
	"seehuhn.de/go/pdfdoc/tools/internal/profile"
)

type config struct {
	pages       string
	outline     bool
	annotations bool
	pageNumbers bool
}

func main() {
	cfg := &config{}
	flag.StringVar(&cfg.pages, "p", "", "pages to extract, e.g. \"1-3,7\"")
	flag.BoolVar(&cfg.outline, "outline", false, "print the document outline instead of the text")
	flag.BoolVar(&cfg.annotations, "annots", false, "print the annotations instead of the text")
	flag.BoolVar(&cfg.pageNumbers, "n", false, "print a header before each page")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	version := flag.Bool("version", false, "show version information and exit")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: pdf-extract [flags] file.pdf")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("pdf-extract"))
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf-extract:", err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(out, flag.Arg(0), cfg)
	if err == nil {
		err = out.Flush()
	}
	if err == nil {
		err = stop()
	} else {
		stop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdf-extract:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, fname string, cfg *config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	doc, err := document.Open(fname, &document.Options{Logger: logger})
	if err != nil {
		return err
	}

	if cfg.outline {
		o, err := outline.Read(doc.Arena, doc.Catalog)
		if err != nil {
			return err
		}
		if o != nil {
			printOutline(w, doc, o.Items, "")
		}
		return nil
	}

	sel, err := parsePages(cfg.pages)
	if err != nil {
		return err
	}
	for i, page := range doc.Pages() {
		if !sel.Contains(i + 1) {
			continue
		}
		if cfg.pageNumbers {
			fmt.Fprintf(w, "--- page %d ---\n", i+1)
		}
		if cfg.annotations {
			err = printAnnotations(w, doc, page)
		} else {
			err = printText(w, page)
		}
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return nil
}

func printText(w io.Writer, page *document.Page) error {
	text, err := page.Text()
	if err != nil {
		return err
	}
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func printAnnotations(w io.Writer, doc *document.Document, page *document.Page) error {
	annots, err := annotation.List(doc.Arena, page.Dict)
	if err != nil {
		return err
	}
	for _, a := range annots {
		c := a.GetCommon()
		fmt.Fprintf(w, "%s %s %s", a.AnnotationType(), c.Name, c.Rect)
		switch a := a.(type) {
		case *annotation.Link:
			if a.URI != "" {
				fmt.Fprintf(w, " -> %s", a.URI)
			} else if n := pageNumber(doc, a.Dest); n > 0 {
				fmt.Fprintf(w, " -> page %d", n)
			}
		case *annotation.Redact:
			if a.OverlayText != "" {
				fmt.Fprintf(w, " %q", a.OverlayText)
			}
		}
		if c.Contents != "" {
			fmt.Fprintf(w, ": %s", c.Contents)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printOutline(w io.Writer, doc *document.Document, items []*outline.Item, indent string) {
	for _, item := range items {
		fmt.Fprint(w, indent, item.Title)
		if n := pageNumber(doc, item.Dest); n > 0 {
			fmt.Fprintf(w, " .... %d", n)
		} else if item.URI != "" {
			fmt.Fprintf(w, " <%s>", item.URI)
		}
		fmt.Fprintln(w)
		printOutline(w, doc, item.Children, indent+"  ")
	}
}

// pageNumber returns the 1-based number of the page with the given
// reference, or 0 if the reference does not point to a page.
func pageNumber(doc *document.Document, ref pdf.Reference) int {
	if ref == 0 {
		return 0
	}
	for i, page := range doc.Pages() {
		if page.Ref == ref {
			return i + 1
		}
	}
	return 0
}
