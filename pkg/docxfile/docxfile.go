// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxfile reads the written content of a .docx file: ordered
// paragraphs, their runs with bold/italic flags, and paragraph alignment.
// A .docx is a ZIP container whose word/document.xml holds the body in
// WordprocessingML; only that part is read here.
package docxfile

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/filekit/pkg/fileref"
)

// documentPart is the ZIP member holding the document body.
const documentPart = "word/document.xml"

// Alignment is a paragraph's horizontal alignment.
type Alignment string

// Paragraph alignments. Paragraphs without an explicit w:jc value are left.
const (
	AlignLeft      Alignment = "left"
	AlignCenter    Alignment = "center"
	AlignRight     Alignment = "right"
	AlignJustified Alignment = "justified"
)

// Run is a span of text sharing one set of character formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// Paragraph is one body paragraph, in document order.
type Paragraph struct {
	Runs      []Run
	Alignment Alignment
}

// Text returns the concatenated run text of the paragraph.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// IsEmpty reports whether the paragraph's text is empty or whitespace-only.
func (p Paragraph) IsEmpty() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// Document is a parsed .docx file.
type Document struct {
	ref        *fileref.File
	paragraphs []Paragraph
}

// Open reads and parses the .docx file at path. The extension must be .docx
// and the file must be a ZIP containing word/document.xml.
func Open(path string) (*Document, error) {
	ref, err := fileref.Open(path)
	if err != nil {
		return nil, err
	}
	if ref.Ext() != ".docx" {
		return nil, fmt.Errorf("opening %s: not a .docx file", path)
	}

	zr, err := zip.OpenReader(ref.Path())
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	data, err := zipMember(&zr.Reader, documentPart)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", documentPart, path, err)
	}

	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s in %s: %w", documentPart, path, err)
	}

	paragraphs := make([]Paragraph, len(doc.Body.Paragraphs))
	for i, p := range doc.Body.Paragraphs {
		paragraphs[i] = p.toParagraph()
	}
	return &Document{ref: ref, paragraphs: paragraphs}, nil
}

// Path returns the absolute path of the source file.
func (d *Document) Path() string { return d.ref.Path() }

// File returns the underlying file handle.
func (d *Document) File() *fileref.File { return d.ref }

// Paragraphs returns every body paragraph in document order, empty
// paragraphs included.
func (d *Document) Paragraphs() []Paragraph { return d.paragraphs }

// Text returns the document's written content: one line per non-empty
// paragraph, in document order, joined by newlines.
func (d *Document) Text() string {
	var lines []string
	for _, p := range d.paragraphs {
		if p.IsEmpty() {
			continue
		}
		lines = append(lines, p.Text())
	}
	return strings.Join(lines, "\n")
}

// ParagraphCount returns the number of paragraphs in the document,
// including empty paragraphs used for spacing.
func (d *Document) ParagraphCount() int { return len(d.paragraphs) }

// WordCount returns a whitespace-separated word count over all paragraphs.
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.paragraphs {
		n += len(strings.Fields(p.Text()))
	}
	return n
}

// String describes the document for diagnostics.
func (d *Document) String() string {
	return fmt.Sprintf("DocxFile(path=%s, paragraphs=%d)", d.ref.Path(), len(d.paragraphs))
}

func zipMember(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("missing ZIP member")
}
