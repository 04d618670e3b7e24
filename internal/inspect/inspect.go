// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect builds metadata reports for local files: size and
// modification time for any file, pixel dimensions for images, paragraph
// and word counts for .docx documents. Reports render as text, JSON, or
// YAML.
package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filekit/pkg/docxfile"
	"github.com/pdiddy/filekit/pkg/fileref"
	"github.com/pdiddy/filekit/pkg/imagefile"
)

// Kind classifies a file for reporting purposes.
const (
	KindImage    = "image"
	KindDocument = "document"
	KindFile     = "file"
)

// Report holds the metadata collected for one file.
type Report struct {
	Path      string    `json:"path" yaml:"path"`
	SizeBytes int64     `json:"size_bytes" yaml:"size_bytes"`
	Modified  time.Time `json:"modified" yaml:"modified"`
	MIME      string    `json:"mime" yaml:"mime"`
	Kind      string    `json:"kind" yaml:"kind"`

	Image    *ImageReport `json:"image,omitempty" yaml:"image,omitempty"`
	Document *DocReport   `json:"document,omitempty" yaml:"document,omitempty"`
}

// ImageReport holds the image-specific fields.
type ImageReport struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Format string `json:"format" yaml:"format"`
}

// DocReport holds the document-specific fields.
type DocReport struct {
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
	Words      int `json:"words" yaml:"words"`
}

// Describe collects a Report for the file at path. Image decode or document
// parse problems degrade the report to a plain file rather than failing it;
// only an unreadable path is an error.
func Describe(path string) (Report, error) {
	ref, err := fileref.Open(path)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Path:      ref.Path(),
		SizeBytes: ref.Size(),
		Modified:  ref.ModTime(),
		Kind:      KindFile,
	}

	if mtype, err := mimetype.DetectFile(ref.Path()); err == nil {
		report.MIME = mtype.String()
	}

	if format, ok := imagefile.FormatForPath(ref.Path()); ok && format.Decodable() {
		if w, h, detected, err := imagefile.Probe(ref.Path()); err == nil {
			report.Kind = KindImage
			report.Image = &ImageReport{Width: w, Height: h, Format: string(detected)}
		}
	} else if ref.Ext() == ".docx" {
		if doc, err := docxfile.Open(ref.Path()); err == nil {
			report.Kind = KindDocument
			report.Document = &DocReport{
				Paragraphs: doc.ParagraphCount(),
				Words:      doc.WordCount(),
			}
		}
	}
	return report, nil
}

// Render writes reports to w in the given format: "text", "json", or
// "yaml".
func Render(w io.Writer, reports []Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			renderText(w, r)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

func renderText(w io.Writer, r Report) {
	fmt.Fprintf(w, "path:     %s\n", r.Path)
	fmt.Fprintf(w, "kind:     %s\n", r.Kind)
	fmt.Fprintf(w, "size:     %s\n", humanSize(r.SizeBytes))
	fmt.Fprintf(w, "modified: %s\n", r.Modified.Format(time.RFC3339))
	if r.MIME != "" {
		fmt.Fprintf(w, "mime:     %s\n", r.MIME)
	}
	if r.Image != nil {
		fmt.Fprintf(w, "image:    %dx%d %s\n", r.Image.Width, r.Image.Height, strings.ToUpper(r.Image.Format))
	}
	if r.Document != nil {
		fmt.Fprintf(w, "document: %d paragraphs, %d words\n", r.Document.Paragraphs, r.Document.Words)
	}
}

// humanSize formats a byte count with a binary unit, e.g. "1.4 MiB".
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
