// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writtencontent renders docx paragraphs as the WrittenContent JSX
// block used by the personal site: one WrittenContentParagraphElement per
// paragraph, wrapped in a WrittenContentLoader. Document headers above the
// date line are stripped, double-enter separated paragraphs are regrouped,
// and text is normalized to JSX-safe entities.
package writtencontent

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/filekit/pkg/docxfile"
)

// datePattern matches the date line ending a document header, e.g. "7-6-24".
var datePattern = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{2,4}`)

// breakRun is the literal line-break run inserted between grouped
// paragraphs.
const breakRun = "<br></br>\n"

// outputSuffix is appended to the source stem for the default output path.
const outputSuffix = "_written_content"

// Render converts paragraphs to the WrittenContent JSX block. Empty
// paragraphs are dropped; everything up to and including the first date
// line is treated as a header and stripped.
func Render(paras []docxfile.Paragraph) string {
	paras = stripHeader(paras)
	paras = groupSeparated(paras)

	var elements []string
	for _, p := range paras {
		if p.IsEmpty() {
			continue
		}
		elements = append(elements, renderParagraph(p))
	}

	return "<WrittenContentLoader {...storyMetadata}>\n" +
		"        <WrittenContentParagraphGroup>\n" +
		strings.Join(elements, "\n\n") + "\n" +
		"        </WrittenContentParagraphGroup>\n" +
		"      </WrittenContentLoader>"
}

// RenderFile opens the .docx at docxPath, renders it, and writes the JSX to
// outputPath, returning the path written. An empty outputPath defaults to
// "<stem>_written_content.txt" beside the source; a non-empty one must have
// a .txt extension.
func RenderFile(docxPath, outputPath string) (string, error) {
	doc, err := docxfile.Open(docxPath)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		ref := doc.File()
		outputPath = filepath.Join(ref.Dir(), ref.Name()+outputSuffix+".txt")
	} else if !strings.Contains(strings.ToLower(filepath.Ext(outputPath)), ".txt") {
		return "", fmt.Errorf("output path must have a .txt extension: %s", outputPath)
	}

	jsx := Render(doc.Paragraphs())
	if err := os.WriteFile(outputPath, []byte(jsx), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// stripHeader removes every paragraph up to and including the first
// non-empty paragraph containing a date. Documents carry title and author
// lines above the date; without a date the content is kept whole.
func stripHeader(paras []docxfile.Paragraph) []docxfile.Paragraph {
	for i, p := range paras {
		if p.IsEmpty() {
			continue
		}
		if datePattern.MatchString(p.Text()) {
			return paras[i+1:]
		}
	}
	return paras
}

// groupSeparated merges runs of consecutive non-empty paragraphs into
// single paragraphs joined by break runs, but only when the document uses
// empty paragraphs to separate content. Continuation run text is
// space-trimmed; the first paragraph's alignment wins.
func groupSeparated(paras []docxfile.Paragraph) []docxfile.Paragraph {
	separated := false
	for i := 1; i < len(paras)-1; i++ {
		if paras[i].IsEmpty() && !paras[i-1].IsEmpty() && !paras[i+1].IsEmpty() {
			separated = true
			break
		}
	}
	if !separated {
		return paras
	}

	var grouped []docxfile.Paragraph
	for i := 0; i < len(paras); {
		if paras[i].IsEmpty() {
			i++
			continue
		}

		merged := docxfile.Paragraph{
			Runs:      append([]docxfile.Run(nil), paras[i].Runs...),
			Alignment: paras[i].Alignment,
		}
		j := i + 1
		for j < len(paras) && !paras[j].IsEmpty() {
			merged.Runs = append(merged.Runs, docxfile.Run{Text: breakRun})
			for _, r := range paras[j].Runs {
				r.Text = strings.TrimSpace(r.Text)
				merged.Runs = append(merged.Runs, r)
			}
			j++
		}
		grouped = append(grouped, merged)
		i = j
	}
	return grouped
}

func renderParagraph(p docxfile.Paragraph) string {
	fontStyle := paragraphFontStyle(p.Runs)

	textAlign := "left"
	switch p.Alignment {
	case docxfile.AlignCenter:
		textAlign = "center"
	case docxfile.AlignRight:
		textAlign = "right"
	case docxfile.AlignJustified:
		textAlign = "justify"
	}

	return "          <WrittenContentParagraphElement\n" +
		fmt.Sprintf("            fontStyle=%q\n", fontStyle) +
		fmt.Sprintf("            textAlign=%q\n", textAlign) +
		"          >\n" +
		"            " + renderRuns(p.Runs) + "\n" +
		"          </WrittenContentParagraphElement>"
}

// paragraphFontStyle is "bold" or "italic" when every non-empty run shares
// that formatting, else "normal".
func paragraphFontStyle(runs []docxfile.Run) string {
	allBold, allItalic := true, true
	seen := false
	for _, r := range runs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		seen = true
		allBold = allBold && r.Bold
		allItalic = allItalic && r.Italic
	}
	switch {
	case !seen:
		return "normal"
	case allBold:
		return "bold"
	case allItalic:
		return "italic"
	default:
		return "normal"
	}
}

// renderRuns normalizes run text and applies residual formatting: bold or
// italic beyond what the paragraph style already covers. Consecutive runs
// with identical residual formatting merge into one tag to avoid
// fragmented <em><em>... output.
func renderRuns(runs []docxfile.Run) string {
	style := paragraphFontStyle(runs)

	type flagged struct {
		text   string
		italic bool
		bold   bool
	}
	processed := make([]flagged, len(runs))
	for i, r := range runs {
		processed[i] = flagged{
			text:   normalizeSymbols(r.Text),
			italic: r.Italic && style != "italic",
			bold:   r.Bold && style != "bold",
		}
	}

	var parts []string
	for i := 0; i < len(processed); {
		cur := processed[i]
		group := cur.text
		j := i + 1
		for j < len(processed) && processed[j].italic == cur.italic && processed[j].bold == cur.bold {
			group += processed[j].text
			j++
		}
		if cur.italic {
			group = "<em>" + group + "</em>"
		}
		if cur.bold {
			group = "<b>" + group + "</b>"
		}
		parts = append(parts, group)
		i = j
	}
	return strings.Join(parts, "")
}

// symbolReplacer maps characters that break JSX onto HTML entities. The
// ampersand is handled first, separately, since every entity introduces one.
var symbolReplacer = strings.NewReplacer(
	"“", "&quot;", "”", "&quot;", `"`, "&quot;",
	"‘", "&apos;", "’", "&apos;", "`", "&apos;", "'", "&apos;",
	"\u00a0", "&nbsp;",
	"–", "&ndash;",
	"—", "&mdash;",
	"©", "&copy;",
	"®", "&reg;",
	"™", "&trade;",
	"°", "&deg;",
)

func normalizeSymbols(text string) string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "&", "&amp;")
	return symbolReplacer.Replace(text)
}
