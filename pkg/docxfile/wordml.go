// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docxfile

import (
	"encoding/xml"
	"strings"
)

// documentXML mirrors the structure of word/document.xml. Only the pieces
// needed for written-content extraction are decoded: body paragraphs, their
// direct runs, run formatting, and paragraph justification. Runs inside
// hyperlinks and other wrappers are not direct <w:r> children of <w:p> and
// are therefore not extracted.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

type paragraphPropsXML struct {
	Justification justificationXML `xml:"jc"`
}

type justificationXML struct {
	Val string `xml:"val,attr"`
}

type runPropsXML struct {
	Bold   *toggleXML `xml:"b"`
	Italic *toggleXML `xml:"i"`
}

// toggleXML is an OOXML on/off property: present without a value means on,
// and w:val of "0", "false", or "none" switches it off.
type toggleXML struct {
	Val string `xml:"val,attr"`
}

func (t *toggleXML) on() bool {
	if t == nil {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "0", "false", "none", "off":
		return false
	}
	return true
}

// runXML is a <w:r> element. Its text content interleaves <w:t>, <w:tab>,
// <w:br>, and <w:cr> children, so decoding walks the tokens in order
// instead of collecting each child kind separately.
type runXML struct {
	props runPropsXML
	text  string
}

func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.props, &t); err != nil {
					return err
				}
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text.WriteString(s)
			case "tab":
				text.WriteByte('\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				text.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			// Child elements are fully consumed above, so the first end
			// element seen here closes the run itself.
			r.text = text.String()
			return nil
		}
	}
}

func (p paragraphXML) toParagraph() Paragraph {
	runs := make([]Run, len(p.Runs))
	for i, r := range p.Runs {
		runs[i] = Run{
			Text:   r.text,
			Bold:   r.props.Bold.on(),
			Italic: r.props.Italic.on(),
		}
	}
	return Paragraph{
		Runs:      runs,
		Alignment: parseAlignment(p.Properties.Justification.Val),
	}
}

// parseAlignment maps a w:jc value onto the four-value alignment set.
// Unset and unrecognized values fall back to left.
func parseAlignment(val string) Alignment {
	switch strings.ToLower(val) {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both", "justify", "distribute":
		return AlignJustified
	default:
		return AlignLeft
	}
}
