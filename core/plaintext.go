package core

import "strings"

// PlainText returns the text under id. Paragraphs end with a newline
// except the last one; table cells are separated by tabs and rows by
// newlines.
func PlainText(d *Document, id NodeID) string {
	var sb strings.Builder
	writePlain(d, id, &sb)
	return sb.String()
}

func writePlain(d *Document, id NodeID, sb *strings.Builder) {
	switch d.Kind(id) {
	case KindText:
		sb.WriteString(d.text(id).String())

	case KindRule:
		sb.WriteString("\n")

	case KindFlow:
		for _, c := range d.Children(id) {
			writePlain(d, c, sb)
		}

	case KindBox, KindTableCell:
		for i, c := range d.Children(id) {
			if i > 0 {
				sb.WriteByte('\n')
			}
			writePlain(d, c, sb)
		}

	case KindTable:
		t := d.table(id)
		for r := 0; r < t.totalRows; r++ {
			if r > 0 {
				sb.WriteByte('\n')
			}
			first := true
			for c := 0; c < t.totalCols; c++ {
				if !t.isOrigin(d, r, c) {
					continue
				}
				if !first {
					sb.WriteByte('\t')
				}
				first = false
				writePlain(d, t.cells[r][c], sb)
			}
		}
	}
}

// NewDocumentFromText builds a document with one normal paragraph per
// line of text.
func NewDocumentFromText(text string) *Document {
	d := NewBlankDocument()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		flow := d.NewFlow(ParagraphNormal)
		d.Append(d.root, flow)
		d.Append(flow, d.NewText(line, TextStyle{}))
	}
	return d
}
