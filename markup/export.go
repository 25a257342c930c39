package markup

import (
	"strconv"
	"strings"

	"github.com/ionut-t/richedit/core"
)

// Export writes the document as Markdown. Alignment, colours and cell
// spans have no Markdown form and are dropped.
func Export(d *core.Document) string {
	w := &writer{doc: d}
	w.flows(d.Children(d.Root()))
	return strings.TrimRight(w.sb.String(), "\n") + "\n"
}

type writer struct {
	doc *core.Document
	sb  strings.Builder
}

func (w *writer) flow(id core.NodeID) *core.Flow {
	f, _ := w.doc.Object(id).(*core.Flow)
	return f
}

func (w *writer) flows(ids []core.NodeID) {
	prev := core.ParagraphStyle(-1)
	numbers := map[int]int{} // Next number per list level

	for i := 0; i < len(ids); i++ {
		f := w.flow(ids[i])
		if f == nil {
			continue
		}

		if f.Style == core.ParagraphPre {
			if i > 0 {
				w.sb.WriteString("\n")
			}
			w.sb.WriteString("```\n")
			for ; i < len(ids); i++ {
				if pf := w.flow(ids[i]); pf == nil || pf.Style != core.ParagraphPre {
					break
				}
				w.sb.WriteString(core.PlainText(w.doc, ids[i]))
				w.sb.WriteString("\n")
			}
			w.sb.WriteString("```\n")
			i--
			prev = core.ParagraphPre
			continue
		}

		item := f.Style.IsItem()
		if i > 0 && !(item && prev.IsItem()) {
			w.sb.WriteString("\n")
		}
		if !item {
			clear(numbers)
		}

		indent := strings.Repeat("  ", f.Level)
		switch {
		case f.Style.HeadingLevel() > 0:
			w.sb.WriteString(strings.Repeat("#", f.Style.HeadingLevel()) + " ")
		case f.Style == core.ParagraphItemDotted:
			w.sb.WriteString(indent + "- ")
		case item:
			for lvl := range numbers {
				if lvl > f.Level {
					delete(numbers, lvl)
				}
			}
			numbers[f.Level]++
			w.sb.WriteString(indent + strconv.Itoa(numbers[f.Level]) + ". ")
		default:
			w.sb.WriteString(indent)
		}

		w.inlines(ids[i])
		w.sb.WriteString("\n")
		prev = f.Style
	}
}

// inlines writes the runs, rules and tables of a flow.
func (w *writer) inlines(flow core.NodeID) {
	d := w.doc
	for i, c := range d.Children(flow) {
		switch d.Kind(c) {
		case core.KindText:
			t := d.Object(c).(*core.Text)
			w.sb.WriteString(span(t.String(), t.Style, i == 0))
		case core.KindRule:
			w.sb.WriteString("---")
		case core.KindTable:
			if i > 0 {
				w.sb.WriteString("\n")
			}
			w.table(c)
		}
	}
}

// span writes one run. A lead run opens its paragraph.
func span(s string, style core.TextStyle, lead bool) string {
	if s == "" {
		return ""
	}
	if style.Fixed {
		s = "`" + s + "`"
	} else {
		s = escape(s)
		if lead {
			s = escapeLead(s)
		}
	}
	if style.Strikeout {
		s = "~~" + s + "~~"
	}
	if style.Italic {
		s = "*" + s + "*"
	}
	if style.Bold {
		s = "**" + s + "**"
	}
	if style.IsLink() {
		s = "[" + s + "](" + style.Link
		if style.Target != "" {
			s += ` "` + style.Target + `"`
		}
		s += ")"
	}
	return s
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"|", `\|`,
	"[", `\[`,
	"]", `\]`,
)

func escape(s string) string {
	return escaper.Replace(s)
}

// escapeLead keeps the start of a paragraph from reading as a heading,
// quote, list marker or fence.
func escapeLead(s string) string {
	body := strings.TrimLeft(s, " ")
	pad := s[:len(s)-len(body)]
	switch {
	case body == "":
		return s
	case strings.HasPrefix(body, "~~~"), strings.IndexByte("#>-+=", body[0]) >= 0:
		return pad + `\` + body
	}
	digits := len(body) - len(strings.TrimLeft(body, "0123456789"))
	if digits > 0 && digits < len(body) && (body[digits] == '.' || body[digits] == ')') {
		return pad + body[:digits] + `\` + body[digits:]
	}
	return s
}

// table writes a GFM table. The first row is the header.
func (w *writer) table(id core.NodeID) {
	d := w.doc
	t := d.Object(id).(*core.Table)
	if t.Rows() == 0 || t.Cols() == 0 {
		return
	}

	for r := 0; r < t.Rows(); r++ {
		if r > 0 {
			w.sb.WriteString("\n")
		}
		w.sb.WriteString("|")
		for c := 0; c < t.Cols(); c++ {
			w.sb.WriteString(" ")
			cell := t.Cell(r, c)
			if tc, ok := d.Object(cell).(*core.TableCell); ok && tc.Row() == r && tc.Col() == c {
				w.cell(cell)
			}
			w.sb.WriteString(" |")
		}

		if r == 0 {
			w.sb.WriteString("\n|")
			for range t.Cols() {
				w.sb.WriteString(" --- |")
			}
		}
	}
}

// cell writes the flows of a cell on one line.
func (w *writer) cell(id core.NodeID) {
	heading := false
	if tc, ok := w.doc.Object(id).(*core.TableCell); ok {
		heading = tc.Heading
	}
	for i, f := range w.doc.Children(id) {
		if i > 0 {
			w.sb.WriteString("<br>")
		}
		for _, c := range w.doc.Children(f) {
			if t, ok := w.doc.Object(c).(*core.Text); ok {
				style := t.Style
				if heading {
					style.Bold = false
				}
				w.sb.WriteString(span(t.String(), style, false))
			}
		}
	}
}
