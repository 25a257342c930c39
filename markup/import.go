// Package markup converts between Markdown and rich documents.
package markup

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ionut-t/richedit/core"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var ErrInvalidEncoding = errors.New("markdown source is not valid UTF-8")

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // Tables, strikethrough, autolinks and task lists
	),
)

// Import parses Markdown and builds a document from it. Headings, list
// items, code blocks and paragraphs become flows, thematic breaks become
// rules and GFM tables become tables.
func Import(src []byte) (*core.Document, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidEncoding
	}

	root := md.Parser().Parse(text.NewReader(src))
	b := &builder{
		doc: core.NewBlankDocument(),
		src: src,
	}
	b.blocks(b.doc.Root(), root, 0)

	if len(b.doc.Children(b.doc.Root())) == 0 {
		b.startFlow(b.doc.Root(), core.ParagraphNormal, 0)
		b.endFlow()
	}
	return b.doc, nil
}

type run struct {
	text  strings.Builder
	style core.TextStyle
}

type builder struct {
	doc *core.Document
	src []byte

	flow    core.NodeID
	pending run
	wrote   bool
}

func (b *builder) emptyFlow(container core.NodeID, style core.ParagraphStyle, level int) core.NodeID {
	flow := b.doc.NewFlow(style)
	b.doc.Object(flow).(*core.Flow).Level = level
	b.doc.Append(container, flow)
	return flow
}

// startFlow opens a paragraph that inline content is added to.
func (b *builder) startFlow(container core.NodeID, style core.ParagraphStyle, level int) {
	b.flow = b.emptyFlow(container, style, level)
	b.wrote = false
}

func (b *builder) endFlow() {
	b.flush()
	if !b.wrote {
		b.doc.Append(b.flow, b.doc.NewText("", core.TextStyle{}))
	}
	b.flow = core.NoNode
}

// write adds text to the open paragraph. Consecutive writes of one style
// end up in a single run.
func (b *builder) write(s string, style core.TextStyle) {
	if s == "" {
		return
	}
	if b.pending.text.Len() > 0 && b.pending.style != style {
		b.flush()
	}
	b.pending.style = style
	b.pending.text.WriteString(s)
}

func (b *builder) flush() {
	if b.pending.text.Len() == 0 {
		return
	}
	b.doc.Append(b.flow, b.doc.NewText(b.pending.text.String(), b.pending.style))
	b.pending.text.Reset()
	b.wrote = true
}

func (b *builder) object(id core.NodeID) {
	b.flush()
	b.doc.Append(b.flow, id)
	b.wrote = true
}

func (b *builder) blocks(container core.NodeID, parent gast.Node, level int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(container, n, level, core.ParagraphNormal)
	}
}

func (b *builder) block(container core.NodeID, n gast.Node, level int, style core.ParagraphStyle) {
	switch n := n.(type) {
	case *gast.Paragraph, *gast.TextBlock:
		b.startFlow(container, style, level)
		b.inlines(n, core.TextStyle{})
		b.endFlow()

	case *gast.Heading:
		b.startFlow(container, core.ParagraphH1+core.ParagraphStyle(min(max(n.Level, 1), 6)-1), level)
		b.inlines(n, core.TextStyle{})
		b.endFlow()

	case *gast.ThematicBreak:
		b.startFlow(container, core.ParagraphNormal, level)
		b.object(b.doc.NewRule(0, 100, 1, true, core.AlignCenter))
		b.endFlow()

	case *gast.CodeBlock, *gast.FencedCodeBlock:
		b.lines(container, n, level, core.ParagraphPre, core.TextStyle{Fixed: true})

	case *gast.HTMLBlock:
		b.lines(container, n, level, core.ParagraphNormal, core.TextStyle{})

	case *gast.Blockquote:
		b.blocks(container, n, level+1)

	case *gast.List:
		item := core.ParagraphItemDotted
		if n.IsOrdered() {
			item = core.ParagraphItemDigit
		}
		for li := n.FirstChild(); li != nil; li = li.NextSibling() {
			first := true
			for c := li.FirstChild(); c != nil; c = c.NextSibling() {
				if _, nested := c.(*gast.List); nested {
					b.block(container, c, level+1, core.ParagraphNormal)
					continue
				}
				s := core.ParagraphNormal
				if first {
					s = item
					first = false
				}
				b.block(container, c, level, s)
			}
			if first {
				// Empty list item
				b.startFlow(container, item, level)
				b.endFlow()
			}
		}

	case *east.Table:
		b.table(container, n, level)

	default:
		if n.HasChildren() {
			b.blocks(container, n, level)
		}
	}
}

// lines turns every source line of a block into its own paragraph.
func (b *builder) lines(container core.NodeID, n gast.Node, level int, style core.ParagraphStyle, ts core.TextStyle) {
	lines := n.Lines()
	if lines.Len() == 0 {
		b.startFlow(container, style, level)
		b.endFlow()
		return
	}
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(b.src)), "\r\n")
		b.startFlow(container, style, level)
		b.write(line, ts)
		b.endFlow()
	}
}

func (b *builder) table(container core.NodeID, n *east.Table, level int) {
	d := b.doc
	b.startFlow(container, core.ParagraphNormal, level)
	flow := b.flow

	table := d.NewTable(0, 0, 1, 0, 1)
	tb := d.NewTableBuilder(table)
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		_, heading := row.(*east.TableHeader)
		tb.StartRow()
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			tc, ok := c.(*east.TableCell)
			if !ok {
				continue
			}
			cell := d.NewTableCell(1, 1)
			d.Object(cell).(*core.TableCell).Heading = heading

			b.startFlow(cell, core.ParagraphNormal, 0)
			d.Object(b.flow).(*core.Flow).Align = alignment(tc.Alignment)
			b.inlines(tc, core.TextStyle{Bold: heading})
			b.endFlow()

			tb.AddCell(cell)
		}
		tb.EndRow()
	}

	b.flow = flow
	b.object(table)
	b.endFlow()
}

func alignment(a east.Alignment) core.Alignment {
	switch a {
	case east.AlignCenter:
		return core.AlignCenter
	case east.AlignRight:
		return core.AlignRight
	}
	return core.AlignLeft
}

func (b *builder) inlines(parent gast.Node, style core.TextStyle) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b.inline(n, style)
	}
}

func (b *builder) inline(n gast.Node, style core.TextStyle) {
	switch n := n.(type) {
	case *gast.Text:
		v := n.Segment.Value(b.src)
		if !style.Fixed {
			v = util.UnescapePunctuations(v)
		}
		b.write(string(v), style)
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.write(" ", style)
		}

	case *gast.String:
		b.write(string(n.Value), style)

	case *gast.CodeSpan:
		style.Fixed = true
		b.inlines(n, style)

	case *gast.Emphasis:
		if n.Level >= 2 {
			style.Bold = true
		} else {
			style.Italic = true
		}
		b.inlines(n, style)

	case *east.Strikethrough:
		style.Strikeout = true
		b.inlines(n, style)

	case *gast.Link:
		style.Link = string(n.Destination)
		style.Target = string(n.Title)
		b.inlines(n, style)

	case *gast.AutoLink:
		style.Link = string(n.URL(b.src))
		b.write(string(n.Label(b.src)), style)

	case *gast.Image:
		// Images have no node of their own; their alt text stands in.
		b.inlines(n, style)

	case *east.TaskCheckBox:
		if n.IsChecked {
			b.write("[x] ", style)
		} else {
			b.write("[ ] ", style)
		}

	case *gast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.write(string(seg.Value(b.src)), style)
		}

	default:
		b.inlines(n, style)
	}
}
