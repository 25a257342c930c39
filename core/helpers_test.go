package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T, text string) *Engine {
	t.Helper()
	return NewEngine(NewDocumentFromText(text), DefaultOptions())
}

func plain(e *Engine) string {
	return PlainText(e.doc, e.doc.root)
}

type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if c.text == "" {
		return "", errors.New("empty")
	}
	return c.text, nil
}

// selectRange marks [from, to) with the cursor left at to.
func selectRange(e *Engine, from, to int) {
	e.SetCursorPosition(from)
	e.SetMark()
	e.SetCursorPosition(to)
}

type countingDriver struct {
	begins, ends int
	relayouts    int
	redraws      int
}

func (c *countingDriver) BeginBatch()          { c.begins++ }
func (c *countingDriver) EndBatch()            { c.ends++ }
func (c *countingDriver) QueueRelayout(NodeID) { c.relayouts++ }
func (c *countingDriver) QueueRedraw(Rect)     { c.redraws++ }

// dumpTree writes the structure of the document one node per line: kinds,
// styles, text and cell coordinates. Wrapped lines are left out.
func dumpTree(d *Document) string {
	var b strings.Builder
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		pad := strings.Repeat("  ", depth)
		children := d.Children(id)
		switch d.Kind(id) {
		case KindTextSlave:
			return
		case KindText:
			t := d.text(id)
			fmt.Fprintf(&b, "%stext %q %+v\n", pad, string(t.runes), t.Style)
		case KindRule:
			r := d.rule(id)
			fmt.Fprintf(&b, "%srule %+v\n", pad, *r)
		case KindFlow:
			f := d.flow(id)
			fmt.Fprintf(&b, "%sflow %s align %d level %d\n", pad, f.Style, f.Align, f.Level)
		case KindBox:
			fmt.Fprintf(&b, "%sbox\n", pad)
		case KindTable:
			tb := d.table(id)
			fmt.Fprintf(&b, "%stable %dx%d border %d\n", pad, tb.Rows(), tb.Cols(), tb.Border)
			children = tb.originCells(d)
		case KindTableCell:
			c := d.cell(id)
			fmt.Fprintf(&b, "%scell %d,%d span %dx%d\n", pad, c.Row(), c.Col(), c.RowSpan(), c.ColSpan())
		}
		for _, c := range children {
			walk(c, depth+1)
		}
	}
	walk(d.Root(), 0)
	return b.String()
}
