package core

import (
	"log"
	"strings"
)

// textData is the payload shared by the undo and redo steps of a text
// insertion.
type textData struct {
	chars []rune
	style TextStyle
	refs  int
}

func (t *textData) retain() *textData {
	t.refs++
	return t
}

func (t *textData) Release() {
	t.refs--
}

// InsertText types text at the cursor with the insertion style, replacing
// the selection. Every '\n' starts a new paragraph. It returns the number
// of positions inserted.
func (e *Engine) InsertText(text string) int {
	if text == "" {
		return 0
	}
	e.freeze()
	defer e.thaw()

	e.deleteSelection()
	data := &textData{chars: []rune(text), style: e.insertionStyle, refs: 1}
	return e.insertTextData(data, DirUndo)
}

// PasteText inserts plain text, replacing the selection.
func (e *Engine) PasteText(text string) int {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return e.InsertText(text)
}

func (e *Engine) insertTextData(data *textData, dir UndoDirection) int {
	start := e.cursor.Position
	n := e.insertChars(data.chars, data.style)
	if n == 0 {
		data.Release()
		return 0
	}
	e.undo.Add(&Action{
		Description: "Insert text",
		Position:    start + n,
		replay:      replayInsertText,
		payload:     data,
	}, dir)
	return n
}

// replayInsertText removes the inserted characters. The redo step shares
// the characters and types them again.
func replayInsertText(e *Engine, a *Action, dir UndoDirection) {
	data := a.payload.(*textData)
	n := len(data.chars)
	if frag := e.removeRange(a.Position-n, a.Position); frag != nil {
		frag.Release()
	}
	e.undo.Add(&Action{
		Description: a.Description,
		Position:    e.cursor.Position,
		replay:      replayTypeText,
		payload:     data.retain(),
	}, dir.Reverse())
}

func replayTypeText(e *Engine, a *Action, dir UndoDirection) {
	data := a.payload.(*textData)
	e.insertTextData(data.retain(), dir.Reverse())
}

// insertChars types chars at the cursor and returns the number of
// positions added.
func (e *Engine) insertChars(chars []rune, style TextStyle) int {
	e.markSet = false
	n := 0
	for len(chars) > 0 {
		i := 0
		for i < len(chars) && chars[i] != '\n' {
			i++
		}
		if i > 0 {
			e.insertRun(chars[:i], style)
			n += i
		}
		if i < len(chars) {
			if !e.insertParagraph(style) {
				break
			}
			n++
			i++
		}
		chars = chars[i:]
	}
	e.updatePosition()
	return n
}

// insertRun adds characters of one style at the cursor, extending a run
// of the same style when there is one.
func (e *Engine) insertRun(chars []rune, style TextStyle) {
	d := e.doc
	p := e.cursor.Point
	flow := d.Parent(p.Object)
	if d.Kind(flow) != KindFlow {
		log.Println("object is not contained in a flow")
		return
	}
	d.dropSlaves(flow)

	t := d.text(p.Object)
	switch {
	case t != nil && t.Style == style:
		t.insert(p.Offset, chars)
		e.cursor.Offset += len(chars)
		return

	case t != nil && t.Len() == 0:
		t.Style = style
		t.insert(0, chars)
		e.cursor.Offset = len(chars)
		return

	case p.Offset == 0:
		if prev := d.text(d.PrevNotSlave(p.Object)); prev != nil && prev.Style == style {
			prev.insert(prev.Len(), chars)
			e.cursor.Point = Point{Object: d.PrevNotSlave(p.Object), Offset: prev.Len()}
			return
		}

	case p.Offset == d.leafLength(p.Object):
		if next := d.text(d.NextNotSlave(p.Object)); next != nil && next.Style == style {
			next.insert(0, chars)
			e.cursor.Point = Point{Object: d.NextNotSlave(p.Object), Offset: len(chars)}
			return
		}
	}

	left, right := d.Split(p.Object, p.Offset, 1)
	if len(left) == 0 {
		return
	}
	run := d.NewText(string(chars), style)
	d.AppendAfter(flow, run, left[0])
	for _, x := range []NodeID{left[0], right[0]} {
		if d.isEmptyText(x) {
			d.Destroy(x)
		}
	}
	e.cursor.Point = Point{Object: run, Offset: len(chars)}
}

// insertParagraph breaks the flow at the cursor. The new paragraph copies
// the style of the old one and receives the cursor.
func (e *Engine) insertParagraph(style TextStyle) bool {
	d := e.doc
	p := e.cursor.Point
	left, right := d.Split(p.Object, p.Offset, 2)
	if len(left) < 2 {
		log.Println("cannot break the paragraph")
		d.removeEmptyAndMerge(true, left, right)
		return false
	}
	for _, x := range []NodeID{left[0], right[0]} {
		if t := d.text(x); t != nil && t.Len() == 0 {
			t.Style = style
		}
	}
	d.removeEmptyAndMerge(false, left[:1], right[:1])
	e.cursor.Point = Point{Object: d.HeadNotSlave(right[1])}
	return true
}

// InsertEmptyParagraph breaks the paragraph at the cursor.
func (e *Engine) InsertEmptyParagraph() bool {
	return e.InsertText("\n") == 1
}

// DeleteN deletes n positions forward or backward from the cursor, or the
// selection when there is one. Stepping into or out of a table moves the
// cursor instead. It returns the number of positions removed.
func (e *Engine) DeleteN(n int, forward bool) int {
	if from, to, ok := e.Selection(); ok {
		if e.Delete() {
			return to.Position - from.Position
		}
		return 0
	}
	if n <= 0 {
		return 0
	}

	from := e.cursor.Position
	to := max(0, from-n)
	if forward {
		to = min(e.Length(), from+n)
	}
	if from > to {
		from, to = to, from
	}
	if from == to {
		return 0
	}
	if wf, wt := e.doc.widenTables(from, to); wf != from || wt != to {
		if forward {
			e.Right(n)
		} else {
			e.Left(n)
		}
		return 0
	}

	e.freeze()
	defer e.thaw()
	e.markSet = false
	if e.deleteRange(from, to, DirUndo) == nil {
		return 0
	}
	return to - from
}

// CutLine cuts from the cursor to the end of its line. At the end of a
// line the line break is cut.
func (e *Engine) CutLine() bool {
	if !e.SelectionActive() {
		e.SetMark()
		e.LineEnd()
		if e.cursor.Position == e.mark.Position {
			e.Forward()
		}
	}
	return e.Cut()
}

// InsertLink turns the selection into a link to url. An empty url removes
// links from the selection. Without a selection the link applies to text
// typed next.
func (e *Engine) InsertLink(url, target string) bool {
	from, to, ok := e.Selection()
	if !ok {
		e.insertionStyle.Link = url
		e.insertionStyle.Target = target
		if url == "" {
			e.insertionStyle.Target = ""
		}
		return true
	}

	frag := e.copyRange(from.Position, to.Position)
	if frag == nil {
		return false
	}
	e.doc.walkTexts(frag.root, func(t *Text) {
		t.Style.Link = url
		t.Style.Target = target
		if url == "" {
			t.Style.Target = ""
		}
	})

	e.freeze()
	defer e.thaw()
	e.deleteSelection()
	return e.insertObject(frag.take(), DirUndo)
}

// walkTexts calls fn for every text run under id.
func (d *Document) walkTexts(id NodeID, fn func(t *Text)) {
	if t := d.text(id); t != nil {
		fn(t)
		return
	}
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		d.walkTexts(c, fn)
	}
}
