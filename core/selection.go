package core

// SetMark anchors the selection at the cursor.
func (e *Engine) SetMark() {
	e.mark = e.cursor
	e.markSet = true
	e.queueCursorRedraw()
}

// DisableSelection drops the mark.
func (e *Engine) DisableSelection() {
	if !e.markSet {
		return
	}
	e.markSet = false
	e.queueCursorRedraw()
}

// SelectionActive reports whether a non-empty selection exists.
func (e *Engine) SelectionActive() bool {
	return e.markSet && e.mark.Position != e.cursor.Position
}

// Selection returns the selected range in document order.
func (e *Engine) Selection() (from, to Cursor, ok bool) {
	if !e.SelectionActive() {
		return Cursor{}, Cursor{}, false
	}
	from, to = e.mark, e.cursor
	if from.Position > to.Position {
		from, to = to, from
	}
	return from, to, true
}

// Mark returns the selection anchor.
func (e *Engine) Mark() (Cursor, bool) {
	return e.mark, e.markSet
}

// SelectAll selects the whole document.
func (e *Engine) SelectAll() {
	e.jumpTo(0)
	e.SetMark()
	e.jumpTo(e.Length())
	e.queueCursorRedraw()
}

// SelectParagraph selects the paragraph holding the cursor.
func (e *Engine) SelectParagraph() bool {
	flow := e.doc.flowOf(e.cursor.Point)
	if flow == NoNode {
		return false
	}
	start := e.doc.PositionOf(Point{Object: e.doc.HeadNotSlave(flow)})
	e.jumpTo(start)
	e.SetMark()
	e.jumpTo(start + e.doc.RecursiveLength(flow))
	e.queueCursorRedraw()
	return true
}
