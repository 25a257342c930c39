package core

// flowAttrs are the paragraph attributes of the flow starting at pos.
type flowAttrs struct {
	pos   int
	style ParagraphStyle
	align Alignment
	level int
}

// selectedFlows lists the flows touched by the selection, or the flow of
// the cursor.
func (e *Engine) selectedFlows() []NodeID {
	d := e.doc
	from, to := e.cursor.Position, e.cursor.Position
	if f, t, ok := e.Selection(); ok {
		from, to = f.Position, t.Position
	}

	var out []NodeID
	seen := make(map[NodeID]bool)
	add := func(p Point) {
		if f := d.flowOf(p); f != NoNode && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	add(d.pointRight(d.Locate(from)))
	if from == to {
		return out
	}
	d.walkPoints(func(pos int, p Point) {
		if pos > from && pos <= to {
			add(p)
		}
	})
	return out
}

func (e *Engine) changeFlows(change func(f *Flow)) bool {
	d := e.doc
	var attrs []flowAttrs
	for _, id := range e.selectedFlows() {
		f := d.flow(id)
		orig := *f
		change(f)
		want := *f
		*f = orig
		if want == orig {
			continue
		}
		attrs = append(attrs, flowAttrs{pos: d.flowStart(id), style: want.Style, align: want.Align, level: want.Level})
	}
	if len(attrs) == 0 {
		return false
	}

	e.freeze()
	defer e.thaw()
	e.setFlowAttrs(attrs, DirUndo)
	return true
}

// setFlowAttrs applies attrs and records the previous values.
func (e *Engine) setFlowAttrs(attrs []flowAttrs, dir UndoDirection) {
	d := e.doc
	old := make([]flowAttrs, 0, len(attrs))
	for _, a := range attrs {
		id := d.flowOf(d.pointRight(d.Locate(a.pos)))
		f := d.flow(id)
		if f == nil {
			continue
		}
		old = append(old, flowAttrs{pos: a.pos, style: f.Style, align: f.Align, level: f.Level})
		f.Style, f.Align, f.Level = a.style, a.align, max(0, a.level)
		d.dropSlaves(id)
	}

	e.undo.Add(&Action{
		Description: "Paragraph format",
		Position:    e.cursor.Position,
		replay: func(e *Engine, a *Action, dir UndoDirection) {
			e.setFlowAttrs(old, dir.Reverse())
		},
	}, dir)
}

// SetParagraphStyle sets the style of the selected paragraphs.
func (e *Engine) SetParagraphStyle(style ParagraphStyle) bool {
	return e.changeFlows(func(f *Flow) { f.Style = style })
}

// SetParagraphAlignment sets the alignment of the selected paragraphs.
func (e *Engine) SetParagraphAlignment(align Alignment) bool {
	return e.changeFlows(func(f *Flow) { f.Align = align })
}

// IndentParagraph changes the indentation level of the selected
// paragraphs by delta.
func (e *Engine) IndentParagraph(delta int) bool {
	return e.changeFlows(func(f *Flow) { f.Level = max(0, f.Level+delta) })
}

// ParagraphAt returns the attributes of the paragraph holding the cursor.
func (e *Engine) ParagraphAt() (style ParagraphStyle, align Alignment, level int) {
	if f := e.doc.flow(e.doc.flowOf(e.cursor.Point)); f != nil {
		return f.Style, f.Align, f.Level
	}
	return ParagraphNormal, AlignLeft, 0
}
