package core

// Layout sizes the whole document for the given width. Text runs get
// fresh slaves, tables get column widths and every node gets its position.
func (d *Document) Layout(width int) {
	root := d.nodes[d.root].obj
	root.setMaxWidth(d, d.root, max(1, width))
	root.calcSize(d, d.root)
	d.carets = nil
}

// MinWidth is the narrowest width the document can be laid out in.
func (d *Document) MinWidth() int {
	return d.nodes[d.root].obj.calcMinWidth(d, d.root)
}

// PreferredWidth is the width the document needs to avoid wrapping.
func (d *Document) PreferredWidth() int {
	return d.nodes[d.root].obj.calcPreferredWidth(d, d.root)
}

// Size returns the dimensions of the last layout.
func (d *Document) Size() (width, height int) {
	n := d.nodes[d.root]
	return n.width, n.ascent + n.descent
}

// caret is the screen location of one document position.
type caret struct {
	pos int
	x   int
	y   int
	p   Point
}

func (c caret) sameLine(d *Document, o caret) bool {
	return c.y == o.y && d.flowOf(c.p) == d.flowOf(o.p)
}

// caretMap returns the location of every position, indexed by position.
func (d *Document) caretMap() []caret {
	if d.carets != nil {
		return d.carets
	}
	var out []caret
	d.walkPoints(func(pos int, p Point) {
		x, y := d.CaretXY(p)
		out = append(out, caret{pos: pos, x: x, y: y, p: p})
	})
	d.carets = out
	return out
}

// CaretXY returns the document-space cell where a cursor at p is shown.
func (d *Document) CaretXY(p Point) (x, y int) {
	switch d.Kind(p.Object) {
	case KindText:
		t := d.text(p.Object)
		for s := d.Next(p.Object); s != NoNode && d.Kind(s) == KindTextSlave; s = d.Next(s) {
			sl := d.nodes[s].obj.(*TextSlave)
			if sl.master != p.Object {
				break
			}
			if p.Offset >= sl.offset && p.Offset <= sl.offset+sl.length {
				x, y = d.AbsolutePosition(s)
				return x + d.measurer.Width(t.Slice(sl.offset, p.Offset), t.Style), y
			}
		}
		return d.AbsolutePosition(d.Parent(p.Object))

	case KindRule, KindTable:
		x, y = d.AbsolutePosition(p.Object)
		if p.Offset > 0 {
			b := d.Bounds(p.Object)
			x += b.Width
			y += max(0, b.Height-1)
		}
		return x, y
	}
	return 0, 0
}
