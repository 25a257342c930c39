package core

// Rect is an area in document space, measured in terminal cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Painter receives the drawing calls of a laid-out document. Coordinates
// are absolute document cells.
type Painter interface {
	// Region is the area that needs painting. Nodes outside it are skipped.
	Region() Rect

	DrawText(x, y int, text string, style TextStyle, para ParagraphStyle, selected bool)
	DrawRule(x, y, width int, shade, selected bool)
	DrawBullet(x, y int, marker string)
	DrawBorder(r Rect)
	DrawCursor(x, y int)
}

type drawContext struct {
	doc     *Document
	painter Painter
	region  Rect

	selected bool
	from     int
	to       int
}

func (dc *drawContext) origin(id NodeID) (x, y int) {
	return dc.doc.AbsolutePosition(id)
}

func (dc *drawContext) visible(id NodeID) bool {
	x, y := dc.origin(id)
	b := dc.doc.Bounds(id)
	// Empty lines still own a row.
	r := Rect{X: x, Y: y, Width: max(1, b.Width), Height: max(1, b.Height)}
	return r.Intersects(dc.region)
}

func (dc *drawContext) drawChildren(id NodeID) {
	d := dc.doc
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		if dc.visible(c) {
			d.Object(c).draw(d, c, dc)
		}
	}
}

// selectedLeaf reports whether the whole atomic leaf id is selected.
func (dc *drawContext) selectedLeaf(id NodeID) bool {
	if !dc.selected {
		return false
	}
	p := dc.doc.PositionOf(Point{Object: id})
	return dc.from <= p && p+dc.doc.RecursiveLength(id) <= dc.to
}

func (dc *drawContext) drawSlave(id NodeID, s *TextSlave) {
	d := dc.doc
	t := d.text(s.master)
	if t == nil || s.length == 0 {
		return
	}
	x, y := dc.origin(id)
	para := ParagraphNormal
	if f := d.flow(d.Parent(s.master)); f != nil {
		para = f.Style
	}

	start, end := s.offset, s.offset+s.length
	selFrom, selTo := end, end
	if dc.selected {
		base := d.PositionOf(Point{Object: s.master})
		selFrom = max(start, min(end, dc.from-base))
		selTo = max(selFrom, min(end, dc.to-base))
	}

	for _, part := range []struct {
		from, to int
		selected bool
	}{
		{start, selFrom, false},
		{selFrom, selTo, true},
		{selTo, end, false},
	} {
		if part.from >= part.to {
			continue
		}
		text := t.Slice(part.from, part.to)
		dc.painter.DrawText(x, y, text, t.Style, para, part.selected)
		x += d.measurer.Width(text, t.Style)
	}
}

// Draw paints the laid-out document. When selected is set, positions in
// [from, to) are drawn as selected.
func (d *Document) Draw(p Painter, selected bool, from, to int) {
	dc := &drawContext{
		doc:      d,
		painter:  p,
		region:   p.Region(),
		selected: selected && from < to,
		from:     from,
		to:       to,
	}
	d.nodes[d.root].obj.draw(d, d.root, dc)
}
