package core

// Box is a vertical stack of flows. The document root is a box, and so is
// any multi-paragraph fragment held by the clipboard or the undo history.
type Box struct{}

// NewBox allocates a detached, empty box.
func (d *Document) NewBox() NodeID {
	return d.alloc(&Box{})
}

func (b *Box) Kind() Kind {
	return KindBox
}

func (b *Box) Length() int {
	return 0
}

func (b *Box) dup() Object {
	return &Box{}
}

func (b *Box) split(offset int) Object {
	return nil
}

func (b *Box) merge(right Object) bool {
	_, ok := right.(*Box)
	return ok
}

func (b *Box) calcMinWidth(d *Document, id NodeID) int {
	return stackMinWidth(d, id)
}

func (b *Box) calcPreferredWidth(d *Document, id NodeID) int {
	return stackPreferredWidth(d, id)
}

func (b *Box) setMaxWidth(d *Document, id NodeID, width int) {
	stackSetMaxWidth(d, id, width)
}

func (b *Box) calcSize(d *Document, id NodeID) {
	stackCalcSize(d, id, 0)
}

func (b *Box) draw(d *Document, id NodeID, dc *drawContext) {
	dc.drawChildren(id)
}

func stackMinWidth(d *Document, id NodeID) int {
	w := 0
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		w = max(w, d.Object(c).calcMinWidth(d, c))
	}
	return w
}

func stackPreferredWidth(d *Document, id NodeID) int {
	w := 0
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		w = max(w, d.Object(c).calcPreferredWidth(d, c))
	}
	return w
}

func stackSetMaxWidth(d *Document, id NodeID, width int) {
	d.nodes[id].maxWidth = width
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		d.Object(c).setMaxWidth(d, c, width)
	}
}

// stackCalcSize places the children one below the other, inset by pad on
// every side.
func stackCalcSize(d *Document, id NodeID, pad int) {
	y, w := pad, 0
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		d.Object(c).calcSize(d, c)
		n := &d.nodes[c]
		n.x = pad
		n.y = y
		y += n.ascent + n.descent
		w = max(w, n.width)
	}

	n := &d.nodes[id]
	n.width = max(n.maxWidth, w+2*pad)
	n.ascent = y + pad
	n.descent = 0
}
