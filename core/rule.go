package core

// Rule is a horizontal line. It occupies a line of its own and counts as
// a single cursor step.
type Rule struct {
	Width   int       // Fixed width, 0 to size by Percent
	Percent int       // Percentage of the available width
	Size    int       // Thickness
	Shade   bool      // Draw as a shaded (hollow) line
	Align   Alignment // Horizontal alignment inside the flow
}

// NewRule allocates a detached rule.
func (d *Document) NewRule(width, percent, size int, shade bool, align Alignment) NodeID {
	if width <= 0 && percent <= 0 {
		percent = 100
	}
	return d.alloc(&Rule{Width: width, Percent: percent, Size: max(size, 1), Shade: shade, Align: align})
}

func (r *Rule) Kind() Kind {
	return KindRule
}

func (r *Rule) Length() int {
	return 1
}

func (r *Rule) dup() Object {
	cp := *r
	return &cp
}

func (r *Rule) split(offset int) Object {
	return nil
}

func (r *Rule) merge(right Object) bool {
	return false
}

func (r *Rule) calcMinWidth(d *Document, id NodeID) int {
	if r.Width > 0 {
		return r.Width
	}
	return 1
}

func (r *Rule) calcPreferredWidth(d *Document, id NodeID) int {
	return r.calcMinWidth(d, id)
}

func (r *Rule) setMaxWidth(d *Document, id NodeID, width int) {
	n := &d.nodes[id]
	n.maxWidth = width
	if r.Width > 0 {
		n.width = min(r.Width, max(width, 1))
	} else {
		n.width = max(1, width*r.Percent/100)
	}
}

func (r *Rule) calcSize(d *Document, id NodeID) {
	n := &d.nodes[id]
	n.ascent = max(1, r.Size/2+r.Size%2)
	n.descent = 0
}

func (r *Rule) draw(d *Document, id NodeID, dc *drawContext) {
	x, y := dc.origin(id)
	dc.painter.DrawRule(x, y, d.nodes[id].width, r.Shade, dc.selectedLeaf(id))
}
