package core

import "log"

// NodeID addresses a node in the document arena.
type NodeID int32

// NoNode is the zero handle: no parent, no sibling, no child.
const NoNode NodeID = -1

type node struct {
	obj  Object
	live bool

	parent NodeID
	prev   NodeID
	next   NodeID
	head   NodeID
	tail   NodeID

	// Geometry, relative to the parent container.
	x        int
	y        int
	width    int
	ascent   int
	descent  int
	maxWidth int
}

// Document owns every node of a rich text tree. Nodes detached from the
// tree (clipboard contents, undo payloads) live in the same arena.
type Document struct {
	nodes    []node
	free     []NodeID
	root     NodeID
	measurer Measurer

	carets []caret // caret map of the last layout, nil when stale
}

// NewDocument creates a document holding one empty paragraph.
func NewDocument() *Document {
	d := NewBlankDocument()
	flow := d.NewFlow(ParagraphNormal)
	d.Append(d.root, flow)
	d.Append(flow, d.NewText("", TextStyle{}))
	return d
}

// NewBlankDocument creates a document whose root box has no paragraphs.
// Builders must add at least one flow before the document is edited.
func NewBlankDocument() *Document {
	d := &Document{measurer: NewCellMeasurer()}
	d.root = d.alloc(&Box{})
	return d
}

// SetMeasurer replaces the measurer used by layout.
func (d *Document) SetMeasurer(m Measurer) {
	if m != nil {
		d.measurer = m
		d.carets = nil
	}
}

func (d *Document) Root() NodeID {
	return d.root
}

func (d *Document) alloc(obj Object) NodeID {
	n := node{
		obj:    obj,
		live:   true,
		parent: NoNode,
		prev:   NoNode,
		next:   NoNode,
		head:   NoNode,
		tail:   NoNode,
	}

	if len(d.free) > 0 {
		id := d.free[len(d.free)-1]
		d.free = d.free[:len(d.free)-1]
		d.nodes[id] = n
		return id
	}

	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// Valid reports whether id refers to a live node.
func (d *Document) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes) && d.nodes[id].live
}

func (d *Document) Object(id NodeID) Object {
	if !d.Valid(id) {
		return nil
	}
	return d.nodes[id].obj
}

func (d *Document) Kind(id NodeID) Kind {
	if !d.Valid(id) {
		return -1
	}
	return d.nodes[id].obj.Kind()
}

func (d *Document) Parent(id NodeID) NodeID {
	if !d.Valid(id) {
		return NoNode
	}
	return d.nodes[id].parent
}

// Next returns the following sibling. Table cells are visited in
// row-major order of their origin slots.
func (d *Document) Next(id NodeID) NodeID {
	if !d.Valid(id) {
		return NoNode
	}
	if p := d.nodes[id].parent; p != NoNode && d.Kind(p) == KindTable {
		return d.table(p).nextCell(d, id)
	}
	return d.nodes[id].next
}

func (d *Document) Prev(id NodeID) NodeID {
	if !d.Valid(id) {
		return NoNode
	}
	if p := d.nodes[id].parent; p != NoNode && d.Kind(p) == KindTable {
		return d.table(p).prevCell(d, id)
	}
	return d.nodes[id].prev
}

func (d *Document) Head(id NodeID) NodeID {
	if !d.Valid(id) {
		return NoNode
	}
	if d.Kind(id) == KindTable {
		return d.table(id).headCell(d)
	}
	return d.nodes[id].head
}

func (d *Document) Tail(id NodeID) NodeID {
	if !d.Valid(id) {
		return NoNode
	}
	if d.Kind(id) == KindTable {
		return d.table(id).tailCell(d)
	}
	return d.nodes[id].tail
}

// NextNotSlave returns the next sibling that is not a wrapped line.
func (d *Document) NextNotSlave(id NodeID) NodeID {
	n := d.Next(id)
	for n != NoNode && d.Kind(n) == KindTextSlave {
		n = d.Next(n)
	}
	return n
}

// PrevNotSlave returns the previous sibling that is not a wrapped line.
func (d *Document) PrevNotSlave(id NodeID) NodeID {
	n := d.Prev(id)
	for n != NoNode && d.Kind(n) == KindTextSlave {
		n = d.Prev(n)
	}
	return n
}

// HeadNotSlave returns the first child of id that is not a wrapped line.
func (d *Document) HeadNotSlave(id NodeID) NodeID {
	n := d.Head(id)
	for n != NoNode && d.Kind(n) == KindTextSlave {
		n = d.Next(n)
	}
	return n
}

// TailNotSlave returns the last child of id that is not a wrapped line.
func (d *Document) TailNotSlave(id NodeID) NodeID {
	n := d.Tail(id)
	for n != NoNode && d.Kind(n) == KindTextSlave {
		n = d.Prev(n)
	}
	return n
}

// Children lists the children of id, skipping wrapped lines.
func (d *Document) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
		out = append(out, c)
	}
	return out
}

// HeadLeaf descends through boxes, cells and flows to the first leaf.
func (d *Document) HeadLeaf(id NodeID) NodeID {
	for d.Valid(id) && d.Kind(id) != KindTable && isContainer(d.Kind(id)) {
		c := d.HeadNotSlave(id)
		if c == NoNode {
			return id
		}
		id = c
	}
	return id
}

// TailLeaf descends through boxes, cells and flows to the last leaf.
func (d *Document) TailLeaf(id NodeID) NodeID {
	for d.Valid(id) && d.Kind(id) != KindTable && isContainer(d.Kind(id)) {
		c := d.TailNotSlave(id)
		if c == NoNode {
			return id
		}
		id = c
	}
	return id
}

// NthParent walks n levels up from id.
func (d *Document) NthParent(id NodeID, n int) NodeID {
	for ; n > 0 && id != NoNode; n-- {
		id = d.Parent(id)
	}
	return id
}

func (d *Document) linkable(parent NodeID) bool {
	if !d.Valid(parent) || !isContainer(d.Kind(parent)) {
		log.Printf("cannot link into node %d", parent)
		return false
	}
	if d.Kind(parent) == KindTable {
		log.Println("table cells must be placed through the grid")
		return false
	}
	return true
}

// Append adds child as the last child of parent.
func (d *Document) Append(parent, child NodeID) {
	if !d.linkable(parent) {
		return
	}
	d.AppendAfter(parent, child, d.nodes[parent].tail)
}

// Prepend adds child as the first child of parent.
func (d *Document) Prepend(parent, child NodeID) {
	if !d.linkable(parent) {
		return
	}
	d.AppendAfter(parent, child, NoNode)
}

// AppendAfter links child into parent right after the sibling after.
// A NoNode sibling makes child the head.
func (d *Document) AppendAfter(parent, child, after NodeID) {
	if !d.linkable(parent) || !d.Valid(child) {
		return
	}
	if d.nodes[child].parent != NoNode {
		d.Remove(child)
	}

	p := &d.nodes[parent]
	c := &d.nodes[child]
	c.parent = parent

	if after == NoNode {
		c.prev = NoNode
		c.next = p.head
		if p.head != NoNode {
			d.nodes[p.head].prev = child
		} else {
			p.tail = child
		}
		p.head = child
	} else {
		c.prev = after
		c.next = d.nodes[after].next
		if c.next != NoNode {
			d.nodes[c.next].prev = child
		} else {
			p.tail = child
		}
		d.nodes[after].next = child
	}
	d.carets = nil
}

// Remove unlinks id from its parent without destroying it.
func (d *Document) Remove(id NodeID) {
	if !d.Valid(id) {
		return
	}
	n := &d.nodes[id]
	if n.parent == NoNode {
		return
	}
	if d.Kind(n.parent) == KindTable {
		d.table(n.parent).clearCell(id)
		n.parent = NoNode
		return
	}

	p := &d.nodes[n.parent]
	if n.prev != NoNode {
		d.nodes[n.prev].next = n.next
	} else {
		p.head = n.next
	}
	if n.next != NoNode {
		d.nodes[n.next].prev = n.prev
	} else {
		p.tail = n.prev
	}
	n.parent, n.prev, n.next = NoNode, NoNode, NoNode
	d.carets = nil
}

// Destroy unlinks id and frees it together with its subtree.
func (d *Document) Destroy(id NodeID) {
	if !d.Valid(id) {
		return
	}
	d.Remove(id)
	d.release(id)
}

func (d *Document) release(id NodeID) {
	var children []NodeID
	for c := d.Head(id); c != NoNode; c = d.Next(c) {
		children = append(children, c)
	}
	for _, c := range children {
		d.release(c)
	}
	d.nodes[id] = node{parent: NoNode, prev: NoNode, next: NoNode, head: NoNode, tail: NoNode}
	d.free = append(d.free, id)
}

// dropSlaves removes the wrapped lines of a flow; the next layout
// recreates them.
func (d *Document) dropSlaves(flow NodeID) {
	if d.Kind(flow) != KindFlow {
		return
	}
	for c := d.Head(flow); c != NoNode; {
		next := d.nodes[c].next
		if d.Kind(c) == KindTextSlave {
			d.Destroy(c)
		}
		c = next
	}
}

// moveChildren moves from and every following sibling to the end of dst.
func (d *Document) moveChildren(from, dst NodeID) {
	for c := from; c != NoNode; {
		next := d.nodes[c].next
		if d.Kind(c) == KindTextSlave {
			d.Destroy(c)
		} else {
			d.Append(dst, c)
		}
		c = next
	}
}

// Dup deep-copies id. The copy is detached.
func (d *Document) Dup(id NodeID) NodeID {
	if !d.Valid(id) {
		return NoNode
	}
	cp := d.alloc(d.nodes[id].obj.dup())

	switch d.Kind(id) {
	case KindTable:
		d.dupTable(id, cp)
	case KindTableCell, KindFlow, KindBox:
		for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
			d.Append(cp, d.Dup(c))
		}
	}
	return cp
}

// RecursiveLength returns the number of cursor positions id spans,
// including everything nested inside it.
func (d *Document) RecursiveLength(id NodeID) int {
	if !d.Valid(id) {
		return 0
	}
	switch d.Kind(id) {
	case KindTable:
		n := 1
		for c := d.Head(id); c != NoNode; c = d.Next(c) {
			n += d.RecursiveLength(c) + 1
		}
		return n
	case KindFlow:
		n := 0
		for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
			n += d.RecursiveLength(c)
		}
		return n
	case KindBox, KindTableCell:
		n, flows := 0, 0
		for c := d.Head(id); c != NoNode; c = d.Next(c) {
			n += d.RecursiveLength(c)
			flows++
		}
		if flows > 0 {
			n += flows - 1
		}
		return n
	}
	return d.nodes[id].obj.Length()
}

// Bounds returns the geometry of id relative to its parent.
func (d *Document) Bounds(id NodeID) Rect {
	if !d.Valid(id) {
		return Rect{}
	}
	n := d.nodes[id]
	return Rect{X: n.x, Y: n.y, Width: n.width, Height: n.ascent + n.descent}
}

// AbsolutePosition returns the top-left corner of id in document space.
func (d *Document) AbsolutePosition(id NodeID) (x, y int) {
	for ; d.Valid(id); id = d.nodes[id].parent {
		x += d.nodes[id].x
		y += d.nodes[id].y
	}
	return x, y
}

func (d *Document) text(id NodeID) *Text {
	t, _ := d.Object(id).(*Text)
	return t
}

func (d *Document) flow(id NodeID) *Flow {
	f, _ := d.Object(id).(*Flow)
	return f
}

func (d *Document) table(id NodeID) *Table {
	t, _ := d.Object(id).(*Table)
	return t
}

func (d *Document) cell(id NodeID) *TableCell {
	c, _ := d.Object(id).(*TableCell)
	return c
}

func (d *Document) rule(id NodeID) *Rule {
	r, _ := d.Object(id).(*Rule)
	return r
}

// leafLength is the in-flow length of a leaf.
func (d *Document) leafLength(id NodeID) int {
	if !d.Valid(id) {
		return 0
	}
	return d.nodes[id].obj.Length()
}

func (d *Document) isEmptyText(id NodeID) bool {
	t := d.text(id)
	return t != nil && t.Len() == 0
}
