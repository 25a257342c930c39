package core

import "log"

// Cursor is an editing position. Object and Offset name the leaf, Position
// is the same place counted from the start of the document.
type Cursor struct {
	Point
	Position int

	// TargetX is the column vertical movement tries to keep.
	TargetX     int
	HaveTargetX bool
}

// Movement is a cursor movement code.
type Movement int

const (
	MoveRight Movement = iota
	MoveLeft
	MoveUp
	MoveDown
)

// Locate returns the first point in document order at position pos. At the
// boundary of two leaves that is the end of the left one.
func (d *Document) Locate(pos int) Point {
	pos = max(0, min(pos, d.RecursiveLength(d.root)))
	p, ok := d.locateIn(d.root, pos)
	if !ok {
		log.Printf("position %d is not inside any flow", pos)
		return Point{Object: NoNode}
	}
	return p
}

func (d *Document) locateIn(container NodeID, pos int) (Point, bool) {
	for c := d.Head(container); c != NoNode; c = d.Next(c) {
		l := d.RecursiveLength(c)
		if pos <= l {
			return d.locateInFlow(c, pos)
		}
		pos -= l + 1
	}
	return Point{Object: NoNode}, false
}

func (d *Document) locateInFlow(flow NodeID, pos int) (Point, bool) {
	for c := d.HeadNotSlave(flow); c != NoNode; c = d.NextNotSlave(c) {
		if d.Kind(c) != KindTable {
			l := d.leafLength(c)
			if pos <= l {
				return Point{Object: c, Offset: pos}, true
			}
			pos -= l
			continue
		}

		l := d.RecursiveLength(c)
		switch {
		case pos == 0:
			return Point{Object: c}, true
		case pos < l:
			inner := pos - 1
			for cell := d.Head(c); cell != NoNode; cell = d.Next(cell) {
				cl := d.RecursiveLength(cell)
				if inner <= cl {
					return d.locateIn(cell, inner)
				}
				inner -= cl + 1
			}
		case pos == l:
			return Point{Object: c, Offset: 1}, true
		}
		pos -= l
	}
	return Point{Object: NoNode}, false
}

// PositionOf is the inverse of Locate.
func (d *Document) PositionOf(p Point) int {
	if !d.Valid(p.Object) {
		return 0
	}

	pos := p.Offset
	if d.Kind(p.Object) == KindTable && p.Offset > 0 {
		pos = d.RecursiveLength(p.Object)
	}

	for cur := p.Object; ; {
		parent := d.Parent(cur)
		if parent == NoNode {
			break
		}
		switch d.Kind(parent) {
		case KindFlow:
			for s := d.PrevNotSlave(cur); s != NoNode; s = d.PrevNotSlave(s) {
				pos += d.RecursiveLength(s)
			}
		case KindBox, KindTableCell:
			for s := d.Prev(cur); s != NoNode; s = d.Prev(s) {
				pos += d.RecursiveLength(s) + 1
			}
		case KindTable:
			pos++
			for s := d.Prev(cur); s != NoNode; s = d.Prev(s) {
				pos += d.RecursiveLength(s) + 1
			}
		}
		cur = parent
	}
	return pos
}

// walkPoints calls fn once for every position of the document, in order,
// with the canonical point of that position.
func (d *Document) walkPoints(fn func(pos int, p Point)) {
	pos, last := 0, -1
	emit := func(at int, p Point) {
		if at > last {
			fn(at, p)
			last = at
		}
	}

	var stack func(id NodeID)
	var flow func(id NodeID)

	stack = func(id NodeID) {
		for i, c := 0, d.Head(id); c != NoNode; i, c = i+1, d.Next(c) {
			if i > 0 {
				pos++
			}
			flow(c)
		}
	}

	flow = func(id NodeID) {
		for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
			if d.Kind(c) == KindTable {
				emit(pos, Point{Object: c})
				for cell := d.Head(c); cell != NoNode; cell = d.Next(cell) {
					pos++
					stack(cell)
				}
				pos++
				emit(pos, Point{Object: c, Offset: 1})
				continue
			}
			l := d.leafLength(c)
			for o := 0; o <= l; o++ {
				emit(pos+o, Point{Object: c, Offset: o})
			}
			pos += l
		}
	}

	stack(d.root)
}

// flowOf returns the flow holding the leaf of p.
func (d *Document) flowOf(p Point) NodeID {
	if f := d.Parent(p.Object); d.Kind(f) == KindFlow {
		return f
	}
	return NoNode
}

// --- Cursor movement ---

func (e *Engine) updatePosition() {
	if !e.doc.Valid(e.cursor.Object) {
		e.cursor.Point = e.doc.Locate(e.cursor.Position)
	}
	e.cursor.Position = e.doc.PositionOf(e.cursor.Point)
	if e.markSet {
		if !e.doc.Valid(e.mark.Object) {
			e.mark.Point = e.doc.Locate(e.mark.Position)
		}
		e.mark.Position = e.doc.PositionOf(e.mark.Point)
	}
}

// jumpTo places the cursor on the canonical point of pos.
func (e *Engine) jumpTo(pos int) {
	pos = max(0, min(pos, e.doc.RecursiveLength(e.doc.root)))
	e.cursor.Point = e.doc.Locate(pos)
	e.cursor.Position = pos
	e.cursor.HaveTargetX = false
}

// MoveCursor moves the cursor count steps and returns how many steps were
// taken. Only MoveRight is supported; use Left, Up and Down otherwise.
func (e *Engine) MoveCursor(m Movement, count int) int {
	if count <= 0 {
		return 0
	}
	if m != MoveRight {
		log.Printf("Unsupported movement %d", m)
		return 0
	}
	return e.Right(count)
}

// Right moves the cursor forward by up to n positions.
func (e *Engine) Right(n int) int {
	end := e.doc.RecursiveLength(e.doc.root)
	moved := min(n, end-e.cursor.Position)
	if moved <= 0 {
		return 0
	}
	e.jumpTo(e.cursor.Position + moved)
	e.queueCursorRedraw()
	return moved
}

// Left moves the cursor backward by up to n positions.
func (e *Engine) Left(n int) int {
	moved := min(n, e.cursor.Position)
	if moved <= 0 {
		return 0
	}
	e.jumpTo(e.cursor.Position - moved)
	e.queueCursorRedraw()
	return moved
}

// Forward moves one position forward and reports whether it moved.
func (e *Engine) Forward() bool {
	return e.Right(1) == 1
}

// Backward moves one position backward and reports whether it moved.
func (e *Engine) Backward() bool {
	return e.Left(1) == 1
}

// DocumentStart moves the cursor before the first character.
func (e *Engine) DocumentStart() {
	e.jumpTo(0)
	e.queueCursorRedraw()
}

// DocumentEnd moves the cursor after the last character.
func (e *Engine) DocumentEnd() {
	e.jumpTo(e.doc.RecursiveLength(e.doc.root))
	e.queueCursorRedraw()
}

// Up moves the cursor to the closest position on the line above.
func (e *Engine) Up() bool {
	return e.vertical(-1)
}

// Down moves the cursor to the closest position on the line below.
func (e *Engine) Down() bool {
	return e.vertical(1)
}

func (e *Engine) vertical(dir int) bool {
	carets := e.doc.caretMap()
	if e.cursor.Position >= len(carets) {
		return false
	}
	cur := carets[e.cursor.Position]
	target := cur.x
	if e.cursor.HaveTargetX {
		target = e.cursor.TargetX
	}

	lineY, found := 0, false
	for _, c := range carets {
		if (dir > 0 && c.y > cur.y && (!found || c.y < lineY)) ||
			(dir < 0 && c.y < cur.y && (!found || c.y > lineY)) {
			lineY, found = c.y, true
		}
	}
	if !found {
		return false
	}

	best := -1
	for i, c := range carets {
		if c.y != lineY {
			continue
		}
		if best < 0 || abs(c.x-target) < abs(carets[best].x-target) {
			best = i
		}
	}

	e.jumpTo(best)
	e.cursor.TargetX = target
	e.cursor.HaveTargetX = true
	e.queueCursorRedraw()
	return true
}

// LineStart moves the cursor to the first position of its visual line.
func (e *Engine) LineStart() bool {
	carets := e.doc.caretMap()
	if e.cursor.Position >= len(carets) {
		return false
	}
	i := e.cursor.Position
	for i > 0 && carets[i-1].sameLine(e.doc, carets[i]) {
		i--
	}
	if i == e.cursor.Position {
		return false
	}
	e.jumpTo(i)
	e.queueCursorRedraw()
	return true
}

// LineEnd moves the cursor to the last position of its visual line.
func (e *Engine) LineEnd() bool {
	carets := e.doc.caretMap()
	if e.cursor.Position >= len(carets) {
		return false
	}
	i := e.cursor.Position
	for i+1 < len(carets) && carets[i+1].sameLine(e.doc, carets[i]) {
		i++
	}
	if i == e.cursor.Position {
		return false
	}
	e.jumpTo(i)
	e.queueCursorRedraw()
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
